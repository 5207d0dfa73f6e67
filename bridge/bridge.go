// Package bridge is the top-level dispatch loop: it assembles the bytes
// the PS/2 engine delivers asynchronously into absolute-mode packets,
// smooths and differentiates the positions, and emits relative HID mouse
// reports.
package bridge

import (
	"context"
	"sync/atomic"

	"github.com/delingren/synaptics-touchpad/hid"
	"github.com/delingren/synaptics-touchpad/x/avg"
	"github.com/delingren/synaptics-touchpad/x/logx"
	"github.com/delingren/synaptics-touchpad/x/mathx"
)

// Config sets the motion-conversion parameters. Zero values select the
// defaults.
type Config struct {
	// SmoothWindow is the moving-average length applied to raw
	// coordinates. Default 3.
	SmoothWindow int
	// ZThreshold is the minimum pressure that counts as a finger on the
	// pad. Default 30.
	ZThreshold uint8
	// Divisor scales device units down to report counts. Default 8.
	Divisor int
	// QueueSize bounds the ISR-to-loop byte queue. Default 64.
	QueueSize int
}

func (c *Config) setDefaults() {
	if c.SmoothWindow <= 0 {
		c.SmoothWindow = 3
	}
	if c.ZThreshold == 0 {
		c.ZThreshold = 30
	}
	if c.Divisor <= 0 {
		c.Divisor = 8
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 64
	}
}

// Bridge consumes decoded bytes and produces HID reports.
type Bridge struct {
	cfg  Config
	sink hid.Sink

	// Fed by ByteReceived from interrupt context; MUST NOT block there.
	bytes chan byte
	drops uint32

	raw [6]byte
	n   int

	avgX, avgY *avg.Window[int]
	tracking   bool
	lastX      int
	lastY      int
	buttons    uint8
}

func New(sink hid.Sink, cfg Config) *Bridge {
	cfg.setDefaults()
	return &Bridge{
		cfg:   cfg,
		sink:  sink,
		bytes: make(chan byte, cfg.QueueSize),
		avgX:  avg.New[int](cfg.SmoothWindow),
		avgY:  avg.New[int](cfg.SmoothWindow),
	}
}

// ByteReceived is the callback handed to ps2.Begin. It runs in interrupt
// context: one non-blocking send, drop and count when the loop is behind.
func (b *Bridge) ByteReceived(v byte) {
	select {
	case b.bytes <- v:
	default:
		atomic.AddUint32(&b.drops, 1)
	}
}

// Drops reports how many bytes the ISR path discarded.
func (b *Bridge) Drops() uint32 { return atomic.LoadUint32(&b.drops) }

// Run consumes bytes until the context is cancelled.
func (b *Bridge) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case v := <-b.bytes:
			b.feed(v)
		}
	}
}

// feed accumulates one byte, re-synchronising on the packet signature
// bits when the stream slips.
func (b *Bridge) feed(v byte) {
	if b.n == 0 && !validHeader(v) {
		logx.Printf("bridge: dropping unaligned byte 0x%02x", v)
		return
	}
	b.raw[b.n] = v
	b.n++
	if b.n == 4 && !validFourth(b.raw[3]) {
		logx.Printf("bridge: bad packet signature 0x%02x, resyncing", b.raw[3])
		b.resync()
		return
	}
	if b.n < len(b.raw) {
		return
	}
	b.n = 0
	b.handle(decode(b.raw))
}

// resync discards the first byte and replays the remainder against the
// signature checks.
func (b *Bridge) resync() {
	var rest [5]byte
	m := copy(rest[:], b.raw[1:b.n])
	b.n = 0
	for _, v := range rest[:m] {
		b.feed(v)
	}
}

func (b *Bridge) handle(p Packet) {
	var report hid.Report

	report.Buttons = packButtons(p)

	if p.Z >= b.cfg.ZThreshold {
		x := b.avgX.Filter(p.X)
		y := b.avgY.Filter(p.Y)
		if b.tracking {
			// Synaptics Y grows away from the user; HID Y grows
			// toward the user.
			report.X = mathx.ClampI8((x - b.lastX) / b.cfg.Divisor)
			report.Y = mathx.ClampI8(-(y - b.lastY) / b.cfg.Divisor)
		}
		b.lastX = x
		b.lastY = y
		b.tracking = true
	} else if b.tracking {
		b.tracking = false
		b.avgX.Reset()
		b.avgY.Reset()
	}

	if report.X == 0 && report.Y == 0 && report.Buttons == b.buttons {
		return
	}
	b.buttons = report.Buttons
	if err := b.sink.Send(report); err != nil {
		logx.Printf("bridge: report send failed: %v", err)
	}
}

func packButtons(p Packet) uint8 {
	var btn uint8
	if p.Left {
		btn |= hid.ButtonLeft
	}
	if p.Right {
		btn |= hid.ButtonRight
	}
	return btn
}
