//go:build !rp2040 && !rp2350

// padsim exercises the whole stack without hardware: a behavioural model
// of a Synaptics touchpad answers the engine's commands and streams
// absolute-mode packets over a pair of fake open-collector lines, and the
// resulting HID reports are printed. Useful for poking at protocol
// changes before flashing anything.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/delingren/synaptics-touchpad/bridge"
	"github.com/delingren/synaptics-touchpad/hal"
	"github.com/delingren/synaptics-touchpad/hid"
	"github.com/delingren/synaptics-touchpad/ps2"
	"github.com/delingren/synaptics-touchpad/synaptics"
	"github.com/delingren/synaptics-touchpad/x/logx"
)

type printSink struct{}

func (printSink) Send(r hid.Report) error {
	fmt.Printf("report: buttons=%03b dx=%+d dy=%+d\n", r.Buttons, r.X, r.Y)
	return nil
}

// simPad models the device side: it answers command writes the way a
// 2-button Synaptics pad would and, once enabled, streams queued motion
// packets. All line manipulation happens on its one goroutine.
type simPad struct {
	clock *hal.FakePin
	data  *hal.FakePin
	phase time.Duration

	selector  byte // rebuilt from SETRES pairs
	argFor    byte // opcode waiting for its argument byte, or 0
	streaming bool

	queued atomic.Int32 // packets left to stream
	motion []bridge.Packet
}

func (s *simPad) run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		switch {
		case !s.data.Get() && s.clock.Get():
			// Request-to-send: host write pending.
			s.serveWrite()
		case s.streaming && s.queued.Load() > 0 && len(s.motion) > 0:
			p := s.motion[0]
			s.motion = s.motion[1:]
			s.queued.Add(-1)
			s.streamPacket(p)
		default:
			runtime.Gosched()
		}
	}
}

func (s *simPad) serveWrite() {
	v := s.recvHostByte()
	s.sendFrame(ps2.Ack)

	if s.argFor != 0 {
		op := s.argFor
		s.argFor = 0
		if op == 0xE8 {
			s.selector = s.selector<<2 | v&0x03
		}
		return
	}

	switch v {
	case 0xFF: // reset: BAT completion + device id
		s.sendFrame(0xAA)
		s.sendFrame(0x00)
	case 0xE8, 0xF3:
		s.argFor = v
	case 0xE9:
		r := s.infoFor(s.selector)
		s.selector = 0
		for _, b := range r {
			s.sendFrame(b)
		}
	case 0xF4:
		s.streaming = true
	case 0xF5:
		s.streaming = false
	case 0xE6: // set scale 1:1, nothing to do
	}
}

func (s *simPad) infoFor(selector byte) [3]byte {
	switch selector {
	case 0x00: // identify
		return [3]byte{0x24, 0x47, 0x08}
	case 0x02: // capabilities
		return [3]byte{0xA4, 0x00, 0x0B}
	case 0x08: // resolution
		return [3]byte{85, 0x00, 94}
	case 0x0C: // extended caps: a 1-button clickpad
		return [3]byte{0x9C, 0x00, 0x00}
	default:
		return [3]byte{}
	}
}

func (s *simPad) recvHostByte() byte {
	s.waitClock(true)
	var v byte
	for i := 0; i < 10; i++ {
		s.clock.SetExternal(true)
		time.Sleep(s.phase)
		if i < 8 && s.data.Get() {
			v |= 1 << i
		}
		s.clock.SetExternal(false)
		time.Sleep(s.phase)
	}
	// Host-release bit.
	s.data.SetExternal(true)
	s.clock.SetExternal(true)
	time.Sleep(s.phase)
	s.clock.SetExternal(false)
	time.Sleep(s.phase)
	s.data.SetExternal(false)
	return v
}

func (s *simPad) sendFrame(v byte) {
	parity := byte(1)
	for i := 0; i < 8; i++ {
		parity ^= (v >> i) & 1
	}
	bits := []bool{false}
	for i := 0; i < 8; i++ {
		bits = append(bits, (v>>i)&1 != 0)
	}
	bits = append(bits, parity != 0, true)

	for _, bit := range bits {
		s.data.SetExternal(!bit)
		time.Sleep(s.phase / 2)
		s.clock.SetExternal(true)
		time.Sleep(s.phase)
		s.clock.SetExternal(false)
		time.Sleep(s.phase)
	}
	s.data.SetExternal(false)

	// Ride out the host's ready pulse if we catch it.
	deadline := time.Now().Add(5 * time.Millisecond)
	for s.clock.Get() && time.Now().Before(deadline) {
		runtime.Gosched()
	}
	s.waitClock(true)
}

// streamPacket clocks one 6-byte absolute packet through the
// asynchronous receive path. The fake pin runs the ISR inline.
func (s *simPad) streamPacket(p bridge.Packet) {
	for _, v := range encodePacket(p) {
		parity := byte(1)
		bits := []bool{false}
		for i := 0; i < 8; i++ {
			bit := (v>>i)&1 != 0
			if bit {
				parity ^= 1
			}
			bits = append(bits, bit)
		}
		bits = append(bits, parity != 0, true)
		for _, bit := range bits {
			s.data.SetExternal(!bit)
			s.clock.SetExternal(true)
			s.clock.SetExternal(false)
		}
	}
	s.data.SetExternal(false)
}

func (s *simPad) waitClock(level bool) {
	deadline := time.Now().Add(time.Second)
	for s.clock.Get() != level {
		if time.Now().After(deadline) {
			return
		}
		runtime.Gosched()
	}
}

func encodePacket(p bridge.Packet) [6]byte {
	var raw [6]byte
	raw[0] = 0x80 | byte(p.W&0x0C)<<2 | byte(p.W&0x02)<<1
	raw[3] = 0xC0 | byte(p.W&0x01)<<2
	if p.Left {
		raw[0] |= 0x01
		raw[3] |= 0x01
	}
	if p.Right {
		raw[0] |= 0x02
		raw[3] |= 0x02
	}
	raw[1] = byte(p.Y>>8&0x0F)<<4 | byte(p.X>>8&0x0F)
	raw[3] |= byte(p.Y>>12&0x01) << 5
	raw[3] |= byte(p.X>>12&0x01) << 4
	raw[2] = p.Z
	raw[4] = byte(p.X)
	raw[5] = byte(p.Y)
	return raw
}

// square traces a small box on the pad, finger down the whole way.
func square(step, count int) []bridge.Packet {
	pkts := make([]bridge.Packet, 0, 4*count)
	x, y := 3000, 3000
	dirs := [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	for _, d := range dirs {
		for i := 0; i < count; i++ {
			x += d[0] * step
			y += d[1] * step
			pkts = append(pkts, bridge.Packet{X: x, Y: y, Z: 80})
		}
	}
	return pkts
}

func main() {
	logx.SetOutput(os.Stderr)

	pins := &hal.HostPinFactory{}
	clock := pins.Pin(2)
	data := pins.Pin(3)

	br := bridge.New(printSink{}, bridge.Config{SmoothWindow: 1})
	engine, err := ps2.Begin(clock, data, br.ByteReceived)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ps2 begin:", err)
		os.Exit(1)
	}

	sim := &simPad{clock: clock, data: data, phase: 150 * time.Microsecond}
	sim.motion = square(32, 15)

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return sim.run(ctx) })
	g.Go(func() error { br.Run(ctx); return nil })
	g.Go(func() error {
		defer cancel()

		if err := engine.Reset(); err != nil {
			return err
		}
		pad := synaptics.New(engine)
		if err := pad.Init(); err != nil {
			return err
		}
		fmt.Printf("pad: version %d.%d, %d/%d units per mm, clickpad type %d\n",
			pad.Info.VersionMajor, pad.Info.VersionMinor,
			pad.Info.UnitsPerMMX, pad.Info.UnitsPerMMY, pad.Info.ClickpadType)

		sim.queued.Store(int32(len(sim.motion)))
		for sim.queued.Load() > 0 {
			time.Sleep(time.Millisecond)
		}
		// Let the bridge drain its queue before shutting down.
		time.Sleep(50 * time.Millisecond)
		fmt.Printf("done, %d bytes dropped\n", br.Drops())
		return nil
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, "padsim:", err)
		os.Exit(1)
	}
}
