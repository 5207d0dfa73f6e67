package bridge

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/delingren/synaptics-touchpad/hid"
	"github.com/delingren/synaptics-touchpad/x/logx"
)

type captureSink struct {
	mu      sync.Mutex
	reports []hid.Report
}

func (c *captureSink) Send(r hid.Report) error {
	c.mu.Lock()
	c.reports = append(c.reports, r)
	c.mu.Unlock()
	return nil
}

func (c *captureSink) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reports)
}

func quietLogs(t *testing.T) {
	t.Helper()
	logx.SetOutput(nil)
}

// encode is the inverse of decode, for building test packets.
func encode(p Packet) [6]byte {
	var raw [6]byte
	raw[0] = sigByte0 | byte(p.W&0x0C)<<2 | byte(p.W&0x02)<<1
	raw[3] = sigByte3 | byte(p.W&0x01)<<2
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

func feedPacket(b *Bridge, p Packet) {
	raw := encode(p)
	for _, v := range raw {
		b.feed(v)
	}
}

func TestPacketRoundTrip(t *testing.T) {
	for _, p := range []Packet{
		{X: 0, Y: 0, Z: 0, W: 0},
		{X: 1234, Y: 2345, Z: 42, W: 4, Left: true},
		{X: 5888, Y: 5120, Z: 255, W: 15, Right: true},
		{X: 0x1FFF, Y: 0x1FFF, Z: 99, W: 5, Left: true, Right: true},
	} {
		raw := encode(p)
		if !validHeader(raw[0]) || !validFourth(raw[3]) {
			t.Fatalf("encode(%+v) produced invalid signatures", p)
		}
		if got := decode(raw); got != p {
			t.Fatalf("decode(encode(%+v)) = %+v", p, got)
		}
	}
}

func TestMotionConversion(t *testing.T) {
	quietLogs(t)
	sink := &captureSink{}
	b := New(sink, Config{SmoothWindow: 1, Divisor: 8, ZThreshold: 30})

	// First touch establishes position, no report.
	feedPacket(b, Packet{X: 3000, Y: 3000, Z: 80})
	if len(sink.reports) != 0 {
		t.Fatalf("first packet produced %d reports, want 0", len(sink.reports))
	}

	// Move +16 device units right, +24 up.
	feedPacket(b, Packet{X: 3016, Y: 3024, Z: 80})
	if len(sink.reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(sink.reports))
	}
	r := sink.reports[0]
	if r.X != 2 {
		t.Fatalf("X delta = %d, want 2", r.X)
	}
	// Synaptics Y grows away from the user; HID Y grows toward it.
	if r.Y != -3 {
		t.Fatalf("Y delta = %d, want -3", r.Y)
	}
}

func TestLiftResetsTracking(t *testing.T) {
	quietLogs(t)
	sink := &captureSink{}
	b := New(sink, Config{SmoothWindow: 1, Divisor: 8, ZThreshold: 30})

	feedPacket(b, Packet{X: 1000, Y: 1000, Z: 80})
	feedPacket(b, Packet{X: 1080, Y: 1000, Z: 80})
	// Finger lifts, then lands far away: no jump report.
	feedPacket(b, Packet{X: 1080, Y: 1000, Z: 0})
	feedPacket(b, Packet{X: 5000, Y: 5000, Z: 80})

	if len(sink.reports) != 1 {
		t.Fatalf("got %d reports, want only the one real move", len(sink.reports))
	}
}

func TestButtonsReportedOnChangeOnly(t *testing.T) {
	quietLogs(t)
	sink := &captureSink{}
	b := New(sink, Config{})

	feedPacket(b, Packet{Left: true})
	feedPacket(b, Packet{Left: true}) // held: no repeat
	feedPacket(b, Packet{})           // released

	if len(sink.reports) != 2 {
		t.Fatalf("got %d reports, want press + release", len(sink.reports))
	}
	if sink.reports[0].Buttons != hid.ButtonLeft {
		t.Fatalf("press report buttons = 0x%02x", sink.reports[0].Buttons)
	}
	if sink.reports[1].Buttons != 0 {
		t.Fatalf("release report buttons = 0x%02x", sink.reports[1].Buttons)
	}
}

func TestResyncAfterGarbage(t *testing.T) {
	quietLogs(t)
	sink := &captureSink{}
	b := New(sink, Config{SmoothWindow: 1})

	// Unaligned noise is dropped byte by byte.
	for _, v := range []byte{0x00, 0x12, 0xFF} {
		b.feed(v)
	}

	// A packet with a corrupted fourth byte forces a resync.
	raw := encode(Packet{X: 2000, Y: 2000, Z: 80})
	raw[3] = 0x11
	for _, v := range raw {
		b.feed(v)
	}

	// Decoding still works afterwards.
	feedPacket(b, Packet{X: 2000, Y: 2000, Z: 80, Left: true})
	if len(sink.reports) != 1 || sink.reports[0].Buttons != hid.ButtonLeft {
		t.Fatalf("reports after resync: %+v", sink.reports)
	}
}

func TestByteReceivedDropsWhenFull(t *testing.T) {
	quietLogs(t)
	b := New(&captureSink{}, Config{QueueSize: 4})

	for i := 0; i < 10; i++ {
		b.ByteReceived(0x80)
	}
	if b.Drops() != 6 {
		t.Fatalf("drops = %d, want 6", b.Drops())
	}
}

func TestRunConsumesAndStops(t *testing.T) {
	quietLogs(t)
	sink := &captureSink{}
	b := New(sink, Config{SmoothWindow: 1})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	for _, p := range []Packet{
		{X: 1000, Y: 1000, Z: 80},
		{X: 1100, Y: 1000, Z: 80},
	} {
		raw := encode(p)
		for _, v := range raw {
			b.ByteReceived(v)
		}
	}

	deadline := time.After(time.Second)
	for sink.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("no report produced by Run")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
