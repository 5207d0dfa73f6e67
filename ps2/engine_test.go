package ps2

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/delingren/synaptics-touchpad/errcode"
	"github.com/delingren/synaptics-touchpad/hal"
	"github.com/delingren/synaptics-touchpad/x/logx"
)

// logCapture points the diagnostics channel at a buffer for the duration
// of a test.
type logCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *logCapture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

func captureLog(t *testing.T) *logCapture {
	t.Helper()
	c := &logCapture{}
	logx.SetOutput(c)
	t.Cleanup(func() { logx.SetOutput(nil) })
	return c
}

// newTestLink wires an engine to a pair of fake lines and records
// delivered bytes.
func newTestLink(t *testing.T) (*Engine, *hal.FakePin, *hal.FakePin, *[]byte) {
	t.Helper()
	clock := hal.NewFakePin(2)
	data := hal.NewFakePin(3)
	var received []byte
	e, err := Begin(clock, data, func(b byte) { received = append(received, b) })
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	return e, clock, data, &received
}

// frameFault selects a deliberate framing violation for sendFrame.
type frameFault int

const (
	faultNone frameFault = iota
	faultStart
	faultParity
	faultStop
)

// sendFrame clocks one 11-bit frame into the asynchronous receiver. The
// fake pin runs the ISR inline on each falling edge, so this is fully
// deterministic.
func sendFrame(clock, data *hal.FakePin, v byte, fault frameFault) {
	parity := byte(1)
	for i := 0; i < 8; i++ {
		parity ^= (v >> i) & 1
	}
	if fault == faultParity {
		parity ^= 1
	}

	bits := make([]bool, 0, 11)
	bits = append(bits, fault == faultStart) // start, normally low
	for i := 0; i < 8; i++ {
		bits = append(bits, (v>>i)&1 != 0)
	}
	bits = append(bits, parity != 0)
	bits = append(bits, fault != faultStop) // stop, normally high

	for _, bit := range bits {
		data.SetExternal(!bit)
		clock.SetExternal(true) // falling edge, ISR fires here
		clock.SetExternal(false)
	}
	data.SetExternal(false)
}

func TestReceiveWellFormedFrames(t *testing.T) {
	captureLog(t)
	e, clock, data, received := newTestLink(t)

	for _, v := range []byte{0x00, 0xFF, 0xA5, 0x0F, 0xFA} {
		sendFrame(clock, data, v, faultNone)
	}

	want := []byte{0x00, 0xFF, 0xA5, 0x0F, 0xFA}
	if len(*received) != len(want) {
		t.Fatalf("delivered %d bytes, want %d", len(*received), len(want))
	}
	for i, v := range want {
		if (*received)[i] != v {
			t.Fatalf("byte %d = 0x%02x, want 0x%02x", i, (*received)[i], v)
		}
	}
	if e.bitIndex != 0 {
		t.Fatalf("decoder left at bit index %d, want 0", e.bitIndex)
	}
}

func TestReceiveParityFaultStillDelivers(t *testing.T) {
	log := captureLog(t)
	e, clock, data, received := newTestLink(t)

	sendFrame(clock, data, 0x5A, faultParity)

	if len(*received) != 1 || (*received)[0] != 0x5A {
		t.Fatalf("delivered %v, want exactly one 0x5a", *received)
	}
	if e.bitIndex != 0 {
		t.Fatalf("decoder left at bit index %d, want 0", e.bitIndex)
	}
	if !strings.Contains(log.String(), string(errcode.Parity)) {
		t.Fatalf("parity violation not logged; log: %q", log.String())
	}
}

func TestReceiveStartAndStopFaultsAbsorbed(t *testing.T) {
	log := captureLog(t)
	_, clock, data, received := newTestLink(t)

	sendFrame(clock, data, 0x11, faultStart)
	sendFrame(clock, data, 0x22, faultStop)

	if len(*received) != 2 || (*received)[0] != 0x11 || (*received)[1] != 0x22 {
		t.Fatalf("delivered %v, want [0x11 0x22]", *received)
	}
	for _, code := range []errcode.Code{errcode.StartBit, errcode.StopBit} {
		if !strings.Contains(log.String(), string(code)) {
			t.Fatalf("%s not logged; log: %q", code, log.String())
		}
	}
}

func TestSpuriousEdgeIgnored(t *testing.T) {
	captureLog(t)
	e, clock, data, received := newTestLink(t)

	// Handler invoked while the clock actually reads high: must not
	// advance the frame.
	e.onClockEdge()
	if e.bitIndex != 0 {
		t.Fatalf("spurious edge advanced bit index to %d", e.bitIndex)
	}

	// A real frame afterwards still decodes.
	sendFrame(clock, data, 0x3C, faultNone)
	if len(*received) != 1 || (*received)[0] != 0x3C {
		t.Fatalf("delivered %v, want [0x3c]", *received)
	}
}

func TestCommandResetsPartialFrame(t *testing.T) {
	captureLog(t)
	e, clock, data, received := newTestLink(t)

	// Clock in a partial frame: start bit plus four payload bits.
	for _, bit := range []bool{false, true, false, true, true} {
		data.SetExternal(!bit)
		clock.SetExternal(true)
		clock.SetExternal(false)
	}
	data.SetExternal(false)
	if e.bitIndex == 0 {
		t.Fatal("test setup: expected a partial frame in flight")
	}

	sim := newDeviceSim(t, clock, data)
	done := sim.serve(step{expect: byte(CmdEnable)})
	if err := e.Command(CmdEnable, nil, nil); err != nil {
		t.Fatalf("Command: %v", err)
	}
	<-done

	if e.bitIndex != 0 {
		t.Fatalf("bit index %d after transaction, want 0", e.bitIndex)
	}

	// Reception resumes cleanly at bit 0.
	sendFrame(clock, data, 0x77, faultNone)
	if len(*received) != 1 || (*received)[0] != 0x77 {
		t.Fatalf("delivered %v after transaction, want [0x77]", *received)
	}
}
