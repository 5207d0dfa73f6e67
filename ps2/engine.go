// Package ps2 implements the host side of the PS/2 pointing-device
// protocol over two GPIO lines.
//
// Reception is asynchronous: a falling-edge interrupt on the clock line
// feeds an 11-bit frame decoder (start, 8 data bits LSB-first, odd parity,
// stop) which hands completed bytes to the callback registered at Begin.
// Writes and command exchanges are synchronous and run with the receive
// interrupt disabled, because both directions share the same two wires and
// their bit timing must not interleave.
//
// Framing and parity violations are logged and absorbed: PS/2 has no
// backward channel to request retransmission mid-frame, so the decoder
// always advances and always delivers whatever it assembled. The one
// failure surfaced to callers is a missing ACK after a host write.
//
// Protocol reference: https://wiki.osdev.org/PS/2_Mouse
package ps2

import (
	"github.com/delingren/synaptics-touchpad/errcode"
	"github.com/delingren/synaptics-touchpad/hal"
	"github.com/delingren/synaptics-touchpad/x/logx"
)

// Engine owns the clock and data lines. All protocol state lives here;
// there are no package-level globals, so tests can run several simulated
// links side by side.
type Engine struct {
	clock hal.IRQPin
	data  hal.GPIOPin

	byteReceived func(byte)

	// Receive frame state. Owned by the clock ISR; the synchronous
	// transaction path only touches it with the IRQ disarmed.
	bitIndex int
	frame    byte
	parity   byte
}

// Begin configures both lines released (input, pulled up) and arms the
// falling-edge interrupt on the clock line. byteReceived is invoked from
// interrupt context with each fully decoded byte from the asynchronous
// path only, never for synchronous reads; it must not block and must not
// re-enter the transmit path.
func Begin(clock hal.IRQPin, data hal.GPIOPin, byteReceived func(byte)) (*Engine, error) {
	e := &Engine{clock: clock, data: data, byteReceived: byteReceived}
	e.releaseHigh(clock)
	e.releaseHigh(data)
	if err := clock.SetIRQ(hal.EdgeFalling, e.onClockEdge); err != nil {
		return nil, &errcode.E{C: errcode.Of(err), Op: "ps2.begin", Err: err}
	}
	return e, nil
}

// onClockEdge decodes one bit per falling clock edge.
func (e *Engine) onClockEdge() {
	// Duplicate or jittery triggers can arrive after the device has
	// already released the clock; re-sample and bail so the frame
	// position is not advanced spuriously.
	if e.clock.Get() {
		return
	}

	bit := e.sampleData()
	switch {
	case e.bitIndex == 0:
		if bit {
			logx.Printf("ps2: receive: %s", errcode.StartBit)
		}
	case e.bitIndex <= 8:
		if bit {
			e.frame |= 1 << (e.bitIndex - 1)
			e.parity ^= 1
		}
	case e.bitIndex == 9:
		if bit {
			e.parity ^= 1
		}
		if e.parity != 1 {
			logx.Printf("ps2: receive: %s", errcode.Parity)
		}
	case e.bitIndex == 10:
		if !bit {
			logx.Printf("ps2: receive: %s", errcode.StopBit)
		}
		// Deliver even after a framing complaint; the byte is the best
		// information we have.
		if e.byteReceived != nil {
			e.byteReceived(e.frame)
		}
		e.resetFrame()
		return
	}

	e.bitIndex++
}

func (e *Engine) resetFrame() {
	e.bitIndex = 0
	e.frame = 0
	e.parity = 0
}

// suspendReceive disarms the clock interrupt and discards any partially
// assembled frame. The two paths share the physical lines; carrying frame
// state across a synchronous transaction would desynchronise the decoder.
func (e *Engine) suspendReceive() {
	_ = e.clock.ClearIRQ()
	e.resetFrame()
}

func (e *Engine) resumeReceive() {
	_ = e.clock.SetIRQ(hal.EdgeFalling, e.onClockEdge)
}
