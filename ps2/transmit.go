package ps2

import (
	"runtime"
	"time"

	"github.com/delingren/synaptics-touchpad/errcode"
	"github.com/delingren/synaptics-touchpad/hal"
	"github.com/delingren/synaptics-touchpad/x/logx"
)

const (
	// Ack is the byte a PS/2 device returns after a successful host write.
	Ack = 0xFA

	// Per-edge wait budget. The device clocks at 10-16.7 kHz, so a whole
	// frame fits in ~1 ms; 25 ms only trips when the device has stopped
	// clocking entirely.
	clockWaitBudget = 25 * time.Millisecond

	// Request-to-send: the host inhibits the bus by holding clock low
	// for at least 100 us before pulling data low.
	inhibitHold = 100 * time.Microsecond

	// Pulse width used to signal host-ready between response bytes.
	readyPulse = 50 * time.Microsecond
)

// waitClock busy-waits until the clock line reads the target level. It
// returns errcode.ClockTimeout once the budget elapses; the condition is
// logged here and the wait abandoned. Callers deliberately proceed on
// timeout (there is no retry path in the protocol), so ignoring the
// result at the call site is an explicit choice, not an accident.
func (e *Engine) waitClock(target bool) error {
	// Pull the line up while waiting for low so an unplugged device
	// reads as idle-high; float while waiting for high so the device's
	// own release is what we observe.
	if target {
		_ = e.clock.ConfigureInput(hal.PullNone)
	} else {
		_ = e.clock.ConfigureInput(hal.PullUp)
	}

	deadline := time.Now().Add(clockWaitBudget)
	for e.clock.Get() != target {
		if time.Now().After(deadline) {
			logx.Printf("ps2: %s waiting for clock %t", errcode.ClockTimeout, target)
			return errcode.ClockTimeout
		}
		runtime.Gosched()
	}
	return nil
}

// WriteByte transfers one byte host-to-device using the request-to-send
// handshake, then verifies the device's ACK. It returns errcode.Nack if
// the acknowledgement byte is anything other than 0xFA; framing noise on
// the way is logged and absorbed.
//
// Must not be called while the receive interrupt is armed; Command
// handles that. The device clocks every bit, so this blocks the caller
// for the duration of the frame.
func (e *Engine) WriteByte(data byte) error {
	// Inhibit the bus, then signal request-to-send: data low while
	// clock is released.
	e.driveLow(e.clock)
	time.Sleep(inhibitHold)
	e.driveLow(e.data)
	e.releaseHigh(e.clock)

	parity := byte(1)

	// Bits 0-7: payload, LSB first. The device samples while it holds
	// the clock low.
	for i := 0; i < 8; i++ {
		bit := data&0x01 != 0
		if bit {
			parity ^= 1
		}
		data >>= 1

		_ = e.waitClock(false)
		e.writeDataBit(bit)
		_ = e.waitClock(true)
	}

	// Bit 8: odd parity.
	_ = e.waitClock(false)
	e.writeDataBit(parity != 0)
	_ = e.waitClock(true)

	// Bit 9: stop, always high.
	_ = e.waitClock(false)
	e.writeDataBit(true)
	_ = e.waitClock(true)

	// Bit 10: line control, driven by the device; must be low.
	_ = e.waitClock(false)
	lineControl := e.sampleData()
	_ = e.waitClock(true)
	if lineControl {
		logx.Printf("ps2: write: %s", errcode.LineControl)
	}

	ack := e.readByte()
	if ack != Ack {
		logx.Printf("ps2: write: %s (got 0x%02x)", errcode.Nack, ack)
		return &errcode.E{C: errcode.Nack, Op: "ps2.write_byte"}
	}
	return nil
}

// readByte reads one byte synchronously, bit by bit, with the same
// clock-wait/sample discipline as the interrupt decoder but performed
// inline. Used only to collect the ACK and command responses while the
// receive interrupt is disarmed; it is never the asynchronous path.
// Framing violations are logged, never escalated.
func (e *Engine) readByte() byte {
	// Start bit.
	_ = e.waitClock(false)
	if e.sampleData() {
		logx.Printf("ps2: read: %s", errcode.StartBit)
	}
	_ = e.waitClock(true)

	var data, parity byte
	for i := 0; i < 8; i++ {
		_ = e.waitClock(false)
		if e.sampleData() {
			data |= 1 << i
			parity ^= 1
		}
		_ = e.waitClock(true)
	}

	// Parity bit: cumulative XOR over 8 data bits plus the transmitted
	// bit must be 1.
	_ = e.waitClock(false)
	if e.sampleData() {
		parity ^= 1
	}
	_ = e.waitClock(true)
	if parity != 1 {
		logx.Printf("ps2: read: %s", errcode.Parity)
	}

	// Stop bit.
	_ = e.waitClock(false)
	if !e.sampleData() {
		logx.Printf("ps2: read: %s", errcode.StopBit)
	}

	// Briefly hold the clock to tell the device we are ready for the
	// next byte.
	e.driveLow(e.clock)
	time.Sleep(readyPulse)
	e.releaseHigh(e.clock)

	return data
}
