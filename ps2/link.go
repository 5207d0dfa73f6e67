package ps2

import "github.com/delingren/synaptics-touchpad/hal"

// Electrical primitives. PS/2 lines are open collector: any participant
// may pull a line low, and a released line floats high through the
// pull-up. ConfigureOutput sets direction and level together, so the
// protocol layer never observes an intermediate floating state.

func (e *Engine) driveLow(p hal.GPIOPin) {
	_ = p.ConfigureOutput(false)
}

func (e *Engine) releaseHigh(p hal.GPIOPin) {
	_ = p.ConfigureInput(hal.PullUp)
}

// sampleData reads the data line as a plain input.
func (e *Engine) sampleData() bool {
	_ = e.data.ConfigureInput(hal.PullNone)
	return e.data.Get()
}

// writeDataBit drives the data line to the given level.
func (e *Engine) writeDataBit(bit bool) {
	_ = e.data.ConfigureOutput(bit)
}
