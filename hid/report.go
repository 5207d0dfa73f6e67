// Package hid packages finished pointer deltas into the USB HID mouse
// report and hands them to the platform transport. The report is 5 bytes
// under report ID 1: buttons, X, Y, vertical wheel, horizontal pan.
package hid

// Button bits in the first report byte. The remaining five bits are
// constant padding.
const (
	ButtonLeft   = 1 << 0
	ButtonRight  = 1 << 1
	ButtonMiddle = 1 << 2

	buttonMask = 0x07
)

// ReportID identifies the mouse report in the descriptor.
const ReportID = 1

// ReportLen is the packed report length excluding the report ID.
const ReportLen = 5

// Report is one relative mouse report. Axis values are clamped by the
// producer to -127..127 (the descriptor's logical range).
type Report struct {
	Buttons uint8
	X       int8
	Y       int8
	VScroll int8
	HScroll int8
}

// Pack serialises the report into the on-wire layout.
func (r Report) Pack() [ReportLen]byte {
	return [ReportLen]byte{
		r.Buttons & buttonMask,
		byte(r.X),
		byte(r.Y),
		byte(r.VScroll),
		byte(r.HScroll),
	}
}

// Sink transmits packed reports to the host. The rp2 build sends over
// USB; tests and the simulator capture them.
type Sink interface {
	Send(Report) error
}
