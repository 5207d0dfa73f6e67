// Package synaptics composes primitive PS/2 commands into the
// vendor-specific sequences a Synaptics touchpad understands: encoded
// special commands, information queries and the mode-programming
// incantation that switches the pad into absolute/extended packets.
// It has no access to the GPIO lines; everything goes through a Commander.
package synaptics

import "github.com/delingren/synaptics-touchpad/ps2"

// Commander is the slice of the PS/2 engine this layer needs. *ps2.Engine
// satisfies it; tests substitute a scripted recorder.
type Commander interface {
	Command(command uint16, args, result []byte) error
	Enable() error
	Disable() error
}

// Information query codes (Synaptics TouchPad Interfacing Guide, 4.4).
const (
	queryIdentify     = 0x00
	queryCapabilities = 0x02
	queryResolution   = 0x08
	queryExtCaps0C    = 0x0C
)

// Device is one Synaptics touchpad behind a PS/2 engine. Info is
// populated by Init before streaming starts and is read-only afterwards.
type Device struct {
	ps   Commander
	Info DeviceInfo
}

func New(ps Commander) *Device { return &Device{ps: ps} }

// SpecialCommand transfers an arbitrary byte through the touchpad's
// special-command channel. The channel accepts only two bits per call, so
// the byte goes out as four "set resolution" commands, most significant
// pair first (Interfacing Guide, 4.2).
func (d *Device) SpecialCommand(command byte) error {
	var err error
	for i := 6; i >= 0; i -= 2 {
		resolution := (command >> i) & 0x03
		if cerr := d.ps.Command(ps2.CmdSetRes, []byte{resolution}, nil); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// StatusRequest issues the encoded query selector followed by GETINFO and
// returns the three response bytes. This is the uniform mechanism for all
// identify and capability queries.
func (d *Device) StatusRequest(arg byte) ([3]byte, error) {
	var result [3]byte
	if err := d.SpecialCommand(arg); err != nil {
		return result, err
	}
	err := d.ps.Command(ps2.CmdGetInfo, nil, result[:])
	return result, err
}
