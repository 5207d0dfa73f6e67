package synaptics

import (
	"github.com/delingren/synaptics-touchpad/ps2"
	"github.com/delingren/synaptics-touchpad/x/logx"
)

// DeviceInfo is the status snapshot assembled from the identify and
// capability queries. Written only during Init, before streaming begins.
type DeviceInfo struct {
	VersionMajor uint8
	VersionMinor uint8

	ExtendedCapabilities bool
	ExtendedQueries      int
	MiddleButton         bool
	FourButtons          bool
	MultiFinger          bool
	PalmDetect           bool

	UnitsPerMMX int
	UnitsPerMMY int

	CoveredPadGesture bool
	ClickpadType      uint8 // 0 none, 1 one-button, 2 two-button
	AdvancedGesture   bool
	ClearPad          bool
}

var clickpadNames = [4]string{
	"not a ClickPad", "1-button ClickPad", "2-button ClickPad", "reserved",
}

// Init queries the pad's identity, capabilities, resolution and clickpad
// type, then programs absolute/extended-packet mode. Must run before the
// first packet is consumed.
func (d *Device) Init() error {
	if err := d.queryInfo(); err != nil {
		return err
	}
	return d.SetAbsoluteMode()
}

func (d *Device) queryInfo() error {
	logx.Print("synaptics: touchpad info:")

	r, err := d.StatusRequest(queryIdentify)
	if err != nil {
		return err
	}
	d.Info.VersionMajor = r[2] & 0x0F
	d.Info.VersionMinor = r[0]
	logx.Printf("  version: %d.%d", d.Info.VersionMajor, d.Info.VersionMinor)

	r, err = d.StatusRequest(queryCapabilities)
	if err != nil {
		return err
	}
	d.Info.ExtendedCapabilities = r[0]&0x80 != 0
	if d.Info.ExtendedCapabilities {
		n := int(r[0]>>4) & 0x07
		if n >= 1 {
			n += 8
		}
		d.Info.ExtendedQueries = n
		d.Info.MiddleButton = r[0]&0x04 != 0
		d.Info.FourButtons = r[2]&0x08 != 0
		d.Info.MultiFinger = r[2]&0x02 != 0
		d.Info.PalmDetect = r[2]&0x01 != 0
		logx.Printf("  ext queries: %d  middle: %t  four buttons: %t  multi-finger: %t  palm: %t",
			d.Info.ExtendedQueries, d.Info.MiddleButton, d.Info.FourButtons,
			d.Info.MultiFinger, d.Info.PalmDetect)
	}

	r, err = d.StatusRequest(queryResolution)
	if err != nil {
		return err
	}
	d.Info.UnitsPerMMX = int(r[0])
	d.Info.UnitsPerMMY = int(r[2])
	logx.Printf("  units/mm: x=%d y=%d", d.Info.UnitsPerMMX, d.Info.UnitsPerMMY)

	r, err = d.StatusRequest(queryExtCaps0C)
	if err != nil {
		return err
	}
	d.Info.CoveredPadGesture = r[0]&0x80 != 0
	d.Info.ClickpadType = (r[0]>>4)&0x01 | (r[1]<<1)&0x02
	d.Info.AdvancedGesture = r[0]&0x08 != 0
	d.Info.ClearPad = r[0]&0x04 != 0
	logx.Printf("  clickpad: %s  covered-pad gesture: %t  adv gesture: %t",
		clickpadNames[d.Info.ClickpadType&0x03], d.Info.CoveredPadGesture,
		d.Info.AdvancedGesture)

	return nil
}

// SetAbsoluteMode programs absolute mode, high sample rate, W mode and
// extended-W mode. Plain mode-byte programming was not enough on real
// hardware; this is the two-phase sequence the VoodooPS2 driver uses, and
// the byte values must be reproduced exactly:
//
//	F5
//	E6 E6, E8(03) E8(00) E8(01) E8(01), F3 14
//	E6 E6, E8(00) E8(00) E8(00) E8(03), F3 C8
//	F4
//
// https://github.com/acidanthera/VoodooPS2/blob/8e05d4f9/VoodooPS2Trackpad/VoodooPS2SynapticsTouchPad.cpp#L1655
func (d *Device) SetAbsoluteMode() error {
	if err := d.ps.Disable(); err != nil {
		return err
	}

	for _, phase := range []struct {
		encoded byte
		rate    byte
	}{
		{0xC5, 0x14},
		{0x03, 0xC8},
	} {
		if err := d.ps.Command(ps2.CmdSetScale11, nil, nil); err != nil {
			return err
		}
		if err := d.ps.Command(ps2.CmdSetScale11, nil, nil); err != nil {
			return err
		}
		if err := d.SpecialCommand(phase.encoded); err != nil {
			return err
		}
		if err := d.ps.Command(ps2.CmdSetRate, []byte{phase.rate}, nil); err != nil {
			return err
		}
	}

	return d.ps.Enable()
}
