//go:build rp2040 || rp2350

package hid

import (
	"machine"
	usbhid "machine/usb/hid"

	"machine/usb/descriptor"
)

// mouseDevice queues packed reports for the USB IN endpoint, following
// the TinyGo custom-HID handler pattern.
type mouseDevice struct {
	buf     *usbhid.RingBuffer
	waitTxc bool
}

var mouse *mouseDevice

// Port installs the custom descriptor, registers the HID handler and
// returns the report sink. Call once during bring-up, before USB
// enumeration settles.
func Port() Sink {
	if mouse == nil {
		descriptor.CDCHID = usbDescriptor
		mouse = &mouseDevice{buf: usbhid.NewRingBuffer()}
		usbhid.SetHandler(mouse)
	}
	return mouse
}

func (m *mouseDevice) Send(r Report) error {
	p := r.Pack()
	b := make([]byte, 0, ReportLen+1)
	b = append(b, ReportID)
	b = append(b, p[:]...)
	m.tx(b)
	return nil
}

// TxHandler is invoked from the USB interrupt when the endpoint can take
// another packet.
func (m *mouseDevice) TxHandler() bool {
	m.waitTxc = false
	if b, ok := m.buf.Get(); ok {
		m.waitTxc = true
		usbhid.SendUSBPacket(b)
		return true
	}
	return false
}

// RxHandler: the mouse has no output reports.
func (m *mouseDevice) RxHandler(b []byte) bool { return false }

func (m *mouseDevice) tx(b []byte) {
	if !machine.USBDev.InitEndpointComplete {
		return
	}
	if m.waitTxc {
		m.buf.Put(b)
	} else {
		m.waitTxc = true
		usbhid.SendUSBPacket(b)
	}
}
