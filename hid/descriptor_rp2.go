//go:build rp2040 || rp2350

package hid

import (
	"machine/usb"
	"machine/usb/descriptor"
)

// mouseReportDescriptor declares the 5-byte relative mouse report under
// report ID 1: 3 button bits + 5 padding bits, X/Y/wheel as signed bytes,
// then an AC Pan byte on the consumer page.
var mouseReportDescriptor = descriptor.Append([][]byte{
	descriptor.HIDUsagePageGenericDesktop,
	descriptor.HIDUsageDesktopMouse,
	descriptor.HIDCollectionApplication,
	descriptor.HIDUsageDesktopPointer,
	descriptor.HIDCollectionPhysical,
	descriptor.HIDReportID(ReportID),
	// Buttons 1-3, then 5 bits of padding.
	descriptor.HIDUsagePageButton,
	descriptor.HIDUsageMinimum(1),
	descriptor.HIDUsageMaximum(3),
	descriptor.HIDLogicalMinimum(0),
	descriptor.HIDLogicalMaximum(1),
	descriptor.HIDReportCount(3),
	descriptor.HIDReportSize(1),
	descriptor.HIDInputDataVarAbs,
	descriptor.HIDReportCount(1),
	descriptor.HIDReportSize(5),
	descriptor.HIDInputConstVarAbs,
	// X, Y, vertical wheel.
	descriptor.HIDUsagePageGenericDesktop,
	descriptor.HIDUsageDesktopX,
	descriptor.HIDUsageDesktopY,
	descriptor.HIDUsageDesktopWheel,
	descriptor.HIDLogicalMinimum(-127),
	descriptor.HIDLogicalMaximum(127),
	descriptor.HIDReportSize(8),
	descriptor.HIDReportCount(3),
	descriptor.HIDInputDataVarRel,
	// Horizontal pan.
	descriptor.HIDUsagePageConsumer,
	{0x0A, 0x38, 0x02}, // Usage (AC Pan)
	descriptor.HIDLogicalMinimum(-127),
	descriptor.HIDLogicalMaximum(127),
	descriptor.HIDReportSize(8),
	descriptor.HIDReportCount(1),
	descriptor.HIDInputDataVarRel,
	descriptor.HIDCollectionEnd,
	descriptor.HIDCollectionEnd,
})

// usbDescriptor is the stock CDC+HID composite with our report descriptor
// swapped in and the HID class length patched to match.
var usbDescriptor = descriptor.Descriptor{
	Device: descriptor.DeviceCDC.Bytes(),
	Configuration: descriptor.Append([][]byte{
		descriptor.ConfigurationCDCHID.Bytes(),
		descriptor.InterfaceAssociationCDC.Bytes(),
		descriptor.InterfaceCDCControl.Bytes(),
		descriptor.ClassSpecificCDCHeader.Bytes(),
		descriptor.ClassSpecificCDCACM.Bytes(),
		descriptor.ClassSpecificCDCUnion.Bytes(),
		descriptor.ClassSpecificCDCCallManagement.Bytes(),
		descriptor.EndpointEP1IN.Bytes(),
		descriptor.InterfaceCDCData.Bytes(),
		descriptor.EndpointEP2OUT.Bytes(),
		descriptor.EndpointEP3IN.Bytes(),
		descriptor.InterfaceHID.Bytes(),
		func() []byte {
			classHID := descriptor.ClassHID.Bytes()
			classHID[7] = byte(len(mouseReportDescriptor))
			classHID[8] = byte(len(mouseReportDescriptor) >> 8)
			return classHID
		}(),
		descriptor.EndpointEP4IN.Bytes(),
		descriptor.EndpointEP5OUT.Bytes(),
	}),
	HID: map[uint16][]byte{
		usb.HID_INTERFACE: mouseReportDescriptor,
	},
}
