package hid

import "testing"

func TestPackLayout(t *testing.T) {
	r := Report{
		Buttons: ButtonLeft | ButtonMiddle,
		X:       -2,
		Y:       127,
		VScroll: -1,
		HScroll: 5,
	}
	got := r.Pack()
	want := [ReportLen]byte{0x05, 0xFE, 0x7F, 0xFF, 0x05}
	if got != want {
		t.Fatalf("Pack() = %v, want %v", got, want)
	}
}

func TestPackMasksReservedButtonBits(t *testing.T) {
	r := Report{Buttons: 0xFF}
	if got := r.Pack()[0]; got != 0x07 {
		t.Fatalf("button byte = 0x%02x, want reserved bits cleared (0x07)", got)
	}
}

func TestPackZeroReport(t *testing.T) {
	var r Report
	if got := r.Pack(); got != ([ReportLen]byte{}) {
		t.Fatalf("zero report packs to %v", got)
	}
}
