package bridge

// Synaptics absolute-mode (W mode) packets are six bytes with fixed
// signature bits in bytes 0 and 3:
//
//	b0: 1 0 W3 W2 0 W1 R L
//	b1: Y11..Y8 X11..X8
//	b2: Z7..Z0
//	b3: 1 1 Y12 X12 0 W0 R' L'
//	b4: X7..X0
//	b5: Y7..Y0
//
// Only position, pressure, W and the two physical buttons are decoded
// here; the gesture vocabulary layered on W is out of scope.

// Packet is one decoded absolute-mode sample.
type Packet struct {
	X, Y  int   // absolute position, device units
	Z     uint8 // pressure
	W     uint8
	Left  bool
	Right bool
}

const (
	sigByte0Mask = 0xC8
	sigByte0     = 0x80
	sigByte3Mask = 0xC8
	sigByte3     = 0xC0
)

func validHeader(b0 byte) bool { return b0&sigByte0Mask == sigByte0 }
func validFourth(b3 byte) bool { return b3&sigByte3Mask == sigByte3 }

func decode(raw [6]byte) Packet {
	return Packet{
		X: int(raw[3]&0x10)<<8 | int(raw[1]&0x0F)<<8 | int(raw[4]),
		Y: int(raw[3]&0x20)<<7 | int(raw[1]&0xF0)<<4 | int(raw[5]),
		Z: raw[2],
		W: (raw[0]&0x30)>>2 | (raw[0]&0x04)>>1 | (raw[3]&0x04)>>2,

		Left:  raw[0]&0x01 != 0,
		Right: raw[0]&0x02 != 0,
	}
}
