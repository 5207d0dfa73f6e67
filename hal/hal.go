// Package hal abstracts the two GPIO lines the PS/2 engine drives. The
// interfaces are deliberately small: the protocol layer needs open-collector
// style mode switching (drive vs. release) plus edge interrupts on the clock
// line, nothing else. Platform bindings live behind build tags so the whole
// engine runs on host with FakePin.
package hal

// Pull selects the input pull configuration.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// GPIOPin is one electrical line.
type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// IRQPin extends GPIOPin with edge interrupts. Handlers run in interrupt
// context on MCU builds and must not block.
type IRQPin interface {
	GPIOPin
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}

// PinFactory supplies pins by the platform's numbering scheme.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}
