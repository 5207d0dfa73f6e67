//go:build !rp2040 && !rp2350

package hal

import "sync"

// FakePin implements GPIOPin and IRQPin for host-side tests and the
// simulator. Unlike a plain level latch it models open-collector wiring:
// the observed level is low whenever the host side drives low OR the far
// end (the simulated device) pulls low; otherwise the pull-up wins and the
// line reads high. SetExternal is the device side of the line.
type FakePin struct {
	mu      sync.Mutex
	number  int
	modeOut bool
	outLow  bool // host driving low (only meaningful when modeOut)
	extLow  bool // far end pulling low
	irqEdge Edge
	irqFunc func()
}

func NewFakePin(number int) *FakePin { return &FakePin{number: number} }

func (p *FakePin) ConfigureInput(_ Pull) error {
	p.update(func() { p.modeOut = false })
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.update(func() { p.modeOut = true; p.outLow = !initial })
	return nil
}

func (p *FakePin) Set(level bool) {
	p.update(func() {
		if p.modeOut {
			p.outLow = !level
		}
	})
}

// SetExternal asserts (low=true) or releases (low=false) the device side
// of the line, firing the IRQ handler on a matching edge, the way a real
// pin interrupt would.
func (p *FakePin) SetExternal(low bool) {
	p.update(func() { p.extLow = low })
}

func (p *FakePin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.levelLocked()
}

func (p *FakePin) Number() int { return p.number }

func (p *FakePin) SetIRQ(edge Edge, handler func()) error {
	p.mu.Lock()
	p.irqEdge = edge
	p.irqFunc = handler
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ClearIRQ() error {
	p.mu.Lock()
	p.irqEdge = EdgeNone
	p.irqFunc = nil
	p.mu.Unlock()
	return nil
}

// levelLocked resolves the wired-AND: any participant low wins, pull-up
// otherwise.
func (p *FakePin) levelLocked() bool {
	if p.modeOut && p.outLow {
		return false
	}
	return !p.extLow
}

// update applies a mutation and fires the IRQ handler if the effective
// level change matches the configured edge. The handler runs without the
// lock held, mirroring ISR semantics.
func (p *FakePin) update(f func()) {
	p.mu.Lock()
	before := p.levelLocked()
	f()
	after := p.levelLocked()
	irq := p.irqFunc
	fire := irq != nil && irqWanted(p.irqEdge, edgeFrom(before, after))
	p.mu.Unlock()
	if fire {
		irq()
	}
}

func edgeFrom(old, new bool) Edge {
	switch {
	case !old && new:
		return EdgeRising
	case old && !new:
		return EdgeFalling
	default:
		return EdgeNone
	}
}

func irqWanted(cfg, seen Edge) bool {
	if seen == EdgeNone {
		return false
	}
	switch cfg {
	case EdgeBoth:
		return true
	default:
		return cfg == seen
	}
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (GPIOPin, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = map[int]*FakePin{}
	}
	p, ok := f.pins[n]
	if !ok {
		p = NewFakePin(n)
		f.pins[n] = p
	}
	return p, true
}

// Pin is ByNumber without the interface indirection, for tests that need
// the fake's extra methods.
func (f *HostPinFactory) Pin(n int) *FakePin {
	p, _ := f.ByNumber(n)
	return p.(*FakePin)
}

// DefaultPinFactory mirrors the MCU-side constructor on host builds.
func DefaultPinFactory() PinFactory { return &HostPinFactory{} }
