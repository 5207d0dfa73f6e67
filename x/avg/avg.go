// Package avg provides a fixed-window moving average used to smooth raw
// touchpad coordinates before they are turned into pointer deltas.
package avg

import "golang.org/x/exp/constraints"

// Window is a ring-buffered moving average over the last Size samples.
// The zero value is not usable; call New.
type Window[T constraints.Integer] struct {
	buf   []T
	count int
	sum   int
	index int
}

// New returns a Window over the given number of samples. size < 1 is
// coerced to 1 (pass-through).
func New[T constraints.Integer](size int) *Window[T] {
	if size < 1 {
		size = 1
	}
	return &Window[T]{buf: make([]T, size)}
}

// Filter folds one sample in and returns the average of the samples
// currently held.
func (w *Window[T]) Filter(v T) T {
	w.sum += int(v)
	if w.count == len(w.buf) {
		// Full: the slot we are about to overwrite leaves the sum.
		w.sum -= int(w.buf[w.index])
	}
	w.buf[w.index] = v
	w.index++
	if w.index >= len(w.buf) {
		w.index = 0
	}
	if w.count < len(w.buf) {
		w.count++
	}
	return T(w.sum / w.count)
}

// Reset discards all held samples.
func (w *Window[T]) Reset() {
	for i := range w.buf {
		w.buf[i] = 0
	}
	w.count = 0
	w.sum = 0
	w.index = 0
}

// Count reports how many samples are held.
func (w *Window[T]) Count() int { return w.count }

// Average returns the current average without folding in a new sample.
// Zero when empty.
func (w *Window[T]) Average() T {
	if w.count == 0 {
		return 0
	}
	return T(w.sum / w.count)
}

// Newest returns the most recently folded sample, zero when empty.
func (w *Window[T]) Newest() T {
	if w.count == 0 {
		return 0
	}
	i := w.index - 1
	if i < 0 {
		i = w.count - 1
	}
	return w.buf[i]
}

// Oldest returns the sample that will leave the window next, zero when
// empty.
func (w *Window[T]) Oldest() T {
	if w.count == 0 {
		return 0
	}
	if w.count < len(w.buf) {
		return w.buf[0]
	}
	return w.buf[w.index]
}
