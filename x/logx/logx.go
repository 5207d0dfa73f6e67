// Package logx is the diagnostics side channel for the protocol engine.
// Protocol violations are reported here and nowhere else; the engine's
// behaviour must not depend on whether anything is listening, so the
// default output discards everything until the platform bootstrap installs
// a writer (a UART console on MCU builds, a buffer in tests).
package logx

import (
	"io"
	"sync"
)

var (
	mu  sync.Mutex
	out io.Writer = discard{}
)

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// SetOutput installs the sink. nil restores the discard default.
func SetOutput(w io.Writer) {
	mu.Lock()
	if w == nil {
		w = discard{}
	}
	out = w
	mu.Unlock()
}

// Printf formats in the fmt dialect (see the per-platform formatter) and
// appends a newline.
func Printf(format string, a ...any) {
	s := sprintf(format, a...)
	mu.Lock()
	_, _ = out.Write(append([]byte(s), '\n'))
	mu.Unlock()
}

// Print writes the arguments space-separated plus a newline.
func Print(a ...any) {
	s := sprint(a...)
	mu.Lock()
	_, _ = out.Write(append([]byte(s), '\n'))
	mu.Unlock()
}
