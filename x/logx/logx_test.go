package logx

import (
	"bytes"
	"testing"
)

func TestPrintfToInstalledWriter(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Printf("code=%s byte=0x%02x ok=%t", "parity", 0x5A, true)
	if got, want := buf.String(), "code=parity byte=0x5a ok=true\n"; got != want {
		t.Fatalf("Printf wrote %q, want %q", got, want)
	}

	buf.Reset()
	Print("a", 1, true)
	if got, want := buf.String(), "a 1 true\n"; got != want {
		t.Fatalf("Print wrote %q, want %q", got, want)
	}
}

func TestDiscardByDefault(t *testing.T) {
	SetOutput(nil)
	// Must not panic or block with no sink installed.
	Printf("dropped %d", 1)
	Print("dropped")
}
