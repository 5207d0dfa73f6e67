//go:build !(rp2040 || rp2350)

package logx

import "fmt"

func sprintf(format string, a ...any) string { return fmt.Sprintf(format, a...) }
func sprint(a ...any) string                 { return fmt.Sprint(a...) }
