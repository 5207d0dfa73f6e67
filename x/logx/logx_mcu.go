//go:build rp2040 || rp2350

package logx

// Tiny formatter subset so MCU builds stay clear of fmt. Supports the verbs
// the engine actually logs with: %s %d %x %X %t %v and %%, plus zero-padded
// width for the integer verbs (e.g. %02x). Unknown verbs are emitted
// literally to aid debugging.

func sprintf(format string, a ...any) string {
	var b []byte
	ai := 0
	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' {
			b = append(b, c)
			i++
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			b = append(b, '%')
			i++
			continue
		}
		zero := false
		width := 0
		if i < len(format) && format[i] == '0' {
			zero = true
			i++
		}
		for i < len(format) && '0' <= format[i] && format[i] <= '9' {
			width = width*10 + int(format[i]-'0')
			i++
		}
		if i >= len(format) || ai >= len(a) {
			break
		}
		verb := format[i]
		arg := a[ai]
		ai++
		i++
		switch verb {
		case 's':
			if s, ok := arg.(string); ok {
				b = append(b, s...)
			} else {
				b = appendAny(b, arg)
			}
		case 'd', 'v':
			b = appendAny(b, arg)
		case 'x', 'X':
			b = appendHex(b, toU64(arg), width, zero, verb == 'X')
		case 't':
			if v, ok := arg.(bool); ok && v {
				b = append(b, "true"...)
			} else {
				b = append(b, "false"...)
			}
		default:
			b = append(b, '%', verb)
		}
	}
	return string(b)
}

func sprint(a ...any) string {
	var b []byte
	for i, v := range a {
		if i > 0 {
			b = append(b, ' ')
		}
		b = appendAny(b, v)
	}
	return string(b)
}

func appendAny(b []byte, v any) []byte {
	switch x := v.(type) {
	case string:
		return append(b, x...)
	case bool:
		if x {
			return append(b, "true"...)
		}
		return append(b, "false"...)
	case int:
		return appendInt(b, int64(x))
	case int8:
		return appendInt(b, int64(x))
	case int16:
		return appendInt(b, int64(x))
	case int32:
		return appendInt(b, int64(x))
	case int64:
		return appendInt(b, x)
	case uint, uint8, uint16, uint32, uint64:
		return appendUint(b, toU64(x))
	case error:
		return append(b, x.Error()...)
	default:
		return append(b, "<unk>"...)
	}
}

func appendInt(b []byte, v int64) []byte {
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	return appendUint(b, uint64(v))
}

func appendUint(b []byte, v uint64) []byte {
	var tmp [20]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
		if v == 0 {
			break
		}
	}
	return append(b, tmp[i:]...)
}

func appendHex(b []byte, v uint64, width int, zero, upper bool) []byte {
	digits := "0123456789abcdef"
	if upper {
		digits = "0123456789ABCDEF"
	}
	var tmp [16]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = digits[v&0xF]
		v >>= 4
		if v == 0 {
			break
		}
	}
	pad := width - (len(tmp) - i)
	fill := byte(' ')
	if zero {
		fill = '0'
	}
	for ; pad > 0; pad-- {
		b = append(b, fill)
	}
	return append(b, tmp[i:]...)
}

func toU64(v any) uint64 {
	switch t := v.(type) {
	case uint:
		return uint64(t)
	case uint8:
		return uint64(t)
	case uint16:
		return uint64(t)
	case uint32:
		return uint64(t)
	case uint64:
		return t
	case int:
		return uint64(t)
	case int8:
		return uint64(uint8(t))
	case int16:
		return uint64(uint16(t))
	case int32:
		return uint64(uint32(t))
	case int64:
		return uint64(t)
	default:
		return 0
	}
}
