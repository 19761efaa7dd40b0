package template

import "strings"

const (
	hiddenOpen  = '\x06'
	hiddenClose = '\x07'
)

// HideBraces replaces every brace that is nested inside a placeholder with a
// control character, so only the outermost braces stay visible.
// The result has the same length as s and s itself is returned when nothing
// is nested.
func HideBraces(s string) string {
	var b []byte
	open := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if open != 0 {
				b = hideAt(b, s, i, hiddenOpen)
			}
			open++
		case '}':
			open--
			if open != 0 {
				b = hideAt(b, s, i, hiddenClose)
			}
		}
	}
	if b == nil {
		return s
	}
	return string(b)
}

func hideAt(b []byte, s string, i int, c byte) []byte {
	if b == nil {
		b = []byte(s)
	}
	b[i] = c
	return b
}

// RestoreBraces reverts [HideBraces].
func RestoreBraces(s string) string {
	if strings.IndexByte(s, hiddenOpen) < 0 && strings.IndexByte(s, hiddenClose) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case hiddenOpen:
			return '{'
		case hiddenClose:
			return '}'
		}
		return r
	}, s)
}

// CheckBraces reports the first unmatched brace in s.
func CheckBraces(s string) error {
	depth, last := 0, -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if depth == 0 {
				last = i
			}
			depth++
		case '}':
			if depth == 0 {
				return newUnbalancedErr("unmatched '}' at %d in %q", i, s)
			}
			depth--
		}
	}
	if depth != 0 {
		return newUnbalancedErr("unterminated '{' at %d in %q", last, s)
	}
	return nil
}
