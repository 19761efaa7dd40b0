package grammar

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uribuilder/internal/util"
)

// Encode replaces every character of s that the table t does not allow.
// Multi-byte characters are percent-encoded byte by byte from UTF-8.
// When encodePercent is false, "%" is copied verbatim.
func Encode(s string, t *Table, encodePercent bool) string {
	i := 0
	for ; i < len(s); i++ {
		if s[i] == '%' && !encodePercent {
			continue
		}
		if _, ok := t.Replacement(s[i]); ok {
			break
		}
	}
	if i == len(s) {
		return s
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.Grow(len(s) + 2*(len(s)-i))
	sb.WriteString(s[:i])
	for ; i < len(s); i++ {
		c := s[i]
		if c == '%' && !encodePercent {
			sb.WriteByte(c)
			continue
		}
		if r, ok := t.Replacement(c); ok {
			sb.WriteString(r)
		} else {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// EncodeNonCodes escapes every "%" that does not start a "% HEXDIG HEXDIG" triplet.
func EncodeNonCodes(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && !isPctTriplet(s, i) {
			sb.WriteString("%25")
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// IsEncoded reports whether every "%" in s starts a valid triplet.
func IsEncoded(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && !isPctTriplet(s, i) {
			return false
		}
	}
	return true
}

func isPctTriplet(s string, i int) bool {
	return i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2])
}

// Decode converts every "% HEXDIG HEXDIG" triplet into the byte it encodes.
// If plus is true, "+" is decoded as a space.
// A doubled "%%" decodes to a single "%".
func Decode(s string, plus bool) (string, error) {
	i := strings.IndexByte(s, '%')
	if !plus && i < 0 {
		return s, nil
	}
	if plus && i < 0 && !strings.Contains(s, "+") {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+' && plus:
			b.WriteByte(' ')
		case c == '%':
			if i+1 == len(s) {
				return "", errtrace.Wrap(newInvalidEscapeErr("unterminated escape sequence at %d", i))
			}
			if s[i+1] == '%' {
				b.WriteByte('%')
				i++
				continue
			}
			if i+2 >= len(s) {
				return "", errtrace.Wrap(newInvalidEscapeErr("incomplete escape sequence %q at %d", s[i:], i))
			}
			if !ishex(s[i+1]) || !ishex(s[i+2]) {
				return "", errtrace.Wrap(newInvalidEscapeErr("%q at %d", s[i:i+3], i))
			}
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

const upperhex = "0123456789ABCDEF"

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
