// Package grammar implements RFC 3986 character classes, per-component
// percent-encoding tables and the URI-reference syntax check.
package grammar

//go:generate errtrace -w .

import (
	"github.com/ghettovoice/abnf"
	"github.com/miekg/dns"

	"github.com/ghettovoice/uribuilder/internal/errorutil"
)

func init() {
	abnf.EnableNodeCache(10 * 1024)
}

const (
	ErrEmptyInput     errorutil.Error = "empty input"
	ErrMalformedInput errorutil.Error = "malformed input"
	ErrInvalidEscape  errorutil.Error = "invalid escape sequence"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

func newInvalidEscapeErr(args ...any) error {
	return errorutil.NewWrapperError(ErrInvalidEscape, args...) //errtrace:skip
}

// IsAlpha checks ALPHA rule.
func IsAlpha(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

// IsDigit checks DIGIT rule.
func IsDigit(c byte) bool { return '0' <= c && c <= '9' }

// IsHexDigit checks HEXDIG rule (both letter cases).
func IsHexDigit(c byte) bool { return ishex(c) }

// IsUnreserved checks unreserved rule: ALPHA / DIGIT / "-" / "." / "_" / "~".
func IsUnreserved(c byte) bool {
	switch c {
	case '-', '.', '_', '~':
		return true
	}
	return IsAlpha(c) || IsDigit(c)
}

// IsSubDelim checks sub-delims rule.
func IsSubDelim(c byte) bool {
	switch c {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return true
	}
	return false
}

// IsGenDelim checks gen-delims rule.
func IsGenDelim(c byte) bool {
	switch c {
	case ':', '/', '?', '#', '[', ']', '@':
		return true
	}
	return false
}

// IsPChar checks pchar rule without the pct-encoded alternative.
func IsPChar(c byte) bool {
	return IsUnreserved(c) || IsSubDelim(c) || c == ':' || c == '@'
}

// IsDNSName reports whether s is a syntactically valid DNS domain name.
// A trailing dot is allowed.
func IsDNSName(s string) bool {
	if s == "" {
		return false
	}
	_, ok := dns.IsDomainName(s)
	return ok
}
