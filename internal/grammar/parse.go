package grammar

import (
	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"
)

// ParseURIReference parses s as RFC 3986 URI-reference.
func ParseURIReference[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(s, uriReference))
}

// ParseHost parses s as RFC 3986 host.
func ParseHost[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(s, host))
}

// ParseScheme parses s as RFC 3986 scheme.
func ParseScheme[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(s, scheme))
}

func parse[T ~string | ~[]byte](s T, rule abnf.Operator) (*abnf.Node, error) {
	if len(s) == 0 {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := rule([]byte(s), 0, ns); err != nil {
		return nil, errtrace.Wrap(newMalformedInputErr(err))
	}

	n := ns.Best()
	if nl, il := n.Len(), len(s); nl < il {
		return nil, errtrace.Wrap(newMalformedInputErr("node length %d < input length %d", nl, il))
	}
	return n, nil
}

// IsURIReference reports whether s is a valid RFC 3986 URI-reference.
// The empty string is a valid same-document reference.
func IsURIReference[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return true
	}
	_, err := ParseURIReference(s)
	return err == nil
}

// IsHost reports whether s is a valid RFC 3986 host.
func IsHost[T ~string | ~[]byte](s T) bool {
	_, err := ParseHost(s)
	return err == nil
}

// IsScheme reports whether s is a valid RFC 3986 scheme.
func IsScheme[T ~string | ~[]byte](s T) bool {
	_, err := ParseScheme(s)
	return err == nil
}
