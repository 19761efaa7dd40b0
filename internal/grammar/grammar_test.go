package grammar_test

import (
	"errors"
	"testing"

	"github.com/ghettovoice/uribuilder/internal/grammar"
)

func TestIsURIReference(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"http://example.com", true},
		{"http://user:pw@example.com:8080/a/b?c=d&e#f", true},
		{"http://[::1]:8080/", true},
		{"//example.com/path", true},
		{"/a;x=1/b", true},
		{"a/b", true},
		{"mailto:a@example.com", true},
		{"urn:isbn:096139210x", true},
		{"?q=1", true},
		{"#frag", true},
		{"/list?k[]=1&k[]=2", true},
		{"http://example.com/%41%42", true},
		{"http://exa mple.com", false},
		{"/a b", false},
		{"/a%zz", false},
		{"/a{b}", false},
		{"http://example.com:80a/", false},
		{"1http://example.com", false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsURIReference(c.in); got != c.want {
				t.Errorf("IsURIReference(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestParseURIReference_Error(t *testing.T) {
	t.Parallel()

	_, err := grammar.ParseURIReference("")
	if !errors.Is(err, grammar.ErrEmptyInput) {
		t.Errorf("ParseURIReference(\"\") error = %v, want %v", err, grammar.ErrEmptyInput)
	}

	_, err = grammar.ParseURIReference("/a b")
	if !errors.Is(err, grammar.ErrMalformedInput) {
		t.Errorf("ParseURIReference(\"/a b\") error = %v, want %v", err, grammar.ErrMalformedInput)
	}
}

func TestIsHost(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]bool{
		"example.com":  true,
		"127.0.0.1":    true,
		"[::1]":        true,
		"[fe80::1%25]": true,
		"exa mple":     false,
		"a/b":          false,
	} {
		if got := grammar.IsHost(in); got != want {
			t.Errorf("IsHost(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsScheme(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]bool{
		"http":     true,
		"coap+tcp": true,
		"x-1.2":    true,
		"1http":    false,
		"ht tp":    false,
		"":         false,
	} {
		if got := grammar.IsScheme(in); got != want {
			t.Errorf("IsScheme(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsDNSName(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]bool{
		"example.com":  true,
		"example.com.": true,
		"localhost":    true,
		"":             false,
		"a..b":         false,
	} {
		if got := grammar.IsDNSName(in); got != want {
			t.Errorf("IsDNSName(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCharClasses(t *testing.T) {
	t.Parallel()

	for _, c := range []byte("azAZ09-._~") {
		if !grammar.IsUnreserved(c) {
			t.Errorf("IsUnreserved(%q) = false, want true", c)
		}
	}
	for _, c := range []byte("!$&'()*+,;=") {
		if !grammar.IsSubDelim(c) {
			t.Errorf("IsSubDelim(%q) = false, want true", c)
		}
	}
	for _, c := range []byte(":/?#[]@") {
		if !grammar.IsGenDelim(c) || grammar.IsPChar(c) && c != ':' && c != '@' {
			t.Errorf("gen-delim %q misclassified", c)
		}
	}
}
