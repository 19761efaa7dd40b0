package uri_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/uribuilder/uri"
)

func TestPositional(t *testing.T) {
	t.Parallel()

	pv := uri.Positional(1, "two")
	lookups := []struct {
		name string
		want any
		ok   bool
	}{
		{"a", 1, true},
		{"b", "two", true},
		{"a", 1, true},
		{"c", nil, false},
	}
	for _, l := range lookups {
		got, ok := pv.Lookup(l.name)
		if got != l.want || ok != l.ok {
			t.Errorf("pv.Lookup(%q) = %v, %v, want %v, %v", l.name, got, ok, l.want, l.ok)
		}
	}

	want := uri.Values{"a": 1, "b": "two"}
	if diff := cmp.Diff(pv.Bound(), want); diff != "" {
		t.Errorf("pv.Bound() = %v, want %v\ndiff (-got +want):\n%v", pv.Bound(), want, diff)
	}
}

func TestValues_Lookup(t *testing.T) {
	t.Parallel()

	vs := uri.Values{"a": 1}
	if v, ok := vs.Lookup("a"); v != 1 || !ok {
		t.Errorf("vs.Lookup(\"a\") = %v, %v, want 1, true", v, ok)
	}
	if v, ok := vs.Lookup("b"); v != nil || ok {
		t.Errorf("vs.Lookup(\"b\") = %v, %v, want nil, false", v, ok)
	}
}
