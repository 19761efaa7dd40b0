package uri_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/uribuilder/uri"
)

func TestEncoders(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"EncodePath", uri.EncodePath, "/a b/{id}/c%2F%", "/a%20b/{id}/c%2F%25"},
		{"EncodePath", uri.EncodePath, "/x/{id:[0-9]{2}}?", "/x/{id:[0-9]{2}}%3F"},
		{"EncodePathSegment", uri.EncodePathSegment, "a/b{c/d}", "a%2Fb{c/d}"},
		{"EncodeMatrixParam", uri.EncodeMatrixParam, "a;b=c", "a%3Bb%3Dc"},
		{"EncodeQueryParam", uri.EncodeQueryParam, "a b{x y}", "a+b{x y}"},
		{"EncodeQueryString", uri.EncodeQueryString, "a=1&b=x y", "a=1&b=x%20y"},
		{"EncodeFragment", uri.EncodeFragment, "sec 1/{x}", "sec%201/{x}"},
		{"EncodePathAsIs", uri.EncodePathAsIs, "a/b%20{x}", "a/b%2520%7Bx%7D"},
		{"EncodePathAsIs", uri.EncodePathAsIs, "ü", "%C3%BC"},
		{"EncodePathSaveEncodings", uri.EncodePathSaveEncodings, "a/b%20%", "a/b%20%25"},
		{"EncodePathSegmentAsIs", uri.EncodePathSegmentAsIs, "a/b%20", "a%2Fb%2520"},
		{"EncodePathSegmentSaveEncodings", uri.EncodePathSegmentSaveEncodings, "a/b%20", "a%2Fb%20"},
		{"EncodeQueryParamAsIs", uri.EncodeQueryParamAsIs, "a b%2B", "a+b%252B"},
		{"EncodeQueryParamSaveEncodings", uri.EncodeQueryParamSaveEncodings, "a b%2B", "a+b%2B"},
		{"EncodeNonCodes", uri.EncodeNonCodes, "%41%4%", "%41%254%25"},
	}
	for _, c := range cases {
		if got := c.fn(c.in); got != c.want {
			t.Errorf("uri.%s(%q) = %q, want %q", c.name, c.in, got, c.want)
		}
	}
}

func TestEncoders_SaveEncodingsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"a b", "100%", "%41", "ü/x", "a%zz", "{x}", "?&=#"}
	pairs := []struct {
		name         string
		asIs, saveEn func(string) string
	}{
		{"path", uri.EncodePathAsIs, uri.EncodePathSaveEncodings},
		{"path segment", uri.EncodePathSegmentAsIs, uri.EncodePathSegmentSaveEncodings},
	}
	for _, p := range pairs {
		for _, in := range inputs {
			enc := p.asIs(in)
			if got := p.saveEn(enc); got != enc {
				t.Errorf("%s: save encodings of %q = %q, want %q", p.name, enc, got, enc)
			}
		}
	}
}

func TestEncodeQueryParam_Plus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"EncodeQueryParamAsIs", uri.EncodeQueryParamAsIs, "a b", "a+b"},
		{"EncodeQueryParamAsIs", uri.EncodeQueryParamAsIs, "a+b", "a%2Bb"},
		{"EncodeQueryParamSaveEncodings", uri.EncodeQueryParamSaveEncodings, "a+b", "a%2Bb"},
		{"EncodeQueryParamSaveEncodings", uri.EncodeQueryParamSaveEncodings, "a%2Bb", "a%2Bb"},
	}
	for _, c := range cases {
		if got := c.fn(c.in); got != c.want {
			t.Errorf("uri.%s(%q) = %q, want %q", c.name, c.in, got, c.want)
		}
	}
}

func TestDecodeComponent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		plus    bool
		want    string
		wantErr bool
	}{
		{"a+b%20c", true, "a b c", false},
		{"a+b%20c", false, "a+b c", false},
		{"%C3%BC", false, "ü", false},
		{"%zz", false, "", true},
		{"%4", false, "", true},
	}
	for _, c := range cases {
		got, err := uri.DecodeComponent(c.in, c.plus)
		if c.wantErr {
			if !errors.Is(err, uri.ErrMalformedURI) {
				t.Errorf("uri.DecodeComponent(%q, %v) error = %v, want %v", c.in, c.plus, err, uri.ErrMalformedURI)
			}
			continue
		}
		if err != nil {
			t.Errorf("uri.DecodeComponent(%q, %v) error = %v, want nil", c.in, c.plus, err)
			continue
		}
		if got != c.want {
			t.Errorf("uri.DecodeComponent(%q, %v) = %q, want %q", c.in, c.plus, got, c.want)
		}
	}
}

func TestTemplateVars(t *testing.T) {
	t.Parallel()

	got := uri.TemplateVars("/{a}/{ b : [0-9]{2} }/x")
	want := []uri.TemplateVar{
		{Name: "a", Raw: "{a}"},
		{Name: "b", Constraint: "[0-9]{2}", Raw: "{ b : [0-9]{2} }"},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("uri.TemplateVars() = %+v, want %+v\ndiff (-got +want):\n%v", got, want, diff)
	}
	if got := uri.TemplateVars("/plain"); got != nil {
		t.Errorf("uri.TemplateVars(\"/plain\") = %+v, want nil", got)
	}
}
