package uri_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/uribuilder/internal/util"
	"github.com/ghettovoice/uribuilder/uri"
)

func TestFromTemplate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		tmpl string
		want uri.Components
	}{
		{"http://example.com", uri.Components{
			Scheme: util.Ptr("http"),
			Host:   util.Ptr("example.com"),
			Port:   -1,
		}},
		{"https://[::1]:8443/x", uri.Components{
			Scheme: util.Ptr("https"),
			Host:   util.Ptr("[::1]"),
			Port:   8443,
			Path:   util.Ptr("/x"),
		}},
		{"https://[fe80::1]/x", uri.Components{
			Scheme: util.Ptr("https"),
			Host:   util.Ptr("[fe80::1]"),
			Port:   -1,
			Path:   util.Ptr("/x"),
		}},
		{"//h/p", uri.Components{
			Host: util.Ptr("h"),
			Port: -1,
			Path: util.Ptr("/p"),
		}},
		{"mailto:a@b.c", uri.Components{
			Scheme:             util.Ptr("mailto"),
			SchemeSpecificPart: util.Ptr("a@b.c"),
			Port:               -1,
		}},
		{"urn:isbn:1#frag", uri.Components{
			Scheme:             util.Ptr("urn"),
			SchemeSpecificPart: util.Ptr("isbn:1"),
			Fragment:           util.Ptr("frag"),
			Port:               -1,
		}},
		{"file:///etc/hosts", uri.Components{
			Scheme:    util.Ptr("file"),
			Authority: util.Ptr(""),
			Port:      -1,
			Path:      util.Ptr("/etc/hosts"),
		}},
		{"x/y:z", uri.Components{
			Port: -1,
			Path: util.Ptr("x/y:z"),
		}},
		{"/a b/{id}?q=x y#f g", uri.Components{
			Port:     -1,
			Path:     util.Ptr("/a%20b/{id}"),
			Query:    util.Ptr("q=x%20y"),
			Fragment: util.Ptr("f%20g"),
		}},
		{"/p?", uri.Components{
			Port: -1,
			Path: util.Ptr("/p"),
		}},
		{"http://{host}:{port}/", uri.Components{
			Scheme: util.Ptr("http"),
			Host:   util.Ptr("{host}:{port}"),
			Port:   -1,
			Path:   util.Ptr("/"),
		}},
	}
	for _, c := range cases {
		b, err := uri.FromTemplate(c.tmpl)
		if err != nil {
			t.Errorf("uri.FromTemplate(%q) error = %v, want nil", c.tmpl, err)
			continue
		}
		c.want.Encode = true
		if diff := cmp.Diff(b.Components(), c.want); diff != "" {
			t.Errorf("uri.FromTemplate(%q).Components() = %+v, want %+v\ndiff (-got +want):\n%v",
				c.tmpl, b.Components(), c.want, diff,
			)
		}
	}
}

func TestFromTemplate_Malformed(t *testing.T) {
	t.Parallel()

	tmpls := []string{
		"/a/{b",
		"/a/b}",
		"{a}:b/c",
		"http://h:99999999999999999999/",
	}
	for _, tmpl := range tmpls {
		if _, err := uri.FromTemplate(tmpl); !errors.Is(err, uri.ErrMalformedURI) {
			t.Errorf("uri.FromTemplate(%q) error = %v, want %v", tmpl, err, uri.ErrMalformedURI)
		}
	}
}

func TestBuilder_URITemplate_Merge(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base, tmpl string
		want       string
	}{
		{"http://h/p?q=1#f", "/other", "http://h/other?q=1#f"},
		{"http://h/p?q=1#f", "?x=1", "http://h/p?x=1#f"},
		{"http://h/p?q=1#f", "#g", "http://h/p?q=1#g"},
		{"http://h/p", "https://g", "https://g/p"},
		{"http://h/p?q=1", "mailto:a@b.c", "mailto:a@b.c"},
	}
	for _, c := range cases {
		got, err := mustTemplate(t, c.base).URITemplate(c.tmpl).Build()
		if err != nil {
			t.Errorf("uri.FromTemplate(%q).URITemplate(%q).Build() error = %v, want nil", c.base, c.tmpl, err)
			continue
		}
		if got != c.want {
			t.Errorf("uri.FromTemplate(%q).URITemplate(%q).Build() = %q, want %q", c.base, c.tmpl, got, c.want)
		}
	}
}

func TestBuilder_URI(t *testing.T) {
	t.Parallel()

	mustParse := func(s string) *url.URL {
		t.Helper()
		u, err := url.Parse(s)
		if err != nil {
			t.Fatalf("url.Parse(%q) error = %v, want nil", s, err)
		}
		return u
	}

	cases := []struct {
		base *uri.Builder
		u    string
		want string
	}{
		{uri.NewBuilder(), "https://u:p@h:8/a%20b?x=1#f", "https://u:p@h:8/a%20b?x=1#f"},
		{uri.NewBuilder(), "mailto:x@y", "mailto:x@y"},
		{uri.NewBuilder(), "http://[::1]:80/", "http://[::1]:80/"},
		{mustTemplate(t, "http://h/p?q=1"), "#frag", "http://h/p?q=1#frag"},
		{mustTemplate(t, "http://h/p?q=1"), "/other", "http://h/other?q=1"},
		{mustTemplate(t, "http://h:81/p"), "//g/x", "http://g:81/x"},
	}
	for _, c := range cases {
		got, err := c.base.URI(mustParse(c.u)).Build()
		if err != nil {
			t.Errorf("b.URI(%q).Build() error = %v, want nil", c.u, err)
			continue
		}
		if got != c.want {
			t.Errorf("b.URI(%q).Build() = %q, want %q", c.u, got, c.want)
		}
	}

	b, err := uri.FromURI(mustParse("http://h/p"))
	if err != nil {
		t.Fatalf("uri.FromURI() error = %v, want nil", err)
	}
	if got := b.String(); got != "http://h/p" {
		t.Errorf("uri.FromURI().String() = %q, want %q", got, "http://h/p")
	}
	if _, err := uri.FromURI(nil); !errors.Is(err, uri.ErrInvalidArgument) {
		t.Errorf("uri.FromURI(nil) error = %v, want %v", err, uri.ErrInvalidArgument)
	}
}

func TestBuilder_SchemeSpecificPart(t *testing.T) {
	t.Parallel()

	cases := []struct {
		b    *uri.Builder
		ssp  string
		want string
	}{
		{uri.NewBuilder().Scheme("mailto"), "a@b.c", "mailto:a@b.c"},
		{uri.NewBuilder().Scheme("http"), "//h:81/p?q=1", "http://h:81/p?q=1"},
		{uri.NewBuilder().Scheme("http").Fragment("f"), "//u@h/p", "http://u@h/p#f"},
		{mustTemplate(t, "http://old:1/x?y"), "//h/p", "http://h/p"},
	}
	for _, c := range cases {
		got, err := c.b.SchemeSpecificPart(c.ssp).Build()
		if err != nil {
			t.Errorf("b.SchemeSpecificPart(%q).Build() error = %v, want nil", c.ssp, err)
			continue
		}
		if got != c.want {
			t.Errorf("b.SchemeSpecificPart(%q).Build() = %q, want %q", c.ssp, got, c.want)
		}
	}

	if err := uri.NewBuilder().SchemeSpecificPart("a b").Err(); !errors.Is(err, uri.ErrMalformedURI) {
		t.Errorf("b.SchemeSpecificPart(\"a b\") error = %v, want %v", err, uri.ErrMalformedURI)
	}
}
