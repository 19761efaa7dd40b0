package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghettovoice/uribuilder/internal/errorutil"
	"github.com/ghettovoice/uribuilder/link"
	"github.com/ghettovoice/uribuilder/uri"
)

func TestBuildCommand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
		want string
	}{
		{"positional", []string{"build", "http://{host}/users/{id}", "example.com", "42"}, "http://example.com/users/42"},
		{"named", []string{"build", "/users/{id}/{tab}", "-v", "tab=info", "-v", "id=a b"}, "/users/a%20b/info"},
		{"slash encoded", []string{"build", "/files/{p}", "a/b"}, "/files/a%2Fb"},
		{"slash kept", []string{"--encode-slash=false", "build", "/files/{p}", "a/b"}, "/files/a/b"},
		{"from encoded", []string{"build", "/files/{p}", "--from-encoded", "a%20b/c"}, "/files/a%20b/c"},
		{"segments", []string{"build", "/api", "-s", "v1", "-s", "a b"}, "/api/v1/a%20b"},
		{"matrix", []string{"build", "/r", "-m", "m=1", "-m", "m=2", "-m", "n=x"}, "/r;m=1;m=2;n=x"},
		{"query", []string{"build", "/search", "-q", "q=a b"}, "/search?q=a+b"},
		{"fragment", []string{"build", "/doc", "-f", "sec 1"}, "/doc#sec%201"},
		{"template", []string{"build", "/users/{id}", "--template"}, "/users/{id}"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			out, _, err := execute(t, c.args...)
			require.NoError(t, err)
			assert.Equal(t, c.want+"\n", out)
		})
	}
}

func TestBuildCommand_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
		want error
	}{
		{"missing value", []string{"build", "/{a}/{b}", "1"}, uri.ErrMissingTemplateVar},
		{"malformed template", []string{"build", "/a/{b"}, uri.ErrMalformedURI},
		{"exclusive values", []string{"build", "/{a}", "1", "-v", "a=2"}, errorutil.ErrInvalidArgument},
		{"bad pair", []string{"build", "/r", "-q", "k"}, errorutil.ErrInvalidArgument},
		{"bad mode", []string{"--query-param-mode", "none", "build", "/r"}, errorutil.ErrInvalidArgument},
		{"strict host", []string{"--strict-host", "build", "http://" + strings.Repeat("a", 64) + ".com/"}, errorutil.ErrInvalidArgument},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, c.args...)
			require.ErrorIs(t, err, c.want)
		})
	}

	out, _, err := execute(t, "--strict-host", "build", "http://127.0.0.1:8080/{p}", "x")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/x\n", out)
}

func TestTemplateCommand(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "template", "http://{host}/u/{id}", "-v", "host=example.com")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/u/{id}\n", out)

	out, _, err = execute(t, "template", "/{a}/{b}", "--from-encoded", "-v", "a=x%20y")
	require.NoError(t, err)
	assert.Equal(t, "/x%20y/{b}\n", out)
}

func TestVarsCommand(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "vars", "/u/{id:[0-9]+}/{name}/{id}")
	require.NoError(t, err)
	assert.Equal(t, "id:[0-9]+\nname\nid\n", out)

	out, _, err = execute(t, "vars", "--distinct", "/u/{id}/{name}?q={id}")
	require.NoError(t, err)
	assert.Equal(t, "id\nname\n", out)

	out, _, err = execute(t, "vars", "/u/{id:[0-9]+}", "--check", "id=12")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	_, _, err = execute(t, "vars", "/u/{id:[0-9]+}", "--check", "id=x")
	require.ErrorIs(t, err, uri.ErrInvalidArgument)
}

func TestEncodeCommand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"encode", "/a b/{id}"}, "/a%20b/{id}"},
		{[]string{"encode", "-C", "segment", "a/b"}, "a%2Fb"},
		{[]string{"encode", "-C", "query-param", "--mode", "as-is", "a b%2B"}, "a+b%252B"},
		{[]string{"encode", "-C", "query-param", "--mode", "save-encodings", "a b%2B"}, "a+b%2B"},
		{[]string{"encode", "-C", "matrix", "a;b=c"}, "a%3Bb%3Dc"},
		{[]string{"encode", "-C", "non-codes", "%41%4%"}, "%41%254%25"},
	}
	for _, c := range cases {
		out, _, err := execute(t, c.args...)
		require.NoError(t, err, "args %q", c.args)
		assert.Equal(t, c.want+"\n", out, "args %q", c.args)
	}

	_, _, err := execute(t, "encode", "-C", "host", "x")
	require.ErrorIs(t, err, errorutil.ErrInvalidArgument)
	_, _, err = execute(t, "encode", "-C", "fragment", "--mode", "as-is", "x")
	require.ErrorIs(t, err, errorutil.ErrInvalidArgument)
}

func TestDecodeCommand(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "decode", "--plus", "a+b%20c")
	require.NoError(t, err)
	assert.Equal(t, "a b c\n", out)

	out, _, err = execute(t, "decode", "a+b%20c")
	require.NoError(t, err)
	assert.Equal(t, "a+b c\n", out)

	_, _, err = execute(t, "decode", "%zz")
	require.Error(t, err)
}

func TestRelativizeCommand(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "relativize", "http://h/a/b", "http://h/a/c/1")
	require.NoError(t, err)
	assert.Equal(t, "../c/1\n", out)

	_, _, err = execute(t, "relativize", "http://h/a")
	require.Error(t, err)
}

func TestLinkCommands(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "link", "build", "http://h/a/c/{id}", "1", "-r", "item", "--relative-to", "http://h/a/b")
	require.NoError(t, err)
	assert.Equal(t, "<../c/1>; rel=\"item\"\n", out)

	out, _, err = execute(t, "link", "build", "/next", "-b", "http://h/list/", "-r", "next", "-t", "Next page", "-p", "hreflang=en")
	require.NoError(t, err)
	assert.Equal(t, "<http://h/next>; rel=\"next\"; hreflang=\"en\"; title=\"Next page\"\n", out)

	_, _, err = execute(t, "link", "build", "/x", "-r", "")
	require.ErrorIs(t, err, link.ErrInvalidArgument)

	out, _, err = execute(t, "link", "parse", `<http://x/1>; rel="prev", <http://x/3>; rel=next; title="a, b"`)
	require.NoError(t, err)
	assert.Equal(t, "<http://x/1>; rel=\"prev\"\n<http://x/3>; rel=\"next\"; title=\"a, b\"\n", out)

	_, _, err = execute(t, "link", "parse", "rel=next")
	require.ErrorIs(t, err, link.ErrMalformedLink)
}
