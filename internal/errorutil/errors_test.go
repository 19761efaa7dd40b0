package errorutil_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ghettovoice/uribuilder/internal/errorutil"
)

const errTest errorutil.Error = "test error"

func TestNewWrapperError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		args    []any
		wantMsg string
		wantIs  []error
	}{
		{"no args", nil, "test error", []error{errTest}},
		{"message", []any{"bad %q"}, `test error: bad %q`, []error{errTest}},
		{"format", []any{"bad %q", "x"}, `test error: bad "x"`, []error{errTest}},
		{"error", []any{io.EOF}, "test error: EOF", []error{errTest, io.EOF}},
		{"already wrapped", []any{errorutil.NewWrapperError(errTest, "x")}, "test error: x", []error{errTest}},
		{"unsupported", []any{42}, "test error", []error{errTest}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			err := errorutil.NewWrapperError(errTest, c.args...)
			if got := err.Error(); got != c.wantMsg {
				t.Errorf("NewWrapperError(%v) = %q, want %q", c.args, got, c.wantMsg)
			}
			for _, want := range c.wantIs {
				if !errors.Is(err, want) {
					t.Errorf("errors.Is(NewWrapperError(%v), %v) = false, want true", c.args, want)
				}
			}
		})
	}
}

func TestJoinPrefix(t *testing.T) {
	t.Parallel()

	if err := errorutil.JoinPrefix("check:", nil, nil); err != nil {
		t.Errorf("JoinPrefix(\"check:\", nil, nil) = %v, want nil", err)
	}

	single := errorutil.JoinPrefix("check:", nil, io.EOF)
	if got, want := single.Error(), "check: EOF"; got != want {
		t.Errorf("JoinPrefix(\"check:\", io.EOF) = %q, want %q", got, want)
	}

	multi := errorutil.JoinPrefix("check:", io.EOF, errTest, errors.New("line 1\nline 2"))
	want := strings.Join([]string{
		"check:",
		"  - EOF",
		"  - test error",
		"  - line 1",
		"    line 2",
	}, "\n")
	if got := multi.Error(); got != want {
		t.Errorf("JoinPrefix() = %q, want %q", got, want)
	}
	for _, target := range []error{io.EOF, errTest} {
		if !errors.Is(multi, target) {
			t.Errorf("errors.Is(JoinPrefix(), %v) = false, want true", target)
		}
	}
}
