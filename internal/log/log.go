// Package log provides logging utilities.
package log

//go:generate errtrace -w .

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"braces.dev/errtrace"
	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/uribuilder/internal/errorutil"
)

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(u *url.URL) slog.Value {
		if u == nil {
			return slog.StringValue("<nil>")
		}
		return slog.StringValue(u.Redacted())
	}),
	slogformatter.FormatByType(func(vs map[string]any) slog.Value {
		attrs := make([]slog.Attr, 0, len(vs))
		for k, v := range vs {
			attrs = append(attrs, slog.Any(k, v))
		}
		return slog.GroupValue(attrs...)
	}),
)

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

// Format names a handler flavour accepted by [New].
type Format string

const (
	FormatConsole Format = "console"
	FormatDev     Format = "dev"
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatNone    Format = "none"
)

// ParseLevel parses a level name such as "debug" or "warn".
// Empty string gives [slog.LevelInfo].
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, errtrace.Wrap(errorutil.NewInvalidArgumentError("log level %q", s))
	}
	return lvl, nil
}

// New creates a logger writing to w in the given format.
func New(format Format, level slog.Level, w io.Writer) (*slog.Logger, error) {
	var h slog.Handler
	switch format {
	case FormatConsole, "":
		h = console.NewHandler(w, &console.HandlerOptions{
			Level:      level,
			TimeFormat: time.RFC3339Nano,
		})
	case FormatDev:
		h = devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     level,
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		})
	case FormatText:
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	case FormatJSON:
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case FormatNone:
		return Noop, nil
	default:
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("log format %q", format))
	}
	return slog.New(newHandler(h)), nil
}

type fmtValue struct {
	v        any
	goSyntax bool
}

func (v fmtValue) LogValue() slog.Value {
	if v.goSyntax {
		return slog.StringValue(fmt.Sprintf("%#v", v.v))
	}
	return slog.StringValue(fmt.Sprintf("%+v", v.v))
}

// FmtValue returns a value logger that formats values using '%+v' or '%#v' syntax.
func FmtValue(v any, goSyntax bool) slog.LogValuer { return fmtValue{v, goSyntax} }
