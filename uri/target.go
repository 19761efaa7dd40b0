package uri

import (
	"log/slog"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uribuilder/internal/log"
)

// Target is an immutable request target. Every modifier returns a new target
// backed by a modified copy of the builder.
type Target struct {
	b   *Builder
	log *slog.Logger
}

// TargetOption configures a [Target].
type TargetOption func(t *Target)

// WithLogger sets the logger used to report built URIs.
func WithLogger(l *slog.Logger) TargetOption {
	return func(t *Target) {
		if l != nil {
			t.log = l
		}
	}
}

// NewTarget creates a target from a URI template.
func NewTarget(tmpl string, opts ...TargetOption) (*Target, error) {
	b, err := FromTemplate(tmpl)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return TargetOf(b, opts...), nil
}

// TargetOf creates a target from a copy of b.
func TargetOf(b *Builder, opts ...TargetOption) *Target {
	t := &Target{b: b.Clone(), log: log.Noop}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Target) with(fn func(b *Builder)) *Target {
	b := t.b.Clone()
	fn(b)
	return &Target{b: b, log: t.log}
}

// URIBuilder returns a copy of the target builder.
func (t *Target) URIBuilder() *Builder { return t.b.Clone() }

// Err returns the error recorded by a modifier.
func (t *Target) Err() error { return t.b.Err() }

// URI builds the target URI. Placeholders must be resolved before.
func (t *Target) URI() (string, error) {
	s, err := t.b.Build()
	if err != nil {
		t.log.Debug("failed to build target URI", "target", t.b, "error", err)
		return "", errtrace.Wrap(err)
	}
	t.log.Debug("target URI built", "uri", s)
	return s, nil
}

// Path returns a target with p appended to the path.
func (t *Target) Path(p string) *Target {
	return t.with(func(b *Builder) { b.Path(p) })
}

// QueryParam returns a target with the query parameter appended.
func (t *Target) QueryParam(name string, values ...any) *Target {
	return t.with(func(b *Builder) { b.QueryParam(name, values...) })
}

// MatrixParam returns a target with matrix params appended.
// Without values the named param is removed.
func (t *Target) MatrixParam(name string, values ...any) *Target {
	return t.with(func(b *Builder) {
		if len(values) == 0 {
			b.ReplaceMatrixParam(name)
			return
		}
		b.MatrixParam(name, values...)
	})
}

// ResolveTemplate returns a target with the placeholder resolved.
func (t *Target) ResolveTemplate(name string, value any) *Target {
	return t.with(func(b *Builder) { b.ResolveTemplate(name, value) })
}

// ResolveTemplateSlash returns a target with the placeholder resolved
// and control over encoding "/".
func (t *Target) ResolveTemplateSlash(name string, value any, encodeSlash bool) *Target {
	return t.with(func(b *Builder) { b.ResolveTemplateSlash(name, value, encodeSlash) })
}

// ResolveTemplateFromEncoded returns a target with the placeholder resolved by an encoded value.
func (t *Target) ResolveTemplateFromEncoded(name string, value any) *Target {
	return t.with(func(b *Builder) { b.ResolveTemplateFromEncoded(name, value) })
}

// ResolveTemplates returns a target with placeholders resolved.
func (t *Target) ResolveTemplates(m map[string]any) *Target {
	return t.with(func(b *Builder) { b.ResolveTemplates(m) })
}

// ResolveTemplatesFromEncoded returns a target with placeholders resolved by encoded values.
func (t *Target) ResolveTemplatesFromEncoded(m map[string]any) *Target {
	return t.with(func(b *Builder) { b.ResolveTemplatesFromEncoded(m) })
}

func (t *Target) String() string { return t.b.String() }
