package link

import (
	"log/slog"
	"net/url"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uribuilder/internal/log"
	"github.com/ghettovoice/uribuilder/uri"
)

// Builder builds links. The zero value is not usable, use [NewBuilder].
// Like [uri.Builder] it records the first invalid argument and returns it from
// [Builder.Err] and the build methods.
type Builder struct {
	ub     *uri.Builder
	base   *url.URL
	params Params
	err    error
	log    *slog.Logger
}

// BuilderOption configures a [Builder].
type BuilderOption func(b *Builder)

// WithLogger sets the logger used to report built links.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBuilder returns an empty link builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{params: make(Params), log: log.Noop}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromLink returns a builder initialized from l.
func FromLink(l *Link, opts ...BuilderOption) *Builder {
	return NewBuilder(opts...).Link(l)
}

// Err returns the first error recorded by a builder method.
func (b *Builder) Err() error { return b.err }

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Link replaces the URI and parameters with those of l.
func (b *Builder) Link(l *Link) *Builder {
	if b.err != nil {
		return b
	}
	if l == nil {
		return b.fail(errtrace.Wrap(newInvalidArgErr("nil link")))
	}
	ub, err := l.URIBuilder()
	if err != nil {
		return b.fail(errtrace.Wrap(err))
	}
	b.ub = ub
	b.params = make(Params, len(l.params))
	for k, v := range l.params {
		b.params[k] = v
	}
	return b
}

// LinkString parses s with [Parse] and calls [Builder.Link].
func (b *Builder) LinkString(s string) *Builder {
	if b.err != nil {
		return b
	}
	l, err := Parse(s)
	if err != nil {
		return b.fail(errtrace.Wrap(err))
	}
	return b.Link(l)
}

// URI sets the link target from a URI template.
func (b *Builder) URI(tmpl string) *Builder {
	if b.err != nil {
		return b
	}
	ub, err := uri.FromTemplate(tmpl)
	if err != nil {
		return b.fail(errtrace.Wrap(err))
	}
	b.ub = ub
	return b
}

// URIBuilder sets the link target from a copy of ub.
func (b *Builder) URIBuilder(ub *uri.Builder) *Builder {
	if b.err != nil {
		return b
	}
	if ub == nil {
		return b.fail(errtrace.Wrap(newInvalidArgErr("nil URI builder")))
	}
	b.ub = ub.Clone()
	return b
}

// BaseURI sets the URI that relative targets are resolved against.
func (b *Builder) BaseURI(s string) *Builder {
	if b.err != nil {
		return b
	}
	u, err := url.Parse(s)
	if err != nil {
		return b.fail(errtrace.Wrap(newInvalidArgErr(err)))
	}
	b.base = u
	return b
}

// Rel adds a relation type. Repeated calls accumulate space separated values.
func (b *Builder) Rel(rel string) *Builder {
	if b.err != nil {
		return b
	}
	if rel == "" {
		return b.fail(errtrace.Wrap(newInvalidArgErr("empty rel")))
	}
	b.params.Add(ParamRel, rel)
	return b
}

// Title sets the "title" parameter.
func (b *Builder) Title(title string) *Builder { return b.Param(ParamTitle, title) }

// Type sets the "type" parameter.
func (b *Builder) Type(typ string) *Builder { return b.Param(ParamType, typ) }

// Param sets a parameter replacing its current value.
func (b *Builder) Param(name, value string) *Builder {
	if b.err != nil {
		return b
	}
	if name == "" {
		return b.fail(errtrace.Wrap(newInvalidArgErr("empty param name")))
	}
	b.params.Set(name, value)
	return b
}

// Build builds the link target with values, see [uri.Builder.Build].
// A relative target is resolved against the base URI. Without a target
// the base URI itself is used.
func (b *Builder) Build(values ...any) (*Link, error) {
	if b.err != nil {
		return nil, errtrace.Wrap(b.err)
	}

	var target string
	switch {
	case b.ub != nil:
		s, err := b.ub.Build(values...)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		target = s
	case b.base != nil:
		target = b.base.String()
	default:
		return nil, errtrace.Wrap(newInvalidArgErr("link target is not set"))
	}

	target, err := b.resolve(target)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return b.newLink(target), nil
}

// BuildRelativized builds the link target like [Builder.Build] and makes it
// relative to the given URI with [uri.Relativize].
func (b *Builder) BuildRelativized(to string, values ...any) (*Link, error) {
	if b.err != nil {
		return nil, errtrace.Wrap(b.err)
	}
	if b.ub == nil {
		return nil, errtrace.Wrap(newInvalidArgErr("link target is not set"))
	}

	target, err := b.ub.Build(values...)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if target, err = b.resolve(target); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if target, err = uri.Relativize(to, target); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return b.newLink(target), nil
}

func (b *Builder) resolve(target string) (string, error) {
	if b.base == nil {
		return target, nil
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", errtrace.Wrap(newInvalidArgErr(err))
	}
	if u.IsAbs() {
		return target, nil
	}
	return b.base.ResolveReference(u).String(), nil
}

func (b *Builder) newLink(target string) *Link {
	l := &Link{uri: target}
	if len(b.params) > 0 {
		l.params = b.params.Clone()
	}
	b.log.Debug("link built", "link", l)
	return l
}
