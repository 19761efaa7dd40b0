package uri

//go:generate errtrace -w .

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uribuilder/internal/grammar"
	"github.com/ghettovoice/uribuilder/internal/ioutil"
	"github.com/ghettovoice/uribuilder/internal/template"
	"github.com/ghettovoice/uribuilder/internal/util"
)

// Builder accumulates URI components and builds URI strings from them,
// substituting {name} placeholders.
//
// The zero value is an empty builder with encoding enabled and
// [MultiPairs] query mode.
//
// Mutators return the builder itself. The first invalid argument is recorded,
// the builder stops accepting changes and the error is returned by [Builder.Err]
// and by every build method.
//
// Builder is not safe for concurrent use, use [Builder.Clone] to hand it over.
type Builder struct {
	// string pointers are replaced, never written through,
	// so clones can share them
	scheme    *string
	userInfo  *string
	host      *string
	path      *string
	query     *string
	fragment  *string
	ssp       *string
	authority *string
	port      int
	hasPort   bool
	raw       bool
	mode      QueryParamMode
	err       error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder { return &Builder{} }

// FromTemplate returns a builder initialized from a URI template,
// see [Builder.URITemplate].
func FromTemplate(tmpl string) (*Builder, error) {
	b := NewBuilder().URITemplate(tmpl)
	if b.err != nil {
		return nil, errtrace.Wrap(b.err)
	}
	return b, nil
}

// FromPath returns a builder with the given path.
func FromPath(p string) (*Builder, error) {
	b := NewBuilder().Path(p)
	if b.err != nil {
		return nil, errtrace.Wrap(b.err)
	}
	return b, nil
}

// Clone returns an independent copy of the builder, including its error.
func (b *Builder) Clone() *Builder {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// Err returns the first error recorded by a mutator.
func (b *Builder) Err() error { return b.err }

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Scheme sets the scheme. It is not encoded and may contain placeholders,
// a scheme without placeholders must be a valid RFC 3986 scheme.
func (b *Builder) Scheme(s string) *Builder {
	if b.err != nil {
		return b
	}
	if len(template.Find(s)) == 0 && !grammar.IsScheme(s) {
		return b.fail(errtrace.Wrap(newInvalidArgErr("scheme %q", s)))
	}
	b.scheme = &s
	return b
}

// UserInfo sets the user info and leaves the unparsed authority mode.
func (b *Builder) UserInfo(ui string) *Builder {
	if b.err != nil {
		return b
	}
	b.userInfo = &ui
	b.authority = nil
	return b
}

// Host sets the host and leaves the unparsed authority mode.
// Empty host is rejected, use [Builder.Unset] to clear it.
func (b *Builder) Host(h string) *Builder {
	if b.err != nil {
		return b
	}
	if h == "" {
		return b.fail(errtrace.Wrap(newInvalidArgErr("empty host")))
	}
	b.host = &h
	b.authority = nil
	return b
}

// Port sets the port, -1 unsets it.
func (b *Builder) Port(p int) *Builder {
	if b.err != nil {
		return b
	}
	if p < -1 {
		return b.fail(errtrace.Wrap(newInvalidArgErr("invalid port %d", p)))
	}
	b.port, b.hasPort = p, p != -1
	if b.hasPort {
		b.authority = nil
	}
	return b
}

// Authority sets an unparsed authority. User info, host and port are cleared.
func (b *Builder) Authority(a string) *Builder {
	if b.err != nil {
		return b
	}
	b.authority = &a
	b.userInfo, b.host = nil, nil
	b.port, b.hasPort = 0, false
	return b
}

// Encode turns encoding of values passed to [Builder.Path], [Builder.Segment],
// [Builder.QueryParam] and of path placeholder values on or off.
func (b *Builder) Encode(on bool) *Builder {
	if b.err != nil {
		return b
	}
	b.raw = !on
	return b
}

// QueryParamMode sets how multiple values of one query parameter are written.
func (b *Builder) QueryParamMode(m QueryParamMode) *Builder {
	if b.err != nil {
		return b
	}
	if !m.IsValid() {
		return b.fail(errtrace.Wrap(newInvalidArgErr("query param mode %d", m)))
	}
	b.mode = m
	return b
}

// Path appends a path to the current one with exactly one "/" at the join point.
func (b *Builder) Path(p string) *Builder {
	if b.err != nil {
		return b
	}
	b.path = util.Ptr(joinPath(!b.raw, util.Deref(b.path), p))
	return b
}

// Segment appends path segments. Every "/" inside a segment is encoded.
func (b *Builder) Segment(segs ...string) *Builder {
	for _, seg := range segs {
		b.Path(EncodePathSegment(seg))
	}
	return b
}

// ReplacePath replaces the whole path with the encoded p.
func (b *Builder) ReplacePath(p string) *Builder {
	if b.err != nil {
		return b
	}
	b.path = util.Ptr(EncodePath(p))
	return b
}

// ReplaceQuery replaces the whole query with the encoded q. Empty q removes the query.
func (b *Builder) ReplaceQuery(q string) *Builder {
	if b.err != nil {
		return b
	}
	if q == "" {
		b.query = nil
		return b
	}
	b.query = util.Ptr(EncodeQueryString(q))
	return b
}

// Fragment sets the encoded fragment.
func (b *Builder) Fragment(f string) *Builder {
	if b.err != nil {
		return b
	}
	b.fragment = util.Ptr(EncodeFragment(f))
	return b
}

// Component identifies a builder component for [Builder.Unset].
type Component uint8

const (
	ComponentScheme Component = iota + 1
	ComponentUserInfo
	ComponentHost
	ComponentPort
	ComponentPath
	ComponentQuery
	ComponentFragment
	ComponentSchemeSpecificPart
	ComponentAuthority
)

var compNames = [...]string{
	ComponentScheme:             "scheme",
	ComponentUserInfo:           "user_info",
	ComponentHost:               "host",
	ComponentPort:               "port",
	ComponentPath:               "path",
	ComponentQuery:              "query",
	ComponentFragment:           "fragment",
	ComponentSchemeSpecificPart: "scheme_specific_part",
	ComponentAuthority:          "authority",
}

func (c Component) String() string {
	if c == 0 || int(c) >= len(compNames) {
		return "Component(" + strconv.Itoa(int(c)) + ")"
	}
	return compNames[c]
}

// Unset clears the given components.
func (b *Builder) Unset(comps ...Component) *Builder {
	if b.err != nil {
		return b
	}
	for _, c := range comps {
		switch c {
		case ComponentScheme:
			b.scheme = nil
		case ComponentUserInfo:
			b.userInfo = nil
		case ComponentHost:
			b.host = nil
		case ComponentPort:
			b.port, b.hasPort = 0, false
		case ComponentPath:
			b.path = nil
		case ComponentQuery:
			b.query = nil
		case ComponentFragment:
			b.fragment = nil
		case ComponentSchemeSpecificPart:
			b.ssp = nil
		case ComponentAuthority:
			b.authority = nil
		default:
			return b.fail(errtrace.Wrap(newInvalidArgErr("unknown component %v", c)))
		}
	}
	return b
}

// Components is a snapshot of builder components as stored, nil means unset.
type Components struct {
	Scheme             *string
	UserInfo           *string
	Host               *string
	Port               int // -1 if unset
	Path               *string
	Query              *string
	Fragment           *string
	SchemeSpecificPart *string
	Authority          *string
	Encode             bool
	QueryParamMode     QueryParamMode
}

// Components returns the current builder state.
func (b *Builder) Components() Components {
	c := Components{
		Scheme:             util.ClonePtr(b.scheme),
		UserInfo:           util.ClonePtr(b.userInfo),
		Host:               util.ClonePtr(b.host),
		Port:               -1,
		Path:               util.ClonePtr(b.path),
		Query:              util.ClonePtr(b.query),
		Fragment:           util.ClonePtr(b.fragment),
		SchemeSpecificPart: util.ClonePtr(b.ssp),
		Authority:          util.ClonePtr(b.authority),
		Encode:             !b.raw,
		QueryParamMode:     b.mode,
	}
	if b.hasPort {
		c.Port = b.port
	}
	return c
}

// RenderTo writes the template form of the builder to w.
func (b *Builder) RenderTo(w io.Writer) (num int, err error) {
	tmpl, err := b.ToTemplate()
	if err != nil {
		return 0, errtrace.Wrap(err)
	}
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(tmpl) //nolint:errcheck
	return errtrace.Wrap2(cw.Result())
}

// String returns the template form of the builder or an error description.
func (b *Builder) String() string {
	if b == nil {
		return ""
	}
	tmpl, err := b.ToTemplate()
	if err != nil {
		return fmt.Sprintf("!ERROR(%v)", err)
	}
	return tmpl
}

// LogValue implements [slog.LogValuer].
func (b *Builder) LogValue() slog.Value {
	if b == nil {
		return slog.StringValue("<nil>")
	}
	if b.err != nil {
		return slog.GroupValue(slog.Any("error", b.err))
	}
	return slog.StringValue(b.String())
}

func joinPath(encode bool, base string, segs ...string) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString(base)
	for _, seg := range segs {
		if seg == "" {
			continue
		}
		if cur := sb.String(); cur != "" && cur[len(cur)-1] == '/' {
			seg = strings.TrimPrefix(seg, "/")
			if seg == "" {
				continue
			}
			if encode {
				seg = EncodePath(seg)
			}
			sb.WriteString(seg)
			continue
		}
		if encode {
			seg = EncodePath(seg)
		}
		if sb.Len() > 0 && seg[0] != '/' {
			sb.WriteByte('/')
		}
		sb.WriteString(seg)
	}
	return sb.String()
}
