package uri

import (
	"fmt"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uribuilder/internal/errorutil"
	"github.com/ghettovoice/uribuilder/internal/grammar"
	"github.com/ghettovoice/uribuilder/internal/template"
	"github.com/ghettovoice/uribuilder/internal/util"
)

// BuildOptions controls placeholder substitution.
type BuildOptions struct {
	// FromEncoded treats values as already encoded, only stray "%" are escaped.
	FromEncoded bool
	// EncodeSlash escapes "/" in values substituted outside of the query.
	EncodeSlash bool
	// Template keeps placeholders that have no value and skips the final syntax check.
	Template bool
}

// Build builds the URI substituting values in the order placeholders first appear
// in the scheme, user info, host, path, query and fragment. "/" in values is encoded.
func (b *Builder) Build(values ...any) (string, error) {
	return errtrace.Wrap2(b.BuildFrom(Positional(values...), BuildOptions{EncodeSlash: true}))
}

// BuildSlash is like [Builder.Build] with control over encoding "/" in values.
func (b *Builder) BuildSlash(encodeSlash bool, values ...any) (string, error) {
	return errtrace.Wrap2(b.BuildFrom(Positional(values...), BuildOptions{EncodeSlash: encodeSlash}))
}

// BuildFromEncoded builds the URI from positional values that are already encoded.
func (b *Builder) BuildFromEncoded(values ...any) (string, error) {
	return errtrace.Wrap2(b.BuildFrom(Positional(values...), BuildOptions{FromEncoded: true}))
}

// BuildFromMap builds the URI from named values, "/" in values is encoded.
func (b *Builder) BuildFromMap(m map[string]any) (string, error) {
	return errtrace.Wrap2(b.BuildFromMapSlash(m, true))
}

// BuildFromMapSlash is like [Builder.BuildFromMap] with control over encoding "/" in values.
func (b *Builder) BuildFromMapSlash(m map[string]any, encodeSlash bool) (string, error) {
	if m == nil {
		return "", errtrace.Wrap(newInvalidArgErr("nil values map"))
	}
	return errtrace.Wrap2(b.BuildFrom(Values(m), BuildOptions{EncodeSlash: encodeSlash}))
}

// BuildFromEncodedMap builds the URI from named values that are already encoded.
func (b *Builder) BuildFromEncodedMap(m map[string]any) (string, error) {
	if m == nil {
		return "", errtrace.Wrap(newInvalidArgErr("nil values map"))
	}
	return errtrace.Wrap2(b.BuildFrom(Values(m), BuildOptions{FromEncoded: true}))
}

// BuildFrom builds the URI with values supplied by vals.
//
// A placeholder without a value returns [*MissingVarError] unless opts.Template is set.
// A result that is not a valid RFC 3986 URI reference returns [ErrBuildFailure].
func (b *Builder) BuildFrom(vals TemplateValues, opts BuildOptions) (string, error) {
	if vals == nil {
		return "", errtrace.Wrap(newInvalidArgErr("nil template values"))
	}
	s, err := b.render(vals, opts)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	if opts.Template || s == "" {
		return s, nil
	}
	if _, err := grammar.ParseURIReference(s); err != nil {
		return "", errtrace.Wrap(newBuildFailureErr(fmt.Errorf("%q: %w", s, err)))
	}
	return s, nil
}

// ToTemplate returns the builder state as a template without resolving placeholders.
func (b *Builder) ToTemplate() (string, error) {
	return errtrace.Wrap2(b.render(Values{}, BuildOptions{FromEncoded: true, EncodeSlash: true, Template: true}))
}

// PathParamNames returns distinct placeholder names in the order they first appear
// in the scheme, user info, host, path, query and fragment.
func (b *Builder) PathParamNames() []string {
	return template.Names(
		util.Deref(b.scheme),
		util.Deref(b.userInfo),
		util.Deref(b.host),
		util.Deref(b.path),
		util.Deref(b.query),
		util.Deref(b.fragment),
	)
}

// ResolveTemplate substitutes one placeholder in the stored template, "/" is encoded.
func (b *Builder) ResolveTemplate(name string, value any) *Builder {
	return b.resolve(map[string]any{name: value}, false, true)
}

// ResolveTemplateSlash is like [Builder.ResolveTemplate] with control over encoding "/".
func (b *Builder) ResolveTemplateSlash(name string, value any, encodeSlash bool) *Builder {
	return b.resolve(map[string]any{name: value}, false, encodeSlash)
}

// ResolveTemplateFromEncoded substitutes one placeholder with an already encoded value.
func (b *Builder) ResolveTemplateFromEncoded(name string, value any) *Builder {
	return b.resolve(map[string]any{name: value}, true, true)
}

// ResolveTemplates substitutes placeholders named in m, "/" is encoded.
// Other placeholders are kept.
func (b *Builder) ResolveTemplates(m map[string]any) *Builder {
	return b.resolve(m, false, true)
}

// ResolveTemplatesSlash is like [Builder.ResolveTemplates] with control over encoding "/".
func (b *Builder) ResolveTemplatesSlash(m map[string]any, encodeSlash bool) *Builder {
	return b.resolve(m, false, encodeSlash)
}

// ResolveTemplatesFromEncoded substitutes placeholders named in m with already encoded values.
func (b *Builder) ResolveTemplatesFromEncoded(m map[string]any) *Builder {
	return b.resolve(m, true, true)
}

func (b *Builder) resolve(m map[string]any, fromEncoded, encodeSlash bool) *Builder {
	if b.err != nil {
		return b
	}
	if m == nil {
		return b.fail(errtrace.Wrap(newInvalidArgErr("nil values map")))
	}
	for k, v := range m {
		if k == "" {
			return b.fail(errtrace.Wrap(newInvalidArgErr("empty template variable name")))
		}
		if isNil(v) {
			return b.fail(errtrace.Wrap(newInvalidArgErr("nil value for %q", k)))
		}
	}

	s, err := b.render(Values(m), BuildOptions{FromEncoded: fromEncoded, EncodeSlash: encodeSlash, Template: true})
	if err != nil {
		return b.fail(errtrace.Wrap(err))
	}
	return b.URITemplate(s)
}

// SubstitutePathParam replaces the named placeholder in the path only.
// Unless isEncoded is set, "/" in the value is encoded.
func (b *Builder) SubstitutePathParam(name string, value any, isEncoded bool) *Builder {
	if b.err != nil {
		return b
	}
	if isNil(value) {
		return b.fail(errtrace.Wrap(newInvalidArgErr("nil value for %q", name)))
	}
	if b.path == nil {
		return b
	}
	s, err := toString(value)
	if err != nil {
		return b.fail(errtrace.Wrap(err))
	}
	if isEncoded {
		s = EncodeNonCodes(s)
	} else {
		s = EncodePathSegment(s)
	}
	p, err := template.Replace(*b.path, func(v template.Var) (string, bool, error) {
		return s, v.Name == name, nil
	})
	if err != nil {
		return b.fail(errtrace.Wrap(err))
	}
	b.path = &p
	return b
}

// CheckValues checks values against the regular expressions of constrained placeholders.
// Placeholders without a constraint or a value are skipped.
func (b *Builder) CheckValues(m map[string]any) error {
	if b.err != nil {
		return errtrace.Wrap(b.err)
	}

	var errs []error
	seen := make(map[string]struct{})
	for _, part := range []*string{b.scheme, b.userInfo, b.host, b.path, b.query, b.fragment} {
		if part == nil {
			continue
		}
		for _, v := range template.Find(*part) {
			if v.Constraint == "" {
				continue
			}
			if _, ok := seen[v.Name]; ok {
				continue
			}
			seen[v.Name] = struct{}{}

			val, ok := m[v.Name]
			if !ok || isNil(val) {
				continue
			}
			if err := checkValue(v, val); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errtrace.Wrap(errorutil.JoinPrefix("template values check failed:", errs...))
}

func checkValue(v template.Var, val any) error {
	re, err := template.Compile(v.Constraint)
	if err != nil {
		return errtrace.Wrap(newMalformedURIErr("constraint of %q: %v", v.Name, err))
	}
	s, err := toString(val)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if ok, err := re.MatchString(s); err != nil || !ok {
		return errtrace.Wrap(newInvalidArgErr("value %q of %q does not match %q", s, v.Name, v.Constraint))
	}
	return nil
}

type substitutor struct {
	vals TemplateValues
	opts BuildOptions
}

func (b *Builder) render(vals TemplateValues, opts BuildOptions) (string, error) {
	if b.err != nil {
		return "", errtrace.Wrap(b.err)
	}

	sub := substitutor{vals: vals, opts: opts}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	write := func(s string, encode, query bool) error {
		r, err := sub.replace(s, encode, query)
		if err != nil {
			return errtrace.Wrap(err)
		}
		sb.WriteString(r)
		return nil
	}

	if b.scheme != nil {
		if err := write(*b.scheme, true, false); err != nil {
			return "", errtrace.Wrap(err)
		}
		sb.WriteByte(':')
	}

	var withAuthority bool
	switch {
	case b.ssp != nil:
		sb.WriteString(*b.ssp)
	case b.userInfo != nil || b.host != nil || b.hasPort:
		withAuthority = true
		sb.WriteString("//")
		if b.userInfo != nil {
			if err := write(*b.userInfo, true, false); err != nil {
				return "", errtrace.Wrap(err)
			}
			sb.WriteByte('@')
		}
		if b.host != nil {
			if *b.host == "" {
				return "", errtrace.Wrap(newBuildFailureErr("empty host"))
			}
			if err := write(*b.host, true, false); err != nil {
				return "", errtrace.Wrap(err)
			}
		}
		if b.hasPort {
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(b.port))
		}
	case b.authority != nil:
		withAuthority = true
		sb.WriteString("//")
		if err := write(*b.authority, true, false); err != nil {
			return "", errtrace.Wrap(err)
		}
	}

	if b.path != nil {
		p, err := sub.replace(*b.path, !b.raw, false)
		if err != nil {
			return "", errtrace.Wrap(err)
		}
		if withAuthority && p != "" && !strings.HasPrefix(p, "/") {
			sb.WriteByte('/')
		}
		sb.WriteString(p)
	}
	if b.query != nil {
		sb.WriteByte('?')
		if err := write(*b.query, true, true); err != nil {
			return "", errtrace.Wrap(err)
		}
	}
	if b.fragment != nil {
		sb.WriteByte('#')
		if err := write(*b.fragment, true, false); err != nil {
			return "", errtrace.Wrap(err)
		}
	}
	return sb.String(), nil
}

func (sub substitutor) replace(s string, encode, query bool) (string, error) {
	return errtrace.Wrap2(template.Replace(s, func(v template.Var) (string, bool, error) {
		val, ok := sub.vals.Lookup(v.Name)
		if !ok {
			if sub.opts.Template {
				return "", false, nil
			}
			return "", false, errtrace.Wrap(&MissingVarError{Name: v.Name})
		}
		if isNil(val) {
			return "", false, errtrace.Wrap(&MissingVarError{Name: v.Name, Nil: true})
		}
		str, err := toString(val)
		if err != nil {
			return "", false, errtrace.Wrap(err)
		}
		return sub.encode(str, encode, query), true, nil
	}))
}

func (sub substitutor) encode(s string, encode, query bool) string {
	switch {
	case query && sub.opts.FromEncoded:
		return EncodeQueryParamSaveEncodings(s)
	case query:
		return EncodeQueryParamAsIs(s)
	case !encode:
		return s
	case sub.opts.FromEncoded && sub.opts.EncodeSlash:
		return EncodePathSegmentSaveEncodings(s)
	case sub.opts.FromEncoded:
		return EncodePathSaveEncodings(s)
	case sub.opts.EncodeSlash:
		return EncodePathSegmentAsIs(s)
	default:
		return EncodePathAsIs(s)
	}
}
