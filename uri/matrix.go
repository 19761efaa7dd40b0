package uri

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uribuilder/internal/template"
	"github.com/ghettovoice/uribuilder/internal/util"
)

// MatrixParam appends ";name=value" for every value to the current path.
func (b *Builder) MatrixParam(name string, values ...any) *Builder {
	if b.err != nil {
		return b
	}
	if name == "" {
		return b.fail(errtrace.Wrap(newInvalidArgErr("empty matrix param name")))
	}
	vals, err := toStrings(name, values)
	if err != nil {
		return b.fail(errtrace.Wrap(err))
	}
	b.path = util.Ptr(appendMatrix(util.Deref(b.path), name, vals))
	return b
}

func appendMatrix(p, name string, vals []string) string {
	if len(vals) == 0 {
		return p
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString(p)
	name = EncodeMatrixParam(name)
	for _, v := range vals {
		sb.WriteByte(';')
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(EncodeMatrixParam(v))
	}
	return sb.String()
}

// ReplaceMatrixParam replaces all matrix params with the given name in the last
// path segment. Without values the param is removed.
// Other params keep their order, the new values are appended.
func (b *Builder) ReplaceMatrixParam(name string, values ...any) *Builder {
	if b.err != nil {
		return b
	}
	if name == "" {
		return b.fail(errtrace.Wrap(newInvalidArgErr("empty matrix param name")))
	}
	vals, err := toStrings(name, values)
	if err != nil {
		return b.fail(errtrace.Wrap(err))
	}
	if b.path == nil {
		if len(vals) > 0 {
			b.path = util.Ptr(appendMatrix("", name, vals))
		}
		return b
	}

	p, saved := maskPlaceholders(*b.path)
	seg, params, ok := cutMatrix(p)
	if ok {
		p = seg + rebuildMatrix(params, EncodeMatrixParam(name))
	}
	p = appendMatrix(p, name, vals)
	b.path = util.Ptr(unmaskPlaceholders(p, saved))
	return b
}

// ReplaceMatrix replaces the matrix block of the last path segment with m.
// Empty m removes the block.
func (b *Builder) ReplaceMatrix(m string) *Builder {
	if b.err != nil {
		return b
	}
	if m != "" && !strings.HasPrefix(m, ";") {
		m = ";" + m
	}
	m = EncodePath(m)
	if b.path == nil {
		b.path = &m
		return b
	}

	p, saved := maskPlaceholders(*b.path)
	if seg, _, ok := cutMatrix(p); ok {
		p = seg
	}
	b.path = util.Ptr(unmaskPlaceholders(p+m, saved))
	return b
}

// cutMatrix splits p around the first ";" of the last path segment.
func cutMatrix(p string) (before, params string, found bool) {
	start := max(strings.LastIndexByte(p, '/'), 0)
	i := strings.IndexByte(p[start:], ';')
	if i < 0 {
		return p, "", false
	}
	i += start
	return p[:i], p[i+1:], true
}

// rebuildMatrix drops params named drop from a ";" separated block.
func rebuildMatrix(params, drop string) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	for _, param := range util.SplitDropTrailing(params, ";") {
		if param == "" {
			continue
		}
		if n, _, _ := strings.Cut(param, "="); n == drop {
			continue
		}
		sb.WriteByte(';')
		sb.WriteString(param)
	}
	return sb.String()
}

const (
	maskOpen  = '\x00'
	maskClose = '\x01'
)

// maskPlaceholders replaces {...} blocks with numbered markers so that
// ";", "=" and "/" inside them are not treated as delimiters.
func maskPlaceholders(s string) (string, []string) {
	spans := template.Spans(s)
	if len(spans) == 0 {
		return s, nil
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	saved := make([]string, len(spans))
	prev := 0
	for i, sp := range spans {
		sb.WriteString(s[prev:sp.Start])
		sb.WriteByte(maskOpen)
		sb.WriteString(strconv.Itoa(i))
		sb.WriteByte(maskClose)
		saved[i] = s[sp.Start:sp.End]
		prev = sp.End
	}
	sb.WriteString(s[prev:])
	return sb.String(), saved
}

// unmaskPlaceholders restores blocks replaced by [maskPlaceholders].
func unmaskPlaceholders(s string, saved []string) string {
	if len(saved) == 0 {
		return s
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	for i := 0; i < len(s); i++ {
		if s[i] != maskOpen {
			sb.WriteByte(s[i])
			continue
		}
		end := strings.IndexByte(s[i:], maskClose)
		if end < 0 {
			sb.WriteString(s[i:])
			break
		}
		n, err := strconv.Atoi(s[i+1 : i+end])
		if err != nil || n >= len(saved) {
			sb.WriteByte(s[i])
			continue
		}
		sb.WriteString(saved[n])
		i += end
	}
	return sb.String()
}
