package uri

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uribuilder/internal/util"
)

// QueryParamMode defines how multiple values of one query parameter are serialized.
type QueryParamMode uint8

const (
	// MultiPairs writes "name=v1&name=v2".
	MultiPairs QueryParamMode = iota
	// CommaSeparated writes "name=v1,v2".
	CommaSeparated
	// ArrayPairs writes "name[]=v1&name[]=v2" when one call supplies several values
	// and "name=v" for a single value.
	ArrayPairs
)

var modeNames = [...]string{
	MultiPairs:     "multi_pairs",
	CommaSeparated: "comma_separated",
	ArrayPairs:     "array_pairs",
}

// IsValid reports whether m is a known mode.
func (m QueryParamMode) IsValid() bool { return int(m) < len(modeNames) }

func (m QueryParamMode) String() string {
	if !m.IsValid() {
		return "QueryParamMode(" + strconv.Itoa(int(m)) + ")"
	}
	return modeNames[m]
}

// ParseQueryParamMode parses a mode name such as "comma_separated" or "ARRAY-PAIRS".
func ParseQueryParamMode(s string) (QueryParamMode, error) {
	norm := strings.ReplaceAll(util.LCase(util.TrimSP(s)), "-", "_")
	for m, n := range modeNames {
		if n == norm {
			return QueryParamMode(m), nil
		}
	}
	return 0, errtrace.Wrap(newInvalidArgErr("query param mode %q", s))
}

// MarshalText implements [encoding.TextMarshaler].
func (m QueryParamMode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, errtrace.Wrap(newInvalidArgErr("query param mode %d", m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *QueryParamMode) UnmarshalText(text []byte) error {
	v, err := ParseQueryParamMode(string(text))
	if err != nil {
		return errtrace.Wrap(err)
	}
	*m = v
	return nil
}

// QueryParam appends a query parameter with the given values using the current
// [QueryParamMode]. A call without values does nothing.
func (b *Builder) QueryParam(name string, values ...any) *Builder {
	return b.appendQuery(name, values, EncodeQueryParam)
}

// ClientQueryParam is like [Builder.QueryParam] but every "%" in the name and values
// is encoded, so values are sent literally.
func (b *Builder) ClientQueryParam(name string, values ...any) *Builder {
	return b.appendQuery(name, values, EncodeQueryParamAsIs)
}

func (b *Builder) appendQuery(name string, values []any, enc func(string) string) *Builder {
	if b.err != nil {
		return b
	}
	if name == "" {
		return b.fail(errtrace.Wrap(newInvalidArgErr("empty query param name")))
	}
	vals, err := toStrings(name, values)
	if err != nil {
		return b.fail(errtrace.Wrap(err))
	}
	if len(vals) == 0 {
		return b
	}
	if !b.raw {
		name = enc(name)
		for i := range vals {
			vals[i] = enc(vals[i])
		}
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	if b.query != nil {
		sb.WriteString(*b.query)
		sb.WriteByte('&')
	}
	switch b.mode {
	case CommaSeparated:
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(strings.Join(vals, ","))
	case ArrayPairs:
		conn := "="
		if len(vals) > 1 {
			conn = "[]="
		}
		writePairs(sb, name, conn, vals)
	default:
		writePairs(sb, name, "=", vals)
	}
	b.query = util.Ptr(sb.String())
	return b
}

func writePairs(sb *strings.Builder, name, conn string, vals []string) {
	for i, v := range vals {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(name)
		sb.WriteString(conn)
		sb.WriteString(v)
	}
}

// ReplaceQueryParam removes all pairs of the named parameter and appends the
// given values. Without values the parameter is only removed.
func (b *Builder) ReplaceQueryParam(name string, values ...any) *Builder {
	if b.err != nil {
		return b
	}
	if b.query == nil {
		return b.QueryParam(name, values...)
	}
	if name == "" {
		return b.fail(errtrace.Wrap(newInvalidArgErr("empty query param name")))
	}
	if _, err := toStrings(name, values); err != nil {
		return b.fail(errtrace.Wrap(err))
	}

	enc := EncodeQueryParam(name)
	var kept []string
	for _, pair := range util.SplitDropTrailing(*b.query, "&") {
		n, _, _ := strings.Cut(pair, "=")
		if n == enc || n == enc+"[]" {
			continue
		}
		kept = append(kept, pair)
	}
	if len(kept) == 0 {
		b.query = nil
	} else {
		b.query = util.Ptr(strings.Join(kept, "&"))
	}
	return b.QueryParam(name, values...)
}
