package link

//go:generate errtrace -w .

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uribuilder/internal/ioutil"
	"github.com/ghettovoice/uribuilder/internal/util"
	"github.com/ghettovoice/uribuilder/uri"
)

// Link is a URI reference with parameters.
type Link struct {
	uri    string
	params Params
}

// URI returns the link target.
func (l *Link) URI() string {
	if l == nil {
		return ""
	}
	return l.uri
}

// URIBuilder returns a new builder initialized from the link target.
func (l *Link) URIBuilder() (*uri.Builder, error) {
	return errtrace.Wrap2(uri.FromTemplate(l.URI()))
}

// Rel returns the relation types as one space separated string.
func (l *Link) Rel() string { return l.param(ParamRel) }

// Rels returns the relation types.
func (l *Link) Rels() []string {
	rel := l.Rel()
	if rel == "" {
		return nil
	}
	return strings.Fields(rel)
}

// Title returns the "title" parameter.
func (l *Link) Title() string { return l.param(ParamTitle) }

// Type returns the "type" parameter.
func (l *Link) Type() string { return l.param(ParamType) }

func (l *Link) param(name string) string {
	if l == nil {
		return ""
	}
	v, _ := l.params.Get(name)
	return v
}

// Params returns a copy of the link parameters.
func (l *Link) Params() Params {
	if l == nil {
		return nil
	}
	return l.params.Clone()
}

// RenderTo writes the link in the Link header field value form.
func (l *Link) RenderTo(w io.Writer) (num int, err error) {
	if l == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteStrings("<", l.uri, ">")
	for _, name := range l.params.names() {
		cw.WriteStrings("; ", name, `="`, quote(l.params[name]), `"`)
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the link in the Link header field value form.
func (l *Link) Render() string {
	if l == nil {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	l.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

func (l *Link) String() string { return l.Render() }

func (l *Link) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, l.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(l.String()))
	default:
		type hideMethods Link
		type Link hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Link)(l))
	}
}

// LogValue implements [slog.LogValuer].
func (l *Link) LogValue() slog.Value {
	if l == nil {
		return slog.StringValue("<nil>")
	}
	return slog.StringValue(l.String())
}

// Equal reports whether val is a link with the same target and parameters.
func (l *Link) Equal(val any) bool {
	var other *Link
	switch v := val.(type) {
	case Link:
		other = &v
	case *Link:
		other = v
	default:
		return false
	}
	if l == nil || other == nil {
		return l == other
	}
	return l.uri == other.uri && l.params.Equal(other.params)
}

// Clone returns a deep copy of the link.
func (l *Link) Clone() *Link {
	if l == nil {
		return nil
	}
	return &Link{uri: l.uri, params: l.params.Clone()}
}

// MarshalText implements [encoding.TextMarshaler].
func (l *Link) MarshalText() ([]byte, error) {
	return []byte(l.Render()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (l *Link) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return errtrace.Wrap(err)
	}
	*l = *v
	return nil
}

func quote(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
