// Package template finds and substitutes {name} and {name:regex}
// placeholders in URI templates.
package template

//go:generate errtrace -w .

import (
	"braces.dev/errtrace"
	"github.com/dlclark/regexp2"

	"github.com/ghettovoice/uribuilder/internal/errorutil"
	"github.com/ghettovoice/uribuilder/internal/util"
)

const ErrUnbalancedBraces errorutil.Error = "unbalanced braces"

func newUnbalancedErr(args ...any) error {
	return errorutil.NewWrapperError(ErrUnbalancedBraces, args...) //errtrace:skip
}

const ws = `[ \t\n\x0B\f\r]`

var (
	varRE = regexp2.MustCompile(
		`\{`+ws+`*([0-9A-Za-z_][0-9A-Za-z_.\-]*)`+ws+`*(:`+ws+`*([^{}][^{}]*))?\}`,
		regexp2.None,
	)
	spanRE = regexp2.MustCompile(`\{[^}]+\}`, regexp2.None)
)

// Var is a placeholder occurrence.
type Var struct {
	Name string
	// Constraint is the regular expression after ":" with restored braces,
	// empty if the placeholder has none.
	Constraint string
	// Start and End are byte offsets of the whole placeholder.
	Start, End int
}

// Span is a [start, end) byte range.
type Span struct {
	Start, End int
}

// Find returns all placeholders of s in order of appearance.
func Find(s string) []Var {
	var vars []Var
	each(varRE, s, func(m *regexp2.Match, start, end int) {
		v := Var{
			Name:  m.GroupByNumber(1).String(),
			Start: start,
			End:   end,
		}
		if g := m.GroupByNumber(3); len(g.Captures) > 0 {
			v.Constraint = util.TrimSP(RestoreBraces(g.String()))
		}
		vars = append(vars, v)
	})
	return vars
}

// Spans returns ranges of every top-level {...} block of s, including blocks
// that are not well-formed placeholders.
func Spans(s string) []Span {
	var spans []Span
	each(spanRE, s, func(_ *regexp2.Match, start, end int) {
		spans = append(spans, Span{start, end})
	})
	return spans
}

// Names returns unique placeholder names of all strings in first-seen order.
func Names(ss ...string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, s := range ss {
		for _, v := range Find(s) {
			if _, ok := seen[v.Name]; ok {
				continue
			}
			seen[v.Name] = struct{}{}
			names = append(names, v.Name)
		}
	}
	return names
}

// Has reports whether s contains at least one placeholder.
func Has(s string) bool {
	ok, _ := varRE.MatchString(HideBraces(s))
	return ok
}

// Replacer returns the substitution for v. If ok is false, the placeholder is
// left as is.
type Replacer func(v Var) (repl string, ok bool, err error)

// Replace substitutes every placeholder of s using fn.
func Replace(s string, fn Replacer) (string, error) {
	vars := Find(s)
	if len(vars) == 0 {
		return s, nil
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	prev := 0
	for _, v := range vars {
		repl, ok, err := fn(v)
		if err != nil {
			return "", errtrace.Wrap(err)
		}
		if !ok {
			continue
		}
		sb.WriteString(s[prev:v.Start])
		sb.WriteString(repl)
		prev = v.End
	}
	sb.WriteString(s[prev:])
	return sb.String(), nil
}

// MapOutside applies fn to each part of s that is outside of {...} blocks.
func MapOutside(s string, fn func(string) string) string {
	spans := Spans(s)
	if len(spans) == 0 {
		return fn(s)
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	prev := 0
	for _, sp := range spans {
		sb.WriteString(fn(s[prev:sp.Start]))
		sb.WriteString(s[sp.Start:sp.End])
		prev = sp.End
	}
	sb.WriteString(fn(s[prev:]))
	return sb.String()
}

// Compile compiles a placeholder constraint anchored to the whole value.
func Compile(constraint string) (*regexp2.Regexp, error) {
	return errtrace.Wrap2(regexp2.Compile(`^(?:`+constraint+`)$`, regexp2.None))
}

func each(re *regexp2.Regexp, s string, fn func(m *regexp2.Match, start, end int)) {
	h := HideBraces(s)
	rs := []rune(h)
	offs := make([]int, 0, len(rs)+1)
	for i := range h {
		offs = append(offs, i)
	}
	offs = append(offs, len(h))

	m, _ := re.FindRunesMatch(rs)
	for m != nil {
		fn(m, offs[m.Index], offs[m.Index+m.Length])
		m, _ = re.FindNextMatch(m)
	}
}
