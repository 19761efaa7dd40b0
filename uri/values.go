package uri

import (
	"reflect"

	"braces.dev/errtrace"
	"github.com/spf13/cast"
)

// TemplateValues supplies values for template placeholders during a build.
type TemplateValues interface {
	// Lookup returns the value of the named placeholder and whether it is known.
	Lookup(name string) (val any, ok bool)
}

// Values is a set of named template values.
type Values map[string]any

// Lookup implements [TemplateValues].
func (vs Values) Lookup(name string) (any, bool) {
	v, ok := vs[name]
	return v, ok
}

// PositionalValues binds values to placeholder names in the order the names
// are first looked up. Values beyond the number of distinct names are ignored.
type PositionalValues struct {
	vals  []any
	next  int
	bound map[string]any
}

// Positional returns positional template values.
func Positional(vals ...any) *PositionalValues {
	return &PositionalValues{vals: vals, bound: make(map[string]any, len(vals))}
}

// Lookup implements [TemplateValues].
func (pv *PositionalValues) Lookup(name string) (any, bool) {
	if v, ok := pv.bound[name]; ok {
		return v, true
	}
	if pv.next == len(pv.vals) {
		return nil, false
	}
	v := pv.vals[pv.next]
	pv.next++
	pv.bound[name] = v
	return v, true
}

// Bound returns a copy of the values bound so far.
func (pv *PositionalValues) Bound() Values {
	vs := make(Values, len(pv.bound))
	for k, v := range pv.bound {
		vs[k] = v
	}
	return vs
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// toString converts a template, matrix or query value to its string form.
func toString(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", errtrace.Wrap(newInvalidArgErr(err))
	}
	return s, nil
}

func toStrings(name string, vals []any) ([]string, error) {
	ss := make([]string, len(vals))
	for i, v := range vals {
		if isNil(v) {
			return nil, errtrace.Wrap(newInvalidArgErr("nil value #%d for %q", i, name))
		}
		s, err := toString(v)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		ss[i] = s
	}
	return ss, nil
}
