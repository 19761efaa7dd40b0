package link

import (
	"maps"
	"slices"
	"strings"

	"github.com/ghettovoice/uribuilder/internal/util"
)

// Well-known link parameter names.
const (
	ParamRel   = "rel"
	ParamTitle = "title"
	ParamType  = "type"
)

// Params maps link parameter names to values.
// The names are case-insensitive and stored in lower case.
type Params map[string]string

// Get returns the value of the named parameter.
func (ps Params) Get(name string) (string, bool) {
	v, ok := ps[util.LCase(name)]
	return v, ok
}

// Set sets the named parameter replacing its value.
func (ps Params) Set(name, value string) Params {
	ps[util.LCase(name)] = value
	return ps
}

// Add sets the named parameter. The "rel" value is appended to the current
// relation types separated by a space.
func (ps Params) Add(name, value string) Params {
	name = util.LCase(name)
	if cur, ok := ps[name]; ok && name == ParamRel && cur != "" {
		value = cur + " " + value
	}
	ps[name] = value
	return ps
}

// Del deletes the named parameter.
func (ps Params) Del(name string) Params {
	delete(ps, util.LCase(name))
	return ps
}

// Has checks whether the named parameter is set.
func (ps Params) Has(name string) bool {
	_, ok := ps[util.LCase(name)]
	return ok
}

// Clone returns a copy of the map.
func (ps Params) Clone() Params {
	if ps == nil {
		return nil
	}
	return maps.Clone(ps)
}

// Equal compares parameters, names case-insensitively and values exactly.
func (ps Params) Equal(other Params) bool {
	if len(ps) != len(other) {
		return false
	}
	for k, v := range ps {
		if ov, ok := other.Get(k); !ok || ov != v {
			return false
		}
	}
	return true
}

// names returns parameter names in render order: "rel" first, the rest sorted.
func (ps Params) names() []string {
	names := slices.Collect(maps.Keys(ps))
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case a == ParamRel && b != ParamRel:
			return -1
		case a != ParamRel && b == ParamRel:
			return 1
		}
		return strings.Compare(a, b)
	})
	return names
}
