package grammar

// Table maps each ASCII character to its replacement for one URI component.
// An empty replacement means the character is kept as is.
type Table struct {
	name string
	esc  [128]string
}

func newTable(name string, allow func(c byte) bool, overrides map[byte]string) *Table {
	t := &Table{name: name}
	for i := range 128 {
		c := byte(i)
		if !allow(c) {
			t.esc[c] = pctEncode(c)
		}
	}
	for c, s := range overrides {
		t.esc[c] = s
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Replacement returns the escaped form of c and true if c must be replaced.
// Non-ASCII bytes are always replaced.
func (t *Table) Replacement(c byte) (string, bool) {
	if c >= 0x80 {
		return pctEncode(c), true
	}
	if s := t.esc[c]; s != "" {
		return s, true
	}
	return "", false
}

func (t *Table) String() string { return t.name }

func isPathChar(c byte) bool { return IsPChar(c) || c == '/' }

func isQueryStringChar(c byte) bool { return IsPChar(c) || c == '/' || c == '?' }

var (
	// PathTable keeps unreserved, sub-delims and ":" / "@" / "/".
	PathTable = newTable("path", isPathChar, map[byte]string{' ': "%20"})
	// PathSegmentTable is [PathTable] with "/" escaped.
	PathSegmentTable = newTable("path-segment", IsPChar, map[byte]string{' ': "%20"})
	// MatrixParamTable is [PathTable] with ";", "=" and "/" escaped.
	MatrixParamTable = newTable("matrix-param", func(c byte) bool {
		return isPathChar(c) && c != ';' && c != '=' && c != '/'
	}, map[byte]string{' ': "%20"})
	// QueryParamTable keeps only unreserved characters, space becomes "+".
	QueryParamTable = newTable("query-param", IsUnreserved, map[byte]string{' ': "+"})
	// QueryStringTable keeps unreserved, sub-delims and ":" / "@" / "?" / "/".
	QueryStringTable = newTable("query-string", isQueryStringChar, map[byte]string{' ': "%20"})
	// FragmentTable is identical to [QueryStringTable].
	FragmentTable = newTable("fragment", isQueryStringChar, map[byte]string{' ': "%20"})
)

func pctEncode(c byte) string {
	return string([]byte{'%', upperhex[c>>4], upperhex[c&15]})
}
