package uri

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/uribuilder/internal/grammar"
	"github.com/ghettovoice/uribuilder/internal/template"
)

// encodeValue encodes s outside of {...} blocks with the table t,
// keeping valid "%XX" triplets.
func encodeValue(s string, t *grammar.Table) string {
	return template.MapOutside(s, func(part string) string {
		return grammar.EncodeNonCodes(grammar.Encode(part, t, false))
	})
}

// EncodePath encodes a path keeping "/", placeholders and "%XX" triplets.
func EncodePath(s string) string { return encodeValue(s, grammar.PathTable) }

// EncodePathSegment encodes a single path segment, "/" is escaped.
// Placeholders and "%XX" triplets are kept.
func EncodePathSegment(s string) string { return encodeValue(s, grammar.PathSegmentTable) }

// EncodeMatrixParam encodes a matrix parameter name or value.
// Placeholders and "%XX" triplets are kept.
func EncodeMatrixParam(s string) string { return encodeValue(s, grammar.MatrixParamTable) }

// EncodeQueryParam encodes a query parameter name or value in form style.
// Placeholders and "%XX" triplets are kept.
func EncodeQueryParam(s string) string { return encodeValue(s, grammar.QueryParamTable) }

// EncodeQueryString encodes a whole query string.
// Placeholders and "%XX" triplets are kept.
func EncodeQueryString(s string) string { return encodeValue(s, grammar.QueryStringTable) }

// EncodeFragment encodes a fragment.
// Placeholders and "%XX" triplets are kept.
func EncodeFragment(s string) string { return encodeValue(s, grammar.FragmentTable) }

// EncodePathAsIs encodes s for a path position, including every "%".
func EncodePathAsIs(s string) string { return grammar.Encode(s, grammar.PathTable, true) }

// EncodePathSaveEncodings encodes s for a path position keeping "%XX" triplets.
func EncodePathSaveEncodings(s string) string {
	return grammar.EncodeNonCodes(grammar.Encode(s, grammar.PathTable, false))
}

// EncodePathSegmentAsIs encodes s for a path segment, including every "%".
func EncodePathSegmentAsIs(s string) string {
	return grammar.Encode(s, grammar.PathSegmentTable, true)
}

// EncodePathSegmentSaveEncodings encodes s for a path segment keeping "%XX" triplets.
func EncodePathSegmentSaveEncodings(s string) string {
	return grammar.EncodeNonCodes(grammar.Encode(s, grammar.PathSegmentTable, false))
}

// EncodeQueryParamAsIs encodes a query name or value, including every "%".
func EncodeQueryParamAsIs(s string) string {
	return grammar.Encode(s, grammar.QueryParamTable, true)
}

// EncodeQueryParamSaveEncodings encodes a query name or value keeping "%XX" triplets.
func EncodeQueryParamSaveEncodings(s string) string {
	return grammar.EncodeNonCodes(grammar.Encode(s, grammar.QueryParamTable, false))
}

// EncodeNonCodes escapes every "%" that does not start a "%XX" triplet.
func EncodeNonCodes(s string) string { return grammar.EncodeNonCodes(s) }

// DecodeComponent decodes "%XX" triplets of s. If plus is true, "+" decodes to a space.
// Truncated or non-hex escapes return [ErrMalformedURI].
func DecodeComponent(s string, plus bool) (string, error) {
	d, err := grammar.Decode(s, plus)
	if err != nil {
		return "", errtrace.Wrap(newMalformedURIErr(err))
	}
	return d, nil
}

// TemplateVar is a placeholder found in a template.
type TemplateVar struct {
	Name string
	// Constraint is the regular expression after ":", empty if absent.
	Constraint string
	// Raw is the placeholder text including braces.
	Raw string
}

// TemplateVars returns all placeholders of s in order of appearance.
func TemplateVars(s string) []TemplateVar {
	vars := template.Find(s)
	if len(vars) == 0 {
		return nil
	}
	tvs := make([]TemplateVar, len(vars))
	for i, v := range vars {
		tvs[i] = TemplateVar{Name: v.Name, Constraint: v.Constraint, Raw: s[v.Start:v.End]}
	}
	return tvs
}
