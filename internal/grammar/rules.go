package grammar

import "github.com/ghettovoice/abnf"

func char(c byte) abnf.Operator {
	return abnf.Literal(string(c), []byte{c})
}

// chars matches any single byte of cs, cs must not be empty.
func chars(key string, cs string) abnf.Operator {
	if len(cs) == 1 {
		return char(cs[0])
	}
	ops := make([]abnf.Operator, len(cs)-1)
	for i := range len(ops) {
		ops[i] = char(cs[i+1])
	}
	return abnf.AltFirst(key, char(cs[0]), ops...)
}

// RFC 3986 Appendix A.
var (
	alpha = abnf.AltFirst("ALPHA",
		abnf.Range("%x41-5A", []byte{0x41}, []byte{0x5A}),
		abnf.Range("%x61-7A", []byte{0x61}, []byte{0x7A}),
	)
	digit  = abnf.Range("DIGIT", []byte{0x30}, []byte{0x39})
	hexdig = abnf.AltFirst("HEXDIG",
		digit,
		abnf.Range("%x41-46", []byte{0x41}, []byte{0x46}),
		abnf.Range("%x61-66", []byte{0x61}, []byte{0x66}),
	)

	unreserved = abnf.AltFirst("unreserved", alpha, digit, chars("mark", "-._~"))
	subDelims  = chars("sub-delims", "!$&'()*+,;=")
	pctEncoded = abnf.Concat("pct-encoded", char('%'), hexdig, hexdig)

	pchar = abnf.AltFirst("pchar", unreserved, pctEncoded, subDelims, chars("pchar-extra", ":@"))

	scheme = abnf.Concat("scheme",
		alpha,
		abnf.Repeat0Inf("scheme-tail", abnf.AltFirst("scheme-char", alpha, digit, chars("scheme-extra", "+-."))),
	)

	userinfo = abnf.Repeat0Inf("userinfo",
		abnf.AltFirst("userinfo-char", unreserved, pctEncoded, subDelims, char(':')),
	)
	ipLiteral = abnf.Concat("IP-literal",
		char('['),
		abnf.Repeat1Inf("IP-literal-body",
			abnf.AltFirst("IP-literal-char", unreserved, subDelims, char(':'), pctEncoded, char('%')),
		),
		char(']'),
	)
	regName = abnf.Repeat0Inf("reg-name", abnf.AltFirst("reg-name-char", unreserved, pctEncoded, subDelims))
	host    = abnf.AltFirst("host", ipLiteral, regName)
	port    = abnf.Repeat0Inf("port", digit)

	authority = abnf.Concat("authority",
		abnf.Optional("userinfo-at", abnf.Concat("userinfo-at-seq", userinfo, char('@'))),
		host,
		abnf.Optional("port-part", abnf.Concat("port-seq", char(':'), port)),
	)

	segment     = abnf.Repeat0Inf("segment", pchar)
	segmentNZ   = abnf.Repeat1Inf("segment-nz", pchar)
	segmentNZNC = abnf.Repeat1Inf("segment-nz-nc",
		abnf.AltFirst("segment-nz-nc-char", unreserved, pctEncoded, subDelims, char('@')),
	)
	slashSegments = abnf.Repeat0Inf("slash-segments", abnf.Concat("slash-segment", char('/'), segment))

	pathAbEmpty  = slashSegments
	pathAbsolute = abnf.Concat("path-absolute",
		char('/'),
		abnf.Optional("path-absolute-tail", abnf.Concat("path-absolute-rest", segmentNZ, slashSegments)),
	)
	pathNoScheme = abnf.Concat("path-noscheme", segmentNZNC, slashSegments)
	pathRootless = abnf.Concat("path-rootless", segmentNZ, slashSegments)

	authorityPath = abnf.Concat("authority-path", char('/'), char('/'), authority, pathAbEmpty)

	hierPart     = abnf.Alt("hier-part", authorityPath, pathAbsolute, pathRootless)
	relativePart = abnf.Alt("relative-part", authorityPath, pathAbsolute, pathNoScheme)

	// "[" and "]" are accepted in query and fragment for array style parameters
	query    = abnf.Repeat0Inf("query", abnf.AltFirst("query-char", pchar, chars("query-extra", "/?[]")))
	fragment = abnf.Repeat0Inf("fragment", abnf.AltFirst("fragment-char", pchar, chars("fragment-extra", "/?[]")))

	queryPart    = abnf.Optional("query-part", abnf.Concat("query-seq", char('?'), query))
	fragmentPart = abnf.Optional("fragment-part", abnf.Concat("fragment-seq", char('#'), fragment))

	absURI = abnf.Concat("URI",
		scheme, char(':'),
		abnf.Optional("hier-part-opt", hierPart),
		queryPart, fragmentPart,
	)
	relativeRef = abnf.Concat("relative-ref",
		abnf.Optional("relative-part-opt", relativePart),
		queryPart, fragmentPart,
	)

	uriReference = abnf.Alt("URI-reference", absURI, relativeRef)
)
