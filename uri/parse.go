package uri

import (
	"net/url"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/dlclark/regexp2"

	"github.com/ghettovoice/uribuilder/internal/grammar"
	"github.com/ghettovoice/uribuilder/internal/template"
	"github.com/ghettovoice/uribuilder/internal/util"
)

var (
	opaqueRE = regexp2.MustCompile(`^([^:/?#{]+):([^/].*)\z`, regexp2.None)
	hierRE   = regexp2.MustCompile(
		`^(([^:/?#{]+):)?(//([^/?#]*))?([^?#]*)(\?([^#]*))?(#(.*))?\z`,
		regexp2.None,
	)
	hostPortRE = regexp2.MustCompile(`^([^/:]+):([0-9]+)\z`, regexp2.None)
	ipv6PortRE = regexp2.MustCompile(
		`^(\[(([0-9A-Fa-f]{0,4}:){2,7})([0-9A-Fa-f]{0,4})%?.*\]):([0-9]+)\z`,
		regexp2.None,
	)
)

type groups struct{ m *regexp2.Match }

func matchAll(re *regexp2.Regexp, s string) (groups, bool) {
	m, err := re.FindStringMatch(s)
	if err != nil || m == nil {
		return groups{}, false
	}
	return groups{m}, true
}

func (g groups) get(i int) (string, bool) {
	grp := g.m.GroupByNumber(i)
	if grp == nil || len(grp.Captures) == 0 {
		return "", false
	}
	return grp.String(), true
}

// URITemplate merges a URI or URI template into the builder.
//
// An opaque input ("scheme:ssp") sets the scheme and the scheme-specific part and
// clears the authority, path and query. A hierarchical input overrides the scheme, authority,
// path, query and fragment only when they are present in it.
// Unbalanced braces return [ErrMalformedURI].
func (b *Builder) URITemplate(tmpl string) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.parseTemplate(tmpl); err != nil {
		return b.fail(errtrace.Wrap(err))
	}
	return b
}

func (b *Builder) parseTemplate(tmpl string) error {
	if err := template.CheckBraces(tmpl); err != nil {
		return errtrace.Wrap(newMalformedURIErr(err))
	}

	if g, ok := matchAll(opaqueRE, tmpl); ok {
		scheme, _ := g.get(1)
		ssp, _ := g.get(2)
		b.clearHierarchical()
		b.scheme = &scheme
		if i := strings.IndexByte(template.HideBraces(ssp), '#'); i >= 0 {
			b.fragment = util.Ptr(EncodeFragment(ssp[i+1:]))
			ssp = ssp[:i]
		}
		b.ssp = &ssp
		return nil
	}

	g, ok := matchAll(hierRE, tmpl)
	if !ok {
		return errtrace.Wrap(newMalformedURIErr("%q", tmpl))
	}
	b.ssp = nil

	scheme, hasScheme := g.get(2)
	if hasScheme {
		b.scheme = &scheme
	}
	if auth, ok := g.get(4); ok {
		if err := b.parseAuthority(auth); err != nil {
			return errtrace.Wrap(newMalformedURIErr("%q: %v", tmpl, err))
		}
	}
	if p, _ := g.get(5); p != "" {
		if !hasScheme && p[0] != '/' {
			if colon, slash := strings.IndexByte(p, ':'), strings.IndexByte(p, '/'); colon > -1 && slash > -1 && colon < slash {
				return errtrace.Wrap(newMalformedURIErr("%q: first path segment contains ':'", tmpl))
			}
		}
		b.path = util.Ptr(EncodePath(p))
	}
	if q, ok := g.get(7); ok {
		if q == "" {
			b.query = nil
		} else {
			b.query = util.Ptr(EncodeQueryString(q))
		}
	}
	if f, ok := g.get(9); ok {
		b.fragment = util.Ptr(EncodeFragment(f))
	}
	return nil
}

func (b *Builder) parseAuthority(auth string) error {
	b.authority = nil
	host := auth
	if at := strings.IndexByte(auth, '@'); at > -1 {
		b.userInfo = util.Ptr(auth[:at])
		host = auth[at+1:]
	}

	if g, ok := matchAll(hostPortRE, host); ok {
		h, _ := g.get(1)
		p, _ := g.get(2)
		port, err := strconv.Atoi(p)
		if err != nil {
			return errtrace.Wrap(err)
		}
		b.host = &h
		b.port, b.hasPort = port, true
		return nil
	}
	if strings.HasPrefix(host, "[") {
		if g, ok := matchAll(ipv6PortRE, host); ok {
			p, _ := g.get(5)
			port, err := strconv.Atoi(p)
			if err != nil {
				return errtrace.Wrap(err)
			}
			host, _ = g.get(1)
			b.port, b.hasPort = port, true
		}
	}
	if host == "" && b.userInfo == nil && !b.hasPort {
		// "scheme:///path" keeps an empty authority
		b.authority = util.Ptr("")
		b.host = nil
		return nil
	}
	b.host = &host
	return nil
}

// URI merges a parsed URI into the builder.
//
// An opaque u replaces the scheme and the scheme-specific part. Otherwise the
// scheme, user info, host, port, path and query are replaced only when u has them.
// A fragment of u always replaces the current one.
func (b *Builder) URI(u *url.URL) *Builder {
	if b.err != nil {
		return b
	}
	if u == nil {
		return b.fail(errtrace.Wrap(newInvalidArgErr("nil URI")))
	}

	if u.Fragment != "" || u.RawFragment != "" {
		b.fragment = util.Ptr(u.EscapedFragment())
	}

	if u.Opaque != "" {
		b.clearHierarchical()
		b.scheme = util.Ptr(u.Scheme)
		b.ssp = util.Ptr(opaqueSSP(u))
		return b
	}

	if u.Scheme == "" {
		if b.ssp != nil {
			b.ssp = util.Ptr(hierarchicalSSP(u))
			return b
		}
	} else {
		b.scheme = util.Ptr(u.Scheme)
	}

	b.ssp = nil
	if u.Host != "" || u.User != nil {
		host, port, err := splitHostPort(u.Host)
		if err != nil {
			return b.fail(errtrace.Wrap(newMalformedURIErr(err)))
		}
		if u.User == nil && !grammar.IsHost(host) {
			b.Authority(u.Host)
		} else {
			b.authority = nil
			if u.User != nil {
				b.userInfo = util.Ptr(u.User.String())
			}
			if host != "" {
				b.host = &host
			}
			if port != -1 {
				b.port, b.hasPort = port, true
			}
		}
	}

	if p := u.EscapedPath(); p != "" {
		b.path = &p
	}
	if u.RawQuery != "" {
		b.query = util.Ptr(u.RawQuery)
	}
	return b
}

// FromURI returns a builder initialized from u.
func FromURI(u *url.URL) (*Builder, error) {
	b := NewBuilder().URI(u)
	if b.err != nil {
		return nil, errtrace.Wrap(b.err)
	}
	return b, nil
}

// SchemeSpecificPart parses "scheme:ssp#fragment" with the current scheme and fragment.
// An opaque result stores ssp as is, a hierarchical one replaces the user info, host,
// port, path and query.
func (b *Builder) SchemeSpecificPart(ssp string) *Builder {
	if b.err != nil {
		return b
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	if b.scheme != nil {
		sb.WriteString(*b.scheme)
		sb.WriteByte(':')
	}
	sb.WriteString(ssp)
	if b.fragment != nil && *b.fragment != "" {
		sb.WriteByte('#')
		sb.WriteString(*b.fragment)
	}

	s := sb.String()
	if !grammar.IsURIReference(s) {
		return b.fail(errtrace.Wrap(newMalformedURIErr("%q", s)))
	}
	u, err := url.Parse(s)
	if err != nil {
		return b.fail(errtrace.Wrap(newMalformedURIErr(err)))
	}

	if u.Opaque != "" {
		b.clearHierarchical()
		b.ssp = util.Ptr(opaqueSSP(u))
		return b
	}

	host, port, err := splitHostPort(u.Host)
	if err != nil {
		return b.fail(errtrace.Wrap(newMalformedURIErr(err)))
	}
	b.ssp = nil
	b.userInfo, b.host, b.path, b.query = nil, nil, nil, nil
	b.port, b.hasPort = 0, false
	if u.User != nil {
		b.userInfo = util.Ptr(u.User.String())
	}
	if host != "" {
		b.host = &host
		b.authority = nil
	}
	if port != -1 {
		b.port, b.hasPort = port, true
	}
	if p := u.EscapedPath(); p != "" {
		b.path = &p
	}
	if u.RawQuery != "" || u.ForceQuery {
		b.query = util.Ptr(u.RawQuery)
	}
	return b
}

// clearHierarchical drops components that an opaque scheme-specific part replaces.
func (b *Builder) clearHierarchical() {
	b.authority, b.host, b.userInfo, b.path, b.query = nil, nil, nil, nil, nil
	b.port, b.hasPort = 0, false
}

func opaqueSSP(u *url.URL) string {
	if u.RawQuery != "" || u.ForceQuery {
		return u.Opaque + "?" + u.RawQuery
	}
	return u.Opaque
}

func hierarchicalSSP(u *url.URL) string {
	v := *u
	v.Scheme, v.Fragment, v.RawFragment = "", "", ""
	return v.String()
}

// splitHostPort splits an authority host into a host keeping IPv6 brackets
// and a port, -1 when absent.
func splitHostPort(hostport string) (string, int, error) {
	host, port := hostport, ""
	if i := strings.LastIndexByte(hostport, ':'); i > -1 && !strings.Contains(hostport[i:], "]") {
		host, port = hostport[:i], hostport[i+1:]
	}
	if port == "" {
		return host, -1, nil
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 0 {
		return "", -1, errtrace.Wrap(newInvalidArgErr("invalid port %q", port))
	}
	return host, p, nil
}
