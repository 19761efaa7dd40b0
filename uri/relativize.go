package uri

import (
	"net/url"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uribuilder/internal/util"
)

// Relativize returns the path of to relative to from.
//
// When the scheme, host or port differ, to is returned unchanged.
// Otherwise the result has one ".." for each segment of from that is not
// shared with to, followed by the rest of the path of to.
func Relativize(from, to string) (string, error) {
	fu, err := url.Parse(from)
	if err != nil {
		return "", errtrace.Wrap(newMalformedURIErr(err))
	}
	tu, err := url.Parse(to)
	if err != nil {
		return "", errtrace.Wrap(newMalformedURIErr(err))
	}
	return errtrace.Wrap2(relativize(fu, tu, to))
}

func relativize(from, to *url.URL, raw string) (string, error) {
	if from.Scheme != to.Scheme || !util.EqFold(from.Hostname(), to.Hostname()) || from.Port() != to.Port() {
		return raw, nil
	}

	fromPath, fromOK := uriPath(from)
	toPath, toOK := uriPath(to)
	switch {
	case !fromOK && !toOK:
		return "", nil
	case !fromOK:
		return toPath, nil
	case !toOK:
		return raw, nil
	}

	fsplit := util.SplitDropTrailing(strings.TrimPrefix(fromPath, "/"), "/")
	tsplit := util.SplitDropTrailing(strings.TrimPrefix(toPath, "/"), "/")

	f := 0
	for ; f < len(fsplit) && f < len(tsplit); f++ {
		if fsplit[f] != tsplit[f] {
			break
		}
	}

	b := NewBuilder().Path("")
	for range fsplit[f:] {
		b.Path("..")
	}
	for _, seg := range tsplit[f:] {
		b.Path(seg)
	}
	return errtrace.Wrap2(b.Build())
}

// uriPath returns the decoded path, opaque URIs have none.
func uriPath(u *url.URL) (string, bool) {
	if u.Opaque != "" {
		return "", false
	}
	return u.Path, true
}
