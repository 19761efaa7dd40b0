/*
Package link implements RFC 8288 web links on top of [uri.Builder].

A [Link] is an immutable URI reference with parameters such as "rel", "title"
and "type". Links are rendered in the Link header field value form:

	<http://example.com/users/42>; rel="self"; title="User"

# Building

[Builder] accumulates a URI template, an optional base URI and parameters.
[Builder.Build] substitutes template values, resolves the result against the
base URI when it is relative and returns a new [Link]:

	l, err := link.NewBuilder().
		BaseURI("http://example.com/api/").
		URI("users/{id}").
		Rel("self").
		Build(42)

[Builder.BuildRelativized] returns a link whose URI is relative to another one.

# Parsing

[Parse] reads a single link-value, [ParseList] reads a comma separated list.
Malformed input returns [ErrMalformedLink].
*/
package link
