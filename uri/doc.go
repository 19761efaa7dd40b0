// Package uri builds RFC 3986 URIs from components and URI templates.
//
// # Templates
//
// A template is a URI reference with placeholders:
//
//	/users/{id}
//	/files/{name:[a-z]+\.(txt|md)}
//	{scheme}://{host}/search?q={query}
//
// A placeholder name matches [0-9A-Za-z_][0-9A-Za-z_.-]*. An optional regular
// expression after ":" constrains the value, it may contain nested braces,
// see [Builder.CheckValues].
//
// # Building
//
// [Builder] keeps the scheme, user info, host, port, path, query and fragment,
// or an opaque scheme-specific part, or an unparsed authority. Mutators encode
// their input with the table of the target component and keep placeholders intact:
//
//	b, err := uri.FromTemplate("https://example.com/users/{id}")
//	if err != nil {
//	    return err
//	}
//	s, err := b.QueryParam("fields", "name", "email").Build(42)
//	// https://example.com/users/42?fields=name&fields=email
//
// Values are substituted by position ([Builder.Build]) or by name
// ([Builder.BuildFromMap]). The *FromEncoded variants keep valid "%XX"
// triplets of values. [Builder.ResolveTemplate] substitutes some placeholders and
// keeps the rest for a later build, [Builder.ToTemplate] returns the template form.
//
// # Query parameters
//
// Multiple values of one parameter are written according to [QueryParamMode]:
// "k=1&k=2" ([MultiPairs]), "k=1,2" ([CommaSeparated]) or "k[]=1&k[]=2"
// ([ArrayPairs]). In the last mode the "[]" suffix is written only when one call
// supplies more than one value.
//
// # Errors
//
// Mutators record the first invalid argument in the builder and ignore further
// calls, the error is returned by [Builder.Err] and by all build methods.
// Errors match one of [ErrInvalidArgument], [ErrMissingTemplateVar],
// [ErrMalformedURI] and [ErrBuildFailure] with [errors.Is].
// A missing placeholder value is reported as [*MissingVarError].
//
// # Thread Safety
//
// Builder is not safe for concurrent modification. [Builder.Clone] returns an
// independent copy, [Target] clones on every modification.
package uri
