package main

import (
	"fmt"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/uribuilder/internal/errorutil"
	"github.com/ghettovoice/uribuilder/uri"
)

type buildFlags struct {
	vars        []string
	segments    []string
	queries     []string
	matrix      []string
	fragment    string
	fromEncoded bool
	template    bool
}

func newBuildCommand(a *app) *cobra.Command {
	var f buildFlags
	cmd := &cobra.Command{
		Use:   "build TEMPLATE [VALUE]...",
		Short: "Build a URI from a template",
		Long: "Build a URI from a template. Positional values fill placeholders in the order " +
			"they first appear, --var binds values by name.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.build(args[0], args[1:], f)
			if err != nil {
				return errtrace.Wrap(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return errtrace.Wrap(err)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&f.vars, "var", "v", nil, "named value as name=value")
	flags.StringArrayVarP(&f.segments, "segment", "s", nil, "path segment to append")
	flags.StringArrayVarP(&f.queries, "query", "q", nil, "query parameter as name=value")
	flags.StringArrayVarP(&f.matrix, "matrix", "m", nil, "matrix parameter of the last segment as name=value")
	flags.StringVarP(&f.fragment, "fragment", "f", "", "fragment")
	flags.BoolVar(&f.fromEncoded, "from-encoded", false, "values are already encoded")
	flags.BoolVar(&f.template, "template", false, "keep unresolved placeholders")
	return cmd
}

func (a *app) build(tmpl string, args []string, f buildFlags) (string, error) {
	if len(args) > 0 && len(f.vars) > 0 {
		return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("positional values and --var are exclusive"))
	}

	b, err := a.builder(tmpl)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	b.Segment(f.segments...)

	ps, err := parsePairs(f.matrix)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	names, vals := groupPairs(ps)
	for _, n := range names {
		b.MatrixParam(n, vals[n]...)
	}

	if ps, err = parsePairs(f.queries); err != nil {
		return "", errtrace.Wrap(err)
	}
	names, vals = groupPairs(ps)
	for _, n := range names {
		b.QueryParam(n, vals[n]...)
	}

	if f.fragment != "" {
		b.Fragment(f.fragment)
	}

	var tv uri.TemplateValues
	if len(f.vars) > 0 {
		vs, err := parseValues(f.vars)
		if err != nil {
			return "", errtrace.Wrap(err)
		}
		tv = vs
	} else {
		tv = uri.Positional(toAny(args)...)
	}

	s, err := b.BuildFrom(tv, uri.BuildOptions{
		FromEncoded: f.fromEncoded,
		EncodeSlash: a.cfg.EncodeSlash && !f.fromEncoded,
		Template:    f.template,
	})
	if err != nil {
		a.log.Debug("failed to build URI", "template", tmpl, "error", err)
		return "", errtrace.Wrap(err)
	}
	if !f.template {
		if err := a.checkHost(s); err != nil {
			return "", errtrace.Wrap(err)
		}
	}
	a.log.Debug("URI built", "template", tmpl, "uri", s)
	return s, nil
}
