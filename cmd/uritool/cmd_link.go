package main

import (
	"fmt"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/uribuilder/link"
)

func newLinkCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Build or parse Link header values",
	}
	cmd.AddCommand(newLinkBuildCommand(a), newLinkParseCommand(a))
	return cmd
}

func newLinkBuildCommand(a *app) *cobra.Command {
	var (
		rels       []string
		title, typ string
		base       string
		relativeTo string
		params     []string
	)
	cmd := &cobra.Command{
		Use:   "build TEMPLATE [VALUE]...",
		Short: "Build a Link header value from a URI template",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ub, err := a.builder(args[0])
			if err != nil {
				return errtrace.Wrap(err)
			}
			lb := link.NewBuilder(link.WithLogger(a.log)).URIBuilder(ub)
			if base != "" {
				lb.BaseURI(base)
			}
			for _, r := range rels {
				lb.Rel(r)
			}
			if title != "" {
				lb.Title(title)
			}
			if typ != "" {
				lb.Type(typ)
			}
			ps, err := parsePairs(params)
			if err != nil {
				return errtrace.Wrap(err)
			}
			for _, p := range ps {
				lb.Param(p.name, p.value)
			}

			var l *link.Link
			if relativeTo != "" {
				l, err = lb.BuildRelativized(relativeTo, toAny(args[1:])...)
			} else {
				l, err = lb.Build(toAny(args[1:])...)
			}
			if err != nil {
				return errtrace.Wrap(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), l.String())
			return errtrace.Wrap(err)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&rels, "rel", "r", nil, "link relation type")
	flags.StringVarP(&title, "title", "t", "", "title parameter")
	flags.StringVar(&typ, "type", "", "media type parameter")
	flags.StringVarP(&base, "base", "b", "", "base URI to resolve a relative target against")
	flags.StringVar(&relativeTo, "relative-to", "", "write the target relative to this URI")
	flags.StringArrayVarP(&params, "param", "p", nil, "extra parameter as name=value")
	return cmd
}

func newLinkParseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse HEADER",
		Short: "Parse a Link header value and print one link per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, err := link.ParseList(args[0])
			if err != nil {
				return errtrace.Wrap(err)
			}
			for _, l := range ls {
				a.log.Debug("link parsed", "link", l)
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), l.String()); err != nil {
					return errtrace.Wrap(err)
				}
			}
			return nil
		},
	}
}
