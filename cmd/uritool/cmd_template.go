package main

import (
	"fmt"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"
)

func newTemplateCommand(a *app) *cobra.Command {
	var (
		vars        []string
		fromEncoded bool
	)
	cmd := &cobra.Command{
		Use:   "template TEMPLATE",
		Short: "Resolve some placeholders and print the remaining template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := parseValues(vars)
			if err != nil {
				return errtrace.Wrap(err)
			}
			b, err := a.builder(args[0])
			if err != nil {
				return errtrace.Wrap(err)
			}
			if fromEncoded {
				b.ResolveTemplatesFromEncoded(vs)
			} else {
				b.ResolveTemplatesSlash(vs, a.cfg.EncodeSlash)
			}
			s, err := b.ToTemplate()
			if err != nil {
				return errtrace.Wrap(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return errtrace.Wrap(err)
		},
	}
	cmd.Flags().StringArrayVarP(&vars, "var", "v", nil, "named value as name=value")
	cmd.Flags().BoolVar(&fromEncoded, "from-encoded", false, "values are already encoded")
	return cmd
}
