package main

import (
	"fmt"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/uribuilder/uri"
)

func newVarsCommand(a *app) *cobra.Command {
	var (
		check    []string
		distinct bool
	)
	cmd := &cobra.Command{
		Use:   "vars TEMPLATE",
		Short: "List template placeholders",
		Long: "List template placeholders one per line as name or name:constraint. " +
			"With --check the values are validated against the constraints instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(check) > 0 {
				vs, err := parseValues(check)
				if err != nil {
					return errtrace.Wrap(err)
				}
				b, err := a.builder(args[0])
				if err != nil {
					return errtrace.Wrap(err)
				}
				if err := b.CheckValues(vs); err != nil {
					return errtrace.Wrap(err)
				}
				_, err = fmt.Fprintln(out, "ok")
				return errtrace.Wrap(err)
			}

			if distinct {
				b, err := a.builder(args[0])
				if err != nil {
					return errtrace.Wrap(err)
				}
				for _, n := range b.PathParamNames() {
					if _, err := fmt.Fprintln(out, n); err != nil {
						return errtrace.Wrap(err)
					}
				}
				return nil
			}

			for _, v := range uri.TemplateVars(args[0]) {
				line := v.Name
				if v.Constraint != "" {
					line += ":" + v.Constraint
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return errtrace.Wrap(err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&check, "check", nil, "value to check as name=value")
	cmd.Flags().BoolVar(&distinct, "distinct", false, "list distinct names in substitution order")
	return cmd
}
