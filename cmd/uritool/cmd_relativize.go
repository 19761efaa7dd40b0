package main

import (
	"fmt"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/uribuilder/uri"
)

func newRelativizeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "relativize FROM TO",
		Short: "Print the path of TO relative to FROM",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := uri.Relativize(args[0], args[1])
			if err != nil {
				return errtrace.Wrap(err)
			}
			a.log.Debug("relativized", "from", args[0], "to", args[1], "result", s)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return errtrace.Wrap(err)
		},
	}
}
