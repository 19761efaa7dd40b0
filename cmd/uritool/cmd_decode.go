package main

import (
	"fmt"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/uribuilder/uri"
)

func newDecodeCommand(*app) *cobra.Command {
	var plus bool
	cmd := &cobra.Command{
		Use:   "decode VALUE",
		Short: "Decode percent-encoded triplets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := uri.DecodeComponent(args[0], plus)
			if err != nil {
				return errtrace.Wrap(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return errtrace.Wrap(err)
		},
	}
	cmd.Flags().BoolVar(&plus, "plus", false, `decode "+" as space`)
	return cmd
}
