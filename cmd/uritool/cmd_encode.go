package main

import (
	"fmt"
	"slices"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/uribuilder/internal/errorutil"
	"github.com/ghettovoice/uribuilder/uri"
)

type encodeMode string

const (
	encodeContextual encodeMode = "contextual"
	encodeAsIs       encodeMode = "as-is"
	encodeSave       encodeMode = "save-encodings"
)

var encoders = map[string]map[encodeMode]func(string) string{
	"path": {
		encodeContextual: uri.EncodePath,
		encodeAsIs:       uri.EncodePathAsIs,
		encodeSave:       uri.EncodePathSaveEncodings,
	},
	"segment": {
		encodeContextual: uri.EncodePathSegment,
		encodeAsIs:       uri.EncodePathSegmentAsIs,
		encodeSave:       uri.EncodePathSegmentSaveEncodings,
	},
	"query-param": {
		encodeContextual: uri.EncodeQueryParam,
		encodeAsIs:       uri.EncodeQueryParamAsIs,
		encodeSave:       uri.EncodeQueryParamSaveEncodings,
	},
	"matrix": {encodeContextual: uri.EncodeMatrixParam},
	"query":  {encodeContextual: uri.EncodeQueryString},
	"fragment": {
		encodeContextual: uri.EncodeFragment,
	},
	"non-codes": {encodeContextual: uri.EncodeNonCodes},
}

func encoderFor(comp string, mode encodeMode) (func(string) string, error) {
	modes, ok := encoders[comp]
	if !ok {
		names := make([]string, 0, len(encoders))
		for n := range encoders {
			names = append(names, n)
		}
		slices.Sort(names)
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(
			"component %q, want one of %v", comp, strings.Join(names, ", ")))
	}
	enc, ok := modes[mode]
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("mode %q is not supported by %v", mode, comp))
	}
	return enc, nil
}

func newEncodeCommand(*app) *cobra.Command {
	var comp, mode string
	cmd := &cobra.Command{
		Use:   "encode VALUE",
		Short: "Percent-encode a value for a URI component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := encoderFor(comp, encodeMode(mode))
			if err != nil {
				return errtrace.Wrap(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), enc(args[0]))
			return errtrace.Wrap(err)
		},
	}
	cmd.Flags().StringVarP(&comp, "component", "C", "path", "component: path, segment, matrix, query-param, query, fragment or non-codes")
	cmd.Flags().StringVar(&mode, "mode", string(encodeContextual), "mode: contextual, as-is or save-encodings")
	return cmd
}
