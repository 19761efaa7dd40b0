package link

import (
	"github.com/ghettovoice/uribuilder/internal/errorutil"
)

const (
	// ErrInvalidArgument is returned when a builder method receives an unusable argument.
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	// ErrMalformedLink is returned when a Link header value cannot be parsed.
	ErrMalformedLink errorutil.Error = "malformed link"
)

func newInvalidArgErr(args ...any) error {
	return errorutil.NewInvalidArgumentError(args...) //errtrace:skip
}

func newMalformedErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedLink, args...) //errtrace:skip
}
