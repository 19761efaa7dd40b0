package uri

import (
	"fmt"

	"github.com/ghettovoice/uribuilder/internal/errorutil"
)

const (
	// ErrInvalidArgument is returned when a builder method receives an unusable argument,
	// such as an empty host, a port below -1 or a nil value.
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	// ErrMissingTemplateVar is returned when a build has no value for a placeholder.
	ErrMissingTemplateVar errorutil.Error = "missing template variable"
	// ErrMalformedURI is returned when a URI or template string cannot be parsed.
	ErrMalformedURI errorutil.Error = "malformed URI"
	// ErrBuildFailure is returned when the built string is not a valid URI reference.
	ErrBuildFailure errorutil.Error = "URI build failure"
)

// MissingVarError describes a placeholder that could not be resolved.
// It matches [ErrMissingTemplateVar] with [errors.Is].
type MissingVarError struct {
	Name string
	// Nil is true when a value was supplied but it was nil.
	Nil bool
}

func (e *MissingVarError) Error() string {
	if e.Nil {
		return fmt.Sprintf("%s: nil value for %q", ErrMissingTemplateVar, e.Name)
	}
	return fmt.Sprintf("%s: %q", ErrMissingTemplateVar, e.Name)
}

func (*MissingVarError) Is(target error) bool { return target == ErrMissingTemplateVar } //nolint:errorlint

func newInvalidArgErr(args ...any) error {
	return errorutil.NewInvalidArgumentError(args...) //errtrace:skip
}

func newMalformedURIErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedURI, args...) //errtrace:skip
}

func newBuildFailureErr(args ...any) error {
	return errorutil.NewWrapperError(ErrBuildFailure, args...) //errtrace:skip
}
