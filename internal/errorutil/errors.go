// Package errorutil holds the error kinds shared by the URI packages.
package errorutil

//go:generate errtrace -w .

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ghettovoice/uribuilder/internal/util"
)

// Error is an error kind. Errors of a kind match it with [errors.Is].
type Error string

func (s Error) Error() string { return string(s) }

// ErrInvalidArgument is the kind of errors caused by an unusable argument.
const ErrInvalidArgument Error = "invalid argument"

// NewWrapperError returns an error of the given kind.
//
// With no args it returns kind. An error arg is wrapped unless it already
// matches kind. A string arg is used as a format for the rest of args.
func NewWrapperError(kind error, args ...any) error {
	if len(args) == 0 {
		return kind //errtrace:skip
	}
	switch v := args[0].(type) {
	case error:
		if errors.Is(v, kind) {
			return v //errtrace:skip
		}
		return fmt.Errorf("%w: %w", kind, v) //errtrace:skip
	case string:
		if len(args) > 1 {
			v = fmt.Sprintf(v, args[1:]...)
		}
		return fmt.Errorf("%w: %s", kind, v) //errtrace:skip
	default:
		return kind //errtrace:skip
	}
}

// NewInvalidArgumentError returns an error of [ErrInvalidArgument] kind.
func NewInvalidArgumentError(args ...any) error {
	return NewWrapperError(ErrInvalidArgument, args...) //errtrace:skip
}

// JoinPrefix joins non-nil errors into one reported under prefix.
// It returns nil when all errors are nil.
func JoinPrefix(prefix string, errs ...error) error {
	var kept []error
	for _, err := range errs {
		if err != nil {
			kept = append(kept, err)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("%s: %w", strings.TrimSuffix(prefix, ":"), kept[0]) //errtrace:skip
	default:
		return &joinError{prefix: strings.TrimSuffix(prefix, ":"), errs: kept} //errtrace:skip
	}
}

type joinError struct {
	prefix string
	errs   []error
}

// Error lists the errors one per line below the prefix.
func (e *joinError) Error() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString(e.prefix)
	sb.WriteByte(':')
	for _, err := range e.errs {
		sb.WriteString("\n  - ")
		sb.WriteString(strings.ReplaceAll(err.Error(), "\n", "\n    "))
	}
	return sb.String()
}

func (e *joinError) Unwrap() []error { return e.errs }
