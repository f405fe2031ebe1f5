package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped command errors.
const (
	CodeInvalidMessage = "FOLIO_COMMAND_INVALID"
	CodeCancelled      = "FOLIO_COMMAND_CANCELLED"
	CodeTimedOut       = "FOLIO_COMMAND_TIMED_OUT"
	CodeFailed         = "FOLIO_COMMAND_FAILED"
)

// Errors that already carry a go-errors category pass through untouched so
// nested handlers do not stack envelopes.

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid command message").
		WithTextCode(CodeInvalidMessage)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command timed out").
			WithTextCode(CodeTimedOut)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command cancelled").
		WithTextCode(CodeCancelled)
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command failed").
		WithTextCode(CodeFailed)
}
