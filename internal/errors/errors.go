// Package errors provides centralized error handling for countdown.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrInvalidEndDate indicates that the countdown end date could not be
	// parsed into a point in time.
	ErrInvalidEndDate = errors.New("invalid end date")

	// ErrEventEnded indicates that a gated action was refused because the
	// countdown deadline has passed.
	ErrEventEnded = errors.New("event has ended")

	// ErrEventNotFound indicates that the event API returned no event.
	ErrEventNotFound = errors.New("event not found")

	// ErrEventFetch indicates that the event could not be fetched from the event API.
	ErrEventFetch = errors.New("event fetch failed")

	// ErrEntrySubmit indicates that the entry submission was rejected or failed.
	ErrEntrySubmit = errors.New("entry submission failed")

	// ErrMissingEndDate indicates that no end date was given and none could be resolved.
	ErrMissingEndDate = errors.New("no end date available")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidEvent indicates an invalid event API configuration value.
	ErrConfigInvalidEvent = errors.New("invalid event configuration")

	// ErrConfigInvalidCountdown indicates an invalid countdown configuration value.
	ErrConfigInvalidCountdown = errors.New("invalid countdown configuration")

	// ErrConfigInvalidServer indicates an invalid stream server configuration value.
	ErrConfigInvalidServer = errors.New("invalid server configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrJSONErrorOutput indicates that an error has already been output as JSON.
	// Commands return it so cobra does not print the error a second time.
	ErrJSONErrorOutput = errors.New("error output as JSON")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrTermsNotAccepted indicates that an entry was submitted without agreeing to the terms.
	ErrTermsNotAccepted = errors.New("terms not accepted")

	// ErrNonInteractiveMode indicates an operation needs a terminal or explicit flags.
	ErrNonInteractiveMode = errors.New("operation requires confirmation in non-interactive mode")

	// ErrOperationCanceled indicates the user canceled an interactive prompt.
	ErrOperationCanceled = errors.New("operation canceled")

	// ErrMenuCanceled indicates the user pressed q or Esc in a form.
	ErrMenuCanceled = errors.New("menu canceled")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
