// Package testutil provides testing utilities for countdown.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
var (
	// ErrMockAPIError indicates a mock API error occurred.
	ErrMockAPIError = errors.New("API error")

	// ErrMockNetwork indicates a mock network error occurred.
	ErrMockNetwork = errors.New("network error")

	// ErrMockSubmitRejected indicates a mock entry submission was rejected.
	ErrMockSubmitRejected = errors.New("submission rejected")

	// ErrMockFormAborted indicates a mock interactive form was aborted.
	ErrMockFormAborted = errors.New("form aborted")
)
