// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so that the exit status and
// any wrapping script can tell bad input from a broken run.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// wrong argument count, unknown flags or commands. Exits with
	// status 2.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced resource does not exist:
	// unknown process tag or partition, missing bundle or sidecar.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryInternal indicates an unexpected failure: I/O errors,
	// engine errors, unreadable files the system produced.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by commands. It wraps the
// inner error so that errors.Is and errors.As still see the cause.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
