// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
)

// Process exit statuses.
const (
	ExitOK      = 0
	ExitFatal   = 1
	ExitUsage   = 2
	ExitPartial = 3
)

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output, as skim run does with its summary before exiting
// [ExitPartial].
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCode reports err on stderr (unless it is an [ExitError]) and
// returns the process exit status for it.
func ExitCode(err error, stderr io.Writer) int {
	if err == nil {
		return ExitOK
	}

	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}

	fmt.Fprintf(stderr, "error: %v\n", err)

	var toolError *ToolError
	if errors.As(err, &toolError) && toolError.Category == CategoryValidation {
		return ExitUsage
	}
	return ExitFatal
}
