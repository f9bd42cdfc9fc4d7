// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ErrOutputUnwritable means the output directory cannot be created or
// written to.
var ErrOutputUnwritable = errors.New("output directory not writable")

// checkOutputDirectory creates directory if needed and verifies that
// files can be created in it.
func checkOutputDirectory(directory string) error {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputUnwritable, err)
	}
	if err := unix.Access(directory, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutputUnwritable, directory, err)
	}
	return nil
}
