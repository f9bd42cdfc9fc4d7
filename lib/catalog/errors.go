// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrProcessNotFound means the requested process tag is not in the
	// catalog.
	ErrProcessNotFound = errors.New("process not found")

	// ErrPartNotFound means the partition selector names a partition
	// the process does not have.
	ErrPartNotFound = errors.New("partition not found")

	// ErrMissingMetadata means a simulated sample lacks the cross
	// section or generator-weight sum needed for normalization.
	ErrMissingMetadata = errors.New("missing sample metadata")
)

// ConfigError is a catalog problem the operator must fix before a run
// can start. Tag and Partition identify what was being resolved.
type ConfigError struct {
	Tag       string
	Partition string
	Err       error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Partition != "":
		return fmt.Sprintf("catalog: process %q partition %q: %v", e.Tag, e.Partition, e.Err)
	case e.Tag != "":
		return fmt.Sprintf("catalog: process %q: %v", e.Tag, e.Err)
	default:
		return fmt.Sprintf("catalog: %v", e.Err)
	}
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError reports whether err is (or wraps) a catalog
// configuration error.
func IsConfigError(err error) bool {
	var configError *ConfigError
	return errors.As(err, &configError)
}
