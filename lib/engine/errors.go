// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import "errors"

var (
	// ErrSourceUnavailable means no shard of a partition could be
	// opened (or, under the strict shard policy, at least one could
	// not).
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrDuplicateColumn means a definition reuses the name of an
	// existing column.
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrUnknownColumn means a snapshot or aggregate names a column the
	// view does not have.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrNoSurvivors means no event passed every filter. Snapshot
	// returns it together with the populated cut flow and writes
	// nothing.
	ErrNoSurvivors = errors.New("no events survived the selection")
)
