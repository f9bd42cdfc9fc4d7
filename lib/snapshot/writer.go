// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/trilepton/skim/lib/clock"
	"github.com/trilepton/skim/lib/digest"
	"github.com/trilepton/skim/lib/engine"
	"github.com/trilepton/skim/lib/projection"
)

// ErrMissingBranches means requested explicit branches are absent from
// the input schema.
var ErrMissingBranches = errors.New("requested branches missing from input")

// Target identifies the artifact of one partition.
type Target struct {
	Process   string
	Partition string
	Output    string
}

// Writer materializes views into artifacts.
type Writer struct {
	Printer *Printer
	// Sidecar enables <output>.cutflow.cbor.
	Sidecar bool
	Clock   clock.Clock
	Logger  *slog.Logger
}

// Write materializes view restricted to branches.Names into
// target.Output. The returned report is non-nil whenever a cut flow
// was computed, including when the error is [engine.ErrNoSurvivors].
func (w *Writer) Write(ctx context.Context, view *engine.View, target Target, branches projection.BranchSet) (*Report, error) {
	logger := w.Logger.With("process", target.Process, "partition", target.Partition)

	if len(branches.Missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingBranches, strings.Join(branches.Missing, ", "))
	}

	start := w.Clock.Now()
	result, err := view.Snapshot(ctx, engine.SnapshotRequest{Output: target.Output, Columns: branches.Names})
	if result == nil {
		return nil, err
	}

	report := &Report{
		Process:   target.Process,
		Partition: target.Partition,
		Output:    target.Output,
		Input:     result.Input,
		Stages:    result.Stages,
		Events:    result.Output,
	}
	if err == nil {
		report.Digest, report.Bytes, err = digest.File(target.Output)
	}
	report.Elapsed = clock.Since(w.Clock, start)

	if printErr := w.Printer.Print(report); printErr != nil {
		logger.Warn("printing cut flow", "error", printErr)
	}
	if err != nil {
		return report, err
	}

	if w.Sidecar {
		path := target.Output + SidecarSuffix
		if err := WriteSidecar(path, report); err != nil {
			return report, fmt.Errorf("writing cut-flow sidecar: %w", err)
		}
	}

	logger.Info("artifact written",
		"output", target.Output,
		"events", report.Events,
		"bytes", report.Bytes,
		"digest", report.Digest.String(),
		"elapsed", report.Elapsed,
	)
	return report, nil
}
