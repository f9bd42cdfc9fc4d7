// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/trilepton/skim/lib/catalog"
	"github.com/trilepton/skim/lib/clock"
	"github.com/trilepton/skim/lib/config"
	"github.com/trilepton/skim/lib/engine"
	"github.com/trilepton/skim/lib/projection"
	"github.com/trilepton/skim/lib/selection"
	"github.com/trilepton/skim/lib/snapshot"
	"github.com/trilepton/skim/lib/weight"
)

// Runner executes runs against one engine and catalog.
type Runner struct {
	Engine  *engine.Engine
	Catalog *catalog.Catalog
	Config  *config.Config
	Clock   clock.Clock
	Logger  *slog.Logger

	// Stdout receives cut-flow reports and the run summary.
	Stdout io.Writer

	// Printer renders cut flows. Nil means snapshot.NewPrinter(Stdout).
	Printer *snapshot.Printer

	// Results receives JSONL progress. Nil disables it.
	Results *ResultLog
}

// plan is everything resolved before the first partition.
type plan struct {
	process    *catalog.Process
	sample     catalog.Sample
	partitions []catalog.Partition
	model      weight.Model
}

// Run processes the partitions of tag selected by selector. The error
// is non-nil only when the run could not start; partition failures are
// reported in the summary.
func (r *Runner) Run(ctx context.Context, tag, selector string) (*Summary, error) {
	start := r.Clock.Now()
	logger := r.Logger.With("process", tag)

	plan, err := r.resolve(tag, selector)
	if err != nil {
		logger.Error("run aborted before any partition", "selector", selector, "error", err)
		return nil, err
	}

	names := make([]string, len(plan.partitions))
	for i, partition := range plan.partitions {
		names[i] = partition.Name
	}
	logger.Info("run started",
		"sample", plan.sample.Kind(),
		"selector", selector,
		"partitions", len(plan.partitions),
	)
	r.Results.writeStart(tag, selector, names, start)

	printer := r.Printer
	if printer == nil {
		printer = snapshot.NewPrinter(r.Stdout)
	}
	writer := &snapshot.Writer{
		Printer: printer,
		Sidecar: r.Config.Output.CutflowSidecar,
		Clock:   r.Clock,
		Logger:  r.Logger,
	}

	summary := &Summary{Process: tag, Selector: selector}
	for _, partition := range plan.partitions {
		result := r.runPartition(ctx, plan, partition, writer)
		summary.record(result)
		r.Results.writePartition(&result)

		partitionLogger := logger.With("partition", partition.Name)
		if result.Err != nil {
			partitionLogger.Error("partition failed", "error", result.Err, "elapsed", result.Elapsed)
		} else {
			partitionLogger.Info("partition complete", "output", result.Output, "elapsed", result.Elapsed)
		}
	}

	summary.Elapsed = clock.Since(r.Clock, start)
	r.Results.writeSummary(summary)
	if err := summary.Print(r.Stdout); err != nil {
		logger.Warn("printing summary", "error", err)
	}
	logger.Info("run finished",
		"outcome", summary.Outcome().String(),
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"elapsed", summary.Elapsed,
	)
	return summary, nil
}

// resolve performs every check that can fail the run as a whole.
func (r *Runner) resolve(tag, selector string) (*plan, error) {
	process, err := r.Catalog.Lookup(tag)
	if err != nil {
		return nil, err
	}
	sample, err := process.Metadata.Sample()
	if err != nil {
		return nil, err
	}
	partitions, err := process.Select(selector)
	if err != nil {
		return nil, err
	}

	var model weight.Model
	if _, simulated := sample.(catalog.Simulated); simulated {
		convention, err := weight.ParseConvention(r.Config.Weighting.Convention)
		if err != nil {
			return nil, fmt.Errorf("weighting: %w", err)
		}
		model = weight.Model{Convention: convention, LuminosityPBInv: r.Config.Weighting.LuminosityPBInv}
	}

	if err := checkOutputDirectory(r.Config.Output.Directory); err != nil {
		return nil, err
	}

	return &plan{process: process, sample: sample, partitions: partitions, model: model}, nil
}

// runPartition builds, filters, weights, projects and writes one
// partition. It never panics.
func (r *Runner) runPartition(ctx context.Context, plan *plan, partition catalog.Partition, writer *snapshot.Writer) (result PartitionResult) {
	start := r.Clock.Now()
	tag := plan.process.Tag()
	logger := r.Logger.With("process", tag, "partition", partition.Name)

	result = PartitionResult{
		Name:   partition.Name,
		Output: r.Config.OutputPath(tag, partition.Name),
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			logger.Error("partition panicked", "panic", recovered, "stack", string(debug.Stack()))
			result.Err = fmt.Errorf("panic: %v", recovered)
		}
		result.Elapsed = clock.Since(r.Clock, start)
	}()

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	shards := partition.Shards
	if limit := r.Config.Input.MaxFiles; limit > 0 && limit < len(shards) {
		logger.Info("limiting shards", "using", limit, "available", len(shards))
		shards = shards[:limit]
	}
	result.Shards = len(shards)

	view, err := r.Engine.Open(ctx, shards, r.Config.Input.Tree)
	if err != nil {
		result.Err = err
		return result
	}

	view, _ = selection.Apply(view, r.Config.Selection.Triggers, r.Config.Selection.METFilters)

	switch sample := plan.sample.(type) {
	case catalog.Simulated:
		record, err := plan.model.Compute(sample, logger)
		if err != nil {
			result.Err = err
			return result
		}
		result.Weight = &record
		logger.Info("weight computed",
			"convention", string(record.Convention),
			"global_scale", record.GlobalScale,
		)
		view = weight.Attach(view, record, r.Config.Weighting.GeneratorWeightColumn)
	case catalog.RealData:
	}

	schema, err := view.Schema(ctx)
	if err != nil {
		result.Err = err
		return result
	}
	request := projection.ForSample(r.Config.Branches, plan.sample)
	branches := projection.Project(request.Explicit, request.Wildcards, schema)
	for _, match := range branches.Matches {
		logger.Debug("wildcard expanded", "pattern", match.Pattern, "columns", match.Count)
	}
	logger.Info("branches resolved", "columns", len(branches.Names), "missing", len(branches.Missing))

	report, err := writer.Write(ctx, view, snapshot.Target{
		Process:   tag,
		Partition: partition.Name,
		Output:    result.Output,
	}, branches)
	result.Report = report
	result.Err = err
	return result
}
