// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotRequest names the artifact to write and the columns to keep.
type SnapshotRequest struct {
	// Output is the destination parquet file. An existing file is
	// replaced only after the new one is completely written.
	Output string

	// Columns are written in this order. Each must be a visible
	// column of the view.
	Columns []string
}

// StageCount is the number of events that passed a stage and every
// stage before it.
type StageCount struct {
	Label  string `cbor:"label" json:"label"`
	Passed int64  `cbor:"passed" json:"passed"`
}

// Result is the cut flow of one materialization.
type Result struct {
	// Input is the number of events read.
	Input int64
	// Stages holds one count per filter, in application order.
	Stages []StageCount
	// Output is the number of events written.
	Output int64
}

// Snapshot evaluates the view in a single scan: it counts the
// survivors of every filter and writes the events passing all of them,
// restricted to request.Columns, to request.Output.
//
// When no event survives, Snapshot returns the populated Result along
// with [ErrNoSurvivors] and leaves request.Output untouched.
func (v *View) Snapshot(ctx context.Context, request SnapshotRequest) (*Result, error) {
	if len(request.Columns) == 0 {
		return nil, fmt.Errorf("engine: snapshot of %s requests no columns", request.Output)
	}

	plan, err := v.plan(ctx)
	if err != nil {
		return nil, err
	}
	if err := plan.require(request.Columns); err != nil {
		return nil, err
	}

	// Temporary tables are per connection, so every statement below
	// must run on the same one.
	conn, err := v.engine.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine: acquiring connection: %w", err)
	}
	defer conn.Close()

	id := v.engine.nextID()
	table := quoteIdentifier(fmt.Sprintf("skim_snapshot_%d", id))
	depth := quoteIdentifier(depthColumn)
	stageCount := len(plan.cuts)

	// Non-surviving events keep only their depth; their output columns
	// are NULL so the table holds little beyond the survivors.
	projected := make([]string, len(request.Columns))
	for i, column := range request.Columns {
		quoted := quoteIdentifier(column)
		projected[i] = fmt.Sprintf("CASE WHEN %s = %d THEN %s END AS %s", depth, stageCount, quoted, quoted)
	}
	create := fmt.Sprintf("CREATE TEMP TABLE %s AS SELECT %s, %s FROM (SELECT %s AS %s, * FROM (%s) AS events) AS scored",
		table, depth, strings.Join(projected, ", "), plan.depth(), depth, plan.query)
	if _, err := conn.ExecContext(ctx, create); err != nil {
		return nil, fmt.Errorf("engine: evaluating view: %w", err)
	}
	defer func() {
		if _, err := conn.ExecContext(context.Background(), "DROP TABLE IF EXISTS "+table); err != nil {
			v.engine.logger.Warn("dropping snapshot table", "table", table, "error", err)
		}
	}()

	result, err := countStages(ctx, conn, table, plan)
	if err != nil {
		return nil, err
	}
	if result.Output == 0 {
		return result, ErrNoSurvivors
	}

	if err := v.engine.writeParquet(ctx, conn, id, table, stageCount, request); err != nil {
		return result, err
	}
	return result, nil
}

func countStages(ctx context.Context, conn *sql.Conn, table string, plan *plan) (*Result, error) {
	depth := quoteIdentifier(depthColumn)
	aggregates := []string{"count(*)"}
	for i := range plan.cuts {
		aggregates = append(aggregates, fmt.Sprintf("count(*) FILTER (WHERE %s >= %d)", depth, i+1))
	}

	counts := make([]int64, len(aggregates))
	targets := make([]any, len(counts))
	for i := range counts {
		targets[i] = &counts[i]
	}
	query := "SELECT " + strings.Join(aggregates, ", ") + " FROM " + table
	if err := conn.QueryRowContext(ctx, query).Scan(targets...); err != nil {
		return nil, fmt.Errorf("engine: counting stages: %w", err)
	}

	result := &Result{Input: counts[0], Output: counts[len(counts)-1]}
	for i, label := range plan.labels {
		result.Stages = append(result.Stages, StageCount{Label: label, Passed: counts[i+1]})
	}
	return result, nil
}

// writeParquet copies the survivors to a temporary file next to the
// output and renames it into place, so a failed write leaves any
// previous artifact untouched.
func (e *Engine) writeParquet(ctx context.Context, conn *sql.Conn, id uint64, table string, stageCount int, request SnapshotRequest) error {
	directory := filepath.Dir(request.Output)
	temporary := filepath.Join(directory, fmt.Sprintf(".%s.%d.tmp", filepath.Base(request.Output), id))
	defer os.Remove(temporary)

	statement := fmt.Sprintf("COPY (SELECT %s FROM %s WHERE %s = %d) TO %s (FORMAT PARQUET, COMPRESSION %s)",
		quoteIdentifiers(request.Columns), table, quoteIdentifier(depthColumn), stageCount,
		quoteLiteral(temporary), e.options.Compression)
	if _, err := conn.ExecContext(ctx, statement); err != nil {
		return fmt.Errorf("engine: writing %s: %w", request.Output, err)
	}

	if err := os.Rename(temporary, request.Output); err != nil {
		return fmt.Errorf("engine: replacing %s: %w", request.Output, err)
	}
	return nil
}
