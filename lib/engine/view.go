// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// cutPrefix marks the internal boolean column of a filter.
const cutPrefix = "__cut_"

// depthColumn holds the number of leading filters an event passes.
const depthColumn = "__depth"

// Stage is one filter of a view: a report label and a boolean SQL
// predicate over the view's columns.
type Stage struct {
	Label     string
	Predicate string
}

type operationKind int

const (
	filterOperation operationKind = iota
	defineOperation
)

type operation struct {
	kind operationKind
	// name is the output column: the cut column for filters, the
	// defined name for definitions.
	name string
	// label is the stage label of a filter.
	label      string
	expression string
}

// View is an immutable, lazily evaluated description of a computation
// over a fixed set of shards. The zero value is not usable; views come
// from [Engine.Open].
type View struct {
	engine     *Engine
	files      []string
	operations []operation
}

// Files returns the table files the view reads.
func (v *View) Files() []string { return slices.Clone(v.files) }

// Filter returns a view that additionally requires predicate. The
// receiver is unchanged.
func (v *View) Filter(label, predicate string) *View {
	index := len(v.Stages())
	return v.with(operation{
		kind:       filterOperation,
		name:       fmt.Sprintf("%s%d", cutPrefix, index),
		label:      label,
		expression: predicate,
	})
}

// Define returns a view with an additional computed column. Reusing an
// existing name is reported by the next trigger as
// [ErrDuplicateColumn].
func (v *View) Define(name, expression string) *View {
	return v.with(operation{kind: defineOperation, name: name, expression: expression})
}

func (v *View) with(op operation) *View {
	operations := make([]operation, len(v.operations), len(v.operations)+1)
	copy(operations, v.operations)
	return &View{engine: v.engine, files: v.files, operations: append(operations, op)}
}

// Stages returns the filters in application order.
func (v *View) Stages() []Stage {
	var stages []Stage
	for _, op := range v.operations {
		if op.kind == filterOperation {
			stages = append(stages, Stage{Label: op.label, Predicate: op.expression})
		}
	}
	return stages
}

// Schema returns the visible column names in discovery order followed
// by definitions in the order they were added.
func (v *View) Schema(ctx context.Context) ([]string, error) {
	plan, err := v.plan(ctx)
	if err != nil {
		return nil, err
	}
	return plan.columns, nil
}

// plan is a view compiled to SQL.
type plan struct {
	// query selects every base column, every definition and every cut
	// column.
	query string
	// columns lists the visible columns.
	columns []string
	// cuts lists the cut columns in application order and labels the
	// matching stage labels.
	cuts   []string
	labels []string
}

// plan reads the base schema and compiles the operations. This is the
// only storage access made for a view besides its trigger query.
func (v *View) plan(ctx context.Context) (*plan, error) {
	source := "SELECT * FROM read_parquet([" + quoteLiterals(v.files) + "], union_by_name = true)"

	columns, err := v.engine.columns(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%w: reading schema: %v", ErrSourceUnavailable, err)
	}

	known := make(map[string]bool, len(columns))
	for _, column := range columns {
		known[column] = true
	}

	query := source
	var cuts, labels []string
	for i, op := range v.operations {
		var expression string
		switch op.kind {
		case filterOperation:
			expression = "coalesce((" + op.expression + "), false)"
			cuts = append(cuts, op.name)
			labels = append(labels, op.label)
		case defineOperation:
			if known[op.name] || strings.HasPrefix(op.name, cutPrefix) || op.name == depthColumn {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, op.name)
			}
			known[op.name] = true
			columns = append(columns, op.name)
			expression = "(" + op.expression + ")"
		}
		query = fmt.Sprintf("SELECT *, %s AS %s FROM (%s) AS step%d",
			expression, quoteIdentifier(op.name), query, i)
	}

	return &plan{query: query, columns: columns, cuts: cuts, labels: labels}, nil
}

// passing returns a WHERE clause selecting events that pass every cut,
// or "" when there are none.
func (p *plan) passing() string {
	if len(p.cuts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(quoteAll(p.cuts), " AND ")
}

// depth returns an expression counting the leading cuts an event
// passes.
func (p *plan) depth() string {
	if len(p.cuts) == 0 {
		return "0"
	}
	var builder strings.Builder
	builder.WriteString("CASE")
	for i, cut := range p.cuts {
		fmt.Fprintf(&builder, " WHEN NOT %s THEN %d", quoteIdentifier(cut), i)
	}
	fmt.Fprintf(&builder, " ELSE %d END", len(p.cuts))
	return builder.String()
}

// require fails with [ErrUnknownColumn] listing every requested column
// the plan does not have.
func (p *plan) require(columns []string) error {
	var missing []string
	for _, column := range columns {
		if !slices.Contains(p.columns, column) {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, strings.Join(missing, ", "))
	}
	return nil
}

func quoteAll(names []string) []string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = quoteIdentifier(name)
	}
	return quoted
}

// columns returns the result column names of query.
func (e *Engine) columns(ctx context.Context, query string) ([]string, error) {
	rows, err := e.db.QueryContext(ctx, "SELECT * FROM ("+query+") AS probe LIMIT 0")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return rows.Columns()
}
