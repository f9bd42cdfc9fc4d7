// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package selection builds the trilepton event selection on top of an
// [engine.View].
//
// The selection has up to three stages, applied in this order:
//
//  1. [TriggerStage]: at least one listed trigger fired (OR)
//  2. [METFilterStage]: every listed event-quality flag passed (AND)
//  3. [MultiplicityStage]: a good primary vertex, at least one jet and
//     at least three leptons
//
// An empty trigger or MET filter list skips its stage entirely: it
// adds no filter and no cut-flow row. The multiplicity stage is always
// applied.
package selection

import (
	"strings"

	"github.com/trilepton/skim/lib/engine"
)

// Stage labels as they appear in cut-flow reports.
const (
	TriggerStage      = "Combined Trigger Cut"
	METFilterStage    = "Combined MET Cut"
	MultiplicityStage = "Good PV, >=1 jet, >=3 leptons"
)

// MultiplicityPredicate requires a good primary vertex, a jet and three
// leptons.
const MultiplicityPredicate = "PV_npvsGood > 0 AND nJet > 0 AND nMuon + nElectron >= 3"

// Stages returns the filter stages for the given flag columns, in
// application order.
func Stages(triggers, metFilters []string) []engine.Stage {
	var stages []engine.Stage
	if len(triggers) > 0 {
		stages = append(stages, engine.Stage{Label: TriggerStage, Predicate: combine(triggers, " OR ")})
	}
	if len(metFilters) > 0 {
		stages = append(stages, engine.Stage{Label: METFilterStage, Predicate: combine(metFilters, " AND ")})
	}
	return append(stages, engine.Stage{Label: MultiplicityStage, Predicate: MultiplicityPredicate})
}

// Apply adds the selection to view and returns the filtered view with
// the stages it added. It does not read any data.
func Apply(view *engine.View, triggers, metFilters []string) (*engine.View, []engine.Stage) {
	stages := Stages(triggers, metFilters)
	for _, stage := range stages {
		view = view.Filter(stage.Label, stage.Predicate)
	}
	return view, stages
}

// combine joins flag columns with operator. Each column is quoted so
// that names are never parsed as expressions.
func combine(columns []string, operator string) string {
	terms := make([]string, len(columns))
	for i, column := range columns {
		terms[i] = "(" + `"` + strings.ReplaceAll(column, `"`, `""`) + `"` + ")"
	}
	return strings.Join(terms, operator)
}
