// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

// Event is one row of [EventsTable]. Zero values pass nothing: an
// Event{} has no good vertex, no jets, no leptons and no flags set.
type Event struct {
	Run, Number                int64
	GoodVertices, Jets         int
	Muons, Electrons           int
	TriggerA, TriggerB         bool
	FlagA, FlagB               bool
	GeneratorWeight            float64
	ElectronPt, MuonPt, JetEta float64
}

// Trilepton returns an event passing every stage of the default-style
// selection with triggers HLT_A/HLT_B and flags Flag_A/Flag_B.
func Trilepton(number int64, generatorWeight float64) Event {
	return Event{
		Run: 1, Number: number,
		GoodVertices: 1, Jets: 2, Muons: 2, Electrons: 1,
		TriggerA: true, FlagA: true, FlagB: true,
		GeneratorWeight: generatorWeight,
		ElectronPt:      35, MuonPt: 28, JetEta: 1.2,
	}
}

// EventColumns are the columns of [EventsTable], in file order.
var EventColumns = []Column{
	{"run", "BIGINT"},
	{"event", "BIGINT"},
	{"PV_npvsGood", "INTEGER"},
	{"nJet", "INTEGER"},
	{"nMuon", "INTEGER"},
	{"nElectron", "INTEGER"},
	{"HLT_A", "BOOLEAN"},
	{"HLT_B", "BOOLEAN"},
	{"Flag_A", "BOOLEAN"},
	{"Flag_B", "BOOLEAN"},
	{"genWeight", "DOUBLE"},
	{"Electron_pt", "DOUBLE"},
	{"Muon_pt", "DOUBLE"},
	{"Jet_eta", "DOUBLE"},
}

// EventsTable builds an Events table from events.
func EventsTable(events ...Event) Table {
	rows := make([][]any, len(events))
	for i, e := range events {
		rows[i] = []any{
			e.Run, e.Number,
			e.GoodVertices, e.Jets, e.Muons, e.Electrons,
			e.TriggerA, e.TriggerB, e.FlagA, e.FlagB,
			e.GeneratorWeight,
			e.ElectronPt, e.MuonPt, e.JetEta,
		}
	}
	return Table{Columns: EventColumns, Rows: rows}
}

// RunsTable builds a Runs table with one genEventSumw value per run.
func RunsTable(sums ...float64) Table {
	rows := make([][]any, len(sums))
	for i, sum := range sums {
		rows[i] = []any{int64(i + 1), sum}
	}
	return Table{
		Columns: []Column{{"run", "BIGINT"}, {"genEventSumw", "DOUBLE"}},
		Rows:    rows,
	}
}

// ColumnNames returns the names of [EventColumns].
func ColumnNames() []string {
	names := make([]string, len(EventColumns))
	for i, column := range EventColumns {
		names[i] = column.Name
	}
	return names
}
