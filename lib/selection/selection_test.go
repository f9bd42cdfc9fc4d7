// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package selection

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/trilepton/skim/lib/engine"
	"github.com/trilepton/skim/lib/testutil"
)

func TestStages(t *testing.T) {
	tests := []struct {
		name       string
		triggers   []string
		metFilters []string
		want       []engine.Stage
	}{
		{
			name:       "all stages",
			triggers:   []string{"HLT_A", "HLT_B"},
			metFilters: []string{"Flag_A", "Flag_B"},
			want: []engine.Stage{
				{Label: TriggerStage, Predicate: `("HLT_A") OR ("HLT_B")`},
				{Label: METFilterStage, Predicate: `("Flag_A") AND ("Flag_B")`},
				{Label: MultiplicityStage, Predicate: MultiplicityPredicate},
			},
		},
		{
			name:       "no triggers",
			metFilters: []string{"A", "B"},
			want: []engine.Stage{
				{Label: METFilterStage, Predicate: `("A") AND ("B")`},
				{Label: MultiplicityStage, Predicate: MultiplicityPredicate},
			},
		},
		{
			name:     "no MET filters",
			triggers: []string{"HLT_A"},
			want: []engine.Stage{
				{Label: TriggerStage, Predicate: `("HLT_A")`},
				{Label: MultiplicityStage, Predicate: MultiplicityPredicate},
			},
		},
		{
			name: "multiplicity only",
			want: []engine.Stage{{Label: MultiplicityStage, Predicate: MultiplicityPredicate}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Stages(test.triggers, test.metFilters)
			if len(got) != len(test.want) {
				t.Fatalf("Stages() = %v, want %v", got, test.want)
			}
			for i := range got {
				if got[i] != test.want[i] {
					t.Errorf("stage %d = %+v, want %+v", i, got[i], test.want[i])
				}
			}
		})
	}
}

func openEvents(t *testing.T, events ...testutil.Event) (*engine.View, string) {
	t.Helper()
	directory := t.TempDir()
	shard := testutil.WriteShard(t, directory, "shard", map[string]testutil.Table{
		"Events": testutil.EventsTable(events...),
	})
	eng, err := engine.New(context.Background(), engine.Options{Logger: testutil.DiscardLogger()})
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	t.Cleanup(func() { eng.Close() })
	view, err := eng.Open(context.Background(), []string{shard}, "Events")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return view, directory
}

func TestApplyCutFlowIsMonotone(t *testing.T) {
	noTrigger := testutil.Trilepton(2, 1)
	noTrigger.TriggerA = false

	badFlag := testutil.Trilepton(3, 1)
	badFlag.FlagB = false

	twoLeptons := testutil.Trilepton(4, 1)
	twoLeptons.Muons = 1

	noVertex := testutil.Trilepton(5, 1)
	noVertex.GoodVertices = 0

	otherTrigger := testutil.Trilepton(6, 1)
	otherTrigger.TriggerA, otherTrigger.TriggerB = false, true

	view, directory := openEvents(t,
		testutil.Trilepton(1, 1), noTrigger, badFlag, twoLeptons, noVertex, otherTrigger)

	filtered, stages := Apply(view, []string{"HLT_A", "HLT_B"}, []string{"Flag_A", "Flag_B"})
	if len(stages) != 3 {
		t.Fatalf("got %d stages, want 3", len(stages))
	}
	if len(view.Stages()) != 0 {
		t.Error("Apply mutated the input view")
	}

	result, err := filtered.Snapshot(context.Background(), engine.SnapshotRequest{
		Output:  filepath.Join(directory, "out.parquet"),
		Columns: []string{"event"},
	})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	want := []int64{5, 4, 2}
	previous := result.Input
	for i, stage := range result.Stages {
		if stage.Passed != want[i] {
			t.Errorf("stage %q passed %d, want %d", stage.Label, stage.Passed, want[i])
		}
		if stage.Passed > previous {
			t.Errorf("stage %q count %d exceeds previous %d", stage.Label, stage.Passed, previous)
		}
		previous = stage.Passed
	}
	if result.Input != 6 || result.Output != 2 {
		t.Errorf("input %d output %d, want 6 and 2", result.Input, result.Output)
	}
}

func TestApplyWithoutTriggers(t *testing.T) {
	badFlag := testutil.Trilepton(2, 1)
	badFlag.FlagA = false
	view, directory := openEvents(t, testutil.Trilepton(1, 1), badFlag, testutil.Trilepton(3, 1))

	filtered, stages := Apply(view, nil, []string{"Flag_A", "Flag_B"})
	for _, stage := range stages {
		if stage.Label == TriggerStage {
			t.Fatal("empty trigger list produced a trigger stage")
		}
	}

	result, err := filtered.Snapshot(context.Background(), engine.SnapshotRequest{
		Output:  filepath.Join(directory, "out.parquet"),
		Columns: []string{"event"},
	})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(result.Stages) != 2 || result.Stages[0].Label != METFilterStage {
		t.Fatalf("stages = %+v", result.Stages)
	}
	if result.Stages[0].Passed > result.Input || result.Stages[0].Passed != 2 {
		t.Errorf("MET stage passed %d of %d", result.Stages[0].Passed, result.Input)
	}
}
