// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package projection

import (
	"slices"
	"testing"

	"github.com/trilepton/skim/lib/catalog"
	"github.com/trilepton/skim/lib/config"
	"github.com/trilepton/skim/lib/weight"
)

var schema = []string{
	"run", "event", "nMuon", "nElectron",
	"Electron_pt", "Electron_eta", "Muon_pt", "Muon_eta",
	"Jet_pt", "GenPart_pdgId", "genWeight",
}

func TestProject(t *testing.T) {
	tests := []struct {
		name        string
		explicit    []string
		wildcards   []string
		wantNames   []string
		wantMissing []string
		wantCounts  []int
	}{
		{
			name:      "explicit only",
			explicit:  []string{"event", "run"},
			wantNames: []string{"event", "run"},
		},
		{
			name:       "wildcards in schema order",
			explicit:   []string{"event"},
			wildcards:  []string{"Muon_*", "Electron_*"},
			wantNames:  []string{"event", "Muon_pt", "Muon_eta", "Electron_pt", "Electron_eta"},
			wantCounts: []int{2, 2},
		},
		{
			name:       "explicit and wildcard overlap",
			explicit:   []string{"Electron_pt", "event"},
			wildcards:  []string{"Electron_*"},
			wantNames:  []string{"Electron_pt", "event", "Electron_eta"},
			wantCounts: []int{2},
		},
		{
			name:       "duplicate patterns",
			wildcards:  []string{"Jet_*", "Jet_*"},
			wantNames:  []string{"Jet_pt"},
			wantCounts: []int{1, 1},
		},
		{
			name:       "wildcard without matches",
			explicit:   []string{"run"},
			wildcards:  []string{"LHEPart_*"},
			wantNames:  []string{"run"},
			wantCounts: []int{0},
		},
		{
			name:        "missing explicit",
			explicit:    []string{"run", "Pileup_nPU", "run"},
			wantNames:   []string{"run", "Pileup_nPU"},
			wantMissing: []string{"Pileup_nPU"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			set := Project(test.explicit, test.wildcards, schema)
			if !slices.Equal(set.Names, test.wantNames) {
				t.Errorf("Names = %v, want %v", set.Names, test.wantNames)
			}
			if !slices.Equal(set.Missing, test.wantMissing) {
				t.Errorf("Missing = %v, want %v", set.Missing, test.wantMissing)
			}
			var counts []int
			for _, match := range set.Matches {
				counts = append(counts, match.Count)
			}
			if !slices.Equal(counts, test.wantCounts) {
				t.Errorf("match counts = %v, want %v", counts, test.wantCounts)
			}
		})
	}
}

func TestProjectIdempotent(t *testing.T) {
	explicit := []string{"event", "Muon_pt"}
	wildcards := []string{"Muon_*", "Electron_*"}

	first := Project(explicit, wildcards, schema)
	second := Project(first.Names, wildcards, schema)
	if !slices.Equal(first.Names, second.Names) {
		t.Errorf("projection not idempotent: %v then %v", first.Names, second.Names)
	}

	seen := map[string]bool{}
	for _, name := range first.Names {
		if seen[name] {
			t.Errorf("duplicate name %s", name)
		}
		seen[name] = true
	}
}

func TestProjectPrefix(t *testing.T) {
	set := Project(nil, []string{"Electron_*"}, schema)
	if len(set.Matches) != 1 || set.Matches[0].Prefix != "Electron_" {
		t.Errorf("Matches = %+v", set.Matches)
	}
}

func TestForSample(t *testing.T) {
	branches := config.BranchesConfig{
		Explicit:          []string{"run", "event"},
		Simulated:         []string{"Pileup_nPU"},
		WildcardSimulated: []string{"Electron_*", "GenPart_*"},
		WildcardData:      []string{"Electron_*"},
	}

	simulated := ForSample(branches, catalog.Simulated{CrossSectionPB: 1, SumGeneratorWeight: 1})
	for _, name := range append([]string{"run", "Pileup_nPU"}, weight.Columns()...) {
		if !slices.Contains(simulated.Explicit, name) {
			t.Errorf("simulated request missing %s", name)
		}
	}
	if !slices.Equal(simulated.Wildcards, branches.WildcardSimulated) {
		t.Errorf("simulated wildcards = %v", simulated.Wildcards)
	}

	data := ForSample(branches, catalog.RealData{})
	if !slices.Equal(data.Explicit, []string{"run", "event"}) {
		t.Errorf("data explicit = %v", data.Explicit)
	}
	for _, name := range weight.Columns() {
		if slices.Contains(data.Explicit, name) {
			t.Errorf("data request carries weight column %s", name)
		}
	}
	if !slices.Equal(data.Wildcards, []string{"Electron_*"}) {
		t.Errorf("data wildcards = %v", data.Wildcards)
	}

	// The configuration is not aliased.
	simulated.Explicit[0] = "mutated"
	if branches.Explicit[0] != "run" {
		t.Error("ForSample aliased the configured explicit list")
	}
}
