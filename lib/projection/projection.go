// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package projection resolves the output column list of a partition
// from explicit names and trailing-star wildcards.
package projection

import (
	"slices"
	"strings"

	"github.com/trilepton/skim/lib/catalog"
	"github.com/trilepton/skim/lib/config"
	"github.com/trilepton/skim/lib/weight"
)

// Match reports what one wildcard expanded to.
type Match struct {
	Pattern string
	Prefix  string
	// Count is the number of schema columns the prefix matched,
	// including ones already selected by an earlier entry.
	Count int
}

// BranchSet is a resolved output column list.
type BranchSet struct {
	// Names holds explicit names in the given order, then wildcard
	// expansions in schema order, each name once.
	Names []string
	// Matches has one entry per wildcard pattern.
	Matches []Match
	// Missing lists explicit names the schema does not have.
	Missing []string
}

// Project builds the branch set for a schema. A wildcard "Electron_*"
// selects every schema column starting with "Electron_". Explicit names
// are kept even when absent from the schema (and reported in Missing)
// so that the write fails loudly instead of silently dropping a
// requested column. Project is deterministic and idempotent.
func Project(explicit, wildcards, schema []string) BranchSet {
	var set BranchSet
	seen := make(map[string]bool, len(explicit))
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			set.Names = append(set.Names, name)
		}
	}

	for _, name := range explicit {
		if !seen[name] && !slices.Contains(schema, name) {
			set.Missing = append(set.Missing, name)
		}
		add(name)
	}

	for _, pattern := range wildcards {
		prefix := strings.TrimSuffix(pattern, "*")
		match := Match{Pattern: pattern, Prefix: prefix}
		for _, column := range schema {
			if strings.HasPrefix(column, prefix) {
				match.Count++
				add(column)
			}
		}
		set.Matches = append(set.Matches, match)
	}
	return set
}

// Request is the explicit and wildcard lists for one sample kind.
type Request struct {
	Explicit  []string
	Wildcards []string
}

// ForSample chooses the branch lists for a sample. Simulated samples
// get the common explicit names, the simulation-only names, the weight
// columns and the simulation wildcards; recorded data gets the common
// names and the data wildcards only.
func ForSample(branches config.BranchesConfig, sample catalog.Sample) Request {
	switch sample.(type) {
	case catalog.Simulated:
		explicit := slices.Concat(branches.Explicit, branches.Simulated, weight.Columns())
		return Request{Explicit: explicit, Wildcards: slices.Clone(branches.WildcardSimulated)}
	default:
		return Request{Explicit: slices.Clone(branches.Explicit), Wildcards: slices.Clone(branches.WildcardData)}
	}
}
