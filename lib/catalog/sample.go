// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import "fmt"

// Sample is the resolved kind of a process: simulated events that must
// be normalized, or recorded collision data that must not be. It is a
// closed set; consumers type-switch on [Simulated] and [RealData].
type Sample interface {
	isSample()
	// Kind returns "simulated" or "data" for logs and reports.
	Kind() string
}

// Simulated is a Monte Carlo sample with the normalization inputs it
// needs. Both values are always present.
type Simulated struct {
	// CrossSectionPB is the production cross section in picobarns.
	CrossSectionPB float64

	// SumGeneratorWeight is the sum of per-event generator weights over
	// the complete, unskimmed sample.
	SumGeneratorWeight float64
}

// RealData is a recorded-data sample. It carries no normalization
// inputs and is never weighted.
type RealData struct{}

func (Simulated) isSample() {}
func (RealData) isSample()  {}

func (Simulated) Kind() string { return "simulated" }
func (RealData) Kind() string  { return "data" }

// Metadata is the catalog's record of a process. The numeric fields
// are optional in storage because data samples do not have them and
// because bundles are often written before the generator-weight sum
// is known.
type Metadata struct {
	Tag                string
	IsData             bool
	CrossSectionPB     *float64
	SumGeneratorWeight *float64
}

// Sample converts the stored metadata into its [Sample] variant. A
// simulated process missing either numeric field yields a
// [*ConfigError] wrapping [ErrMissingMetadata].
func (m Metadata) Sample() (Sample, error) {
	if m.IsData {
		return RealData{}, nil
	}

	var missing []string
	if m.CrossSectionPB == nil {
		missing = append(missing, "cross_section_pb")
	}
	if m.SumGeneratorWeight == nil {
		missing = append(missing, "sum_genweight")
	}
	if len(missing) > 0 {
		return nil, &ConfigError{
			Tag: m.Tag,
			Err: fmt.Errorf("%w: simulated sample requires %v", ErrMissingMetadata, missing),
		}
	}

	return Simulated{
		CrossSectionPB:     *m.CrossSectionPB,
		SumGeneratorWeight: *m.SumGeneratorWeight,
	}, nil
}
