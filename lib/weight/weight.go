// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package weight computes per-sample normalization factors for
// simulated samples and attaches them to a view as columns.
//
// Two conventions exist and a run pins one of them in its
// configuration; nothing here guesses which one applies:
//
//   - [ApplyLuminosityNormalization]: global_scale = xsec * lumi / sumw,
//     so that weighted yields are expected event counts
//   - [ApplyCrossSectionNormalization]: global_scale = xsec / sumw,
//     leaving the luminosity to the downstream analysis
//
// A zero generator-weight sum yields a scale of zero and a warning
// rather than a division by zero or an error.
//
// Recorded data is never weighted; callers dispatch on
// [catalog.Sample] before reaching this package.
package weight

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/trilepton/skim/lib/catalog"
	"github.com/trilepton/skim/lib/engine"
)

// Convention names a normalization formula.
type Convention string

const (
	// Luminosity scales to an expected yield at a given integrated
	// luminosity.
	Luminosity Convention = "luminosity"
	// CrossSection scales to unit luminosity.
	CrossSection Convention = "cross_section"
)

// ParseConvention validates a convention name. The empty string is
// rejected: the convention must be chosen explicitly.
func ParseConvention(name string) (Convention, error) {
	switch Convention(name) {
	case Luminosity, CrossSection:
		return Convention(name), nil
	default:
		return "", fmt.Errorf("unknown weighting convention %q (want %q or %q)", name, Luminosity, CrossSection)
	}
}

// Injected column names.
const (
	CrossSectionColumn       = "cross_section"
	SumGeneratorWeightColumn = "sum_generator_weight"
	GlobalScaleColumn        = "global_scale"
	TotalWeightColumn        = "total_weight"
)

// Columns returns the names [Attach] defines, in definition order.
func Columns() []string {
	return []string{CrossSectionColumn, SumGeneratorWeightColumn, GlobalScaleColumn, TotalWeightColumn}
}

// Record is the normalization of one simulated sample.
type Record struct {
	Convention         Convention
	CrossSectionPB     float64
	LuminosityPBInv    float64
	SumGeneratorWeight float64
	GlobalScale        float64
	// ZeroSum is set when the generator-weight sum was zero and the
	// scale was forced to zero.
	ZeroSum bool
}

// ApplyLuminosityNormalization computes xsec * lumi / sumw.
func ApplyLuminosityNormalization(crossSectionPB, luminosityPBInv, sumGeneratorWeight float64, logger *slog.Logger) Record {
	record := Record{
		Convention:         Luminosity,
		CrossSectionPB:     crossSectionPB,
		LuminosityPBInv:    luminosityPBInv,
		SumGeneratorWeight: sumGeneratorWeight,
	}
	if sumGeneratorWeight == 0 {
		return zeroSum(record, logger)
	}
	record.GlobalScale = crossSectionPB * luminosityPBInv / sumGeneratorWeight
	return record
}

// ApplyCrossSectionNormalization computes xsec / sumw.
func ApplyCrossSectionNormalization(crossSectionPB, sumGeneratorWeight float64, logger *slog.Logger) Record {
	record := Record{
		Convention:         CrossSection,
		CrossSectionPB:     crossSectionPB,
		SumGeneratorWeight: sumGeneratorWeight,
	}
	if sumGeneratorWeight == 0 {
		return zeroSum(record, logger)
	}
	record.GlobalScale = crossSectionPB / sumGeneratorWeight
	return record
}

func zeroSum(record Record, logger *slog.Logger) Record {
	record.ZeroSum = true
	record.GlobalScale = 0
	logger.Warn("generator-weight sum is zero, global scale set to 0",
		"convention", string(record.Convention),
		"cross_section_pb", record.CrossSectionPB,
	)
	return record
}

// Model is a pinned convention plus the run-wide luminosity.
type Model struct {
	Convention      Convention
	LuminosityPBInv float64
}

// Compute normalizes a simulated sample under the model's convention.
func (m Model) Compute(sample catalog.Simulated, logger *slog.Logger) (Record, error) {
	switch m.Convention {
	case Luminosity:
		return ApplyLuminosityNormalization(sample.CrossSectionPB, m.LuminosityPBInv, sample.SumGeneratorWeight, logger), nil
	case CrossSection:
		return ApplyCrossSectionNormalization(sample.CrossSectionPB, sample.SumGeneratorWeight, logger), nil
	default:
		return Record{}, fmt.Errorf("unknown weighting convention %q", m.Convention)
	}
}

// Attach defines the weight columns on view. total_weight is the
// per-event generator weight (from generatorWeightColumn) times the
// global scale.
func Attach(view *engine.View, record Record, generatorWeightColumn string) *engine.View {
	scale := literal(record.GlobalScale)
	return view.
		Define(CrossSectionColumn, literal(record.CrossSectionPB)).
		Define(SumGeneratorWeightColumn, literal(record.SumGeneratorWeight)).
		Define(GlobalScaleColumn, scale).
		Define(TotalWeightColumn, "CAST("+quote(generatorWeightColumn)+" AS DOUBLE) * "+scale)
}

// literal renders v as a DOUBLE constant that round-trips exactly.
func literal(v float64) string {
	return "CAST(" + strconv.FormatFloat(v, 'g', -1, 64) + " AS DOUBLE)"
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
