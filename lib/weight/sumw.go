// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package weight

import (
	"context"
	"fmt"

	"github.com/trilepton/skim/lib/engine"
)

// SumGeneratorWeights sums column of table over shards. With the
// defaults ("Runs", "genEventSumw") this is the generator-weight sum
// of the complete sample, the denominator of every normalization.
func SumGeneratorWeights(ctx context.Context, eng *engine.Engine, shards []string, table, column string) (float64, error) {
	view, err := eng.Open(ctx, shards, table)
	if err != nil {
		return 0, err
	}
	sum, err := view.Sum(ctx, column)
	if err != nil {
		return 0, fmt.Errorf("summing %s.%s: %w", table, column, err)
	}
	return sum, nil
}
