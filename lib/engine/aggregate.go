// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"fmt"
)

// Count returns the number of events passing every filter.
func (v *View) Count(ctx context.Context) (int64, error) {
	plan, err := v.plan(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	query := "SELECT count(*) FROM (" + plan.query + ") AS events" + plan.passing()
	if err := v.engine.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("engine: counting: %w", err)
	}
	return count, nil
}

// Sum returns the sum of column over events passing every filter. An
// empty view sums to zero.
func (v *View) Sum(ctx context.Context, column string) (float64, error) {
	plan, err := v.plan(ctx)
	if err != nil {
		return 0, err
	}
	if err := plan.require([]string{column}); err != nil {
		return 0, err
	}

	var sum float64
	query := fmt.Sprintf("SELECT CAST(coalesce(sum(%s), 0) AS DOUBLE) FROM (%s) AS events%s",
		quoteIdentifier(column), plan.query, plan.passing())
	if err := v.engine.db.QueryRowContext(ctx, query).Scan(&sum); err != nil {
		return 0, fmt.Errorf("engine: summing %s: %w", column, err)
	}
	return sum, nil
}
