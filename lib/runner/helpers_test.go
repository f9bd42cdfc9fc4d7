// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import "math"

func closeTo(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*math.Max(math.Abs(a), math.Abs(b))
}
