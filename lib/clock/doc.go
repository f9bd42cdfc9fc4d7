// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source so that run timing
// can be tested deterministically.
//
// Production code holds a Clock and calls Now instead of time.Now. In
// production, [Real] provides the standard library behavior. In tests,
// [Fake] provides a clock that moves only when Advance is called:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	r := &runner.Runner{Clock: c}
//	c.Advance(90 * time.Second)
//
// Only wall-clock reads are abstracted. The skimmer never sleeps or
// schedules timers; materialization blocks the calling goroutine until
// the engine returns.
package clock
