// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Fake returns a FakeClock initialized to the given time. Time stands
// still until Advance is called.
//
// FakeClock is safe for concurrent use by multiple goroutines.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// FakeClock is a deterministic Clock for testing.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time

	// step is added to the current time after every Now call. Zero
	// means the clock only moves on Advance.
	step time.Duration
}

// Now returns the current fake time, then moves the clock forward by
// the configured step.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Advance moves the clock forward by d. Negative durations are
// ignored.
func (c *FakeClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// SetStep makes every subsequent Now call advance the clock by d after
// returning. Tests use this to give each timed section a known,
// non-zero duration without coordinating explicit Advance calls.
func (c *FakeClock) SetStep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		d = 0
	}
	c.step = d
}
