// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeStandsStill(t *testing.T) {
	c := Fake(epoch)
	if got := c.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	if got := c.Now(); !got.Equal(epoch) {
		t.Fatalf("second Now() = %v, want %v", got, epoch)
	}
}

func TestFakeAdvance(t *testing.T) {
	c := Fake(epoch)
	c.Advance(90 * time.Second)
	if got := Since(c, epoch); got != 90*time.Second {
		t.Errorf("Since = %v, want 90s", got)
	}

	c.Advance(-time.Hour)
	if got := Since(c, epoch); got != 90*time.Second {
		t.Errorf("negative Advance moved the clock: Since = %v", got)
	}
}

func TestFakeStep(t *testing.T) {
	c := Fake(epoch)
	c.SetStep(time.Second)

	first := c.Now()
	second := c.Now()
	if second.Sub(first) != time.Second {
		t.Errorf("step between reads = %v, want 1s", second.Sub(first))
	}
}

func TestRealIsMonotonic(t *testing.T) {
	c := Real()
	first := c.Now()
	second := c.Now()
	if second.Before(first) {
		t.Errorf("real clock went backwards: %v then %v", first, second)
	}
}
