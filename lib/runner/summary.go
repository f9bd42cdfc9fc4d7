// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/trilepton/skim/lib/snapshot"
	"github.com/trilepton/skim/lib/weight"
)

// Outcome classifies a run.
type Outcome int

const (
	// OutcomeComplete means every selected partition was written.
	OutcomeComplete Outcome = iota
	// OutcomePartial means the run finished but at least one partition
	// failed.
	OutcomePartial
	// OutcomeFatal means the run aborted before any partition ran.
	// [Runner.Run] never produces a Summary with this outcome; the
	// command reports it when Run returns an error.
	OutcomeFatal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeComplete:
		return "complete"
	case OutcomePartial:
		return "partial"
	case OutcomeFatal:
		return "fatal"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// PartitionResult is the outcome of one partition.
type PartitionResult struct {
	Name   string
	Output string
	// Shards is the number of shard locators handed to the engine.
	Shards int
	// Weight is set for simulated samples once the record was
	// computed.
	Weight *weight.Record
	// Report is set whenever a cut flow was computed, including for
	// partitions that failed because nothing survived.
	Report  *snapshot.Report
	Err     error
	Elapsed time.Duration
}

// Succeeded reports whether the partition's artifact was written.
func (p *PartitionResult) Succeeded() bool { return p.Err == nil }

// Summary aggregates a run.
type Summary struct {
	Process    string
	Selector   string
	Attempted  int
	Succeeded  int
	Failed     int
	Elapsed    time.Duration
	Partitions []PartitionResult
}

// Outcome returns [OutcomeComplete] when every attempted partition
// succeeded and [OutcomePartial] otherwise.
func (s *Summary) Outcome() Outcome {
	if s.Failed > 0 {
		return OutcomePartial
	}
	return OutcomeComplete
}

func (s *Summary) record(result PartitionResult) {
	s.Attempted++
	if result.Succeeded() {
		s.Succeeded++
	} else {
		s.Failed++
	}
	s.Partitions = append(s.Partitions, result)
}

// FormatElapsed renders d as "Xh Ym Zs", truncating to whole seconds.
func FormatElapsed(d time.Duration) string {
	d = d.Truncate(time.Second)
	hours := d / time.Hour
	minutes := (d % time.Hour) / time.Minute
	seconds := (d % time.Minute) / time.Second
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}

// Print writes the human-readable run summary.
func (s *Summary) Print(w io.Writer) error {
	rule := strings.Repeat("-", 40)
	var builder strings.Builder
	fmt.Fprintln(&builder, rule)
	fmt.Fprintln(&builder, "Run Summary")
	fmt.Fprintln(&builder, rule)
	fmt.Fprintf(&builder, "Process         : %s\n", s.Process)
	fmt.Fprintf(&builder, "Selector        : %s\n", s.Selector)
	fmt.Fprintf(&builder, "Partitions      : %d attempted, %d succeeded, %d failed\n", s.Attempted, s.Succeeded, s.Failed)
	for _, partition := range s.Partitions {
		if partition.Succeeded() {
			fmt.Fprintf(&builder, "  ok     %-10s %s\n", partition.Name, partition.Output)
		} else {
			fmt.Fprintf(&builder, "  FAILED %-10s %v\n", partition.Name, partition.Err)
		}
	}
	fmt.Fprintf(&builder, "Total Time      : %s\n", FormatElapsed(s.Elapsed))
	fmt.Fprintln(&builder, rule)
	_, err := io.WriteString(w, builder.String())
	return err
}
