// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/trilepton/skim/lib/engine"
)

// ResultLog writes structured JSONL during a run. Each line is an
// independent JSON object, so a job killed mid-run leaves every
// completed partition's outcome readable, and a batch monitor can tail
// the file for progress.
//
// A nil *ResultLog is valid and discards everything.
type ResultLog struct {
	logger  *slog.Logger
	file    *os.File
	encoder *json.Encoder
}

// NewResultLog creates (truncating) a JSONL result log at path.
func NewResultLog(path string, logger *slog.Logger) (*ResultLog, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating result log %s: %w", path, err)
	}
	return &ResultLog{
		logger:  logger,
		file:    file,
		encoder: json.NewEncoder(file),
	}, nil
}

// Close closes the result log file.
func (r *ResultLog) Close() error {
	if r == nil {
		return nil
	}
	return r.file.Close()
}

func (r *ResultLog) writeStart(process, selector string, partitions []string, now time.Time) {
	if r == nil {
		return
	}
	r.write(resultStartEntry{
		Type:       "start",
		Process:    process,
		Selector:   selector,
		Partitions: partitions,
		Timestamp:  now.UTC().Format(time.RFC3339),
	})
}

func (r *ResultLog) writePartition(result *PartitionResult) {
	if r == nil {
		return
	}
	entry := resultPartitionEntry{
		Type:       "partition",
		Name:       result.Name,
		Status:     "ok",
		Output:     result.Output,
		Shards:     result.Shards,
		DurationMS: result.Elapsed.Milliseconds(),
	}
	if result.Err != nil {
		entry.Status = "failed"
		entry.Error = result.Err.Error()
	}
	if result.Weight != nil {
		scale := result.Weight.GlobalScale
		entry.GlobalScale = &scale
	}
	if report := result.Report; report != nil {
		entry.Input = report.Input
		entry.Stages = report.Stages
		entry.Events = report.Events
		if !report.Digest.IsZero() {
			entry.Digest = report.Digest.String()
			entry.Bytes = report.Bytes
		}
	}
	r.write(entry)
}

func (r *ResultLog) writeSummary(summary *Summary) {
	if r == nil {
		return
	}
	r.write(resultSummaryEntry{
		Type:       "summary",
		Status:     summary.Outcome().String(),
		Attempted:  summary.Attempted,
		Succeeded:  summary.Succeeded,
		Failed:     summary.Failed,
		DurationMS: summary.Elapsed.Milliseconds(),
	})
}

func (r *ResultLog) write(entry any) {
	if err := r.encoder.Encode(entry); err != nil {
		r.logger.Warn("failed to write result log entry", "error", err)
		return
	}
	// Sync after each line so that a killed job still leaves every
	// completed partition on disk.
	if err := r.file.Sync(); err != nil {
		r.logger.Warn("failed to sync result log", "error", err)
	}
}

// JSONL entry types. Each struct documents exactly which fields appear
// in that line type.

// resultStartEntry is the first line, written once metadata resolved.
type resultStartEntry struct {
	Type       string   `json:"type"`
	Process    string   `json:"process"`
	Selector   string   `json:"selector"`
	Partitions []string `json:"partitions"`
	Timestamp  string   `json:"timestamp"`
}

// resultPartitionEntry is written after each partition.
type resultPartitionEntry struct {
	Type        string              `json:"type"`
	Name        string              `json:"name"`
	Status      string              `json:"status"`
	Output      string              `json:"output"`
	Shards      int                 `json:"shards"`
	GlobalScale *float64            `json:"global_scale,omitempty"`
	Input       int64               `json:"input"`
	Stages      []engine.StageCount `json:"stages,omitempty"`
	Events      int64               `json:"events"`
	Digest      string              `json:"digest,omitempty"`
	Bytes       int64               `json:"bytes,omitempty"`
	DurationMS  int64               `json:"duration_ms"`
	Error       string              `json:"error,omitempty"`
}

// resultSummaryEntry is the last line of a run that got past metadata
// resolution.
type resultSummaryEntry struct {
	Type       string `json:"type"`
	Status     string `json:"status"`
	Attempted  int    `json:"attempted"`
	Succeeded  int    `json:"succeeded"`
	Failed     int    `json:"failed"`
	DurationMS int64  `json:"duration_ms"`
}
