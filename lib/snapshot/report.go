// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"time"

	"github.com/trilepton/skim/lib/codec"
	"github.com/trilepton/skim/lib/digest"
	"github.com/trilepton/skim/lib/engine"
)

// SidecarSuffix is appended to an artifact path to name its cut-flow
// sidecar.
const SidecarSuffix = ".cutflow.cbor"

// Report is the outcome of one partition write.
type Report struct {
	Process   string
	Partition string
	Output    string

	// Input is the number of events read; Stages holds the survivors
	// of each filter in order; Events is the number written.
	Input  int64
	Stages []engine.StageCount
	Events int64

	// Digest and Bytes describe the written artifact. Both are zero
	// when nothing was written.
	Digest digest.Digest
	Bytes  int64

	Elapsed time.Duration
}

// sidecar is the stored form of a [Report].
type sidecar struct {
	Process   string              `cbor:"process"`
	Partition string              `cbor:"partition"`
	Output    string              `cbor:"output"`
	Input     int64               `cbor:"input"`
	Stages    []engine.StageCount `cbor:"stages"`
	Events    int64               `cbor:"events"`
	Digest    string              `cbor:"digest"`
	Bytes     int64               `cbor:"bytes"`
	ElapsedNS int64               `cbor:"elapsed_ns"`
}

// WriteSidecar stores report as CBOR at path.
func WriteSidecar(path string, report *Report) error {
	stored := sidecar{
		Process:   report.Process,
		Partition: report.Partition,
		Output:    report.Output,
		Input:     report.Input,
		Stages:    report.Stages,
		Events:    report.Events,
		Bytes:     report.Bytes,
		ElapsedNS: int64(report.Elapsed),
	}
	if !report.Digest.IsZero() {
		stored.Digest = report.Digest.String()
	}
	return codec.WriteFile(path, stored)
}

// ReadSidecar loads a report written by [WriteSidecar].
func ReadSidecar(path string) (*Report, error) {
	var stored sidecar
	if err := codec.ReadFile(path, &stored); err != nil {
		return nil, err
	}

	report := &Report{
		Process:   stored.Process,
		Partition: stored.Partition,
		Output:    stored.Output,
		Input:     stored.Input,
		Stages:    stored.Stages,
		Events:    stored.Events,
		Bytes:     stored.Bytes,
		Elapsed:   time.Duration(stored.ElapsedNS),
	}
	if stored.Digest != "" {
		parsed, err := digest.Parse(stored.Digest)
		if err != nil {
			return nil, err
		}
		report.Digest = parsed
	}
	return report, nil
}
