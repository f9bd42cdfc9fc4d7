// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package condor writes HTCondor submit descriptions that fan a catalog
// out into one batch job per partition.
//
// The generated file queues the configured executable once per
// (process, partition) pair with arguments "run <tag> <partition>", so
// each job runs exactly one partition through skim run. Processes and
// partitions are emitted in natural order so that the file is stable
// across regenerations of the same catalog.
package condor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/trilepton/skim/lib/catalog"
)

// Settings are the job-wide attributes of a submit description.
type Settings struct {
	Executable string
	// Flavour is the CERN batch queue class ("espresso" through
	// "nextweek").
	Flavour  string
	CPUs     int
	MemoryGB int
	DiskGB   int
	// LogDirectory holds per-job stdout, stderr and the cluster log.
	LogDirectory string
}

// DefaultSettings returns the attributes used by the analysis batch
// jobs.
func DefaultSettings() Settings {
	return Settings{
		Executable:   "run_job.sh",
		Flavour:      "nextweek",
		CPUs:         1,
		MemoryGB:     8,
		DiskGB:       50,
		LogDirectory: "logs",
	}
}

// Validate reports settings that would produce an unusable description.
func (s Settings) Validate() error {
	switch {
	case s.Executable == "":
		return fmt.Errorf("executable is required")
	case s.CPUs < 1:
		return fmt.Errorf("cpus must be at least 1, got %d", s.CPUs)
	case s.MemoryGB < 1:
		return fmt.Errorf("memory must be at least 1 GB, got %d", s.MemoryGB)
	case s.DiskGB < 1:
		return fmt.Errorf("disk must be at least 1 GB, got %d", s.DiskGB)
	}
	return nil
}

// Job is one queued invocation.
type Job struct {
	Process   string
	Partition string
}

// Jobs lists the jobs for tags, or for every process in the catalog when
// tags is empty.
func Jobs(cat *catalog.Catalog, tags []string) ([]Job, error) {
	if len(tags) == 0 {
		tags = cat.Tags()
	}
	var jobs []Job
	for _, tag := range tags {
		process, err := cat.Lookup(tag)
		if err != nil {
			return nil, err
		}
		for _, name := range process.PartitionNames() {
			jobs = append(jobs, Job{Process: tag, Partition: name})
		}
	}
	return jobs, nil
}

// Write renders the submit description for jobs to w.
func Write(w io.Writer, settings Settings, jobs []Job) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	buffered := bufio.NewWriter(w)
	logs := settings.LogDirectory
	if logs == "" {
		logs = "."
	}

	fmt.Fprintf(buffered, "executable = %s\n", settings.Executable)
	fmt.Fprintf(buffered, "universe   = vanilla\n")
	if settings.Flavour != "" {
		fmt.Fprintf(buffered, "+JobFlavour = %q\n", settings.Flavour)
	}
	fmt.Fprintf(buffered, "stream_output = True\n")
	fmt.Fprintf(buffered, "stream_error  = True\n\n")

	fmt.Fprintf(buffered, "should_transfer_files = YES\n")
	fmt.Fprintf(buffered, "WhenToTransferOutput  = ON_EXIT\n")
	fmt.Fprintf(buffered, "notification = never\n")
	fmt.Fprintf(buffered, "getenv     = True\n\n")

	fmt.Fprintf(buffered, "Transfer_Input_Files = .\n")
	fmt.Fprintf(buffered, "request_cpus = %d\n", settings.CPUs)
	fmt.Fprintf(buffered, "request_memory = %d GB\n", settings.MemoryGB)
	fmt.Fprintf(buffered, "request_disk = %d GB\n\n", settings.DiskGB)

	fmt.Fprintf(buffered, "output = %s\n", filepath.Join(logs, "$(Cluster)_$(Process).out"))
	fmt.Fprintf(buffered, "error  = %s\n", filepath.Join(logs, "$(Cluster)_$(Process).err"))
	fmt.Fprintf(buffered, "log    = %s\n\n", filepath.Join(logs, "$(Cluster).log"))

	for _, job := range jobs {
		fmt.Fprintf(buffered, "arguments = run %s %s\n", job.Process, job.Partition)
		fmt.Fprintf(buffered, "queue\n\n")
	}
	return buffered.Flush()
}

// WriteFile renders the description to path, creating the log
// directory next to it so that condor_submit does not reject the job.
func WriteFile(path string, settings Settings, jobs []Job) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(file, settings, jobs); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	logs := settings.LogDirectory
	if logs == "" {
		return nil
	}
	if !filepath.IsAbs(logs) {
		logs = filepath.Join(filepath.Dir(path), logs)
	}
	if err := os.MkdirAll(logs, 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	return nil
}
