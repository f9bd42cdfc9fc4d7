// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// DefaultFilesPerPart is the partition size used when building bundles.
const DefaultFilesPerPart = 25

// DefaultRedirector is the remote-read prefix prepended to every
// logical file name returned by a [Lister].
const DefaultRedirector = "root://cmsxrootd.fnal.gov/"

// DatasetEntry is one line of a dataset list.
type DatasetEntry struct {
	// Dataset is the full dataset path passed to the [Lister].
	Dataset string

	// Metadata is what the line says about the sample. A line with
	// only DATASET and TAG yields a simulated sample with neither
	// numeric field set.
	Metadata Metadata

	// Line is the 1-based line number, for diagnostics.
	Line int
}

// ParseDatasetList reads lines of the form
//
//	DATASET TAG [XSEC|DATA] [SUMW]
//
// Blank lines and lines starting with '#' are ignored. Malformed lines
// (fewer than two fields, or unparseable numbers) are skipped with a
// warning so that one bad line does not abort a long listing.
func ParseDatasetList(r io.Reader, logger *slog.Logger) ([]DatasetEntry, error) {
	var entries []DatasetEntry
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseDatasetLine(line)
		if err != nil {
			logger.Warn("skipping malformed dataset line", "line", lineNumber, "text", line, "error", err)
			continue
		}
		entry.Line = lineNumber
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dataset list: %w", err)
	}
	return entries, nil
}

func parseDatasetLine(line string) (DatasetEntry, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return DatasetEntry{}, fmt.Errorf("expected at least DATASET and TAG, got %d field(s)", len(fields))
	}

	entry := DatasetEntry{
		Dataset:  fields[0],
		Metadata: Metadata{Tag: fields[1]},
	}
	if len(fields) >= 3 {
		if strings.EqualFold(fields[2], "DATA") {
			entry.Metadata.IsData = true
		} else {
			crossSection, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return DatasetEntry{}, fmt.Errorf("cross section %q: %w", fields[2], err)
			}
			entry.Metadata.CrossSectionPB = &crossSection
		}
	}
	if len(fields) >= 4 {
		sum, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return DatasetEntry{}, fmt.Errorf("generator-weight sum %q: %w", fields[3], err)
		}
		entry.Metadata.SumGeneratorWeight = &sum
	}
	return entry, nil
}

// Builder turns dataset list entries into catalog processes.
type Builder struct {
	Lister       Lister
	Redirector   string
	FilesPerPart int
	Logger       *slog.Logger
}

// Build lists the files of each entry and registers a process for it
// in catalog, replacing any existing process with the same tag.
// Datasets with no files are skipped with a warning. A listing failure
// aborts the build: a partial bundle would look complete to the runner.
func (b *Builder) Build(ctx context.Context, catalog *Catalog, entries []DatasetEntry) error {
	filesPerPart := b.FilesPerPart
	if filesPerPart <= 0 {
		filesPerPart = DefaultFilesPerPart
	}

	for _, entry := range entries {
		logger := b.Logger.With("tag", entry.Metadata.Tag, "dataset", entry.Dataset)

		names, err := b.Lister.ListFiles(ctx, entry.Dataset)
		if err != nil {
			return fmt.Errorf("listing files for %s (line %d): %w", entry.Metadata.Tag, entry.Line, err)
		}
		if len(names) == 0 {
			logger.Warn("no files found, skipping dataset")
			continue
		}

		shards := make([]string, len(names))
		for i, name := range names {
			shards[i] = b.Redirector + name
		}
		partitions := SplitPartitions(shards, filesPerPart)
		catalog.Put(&Process{Metadata: entry.Metadata, Partitions: partitions})

		logger.Info("dataset added",
			"files", len(shards),
			"partitions", len(partitions),
			"is_data", entry.Metadata.IsData,
		)
	}
	return nil
}
