// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/tidwall/jsonc"

	"github.com/trilepton/skim/lib/compress"
)

// bundleEntry is the on-disk shape of one process. Field names match
// the bundles produced by the original dataset tooling so that
// existing bundles load unchanged.
type bundleEntry struct {
	Metadata bundleMetadata      `json:"metadata"`
	Files    map[string][]string `json:"files"`
}

type bundleMetadata struct {
	CrossSectionPB     *float64 `json:"cross_section_pb"`
	SumGeneratorWeight *float64 `json:"sum_genweight"`
	IsData             bool     `json:"is_data"`
}

// Parse decodes a bundle. Comments and trailing commas are accepted so
// that hand-maintained bundles can be annotated.
func Parse(data []byte) (*Catalog, error) {
	var entries map[string]bundleEntry
	if err := json.Unmarshal(jsonc.ToJSON(data), &entries); err != nil {
		return nil, fmt.Errorf("parsing catalog bundle: %w", err)
	}

	catalog := New()
	for tag, entry := range entries {
		if tag == "" {
			return nil, fmt.Errorf("parsing catalog bundle: empty process tag")
		}
		partitions := make(map[string]Partition, len(entry.Files))
		for name, shards := range entry.Files {
			partitions[name] = Partition{Name: name, Shards: shards}
		}
		catalog.Put(&Process{
			Metadata: Metadata{
				Tag:                tag,
				IsData:             entry.Metadata.IsData,
				CrossSectionPB:     entry.Metadata.CrossSectionPB,
				SumGeneratorWeight: entry.Metadata.SumGeneratorWeight,
			},
			Partitions: partitions,
		})
	}
	return catalog, nil
}

// Load reads and parses the bundle at path, decompressing it when the
// name ends in .zst or .lz4.
func Load(path string) (*Catalog, error) {
	data, err := compress.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	catalog, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

// LoadOrEmpty is Load, except that a missing file yields an empty
// catalog. Builders use it to merge new processes into an existing
// bundle. A present but unparseable file is still an error: silently
// discarding it would drop every process it held.
func LoadOrEmpty(path string) (*Catalog, error) {
	catalog, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	return catalog, err
}

// Marshal encodes the catalog as an indented JSON bundle.
func (c *Catalog) Marshal() ([]byte, error) {
	entries := make(map[string]bundleEntry, len(c.processes))
	for tag, process := range c.processes {
		files := make(map[string][]string, len(process.Partitions))
		for name, partition := range process.Partitions {
			files[name] = partition.Shards
		}
		entries[tag] = bundleEntry{
			Metadata: bundleMetadata{
				CrossSectionPB:     process.Metadata.CrossSectionPB,
				SumGeneratorWeight: process.Metadata.SumGeneratorWeight,
				IsData:             process.Metadata.IsData,
			},
			Files: files,
		}
	}

	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(entries); err != nil {
		return nil, fmt.Errorf("encoding catalog bundle: %w", err)
	}
	return buffer.Bytes(), nil
}

// Save writes the catalog to path, compressing according to the
// suffix and replacing any existing file atomically.
func (c *Catalog) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := compress.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}
	return nil
}
