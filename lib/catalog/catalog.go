// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// AllPartitions is the partition selector meaning "every partition of
// the process". It matches case-insensitively.
const AllPartitions = "ALL"

// Partition is a named, ordered group of shard locators processed and
// written together as one output unit.
type Partition struct {
	Name   string
	Shards []string
}

// Process is one catalog entry: a sample's metadata and its partitions.
type Process struct {
	Metadata   Metadata
	Partitions map[string]Partition
}

// Tag returns the process tag.
func (p *Process) Tag() string { return p.Metadata.Tag }

// PartitionNames returns the partition names in natural order.
func (p *Process) PartitionNames() []string {
	names := make([]string, 0, len(p.Partitions))
	for name := range p.Partitions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return naturalLess(names[i], names[j]) })
	return names
}

// ShardCount returns the total number of shards across partitions.
func (p *Process) ShardCount() int {
	total := 0
	for _, partition := range p.Partitions {
		total += len(partition.Shards)
	}
	return total
}

// Select resolves a partition selector. [AllPartitions] (any case)
// yields every partition in natural order; any other selector must
// match a partition name exactly. The returned partitions share no
// storage with the catalog.
func (p *Process) Select(selector string) ([]Partition, error) {
	if strings.EqualFold(selector, AllPartitions) {
		names := p.PartitionNames()
		if len(names) == 0 {
			return nil, &ConfigError{
				Tag: p.Tag(),
				Err: fmt.Errorf("%w: process has no partitions", ErrPartNotFound),
			}
		}
		partitions := make([]Partition, 0, len(names))
		for _, name := range names {
			partitions = append(partitions, clonePartition(p.Partitions[name]))
		}
		return partitions, nil
	}

	partition, ok := p.Partitions[selector]
	if !ok {
		return nil, &ConfigError{
			Tag:       p.Tag(),
			Partition: selector,
			Err:       fmt.Errorf("%w (available: %s)", ErrPartNotFound, strings.Join(p.PartitionNames(), ", ")),
		}
	}
	return []Partition{clonePartition(partition)}, nil
}

func clonePartition(partition Partition) Partition {
	return Partition{Name: partition.Name, Shards: slices.Clone(partition.Shards)}
}

// Catalog is an in-memory shard catalog keyed by process tag.
type Catalog struct {
	processes map[string]*Process
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{processes: make(map[string]*Process)}
}

// Lookup returns the process registered under tag, or a [*ConfigError]
// wrapping [ErrProcessNotFound].
func (c *Catalog) Lookup(tag string) (*Process, error) {
	process, ok := c.processes[tag]
	if !ok {
		return nil, &ConfigError{Tag: tag, Err: ErrProcessNotFound}
	}
	return process, nil
}

// Tags returns every process tag in natural order.
func (c *Catalog) Tags() []string {
	tags := make([]string, 0, len(c.processes))
	for tag := range c.processes {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return naturalLess(tags[i], tags[j]) })
	return tags
}

// Len returns the number of processes.
func (c *Catalog) Len() int { return len(c.processes) }

// Put registers process under its tag, replacing any existing entry.
// Partition names are taken from the map keys.
func (c *Catalog) Put(process *Process) {
	for name, partition := range process.Partitions {
		partition.Name = name
		process.Partitions[name] = partition
	}
	c.processes[process.Tag()] = process
}

// SetSumGeneratorWeight records the generator-weight sum for tag.
func (c *Catalog) SetSumGeneratorWeight(tag string, sum float64) error {
	process, err := c.Lookup(tag)
	if err != nil {
		return err
	}
	process.Metadata.SumGeneratorWeight = &sum
	return nil
}

// SplitPartitions chunks shards into partitions of at most size
// locators named part1, part2, ... in order.
func SplitPartitions(shards []string, size int) map[string]Partition {
	if size <= 0 {
		size = len(shards)
	}
	partitions := make(map[string]Partition)
	for start, index := 0, 1; start < len(shards); start, index = start+size, index+1 {
		end := min(start+size, len(shards))
		name := fmt.Sprintf("part%d", index)
		partitions[name] = Partition{Name: name, Shards: slices.Clone(shards[start:end])}
	}
	return partitions
}
