// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog maps process tags to sample metadata and to named
// partitions of shard locators.
//
// A catalog is persisted as a JSON bundle (optionally zstd or LZ4
// compressed, see lib/compress) with one entry per process tag:
//
//	{
//	  "WZ_3L": {
//	    "metadata": {"cross_section_pb": 0.079, "sum_genweight": 1e6, "is_data": false},
//	    "files": {"part1": ["root://.../a.root", ...], "part2": [...]}
//	  }
//	}
//
// The skimmer only reads the catalog at run time. Bundles are produced
// by [Builder] from a dataset list and an external file lister (the
// DAS client), and generator-weight sums are written back by the
// "skim sumw" command.
//
// Lookups return [*ConfigError] values wrapping [ErrProcessNotFound],
// [ErrPartNotFound] or [ErrMissingMetadata]. All three abort a run
// before any shard is read: they are operator mistakes, not data
// problems.
package catalog
