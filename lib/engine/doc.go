// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package engine provides the lazy columnar event view the skimmer is
// built on, backed by an embedded DuckDB instance.
//
// An [Engine] is opened once per process. It owns the database handle
// and the engine-wide settings (worker threads, memory limit), which
// are applied exactly once in [New]. Every component that materializes
// data receives the *Engine explicitly.
//
// [Engine.Open] resolves a partition's shard locators to parquet table
// files, probes each one, and returns a [View]. A View is an immutable
// description of a computation: the shard set plus an ordered list of
// filter and define operations. [View.Filter] and [View.Define] return
// a new View and never touch storage. Storage is read only when a
// trigger runs:
//
//   - [View.Schema] lists the visible columns
//   - [View.Snapshot] writes the surviving events to a parquet file
//   - [View.Count] and [View.Sum] aggregate
//
// Triggers do not cache. Running two triggers on the same View reads
// the shards twice, and both see the same data.
//
// # Cut flow
//
// Every filter becomes a boolean column. A NULL predicate value counts
// as failing. Snapshot computes, for each event, how many leading
// filters it passes (its depth), and derives the survivor count of
// every stage and the output rows from that one scan. Counts are
// cumulative in application order, so they never increase from one
// stage to the next.
//
// # Table layout
//
// A shard locator names one input unit. The table inside it is found
// through a layout template, "{shard}/{table}.parquet" by default: the
// Events table of shard "data/a" is "data/a/Events.parquet". A locator
// that already ends in ".parquet" is used as-is.
package engine
