// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner drives a skim run: one process tag, one partition
// selector, one output artifact per selected partition.
//
// A run resolves everything that can be wrong with its configuration
// first: the process tag, the sample metadata, the partition selector,
// the weighting convention and the output directory. Any problem there
// is fatal and [Runner.Run] returns it before a single shard is read.
//
// Partitions are then processed sequentially. Each one gets a fresh
// view, selection, weight record (simulated samples only), branch set
// and write. A failure inside a partition (an unreadable shard, a
// missing branch, no surviving events, a write error, even a panic in
// the engine) is logged with the partition name, recorded in the
// [Summary], and the run moves on to the next partition.
//
// The summary distinguishes a complete run from one with partial
// failures; the command maps those, and a fatal error, to distinct
// exit statuses.
package runner
