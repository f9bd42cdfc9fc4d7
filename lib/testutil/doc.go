// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for skim packages.
//
// [WriteShard] builds a shard directory of parquet tables from
// literal rows, through the same DuckDB driver the engine uses, so that
// engine, selection, snapshot and runner tests exercise real files.
// [EventsTable] is a ready-made Events table with the columns the
// trilepton selection reads.
//
// [Logger] returns a logger writing into a buffer so tests can assert
// on warnings; [DiscardLogger] drops everything.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
