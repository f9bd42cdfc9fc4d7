// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports what skim binary is running.
//
// [GitCommit], [GitDirty], [BuildTime] and [Version] are injected with
// -ldflags -X. When they are not, [Info] falls back to the VCS stamp
// the go command embeds in the binary, so that a plain go install still
// identifies its commit. [Full] adds the Go toolchain, the platform and
// the version of the embedded DuckDB driver, which determines the
// parquet features available to the engine.
package version
