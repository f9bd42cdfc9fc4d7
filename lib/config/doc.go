// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML run configuration for the skimmer.
//
// Configuration is loaded from a single file named by either the
// SKIM_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no file discovery. Values the file does
// not set keep the analysis defaults from [Default]: the trigger list,
// MET filters, branch lists and luminosity of the trilepton selection.
//
// The file may carry development and production sections that override
// base values when [Config].Environment matches. Production is
// stricter when it has no section of its own: shard failures are
// never skipped and the cut-flow sidecar is always written.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${SKIM_OUTPUT} (the output directory) and ${VAR:-default}.
//
// Key exports:
//
//   - [Config] -- run configuration, one struct per YAML section
//   - [Default] -- analysis defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- reports every problem at once
//
// This package depends on no other skim packages.
package config
