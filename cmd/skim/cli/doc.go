// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the skim binary.
//
// The central type is [Command], a named subcommand with optional nested
// [Command.Subcommands], a parameter struct whose tagged fields become
// flags (see [BindFlags]), and a Run function. The tree is assembled in
// cmd/skim/commands and dispatched via [Command.Execute], which handles
// flag parsing, subcommand routing, and help output with examples.
//
// Unknown subcommands and flags are answered with the closest known
// name by Levenshtein distance (at most 3 edits).
//
// Errors carry an exit status. [ExitError] exits without printing,
// [ToolError] categorizes failures, and [ExitCode] turns any error
// returned from Execute into the process status: 0 success, 1 fatal,
// 2 usage, or the code an ExitError names.
package cli
