// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Skim reads columnar event shards listed in a catalog bundle, applies
// the analysis selection, attaches normalization weights and writes one
// parquet artifact per partition.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/trilepton/skim/cmd/skim/cli"
	"github.com/trilepton/skim/cmd/skim/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := commands.Root(stdout, stderr).Execute(ctx, args)
	return cli.ExitCode(err, stderr)
}
