// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/trilepton/skim/cmd/skim/cli"
	"github.com/trilepton/skim/lib/codec"
	"github.com/trilepton/skim/lib/snapshot"
)

type cutflowParams struct {
	Diagnostic bool `flag:"diag" desc:"print the stored CBOR in diagnostic notation"`
}

func cutflowCommand() *cli.Command {
	var params cutflowParams

	command := &cli.Command{
		Name:    "cutflow",
		Summary: "Show the stored cut flow of written artifacts",
		Description: `Print the cut flow recorded next to an artifact when it was written
with output.cutflow_sidecar (or --sidecar). Arguments may name either
the artifact or its .cutflow.cbor sidecar.`,
		Usage:  "skim cutflow [flags] <artifact>...",
		Params: func() any { return &params },
	}

	command.Run = func(_ context.Context, args []string) error {
		if len(args) == 0 {
			return command.UsageError("expected at least one artifact")
		}
		printer := snapshot.NewPrinter(command.Out())

		for _, arg := range args {
			path := arg
			if !strings.HasSuffix(path, snapshot.SidecarSuffix) {
				path += snapshot.SidecarSuffix
			}

			if params.Diagnostic {
				data, err := os.ReadFile(path)
				if err != nil {
					return sidecarError(path, err)
				}
				notation, err := codec.Diagnose(data)
				if err != nil {
					return cli.Internal("%s: %w", path, err)
				}
				fmt.Fprintln(command.Out(), notation)
				continue
			}

			report, err := snapshot.ReadSidecar(path)
			if err != nil {
				return sidecarError(path, err)
			}
			if err := printer.Print(report); err != nil {
				return err
			}
			if !report.Digest.IsZero() {
				fmt.Fprintf(command.Out(), "%s: %d bytes, blake3 %s\n", report.Output, report.Bytes, report.Digest)
			}
		}
		return nil
	}

	return command
}

func sidecarError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return cli.NotFound("no cut-flow sidecar at %s", path)
	}
	return cli.Internal("%w", err)
}
