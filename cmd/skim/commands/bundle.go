// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/trilepton/skim/cmd/skim/cli"
	"github.com/trilepton/skim/lib/catalog"
)

type bundleParams struct {
	LogLevel     string `flag:"log-level" desc:"debug, info, warn or error" default:"info"`
	Output       string `flag:"output,o" desc:"bundle to create or extend (.json, .json.zst, .json.lz4)" default:"bundle.json"`
	FilesPerPart int    `flag:"files-per-part" desc:"shards per partition" default:"25"`
	Redirector   string `flag:"redirector" desc:"prefix prepended to every file name" default:"root://cmsxrootd.fnal.gov/"`
	DASBinary    string `flag:"das-binary" desc:"DAS client executable" default:"dasgoclient"`
	Replace      bool   `flag:"replace" desc:"start from an empty bundle instead of merging"`
}

func bundleCommand() *cli.Command {
	var params bundleParams

	command := &cli.Command{
		Name:    "bundle",
		Summary: "Build a catalog bundle from a dataset list",
		Description: `Build or extend a catalog bundle from a dataset list.

Each non-comment line of the list reads

  DATASET TAG [XSEC|DATA] [SUMW]

The files of every dataset are listed through the DAS client, prefixed
with the redirector and split into partitions part1, part2, ... Processes
already in the bundle are kept unless --replace is given; a listed tag
replaces its existing entry.`,
		Usage: "skim bundle [flags] <dataset-list>",
		Examples: []cli.Example{
			{Description: "Add the 2024 samples to an existing bundle", Command: "skim bundle -o bundle.json datasets_2024.txt"},
		},
		Params: func() any { return &params },
	}

	command.Run = func(ctx context.Context, args []string) error {
		if len(args) != 1 {
			return command.UsageError("expected <dataset-list>, got %d argument(s)", len(args))
		}
		if params.FilesPerPart < 1 {
			return cli.Validation("--files-per-part must be at least 1")
		}
		logger, err := cli.NewCommandLogger(command.ErrOut(), params.LogLevel)
		if err != nil {
			return err
		}
		logger = logger.With("command", command.Name)

		file, err := os.Open(args[0])
		if err != nil {
			return cli.NotFound("dataset list: %w", err)
		}
		entries, err := catalog.ParseDatasetList(file, logger)
		file.Close()
		if err != nil {
			return err
		}

		cat := catalog.New()
		if !params.Replace {
			if cat, err = catalog.LoadOrEmpty(params.Output); err != nil {
				return fmt.Errorf("loading existing bundle: %w", err)
			}
		}
		existing := cat.Len()

		builder := &catalog.Builder{
			Lister:       catalog.DASClient{Binary: params.DASBinary},
			Redirector:   params.Redirector,
			FilesPerPart: params.FilesPerPart,
			Logger:       logger,
		}
		if err := builder.Build(ctx, cat, entries); err != nil {
			return err
		}
		if err := cat.Save(params.Output); err != nil {
			return cli.Internal("saving bundle: %w", err)
		}

		_, err = fmt.Fprintf(command.Out(), "%s: %d process(es), %d from %s\n",
			params.Output, cat.Len(), len(entries), args[0])
		logger.Info("bundle written", "path", params.Output, "processes", cat.Len(), "previous", existing)
		return err
	}

	return command
}
