// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/trilepton/skim/cmd/skim/cli"
	"github.com/trilepton/skim/lib/weight"
)

type sumwParams struct {
	cli.CommonParams
	Catalog string `flag:"catalog" desc:"catalog bundle (overrides the configuration)"`
	Column  string `flag:"column" desc:"per-run generator-weight sum column" default:"genEventSumw"`
	Write   bool   `flag:"write,w" desc:"store the sums in the bundle metadata"`
}

func sumwCommand() *cli.Command {
	var params sumwParams

	command := &cli.Command{
		Name:    "sumw",
		Summary: "Sum generator weights of simulated processes",
		Description: `Sum the per-run generator-weight column over every shard of each
simulated process. With no process tags, every simulated process in the
catalog is summed. Recorded-data processes are skipped.

With --write, the sums replace sum_genweight in the bundle so that
normalization uses the complete sample rather than a single partition.`,
		Usage:  "skim sumw [flags] [process-tag...]",
		Params: func() any { return &params },
	}

	command.Run = func(ctx context.Context, args []string) error {
		logger, cfg, cat, err := setupCommand(command, params.CommonParams, params.Catalog)
		if err != nil {
			return err
		}

		tags := args
		if len(tags) == 0 {
			tags = cat.Tags()
		}

		eng, err := openEngine(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer eng.Close()

		table := tabwriter.NewWriter(command.Out(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(table, "PROCESS\tSHARDS\tSUM\n")
		for _, tag := range tags {
			process, err := cat.Lookup(tag)
			if err != nil {
				return categorize(err)
			}
			if process.Metadata.IsData {
				logger.Debug("skipping recorded data", "process", tag)
				continue
			}

			var shards []string
			for _, name := range process.PartitionNames() {
				shards = append(shards, process.Partitions[name].Shards...)
			}
			sum, err := weight.SumGeneratorWeights(ctx, eng, shards, cfg.Input.RunsTree, params.Column)
			if err != nil {
				return fmt.Errorf("%s: %w", tag, err)
			}
			fmt.Fprintf(table, "%s\t%d\t%g\n", tag, len(shards), sum)

			if params.Write {
				if err := cat.SetSumGeneratorWeight(tag, sum); err != nil {
					return err
				}
			}
		}
		if err := table.Flush(); err != nil {
			return err
		}

		if params.Write {
			if err := cat.Save(cfg.Catalog); err != nil {
				return cli.Internal("saving bundle: %w", err)
			}
			logger.Info("sums written", "path", cfg.Catalog)
		}
		return nil
	}

	return command
}
