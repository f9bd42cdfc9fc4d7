// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/trilepton/skim/cmd/skim/cli"
	"github.com/trilepton/skim/lib/clock"
	"github.com/trilepton/skim/lib/config"
	"github.com/trilepton/skim/lib/runner"
)

type runParams struct {
	cli.CommonParams
	Catalog     string `flag:"catalog" desc:"catalog bundle (overrides the configuration)"`
	Output      string `flag:"output,o" desc:"output directory (overrides the configuration)"`
	Threads     int    `flag:"threads,j" desc:"engine worker threads (0: configured value)"`
	MaxFiles    int    `flag:"max-files" desc:"read at most this many shards per partition"`
	Convention  string `flag:"convention" desc:"weighting convention: luminosity or cross_section"`
	ShardPolicy string `flag:"shard-policy" desc:"unreadable shards: strict or skip"`
	ResultLog   string `flag:"result-log" desc:"write JSONL progress to this file"`
	Sidecar     bool   `flag:"sidecar" desc:"write <artifact>.cutflow.cbor next to each artifact"`
}

// apply overlays the flags that were given on cfg.
func (p *runParams) apply(cfg *config.Config) {
	if p.Output != "" {
		cfg.Output.Directory = p.Output
	}
	if p.Threads > 0 {
		cfg.Engine.Threads = p.Threads
	}
	if p.MaxFiles > 0 {
		cfg.Input.MaxFiles = p.MaxFiles
	}
	if p.Convention != "" {
		cfg.Weighting.Convention = p.Convention
	}
	if p.ShardPolicy != "" {
		cfg.Input.ShardPolicy = p.ShardPolicy
	}
	if p.ResultLog != "" {
		cfg.Run.ResultLog = p.ResultLog
	}
	if p.Sidecar {
		cfg.Output.CutflowSidecar = true
	}
}

func runCommand() *cli.Command {
	var params runParams

	command := &cli.Command{
		Name:    "run",
		Summary: "Skim the partitions of one process",
		Description: `Skim one partition of a process, or all of them.

Each partition is read, filtered through the selection stages, weighted
(simulated samples only), projected onto the configured branches and
written to <output>/<process>_<partition>.parquet. The cut flow of each
partition is printed as it completes, followed by a run summary.

A failing partition does not stop the run. Exit status is 0 when every
partition succeeded, 3 when some failed, 1 when the run could not start
and 2 for usage errors.`,
		Usage: "skim run [flags] <process-tag> <partition-selector>",
		Examples: []cli.Example{
			{Description: "Every partition of a process", Command: "skim run -c skim.yaml WZ_3L ALL"},
			{Description: "A quick check on two shards", Command: "skim run --max-files 2 -o /tmp/skim WZ_3L part1"},
		},
		Params: func() any { return &params },
	}

	command.Run = func(ctx context.Context, args []string) error {
		if len(args) != 2 {
			return command.UsageError("expected <process-tag> <partition-selector>, got %d argument(s)", len(args))
		}
		tag, selector := args[0], args[1]

		logger, cfg, cat, err := setupCommand(command, params.CommonParams, params.Catalog)
		if err != nil {
			return err
		}
		params.apply(cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration:\n%w", err)
		}

		eng, err := openEngine(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer eng.Close()

		var results *runner.ResultLog
		if cfg.Run.ResultLog != "" {
			results, err = runner.NewResultLog(cfg.Run.ResultLog, logger)
			if err != nil {
				return err
			}
			defer results.Close()
		}

		r := &runner.Runner{
			Engine:  eng,
			Catalog: cat,
			Config:  cfg,
			Clock:   clock.Real(),
			Logger:  logger,
			Stdout:  command.Out(),
			Results: results,
		}
		summary, err := r.Run(ctx, tag, selector)
		if err != nil {
			return categorize(err)
		}
		if summary.Outcome() != runner.OutcomeComplete {
			return &cli.ExitError{Code: cli.ExitPartial}
		}
		return nil
	}

	return command
}
