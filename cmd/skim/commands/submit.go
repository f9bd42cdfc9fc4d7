// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/trilepton/skim/cmd/skim/cli"
	"github.com/trilepton/skim/lib/condor"
)

type submitParams struct {
	cli.CommonParams
	Catalog    string `flag:"catalog" desc:"catalog bundle (overrides the configuration)"`
	Output     string `flag:"output,o" desc:"submit description to write" default:"submit.jdl"`
	Executable string `flag:"executable" desc:"job wrapper script" default:"run_job.sh"`
	Flavour    string `flag:"flavour" desc:"batch queue class" default:"nextweek"`
	CPUs       int    `flag:"cpus" desc:"CPUs per job" default:"1"`
	MemoryGB   int    `flag:"memory" desc:"memory per job in GB" default:"8"`
	DiskGB     int    `flag:"disk" desc:"scratch disk per job in GB" default:"50"`
	Logs       string `flag:"logs" desc:"directory for job stdout, stderr and the cluster log" default:"logs"`
}

func submitCommand() *cli.Command {
	var params submitParams

	command := &cli.Command{
		Name:    "submit",
		Summary: "Write an HTCondor submit description",
		Description: `Write an HTCondor submit description queueing one job per partition.
Each job runs "<executable> run <process> <partition>". With no process
tags, every process in the catalog is queued.`,
		Usage: "skim submit [flags] [process-tag...]",
		Examples: []cli.Example{
			{Description: "Queue every partition of two processes", Command: "skim submit -o wz.jdl WZ_3L ZZ_4L"},
		},
		Params: func() any { return &params },
	}

	command.Run = func(_ context.Context, args []string) error {
		logger, _, cat, err := setupCommand(command, params.CommonParams, params.Catalog)
		if err != nil {
			return err
		}

		jobs, err := condor.Jobs(cat, args)
		if err != nil {
			return categorize(err)
		}
		settings := condor.Settings{
			Executable:   params.Executable,
			Flavour:      params.Flavour,
			CPUs:         params.CPUs,
			MemoryGB:     params.MemoryGB,
			DiskGB:       params.DiskGB,
			LogDirectory: params.Logs,
		}
		if err := settings.Validate(); err != nil {
			return cli.Validation("%w", err)
		}
		if err := condor.WriteFile(params.Output, settings, jobs); err != nil {
			return cli.Internal("writing submit description: %w", err)
		}

		logger.Info("submit description written", "path", params.Output, "jobs", len(jobs))
		_, err = fmt.Fprintf(command.Out(), "%s: %d job(s)\n", params.Output, len(jobs))
		return err
	}

	return command
}
