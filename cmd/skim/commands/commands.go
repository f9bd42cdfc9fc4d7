// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the skim command tree.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/trilepton/skim/cmd/skim/cli"
	"github.com/trilepton/skim/lib/catalog"
	"github.com/trilepton/skim/lib/config"
	"github.com/trilepton/skim/lib/engine"
	"github.com/trilepton/skim/lib/version"
)

// Root builds the complete command tree writing to stdout and stderr.
func Root(stdout, stderr io.Writer) *cli.Command {
	root := &cli.Command{
		Name: "skim",
		Description: `skim: event skimming and normalization.

Reads partitions of columnar event shards listed in a catalog bundle,
applies the trigger, MET-filter and multiplicity selection, attaches
per-event normalization weights to simulated samples, and writes one
compact parquet artifact per partition.`,
		Stdout: stdout,
		Stderr: stderr,
	}
	version := &cli.Command{
		Name:    "version",
		Summary: "Print version information",
	}
	version.Run = func(context.Context, []string) error {
		_, err := fmt.Fprintf(version.Out(), "skim %s\n", versionInfo())
		return err
	}

	root.Subcommands = []*cli.Command{
		runCommand(),
		bundleCommand(),
		sumwCommand(),
		submitCommand(),
		cutflowCommand(),
		version,
	}
	return root
}

var versionInfo = version.Full

// loadConfig reads --config, then $SKIM_CONFIG. With neither, the
// built-in defaults are used and the catalog must come from a flag.
func loadConfig(common cli.CommonParams) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case common.Config != "":
		cfg, err = config.LoadFile(common.Config)
	case os.Getenv(config.EnvVar) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// setupCommand is the shared preamble of commands that read a catalog:
// logger, configuration with catalog override, and the catalog itself.
func setupCommand(command *cli.Command, common cli.CommonParams, catalogPath string) (*slog.Logger, *config.Config, *catalog.Catalog, error) {
	logger, err := cli.NewCommandLogger(command.ErrOut(), common.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	logger = logger.With("command", command.Name)

	cfg, err := loadConfig(common)
	if err != nil {
		return nil, nil, nil, err
	}
	if catalogPath != "" {
		cfg.Catalog = catalogPath
	}
	if cfg.Catalog == "" {
		return nil, nil, nil, command.UsageError("no catalog bundle: pass --catalog or set catalog in the configuration")
	}

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, nil, nil, err
	}
	return logger, cfg, cat, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	cat, err := catalog.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cli.NotFound("catalog bundle %s does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return cat, nil
}

// openEngine starts the query engine with the configured settings.
func openEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	policy, err := engine.ParseShardPolicy(cfg.Input.ShardPolicy)
	if err != nil {
		return nil, err
	}
	eng, err := engine.New(ctx, engine.Options{
		Threads:     cfg.Engine.Threads,
		MemoryLimit: cfg.Engine.MemoryLimit,
		ShardPolicy: policy,
		TableLayout: cfg.Input.TableLayout,
		Compression: cfg.Output.Compression,
		Logger:      logger,
	})
	if err != nil {
		return nil, cli.Internal("starting engine: %w", err)
	}
	return eng, nil
}

// categorize maps catalog lookup failures onto not-found errors.
func categorize(err error) error {
	if errors.Is(err, catalog.ErrProcessNotFound) || errors.Is(err, catalog.ErrPartNotFound) {
		return cli.NotFound("%w", err)
	}
	return err
}
