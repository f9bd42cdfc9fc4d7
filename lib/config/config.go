// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable [Load] reads.
const EnvVar = "SKIM_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for interactive runs on a workstation.
	Development Environment = "development"
	// Production is for batch jobs.
	Production Environment = "production"
)

// Weighting conventions accepted by weighting.convention.
const (
	ConventionLuminosity   = "luminosity"
	ConventionCrossSection = "cross_section"
)

// Shard policies accepted by input.shard_policy.
const (
	ShardPolicyStrict = "strict"
	ShardPolicySkip   = "skip"
)

// Config is the run configuration.
type Config struct {
	Environment Environment `yaml:"environment"`

	// Catalog is the path of the catalog bundle.
	Catalog string `yaml:"catalog"`

	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Engine    EngineConfig    `yaml:"engine"`
	Selection SelectionConfig `yaml:"selection"`
	Branches  BranchesConfig  `yaml:"branches"`
	Weighting WeightingConfig `yaml:"weighting"`
	Run       RunConfig       `yaml:"run"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *Overrides `yaml:"development,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides contains fields that can be overridden per environment.
// Nil pointers and nil slices leave the base value alone.
type Overrides struct {
	Catalog   string           `yaml:"catalog,omitempty"`
	Input     *InputConfig     `yaml:"input,omitempty"`
	Output    *OutputOverrides `yaml:"output,omitempty"`
	Engine    *EngineConfig    `yaml:"engine,omitempty"`
	Selection *SelectionConfig `yaml:"selection,omitempty"`
	Run       *RunConfig       `yaml:"run,omitempty"`
}

// OutputOverrides mirrors [OutputConfig] with an optional sidecar flag
// so that an override can turn it off.
type OutputOverrides struct {
	Directory      string `yaml:"directory"`
	Compression    string `yaml:"compression"`
	CutflowSidecar *bool  `yaml:"cutflow_sidecar"`
}

// InputConfig describes how shards are read.
type InputConfig struct {
	// Tree is the per-event table inside each shard.
	// Default: Events
	Tree string `yaml:"tree"`

	// RunsTree is the per-run table holding generator-weight sums.
	// Default: Runs
	RunsTree string `yaml:"runs_tree"`

	// TableLayout maps a shard locator and table name to a parquet
	// file. {shard} and {table} are substituted.
	// Default: {shard}/{table}.parquet
	TableLayout string `yaml:"table_layout"`

	// ShardPolicy is "strict" (one unreadable shard fails the
	// partition) or "skip" (unreadable shards are dropped).
	// Default: strict
	ShardPolicy string `yaml:"shard_policy"`

	// MaxFiles caps the shards read per partition; 0 reads all of
	// them. Useful for quick checks of a new selection.
	MaxFiles int `yaml:"max_files"`
}

// OutputConfig describes where and how artifacts are written.
type OutputConfig struct {
	// Directory receives {tag}_{partition}.parquet files.
	Directory string `yaml:"directory"`

	// Compression is the parquet codec: zstd, snappy, gzip or
	// uncompressed.
	// Default: zstd
	Compression string `yaml:"compression"`

	// CutflowSidecar writes <output>.cutflow.cbor next to each
	// artifact.
	CutflowSidecar bool `yaml:"cutflow_sidecar"`
}

// EngineConfig tunes the embedded query engine.
type EngineConfig struct {
	// Threads is the worker-thread count; 0 uses every CPU.
	Threads int `yaml:"threads"`

	// MemoryLimit is passed to the engine verbatim (for example
	// "8GB"); empty keeps the engine default.
	MemoryLimit string `yaml:"memory_limit"`
}

// SelectionConfig lists the flag columns of the first two stages.
// An empty list disables its stage.
type SelectionConfig struct {
	Triggers   []string `yaml:"triggers"`
	METFilters []string `yaml:"met_filters"`
}

// BranchesConfig lists the output columns.
type BranchesConfig struct {
	// Explicit names are written for every sample.
	Explicit []string `yaml:"explicit"`
	// Simulated names are added for simulated samples only.
	Simulated []string `yaml:"simulated"`
	// WildcardSimulated patterns ("Electron_*") for simulated samples.
	WildcardSimulated []string `yaml:"wildcard_simulated"`
	// WildcardData patterns for recorded data.
	WildcardData []string `yaml:"wildcard_data"`
}

// WeightingConfig pins the normalization convention.
type WeightingConfig struct {
	// Convention is "luminosity" or "cross_section". Required.
	Convention string `yaml:"convention"`

	// LuminosityPBInv is the integrated luminosity in inverse
	// picobarns, used by the luminosity convention.
	// Default: 62400 (62.4 fb^-1)
	LuminosityPBInv float64 `yaml:"luminosity_pb_inv"`

	// GeneratorWeightColumn holds the per-event generator weight.
	// Default: genWeight
	GeneratorWeightColumn string `yaml:"generator_weight_column"`
}

// RunConfig configures run bookkeeping.
type RunConfig struct {
	// ResultLog is an optional JSONL file receiving one line per run
	// start, partition outcome and summary.
	ResultLog string `yaml:"result_log"`
}

// Default returns the analysis defaults. They are the base onto which
// the config file is decoded, so a file only needs to name what it
// changes.
func Default() *Config {
	return &Config{
		Environment: Development,
		Input: InputConfig{
			Tree:        "Events",
			RunsTree:    "Runs",
			TableLayout: "{shard}/{table}.parquet",
			ShardPolicy: ShardPolicyStrict,
		},
		Output: OutputConfig{
			Directory:   ".",
			Compression: "zstd",
		},
		Selection: SelectionConfig{
			Triggers:   slices.Clone(defaultTriggers),
			METFilters: slices.Clone(defaultMETFilters),
		},
		Branches: BranchesConfig{
			Explicit:          defaultExplicitBranches(),
			Simulated:         slices.Clone(defaultSimulatedBranches),
			WildcardSimulated: slices.Clone(defaultWildcardSimulated),
			WildcardData:      slices.Clone(defaultWildcardData),
		},
		Weighting: WeightingConfig{
			Convention:            ConventionLuminosity,
			LuminosityPBInv:       62.4e3,
			GeneratorWeightColumn: "genWeight",
		},
	}
}

// Load loads configuration from the file named by SKIM_CONFIG.
//
// There is no fallback: if SKIM_CONFIG is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your skim.yaml config file, or use --config flag", EnvVar)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, applies the
// matching environment section and expands path variables. It does not
// validate; callers run [Config.Validate] once all flag overrides are
// in place.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
		if overrides == nil {
			sidecar := true
			overrides = &Overrides{
				Input:  &InputConfig{ShardPolicy: ShardPolicyStrict},
				Output: &OutputOverrides{CutflowSidecar: &sidecar},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Catalog != "" {
		c.Catalog = overrides.Catalog
	}

	if overrides.Input != nil {
		if overrides.Input.Tree != "" {
			c.Input.Tree = overrides.Input.Tree
		}
		if overrides.Input.RunsTree != "" {
			c.Input.RunsTree = overrides.Input.RunsTree
		}
		if overrides.Input.TableLayout != "" {
			c.Input.TableLayout = overrides.Input.TableLayout
		}
		if overrides.Input.ShardPolicy != "" {
			c.Input.ShardPolicy = overrides.Input.ShardPolicy
		}
		if overrides.Input.MaxFiles != 0 {
			c.Input.MaxFiles = overrides.Input.MaxFiles
		}
	}

	if overrides.Output != nil {
		if overrides.Output.Directory != "" {
			c.Output.Directory = overrides.Output.Directory
		}
		if overrides.Output.Compression != "" {
			c.Output.Compression = overrides.Output.Compression
		}
		if overrides.Output.CutflowSidecar != nil {
			c.Output.CutflowSidecar = *overrides.Output.CutflowSidecar
		}
	}

	if overrides.Engine != nil {
		if overrides.Engine.Threads != 0 {
			c.Engine.Threads = overrides.Engine.Threads
		}
		if overrides.Engine.MemoryLimit != "" {
			c.Engine.MemoryLimit = overrides.Engine.MemoryLimit
		}
	}

	if overrides.Selection != nil {
		if overrides.Selection.Triggers != nil {
			c.Selection.Triggers = overrides.Selection.Triggers
		}
		if overrides.Selection.METFilters != nil {
			c.Selection.METFilters = overrides.Selection.METFilters
		}
	}

	if overrides.Run != nil && overrides.Run.ResultLog != "" {
		c.Run.ResultLog = overrides.Run.ResultLog
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Output.Directory = expandVars(c.Output.Directory, vars)
	vars["SKIM_OUTPUT"] = c.Output.Directory

	c.Catalog = expandVars(c.Catalog, vars)
	c.Run.ResultLog = expandVars(c.Run.ResultLog, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Catalog == "" {
		errs = append(errs, fmt.Errorf("catalog is required"))
	}

	if c.Input.Tree == "" {
		errs = append(errs, fmt.Errorf("input.tree is required"))
	}
	if !strings.Contains(c.Input.TableLayout, "{shard}") {
		errs = append(errs, fmt.Errorf("input.table_layout must contain {shard}"))
	}
	shardPolicies := []string{ShardPolicyStrict, ShardPolicySkip}
	if !slices.Contains(shardPolicies, c.Input.ShardPolicy) {
		errs = append(errs, fmt.Errorf("input.shard_policy must be one of: %v", shardPolicies))
	}
	if c.Input.MaxFiles < 0 {
		errs = append(errs, fmt.Errorf("input.max_files must not be negative"))
	}

	if c.Output.Directory == "" {
		errs = append(errs, fmt.Errorf("output.directory is required"))
	}
	compressions := []string{"zstd", "snappy", "gzip", "uncompressed"}
	if !slices.Contains(compressions, c.Output.Compression) {
		errs = append(errs, fmt.Errorf("output.compression must be one of: %v", compressions))
	}

	if c.Engine.Threads < 0 {
		errs = append(errs, fmt.Errorf("engine.threads must not be negative"))
	}

	conventions := []string{ConventionLuminosity, ConventionCrossSection}
	if !slices.Contains(conventions, c.Weighting.Convention) {
		errs = append(errs, fmt.Errorf("weighting.convention must be one of: %v", conventions))
	}
	if c.Weighting.Convention == ConventionLuminosity && c.Weighting.LuminosityPBInv <= 0 {
		errs = append(errs, fmt.Errorf("weighting.luminosity_pb_inv must be positive for the luminosity convention"))
	}
	if c.Weighting.GeneratorWeightColumn == "" {
		errs = append(errs, fmt.Errorf("weighting.generator_weight_column is required"))
	}

	for _, pattern := range append(slices.Clone(c.Branches.WildcardSimulated), c.Branches.WildcardData...) {
		if !strings.HasSuffix(pattern, "*") || strings.Count(pattern, "*") != 1 {
			errs = append(errs, fmt.Errorf("branch wildcard %q must end in a single '*'", pattern))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// OutputPath returns the artifact path for a process partition.
func (c *Config) OutputPath(tag, partition string) string {
	return filepath.Join(c.Output.Directory, tag+"_"+partition+".parquet")
}
