// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync/atomic"

	_ "github.com/marcboeker/go-duckdb" // registers the "duckdb" driver
)

// ShardPolicy decides what happens when some shards of a partition
// cannot be opened.
type ShardPolicy int

const (
	// Strict fails the whole partition on the first unreadable shard.
	Strict ShardPolicy = iota
	// Skip drops unreadable shards with a warning and fails only when
	// none remain.
	Skip
)

func (p ShardPolicy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Skip:
		return "skip"
	default:
		return fmt.Sprintf("ShardPolicy(%d)", int(p))
	}
}

// ParseShardPolicy parses "strict" or "skip".
func ParseShardPolicy(name string) (ShardPolicy, error) {
	switch strings.ToLower(name) {
	case "", "strict":
		return Strict, nil
	case "skip":
		return Skip, nil
	default:
		return Strict, fmt.Errorf("unknown shard policy %q", name)
	}
}

// DefaultTableLayout maps a shard locator and table name to a file.
const DefaultTableLayout = "{shard}/{table}.parquet"

// Options holds the parameters for opening an [Engine]. All fields
// have sensible defaults.
type Options struct {
	// Threads is the engine's worker-thread count. Zero or negative
	// uses runtime.NumCPU().
	Threads int

	// MemoryLimit is passed to the engine verbatim ("8GB"). Empty
	// keeps the engine default.
	MemoryLimit string

	// ShardPolicy governs unreadable shards in [Engine.Open].
	ShardPolicy ShardPolicy

	// TableLayout resolves shard locators; see the package
	// documentation. Empty means [DefaultTableLayout].
	TableLayout string

	// Compression is the parquet codec used by [View.Snapshot].
	// Empty means zstd.
	Compression string

	// Logger receives operational messages. If nil, a no-op logger is
	// used.
	Logger *slog.Logger
}

// Engine is an embedded DuckDB instance with skimmer settings applied.
// It is safe for concurrent use; each trigger pins its own connection.
type Engine struct {
	db      *sql.DB
	logger  *slog.Logger
	options Options

	// sequence names temporary tables and files.
	sequence atomic.Uint64
}

// New opens an in-memory DuckDB instance and applies the engine-wide
// settings. The caller must call Close when done.
func New(ctx context.Context, options Options) (*Engine, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if options.Threads <= 0 {
		options.Threads = runtime.NumCPU()
	}
	if options.TableLayout == "" {
		options.TableLayout = DefaultTableLayout
	}
	if options.Compression == "" {
		options.Compression = "zstd"
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("engine: opening duckdb: %w", err)
	}

	settings := []string{
		fmt.Sprintf("SET GLOBAL threads = %d", options.Threads),
	}
	if options.MemoryLimit != "" {
		settings = append(settings, "SET GLOBAL memory_limit = "+quoteLiteral(options.MemoryLimit))
	}
	for _, setting := range settings {
		if _, err := db.ExecContext(ctx, setting); err != nil {
			db.Close()
			return nil, fmt.Errorf("engine: %s: %w", setting, err)
		}
	}

	logger.Info("engine opened",
		"threads", options.Threads,
		"memory_limit", options.MemoryLimit,
		"shard_policy", options.ShardPolicy.String(),
	)

	return &Engine{db: db, logger: logger, options: options}, nil
}

// Threads returns the worker-thread count the engine was opened with.
func (e *Engine) Threads() int { return e.options.Threads }

// Close releases the database.
func (e *Engine) Close() error {
	if err := e.db.Close(); err != nil {
		e.logger.Error("engine close error", "error", err)
		return fmt.Errorf("engine: closing: %w", err)
	}
	e.logger.Info("engine closed")
	return nil
}

func (e *Engine) nextID() uint64 { return e.sequence.Add(1) }
