// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"fmt"
	"strings"
)

// TablePath resolves the file holding table inside shard.
func TablePath(layout, shard, table string) string {
	if strings.HasSuffix(shard, ".parquet") {
		return shard
	}
	if layout == "" {
		layout = DefaultTableLayout
	}
	return strings.NewReplacer("{shard}", shard, "{table}", table).Replace(layout)
}

// Open builds a view over table in the given shards. Each shard's
// table file is probed for readability; what happens to unreadable
// shards depends on the engine's [ShardPolicy]. Open fails with
// [ErrSourceUnavailable] when no shard is usable.
func (e *Engine) Open(ctx context.Context, shards []string, table string) (*View, error) {
	if len(shards) == 0 {
		return nil, fmt.Errorf("%w: no shards", ErrSourceUnavailable)
	}

	files := make([]string, 0, len(shards))
	for _, shard := range shards {
		path := TablePath(e.options.TableLayout, shard, table)
		if err := e.probe(ctx, path); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if e.options.ShardPolicy == Strict {
				return nil, fmt.Errorf("%w: shard %s: %v", ErrSourceUnavailable, shard, err)
			}
			e.logger.Warn("skipping unreadable shard", "shard", shard, "table", table, "error", err)
			continue
		}
		files = append(files, path)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: none of %d shard(s) could be opened", ErrSourceUnavailable, len(shards))
	}
	if skipped := len(shards) - len(files); skipped > 0 {
		e.logger.Warn("view covers a subset of the partition", "usable", len(files), "skipped", skipped)
	}

	return &View{engine: e, files: files}, nil
}

// probe reads the schema of one table file.
func (e *Engine) probe(ctx context.Context, path string) error {
	rows, err := e.db.QueryContext(ctx, "SELECT * FROM read_parquet("+quoteLiteral(path)+") LIMIT 0")
	if err != nil {
		return err
	}
	return rows.Close()
}
