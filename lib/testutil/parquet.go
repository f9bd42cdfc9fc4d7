// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	_ "github.com/marcboeker/go-duckdb"
)

// Column is a fixture column: a name and a DuckDB type such as
// "BOOLEAN", "INTEGER", "DOUBLE" or "FLOAT[]".
type Column struct {
	Name string
	Type string
}

// Table is a fixture table. Each row holds one value per column:
// nil, bool, int, int64, float64, string, or []float64.
type Table struct {
	Columns []Column
	Rows    [][]any
}

// WriteShard creates directory/name and writes one parquet file per
// table into it, named <table>.parquet. It returns the shard locator
// (the directory path).
func WriteShard(t *testing.T, directory, name string, tables map[string]Table) string {
	t.Helper()

	shard := filepath.Join(directory, name)
	if err := os.MkdirAll(shard, 0o755); err != nil {
		t.Fatalf("creating shard %s: %v", shard, err)
	}
	for tableName, table := range tables {
		WriteTable(t, filepath.Join(shard, tableName+".parquet"), table)
	}
	return shard
}

// WriteTable writes table to a single parquet file at path.
func WriteTable(t *testing.T, path string, table Table) {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("opening duckdb: %v", err)
	}
	defer db.Close()

	statement := fmt.Sprintf("COPY (%s) TO '%s' (FORMAT PARQUET)", selectTable(t, table), strings.ReplaceAll(path, "'", "''"))
	if _, err := db.Exec(statement); err != nil {
		t.Fatalf("writing %s: %v\n%s", path, err, statement)
	}
}

func selectTable(t *testing.T, table Table) string {
	t.Helper()

	if len(table.Columns) == 0 {
		t.Fatalf("fixture table has no columns")
	}

	if len(table.Rows) == 0 {
		casts := make([]string, len(table.Columns))
		for i, column := range table.Columns {
			casts[i] = fmt.Sprintf("CAST(NULL AS %s) AS %s", column.Type, quote(column.Name))
		}
		return "SELECT " + strings.Join(casts, ", ") + " WHERE false"
	}

	aliases := make([]string, len(table.Columns))
	casts := make([]string, len(table.Columns))
	for i, column := range table.Columns {
		aliases[i] = fmt.Sprintf("c%d", i)
		casts[i] = fmt.Sprintf("CAST(c%d AS %s) AS %s", i, column.Type, quote(column.Name))
	}

	rows := make([]string, len(table.Rows))
	for r, row := range table.Rows {
		if len(row) != len(table.Columns) {
			t.Fatalf("fixture row %d has %d values for %d columns", r, len(row), len(table.Columns))
		}
		values := make([]string, len(row))
		for i, value := range row {
			values[i] = literal(t, value)
		}
		rows[r] = "(" + strings.Join(values, ", ") + ")"
	}

	return fmt.Sprintf("SELECT %s FROM (VALUES %s) AS fixture(%s)",
		strings.Join(casts, ", "), strings.Join(rows, ", "), strings.Join(aliases, ", "))
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func literal(t *testing.T, value any) string {
	t.Helper()
	switch v := value.(type) {
	case nil:
		return "NULL"
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case []float64:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = strconv.FormatFloat(item, 'g', -1, 64)
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		t.Fatalf("unsupported fixture value %T", value)
		return ""
	}
}

// ReadColumn reads one column of a parquet file, in file order.
func ReadColumn[T any](t *testing.T, path, column string) []T {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("opening duckdb: %v", err)
	}
	defer db.Close()

	rows, err := db.Query(fmt.Sprintf("SELECT %s FROM read_parquet('%s')", quote(column), strings.ReplaceAll(path, "'", "''")))
	if err != nil {
		t.Fatalf("reading %s from %s: %v", column, path, err)
	}
	defer rows.Close()

	var values []T
	for rows.Next() {
		var value T
		if err := rows.Scan(&value); err != nil {
			t.Fatalf("scanning %s: %v", column, err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("reading %s: %v", column, err)
	}
	return values
}

// ReadSchema returns the column names of a parquet file.
func ReadSchema(t *testing.T, path string) []string {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("opening duckdb: %v", err)
	}
	defer db.Close()

	rows, err := db.Query(fmt.Sprintf("SELECT * FROM read_parquet('%s') LIMIT 0", strings.ReplaceAll(path, "'", "''")))
	if err != nil {
		t.Fatalf("reading schema of %s: %v", path, err)
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		t.Fatalf("reading schema of %s: %v", path, err)
	}
	return columns
}
