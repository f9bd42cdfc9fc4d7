// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		want       int
		wantStderr string
	}{
		{"success", nil, ExitOK, ""},
		{"partial", &ExitError{Code: ExitPartial}, ExitPartial, ""},
		{"wrapped exit error", fmt.Errorf("run: %w", &ExitError{Code: 4}), 4, ""},
		{"usage", Validation("expected 2 arguments"), ExitUsage, "error: expected 2 arguments\n"},
		{"not found", NotFound("process %q not found", "ZZ"), ExitFatal, "error: process \"ZZ\" not found\n"},
		{"plain", errors.New("boom"), ExitFatal, "error: boom\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if got := ExitCode(test.err, &stderr); got != test.want {
				t.Errorf("ExitCode = %d, want %d", got, test.want)
			}
			if stderr.String() != test.wantStderr {
				t.Errorf("stderr = %q, want %q", stderr.String(), test.wantStderr)
			}
		})
	}
}

func TestToolErrorUnwraps(t *testing.T) {
	err := Internal("reading bundle: %w", fs.ErrNotExist)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("ToolError hides its cause")
	}
	if err.Category != CategoryInternal {
		t.Errorf("Category = %s", err.Category)
	}
}

func TestNewCommandLogger(t *testing.T) {
	var buffer bytes.Buffer
	logger, err := NewCommandLogger(&buffer, "warn")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "partition", "part1")

	output := buffer.String()
	if bytes.Contains(buffer.Bytes(), []byte("hidden")) {
		t.Error("info message passed a warn logger")
	}
	if want := `"partition":"part1"`; !bytes.Contains(buffer.Bytes(), []byte(want)) {
		t.Errorf("non-terminal output is not JSON: %s", output)
	}

	if _, err := NewCommandLogger(&buffer, "loud"); !errors.As(err, new(*ToolError)) {
		t.Errorf("bad level error = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	for input, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(input)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", input, got, err)
		}
	}
}
