// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger writing to w. When w is
// a terminal, uses slog.TextHandler for human-readable output. When it
// is piped or redirected (batch jobs, scripts, tests), uses
// slog.JSONHandler so that job logs can be parsed.
//
// Callers scope the logger with command-specific context via With():
//
//	logger = logger.With("command", "run", "process", tag)
func NewCommandLogger(w io.Writer, level string) (*slog.Logger, error) {
	parsed, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	options := &slog.HandlerOptions{Level: parsed}
	var handler slog.Handler
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler), nil
}

// ParseLevel parses a --log-level value. The empty string means info.
func ParseLevel(level string) (slog.Level, error) {
	if level == "" {
		return slog.LevelInfo, nil
	}
	var parsed slog.Level
	if err := parsed.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return 0, Validation("invalid log level %q (want debug, info, warn or error)", level)
	}
	return parsed, nil
}
