// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"io"
	"log/slog"
	"sync"
)

// LogBuffer collects log output. It is safe for concurrent writes.
type LogBuffer struct {
	mu     sync.Mutex
	buffer bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffer.Write(p)
}

// String returns everything logged so far.
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffer.String()
}

// Logger returns a debug-level text logger writing into a new buffer.
func Logger() (*slog.Logger, *LogBuffer) {
	buffer := &LogBuffer{}
	return slog.New(slog.NewTextHandler(buffer, &slog.HandlerOptions{Level: slog.LevelDebug})), buffer
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
