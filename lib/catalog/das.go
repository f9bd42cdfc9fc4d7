// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Lister enumerates the logical file names of a dataset.
type Lister interface {
	ListFiles(ctx context.Context, dataset string) ([]string, error)
}

// DefaultDASBinary is the data-aggregation-service client executable.
const DefaultDASBinary = "dasgoclient"

// DASClient lists files by running the DAS command-line client.
type DASClient struct {
	// Binary is the executable name or path. Empty means
	// [DefaultDASBinary].
	Binary string
}

// ListFiles runs `dasgoclient -query "file dataset=<dataset>"` and
// returns the non-empty output lines.
func (c DASClient) ListFiles(ctx context.Context, dataset string) ([]string, error) {
	binary := c.Binary
	if binary == "" {
		binary = DefaultDASBinary
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "-query", "file dataset="+dataset)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			return nil, fmt.Errorf("%s: %w", binary, err)
		}
		return nil, fmt.Errorf("%s: %w: %s", binary, err, message)
	}

	var files []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}
