// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRunExitStatus(t *testing.T) {
	t.Setenv("SKIM_CONFIG", "")

	tests := []struct {
		name       string
		args       []string
		want       int
		wantStdout string
		wantStderr string
	}{
		{"version", []string{"version"}, 0, "skim ", ""},
		{"help", []string{"--help"}, 0, "", "Commands:"},
		{"unknown command", []string{"rnu"}, 2, "", `did you mean "run"`},
		{"run without arguments", []string{"run"}, 2, "", "skim run [flags] <process-tag> <partition-selector>"},
		{"run with one argument", []string{"run", "WZ_3L"}, 2, "", "got 1 argument(s)"},
		{"unknown flag", []string{"run", "--outptu", "x", "WZ_3L", "ALL"}, 2, "", "did you mean --output?"},
		{"missing catalog", []string{"run", "--catalog", "/nonexistent/bundle.json", "WZ_3L", "ALL"}, 1, "", "does not exist"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(context.Background(), test.args, &stdout, &stderr); got != test.want {
				t.Errorf("exit status = %d, want %d\nstderr: %s", got, test.want, stderr.String())
			}
			if !strings.Contains(stdout.String(), test.wantStdout) {
				t.Errorf("stdout = %q, want containing %q", stdout.String(), test.wantStdout)
			}
			if !strings.Contains(stderr.String(), test.wantStderr) {
				t.Errorf("stderr = %q, want containing %q", stderr.String(), test.wantStderr)
			}
		})
	}
}
