// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func withBuildInfo(t *testing.T, info *debug.BuildInfo) {
	t.Helper()
	original := buildInfo
	buildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
	t.Cleanup(func() { buildInfo = original })
}

func withCommit(t *testing.T, commit, dirty, built string) {
	t.Helper()
	saved := [3]string{GitCommit, GitDirty, BuildTime}
	GitCommit, GitDirty, BuildTime = commit, dirty, built
	t.Cleanup(func() { GitCommit, GitDirty, BuildTime = saved[0], saved[1], saved[2] })
}

func TestInfo(t *testing.T) {
	stamped := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-03-01T12:00:00Z"},
	}}

	tests := []struct {
		name   string
		commit string
		dirty  string
		built  string
		info   *debug.BuildInfo
		want   string
	}{
		{"ldflags", "abc1234", "false", "2026-02-10", stamped, "0.1.0-dev (abc1234, 2026-02-10)"},
		{"ldflags dirty", "abc1234", "true", "2026-02-10", nil, "0.1.0-dev (abc1234-dirty, 2026-02-10)"},
		{"vcs fallback", "unknown", "false", "unknown", stamped, "0.1.0-dev (0123456789ab-dirty, 2026-03-01T12:00:00Z)"},
		{"nothing known", "unknown", "false", "unknown", nil, "0.1.0-dev (unknown, unknown)"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			withCommit(t, test.commit, test.dirty, test.built)
			withBuildInfo(t, test.info)
			if got := Info(); got != test.want {
				t.Errorf("Info() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestDependency(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{Deps: []*debug.Module{
		{Path: DriverModule, Version: "v1.5.1"},
		{Path: "example.com/replaced", Version: "v1.0.0", Replace: &debug.Module{Path: "../local", Version: "v1.0.1"}},
	}})

	if got := Dependency(DriverModule); got != "v1.5.1" {
		t.Errorf("Dependency(driver) = %q", got)
	}
	if got := Dependency("example.com/replaced"); got != "v1.0.1" {
		t.Errorf("Dependency(replaced) = %q", got)
	}
	if got := Dependency("example.com/absent"); got != "" {
		t.Errorf("Dependency(absent) = %q", got)
	}
	if !strings.Contains(Full(), "DuckDB driver: v1.5.1") {
		t.Errorf("Full() = %q", Full())
	}
}
