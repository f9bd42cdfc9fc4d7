// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags -X at build time.
var (
	GitCommit = "unknown"
	GitDirty  = "false"
	BuildTime = "unknown"
	Version   = "0.1.0-dev"
)

// DriverModule is the module whose version [Full] reports.
const DriverModule = "github.com/marcboeker/go-duckdb"

// buildInfo is replaced in tests.
var buildInfo = debug.ReadBuildInfo

// Info returns "<version> (<commit>[-dirty], <time>)".
func Info() string {
	commit, dirty, built := GitCommit, GitDirty == "true", BuildTime
	if commit == "unknown" {
		if settings := vcsSettings(); settings["vcs.revision"] != "" {
			commit = shorten(settings["vcs.revision"])
			dirty = settings["vcs.modified"] == "true"
			if built == "unknown" && settings["vcs.time"] != "" {
				built = settings["vcs.time"]
			}
		}
	}
	suffix := ""
	if dirty {
		suffix = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, commit, suffix, built)
}

// Full returns [Info] followed by toolchain, platform and driver lines.
func Full() string {
	driver := Dependency(DriverModule)
	if driver == "" {
		driver = "unknown"
	}
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s\n  DuckDB driver: %s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH, driver)
}

// Short returns the version number alone.
func Short() string { return Version }

// Dependency returns the version of module linked into the binary, or
// "" when it is not a dependency or build information is unavailable.
func Dependency(module string) string {
	info, ok := buildInfo()
	if !ok {
		return ""
	}
	for _, dep := range info.Deps {
		if dep.Path != module {
			continue
		}
		if dep.Replace != nil {
			return dep.Replace.Version
		}
		return dep.Version
	}
	return ""
}

func vcsSettings() map[string]string {
	info, ok := buildInfo()
	if !ok {
		return nil
	}
	settings := make(map[string]string)
	for _, setting := range info.Settings {
		settings[setting.Key] = setting.Value
	}
	return settings
}

func shorten(revision string) string {
	if len(revision) > 12 {
		return revision[:12]
	}
	return revision
}
