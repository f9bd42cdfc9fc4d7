// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Name     string        `flag:"name" desc:"the name"`
		Verbose  bool          `flag:"verbose,v"`
		Count    int           `flag:"count"`
		Rate     float64       `flag:"rate"`
		Timeout  time.Duration `flag:"timeout"`
		Tags     []string      `flag:"tags"`
		Untagged string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	err := flagSet.Parse([]string{
		"--name", "alice", "-v", "--count", "42", "--rate", "0.95",
		"--timeout", "30s", "--tags", "a,b,c",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Name != "alice" || !p.Verbose || p.Count != 42 || p.Rate != 0.95 || p.Timeout != 30*time.Second {
		t.Errorf("params = %+v", p)
	}
	if !slices.Equal(p.Tags, []string{"a", "b", "c"}) {
		t.Errorf("Tags = %v", p.Tags)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("untagged field was bound")
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Level   string        `flag:"level" default:"info"`
		Sidecar bool          `flag:"sidecar" default:"true"`
		Parts   int           `flag:"parts" default:"25"`
		Wait    time.Duration `flag:"wait" default:"1m"`
		Names   []string      `flag:"names" default:"a,b"`
	}
	var p params
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if p.Level != "info" || !p.Sidecar || p.Parts != 25 || p.Wait != time.Minute || !slices.Equal(p.Names, []string{"a", "b"}) {
		t.Errorf("defaults = %+v", p)
	}
}

func TestBindFlags_EmbeddedCommonParams(t *testing.T) {
	type params struct {
		CommonParams
		Output string `flag:"output"`
	}
	var p params
	flagSet := FlagsFromParams("run", &p)
	if err := flagSet.Parse([]string{"-c", "skim.yaml", "--log-level", "debug", "--output", "out"}); err != nil {
		t.Fatal(err)
	}
	if p.Config != "skim.yaml" || p.LogLevel != "debug" || p.Output != "out" {
		t.Errorf("params = %+v", p)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	type unsupported struct {
		Ratio complex128 `flag:"ratio"`
	}
	type badDefault struct {
		Count int `flag:"count" default:"many"`
	}

	tests := []struct {
		name   string
		params any
		want   string
	}{
		{"not a pointer", struct{}{}, "pointer to a struct"},
		{"unsupported type", &unsupported{}, "unsupported type"},
		{"bad default", &badDefault{}, "default for --count"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := BindFlags(test.params, pflag.NewFlagSet("test", pflag.ContinueOnError))
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %v, want containing %q", err, test.want)
			}
		})
	}
}

func TestFlagsFromParams_PanicsOnBadParams(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	FlagsFromParams("test", 42)
}
