// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "ab", 1},
		{"ab", "abc", 1},
		{"abc", "bac", 2},
		{"kitten", "sitting", 3},
		{"bundle", "bundel", 2},
		{"cutflow", "cutflw", 1},
	}

	for _, test := range tests {
		t.Run(test.a+"->"+test.b, func(t *testing.T) {
			if got := levenshtein(test.a, test.b); got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
			if got := levenshtein(test.b, test.a); got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.b, test.a, got, test.want)
			}
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{{Name: "run"}, {Name: "bundle"}, {Name: "sumw"}, {Name: "submit"}, {Name: "cutflow"}}

	tests := []struct {
		input string
		want  string
	}{
		{"rnu", "run"},
		{"bundel", "bundle"},
		{"sumbit", "submit"},
		{"cutflwo", "cutflow"},
		{"completely-different", ""},
	}
	for _, test := range tests {
		if got := suggestCommand(test.input, commands); got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.String("output", "", "")
	flagSet.Int("max-files", 0, "")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"typo", []string{"--outptu", "x"}, "--output"},
		{"with value", []string{"--max-file=3"}, "--max-files"},
		{"known flags skipped", []string{"--output", "x", "--max-flies", "2"}, "--max-files"},
		{"no match", []string{"--unrelated-option"}, ""},
		{"after terminator", []string{"--", "--outptu"}, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := suggestFlag(test.args, flagSet); got != test.want {
				t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
			}
		})
	}
}
