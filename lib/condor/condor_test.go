// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package condor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/trilepton/skim/lib/catalog"
)

func testCatalog() *catalog.Catalog {
	cat := catalog.New()
	cat.Put(&catalog.Process{
		Metadata: catalog.Metadata{Tag: "WZ_3L"},
		Partitions: map[string]catalog.Partition{
			"part10": {Shards: []string{"x"}},
			"part2":  {Shards: []string{"y"}},
			"part1":  {Shards: []string{"z"}},
		},
	})
	cat.Put(&catalog.Process{
		Metadata:   catalog.Metadata{Tag: "DoubleMuon", IsData: true},
		Partitions: map[string]catalog.Partition{"part1": {Shards: []string{"d"}}},
	})
	return cat
}

func TestJobs(t *testing.T) {
	cat := testCatalog()

	tests := []struct {
		name string
		tags []string
		want []Job
	}{
		{
			name: "all processes",
			want: []Job{
				{"DoubleMuon", "part1"},
				{"WZ_3L", "part1"},
				{"WZ_3L", "part2"},
				{"WZ_3L", "part10"},
			},
		},
		{
			name: "one process",
			tags: []string{"WZ_3L"},
			want: []Job{{"WZ_3L", "part1"}, {"WZ_3L", "part2"}, {"WZ_3L", "part10"}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			jobs, err := Jobs(cat, test.tags)
			if err != nil {
				t.Fatalf("Jobs: %v", err)
			}
			if !slices.Equal(jobs, test.want) {
				t.Errorf("Jobs = %v, want %v", jobs, test.want)
			}
		})
	}

	if _, err := Jobs(cat, []string{"ZZ"}); !errors.Is(err, catalog.ErrProcessNotFound) {
		t.Errorf("unknown tag error = %v", err)
	}
}

func TestWrite(t *testing.T) {
	var buffer bytes.Buffer
	jobs := []Job{{"WZ_3L", "part1"}, {"WZ_3L", "part2"}}
	if err := Write(&buffer, DefaultSettings(), jobs); err != nil {
		t.Fatalf("Write: %v", err)
	}
	output := buffer.String()

	for _, want := range []string{
		"executable = run_job.sh\n",
		"universe   = vanilla\n",
		"+JobFlavour = \"nextweek\"\n",
		"request_cpus = 1\n",
		"request_memory = 8 GB\n",
		"request_disk = 50 GB\n",
		"output = logs/$(Cluster)_$(Process).out\n",
		"log    = logs/$(Cluster).log\n",
		"arguments = run WZ_3L part1\nqueue\n",
		"arguments = run WZ_3L part2\nqueue\n",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("submit file missing %q:\n%s", want, output)
		}
	}
	if count := strings.Count(output, "queue\n"); count != 2 {
		t.Errorf("queue statements = %d, want 2", count)
	}
	if strings.Index(output, "part1") > strings.Index(output, "part2") {
		t.Error("jobs written out of order")
	}
}

func TestWriteRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"no executable", func(s *Settings) { s.Executable = "" }},
		{"zero cpus", func(s *Settings) { s.CPUs = 0 }},
		{"zero memory", func(s *Settings) { s.MemoryGB = 0 }},
		{"zero disk", func(s *Settings) { s.DiskGB = 0 }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			settings := DefaultSettings()
			test.modify(&settings)
			var buffer bytes.Buffer
			if err := Write(&buffer, settings, nil); err == nil {
				t.Error("expected an error")
			}
			if buffer.Len() != 0 {
				t.Error("wrote output despite invalid settings")
			}
		})
	}
}

func TestWriteFileCreatesLogDirectory(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "submit.jdl")

	if err := WriteFile(path, DefaultSettings(), []Job{{"WZ_3L", "part1"}}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	info, err := os.Stat(filepath.Join(directory, "logs"))
	if err != nil || !info.IsDir() {
		t.Fatalf("log directory not created: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "arguments = run WZ_3L part1\nqueue\n\n") {
		t.Errorf("unexpected tail:\n%s", data)
	}
}
