// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zeebo/blake3"
)

func TestFile(t *testing.T) {
	content := []byte("PAR1 skimmed events")
	path := filepath.Join(t.TempDir(), "WZ_3L_part1.parquet")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, size, err := File(path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if size != int64(len(content)) {
		t.Errorf("size = %d, want %d", size, len(content))
	}

	want := Digest(blake3.Sum256(content))
	if got != want {
		t.Errorf("File = %s, want %s", got, want)
	}
}

func TestFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, size, err := File(path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if size != 0 {
		t.Errorf("size = %d, want 0", size)
	}
	if got != Digest(blake3.Sum256(nil)) {
		t.Errorf("File(empty) = %s", got)
	}
	if got.IsZero() {
		t.Error("digest of empty content must not be the zero digest")
	}
}

func TestFileNonexistent(t *testing.T) {
	if _, _, err := File(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Fatal("File should fail for a nonexistent file")
	}
}

func TestReaderLarge(t *testing.T) {
	content := make([]byte, 256*1024)
	for i := range content {
		content[i] = byte(i % 251)
	}

	got, size, err := Reader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	if size != int64(len(content)) {
		t.Errorf("size = %d, want %d", size, len(content))
	}
	if got != Digest(blake3.Sum256(content)) {
		t.Errorf("Reader digest mismatch for large input")
	}
}

func TestParseRoundtrip(t *testing.T) {
	original := Digest(blake3.Sum256([]byte("roundtrip")))

	parsed, err := Parse(original.String())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed != original {
		t.Errorf("Parse(String()) = %s, want %s", parsed, original)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"not hex":   "zz",
		"too short": "abcd",
		"too long":  strings.Repeat("ab", 33),
	}
	for name, input := range tests {
		if _, err := Parse(input); err == nil {
			t.Errorf("%s: Parse(%q) should fail", name, input)
		}
	}
}
