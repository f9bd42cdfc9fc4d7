// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// stageRecord mirrors the shape of a cut-flow sidecar row.
type stageRecord struct {
	Label string `cbor:"label"`
	Count int64  `cbor:"count"`
	Note  string `cbor:"note,omitempty"`
}

// dualRecord uses json tags, relying on fxamacker's fallback.
type dualRecord struct {
	Process   string `json:"process"`
	Partition string `json:"partition"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := stageRecord{Label: "Combined MET Cut", Count: 812}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded stageRecord
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	value := map[string]any{"partition": "part1", "process": "WZ_3L", "input": 1000}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(value)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestJSONTagFallback(t *testing.T) {
	original := dualRecord{Process: "WZ_3L", Partition: "part2"}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded dualRecord
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("json-tag roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var record stageRecord
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &record); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "WZ_3L_part1.parquet.cutflow.cbor")
	records := []stageRecord{
		{Label: "Combined Trigger Cut", Count: 500},
		{Label: "Combined MET Cut", Count: 480},
	}

	if err := WriteFile(path, records); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var decoded []stageRecord
	if err := ReadFile(path, &decoded); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(decoded) != 2 || decoded[1] != records[1] {
		t.Errorf("ReadFile = %+v, want %+v", decoded, records)
	}
}

func TestReadFileMissing(t *testing.T) {
	var decoded []stageRecord
	err := ReadFile(filepath.Join(t.TempDir(), "absent.cbor"), &decoded)
	if err == nil {
		t.Fatal("ReadFile should fail for a missing file")
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]any{"label": "Combined MET Cut"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"label"`) {
		t.Errorf("Diagnose output %q missing key", notation)
	}
}
