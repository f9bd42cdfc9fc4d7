// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"os"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding. Same logical data always produces identical bytes.
var encMode cbor.EncMode

// decMode accepts standard CBOR. Unknown fields are ignored so that
// older readers can still load sidecars written by newer versions.
var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	// Durations are stored as integer nanoseconds and times as RFC 3339
	// text so that the diagnostic notation stays readable.
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Sidecars never use non-string map keys. Decoding into any
		// must produce map[string]any so that values can be re-emitted
		// as JSON by "skim" tooling.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// WriteFile encodes v and writes it to path, replacing any existing
// file.
func WriteFile(path string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadFile reads path and decodes its CBOR content into v.
func ReadFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data. skim cutflow --diag prints sidecars with it.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
