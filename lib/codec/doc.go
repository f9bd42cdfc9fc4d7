// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the skimmer's CBOR encoding configuration.
//
// The skimmer uses two serialization formats with a clear boundary:
//
//   - JSON for anything an operator or external tool edits or tails:
//     the shard catalog bundle, the JSONL run result log, and
//     --json command output.
//   - CBOR for machine-written sidecars that travel with output
//     artifacts (the per-partition cut-flow record).
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// Rerunning a partition over the same shards therefore produces a
// byte-identical sidecar, which makes reruns easy to compare.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types serialized only as CBOR use `cbor` struct tags. Types that are
// also emitted as JSON use `json` tags, which fxamacker/cbor reads as a
// fallback.
package codec
