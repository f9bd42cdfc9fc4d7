// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress provides whole-file stream compression chosen by
// file name suffix.
//
// Catalog bundles list every shard locator of every process and grow
// to tens of megabytes of highly repetitive URLs. Storing them as
// "bundle.json.zst" or "bundle.json.lz4" keeps them small enough to
// ship with every batch job, while "bundle.json" stays plain JSON for
// hand inspection. Readers never need to be told which form a file is
// in: [ReadFile] and [WriteFile] select the codec from the suffix.
package compress
