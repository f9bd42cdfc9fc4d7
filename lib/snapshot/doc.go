// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot writes one partition's artifact and reports its cut
// flow.
//
// [Writer.Write] triggers exactly one materialization of a view,
// restricted to a resolved branch set. The artifact replaces any
// previous file at the same path only once it is complete. The cut
// flow is printed as soon as it is known, also when the write fails
// because no event survived, so that operators see where events were
// lost. With sidecars enabled the [Report] is also stored next to the
// artifact as deterministic CBOR (<output>.cutflow.cbor).
package snapshot
