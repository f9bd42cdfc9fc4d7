// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes content digests of output artifacts.
//
// Every artifact the skimmer writes is hashed with BLAKE3 after the
// rename into place. The digest is printed in the run summary and
// recorded in the result log and cut-flow sidecar, so a batch operator
// can tell whether a rerun reproduced an artifact bit for bit.
package digest

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Size is the length of a digest in bytes.
const Size = 32

// Digest is a BLAKE3-256 content digest.
type Digest [Size]byte

// String returns the hex encoding of the digest. This is the canonical
// form used in logs, the result log and sidecars.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d is the zero digest (no content hashed).
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// File computes the digest of the file at path and returns it together
// with the number of bytes hashed. The file is streamed through the
// hasher so memory use is constant regardless of artifact size.
func File(path string) (Digest, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, 0, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	return Reader(file)
}

// Reader computes the digest of everything read from r.
func Reader(r io.Reader) (Digest, int64, error) {
	hasher := blake3.New()
	written, err := io.Copy(hasher, r)
	if err != nil {
		return Digest{}, written, fmt.Errorf("hashing: %w", err)
	}

	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, written, nil
}

// Parse parses a hex-encoded digest. Returns an error if the string is
// not a 64-character hex encoding of 32 bytes.
func Parse(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != Size {
		return digest, fmt.Errorf("digest is %d bytes, want %d", len(decoded), Size)
	}
	copy(digest[:], decoded)
	return digest, nil
}
