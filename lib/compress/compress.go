// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies a whole-file compression format.
type Codec uint8

const (
	// None stores data unchanged.
	None Codec = iota

	// LZ4 uses the LZ4 frame format. Fast to decode; the right choice
	// when bundles are read by thousands of short jobs.
	LZ4

	// Zstd uses zstd at the default level. Roughly twice the ratio of
	// LZ4 on locator lists.
	Zstd
)

// String returns the human-readable name of a codec.
func (c Codec) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Suffix returns the file name suffix associated with the codec,
// including the leading dot. None has no suffix.
func (c Codec) Suffix() string {
	switch c {
	case LZ4:
		return ".lz4"
	case Zstd:
		return ".zst"
	default:
		return ""
	}
}

// Parse parses a codec from its string representation.
func Parse(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd", "zst":
		return Zstd, nil
	default:
		return None, fmt.Errorf("unknown compression codec: %q", name)
	}
}

// FromPath returns the codec implied by the suffix of path.
func FromPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lz4":
		return LZ4
	case ".zst", ".zstd":
		return Zstd
	default:
		return None
	}
}

// NewReader wraps r with a decompressor for codec. Closing the
// returned reader releases decoder resources but does not close r.
func NewReader(r io.Reader, codec Codec) (io.ReadCloser, error) {
	switch codec {
	case None:
		return io.NopCloser(r), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Zstd:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return decoder.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unsupported codec: %s", codec)
	}
}

// NewWriter wraps w with a compressor for codec. Close must be called
// to flush the final frame; it does not close w.
func NewWriter(w io.Writer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case None:
		return nopWriteCloser{w}, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case Zstd:
		encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return encoder, nil
	default:
		return nil, fmt.Errorf("unsupported codec: %s", codec)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// ReadFile reads path and decompresses it according to its suffix.
func ReadFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader, err := NewReader(file, FromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	return data, nil
}

// WriteFile compresses data according to the suffix of path and
// replaces path atomically: the content is written to a temporary file
// in the same directory and renamed into place, so a concurrent reader
// sees either the old or the new file, never a truncated one.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	var buffer bytes.Buffer
	writer, err := NewWriter(&buffer, FromPath(path))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("compressing %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("compressing %s: %w", path, err)
	}

	temporary, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", path, err)
	}
	temporaryPath := temporary.Name()
	defer os.Remove(temporaryPath)

	if _, err := temporary.Write(buffer.Bytes()); err != nil {
		temporary.Close()
		return fmt.Errorf("writing %s: %w", temporaryPath, err)
	}
	if err := temporary.Chmod(perm); err != nil {
		temporary.Close()
		return fmt.Errorf("setting mode on %s: %w", temporaryPath, err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", temporaryPath, err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
