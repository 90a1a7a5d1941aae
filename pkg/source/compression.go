package source

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Compression names the container a Source was wrapped in.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// DetectCompression inspects the leading bytes of src.
func DetectCompression(src Source) (Compression, error) {
	var prefix [4]byte
	n, err := src.ReadAt(prefix[:], 0)
	if err != nil && err != io.EOF {
		return CompressionNone, err
	}
	switch {
	case n >= len(zstdMagic) && bytes.Equal(prefix[:len(zstdMagic)], zstdMagic):
		return CompressionZstd, nil
	case n >= len(gzipMagic) && bytes.Equal(prefix[:len(gzipMagic)], gzipMagic):
		return CompressionGzip, nil
	}
	return CompressionNone, nil
}

// Decompress returns src itself when it is not compressed. Otherwise src is
// closed and its decompressed content is returned as an in-memory Source.
func Decompress(src Source) (Source, Compression, error) {
	c, err := DetectCompression(src)
	if err != nil || c == CompressionNone {
		return src, c, err
	}
	defer src.Close()

	r := io.NewSectionReader(src, 0, src.Size())
	var data []byte
	switch c {
	case CompressionGzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, c, fmt.Errorf("create gzip reader: %w", err)
		}
		defer gr.Close()
		if data, err = io.ReadAll(gr); err != nil {
			return nil, c, fmt.Errorf("decompress gzip data: %w", err)
		}
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, c, fmt.Errorf("create zstd reader: %w", err)
		}
		defer zr.Close()
		if data, err = io.ReadAll(zr); err != nil {
			return nil, c, fmt.Errorf("decompress zstd data: %w", err)
		}
	}
	return FromBytes(data), c, nil
}
