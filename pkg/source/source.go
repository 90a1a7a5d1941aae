// Package source provides positional, read-only access to the bytes of a
// file being decoded. Every implementation is addressed purely by offset: no
// reader keeps a shared file position.
package source

import (
	"bytes"
	"io"
)

// Source is a read-only, fixed size byte store.
type Source interface {
	io.ReaderAt
	io.Closer
	// Size returns the total number of bytes available.
	Size() int64
}

type memSource struct {
	*bytes.Reader
	size int64
}

// FromBytes returns a Source backed by b. The slice must not be modified
// while the Source is in use.
func FromBytes(b []byte) Source {
	return &memSource{Reader: bytes.NewReader(b), size: int64(len(b))}
}

func (m *memSource) Size() int64 { return m.size }

func (m *memSource) Close() error { return nil }

// ReadAll copies the whole content of src.
func ReadAll(src Source) ([]byte, error) {
	buf := make([]byte, src.Size())
	n, err := src.ReadAt(buf, 0)
	if n == len(buf) {
		return buf, nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return nil, err
}
