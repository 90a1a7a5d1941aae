package elf32

import (
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Segment is a byte range [Offset, Offset+Size) of the file together with
// an owned copy of those bytes. A Segment is immutable once constructed.
type Segment struct {
	Name   string
	Offset uint64
	Size   uint64

	data []byte
}

// ReadSegment copies size bytes at offset from src. The range is checked
// against the source size before reading so a declared range running past
// the end of the file never yields a partial Segment.
func ReadSegment(src Source, name string, offset, size uint64) (*Segment, error) {
	fileSize := uint64(src.Size())
	if offset > fileSize || size > fileSize-offset || size > math.MaxInt {
		return nil, &SegmentError{Name: name, Offset: offset, Size: size, FileSize: fileSize}
	}
	s := &Segment{Name: name, Offset: offset, Size: size, data: make([]byte, size)}
	if size == 0 {
		return s, nil
	}
	n, err := src.ReadAt(s.data, int64(offset))
	if n == len(s.data) {
		return s, nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return nil, &SegmentError{Name: name, Offset: offset, Size: size, FileSize: fileSize, Err: err}
}

// newSubSegment copies a range of parent expressed relative to its start.
func newSubSegment(parent *Segment, name string, rel, size uint64) *Segment {
	data := make([]byte, size)
	copy(data, parent.data[rel:rel+size])
	return &Segment{Name: name, Offset: parent.Offset + rel, Size: size, data: data}
}

// Bytes returns the owned copy of the segment content. It must not be modified.
func (s *Segment) Bytes() []byte { return s.data }

// End returns the offset one past the last byte of the segment.
func (s *Segment) End() uint64 { return s.Offset + s.Size }

// Cursor returns a new Cursor positioned at the start of the segment.
func (s *Segment) Cursor() *Cursor { return NewCursor(s.data) }

// WriteTo writes the segment content verbatim to w.
func (s *Segment) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.data)
	return int64(n), err
}

// Checksum returns the xxhash of the segment content.
func (s *Segment) Checksum() uint64 { return xxhash.Sum64(s.data) }

// Overlaps reports whether both segments are non-empty and share at least one byte.
func (s *Segment) Overlaps(o *Segment) bool {
	if s.Size == 0 || o.Size == 0 {
		return false
	}
	return s.Offset < o.End() && o.Offset < s.End()
}

func (s *Segment) Fields() []Field {
	return []Field{
		{Name: "offset", Size: 8, Value: s.Offset},
		{Name: "size", Size: 8, Value: s.Size},
	}
}

func (s *Segment) String() string {
	return fmt.Sprintf("%s [%#x, %#x)", s.Name, s.Offset, s.End())
}
