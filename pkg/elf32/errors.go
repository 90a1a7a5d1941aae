package elf32

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrTruncatedRead is returned by a Cursor when fewer bytes remain than requested.
	ErrTruncatedRead = errors.New("truncated read")
	// ErrIO is returned when the backing store cannot provide a requested byte range.
	ErrIO = errors.New("io error")
	// ErrMalformedHeader is returned when the file header is short or has a bad magic.
	ErrMalformedHeader = errors.New("malformed header")
	// ErrUnexpectedEntrySize is a warning: a header table declares an entry
	// size different from the natural width of its records.
	ErrUnexpectedEntrySize = errors.New("unexpected entry size")
	// ErrUnsupportedIdent is a warning: the identification bytes announce a
	// class or data encoding other than 32-bit little-endian.
	ErrUnsupportedIdent = errors.New("unsupported identification")
	// ErrOverlap is reported by layout checks for segments sharing bytes.
	ErrOverlap = errors.New("overlapping segments")
)

// SegmentError describes a byte range that could not be materialized.
type SegmentError struct {
	Name     string
	Offset   uint64
	Size     uint64
	FileSize uint64

	// Err is the underlying read error, if any.
	Err error
}

func (e *SegmentError) Error() string {
	msg := fmt.Sprintf("%s: segment %s [%#x, %#x) in file of %d bytes",
		ErrIO, e.Name, e.Offset, e.Offset+e.Size, e.FileSize)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg + ": out of range"
}

func (e *SegmentError) Is(target error) bool {
	return target == ErrIO
}

func (e *SegmentError) Unwrap() error {
	return e.Err
}

// EntrySizeWarning is reported when a header table entry size differs from
// the width of the record kind decoded from it.
type EntrySizeWarning struct {
	Table    string
	Expected uint64
	Actual   uint64
}

func (w *EntrySizeWarning) Error() string {
	return fmt.Sprintf("%s: %s declares %d byte entries, expected %d",
		ErrUnexpectedEntrySize, w.Table, w.Actual, w.Expected)
}

func (w *EntrySizeWarning) Unwrap() error {
	return ErrUnexpectedEntrySize
}

// OverlapError names two segments sharing at least one byte.
type OverlapError struct {
	A, B *Segment
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: %s and %s", ErrOverlap, e.A, e.B)
}

func (e *OverlapError) Unwrap() error {
	return ErrOverlap
}
