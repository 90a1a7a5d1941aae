package elf32

import (
	"cmp"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
)

// Range is a half-open byte range [Offset, Offset+Size) of the file.
type Range struct {
	Offset uint64
	Size   uint64
}

func (r Range) End() uint64 { return r.Offset + r.Size }

// CheckLayout reports every pair of overlapping structures: the header, both
// header tables and the section bodies. Program bodies are left out since
// they cover sections by construction.
func (f *File) CheckLayout() error {
	structures := make([]*Segment, 0, 3+len(f.Sections))
	structures = append(structures, f.Header.Segment, f.ProgramHeaders.Segment, f.SectionHeaders.Segment)
	structures = append(structures, f.Sections...)

	var result *multierror.Error
	for i := range structures {
		for j := i + 1; j < len(structures); j++ {
			if structures[i].Overlaps(structures[j]) {
				result = multierror.Append(result, &OverlapError{A: structures[i], B: structures[j]})
			}
		}
	}
	return result.ErrorOrNil()
}

// SortedSegments returns the non-empty segments of the file ordered by
// offset, larger segments first on ties.
func (f *File) SortedSegments() []*Segment {
	segments := lo.Filter(f.AllSegments(), func(s *Segment, _ int) bool {
		return s.Size > 0
	})
	slices.SortStableFunc(segments, func(a, b *Segment) int {
		if c := cmp.Compare(a.Offset, b.Offset); c != 0 {
			return c
		}
		return cmp.Compare(b.Size, a.Size)
	})
	return segments
}

// Gaps returns the ranges of the file not covered by any segment.
func (f *File) Gaps() []Range {
	var (
		gaps []Range
		next uint64
	)
	for _, s := range f.SortedSegments() {
		if s.Offset > next {
			gaps = append(gaps, Range{Offset: next, Size: s.Offset - next})
		}
		next = max(next, s.End())
	}
	if f.Size > next {
		gaps = append(gaps, Range{Offset: next, Size: f.Size - next})
	}
	return gaps
}
