package elf32

import "fmt"

// Record is a fixed size header table entry describing a range of the file.
type Record interface {
	FileRange() (offset, size uint64)
	Fields() []Field
}

// HeaderTable is a contiguous run of fixed size records. Entries[i] is the
// i-th on-disk entry.
type HeaderTable[R Record] struct {
	*Segment

	EntrySize uint64
	Entries   []R

	// Warning is set when EntrySize differs from the natural record width.
	Warning *EntrySizeWarning
}

// Len returns the number of entries.
func (t *HeaderTable[R]) Len() int { return len(t.Entries) }

type tableLayout[R Record] struct {
	name      string
	entryName string
	natural   uint64
	decode    func(*Segment) R
}

var (
	programTableLayout = tableLayout[*ProgramHeader]{
		name:      "program header table",
		entryName: "program header",
		natural:   ProgramHeaderSize,
		decode:    decodeProgramHeader,
	}
	sectionTableLayout = tableLayout[*SectionHeader]{
		name:      "section header table",
		entryName: "section header",
		natural:   SectionHeaderSize,
		decode:    decodeSectionHeader,
	}
)

// ReadProgramHeaderTable decodes count program headers of entrySize bytes at offset.
func ReadProgramHeaderTable(src Source, count, offset, entrySize uint64) (*HeaderTable[*ProgramHeader], error) {
	return readTable(src, programTableLayout, count, offset, entrySize)
}

// ReadSectionHeaderTable decodes count section headers of entrySize bytes at offset.
func ReadSectionHeaderTable(src Source, count, offset, entrySize uint64) (*HeaderTable[*SectionHeader], error) {
	return readTable(src, sectionTableLayout, count, offset, entrySize)
}

// readTable materializes the whole table first, then carves one entry
// Segment per record out of it. Either every entry decodes or no table is
// returned.
func readTable[R Record](src Source, layout tableLayout[R], count, offset, entrySize uint64) (*HeaderTable[R], error) {
	seg, err := ReadSegment(src, layout.name, offset, count*entrySize)
	if err != nil {
		return nil, err
	}
	t := &HeaderTable[R]{
		Segment:   seg,
		EntrySize: entrySize,
		Entries:   make([]R, count),
	}
	for i := uint64(0); i < count; i++ {
		entry := newSubSegment(seg, fmt.Sprintf("%s %d", layout.entryName, i), i*entrySize, entrySize)
		t.Entries[i] = layout.decode(entry)
	}
	if count > 0 && entrySize != layout.natural {
		t.Warning = &EntrySizeWarning{Table: layout.name, Expected: layout.natural, Actual: entrySize}
	}
	return t, nil
}
