package elf32

// ProgramHeaderSize is the natural width of an ELF32 program header entry.
const ProgramHeaderSize = 32

// ProgramHeader is one entry of the program header table.
type ProgramHeader struct {
	*Segment

	Type       uint32
	FileOffset uint32
	Vaddr      uint32
	Paddr      uint32
	FileSize   uint32
	MemSize    uint32
	Flags      uint32
	Align      uint32
}

func decodeProgramHeader(seg *Segment) *ProgramHeader {
	ph := &ProgramHeader{Segment: seg}
	readWords(seg.Cursor(), []*uint32{
		&ph.Type, &ph.FileOffset, &ph.Vaddr, &ph.Paddr,
		&ph.FileSize, &ph.MemSize, &ph.Flags, &ph.Align,
	})
	return ph
}

func (ph *ProgramHeader) FileRange() (offset, size uint64) {
	return uint64(ph.FileOffset), uint64(ph.FileSize)
}

func (ph *ProgramHeader) Fields() []Field {
	return wordFields(
		[]string{"type", "offset", "vaddr", "paddr", "filesz", "memsz", "flags", "align"},
		[]uint32{ph.Type, ph.FileOffset, ph.Vaddr, ph.Paddr, ph.FileSize, ph.MemSize, ph.Flags, ph.Align},
	)
}
