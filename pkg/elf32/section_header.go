package elf32

import "debug/elf"

// SectionHeaderSize is the natural width of an ELF32 section header entry.
const SectionHeaderSize = 40

// SectionHeader is one entry of the section header table.
type SectionHeader struct {
	*Segment

	NameOffset uint32
	Kind       uint32
	Flags      uint32
	Addr       uint32
	FileOffset uint32
	FileSize   uint32
	Link       uint32
	Info       uint32
	AddrAlign  uint32
	EntSize    uint32
}

// decodeSectionHeader decodes the fields of seg in order. Fields past the
// end of a short entry are left zero, bytes past the last field are ignored.
func decodeSectionHeader(seg *Segment) *SectionHeader {
	sh := &SectionHeader{Segment: seg}
	fields := []*uint32{
		&sh.NameOffset, &sh.Kind, &sh.Flags, &sh.Addr, &sh.FileOffset,
		&sh.FileSize, &sh.Link, &sh.Info, &sh.AddrAlign, &sh.EntSize,
	}
	readWords(seg.Cursor(), fields)
	return sh
}

// FileRange returns the file bytes described by the entry. NOBITS sections
// occupy no file space.
func (sh *SectionHeader) FileRange() (offset, size uint64) {
	if elf.SectionType(sh.Kind) == elf.SHT_NOBITS {
		return uint64(sh.FileOffset), 0
	}
	return uint64(sh.FileOffset), uint64(sh.FileSize)
}

func (sh *SectionHeader) Fields() []Field {
	return wordFields(
		[]string{"name_offset", "kind", "flags", "addr", "file_offset", "file_size", "link", "info", "addralign", "entsize"},
		[]uint32{sh.NameOffset, sh.Kind, sh.Flags, sh.Addr, sh.FileOffset, sh.FileSize, sh.Link, sh.Info, sh.AddrAlign, sh.EntSize},
	)
}

func readWords(c *Cursor, dst []*uint32) {
	for _, p := range dst {
		if c.Remaining() < 4 {
			return
		}
		// Cannot fail: the remaining length was checked.
		*p, _ = c.Read32()
	}
}

func wordFields(names []string, values []uint32) []Field {
	fields := make([]Field, len(names))
	for i := range names {
		fields[i] = Field{Name: names[i], Size: 4, Value: uint64(values[i])}
	}
	return fields
}
