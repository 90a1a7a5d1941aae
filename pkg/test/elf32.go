package test

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
)

const (
	elf32HeaderSize  = 52
	elf32ProgSize    = 32
	elf32SectionSize = 40
)

// ELF32Ident returns identification bytes for a little-endian ELF32 file.
func ELF32Ident() [elf.EI_NIDENT]byte {
	var ident [elf.EI_NIDENT]byte
	copy(ident[:], elf.ELFMAG)
	ident[elf.EI_CLASS] = byte(elf.ELFCLASS32)
	ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)
	return ident
}

type progEntry struct {
	prog elf.Prog32
	data []byte
}

type sectionEntry struct {
	section elf.Section32
	data    []byte
}

// ELF32Builder assembles synthetic little-endian ELF32 images laid out as:
// header, program header table, program bodies, section bodies, section
// header table.
type ELF32Builder struct {
	Header elf.Header32

	progs    []progEntry
	sections []sectionEntry
	patches  []func(*elf.Header32)
	trailer  []byte
}

func NewELF32Builder() *ELF32Builder {
	return &ELF32Builder{
		Header: elf.Header32{
			Ident:   ELF32Ident(),
			Type:    uint16(elf.ET_EXEC),
			Machine: uint16(elf.EM_ARM),
			Version: uint32(elf.EV_CURRENT),
			Entry:   0x8000,
			Ehsize:  elf32HeaderSize,
		},
	}
}

// AddProgram appends a program header. When data is not nil it is placed in
// the image and the header offset and file size are set to point at it.
func (b *ELF32Builder) AddProgram(p elf.Prog32, data []byte) *ELF32Builder {
	b.progs = append(b.progs, progEntry{prog: p, data: data})
	return b
}

// AddSection appends a section header. When data is not nil it is placed in
// the image and the header offset and size are set to point at it.
func (b *ELF32Builder) AddSection(s elf.Section32, data []byte) *ELF32Builder {
	b.sections = append(b.sections, sectionEntry{section: s, data: data})
	return b
}

// Patch registers a function applied to the header after layout.
func (b *ELF32Builder) Patch(fn func(h *elf.Header32)) *ELF32Builder {
	b.patches = append(b.patches, fn)
	return b
}

// Trailer appends raw bytes after the section header table.
func (b *ELF32Builder) Trailer(data []byte) *ELF32Builder {
	b.trailer = append(b.trailer, data...)
	return b
}

func (b *ELF32Builder) Build() []byte {
	h := b.Header
	off := uint32(elf32HeaderSize)
	h.Phoff = off
	h.Phnum = uint16(len(b.progs))
	h.Phentsize = elf32ProgSize
	off += uint32(len(b.progs)) * elf32ProgSize

	var bodies bytes.Buffer
	progs := make([]elf.Prog32, len(b.progs))
	for i, p := range b.progs {
		progs[i] = p.prog
		if p.data != nil {
			progs[i].Off = off
			progs[i].Filesz = uint32(len(p.data))
			bodies.Write(p.data)
			off += uint32(len(p.data))
		}
	}
	sections := make([]elf.Section32, len(b.sections))
	for i, s := range b.sections {
		sections[i] = s.section
		if s.data != nil {
			sections[i].Off = off
			sections[i].Size = uint32(len(s.data))
			bodies.Write(s.data)
			off += uint32(len(s.data))
		}
	}
	h.Shoff = off
	h.Shnum = uint16(len(b.sections))
	h.Shentsize = elf32SectionSize
	for _, fn := range b.patches {
		fn(&h)
	}

	var buf bytes.Buffer
	mustWrite(&buf, h)
	mustWrite(&buf, progs)
	buf.Write(bodies.Bytes())
	mustWrite(&buf, sections)
	buf.Write(b.trailer)
	return buf.Bytes()
}

// PutLE writes the little-endian encoding of v at offset off of buf,
// growing buf when needed.
func PutLE(buf []byte, off int, v any) []byte {
	var b bytes.Buffer
	mustWrite(&b, v)
	if end := off + b.Len(); end > len(buf) {
		buf = append(buf, make([]byte, end-len(buf))...)
	}
	copy(buf[off:], b.Bytes())
	return buf
}

func mustWrite(w *bytes.Buffer, v any) {
	if err := binary.Write(w, binary.LittleEndian, v); err != nil {
		panic(err)
	}
}
