package elf32

import (
	"bytes"
	"debug/elf"

	"github.com/pkg/errors"
)

const (
	// HeaderSize is the size of the ELF32 file header.
	HeaderSize = 52
	identSize  = elf.EI_NIDENT
)

// Magic is the required prefix of the identification bytes.
var Magic = [4]byte{0x7f, 'E', 'L', 'F'}

// Header is the decoded ELF32 file header. It always starts at offset 0.
type Header struct {
	*Segment

	Ident     [identSize]byte
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint32
	Phoff     uint32
	Shoff     uint32
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16
}

// ReadHeader decodes the file header at offset 0 of src.
func ReadHeader(src Source) (*Header, error) {
	if src.Size() < HeaderSize {
		return nil, errors.Wrapf(ErrMalformedHeader, "file is %d bytes, header needs %d", src.Size(), HeaderSize)
	}
	seg, err := ReadSegment(src, "header", 0, HeaderSize)
	if err != nil {
		return nil, err
	}
	h := &Header{Segment: seg}
	if err = h.decode(seg.Cursor()); err != nil {
		return nil, err
	}
	return h, nil
}

// UnmarshalBinary decodes a header from b, which must hold at least HeaderSize bytes.
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderSize {
		return errors.Wrapf(ErrMalformedHeader, "%d bytes, header needs %d", len(b), HeaderSize)
	}
	seg := &Segment{Name: "header", Size: HeaderSize, data: append([]byte(nil), b[:HeaderSize]...)}
	h.Segment = seg
	return h.decode(seg.Cursor())
}

func (h *Header) decode(c *Cursor) error {
	ident, err := c.ReadBytes(identSize)
	if err != nil {
		return errors.Wrap(ErrMalformedHeader, err.Error())
	}
	copy(h.Ident[:], ident)
	if !bytes.Equal(h.Ident[:len(Magic)], Magic[:]) {
		return errors.Wrapf(ErrMalformedHeader, "bad magic % x", h.Ident[:len(Magic)])
	}
	r := fieldReader{c: c}
	h.Type = r.u16()
	h.Machine = r.u16()
	h.Version = r.u32()
	h.Entry = r.u32()
	h.Phoff = r.u32()
	h.Shoff = r.u32()
	h.Flags = r.u32()
	h.Ehsize = r.u16()
	h.Phentsize = r.u16()
	h.Phnum = r.u16()
	h.Shentsize = r.u16()
	h.Shnum = r.u16()
	h.Shstrndx = r.u16()
	if r.err != nil {
		return errors.Wrap(ErrMalformedHeader, r.err.Error())
	}
	return nil
}

// Class returns the EI_CLASS identification byte.
func (h *Header) Class() elf.Class { return elf.Class(h.Ident[elf.EI_CLASS]) }

// Data returns the EI_DATA identification byte.
func (h *Header) Data() elf.Data { return elf.Data(h.Ident[elf.EI_DATA]) }

func (h *Header) Fields() []Field {
	return []Field{
		{Name: "ident", Size: identSize, Raw: h.Ident[:]},
		{Name: "type", Size: 2, Value: uint64(h.Type)},
		{Name: "machine", Size: 2, Value: uint64(h.Machine)},
		{Name: "version", Size: 4, Value: uint64(h.Version)},
		{Name: "entry", Size: 4, Value: uint64(h.Entry)},
		{Name: "phoff", Size: 4, Value: uint64(h.Phoff)},
		{Name: "shoff", Size: 4, Value: uint64(h.Shoff)},
		{Name: "flags", Size: 4, Value: uint64(h.Flags)},
		{Name: "ehsize", Size: 2, Value: uint64(h.Ehsize)},
		{Name: "phentsize", Size: 2, Value: uint64(h.Phentsize)},
		{Name: "phnum", Size: 2, Value: uint64(h.Phnum)},
		{Name: "shentsize", Size: 2, Value: uint64(h.Shentsize)},
		{Name: "shnum", Size: 2, Value: uint64(h.Shnum)},
		{Name: "shstrndx", Size: 2, Value: uint64(h.Shstrndx)},
	}
}

// fieldReader reads consecutive fields and keeps the first error.
type fieldReader struct {
	c   *Cursor
	err error
}

func (r *fieldReader) u16() uint16 {
	if r.err != nil {
		return 0
	}
	var v uint16
	v, r.err = r.c.Read16()
	return v
}

func (r *fieldReader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	var v uint32
	v, r.err = r.c.Read32()
	return v
}
