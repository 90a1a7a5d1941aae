package elf32

import (
	"debug/elf"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grafana/elfscope/pkg/source"
	"github.com/grafana/elfscope/pkg/test"
)

func TestReadHeader(t *testing.T) {
	b := test.NewELF32Builder().
		Patch(func(h *elf.Header32) {
			h.Flags = 0x05000000
			h.Shstrndx = 7
		}).
		Build()

	h, err := ReadHeader(source.FromBytes(b))
	require.NoError(t, err)
	require.Equal(t, Magic[:], h.Ident[:4])
	require.Equal(t, uint16(elf.ET_EXEC), h.Type)
	require.Equal(t, uint16(elf.EM_ARM), h.Machine)
	require.Equal(t, uint32(1), h.Version)
	require.Equal(t, uint32(0x8000), h.Entry)
	require.Equal(t, uint32(0x34), h.Phoff)
	require.Equal(t, uint32(0x34), h.Shoff)
	require.Equal(t, uint32(0x05000000), h.Flags)
	require.Equal(t, uint16(HeaderSize), h.Ehsize)
	require.Equal(t, uint16(ProgramHeaderSize), h.Phentsize)
	require.Equal(t, uint16(SectionHeaderSize), h.Shentsize)
	require.Equal(t, uint16(7), h.Shstrndx)
	require.Equal(t, elf.ELFCLASS32, h.Class())
	require.Equal(t, elf.ELFDATA2LSB, h.Data())

	require.Equal(t, uint64(0), h.Offset)
	require.Equal(t, uint64(HeaderSize), h.Size)
	require.Equal(t, b[:HeaderSize], h.Bytes())
}

func TestReadHeader_Malformed(t *testing.T) {
	valid := test.NewELF32Builder().Build()

	for _, tc := range []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "short", data: valid[:HeaderSize-1]},
		{name: "bad magic", data: append([]byte{0x7f, 'E', 'L', 'G'}, valid[4:]...)},
		{name: "zeroes", data: make([]byte, HeaderSize)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h, err := ReadHeader(source.FromBytes(tc.data))
			require.ErrorIs(t, err, ErrMalformedHeader)
			require.Nil(t, h)
		})
	}
}

func TestHeader_UnmarshalBinary(t *testing.T) {
	b := test.NewELF32Builder().Build()

	var h Header
	require.NoError(t, h.UnmarshalBinary(b))
	require.Equal(t, uint16(ProgramHeaderSize), h.Phentsize)
	require.Equal(t, b[:HeaderSize], h.Bytes())

	require.ErrorIs(t, h.UnmarshalBinary(b[:10]), ErrMalformedHeader)
}

func TestHeader_Fields(t *testing.T) {
	h, err := ReadHeader(source.FromBytes(test.NewELF32Builder().Build()))
	require.NoError(t, err)

	fields := h.Fields()
	require.Len(t, fields, 14)
	var total int
	for _, f := range fields {
		total += f.Size
	}
	require.Equal(t, HeaderSize, total)
	require.Equal(t, "ident", fields[0].Name)
	require.Equal(t, "7f454c46010101000000000000000000", fields[0].String())
	require.Equal(t, "entry", fields[4].Name)
	require.Equal(t, "0x00008000", fields[4].String())
	require.Equal(t, "0x0034", fields[8].String())
}

func TestField_String(t *testing.T) {
	for _, tc := range []struct {
		field Field
		want  string
	}{
		{field: Field{Size: 1, Value: 0x1}, want: "0x01"},
		{field: Field{Size: 2, Value: 0x34}, want: "0x0034"},
		{field: Field{Size: 4, Value: 0x8000}, want: "0x00008000"},
		{field: Field{Size: 4, Value: 0xffffffff}, want: "0xffffffff"},
		{field: Field{Size: 4, Raw: []byte{0xde, 0xad, 0xbe, 0xef}}, want: "deadbeef"},
	} {
		t.Run(tc.want, func(t *testing.T) {
			require.Equal(t, tc.want, tc.field.String())
		})
	}
}
