package elf32

import (
	"bytes"
	"debug/elf"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"

	"github.com/grafana/elfscope/pkg/source"
	"github.com/grafana/elfscope/pkg/test"
)

func TestCheckLayout(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		f, err := NewFile(source.FromBytes(sampleELF()))
		require.NoError(t, err)
		require.NoError(t, f.CheckLayout())
	})

	t.Run("overlaps", func(t *testing.T) {
		b := test.NewELF32Builder().
			AddSection(elf.Section32{Type: uint32(elf.SHT_PROGBITS), Off: 0x30, Size: 0x08}, nil).
			AddSection(elf.Section32{Type: uint32(elf.SHT_PROGBITS), Off: 0x34, Size: 0x30}, nil).
			Build()
		f, err := NewFile(source.FromBytes(b))
		require.NoError(t, err)

		err = f.CheckLayout()
		require.ErrorIs(t, err, ErrOverlap)
		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)

		var pairs [][2]string
		for _, e := range merr.Errors {
			var o *OverlapError
			require.ErrorAs(t, e, &o)
			pairs = append(pairs, [2]string{o.A.Name, o.B.Name})
		}
		require.Equal(t, [][2]string{
			{"header", "section 0"},
			{"section header table", "section 0"},
			{"section header table", "section 1"},
			{"section 0", "section 1"},
		}, pairs)
	})

	t.Run("programs are not checked", func(t *testing.T) {
		b := test.NewELF32Builder().
			AddProgram(elf.Prog32{Type: uint32(elf.PT_PHDR), Off: 0, Filesz: 0x54}, nil).
			Build()
		f, err := NewFile(source.FromBytes(b))
		require.NoError(t, err)
		require.NoError(t, f.CheckLayout())
	})
}

func TestSortedSegmentsAndGaps(t *testing.T) {
	b := test.NewELF32Builder().Build()
	b = test.PutLE(b, 0x40, []byte("abcd"))
	b = test.PutLE(b, 0x48, elf.Section32{Type: uint32(elf.SHT_PROGBITS), Off: 0x40, Size: 4})
	b = test.PutLE(b, 0x20, uint32(0x48)) // shoff
	b = test.PutLE(b, 0x30, uint16(1))    // shnum
	b = append(b, bytes.Repeat([]byte{0xff}, 8)...)

	f, err := NewFile(source.FromBytes(b))
	require.NoError(t, err)

	var names []string
	for _, s := range f.SortedSegments() {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{"header", "section 0", "section header table"}, names)
	require.Equal(t, []Range{
		{Offset: 0x34, Size: 0x0c},
		{Offset: 0x44, Size: 0x04},
		{Offset: 0x70, Size: 0x08},
	}, f.Gaps())
	require.Equal(t, uint64(len(b)), f.Gaps()[2].End())
}

func TestGaps_Covered(t *testing.T) {
	f, err := NewFile(source.FromBytes(test.NewELF32Builder().Build()))
	require.NoError(t, err)
	require.Empty(t, f.Gaps())
}
