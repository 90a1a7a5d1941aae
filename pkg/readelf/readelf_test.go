package readelf

import (
	"bytes"
	"debug/elf"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/grafana/elfscope/pkg/elf32"
	"github.com/grafana/elfscope/pkg/source"
	"github.com/grafana/elfscope/pkg/test"
)

func decodeSample(t *testing.T) *elf32.File {
	t.Helper()
	b := test.NewELF32Builder().
		AddProgram(elf.Prog32{Type: uint32(elf.PT_LOAD), Vaddr: 0x8000, Paddr: 0x8000, Memsz: 0x14, Flags: uint32(elf.PF_R | elf.PF_X), Align: 0x1000}, []byte("hello, world\x00\x00\x00\x00abcd")).
		AddSection(elf.Section32{}, nil).
		AddSection(elf.Section32{Name: 1, Type: uint32(elf.SHT_PROGBITS), Flags: uint32(elf.SHF_ALLOC | elf.SHF_EXECINSTR), Addr: 0x8000, Addralign: 4}, []byte("hello, world\x00\x00\x00\x00abcd")).
		AddSection(elf.Section32{Name: 7, Type: uint32(elf.SHT_NOBITS), Flags: uint32(elf.SHF_ALLOC | elf.SHF_WRITE), Addr: 0x9000, Size: 0x40}, nil).
		Build()
	f, err := elf32.NewFile(source.FromBytes(b))
	require.NoError(t, err)
	return f
}

func TestPrinter_FileHeader(t *testing.T) {
	var out bytes.Buffer
	NewPrinter(&out).FileHeader(decodeSample(t))

	s := out.String()
	require.True(t, strings.HasPrefix(s, "ELF Header:\n"), "no colour codes when not writing to a terminal")
	for _, want := range []string{
		"7f 45 4c 46 01 01 01 00",
		"ELFCLASS32",
		"ELFDATA2LSB",
		"ET_EXEC",
		"EM_ARM",
		"0x8000",
		"52 (bytes)",
		"Number of section headers:",
	} {
		require.Contains(t, s, want)
	}
	require.NotContains(t, s, "warning:")
}

func TestPrinter_Tables(t *testing.T) {
	f := decodeSample(t)

	var out bytes.Buffer
	p := NewPrinter(&out)
	p.SectionHeaders(f)
	s := out.String()
	require.Contains(t, s, "There are 3 section headers")
	require.Contains(t, s, "SHT_PROGBITS")
	require.Contains(t, s, "SHT_NOBITS")
	require.Contains(t, s, "WA")
	require.Contains(t, s, "AX")

	out.Reset()
	p.ProgramHeaders(f)
	s = out.String()
	require.Contains(t, s, "There are 1 program headers")
	require.Contains(t, s, "PT_LOAD")
	require.Contains(t, s, "R E")

	empty, err := elf32.NewFile(source.FromBytes(test.NewELF32Builder().Build()))
	require.NoError(t, err)
	out.Reset()
	p.SectionHeaders(empty)
	p.ProgramHeaders(empty)
	require.Equal(t, "There are no sections in this file.\nThere are no program headers in this file.\n", out.String())
}

func TestFlags(t *testing.T) {
	require.Equal(t, "WAX", sectionFlags(uint32(elf.SHF_WRITE|elf.SHF_ALLOC|elf.SHF_EXECINSTR)))
	require.Equal(t, "MS", sectionFlags(uint32(elf.SHF_MERGE|elf.SHF_STRINGS)))
	require.Equal(t, "", sectionFlags(0))
	require.Equal(t, "RW ", progFlags(uint32(elf.PF_R|elf.PF_W)))
	require.Equal(t, "  E", progFlags(uint32(elf.PF_X)))
}

func TestPrinter_HexDump(t *testing.T) {
	f := decodeSample(t)
	var out bytes.Buffer
	p := NewPrinter(&out)

	require.NoError(t, p.HexDump(f, 1))
	require.Equal(t, "Hex dump of section 1:\n"+
		"  0x00008000 68656c6c 6f2c2077 6f726c64 00000000 hello, world....\n"+
		"  0x00008010 61626364                            abcd\n",
		out.String())

	out.Reset()
	require.NoError(t, p.HexDump(f, 2))
	require.Equal(t, "Section 2 has no data to dump (NOBITS).\n", out.String())

	require.Error(t, p.HexDump(f, 3))
	require.Error(t, p.HexDump(f, -1))
}

func TestPrinter_Layout(t *testing.T) {
	f := decodeSample(t)
	var out bytes.Buffer
	NewPrinter(&out).Layout("sample", f)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, "sample (244 B)", lines[0])
	s := out.String()
	for _, want := range []string{
		"[0x00000000-0x00000034]  header 52 B",
		"program header table 32 B",
		"[0x00000034-0x00000054]  program header 0",
		"program 0 20 B",
		"section 1 20 B",
		"section header table 120 B",
		"section header 2",
	} {
		require.Contains(t, s, want)
	}
	require.NotContains(t, s, "gap")
}

func TestPrinter_Check(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)
	require.NoError(t, p.Check("sample", decodeSample(t)))
	require.Equal(t, "sample: layout ok\n", out.String())

	b := test.NewELF32Builder().
		AddSection(elf.Section32{Type: uint32(elf.SHT_PROGBITS), Off: 0x10, Size: 0x30}, nil).
		Build()
	f, err := elf32.NewFile(source.FromBytes(b))
	require.NoError(t, err)

	out.Reset()
	err = p.Check("broken", f)
	require.EqualError(t, err, "broken: 2 layout problems")
	require.Contains(t, out.String(), "overlapping segments: header [0x0, 0x34) and section 0 [0x10, 0x40)")
}

func TestPrinter_Encode(t *testing.T) {
	f := decodeSample(t)
	doc := NewDocument("sample", f)
	require.Len(t, doc.ProgramHeaders, 1)
	require.Len(t, doc.SectionHeaders, 3)
	require.Equal(t, "ET_EXEC", doc.Header.Kind)
	require.Equal(t, "SHT_NOBITS", doc.SectionHeaders[2].Kind)
	require.Equal(t, Field{Name: "phoff", Value: "0x00000034"}, doc.Header.Fields[5])

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewPrinter(&out).Encode(FormatJSON, doc))
		var got Document
		require.NoError(t, jsoniter.Unmarshal(out.Bytes(), &got))
		require.Equal(t, *doc, got)
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewPrinter(&out).Encode(FormatYAML, doc))
		require.Contains(t, out.String(), "program_headers:\n")
		var got Document
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
		require.Equal(t, *doc, got)
	})

	t.Run("dump", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewPrinter(&out).Encode(FormatDump, doc))
		require.Contains(t, out.String(), "readelf.Document")
		require.Contains(t, out.String(), "SHT_PROGBITS")
	})

	require.Error(t, NewPrinter(&bytes.Buffer{}).Encode("xml", doc))
}
