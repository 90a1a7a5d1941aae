package readelf

import (
	"debug/elf"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/grafana/elfscope/pkg/elf32"
)

var (
	sectionFlagLetters = []struct {
		flag   elf.SectionFlag
		letter byte
	}{
		{elf.SHF_WRITE, 'W'},
		{elf.SHF_ALLOC, 'A'},
		{elf.SHF_EXECINSTR, 'X'},
		{elf.SHF_MERGE, 'M'},
		{elf.SHF_STRINGS, 'S'},
		{elf.SHF_INFO_LINK, 'I'},
		{elf.SHF_LINK_ORDER, 'L'},
		{elf.SHF_OS_NONCONFORMING, 'O'},
		{elf.SHF_GROUP, 'G'},
		{elf.SHF_TLS, 'T'},
		{elf.SHF_COMPRESSED, 'C'},
	}
	progFlagLetters = []struct {
		flag   elf.ProgFlag
		letter byte
	}{
		{elf.PF_R, 'R'},
		{elf.PF_W, 'W'},
		{elf.PF_X, 'E'},
	}
)

func sectionFlags(v uint32) string {
	var sb strings.Builder
	for _, l := range sectionFlagLetters {
		if elf.SectionFlag(v)&l.flag != 0 {
			sb.WriteByte(l.letter)
		}
	}
	return sb.String()
}

func progFlags(v uint32) string {
	var sb strings.Builder
	for _, l := range progFlagLetters {
		if elf.ProgFlag(v)&l.flag != 0 {
			sb.WriteByte(l.letter)
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func (p *Printer) SectionHeaders(f *elf32.File) {
	t := f.SectionHeaders
	if t.Len() == 0 {
		fmt.Fprintln(p.w, "There are no sections in this file.")
		return
	}
	fmt.Fprintf(p.w, "There are %d section headers, starting at offset %#x (%s):\n",
		t.Len(), t.Offset, humanize.IBytes(t.Size))
	p.heading.Fprintln(p.w, "Section Headers:")

	table := p.table("Nr", "Type", "Flags", "Addr", "Off", "Size", "ES", "Lk", "Inf", "Al", "Name")
	for i, sh := range t.Entries {
		table.Append([]string{
			fmt.Sprintf("%d", i),
			elf.SectionType(sh.Kind).String(),
			sectionFlags(sh.Flags),
			fmt.Sprintf("%08x", sh.Addr),
			fmt.Sprintf("%06x", sh.FileOffset),
			fmt.Sprintf("%06x", sh.FileSize),
			fmt.Sprintf("%02x", sh.EntSize),
			fmt.Sprintf("%d", sh.Link),
			fmt.Sprintf("%d", sh.Info),
			fmt.Sprintf("%d", sh.AddrAlign),
			fmt.Sprintf("+%#x", sh.NameOffset),
		})
	}
	table.Render()
	fmt.Fprintln(p.w, "Key to Flags: W (write), A (alloc), X (execute), M (merge), S (strings), I (info),")
	fmt.Fprintln(p.w, "  L (link order), O (extra OS processing required), G (group), T (TLS), C (compressed)")
}

func (p *Printer) ProgramHeaders(f *elf32.File) {
	t := f.ProgramHeaders
	if t.Len() == 0 {
		fmt.Fprintln(p.w, "There are no program headers in this file.")
		return
	}
	fmt.Fprintf(p.w, "There are %d program headers, starting at offset %#x (%s):\n",
		t.Len(), t.Offset, humanize.IBytes(t.Size))
	p.heading.Fprintln(p.w, "Program Headers:")

	table := p.table("Type", "Offset", "VirtAddr", "PhysAddr", "FileSiz", "MemSiz", "Flg", "Align")
	for _, ph := range t.Entries {
		table.Append([]string{
			elf.ProgType(ph.Type).String(),
			fmt.Sprintf("%#06x", ph.FileOffset),
			fmt.Sprintf("%#08x", ph.Vaddr),
			fmt.Sprintf("%#08x", ph.Paddr),
			fmt.Sprintf("%#05x", ph.FileSize),
			fmt.Sprintf("%#05x", ph.MemSize),
			progFlags(ph.Flags),
			fmt.Sprintf("%#x", ph.Align),
		})
	}
	table.Render()
}
