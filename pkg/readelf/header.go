package readelf

import (
	"debug/elf"
	"fmt"

	"github.com/grafana/elfscope/pkg/elf32"
)

func (p *Printer) FileHeader(f *elf32.File) {
	h := f.Header
	p.heading.Fprintln(p.w, "ELF Header:")
	p.keyValues([][]string{
		{"Magic:", fmt.Sprintf("% x", h.Ident[:])},
		{"Class:", h.Class().String()},
		{"Data:", h.Data().String()},
		{"Version:", elf.Version(h.Ident[elf.EI_VERSION]).String()},
		{"OS/ABI:", elf.OSABI(h.Ident[elf.EI_OSABI]).String()},
		{"ABI Version:", fmt.Sprintf("%d", h.Ident[elf.EI_ABIVERSION])},
		{"Type:", elf.Type(h.Type).String()},
		{"Machine:", elf.Machine(h.Machine).String()},
		{"Version:", fmt.Sprintf("%#x", h.Version)},
		{"Entry point address:", fmt.Sprintf("%#x", h.Entry)},
		{"Start of program headers:", fmt.Sprintf("%d (bytes into file)", h.Phoff)},
		{"Start of section headers:", fmt.Sprintf("%d (bytes into file)", h.Shoff)},
		{"Flags:", fmt.Sprintf("%#x", h.Flags)},
		{"Size of this header:", fmt.Sprintf("%d (bytes)", h.Ehsize)},
		{"Size of program headers:", fmt.Sprintf("%d (bytes)", h.Phentsize)},
		{"Number of program headers:", fmt.Sprintf("%d", h.Phnum)},
		{"Size of section headers:", fmt.Sprintf("%d (bytes)", h.Shentsize)},
		{"Number of section headers:", fmt.Sprintf("%d", h.Shnum)},
		{"Section header string table index:", fmt.Sprintf("%d", h.Shstrndx)},
	})
	p.warnings(f)
}

func (p *Printer) warnings(f *elf32.File) {
	for _, w := range f.Warnings {
		p.warning.Fprintf(p.w, "warning: %v\n", w)
	}
}
