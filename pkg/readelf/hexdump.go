package readelf

import (
	"debug/elf"
	"fmt"
	"strings"

	"github.com/grafana/elfscope/pkg/elf32"
)

const hexDumpWidth = 16

// HexDump prints the body of section idx, addressed by the section address.
func (p *Printer) HexDump(f *elf32.File, idx int) error {
	if idx < 0 || idx >= len(f.Sections) {
		return fmt.Errorf("section index %d out of range [0, %d)", idx, len(f.Sections))
	}
	sh := f.SectionHeaders.Entries[idx]
	body := f.Sections[idx].Bytes()
	if len(body) == 0 {
		if elf.SectionType(sh.Kind) == elf.SHT_NOBITS {
			fmt.Fprintf(p.w, "Section %d has no data to dump (NOBITS).\n", idx)
		} else {
			fmt.Fprintf(p.w, "Section %d has no data to dump.\n", idx)
		}
		return nil
	}

	p.heading.Fprintf(p.w, "Hex dump of section %d:\n", idx)
	var line strings.Builder
	for off := 0; off < len(body); off += hexDumpWidth {
		row := body[off:min(off+hexDumpWidth, len(body))]
		line.Reset()
		fmt.Fprintf(&line, "  0x%08x ", uint64(sh.Addr)+uint64(off))
		for i := 0; i < hexDumpWidth; i++ {
			if i < len(row) {
				fmt.Fprintf(&line, "%02x", row[i])
			} else {
				line.WriteString("  ")
			}
			if i%4 == 3 {
				line.WriteByte(' ')
			}
		}
		for _, b := range row {
			if b < 0x20 || b > 0x7e {
				b = '.'
			}
			line.WriteByte(b)
		}
		fmt.Fprintln(p.w, line.String())
	}
	return nil
}
