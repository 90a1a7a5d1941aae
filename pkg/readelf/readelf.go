// Package readelf renders decoded ELF32 files for humans and machines.
package readelf

import (
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
)

// Printer writes human readable views of a decoded file. Headings are
// coloured only when the output is a terminal.
type Printer struct {
	w        io.Writer
	terminal bool

	heading *color.Color
	warning *color.Color
}

func NewPrinter(w io.Writer) *Printer {
	p := &Printer{
		w:        w,
		terminal: isTerminal(w),
		heading:  color.New(color.FgGreen, color.Bold),
		warning:  color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.heading, p.warning} {
		if p.terminal {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) table(header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(p.w)
	if len(header) > 0 {
		t.SetHeader(header)
	}
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return t
}

// keyValues renders two borderless columns.
func (p *Printer) keyValues(rows [][]string) {
	t := p.table()
	t.SetBorder(false)
	t.SetColumnSeparator("")
	t.SetCenterSeparator("")
	t.SetRowSeparator("")
	t.AppendBulk(rows)
	t.Render()
}
