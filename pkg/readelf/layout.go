package readelf

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"github.com/xlab/treeprint"

	"github.com/grafana/elfscope/pkg/elf32"
)

type layoutItem struct {
	r       elf32.Range
	label   string
	entries []*elf32.Segment
}

// Layout prints every segment and gap of the file ordered by offset. Header
// tables list their entries as children.
func (p *Printer) Layout(name string, f *elf32.File) {
	tables := map[*elf32.Segment][]*elf32.Segment{
		f.ProgramHeaders.Segment: lo.Map(f.ProgramHeaders.Entries, func(e *elf32.ProgramHeader, _ int) *elf32.Segment { return e.Segment }),
		f.SectionHeaders.Segment: lo.Map(f.SectionHeaders.Entries, func(e *elf32.SectionHeader, _ int) *elf32.Segment { return e.Segment }),
	}

	items := lo.Map(f.SortedSegments(), func(s *elf32.Segment, _ int) layoutItem {
		return layoutItem{
			r:       elf32.Range{Offset: s.Offset, Size: s.Size},
			label:   fmt.Sprintf("%s %s xxhash=%016x", s.Name, humanize.IBytes(s.Size), s.Checksum()),
			entries: tables[s],
		}
	})
	for _, g := range f.Gaps() {
		items = append(items, layoutItem{r: g, label: fmt.Sprintf("gap %s", humanize.IBytes(g.Size))})
	}
	slices.SortStableFunc(items, func(a, b layoutItem) int {
		return cmp.Compare(a.r.Offset, b.r.Offset)
	})

	tree := treeprint.NewWithRoot(fmt.Sprintf("%s (%s)", name, humanize.IBytes(f.Size)))
	for _, it := range items {
		if len(it.entries) == 0 {
			tree.AddMetaNode(rangeString(it.r), it.label)
			continue
		}
		branch := tree.AddMetaBranch(rangeString(it.r), it.label)
		for _, e := range it.entries {
			branch.AddMetaNode(rangeString(elf32.Range{Offset: e.Offset, Size: e.Size}), e.Name)
		}
	}
	fmt.Fprint(p.w, tree.String())
}

func rangeString(r elf32.Range) string {
	return fmt.Sprintf("%#08x-%#08x", r.Offset, r.End())
}

// Check prints the decode warnings and layout problems of f. The returned
// error is the layout check result.
func (p *Printer) Check(name string, f *elf32.File) error {
	p.warnings(f)
	err := f.CheckLayout()
	if err == nil {
		fmt.Fprintf(p.w, "%s: layout ok\n", name)
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			p.warning.Fprintf(p.w, "%s: %v\n", name, e)
		}
		return fmt.Errorf("%s: %d layout problems", name, len(merr.Errors))
	}
	return err
}
