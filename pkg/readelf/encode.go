package readelf

import (
	"debug/elf"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/k0kubun/pp/v3"
	"gopkg.in/yaml.v3"

	"github.com/grafana/elfscope/pkg/elf32"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatDump Format = "dump"
)

var Formats = []string{string(FormatText), string(FormatJSON), string(FormatYAML), string(FormatDump)}

// Document is the machine readable view of a decoded file.
type Document struct {
	Path           string   `json:"path" yaml:"path"`
	Size           uint64   `json:"size" yaml:"size"`
	Header         Record   `json:"header" yaml:"header"`
	ProgramHeaders []Record `json:"program_headers" yaml:"program_headers"`
	SectionHeaders []Record `json:"section_headers" yaml:"section_headers"`
	Warnings       []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Record is one structure of the file with its fields in on-disk order.
type Record struct {
	Name     string  `json:"name" yaml:"name"`
	Kind     string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Offset   uint64  `json:"offset" yaml:"offset"`
	Size     uint64  `json:"size" yaml:"size"`
	Checksum string  `json:"checksum" yaml:"checksum"`
	Fields   []Field `json:"fields" yaml:"fields"`
}

type Field struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

func NewDocument(path string, f *elf32.File) *Document {
	doc := &Document{
		Path:           path,
		Size:           f.Size,
		Header:         newRecord(f.Header.Segment, elf.Type(f.Header.Type).String(), f.Header.Fields()),
		ProgramHeaders: make([]Record, 0, f.ProgramHeaders.Len()),
		SectionHeaders: make([]Record, 0, f.SectionHeaders.Len()),
	}
	for _, ph := range f.ProgramHeaders.Entries {
		doc.ProgramHeaders = append(doc.ProgramHeaders, newRecord(ph.Segment, elf.ProgType(ph.Type).String(), ph.Fields()))
	}
	for _, sh := range f.SectionHeaders.Entries {
		doc.SectionHeaders = append(doc.SectionHeaders, newRecord(sh.Segment, elf.SectionType(sh.Kind).String(), sh.Fields()))
	}
	for _, w := range f.Warnings {
		doc.Warnings = append(doc.Warnings, w.Error())
	}
	return doc
}

func newRecord(s *elf32.Segment, kind string, fields []elf32.Field) Record {
	r := Record{
		Name:     s.Name,
		Kind:     kind,
		Offset:   s.Offset,
		Size:     s.Size,
		Checksum: fmt.Sprintf("%016x", s.Checksum()),
		Fields:   make([]Field, len(fields)),
	}
	for i, f := range fields {
		r.Fields[i] = Field{Name: f.Name, Value: f.String()}
	}
	return r
}

// Encode writes doc in one of the machine readable formats.
func (p *Printer) Encode(format Format, doc *Document) error {
	switch format {
	case FormatJSON:
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatDump:
		printer := pp.New()
		printer.SetColoringEnabled(p.terminal)
		printer.SetExportedOnly(true)
		_, err := printer.Fprintln(p.w, doc)
		return err
	}
	return fmt.Errorf("unsupported output format %q", format)
}
