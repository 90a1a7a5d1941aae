// Package elf32 decodes the structural layout of little-endian ELF32 files:
// the file header, the program and section header tables, and the byte
// ranges every table entry describes.
//
// Decoding is single-pass and all-or-nothing: the header is read first, the
// tables are located through the header fields, and the bodies through the
// table entries. A File owns copies of every decoded range and keeps no
// handle on the underlying file.
package elf32

import (
	"debug/elf"
	"fmt"
	"io"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/grafana/elfscope/pkg/source"
)

// Source is a fixed size store read purely by offset.
type Source interface {
	io.ReaderAt
	Size() int64
}

// File is a decoded ELF32 file.
type File struct {
	Header         *Header
	ProgramHeaders *HeaderTable[*ProgramHeader]
	SectionHeaders *HeaderTable[*SectionHeader]

	// Programs[i] is the body described by ProgramHeaders.Entries[i].
	Programs []*Segment
	// Sections[i] is the body described by SectionHeaders.Entries[i].
	Sections []*Segment

	// Size is the size of the decoded file in bytes.
	Size uint64
	// Warnings lists the non-fatal problems found while decoding.
	Warnings []error
}

// Open decodes the file at path. Depending on the configuration the file is
// either mapped into memory or read through a buffered reader.
func Open(path string, opts ...Option) (*File, error) {
	o := newOptions(opts)
	var (
		src source.Source
		err error
	)
	if o.cfg.Mmap {
		src, err = source.OpenMmap(path)
	} else {
		src, err = source.OpenFs(afero.NewOsFs(), path, o.cfg.ReadBufferSize)
	}
	if err != nil {
		o.metrics.fileDecoded(err)
		return nil, errors.Wrapf(ErrIO, "open %s: %v", path, err)
	}
	return openSource(src, o)
}

// OpenFs decodes the file at path on fs.
func OpenFs(fs afero.Fs, path string, opts ...Option) (*File, error) {
	o := newOptions(opts)
	src, err := source.OpenFs(fs, path, o.cfg.ReadBufferSize)
	if err != nil {
		o.metrics.fileDecoded(err)
		return nil, errors.Wrapf(ErrIO, "open %s: %v", path, err)
	}
	return openSource(src, o)
}

// NewFile decodes src. The caller keeps ownership of src; it is not used
// once NewFile returns.
func NewFile(src Source, opts ...Option) (*File, error) {
	o := newOptions(opts)
	f, err := decode(src, o)
	o.metrics.fileDecoded(err)
	return f, err
}

func openSource(src source.Source, o options) (*File, error) {
	if o.cfg.Decompress {
		var (
			c   source.Compression
			err error
		)
		if src, c, err = source.Decompress(src); err != nil {
			// src is only handed back when detection failed.
			if src != nil {
				_ = src.Close()
			}
			o.metrics.fileDecoded(err)
			return nil, errors.Wrap(ErrIO, err.Error())
		}
		if c != source.CompressionNone {
			level.Debug(o.logger).Log("msg", "decompressed input", "compression", c, "size", src.Size())
		}
	}
	defer src.Close()
	f, err := decode(src, o)
	o.metrics.fileDecoded(err)
	return f, err
}

func decode(src Source, o options) (*File, error) {
	f := &File{Size: uint64(src.Size())}

	h, err := ReadHeader(src)
	if err != nil {
		return nil, err
	}
	f.Header = h
	o.metrics.segmentsRead("header", h.Segment)
	f.checkIdent(o)

	f.ProgramHeaders, err = ReadProgramHeaderTable(src, uint64(h.Phnum), uint64(h.Phoff), uint64(h.Phentsize))
	if err != nil {
		return nil, errors.Wrap(err, "decode program header table")
	}
	o.metrics.segmentsRead("table", f.ProgramHeaders.Segment)
	f.tableDecoded(o, f.ProgramHeaders.Segment, f.ProgramHeaders.Len(), f.ProgramHeaders.Warning)

	f.SectionHeaders, err = ReadSectionHeaderTable(src, uint64(h.Shnum), uint64(h.Shoff), uint64(h.Shentsize))
	if err != nil {
		return nil, errors.Wrap(err, "decode section header table")
	}
	o.metrics.segmentsRead("table", f.SectionHeaders.Segment)
	f.tableDecoded(o, f.SectionHeaders.Segment, f.SectionHeaders.Len(), f.SectionHeaders.Warning)

	if f.Programs, err = readBodies(src, "program", f.ProgramHeaders.Entries, o.cfg.Parallelism); err != nil {
		return nil, errors.Wrap(err, "read program bodies")
	}
	o.metrics.segmentsRead("program", f.Programs...)

	if f.Sections, err = readBodies(src, "section", f.SectionHeaders.Entries, o.cfg.Parallelism); err != nil {
		return nil, errors.Wrap(err, "read section bodies")
	}
	o.metrics.segmentsRead("section", f.Sections...)

	return f, nil
}

func (f *File) checkIdent(o options) {
	h := f.Header
	if h.Class() == elf.ELFCLASS32 && h.Data() == elf.ELFDATA2LSB {
		return
	}
	w := errors.Wrapf(ErrUnsupportedIdent, "class %s, data %s: decoding as %s %s",
		h.Class(), h.Data(), elf.ELFCLASS32, elf.ELFDATA2LSB)
	f.warn(o, "ident", w)
}

func (f *File) tableDecoded(o options, seg *Segment, entries int, w *EntrySizeWarning) {
	level.Debug(o.logger).Log("msg", "decoded header table", "table", seg.Name,
		"offset", seg.Offset, "size", seg.Size, "entries", entries)
	if w != nil {
		f.warn(o, "entry_size", w)
	}
}

func (f *File) warn(o options, name string, err error) {
	f.Warnings = append(f.Warnings, err)
	o.metrics.warning(name)
	level.Warn(o.logger).Log("msg", "decoded with warnings", "warning", name, "err", err)
}

// readBodies materializes the range of every entry, up to parallelism at a time.
func readBodies[R Record](src Source, kind string, entries []R, parallelism int) ([]*Segment, error) {
	bodies := make([]*Segment, len(entries))
	var g errgroup.Group
	g.SetLimit(parallelism)
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			offset, size := e.FileRange()
			s, err := ReadSegment(src, fmt.Sprintf("%s %d", kind, i), offset, size)
			if err != nil {
				return err
			}
			bodies[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bodies, nil
}

// AllSegments returns the header, the program header table, the program
// bodies, the section bodies and the section header table, in that order.
func (f *File) AllSegments() []*Segment {
	all := make([]*Segment, 0, 3+len(f.Programs)+len(f.Sections))
	all = append(all, f.Header.Segment, f.ProgramHeaders.Segment)
	all = append(all, f.Programs...)
	all = append(all, f.Sections...)
	return append(all, f.SectionHeaders.Segment)
}
