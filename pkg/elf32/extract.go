package elf32

import (
	"fmt"
	"io"
)

// ExtractHeader writes the raw file header to w.
func (f *File) ExtractHeader(w io.Writer) (int64, error) {
	return f.Header.WriteTo(w)
}

// ExtractProgramHeaderTable writes the raw program header table to w.
func (f *File) ExtractProgramHeaderTable(w io.Writer) (int64, error) {
	return f.ProgramHeaders.WriteTo(w)
}

// ExtractSectionHeaderTable writes the raw section header table to w.
func (f *File) ExtractSectionHeaderTable(w io.Writer) (int64, error) {
	return f.SectionHeaders.WriteTo(w)
}

// ExtractProgram writes the body of the i-th program header to w.
func (f *File) ExtractProgram(i int, w io.Writer) (int64, error) {
	if i < 0 || i >= len(f.Programs) {
		return 0, fmt.Errorf("program index %d out of range [0, %d)", i, len(f.Programs))
	}
	return f.Programs[i].WriteTo(w)
}

// ExtractSection writes the body of the i-th section header to w.
func (f *File) ExtractSection(i int, w io.Writer) (int64, error) {
	if i < 0 || i >= len(f.Sections) {
		return 0, fmt.Errorf("section index %d out of range [0, %d)", i, len(f.Sections))
	}
	return f.Sections[i].WriteTo(w)
}
