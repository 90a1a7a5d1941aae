package source

import (
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// MappedFile is a read-only memory mapping of a file.
type MappedFile struct {
	f    *os.File
	data mmap.MMap
}

// OpenMmap maps the file at path read-only. Empty files are served from
// memory since they cannot be mapped.
func OpenMmap(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.Size() == 0 {
		_ = f.Close()
		return FromBytes(nil), nil
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return &MappedFile{f: f, data: data}, nil
}

func (m *MappedFile) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset: %d", off)
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *MappedFile) Size() int64 { return int64(len(m.data)) }

func (m *MappedFile) Close() error {
	err := m.data.Unmap()
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	return err
}
