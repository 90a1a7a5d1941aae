package source

import (
	"io"
	"sync"

	bufra "github.com/avvmoto/buf-readerat"
	"github.com/spf13/afero"
)

const DefaultReadBufferSize = 4 * 0x1000

// fsFile serializes reads: the buffered reader is not safe for concurrent use.
type fsFile struct {
	mu   sync.Mutex
	f    afero.File
	r    io.ReaderAt
	size int64
}

// OpenFs opens path on fs with buffered positional reads. A bufferSize of
// zero or less selects DefaultReadBufferSize.
func OpenFs(fs afero.Fs, path string, bufferSize int) (Source, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if bufferSize <= 0 {
		bufferSize = DefaultReadBufferSize
	}
	return &fsFile{
		f:    f,
		r:    bufra.NewBufReaderAt(f, bufferSize),
		size: st.Size(),
	}, nil
}

func (f *fsFile) ReadAt(p []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, err := f.r.ReadAt(p, off)
	if n < len(p) && err == nil {
		err = io.EOF
	}
	return n, err
}

func (f *fsFile) Size() int64 { return f.size }

func (f *fsFile) Close() error { return f.f.Close() }
