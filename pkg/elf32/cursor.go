package elf32

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Cursor decodes little-endian fixed width values from a byte slice. The
// position only moves forward and the underlying slice is never modified.
type Cursor struct {
	buf []byte
	pos int
}

func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the number of bytes consumed so far.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// ReadUint reads an n byte little-endian unsigned integer. n must be 1, 2, 4 or 8.
func (c *Cursor) ReadUint(n int) (uint64, error) {
	switch n {
	case 1, 2, 4, 8:
	default:
		return 0, errors.Errorf("unsupported integer width %d", n)
	}
	b, err := c.ReadBytes(n)
	if err != nil {
		return 0, err
	}
	switch n {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	default:
		return binary.LittleEndian.Uint64(b), nil
	}
}

// ReadBytes returns the next n bytes. The returned slice aliases the cursor
// buffer and must not be modified.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, errors.Wrapf(ErrTruncatedRead, "want %d bytes at %d, have %d", n, c.pos, c.Remaining())
	}
	b := c.buf[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *Cursor) Read8() (uint8, error) {
	v, err := c.ReadUint(1)
	return uint8(v), err
}

func (c *Cursor) Read16() (uint16, error) {
	v, err := c.ReadUint(2)
	return uint16(v), err
}

func (c *Cursor) Read32() (uint32, error) {
	v, err := c.ReadUint(4)
	return uint32(v), err
}
