package elf32

import (
	"encoding/hex"
	"fmt"
)

// Field is one decoded value of a structural record, used for diagnostics.
// Raw is set instead of Value for byte string fields.
type Field struct {
	Name  string
	Size  int
	Value uint64
	Raw   []byte
}

func (f Field) String() string {
	if f.Raw != nil {
		return hex.EncodeToString(f.Raw)
	}
	return fmt.Sprintf("0x%0*x", 2*f.Size, f.Value)
}
