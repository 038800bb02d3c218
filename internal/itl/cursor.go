// file: internal/itl/cursor.go
// version: 1.1.0
// guid: 5b0c7d8e-2f3a-4b5c-9d0e-1f2a3b4c5d6e

package itl

import (
	"encoding/binary"
	"fmt"
)

// cursor is a forward-only reader over an immutable byte slice. The little
// flag selects the byte order for integer reads; it is owned by the chunk
// walker, which flips it at most once per stream.
type cursor struct {
	data   []byte
	pos    int
	little bool
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

func (c *cursor) readBytes(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, fmt.Errorf("reading %d bytes at offset %d: %w", n, c.pos, ErrTruncatedInput)
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) readASCII(n int) (string, error) {
	b, err := c.readBytes(n)
	if err != nil {
		return "", err
	}
	for i, ch := range b {
		if ch >= 0x80 {
			return "", fmt.Errorf("non-ASCII byte 0x%02x at offset %d: %w", ch, c.pos-n+i, ErrTruncatedInput)
		}
	}
	return string(b), nil
}

func (c *cursor) readByte() (byte, error) {
	b, err := c.readBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) readUint32() (uint32, error) {
	b, err := c.readBytes(4)
	if err != nil {
		return 0, err
	}
	if c.little {
		return binary.LittleEndian.Uint32(b), nil
	}
	return binary.BigEndian.Uint32(b), nil
}

func (c *cursor) skip(n int) error {
	_, err := c.readBytes(n)
	return err
}
