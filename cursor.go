package addrlib

import "encoding/binary"

// Cursor is a bounds-checked sequential reader over an immutable byte
// buffer. Reads are atomic: on ErrOutOfBounds the position is left
// unchanged.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps a byte buffer.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Skip advances the position by delta bytes, which may be negative.
// The resulting position must stay within [0, len].
func (c *Cursor) Skip(delta int64) error {
	next := int64(c.pos) + delta
	if next < 0 || next > int64(len(c.buf)) {
		return ErrOutOfBounds
	}
	c.pos = int(next)
	return nil
}

// Uint8 reads a single byte.
func (c *Cursor) Uint8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads a little-endian uint16.
func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 reads a little-endian uint32.
func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint64 reads a little-endian uint64.
func (c *Cursor) Uint64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Uint32s fills dst with consecutive little-endian uint32 values.
// Either all values are read and the position advances once, or none
// are and the cursor is unchanged.
func (c *Cursor) Uint32s(dst []uint32) error {
	b, err := c.take(4 * len(dst))
	if err != nil {
		return err
	}
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return nil
}

func (c *Cursor) take(n int) ([]byte, error) {
	if c.pos+n > len(c.buf) {
		return nil, ErrOutOfBounds
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}
