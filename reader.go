package addrlib

import (
	"bytes"
	"fmt"
	"io"

	"github.com/golang/snappy"
)

// Stream identifier chunk of the snappy framed format.
var snappyStreamMagic = []byte{0xff, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}

// Reader decodes the records of an address library file. It iterates
// in file order; use ReadAll with Sort for an id-ordered view.
type Reader struct {
	c      *Cursor
	header Header

	rpos       int // records consumed
	prevID     uint64
	prevOffset uint64

	cur Mapping
	err error
}

// NewReader parses the header and positions a reader at the first
// record. Snappy framed input is inflated transparently.
func NewReader(data []byte) (*Reader, error) {
	if bytes.HasPrefix(data, snappyStreamMagic) {
		plain, err := io.ReadAll(snappy.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("addrlib: inflate: %w", err)
		}
		data = plain
	}

	c := NewCursor(data)
	header, err := readHeader(c)
	if err != nil {
		return nil, err
	}
	return &Reader{c: c, header: header}, nil
}

// Header returns the decoded file header.
func (r *Reader) Header() Header { return r.header }

// More returns true if records remain to be decoded.
func (r *Reader) More() bool {
	return r.err == nil && r.rpos < int(r.header.AddressCount)
}

// Next advances to the next record and returns true if successful.
func (r *Reader) Next() bool {
	if !r.More() {
		return false
	}

	m, err := readRecord(r.c, r.header.PointerSize, r.prevID, r.prevOffset)
	if err != nil {
		r.err = fmt.Errorf("record %d: %w", r.rpos, err)
		return false
	}

	r.cur = m
	r.prevID = m.ID
	r.prevOffset = m.Offset
	r.rpos++
	return true
}

// Mapping returns the current record.
func (r *Reader) Mapping() Mapping { return r.cur }

// Err exposes decode errors, if any.
func (r *Reader) Err() error { return r.err }

// ReadAll decodes all remaining records, in file order.
func (r *Reader) ReadAll() ([]Mapping, error) {
	ms := make([]Mapping, 0, r.header.AddressCount)
	for r.Next() {
		ms = append(ms, r.Mapping())
	}
	return ms, r.Err()
}

// Decode is a shortcut for NewReader followed by ReadAll.
func Decode(data []byte) ([]Mapping, error) {
	r, err := NewReader(data)
	if err != nil {
		return nil, err
	}
	return r.ReadAll()
}

// --------------------------------------------------------------------

func readHeader(c *Cursor) (Header, error) {
	var h Header

	format, err := c.Uint32()
	if err != nil {
		return h, err
	}
	switch format {
	case FormatV1, FormatV2:
		h.Format = format
	default:
		return h, fmt.Errorf("%w (%d)", ErrInvalidFormat, format)
	}

	if err := c.Uint32s(h.Version[:]); err != nil {
		return h, err
	}

	// the name is length-prefixed and never materialized
	nameLen, err := c.Uint32()
	if err != nil {
		return h, err
	}
	if err := c.Skip(int64(nameLen)); err != nil {
		return h, err
	}

	if h.PointerSize, err = c.Uint32(); err != nil {
		return h, err
	}
	if h.AddressCount, err = c.Uint32(); err != nil {
		return h, err
	}
	return h, nil
}

// readRecord decodes a single record against the previous id/offset.
func readRecord(c *Cursor, ptrSize uint32, prevID, prevOffset uint64) (Mapping, error) {
	tag, err := c.Uint8()
	if err != nil {
		return Mapping{}, err
	}
	lo, hi := tag&0xF, tag>>4

	var id uint64
	switch lo {
	case 0:
		id, err = c.Uint64()
	case 1:
		id = prevID + 1
	case 2:
		var d uint8
		if d, err = c.Uint8(); err == nil {
			id = prevID + uint64(d)
		}
	case 3:
		var d uint8
		if d, err = c.Uint8(); err == nil {
			id = prevID - uint64(d)
		}
	case 4:
		var d uint16
		if d, err = c.Uint16(); err == nil {
			id = prevID + uint64(d)
		}
	case 5:
		var d uint16
		if d, err = c.Uint16(); err == nil {
			id = prevID - uint64(d)
		}
	case 6:
		var v uint16
		if v, err = c.Uint16(); err == nil {
			id = uint64(v)
		}
	case 7:
		var v uint32
		if v, err = c.Uint32(); err == nil {
			id = uint64(v)
		}
	default:
		err = fmt.Errorf("%w (id mode %d)", ErrUnhandledTag, lo)
	}
	if err != nil {
		return Mapping{}, err
	}

	// offset deltas apply against the previous offset, or against the
	// previous offset in pointer units when bit 3 is set
	tmp := prevOffset
	if hi&8 != 0 {
		if ptrSize == 0 {
			return Mapping{}, ErrPointerSize
		}
		tmp = prevOffset / uint64(ptrSize)
	}

	var offset uint64
	switch hi & 7 {
	case 0:
		offset, err = c.Uint64()
	case 1:
		offset = tmp + 1
	case 2:
		var d uint8
		if d, err = c.Uint8(); err == nil {
			offset = tmp + uint64(d)
		}
	case 3:
		var d uint8
		if d, err = c.Uint8(); err == nil {
			offset = tmp - uint64(d)
		}
	case 4:
		var d uint16
		if d, err = c.Uint16(); err == nil {
			offset = tmp + uint64(d)
		}
	case 5:
		var d uint16
		if d, err = c.Uint16(); err == nil {
			offset = tmp - uint64(d)
		}
	case 6:
		var v uint16
		if v, err = c.Uint16(); err == nil {
			offset = uint64(v)
		}
	case 7:
		var v uint32
		if v, err = c.Uint32(); err == nil {
			offset = uint64(v)
		}
	}
	if err != nil {
		return Mapping{}, err
	}

	// re-expand pointer units to bytes, regardless of sub-mode
	if hi&8 != 0 {
		offset *= uint64(ptrSize)
	}

	return Mapping{ID: id, Offset: offset}, nil
}
