package addrlib

import "errors"

// Recognized header format generations.
const (
	FormatV1 = 1
	FormatV2 = 2
)

var (
	// ErrInvalidFormat is returned when the header format tag is not a
	// recognized generation.
	ErrInvalidFormat = errors.New("addrlib: invalid format")

	// ErrOutOfBounds is returned when a read or seek would exceed the
	// extent of the input buffer, usually indicating truncated input.
	ErrOutOfBounds = errors.New("addrlib: out of bounds")

	// ErrUnhandledTag is returned when a record tag nibble selects an
	// undefined decoding mode.
	ErrUnhandledTag = errors.New("addrlib: unhandled tag")

	// ErrPointerSize is returned when a record requests pointer scaling
	// but the header declares a pointer size of zero.
	ErrPointerSize = errors.New("addrlib: zero pointer size")
)

// Header holds the fixed prologue of an address library file.
type Header struct {
	Format       uint32    // format generation, 1 or 2
	Version      [4]uint32 // opaque 4-part version
	PointerSize  uint32    // pointer size in bytes, used by scaled offset deltas
	AddressCount uint32    // number of records in the stream
}

// Mapping is a single decoded (id, offset) pair. Duplicate ids are
// legal and preserved.
type Mapping struct {
	ID     uint64
	Offset uint64
}
