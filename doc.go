/*
Package addrlib decodes binary "address library" files which map
numeric identifiers to memory offsets.

Data Structure Documentation

File

A file consists of a fixed header followed by a stream of
delta-compressed records. All integers are little-endian.

    File layout:
    +--------+----------+-------+----------+
    | header | record 1 |  ...  | record n |
    +--------+----------+-------+----------+

    Header:
    +------------------+---------------------+-------------------+----------------+------------------------+-----------------------+
    | format (4 bytes) | version (4x4 bytes) | nameLen (4 bytes) | name (skipped) | pointer size (4 bytes) | record count (4 bytes) |
    +------------------+---------------------+-------------------+----------------+------------------------+-----------------------+

Record

A record is a single tag byte followed by zero, one, two, four or
eight bytes per field. The low nibble of the tag selects the id
encoding, the high nibble the offset encoding. Both fields are deltas
against the previous record (seeded at zero), falling back to absolute
values for large jumps.

    Record layout:
    +--------------+----------------------+--------------------------+
    | tag (1 byte) | id field (0-8 bytes) | offset field (0-8 bytes) |
    +--------------+----------------------+--------------------------+

    Field modes (per nibble):
    0: absolute, 8 bytes       4: previous + u16 delta
    1: previous + 1            5: previous - u16 delta
    2: previous + u8 delta     6: absolute, 2 bytes
    3: previous - u8 delta     7: absolute, 4 bytes

Bit 3 of the high nibble marks a pointer-scaled offset: the delta is
applied against previous/pointerSize and the result multiplied back by
pointerSize, so pointer-aligned offsets compress into single-byte
deltas.

A file may additionally be wrapped in a snappy framed stream; the
Reader inflates it transparently before decoding.
*/
package addrlib
