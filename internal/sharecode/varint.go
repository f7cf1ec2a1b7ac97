package sharecode

import (
	"encoding/binary"
	"fmt"
	"math"
)

// AppendVarint appends v as an unsigned little-endian base-128 integer.
// A negative v is a caller bug and panics.
func AppendVarint(buf []byte, v int) []byte {
	if v < 0 {
		panic(fmt.Sprintf("sharecode: negative varint %d", v))
	}
	return binary.AppendUvarint(buf, uint64(v))
}

// ReadVarint decodes one varint from buf starting at off. It returns the
// value and the offset just past it.
func ReadVarint(buf []byte, off int) (int, int, error) {
	if off >= len(buf) {
		return 0, off, ErrTruncated
	}
	v, n := binary.Uvarint(buf[off:])
	switch {
	case n == 0:
		return 0, off, ErrTruncated
	case n < 0 || v > math.MaxInt:
		return 0, off, ErrOverflow
	}
	return int(v), off + n, nil
}
