// Package vlq reads and writes the base-128 integers that BER uses for high
// tag numbers and object identifier sub-identifiers. Every byte carries seven
// bits of the value, most significant group first. The high bit is set on all
// bytes except the last.
package vlq

import (
	"errors"
	"io"
	"math/bits"

	"golang.org/x/exp/constraints"
)

var (
	// ErrNotMinimal indicates an encoding that starts with a zero group.
	ErrNotMinimal = errors.New("vlq: leading zero group")

	// ErrOverflow indicates a value that does not fit into the target type.
	ErrOverflow = errors.New("vlq: value overflows target type")
)

// Read decodes one VLQ from r, consuming exactly the bytes that belong to it.
// Encodings with a leading 0x80 byte fail with [ErrNotMinimal].
//
// If r is empty the error is io.EOF. A VLQ that is cut short fails with
// io.ErrUnexpectedEOF.
func Read[T constraints.Unsigned](r io.ByteReader) (T, error) {
	var v T
	for first := true; ; first = false {
		b, err := r.ReadByte()
		if err == io.EOF && !first {
			return 0, io.ErrUnexpectedEOF
		} else if err != nil {
			return 0, err
		}
		if first && b == 0x80 {
			return 0, ErrNotMinimal
		}
		if v > ^T(0)>>7 {
			return 0, ErrOverflow
		}
		v = v<<7 | T(b&0x7f)
		if b&0x80 == 0 {
			return v, nil
		}
	}
}

// Size returns the length of the encoding of v.
func Size[T constraints.Unsigned](v T) int {
	if v == 0 {
		return 1
	}
	return (bits.Len64(uint64(v)) + 6) / 7
}

// Append appends the encoding of v to b.
func Append[T constraints.Unsigned](b []byte, v T) []byte {
	for shift := 7 * (Size(v) - 1); shift > 0; shift -= 7 {
		b = append(b, byte(v>>shift)|0x80)
	}
	return append(b, byte(v)&0x7f)
}
