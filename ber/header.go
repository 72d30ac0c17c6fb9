// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"errors"
	"io"
	"strconv"

	"github.com/keetanetwork/asn1"
	"github.com/keetanetwork/asn1/internal/vlq"
)

// LengthIndefinite when used as a magic number for the length of a [Header]
// indicates that the data value is encoded using the constructed
// indefinite-length format.
const LengthIndefinite = -1

var (
	errLengthTooLarge      = errors.New("length too large")
	errIndefinitePrimitive = errors.New("indefinite length on primitive value")
)

// Header represents the BER header of an encoded data value. The Length of the
// Header indicates the number of bytes that make up the content octets of the
// encoded data value. Length can also be the special value [LengthIndefinite]
// if the encoding uses the constructed indefinite-length encoding. In that
// case, Constructed must also be set to true.
type Header struct {
	Tag         asn1.Tag
	Length      int
	Constructed bool
}

// String returns a short description of h, for example
// "[UNIVERSAL 16] constructed, 12 bytes".
func (h Header) String() string {
	s := h.Tag.String()
	if h.Constructed {
		s += " constructed"
	} else {
		s += " primitive"
	}
	if h.Length == LengthIndefinite {
		return s + ", indefinite length"
	}
	return s + ", " + strconv.Itoa(h.Length) + " bytes"
}

// numBytes computes the number of bytes required to BER-encode h. The
// appendTo method will write this exact number of bytes.
func (h Header) numBytes() int {
	l := 1 // class, constructed, tag
	if h.Tag.Number >= 31 {
		// tag does not fit
		l += vlq.Size(h.Tag.Number)
	}
	l++ // length
	if h.Length == LengthIndefinite || h.Length < 128 {
		return l
	}
	// multi-byte length
	for hl := h.Length; hl > 0; hl >>= 8 {
		l++
	}
	return l
}

// appendTo appends the BER-encoding of h to b and returns the extended slice.
// Lengths are written in their minimal form.
func (h Header) appendTo(b []byte) []byte {
	id := byte(h.Tag.Class) << 6
	if h.Constructed {
		id |= 0x20
	}
	if h.Tag.Number < 31 {
		b = append(b, id|byte(h.Tag.Number))
	} else {
		b = append(b, id|0x1f)
		b = vlq.Append(b, h.Tag.Number)
	}

	switch {
	case h.Length == LengthIndefinite:
		return append(b, 0x80)
	case h.Length < 128:
		return append(b, byte(h.Length))
	}
	numBytes := 0
	for l := h.Length; l > 0; l >>= 8 {
		numBytes++
	}
	b = append(b, 0x80|byte(numBytes))
	for ; numBytes > 0; numBytes-- {
		b = append(b, byte(h.Length>>uint((numBytes-1)*8)))
	}
	return b
}

// decodeHeader reads the identifier and length octets of a data value encoding
// from r and returns them as a [Header] value. If the encoding is invalid an
// error is returned.
//
// If r returns io.EOF on the first read, the returned error will be io.EOF as
// well. If r produces a valid BER-encoded header, this method will not read any
// bytes past the header.
func decodeHeader(r io.ByteReader) (h Header, err error) {
	b, err := r.ReadByte()
	if err != nil {
		return Header{}, err
	}
	h = Header{
		Tag:         asn1.Tag{Class: asn1.Class(b >> 6), Number: uint(b & 0x1f)},
		Constructed: b&0x20 == 0x20,
	}

	// If the bottom five bits are set, then the tag number is actually base 128
	// encoded afterward
	if b&0x1f == 0x1f {
		if h.Tag.Number, err = vlq.Read[uint](r); err != nil {
			return h, noEOF(err)
		}
	}

	if b, err = r.ReadByte(); err != nil {
		return h, noEOF(err)
	}
	if b&0x80 == 0 {
		// The length is encoded in the bottom 7 bits.
		h.Length = int(b & 0x7f)
	} else if b == 0x80 {
		if !h.Constructed {
			return h, errIndefinitePrimitive
		}
		h.Length = LengthIndefinite
	} else {
		// Bottom 7 bits give the number of length bytes to follow.
		numBytes := int(b & 0x7f)
		h.Length = 0
		for i := 0; i < numBytes; i++ {
			if b, err = r.ReadByte(); err != nil {
				return h, noEOF(err)
			}
			if h.Length >= 1<<23 {
				// We can't shift h.length up without overflowing.
				return h, errLengthTooLarge
			}
			h.Length <<= 8
			h.Length |= int(b)
		}
	}
	return h, nil
}
