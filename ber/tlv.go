// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"bytes"
	"errors"

	"github.com/keetanetwork/asn1"
)

// element is a single data value encoding that has been split from its
// surrounding input. The slices of an element share memory with the input.
type element struct {
	Header

	offset        int    // offset of the identifier octets in the outermost input
	contentOffset int    // offset of the contents octets in the outermost input
	raw           []byte // identifier, length, contents and end-of-contents octets
	content       []byte // contents octets without end-of-contents
}

// readElement splits the first data value encoding from data and returns it
// together with the remaining bytes. base is the offset of data in the
// outermost input and is used for error reporting.
//
// Indefinite-length values are scanned for their end-of-contents marker. Each
// nested indefinite-length value consumes one level of depth. If depth drops
// below zero an error of kind [asn1.ErrDepthExceeded] is returned.
func readElement(data []byte, base, depth int) (e element, rest []byte, err error) {
	r := bytes.NewReader(data)
	h, err := decodeHeader(r)
	if err != nil {
		return e, nil, syntaxError("read header", base, h, noEOF(err))
	}
	if h.Tag.Class == asn1.ClassUniversal && h.Tag.Number == asn1.TagEndOfContents {
		if h.Constructed || h.Length != 0 {
			return e, nil, syntaxError("read header", base, h, errInvalidEOC)
		}
		return e, nil, syntaxError("read header", base, h, errUnexpectedEOC)
	}
	hl := len(data) - r.Len()
	e.Header = h
	e.offset = base
	e.contentOffset = base + hl

	if h.Length != LengthIndefinite {
		if h.Length > len(data)-hl {
			return e, nil, syntaxError("read element", base, h, errTruncated)
		}
		e.content = data[hl : hl+h.Length]
		e.raw = data[:hl+h.Length]
		return e, data[hl+h.Length:], nil
	}

	if depth <= 0 {
		return e, nil, asn1.NewError(asn1.ErrDepthExceeded, "read element", nil)
	}
	pos := hl
	for {
		if len(data)-pos < 2 {
			return e, nil, syntaxError("read element", base, h, errTruncated)
		}
		if data[pos] == 0 && data[pos+1] == 0 {
			e.content = data[hl:pos]
			e.raw = data[:pos+2]
			return e, data[pos+2:], nil
		}
		_, tail, err := readElement(data[pos:], base+pos, depth-1)
		if err != nil {
			return e, nil, err
		}
		pos = len(data) - len(tail)
	}
}

// children splits the contents of a constructed element into its nested
// elements.
func (e element) children(depth int) ([]element, error) {
	if !e.Constructed {
		return nil, syntaxError("split contents", e.offset, e.Header, errors.New("primitive value has no children"))
	}
	var elems []element
	data := e.content
	for len(data) > 0 {
		base := e.contentOffset + len(e.content) - len(data)
		child, rest, err := readElement(data, base, depth)
		if err != nil {
			return nil, err
		}
		elems = append(elems, child)
		data = rest
	}
	return elems, nil
}
