// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"io"
	"iter"

	"github.com/keetanetwork/asn1"
)

// An Iterator traverses the elements of a SEQUENCE value. The elements are
// split when the Iterator is created but each element is only decoded when it
// is reached. An Iterator cannot be reset. Call [Decoder.Sequence] again to
// traverse the elements a second time.
//
// An Iterator is not safe for concurrent use.
type Iterator struct {
	parent *Decoder
	elems  []element
	next   int
}

// Len returns the total number of elements in the sequence.
func (it *Iterator) Len() int {
	return len(it.elems)
}

// Remaining returns the number of elements that have not been visited yet.
func (it *Iterator) Remaining() int {
	return len(it.elems) - it.next
}

// NextDecoder advances the iterator and returns a [Decoder] for the next
// element. At the end of the sequence io.EOF is returned.
func (it *Iterator) NextDecoder() (*Decoder, error) {
	if it.next >= len(it.elems) {
		return nil, io.EOF
	}
	e := it.elems[it.next]
	it.next++
	return it.parent.newChildDecoder(e), nil
}

// Next advances the iterator and decodes the next element. At the end of the
// sequence io.EOF is returned. An error decoding one element does not prevent
// decoding of the following elements.
func (it *Iterator) Next() (asn1.Data, error) {
	d, err := it.NextDecoder()
	if err != nil {
		return nil, err
	}
	return d.Decode()
}

// All returns an iterator over the remaining elements of the sequence. Ranging
// over the result advances it.
func (it *Iterator) All() iter.Seq2[asn1.Data, error] {
	return func(yield func(asn1.Data, error) bool) {
		for it.Remaining() > 0 {
			if !yield(it.Next()) {
				return
			}
		}
	}
}
