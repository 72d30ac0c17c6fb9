// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keetanetwork/asn1"
)

func TestReadElement(t *testing.T) {
	tests := map[string]struct {
		data        []byte
		wantHeader  Header
		wantContent []byte
		wantRest    []byte
	}{
		"Primitive": {[]byte{0x02, 0x01, 0x05, 0xFF},
			Header{asn1.Universal(asn1.TagInteger), 1, false}, []byte{0x05}, []byte{0xFF}},
		"Empty": {[]byte{0x05, 0x00},
			Header{asn1.Universal(asn1.TagNull), 0, false}, []byte{}, []byte{}},
		"Indefinite": {[]byte{0x30, 0x80, 0x02, 0x01, 0x01, 0x00, 0x00, 0x05, 0x00},
			Header{asn1.Universal(asn1.TagSequence), LengthIndefinite, true}, []byte{0x02, 0x01, 0x01}, []byte{0x05, 0x00}},
		"NestedIndefinite": {[]byte{0x30, 0x80, 0x30, 0x80, 0x02, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00},
			Header{asn1.Universal(asn1.TagSequence), LengthIndefinite, true}, []byte{0x30, 0x80, 0x02, 0x01, 0x01, 0x00, 0x00}, []byte{}},
		"IndefiniteContainsDefinite": {[]byte{0xA0, 0x80, 0x04, 0x02, 0x00, 0x00, 0x00, 0x00},
			Header{asn1.ContextTag(0), LengthIndefinite, true}, []byte{0x04, 0x02, 0x00, 0x00}, []byte{}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e, rest, err := readElement(tt.data, 0, DefaultMaxDepth)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeader, e.Header)
			assert.Equal(t, tt.wantContent, e.content, "content")
			assert.Equal(t, tt.wantRest, rest, "rest")
			assert.Len(t, e.raw, len(tt.data)-len(rest), "consumed bytes")
		})
	}
}

func TestReadElement_error(t *testing.T) {
	tests := map[string]struct {
		data       []byte
		depth      int
		wantErr    error
		wantOffset int
	}{
		"Truncated":         {[]byte{0x02, 0x05, 0x01}, DefaultMaxDepth, errTruncated, 0},
		"UnexpectedEOC":     {[]byte{0x00, 0x00}, DefaultMaxDepth, errUnexpectedEOC, 0},
		"InvalidEOC":        {[]byte{0x00, 0x01, 0x00}, DefaultMaxDepth, errInvalidEOC, 0},
		"ConstructedEOC":    {[]byte{0x20, 0x00}, DefaultMaxDepth, errInvalidEOC, 0},
		"MissingEOC":        {[]byte{0x30, 0x80, 0x02, 0x01, 0x01}, DefaultMaxDepth, errTruncated, 0},
		"TruncatedChild":    {[]byte{0x30, 0x80, 0x02, 0x03, 0x01}, DefaultMaxDepth, errTruncated, 2},
		"IndefinitePrimStr": {[]byte{0x04, 0x80, 0x00, 0x00}, DefaultMaxDepth, errIndefinitePrimitive, 0},
		"DepthExceeded":     {[]byte{0x30, 0x80, 0x30, 0x80, 0x00, 0x00, 0x00, 0x00}, 1, asn1.ErrDepthExceeded, -1},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := readElement(tt.data, 0, tt.depth)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantOffset < 0 {
				return
			}
			assert.ErrorIs(t, err, asn1.ErrMalformedData)
			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.wantOffset, syntaxErr.Offset)
		})
	}
}

func TestElement_children(t *testing.T) {
	data := []byte{0x30, 0x09, 0x02, 0x01, 0x01, 0x30, 0x80, 0x00, 0x00, 0x05, 0x00}
	e, _, err := readElement(data, 0, DefaultMaxDepth)
	require.NoError(t, err)
	children, err := e.children(DefaultMaxDepth)
	require.NoError(t, err)
	wantTags := []asn1.Tag{asn1.Universal(asn1.TagInteger), asn1.Universal(asn1.TagSequence), asn1.Universal(asn1.TagNull)}
	wantOffsets := []int{2, 5, 9}
	require.Len(t, children, len(wantTags))
	for i, c := range children {
		assert.Equal(t, wantTags[i], c.Tag, "children()[%d].Tag", i)
		assert.Equal(t, wantOffsets[i], c.offset, "children()[%d].offset", i)
	}

	t.Run("TruncatedChild", func(t *testing.T) {
		e, _, err := readElement([]byte{0x30, 0x05, 0x02, 0x01, 0x01, 0x02, 0x05}, 0, DefaultMaxDepth)
		require.NoError(t, err)
		_, err = e.children(DefaultMaxDepth)
		require.ErrorIs(t, err, errTruncated)
		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		assert.Equal(t, 5, syntaxErr.Offset)
	})
	t.Run("Primitive", func(t *testing.T) {
		e, _, _ := readElement([]byte{0x04, 0x00}, 0, DefaultMaxDepth)
		_, err := e.children(DefaultMaxDepth)
		assert.Error(t, err)
	})
}
