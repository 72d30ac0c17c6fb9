// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keetanetwork/asn1"
)

func TestIterator(t *testing.T) {
	d := NewDecoder(mustHex("300f020101020102020103020104020105"))
	it, err := d.Sequence()
	require.NoError(t, err)
	assert.Equal(t, 5, it.Len())

	var sum int64
	for it.Remaining() > 0 {
		ed, err := it.NextDecoder()
		require.NoError(t, err)
		i, err := ed.Integer()
		require.NoError(t, err)
		sum += i
	}
	assert.EqualValues(t, 15, sum)
	assert.Equal(t, 0, it.Remaining())
	assert.Equal(t, 5, it.Len())

	_, err = it.Next()
	assert.ErrorIs(t, err, io.EOF)
	_, err = it.NextDecoder()
	assert.ErrorIs(t, err, io.EOF)
}

func TestIterator_Next(t *testing.T) {
	// The second element is an invalid BOOLEAN.
	it, err := NewDecoder(mustHex("300a020101010200ff020103")).Sequence()
	require.NoError(t, err)

	v, err := it.Next()
	require.NoError(t, err)
	assertData(t, asn1.Integer(1), v)

	_, err = it.Next()
	assert.ErrorIs(t, err, asn1.ErrMalformedData)
	assert.Equal(t, 1, it.Remaining())

	v, err = it.Next()
	require.NoError(t, err)
	assertData(t, asn1.Integer(3), v)
}

func TestIterator_All(t *testing.T) {
	it, err := NewDecoder(mustBase64(testBlock)).Sequence()
	require.NoError(t, err)

	var got []asn1.Data
	for v, err := range it.All() {
		require.NoError(t, err)
		got = append(got, v)
		if len(got) == 3 {
			break
		}
	}
	assertData(t, asn1.Array{asn1.Integer(0), asn1.Integer(456), asn1.Integer(123)}, asn1.Array(got))
	assert.Equal(t, 5, it.Remaining())

	n := 0
	for range it.All() {
		n++
	}
	assert.Equal(t, 5, n)
	assert.Equal(t, 0, it.Remaining())

	t.Run("Empty", func(t *testing.T) {
		it, err := NewDecoder(mustHex("3000")).Sequence()
		require.NoError(t, err)
		assert.Equal(t, 0, it.Len())
		for range it.All() {
			t.Fatal("All() yielded an element of an empty sequence")
		}
	})
}

func TestIterator_children(t *testing.T) {
	// Iterators of nested sequences share the configuration of the parent.
	l := &recorder{}
	it, err := NewDecoder(mustBase64(testCert), WithLogger(l), WithMaxDepth(2)).Sequence()
	require.NoError(t, err)
	tbs, err := it.NextDecoder()
	require.NoError(t, err)
	tbsIt, err := tbs.Sequence()
	require.NoError(t, err)
	assert.Equal(t, 8, tbsIt.Len())

	// [0] EXPLICIT INTEGER at depth 2
	_, err = tbsIt.Next()
	assert.ErrorIs(t, err, asn1.ErrDepthExceeded)
	assert.NotEmpty(t, l.Messages())

	v, err := tbsIt.Next()
	require.NoError(t, err)
	assertData(t, asn1.Integer(1), v)
}
