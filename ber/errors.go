// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"errors"
	"io"
	"strconv"

	"github.com/keetanetwork/asn1"
)

var (
	errUnexpectedEOC = errors.New("unexpected end of contents")
	errInvalidEOC    = errors.New("invalid end of contents")
	errTruncated     = errors.New("truncated data value")
	errTrailingData  = errors.New("trailing data after value")
	errEmpty         = errors.New("empty input")
)

// SyntaxError represents an error in the TLV structure of the input. The error
// value contains the location of the error within the input as well as the
// [Header] of the data value containing the error, if known.
//
// SyntaxError values are always wrapped in an [*asn1.Error] of kind
// [asn1.ErrMalformedData].
type SyntaxError struct {
	Err error // underlying error

	// Offset is the location of the error. The location is usually the start of
	// the TLV header containing the error.
	Offset int

	// Header is the TLV header of the data value that contained the malformed
	// data. The zero Header is used if the header itself could not be read.
	Header Header
}

func (e *SyntaxError) Unwrap() error { return e.Err }
func (e *SyntaxError) Error() string {
	b := []byte("ber: syntax error")
	if e.Header != (Header{}) {
		b = append(b, " within "...)
		b = append(b, e.Header.String()...)
	}
	//goland:noinspection GoDirectComparisonOfErrors
	if e.Err == io.ErrUnexpectedEOF {
		b = strconv.AppendInt(append(b, " at offset "...), int64(e.Offset), 10)
	} else {
		b = strconv.AppendInt(append(b, " for TLV beginning at offset "...), int64(e.Offset), 10)
	}
	if e.Err != nil {
		b = append(b, ": "...)
		b = append(b, e.Err.Error()...)
	}
	return string(b)
}

// syntaxError returns a [*SyntaxError] wrapped as [asn1.ErrMalformedData].
func syntaxError(op string, offset int, h Header, err error) error {
	return asn1.NewError(asn1.ErrMalformedData, op, &SyntaxError{Err: err, Offset: offset, Header: h})
}

// noEOF returns err, unless err == io.EOF, in which case it returns io.ErrUnexpectedEOF.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
