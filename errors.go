// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asn1

import "errors"

// ErrorKind identifies a class of failure. Every error returned by this module
// and its subpackages matches exactly one ErrorKind via [errors.Is] at its
// outermost level. Errors that wrap other failures may match additional kinds.
//
//go:generate stringer -type=ErrorKind -trimprefix=Err
type ErrorKind uint8

// These are the kinds of errors produced by the codec.
const (
	ErrMalformedData ErrorKind = iota + 1
	ErrUnknownStringFormat
	ErrUnknownDateFormat
	ErrInvalidUTCTime
	ErrInvalidStringEncoding
	ErrInvalidBitString
	ErrUnknownOID
	ErrUnknownObject
	ErrUnknownFieldProperty
	ErrInvalidContextNonSequence
	ErrUnknownContext
	ErrInvalidSimpleTypesOnly
	ErrInvalidDataEncoding
	ErrDepthExceeded
)

var errorMessages = [...]string{
	ErrMalformedData:             "malformed data",
	ErrUnknownStringFormat:       "unknown string format",
	ErrUnknownDateFormat:         "unknown date format",
	ErrInvalidUTCTime:            "date cannot be represented as UTCTime",
	ErrInvalidStringEncoding:     "string contains characters outside of its kind",
	ErrInvalidBitString:          "invalid bit string",
	ErrUnknownOID:                "unknown object identifier",
	ErrUnknownObject:             "unknown object",
	ErrUnknownFieldProperty:      "unknown field property",
	ErrInvalidContextNonSequence: "context contents cannot be converted",
	ErrUnknownContext:            "unknown context",
	ErrInvalidSimpleTypesOnly:    "only simple types are supported",
	ErrInvalidDataEncoding:       "invalid data encoding",
	ErrDepthExceeded:             "maximum nesting depth exceeded",
}

// Error returns a human-readable description of k.
func (k ErrorKind) Error() string {
	if int(k) < len(errorMessages) && errorMessages[k] != "" {
		return "asn1: " + errorMessages[k]
	}
	return "asn1: " + k.String()
}

// Error describes a failure of a specific operation. The Kind classifies the
// failure, Op names the failing operation and Err holds the underlying cause,
// if any.
//
// An Error matches its Kind via [errors.Is]. Kinds of wrapped errors match as
// well.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// NewError returns an [*Error] of kind k for the operation op, wrapping err.
func NewError(k ErrorKind, op string, err error) *Error {
	return &Error{Kind: k, Op: op, Err: err}
}

func (e *Error) Error() string {
	b := []byte("asn1: ")
	if e.Op != "" {
		b = append(b, e.Op...)
		b = append(b, ": "...)
	}
	if int(e.Kind) < len(errorMessages) {
		b = append(b, errorMessages[e.Kind]...)
	} else {
		b = append(b, e.Kind.String()...)
	}
	//goland:noinspection GoDirectComparisonOfErrors
	if e.Err != nil && e.Err != error(e.Kind) {
		b = append(b, ": "...)
		b = append(b, e.Err.Error()...)
	}
	return string(b)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the ErrorKind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// KindOf returns the outermost [ErrorKind] of err. If err does not carry a
// kind, KindOf returns 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k ErrorKind
	if errors.As(err, &k) {
		return k
	}
	return 0
}
