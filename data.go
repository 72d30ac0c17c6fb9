// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asn1

import (
	"bytes"
	"math/big"
	"time"
	"unicode/utf8"
)

// Data is a decoded BER node. The set of implementations is closed. See the
// package documentation for a list.
type Data interface {
	isData()
}

// Boolean is an ASN.1 BOOLEAN value.
type Boolean bool

// Integer is an ASN.1 INTEGER value that fits into an int64.
type Integer int64

// BigInt is an ASN.1 INTEGER of arbitrary size. A BigInt with a nil Int is
// treated as zero.
type BigInt struct {
	*big.Int
}

// NewBigInt returns a BigInt holding a copy of i.
func NewBigInt(i *big.Int) BigInt {
	return BigInt{new(big.Int).Set(i)}
}

func (i BigInt) value() *big.Int {
	if i.Int == nil {
		return new(big.Int)
	}
	return i.Int
}

// String is text whose wire type is chosen when encoding. See
// [SelectStringKind].
type String string

// PrintableString is text that was decoded from or is to be written as an
// ASN.1 PrintableString.
type PrintableString string

// IsValid reports whether s consists only of printable characters.
func (s PrintableString) IsValid() bool {
	return IsPrintable(string(s))
}

// IA5String is text that was decoded from or is to be written as an ASN.1
// IA5String.
type IA5String string

// IsValid reports whether the contents of s consist only of ASCII characters.
func (s IA5String) IsValid() bool {
	return IsIA5(string(s))
}

// UTF8String is text that was decoded from or is to be written as an ASN.1
// UTF8String.
type UTF8String string

// IsValid reports whether s consists of valid UTF-8 encoded characters.
func (s UTF8String) IsValid() bool {
	return utf8.ValidString(string(s))
}

// Bytes is an ASN.1 OCTET STRING.
type Bytes []byte

// Array holds the elements of an ASN.1 SEQUENCE in order.
type Array []Data

// Null is the ASN.1 NULL value.
type Null struct{}

// Opaque holds the complete encoding (identifier, length and contents) of a
// node without a semantic mapping.
type Opaque []byte

func (Boolean) isData()         {}
func (Integer) isData()         {}
func (BigInt) isData()          {}
func (String) isData()          {}
func (PrintableString) isData() {}
func (IA5String) isData()       {}
func (UTF8String) isData()      {}
func (Bytes) isData()           {}
func (Array) isData()           {}
func (UTCTime) isData()         {}
func (GeneralizedTime) isData() {}
func (Null) isData()            {}
func (Opaque) isData()          {}

// Equal reports whether a and b have the same encoding. Integers are compared
// by value regardless of their representation as [Integer] or [BigInt].
// Values without a fixed wire type are compared as the type the encoder selects
// for them, so String("a") equals PrintableString("a") and a DateObject in
// 2020 with the default kind equals the corresponding UTCTime. Times are
// compared as instants at the precision of their wire type.
func Equal(a, b Data) bool {
	a, b = wireForm(a), wireForm(b)
	switch a := a.(type) {
	case nil:
		return b == nil
	case Integer, BigInt:
		ai, ok1 := asBig(a)
		bi, ok2 := asBig(b)
		return ok1 && ok2 && ai.Cmp(bi) == 0
	case Bytes:
		bb, ok := b.(Bytes)
		return ok && bytes.Equal(a, bb)
	case Opaque:
		bb, ok := b.(Opaque)
		return ok && bytes.Equal(a, bb)
	case Array:
		bb, ok := b.(Array)
		if !ok || len(a) != len(bb) {
			return false
		}
		for i := range a {
			if !Equal(a[i], bb[i]) {
				return false
			}
		}
		return true
	case UTCTime:
		bb, ok := b.(UTCTime)
		return ok && sameInstant(time.Time(a), time.Time(bb), time.Second)
	case GeneralizedTime:
		bb, ok := b.(GeneralizedTime)
		return ok && sameInstant(time.Time(a), time.Time(bb), time.Millisecond)
	case BitString:
		bb, ok := b.(BitString)
		return ok && a.Unused == bb.Unused && bytes.Equal(a.Bytes, bb.Bytes)
	case Context:
		bb, ok := b.(Context)
		return ok && a.Number == bb.Number && a.Kind == bb.Kind && Equal(a.Contents, bb.Contents)
	case DateObject:
		// Only reached for unknown kinds.
		bb, ok := b.(DateObject)
		return ok && a.Kind == bb.Kind && a.Value.Equal(bb.Value)
	default:
		// All remaining variants are comparable.
		return a == b
	}
}

// wireForm returns d as the kinded value it is written as. Values that already
// have a fixed wire type and values with an unknown kind are returned
// unchanged.
func wireForm(d Data) Data {
	switch d := d.(type) {
	case String:
		return kindedString(SelectStringKind(string(d)), string(d), d)
	case StringObject:
		return kindedString(d.Kind.Resolve(d.Value), d.Value, d)
	case DateObject:
		switch d.Kind.Resolve(d.Value) {
		case DateUTC:
			return UTCTime(d.Value)
		case DateGeneral:
			return GeneralizedTime(d.Value)
		}
	case AttributeSet:
		d.Kind = d.Kind.Resolve(d.Value)
		return d
	}
	return d
}

func kindedString(k StringKind, s string, fallback Data) Data {
	switch k {
	case StringPrintable:
		return PrintableString(s)
	case StringIA5:
		return IA5String(s)
	case StringUTF8:
		return UTF8String(s)
	}
	return fallback
}

// sameInstant reports whether a and b are equal after truncation to a multiple
// of d.
func sameInstant(a, b time.Time, d time.Duration) bool {
	return a.Truncate(d).Equal(b.Truncate(d))
}

func asBig(d Data) (*big.Int, bool) {
	switch d := d.(type) {
	case Integer:
		return big.NewInt(int64(d)), true
	case BigInt:
		return d.value(), true
	}
	return nil, false
}
