// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asn1 defines a tagged-value model for ASN.1 data as it appears in
// BER encodings. This package holds the model only. Encoding and decoding is
// implemented in the [github.com/keetanetwork/asn1/ber] package.
//
// # Value Model
//
// Every decoded node is represented by a [Data] value. The set of Data
// implementations is closed:
//
//   - [Boolean], [Integer] and [BigInt] hold ASN.1 BOOLEAN and INTEGER values.
//     Integers that do not fit into an int64 are represented as BigInt.
//   - [String] holds text whose wire representation is not retained. The
//     kinded [PrintableString], [IA5String] and [UTF8String] types remember
//     the string type they were decoded from.
//   - [Bytes] holds an OCTET STRING.
//   - [Array] holds the elements of a SEQUENCE.
//   - [UTCTime] and [GeneralizedTime] hold decoded times.
//   - [Null] represents NULL.
//   - [Opaque] holds the complete encoding of a node that has no semantic
//     mapping. It is written back verbatim.
//   - Structured values implement [Object]: [OID], [AttributeSet],
//     [BitString], [Context], [StringObject] and [DateObject].
//
// Which of these a node maps to is decided by [Classify] from the node's tag.
//
// # Wire Heuristics
//
// Some values can be written using several ASN.1 types. [SelectStringKind]
// and [SelectDateKind] implement the deterministic choice used when a value
// does not request a specific type.
package asn1

import (
	"strconv"
	"strings"
)

// Tag constitutes an ASN.1 tag, consisting of its class and number. For
// details, see Section 8 of Rec. ITU-T X.680.
type Tag struct {
	Class  Class
	Number uint
}

// Class holds the class part of an ASN.1 tag. The class acts as a namespace for
// the tag number. A Class value is an unsigned 2-bit integer. Class values
// whose value exceeds 2 bits are invalid.
//
//go:generate stringer -type=Class -trimprefix=Class
type Class uint8

// IsValid reports whether c is a valid Class value.
func (c Class) IsValid() bool {
	return c <= 3
}

// Predefined [Class] constants. These are all the possible values that can be
// encoded in the [Class] type.
const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

// Universal returns the universal tag with number n.
func Universal(n uint) Tag {
	return Tag{Class: ClassUniversal, Number: n}
}

// ContextTag returns the context-specific tag with number n.
func ContextTag(n uint) Tag {
	return Tag{Class: ClassContextSpecific, Number: n}
}

// String returns a string representation t in a format similar to the one used
// in ASN.1 notation. The tag number is enclosed by square brackets and prefixed
// with the class used. To avoid ambiguity the UNIVERSAL word is used for
// universal tags, although this is not valid ASN.1 syntax.
func (t Tag) String() string {
	if t.Class == ClassContextSpecific {
		return "[" + strconv.FormatUint(uint64(t.Number), 10) + "]"
	}
	return "[" + strings.ToUpper(t.Class.String()) + " " + strconv.FormatUint(uint64(t.Number), 10) + "]"
}

// TagEndOfContents is the universal tag number of the end-of-contents marker
// that terminates indefinite-length encodings.
const TagEndOfContents uint = 0

// These are the ASN.1 tag numbers defined in the [ClassUniversal] namespace.
// These assignments are defined in Rec. ITU-T X.680, Section 8, Table 1.
const (
	TagBoolean          uint = 1
	TagInteger          uint = 2
	TagBitString        uint = 3
	TagOctetString      uint = 4
	TagNull             uint = 5
	TagOID              uint = 6
	TagObjectDescriptor uint = 7
	TagExternal         uint = 8
	TagReal             uint = 9
	TagEnumerated       uint = 10
	TagEmbeddedPDV      uint = 11
	TagUTF8String       uint = 12
	TagRelativeOID      uint = 13
	TagTime             uint = 14
	TagSequence         uint = 16
	TagSet              uint = 17
	TagNumericString    uint = 18
	TagPrintableString  uint = 19
	TagTeletexString    uint = 20
	TagT61String             = TagTeletexString
	TagVideotexString   uint = 21
	TagIA5String        uint = 22
	TagUTCTime          uint = 23
	TagGeneralizedTime  uint = 24
	TagGraphicString    uint = 25
	TagVisibleString    uint = 26
	TagISO646String          = TagVisibleString
	TagGeneralString    uint = 27
	TagUniversalString  uint = 28
	TagCharacterString  uint = 29
	TagBMPString        uint = 30
)
