// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asn1

// Category is the semantic category of a BER node. The category determines
// which [Data] type a node decodes to. The zero value is [CategoryUndefined],
// which is the category of empty input.
//
//go:generate stringer -type=Category -trimprefix=Category
type Category uint8

// These are the possible categories returned by [Classify].
const (
	CategoryUndefined Category = iota
	CategoryBoolean
	CategoryInteger
	CategoryBigInteger // never assigned by Classify, see [BigInt]
	CategoryString
	CategoryStringObject
	CategoryBuffer
	CategorySequence
	CategoryObject
	CategoryDateTime
	CategoryNull
	CategoryUnknown
)

// Classify maps a tag to its semantic category. The mapping depends only on
// the class and number of t:
//
//   - All context-specific tags are [CategoryObject].
//   - Application and private tags are [CategoryUnknown].
//   - Universal tags map according to their type. Universal tags without a
//     mapping are [CategoryUnknown].
func Classify(t Tag) Category {
	switch t.Class {
	case ClassContextSpecific:
		return CategoryObject
	case ClassUniversal:
	default:
		return CategoryUnknown
	}
	switch t.Number {
	case TagBoolean:
		return CategoryBoolean
	case TagInteger:
		return CategoryInteger
	case TagNull:
		return CategoryNull
	case TagPrintableString, TagIA5String, TagUTF8String:
		return CategoryStringObject
	case TagVisibleString, TagUniversalString, TagGeneralString, TagGraphicString,
		TagVideotexString, TagTeletexString, TagNumericString, TagBMPString:
		return CategoryString
	case TagBitString, TagOID, TagSet:
		return CategoryObject
	case TagOctetString:
		return CategoryBuffer
	case TagSequence:
		return CategorySequence
	case TagUTCTime, TagGeneralizedTime:
		return CategoryDateTime
	default:
		return CategoryUnknown
	}
}

// Sniff pre-classifies a node from the first byte of its encoding. Sniff does
// not parse multi-byte tags. The constructed SEQUENCE and SET identifiers map
// to their universal tags, identifiers in the range 0xA0 to 0xBF map to
// context-specific tags and every other byte b maps to the universal tag with
// number b.
//
// For all identifiers produced by this module the sniffed tag matches the tag
// parsed from the full header.
func Sniff(b byte) Tag {
	switch {
	case b == 0x30:
		return Universal(TagSequence)
	case b == 0x31:
		return Universal(TagSet)
	case b >= 0xA0 && b <= 0xBF:
		return ContextTag(uint(b ^ 0xA0))
	default:
		return Universal(uint(b))
	}
}
