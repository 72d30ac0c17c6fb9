// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asn1

import (
	"time"
	"unicode/utf8"
)

// SelectStringKind returns the most restrictive string type that can hold s.
// Text consisting of printable characters is a PrintableString, other ASCII
// text is an IA5String and everything else is a UTF8String.
func SelectStringKind(s string) StringKind {
	if IsPrintable(s) {
		return StringPrintable
	}
	if IsIA5(s) {
		return StringIA5
	}
	return StringUTF8
}

// Resolve returns k, or the kind selected by [SelectStringKind] for s if k is
// [StringDefault].
func (k StringKind) Resolve(s string) StringKind {
	if k == StringDefault {
		return SelectStringKind(s)
	}
	return k
}

// Validate checks that s can be written using the string type k. A
// [StringDefault] kind accepts any valid UTF-8 text.
func (k StringKind) Validate(s string) error {
	var ok bool
	switch k {
	case StringPrintable:
		ok = IsPrintable(s)
	case StringIA5:
		ok = IsIA5(s)
	case StringDefault, StringUTF8:
		ok = utf8.ValidString(s)
	default:
		return NewError(ErrUnknownStringFormat, "validate string", nil)
	}
	if !ok {
		return NewError(ErrInvalidStringEncoding, "validate "+k.String()+" string", nil)
	}
	return nil
}

// TagNumber returns the universal tag number of the string type k. k must not
// be [StringDefault].
func (k StringKind) TagNumber() uint {
	switch k {
	case StringPrintable:
		return TagPrintableString
	case StringIA5:
		return TagIA5String
	default:
		return TagUTF8String
	}
}

// StringKindOf returns the kind corresponding to the universal tag number n.
// The second return value is false if n is not one of the kinded string
// types.
func StringKindOf(n uint) (StringKind, bool) {
	switch n {
	case TagPrintableString:
		return StringPrintable, true
	case TagIA5String:
		return StringIA5, true
	case TagUTF8String:
		return StringUTF8, true
	}
	return StringDefault, false
}

// SelectDateKind returns [DateUTC] for times before the year 2050 and
// [DateGeneral] otherwise. Years before 1950 cannot be written as UTCTime and
// select [DateGeneral] as well.
func SelectDateKind(t time.Time) DateKind {
	if IsUTCYear(t) {
		return DateUTC
	}
	return DateGeneral
}

// Resolve returns k, or the kind selected by [SelectDateKind] for t if k is
// [DateDefault].
func (k DateKind) Resolve(t time.Time) DateKind {
	if k == DateDefault {
		return SelectDateKind(t)
	}
	return k
}

// Validate checks that t can be written using the time type k.
func (k DateKind) Validate(t time.Time) error {
	switch k.Resolve(t) {
	case DateUTC:
		if !IsUTCYear(t) {
			return NewError(ErrInvalidUTCTime, "validate date", nil)
		}
	case DateGeneral:
		if !GeneralizedTime(t).IsValid() {
			return NewError(ErrUnknownDateFormat, "validate date", nil)
		}
	default:
		return NewError(ErrUnknownDateFormat, "validate date", nil)
	}
	return nil
}
