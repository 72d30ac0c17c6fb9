// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asn1

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
	"unsafe"
)

//region [UNIVERSAL 3] BIT STRING

// BitString implements the ASN.1 BIT STRING type. A bit string is padded up to
// the nearest byte in memory and the number of unused trailing bits in the
// last byte is recorded. Padding bits will be encoded and decoded as zero
// bits.
//
// See also section 22 of Rec. ITU-T X.680.
type BitString struct {
	Bytes  []byte // bits packed into bytes.
	Unused uint8  // number of padding bits in the last byte.
}

// IsValid reports whether the number of unused bits is valid for s. At most 7
// bits can be unused and an empty bit string cannot have unused bits.
func (s BitString) IsValid() bool {
	return s.Unused <= 7 && (len(s.Bytes) > 0 || s.Unused == 0)
}

// Len returns the number of bits in s.
func (s BitString) Len() int {
	return len(s.Bytes)*8 - int(s.Unused)
}

//endregion

//region [UNIVERSAL 6] OBJECT IDENTIFIER

// An ObjectIdentifier represents an ASN.1 OBJECT IDENTIFIER. The semantics of
// an object identifier are specified in [Rec. ITU-T X.660]. The zero-length
// identifier is permitted. It has the empty string as its dotted form.
//
// See also section 32 of Rec. ITU-T X.680.
//
// [Rec. ITU-T X.660]: https://www.itu.int/rec/T-REC-X.660
type ObjectIdentifier []uint

var errInvalidOID = errors.New("invalid object identifier")

// ParseObjectIdentifier parses the dot-separated notation of an object
// identifier. At least two arcs are required. The first arc must be 0, 1 or 2
// and the second arc must be below 40 unless the first arc is 2.
func ParseObjectIdentifier(s string) (ObjectIdentifier, error) {
	if !strings.Contains(s, ".") {
		return nil, errInvalidOID
	}
	parts := strings.Split(s, ".")
	oid := make(ObjectIdentifier, len(parts))
	for i, p := range parts {
		if p == "" || (len(p) > 1 && p[0] == '0') {
			return nil, errInvalidOID
		}
		for j := 0; j < len(p); j++ {
			if p[j] < '0' || '9' < p[j] {
				return nil, errInvalidOID
			}
		}
		v, err := strconv.ParseUint(p, 10, strconv.IntSize)
		if err != nil {
			return nil, errInvalidOID
		}
		oid[i] = uint(v)
	}
	if !oid.IsValid() {
		return nil, errInvalidOID
	}
	return oid, nil
}

// IsValid reports whether oid can be encoded. The empty identifier is valid.
func (oid ObjectIdentifier) IsValid() bool {
	if len(oid) == 0 {
		return true
	}
	if len(oid) < 2 || oid[0] > 2 {
		return false
	}
	return oid[0] == 2 || oid[1] < 40
}

// Equal reports whether oid and other represent the same identifier.
func (oid ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	return slices.Equal(oid, other)
}

// String returns the dot-separated notation of oid.
func (oid ObjectIdentifier) String() string {
	var s strings.Builder
	s.Grow(32)

	buf := make([]byte, 0, 19)
	for i, v := range oid {
		if i > 0 {
			s.WriteByte('.')
		}
		s.Write(strconv.AppendUint(buf, uint64(v), 10))
	}

	return s.String()
}

//endregion

//region [UNIVERSAL 19] PrintableString

// IsPrintable reports whether s consists only of characters of the ASN.1
// PrintableString set:
//
//	A-Z	// upper case letters
//	a-z	// lower case letters
//	0-9	// digits
//	 	// space
//	'	// apostrophe
//	()	// Parenthesis
//	+-/	// plus, hyphen, solidus
//	.,:	// fill stop, comma, colon
//	=	// equals sign
//	?	// question mark
//
// See also section 41 of Rec. ITU-T X.680.
func IsPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isPrintable(s[i]) {
			return false
		}
	}
	return true
}

// isPrintable reports whether the given b is in the ASN.1 PrintableString set.
func isPrintable(b byte) bool {
	return 'a' <= b && b <= 'z' ||
		'A' <= b && b <= 'Z' ||
		'0' <= b && b <= '9' ||
		'\'' <= b && b <= ')' ||
		'+' <= b && b <= '/' ||
		b == ' ' ||
		b == ':' ||
		b == '=' ||
		b == '?'
}

//endregion

//region [UNIVERSAL 22] IA5String

// IsIA5 reports whether the contents of s consist only of ASCII characters.
func IsIA5(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

//endregion

//region [UNIVERSAL 23] UTCTime

// UTCTime represents the corresponding ASN.1 type. Only dates between
// 1950 and 2049 can be represented by this type. The precision is one
// second.
//
// See also section 47 of Rec. ITU-T X.680.
type UTCTime time.Time

// IsValid reports whether the year of t is between 1950 and 2049.
func (t UTCTime) IsValid() bool {
	return IsUTCYear(time.Time(t))
}

// IsUTCYear reports whether the year of t, in UTC, is between 1950 and 2049.
func IsUTCYear(t time.Time) bool {
	year := t.UTC().Year()
	return year >= 1950 && year < 2050
}

// String returns the time of t in the format YYMMDDhhmmssZ. The time is
// converted to UTC first.
func (t UTCTime) String() string {
	tt := time.Time(t).UTC()
	b := strings.Builder{}
	b.Grow(13)
	b.WriteString(itoaN(tt.Year()%100, 2))
	b.WriteString(itoaN(tt.Month(), 2))
	b.WriteString(itoaN(tt.Day(), 2))
	b.WriteString(itoaN(tt.Hour(), 2))
	b.WriteString(itoaN(tt.Minute(), 2))
	b.WriteString(itoaN(tt.Second(), 2))
	b.WriteByte('Z')
	return b.String()
}

// itoaN returns the base 10 string representation of the absolute value of i,
// truncated or zero padded to exactly n digits.
func itoaN[T ~int](i T, n int) string {
	if i < 0 {
		i = -i
	}
	bs := make([]byte, n)
	for ; n > 0; n-- {
		bs[n-1] = '0' + byte(i%10)
		i /= 10
	}
	return unsafe.String(unsafe.SliceData(bs), len(bs))
}

//endregion

//region [UNIVERSAL 24] GeneralizedTime

// GeneralizedTime represents the corresponding ASN.1 type. This type can
// represent dates between years 1 and 9999. The precision is one millisecond.
//
// See also section 46 of Rec. ITU-T X.680.
type GeneralizedTime time.Time

// IsValid reports if the year of t is between 1 and 9999.
func (t GeneralizedTime) IsValid() bool {
	year := time.Time(t).UTC().Year()
	return year >= 1 && year <= 9999
}

// String returns the time of t in the format YYYYMMDDhhmmss.fffZ. The time is
// converted to UTC first. Milliseconds are always present.
func (t GeneralizedTime) String() string {
	tt := time.Time(t).UTC()
	b := strings.Builder{}
	b.Grow(19)
	b.WriteString(itoaN(tt.Year()%10000, 4))
	b.WriteString(itoaN(tt.Month(), 2))
	b.WriteString(itoaN(tt.Day(), 2))
	b.WriteString(itoaN(tt.Hour(), 2))
	b.WriteString(itoaN(tt.Minute(), 2))
	b.WriteString(itoaN(tt.Second(), 2))
	b.WriteByte('.')
	b.WriteString(itoaN(tt.Nanosecond()/int(time.Millisecond), 3))
	b.WriteByte('Z')
	return b.String()
}

//endregion
