// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/keetanetwork/asn1"
	"github.com/keetanetwork/asn1/internal/vlq"
)

var (
	errIntegerEmpty    = errors.New("empty integer")
	errIntegerTooLarge = errors.New("integer too large for int64")
	errInvalidBoolean  = errors.New("boolean must be exactly one byte")
	errInvalidNull     = errors.New("null must be empty")
	errInvalidSegment  = errors.New("invalid segment in constructed string")
)

//region [UNIVERSAL 1] BOOLEAN

func parseBoolean(content []byte) (bool, error) {
	if len(content) != 1 {
		return false, errInvalidBoolean
	}
	return content[0] != 0, nil
}

//endregion

//region [UNIVERSAL 2] INTEGER

// trimInteger removes redundant leading sign octets from a two's complement
// integer encoding. BER requires minimal encodings but some encoders emit
// additional octets.
func trimInteger(content []byte) []byte {
	for len(content) > 1 &&
		(content[0] == 0x00 && content[1]&0x80 == 0 ||
			content[0] == 0xff && content[1]&0x80 != 0) {
		content = content[1:]
	}
	return content
}

// parseInt64 decodes a two's complement integer that fits into an int64.
func parseInt64(content []byte) (int64, error) {
	if len(content) == 0 {
		return 0, errIntegerEmpty
	}
	content = trimInteger(content)
	if len(content) > 8 {
		return 0, errIntegerTooLarge
	}
	var ret int64
	for _, b := range content {
		ret <<= 8
		ret |= int64(b)
	}
	// Shift up and down in order to sign extend the result.
	ret <<= 64 - uint(len(content))*8
	ret >>= 64 - uint(len(content))*8
	return ret, nil
}

var bigOne = big.NewInt(1)

// parseBigInt decodes a two's complement integer of arbitrary size.
func parseBigInt(content []byte) (*big.Int, error) {
	if len(content) == 0 {
		return nil, errIntegerEmpty
	}
	ret := new(big.Int)
	if content[0]&0x80 == 0x80 {
		// This is a negative number.
		notBytes := make([]byte, len(content))
		for i := range notBytes {
			notBytes[i] = ^content[i]
		}
		ret.SetBytes(notBytes)
		ret.Add(ret, bigOne)
		ret.Neg(ret)
		return ret, nil
	}
	ret.SetBytes(content)
	return ret, nil
}

//endregion

//region [UNIVERSAL 3] BIT STRING

func parseBitString(content []byte) (asn1.BitString, error) {
	if len(content) == 0 {
		return asn1.BitString{}, errors.New("missing unused bits octet")
	}
	s := asn1.BitString{Bytes: bytes.Clone(content[1:]), Unused: content[0]}
	if !s.IsValid() {
		return asn1.BitString{}, errors.New("invalid number of unused bits")
	}
	return s, nil
}

//endregion

//region [UNIVERSAL 6] OBJECT IDENTIFIER

// parseOID decodes the contents of an OBJECT IDENTIFIER. Empty contents decode
// to the empty identifier.
func parseOID(content []byte) (asn1.ObjectIdentifier, error) {
	if len(content) == 0 {
		return asn1.ObjectIdentifier{}, nil
	}
	r := bytes.NewReader(content)
	// The first sub-identifier packs the first two arcs.
	v, err := vlq.Read[uint](r)
	if err != nil {
		return nil, noEOF(err)
	}
	oid := make(asn1.ObjectIdentifier, 2, 2+len(content))
	if v < 80 {
		oid[0], oid[1] = v/40, v%40
	} else {
		oid[0], oid[1] = 2, v-80
	}
	for r.Len() > 0 {
		if v, err = vlq.Read[uint](r); err != nil {
			return nil, noEOF(err)
		}
		oid = append(oid, v)
	}
	return oid, nil
}

//endregion

//region [UNIVERSAL 23] UTCTime

func parseUTCTime(s string) (time.Time, error) {
	errInvalid := errors.New("invalid UTCTime " + s)
	if len(s) < 11 || len(s) > 17 {
		return time.Time{}, errInvalid
	}
	year := atoiN[int](s, 2)
	month := atoiN[time.Month](s[2:], 2)
	day := atoiN[int](s[4:], 2)
	hour := atoiN[int](s[6:], 2)
	minute := atoiN[int](s[8:], 2)
	s = s[10:]
	second := atoiN[int](s, 2)
	if second >= 0 {
		s = s[2:]
	} else {
		second = 0
	}
	loc := parseLocation(s)
	if loc == nil {
		return time.Time{}, errInvalid
	}

	// UTCTime only encodes times prior to 2050. See https://tools.ietf.org/html/rfc5280#section-4.1.2.5.1
	if year < 0 {
		return time.Time{}, errInvalid
	} else if year <= 49 {
		year += 2000
	} else {
		year += 1900
	}
	ret := time.Date(year, month, day, hour, minute, second, 0, loc)
	if ret.Year() != year || ret.Month() != month || ret.Day() != day || ret.Hour() != hour || ret.Minute() != minute || ret.Second() != second {
		return time.Time{}, errInvalid
	}
	return ret.UTC(), nil
}

func parseLocation(s string) *time.Location {
	if len(s) == 1 && s[0] == 'Z' {
		return time.UTC
	}
	if len(s) != 5 {
		return nil
	}
	if s[0] != '+' && s[0] != '-' {
		return nil
	}
	mul := 44 - int(s[0])
	locHour := atoiN[int](s[1:], 2)
	locMinute := atoiN[int](s[3:], 2)
	if locHour < 0 || locMinute < 0 {
		return nil
	}
	return time.FixedZone("", mul*(locHour*3600+locMinute*60))
}

func atoiN[T ~int | ~int64](s string, n int) (i T) {
	if len(s) < n {
		return -1
	}
	for j := 0; j < n; j++ {
		if s[j] < '0' || '9' < s[j] {
			return -1
		}
		i = i*10 + T(s[j]-'0')
	}
	return i
}

//endregion

//region [UNIVERSAL 24] GeneralizedTime

// parseGeneralizedTime parses the format YYYYMMDDhh[mm[ss]][(.|,)fff][Z|±hhmm].
// A missing time zone is interpreted as UTC.
func parseGeneralizedTime(s string) (time.Time, error) {
	errInvalid := errors.New("invalid GeneralizedTime " + s)
	if len(s) < 10 {
		return time.Time{}, errInvalid
	}
	year := atoiN[int](s, 4)
	month := atoiN[time.Month](s[4:], 2)
	day := atoiN[int](s[6:], 2)
	hour := atoiN[time.Duration](s[8:], 2)
	if year < 0 || hour < 0 || 23 < hour {
		return time.Time{}, errInvalid
	}
	s = s[10:]
	dur := hour * time.Hour
	unit := time.Hour // unit for fractional time
	if len(s) >= 2 && '0' <= s[0] && s[0] <= '9' {
		minute := atoiN[time.Duration](s, 2)
		if minute < 0 || 59 < minute {
			return time.Time{}, errInvalid
		}
		dur += minute * time.Minute
		unit = time.Minute
		s = s[2:]
	}
	if len(s) >= 2 && '0' <= s[0] && s[0] <= '9' {
		second := atoiN[time.Duration](s, 2)
		if second < 0 || 59 < second {
			return time.Time{}, errInvalid
		}
		unit = time.Second
		dur += second * time.Second
		s = s[2:]
	}
	if len(s) > 0 && (s[0] == '.' || s[0] == ',') {
		i := 1
		for ; i < len(s); i++ {
			if s[i] < '0' || '9' < s[i] {
				break
			}
			unit /= 10
			dur += time.Duration(s[i]-'0') * unit
		}
		if i == 1 {
			return time.Time{}, errInvalid
		}
		s = s[i:]
	}
	loc := time.UTC
	if len(s) > 0 {
		if loc = parseLocation(s); loc == nil {
			return time.Time{}, errInvalid
		}
	}
	ret := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if ret.Year() != year || ret.Month() != month || ret.Day() != day {
		return time.Time{}, errInvalid
	}
	return ret.Add(dur).UTC(), nil
}

//endregion

//region Character strings

// decodeText converts the contents of a string type with universal tag number
// n into a Go string. BMPString is decoded from UTF-16 and UniversalString
// from UTF-32. All other string types are taken byte-for-byte.
func decodeText(n uint, content []byte) (string, error) {
	switch n {
	case asn1.TagBMPString:
		if len(content)%2 != 0 {
			return "", errors.New("length of BMPString is no multiple of 2")
		}
		units := make([]uint16, len(content)/2)
		for i := range units {
			units[i] = uint16(content[2*i])<<8 | uint16(content[2*i+1])
		}
		return string(utf16.Decode(units)), nil
	case asn1.TagUniversalString:
		if len(content)%4 != 0 {
			return "", errors.New("length of UniversalString is no multiple of 4")
		}
		var sb strings.Builder
		sb.Grow(len(content) / 4)
		for i := 0; i < len(content); i += 4 {
			x := rune(content[i])<<24 | rune(content[i+1])<<16 | rune(content[i+2])<<8 | rune(content[i+3])
			if !utf8.ValidRune(x) {
				return "", errors.New("UniversalString contains invalid characters")
			}
			sb.WriteRune(x)
		}
		return sb.String(), nil
	default:
		return string(content), nil
	}
}

// flatten returns the contents of a string-like element. Constructed encodings
// are concatenated from their segments. Segments must be primitive or
// constructed OCTET STRING values or use the tag of the surrounding element.
func flatten(e element, depth int) ([]byte, error) {
	if !e.Constructed {
		return e.content, nil
	}
	if depth <= 0 {
		return nil, asn1.NewError(asn1.ErrDepthExceeded, "flatten string", nil)
	}
	segments, err := e.children(depth)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	for _, s := range segments {
		if s.Tag != e.Tag && s.Tag != asn1.Universal(asn1.TagOctetString) {
			return nil, syntaxError("flatten string", s.offset, e.Header, errInvalidSegment)
		}
		b, err := flatten(s, depth-1)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	return buf.Bytes(), nil
}

//endregion
