// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asn1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitString(t *testing.T) {
	tests := map[string]struct {
		s     BitString
		valid bool
		len   int
	}{
		"Empty":       {BitString{}, true, 0},
		"EmptyPadded": {BitString{Unused: 1}, false, -1},
		"TooLarge":    {BitString{Bytes: []byte{0xff}, Unused: 8}, false, 0},
		"Full":        {BitString{Bytes: []byte{0x0A, 0x10}}, true, 16},
		"Padded":      {BitString{Bytes: []byte{0xA0, 0xC0}, Unused: 6}, true, 10},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.s.IsValid())
			if tt.valid {
				assert.Equal(t, tt.len, tt.s.Len())
			}
		})
	}
}

func TestParseObjectIdentifier(t *testing.T) {
	tests := map[string]struct {
		s       string
		want    ObjectIdentifier
		wantErr bool
	}{
		"SHA256":       {"2.16.840.1.101.3.4.2.1", ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}, false},
		"Short":        {"1.3", ObjectIdentifier{1, 3}, false},
		"LargeSecond":  {"2.999.3", ObjectIdentifier{2, 999, 3}, false},
		"NoDots":       {"sha256", nil, true},
		"Empty":        {"", nil, true},
		"EmptyArc":     {"1..2", nil, true},
		"TrailingDot":  {"1.2.", nil, true},
		"LeadingZero":  {"1.02", nil, true},
		"Letters":      {"1.2.a", nil, true},
		"BadFirstArc":  {"3.1", nil, true},
		"BadSecondArc": {"1.40", nil, true},
		"Negative":     {"1.-2", nil, true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseObjectIdentifier(tt.s)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "ParseObjectIdentifier() = %v, want %v", got, tt.want)
			assert.Equal(t, tt.s, got.String())
		})
	}
}

func TestObjectIdentifier_String(t *testing.T) {
	assert.Empty(t, ObjectIdentifier{}.String())
	assert.True(t, ObjectIdentifier{}.IsValid())
}

func TestIsPrintable(t *testing.T) {
	tests := map[string]struct {
		s         string
		printable bool
		ia5       bool
	}{
		"Empty":       {"", true, true},
		"Letters":     {"Hello World", true, true},
		"Punctuation": {"a'b(c)d+e,f-g.h/i:j=k?l", true, true},
		"Asterisk":    {"*.example.com", false, true},
		"At":          {"user@example.com", false, true},
		"Ampersand":   {"A & B", false, true},
		"Unicode":     {"Grüße", false, false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.printable, IsPrintable(tt.s), "IsPrintable()")
			assert.Equal(t, tt.ia5, IsIA5(tt.s), "IsIA5()")
		})
	}
}

func TestUTCTime_String(t *testing.T) {
	tests := map[string]struct {
		t    time.Time
		want string
	}{
		"EarlyUTC":       {time.Date(1962, 7, 23, 16, 12, 3, 0, time.UTC), "620723161203Z"},
		"LateUTC":        {time.Date(2048, 7, 23, 8, 12, 0, 0, time.UTC), "480723081200Z"},
		"PositiveOffset": {time.Date(2048, 7, 23, 23, 12, 0, 0, time.FixedZone("", 3*60*60)), "480723201200Z"},
		"NegativeOffset": {time.Date(2048, 7, 23, 2, 12, 0, 0, time.FixedZone("", -(5*60+30)*60)), "480723074200Z"},
		"DropsFraction":  {time.Date(2022, 9, 26, 10, 0, 0, 999000000, time.UTC), "220926100000Z"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, UTCTime(tt.t).String())
		})
	}
}

func TestUTCTime_IsValid(t *testing.T) {
	tests := map[string]struct {
		year int
		want bool
	}{
		"1949": {1949, false},
		"1950": {1950, true},
		"2049": {2049, true},
		"2050": {2050, false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, UTCTime(time.Date(tt.year, 6, 1, 0, 0, 0, 0, time.UTC)).IsValid())
		})
	}
}

func TestGeneralizedTime_String(t *testing.T) {
	tests := map[string]struct {
		t    time.Time
		want string
	}{
		"Example":       {time.Date(1985, 11, 06, 21, 06, 27, 300000000, time.UTC), "19851106210627.300Z"},
		"Fractional":    {time.Date(1985, 11, 06, 21, 06, 27, 30000000, time.UTC), "19851106210627.030Z"},
		"NoFraction":    {time.Date(2022, 9, 26, 10, 0, 0, 0, time.UTC), "20220926100000.000Z"},
		"Truncated":     {time.Date(2050, 1, 1, 0, 0, 0, 123999999, time.UTC), "20500101000000.123Z"},
		"ExampleOffset": {time.Date(1985, 11, 06, 21, 06, 27, 300000000, time.FixedZone("", -5*3600)), "19851107020627.300Z"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, GeneralizedTime(tt.t).String())
		})
	}
}

func TestItoaN(t *testing.T) {
	tests := map[string]struct {
		i    int
		n    int
		want string
	}{
		"2-digit":     {23, 2, "23"},
		"2-digit-pad": {7, 2, "07"},
		"3-digit-pad": {30, 3, "030"},
		"4-digit":     {1023, 4, "1023"},
		"4-digit-pad": {18, 4, "0018"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, itoaN(tt.i, tt.n))
		})
	}
}
