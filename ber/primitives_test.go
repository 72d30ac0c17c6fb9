// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"errors"
	"math/big"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keetanetwork/asn1"
)

func TestParseBoolean(t *testing.T) {
	tests := map[string]struct {
		data    []byte
		want    bool
		wantErr bool
	}{
		"True":    {[]byte{0xFF}, true, false},
		"False":   {[]byte{0x00}, false, false},
		"NonZero": {[]byte{0x01}, true, false},
		"Empty":   {[]byte{}, false, true},
		"TooLong": {[]byte{0x00, 0x00}, false, true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseBoolean(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBoolean() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseBoolean() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseInt64(t *testing.T) {
	tests := map[string]struct {
		data    []byte
		want    int64
		wantErr error
	}{
		"Zero":           {[]byte{0x00}, 0, nil},
		"Positive":       {[]byte{0x2A}, 42, nil},
		"PositivePadded": {[]byte{0x00, 0x80}, 128, nil},
		"Negative":       {[]byte{0xFF, 0x00, 0x01}, -65535, nil},
		"MinusOne":       {[]byte{0xFF}, -1, nil},
		"Redundant":      {[]byte{0x00, 0x00, 0x01}, 1, nil},
		"RedundantNeg":   {[]byte{0xFF, 0xFF, 0x80}, -128, nil},
		"MaxInt64":       {[]byte{0x7F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, 1<<63 - 1, nil},
		"MinInt64":       {[]byte{0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, -1 << 63, nil},
		"Empty":          {[]byte{}, 0, errIntegerEmpty},
		"TooLarge":       {[]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09}, 0, errIntegerTooLarge},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseInt64(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("parseInt64() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseInt64() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseBigInt(t *testing.T) {
	tests := map[string]struct {
		data []byte
		want string
	}{
		"Small":    {[]byte{0x2A}, "42"},
		"Negative": {[]byte{0xFF, 0x00, 0x01}, "-65535"},
		"Large":    {[]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09}, "18591708106338011145"},
		"LargeNeg": {[]byte{0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, "-2361183241434822606848"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseBigInt(tt.data)
			require.NoError(t, err)
			want, _ := new(big.Int).SetString(tt.want, 10)
			assert.Zero(t, want.Cmp(got), "parseBigInt() = %v, want %v", got, want)
		})
	}
	_, err := parseBigInt(nil)
	assert.ErrorIs(t, err, errIntegerEmpty)
}

func TestParseBitString(t *testing.T) {
	tests := map[string]struct {
		data    []byte
		want    asn1.BitString
		wantErr bool
	}{
		"Empty":           {[]byte{0x00}, asn1.BitString{Bytes: []byte{}}, false},
		"Aligned":         {[]byte{0x00, 0x0A, 0x10}, asn1.BitString{Bytes: []byte{0x0A, 0x10}}, false},
		"Unused":          {[]byte{0x04, 0xF0}, asn1.BitString{Bytes: []byte{0xF0}, Unused: 4}, false},
		"Missing":         {[]byte{}, asn1.BitString{}, true},
		"TooManyUnused":   {[]byte{0x08, 0xFF}, asn1.BitString{}, true},
		"EmptyWithUnused": {[]byte{0x01}, asn1.BitString{}, true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseBitString(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBitString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Unused != tt.want.Unused || !slices.Equal(got.Bytes, tt.want.Bytes) {
				t.Errorf("parseBitString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseOID(t *testing.T) {
	tests := map[string]struct {
		data    []byte
		want    asn1.ObjectIdentifier
		wantErr bool
	}{
		"Empty":      {[]byte{}, asn1.ObjectIdentifier{}, false},
		"RSA":        {[]byte{0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D}, asn1.ObjectIdentifier{1, 2, 840, 113549}, false},
		"FirstArc0":  {[]byte{0x27}, asn1.ObjectIdentifier{0, 39}, false},
		"FirstArc2":  {[]byte{0x88, 0x37, 0x03}, asn1.ObjectIdentifier{2, 999, 3}, false},
		"SHA256":     {[]byte{0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01}, asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}, false},
		"NonMinimal": {[]byte{0x2A, 0x80, 0x01}, nil, true},
		"Truncated":  {[]byte{0x2A, 0x86}, nil, true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseOID(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseOID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseOID() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppendOID(t *testing.T) {
	for _, data := range [][]byte{
		{},
		{0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D},
		{0x88, 0x37, 0x03},
		{0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x08},
	} {
		id, err := parseOID(data)
		require.NoError(t, err)
		assert.Equal(t, data, appendOID([]byte{}, id), "appendOID(%v)", id)
	}
}

func TestParseUTCTime(t *testing.T) {
	tests := map[string]struct {
		s       string
		want    time.Time
		wantErr bool
	}{
		"Full":        {"221103012958Z", time.Date(2022, 11, 3, 1, 29, 58, 0, time.UTC), false},
		"NoSeconds":   {"9912312359Z", time.Date(1999, 12, 31, 23, 59, 0, 0, time.UTC), false},
		"Offset":      {"221103012958+0100", time.Date(2022, 11, 3, 0, 29, 58, 0, time.UTC), false},
		"Year1950":    {"500101000000Z", time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC), false},
		"Year2049":    {"491231235959Z", time.Date(2049, 12, 31, 23, 59, 59, 0, time.UTC), false},
		"InvalidDate": {"221303012958Z", time.Time{}, true},
		"NoZone":      {"221103012958", time.Time{}, true},
		"Short":       {"2211030129", time.Time{}, true},
		"Garbage":     {"hello world!!", time.Time{}, true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseUTCTime(tt.s)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseUTCTime() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseUTCTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseGeneralizedTime(t *testing.T) {
	tests := map[string]struct {
		s       string
		want    time.Time
		wantErr bool
	}{
		"Full":         {"20220926100000Z", time.Date(2022, 9, 26, 10, 0, 0, 0, time.UTC), false},
		"Milliseconds": {"20220622181800.210Z", time.Date(2022, 6, 22, 18, 18, 0, 210e6, time.UTC), false},
		"Comma":        {"20220926100000,5Z", time.Date(2022, 9, 26, 10, 0, 0, 500e6, time.UTC), false},
		"HourOnly":     {"2022092610", time.Date(2022, 9, 26, 10, 0, 0, 0, time.UTC), false},
		"FracHour":     {"2022092610.5Z", time.Date(2022, 9, 26, 10, 30, 0, 0, time.UTC), false},
		"NoZone":       {"20220926100000", time.Date(2022, 9, 26, 10, 0, 0, 0, time.UTC), false},
		"Offset":       {"20220926100000+0200", time.Date(2022, 9, 26, 8, 0, 0, 0, time.UTC), false},
		"Year9999":     {"99991231235959.999Z", time.Date(9999, 12, 31, 23, 59, 59, 999e6, time.UTC), false},
		"EmptyFrac":    {"20220926100000.Z", time.Time{}, true},
		"InvalidHour":  {"2022092624Z", time.Time{}, true},
		"InvalidDay":   {"20220931100000Z", time.Time{}, true},
		"BadZone":      {"20220926100000+02", time.Time{}, true},
		"Short":        {"20220926", time.Time{}, true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseGeneralizedTime(tt.s)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseGeneralizedTime() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseGeneralizedTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeText(t *testing.T) {
	tests := map[string]struct {
		tag     uint
		data    []byte
		want    string
		wantErr bool
	}{
		"UTF8":             {asn1.TagUTF8String, []byte("Grüße"), "Grüße", false},
		"Printable":        {asn1.TagPrintableString, []byte("test"), "test", false},
		"BMP":              {asn1.TagBMPString, []byte{0x00, 0x41, 0x00, 0xFC}, "Aü", false},
		"BMPSurrogates":    {asn1.TagBMPString, []byte{0xD8, 0x3D, 0xDE, 0x00}, "😀", false},
		"BMPOdd":           {asn1.TagBMPString, []byte{0x00}, "", true},
		"Universal":        {asn1.TagUniversalString, []byte{0x00, 0x00, 0x00, 0x41, 0x00, 0x01, 0xF6, 0x00}, "A😀", false},
		"UniversalInvalid": {asn1.TagUniversalString, []byte{0x00, 0x11, 0x00, 0x00}, "", true},
		"UniversalOdd":     {asn1.TagUniversalString, []byte{0x00, 0x00, 0x41}, "", true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := decodeText(tt.tag, tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("decodeText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	tests := map[string]struct {
		data    []byte
		depth   int
		want    []byte
		wantErr error
	}{
		"Primitive":   {[]byte{0x04, 0x02, 0x01, 0x02}, DefaultMaxDepth, []byte{0x01, 0x02}, nil},
		"Constructed": {[]byte{0x24, 0x80, 0x04, 0x02, 0x01, 0x02, 0x04, 0x01, 0x03, 0x00, 0x00}, DefaultMaxDepth, []byte{0x01, 0x02, 0x03}, nil},
		"Nested":      {[]byte{0x24, 0x08, 0x24, 0x03, 0x04, 0x01, 0x01, 0x04, 0x01, 0x02}, DefaultMaxDepth, []byte{0x01, 0x02}, nil},
		"SameTag":     {[]byte{0x33, 0x06, 0x13, 0x01, 0x61, 0x13, 0x01, 0x62}, DefaultMaxDepth, []byte("ab"), nil},
		"BadSegment":  {[]byte{0x24, 0x03, 0x02, 0x01, 0x01}, DefaultMaxDepth, nil, errInvalidSegment},
		"TooDeep":     {[]byte{0x24, 0x05, 0x24, 0x03, 0x04, 0x01, 0x01}, 1, nil, asn1.ErrDepthExceeded},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e, _, err := readElement(tt.data, 0, DefaultMaxDepth)
			require.NoError(t, err)
			got, err := flatten(e, tt.depth)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
