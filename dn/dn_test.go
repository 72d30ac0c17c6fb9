// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dn

import (
	"encoding/hex"
	"testing"

	ldapv3 "github.com/go-ldap/ldap/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keetanetwork/asn1"
	"github.com/keetanetwork/asn1/ber"
	"github.com/keetanetwork/asn1/oid"
)

func set(name, value string) asn1.AttributeSet {
	return asn1.AttributeSet{Name: asn1.OID{Name: name}, Value: value}
}

func TestParse(t *testing.T) {
	tests := map[string]struct {
		s    string
		want asn1.Array
	}{
		"Empty":      {"", asn1.Array{}},
		"CommonName": {"CN=Alice", asn1.Array{set("commonName", "Alice")}},
		"Order": {"CN=Alice,O=Keeta,C=US", asn1.Array{
			set("2.5.4.6", "US"),
			set("2.5.4.10", "Keeta"),
			set("commonName", "Alice"),
		}},
		"Lowercase":  {"cn=x,serialNumber=42", asn1.Array{set("serialNumber", "42"), set("commonName", "x")}},
		"Registered": {"hash=abc", asn1.Array{set("hash", "abc")}},
		"Dotted":     {"2.5.4.3=Bob", asn1.Array{set("commonName", "Bob")}},
		"Unknown":    {"1.2.3.4=v", asn1.Array{set("1.2.3.4", "v")}},
		"Escaped":    {`CN=a\,b,OU=\#1`, asn1.Array{set("2.5.4.11", "#1"), set("commonName", "a,b")}},
		"Province":   {"ST=Berlin,L=Mitte", asn1.Array{set("2.5.4.7", "Mitte"), set("2.5.4.8", "Berlin")}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(tt.s, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_errors(t *testing.T) {
	tests := map[string]struct {
		s    string
		want asn1.ErrorKind
	}{
		"Syntax":      {"CN", asn1.ErrMalformedData},
		"MultiValued": {"CN=a+O=b", asn1.ErrMalformedData},
		"UnknownType": {"foo=bar", asn1.ErrUnknownOID},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(tt.s, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_registry(t *testing.T) {
	r, err := oid.NewRegistry(map[string]string{"organizationName": "2.5.4.10", "uid": "0.9.2342.19200300.100.1.1"})
	require.NoError(t, err)
	got, err := Parse("uid=jdoe,O=Keeta", r)
	require.NoError(t, err)
	assert.Equal(t, asn1.Array{set("organizationName", "Keeta"), set("uid", "jdoe")}, got)

	_, err = Parse("uid=jdoe", nil)
	assert.ErrorIs(t, err, asn1.ErrUnknownOID)
}

func TestParse_encode(t *testing.T) {
	name, err := Parse("CN=test", nil)
	require.NoError(t, err)
	got, err := ber.Marshal(name)
	require.NoError(t, err)
	assert.Equal(t, "300f310d300b0603550403130474657374", hex.EncodeToString(got))
}

func TestFormat(t *testing.T) {
	tests := map[string]struct {
		name asn1.Array
		want string
	}{
		"Empty":    {asn1.Array{}, ""},
		"Keywords": {asn1.Array{set("2.5.4.6", "US"), set("2.5.4.10", "Keeta"), set("commonName", "Alice")}, "CN=Alice,O=Keeta,C=US"},
		"Serial":   {asn1.Array{set("serialNumber", "42")}, "SERIALNUMBER=42"},
		"Dotted":   {asn1.Array{set("hash", "x")}, "1.3.6.1.4.1.8301.3.2.2.1.1=x"},
		"Special":  {asn1.Array{set("commonName", `a,b+c;d<e>f"g\h`)}, `CN=a\,b\+c\;d\<e\>f\"g\\h`},
		"Leading":  {asn1.Array{set("commonName", "#x y")}, `CN=\#x y`},
		"Space":    {asn1.Array{set("commonName", " x ")}, `CN=\ x\ `},
		"Nul":      {asn1.Array{set("commonName", "a\x00")}, `CN=a\00`},
		"UTF8":     {asn1.Array{set("commonName", "Jürgen")}, "CN=Jürgen"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Format(tt.name, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_errors(t *testing.T) {
	tests := map[string]struct {
		name asn1.Array
		want asn1.ErrorKind
	}{
		"NotSet":     {asn1.Array{asn1.String("CN=x")}, asn1.ErrUnknownObject},
		"UnknownOID": {asn1.Array{set("bogus", "x")}, asn1.ErrUnknownOID},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Format(tt.name, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFormat_roundTrip(t *testing.T) {
	// Formatted names are accepted by the LDAP parser and parse to the same
	// Name.
	values := []string{"Alice", "a,b", "#hash", `back\slash`, "multi+value", `"quoted"`, "Jürgen"}
	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			name := asn1.Array{set("2.5.4.6", "US"), set("commonName", v)}
			s, err := Format(name, nil)
			require.NoError(t, err)

			parsed, err := ldapv3.ParseDN(s)
			require.NoError(t, err)
			require.Len(t, parsed.RDNs, 2)
			assert.Equal(t, v, parsed.RDNs[0].Attributes[0].Value)

			back, err := Parse(s, nil)
			require.NoError(t, err)
			assert.Equal(t, name, back)
		})
	}
}

func TestFormat_decoded(t *testing.T) {
	data, err := hex.DecodeString("301c310b3009060355040613025553310d300b0603550403130474657374")
	require.NoError(t, err)
	d, err := ber.Unmarshal(data)
	require.NoError(t, err)
	name, ok := d.(asn1.Array)
	require.True(t, ok)
	s, err := Format(name, nil)
	require.NoError(t, err)
	assert.Equal(t, "CN=test,C=US", s)
}
