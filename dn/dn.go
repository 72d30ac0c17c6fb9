// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dn converts between the string representation of distinguished
// names defined in RFC 4514 and the X.509 Name structure. A Name is an
// [asn1.Array] of [asn1.AttributeSet] values in the order they appear on the
// wire, which is the reverse of the string order.
//
// Only single-valued relative distinguished names are supported.
package dn

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	ldapv3 "github.com/go-ldap/ldap/v3"

	"github.com/keetanetwork/asn1"
	"github.com/keetanetwork/asn1/oid"
)

// shortNames maps the attribute type keywords of RFC 4514, Section 3 to their
// object identifiers.
var shortNames = map[string]string{
	"CN":           "2.5.4.3",
	"C":            "2.5.4.6",
	"ST":           "2.5.4.8",
	"L":            "2.5.4.7",
	"O":            "2.5.4.10",
	"OU":           "2.5.4.11",
	"SERIALNUMBER": "2.5.4.5",
}

var keywords = func() map[string]string {
	m := make(map[string]string, len(shortNames))
	for k, v := range shortNames {
		m[v] = k
	}
	return m
}()

var errMultiValued = errors.New("multi-valued RDN")

// Parse parses the distinguished name s. Attribute types may be one of the
// keywords CN, C, ST, L, O, OU and SERIALNUMBER, a name registered in reg or a
// dotted-decimal object identifier. If reg is nil the [oid.Default] registry
// is used.
//
// Attribute values use the default string kind, so the encoder selects the
// most restrictive string type for each of them.
func Parse(s string, reg *oid.Registry) (asn1.Array, error) {
	if reg == nil {
		reg = oid.Default()
	}
	parsed, err := ldapv3.ParseDN(s)
	if err != nil {
		return nil, asn1.NewError(asn1.ErrMalformedData, "parse dn", err)
	}
	name := make(asn1.Array, 0, len(parsed.RDNs))
	for _, rdn := range slices.Backward(parsed.RDNs) {
		if len(rdn.Attributes) != 1 {
			return nil, asn1.NewError(asn1.ErrMalformedData, "parse dn", errMultiValued)
		}
		attr := rdn.Attributes[0]
		typ, err := attributeType(attr.Type, reg)
		if err != nil {
			return nil, err
		}
		name = append(name, asn1.AttributeSet{Name: typ, Value: attr.Value})
	}
	return name, nil
}

func attributeType(s string, reg *oid.Registry) (asn1.OID, error) {
	if dotted, ok := shortNames[strings.ToUpper(s)]; ok {
		id, err := asn1.ParseObjectIdentifier(dotted)
		if err != nil {
			return asn1.OID{}, err
		}
		return asn1.OID{Name: reg.Name(id)}, nil
	}
	id, err := reg.Resolve(s)
	if err != nil {
		return asn1.OID{}, err
	}
	return asn1.OID{Name: reg.Name(id)}, nil
}

// Format returns the RFC 4514 string of name. Every element of name must be
// an [asn1.AttributeSet]. Attribute types with a keyword are written using the
// keyword, all others in dotted-decimal form. If reg is nil the [oid.Default]
// registry is used.
func Format(name asn1.Array, reg *oid.Registry) (string, error) {
	if reg == nil {
		reg = oid.Default()
	}
	var sb strings.Builder
	for i, d := range slices.Backward(name) {
		set, ok := d.(asn1.AttributeSet)
		if !ok {
			return "", asn1.NewError(asn1.ErrUnknownObject, "format dn", fmt.Errorf("element %d is %T", i, d))
		}
		dotted, err := reg.Dotted(set.Name.Name)
		if err != nil {
			return "", err
		}
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		if k, ok := keywords[dotted]; ok {
			sb.WriteString(k)
		} else {
			sb.WriteString(dotted)
		}
		sb.WriteByte('=')
		escape(&sb, set.Value)
	}
	return sb.String(), nil
}

// escape writes the attribute value s to sb using the escaping rules of RFC
// 4514, Section 2.4.
func escape(sb *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == 0:
			sb.WriteString(`\00`)
			continue
		case strings.IndexByte(`"+,;<>\`, c) >= 0,
			c == '#' && i == 0,
			c == ' ' && (i == 0 || i == len(s)-1):
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
}
