// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package oid maps object identifier names to their dotted-decimal form and
// back. A [Registry] is immutable once built and safe for concurrent use.
//
// Every registry contains the built-in names listed below plus the empty name,
// which maps to the zero-length object identifier:
//
//	sha256              2.16.840.1.101.3.4.2.1
//	sha3-256            2.16.840.1.101.3.4.2.8
//	sha3-256WithEcDSA   2.16.840.1.101.3.4.3.10
//	sha256WithEcDSA     1.2.840.10045.4.3.2
//	ecdsa               1.2.840.10045.2.1
//	ed25519             1.3.101.112
//	secp256k1           1.3.132.0.10
//	account             2.23.42.2.7.11
//	serialNumber        2.5.4.5
//	member              2.5.4.31
//	commonName          2.5.4.3
//	hash                1.3.6.1.4.1.8301.3.2.2.1.1
//	hashData            2.16.840.1.101.3.3.1.3
//
// Additional names can be supplied through [NewRegistry] or loaded from YAML
// with [LoadRegistry].
package oid

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/keetanetwork/asn1"
)

var builtin = map[string]string{
	"sha256":            "2.16.840.1.101.3.4.2.1",
	"sha3-256":          "2.16.840.1.101.3.4.2.8",
	"sha3-256WithEcDSA": "2.16.840.1.101.3.4.3.10",
	"sha256WithEcDSA":   "1.2.840.10045.4.3.2",
	"ecdsa":             "1.2.840.10045.2.1",
	"ed25519":           "1.3.101.112",
	"secp256k1":         "1.3.132.0.10",
	"account":           "2.23.42.2.7.11",
	"serialNumber":      "2.5.4.5",
	"member":            "2.5.4.31",
	"commonName":        "2.5.4.3",
	"hash":              "1.3.6.1.4.1.8301.3.2.2.1.1",
	"hashData":          "2.16.840.1.101.3.3.1.3",
}

var defaultRegistry = func() *Registry {
	r, err := NewRegistry(nil)
	if err != nil {
		panic(err)
	}
	return r
}()

// Registry is a bidirectional mapping between names and object identifiers.
type Registry struct {
	byName   map[string]asn1.ObjectIdentifier
	byDotted map[string]string
}

// Default returns the registry containing only the built-in names.
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry returns a registry containing the built-in names and the
// entries of extra, which maps names to dotted-decimal identifiers. Names must
// be non-empty and must not contain dots. A name or identifier may only be
// registered once, unless both sides of the entry are identical to an existing
// entry.
func NewRegistry(extra map[string]string) (*Registry, error) {
	r := &Registry{
		byName:   map[string]asn1.ObjectIdentifier{"": {}},
		byDotted: map[string]string{"": ""},
	}
	for _, name := range slices.Sorted(maps.Keys(builtin)) {
		if err := r.add(name, builtin[name]); err != nil {
			return nil, err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(extra)) {
		if err := r.add(name, extra[name]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(name, dotted string) error {
	if name == "" || strings.Contains(name, ".") {
		return fmt.Errorf("oid: invalid name %q", name)
	}
	id, err := asn1.ParseObjectIdentifier(dotted)
	if err != nil {
		return fmt.Errorf("oid: %s: %w", name, err)
	}
	if prev, ok := r.byName[name]; ok {
		if prev.Equal(id) {
			return nil
		}
		return fmt.Errorf("oid: %s is already registered as %s", name, prev)
	}
	if prev, ok := r.byDotted[dotted]; ok {
		return fmt.Errorf("oid: %s is already registered as %s", dotted, prev)
	}
	r.byName[name] = id
	r.byDotted[dotted] = name
	return nil
}

// file is the YAML document layout read by LoadRegistry.
type file struct {
	OIDs []struct {
		Name string `yaml:"name"`
		OID  string `yaml:"oid"`
	} `yaml:"oids"`
}

// LoadRegistry reads additional names from a YAML document and returns a
// registry containing them and the built-in names. The document has the
// following layout:
//
//	oids:
//	  - name: emailAddress
//	    oid: 1.2.840.113549.1.9.1
func LoadRegistry(rd io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("oid: load registry: %w", err)
	}
	extra := make(map[string]string, len(f.OIDs))
	for _, e := range f.OIDs {
		if prev, ok := extra[e.Name]; ok && prev != e.OID {
			return nil, fmt.Errorf("oid: %s is listed twice", e.Name)
		}
		extra[e.Name] = e.OID
	}
	return NewRegistry(extra)
}

// Resolve returns the object identifier for name. Registered names resolve to
// their identifier. Any other name containing a dot is parsed as a
// dotted-decimal identifier. All other names fail with
// [asn1.ErrUnknownOID].
func (r *Registry) Resolve(name string) (asn1.ObjectIdentifier, error) {
	if id, ok := r.byName[name]; ok {
		return slices.Clone(id), nil
	}
	if strings.Contains(name, ".") {
		if id, err := asn1.ParseObjectIdentifier(name); err == nil {
			return id, nil
		}
	}
	return nil, asn1.NewError(asn1.ErrUnknownOID, "resolve", errors.New("no object identifier named "+strconv.Quote(name)))
}

// Dotted returns the dotted-decimal form of name. It fails like [Registry.Resolve].
func (r *Registry) Dotted(name string) (string, error) {
	id, err := r.Resolve(name)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Name returns the registered name of id, or its dotted-decimal form if id is
// not registered.
func (r *Registry) Name(id asn1.ObjectIdentifier) string {
	dotted := id.String()
	if name, ok := r.byDotted[dotted]; ok {
		return name
	}
	return dotted
}

// Names returns the registered names in sorted order. The empty name is not
// included.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName)-1)
	for name := range r.byName {
		if name != "" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Resolve resolves name using the [Default] registry.
func Resolve(name string) (asn1.ObjectIdentifier, error) {
	return defaultRegistry.Resolve(name)
}

// Dotted returns the dotted-decimal form of name using the [Default] registry.
func Dotted(name string) (string, error) {
	return defaultRegistry.Dotted(name)
}

// Name returns the name of id using the [Default] registry.
func Name(id asn1.ObjectIdentifier) string {
	return defaultRegistry.Name(id)
}
