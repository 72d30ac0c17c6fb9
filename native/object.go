// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package native

import (
	"bytes"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/keetanetwork/asn1"
)

var stringKindNames = map[asn1.StringKind]string{
	asn1.StringPrintable: "printable",
	asn1.StringIA5:       "ia5",
	asn1.StringUTF8:      "utf8",
}

var dateKindNames = map[asn1.DateKind]string{
	asn1.DateUTC:     "utc",
	asn1.DateGeneral: "general",
}

var contextKindNames = map[asn1.ContextKind]string{
	asn1.ContextExplicit: "explicit",
	asn1.ContextImplicit: "implicit",
}

// lookupKind returns the key of names whose value is s. The empty string and
// "default" map to the zero kind.
func lookupKind[K comparable](names map[K]string, s string) (K, bool) {
	var zero K
	if s == "" || s == "default" {
		return zero, true
	}
	for k, name := range names {
		if name == s {
			return k, true
		}
	}
	return zero, false
}

// fieldError reports a missing or mistyped key of an object map.
func fieldError(typ, key string, v any) error {
	if v == nil {
		return asn1.NewError(asn1.ErrUnknownFieldProperty, "convert "+typ, fmt.Errorf("missing %q", key))
	}
	return asn1.NewError(asn1.ErrUnknownFieldProperty, "convert "+typ, fmt.Errorf("%q has unexpected type %T", key, v))
}

func stringField(m map[string]any, typ, key string, optional bool) (string, error) {
	v, ok := m[key]
	if !ok && optional {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fieldError(typ, key, v)
	}
	return s, nil
}

func intField(m map[string]any, typ, key string, optional bool) (int64, error) {
	v, ok := m[key]
	if !ok && optional {
		return 0, nil
	}
	switch d := fromHostInteger(v).(type) {
	case asn1.Integer:
		return int64(d), nil
	case asn1.BigInt:
		if d.IsInt64() {
			return d.Int64(), nil
		}
		return 0, asn1.NewError(asn1.ErrUnknownFieldProperty, "convert "+typ, fmt.Errorf("%q out of range", key))
	}
	return 0, fieldError(typ, key, v)
}

// fromHostInteger returns the Integer or BigInt for any Go integer value and
// nil for all other values.
func fromHostInteger(v any) asn1.Data {
	switch v := v.(type) {
	case int:
		return fromInteger(v)
	case int8:
		return fromInteger(v)
	case int16:
		return fromInteger(v)
	case int32:
		return fromInteger(v)
	case int64:
		return fromInteger(v)
	case uint:
		return fromInteger(v)
	case uint8:
		return fromInteger(v)
	case uint16:
		return fromInteger(v)
	case uint32:
		return fromInteger(v)
	case uint64:
		return fromInteger(v)
	case *big.Int:
		if v == nil {
			return nil
		}
		return asn1.NewBigInt(v)
	}
	return nil
}

// toObject converts an object map to the object named by its "type" key.
func (c *config) toObject(m map[string]any, depth int) (asn1.Data, error) {
	typ, ok := m[KeyType].(string)
	if !ok {
		return nil, asn1.NewError(asn1.ErrUnknownObject, "convert object", fmt.Errorf("missing %q discriminator", KeyType))
	}
	switch typ {
	case TypeOID:
		return c.toOID(m)
	case TypeSet:
		return c.toAttributeSet(m)
	case TypeBitString:
		return toBitString(m)
	case TypeContext:
		return c.toContext(m, depth)
	case TypeString:
		return toStringObject(m)
	case TypeDate:
		return toDateObject(m)
	default:
		return nil, asn1.NewError(asn1.ErrUnknownFieldProperty, "convert object", fmt.Errorf("unknown object type %q", typ))
	}
}

func (c *config) toOID(m map[string]any) (asn1.OID, error) {
	name, err := stringField(m, TypeOID, KeyOID, false)
	if err != nil {
		return asn1.OID{}, err
	}
	if _, err := c.registry.Resolve(name); err != nil {
		return asn1.OID{}, err
	}
	return asn1.OID{Name: name}, nil
}

func (c *config) toAttributeSet(m map[string]any) (asn1.AttributeSet, error) {
	var name asn1.OID
	switch v := m[KeyName].(type) {
	case map[string]any:
		if typ, _ := v[KeyType].(string); typ != TypeOID {
			return asn1.AttributeSet{}, fieldError(TypeSet, KeyName, v)
		}
		o, err := c.toOID(v)
		if err != nil {
			return asn1.AttributeSet{}, err
		}
		name = o
	case string:
		if _, err := c.registry.Resolve(v); err != nil {
			return asn1.AttributeSet{}, err
		}
		name = asn1.OID{Name: v}
	case asn1.OID:
		name = v
	default:
		return asn1.AttributeSet{}, fieldError(TypeSet, KeyName, v)
	}
	value, err := stringField(m, TypeSet, KeyValue, false)
	if err != nil {
		return asn1.AttributeSet{}, err
	}
	kind, err := stringKind(m, TypeSet)
	if err != nil {
		return asn1.AttributeSet{}, err
	}
	if err := kind.Validate(value); err != nil {
		return asn1.AttributeSet{}, err
	}
	return asn1.AttributeSet{Name: name, Value: value, Kind: kind}, nil
}

func toBitString(m map[string]any) (asn1.BitString, error) {
	b, ok := m[KeyValue].([]byte)
	if !ok {
		return asn1.BitString{}, fieldError(TypeBitString, KeyValue, m[KeyValue])
	}
	unused, err := intField(m, TypeBitString, KeyUnusedBits, true)
	if err != nil {
		return asn1.BitString{}, err
	}
	s := asn1.BitString{Bytes: bytes.Clone(b), Unused: uint8(unused)}
	if unused < 0 || unused > 7 || !s.IsValid() {
		return asn1.BitString{}, asn1.NewError(asn1.ErrInvalidBitString, "convert bitstring", fmt.Errorf("%d unused bits in %d bytes", unused, len(b)))
	}
	return s, nil
}

func (c *config) toContext(m map[string]any, depth int) (asn1.Context, error) {
	const op = "convert context"
	n, err := intField(m, TypeContext, KeyValue, false)
	if err != nil {
		return asn1.Context{}, err
	}
	if n < 0 || n > math.MaxUint32 {
		return asn1.Context{}, asn1.NewError(asn1.ErrUnknownContext, op, fmt.Errorf("tag number %d out of range", n))
	}
	s, err := stringField(m, TypeContext, KeyKind, true)
	if err != nil {
		return asn1.Context{}, err
	}
	kind, ok := lookupKind(contextKindNames, s)
	if !ok {
		return asn1.Context{}, asn1.NewError(asn1.ErrUnknownContext, op, fmt.Errorf("unknown kind %q", s))
	}
	contains, ok := m[KeyContains]
	if !ok {
		return asn1.Context{}, fieldError(TypeContext, KeyContains, nil)
	}
	d, err := c.toData(contains, depth+1)
	if err != nil {
		return asn1.Context{}, asn1.NewError(asn1.ErrInvalidContextNonSequence, op, err)
	}
	return asn1.Context{Number: uint32(n), Kind: kind, Contents: d}, nil
}

func stringKind(m map[string]any, typ string) (asn1.StringKind, error) {
	s, err := stringField(m, typ, KeyKind, true)
	if err != nil {
		return 0, err
	}
	kind, ok := lookupKind(stringKindNames, s)
	if !ok {
		return 0, asn1.NewError(asn1.ErrUnknownStringFormat, "convert "+typ, fmt.Errorf("unknown kind %q", s))
	}
	return kind, nil
}

func toStringObject(m map[string]any) (asn1.StringObject, error) {
	value, err := stringField(m, TypeString, KeyValue, false)
	if err != nil {
		return asn1.StringObject{}, err
	}
	kind, err := stringKind(m, TypeString)
	if err != nil {
		return asn1.StringObject{}, err
	}
	if err := kind.Validate(value); err != nil {
		return asn1.StringObject{}, err
	}
	return asn1.StringObject{Kind: kind, Value: value}, nil
}

func toDateObject(m map[string]any) (asn1.DateObject, error) {
	t, ok := m[KeyDate].(time.Time)
	if !ok {
		return asn1.DateObject{}, fieldError(TypeDate, KeyDate, m[KeyDate])
	}
	s, err := stringField(m, TypeDate, KeyKind, true)
	if err != nil {
		return asn1.DateObject{}, err
	}
	kind, ok := lookupKind(dateKindNames, s)
	if !ok {
		return asn1.DateObject{}, asn1.NewError(asn1.ErrUnknownDateFormat, "convert date", fmt.Errorf("unknown kind %q", s))
	}
	if err := kind.Validate(t); err != nil {
		return asn1.DateObject{}, err
	}
	return asn1.DateObject{Kind: kind, Value: t}, nil
}
