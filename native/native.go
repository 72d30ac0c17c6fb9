// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package native converts between [asn1.Data] and plain Go values. It is the
// boundary between the codec and applications that do not want to depend on
// the data model of this module.
//
// The following host values are supported:
//
//	nil                    Null
//	bool                   Boolean
//	int, ..., uint64       Integer, or BigInt if it exceeds an int64
//	*big.Int               BigInt
//	string                 String
//	[]byte                 Bytes
//	Raw                    Opaque
//	time.Time              DateObject with the default kind
//	[]any                  Array
//	map[string]any         Object, see below
//
// Objects are maps with a "type" key naming one of the object types. The
// remaining keys depend on the type:
//
//	{"type": "oid", "oid": name}
//	{"type": "set", "name": oid object or name, "value": string, "kind": string kind}
//	{"type": "bitstring", "value": []byte, "unusedBits": int}
//	{"type": "context", "value": int, "kind": "explicit" or "implicit", "contains": any}
//	{"type": "string", "kind": string kind, "value": string}
//	{"type": "date", "kind": "utc" or "general", "date": time.Time}
//
// String kinds are "printable", "ia5" and "utf8". The "kind" key is optional
// everywhere. Values that already implement [asn1.Data] are passed through
// unchanged.
package native

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"golang.org/x/exp/constraints"

	"github.com/keetanetwork/asn1"
	"github.com/keetanetwork/asn1/oid"
)

var errNilValue = errors.New("nil value")

// Raw holds a complete BER encoding that is passed through without
// interpretation.
type Raw []byte

// Keys of object maps.
const (
	KeyType       = "type"
	KeyOID        = "oid"
	KeyName       = "name"
	KeyValue      = "value"
	KeyKind       = "kind"
	KeyDate       = "date"
	KeyUnusedBits = "unusedBits"
	KeyContains   = "contains"
)

// Object types.
const (
	TypeOID       = "oid"
	TypeSet       = "set"
	TypeBitString = "bitstring"
	TypeContext   = "context"
	TypeString    = "string"
	TypeDate      = "date"
)

// DefaultMaxDepth is the default limit for nested lists and objects.
const DefaultMaxDepth = 100

type config struct {
	registry *oid.Registry
	maxDepth int
}

// Option configures a conversion.
type Option func(*config)

// WithRegistry sets the registry used to validate object identifier names.
// A nil registry is ignored.
func WithRegistry(r *oid.Registry) Option {
	return func(c *config) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithMaxDepth limits the nesting of lists and objects. Values less than 1
// are ignored.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

func newConfig(opts []Option) config {
	c := config{registry: oid.Default(), maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ToData converts the host value v into an [asn1.Data] value. Unsupported
// types fail with [asn1.ErrUnknownObject].
func ToData(v any, opts ...Option) (asn1.Data, error) {
	c := newConfig(opts)
	return c.toData(v, 0)
}

func (c *config) toData(v any, depth int) (asn1.Data, error) {
	if i := fromHostInteger(v); i != nil {
		return i, nil
	}
	switch v := v.(type) {
	case nil:
		return asn1.Null{}, nil
	case asn1.Data:
		return v, nil
	case bool:
		return asn1.Boolean(v), nil
	case *big.Int:
		// nil pointer
		return asn1.Null{}, nil
	case string:
		return asn1.String(v), nil
	case []byte:
		return asn1.Bytes(bytes.Clone(v)), nil
	case Raw:
		return asn1.Opaque(bytes.Clone(v)), nil
	case time.Time:
		return asn1.DateObject{Kind: asn1.DateDefault, Value: v}, nil
	case []any:
		if depth >= c.maxDepth {
			return nil, asn1.NewError(asn1.ErrDepthExceeded, "convert list", nil)
		}
		arr := make(asn1.Array, len(v))
		for i, e := range v {
			d, err := c.toData(e, depth+1)
			if err != nil {
				return nil, err
			}
			arr[i] = d
		}
		return arr, nil
	case map[string]any:
		if depth >= c.maxDepth {
			return nil, asn1.NewError(asn1.ErrDepthExceeded, "convert object", nil)
		}
		return c.toObject(v, depth)
	default:
		return nil, asn1.NewError(asn1.ErrUnknownObject, "convert", fmt.Errorf("unsupported host type %T", v))
	}
}

func fromInteger[T constraints.Integer](i T) asn1.Data {
	if i >= 0 && uint64(i) > math.MaxInt64 {
		return asn1.BigInt{Int: new(big.Int).SetUint64(uint64(i))}
	}
	return asn1.Integer(int64(i))
}

// FromData converts d into a host value. Integers become int64 or *big.Int,
// times become time.Time and objects become maps as described in the package
// documentation.
//
// Text and times whose wire type would not be selected again when encoding
// the result are returned as objects that record the type. This applies to
// printable IA5 strings, ASCII UTF-8 strings and GeneralizedTime values before
// the year 2050.
func FromData(d asn1.Data) (any, error) {
	return fromData(d, 0)
}

func fromData(d asn1.Data, depth int) (any, error) {
	switch d := d.(type) {
	case nil:
		return nil, asn1.NewError(asn1.ErrInvalidDataEncoding, "convert", errNilValue)
	case asn1.Null:
		return nil, nil
	case asn1.Boolean:
		return bool(d), nil
	case asn1.Integer:
		return int64(d), nil
	case asn1.BigInt:
		if d.Int == nil {
			return new(big.Int), nil
		}
		return new(big.Int).Set(d.Int), nil
	case asn1.String:
		return string(d), nil
	case asn1.PrintableString:
		return string(d), nil
	case asn1.IA5String:
		if asn1.IsPrintable(string(d)) {
			return stringObject(asn1.StringIA5, string(d)), nil
		}
		return string(d), nil
	case asn1.UTF8String:
		if asn1.IsIA5(string(d)) {
			return stringObject(asn1.StringUTF8, string(d)), nil
		}
		return string(d), nil
	case asn1.StringObject:
		return stringObject(d.Kind, d.Value), nil
	case asn1.Bytes:
		return bytes.Clone(d), nil
	case asn1.Opaque:
		return Raw(bytes.Clone(d)), nil
	case asn1.UTCTime:
		return time.Time(d).UTC(), nil
	case asn1.GeneralizedTime:
		t := time.Time(d).UTC()
		if t.Year() < 2050 {
			return dateObject(asn1.DateGeneral, t), nil
		}
		return t, nil
	case asn1.DateObject:
		return dateObject(d.Kind, d.Value), nil
	case asn1.Array:
		if depth >= DefaultMaxDepth {
			return nil, asn1.NewError(asn1.ErrDepthExceeded, "convert sequence", nil)
		}
		list := make([]any, len(d))
		for i, e := range d {
			v, err := fromData(e, depth+1)
			if err != nil {
				return nil, err
			}
			list[i] = v
		}
		return list, nil
	case asn1.OID:
		return oidObject(d), nil
	case asn1.AttributeSet:
		m := map[string]any{KeyType: TypeSet, KeyName: oidObject(d.Name), KeyValue: d.Value}
		if d.Kind != asn1.StringDefault {
			m[KeyKind] = stringKindNames[d.Kind]
		}
		return m, nil
	case asn1.BitString:
		return map[string]any{
			KeyType:       TypeBitString,
			KeyValue:      bytes.Clone(d.Bytes),
			KeyUnusedBits: int64(d.Unused),
		}, nil
	case asn1.Context:
		if depth >= DefaultMaxDepth {
			return nil, asn1.NewError(asn1.ErrDepthExceeded, "convert context", nil)
		}
		contains, err := fromData(d.Contents, depth+1)
		if err != nil {
			return nil, err
		}
		kind, ok := contextKindNames[d.Kind]
		if !ok {
			return nil, asn1.NewError(asn1.ErrUnknownContext, "convert context", fmt.Errorf("invalid kind %v", d.Kind))
		}
		return map[string]any{
			KeyType:     TypeContext,
			KeyValue:    int64(d.Number),
			KeyKind:     kind,
			KeyContains: contains,
		}, nil
	default:
		return nil, asn1.NewError(asn1.ErrInvalidDataEncoding, "convert", fmt.Errorf("unsupported type %T", d))
	}
}

func oidObject(o asn1.OID) map[string]any {
	return map[string]any{KeyType: TypeOID, KeyOID: o.Name}
}

func stringObject(k asn1.StringKind, s string) map[string]any {
	m := map[string]any{KeyType: TypeString, KeyValue: s}
	if k != asn1.StringDefault {
		m[KeyKind] = stringKindNames[k]
	}
	return m
}

func dateObject(k asn1.DateKind, t time.Time) map[string]any {
	m := map[string]any{KeyType: TypeDate, KeyDate: t}
	if k != asn1.DateDefault {
		m[KeyKind] = dateKindNames[k]
	}
	return m
}
