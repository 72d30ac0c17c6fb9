// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package native

import (
	"fmt"
	"math/big"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/keetanetwork/asn1"
)

// The CBOR modes are shared by all calls. Encoding uses the core
// deterministic encoding of RFC 8949, Section 4.2, so equal values always
// produce identical bytes. Big integers are always written as bignums.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.BigIntConvert = cbor.BigIntConvertNone
	var err error
	if encMode, err = opts.EncMode(); err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		MaxNestedLevels:   4*DefaultMaxDepth + 4,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// kind identifies the host type stored in an envelope.
type kind uint8

const (
	kindNull kind = iota
	kindBool
	kindInt
	kindBigInt
	kindString
	kindBytes
	kindRaw
	kindTime
	kindList
	kindMap
)

// envelope is the CBOR representation of a host value. Only the fields
// belonging to Kind are set.
type envelope struct {
	Kind    kind                `cbor:"0,keyasint"`
	Bool    bool                `cbor:"1,keyasint,omitempty"`
	Int     int64               `cbor:"2,keyasint,omitempty"`
	BigInt  *big.Int            `cbor:"3,keyasint,omitempty"`
	Text    string              `cbor:"4,keyasint,omitempty"`
	Bytes   []byte              `cbor:"5,keyasint,omitempty"`
	Seconds int64               `cbor:"6,keyasint,omitempty"`
	Nanos   int64               `cbor:"7,keyasint,omitempty"`
	List    []envelope          `cbor:"8,keyasint,omitempty"`
	Map     map[string]envelope `cbor:"9,keyasint,omitempty"`
}

// Marshal serializes the host value v as CBOR. The type of every value is
// preserved, so that [Unmarshal] returns a value that converts to the same
// [asn1.Data] as v. Integers are normalized to int64 or *big.Int and times to
// UTC.
//
// If v is an [asn1.Data] value it is converted with [FromData] first.
func Marshal(v any) ([]byte, error) {
	if d, ok := v.(asn1.Data); ok {
		h, err := FromData(d)
		if err != nil {
			return nil, err
		}
		v = h
	}
	e, err := wrap(v, 0)
	if err != nil {
		return nil, err
	}
	b, err := encMode.Marshal(e)
	if err != nil {
		return nil, asn1.NewError(asn1.ErrInvalidDataEncoding, "marshal", err)
	}
	return b, nil
}

// Unmarshal parses a host value serialized by [Marshal].
func Unmarshal(b []byte) (any, error) {
	var e envelope
	if err := decMode.Unmarshal(b, &e); err != nil {
		return nil, asn1.NewError(asn1.ErrMalformedData, "unmarshal", err)
	}
	return unwrap(e)
}

func wrap(v any, depth int) (envelope, error) {
	switch i := fromHostInteger(v).(type) {
	case asn1.Integer:
		return envelope{Kind: kindInt, Int: int64(i)}, nil
	case asn1.BigInt:
		return envelope{Kind: kindBigInt, BigInt: i.Int}, nil
	}
	switch v := v.(type) {
	case nil:
		return envelope{Kind: kindNull}, nil
	case bool:
		return envelope{Kind: kindBool, Bool: v}, nil
	case *big.Int:
		return envelope{Kind: kindNull}, nil
	case string:
		return envelope{Kind: kindString, Text: v}, nil
	case []byte:
		return envelope{Kind: kindBytes, Bytes: v}, nil
	case Raw:
		return envelope{Kind: kindRaw, Bytes: v}, nil
	case time.Time:
		return envelope{Kind: kindTime, Seconds: v.Unix(), Nanos: int64(v.Nanosecond())}, nil
	case []any:
		if depth >= DefaultMaxDepth {
			return envelope{}, asn1.NewError(asn1.ErrDepthExceeded, "marshal list", nil)
		}
		e := envelope{Kind: kindList, List: make([]envelope, len(v))}
		for i, elem := range v {
			var err error
			if e.List[i], err = wrap(elem, depth+1); err != nil {
				return envelope{}, err
			}
		}
		return e, nil
	case map[string]any:
		if depth >= DefaultMaxDepth {
			return envelope{}, asn1.NewError(asn1.ErrDepthExceeded, "marshal object", nil)
		}
		e := envelope{Kind: kindMap, Map: make(map[string]envelope, len(v))}
		for k, elem := range v {
			w, err := wrap(elem, depth+1)
			if err != nil {
				return envelope{}, err
			}
			e.Map[k] = w
		}
		return e, nil
	default:
		return envelope{}, asn1.NewError(asn1.ErrUnknownObject, "marshal", fmt.Errorf("unsupported host type %T", v))
	}
}

func unwrap(e envelope) (any, error) {
	switch e.Kind {
	case kindNull:
		return nil, nil
	case kindBool:
		return e.Bool, nil
	case kindInt:
		return e.Int, nil
	case kindBigInt:
		if e.BigInt == nil {
			return new(big.Int), nil
		}
		return e.BigInt, nil
	case kindString:
		return e.Text, nil
	case kindBytes:
		if e.Bytes == nil {
			return []byte{}, nil
		}
		return e.Bytes, nil
	case kindRaw:
		return Raw(e.Bytes), nil
	case kindTime:
		return time.Unix(e.Seconds, e.Nanos).UTC(), nil
	case kindList:
		list := make([]any, len(e.List))
		for i, elem := range e.List {
			v, err := unwrap(elem)
			if err != nil {
				return nil, err
			}
			list[i] = v
		}
		return list, nil
	case kindMap:
		m := make(map[string]any, len(e.Map))
		for k, elem := range e.Map {
			v, err := unwrap(elem)
			if err != nil {
				return nil, err
			}
			m[k] = v
		}
		return m, nil
	default:
		return nil, asn1.NewError(asn1.ErrMalformedData, "unmarshal", fmt.Errorf("unknown value kind %d", e.Kind))
	}
}
