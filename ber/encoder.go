// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/keetanetwork/asn1"
	"github.com/keetanetwork/asn1/internal/vlq"
)

var errNilValue = errors.New("nil value")

// An Encoder writes an [asn1.Data] value using the Basic Encoding Rules. The
// encoder always uses the definite-length format and minimal lengths and
// integers. Values decoded from DER input therefore encode to identical bytes.
//
// Text and times without an explicit kind are written using the type
// selected by [asn1.SelectStringKind] and [asn1.SelectDateKind].
type Encoder struct {
	cfg config
	v   asn1.Data
}

// NewEncoder returns an Encoder for v.
func NewEncoder(v asn1.Data, opts ...Option) *Encoder {
	return &Encoder{cfg: newConfig(opts), v: v}
}

// Encode returns the BER encoding of the value. If the value cannot be
// encoded, the returned error is of kind [asn1.ErrInvalidDataEncoding] and
// wraps the specific cause.
func (e *Encoder) Encode() ([]byte, error) {
	return e.AppendTo(nil)
}

// AppendTo appends the BER encoding of the value to b and returns the extended
// buffer. If an error occurs, b is returned unchanged.
func (e *Encoder) AppendTo(b []byte) ([]byte, error) {
	s := &encodeState{cfg: e.cfg}
	builder := cryptobyte.NewBuilder(b)
	s.encode(builder, e.v, 0)
	out, err := builder.Bytes()
	if err != nil {
		if asn1.KindOf(err) == asn1.ErrInvalidDataEncoding {
			return b, err
		}
		return b, asn1.NewError(asn1.ErrInvalidDataEncoding, "encode", err)
	}
	return out, nil
}

// Base64 returns the standard base64 encoding of the BER encoding of the
// value.
func (e *Encoder) Base64() (string, error) {
	b, err := e.Encode()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Hex returns the lowercase hexadecimal encoding of the BER encoding of the
// value.
func (e *Encoder) Hex() (string, error) {
	b, err := e.Encode()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Marshal returns the BER encoding of v.
func Marshal(v asn1.Data, opts ...Option) ([]byte, error) {
	return NewEncoder(v, opts...).Encode()
}

// Unmarshal decodes the single data value encoded in b.
func Unmarshal(b []byte, opts ...Option) (asn1.Data, error) {
	return NewDecoder(b, opts...).Decode()
}

// encodeState tracks the first error of an encoding operation. The builders
// of cryptobyte ignore all writes after an error has been set.
type encodeState struct {
	cfg config
	err error
}

func (s *encodeState) fail(b *cryptobyte.Builder, err error) {
	if s.err == nil {
		s.err = err
	}
	b.SetError(s.err)
}

// encode writes v to b. depth is the number of constructed values that
// enclose v.
func (s *encodeState) encode(b *cryptobyte.Builder, v asn1.Data, depth int) {
	if s.err != nil {
		b.SetError(s.err)
		return
	}
	switch v := v.(type) {
	case nil:
		s.fail(b, asn1.NewError(asn1.ErrInvalidDataEncoding, "encode", errNilValue))
	case asn1.Boolean:
		b.AddASN1Boolean(bool(v))
	case asn1.Integer:
		b.AddASN1Int64(int64(v))
	case asn1.BigInt:
		if v.Int == nil {
			b.AddASN1Int64(0)
		} else {
			b.AddASN1BigInt(v.Int)
		}
	case asn1.Null:
		b.AddASN1NULL()
	case asn1.Bytes:
		b.AddASN1OctetString(v)
	case asn1.String:
		kind := asn1.SelectStringKind(string(v))
		s.cfg.logger.Debugf("ber: writing string as %v", kind)
		s.encodeString(b, kind, string(v))
	case asn1.PrintableString:
		s.encodeString(b, asn1.StringPrintable, string(v))
	case asn1.IA5String:
		s.encodeString(b, asn1.StringIA5, string(v))
	case asn1.UTF8String:
		s.encodeString(b, asn1.StringUTF8, string(v))
	case asn1.StringObject:
		s.encodeString(b, v.Kind.Resolve(v.Value), v.Value)
	case asn1.UTCTime:
		s.encodeDate(b, asn1.DateUTC, time.Time(v))
	case asn1.GeneralizedTime:
		s.encodeDate(b, asn1.DateGeneral, time.Time(v))
	case asn1.DateObject:
		kind := v.Kind.Resolve(v.Value)
		if v.Kind == asn1.DateDefault {
			s.cfg.logger.Debugf("ber: writing date as %v", kind)
		}
		s.encodeDate(b, kind, v.Value)
	case asn1.OID:
		s.encodeOID(b, v)
	case asn1.BitString:
		if !v.IsValid() {
			s.fail(b, asn1.NewError(asn1.ErrInvalidBitString, "encode bit string", fmt.Errorf("%d unused bits in %d bytes", v.Unused, len(v.Bytes))))
			return
		}
		b.AddASN1(cbasn1.BIT_STRING, func(c *cryptobyte.Builder) {
			c.AddUint8(v.Unused)
			c.AddBytes(v.Bytes)
		})
	case asn1.AttributeSet:
		kind := v.Kind.Resolve(v.Value)
		b.AddASN1(cbasn1.SET, func(c *cryptobyte.Builder) {
			c.AddASN1(cbasn1.SEQUENCE, func(c *cryptobyte.Builder) {
				s.encodeOID(c, v.Name)
				s.encodeString(c, kind, v.Value)
			})
		})
	case asn1.Context:
		if depth >= s.cfg.maxDepth {
			s.fail(b, asn1.NewError(asn1.ErrDepthExceeded, "encode context", nil))
			return
		}
		s.encodeContext(b, v, depth)
	case asn1.Array:
		if depth >= s.cfg.maxDepth {
			s.fail(b, asn1.NewError(asn1.ErrDepthExceeded, "encode sequence", nil))
			return
		}
		b.AddASN1(cbasn1.SEQUENCE, func(c *cryptobyte.Builder) {
			for _, elem := range v {
				s.encode(c, elem, depth+1)
			}
		})
	case asn1.Opaque:
		e, rest, err := readElement(v, 0, s.cfg.maxDepth-depth)
		if err == nil && len(rest) > 0 {
			err = syntaxError("encode opaque", len(v)-len(rest), e.Header, errTrailingData)
		}
		if err != nil {
			s.fail(b, err)
			return
		}
		b.AddBytes(v)
	default:
		s.fail(b, asn1.NewError(asn1.ErrInvalidDataEncoding, "encode", fmt.Errorf("unsupported type %T", v)))
	}
}

func (s *encodeState) encodeString(b *cryptobyte.Builder, kind asn1.StringKind, v string) {
	if err := kind.Validate(v); err != nil {
		s.fail(b, err)
		return
	}
	if kind == asn1.StringDefault {
		kind = asn1.SelectStringKind(v)
	}
	b.AddASN1(cbasn1.Tag(kind.TagNumber()), func(c *cryptobyte.Builder) {
		c.AddBytes([]byte(v))
	})
}

// encodeDate writes t as UTCTime or GeneralizedTime. UTCTime is written with
// second precision and GeneralizedTime with millisecond precision.
func (s *encodeState) encodeDate(b *cryptobyte.Builder, kind asn1.DateKind, t time.Time) {
	if err := kind.Validate(t); err != nil {
		s.fail(b, err)
		return
	}
	var (
		tag  cbasn1.Tag
		text string
	)
	if kind == asn1.DateUTC {
		tag, text = cbasn1.UTCTime, asn1.UTCTime(t).String()
	} else {
		tag, text = cbasn1.GeneralizedTime, asn1.GeneralizedTime(t).String()
	}
	b.AddASN1(tag, func(c *cryptobyte.Builder) {
		c.AddBytes([]byte(text))
	})
}

// encodeOID resolves the name of o using the configured registry and writes
// the resulting identifier. The empty identifier is written with empty
// contents.
func (s *encodeState) encodeOID(b *cryptobyte.Builder, o asn1.OID) {
	id, err := s.cfg.registry.Resolve(o.Name)
	if err != nil {
		s.fail(b, err)
		return
	}
	b.AddASN1(cbasn1.OBJECT_IDENTIFIER, func(c *cryptobyte.Builder) {
		c.AddBytes(appendOID(nil, id))
	})
}

// appendOID appends the contents octets of id to dst. id must be empty or
// valid.
func appendOID(dst []byte, id asn1.ObjectIdentifier) []byte {
	if len(id) < 2 {
		return dst
	}
	dst = vlq.Append(dst, id[0]*40+id[1])
	for _, arc := range id[2:] {
		dst = vlq.Append(dst, arc)
	}
	return dst
}

// encodeContext writes a context-specific value. Explicit tags enclose the
// complete encoding of the contents. Implicit tags replace the identifier of
// the encoded contents.
func (s *encodeState) encodeContext(b *cryptobyte.Builder, v asn1.Context, depth int) {
	const op = "encode context"
	if v.Contents == nil {
		s.fail(b, asn1.NewError(asn1.ErrUnknownContext, op, errNilValue))
		return
	}
	if v.Kind != asn1.ContextExplicit && v.Kind != asn1.ContextImplicit {
		s.fail(b, asn1.NewError(asn1.ErrUnknownContext, op, fmt.Errorf("invalid kind %v", v.Kind)))
		return
	}
	if v.Kind == asn1.ContextExplicit && v.Number < 31 {
		b.AddASN1(cbasn1.Tag(v.Number).ContextSpecific().Constructed(), func(c *cryptobyte.Builder) {
			s.encode(c, v.Contents, depth+1)
		})
		return
	}

	inner := cryptobyte.NewBuilder(nil)
	s.encode(inner, v.Contents, depth+1)
	content, err := inner.Bytes()
	if err != nil {
		s.fail(b, err)
		return
	}
	h := Header{Tag: asn1.ContextTag(uint(v.Number)), Length: len(content), Constructed: true}
	if v.Kind == asn1.ContextImplicit {
		r := bytes.NewReader(content)
		ih, err := decodeHeader(r)
		if err != nil {
			s.fail(b, syntaxError(op, 0, ih, err))
			return
		}
		h.Length = ih.Length
		h.Constructed = ih.Constructed
		content = content[len(content)-r.Len():]
	}
	b.AddBytes(h.appendTo(make([]byte, 0, h.numBytes())))
	b.AddBytes(content)
}
