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
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/keetanetwork/asn1"
)

var (
	errNotAttributeSet = errors.New("not a single attribute set")
	errUnexpectedTag   = errors.New("unexpected tag")
)

// A Decoder inspects a single BER-encoded data value. Creating a Decoder only
// splits the outermost TLV from the input. All values are decoded on demand by
// the typed extraction methods.
//
// A Decoder is immutable and can be used from multiple goroutines
// concurrently. The values returned by a Decoder do not share memory with the
// input.
type Decoder struct {
	cfg   config
	depth int
	sniff asn1.Tag
	elem  element
	err   error
	empty bool
}

// NewDecoder returns a Decoder for the data value encoded in data. NewDecoder
// never fails. If data is not a valid encoding, the error is reported by
// [Decoder.Err] and every extraction method. Bytes following the first data
// value are an error.
//
// An empty data slice is valid input. Its category is
// [asn1.CategoryUndefined] and it decodes as [asn1.Null].
func NewDecoder(data []byte, opts ...Option) *Decoder {
	return newDecoder(data, newConfig(opts))
}

func newDecoder(data []byte, cfg config) *Decoder {
	d := &Decoder{cfg: cfg}
	if len(data) == 0 {
		d.empty = true
		return d
	}
	d.sniff = asn1.Sniff(data[0])
	e, rest, err := readElement(data, 0, cfg.maxDepth)
	if err != nil {
		d.err = err
		return d
	}
	d.elem = e
	if len(rest) > 0 {
		d.err = syntaxError("decode", len(data)-len(rest), e.Header, errTrailingData)
	}
	if d.sniff != e.Tag {
		cfg.logger.Debugf("ber: sniffed tag %v differs from header tag %v", d.sniff, e.Tag)
	}
	return d
}

// newChildDecoder returns a Decoder for an element nested in the value of d.
func (d *Decoder) newChildDecoder(e element) *Decoder {
	return &Decoder{cfg: d.cfg, depth: d.depth + 1, sniff: asn1.Sniff(e.raw[0]), elem: e}
}

// NewDecoderString returns a Decoder for an encoding given as a string. The
// string is decoded as standard base64 if possible, otherwise as hexadecimal.
// If neither succeeds an error of kind [asn1.ErrUnknownStringFormat] is
// returned.
func NewDecoderString(s string, opts ...Option) (*Decoder, error) {
	s = strings.TrimSpace(s)
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return NewDecoder(b, opts...), nil
	}
	if b, err := hex.DecodeString(s); err == nil {
		return NewDecoder(b, opts...), nil
	}
	return nil, asn1.NewError(asn1.ErrUnknownStringFormat, "detect input format", nil)
}

// NewDecoderBase64 returns a Decoder for a standard base64 encoded string.
func NewDecoderBase64(s string, opts ...Option) (*Decoder, error) {
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, asn1.NewError(asn1.ErrUnknownStringFormat, "decode base64", err)
	}
	return NewDecoder(b, opts...), nil
}

// NewDecoderHex returns a Decoder for a hexadecimal string.
func NewDecoderHex(s string, opts ...Option) (*Decoder, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, asn1.NewError(asn1.ErrUnknownStringFormat, "decode hex", err)
	}
	return NewDecoder(b, opts...), nil
}

//region Accessors

// Err returns the error encountered while splitting the input, if any.
func (d *Decoder) Err() error {
	return d.err
}

// Tag returns the tag of the data value. If the header could not be read, the
// tag is derived from the first byte of the input. The zero Tag is returned
// for empty input.
func (d *Decoder) Tag() asn1.Tag {
	if d.elem.raw == nil {
		return d.sniff
	}
	return d.elem.Tag
}

// Category returns the semantic category of the data value.
func (d *Decoder) Category() asn1.Category {
	if d.empty {
		return asn1.CategoryUndefined
	}
	return asn1.Classify(d.Tag())
}

// Raw returns a copy of the complete encoding of the data value.
func (d *Decoder) Raw() []byte {
	return bytes.Clone(d.elem.raw)
}

//endregion

// expect verifies that d holds a valid universal value with one of the
// specified tag numbers. If it does not, an error of kind k is returned.
func (d *Decoder) expect(op string, k asn1.ErrorKind, numbers ...uint) error {
	if d.err != nil {
		return d.err
	}
	if d.empty {
		return asn1.NewError(k, op, errEmpty)
	}
	if d.elem.Tag.Class == asn1.ClassUniversal {
		for _, n := range numbers {
			if d.elem.Tag.Number == n {
				return nil
			}
		}
	}
	return asn1.NewError(k, op, fmt.Errorf("%w %v", errUnexpectedTag, d.elem.Tag))
}

// primitive verifies that the value of d uses the primitive encoding.
func (d *Decoder) primitive(op string) error {
	if d.elem.Constructed {
		return syntaxError(op, d.elem.offset, d.elem.Header, errors.New("constructed encoding of primitive type"))
	}
	return nil
}

func (d *Decoder) depthExceeded(op string) error {
	d.cfg.logger.Warnf("ber: %s: nesting depth %d exceeds limit of %d", op, d.depth, d.cfg.maxDepth)
	return asn1.NewError(asn1.ErrDepthExceeded, op, nil)
}

//region Typed extraction

// Boolean decodes a BOOLEAN value.
func (d *Decoder) Boolean() (bool, error) {
	const op = "decode boolean"
	if err := d.expect(op, asn1.ErrMalformedData, asn1.TagBoolean); err != nil {
		return false, err
	}
	if err := d.primitive(op); err != nil {
		return false, err
	}
	b, err := parseBoolean(d.elem.content)
	if err != nil {
		return false, syntaxError(op, d.elem.offset, d.elem.Header, err)
	}
	return b, nil
}

// Integer decodes an INTEGER value that fits into an int64. Larger values
// fail with [asn1.ErrMalformedData]. Use [Decoder.BigInteger] for those.
func (d *Decoder) Integer() (int64, error) {
	const op = "decode integer"
	if err := d.expect(op, asn1.ErrMalformedData, asn1.TagInteger); err != nil {
		return 0, err
	}
	if err := d.primitive(op); err != nil {
		return 0, err
	}
	i, err := parseInt64(d.elem.content)
	if err != nil {
		return 0, syntaxError(op, d.elem.offset, d.elem.Header, err)
	}
	return i, nil
}

// BigInteger decodes an INTEGER value of arbitrary size.
func (d *Decoder) BigInteger() (*big.Int, error) {
	const op = "decode big integer"
	if err := d.expect(op, asn1.ErrMalformedData, asn1.TagInteger); err != nil {
		return nil, err
	}
	if err := d.primitive(op); err != nil {
		return nil, err
	}
	i, err := parseBigInt(d.elem.content)
	if err != nil {
		return nil, syntaxError(op, d.elem.offset, d.elem.Header, err)
	}
	return i, nil
}

var stringTags = []uint{
	asn1.TagUTF8String, asn1.TagPrintableString, asn1.TagIA5String,
	asn1.TagVisibleString, asn1.TagUniversalString, asn1.TagGeneralString,
	asn1.TagGraphicString, asn1.TagVideotexString, asn1.TagTeletexString,
	asn1.TagNumericString, asn1.TagBMPString,
}

// Text decodes the value of any character string type. The character set of
// the string type is not validated.
func (d *Decoder) Text() (string, error) {
	const op = "decode string"
	if err := d.expect(op, asn1.ErrUnknownStringFormat, stringTags...); err != nil {
		return "", err
	}
	content, err := flatten(d.elem, d.cfg.maxDepth-d.depth)
	if err != nil {
		return "", err
	}
	s, err := decodeText(d.elem.Tag.Number, content)
	if err != nil {
		return "", syntaxError(op, d.elem.offset, d.elem.Header, err)
	}
	return s, nil
}

// Time decodes a UTCTime or GeneralizedTime value. The returned time is in
// UTC.
func (d *Decoder) Time() (time.Time, error) {
	const op = "decode date"
	if err := d.expect(op, asn1.ErrUnknownDateFormat, asn1.TagUTCTime, asn1.TagGeneralizedTime); err != nil {
		return time.Time{}, err
	}
	content, err := flatten(d.elem, d.cfg.maxDepth-d.depth)
	if err != nil {
		return time.Time{}, err
	}
	var t time.Time
	if d.elem.Tag.Number == asn1.TagUTCTime {
		t, err = parseUTCTime(string(content))
	} else {
		t, err = parseGeneralizedTime(string(content))
	}
	if err != nil {
		return time.Time{}, asn1.NewError(asn1.ErrUnknownDateFormat, op, err)
	}
	return t, nil
}

// Bytes decodes an OCTET STRING value.
func (d *Decoder) Bytes() ([]byte, error) {
	const op = "decode octet string"
	if err := d.expect(op, asn1.ErrMalformedData, asn1.TagOctetString); err != nil {
		return nil, err
	}
	content, err := flatten(d.elem, d.cfg.maxDepth-d.depth)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(content), nil
}

// ObjectIdentifier decodes an OBJECT IDENTIFIER value.
func (d *Decoder) ObjectIdentifier() (asn1.ObjectIdentifier, error) {
	const op = "decode object identifier"
	if err := d.expect(op, asn1.ErrMalformedData, asn1.TagOID); err != nil {
		return nil, err
	}
	if err := d.primitive(op); err != nil {
		return nil, err
	}
	id, err := parseOID(d.elem.content)
	if err != nil {
		return nil, syntaxError(op, d.elem.offset, d.elem.Header, err)
	}
	return id, nil
}

// OID decodes an OBJECT IDENTIFIER value and names it using the configured
// registry. Unregistered identifiers are named by their dotted-decimal form.
func (d *Decoder) OID() (asn1.OID, error) {
	id, err := d.ObjectIdentifier()
	if err != nil {
		return asn1.OID{}, err
	}
	return asn1.OID{Name: d.cfg.registry.Name(id)}, nil
}

// BitString decodes a BIT STRING value. Only the primitive encoding is
// supported.
func (d *Decoder) BitString() (asn1.BitString, error) {
	const op = "decode bit string"
	if err := d.expect(op, asn1.ErrInvalidBitString, asn1.TagBitString); err != nil {
		return asn1.BitString{}, err
	}
	if d.elem.Constructed {
		return asn1.BitString{}, asn1.NewError(asn1.ErrInvalidBitString, op, errors.New("constructed encoding"))
	}
	s, err := parseBitString(d.elem.content)
	if err != nil {
		return asn1.BitString{}, asn1.NewError(asn1.ErrInvalidBitString, op, err)
	}
	return s, nil
}

// AttributeSet decodes a SET containing exactly one SEQUENCE of an OBJECT
// IDENTIFIER and a character string. The Kind of the result records the
// string type if it is one of the kinded string types. A value that is not a
// character string fails with [asn1.ErrInvalidSimpleTypesOnly].
func (d *Decoder) AttributeSet() (asn1.AttributeSet, error) {
	const op = "decode attribute set"
	if err := d.expect(op, asn1.ErrMalformedData, asn1.TagSet); err != nil {
		return asn1.AttributeSet{}, err
	}
	if d.depth >= d.cfg.maxDepth {
		return asn1.AttributeSet{}, d.depthExceeded(op)
	}
	shape := func(err error) error {
		return asn1.NewError(asn1.ErrMalformedData, op, fmt.Errorf("%w: %w", errNotAttributeSet, err))
	}
	if !d.elem.Constructed {
		return asn1.AttributeSet{}, shape(errors.New("primitive SET"))
	}
	elems, err := d.elem.children(d.cfg.maxDepth - d.depth - 1)
	if err != nil {
		return asn1.AttributeSet{}, err
	}
	if len(elems) != 1 {
		return asn1.AttributeSet{}, shape(fmt.Errorf("SET with %d elements", len(elems)))
	}
	seq := elems[0]
	if seq.Tag != asn1.Universal(asn1.TagSequence) || !seq.Constructed {
		return asn1.AttributeSet{}, shape(fmt.Errorf("element tagged %v", seq.Tag))
	}
	pair, err := seq.children(d.cfg.maxDepth - d.depth - 2)
	if err != nil {
		return asn1.AttributeSet{}, err
	}
	if len(pair) != 2 {
		return asn1.AttributeSet{}, shape(fmt.Errorf("SEQUENCE with %d elements", len(pair)))
	}
	name, err := d.newChildDecoder(pair[0]).OID()
	if err != nil {
		return asn1.AttributeSet{}, shape(err)
	}
	vd := d.newChildDecoder(pair[1])
	switch vd.Category() {
	case asn1.CategoryString, asn1.CategoryStringObject:
	default:
		return asn1.AttributeSet{}, asn1.NewError(asn1.ErrInvalidSimpleTypesOnly, op, fmt.Errorf("attribute value tagged %v", vd.Tag()))
	}
	value, err := vd.Text()
	if err != nil {
		return asn1.AttributeSet{}, err
	}
	kind, _ := asn1.StringKindOf(vd.Tag().Number)
	return asn1.AttributeSet{Name: name, Value: value, Kind: kind}, nil
}

// Context decodes a context-specific value. A constructed value with exactly
// one nested value is decoded as an explicit tag around that value. Other
// constructed values are decoded as implicit tags around an [asn1.Array] of
// the nested values. Primitive values are decoded as implicit tags around
// [asn1.Bytes].
func (d *Decoder) Context() (asn1.Context, error) {
	const op = "decode context"
	if d.err != nil {
		return asn1.Context{}, d.err
	}
	if d.empty || d.elem.Tag.Class != asn1.ClassContextSpecific {
		return asn1.Context{}, asn1.NewError(asn1.ErrUnknownContext, op, fmt.Errorf("%w %v", errUnexpectedTag, d.elem.Tag))
	}
	if d.elem.Tag.Number > math.MaxUint32 {
		return asn1.Context{}, asn1.NewError(asn1.ErrUnknownContext, op, errors.New("tag number out of range"))
	}
	ctx := asn1.Context{Number: uint32(d.elem.Tag.Number), Kind: asn1.ContextImplicit}
	if !d.elem.Constructed {
		ctx.Contents = asn1.Bytes(bytes.Clone(d.elem.content))
		return ctx, nil
	}
	if d.depth >= d.cfg.maxDepth {
		return asn1.Context{}, d.depthExceeded(op)
	}
	elems, err := d.elem.children(d.cfg.maxDepth - d.depth - 1)
	if err != nil {
		return asn1.Context{}, err
	}
	if len(elems) == 1 {
		ctx.Kind = asn1.ContextExplicit
		if ctx.Contents, err = d.newChildDecoder(elems[0]).Decode(); err != nil {
			return asn1.Context{}, err
		}
		return ctx, nil
	}
	arr := make(asn1.Array, len(elems))
	for i, e := range elems {
		if arr[i], err = d.newChildDecoder(e).Decode(); err != nil {
			return asn1.Context{}, err
		}
	}
	ctx.Contents = arr
	return ctx, nil
}

// Object decodes a value of category [asn1.CategoryObject]. Other values fail
// with [asn1.ErrUnknownObject].
func (d *Decoder) Object() (asn1.Object, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.Category() != asn1.CategoryObject {
		return nil, asn1.NewError(asn1.ErrUnknownObject, "decode object", fmt.Errorf("%w %v", errUnexpectedTag, d.Tag()))
	}
	if d.elem.Tag.Class == asn1.ClassContextSpecific {
		return d.Context()
	}
	switch d.elem.Tag.Number {
	case asn1.TagBitString:
		return d.BitString()
	case asn1.TagOID:
		return d.OID()
	default:
		return d.AttributeSet()
	}
}

// Sequence returns an [Iterator] over the elements of a SEQUENCE value.
func (d *Decoder) Sequence() (*Iterator, error) {
	const op = "decode sequence"
	if err := d.expect(op, asn1.ErrMalformedData, asn1.TagSequence); err != nil {
		return nil, err
	}
	if !d.elem.Constructed {
		return nil, syntaxError(op, d.elem.offset, d.elem.Header, errors.New("primitive encoding of constructed type"))
	}
	if d.depth >= d.cfg.maxDepth {
		return nil, d.depthExceeded(op)
	}
	elems, err := d.elem.children(d.cfg.maxDepth - d.depth - 1)
	if err != nil {
		return nil, err
	}
	return &Iterator{parent: d, elems: elems}, nil
}

//endregion

// Decode converts the data value into an [asn1.Data] value according to its
// category:
//
//   - Integers that do not fit into an int64 decode as [asn1.BigInt].
//   - Printable, IA5 and UTF-8 strings keep their string type. All other
//     string types decode as [asn1.String].
//   - SET values that are not a single attribute set, as well as all values of
//     category [asn1.CategoryUnknown], decode as [asn1.Opaque].
//   - Empty input decodes as [asn1.Null].
func (d *Decoder) Decode() (asn1.Data, error) {
	if d.err != nil {
		return nil, d.err
	}
	switch d.Category() {
	case asn1.CategoryUndefined:
		return asn1.Null{}, nil
	case asn1.CategoryBoolean:
		b, err := d.Boolean()
		return asn1.Boolean(b), err
	case asn1.CategoryInteger, asn1.CategoryBigInteger:
		i, err := d.Integer()
		if err == nil {
			return asn1.Integer(i), nil
		}
		if !errors.Is(err, errIntegerTooLarge) {
			return nil, err
		}
		d.cfg.logger.Debugf("ber: integer of %d bytes decoded as big integer", len(d.elem.content))
		bi, err := d.BigInteger()
		if err != nil {
			return nil, err
		}
		return asn1.BigInt{Int: bi}, nil
	case asn1.CategoryString:
		s, err := d.Text()
		return asn1.String(s), err
	case asn1.CategoryStringObject:
		s, err := d.Text()
		if err != nil {
			return nil, err
		}
		switch d.elem.Tag.Number {
		case asn1.TagPrintableString:
			return asn1.PrintableString(s), nil
		case asn1.TagIA5String:
			return asn1.IA5String(s), nil
		default:
			return asn1.UTF8String(s), nil
		}
	case asn1.CategoryBuffer:
		b, err := d.Bytes()
		return asn1.Bytes(b), err
	case asn1.CategorySequence:
		return d.array()
	case asn1.CategoryObject:
		obj, err := d.Object()
		if err == nil {
			return obj, nil
		}
		if d.elem.Tag == asn1.Universal(asn1.TagSet) && !isStructural(err) {
			d.cfg.logger.Debugf("ber: %v decoded as opaque value: %v", d.elem.Tag, err)
			return asn1.Opaque(d.Raw()), nil
		}
		return nil, err
	case asn1.CategoryDateTime:
		t, err := d.Time()
		if err != nil {
			return nil, err
		}
		if d.elem.Tag.Number == asn1.TagUTCTime {
			return asn1.UTCTime(t), nil
		}
		return asn1.GeneralizedTime(t), nil
	case asn1.CategoryNull:
		if d.elem.Constructed || d.elem.Length != 0 {
			return nil, syntaxError("decode null", d.elem.offset, d.elem.Header, errInvalidNull)
		}
		return asn1.Null{}, nil
	default:
		d.cfg.logger.Debugf("ber: %v decoded as opaque value", d.elem.Tag)
		return asn1.Opaque(d.Raw()), nil
	}
}

// isStructural reports whether err indicates an invalid encoding or resource
// limit rather than a value that does not match an expected shape.
func isStructural(err error) bool {
	var syntaxErr *SyntaxError
	return errors.As(err, &syntaxErr) || errors.Is(err, asn1.ErrDepthExceeded)
}

// array decodes all elements of a SEQUENCE value.
func (d *Decoder) array() (asn1.Array, error) {
	it, err := d.Sequence()
	if err != nil {
		return nil, err
	}
	arr := make(asn1.Array, 0, it.Len())
	for v, err := range it.All() {
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	return arr, nil
}
