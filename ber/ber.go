// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ber implements the ASN.1 Basic Encoding Rules (BER) for the value
// model of the asn1 package. The Basic Encoding Rules are defined in
// [Rec. ITU-T X.690].
// See also “[A Layman's Guide to a Subset of ASN.1, BER, and DER]”.
//
// A [Decoder] inspects a single encoded data value. Its category is derived
// from the tag alone (see [asn1.Classify]), and typed extraction methods decode
// the value on demand. Sequences are traversed with an [Iterator]. An
// [Encoder] writes any [asn1.Data] value back into BER. Decoding and
// re-encoding a value produces an equal value. Values decoded from DER input
// re-encode to identical bytes.
//
// The following limitations apply:
//
//   - Attribute sets must contain exactly one attribute. Other SET values
//     decode as [asn1.Opaque].
//   - Values with tags that have no mapping in the value model decode as
//     [asn1.Opaque] and are written back verbatim.
//   - Nesting of constructed values is limited by [WithMaxDepth].
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
// [A Layman's Guide to a Subset of ASN.1, BER, and DER]: http://luca.ntop.org/Teaching/Appunti/asn1.html
package ber

import (
	"runtime"

	"github.com/keetanetwork/asn1/log"
	"github.com/keetanetwork/asn1/oid"
)

// DefaultMaxDepth is the default nesting limit for constructed values.
const DefaultMaxDepth = 100

// config holds the resolved options of a Decoder or Encoder. A config is never
// modified after it has been created.
type config struct {
	maxDepth    int
	logger      log.Logger
	registry    *oid.Registry
	concurrency int
}

// An Option configures a [Decoder], [Encoder] or [DecodeAll].
type Option func(*config)

// WithMaxDepth limits the nesting of constructed values to n levels. Values
// nested deeper fail with [asn1.ErrDepthExceeded]. Values of n below 1 are
// ignored.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithLogger sets the logger that receives debug messages about decisions
// made while decoding and encoding.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRegistry sets the registry used to name and resolve object identifiers.
// The default is [oid.Default].
func WithRegistry(r *oid.Registry) Option {
	return func(c *config) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithConcurrency limits the number of inputs decoded in parallel by
// [DecodeAll]. The default is [runtime.GOMAXPROCS].
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

func newConfig(opts []Option) config {
	c := config{
		maxDepth:    DefaultMaxDepth,
		logger:      log.Discard,
		registry:    oid.Default(),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
