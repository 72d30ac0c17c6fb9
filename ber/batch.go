// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/keetanetwork/asn1"
	"github.com/keetanetwork/asn1/log"
)

// DecodeAll decodes each of the inputs in parallel and returns the results in
// input order. At most [WithConcurrency] inputs are decoded at the same time.
// If no logger is configured via [WithLogger], the logger of ctx is used.
//
// The first error cancels all remaining work and is returned together with
// the index of the failing input.
func DecodeAll(ctx context.Context, inputs [][]byte, opts ...Option) ([]asn1.Data, error) {
	opts = append([]Option{WithLogger(log.GetLogger(ctx))}, opts...)
	cfg := newConfig(opts)
	results := make([]asn1.Data, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)
	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := newDecoder(input, cfg).Decode()
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	cfg.logger.Debugf("ber: decoded %d inputs", len(inputs))
	return results, nil
}
