// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package seq

import (
	"github.com/bmtree/bm/merkle"
	"github.com/bmtree/bm/merkle/rawtree"
)

// Empty is a depth-tracking companion tree holding nothing but canonical
// empty values. Containers that need to grow and shrink a notion of
// capacity independently of where their content currently lives - for
// instance a length-mixed list deciding how deep its content vector should
// be before it has written anything - extend and shrink an Empty instead of
// repeatedly deriving the same depth-zero chain from the Construct.
type Empty[R rawtree.RootStatus] struct {
	raw rawtree.Raw[R]
}

// NewEmpty creates an empty companion tree of the given depth.
func NewEmpty[R rawtree.RootStatus](db merkle.Backend, depth int) Empty[R] {
	return Empty[R]{raw: rawtree.Empty[R](db, depth)}
}

func (e Empty[R]) Depth() int         { return e.raw.Depth() }
func (e Empty[R]) Root() merkle.Value { return e.raw.Root() }

func (e Empty[R]) Extend(db merkle.Backend) (Empty[R], error) {
	r, err := e.raw.Extend(db)
	if err != nil {
		return Empty[R]{}, err
	}
	return Empty[R]{raw: r}, nil
}

func (e Empty[R]) Shrink(db merkle.Backend) (Empty[R], error) {
	r, err := e.raw.Shrink(db)
	if err != nil {
		return Empty[R]{}, err
	}
	return Empty[R]{raw: r}, nil
}

func (e Empty[R]) Drop(db merkle.Backend) error {
	return e.raw.Drop(db)
}
