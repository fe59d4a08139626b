// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package ssz

import (
	"github.com/bmtree/bm/merkle"
	"github.com/bmtree/bm/merkle/index"
	"github.com/bmtree/bm/merkle/rawtree"
)

// FromTreePtr is satisfied by a pointer to a type whose FromTree mutates the
// pointee in place; it lets EncodeVector/DecodeVector and their list
// counterparts stay generic over element type without reflection.
type FromTreePtr[T any] interface {
	*T
	FromTree(root merkle.Value, db merkle.Backend) error
}

// EncodeVector merkleizes elements into a fixed-length vector tree: a
// composite whose capacity is exactly len(elements), with no length mixin.
// Two vectors of different lengths never share a root shape.
func EncodeVector[T IntoTree](db merkle.Backend, elements []T) (merkle.Value, error) {
	values := make([]merkle.Value, len(elements))
	for i, el := range elements {
		v, err := el.IntoTree(db)
		if err != nil {
			return merkle.Value{}, err
		}
		values[i] = v
	}
	return buildComposite(db, values, requiredDepth(len(values)))
}

// DecodeVector reads length elements back out of a fixed-length vector tree
// rooted at root.
func DecodeVector[T any, PT FromTreePtr[T]](db merkle.Backend, root merkle.Value, length int) ([]T, error) {
	depth := requiredDepth(length)
	tree := rawtree.New[rawtree.Dangling](root, depth)

	out := make([]T, length)
	for i := 0; i < length; i++ {
		val, err := tree.Get(db, index.FromZero(depth, uint64(i)))
		if err != nil {
			return nil, err
		}
		if err := PT(&out[i]).FromTree(val, db); err != nil {
			return nil, err
		}
	}
	return out, nil
}
