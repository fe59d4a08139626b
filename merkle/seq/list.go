// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package seq

import (
	"github.com/bmtree/bm/merkle"
	"github.com/bmtree/bm/merkle/rawtree"
)

// List is a Vector whose root mixes in its element count, giving it SSZ
// list semantics: two lists with the same elements but different lengths
// (one padded with trailing empties) hash differently, unlike a bare
// Vector where trailing empties are indistinguishable from absence.
type List[R rawtree.RootStatus] struct {
	vector Vector[R]
}

// NewList creates a list of the given initial length and optional maximum
// length.
func NewList[R rawtree.RootStatus](db merkle.Backend, length int, maxLen *int) (List[R], error) {
	v, err := NewVector[R](db, length, maxLen)
	if err != nil {
		return List[R]{}, err
	}
	return List[R]{vector: v}, nil
}

func (l List[R]) Length() int  { return l.vector.Length() }
func (l List[R]) MaxLen() *int { return l.vector.MaxLen() }

// ContentRoot is the root of the backing vector, without the length mixin.
func (l List[R]) ContentRoot() merkle.Value { return l.vector.Root() }

// Root mixes the current length into the content root.
func (l List[R]) Root(db merkle.Backend) (merkle.Value, error) {
	return MixLength(db, l.vector.Root(), uint64(l.vector.Length()))
}

func (l List[R]) Get(db merkle.Backend, i int) (merkle.Value, error) {
	return l.vector.Get(db, i)
}

func (l List[R]) Set(db merkle.Backend, i int, value merkle.Value) (List[R], error) {
	nv, err := l.vector.Set(db, i, value)
	if err != nil {
		return List[R]{}, err
	}
	return List[R]{vector: nv}, nil
}

func (l List[R]) Push(db merkle.Backend, value merkle.Value) (List[R], error) {
	nv, err := l.vector.Push(db, value)
	if err != nil {
		return List[R]{}, err
	}
	return List[R]{vector: nv}, nil
}

func (l List[R]) Pop(db merkle.Backend) (List[R], merkle.Value, error) {
	nv, val, err := l.vector.Pop(db)
	if err != nil {
		return List[R]{}, merkle.Value{}, err
	}
	return List[R]{vector: nv}, val, nil
}

func (l List[R]) Drop(db merkle.Backend) error {
	return l.vector.Drop(db)
}
