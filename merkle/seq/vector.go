// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

// Package seq builds typed sequence containers - vectors, length-mixed
// lists and byte-packed variants - on top of a rawtree.Raw binary tree.
package seq

import (
	"fmt"

	"github.com/bmtree/bm/merkle"
	"github.com/bmtree/bm/merkle/index"
	"github.com/bmtree/bm/merkle/rawtree"
)

// requiredDepth returns the smallest depth whose capacity (2^depth) is at
// least n.
func requiredDepth(n int) int {
	d := 0
	for (1 << uint(d)) < n {
		d++
	}
	return d
}

// Vector is a sequence of merkle.Value elements backed by a binary tree
// that grows and shrinks by one level (doubling or halving capacity) as
// elements are pushed and popped. MaxLen, when non-nil, bounds the number
// of live elements; a nil MaxLen makes the vector unbounded (elastic).
type Vector[R rawtree.RootStatus] struct {
	raw    rawtree.Raw[R]
	length int
	maxLen *int
}

// NewVector creates a vector of the given initial length (all canonical
// empty elements) and optional maximum length. It rejects a maxLen smaller
// than the initial length, since such a vector could never hold what it
// was constructed with.
func NewVector[R rawtree.RootStatus](db merkle.Backend, length int, maxLen *int) (Vector[R], error) {
	if maxLen != nil && *maxLen < length {
		return Vector[R]{}, fmt.Errorf("seq: %w: max length %d is smaller than initial length %d", merkle.ErrInvalidParameter, *maxLen, length)
	}
	depth := requiredDepth(length)
	return Vector[R]{
		raw:    rawtree.Empty[R](db, depth),
		length: length,
		maxLen: maxLen,
	}, nil
}

func (v Vector[R]) Length() int        { return v.length }
func (v Vector[R]) MaxLen() *int       { return v.maxLen }
func (v Vector[R]) Depth() int         { return v.raw.Depth() }
func (v Vector[R]) Root() merkle.Value { return v.raw.Root() }
func (v Vector[R]) Drop(db merkle.Backend) error {
	return v.raw.Drop(db)
}

func (v Vector[R]) checkIndex(i int) error {
	if i < 0 || i >= v.length {
		return fmt.Errorf("seq: index %d out of range [0,%d)", i, v.length)
	}
	return nil
}

// Get returns the element at logical index i.
func (v Vector[R]) Get(db merkle.Backend, i int) (merkle.Value, error) {
	if err := v.checkIndex(i); err != nil {
		return merkle.Value{}, err
	}
	return v.raw.Get(db, index.FromZero(v.raw.Depth(), uint64(i)))
}

// Set replaces the element at logical index i.
func (v Vector[R]) Set(db merkle.Backend, i int, value merkle.Value) (Vector[R], error) {
	if err := v.checkIndex(i); err != nil {
		return Vector[R]{}, err
	}
	newRaw, err := v.raw.Set(db, index.FromZero(v.raw.Depth(), uint64(i)), value)
	if err != nil {
		return Vector[R]{}, err
	}
	return Vector[R]{raw: newRaw, length: v.length, maxLen: v.maxLen}, nil
}

// Push appends a value, growing capacity by one tree level exactly when the
// vector is full.
func (v Vector[R]) Push(db merkle.Backend, value merkle.Value) (Vector[R], error) {
	if v.maxLen != nil && v.length >= *v.maxLen {
		return Vector[R]{}, fmt.Errorf("seq: %w: push exceeds max length %d", merkle.ErrAccessOverflowed, *v.maxLen)
	}

	raw := v.raw
	capacity := 1 << uint(raw.Depth())
	if v.length == capacity {
		extended, err := raw.Extend(db)
		if err != nil {
			return Vector[R]{}, err
		}
		raw = extended
	}

	newRaw, err := raw.Set(db, index.FromZero(raw.Depth(), uint64(v.length)), value)
	if err != nil {
		return Vector[R]{}, err
	}
	return Vector[R]{raw: newRaw, length: v.length + 1, maxLen: v.maxLen}, nil
}

// Pop removes and returns the last element, shrinking capacity by one tree
// level exactly when the remaining elements fit in the left half.
func (v Vector[R]) Pop(db merkle.Backend) (Vector[R], merkle.Value, error) {
	if v.length == 0 {
		return Vector[R]{}, merkle.Value{}, fmt.Errorf("seq: pop from empty vector")
	}

	idx := index.FromZero(v.raw.Depth(), uint64(v.length-1))
	value, err := v.raw.Get(db, idx)
	if err != nil {
		return Vector[R]{}, merkle.Value{}, err
	}

	newRaw, err := v.raw.Set(db, idx, db.Construct().EmptyAt(0))
	if err != nil {
		return Vector[R]{}, merkle.Value{}, err
	}
	newLength := v.length - 1

	if newRaw.Depth() > 0 && newLength <= (1<<uint(newRaw.Depth()-1)) {
		shrunk, err := newRaw.Shrink(db)
		if err != nil {
			return Vector[R]{}, merkle.Value{}, err
		}
		newRaw = shrunk
	}

	return Vector[R]{raw: newRaw, length: newLength, maxLen: v.maxLen}, value, nil
}
