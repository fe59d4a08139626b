// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

// Package ssz implements SSZ-style tree serialization on top of the
// content-addressed merkle substrate: basic types, fixed-length vectors,
// length-mixed lists, an Option tag mixin, and the H256/Bitlist helpers
// needed to round-trip Ethereum consensus types.
package ssz

import (
	"github.com/bmtree/bm/merkle"
	"github.com/bmtree/bm/merkle/index"
	"github.com/bmtree/bm/merkle/rawtree"
	"github.com/bmtree/bm/merkle/seq"
)

// IntoTree is implemented by every value this package can turn into a
// merkle tree.
type IntoTree interface {
	IntoTree(db merkle.Backend) (merkle.Value, error)
}

// FromTree is implemented by every value this package can read back out of
// a merkle tree; it mutates the receiver in place.
type FromTree interface {
	FromTree(root merkle.Value, db merkle.Backend) error
}

// DefaultConstruct is the Construct used when a caller only wants a root
// hash and has no reason to pick a specific empty-subtree policy.
func DefaultConstruct() merkle.Construct { return merkle.InheritedEmptyConstruct{} }

// TreeRoot computes the 32-byte root of v without keeping any of the
// intermediate nodes around: it is backed by a merkle.NoopBackend, so
// nothing persists beyond the returned hash.
func TreeRoot(v IntoTree) ([32]byte, error) {
	db := merkle.NewNoopBackend(DefaultConstruct())
	root, err := v.IntoTree(db)
	if err != nil {
		return [32]byte{}, err
	}
	return root.Bytes(), nil
}

// requiredDepth returns the smallest depth whose capacity (2^depth) is at
// least n.
func requiredDepth(n int) int {
	d := 0
	for (1 << uint(d)) < n {
		d++
	}
	return d
}

// StructRoot merkleizes the already-encoded roots of a struct's fields, in
// declaration order, into a single composite root - the fixed-length vector
// merkleization SSZ uses for container types. It lets a hand-written
// IntoTree implementation for a heterogeneous struct reuse the same
// composite builder this package uses internally for vectors, without
// needing every field to share a type.
func StructRoot(db merkle.Backend, fields []merkle.Value) (merkle.Value, error) {
	return buildComposite(db, fields, requiredDepth(len(fields)))
}

// buildComposite merkleizes a slice of already-encoded element values into
// a fixed-length vector tree of the given depth, padding any slots beyond
// len(elements) with the backend's canonical empty leaf.
func buildComposite(db merkle.Backend, elements []merkle.Value, depth int) (merkle.Value, error) {
	tree := rawtree.Empty[rawtree.Dangling](db, depth)
	for i, el := range elements {
		var err error
		tree, err = tree.Set(db, index.FromZero(depth, uint64(i)), el)
		if err != nil {
			return merkle.Value{}, err
		}
	}
	return tree.Root(), nil
}

// buildCompositeList is buildComposite plus a length mixin, for SSZ list
// (rather than vector) semantics.
func buildCompositeList(db merkle.Backend, elements []merkle.Value, maxLen *int) (merkle.Value, error) {
	capacity := len(elements)
	if maxLen != nil && *maxLen > capacity {
		capacity = *maxLen
	}
	content, err := buildComposite(db, elements, requiredDepth(capacity))
	if err != nil {
		return merkle.Value{}, err
	}
	return seq.MixLength(db, content, uint64(len(elements)))
}
