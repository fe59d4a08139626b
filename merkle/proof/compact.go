// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package proof

import "github.com/bmtree/bm/merkle"

// CompactValue is the children of one recorded node: a flat, one-level
// slice of what Backend.Get observed.
type CompactValue struct {
	Left, Right merkle.Value
}

func toCompact(v merkle.Value) merkle.Value { return v }

// populator is implemented by backends (InMemoryBackend) that can accept
// proof-derived nodes without treating them as live, refcounted writes.
type populator interface {
	Populate(key merkle.Key, left, right merkle.Value)
}

// Node is a self-contained proof tree: a Single node is an opaque value
// known only by its bytes (the proof does not open it further); a Combined
// node carries both children, recursively.
type Node struct {
	Combined    bool
	Value       merkle.Value
	Left, Right *Node
}

func singleNode(v merkle.Value) *Node {
	return &Node{Value: v}
}

func combinedNode(left, right *Node) *Node {
	return &Node{Combined: true, Left: left, Right: right}
}

// Fold builds a self-contained Node tree rooted at root: every key present
// in proofs is expanded into a Combined node, and anything absent (because
// a reader never touched it, or it is a genuine End leaf) becomes an opaque
// Single.
func Fold(proofs map[merkle.Key]CompactValue, root merkle.Value) *Node {
	if !root.IsIntermediate() {
		return singleNode(root)
	}
	cv, ok := proofs[root.Key()]
	if !ok {
		return singleNode(root)
	}
	return combinedNode(Fold(proofs, cv.Left), Fold(proofs, cv.Right))
}

// Unfold walks a folded proof tree back into dst, populating every Combined
// node it finds (without affecting refcounts, if dst supports Populate),
// and returns the Value at the root of the reconstructed tree.
func Unfold(dst merkle.Backend, root *Node) merkle.Value {
	if !root.Combined {
		return root.Value
	}
	left := Unfold(dst, root.Left)
	right := Unfold(dst, root.Right)
	key := dst.Construct().IntermediateOf(left, right)
	if p, ok := dst.(populator); ok {
		p.Populate(key, left, right)
	} else {
		_ = dst.Insert(key, left, right)
	}
	return merkle.Intermediate(key)
}
