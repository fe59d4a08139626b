// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package merkle

// Construct supplies the two policy decisions a tree needs beyond raw
// hashing: how to combine two children, and what the canonical empty
// subtree looks like at a given depth below a leaf (0 = the leaf itself).
type Construct interface {
	// IntermediateOf returns the storage key for the node with the given
	// children.
	IntermediateOf(left, right Value) Key

	// EmptyAt returns the canonical empty value at the given depth.
	EmptyAt(depth int) Value

	// MaterializeEmpty reports whether EmptyAt nodes must be physically
	// inserted into a Backend before being referenced by a parent, or
	// whether they are virtual sentinels that are never stored.
	MaterializeEmpty() bool
}

// InheritedEmptyConstruct builds empty subtrees the same way a populated
// subtree would be built: EmptyAt(d) for d>0 is the Intermediate whose
// children are both EmptyAt(d-1), recursively down to an End of the zero
// leaf. Every level of an inherited-empty chain is a real node and must be
// inserted into the backend before use, so that refcounting and structural
// sharing apply uniformly to empty and populated regions of the tree alike.
type InheritedEmptyConstruct struct{}

func (InheritedEmptyConstruct) IntermediateOf(left, right Value) Key {
	return Combine(left.Bytes(), right.Bytes())
}

func (InheritedEmptyConstruct) EmptyAt(depth int) Value {
	if depth <= 0 {
		return ZeroEnd
	}
	return Intermediate(zeroHashAt(depth))
}

func (InheritedEmptyConstruct) MaterializeEmpty() bool { return true }

// UnitEmptyConstruct collapses every empty subtree, at any depth, to a
// single sentinel End value that is never inserted into the backend. This
// is cheaper than InheritedEmptyConstruct for structures with large sparse
// regions (unbounded lists, packed sequences) since growing or shrinking an
// empty region costs nothing beyond comparing against the sentinel.
type UnitEmptyConstruct struct {
	// Sentinel is the leaf payload representing an empty subtree of any
	// depth. The zero value is the all-zero leaf.
	Sentinel [32]byte
}

func (UnitEmptyConstruct) IntermediateOf(left, right Value) Key {
	return Combine(left.Bytes(), right.Bytes())
}

func (c UnitEmptyConstruct) EmptyAt(depth int) Value {
	return End(c.Sentinel)
}

func (UnitEmptyConstruct) MaterializeEmpty() bool { return false }
