// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package ssz

import (
	"testing"

	"github.com/bmtree/bm/merkle"
)

// record is a small composite IntoTree implementation, standing in for a
// struct-like SSZ container built out of EncodeVector.
type record struct {
	A Uint64
	B Uint64
}

func (r record) IntoTree(db merkle.Backend) (merkle.Value, error) {
	return EncodeVector[Uint64](db, []Uint64{r.A, r.B})
}

func TestTreeRootIsDeterministic(t *testing.T) {
	r := record{A: 1, B: 2}
	root1, err := TreeRoot(r)
	if err != nil {
		t.Fatalf("tree root: %v", err)
	}
	root2, err := TreeRoot(r)
	if err != nil {
		t.Fatalf("tree root: %v", err)
	}
	if root1 != root2 {
		t.Fatalf("expected identical inputs to hash identically")
	}
}

func TestTreeRootDiffersOnContent(t *testing.T) {
	rootA, err := TreeRoot(record{A: 1, B: 2})
	if err != nil {
		t.Fatalf("tree root: %v", err)
	}
	rootB, err := TreeRoot(record{A: 1, B: 3})
	if err != nil {
		t.Fatalf("tree root: %v", err)
	}
	if rootA == rootB {
		t.Fatalf("expected different content to hash differently")
	}
}

// mixed is a struct of three distinct SSZ basic types, merkleized through
// StructRoot rather than EncodeVector so its fields need not share a type.
type mixed struct {
	A Uint32
	B Uint64
	C Uint128
}

func (m mixed) IntoTree(db merkle.Backend) (merkle.Value, error) {
	aRoot, err := m.A.IntoTree(db)
	if err != nil {
		return merkle.Value{}, err
	}
	bRoot, err := m.B.IntoTree(db)
	if err != nil {
		return merkle.Value{}, err
	}
	cRoot, err := m.C.IntoTree(db)
	if err != nil {
		return merkle.Value{}, err
	}
	return StructRoot(db, []merkle.Value{aRoot, bRoot, cRoot})
}

// TestStructRootMixedFieldTypes reproduces the canonical three-field
// container root: the fourth slot of the next-power-of-two-sized composite
// is padded with the zero leaf, then combined pairwise bottom-up.
func TestStructRootMixedFieldTypes(t *testing.T) {
	var c Uint128
	c[0] = 3

	m := mixed{A: 1, B: 2, C: c}
	root, err := TreeRoot(m)
	if err != nil {
		t.Fatalf("tree root: %v", err)
	}

	var chunkA, chunkB, chunkC, chunkZero [32]byte
	chunkA[0] = 1
	chunkB[0] = 2
	chunkC[0] = 3

	left := merkle.Combine(chunkA, chunkB)
	right := merkle.Combine(chunkC, chunkZero)
	expected := merkle.Combine([32]byte(left), [32]byte(right))

	if root != [32]byte(expected) {
		t.Fatalf("root = %x, want %x", root, expected)
	}
}

func TestRequiredDepth(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4},
	}
	for _, c := range cases {
		if got := requiredDepth(c.n); got != c.want {
			t.Fatalf("requiredDepth(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}
