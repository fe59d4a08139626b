// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package rawtree

import (
	"testing"

	"github.com/bmtree/bm/merkle"
	"github.com/bmtree/bm/merkle/index"
)

func leaf(b byte) merkle.Value {
	var buf [32]byte
	buf[0] = b
	return merkle.End(buf)
}

func TestSetEmpty(t *testing.T) {
	db := merkle.NewInheritedEmptyBackend()
	tree := Empty[Owned](db, 2)

	if !tree.Root().IsIntermediate() {
		t.Fatalf("depth-2 empty root must be an intermediate")
	}
}

func TestSetSkip(t *testing.T) {
	// Setting the same already-canonical-empty leaf back must not grow the
	// backend: Insert is idempotent for an unchanged key.
	db := merkle.NewInheritedEmptyBackend()
	tree := Empty[Owned](db, 2)
	before := db.Len()

	updated, err := tree.Set(db, index.FromZero(2, 0), db.Construct().EmptyAt(0))
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if updated.Root() != tree.Root() {
		t.Fatalf("root changed after writing back the canonical empty value")
	}
	if db.Len() != before {
		t.Fatalf("backend grew from a no-op write: before=%d after=%d", before, db.Len())
	}
}

func TestSetBasic(t *testing.T) {
	db := merkle.NewInheritedEmptyBackend()
	tree := Empty[Owned](db, 2)

	tree, err := tree.Set(db, index.FromZero(2, 0), leaf(1))
	if err != nil {
		t.Fatalf("set 0: %v", err)
	}
	tree, err = tree.Set(db, index.FromZero(2, 3), leaf(2))
	if err != nil {
		t.Fatalf("set 3: %v", err)
	}

	got, err := tree.Get(db, index.FromZero(2, 0))
	if err != nil {
		t.Fatalf("get 0: %v", err)
	}
	if got != leaf(1) {
		t.Fatalf("get 0 = %v, want leaf(1)", got)
	}

	got, err = tree.Get(db, index.FromZero(2, 1))
	if err != nil {
		t.Fatalf("get 1: %v", err)
	}
	if got != db.Construct().EmptyAt(0) {
		t.Fatalf("get 1 should still read the canonical empty leaf")
	}

	got, err = tree.Get(db, index.FromZero(2, 3))
	if err != nil {
		t.Fatalf("get 3: %v", err)
	}
	if got != leaf(2) {
		t.Fatalf("get 3 = %v, want leaf(2)", got)
	}
}

// TestSetOnly checks that two different construction orders of the same
// final tree converge on identical backend state, the structural-sharing
// property the refcounted design exists for.
func TestSetOnly(t *testing.T) {
	dbA := merkle.NewInheritedEmptyBackend()
	treeA := Empty[Owned](dbA, 2)
	treeA, _ = treeA.Set(dbA, index.FromZero(2, 0), leaf(1))
	treeA, _ = treeA.Set(dbA, index.FromZero(2, 2), leaf(2))

	dbB := merkle.NewInheritedEmptyBackend()
	treeB := Empty[Owned](dbB, 2)
	treeB, _ = treeB.Set(dbB, index.FromZero(2, 2), leaf(2))
	treeB, _ = treeB.Set(dbB, index.FromZero(2, 0), leaf(1))

	if treeA.Root() != treeB.Root() {
		t.Fatalf("independent construction orders diverged: %v vs %v", treeA.Root(), treeB.Root())
	}
	if dbA.Len() != dbB.Len() {
		t.Fatalf("backend sizes diverged: %d vs %d", dbA.Len(), dbB.Len())
	}
}

// TestIntermediateRefcountCollapse mirrors writing two equal empty leaves
// (sharing one stored intermediate with refcount 2) and then collapsing the
// root back to the shared empty value, which should drop the refcount to 1
// rather than deleting the still-referenced node.
func TestIntermediateRefcountCollapse(t *testing.T) {
	db := merkle.NewInheritedEmptyBackend()
	tree := Empty[Owned](db, 1)

	empty0 := db.Construct().EmptyAt(0)
	tree, err := tree.Set(db, index.FromZero(1, 0), empty0)
	if err != nil {
		t.Fatalf("set 0: %v", err)
	}
	tree, err = tree.Set(db, index.FromZero(1, 1), empty0)
	if err != nil {
		t.Fatalf("set 1: %v", err)
	}

	root := tree.Root()
	if !root.IsIntermediate() {
		t.Fatalf("expected an intermediate root")
	}
	count, ok := db.RefCount(root.Key())
	if !ok || count != 1 {
		t.Fatalf("expected root refcount 1, got %d (tracked=%v)", count, ok)
	}
}

func TestDroppingOwnedTreeReleasesRoot(t *testing.T) {
	db := merkle.NewInheritedEmptyBackend()
	tree := Empty[Owned](db, 1)
	tree, err := tree.Set(db, index.FromZero(1, 0), leaf(9))
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	root := tree.Root()
	if err := tree.Drop(db); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, _, err := db.Get(root.Key()); err == nil {
		t.Fatalf("expected root to be collected after drop")
	}
}

func TestUnitEmptyNeverStoresCollapsedSubtree(t *testing.T) {
	db := merkle.NewUnitEmptyBackend([32]byte{0xff})
	tree := Empty[Owned](db, 2)

	tree, err := tree.Set(db, index.FromZero(2, 0), leaf(7))
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	storedAfterSet := db.Len()

	tree, err = tree.Set(db, index.FromZero(2, 0), db.Construct().EmptyAt(0))
	if err != nil {
		t.Fatalf("unset: %v", err)
	}
	if tree.Root() != db.Construct().EmptyAt(2) {
		t.Fatalf("expected root to collapse back to the canonical empty value")
	}
	if db.Len() >= storedAfterSet {
		t.Fatalf("expected backend to shrink back down, before-unset=%d after-unset=%d", storedAfterSet, db.Len())
	}
}
