// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

// Package rawtree implements get/set/subtree navigation over a fixed-depth
// binary Merkle tree stored in a merkle.Backend, preserving the backend's
// refcounting invariants across every mutation.
package rawtree

import (
	"fmt"

	"github.com/bmtree/bm/merkle"
	"github.com/bmtree/bm/merkle/index"
)

// RootStatus distinguishes a tree that owns the backend reference to its
// root (and must release it on replacement or drop) from one that merely
// points at a root owned elsewhere.
type RootStatus interface {
	Owned() bool
}

// Owned marks a Raw tree as the sole holder of a reference to its root: Set
// releases the old root after installing the new one, and Drop releases
// the current root.
type Owned struct{}

func (Owned) Owned() bool { return true }

// Dangling marks a Raw tree as a view into a root owned elsewhere (for
// example, a Subtree view): Set and Drop never touch the backend's
// refcount for the root itself.
type Dangling struct{}

func (Dangling) Owned() bool { return false }

// Raw is a binary Merkle tree of a fixed depth, navigated by generalized
// index. The backend is supplied per operation rather than stored, mirroring
// how every mutation needs a mutable view of it anyway.
type Raw[R RootStatus] struct {
	root  merkle.Value
	depth int
}

// New wraps an existing root value as a tree of the given depth.
func New[R RootStatus](root merkle.Value, depth int) Raw[R] {
	return Raw[R]{root: root, depth: depth}
}

// Empty builds a tree of the given depth whose every leaf is the backend's
// canonical empty value. When the Construct materializes empties, the empty
// chain is inserted into the backend and an Owned tree takes out a root
// reference on it.
func Empty[R RootStatus](db merkle.Backend, depth int) Raw[R] {
	c := db.Construct()
	root := c.EmptyAt(depth)
	if c.MaterializeEmpty() {
		for d := 1; d <= depth; d++ {
			child := c.EmptyAt(d - 1)
			_ = db.Insert(c.IntermediateOf(child, child), child, child)
		}
		var status R
		if status.Owned() && root.IsIntermediate() {
			_ = db.Rootify(root.Key())
		}
	}
	return Raw[R]{root: root, depth: depth}
}

func (t Raw[R]) Root() merkle.Value { return t.root }
func (t Raw[R]) Depth() int         { return t.depth }

func (t Raw[R]) checkRoute(idx index.Index) ([]index.Selection, error) {
	route := index.Route(idx)
	if len(route) > t.depth {
		return nil, fmt.Errorf("rawtree: %w: index %d needs depth %d, tree has depth %d",
			merkle.ErrIndexOutOfRange, uint64(idx), len(route), t.depth)
	}
	return route, nil
}

// Get resolves the value stored at idx, without requiring that region of
// the tree to have ever been materialized.
func (t Raw[R]) Get(db merkle.Backend, idx index.Index) (merkle.Value, error) {
	route, err := t.checkRoute(idx)
	if err != nil {
		return merkle.Value{}, err
	}

	c := db.Construct()
	cur := t.root
	remaining := t.depth
	for _, sel := range route {
		if cur == c.EmptyAt(remaining) {
			remaining--
			cur = c.EmptyAt(remaining)
			continue
		}

		left, right, err := db.Get(cur.Key())
		if err != nil {
			return merkle.Value{}, err
		}
		remaining--
		if sel == index.Right {
			cur = right
		} else {
			cur = left
		}
	}
	return cur, nil
}

// Subtree returns a Dangling view of the subtree rooted at idx, without
// changing any refcount: the caller does not own a new reference, the
// parent tree still does.
func (t Raw[R]) Subtree(db merkle.Backend, idx index.Index) (Raw[Dangling], error) {
	route, err := t.checkRoute(idx)
	if err != nil {
		return Raw[Dangling]{}, err
	}

	c := db.Construct()
	cur := t.root
	remaining := t.depth
	for _, sel := range route {
		if cur == c.EmptyAt(remaining) {
			remaining--
			cur = c.EmptyAt(remaining)
			continue
		}

		left, right, err := db.Get(cur.Key())
		if err != nil {
			return Raw[Dangling]{}, err
		}
		remaining--
		if sel == index.Right {
			cur = right
		} else {
			cur = left
		}
	}
	return Raw[Dangling]{root: cur, depth: remaining}, nil
}

type frame struct {
	sel         index.Selection
	left, right merkle.Value
}

// Set writes value at idx and returns the tree with the new root. For an
// Owned tree, the previous root is released from the backend only after
// the new root has been rootified, so that a subtree shared between the
// old and new root is never prematurely collected.
func (t Raw[R]) Set(db merkle.Backend, idx index.Index, value merkle.Value) (Raw[R], error) {
	route, err := t.checkRoute(idx)
	if err != nil {
		return Raw[R]{}, err
	}

	c := db.Construct()

	if value.IsIntermediate() {
		// Grafting in a value that already lives in the backend (e.g. a
		// subtree root promoted by a caller): bump its refcount before the
		// walk below can possibly release its only other reference.
		if err := db.Rootify(value.Key()); err != nil {
			return Raw[R]{}, fmt.Errorf("%w: %s", merkle.ErrSetIntermediateNotExist, value.Key())
		}
	}

	stack := make([]frame, 0, len(route))
	cur := t.root
	remaining := t.depth
	for _, sel := range route {
		var left, right merkle.Value
		if cur == c.EmptyAt(remaining) {
			left = c.EmptyAt(remaining - 1)
			right = left
		} else {
			l, r, err := db.Get(cur.Key())
			if err != nil {
				return Raw[R]{}, err
			}
			left, right = l, r
		}
		stack = append(stack, frame{sel: sel, left: left, right: right})
		remaining--
		if sel == index.Right {
			cur = right
		} else {
			cur = left
		}
	}

	newValue := value
	for i := len(stack) - 1; i >= 0; i-- {
		f := stack[i]
		left, right := f.left, f.right
		if f.sel == index.Right {
			right = newValue
		} else {
			left = newValue
		}

		levelDepth := t.depth - i - 1
		if !c.MaterializeEmpty() && left == c.EmptyAt(levelDepth) && right == c.EmptyAt(levelDepth) {
			// Both children collapsed back to the canonical empty subtree:
			// propagate the sentinel upward instead of storing a node for
			// it, matching the unit-empty contract that empties are never
			// materialized.
			newValue = left
			continue
		}

		key := c.IntermediateOf(left, right)
		if err := db.Insert(key, left, right); err != nil {
			return Raw[R]{}, err
		}
		newValue = merkle.Intermediate(key)
	}

	var status R
	if status.Owned() {
		if newValue.IsIntermediate() {
			if err := db.Rootify(newValue.Key()); err != nil {
				return Raw[R]{}, err
			}
		}
		if t.root.IsIntermediate() {
			if err := db.Unrootify(t.root.Key()); err != nil {
				return Raw[R]{}, err
			}
		}
	}

	return Raw[R]{root: newValue, depth: t.depth}, nil
}

// Drop releases this tree's reference to its root. It is a no-op for
// Dangling trees, which never held a reference of their own.
func (t Raw[R]) Drop(db merkle.Backend) error {
	var status R
	if !status.Owned() {
		return nil
	}
	if t.root.IsIntermediate() {
		return db.Unrootify(t.root.Key())
	}
	return nil
}

// Leak converts an Owned tree into a Dangling view of the same root without
// releasing the backend reference: the caller becomes responsible for it,
// typically by grafting it into another tree via Set.
func Leak[R RootStatus](t Raw[R]) Raw[Dangling] {
	return Raw[Dangling]{root: t.root, depth: t.depth}
}

// Promote converts a Dangling view into an Owned tree by taking out a new
// root reference on its behalf.
func Promote(db merkle.Backend, t Raw[Dangling]) (Raw[Owned], error) {
	if t.root.IsIntermediate() {
		if err := db.Rootify(t.root.Key()); err != nil {
			return Raw[Owned]{}, err
		}
	}
	return Raw[Owned]{root: t.root, depth: t.depth}, nil
}

// Extend grows the tree by one level: the new root combines the current
// root (as the left child) with a same-depth empty subtree (as the right
// child), doubling capacity.
func (t Raw[R]) Extend(db merkle.Backend) (Raw[R], error) {
	c := db.Construct()
	emptySibling := c.EmptyAt(t.depth)

	var newRoot merkle.Value
	if !c.MaterializeEmpty() && t.root == emptySibling {
		newRoot = c.EmptyAt(t.depth + 1)
	} else {
		key := c.IntermediateOf(t.root, emptySibling)
		if err := db.Insert(key, t.root, emptySibling); err != nil {
			return Raw[R]{}, err
		}
		newRoot = merkle.Intermediate(key)
	}

	var status R
	if status.Owned() {
		if newRoot.IsIntermediate() {
			if err := db.Rootify(newRoot.Key()); err != nil {
				return Raw[R]{}, err
			}
		}
		if t.root.IsIntermediate() {
			if err := db.Unrootify(t.root.Key()); err != nil {
				return Raw[R]{}, err
			}
		}
	}

	return Raw[R]{root: newRoot, depth: t.depth + 1}, nil
}

// Shrink halves capacity by discarding the right half of the tree and
// promoting the left child to root. The discarded half is collected by the
// backend like any other released reference.
func (t Raw[R]) Shrink(db merkle.Backend) (Raw[R], error) {
	if t.depth == 0 {
		return Raw[R]{}, fmt.Errorf("rawtree: cannot shrink a depth-0 tree")
	}
	c := db.Construct()

	var left merkle.Value
	if t.root == c.EmptyAt(t.depth) {
		left = c.EmptyAt(t.depth - 1)
	} else {
		l, _, err := db.Get(t.root.Key())
		if err != nil {
			return Raw[R]{}, err
		}
		left = l
	}

	var status R
	if status.Owned() {
		if left.IsIntermediate() {
			if err := db.Rootify(left.Key()); err != nil {
				return Raw[R]{}, err
			}
		}
		if t.root.IsIntermediate() {
			if err := db.Unrootify(t.root.Key()); err != nil {
				return Raw[R]{}, err
			}
		}
	}

	return Raw[R]{root: left, depth: t.depth - 1}, nil
}
