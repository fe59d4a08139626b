// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package ssz

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"

	"github.com/bmtree/bm/merkle"
)

func TestU256Roundtrip(t *testing.T) {
	cases := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(255),
		new(big.Int).Lsh(big.NewInt(1), 200),
	}
	for _, c := range cases {
		n, overflow := uint256.FromBig(c)
		if overflow {
			t.Fatalf("unexpected overflow for %s", c)
		}
		want := NewU256(n)

		root, err := TreeRoot(want)
		if err != nil {
			t.Fatalf("tree root: %v", err)
		}

		var got U256
		if err := got.FromTree(merkle.End(root), nil); err != nil {
			t.Fatalf("from tree: %v", err)
		}
		if got.Int.Cmp(want.Int) != 0 {
			t.Fatalf("got %s, want %s", got.Int, want.Int)
		}
	}
}

func TestU256ZeroValue(t *testing.T) {
	var v U256
	root, err := TreeRoot(v)
	if err != nil {
		t.Fatalf("tree root: %v", err)
	}
	if root != ([32]byte{}) {
		t.Fatalf("expected zero U256 to hash to the zero leaf, got %x", root)
	}
}
