// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package ssz

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/bmtree/bm/merkle"
)

// U256 is the SSZ uint256 type, backed by github.com/holiman/uint256 for
// arithmetic. Its tree leaf is the little-endian byte encoding.
type U256 struct {
	Int *uint256.Int
}

// NewU256 wraps an existing uint256.Int, defaulting to zero if n is nil.
func NewU256(n *uint256.Int) U256 {
	if n == nil {
		n = new(uint256.Int)
	}
	return U256{Int: n}
}

func (v U256) IntoTree(merkle.Backend) (merkle.Value, error) {
	n := v.Int
	if n == nil {
		n = new(uint256.Int)
	}
	leaf := n.Bytes32()
	reverse(leaf[:])
	return merkle.End(leaf), nil
}

func (v *U256) FromTree(root merkle.Value, _ merkle.Backend) error {
	if root.IsIntermediate() {
		return fmt.Errorf("ssz: u256 root must be an end leaf")
	}
	leaf := root.Leaf()
	reverse(leaf[:])
	if v.Int == nil {
		v.Int = new(uint256.Int)
	}
	v.Int.SetBytes32(leaf[:])
	return nil
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
