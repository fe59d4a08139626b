// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package ssz

import (
	"fmt"

	"github.com/bmtree/bm/merkle"
)

// H256 is a raw 32-byte hash whose tree root is the hash itself, with no
// further hashing: the common element type for digest vectors and lists
// (block roots, state roots, and the like).
type H256 [32]byte

func (h H256) IntoTree(merkle.Backend) (merkle.Value, error) {
	return merkle.End(h), nil
}

func (h *H256) FromTree(root merkle.Value, _ merkle.Backend) error {
	if root.IsIntermediate() {
		return fmt.Errorf("ssz: h256 root must be an end leaf")
	}
	*h = H256(root.Leaf())
	return nil
}
