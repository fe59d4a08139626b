// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.
//
// The generalized-index bookkeeping below is adapted from the multiproof
// verifier shipped with fastssz (itself derived from the EIP-4444 / SSZ
// multiproof reference algorithm), rewired onto this package's own Combine
// primitive and Index type instead of a flat byte-oriented tree walk.

package proof

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/bmtree/bm/merkle"
	"github.com/bmtree/bm/merkle/index"
)

// Leaf is a single-leaf inclusion proof: the generalized index of the leaf,
// its value, and the sibling hash at every level from the leaf up to the
// root.
type Leaf struct {
	Index index.Index
	Value [32]byte
	Path  [][32]byte
}

// VerifyLeaf checks a single-leaf proof against root.
func VerifyLeaf(root [32]byte, p Leaf) (bool, error) {
	depth := p.Index.Depth()
	if len(p.Path) != depth {
		return false, errors.New("proof: path length does not match index depth")
	}

	node := p.Value
	cur := p.Index
	for _, sibling := range p.Path {
		if cur&1 == 1 {
			node = [32]byte(merkle.Combine(sibling, node))
		} else {
			node = [32]byte(merkle.Combine(node, sibling))
		}
		cur = cur.Parent()
	}
	return bytes.Equal(root[:], node[:]), nil
}

// VerifyMultiproof checks a proof for multiple leaves at once against root.
// leaves and indices must be in the same order; proofHashes must be sorted
// by descending generalized index, matching the order requiredIndices
// returns.
func VerifyMultiproof(root [32]byte, proofHashes [][32]byte, leaves [][32]byte, indices []index.Index) (bool, error) {
	if len(indices) == 0 {
		return false, errors.New("proof: no indices supplied")
	}
	if len(leaves) != len(indices) {
		return false, errors.New("proof: leaf and index count mismatch")
	}

	required := requiredIndices(indices)
	if len(required) != len(proofHashes) {
		return false, fmt.Errorf("proof: need %d supporting hashes, got %d", len(required), len(proofHashes))
	}

	known := make(map[index.Index][32]byte, len(indices)+len(required))
	order := make([]index.Index, 0, len(indices)+len(required))
	for i, idx := range indices {
		known[idx] = leaves[i]
		order = append(order, idx)
	}
	for i, idx := range required {
		known[idx] = proofHashes[i]
		order = append(order, idx)
	}

	sort.Sort(sort.Reverse(indexSlice(order)))

	var aux []index.Index
	pos, posAux := 0, 0
	for posAux < len(aux) || pos < len(order) {
		var cur index.Index
		switch {
		case posAux >= len(aux):
			cur = order[pos]
			pos++
		case pos >= len(order):
			cur = aux[posAux]
			posAux++
		case aux[posAux] < order[pos]:
			cur = order[pos]
			pos++
		default:
			cur = aux[posAux]
			posAux++
		}

		if cur == index.Root {
			break
		}

		parent := cur.Parent()
		if _, done := known[parent]; done {
			continue
		}

		leftIdx := parent.Left()
		rightIdx := parent.Right()
		left, hasLeft := known[leftIdx]
		right, hasRight := known[rightIdx]
		if !hasLeft || !hasRight {
			return false, fmt.Errorf("proof: missing node for %d or %d", leftIdx, rightIdx)
		}

		known[parent] = [32]byte(merkle.Combine(left, right))
		aux = append(aux, parent)
	}

	got, ok := known[index.Root]
	if !ok {
		return false, errors.New("proof: root was never computed")
	}
	return bytes.Equal(got[:], root[:]), nil
}

type indexSlice []index.Index

func (s indexSlice) Len() int           { return len(s) }
func (s indexSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s indexSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// requiredIndices returns, in descending order, the generalized indices of
// every sibling needed to verify the given leaf indices that is not itself
// one of them and will not be derived along the way.
func requiredIndices(leafIndices []index.Index) []index.Index {
	if len(leafIndices) == 0 {
		return nil
	}

	leaves := make(map[index.Index]struct{}, len(leafIndices))
	for _, l := range leafIndices {
		leaves[l] = struct{}{}
	}

	required := make(map[index.Index]struct{})
	computed := make(map[index.Index]struct{})
	for _, l := range leafIndices {
		cur := l
		for cur != index.Root {
			sibling := siblingOf(cur)
			parent := cur.Parent()
			if _, isLeaf := leaves[sibling]; !isLeaf {
				required[sibling] = struct{}{}
			}
			computed[parent] = struct{}{}
			cur = parent
		}
	}

	out := make([]index.Index, 0, len(required))
	for idx := range required {
		if _, done := computed[idx]; !done {
			out = append(out, idx)
		}
	}
	sort.Sort(sort.Reverse(indexSlice(out)))
	return out
}

func siblingOf(i index.Index) index.Index {
	if i.Parent().Left() == i {
		return i.Parent().Right()
	}
	return i.Parent().Left()
}
