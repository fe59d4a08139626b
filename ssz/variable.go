// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package ssz

import (
	"encoding/binary"
	"fmt"

	"github.com/bmtree/bm/merkle"
	"github.com/bmtree/bm/merkle/index"
	"github.com/bmtree/bm/merkle/rawtree"
)

// listCapacity mirrors buildCompositeList's capacity choice so encode and
// decode agree on the tree depth for a given length and bound.
func listCapacity(length int, maxLen *int) int {
	capacity := length
	if maxLen != nil && *maxLen > capacity {
		capacity = *maxLen
	}
	return capacity
}

// EncodeList merkleizes elements into a list tree: a composite vector over
// the bound (or the element count, if unbounded) with a length mixin, so
// lists that differ only in length hash differently.
func EncodeList[T IntoTree](db merkle.Backend, elements []T, maxLen *int) (merkle.Value, error) {
	values := make([]merkle.Value, len(elements))
	for i, el := range elements {
		v, err := el.IntoTree(db)
		if err != nil {
			return merkle.Value{}, err
		}
		values[i] = v
	}
	return buildCompositeList(db, values, maxLen)
}

// decodeLengthLeaf reads back the element count written by seq.MixLength.
func decodeLengthLeaf(lengthValue merkle.Value) (int, error) {
	if lengthValue.IsIntermediate() {
		return 0, fmt.Errorf("ssz: %w: length mixin must be an end leaf", merkle.ErrCorruptedDatabase)
	}
	lengthLeaf := lengthValue.Leaf()
	if err := checkPadding(lengthLeaf, 8); err != nil {
		return 0, err
	}
	return int(binary.LittleEndian.Uint64(lengthLeaf[:8])), nil
}

// DecodeList reads a list tree rooted at root back into a slice. maxLen must
// match the bound used at encode time so the two agree on tree depth.
func DecodeList[T any, PT FromTreePtr[T]](db merkle.Backend, root merkle.Value, maxLen *int) ([]T, error) {
	if !root.IsIntermediate() {
		return nil, fmt.Errorf("ssz: list root must be an intermediate node")
	}
	contentRoot, lengthValue, err := db.Get(root.Key())
	if err != nil {
		return nil, err
	}
	length, err := decodeLengthLeaf(lengthValue)
	if err != nil {
		return nil, err
	}
	if maxLen != nil && length > *maxLen {
		return nil, fmt.Errorf("ssz: list length %d exceeds max length %d", length, *maxLen)
	}

	depth := requiredDepth(listCapacity(length, maxLen))
	tree := rawtree.New[rawtree.Dangling](contentRoot, depth)

	out := make([]T, length)
	for i := 0; i < length; i++ {
		val, err := tree.Get(db, index.FromZero(depth, uint64(i)))
		if err != nil {
			return nil, err
		}
		if err := PT(&out[i]).FromTree(val, db); err != nil {
			return nil, err
		}
	}
	return out, nil
}
