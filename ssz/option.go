// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package ssz

import (
	"fmt"

	"github.com/bmtree/bm/merkle"
)

// EncodeOption merkleizes an optional value as a selector leaf (0 for None,
// 1 for Some) combined with the value's own root, or the zero leaf when
// value is nil.
func EncodeOption[T IntoTree](db merkle.Backend, value *T) (merkle.Value, error) {
	content := merkle.ZeroEnd
	var selector byte
	if value != nil {
		v, err := (*value).IntoTree(db)
		if err != nil {
			return merkle.Value{}, err
		}
		content = v
		selector = 1
	}

	var selLeaf [32]byte
	selLeaf[0] = selector
	selValue := merkle.End(selLeaf)

	key := db.Construct().IntermediateOf(content, selValue)
	if err := db.Insert(key, content, selValue); err != nil {
		return merkle.Value{}, err
	}
	return merkle.Intermediate(key), nil
}

// DecodeOption reads an option tree back. It returns a nil pointer for None.
func DecodeOption[T any, PT FromTreePtr[T]](db merkle.Backend, root merkle.Value) (*T, error) {
	if !root.IsIntermediate() {
		return nil, fmt.Errorf("ssz: option root must be an intermediate node")
	}
	content, selValue, err := db.Get(root.Key())
	if err != nil {
		return nil, err
	}
	if selValue.IsIntermediate() {
		return nil, fmt.Errorf("ssz: option selector must be an end leaf")
	}
	selLeaf := selValue.Leaf()
	if err := checkPadding(selLeaf, 1); err != nil {
		return nil, err
	}

	switch selLeaf[0] {
	case 0:
		return nil, nil
	case 1:
		var out T
		if err := PT(&out).FromTree(content, db); err != nil {
			return nil, err
		}
		return &out, nil
	default:
		return nil, fmt.Errorf("ssz: invalid option selector byte %d", selLeaf[0])
	}
}
