// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package seq

import (
	"encoding/binary"

	"github.com/bmtree/bm/merkle"
)

// MixLength hashes a length-mixin node combining a content root with its
// element count, the standard way a variable-length sequence's length
// becomes part of its own root hash: the count is written little-endian
// into the low 8 bytes of a 32-byte leaf, zero-padded, and combined with
// the content root as its sibling.
//
// The mixin node is derived on demand and not independently rootified: its
// lifetime is tied to whatever already holds a reference to contentRoot.
func MixLength(db merkle.Backend, contentRoot merkle.Value, length uint64) (merkle.Value, error) {
	var lenLeaf [32]byte
	binary.LittleEndian.PutUint64(lenLeaf[:8], length)

	lengthValue := merkle.End(lenLeaf)
	key := db.Construct().IntermediateOf(contentRoot, lengthValue)
	if err := db.Insert(key, contentRoot, lengthValue); err != nil {
		return merkle.Value{}, err
	}
	return merkle.Intermediate(key), nil
}
