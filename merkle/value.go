// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

// Package merkle implements a content-addressed, reference-counted binary
// Merkle tree substrate: nodes are addressed by the hash of their children,
// identical subtrees are structurally shared, and a backend tracks how many
// live roots reference each stored node so that unreferenced subtrees can be
// reclaimed.
package merkle

import (
	"encoding/hex"
	"fmt"
)

// Key is the content address of an Intermediate node: the combine of its
// left and right children.
type Key [32]byte

// String renders the key as a hex string, for logging and error messages.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Value is a node in a binary Merkle tree. It is either an Intermediate,
// whose Key addresses a (left, right) pair stored in a Backend, or an End,
// an opaque 32-byte leaf payload that is never looked up in a Backend.
type Value struct {
	raw          [32]byte
	intermediate bool
}

// Intermediate constructs a Value referencing the node stored under k.
func Intermediate(k Key) Value {
	return Value{raw: [32]byte(k), intermediate: true}
}

// End constructs a leaf Value carrying the given 32-byte payload.
func End(leaf [32]byte) Value {
	return Value{raw: leaf}
}

// ZeroEnd is the End value whose payload is all zero bytes.
var ZeroEnd = End([32]byte{})

// IsIntermediate reports whether v addresses a stored (left, right) pair.
func (v Value) IsIntermediate() bool { return v.intermediate }

// IsEnd reports whether v is an opaque leaf payload.
func (v Value) IsEnd() bool { return !v.intermediate }

// Key returns the storage key. Only meaningful when IsIntermediate is true.
func (v Value) Key() Key { return Key(v.raw) }

// Leaf returns the leaf payload. Only meaningful when IsEnd is true.
func (v Value) Leaf() [32]byte { return v.raw }

// Bytes returns the underlying 32 bytes regardless of tag, which is what
// gets hashed when this value is combined with a sibling.
func (v Value) Bytes() [32]byte { return v.raw }

func (v Value) String() string {
	if v.intermediate {
		return fmt.Sprintf("Intermediate(%s)", Key(v.raw))
	}
	return fmt.Sprintf("End(%s)", hex.EncodeToString(v.raw[:]))
}
