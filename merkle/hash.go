// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package merkle

import (
	"crypto/sha256"
	"sync"
)

// this combine hasher follows the pooled-hasher / precomputed zero-hash
// pattern used throughout the fastssz family; it has been narrowed to the
// single operation the tree substrate actually needs: combining two 32-byte
// children into their parent hash.

// HashFn combines a 64-byte (left||right) input into a 32-byte digest
// written to dst. Implementations may batch internally; dst and input are
// never aliased by callers in this package.
type HashFn func(dst []byte, input []byte) error

func sha256Pair(dst, input []byte) error {
	sum := sha256.Sum256(input)
	copy(dst, sum[:])
	return nil
}

// ActiveHashFn is the combine function used by Combine. It defaults to the
// portable crypto/sha256 implementation and may be swapped for a faster
// cgo-accelerated one during package init (see hash_cgo.go).
var ActiveHashFn HashFn = sha256Pair

// Combine hashes left and right together into the parent Key.
func Combine(left, right [32]byte) Key {
	var buf [64]byte
	copy(buf[:32], left[:])
	copy(buf[32:], right[:])

	var out [32]byte
	if err := ActiveHashFn(out[:], buf[:]); err != nil {
		// ActiveHashFn is expected to never fail on a well-formed 64-byte
		// input; fall back to the portable path rather than propagate an
		// error through every tree operation for an accelerator bug.
		out = sha256.Sum256(buf[:])
	}
	return Key(out)
}

var (
	zeroHashesOnce sync.Once
	zeroHashes     [65][32]byte
)

func ensureZeroHashes() {
	zeroHashesOnce.Do(func() {
		for i := 0; i < 64; i++ {
			zeroHashes[i+1] = [32]byte(Combine(zeroHashes[i], zeroHashes[i]))
		}
	})
}

// zeroHashAt returns the root hash of a depth-d subtree built entirely of
// zero End leaves, memoized after first use.
func zeroHashAt(depth int) Key {
	ensureZeroHashes()
	if depth > 64 {
		depth = 64
	}
	if depth < 0 {
		depth = 0
	}
	return Key(zeroHashes[depth])
}
