// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.
//go:build cgo
// +build cgo

package merkle

import (
	"fmt"
	"unsafe"

	"github.com/OffchainLabs/hashtree"
)

func init() {
	ActiveHashFn = hashtreeCombine
}

// hashtreeCombine routes a single pair-combine through the AVX-accelerated
// hashtree library. It is only ever called with a 64-byte input by Combine,
// so the batch size is always 1.
func hashtreeCombine(dst []byte, input []byte) error {
	if len(input) != 64 {
		return fmt.Errorf("merkle: cgo combine expects 64 input bytes, got %d", len(input))
	}
	if len(dst) < 32 {
		return fmt.Errorf("merkle: cgo combine expects 32 dst bytes, got %d", len(dst))
	}
	chunks := unsafe.Slice((*[32]byte)(unsafe.Pointer(&input[0])), 2)
	digests := unsafe.Slice((*[32]byte)(unsafe.Pointer(&dst[0])), 1)
	hashtree.Hash(digests, chunks)
	return nil
}
