// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package ssz

import (
	"fmt"

	"github.com/prysmaticlabs/go-bitfield"

	"github.com/bmtree/bm/merkle"
	"github.com/bmtree/bm/merkle/index"
	"github.com/bmtree/bm/merkle/rawtree"
	"github.com/bmtree/bm/merkle/seq"
)

const bitsPerLeaf = 256

func leavesForBits(n int) int {
	return (n + bitsPerLeaf - 1) / bitsPerLeaf
}

// packBits merkleizes bits LSB-first within each byte and byte 0 first
// within each 32-byte leaf, the standard SSZ packed-boolean layout.
func packBits(bits []bool) []merkle.Value {
	leafCount := leavesForBits(len(bits))
	values := make([]merkle.Value, leafCount)
	for li := 0; li < leafCount; li++ {
		var buf [32]byte
		base := li * bitsPerLeaf
		for bi := 0; bi < bitsPerLeaf && base+bi < len(bits); bi++ {
			if bits[base+bi] {
				buf[bi/8] |= 1 << uint(bi%8)
			}
		}
		values[li] = merkle.End(buf)
	}
	return values
}

// unpackBits reads leafCount leaves back into n logical bits. Any bit at or
// past index n within the unpacked leaves must be zero: a packed boolean
// tree has no way to represent padding other than zero bits, so a nonzero
// trailing bit means the tree was built from out-of-range data and the
// decode must be rejected rather than silently truncated.
func unpackBits(db merkle.Backend, root merkle.Value, depth, leafCount, n int) ([]bool, error) {
	tree := rawtree.New[rawtree.Dangling](root, depth)
	bits := make([]bool, n)
	for li := 0; li < leafCount; li++ {
		val, err := tree.Get(db, index.FromZero(depth, uint64(li)))
		if err != nil {
			return nil, err
		}
		if val.IsIntermediate() {
			return nil, fmt.Errorf("ssz: packed boolean leaf %d must be an end leaf", li)
		}
		leaf := val.Leaf()
		base := li * bitsPerLeaf
		for bi := 0; bi < bitsPerLeaf; bi++ {
			idx := base + bi
			set := leaf[bi/8]&(1<<uint(bi%8)) != 0
			if idx < n {
				bits[idx] = set
				continue
			}
			if set {
				return nil, fmt.Errorf("ssz: packed boolean tree has nonzero bit %d past length %d", idx, n)
			}
		}
	}
	return bits, nil
}

// BitVector is a fixed-length, bit-packed boolean sequence. Its length is a
// schema property rather than something recoverable from the tree alone, so
// decoding takes it explicitly instead of going through the FromTree
// interface.
type BitVector struct {
	Bits []bool
}

func (v BitVector) IntoTree(db merkle.Backend) (merkle.Value, error) {
	leaves := packBits(v.Bits)
	return buildComposite(db, leaves, requiredDepth(len(leaves)))
}

// DecodeBitVector reads a fixed-length packed boolean tree of the given bit
// length back out.
func DecodeBitVector(db merkle.Backend, root merkle.Value, length int) (BitVector, error) {
	leafCount := leavesForBits(length)
	depth := requiredDepth(leafCount)
	bits, err := unpackBits(db, root, depth, leafCount, length)
	if err != nil {
		return BitVector{}, err
	}
	return BitVector{Bits: bits}, nil
}

// ToBitfield converts v to a go-bitfield Bitvector64, for callers that need
// the wire-format byte layout rather than a []bool.
func (v BitVector) ToBitfield() bitfield.Bitvector64 {
	bv := bitfield.NewBitvector64()
	for i, b := range v.Bits {
		if i >= 64 {
			break
		}
		if b {
			bv.SetBitAt(uint64(i), true)
		}
	}
	return bv
}

// BitList is a variable-length, bit-packed boolean sequence with an optional
// maximum bit length, mirroring List's length-mixin treatment but at bit
// rather than element granularity.
type BitList struct {
	Bits   []bool
	MaxLen *int
}

func (l BitList) IntoTree(db merkle.Backend) (merkle.Value, error) {
	bitCapacity := listCapacity(len(l.Bits), l.MaxLen)
	leafCapacity := leavesForBits(bitCapacity)
	leaves := make([]merkle.Value, leafCapacity)
	packed := packBits(l.Bits)
	copy(leaves, packed)
	for i := len(packed); i < leafCapacity; i++ {
		leaves[i] = merkle.ZeroEnd
	}
	content, err := buildComposite(db, leaves, requiredDepth(leafCapacity))
	if err != nil {
		return merkle.Value{}, err
	}
	return seq.MixLength(db, content, uint64(len(l.Bits)))
}

// DecodeBitList reads a BitList tree back. maxLen must match the bound used
// at encode time so the two agree on tree depth.
func DecodeBitList(db merkle.Backend, root merkle.Value, maxLen *int) (BitList, error) {
	if !root.IsIntermediate() {
		return BitList{}, fmt.Errorf("ssz: bitlist root must be an intermediate node")
	}
	contentRoot, lengthValue, err := db.Get(root.Key())
	if err != nil {
		return BitList{}, err
	}
	length, err := decodeLengthLeaf(lengthValue)
	if err != nil {
		return BitList{}, err
	}
	if maxLen != nil && length > *maxLen {
		return BitList{}, fmt.Errorf("ssz: bitlist length %d exceeds max length %d", length, *maxLen)
	}

	bitCapacity := listCapacity(length, maxLen)
	leafCount := leavesForBits(bitCapacity)
	depth := requiredDepth(leafCount)
	bits, err := unpackBits(db, contentRoot, depth, leafCount, length)
	if err != nil {
		return BitList{}, err
	}
	return BitList{Bits: bits, MaxLen: maxLen}, nil
}

// ToBitfield converts l to a go-bitfield Bitlist, appending the sentinel bit
// that format uses to mark its true length.
func (l BitList) ToBitfield() bitfield.Bitlist {
	bl := bitfield.NewBitlist(uint64(len(l.Bits)))
	for i, b := range l.Bits {
		if b {
			bl.SetBitAt(uint64(i), true)
		}
	}
	return bl
}

// BitListFromBitfield builds a BitList from a go-bitfield Bitlist's logical
// bits (its sentinel bit is not part of the result).
func BitListFromBitfield(bl bitfield.Bitlist, maxLen *int) BitList {
	n := bl.Len()
	bits := make([]bool, n)
	for i := uint64(0); i < n; i++ {
		bits[i] = bl.BitAt(i)
	}
	return BitList{Bits: bits, MaxLen: maxLen}
}
