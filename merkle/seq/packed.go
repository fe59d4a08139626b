// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package seq

import (
	"fmt"

	"github.com/bmtree/bm/merkle"
	"github.com/bmtree/bm/merkle/index"
	"github.com/bmtree/bm/merkle/rawtree"
)

// ByteRange is a half-open [Start, End) span within a 32-byte host leaf.
type ByteRange struct {
	Start, End int
}

// coverings locates, for a fixed-size packed value at valueIndex, which
// host leaf(es) it lives in and which byte ranges of those leaves it
// occupies.
//
// When a value is no larger than a host leaf, several values share one
// leaf and coverings returns a single sub-range of it. When a value is
// larger than a host leaf, it spans several whole leaves and coverings
// returns one full-width range per leaf.
func coverings(hostBytes, valueBytes int, valueIndex uint64) (hostIndex uint64, ranges []ByteRange) {
	if valueBytes <= hostBytes {
		perHost := uint64(hostBytes / valueBytes)
		hostIndex = valueIndex / perHost
		offset := int(valueIndex%perHost) * valueBytes
		return hostIndex, []ByteRange{{offset, offset + valueBytes}}
	}

	hostsPerValue := valueBytes / hostBytes
	hostIndex = valueIndex * uint64(hostsPerValue)
	ranges = make([]ByteRange, hostsPerValue)
	for i := range ranges {
		ranges[i] = ByteRange{0, hostBytes}
	}
	return hostIndex, ranges
}

// hostLenFor returns the number of 32-byte host leaves needed to hold
// length values of valueSize bytes each.
func hostLenFor(length, valueSize int) int {
	return (length*valueSize + 31) / 32
}

// PackedVector is a sequence of fixed-size byte values packed several to a
// host leaf (when valueSize < 32) or spanning several host leaves (when
// valueSize > 32), rather than one value per leaf.
type PackedVector[R rawtree.RootStatus] struct {
	raw       rawtree.Raw[R]
	length    int
	maxLen    *int
	valueSize int
}

// NewPackedVector creates a packed vector of the given initial length (all
// zero-valued elements), optional maximum length, and fixed value size. It
// rejects a maxLen smaller than the initial length, since such a vector
// could never hold what it was constructed with.
func NewPackedVector[R rawtree.RootStatus](db merkle.Backend, length int, maxLen *int, valueSize int) (PackedVector[R], error) {
	if maxLen != nil && *maxLen < length {
		return PackedVector[R]{}, fmt.Errorf("seq: %w: max length %d is smaller than initial length %d", merkle.ErrInvalidParameter, *maxLen, length)
	}
	depth := requiredDepth(hostLenFor(length, valueSize))
	return PackedVector[R]{
		raw:       rawtree.Empty[R](db, depth),
		length:    length,
		maxLen:    maxLen,
		valueSize: valueSize,
	}, nil
}

func (v PackedVector[R]) Length() int          { return v.length }
func (v PackedVector[R]) MaxLen() *int         { return v.maxLen }
func (v PackedVector[R]) ValueSize() int       { return v.valueSize }
func (v PackedVector[R]) Root() merkle.Value   { return v.raw.Root() }
func (v PackedVector[R]) Drop(db merkle.Backend) error {
	return v.raw.Drop(db)
}

func (v PackedVector[R]) checkIndex(i int) error {
	if i < 0 || i >= v.length {
		return fmt.Errorf("seq: packed index %d out of range [0,%d)", i, v.length)
	}
	return nil
}

// Get returns the valueSize-byte payload at logical index i.
func (v PackedVector[R]) Get(db merkle.Backend, i int) ([]byte, error) {
	if err := v.checkIndex(i); err != nil {
		return nil, err
	}
	hostIndex, ranges := coverings(32, v.valueSize, uint64(i))
	depth := v.raw.Depth()

	out := make([]byte, 0, v.valueSize)
	for j, r := range ranges {
		leaf, err := v.raw.Get(db, index.FromZero(depth, hostIndex+uint64(j)))
		if err != nil {
			return nil, err
		}
		b := leaf.Bytes()
		out = append(out, b[r.Start:r.End]...)
	}
	return out, nil
}

// Set replaces the valueSize-byte payload at logical index i.
func (v PackedVector[R]) Set(db merkle.Backend, i int, value []byte) (PackedVector[R], error) {
	if err := v.checkIndex(i); err != nil {
		return PackedVector[R]{}, err
	}
	if len(value) != v.valueSize {
		return PackedVector[R]{}, fmt.Errorf("seq: packed value must be %d bytes, got %d", v.valueSize, len(value))
	}

	hostIndex, ranges := coverings(32, v.valueSize, uint64(i))
	depth := v.raw.Depth()
	raw := v.raw
	offset := 0
	for j, r := range ranges {
		idx := index.FromZero(depth, hostIndex+uint64(j))

		var buf [32]byte
		if r.Start != 0 || r.End != 32 {
			existing, err := raw.Get(db, idx)
			if err != nil {
				return PackedVector[R]{}, err
			}
			buf = existing.Bytes()
		}
		copy(buf[r.Start:r.End], value[offset:offset+(r.End-r.Start)])
		offset += r.End - r.Start

		newRaw, err := raw.Set(db, idx, merkle.End(buf))
		if err != nil {
			return PackedVector[R]{}, err
		}
		raw = newRaw
	}

	return PackedVector[R]{raw: raw, length: v.length, maxLen: v.maxLen, valueSize: v.valueSize}, nil
}

// Push appends a valueSize-byte payload, growing the host-leaf tree by
// however many levels are needed to fit it.
func (v PackedVector[R]) Push(db merkle.Backend, value []byte) (PackedVector[R], error) {
	if v.maxLen != nil && v.length >= *v.maxLen {
		return PackedVector[R]{}, fmt.Errorf("seq: %w: packed push exceeds max length %d", merkle.ErrAccessOverflowed, *v.maxLen)
	}
	if len(value) != v.valueSize {
		return PackedVector[R]{}, fmt.Errorf("seq: packed value must be %d bytes, got %d", v.valueSize, len(value))
	}

	raw := v.raw
	needed := hostLenFor(v.length+1, v.valueSize)
	for (1 << uint(raw.Depth())) < needed {
		extended, err := raw.Extend(db)
		if err != nil {
			return PackedVector[R]{}, err
		}
		raw = extended
	}

	grown := PackedVector[R]{raw: raw, length: v.length + 1, maxLen: v.maxLen, valueSize: v.valueSize}
	return grown.Set(db, v.length, value)
}

// Pop removes and returns the last valueSize-byte payload, shrinking the
// host-leaf tree once the remaining values no longer need the right half.
func (v PackedVector[R]) Pop(db merkle.Backend) (PackedVector[R], []byte, error) {
	if v.length == 0 {
		return PackedVector[R]{}, nil, fmt.Errorf("seq: pop from empty packed vector")
	}

	value, err := v.Get(db, v.length-1)
	if err != nil {
		return PackedVector[R]{}, nil, err
	}

	cleared, err := v.Set(db, v.length-1, make([]byte, v.valueSize))
	if err != nil {
		return PackedVector[R]{}, nil, err
	}

	raw := cleared.raw
	newLength := v.length - 1
	needed := hostLenFor(newLength, v.valueSize)
	for raw.Depth() > 0 && needed <= (1<<uint(raw.Depth()-1)) {
		shrunk, err := raw.Shrink(db)
		if err != nil {
			return PackedVector[R]{}, nil, err
		}
		raw = shrunk
	}

	return PackedVector[R]{raw: raw, length: newLength, maxLen: v.maxLen, valueSize: v.valueSize}, value, nil
}

// PackedList is a PackedVector whose root mixes in its element count, the
// packed analogue of List.
type PackedList[R rawtree.RootStatus] struct {
	vector PackedVector[R]
}

// NewPackedList creates a packed list of the given initial length, optional
// maximum length, and fixed value size.
func NewPackedList[R rawtree.RootStatus](db merkle.Backend, length int, maxLen *int, valueSize int) (PackedList[R], error) {
	v, err := NewPackedVector[R](db, length, maxLen, valueSize)
	if err != nil {
		return PackedList[R]{}, err
	}
	return PackedList[R]{vector: v}, nil
}

func (l PackedList[R]) Length() int    { return l.vector.Length() }
func (l PackedList[R]) MaxLen() *int   { return l.vector.MaxLen() }
func (l PackedList[R]) ValueSize() int { return l.vector.ValueSize() }

func (l PackedList[R]) ContentRoot() merkle.Value { return l.vector.Root() }

func (l PackedList[R]) Root(db merkle.Backend) (merkle.Value, error) {
	return MixLength(db, l.vector.Root(), uint64(l.vector.Length()))
}

func (l PackedList[R]) Get(db merkle.Backend, i int) ([]byte, error) {
	return l.vector.Get(db, i)
}

func (l PackedList[R]) Set(db merkle.Backend, i int, value []byte) (PackedList[R], error) {
	nv, err := l.vector.Set(db, i, value)
	if err != nil {
		return PackedList[R]{}, err
	}
	return PackedList[R]{vector: nv}, nil
}

func (l PackedList[R]) Push(db merkle.Backend, value []byte) (PackedList[R], error) {
	nv, err := l.vector.Push(db, value)
	if err != nil {
		return PackedList[R]{}, err
	}
	return PackedList[R]{vector: nv}, nil
}

func (l PackedList[R]) Pop(db merkle.Backend) (PackedList[R], []byte, error) {
	nv, val, err := l.vector.Pop(db)
	if err != nil {
		return PackedList[R]{}, nil, err
	}
	return PackedList[R]{vector: nv}, val, nil
}

func (l PackedList[R]) Drop(db merkle.Backend) error {
	return l.vector.Drop(db)
}
