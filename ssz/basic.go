// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package ssz

import (
	"encoding/binary"
	"fmt"

	"github.com/bmtree/bm/merkle"
)

func checkPadding(leaf [32]byte, used int) error {
	for _, b := range leaf[used:] {
		if b != 0 {
			return fmt.Errorf("ssz: %w: leaf has nonzero padding past byte %d", merkle.ErrCorruptedDatabase, used)
		}
	}
	return nil
}

func endLeaf(used []byte) merkle.Value {
	var leaf [32]byte
	copy(leaf[:], used)
	return merkle.End(leaf)
}

// Unit is the zero-size SSZ type: its tree root is always the zero leaf.
type Unit struct{}

func (Unit) IntoTree(merkle.Backend) (merkle.Value, error) { return merkle.ZeroEnd, nil }
func (u *Unit) FromTree(root merkle.Value, _ merkle.Backend) error {
	if root.IsIntermediate() {
		return fmt.Errorf("ssz: unit root must be an end leaf")
	}
	return checkPadding(root.Leaf(), 0)
}

// Bool is the SSZ boolean type.
type Bool bool

func (b Bool) IntoTree(merkle.Backend) (merkle.Value, error) {
	if b {
		return endLeaf([]byte{1}), nil
	}
	return merkle.ZeroEnd, nil
}

func (b *Bool) FromTree(root merkle.Value, _ merkle.Backend) error {
	if root.IsIntermediate() {
		return fmt.Errorf("ssz: bool root must be an end leaf")
	}
	leaf := root.Leaf()
	switch leaf[0] {
	case 0:
		*b = false
	case 1:
		*b = true
	default:
		return fmt.Errorf("ssz: invalid bool byte %d", leaf[0])
	}
	return checkPadding(leaf, 1)
}

// Uint8 is the SSZ uint8 type.
type Uint8 uint8

func (v Uint8) IntoTree(merkle.Backend) (merkle.Value, error) { return endLeaf([]byte{byte(v)}), nil }
func (v *Uint8) FromTree(root merkle.Value, _ merkle.Backend) error {
	if root.IsIntermediate() {
		return fmt.Errorf("ssz: uint8 root must be an end leaf")
	}
	leaf := root.Leaf()
	*v = Uint8(leaf[0])
	return checkPadding(leaf, 1)
}

// Uint16 is the SSZ uint16 type.
type Uint16 uint16

func (v Uint16) IntoTree(merkle.Backend) (merkle.Value, error) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(v))
	return endLeaf(buf[:]), nil
}

func (v *Uint16) FromTree(root merkle.Value, _ merkle.Backend) error {
	if root.IsIntermediate() {
		return fmt.Errorf("ssz: uint16 root must be an end leaf")
	}
	leaf := root.Leaf()
	*v = Uint16(binary.LittleEndian.Uint16(leaf[:2]))
	return checkPadding(leaf, 2)
}

// Uint32 is the SSZ uint32 type.
type Uint32 uint32

func (v Uint32) IntoTree(merkle.Backend) (merkle.Value, error) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	return endLeaf(buf[:]), nil
}

func (v *Uint32) FromTree(root merkle.Value, _ merkle.Backend) error {
	if root.IsIntermediate() {
		return fmt.Errorf("ssz: uint32 root must be an end leaf")
	}
	leaf := root.Leaf()
	*v = Uint32(binary.LittleEndian.Uint32(leaf[:4]))
	return checkPadding(leaf, 4)
}

// Uint64 is the SSZ uint64 type.
type Uint64 uint64

func (v Uint64) IntoTree(merkle.Backend) (merkle.Value, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return endLeaf(buf[:]), nil
}

func (v *Uint64) FromTree(root merkle.Value, _ merkle.Backend) error {
	if root.IsIntermediate() {
		return fmt.Errorf("ssz: uint64 root must be an end leaf")
	}
	leaf := root.Leaf()
	*v = Uint64(binary.LittleEndian.Uint64(leaf[:8]))
	return checkPadding(leaf, 8)
}

// Uint128 is the SSZ uint128 type, stored as 16 little-endian bytes.
type Uint128 [16]byte

func (v Uint128) IntoTree(merkle.Backend) (merkle.Value, error) { return endLeaf(v[:]), nil }
func (v *Uint128) FromTree(root merkle.Value, _ merkle.Backend) error {
	if root.IsIntermediate() {
		return fmt.Errorf("ssz: uint128 root must be an end leaf")
	}
	leaf := root.Leaf()
	copy(v[:], leaf[:16])
	return checkPadding(leaf, 16)
}
