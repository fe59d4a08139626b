// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package ssz

import (
	"testing"

	"github.com/bmtree/bm/merkle"
)

func TestUnitRoot(t *testing.T) {
	root, err := TreeRoot(Unit{})
	if err != nil {
		t.Fatalf("tree root: %v", err)
	}
	if root != ([32]byte{}) {
		t.Fatalf("expected unit root to be the zero hash, got %x", root)
	}
}

func TestBoolRoundtrip(t *testing.T) {
	for _, want := range []Bool{true, false} {
		root, err := TreeRoot(want)
		if err != nil {
			t.Fatalf("tree root: %v", err)
		}

		var got Bool
		if err := got.FromTree(merkle.End(root), nil); err != nil {
			t.Fatalf("from tree: %v", err)
		}
		if got != want {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestUint64Roundtrip(t *testing.T) {
	want := Uint64(0xdeadbeefcafebabe)
	root, err := TreeRoot(want)
	if err != nil {
		t.Fatalf("tree root: %v", err)
	}

	var got Uint64
	if err := got.FromTree(merkle.End(root), nil); err != nil {
		t.Fatalf("from tree: %v", err)
	}
	if got != want {
		t.Fatalf("got %#x, want %#x", got, want)
	}
}

func TestUint32RejectsNonzeroPadding(t *testing.T) {
	leaf := [32]byte{1, 0, 0, 0, 1}
	var v Uint32
	if err := v.FromTree(merkle.End(leaf), nil); err == nil {
		t.Fatalf("expected error for nonzero padding byte")
	}
}

func TestUint8RoundtripAllValues(t *testing.T) {
	for i := 0; i < 256; i++ {
		want := Uint8(i)
		root, err := TreeRoot(want)
		if err != nil {
			t.Fatalf("tree root: %v", err)
		}
		var got Uint8
		if err := got.FromTree(merkle.End(root), nil); err != nil {
			t.Fatalf("from tree: %v", err)
		}
		if got != want {
			t.Fatalf("got %d, want %d", got, want)
		}
	}
}
