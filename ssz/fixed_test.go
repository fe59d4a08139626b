// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package ssz

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bmtree/bm/merkle"
)

func TestVectorRoundtrip(t *testing.T) {
	db := merkle.NewInheritedEmptyBackend()
	want := []Uint64{1, 2, 3, 4, 5}

	root, err := EncodeVector[Uint64](db, want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeVector[Uint64](db, root, len(want))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestVectorDifferentLengthsHashDifferently(t *testing.T) {
	db := merkle.NewInheritedEmptyBackend()
	short, err := EncodeVector[Uint8](db, []Uint8{1, 2})
	if err != nil {
		t.Fatalf("encode short: %v", err)
	}
	long, err := EncodeVector[Uint8](db, []Uint8{1, 2, 0, 0})
	if err != nil {
		t.Fatalf("encode long: %v", err)
	}
	if short.Bytes() == long.Bytes() {
		t.Fatalf("expected vectors of different declared length to hash differently")
	}
}

func TestVectorOfH256(t *testing.T) {
	db := merkle.NewInheritedEmptyBackend()
	var a, b H256
	a[0], b[0] = 1, 2
	want := []H256{a, b}

	root, err := EncodeVector[H256](db, want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeVector[H256](db, root, len(want))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded vector mismatch (-want +got):\n%s", diff)
	}
}
