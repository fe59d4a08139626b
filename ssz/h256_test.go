// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package ssz

import "testing"

func TestH256RoundtripIsIdentity(t *testing.T) {
	var want H256
	for i := range want {
		want[i] = byte(i)
	}

	root, err := TreeRoot(want)
	if err != nil {
		t.Fatalf("tree root: %v", err)
	}
	if root != [32]byte(want) {
		t.Fatalf("expected h256 root to equal its own bytes, got %x want %x", root, want)
	}

	leaf, err := want.IntoTree(nil)
	if err != nil {
		t.Fatalf("into tree: %v", err)
	}
	var got H256
	if err := got.FromTree(leaf, nil); err != nil {
		t.Fatalf("from tree: %v", err)
	}
	if got != want {
		t.Fatalf("got %x, want %x", got, want)
	}
}
