// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

// Package proof wraps a merkle.Backend to record the nodes a read touches
// that it did not itself insert, and reconstructs a pruned tree from that
// record that is sufficient to re-derive a single root.
package proof

import "github.com/bmtree/bm/merkle"

// Backend wraps an underlying merkle.Backend, passing every operation
// through unchanged except Get: any key resolved that was not previously
// written through this same wrapper is recorded into Proofs, so that the
// accumulated set is exactly the externally-supplied material a later
// verifier needs (the reader's own inserts are already implied by the
// values it chose to write).
type Backend struct {
	inner  merkle.Backend
	writes map[merkle.Key]struct{}

	// Proofs accumulates every (key -> children) pair read from inner that
	// this wrapper did not itself write.
	Proofs map[merkle.Key]CompactValue
}

// NewBackend wraps inner for proof recording.
func NewBackend(inner merkle.Backend) *Backend {
	return &Backend{
		inner:  inner,
		writes: make(map[merkle.Key]struct{}),
		Proofs: make(map[merkle.Key]CompactValue),
	}
}

func (b *Backend) Construct() merkle.Construct { return b.inner.Construct() }

func (b *Backend) Get(key merkle.Key) (merkle.Value, merkle.Value, error) {
	left, right, err := b.inner.Get(key)
	if err != nil {
		return merkle.Value{}, merkle.Value{}, err
	}
	if _, local := b.writes[key]; !local {
		if _, recorded := b.Proofs[key]; !recorded {
			b.Proofs[key] = CompactValue{Left: toCompact(left), Right: toCompact(right)}
		}
	}
	return left, right, nil
}

func (b *Backend) Insert(key merkle.Key, left, right merkle.Value) error {
	b.writes[key] = struct{}{}
	return b.inner.Insert(key, left, right)
}

func (b *Backend) Rootify(key merkle.Key) error   { return b.inner.Rootify(key) }
func (b *Backend) Unrootify(key merkle.Key) error { return b.inner.Unrootify(key) }
