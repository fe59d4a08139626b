// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-ssz library.

package merkle

import "fmt"

var (
	// ErrFetchingKeyNotExist is returned by a Backend's Get when no node is
	// stored under the requested key.
	ErrFetchingKeyNotExist = fmt.Errorf("merkle: fetching key does not exist")

	// ErrRootifyKeyNotExist is returned by Rootify when the key has never
	// been inserted into the backend.
	ErrRootifyKeyNotExist = fmt.Errorf("merkle: rootify key does not exist")

	// ErrNotSupported is returned by backends that do not implement Get,
	// such as NoopBackend.
	ErrNotSupported = fmt.Errorf("merkle: operation not supported by this backend")

	// ErrIndexOutOfRange is returned when a generalized index falls outside
	// the depth of the tree it is being resolved against.
	ErrIndexOutOfRange = fmt.Errorf("merkle: index out of range for tree depth")

	// ErrCorruptedDatabase is returned when a stored node fails a structural
	// check it is expected to always satisfy - a leaf of the wrong shape, a
	// length mixin that isn't a bare end leaf, padding bytes that should be
	// zero but aren't. Reaching it means the backend holds data that could
	// not have come from this package's own encoders.
	ErrCorruptedDatabase = fmt.Errorf("merkle: corrupted database")

	// ErrAccessOverflowed is returned when an operation would grow a
	// bounded sequence past its declared maximum length.
	ErrAccessOverflowed = fmt.Errorf("merkle: access overflowed maximum length")

	// ErrInvalidParameter is returned when a caller-supplied parameter is
	// structurally invalid, such as a maximum length smaller than the
	// initial length it is supposed to bound.
	ErrInvalidParameter = fmt.Errorf("merkle: invalid parameter")

	// ErrSetIntermediateNotExist is returned when Set is asked to graft in
	// an Intermediate value whose key is not already present in the
	// backend, so there is nothing to rootify.
	ErrSetIntermediateNotExist = fmt.Errorf("merkle: set intermediate key does not exist")
)
