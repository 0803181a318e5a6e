// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the sparse
// package. All operations MUST return these sentinels and tests MUST check
// them via errors.Is. No operation should panic on user-triggered error
// conditions. Panics are reserved for programmer errors in private helpers.

package sparse

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "sparse: ..." for consistency and to allow
// easy grepping across logs. DO NOT %w wrap these sentinels when returning
// directly; if context is essential, wrap with fmt.Errorf("ctx: %w", ErrX)
// at the outer boundary; callers will still use errors.Is to match.
//
// ERROR CLASSES (documented, enforced in tests):
// invalid argument (ErrInvalidDimensions, ErrOutOfRange, ErrNilBlock,
// ErrUpperTriangular, ErrNotSymmetric) -> dimension conflicts
// (ErrDimensionMismatch) -> structural incompleteness (ErrIncomplete)
// -> deliberately unimplemented combinators (ErrUnsupported).

var (
	// ErrInvalidDimensions is returned when a requested shape or block count
	// is non-positive. Constructors must validate before allocation.
	ErrInvalidDimensions = errors.New("sparse: dimensions must be > 0")

	// ErrOutOfRange indicates that a block-row, block-column or scalar index
	// is outside valid bounds. Public indexers MUST return this, not panic.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions: an assigned
	// block conflicting with an already-fixed row/column length, operands of
	// a binary operation with different shapes or block-shapes, or a vector
	// whose length does not match the matrix. Exact equality is required;
	// nothing is broadcast, truncated or padded.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrNilBlock indicates that a nil block or vector operand was passed
	// where a value is required.
	ErrNilBlock = errors.New("sparse: nil block")

	// ErrNotSymmetric signals that a diagonal slot of a symmetric block
	// matrix was assigned a block that does not report itself symmetric.
	// Rejected at assignment time, never deferred to flatten time.
	ErrNotSymmetric = errors.New("sparse: block is not symmetric")

	// ErrUpperTriangular signals an attempt to assign an upper-triangular
	// slot (block-row < block-column) of a symmetric block matrix. Only the
	// lower triangle is stored; the upper triangle is implicit.
	ErrUpperTriangular = errors.New("sparse: symmetric storage holds only the lower triangle")

	// ErrIncomplete is returned by completeness checks when a block-row or
	// block-column holds no block at all, making its length ambiguous. The
	// wrapping message names every offending index.
	ErrIncomplete = errors.New("sparse: empty block-rows or block-columns")

	// ErrUnsupported marks an intentionally unimplemented combinator:
	// in-place arithmetic on either variant, addition/subtraction on the
	// symmetric variant, reading an upper-triangular slot directly, or
	// combining a block matrix with a non-block operand.
	ErrUnsupported = errors.New("sparse: operation not supported")
)
