// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//   - Provide a single, canonical source of truth for common validation checks
//     and for the offset prefix-sum computation used by every flatten.
//   - Keep the block types minimal by delegating index/shape/vector guards here.
//   - Return plain sentinel errors (no wrapping) so call sites can wrap
//     uniformly via sparseErrorf.
//
// Determinism & Performance:
//   - All helpers are pure and deterministic; only offsets allocates.

package sparse

import "fmt"

// sparseErrorf wraps an underlying error with the given call-site tag.
// Used across the package to maintain consistent labeling of sentinel
// violations while keeping errors.Is matching intact.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// checkShape ensures a scalar shape is strictly positive.
// Complexity: O(1).
func checkShape(r, c int) error {
	if r <= 0 || c <= 0 {
		return ErrInvalidDimensions
	}

	return nil
}

// checkIndex ensures 0 <= i < n.
// Complexity: O(1).
func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return ErrOutOfRange
	}

	return nil
}

// checkVecLen ensures a dense vector operand is non-nil and has exactly n
// elements. Exact equality only; no broadcasting.
// Complexity: O(1).
func checkVecLen(x []float64, n int) error {
	if x == nil {
		return ErrNilBlock
	}
	if len(x) != n {
		return ErrDimensionMismatch
	}

	return nil
}

// offsets computes the prefix sums of lens: offsets(lens)[k] is the global
// scalar index where block index k starts, offsets(lens)[len(lens)] is the
// total. The result starts at 0 and is monotonically nondecreasing in block
// index order; every flatten relies on exactly this property.
// Complexity: O(len(lens)).
func offsets(lens []int) []int {
	off := make([]int, len(lens)+1)
	for k, n := range lens {
		off[k+1] = off[k] + n
	}

	return off
}

// sumInts returns the sum of lens. Shape queries recompute from the length
// vectors rather than caching, so partially-populated grids report the
// accumulated shape.
// Complexity: O(len(lens)).
func sumInts(lens []int) int {
	var total int
	for _, n := range lens {
		total += n
	}

	return total
}

// copyInts returns an independent copy of lens for public size accessors.
func copyInts(lens []int) []int {
	out := make([]int, len(lens))
	copy(out, lens)

	return out
}
