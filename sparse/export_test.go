// SPDX-License-Identifier: MIT
// Test-only exports. Kept minimal: offset computation is an internal detail,
// but its prefix-sum property is load-bearing for every flatten and is
// asserted directly.

package sparse

// OffsetsForTest exposes the offset prefix-sum helper to external tests.
func OffsetsForTest(lens []int) []int { return offsets(lens) }
