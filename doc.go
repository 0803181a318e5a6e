// Package blocksparse provides block-structured sparse matrices for
// numerical codes that decompose naturally into coupled sub-blocks.
//
// 🚀 What is blocksparse?
//
//	A small, single-purpose library that brings together:
//		• Coordinate sparse blocks: COO and symmetric (lower-triangle) COO
//		• BlockMatrix: an m×n grid of independently-typed sparse blocks
//		• BlockSymMatrix: symmetric block grids storing only the lower triangle
//		• BlockVector: the block-structured right-hand side / result vector
//		• Flattening: one coordinate matrix with globally consistent offsets
//
// ✨ Why choose blocksparse?
//
//   - Lazy assembly – assign blocks in any order, shapes are inferred
//   - Fail-fast consistency – dimension conflicts and incomplete grids are
//     rejected at the point of violation, never papered over
//   - Ecosystem-friendly – compressed forms via james-bowman/sparse, dense
//     output as gonum mat.Dense
//
// All code lives in one subpackage:
//
//	sparse/ - block matrices, block vectors and coordinate formats
//
// Quick ASCII example, a 2×2 structured problem:
//
//	┌        ┐
//	│ H   Aᵀ │    H: Hessian block (symmetric)
//	│ A   0  │    A: constraint Jacobian block
//	└        ┘
//
// Dive into the sparse package docs for the full API.
//
//	go get github.com/katalvlaran/blocksparse/sparse
package blocksparse
