// SPDX-License-Identifier: MIT

// Package sparse: the block capability contract.
// This file intentionally contains ONLY the Block interface shared by every
// unit that may occupy a grid slot. Errors and validators live in dedicated
// files (errors.go, validators.go) per the package conventions.
package sparse

// Block is the capability contract every sparse sub-matrix stored in a block
// grid must satisfy. The set of implementations is closed: *COO, *SymCOO,
// *BlockMatrix and *BlockSymMatrix. Variant dispatch happens only through
// this interface, and only inside nonzero counting and flattening.
type Block interface {
	// Dims returns the scalar (row, column) shape of the block.
	// Complexity: O(1).
	Dims() (r, c int)

	// NNZ returns the number of stored nonzero entries. For symmetric or
	// nested blocks this counts internal storage, not the logical matrix.
	// Complexity: O(1) for coordinate formats, O(cells) for block grids.
	NNZ() int

	// Symmetric reports whether the block represents a symmetric matrix
	// whose upper triangle is implicit.
	Symmetric() bool

	// ExpandedNNZ returns the nonzero count of the fully expanded matrix:
	// equal to NNZ for plain blocks, larger for symmetric or nested blocks.
	// This count sizes flatten allocations and must be exact.
	ExpandedNNZ() int

	// ToCOO returns the full coordinate expansion of the block, both
	// triangles included for symmetric variants. Block grids require
	// completeness and return ErrIncomplete otherwise.
	ToCOO() (*COO, error)

	// Transpose returns the transposed block. Symmetric variants may return
	// the receiver; no variant mutates in place.
	Transpose() Block

	// Scale returns the block multiplied by alpha. Scaling preserves the
	// concrete variant, so symmetric blocks stay symmetric.
	Scale(alpha float64) Block

	// Add returns the elementwise sum with other. Unsupported operand
	// combinations return ErrUnsupported; shape conflicts return
	// ErrDimensionMismatch.
	Add(other Block) (Block, error)

	// Sub returns the elementwise difference with other.
	Sub(other Block) (Block, error)

	// MulVec returns the matrix–vector product with a flat dense vector.
	// Returns ErrDimensionMismatch unless len(x) equals the column count.
	MulVec(x []float64) ([]float64, error)
}
