// SPDX-License-Identifier: MIT

// Package sparse: BlockSymMatrix, the symmetric block-structured matrix.
//
// Purpose:
//   - Store an n×n block grid as its lower triangle only (block-row index >=
//     block-column index); diagonal blocks must themselves be symmetric.
//   - Keep row and column lengths unified per diagonal index: a stored block
//     (i, j) fixes the length at index i from its row count and the length
//     at index j from its column count, on both vectors, so the mirrored
//     upper triangle is always well-shaped without being materialized.
//   - Expand, count and multiply with the implicit mirror: off-diagonal
//     blocks contribute twice, the diagonal exactly once.
//
// BlockSymMatrix shares blockGrid with BlockMatrix but is an independent
// type; assignment, completeness, counting and flattening differ enough that
// no inheritance chain would stay honest.
package sparse

import (
	"fmt"

	bsp "github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BlockSymMatrix is an n×n symmetric block matrix storing only slots with
// i >= j. The zero value is not usable; construct with NewBlockSymMatrix.
type BlockSymMatrix struct {
	g *blockGrid
}

// NewBlockSymMatrix returns an all-empty symmetric block matrix with n
// block-rows and block-columns. Returns ErrInvalidDimensions for n <= 0.
func NewBlockSymMatrix(n int) (*BlockSymMatrix, error) {
	g, err := newBlockGrid(n, n)
	if err != nil {
		return nil, sparseErrorf("NewBlockSymMatrix", err)
	}

	return &BlockSymMatrix{g: g}, nil
}

// BShape returns the fixed (n, n) block shape.
func (m *BlockSymMatrix) BShape() (nbrows, nbcols int) {
	return m.g.nbrows, m.g.nbcols
}

// Dims returns the accumulated scalar shape. Row and column lengths are
// unified, so the result is square.
func (m *BlockSymMatrix) Dims() (r, c int) { return m.g.dims() }

// RowBlockSizes returns a copy of the unified length vector.
func (m *BlockSymMatrix) RowBlockSizes() []int { return copyInts(m.g.rowLens) }

// ColBlockSizes returns a copy of the unified length vector; it always
// equals RowBlockSizes.
func (m *BlockSymMatrix) ColBlockSizes() []int { return copyInts(m.g.colLens) }

// covered reports whether diagonal index k is touched by any stored block,
// in block-row k or block-column k of the lower triangle. The mirrored
// upper-triangle occupant of a stored (i, k) block covers index k even
// though it is never materialized.
func (m *BlockSymMatrix) covered(k int) bool {
	return m.g.rowOccupied(k) || m.g.colOccupied(k)
}

// SetBlock assigns block b to lower-triangular slot (i, j).
// Constraints: i >= j (ErrUpperTriangular otherwise); a diagonal block must
// report itself symmetric (ErrNotSymmetric, rejected at assignment time);
// the block's row count must match any fixed length at index i and its
// column count any fixed length at index j (ErrDimensionMismatch with
// expected vs. got). On success both length vectors are updated at i and j.
// A nil b clears the slot and resets the lengths at i and j that lose their
// last covering block.
func (m *BlockSymMatrix) SetBlock(i, j int, b Block) error {
	if err := m.g.inBounds(i, j); err != nil {
		return sparseErrorf("BlockSymMatrix.SetBlock", err)
	}
	if i < j {
		return sparseErrorf("BlockSymMatrix.SetBlock", ErrUpperTriangular)
	}
	if b == nil {
		m.g.blocks[i][j] = nil
		m.g.mask[i][j] = false
		for _, k := range [2]int{i, j} {
			if !m.covered(k) {
				m.g.rowLens[k] = 0
				m.g.colLens[k] = 0
			}
		}

		return nil
	}
	if i == j && !b.Symmetric() {
		return sparseErrorf("BlockSymMatrix.SetBlock", ErrNotSymmetric)
	}

	br, bc := b.Dims()
	if m.g.rowLens[i] != 0 && br != m.g.rowLens[i] {
		return fmt.Errorf("BlockSymMatrix.SetBlock: block (%d,%d): row dimension got %d, expected %d: %w",
			i, j, br, m.g.rowLens[i], ErrDimensionMismatch)
	}
	if m.g.rowLens[j] != 0 && bc != m.g.rowLens[j] {
		return fmt.Errorf("BlockSymMatrix.SetBlock: block (%d,%d): column dimension got %d, expected %d: %w",
			i, j, bc, m.g.rowLens[j], ErrDimensionMismatch)
	}

	m.g.blocks[i][j] = b
	m.g.mask[i][j] = true
	// Unified lengths: index i takes the block's row count, index j its
	// column count, on both vectors (the mirror at (j, i) has the swapped
	// shape).
	m.g.rowLens[i], m.g.colLens[i] = br, br
	m.g.rowLens[j], m.g.colLens[j] = bc, bc

	return nil
}

// Block returns the stored block at lower-triangular slot (i, j), or nil
// for an empty slot. Requesting an upper-triangular slot (i < j) is an
// ErrUnsupported usage error: the upper triangle is implicit and is only
// materialized by ToFull or ToCOO.
func (m *BlockSymMatrix) Block(i, j int) (Block, error) {
	if err := m.g.inBounds(i, j); err != nil {
		return nil, sparseErrorf("BlockSymMatrix.Block", err)
	}
	if i < j {
		return nil, sparseErrorf("BlockSymMatrix.Block: upper triangle is implicit, use ToFull", ErrUnsupported)
	}

	return m.g.blocks[i][j], nil
}

// IsEmptyBlock reports whether stored slot (i, j) is empty. Upper-triangular
// slots are never stored and always report empty.
func (m *BlockSymMatrix) IsEmptyBlock(i, j int) (bool, error) {
	if err := m.g.inBounds(i, j); err != nil {
		return false, sparseErrorf("BlockSymMatrix.IsEmptyBlock", err)
	}

	return !m.g.mask[i][j], nil
}

// NNZ sums the stored nonzero counts of occupied lower-triangle slots.
func (m *BlockSymMatrix) NNZ() int {
	var total int
	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j <= i; j++ {
			if m.g.mask[i][j] {
				total += m.g.blocks[i][j].NNZ()
			}
		}
	}

	return total
}

// ExpandedNNZ counts the full matrix: diagonal slots contribute their own
// expanded count once, off-diagonal slots twice (stored block plus its
// mirrored transpose). Exact by construction; it sizes the flatten
// allocation.
func (m *BlockSymMatrix) ExpandedNNZ() int {
	var total int
	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j <= i; j++ {
			if !m.g.mask[i][j] {
				continue
			}
			if i == j {
				total += m.g.blocks[i][j].ExpandedNNZ()
			} else {
				total += 2 * m.g.blocks[i][j].ExpandedNNZ()
			}
		}
	}

	return total
}

// Symmetric always reports true.
func (m *BlockSymMatrix) Symmetric() bool { return true }

// HasEmptyRows reports whether any diagonal index is uncovered.
func (m *BlockSymMatrix) HasEmptyRows() bool {
	for k := 0; k < m.g.nbrows; k++ {
		if !m.covered(k) {
			return true
		}
	}

	return false
}

// HasEmptyCols equals HasEmptyRows: with unified lengths an empty
// block-column cannot occur independently of an empty block-row.
func (m *BlockSymMatrix) HasEmptyCols() bool { return m.HasEmptyRows() }

// CheckComplete enforces completeness over block-rows only: every diagonal
// index must be covered by at least one stored block in its row or column.
// The error names every uncovered index.
func (m *BlockSymMatrix) CheckComplete() error {
	var idx []int
	for k := 0; k < m.g.nbrows; k++ {
		if !m.covered(k) {
			idx = append(idx, k)
		}
	}
	if len(idx) > 0 {
		return fmt.Errorf("empty block-rows %v: %w", idx, ErrIncomplete)
	}

	return nil
}

// ToFull expands to an ordinary BlockMatrix: every stored slot (i, j) is
// copied to (i, j), and for i != j its transpose is placed at (j, i). This
// is the only place the implicit upper triangle is materialized as blocks.
// Requires completeness.
func (m *BlockSymMatrix) ToFull() (*BlockMatrix, error) {
	if err := m.CheckComplete(); err != nil {
		return nil, sparseErrorf("BlockSymMatrix.ToFull", err)
	}
	out, _ := NewBlockMatrix(m.g.nbrows, m.g.nbcols)
	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j <= i; j++ {
			if !m.g.mask[i][j] {
				continue
			}
			if err := out.g.place(i, j, m.g.blocks[i][j]); err != nil {
				return nil, sparseErrorf("BlockSymMatrix.ToFull", err)
			}
			if i != j {
				if err := out.g.place(j, i, m.g.blocks[i][j].Transpose()); err != nil {
					return nil, sparseErrorf("BlockSymMatrix.ToFull", err)
				}
			}
		}
	}

	return out, nil
}

// ToCOO flattens with the same prefix-sum offsets as the general variant,
// emitting both triangles: each stored off-diagonal block contributes two
// coordinate runs (itself, and its transpose at the mirrored offsets);
// diagonal blocks contribute their own full expansion once. The result is a
// plain COO that is numerically symmetric; nothing is de-duplicated.
// Requires completeness.
func (m *BlockSymMatrix) ToCOO() (*COO, error) {
	if err := m.CheckComplete(); err != nil {
		return nil, sparseErrorf("BlockSymMatrix.ToCOO", err)
	}

	// Unified lengths make row and column offsets identical.
	off := offsets(m.g.rowLens)
	total := m.ExpandedNNZ()
	rows := make([]int, 0, total)
	cols := make([]int, 0, total)
	data := make([]float64, 0, total)

	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j <= i; j++ {
			if !m.g.mask[i][j] {
				continue
			}
			full, err := m.g.blocks[i][j].ToCOO()
			if err != nil {
				return nil, sparseErrorf(fmt.Sprintf("BlockSymMatrix.ToCOO: block (%d,%d)", i, j), err)
			}
			br, bc, bv := full.Triples()
			for k := range bv {
				rows = append(rows, br[k]+off[i])
				cols = append(cols, bc[k]+off[j])
				data = append(data, bv[k])
			}
			if i != j {
				// Mirrored run: transposed entries at swapped offsets.
				for k := range bv {
					rows = append(rows, bc[k]+off[j])
					cols = append(cols, br[k]+off[i])
					data = append(data, bv[k])
				}
			}
		}
	}

	return &COO{
		r:    off[m.g.nbrows],
		c:    off[m.g.nbrows],
		rows: rows,
		cols: cols,
		data: data,
	}, nil
}

// ToCSR flattens the full expansion to compressed sparse row form.
func (m *BlockSymMatrix) ToCSR() (*bsp.CSR, error) {
	full, err := m.ToCOO()
	if err != nil {
		return nil, err
	}

	return full.ToCSR(), nil
}

// ToCSC flattens the full expansion to compressed sparse column form.
func (m *BlockSymMatrix) ToCSC() (*bsp.CSC, error) {
	full, err := m.ToCOO()
	if err != nil {
		return nil, err
	}

	return full.ToCSC(), nil
}

// ToDense flattens the full expansion to a dense gonum matrix.
func (m *BlockSymMatrix) ToDense() (*mat.Dense, error) {
	full, err := m.ToCOO()
	if err != nil {
		return nil, err
	}

	return full.ToDense(), nil
}

// Transpose returns the receiver: a symmetric block matrix is its own
// transpose. Use Clone for an independent deep-copy result.
func (m *BlockSymMatrix) Transpose() Block { return m }

// Clone reconstructs an independent BlockSymMatrix holding the same stored
// blocks. The grid and length bookkeeping are copied; the blocks themselves
// are shared, matching the grid's exclusive-until-replaced ownership model.
func (m *BlockSymMatrix) Clone() *BlockSymMatrix {
	out, _ := NewBlockSymMatrix(m.g.nbrows)
	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j <= i; j++ {
			if m.g.mask[i][j] {
				_ = out.SetBlock(i, j, m.g.blocks[i][j]) // consistent source, cannot fail
			}
		}
	}

	return out
}

// Scale returns a new BlockSymMatrix with every stored block scaled by
// alpha. Scaling preserves each block's variant, so diagonal blocks stay
// symmetric and the result remains a valid symmetric block matrix.
func (m *BlockSymMatrix) Scale(alpha float64) Block {
	out, _ := NewBlockSymMatrix(m.g.nbrows)
	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j <= i; j++ {
			if m.g.mask[i][j] {
				_ = out.SetBlock(i, j, m.g.blocks[i][j].Scale(alpha))
			}
		}
	}

	return out
}

// Add is unsupported on the symmetric variant; expand with ToFull first.
// Always returns ErrUnsupported.
func (m *BlockSymMatrix) Add(Block) (Block, error) {
	return nil, sparseErrorf("BlockSymMatrix.Add", ErrUnsupported)
}

// Sub is unsupported on the symmetric variant; expand with ToFull first.
// Always returns ErrUnsupported.
func (m *BlockSymMatrix) Sub(Block) (Block, error) {
	return nil, sparseErrorf("BlockSymMatrix.Sub", ErrUnsupported)
}

// MulVec multiplies by a flat dense vector, sliced per diagonal index using
// the unified length vector, then delegates to MulBlockVec.
func (m *BlockSymMatrix) MulVec(x []float64) ([]float64, error) {
	if err := m.CheckComplete(); err != nil {
		return nil, sparseErrorf("BlockSymMatrix.MulVec", err)
	}
	_, c := m.Dims()
	if err := checkVecLen(x, c); err != nil {
		return nil, sparseErrorf("BlockSymMatrix.MulVec", err)
	}
	bx, err := NewBlockVectorFromSlice(x, m.g.rowLens)
	if err != nil {
		return nil, sparseErrorf("BlockSymMatrix.MulVec", err)
	}
	by, err := m.MulBlockVec(bx)
	if err != nil {
		return nil, err
	}

	return by.Flatten()
}

// MulBlockVec multiplies by a block-structured vector. For every stored slot
// (i, j) the product block·x_j accumulates into result segment i, and for
// i != j the mirrored product blockᵀ·x_i additionally accumulates into
// segment j. The diagonal is accumulated exactly once.
func (m *BlockSymMatrix) MulBlockVec(x *BlockVector) (*BlockVector, error) {
	if x == nil {
		return nil, sparseErrorf("BlockSymMatrix.MulBlockVec", ErrNilBlock)
	}
	if err := m.CheckComplete(); err != nil {
		return nil, sparseErrorf("BlockSymMatrix.MulBlockVec", err)
	}
	if err := x.CheckComplete(); err != nil {
		return nil, sparseErrorf("BlockSymMatrix.MulBlockVec", err)
	}
	_, c := m.Dims()
	if x.NBlocks() != m.g.nbcols || x.Len() != c {
		return nil, sparseErrorf("BlockSymMatrix.MulBlockVec", ErrDimensionMismatch)
	}

	y, _ := NewBlockVector(m.g.nbrows)
	for k := 0; k < m.g.nbrows; k++ {
		y.segments[k] = make([]float64, m.g.rowLens[k])
	}
	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j <= i; j++ {
			if !m.g.mask[i][j] {
				continue
			}
			b := m.g.blocks[i][j]
			part, err := b.MulVec(x.segments[j])
			if err != nil {
				return nil, sparseErrorf(fmt.Sprintf("BlockSymMatrix.MulBlockVec: block (%d,%d)", i, j), err)
			}
			floats.Add(y.segments[i], part)
			if i != j {
				mirror, err := b.Transpose().MulVec(x.segments[i])
				if err != nil {
					return nil, sparseErrorf(fmt.Sprintf("BlockSymMatrix.MulBlockVec: block (%d,%d) mirror", i, j), err)
				}
				floats.Add(y.segments[j], mirror)
			}
		}
	}

	return y, nil
}

// MulSparse right-multiplies by a flat operand through the full expansion.
func (m *BlockSymMatrix) MulSparse(other mat.Matrix) (*bsp.CSR, error) {
	full, err := m.ToFull()
	if err != nil {
		return nil, sparseErrorf("BlockSymMatrix.MulSparse", err)
	}

	return full.MulSparse(other)
}

// AddInPlace is unsupported on block structures. Always returns ErrUnsupported.
func (m *BlockSymMatrix) AddInPlace(Block) error {
	return sparseErrorf("BlockSymMatrix.AddInPlace", ErrUnsupported)
}

// SubInPlace is unsupported on block structures. Always returns ErrUnsupported.
func (m *BlockSymMatrix) SubInPlace(Block) error {
	return sparseErrorf("BlockSymMatrix.SubInPlace", ErrUnsupported)
}

// ScaleInPlace is unsupported on block structures. Always returns ErrUnsupported.
func (m *BlockSymMatrix) ScaleInPlace(float64) error {
	return sparseErrorf("BlockSymMatrix.ScaleInPlace", ErrUnsupported)
}

// DivInPlace is unsupported on block structures. Always returns ErrUnsupported.
func (m *BlockSymMatrix) DivInPlace(float64) error {
	return sparseErrorf("BlockSymMatrix.DivInPlace", ErrUnsupported)
}

// String renders the stored (lower-triangle) occupancy map.
func (m *BlockSymMatrix) String() string {
	var s string
	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j <= i; j++ {
			if m.g.mask[i][j] {
				br, bc := m.g.blocks[i][j].Dims()
				s += fmt.Sprintf("(%d, %d): %dx%d, nnz=%d\n", i, j, br, bc, m.g.blocks[i][j].NNZ())
			} else {
				s += fmt.Sprintf("(%d, %d): empty\n", i, j)
			}
		}
	}

	return s
}
