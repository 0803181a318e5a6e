// SPDX-License-Identifier: MIT

// Package sparse: BlockMatrix, the general block-structured sparse matrix.
//
// Purpose:
//   - Own an nbrows×nbcols grid of independently-typed sparse blocks.
//   - Infer per-block-row and per-block-column scalar lengths incrementally
//     as blocks are assigned, rejecting exact-dimension conflicts.
//   - Enforce the completeness invariant before any operation that needs the
//     global shape or values, then flatten to a single coordinate matrix
//     with prefix-sum offsets.
//
// Determinism:
//   - Flattening visits occupied slots row-major and preserves each block's
//     stored entry order, so repeated flattens are identical.
package sparse

import (
	"fmt"

	bsp "github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BlockMatrix is an nbrows×nbcols grid of optional sparse blocks. The grid
// shape is fixed at construction; the scalar shape accumulates as blocks are
// assigned. The zero value is not usable; construct with NewBlockMatrix.
type BlockMatrix struct {
	g *blockGrid
}

// NewBlockMatrix returns an all-empty block matrix with the given grid
// shape. Returns ErrInvalidDimensions unless both counts are positive.
// Complexity: O(nbrows*nbcols).
func NewBlockMatrix(nbrows, nbcols int) (*BlockMatrix, error) {
	g, err := newBlockGrid(nbrows, nbcols)
	if err != nil {
		return nil, sparseErrorf("NewBlockMatrix", err)
	}

	return &BlockMatrix{g: g}, nil
}

// BShape returns the fixed (block-row count, block-column count).
func (m *BlockMatrix) BShape() (nbrows, nbcols int) {
	return m.g.nbrows, m.g.nbcols
}

// Dims returns the accumulated scalar shape, recomputed from the length
// vectors on every call so partially-populated grids report honestly.
// Complexity: O(nbrows+nbcols).
func (m *BlockMatrix) Dims() (r, c int) { return m.g.dims() }

// RowBlockSizes returns a copy of the inferred row length vector.
func (m *BlockMatrix) RowBlockSizes() []int { return copyInts(m.g.rowLens) }

// ColBlockSizes returns a copy of the inferred column length vector.
func (m *BlockMatrix) ColBlockSizes() []int { return copyInts(m.g.colLens) }

// BlockShapes returns the (rows, cols) pair of every grid cell, occupied or
// not, as currently inferred.
// Complexity: O(nbrows*nbcols).
func (m *BlockMatrix) BlockShapes() [][][2]int {
	shapes := make([][][2]int, m.g.nbrows)
	for i := 0; i < m.g.nbrows; i++ {
		shapes[i] = make([][2]int, m.g.nbcols)
		for j := 0; j < m.g.nbcols; j++ {
			shapes[i][j] = [2]int{m.g.rowLens[i], m.g.colLens[j]}
		}
	}

	return shapes
}

// SetBlock assigns block b to slot (i, j), adopting or validating the row
// and column lengths (four-case inference; exact equality, no padding).
// A nil b clears the slot and resets the row/column lengths that lose their
// last occupant, each evaluated independently.
// Returns ErrOutOfRange or ErrDimensionMismatch (reporting expected vs. got).
func (m *BlockMatrix) SetBlock(i, j int, b Block) error {
	if err := m.g.inBounds(i, j); err != nil {
		return sparseErrorf("BlockMatrix.SetBlock", err)
	}
	if b == nil {
		m.g.clear(i, j)

		return nil
	}
	if err := m.g.place(i, j, b); err != nil {
		return sparseErrorf("BlockMatrix.SetBlock", err)
	}

	return nil
}

// Block returns the block stored at (i, j), or nil for an empty slot.
func (m *BlockMatrix) Block(i, j int) (Block, error) {
	if err := m.g.inBounds(i, j); err != nil {
		return nil, sparseErrorf("BlockMatrix.Block", err)
	}

	return m.g.blocks[i][j], nil
}

// IsEmptyBlock reports whether slot (i, j) is currently empty.
func (m *BlockMatrix) IsEmptyBlock(i, j int) (bool, error) {
	if err := m.g.inBounds(i, j); err != nil {
		return false, sparseErrorf("BlockMatrix.IsEmptyBlock", err)
	}

	return !m.g.mask[i][j], nil
}

// ResetRow clears every slot in block-row i and zeroes that row length.
func (m *BlockMatrix) ResetRow(i int) error {
	if err := checkIndex(i, m.g.nbrows); err != nil {
		return sparseErrorf("BlockMatrix.ResetRow", err)
	}
	m.g.resetRow(i)

	return nil
}

// ResetCol clears every slot in block-column j and zeroes that column
// length.
func (m *BlockMatrix) ResetCol(j int) error {
	if err := checkIndex(j, m.g.nbcols); err != nil {
		return sparseErrorf("BlockMatrix.ResetCol", err)
	}
	m.g.resetCol(j)

	return nil
}

// NNZ sums the stored nonzero counts of occupied slots. Completeness is not
// required.
func (m *BlockMatrix) NNZ() int {
	var total int
	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j < m.g.nbcols; j++ {
			if m.g.mask[i][j] {
				total += m.g.blocks[i][j].NNZ()
			}
		}
	}

	return total
}

// ExpandedNNZ sums the fully expanded nonzero counts of occupied slots,
// recursing through symmetric and nested blocks via their own ExpandedNNZ.
// This is the count the flatten allocation is sized by.
func (m *BlockMatrix) ExpandedNNZ() int {
	var total int
	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j < m.g.nbcols; j++ {
			if m.g.mask[i][j] {
				total += m.g.blocks[i][j].ExpandedNNZ()
			}
		}
	}

	return total
}

// Symmetric always reports false for the general variant.
func (m *BlockMatrix) Symmetric() bool { return false }

// HasEmptyRows reports whether any block-row holds no block.
func (m *BlockMatrix) HasEmptyRows() bool { return len(m.g.emptyRows()) > 0 }

// HasEmptyCols reports whether any block-column holds no block.
func (m *BlockMatrix) HasEmptyCols() bool { return len(m.g.emptyCols()) > 0 }

// CheckComplete enforces the completeness invariant: every block-row and
// every block-column must hold at least one block. The error names every
// offending index. Public operations needing global shape or values call
// this exactly once, up front.
// Complexity: O(nbrows*nbcols).
func (m *BlockMatrix) CheckComplete() error {
	rows := m.g.emptyRows()
	cols := m.g.emptyCols()
	if len(rows) == 0 && len(cols) == 0 {
		return nil
	}
	if len(rows) > 0 && len(cols) > 0 {
		return fmt.Errorf("empty block-rows %v and block-columns %v: %w", rows, cols, ErrIncomplete)
	}
	if len(rows) > 0 {
		return fmt.Errorf("empty block-rows %v: %w", rows, ErrIncomplete)
	}

	return fmt.Errorf("empty block-columns %v: %w", cols, ErrIncomplete)
}

// ToCOO flattens the grid into a single coordinate matrix. Offsets are
// prefix sums of the length vectors starting at 0, in block-index order;
// occupied slots are visited row-major; symmetric and nested blocks expand
// themselves first. Returns ErrIncomplete (naming indices) on an incomplete
// grid.
// Complexity: O(grid + expanded nnz).
func (m *BlockMatrix) ToCOO() (*COO, error) {
	if err := m.CheckComplete(); err != nil {
		return nil, sparseErrorf("BlockMatrix.ToCOO", err)
	}

	roff := offsets(m.g.rowLens)
	coff := offsets(m.g.colLens)
	total := m.ExpandedNNZ()
	rows := make([]int, 0, total)
	cols := make([]int, 0, total)
	data := make([]float64, 0, total)

	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j < m.g.nbcols; j++ {
			if !m.g.mask[i][j] {
				continue
			}
			full, err := m.g.blocks[i][j].ToCOO()
			if err != nil {
				return nil, sparseErrorf(fmt.Sprintf("BlockMatrix.ToCOO: block (%d,%d)", i, j), err)
			}
			br, bc, bv := full.Triples()
			for k := range bv {
				rows = append(rows, br[k]+roff[i])
				cols = append(cols, bc[k]+coff[j])
				data = append(data, bv[k])
			}
		}
	}

	return &COO{
		r:    roff[m.g.nbrows],
		c:    coff[m.g.nbcols],
		rows: rows,
		cols: cols,
		data: data,
	}, nil
}

// ToCSR flattens and converts to compressed sparse row form.
func (m *BlockMatrix) ToCSR() (*bsp.CSR, error) {
	full, err := m.ToCOO()
	if err != nil {
		return nil, err
	}

	return full.ToCSR(), nil
}

// ToCSC flattens and converts to compressed sparse column form.
func (m *BlockMatrix) ToCSC() (*bsp.CSC, error) {
	full, err := m.ToCOO()
	if err != nil {
		return nil, err
	}

	return full.ToCSC(), nil
}

// ToDense flattens and converts to a dense gonum matrix.
func (m *BlockMatrix) ToDense() (*mat.Dense, error) {
	full, err := m.ToCOO()
	if err != nil {
		return nil, err
	}

	return full.ToDense(), nil
}

// Transpose returns a new BlockMatrix with swapped grid shape where result
// slot (j, i) holds the transpose of source slot (i, j); empty slots stay
// empty. Completeness is not required.
// Complexity: O(grid + nnz).
func (m *BlockMatrix) Transpose() Block {
	out, _ := NewBlockMatrix(m.g.nbcols, m.g.nbrows) // shape is valid by construction
	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j < m.g.nbcols; j++ {
			if m.g.mask[i][j] {
				_ = out.g.place(j, i, m.g.blocks[i][j].Transpose()) // consistent source, cannot conflict
			}
		}
	}

	return out
}

// Scale returns a new BlockMatrix with every occupied block scaled by alpha;
// empty slots stay empty.
func (m *BlockMatrix) Scale(alpha float64) Block {
	out, _ := NewBlockMatrix(m.g.nbrows, m.g.nbcols)
	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j < m.g.nbcols; j++ {
			if m.g.mask[i][j] {
				_ = out.g.place(i, j, m.g.blocks[i][j].Scale(alpha))
			}
		}
	}

	return out
}

// Add returns m + other. The operand must be another *BlockMatrix of
// identical block-shape and scalar shape; both must be complete. Each cell
// combines piecewise: both occupied sums the blocks, one occupied carries
// that block through unchanged (no zero block is materialized), neither
// stays empty.
func (m *BlockMatrix) Add(other Block) (Block, error) {
	return m.combine("BlockMatrix.Add", other, false)
}

// Sub returns m - other with the same piecewise rules; a cell occupied only
// in other carries the negated block.
func (m *BlockMatrix) Sub(other Block) (Block, error) {
	return m.combine("BlockMatrix.Sub", other, true)
}

func (m *BlockMatrix) combine(tag string, other Block, negate bool) (Block, error) {
	if other == nil {
		return nil, sparseErrorf(tag, ErrNilBlock)
	}
	o, ok := other.(*BlockMatrix)
	if !ok {
		// Block-matrix arithmetic is only defined against the same variant.
		return nil, sparseErrorf(tag, ErrUnsupported)
	}
	if o.g.nbrows != m.g.nbrows || o.g.nbcols != m.g.nbcols {
		return nil, sparseErrorf(tag+": block shape", ErrDimensionMismatch)
	}
	if err := m.CheckComplete(); err != nil {
		return nil, sparseErrorf(tag, err)
	}
	if err := o.CheckComplete(); err != nil {
		return nil, sparseErrorf(tag, err)
	}
	mr, mc := m.Dims()
	or, oc := o.Dims()
	if mr != or || mc != oc {
		return nil, sparseErrorf(tag+": scalar shape", ErrDimensionMismatch)
	}

	out, _ := NewBlockMatrix(m.g.nbrows, m.g.nbcols)
	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j < m.g.nbcols; j++ {
			switch {
			case m.g.mask[i][j] && o.g.mask[i][j]:
				var (
					cell Block
					err  error
				)
				if negate {
					cell, err = m.g.blocks[i][j].Sub(o.g.blocks[i][j])
				} else {
					cell, err = m.g.blocks[i][j].Add(o.g.blocks[i][j])
				}
				if err != nil {
					return nil, sparseErrorf(fmt.Sprintf("%s: block (%d,%d)", tag, i, j), err)
				}
				if err = out.g.place(i, j, cell); err != nil {
					return nil, sparseErrorf(tag, err)
				}
			case m.g.mask[i][j]:
				// One-sided cell: carry the existing block through as-is.
				if err := out.g.place(i, j, m.g.blocks[i][j]); err != nil {
					return nil, sparseErrorf(tag, err)
				}
			case o.g.mask[i][j]:
				cell := o.g.blocks[i][j]
				if negate {
					cell = cell.Scale(-1)
				}
				if err := out.g.place(i, j, cell); err != nil {
					return nil, sparseErrorf(tag, err)
				}
			}
		}
	}

	return out, nil
}

// MulVec multiplies by a flat dense vector. The vector is sliced per
// block-column using the column length vector, contiguous in block-column
// order, and each block-row accumulates partial products over its occupied
// slots. Requires completeness.
// Complexity: O(grid + nnz).
func (m *BlockMatrix) MulVec(x []float64) ([]float64, error) {
	if err := m.CheckComplete(); err != nil {
		return nil, sparseErrorf("BlockMatrix.MulVec", err)
	}
	r, c := m.Dims()
	if err := checkVecLen(x, c); err != nil {
		return nil, sparseErrorf("BlockMatrix.MulVec", err)
	}

	roff := offsets(m.g.rowLens)
	coff := offsets(m.g.colLens)
	y := make([]float64, r)
	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j < m.g.nbcols; j++ {
			if !m.g.mask[i][j] {
				continue
			}
			part, err := m.g.blocks[i][j].MulVec(x[coff[j]:coff[j+1]])
			if err != nil {
				return nil, sparseErrorf(fmt.Sprintf("BlockMatrix.MulVec: block (%d,%d)", i, j), err)
			}
			floats.Add(y[roff[i]:roff[i+1]], part)
		}
	}

	return y, nil
}

// MulBlockVec multiplies by a block-structured vector whose block count
// must match the block-column count and whose total length must match the
// scalar column count. The result is a BlockVector with one segment per
// block-row, zero-initialized to that row's length.
func (m *BlockMatrix) MulBlockVec(x *BlockVector) (*BlockVector, error) {
	if x == nil {
		return nil, sparseErrorf("BlockMatrix.MulBlockVec", ErrNilBlock)
	}
	if err := m.CheckComplete(); err != nil {
		return nil, sparseErrorf("BlockMatrix.MulBlockVec", err)
	}
	if err := x.CheckComplete(); err != nil {
		return nil, sparseErrorf("BlockMatrix.MulBlockVec", err)
	}
	_, c := m.Dims()
	if x.NBlocks() != m.g.nbcols || x.Len() != c {
		return nil, sparseErrorf("BlockMatrix.MulBlockVec", ErrDimensionMismatch)
	}

	y, _ := NewBlockVector(m.g.nbrows)
	for i := 0; i < m.g.nbrows; i++ {
		y.segments[i] = make([]float64, m.g.rowLens[i])
	}
	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j < m.g.nbcols; j++ {
			if !m.g.mask[i][j] {
				continue
			}
			part, err := m.g.blocks[i][j].MulVec(x.segments[j])
			if err != nil {
				return nil, sparseErrorf(fmt.Sprintf("BlockMatrix.MulBlockVec: block (%d,%d)", i, j), err)
			}
			floats.Add(y.segments[i], part)
		}
	}

	return y, nil
}

// MulSparse right-multiplies by a flat (non-block) sparse or dense operand,
// first flattening the receiver to compressed row form. Block×block products
// are unrepresentable here: BlockMatrix does not implement mat.Matrix, so a
// block operand is rejected at compile time rather than falling back to a
// dense computation.
func (m *BlockMatrix) MulSparse(other mat.Matrix) (*bsp.CSR, error) {
	if other == nil {
		return nil, sparseErrorf("BlockMatrix.MulSparse", ErrNilBlock)
	}
	_, c := m.Dims()
	or, _ := other.Dims()
	if or != c {
		return nil, sparseErrorf("BlockMatrix.MulSparse", ErrDimensionMismatch)
	}
	lhs, err := m.ToCSR()
	if err != nil {
		return nil, err
	}
	out := &bsp.CSR{}
	out.Mul(lhs, other)

	return out, nil
}

// AddInPlace is unsupported: block structures are rebuilt, not mutated
// destructively. Always returns ErrUnsupported.
func (m *BlockMatrix) AddInPlace(Block) error {
	return sparseErrorf("BlockMatrix.AddInPlace", ErrUnsupported)
}

// SubInPlace is unsupported on block structures. Always returns ErrUnsupported.
func (m *BlockMatrix) SubInPlace(Block) error {
	return sparseErrorf("BlockMatrix.SubInPlace", ErrUnsupported)
}

// ScaleInPlace is unsupported on block structures. Always returns ErrUnsupported.
func (m *BlockMatrix) ScaleInPlace(float64) error {
	return sparseErrorf("BlockMatrix.ScaleInPlace", ErrUnsupported)
}

// DivInPlace is unsupported on block structures. Always returns ErrUnsupported.
func (m *BlockMatrix) DivInPlace(float64) error {
	return sparseErrorf("BlockMatrix.DivInPlace", ErrUnsupported)
}

// String renders the occupancy map, one line per grid cell.
func (m *BlockMatrix) String() string {
	var s string
	for i := 0; i < m.g.nbrows; i++ {
		for j := 0; j < m.g.nbcols; j++ {
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
