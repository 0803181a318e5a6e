// SPDX-License-Identifier: MIT

// Package sparse: internal block grid storage.
// blockGrid carries the state shared by BlockMatrix and BlockSymMatrix: the
// 2D slot array, the parallel presence mask and the inferred row/column
// length vectors. The two public variants stay independent types over this
// one helper; neither embeds the other.
package sparse

import "fmt"

// blockGrid is a fixed-shape grid of optional blocks plus bookkeeping.
// Invariant: mask[i][j] == (blocks[i][j] != nil), maintained on every
// mutation. rowLens[i] is 0 until the first block lands in block-row i; once
// nonzero every later occupant of that block-row must match it exactly.
// Symmetrically for colLens.
type blockGrid struct {
	nbrows, nbcols int
	blocks         [][]Block
	mask           [][]bool
	rowLens        []int
	colLens        []int
}

// newBlockGrid allocates an all-empty grid.
// Complexity: O(nbrows*nbcols).
func newBlockGrid(nbrows, nbcols int) (*blockGrid, error) {
	if err := checkShape(nbrows, nbcols); err != nil {
		return nil, err
	}
	blocks := make([][]Block, nbrows)
	mask := make([][]bool, nbrows)
	for i := 0; i < nbrows; i++ {
		blocks[i] = make([]Block, nbcols)
		mask[i] = make([]bool, nbcols)
	}

	return &blockGrid{
		nbrows:  nbrows,
		nbcols:  nbcols,
		blocks:  blocks,
		mask:    mask,
		rowLens: make([]int, nbrows),
		colLens: make([]int, nbcols),
	}, nil
}

// inBounds validates a block coordinate.
func (g *blockGrid) inBounds(i, j int) error {
	if checkIndex(i, g.nbrows) != nil || checkIndex(j, g.nbcols) != nil {
		return ErrOutOfRange
	}

	return nil
}

// dims returns the accumulated scalar shape (sum of row lengths, sum of
// column lengths), recomputed rather than cached.
func (g *blockGrid) dims() (r, c int) {
	return sumInts(g.rowLens), sumInts(g.colLens)
}

// place assigns block b to slot (i, j), running the four-case shape
// inference of the length vectors. Nothing is mutated unless validation
// passes; failures report expected vs. got dimensions.
func (g *blockGrid) place(i, j int, b Block) error {
	br, bc := b.Dims()
	switch {
	case g.rowLens[i] == 0 && g.colLens[j] == 0:
		// First occupant for both axes: adopt the block's shape.
		g.rowLens[i] = br
		g.colLens[j] = bc
	case g.rowLens[i] != 0 && g.colLens[j] == 0:
		if br != g.rowLens[i] {
			return fmt.Errorf("block (%d,%d): row dimension got %d, expected %d: %w",
				i, j, br, g.rowLens[i], ErrDimensionMismatch)
		}
		g.colLens[j] = bc
	case g.rowLens[i] == 0 && g.colLens[j] != 0:
		if bc != g.colLens[j] {
			return fmt.Errorf("block (%d,%d): column dimension got %d, expected %d: %w",
				i, j, bc, g.colLens[j], ErrDimensionMismatch)
		}
		g.rowLens[i] = br
	default:
		if br != g.rowLens[i] {
			return fmt.Errorf("block (%d,%d): row dimension got %d, expected %d: %w",
				i, j, br, g.rowLens[i], ErrDimensionMismatch)
		}
		if bc != g.colLens[j] {
			return fmt.Errorf("block (%d,%d): column dimension got %d, expected %d: %w",
				i, j, bc, g.colLens[j], ErrDimensionMismatch)
		}
	}
	g.blocks[i][j] = b
	g.mask[i][j] = true

	return nil
}

// clear empties slot (i, j). The row length resets to 0 only when no other
// occupant remains in block-row i; the column length is evaluated
// independently for block-column j.
func (g *blockGrid) clear(i, j int) {
	g.blocks[i][j] = nil
	g.mask[i][j] = false
	if !g.rowOccupied(i) {
		g.rowLens[i] = 0
	}
	if !g.colOccupied(j) {
		g.colLens[j] = 0
	}
}

// rowOccupied reports whether any slot in block-row i holds a block.
func (g *blockGrid) rowOccupied(i int) bool {
	for j := 0; j < g.nbcols; j++ {
		if g.mask[i][j] {
			return true
		}
	}

	return false
}

// colOccupied reports whether any slot in block-column j holds a block.
func (g *blockGrid) colOccupied(j int) bool {
	for i := 0; i < g.nbrows; i++ {
		if g.mask[i][j] {
			return true
		}
	}

	return false
}

// emptyRows lists every block-row with no occupant, in index order.
func (g *blockGrid) emptyRows() []int {
	var idx []int
	for i := 0; i < g.nbrows; i++ {
		if !g.rowOccupied(i) {
			idx = append(idx, i)
		}
	}

	return idx
}

// emptyCols lists every block-column with no occupant, in index order.
func (g *blockGrid) emptyCols() []int {
	var idx []int
	for j := 0; j < g.nbcols; j++ {
		if !g.colOccupied(j) {
			idx = append(idx, j)
		}
	}

	return idx
}

// resetRow clears every slot in block-row i and zeroes that one row length.
// Column lengths are left untouched; a later completeness check reports any
// block-column this emptied.
func (g *blockGrid) resetRow(i int) {
	for j := 0; j < g.nbcols; j++ {
		g.blocks[i][j] = nil
		g.mask[i][j] = false
	}
	g.rowLens[i] = 0
}

// resetCol clears every slot in block-column j and zeroes that one column
// length, leaving row lengths untouched.
func (g *blockGrid) resetCol(j int) {
	for i := 0; i < g.nbrows; i++ {
		g.blocks[i][j] = nil
		g.mask[i][j] = false
	}
	g.colLens[j] = 0
}
