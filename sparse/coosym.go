// SPDX-License-Identifier: MIT

// Package sparse: SymCOO, the symmetric coordinate-format sparse matrix.
// Only the lower triangle (row index >= column index) is stored; the upper
// triangle is implicit and materialized solely by ToCOO. SymCOO is the
// canonical occupant of diagonal slots in a BlockSymMatrix.
package sparse

import (
	bsp "github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// SymCOO is an n×n symmetric sparse matrix in coordinate form, storing only
// entries with i >= j. Duplicate coordinates are permitted and summed, as in
// COO.
type SymCOO struct {
	n    int
	rows []int
	cols []int
	data []float64
}

// NewSymCOO builds an n×n symmetric coordinate matrix from lower-triangular
// triples. Returns ErrInvalidDimensions for n <= 0, ErrDimensionMismatch for
// unequal slice lengths, ErrOutOfRange for indices outside the shape and
// ErrUpperTriangular for any entry with i < j.
// Complexity: O(nnz).
func NewSymCOO(n int, rows, cols []int, data []float64) (*SymCOO, error) {
	if err := checkShape(n, n); err != nil {
		return nil, sparseErrorf("NewSymCOO", err)
	}
	if len(rows) != len(data) || len(cols) != len(data) {
		return nil, sparseErrorf("NewSymCOO: triple slices", ErrDimensionMismatch)
	}
	for k := range data {
		if rows[k] < 0 || rows[k] >= n || cols[k] < 0 || cols[k] >= n {
			return nil, sparseErrorf("NewSymCOO", ErrOutOfRange)
		}
		if rows[k] < cols[k] {
			return nil, sparseErrorf("NewSymCOO", ErrUpperTriangular)
		}
	}

	m := &SymCOO{n: n}
	m.rows = append(m.rows, rows...)
	m.cols = append(m.cols, cols...)
	m.data = append(m.data, data...)

	return m, nil
}

// Dims returns the square shape.
func (m *SymCOO) Dims() (r, c int) { return m.n, m.n }

// NNZ returns the stored (lower-triangle) entry count.
func (m *SymCOO) NNZ() int { return len(m.data) }

// Symmetric always reports true.
func (m *SymCOO) Symmetric() bool { return true }

// ExpandedNNZ counts the full matrix: diagonal entries once, off-diagonal
// entries twice (stored plus mirrored). This count sizes flatten
// allocations and must be exact.
// Complexity: O(nnz).
func (m *SymCOO) ExpandedNNZ() int {
	var total int
	for k := range m.data {
		if m.rows[k] == m.cols[k] {
			total++
		} else {
			total += 2
		}
	}

	return total
}

// At returns the value at (i, j), reading through the implicit upper
// triangle and summing duplicates.
// Complexity: O(nnz).
func (m *SymCOO) At(i, j int) (float64, error) {
	if checkIndex(i, m.n) != nil || checkIndex(j, m.n) != nil {
		return 0, sparseErrorf("SymCOO.At", ErrOutOfRange)
	}
	if i < j {
		i, j = j, i // normalize to the stored triangle
	}
	var v float64
	for k := range m.data {
		if m.rows[k] == i && m.cols[k] == j {
			v += m.data[k]
		}
	}

	return v, nil
}

// Triples returns the stored lower-triangle triples in stored order.
// The returned slices are views; callers must not modify them.
func (m *SymCOO) Triples() (rows, cols []int, data []float64) {
	return m.rows, m.cols, m.data
}

// Clone returns an independent deep copy.
func (m *SymCOO) Clone() *SymCOO {
	out := &SymCOO{n: m.n}
	out.rows = append(out.rows, m.rows...)
	out.cols = append(out.cols, m.cols...)
	out.data = append(out.data, m.data...)

	return out
}

// ToCOO materializes both triangles: each stored diagonal entry appears
// once, each off-diagonal entry appears together with its mirror. The result
// is a plain COO of ExpandedNNZ entries in stored order.
// Complexity: O(nnz).
func (m *SymCOO) ToCOO() (*COO, error) {
	total := m.ExpandedNNZ()
	rows := make([]int, 0, total)
	cols := make([]int, 0, total)
	data := make([]float64, 0, total)
	for k, v := range m.data {
		i, j := m.rows[k], m.cols[k]
		rows = append(rows, i)
		cols = append(cols, j)
		data = append(data, v)
		if i != j {
			rows = append(rows, j)
			cols = append(cols, i)
			data = append(data, v)
		}
	}

	return &COO{r: m.n, c: m.n, rows: rows, cols: cols, data: data}, nil
}

// Transpose returns the receiver: a symmetric matrix is its own transpose.
func (m *SymCOO) Transpose() Block { return m }

// Scale returns alpha*m as a new SymCOO, preserving symmetry.
func (m *SymCOO) Scale(alpha float64) Block {
	out := m.Clone()
	for k := range out.data {
		out.data[k] *= alpha
	}

	return out
}

// Add expands the receiver and delegates to COO.Add; the sum is a plain COO.
func (m *SymCOO) Add(other Block) (Block, error) {
	full, _ := m.ToCOO() // never fails for a coordinate block

	return full.combine("SymCOO.Add", other, 1)
}

// Sub expands the receiver and delegates to COO.Sub.
func (m *SymCOO) Sub(other Block) (Block, error) {
	full, _ := m.ToCOO()

	return full.combine("SymCOO.Sub", other, -1)
}

// MulVec returns m·x, accumulating each stored off-diagonal entry twice:
// once in place and once mirrored. The diagonal is accumulated exactly once.
// Complexity: O(nnz).
func (m *SymCOO) MulVec(x []float64) ([]float64, error) {
	if err := checkVecLen(x, m.n); err != nil {
		return nil, sparseErrorf("SymCOO.MulVec", err)
	}
	y := make([]float64, m.n)
	for k, v := range m.data {
		i, j := m.rows[k], m.cols[k]
		y[i] += v * x[j]
		if i != j {
			y[j] += v * x[i]
		}
	}

	return y, nil
}

// ToCSR converts the full expansion to compressed sparse row form.
func (m *SymCOO) ToCSR() *bsp.CSR {
	full, _ := m.ToCOO()

	return full.ToCSR()
}

// ToCSC converts the full expansion to compressed sparse column form.
func (m *SymCOO) ToCSC() *bsp.CSC {
	full, _ := m.ToCOO()

	return full.ToCSC()
}

// ToDense returns the dense gonum representation of the full expansion.
func (m *SymCOO) ToDense() *mat.Dense {
	full, _ := m.ToCOO()

	return full.ToDense()
}
