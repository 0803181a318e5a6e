// SPDX-License-Identifier: MIT

// Package sparse: COO, the coordinate-format sparse matrix.
// COO is both the elementary block stored in grid slots and the output
// artifact of every flatten. Compressed row/column forms and dense forms are
// derived by converting the coordinate result through the ecosystem
// (james-bowman/sparse, gonum/mat); no separate storage scheme is
// implemented here.
package sparse

import (
	"sort"

	bsp "github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// COO is a sparse matrix held as parallel (row, column, value) triples.
// Duplicate coordinates are permitted and are understood as summed; At,
// ToDense and the compressed conversions all honor that convention.
type COO struct {
	r, c int       // scalar shape, fixed at construction
	rows []int     // row index per entry
	cols []int     // column index per entry
	data []float64 // value per entry
}

// NewCOO builds an r×c coordinate matrix from parallel triple slices.
// The input slices are copied; the matrix owns its storage.
// Returns ErrInvalidDimensions for a non-positive shape, ErrDimensionMismatch
// when the slices disagree in length, ErrOutOfRange for any index outside
// the shape.
// Complexity: O(nnz).
func NewCOO(r, c int, rows, cols []int, data []float64) (*COO, error) {
	if err := checkShape(r, c); err != nil {
		return nil, sparseErrorf("NewCOO", err)
	}
	if len(rows) != len(data) || len(cols) != len(data) {
		return nil, sparseErrorf("NewCOO: triple slices", ErrDimensionMismatch)
	}
	for k := range data {
		if rows[k] < 0 || rows[k] >= r || cols[k] < 0 || cols[k] >= c {
			return nil, sparseErrorf("NewCOO", ErrOutOfRange)
		}
	}

	m := &COO{r: r, c: c}
	m.rows = append(m.rows, rows...)
	m.cols = append(m.cols, cols...)
	m.data = append(m.data, data...)

	return m, nil
}

// Dims returns the scalar shape.
func (m *COO) Dims() (r, c int) { return m.r, m.c }

// NNZ returns the number of stored entries, duplicates included.
func (m *COO) NNZ() int { return len(m.data) }

// Symmetric always reports false: a plain COO stores both triangles
// explicitly.
func (m *COO) Symmetric() bool { return false }

// ExpandedNNZ equals NNZ for a plain coordinate matrix; nothing is implicit.
func (m *COO) ExpandedNNZ() int { return len(m.data) }

// At returns the value at (i, j), summing duplicate entries.
// Complexity: O(nnz).
func (m *COO) At(i, j int) (float64, error) {
	if checkIndex(i, m.r) != nil || checkIndex(j, m.c) != nil {
		return 0, sparseErrorf("COO.At", ErrOutOfRange)
	}
	var v float64
	for k := range m.data {
		if m.rows[k] == i && m.cols[k] == j {
			v += m.data[k]
		}
	}

	return v, nil
}

// Triples returns the raw triple slices in stored order. The returned slices
// are views into the matrix; callers must not modify them.
func (m *COO) Triples() (rows, cols []int, data []float64) {
	return m.rows, m.cols, m.data
}

// Clone returns an independent deep copy.
// Complexity: O(nnz).
func (m *COO) Clone() *COO {
	out := &COO{r: m.r, c: m.c}
	out.rows = append(out.rows, m.rows...)
	out.cols = append(out.cols, m.cols...)
	out.data = append(out.data, m.data...)

	return out
}

// ToCOO returns the receiver: a plain coordinate matrix is its own full
// expansion.
func (m *COO) ToCOO() (*COO, error) { return m, nil }

// Transpose returns a new COO with rows and columns swapped.
// Complexity: O(nnz).
func (m *COO) Transpose() Block {
	out := &COO{r: m.c, c: m.r}
	out.rows = append(out.rows, m.cols...)
	out.cols = append(out.cols, m.rows...)
	out.data = append(out.data, m.data...)

	return out
}

// Scale returns alpha*m as a new COO; the receiver is untouched.
// Complexity: O(nnz).
func (m *COO) Scale(alpha float64) Block {
	out := m.Clone()
	for k := range out.data {
		out.data[k] *= alpha
	}

	return out
}

// Add returns the elementwise sum m + other as a compressed COO.
// The operand is expanded through its own ToCOO first, so symmetric and
// nested operands combine correctly.
func (m *COO) Add(other Block) (Block, error) {
	return m.combine("COO.Add", other, 1)
}

// Sub returns the elementwise difference m - other as a compressed COO.
func (m *COO) Sub(other Block) (Block, error) {
	return m.combine("COO.Sub", other, -1)
}

// combine merges the receiver's triples with sign-scaled triples of other,
// then compresses the union deterministically.
func (m *COO) combine(tag string, other Block, sign float64) (Block, error) {
	if other == nil {
		return nil, sparseErrorf(tag, ErrNilBlock)
	}
	or, oc := other.Dims()
	if or != m.r || oc != m.c {
		return nil, sparseErrorf(tag, ErrDimensionMismatch)
	}
	full, err := other.ToCOO()
	if err != nil {
		return nil, sparseErrorf(tag, err)
	}

	n := len(m.data) + len(full.data)
	rows := make([]int, 0, n)
	cols := make([]int, 0, n)
	data := make([]float64, 0, n)
	rows = append(append(rows, m.rows...), full.rows...)
	cols = append(append(cols, m.cols...), full.cols...)
	data = append(data, m.data...)
	for _, v := range full.data {
		data = append(data, sign*v)
	}
	rows, cols, data = compressTriples(rows, cols, data)

	return &COO{r: m.r, c: m.c, rows: rows, cols: cols, data: data}, nil
}

// MulVec returns m·x for a flat dense vector x.
// Duplicate entries accumulate naturally.
// Complexity: O(nnz).
func (m *COO) MulVec(x []float64) ([]float64, error) {
	if err := checkVecLen(x, m.c); err != nil {
		return nil, sparseErrorf("COO.MulVec", err)
	}
	y := make([]float64, m.r)
	for k, v := range m.data {
		y[m.rows[k]] += v * x[m.cols[k]]
	}

	return y, nil
}

// ToCSR converts to compressed sparse row form. Entries are compressed
// (row-major sorted, duplicates summed, exact zeros dropped) before handing
// off, so the conversion never depends on downstream duplicate semantics.
func (m *COO) ToCSR() *bsp.CSR {
	rows, cols, data := compressTriples(copyInts(m.rows), copyInts(m.cols), append([]float64(nil), m.data...))

	return bsp.NewCOO(m.r, m.c, rows, cols, data).ToCSR()
}

// ToCSC converts to compressed sparse column form; see ToCSR for the
// compression contract.
func (m *COO) ToCSC() *bsp.CSC {
	rows, cols, data := compressTriples(copyInts(m.rows), copyInts(m.cols), append([]float64(nil), m.data...))

	return bsp.NewCOO(m.r, m.c, rows, cols, data).ToCSC()
}

// ToDense returns the dense gonum representation, summing duplicates.
// Complexity: O(r*c + nnz).
func (m *COO) ToDense() *mat.Dense {
	d := mat.NewDense(m.r, m.c, nil)
	for k, v := range m.data {
		d.Set(m.rows[k], m.cols[k], d.At(m.rows[k], m.cols[k])+v)
	}

	return d
}

// tripleSorter sorts parallel triple slices row-major (row, then column).
type tripleSorter struct {
	rows, cols []int
	data       []float64
}

func (s *tripleSorter) Len() int { return len(s.data) }

func (s *tripleSorter) Less(i, j int) bool {
	if s.rows[i] != s.rows[j] {
		return s.rows[i] < s.rows[j]
	}

	return s.cols[i] < s.cols[j]
}

func (s *tripleSorter) Swap(i, j int) {
	s.rows[i], s.rows[j] = s.rows[j], s.rows[i]
	s.cols[i], s.cols[j] = s.cols[j], s.cols[i]
	s.data[i], s.data[j] = s.data[j], s.data[i]
}

// compressTriples sorts triples row-major, sums duplicate coordinates and
// drops entries whose summed value is exactly zero. The inputs are consumed;
// callers pass owned slices. Output order is canonical, which makes merged
// results reproducible.
// Complexity: O(nnz log nnz).
func compressTriples(rows, cols []int, data []float64) ([]int, []int, []float64) {
	sort.Stable(&tripleSorter{rows: rows, cols: cols, data: data})

	outR := rows[:0]
	outC := cols[:0]
	outV := data[:0]
	for k := 0; k < len(data); {
		i, j := rows[k], cols[k]
		v := data[k]
		k++
		for k < len(data) && rows[k] == i && cols[k] == j {
			v += data[k]
			k++
		}
		if v != 0 {
			outR = append(outR, i)
			outC = append(outC, j)
			outV = append(outV, v)
		}
	}

	return outR, outC, outV
}
