// SPDX-License-Identifier: MIT

package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/blocksparse/sparse"
)

// mustCOO builds a COO or fails the test.
func mustCOO(t *testing.T, r, c int, rows, cols []int, data []float64) *sparse.COO {
	t.Helper()
	m, err := sparse.NewCOO(r, c, rows, cols, data)
	require.NoError(t, err)

	return m
}

// mustSymCOO builds a SymCOO or fails the test.
func mustSymCOO(t *testing.T, n int, rows, cols []int, data []float64) *sparse.SymCOO {
	t.Helper()
	m, err := sparse.NewSymCOO(n, rows, cols, data)
	require.NoError(t, err)

	return m
}

// blockToDense expands any block through its full coordinate form.
func blockToDense(t *testing.T, b sparse.Block) *mat.Dense {
	t.Helper()
	full, err := b.ToCOO()
	require.NoError(t, err)

	return full.ToDense()
}

func TestNewCOO_Validation(t *testing.T) {
	_, err := sparse.NewCOO(0, 3, nil, nil, nil)
	require.ErrorIs(t, err, sparse.ErrInvalidDimensions)

	_, err = sparse.NewCOO(2, 2, []int{0}, []int{0, 1}, []float64{1, 2})
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)

	_, err = sparse.NewCOO(2, 2, []int{2}, []int{0}, []float64{1})
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
}

func TestCOO_At_SumsDuplicates(t *testing.T) {
	m := mustCOO(t, 2, 2, []int{0, 0, 1}, []int{1, 1, 0}, []float64{2, 3, 7})

	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 5.0, v)

	v, err = m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 7.0, v)

	v, err = m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
}

func TestCOO_TransposeScale(t *testing.T) {
	m := mustCOO(t, 2, 3, []int{0, 1}, []int{2, 0}, []float64{4, -1})

	tr := m.Transpose()
	r, c := tr.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 2, c)
	td := blockToDense(t, tr)
	require.Equal(t, 4.0, td.At(2, 0))
	require.Equal(t, -1.0, td.At(0, 1))

	sc := blockToDense(t, m.Scale(-2))
	require.Equal(t, -8.0, sc.At(0, 2))
	require.Equal(t, 2.0, sc.At(1, 0))
	// Receiver untouched.
	v, err := m.At(0, 2)
	require.NoError(t, err)
	require.Equal(t, 4.0, v)
}

func TestCOO_AddSub(t *testing.T) {
	a := mustCOO(t, 2, 2, []int{0, 1}, []int{0, 1}, []float64{1, 2})
	b := mustCOO(t, 2, 2, []int{0, 1}, []int{1, 1}, []float64{3, 5})

	sum, err := a.Add(b)
	require.NoError(t, err)
	sd := blockToDense(t, sum)
	require.Equal(t, 1.0, sd.At(0, 0))
	require.Equal(t, 3.0, sd.At(0, 1))
	require.Equal(t, 7.0, sd.At(1, 1))

	diff, err := a.Sub(b)
	require.NoError(t, err)
	dd := blockToDense(t, diff)
	require.Equal(t, -3.0, dd.At(0, 1))
	require.Equal(t, -3.0, dd.At(1, 1))

	// Exact cancellation compresses away.
	zero, err := a.Sub(a)
	require.NoError(t, err)
	require.Equal(t, 0, zero.NNZ())

	_, err = a.Add(mustCOO(t, 3, 2, []int{0}, []int{0}, []float64{1}))
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)

	_, err = a.Add(nil)
	require.ErrorIs(t, err, sparse.ErrNilBlock)
}

func TestCOO_MulVec(t *testing.T) {
	// [[1 0 2], [0 3 0]]
	m := mustCOO(t, 2, 3, []int{0, 0, 1}, []int{0, 2, 1}, []float64{1, 2, 3})

	y, err := m.MulVec([]float64{1, 10, 100})
	require.NoError(t, err)
	require.Equal(t, []float64{201, 30}, y)

	_, err = m.MulVec([]float64{1, 2})
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)
	_, err = m.MulVec(nil)
	require.ErrorIs(t, err, sparse.ErrNilBlock)
}

func TestCOO_CompressedConversions(t *testing.T) {
	// Duplicates on (0,1) must be summed identically in every derived form.
	m := mustCOO(t, 3, 3, []int{0, 0, 2, 1}, []int{1, 1, 2, 0}, []float64{1, 4, 6, 2})

	dense := m.ToDense()
	csr := m.ToCSR()
	csc := m.ToCSC()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.Equal(t, dense.At(i, j), csr.At(i, j), "csr (%d,%d)", i, j)
			require.Equal(t, dense.At(i, j), csc.At(i, j), "csc (%d,%d)", i, j)
		}
	}
	require.Equal(t, 5.0, dense.At(0, 1))
}

func TestNewSymCOO_Validation(t *testing.T) {
	_, err := sparse.NewSymCOO(0, nil, nil, nil)
	require.ErrorIs(t, err, sparse.ErrInvalidDimensions)

	_, err = sparse.NewSymCOO(3, []int{0}, []int{1}, []float64{1})
	require.ErrorIs(t, err, sparse.ErrUpperTriangular)

	_, err = sparse.NewSymCOO(3, []int{3}, []int{0}, []float64{1})
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
}

func TestSymCOO_Counts(t *testing.T) {
	// Diagonal (0,0) and (2,2), off-diagonal (2,1).
	m := mustSymCOO(t, 3, []int{0, 2, 2}, []int{0, 2, 1}, []float64{1, 2, 3})

	require.True(t, m.Symmetric())
	require.Equal(t, 3, m.NNZ())
	require.Equal(t, 4, m.ExpandedNNZ()) // off-diagonal counted twice
}

func TestSymCOO_ExpansionIsSymmetric(t *testing.T) {
	m := mustSymCOO(t, 3, []int{0, 1, 2}, []int{0, 0, 1}, []float64{5, -2, 4})

	full, err := m.ToCOO()
	require.NoError(t, err)
	require.Equal(t, m.ExpandedNNZ(), full.NNZ())

	d := full.ToDense()
	require.True(t, mat.Equal(d, d.T()))
	require.Equal(t, -2.0, d.At(0, 1))
	require.Equal(t, -2.0, d.At(1, 0))
	require.Equal(t, 5.0, d.At(0, 0))

	// At reads through the implicit triangle.
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 4.0, v)
}

func TestSymCOO_MulVec_MatchesExpansion(t *testing.T) {
	m := mustSymCOO(t, 3, []int{0, 1, 2}, []int{0, 0, 1}, []float64{5, -2, 4})
	x := []float64{1, 2, 3}

	got, err := m.MulVec(x)
	require.NoError(t, err)

	full, err := m.ToCOO()
	require.NoError(t, err)
	want, err := full.MulVec(x)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestSymCOO_TransposeIsReceiver(t *testing.T) {
	m := mustSymCOO(t, 2, []int{1}, []int{0}, []float64{1})
	require.Same(t, m, m.Transpose())
}

func TestSymCOO_AddExpands(t *testing.T) {
	s := mustSymCOO(t, 2, []int{1}, []int{0}, []float64{3})
	a := mustCOO(t, 2, 2, []int{0}, []int{1}, []float64{1})

	sum, err := s.Add(a)
	require.NoError(t, err)
	d := blockToDense(t, sum)
	require.Equal(t, 4.0, d.At(0, 1))
	require.Equal(t, 3.0, d.At(1, 0))
}
