// SPDX-License-Identifier: MIT

// Package sparse: BlockVector, the block-structured dense vector.
// BlockVector is the right-hand side and result type of block matrix–vector
// products: a fixed number of segments, each either unset or an owned dense
// slice, mirroring the block-column (or block-row) structure of the matrix
// it pairs with.
package sparse

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// BlockVector holds nblocks dense segments. A nil segment is unset; set
// segments are owned by the vector. The zero value is not usable; construct
// with NewBlockVector or NewBlockVectorFromSlice.
type BlockVector struct {
	segments [][]float64
}

// NewBlockVector returns a vector of nblocks unset segments.
// Returns ErrInvalidDimensions for nblocks <= 0.
func NewBlockVector(nblocks int) (*BlockVector, error) {
	if nblocks <= 0 {
		return nil, sparseErrorf("NewBlockVector", ErrInvalidDimensions)
	}

	return &BlockVector{segments: make([][]float64, nblocks)}, nil
}

// NewBlockVectorFromSlice builds a block vector by slicing a flat dense
// array contiguously according to lens, in block order. The data is copied.
// Returns ErrInvalidDimensions for an empty lens or a non-positive length,
// ErrDimensionMismatch unless len(x) equals the sum of lens.
// Complexity: O(len(x)).
func NewBlockVectorFromSlice(x []float64, lens []int) (*BlockVector, error) {
	if len(lens) == 0 {
		return nil, sparseErrorf("NewBlockVectorFromSlice", ErrInvalidDimensions)
	}
	for _, n := range lens {
		if n <= 0 {
			return nil, sparseErrorf("NewBlockVectorFromSlice", ErrInvalidDimensions)
		}
	}
	if x == nil {
		return nil, sparseErrorf("NewBlockVectorFromSlice", ErrNilBlock)
	}
	if len(x) != sumInts(lens) {
		return nil, sparseErrorf("NewBlockVectorFromSlice", ErrDimensionMismatch)
	}

	v := &BlockVector{segments: make([][]float64, len(lens))}
	off := offsets(lens)
	for k := range lens {
		seg := make([]float64, lens[k])
		copy(seg, x[off[k]:off[k+1]])
		v.segments[k] = seg
	}

	return v, nil
}

// NBlocks returns the fixed number of segments.
func (v *BlockVector) NBlocks() int { return len(v.segments) }

// Len returns the total scalar length; unset segments contribute 0.
func (v *BlockVector) Len() int {
	var total int
	for _, seg := range v.segments {
		total += len(seg)
	}

	return total
}

// SetSegment assigns a copy of x as segment k; a nil x clears the segment.
func (v *BlockVector) SetSegment(k int, x []float64) error {
	if err := checkIndex(k, len(v.segments)); err != nil {
		return sparseErrorf("BlockVector.SetSegment", err)
	}
	if x == nil {
		v.segments[k] = nil

		return nil
	}
	seg := make([]float64, len(x))
	copy(seg, x)
	v.segments[k] = seg

	return nil
}

// Segment returns segment k as a live view into the vector's storage;
// mutating it mutates the vector. Returns ErrIncomplete for an unset
// segment.
func (v *BlockVector) Segment(k int) ([]float64, error) {
	if err := checkIndex(k, len(v.segments)); err != nil {
		return nil, sparseErrorf("BlockVector.Segment", err)
	}
	if v.segments[k] == nil {
		return nil, fmt.Errorf("BlockVector.Segment: segment %d unset: %w", k, ErrIncomplete)
	}

	return v.segments[k], nil
}

// CheckComplete verifies that every segment is set, naming every unset
// index otherwise.
func (v *BlockVector) CheckComplete() error {
	var idx []int
	for k, seg := range v.segments {
		if seg == nil {
			idx = append(idx, k)
		}
	}
	if len(idx) > 0 {
		return fmt.Errorf("unset segments %v: %w", idx, ErrIncomplete)
	}

	return nil
}

// AccumulateAt adds x elementwise into segment k.
// Returns ErrIncomplete for an unset segment, ErrDimensionMismatch unless
// the lengths match exactly.
func (v *BlockVector) AccumulateAt(k int, x []float64) error {
	if err := checkIndex(k, len(v.segments)); err != nil {
		return sparseErrorf("BlockVector.AccumulateAt", err)
	}
	if v.segments[k] == nil {
		return fmt.Errorf("BlockVector.AccumulateAt: segment %d unset: %w", k, ErrIncomplete)
	}
	if err := checkVecLen(x, len(v.segments[k])); err != nil {
		return sparseErrorf("BlockVector.AccumulateAt", err)
	}
	floats.Add(v.segments[k], x)

	return nil
}

// Flatten concatenates all segments in block order into one dense slice.
// Requires completeness.
func (v *BlockVector) Flatten() ([]float64, error) {
	if err := v.CheckComplete(); err != nil {
		return nil, sparseErrorf("BlockVector.Flatten", err)
	}
	out := make([]float64, 0, v.Len())
	for _, seg := range v.segments {
		out = append(out, seg...)
	}

	return out, nil
}

// Scale returns a new BlockVector with every set segment multiplied by
// alpha; unset segments stay unset.
func (v *BlockVector) Scale(alpha float64) *BlockVector {
	out := &BlockVector{segments: make([][]float64, len(v.segments))}
	for k, seg := range v.segments {
		if seg == nil {
			continue
		}
		dst := make([]float64, len(seg))
		copy(dst, seg)
		floats.Scale(alpha, dst)
		out.segments[k] = dst
	}

	return out
}

// Clone returns an independent deep copy.
func (v *BlockVector) Clone() *BlockVector {
	return v.Scale(1)
}
