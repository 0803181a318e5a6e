// Package sparse provides block-structured sparse matrices and vectors.
//
// The sparse package provides:
//
//   - COO and SymCOO, coordinate-format sparse blocks (SymCOO stores only
//     the lower triangle and expands on demand).
//   - BlockMatrix, an m×n grid of independently-typed sparse blocks with
//     lazy shape inference, completeness checking, block-aware arithmetic
//     and flattening to a single coordinate matrix.
//   - BlockSymMatrix, the symmetric specialization storing only the
//     lower-triangular block grid.
//   - BlockVector, the block-structured dense vector paired with the
//     matrices in matrix–vector products.
//
// Assembly flows one direction: callers assign blocks and the structure
// accumulates per-block-row and per-block-column scalar lengths. Consumption
// flows the other: shape, nonzero counts, arithmetic and flattening read the
// accumulated structure, validating completeness first. Every block-row and
// block-column must hold at least one block before any global operation;
// violations return ErrIncomplete naming the offending indices.
//
// Compressed row/column forms come from james-bowman/sparse conversions of
// the flattened coordinate result, and dense forms are gonum mat.Dense;
// no block-aware shortcut is taken for either.
//
// All types are single-writer: no internal synchronization is provided.
// Operations other than SetBlock, SetSegment, ResetRow/ResetCol and
// AccumulateAt allocate fresh storage and never mutate their operands, so
// concurrent read-only use is safe.
package sparse
