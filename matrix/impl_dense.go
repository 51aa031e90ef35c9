// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At returns errors instead of panicking.
//   - Keep a Dense logically immutable: there is no Set, Grid returns a snapshot,
//     so the cached precision digit count can never go stale.
//
// Complexity quicksheet:
//   - constructors: O(r*c) copy + O(r*c) precision scan; At: O(1); Grid/Clone: O(r*c).

package matrix

import (
	"fmt"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"               // method tag used in error wrappers
	ctxNew      = "NewDense"         // ctor tag
	ctxNewFrom  = "NewDenseFrom"     // ctor tag
	ctxNewInts  = "NewDenseFromInts" // ctor tag
	ctxNewRows  = "NewDenseFromRows" // ctor tag
	ctxIdentity = "NewIdentity"      // ctor tag
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix of float64 values.
//   - r,c hold dimensions (rows, cols), both ≥ 1.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - prec is the display precision, computed once at construction.
//   - opts is the numeric policy captured at construction and inherited by results.
type Dense struct {
	r, c int       // row and column counts
	data []float64 // contiguous row-major storage (len == r*c)
	prec int       // max non-zero fractional digits over all elements, capped
	opts Options   // eps + NaN/Inf policy
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix.
// Implementation:
//   - Stage 1: validate rows ≥ 1 && cols ≥ 1; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer; resolve options.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if err := ValidateDims(rows, cols); err != nil {
		return nil, matrixErrorf(ctxNew, err)
	}

	// make() zero-fills; precision of an all-zero grid is 0.
	return &Dense{
		r:    rows,
		c:    cols,
		data: make([]float64, rows*cols),
		opts: gatherOptions(opts...),
	}, nil
}

// NewDenseFrom creates an r×c matrix from a row-major flat slice.
// The input is copied; later changes to vals do not affect the matrix.
//
// Errors:
//   - ErrInvalidDimensions when rows<1 or cols<1.
//   - ErrSizeMismatch when len(vals) != rows*cols.
//   - ErrNaNInf when WithValidateNaNInf is set and a value is not finite.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, vals []float64, opts ...Option) (*Dense, error) {
	if err := ValidateDims(rows, cols); err != nil {
		return nil, matrixErrorf(ctxNewFrom, err)
	}
	if err := ValidateFlatLen(len(vals), rows, cols); err != nil {
		return nil, matrixErrorf(ctxNewFrom, err)
	}
	buf := make([]float64, rows*cols)
	copy(buf, vals)

	m, err := newDenseOwned(rows, cols, buf, gatherOptions(opts...))
	if err != nil {
		return nil, matrixErrorf(ctxNewFrom, err)
	}

	return m, nil
}

// NewDenseFromInts creates an r×c matrix from a row-major flat slice of
// integers, converting every element to float64.
//
// Errors: ErrInvalidDimensions, ErrSizeMismatch.
// Complexity: Time O(r*c), Space O(r*c).
func NewDenseFromInts(rows, cols int, vals []int, opts ...Option) (*Dense, error) {
	if err := ValidateDims(rows, cols); err != nil {
		return nil, matrixErrorf(ctxNewInts, err)
	}
	if err := ValidateFlatLen(len(vals), rows, cols); err != nil {
		return nil, matrixErrorf(ctxNewInts, err)
	}
	buf := make([]float64, rows*cols)
	for idx, v := range vals {
		buf[idx] = float64(v)
	}

	// Integers are always finite; no policy failure is possible here.
	return newDenseOwned(rows, cols, buf, gatherOptions(opts...))
}

// NewDenseFromRows creates a matrix from a nested grid (grid[i][j] = element).
// The grid is copied, so the caller keeps ownership of its slices.
//
// Errors:
//   - ErrBadShape when grid is nil, has no rows, or its first row is empty.
//   - ErrDimensionMismatch when a row length differs from the first row.
//   - ErrNaNInf under WithValidateNaNInf.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFromRows(grid [][]float64, opts ...Option) (*Dense, error) {
	if err := ValidateGrid(grid); err != nil {
		return nil, matrixErrorf(ctxNewRows, err)
	}
	rows, cols := len(grid), len(grid[0])
	buf := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		copy(buf[i*cols:(i+1)*cols], grid[i])
	}

	m, err := newDenseOwned(rows, cols, buf, gatherOptions(opts...))
	if err != nil {
		return nil, matrixErrorf(ctxNewRows, err)
	}

	return m, nil
}

// newDenseOwned adopts buf (len == rows*cols) without copying, applies the
// numeric policy and computes the display precision. Every constructor and
// every kernel result funnels through here.
func newDenseOwned(rows, cols int, buf []float64, o Options) (*Dense, error) {
	if o.validateNaNInf {
		if err := ValidateFinite(buf); err != nil {
			return nil, err
		}
	}

	return &Dense{
		r:    rows,
		c:    cols,
		data: buf,
		prec: precisionOf(buf),
		opts: o,
	}, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call. Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// IsSquare reports whether Rows() == Cols().
func (m *Dense) IsSquare() bool { return m.r == m.c }

// Precision returns the number of fractional digits the formatter uses:
// the largest count of non-zero fractional decimal digits of any element,
// capped at MaxPrecisionDigits.
func (m *Dense) Precision() int { return m.prec }

// Options returns the numeric policy captured at construction.
func (m *Dense) Options() Options { return m.opts }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Grid returns a snapshot of the elements as a freshly allocated nested slice.
// Mutating the result never affects the matrix.
// Complexity: Time O(r*c), Space O(r*c).
func (m *Dense) Grid() [][]float64 {
	out := make([][]float64, m.r)
	backing := make([]float64, len(m.data))
	copy(backing, m.data)
	for i := 0; i < m.r; i++ {
		out[i] = backing[i*m.c : (i+1)*m.c : (i+1)*m.c]
	}

	return out
}

// RawData returns a copy of the row-major buffer.
func (m *Dense) RawData() []float64 {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return cp
}

// Clone returns a deep copy (new buffer, same policy and precision).
// Complexity: Time O(r*c), Space O(r*c).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp, prec: m.prec, opts: m.opts}
}

// derive builds a result matrix that inherits the receiver's policy.
// Results are not re-validated against the NaN/Inf policy.
func (m *Dense) derive(rows, cols int, buf []float64) *Dense {
	return &Dense{r: rows, c: cols, data: buf, prec: precisionOf(buf), opts: m.opts}
}
