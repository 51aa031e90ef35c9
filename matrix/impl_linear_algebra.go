// SPDX-License-Identifier: MIT
// Package matrix provides universal arithmetic on any Matrix implementation:
// element-wise addition and subtraction, scalar scaling, matrix
// multiplication and transpose. All kernels perform strict fail-fast
// validation, never mutate their operands and return a freshly allocated *Dense.
//
// Purpose:
//   - Canonical arithmetic kernels (package functions) plus the *Dense methods
//     that expose them on the entity.
//   - *Dense operands take a flat-slice fast path; other implementations use a
//     fixed-order At-based fallback that yields bit-identical results.

package matrix

import (
	"fmt"
)

// ZeroSum is the initial accumulator value for products and sums.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opAdd         = "Add"
	opSub         = "Sub"
	opMul         = "Mul"
	opLeftMul     = "LeftMultiply"
	opRightMul    = "RightMultiply"
	opTranspose   = "Transpose"
	opScale       = "Scale"
	opDeterminant = "Determinant"
	opMinor       = "Minor"
	opInverse     = "Inverse"
	opTrace       = "Trace"
	opRank        = "Rank"
	opAllClose    = "AllClose"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// policyOf returns the numeric policy a result inherits from operand m:
// the captured Options for *Dense, package defaults otherwise.
func policyOf(m Matrix) Options {
	if d, ok := m.(*Dense); ok {
		return d.opts
	}

	return gatherOptions()
}

// newResult allocates a result buffer under the policy of src.
func newResult(src Matrix, rows, cols int, buf []float64) *Dense {
	return &Dense{r: rows, c: cols, data: buf, prec: precisionOf(buf), opts: policyOf(src)}
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b).
//   - Stage 2: fast path if both are *Dense (single flat loop), otherwise At with i→j order.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	rows, cols := a.Rows(), a.Cols()
	buf := make([]float64, rows*cols)

	// Fast path: *Dense with *Dense → single flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range buf {
				buf[idx] = da.data[idx] + sign*db.data[idx]
			}

			return newResult(a, rows, cols, buf), nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var (
		i, j   int
		av, bv float64
		err    error
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			buf[i*cols+j] = av + sign*bv
		}
	}

	return newResult(a, rows, cols, buf), nil
}

// Add computes the element-wise sum C = A + B.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Mul performs standard matrix multiplication C = A × B.
// Implementation:
//   - Stage 1: validate A,B non-nil and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: *Dense × *Dense runs i→k→j over row-major strides; otherwise
//     i→j→k through At. Both accumulate each C[i,j] over k ascending, so the
//     rounding of the two paths is identical.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	buf := make([]float64, aRows*bCols)
	var (
		i, j, k         int
		av, bv, current float64
		err             error
	)

	// Fast path for two Dense matrices.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var rowOffsetA, rowOffsetB, rowOffsetR int
			for i = 0; i < aRows; i++ {
				rowOffsetA = i * aCols
				rowOffsetR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowOffsetA+k]
					rowOffsetB = k * bCols
					for j = 0; j < bCols; j++ {
						buf[rowOffsetR+j] += av * db.data[rowOffsetB+j]
					}
				}
			}

			return newResult(a, aRows, bCols, buf), nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k).
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", i, k, err))
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", k, j, err))
				}
				current += av * bv
			}
			buf[i*bCols+j] = current
		}
	}

	return newResult(a, aRows, bCols, buf), nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := m.Rows(), m.Cols()
	buf := make([]float64, rows*cols)
	var i, j int

	// Fast path: data[i*cols + j] → buf[j*rows + i].
	if dm, ok := m.(*Dense); ok {
		var baseSrc int
		for i = 0; i < rows; i++ {
			baseSrc = i * cols
			for j = 0; j < cols; j++ {
				buf[j*rows+i] = dm.data[baseSrc+j]
			}
		}

		return newResult(m, cols, rows, buf), nil
	}

	var (
		v   float64
		err error
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			buf[j*rows+i] = v
		}
	}

	return newResult(m, cols, rows, buf), nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	rows, cols := m.Rows(), m.Cols()
	buf := make([]float64, rows*cols)

	if dm, ok := m.(*Dense); ok {
		for idx := range buf {
			buf[idx] = dm.data[idx] * alpha
		}

		return newResult(m, rows, cols, buf), nil
	}

	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opScale, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			buf[i*cols+j] = v * alpha
		}
	}

	return newResult(m, rows, cols, buf), nil
}

// ---------- *Dense methods ----------

// Add returns m + other.
// Errors: ErrNilMatrix when other is nil, ErrDimensionMismatch when shapes differ.
func (m *Dense) Add(other *Dense) (*Dense, error) { return Add(m, other) }

// Subtract returns m - other.
// Errors: ErrNilMatrix when other is nil, ErrDimensionMismatch when shapes differ.
func (m *Dense) Subtract(other *Dense) (*Dense, error) { return Sub(m, other) }

// ScalarMultiply returns k·m. It always succeeds.
func (m *Dense) ScalarMultiply(k int) *Dense {
	alpha := float64(k)
	buf := make([]float64, len(m.data))
	for idx, v := range m.data {
		buf[idx] = v * alpha
	}

	return m.derive(m.r, m.c, buf)
}

// LeftMultiply returns m × right (m is the left operand).
// Errors: ErrNilMatrix when right is nil, ErrDimensionMismatch when m.Cols != right.Rows.
func (m *Dense) LeftMultiply(right *Dense) (*Dense, error) {
	if err := ValidateNotNil(right); err != nil {
		return nil, matrixErrorf(opLeftMul, err)
	}
	if m.c != right.r {
		return nil, matrixErrorf(opLeftMul, ErrDimensionMismatch)
	}
	res, err := Mul(m, right)
	if err != nil {
		return nil, matrixErrorf(opLeftMul, err)
	}

	return res, nil
}

// RightMultiply returns left × m (m is the right operand).
// Errors: ErrNilMatrix when left is nil, ErrDimensionMismatch when m.Rows != left.Cols.
func (m *Dense) RightMultiply(left *Dense) (*Dense, error) {
	if err := ValidateNotNil(left); err != nil {
		return nil, matrixErrorf(opRightMul, err)
	}
	if m.r != left.c {
		return nil, matrixErrorf(opRightMul, ErrDimensionMismatch)
	}
	res, err := Mul(left, m)
	if err != nil {
		return nil, matrixErrorf(opRightMul, err)
	}
	// The receiver's policy wins, as for every other method.
	res.opts = m.opts

	return res, nil
}

// Transpose returns mᵀ. It always succeeds.
func (m *Dense) Transpose() *Dense {
	buf := make([]float64, len(m.data))
	var i, j, baseSrc int
	for i = 0; i < m.r; i++ {
		baseSrc = i * m.c
		for j = 0; j < m.c; j++ {
			buf[j*m.r+i] = m.data[baseSrc+j]
		}
	}

	return m.derive(m.c, m.r, buf)
}
