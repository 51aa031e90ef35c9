// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Tolerance equality: same shape and every |a-b| < tol.
//     This is the canonical equality contract for all tests of this package.

package matrix

import (
	"math"
)

// AllClose reports whether a and b have identical shapes and every element
// pair differs by strictly less than tol. A negative tol is treated as |tol|.
//
// Errors:
//   - ErrNaNInf (tol not finite), ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(1). Exits on the first violation.
func AllClose(a, b Matrix, tol float64) (bool, error) {
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	if tol < 0 {
		tol = -tol
	}
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	// Dense fast path over flat slices.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range da.data {
				if !within(da.data[idx]-db.data[idx], tol) {
					return false, nil
				}
			}

			return true, nil
		}
	}

	r, c := a.Rows(), a.Cols()
	var av, bv float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if !within(av-bv, tol) {
				return false, nil
			}
		}
	}

	return true, nil
}

// within reports |d| < tol; an exact zero difference always passes so that
// WithEpsilon(0) degrades to exact comparison.
func within(d, tol float64) bool {
	return d == 0 || math.Abs(d) < tol
}

// Equals reports whether other has the same shape as m and every element
// differs by less than m's tolerance (DefaultEpsilon unless overridden).
// A nil other is never equal.
func (m *Dense) Equals(other *Dense) bool {
	if other == nil || m.r != other.r || m.c != other.c {
		return false
	}
	ok, err := AllClose(m, other, m.opts.eps)

	return err == nil && ok
}
