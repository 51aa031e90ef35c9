// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Classical derivations over a matrix: determinant by recursive cofactor
//     expansion, minor extraction, Gauss–Jordan inverse with partial pivoting,
//     rank by row-echelon reduction, and trace.
//
// Determinism & Numerics:
//   - Every routine works on a private working copy; operands are never mutated.
//   - Determinant is the textbook O(n!) expansion along row 0.
//   - eps (DefaultEpsilon unless overridden) is the singularity threshold in
//     Inverse and the pivot threshold in Rank.

package matrix

import (
	"fmt"
	"math"
)

// flatOf returns a row-major buffer for m. For *Dense this is the backing
// slice itself and MUST be treated as read-only; other implementations are
// gathered through At.
func flatOf(m Matrix) ([]float64, error) {
	if d, ok := m.(*Dense); ok {
		return d.data, nil
	}
	rows, cols := m.Rows(), m.Cols()
	buf := make([]float64, rows*cols)
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			buf[i*cols+j] = v
		}
	}

	return buf, nil
}

// minorOf copies data (rows×cols) without row dr and column dc, preserving
// the relative order of the remaining rows and columns.
// Complexity: O(rows*cols).
func minorOf(data []float64, rows, cols, dr, dc int) []float64 {
	out := make([]float64, 0, (rows-1)*(cols-1))
	var i, j int
	for i = 0; i < rows; i++ {
		if i == dr {
			continue
		}
		for j = 0; j < cols; j++ {
			if j == dc {
				continue
			}
			out = append(out, data[i*cols+j])
		}
	}

	return out
}

// cofactorDet evaluates det of the n×n row-major data.
//   - n=1: the element; n=2: ad−bc;
//   - n>2: Σ_i (−1)^i · a[0][i] · det(minor(0,i)).
//
// Complexity: O(n!) time, O(n²) space per recursion level.
func cofactorDet(data []float64, n int) float64 {
	switch n {
	case 1:
		return data[0]
	case 2:
		return data[0]*data[3] - data[1]*data[2]
	}

	result := ZeroSum
	sign := 1.0
	for i := 0; i < n; i++ {
		result += sign * data[i] * cofactorDet(minorOf(data, n, n, 0, i), n-1)
		sign = -sign
	}

	return result
}

// Determinant returns det(m) by recursive cofactor expansion along row 0.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square).
//
// Complexity:
//   - Time O(n!), Space O(n²) per recursion level.
func Determinant(m Matrix) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}
	data, err := flatOf(m)
	if err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}

	return cofactorDet(data, m.Rows()), nil
}

// Minor returns the (rows−1)×(cols−1) submatrix of m without row and col.
//
// Errors:
//   - ErrNilMatrix.
//   - ErrOutOfRange when row or col is outside m.
//   - ErrBadShape when m has a single row or column (the result would be empty).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Minor(m Matrix, row, col int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMinor, err)
	}
	rows, cols := m.Rows(), m.Cols()
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return nil, matrixErrorf(opMinor, fmt.Errorf("(%d,%d): %w", row, col, ErrOutOfRange))
	}
	if rows < 2 || cols < 2 {
		return nil, matrixErrorf(opMinor, ErrBadShape)
	}
	data, err := flatOf(m)
	if err != nil {
		return nil, matrixErrorf(opMinor, err)
	}

	return newResult(m, rows-1, cols-1, minorOf(data, rows, cols, row, col)), nil
}

// Inverse computes m⁻¹ by Gauss–Jordan elimination with partial pivoting.
// Implementation:
//   - Stage 1: validate non-nil square; compute det; |det| < eps ⇒ ErrSingular.
//   - Stage 2: build the n×2n augmented grid [m | I].
//   - Stage 3: for each column i pick the row in [i,n) with the largest |value|
//     (first maximum wins), swap it into place, divide the pivot row by the
//     pivot, subtract factor×pivot row from every other row.
//   - Stage 4: return the right half.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrSingular.
//
// Complexity:
//   - Time O(n!) for the determinant guard + O(n³) elimination, Space O(n²).
func Inverse(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	data, err := flatOf(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := m.Rows()
	eps := policyOf(m).eps
	if det := cofactorDet(data, n); math.Abs(det) < eps {
		return nil, matrixErrorf(opInverse, ErrSingular)
	}

	// Augmented rows kept as separate slices so swaps are O(1).
	w := 2 * n
	aug := make([][]float64, n)
	backing := make([]float64, n*w)
	var i, j, k int
	for i = 0; i < n; i++ {
		aug[i] = backing[i*w : (i+1)*w]
		copy(aug[i][:n], data[i*n:(i+1)*n])
		aug[i][n+i] = 1
	}

	var maxRow int
	var pivot, factor float64
	for i = 0; i < n; i++ {
		// Partial pivoting: strict '>' keeps the first maximum.
		maxRow = i
		for k = i + 1; k < n; k++ {
			if math.Abs(aug[k][i]) > math.Abs(aug[maxRow][i]) {
				maxRow = k
			}
		}
		if maxRow != i {
			aug[i], aug[maxRow] = aug[maxRow], aug[i]
		}

		pivot = aug[i][i]
		for j = 0; j < w; j++ {
			aug[i][j] /= pivot
		}

		for k = 0; k < n; k++ {
			if k == i {
				continue
			}
			factor = aug[k][i]
			for j = 0; j < w; j++ {
				aug[k][j] -= factor * aug[i][j]
			}
		}
	}

	buf := make([]float64, n*n)
	for i = 0; i < n; i++ {
		copy(buf[i*n:(i+1)*n], aug[i][n:])
	}

	return newResult(m, n, n, buf), nil
}

// Rank returns the number of linearly independent rows of m, computed by
// row-echelon reduction on a working copy.
// Implementation:
//   - lead (column pointer) and rank start at 0.
//   - For row r while lead < cols: find the first row at or below r with
//     |a[i][lead]| ≥ eps. None ⇒ advance lead and retry the same r.
//     Found ⇒ swap into r, normalize by the pivot, eliminate column lead from
//     every other row, rank++ and lead++.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c*min(r,c)), Space O(r*c).
func Rank(m Matrix) (int, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opRank, err)
	}
	data, err := flatOf(m)
	if err != nil {
		return 0, matrixErrorf(opRank, err)
	}
	rows, cols := m.Rows(), m.Cols()
	eps := policyOf(m).eps

	tmp := make([][]float64, rows)
	backing := make([]float64, rows*cols)
	copy(backing, data)
	for i := 0; i < rows; i++ {
		tmp[i] = backing[i*cols : (i+1)*cols]
	}

	var (
		rank, lead, i, j, k int
		pivot, factor       float64
	)
	for r := 0; r < rows && lead < cols; {
		i = r
		for i < rows && (tmp[i][lead] == 0 || math.Abs(tmp[i][lead]) < eps) {
			i++
		}
		if i == rows {
			// Column exhausted below r: move right, keep the same row.
			lead++
			continue
		}
		if i != r {
			tmp[r], tmp[i] = tmp[i], tmp[r]
		}

		pivot = tmp[r][lead]
		for j = lead; j < cols; j++ {
			tmp[r][j] /= pivot
		}
		for k = 0; k < rows; k++ {
			if k == r {
				continue
			}
			factor = tmp[k][lead]
			for j = lead; j < cols; j++ {
				tmp[k][j] -= factor * tmp[r][j]
			}
		}
		rank++
		lead++
		r++
	}

	return rank, nil
}

// Trace returns Σ m[i,i].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square).
//
// Complexity:
//   - Time O(n), Space O(1).
func Trace(m Matrix) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	sum := ZeroSum
	if d, ok := m.(*Dense); ok {
		for i := 0; i < d.r; i++ {
			sum += d.data[i*d.c+i]
		}

		return sum, nil
	}
	for i := 0; i < m.Rows(); i++ {
		v, err := m.At(i, i)
		if err != nil {
			return 0, matrixErrorf(opTrace, fmt.Errorf("At(%d,%d): %w", i, i, err))
		}
		sum += v
	}

	return sum, nil
}

// ---------- *Dense methods ----------

// Determinant returns det(m). Errors: ErrDimensionMismatch when m is not square.
func (m *Dense) Determinant() (float64, error) { return Determinant(m) }

// Minor returns m without the given row and column.
// Errors: ErrOutOfRange, ErrBadShape.
func (m *Dense) Minor(row, col int) (*Dense, error) { return Minor(m, row, col) }

// Inverse returns m⁻¹.
// Errors: ErrDimensionMismatch when m is not square, ErrSingular when |det| < eps.
func (m *Dense) Inverse() (*Dense, error) { return Inverse(m) }

// Rank returns the rank of m.
func (m *Dense) Rank() int {
	r, _ := Rank(m) // a non-nil *Dense cannot fail
	return r
}

// Trace returns the sum of the main diagonal.
// Errors: ErrDimensionMismatch when m is not square.
func (m *Dense) Trace() (float64, error) { return Trace(m) }
