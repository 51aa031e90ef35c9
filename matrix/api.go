// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, documented entry points for common tasks across the package.
//   - Avoid any logic duplication: each facade delegates to the canonical kernel.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

// ---------- Constructors ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// Thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int, opts ...Option) (*Dense, error) {
	return NewDense(rows, cols, opts...)
}

// NewIdentity returns I_n (ones on the diagonal, zeros elsewhere).
// Errors: ErrInvalidDimensions when n < 1.
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity(n int, opts ...Option) (*Dense, error) {
	if err := ValidateDims(n, n); err != nil {
		return nil, matrixErrorf(ctxIdentity, err)
	}
	buf := make([]float64, n*n)
	for i := 0; i < n; i++ {
		buf[i*n+i] = 1
	}

	return newDenseOwned(n, n, buf, gatherOptions(opts...))
}

// ZerosLike returns a new zero matrix with the same shape as m.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ZerosLike", err)
	}
	return NewDense(m.Rows(), m.Cols())
}

// IdentityLike returns I with dimension = Rows(m); requires square shape.
func IdentityLike(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf("IdentityLike", err)
	}
	return NewIdentity(m.Rows())
}

// ---------- Linear Algebra aliases ----------

// Sum is an alias for Add: element-wise a + b.
func Sum(a, b Matrix) (*Dense, error) { return Add(a, b) }

// Diff is an alias for Sub: element-wise a − b.
func Diff(a, b Matrix) (*Dense, error) { return Sub(a, b) }

// Product is an alias for Mul: matrix product a × b.
func Product(a, b Matrix) (*Dense, error) { return Mul(a, b) }

// T is an alias for Transpose: returns mᵀ.
func T(m Matrix) (*Dense, error) { return Transpose(m) }

// Det is an alias for Determinant.
func Det(m Matrix) (float64, error) { return Determinant(m) }
