// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels return these sentinels (possibly wrapped with an
// operation tag) and tests check them via errors.Is. No kernel panics on
// caller-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Kernels wrap with matrixErrorf(op, ErrX);
// callers match with errors.Is.
//
// ERROR FAMILIES:
//   - dimension: ErrInvalidDimensions, ErrSizeMismatch, ErrBadShape, ErrDimensionMismatch
//   - null operand: ErrNilMatrix
//   - singular: ErrSingular
//   - access/policy: ErrOutOfRange, ErrNaNInf

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrSizeMismatch indicates that a flat input does not hold exactly rows*cols values.
	ErrSizeMismatch = errors.New("matrix: size mismatch")

	// ErrBadShape is returned for a nested grid that is nil, has no rows, or
	// whose first row is empty. Also used when an operation would have to
	// produce a matrix with zero rows or columns.
	ErrBadShape = errors.New("matrix: invalid matrix array")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Add/Sub of different shapes, Mul where a.Cols != b.Rows, or a
	// non-square receiver for Determinant/Inverse/Trace.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a required matrix argument is absent.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrSingular is returned by Inverse when |det| is below the tolerance.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At, Minor) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value was encountered while the
	// finite-only numeric policy is enabled.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")
)

// IsDimensionError reports whether err belongs to the dimension family:
// invalid construction dimensions, flat size mismatch, invalid nested grid,
// or operand dimension mismatch.
func IsDimensionError(err error) bool {
	return errors.Is(err, ErrInvalidDimensions) ||
		errors.Is(err, ErrSizeMismatch) ||
		errors.Is(err, ErrBadShape) ||
		errors.Is(err, ErrDimensionMismatch)
}
