// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil checks here.
//  - Return sentinel errors tagged with the validator name so call sites can
//    wrap uniformly with their operation tag.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on success.
//
// Note:
//  - Each composite validator follows a fixed sequence (e.g. NotNil → Shape).

package matrix

import (
	"fmt"
	"math"
	"reflect"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateDims ensures rows ≥ 1 and cols ≥ 1.
// Returns ErrInvalidDimensions otherwise. Complexity: O(1).
func ValidateDims(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return validatorErrorf("ValidateDims", ErrInvalidDimensions)
	}

	return nil
}

// ValidateFlatLen ensures a flat row-major input carries exactly rows*cols values.
// Assumes dimensions were validated. Complexity: O(1).
func ValidateFlatLen(n, rows, cols int) error {
	if n != rows*cols {
		return validatorErrorf("ValidateFlatLen", ErrSizeMismatch)
	}

	return nil
}

// ValidateGrid ensures a nested grid is non-empty and rectangular.
//
// Errors: ErrBadShape for nil/empty grid or empty first row,
// ErrDimensionMismatch (with row index) for a ragged row.
// Complexity: O(rows).
func ValidateGrid(grid [][]float64) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return validatorErrorf("ValidateGrid", ErrBadShape)
	}
	cols := len(grid[0])
	for i := 1; i < len(grid); i++ {
		if len(grid[i]) != cols {
			return validatorErrorf(
				fmt.Sprintf("ValidateGrid: row %d has %d columns, want %d", i, len(grid[i]), cols),
				ErrDimensionMismatch,
			)
		}
	}

	return nil
}

// ValidateFinite rejects NaN and ±Inf values. Complexity: O(n).
func ValidateFinite(vals []float64) error {
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf(fmt.Sprintf("ValidateFinite: index %d", i), ErrNaNInf)
		}
	}

	return nil
}

// ValidateNotNil ensures the matrix reference is non-nil, including a typed
// nil pointer stored in the interface (a nil *Dense passed as Matrix).
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if isNilMatrix(m) {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil. Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
// Assumes m is not nil. Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBinarySameShape – Composite: NotNil(a) → NotNil(b) → SameShape.
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}

	return nil
}

// ValidateMulCompatible – Composite: NotNil(a) → NotNil(b) → a.Cols == b.Rows.
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquareNonNil – Composite: NotNil → Square.
func ValidateSquareNonNil(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}

	return nil
}

// isNilMatrix catches both a nil interface and a typed nil pointer.
func isNilMatrix(m Matrix) bool {
	if m == nil {
		return true
	}
	if d, ok := m.(*Dense); ok {
		return d == nil
	}
	v := reflect.ValueOf(m)

	return v.Kind() == reflect.Pointer && v.IsNil()
}
