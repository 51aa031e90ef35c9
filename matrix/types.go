// SPDX-License-Identifier: MIT

// Package matrix: the read-only Matrix interface consumed by the kernels.
// *Dense is the canonical implementation; other implementations (for example
// the gonum adapter in package convert) are accepted by every kernel through
// the At-based fallback path.
package matrix

// Matrix is a read-only two-dimensional array of float64 values.
//
// Complexity notes: all methods are expected O(1).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns in the matrix.
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	// Complexity: O(1).
	At(i, j int) (float64, error)
}
