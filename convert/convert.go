// SPDX-License-Identifier: MIT

package convert

import (
	"fmt"

	"github.com/katalvlaran/densematrix/matrix"
	"gonum.org/v1/gonum/mat"
)

const (
	opToGonum   = "ToGonum"
	opFromGonum = "FromGonum"
	opAt        = "Gonum.At"
)

// convertErrorf wraps err with an operation tag.
func convertErrorf(tag string, err error) error {
	return fmt.Errorf("convert: %s: %w", tag, err)
}

// ToGonum copies d into a new *mat.Dense of the same shape.
// Errors: matrix.ErrNilMatrix when d is nil.
// Complexity: Time O(r*c), Space O(r*c).
func ToGonum(d *matrix.Dense) (*mat.Dense, error) {
	if d == nil {
		return nil, convertErrorf(opToGonum, matrix.ErrNilMatrix)
	}

	// RawData is already a private copy, so gonum may own it.
	return mat.NewDense(d.Rows(), d.Cols(), d.RawData()), nil
}

// FromGonum copies any mat.Matrix into a new *matrix.Dense.
// Options apply to the result as for any matrix constructor.
//
// Errors:
//   - matrix.ErrNilMatrix when m is nil.
//   - matrix.ErrInvalidDimensions for an empty gonum matrix.
//   - matrix.ErrNaNInf under WithValidateNaNInf.
func FromGonum(m mat.Matrix, opts ...matrix.Option) (*matrix.Dense, error) {
	if m == nil {
		return nil, convertErrorf(opFromGonum, matrix.ErrNilMatrix)
	}
	r, c := m.Dims()
	vals := make([]float64, 0, r*c)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			vals = append(vals, m.At(i, j))
		}
	}
	d, err := matrix.NewDenseFrom(r, c, vals, opts...)
	if err != nil {
		return nil, convertErrorf(opFromGonum, err)
	}

	return d, nil
}

// Gonum adapts a mat.Matrix to the matrix.Matrix interface.
// The wrapped value is read through on every At call; it is not copied.
type Gonum struct {
	M mat.Matrix
}

// Wrap returns a Gonum adapter for m.
func Wrap(m mat.Matrix) Gonum { return Gonum{M: m} }

// Rows returns the row count of the wrapped matrix.
func (g Gonum) Rows() int {
	r, _ := g.M.Dims()
	return r
}

// Cols returns the column count of the wrapped matrix.
func (g Gonum) Cols() int {
	_, c := g.M.Dims()
	return c
}

// At returns element (i,j). Gonum panics on bad indices; the adapter checks
// bounds first and returns matrix.ErrOutOfRange instead.
func (g Gonum) At(i, j int) (float64, error) {
	r, c := g.M.Dims()
	if i < 0 || i >= r || j < 0 || j >= c {
		return 0, convertErrorf(opAt, fmt.Errorf("(%d,%d): %w", i, j, matrix.ErrOutOfRange))
	}

	return g.M.At(i, j), nil
}

var _ matrix.Matrix = Gonum{}
