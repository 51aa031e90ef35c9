// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/densematrix/matrix"
	"github.com/stretchr/testify/require"
)

func TestEquals_Tolerance(t *testing.T) {
	t.Parallel()

	a := MustFrom(t, 2, 2, 1, 2, 3, 4)
	require.True(t, a.Equals(MustFrom(t, 2, 2, 1, 2, 3, 4+1e-11)))
	require.False(t, a.Equals(MustFrom(t, 2, 2, 1, 2, 3, 4+1e-9)))
	require.True(t, a.Equals(a))

	id := MustInts(t, 2, 2, 1, 0, 0, 1)
	require.True(t, id.Equals(MustInts(t, 2, 2, 1, 0, 0, 1)))
	require.True(t, id.Equals(MustFrom(t, 2, 2, 1, 1e-11, 0, 1)))
	require.False(t, id.Equals(MustFrom(t, 2, 2, 1, 1e-9, 0, 1)))
}

func TestEquals_ShapeAndNil(t *testing.T) {
	t.Parallel()

	a := MustDense(t, 2, 2)
	require.False(t, a.Equals(MustDense(t, 1, 4)))
	require.False(t, a.Equals(MustDense(t, 2, 3)))
	require.False(t, a.Equals(nil))
}

func TestEquals_Symmetric(t *testing.T) {
	t.Parallel()

	a := RandomDense(t, 3, 3, 3)
	b := a.ScalarMultiply(1)
	require.Equal(t, a.Equals(b), b.Equals(a))

	c := MustFrom(t, 1, 1, 1)
	d := MustFrom(t, 1, 1, 1+5e-11)
	require.Equal(t, c.Equals(d), d.Equals(c))
}

func TestAllClose(t *testing.T) {
	t.Parallel()

	a := MustFrom(t, 1, 3, 1, 2, 3)
	b := MustFrom(t, 1, 3, 1.01, 2, 3)

	ok, err := matrix.AllClose(a, b, 0.1)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(hide{a}, hide{b}, 0.001)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = matrix.AllClose(a, b, -0.1)
	require.NoError(t, err)
	require.True(t, ok, "negative tolerance is taken by magnitude")

	_, err = matrix.AllClose(a, b, math.NaN())
	AssertErrorIs(t, err, matrix.ErrNaNInf)

	_, err = matrix.AllClose(a, MustDense(t, 3, 1), 1)
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.AllClose(nil, b, 1)
	AssertErrorIs(t, err, matrix.ErrNilMatrix)
}
