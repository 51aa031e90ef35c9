// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures and utilities for kernels.
//   • Keep all data finite and well-formed unless a test targets the numeric policy.

package matrix_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/katalvlaran/densematrix/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels onto the At-based fallback path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c zero *Dense or fails the test.
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err, "NewDense(%d,%d)", r, c)

	return m
}

// MustFrom builds an r×c *Dense from row-major values or fails the test.
func MustFrom(t testing.TB, r, c int, vals ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err, "NewDenseFrom(%d,%d)", r, c)

	return m
}

// MustInts builds an r×c *Dense from row-major integers or fails the test.
func MustInts(t testing.TB, r, c int, vals ...int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromInts(r, c, vals)
	require.NoError(t, err, "NewDenseFromInts(%d,%d)", r, c)

	return m
}

// IdentityDense returns I_n or fails the test.
func IdentityDense(t testing.TB, n int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewIdentity(n)
	require.NoError(t, err, "NewIdentity(%d)", n)

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// RandomDense builds an r×c matrix with values in [-10, 10) from a fixed seed.
func RandomDense(t testing.TB, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, r*c)
	for i := range vals {
		vals[i] = rng.Float64()*20 - 10
	}

	return MustFrom(t, r, c, vals...)
}

// DiagonallyDominant builds an n×n random matrix whose diagonal outweighs each
// row, which keeps it well conditioned for inverse round trips.
func DiagonallyDominant(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			vals[i*n+j] = rng.Float64()*2 - 1
		}
		vals[i*n+i] += float64(2 * n)
	}

	return MustFrom(t, n, n, vals...)
}

// CompareExact asserts m equals want element by element (bitwise).
func CompareExact(t testing.TB, want [][]float64, m matrix.Matrix) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "rows")
	for i := range want {
		require.Equal(t, len(want[i]), m.Cols(), "cols of row %d", i)
		for j := range want[i] {
			require.Equal(t, want[i][j], MustAt(t, m, i, j), "at [%d,%d]", i, j)
		}
	}
}

// RequireClose asserts AllClose(got, want, tol).
func RequireClose(t testing.TB, want, got matrix.Matrix, tol float64) {
	t.Helper()
	ok, err := matrix.AllClose(want, got, tol)
	require.NoError(t, err)
	require.True(t, ok, "matrices differ beyond %g\nwant:\n%v\ngot:\n%v", tol, want, got)
}

// AssertErrorIs checks errors.Is(err, target).
func AssertErrorIs(t testing.TB, err, target error) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, errors.Is(err, target), "want errors.Is(%v, %v)", err, target)
}
