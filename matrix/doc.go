// Package matrix implements small-to-medium dense real matrices.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix built by NewDense (zeros),
//     NewDenseFrom (flat floats), NewDenseFromInts (flat ints) or
//     NewDenseFromRows (nested grid). A Dense has no mutators; Grid returns
//     a snapshot.
//   - Arithmetic: Add, Sub, Scale, Mul, Transpose as package kernels over the
//     read-only Matrix interface, and Add, Subtract, ScalarMultiply,
//     LeftMultiply, RightMultiply, Transpose as *Dense methods.
//   - Elimination: Determinant (recursive cofactor expansion), Minor,
//     Inverse (Gauss–Jordan with partial pivoting), Rank, Trace.
//   - Display: Format / Print render an aligned "{a,b,c}" block whose
//     precision is inferred from the elements.
//   - Equality: Equals and AllClose compare element-wise within a tolerance
//     (DefaultEpsilon = 1e-10).
//
// Errors are sentinels (ErrDimensionMismatch, ErrNilMatrix, ErrSingular, ...)
// wrapped with an operation tag; match them with errors.Is.
//
// Dense matrices are logically immutable and therefore safe for concurrent
// reads. Nothing in this package locks.
package matrix
