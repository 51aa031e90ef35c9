// Package densematrix is a small dense real-matrix toolkit.
//
// It is organized as:
//
//	matrix/           Dense matrices: construction, arithmetic, determinant,
//	                  minor, inverse, rank, trace, equality and text layout
//	convert/          copies to and from gonum's mat.Dense, plus an adapter that
//	                  lets any mat.Matrix feed the matrix kernels
//	internal/config/  YAML job files (named matrices + ordered steps)
//	internal/calc/    step evaluator behind the CLI
//	cmd/densecalc/    command-line front end
//
// Quick example:
//
//	m, _ := matrix.NewDenseFromInts(2, 2, []int{1, 2, 3, 4})
//	m.Print()                 // {1,2}
//	                          // {3,4}
//	det, _ := m.Determinant() // -2
//
// The matrix package has no dependencies outside the standard library; gonum
// is only pulled in by convert.
package densematrix
