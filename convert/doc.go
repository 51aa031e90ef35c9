// SPDX-License-Identifier: MIT

// Package convert bridges matrix.Dense and gonum's mat package.
//
// ToGonum and FromGonum copy between the two representations. Gonum wraps a
// mat.Matrix so that it satisfies matrix.Matrix and can be handed to any
// kernel (Add, Mul, Determinant, AllClose, ...) without copying.
package convert
