// SPDX-License-Identifier: MIT

package matrix

// Test bridge for private helpers.
//
// Purpose:
//   - Expose unexported precision and layout helpers to matrix_test only.
//   - The file ends in _test.go, so none of this reaches production builds.

// FractionalNonZeroDigits_TestOnly forwards to fractionalNonZeroDigits.
func FractionalNonZeroDigits_TestOnly(v float64) int { return fractionalNonZeroDigits(v) }

// PrecisionOf_TestOnly forwards to precisionOf.
func PrecisionOf_TestOnly(buf []float64) int { return precisionOf(buf) }

// Layout_TestOnly exposes the column width and sign slot chosen by Format.
func Layout_TestOnly(m *Dense) (width int, signed bool) { return m.layout() }

// AppendFixed_TestOnly renders one element the way Format does.
func AppendFixed_TestOnly(v float64, prec, width int, signed bool) string {
	return string(appendFixed(nil, v, prec, width, signed))
}
