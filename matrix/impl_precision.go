// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Derive the display precision of a matrix: the largest number of non-zero
//     fractional decimal digits found in any element, capped at MaxPrecisionDigits.
//
// Implementation notes:
//   - Digits come from the shortest decimal expansion that round-trips to the
//     same float64 (strconv 'e' format with precision -1). A digit at position k
//     of the mantissa has place value 10^(exp-k); it is fractional iff k > exp.
//   - Non-finite values contribute 0.

package matrix

import (
	"bytes"
	"math"
	"strconv"
)

// precisionOf scans buf once and returns the capped maximum digit count.
// Complexity: O(n) with a constant-size scratch buffer per element.
func precisionOf(buf []float64) int {
	best := 0
	for _, v := range buf {
		if d := fractionalNonZeroDigits(v); d > best {
			best = d
			if best >= MaxPrecisionDigits {
				return MaxPrecisionDigits
			}
		}
	}

	return best
}

// fractionalNonZeroDigits counts the non-zero digits after the decimal point
// in the shortest round-trip decimal expansion of v, capped at MaxPrecisionDigits.
func fractionalNonZeroDigits(v float64) int {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	var scratch [32]byte
	repr := strconv.AppendFloat(scratch[:0], math.Abs(v), 'e', -1, 64)
	ePos := bytes.IndexByte(repr, 'e')
	if ePos < 0 {
		return 0
	}
	exp, err := strconv.Atoi(string(repr[ePos+1:]))
	if err != nil {
		return 0
	}

	count, k := 0, 0
	for _, ch := range repr[:ePos] {
		if ch == '.' {
			continue
		}
		if k > exp && ch != '0' {
			count++
		}
		k++
	}
	if count > MaxPrecisionDigits {
		count = MaxPrecisionDigits
	}

	return count
}
