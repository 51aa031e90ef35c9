// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Render a matrix as an aligned, brace-delimited text block for diagnostics
//     and tests. This is not a machine-readable serialization format.
//
// Layout rules:
//   - l = largest int(log10|v|) over all elements (zero counts as 1, floor 0).
//   - f = Precision(), or -1 when Precision() == 0.
//   - width = l + 1 + f + 1; every element is printed with Precision()
//     fractional digits, right-aligned to width.
//   - Rounding is half-up on the shortest decimal form of each value, not on
//     its exact binary expansion.
//   - If any element is negative, the space flag is applied to every element
//     so signs line up.
//   - Each row is "{v0,v1,...}" followed by a newline.

package matrix

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "{"
	_fmtRowClose = "}\n"
	_fmtSep      = ","

	_fmtPlain  = "%*.*f"  // non-finite values: width, precision, value
	_fmtSigned = "% *.*f" // same with a reserved sign slot
)

// layout computes the shared column width for m and reports whether any
// element is negative (every element then reserves a sign slot).
func (m *Dense) layout() (width int, signed bool) {
	l := 0
	var a, lg float64
	for _, v := range m.data {
		switch {
		case v == 0:
			a = 1
		case v < 0:
			signed = true
			a = -v
		default:
			a = v
		}
		if math.IsInf(a, 0) || math.IsNaN(a) {
			continue
		}
		if lg = math.Log10(a); lg > float64(l) {
			l = int(lg)
		}
	}

	f := m.prec
	if f == 0 {
		f = -1
	}

	return l + 1 + f + 1, signed
}

// appendFixed appends v with exactly prec fractional digits.
// Rounding is half-up on the shortest round-trip decimal digits of v, so
// 0.105 at two digits is 0.11 and 0.0625 at three digits is 0.063.
// The sign is always written for negative values; signed adds a leading
// space to the others. The result is left-padded with spaces to width.
func appendFixed(dst []byte, v float64, prec, width int, signed bool) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		verb := _fmtPlain
		if signed {
			verb = _fmtSigned
		}
		return fmt.Appendf(dst, verb, width, prec, v)
	}

	var scratch [48]byte
	digits := strconv.AppendFloat(scratch[:0], math.Abs(v), 'f', -1, 64)
	intPart, frac := digits, []byte(nil)
	if dot := bytes.IndexByte(digits, '.'); dot >= 0 {
		intPart, frac = digits[:dot], digits[dot+1:]
	}

	// num holds the integer digits followed by exactly prec fractional digits.
	num := make([]byte, 0, len(intPart)+prec+1)
	num = append(num, intPart...)
	roundUp := false
	if len(frac) > prec {
		num = append(num, frac[:prec]...)
		roundUp = frac[prec] >= '5'
	} else {
		num = append(num, frac...)
		for k := len(frac); k < prec; k++ {
			num = append(num, '0')
		}
	}
	if roundUp {
		k := len(num) - 1
		for ; k >= 0 && num[k] == '9'; k-- {
			num[k] = '0'
		}
		if k >= 0 {
			num[k]++
		} else {
			num = append([]byte{'1'}, num...)
		}
	}

	var sign byte
	switch {
	case math.Signbit(v):
		sign = '-'
	case signed:
		sign = ' '
	}

	n := len(num)
	if prec > 0 {
		n++ // decimal point
	}
	if sign != 0 {
		n++
	}
	for ; n < width; n++ {
		dst = append(dst, ' ')
	}
	if sign != 0 {
		dst = append(dst, sign)
	}
	split := len(num) - prec
	dst = append(dst, num[:split]...)
	if prec > 0 {
		dst = append(dst, '.')
		dst = append(dst, num[split:]...)
	}

	return dst
}

// Format renders m as one line per row.
// Complexity: Time O(r*c), Space O(r*c).
func (m *Dense) Format() string {
	width, signed := m.layout()

	var b strings.Builder
	var cell []byte
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			cell = appendFixed(cell[:0], m.data[base+j], m.prec, width, signed)
			b.Write(cell)
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// String implements fmt.Stringer with the Format layout.
func (m *Dense) String() string { return m.Format() }

// Fprint writes the formatted block to w.
func (m *Dense) Fprint(w io.Writer) error {
	_, err := io.WriteString(w, m.Format())
	return err
}

// Print writes the formatted block to standard output.
func (m *Dense) Print() {
	_ = m.Fprint(os.Stdout)
}
