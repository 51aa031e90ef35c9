// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for construction and numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - Options are captured by a Dense at construction and inherited by every
//     matrix derived from it (Add, Mul, Transpose, Inverse, ...). The receiver's
//     policy wins for binary operations.
//   - eps is the single tolerance used by Equals, the singularity check in
//     Inverse and the pivot threshold in Rank.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the comparison tolerance used for equality,
	// singularity detection and rank pivot selection.
	DefaultEpsilon = 1e-10

	// DefaultValidateNaNInf toggles strict finite-value validation on construction.
	// Off by default: any float64 is a legal element.
	DefaultValidateNaNInf = false

	// MaxPrecisionDigits caps the fractional digit count used by the formatter.
	MaxPrecisionDigits = 5
)

const panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options is the resolved configuration. Fields are unexported; build it via
// NewMatrixOptions or pass ...Option to constructors.
type Options struct {
	eps            float64 // comparison tolerance
	validateNaNInf bool    // reject NaN/±Inf on construction
}

// Epsilon returns the effective comparison tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports whether the finite-only policy is enabled.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// WithEpsilon sets the comparison tolerance.
// Implementation:
//   - Stage 1: validate eps is finite and non-negative (panic otherwise).
//   - Stage 2: return setter.
//
// Notes:
//   - Applies to Equals, Inverse (|det| < eps ⇒ ErrSingular) and Rank pivots.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables strict finite-value validation: constructors
// return ErrNaNInf when any element is NaN or ±Inf.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-value validation (the default).
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// NewMatrixOptions resolves option setters against documented defaults.
// Last-writer-wins semantics. Complexity: O(k) for k=len(opts).
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// gatherOptions applies user-provided Option setters on top of defaults.
// This is the canonical internal entry for constructors.
func gatherOptions(user ...Option) Options {
	o := Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, set := range user {
		if set != nil {
			set(&o) // apply in order; last-writer-wins semantics
		}
	}

	return o
}
