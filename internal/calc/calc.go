// SPDX-License-Identifier: MIT

package calc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/densematrix/internal/config"
	"github.com/katalvlaran/densematrix/matrix"
)

var (
	// ErrUnknownOp is returned for a step whose op is not registered.
	ErrUnknownOp = errors.New("calc: unknown op")

	// ErrUnknownMatrix is returned when a step names an undefined matrix.
	ErrUnknownMatrix = errors.New("calc: unknown matrix")

	// ErrArity is returned when a step has the wrong number of arguments.
	ErrArity = errors.New("calc: wrong number of arguments")

	// ErrNotStorable is returned when "as" is set on a step that does not
	// produce a matrix.
	ErrNotStorable = errors.New("calc: result is not a matrix")
)

// Kind tells which field of a Result holds the value.
type Kind int

const (
	KindMatrix Kind = iota
	KindScalar
	KindBool
)

// Result is the outcome of one step.
type Result struct {
	Index  int // 1-based step number
	Op     string
	Args   []string
	As     string
	Kind   Kind
	Matrix *matrix.Dense
	Scalar float64
	Bool   bool
}

// Label renders the call, e.g. "mul(A, B) -> C".
func (r Result) Label() string {
	var b strings.Builder
	b.WriteString(r.Op)
	b.WriteByte('(')
	b.WriteString(strings.Join(r.Args, ", "))
	b.WriteByte(')')
	if r.As != "" {
		b.WriteString(" -> ")
		b.WriteString(r.As)
	}

	return b.String()
}

// Value renders the result value. Matrices use the matrix Format layout.
func (r Result) Value() string {
	switch r.Kind {
	case KindScalar:
		return strconv.FormatFloat(r.Scalar, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(r.Bool)
	default:
		return r.Matrix.Format()
	}
}

// String joins Label and Value.
func (r Result) String() string {
	if r.Kind == KindMatrix {
		return r.Label() + "\n" + r.Value()
	}

	return r.Label() + " = " + r.Value()
}

// opFunc computes a step from already resolved operands.
type opFunc func(s config.Step, args []*matrix.Dense) (Result, error)

type opSpec struct {
	arity int
	fn    opFunc
}

func matrixResult(m *matrix.Dense, err error) (Result, error) {
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: KindMatrix, Matrix: m}, nil
}

func scalarResult(v float64, err error) (Result, error) {
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: KindScalar, Scalar: v}, nil
}

var ops = map[string]opSpec{
	"add": {2, func(_ config.Step, a []*matrix.Dense) (Result, error) {
		return matrixResult(a[0].Add(a[1]))
	}},
	"sub": {2, func(_ config.Step, a []*matrix.Dense) (Result, error) {
		return matrixResult(a[0].Subtract(a[1]))
	}},
	"mul": {2, func(_ config.Step, a []*matrix.Dense) (Result, error) {
		return matrixResult(a[0].LeftMultiply(a[1]))
	}},
	"rmul": {2, func(_ config.Step, a []*matrix.Dense) (Result, error) {
		return matrixResult(a[0].RightMultiply(a[1]))
	}},
	"scale": {1, func(s config.Step, a []*matrix.Dense) (Result, error) {
		return matrixResult(a[0].ScalarMultiply(s.K), nil)
	}},
	"transpose": {1, func(_ config.Step, a []*matrix.Dense) (Result, error) {
		return matrixResult(a[0].Transpose(), nil)
	}},
	"minor": {1, func(s config.Step, a []*matrix.Dense) (Result, error) {
		return matrixResult(a[0].Minor(s.Row, s.Col))
	}},
	"inv": {1, func(_ config.Step, a []*matrix.Dense) (Result, error) {
		return matrixResult(a[0].Inverse())
	}},
	"det": {1, func(_ config.Step, a []*matrix.Dense) (Result, error) {
		return scalarResult(a[0].Determinant())
	}},
	"trace": {1, func(_ config.Step, a []*matrix.Dense) (Result, error) {
		return scalarResult(a[0].Trace())
	}},
	"rank": {1, func(_ config.Step, a []*matrix.Dense) (Result, error) {
		return scalarResult(float64(a[0].Rank()), nil)
	}},
	"equals": {2, func(_ config.Step, a []*matrix.Dense) (Result, error) {
		return Result{Kind: KindBool, Bool: a[0].Equals(a[1])}, nil
	}},
	"print": {1, func(_ config.Step, a []*matrix.Dense) (Result, error) {
		return matrixResult(a[0], nil)
	}},
}

// Ops returns the registered op names in sorted order.
func Ops() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger used for per-step diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.log = l
		}
	}
}

// Evaluator runs steps against a mutable environment of named matrices.
// It is not safe for concurrent use.
type Evaluator struct {
	env map[string]*matrix.Dense
	log *slog.Logger
}

// New returns an Evaluator over a copy of env.
func New(env map[string]*matrix.Dense, opts ...Option) *Evaluator {
	e := &Evaluator{
		env: make(map[string]*matrix.Dense, len(env)),
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for k, v := range env {
		e.env[k] = v
	}
	for _, o := range opts {
		o(e)
	}

	return e
}

// Lookup returns the matrix bound to name.
func (e *Evaluator) Lookup(name string) (*matrix.Dense, bool) {
	m, ok := e.env[name]
	return m, ok
}

// Step evaluates s as step number index (1-based).
func (e *Evaluator) Step(index int, s config.Step) (Result, error) {
	spec, ok := ops[s.Op]
	if !ok {
		return Result{}, stepErrorf(index, s.Op, ErrUnknownOp)
	}
	if len(s.Args) != spec.arity {
		return Result{}, stepErrorf(index, s.Op,
			fmt.Errorf("%w: want %d, got %d", ErrArity, spec.arity, len(s.Args)))
	}
	args := make([]*matrix.Dense, len(s.Args))
	for i, name := range s.Args {
		m, found := e.env[name]
		if !found {
			return Result{}, stepErrorf(index, s.Op, fmt.Errorf("%w: %q", ErrUnknownMatrix, name))
		}
		args[i] = m
	}

	res, err := spec.fn(s, args)
	if err != nil {
		return Result{}, stepErrorf(index, s.Op, err)
	}
	res.Index, res.Op, res.Args, res.As = index, s.Op, s.Args, s.As

	if s.As != "" {
		if res.Kind != KindMatrix {
			return Result{}, stepErrorf(index, s.Op, ErrNotStorable)
		}
		e.env[s.As] = res.Matrix
	}
	e.log.Debug("step", "index", index, "op", s.Op, "args", s.Args, "as", s.As)

	return res, nil
}

// Run evaluates steps in order and stops at the first error or when ctx is done.
// Results of the steps that completed are returned alongside the error.
func (e *Evaluator) Run(ctx context.Context, steps []config.Step) ([]Result, error) {
	results := make([]Result, 0, len(steps))
	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := e.Step(i+1, s)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}

// RunJob builds the job's matrices and evaluates its steps.
func RunJob(ctx context.Context, job *config.Job, opts ...Option) ([]Result, error) {
	env, err := job.BuildAll()
	if err != nil {
		return nil, err
	}

	return New(env, opts...).Run(ctx, job.Steps)
}

func stepErrorf(index int, op string, err error) error {
	return fmt.Errorf("step %d (%s): %w", index, op, err)
}
