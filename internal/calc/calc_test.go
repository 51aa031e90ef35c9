// SPDX-License-Identifier: MIT
package calc_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/katalvlaran/densematrix/internal/calc"
	"github.com/katalvlaran/densematrix/internal/config"
	"github.com/katalvlaran/densematrix/matrix"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func mustInts(r, c int, vals ...int) *matrix.Dense {
	m, err := matrix.NewDenseFromInts(r, c, vals)
	Expect(err).NotTo(HaveOccurred())
	return m
}

func step(op string, args ...string) config.Step {
	return config.Step{Op: op, Args: args}
}

var _ = Describe("Evaluator", func() {
	var ev *calc.Evaluator

	BeforeEach(func() {
		ev = calc.New(map[string]*matrix.Dense{
			"A": mustInts(2, 2, 1, 2, 3, 4),
			"B": mustInts(2, 2, 4, 7, 2, 6),
			"S": mustInts(2, 2, 1, 2, 2, 4),
			"W": mustInts(2, 3, 1, 2, 3, 4, 5, 6),
		})
	})

	DescribeTable("scalar ops",
		func(op, arg string, want float64) {
			res, err := ev.Step(1, step(op, arg))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Kind).To(Equal(calc.KindScalar))
			Expect(res.Scalar).To(BeNumerically("~", want, 1e-12))
		},
		Entry("det", "det", "A", -2.0),
		Entry("trace", "trace", "B", 10.0),
		Entry("rank of singular", "rank", "S", 1.0),
		Entry("rank of wide", "rank", "W", 2.0),
	)

	DescribeTable("matrix ops",
		func(s config.Step, want [][]float64) {
			res, err := ev.Step(1, s)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Kind).To(Equal(calc.KindMatrix))
			got, err := matrix.NewDenseFromRows(want)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Matrix.Equals(got)).To(BeTrue(), "got\n%v", res.Matrix)
		},
		Entry("add", step("add", "A", "B"), [][]float64{{5, 9}, {5, 10}}),
		Entry("sub", step("sub", "A", "B"), [][]float64{{-3, -5}, {1, -2}}),
		Entry("mul", step("mul", "A", "W"), [][]float64{{9, 12, 15}, {19, 26, 33}}),
		Entry("rmul", step("rmul", "W", "A"), [][]float64{{9, 12, 15}, {19, 26, 33}}),
		Entry("scale", config.Step{Op: "scale", Args: []string{"A"}, K: -2}, [][]float64{{-2, -4}, {-6, -8}}),
		Entry("transpose", step("transpose", "W"), [][]float64{{1, 4}, {2, 5}, {3, 6}}),
		Entry("minor", config.Step{Op: "minor", Args: []string{"W"}, Row: 1, Col: 2}, [][]float64{{1, 2}}),
		Entry("inv", step("inv", "B"), [][]float64{{0.6, -0.7}, {-0.2, 0.4}}),
		Entry("print", step("print", "A"), [][]float64{{1, 2}, {3, 4}}),
	)

	It("compares with the receiver's tolerance", func() {
		loose, err := matrix.NewDenseFromInts(2, 2, []int{1, 2, 3, 4}, matrix.WithEpsilon(1e-3))
		Expect(err).NotTo(HaveOccurred())
		near, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3, 4 + 1e-4})
		Expect(err).NotTo(HaveOccurred())
		ev = calc.New(map[string]*matrix.Dense{
			"A": mustInts(2, 2, 1, 2, 3, 4),
			"L": loose,
			"N": near,
		})

		res, err := ev.Step(1, step("equals", "L", "N"))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Kind).To(Equal(calc.KindBool))
		Expect(res.Bool).To(BeTrue())
		Expect(res.String()).To(Equal("equals(L, N) = true"))

		// N and A keep the default tolerance, so the same pair is unequal
		// when either of them is the receiver.
		res, err = ev.Step(2, step("equals", "N", "L"))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Bool).To(BeFalse())

		res, err = ev.Step(3, step("equals", "A", "N"))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Bool).To(BeFalse())
	})

	It("stores matrix results for later steps", func() {
		results, err := ev.Run(context.Background(), []config.Step{
			{Op: "inv", Args: []string{"B"}, As: "Binv"},
			{Op: "mul", Args: []string{"B", "Binv"}, As: "I"},
			{Op: "trace", Args: []string{"I"}},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		Expect(results[2].Scalar).To(BeNumerically("~", 2, 1e-12))
		Expect(results[1].Label()).To(Equal("mul(B, Binv) -> I"))

		_, ok := ev.Lookup("Binv")
		Expect(ok).To(BeTrue())
	})

	Context("when a step is invalid", func() {
		It("reports unknown ops", func() {
			_, err := ev.Step(3, step("frobnicate", "A"))
			Expect(err).To(MatchError(calc.ErrUnknownOp))
			Expect(err.Error()).To(HavePrefix("step 3 (frobnicate)"))
		})

		It("reports unknown matrices", func() {
			_, err := ev.Step(1, step("det", "Z"))
			Expect(err).To(MatchError(calc.ErrUnknownMatrix))
		})

		It("reports arity mismatches", func() {
			_, err := ev.Step(1, step("add", "A"))
			Expect(err).To(MatchError(calc.ErrArity))
		})

		It("refuses to store scalars", func() {
			_, err := ev.Step(1, config.Step{Op: "det", Args: []string{"A"}, As: "d"})
			Expect(err).To(MatchError(calc.ErrNotStorable))
		})

		It("passes matrix errors through", func() {
			_, err := ev.Step(1, step("inv", "S"))
			Expect(err).To(MatchError(matrix.ErrSingular))

			_, err = ev.Step(2, step("det", "W"))
			Expect(matrix.IsDimensionError(err)).To(BeTrue())
		})

		It("stops a run at the first failure", func() {
			results, err := ev.Run(context.Background(), []config.Step{
				step("det", "A"),
				step("inv", "S"),
				step("det", "B"),
			})
			Expect(err).To(MatchError(matrix.ErrSingular))
			Expect(results).To(HaveLen(1))
		})
	})

	It("honours cancellation between steps", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		results, err := ev.Run(ctx, []config.Step{step("det", "A")})
		Expect(err).To(MatchError(context.Canceled))
		Expect(results).To(BeEmpty())
	})

	It("logs each step at debug level", func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		ev = calc.New(map[string]*matrix.Dense{"A": mustInts(1, 1, 5)}, calc.WithLogger(logger))
		_, err := ev.Step(1, step("det", "A"))
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("op=det"))
	})
})

var _ = Describe("RunJob", func() {
	It("evaluates a decoded job end to end", func() {
		job, err := config.Decode(strings.NewReader(`
matrices:
  A: {rows: 2, cols: 2, values: [1, 2, 3, 4]}
steps:
  - {op: transpose, args: [A], as: At}
  - {op: print, args: [At]}
  - {op: det, args: [At]}
`))
		Expect(err).NotTo(HaveOccurred())

		results, err := calc.RunJob(context.Background(), job)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		Expect(results[1].String()).To(Equal("print(At)\n{1,3}\n{2,4}\n"))
		Expect(results[2].String()).To(Equal("det(At) = -2"))
	})

	It("fails before running when a matrix cannot be built", func() {
		job := &config.Job{
			Matrices: map[string]config.MatrixSpec{"A": {Rows: 2, Cols: 2, Values: []float64{1}}},
			Steps:    []config.Step{{Op: "print", Args: []string{"A"}}},
		}
		_, err := calc.RunJob(context.Background(), job)
		Expect(err).To(MatchError(matrix.ErrSizeMismatch))
	})
})

var _ = Describe("Ops", func() {
	It("lists every op in order", func() {
		Expect(calc.Ops()).To(Equal([]string{
			"add", "det", "equals", "inv", "minor", "mul", "print",
			"rank", "rmul", "scale", "sub", "trace", "transpose",
		}))
	})
})
