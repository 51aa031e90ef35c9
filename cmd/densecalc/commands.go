// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/katalvlaran/densematrix/internal/calc"
	"github.com/katalvlaran/densematrix/internal/config"
	"github.com/katalvlaran/densematrix/matrix"
	"github.com/spf13/cobra"
)

var errEpsilon = errors.New("--eps must be finite and non-negative")

// flags shared by the single-matrix commands.
type matrixFlags struct {
	rows, cols int
	values     []float64
	epsilon    float64
}

func (f *matrixFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.rows, "rows", 0, "row count")
	cmd.Flags().IntVar(&f.cols, "cols", 0, "column count")
	cmd.Flags().Float64SliceVar(&f.values, "values", nil, "row-major values, comma separated")
	cmd.Flags().Float64Var(&f.epsilon, "eps", 0, "comparison tolerance (0 keeps the default)")
	_ = cmd.MarkFlagRequired("rows")
	_ = cmd.MarkFlagRequired("cols")
	_ = cmd.MarkFlagRequired("values")
}

func (f *matrixFlags) build() (*matrix.Dense, error) {
	if math.IsNaN(f.epsilon) || math.IsInf(f.epsilon, 0) || f.epsilon < 0 {
		return nil, fmt.Errorf("%w: %v", errEpsilon, f.epsilon)
	}
	var opts []matrix.Option
	if f.epsilon > 0 {
		opts = append(opts, matrix.WithEpsilon(f.epsilon))
	}

	return matrix.NewDenseFrom(f.rows, f.cols, f.values, opts...)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func printResult(w io.Writer, r calc.Result) {
	if r.Kind == calc.KindMatrix {
		fmt.Fprintln(w, labelStyle.Render(r.Label()))
		fmt.Fprint(w, valueStyle.Render(strings.TrimSuffix(r.Value(), "\n"))+"\n")
		return
	}
	fmt.Fprintf(w, "%s = %s\n", labelStyle.Render(r.Label()), valueStyle.Render(r.Value()))
}

func newRootCmd() *cobra.Command {
	var verbose bool
	var logger *slog.Logger

	rootCmd := &cobra.Command{
		Use:           "densecalc",
		Short:         "dense real matrix calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(cmd.ErrOrStderr(), verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	runCmd := &cobra.Command{
		Use:   "run [job.yaml]",
		Short: "evaluate a job file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := config.Load(args[0])
			if err != nil {
				return err
			}
			logger.Debug("job loaded", "path", args[0], "matrices", len(job.Matrices), "steps", len(job.Steps))

			results, err := calc.RunJob(cmd.Context(), job, calc.WithLogger(logger))
			for _, r := range results {
				printResult(cmd.OutOrStdout(), r)
			}

			return err
		},
	}

	opsCmd := &cobra.Command{
		Use:   "ops",
		Short: "list the ops accepted in job files",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, op := range calc.Ops() {
				fmt.Fprintln(cmd.OutOrStdout(), op)
			}
		},
	}

	rootCmd.AddCommand(runCmd, opsCmd)
	for _, c := range []struct{ use, op, short string }{
		{"det", "det", "determinant"},
		{"inv", "inv", "inverse"},
		{"rank", "rank", "rank"},
		{"trace", "trace", "trace"},
		{"transpose", "transpose", "transpose"},
		{"show", "print", "print the matrix"},
	} {
		rootCmd.AddCommand(newSingleCmd(c.use, c.op, c.short, &logger))
	}

	return rootCmd
}

// newSingleCmd builds a command applying op to one matrix given by flags.
func newSingleCmd(use, op, short string, logger **slog.Logger) *cobra.Command {
	var f matrixFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := f.build()
			if err != nil {
				return err
			}
			ev := calc.New(map[string]*matrix.Dense{"M": m}, calc.WithLogger(*logger))
			res, err := ev.Step(1, config.Step{Op: op, Args: []string{"M"}})
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)

			return nil
		},
	}
	f.register(cmd)

	return cmd
}
