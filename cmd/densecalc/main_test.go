// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/densematrix/internal/calc"
	"github.com/katalvlaran/densematrix/matrix"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()

	return out.String(), errOut.String(), err
}

func TestSingleCommands(t *testing.T) {
	for _, tc := range []struct {
		args []string
		want []string
	}{
		{[]string{"det", "--rows", "2", "--cols", "2", "--values", "1,2,3,4"}, []string{"det(M)", "-2"}},
		{[]string{"rank", "--rows", "3", "--cols", "3", "--values", "1,2,3,2,4,6,3,6,9"}, []string{"rank(M)", "1"}},
		{[]string{"trace", "--rows", "2", "--cols", "2", "--values", "1,2,3,4"}, []string{"trace(M)", "5"}},
		{[]string{"transpose", "--rows", "1", "--cols", "2", "--values", "1,2"}, []string{"transpose(M)", "{1}\n{2}"}},
		{[]string{"show", "--rows", "2", "--cols", "2", "--values", "1.5,-2,3.25,4"}, []string{"print(M)", "{ 1.50,-2.00}\n{ 3.25, 4.00}"}},
		{[]string{"inv", "--rows", "2", "--cols", "2", "--values", "2,0,0,4"}, []string{"inv(M)", "{0.50,0.00}\n{0.00,0.25}"}},
	} {
		t.Run(tc.args[0], func(t *testing.T) {
			out, _, err := execute(t, tc.args...)
			require.NoError(t, err)
			for _, w := range tc.want {
				require.Contains(t, out, w)
			}
		})
	}
}

func TestSingleCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "inv", "--rows", "2", "--cols", "2", "--values", "1,2,2,4")
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, _, err = execute(t, "det", "--rows", "2", "--cols", "2", "--values", "1,2,3")
	require.ErrorIs(t, err, matrix.ErrSizeMismatch)

	_, _, err = execute(t, "det", "--rows", "2")
	require.Error(t, err, "required flags")
}

func TestSingleCommand_Epsilon(t *testing.T) {
	for _, eps := range []string{"inf", "-Inf", "NaN", "-1e-3"} {
		t.Run(eps, func(t *testing.T) {
			require.NotPanics(t, func() {
				_, _, err := execute(t, "det", "--rows", "2", "--cols", "2", "--values", "1,2,3,4", "--eps", eps)
				require.ErrorIs(t, err, errEpsilon)
			})
		})
	}

	out, _, err := execute(t, "det", "--rows", "2", "--cols", "2", "--values", "1,2,3,4", "--eps", "1e-3")
	require.NoError(t, err)
	require.Contains(t, out, "-2")
}

func TestRunCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
matrices:
  A: {rows: 2, cols: 2, values: [4, 7, 2, 6]}
steps:
  - {op: det, args: [A]}
  - {op: inv, args: [A], as: Ainv}
  - {op: mul, args: [A, Ainv], as: I}
  - {op: rank, args: [I]}
  - {op: bogus, args: [A]}
`), 0o644))

	out, stderr, err := execute(t, "-v", "run", path)
	require.ErrorIs(t, err, calc.ErrUnknownOp)
	require.Contains(t, out, "det(A) = 10")
	require.Contains(t, out, "inv(A) -> Ainv")
	require.Contains(t, out, "rank(I) = 2")
	require.Contains(t, stderr, "job loaded")
	require.Contains(t, stderr, "op=inv")
}

func TestRunCommand_Quiet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte("matrices:\n  A: {grid: [[3]]}\nsteps:\n  - {op: trace, args: [A]}\n"), 0o644))

	out, stderr, err := execute(t, "run", path)
	require.NoError(t, err)
	require.Contains(t, out, "trace(A) = 3")
	require.Empty(t, stderr)
}

func TestOpsCommand(t *testing.T) {
	out, _, err := execute(t, "ops")
	require.NoError(t, err)
	require.Contains(t, out, "inv\n")
	require.Contains(t, out, "transpose\n")
}

func TestRunCommand_ExampleJob(t *testing.T) {
	out, _, err := execute(t, "run", filepath.Join("..", "..", "examples", "inverse_check.yaml"))
	require.NoError(t, err)
	require.Contains(t, out, "det(A) = 10")
	require.Contains(t, out, "equals(P, I2) = true")
	require.Contains(t, out, "rank(R) = 1")
	require.Contains(t, out, "minor(R)")
	require.Contains(t, out, "trace(R) = 14")
}
