// SPDX-License-Identifier: MIT

// Package config decodes densecalc job files.
//
// A job names a set of matrices and an ordered list of steps to run on them:
//
//	epsilon: 1e-10
//	matrices:
//	  A: {rows: 2, cols: 2, values: [1, 2, 3, 4]}
//	  B: {grid: [[4, 7], [2, 6]]}
//	steps:
//	  - {op: det, args: [A]}
//	  - {op: mul, args: [A, B], as: C}
//	  - {op: print, args: [C]}
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/katalvlaran/densematrix/matrix"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyJob is returned for an input with no YAML document.
	ErrEmptyJob = errors.New("config: empty job")

	// ErrNoSteps is returned when a job declares no steps.
	ErrNoSteps = errors.New("config: no steps")

	// ErrMatrixSpec is returned for a matrix entry that sets both or neither
	// of grid and rows/cols/values.
	ErrMatrixSpec = errors.New("config: matrix needs either grid or rows/cols/values")

	// ErrStep is returned for a step with no op.
	ErrStep = errors.New("config: step has no op")

	// ErrEpsilon is returned for a NaN, infinite or negative epsilon.
	ErrEpsilon = errors.New("config: epsilon must be finite and non-negative")
)

// Job is a decoded job file.
type Job struct {
	// Epsilon overrides matrix.DefaultEpsilon for every declared matrix when > 0.
	Epsilon float64 `yaml:"epsilon,omitempty"`
	// Strict rejects NaN and ±Inf elements on construction.
	Strict   bool                  `yaml:"strict,omitempty"`
	Matrices map[string]MatrixSpec `yaml:"matrices"`
	Steps    []Step                `yaml:"steps"`
}

// MatrixSpec declares one matrix, either flat or as a nested grid.
type MatrixSpec struct {
	Rows   int         `yaml:"rows,omitempty"`
	Cols   int         `yaml:"cols,omitempty"`
	Values []float64   `yaml:"values,omitempty"`
	Grid   [][]float64 `yaml:"grid,omitempty"`
}

// Step is one operation in a job.
type Step struct {
	Op   string   `yaml:"op"`
	Args []string `yaml:"args,omitempty"`
	// As stores a matrix-valued result under a new name.
	As string `yaml:"as,omitempty"`
	// K is the integer factor for scale.
	K int `yaml:"k,omitempty"`
	// Row and Col select the removed row and column for minor.
	Row int `yaml:"row,omitempty"`
	Col int `yaml:"col,omitempty"`
}

// Load reads and validates the job file at path.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	job, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return job, nil
}

// Decode reads one YAML job from r and validates it. Unknown keys are errors.
func Decode(r io.Reader) (*Job, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	job := &Job{}
	if err := dec.Decode(job); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyJob
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	return job, nil
}

// Validate checks the job's structure. Matrix contents are checked later by
// the matrix constructors.
func (j *Job) Validate() error {
	if err := j.validateEpsilon(); err != nil {
		return err
	}
	if len(j.Steps) == 0 {
		return ErrNoSteps
	}
	for _, name := range j.MatrixNames() {
		if err := j.Matrices[name].validate(); err != nil {
			return fmt.Errorf("matrix %q: %w", name, err)
		}
	}
	for i, s := range j.Steps {
		if s.Op == "" {
			return fmt.Errorf("step %d: %w", i+1, ErrStep)
		}
	}

	return nil
}

func (j *Job) validateEpsilon() error {
	if math.IsNaN(j.Epsilon) || math.IsInf(j.Epsilon, 0) || j.Epsilon < 0 {
		return fmt.Errorf("%w: %v", ErrEpsilon, j.Epsilon)
	}

	return nil
}

func (s MatrixSpec) validate() error {
	flat := s.Rows != 0 || s.Cols != 0 || s.Values != nil
	if flat == (s.Grid != nil) {
		return ErrMatrixSpec
	}

	return nil
}

// MatrixNames returns the declared matrix names in sorted order.
func (j *Job) MatrixNames() []string {
	names := make([]string, 0, len(j.Matrices))
	for name := range j.Matrices {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Options returns the matrix options implied by the job's settings.
// An epsilon that fails Validate is left out.
func (j *Job) Options() []matrix.Option {
	var opts []matrix.Option
	if j.Epsilon > 0 && j.validateEpsilon() == nil {
		opts = append(opts, matrix.WithEpsilon(j.Epsilon))
	}
	if j.Strict {
		opts = append(opts, matrix.WithValidateNaNInf())
	}

	return opts
}

// Build constructs the matrix described by s.
func (s MatrixSpec) Build(opts ...matrix.Option) (*matrix.Dense, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if s.Grid != nil {
		return matrix.NewDenseFromRows(s.Grid, opts...)
	}

	return matrix.NewDenseFrom(s.Rows, s.Cols, s.Values, opts...)
}

// BuildAll constructs every declared matrix under the job's options.
func (j *Job) BuildAll() (map[string]*matrix.Dense, error) {
	if err := j.validateEpsilon(); err != nil {
		return nil, err
	}
	opts := j.Options()
	out := make(map[string]*matrix.Dense, len(j.Matrices))
	for _, name := range j.MatrixNames() {
		m, err := j.Matrices[name].Build(opts...)
		if err != nil {
			return nil, fmt.Errorf("matrix %q: %w", name, err)
		}
		out[name] = m
	}

	return out, nil
}

// Save writes j to path as YAML.
func Save(path string, j *Job) error {
	data, err := yaml.Marshal(j)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
