// SPDX-License-Identifier: MIT

// Package calc evaluates the steps of a densecalc job against a named set of
// matrices. Every step yields a Result; matrix-valued results can be stored
// under a new name for later steps.
package calc
