// SPDX-License-Identifier: MIT

// Command densecalc evaluates dense-matrix jobs from YAML files or from flags.
//
//	densecalc run job.yaml
//	densecalc det --rows 2 --cols 2 --values 1,2,3,4
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
