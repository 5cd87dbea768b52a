// Command tsonic is the thin CLI shell around the compiler core. It only
// drives a single source tree through Compilation.Run; the driver proper,
// package restore, and project scaffolding (`restore`/`init`) are out of
// scope (spec.md §1).
package main

import (
	"fmt"
	"os"

	"github.com/tsoniclang/tsonic/cmd/tsonic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
