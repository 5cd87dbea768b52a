// Package cmd holds the tsonic CLI's cobra command tree, grounded on
// CWBudde-go-dws's cmd/dwscript/cmd: a package-level rootCmd with
// PersistentFlags, one file per subcommand calling rootCmd.AddCommand
// from its own init.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags, matching the
// teacher's own Version/GitCommit/BuildDate pattern.
var Version = "0.1.0-dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "tsonic",
	Short:   "Ahead-of-time compiler from a typed JavaScript-family subset to a nominal CLR-style target",
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
