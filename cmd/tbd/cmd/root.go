// Package cmd implements the tbd command tree: solving, unit-name
// dumping, and the two text renderers (graph, gen).
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tbd",
	Short: "tbd - a dimensional-algebra equation solver",
	Long: `tbd reads a document of units, named quantities, and equalities
between expressions, infers every quantity's physical dimension, solves
for whatever values aren't already pinned down, and reports the result.

Examples:
  tbd solve system.tbd              Solve a document and print every value
  tbd solve -u system.tbd            ...and also list registered units
  tbd graphviz system.tbd           Render the equation graph as DOT
  tbd gen system.tbd                Render the solved system as assignments`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug-level logging")
}
