package cmd

import (
	"fmt"
	"os"

	"github.com/bcsgh/tbd/codegen"
	"github.com/bcsgh/tbd/ops"
	"github.com/bcsgh/tbd/semantic"
	"github.com/spf13/cobra"
)

var genFormat string

var genCmd = &cobra.Command{
	Use:   "gen [file.tbd]",
	Short: "Render the solved system as a sequence of assignments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGen(cmd, args[0])
	},
}

func init() {
	genCmd.Flags().StringVar(&genFormat, "format", "text", "Output form: text (bare assignments) or yaml (run-tagged summary)")
	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, filename string) error {
	result, ok, err := compile(cmd.Context(), filename, false)
	if err != nil {
		return err
	}
	printDiagnostics(result)
	if !ok || result.Stage == nil {
		os.Exit(1)
	}

	program := append(append([]ops.Op{}, result.Stage.DirectOps...), result.Stage.SolveOps...)
	sink := &semantic.Sink{}
	text, generated := codegen.Generate(program, sink)
	for _, d := range sink.Diagnostics {
		fmt.Fprintf(os.Stderr, "%s: %s\n", d.Severity, d.Error())
	}
	if !generated {
		os.Exit(1)
	}
	return emitRendered(result, filename, "gen", text, genFormat)
}
