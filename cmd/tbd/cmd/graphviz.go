package cmd

import (
	"fmt"
	"os"

	"github.com/bcsgh/tbd/graphviz"
	"github.com/spf13/cobra"
)

var graphvizFormat string

var graphvizCmd = &cobra.Command{
	Use:   "graphviz [file.tbd]",
	Short: "Render the document's equation graph as DOT",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGraphviz(cmd, args[0])
	},
}

func init() {
	graphvizCmd.Flags().StringVar(&graphvizFormat, "format", "text", "Output form: text (bare DOT) or yaml (run-tagged summary)")
	rootCmd.AddCommand(graphvizCmd)
}

func runGraphviz(cmd *cobra.Command, filename string) error {
	result, ok, err := compile(cmd.Context(), filename, false)
	if err != nil {
		return err
	}
	printDiagnostics(result)
	if !ok || result.Document == nil {
		os.Exit(1)
	}

	dot, rendered := graphviz.Render(result.Document, result.Table)
	if !rendered {
		return fmt.Errorf("graphviz: document has no renderable nodes")
	}
	return emitRendered(result, filename, "graphviz", dot, graphvizFormat)
}
