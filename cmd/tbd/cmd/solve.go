package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/bcsgh/tbd"
	"github.com/bcsgh/tbd/ast"
	"github.com/bcsgh/tbd/internal/display"
	"github.com/bcsgh/tbd/internal/pretty"
	"github.com/bcsgh/tbd/semantic"
	"github.com/spf13/cobra"
)

var (
	solveDumpUnits bool
	solvePretty    bool
	solveLocale    string
)

var solveCmd = &cobra.Command{
	Use:   "solve [file.tbd]",
	Short: "Solve a document and print every resolved quantity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSolve(cmd, args[0])
	},
}

func init() {
	solveCmd.Flags().BoolVarP(&solveDumpUnits, "units", "u", false, "Also list every registered unit name")
	solveCmd.Flags().BoolVar(&solvePretty, "pretty", false, "Also print each quantity's physical dimension, locale-grouped")
	solveCmd.Flags().StringVar(&solveLocale, "locale", "", "BCP 47 locale for --pretty's number grouping (default: neutral)")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, filename string) error {
	result, ok, err := compile(cmd.Context(), filename, solveDumpUnits)
	if err != nil {
		return err
	}
	printDiagnostics(result)
	if !ok {
		os.Exit(1)
	}

	if solvePretty {
		printPretty(result)
	} else {
		printPlain(result)
	}

	if solveDumpUnits {
		units := append([]string{}, result.Units...)
		sort.Strings(units)
		fmt.Println("units:")
		for _, u := range units {
			fmt.Printf("  %s\n", u)
		}
	}
	return nil
}

// resolvedExps returns every named, resolved, non-preamble quantity in
// result's table, in name-sorted order (the same set tbd.Values draws
// from, but keeping the *semantic.Exp around for its unit and dimension).
func resolvedExps(result *tbd.Result) (names []string, byName map[string]*semantic.Exp) {
	byName = map[string]*semantic.Exp{}
	for _, exp := range result.Table.StableNodes() {
		if exp.Name == "" || !exp.Resolved {
			continue
		}
		if exp.Node != nil && exp.Node.Location().File == ast.PreambleFile {
			continue
		}
		names = append(names, exp.Name)
		byName[exp.Name] = exp
	}
	sort.Strings(names)
	return names, byName
}

func printPlain(result *tbd.Result) {
	names, byName := resolvedExps(result)
	for _, name := range names {
		exp := byName[name]
		unitName := ""
		if exp.HasUnit {
			unitName = exp.UnitName
		}
		fmt.Printf("%s = %s\n", name, display.Quantity(exp.Value, unitName))
	}
}

// printPretty prints the same quantities as printPlain, alongside each
// one's physical dimension with locale-grouped exponents.
func printPretty(result *tbd.Result) {
	p := pretty.Printer(solveLocale)
	names, byName := resolvedExps(result)
	for _, name := range names {
		exp := byName[name]
		unitName := ""
		if exp.HasUnit {
			unitName = exp.UnitName
		}
		dim := "?"
		if exp.HasDim {
			dim = pretty.Dimension(p, exp.Dim)
		}
		fmt.Printf("%s = %s %s\n", name, display.Quantity(exp.Value, unitName), dim)
	}
}
