package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set by main package from build-time ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tbd %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
