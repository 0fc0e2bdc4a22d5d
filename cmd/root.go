// Package cmd holds the procure.GO command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "procure",
	Short:        "Purchase order manager",
	Long:         "procure.GO manages purchase orders built from a part catalog: serve the web UI and API, import the catalog, inspect and reconcile orders.",
	SilenceUsage: true,
}

// Execute adds registered extension commands and runs the root command.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
