// Package cmd wires the search engine into a cobra CLI (§2 "Search
// entry"): static space-bound defaults loaded from YAML, overridden by
// flags, driving either the nested hardware/software search (search) or a
// single explicit-point evaluation (eval).
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var defaultsPath string

var rootCmd = &cobra.Command{
	Use:   "spotlight",
	Short: "Hardware/software design-space co-optimization search engine",
}

// Execute runs the root command, exiting the process with a non-zero
// status on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&defaultsPath, "defaults", "configs/defaults.yaml", "path to the static space-bound defaults file")
}
