// Package main provides the nutriscope CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "nutriscope",
		Short: "Nutrient-density scoring for food composition tables",
		Long: `Nutriscope loads food composition tables, computes NRF9.3 nutrient
density scores against fixed daily reference intakes, and renders rankings.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newFetchCmd(),
		newRefsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
