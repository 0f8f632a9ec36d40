package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "simctl",
		Short: "Run and inspect parameterized numerical simulations",
		Long: `simctl runs parameterized simulation models (such as the FitzHugh-Nagumo
neuron), persists their configuration and output per trial, and organizes
results into a reproducible directory layout.`,
	}

	rootCmd.PersistentFlags().String("data-loc", "", "Storage root (overrides config data_loc and SIMMAN_DATA_LOC)")

	rootCmd.AddCommand(
		newRunCmd(),
		newRunsCmd(),
		newShowCmd(),
		newExportCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
