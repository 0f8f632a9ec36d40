package main

import (
	"fmt"
	"strconv"

	"github.com/nishs1729/simulation-manager/internal/config"
	"github.com/nishs1729/simulation-manager/pkg/simrun"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [seed]",
		Short: "Run a simulation model for one trial",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			modelName, _ := cmd.Flags().GetString("model")
			verbosity, _ := cmd.Flags().GetString("verbosity")
			storeKind, _ := cmd.Flags().GetString("store")
			dataLoc, _ := cmd.Flags().GetString("data-loc")
			testRun, _ := cmd.Flags().GetBool("test")

			seed, warning := parseSeedArg(args)
			if warning != "" {
				fmt.Fprintln(cmd.OutOrStdout(), warning)
			}

			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			if dataLoc != "" {
				settings.DataLoc = dataLoc
			}
			if storeKind != "" {
				settings.StoreKind = storeKind
			}

			client := simrun.New(simrun.Options{Settings: settings})
			summary, err := client.Run(cmd.Context(), simrun.RunRequest{
				Model:      modelName,
				ConfigPath: configPath,
				Seed:       seed,
				Verbosity:  verbosity,
				TestRun:    testRun,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "run %s finished: model=%s trial=%d path=%s series=%v\n",
				summary.RunID, summary.Model, summary.Trial, summary.SimPath, summary.Series)
			return nil
		},
	}

	cmd.Flags().String("config", "", "Config file (json, yaml or toml)")
	cmd.Flags().String("model", "fhn", "Simulation model to run")
	cmd.Flags().String("verbosity", "", "Log verbosity; any value containing \"debug\" enables debug logging")
	cmd.Flags().String("store", "", "Data store backend: sqlite|memory")
	cmd.Flags().Bool("test", false, "Provision under the fixed directory name \"test\"")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// parseSeedArg reads the optional positional seed. A missing argument
// defaults silently; a malformed one defaults with a warning.
func parseSeedArg(args []string) (int64, string) {
	if len(args) == 0 {
		return simrun.DefaultSeed, ""
	}
	seed, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return simrun.DefaultSeed, fmt.Sprintf("invalid seed %q (must be integer); using seed = %d", args[0], simrun.DefaultSeed)
	}
	return seed, ""
}
