package main

import (
	"encoding/json"
	"fmt"

	"github.com/nishs1729/simulation-manager/internal/config"
	"github.com/nishs1729/simulation-manager/pkg/simrun"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration persisted for a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataLoc, err := resolveDataLoc(cmd)
			if err != nil {
				return err
			}
			runID, _ := cmd.Flags().GetString("run")
			latest, _ := cmd.Flags().GetBool("latest")

			merged, err := simrun.New(simrun.Options{}).Show(simrun.ShowRequest{
				DataLoc: dataLoc,
				RunID:   runID,
				Latest:  latest,
			})
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(merged, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().String("run", "", "Run id (e.g. run1-trial_7)")
	cmd.Flags().Bool("latest", false, "Use the most recent run")
	return cmd
}

// resolveDataLoc reads --data-loc, falling back to SIMMAN_DATA_LOC.
func resolveDataLoc(cmd *cobra.Command) (string, error) {
	dataLoc, _ := cmd.Flags().GetString("data-loc")
	if dataLoc != "" {
		return dataLoc, nil
	}
	settings, err := config.LoadSettings()
	if err != nil {
		return "", err
	}
	if settings.DataLoc == "" {
		return "", fmt.Errorf("a storage root is required: pass --data-loc or set SIMMAN_DATA_LOC")
	}
	return settings.DataLoc, nil
}
