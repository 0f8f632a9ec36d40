package main

import (
	"fmt"

	"github.com/nishs1729/simulation-manager/pkg/simrun"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy a run's artifacts into a destination directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataLoc, err := resolveDataLoc(cmd)
			if err != nil {
				return err
			}
			runID, _ := cmd.Flags().GetString("run")
			latest, _ := cmd.Flags().GetBool("latest")
			outDir, _ := cmd.Flags().GetString("out")

			dst, err := simrun.New(simrun.Options{}).Export(simrun.ExportRequest{
				DataLoc: dataLoc,
				RunID:   runID,
				Latest:  latest,
				OutDir:  outDir,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", dst)
			return nil
		},
	}

	cmd.Flags().String("run", "", "Run id (e.g. run1-trial_7)")
	cmd.Flags().Bool("latest", false, "Export the most recent run")
	cmd.Flags().String("out", "exports", "Destination directory")
	return cmd
}
