package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/nishs1729/simulation-manager/pkg/simrun"
	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataLoc, err := resolveDataLoc(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")

			entries, err := simrun.New(simrun.Options{}).Runs(dataLoc, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RUN ID\tMODEL\tTRIAL\tSEED\tCREATED\tDESCRIPTION")
			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
					entry.RunID, entry.Model, entry.Trial, entry.Seed, entry.CreatedAtUTC, entry.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int("limit", 0, "Maximum number of runs to list (0 = all)")
	return cmd
}
