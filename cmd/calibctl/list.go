// ABOUTME: CLI command for listing calibrations.
// ABOUTME: Prints every record in full, or one line each with --short.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listShort bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List all calibrations",
	Long: `List every calibration in the store, oldest first.

EXAMPLES:

  calibctl list            # Full details for every calibration
  calibctl list --short    # ID, date, camera count, and scene per line`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		calibrations, err := repo.List()
		if err != nil {
			return fmt.Errorf("failed to list calibrations: %w", err)
		}

		if len(calibrations) == 0 {
			fmt.Fprintln(out, "No calibrations found.")
			return nil
		}

		for _, c := range calibrations {
			if listShort {
				printSummary(out, c)
			} else {
				printCalibration(out, c)
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listShort, "short", "s", false, "one line per calibration")
	rootCmd.AddCommand(listCmd)
}
