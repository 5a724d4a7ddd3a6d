// ABOUTME: CLI command for viewing a single calibration.
// ABOUTME: Looks a record up by its exact ID.
package main

import (
	"errors"
	"fmt"

	"github.com/harperreed/undistort/internal/storage"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:     "view <id>",
	Aliases: []string{"show"},
	Short:   "View a specific calibration",
	Long: `View one calibration by its ID (for example 20250131-01).

A missing ID is reported but is not treated as a failure.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		id := args[0]

		c, err := repo.Get(id)
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(out, "Calibration with ID '%s' not found.\n", id)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get calibration: %w", err)
		}

		printCalibration(out, c)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
