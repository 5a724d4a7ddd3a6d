// ABOUTME: CLI command for deleting calibrations.
// ABOUTME: Removes one record by exact ID.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/undistort/internal/storage"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a calibration",
	Long: `Delete a calibration by its ID.

CAUTION:

  This permanently deletes the record. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		id := args[0]

		c, err := repo.Get(id)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("calibration not found: %s", id)
		}
		if err != nil {
			return fmt.Errorf("failed to get calibration: %w", err)
		}

		if err := repo.Delete(id); err != nil {
			return fmt.Errorf("failed to delete calibration: %w", err)
		}

		fmt.Fprintln(out, color.YellowString("✗ Deleted %s", c.ID))
		fmt.Fprintf(out, "  %s %s\n", color.New(color.Faint).Sprint(c.Date), c.Scene)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
