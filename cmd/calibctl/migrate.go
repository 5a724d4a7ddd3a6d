// ABOUTME: CLI command for copying calibrations between storage backends.
// ABOUTME: Reads every record from the active backend and adds it to the target.
package main

import (
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/harperreed/undistort/internal/config"
	"github.com/harperreed/undistort/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy calibrations to another storage backend",
	Long: `Copy every calibration from the active backend into another backend.

The source is left untouched. If any ID already exists in the target,
nothing is copied.

USAGE:

  calibctl migrate --to sqlite --dry-run   # Preview
  calibctl migrate --to sqlite             # Copy ./calibrations.yaml into SQLite
  calibctl config set backend sqlite       # Then switch over`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if !slices.Contains(config.Backends, migrateTo) {
			return fmt.Errorf("unknown target backend: %q (use yaml, sqlite, or badger)", migrateTo)
		}

		target := *cfg
		target.Backend = migrateTo
		if target.Location() == cfg.Location() {
			return fmt.Errorf("source and target are the same: %s", cfg.Location())
		}

		if migrateDryRun {
			calibrations, err := repo.List()
			if err != nil {
				return fmt.Errorf("failed to list calibrations: %w", err)
			}
			fmt.Fprintln(out, color.YellowString("Dry run mode - no changes will be made"))
			fmt.Fprintf(out, "Would copy %d calibration(s) from %s to %s\n",
				len(calibrations), cfg.Location(), target.Location())
			return nil
		}

		dst, err := target.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open target: %w", err)
		}
		defer dst.Close()

		n, err := storage.Copy(dst, repo)
		if err != nil {
			return fmt.Errorf("migration failed after %d record(s): %w", n, err)
		}

		fmt.Fprintln(out, color.GreenString("✓ Copied %d calibration(s) to %s", n, target.Location()))
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "target backend: yaml, sqlite, or badger")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
