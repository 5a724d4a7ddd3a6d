// ABOUTME: CLI commands for viewing and changing calibctl configuration.
// ABOUTME: Persists settings to the JSON config file.
package main

import (
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/harperreed/undistort/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "View or change configuration",
	Annotations: map[string]string{skipStoreAnnotation: "true"},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)

		fmt.Fprintf(out, "Config file: %s\n", faint.Sprint(config.GetConfigPath()))
		fmt.Fprintf(out, "Backend:     %s\n", cfg.GetBackend())
		fmt.Fprintf(out, "File:        %s\n", cfg.GetFile())
		fmt.Fprintf(out, "Data dir:    %s\n", cfg.GetDataDir())
		fmt.Fprintf(out, "Location:    %s\n", cfg.Location())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save it.

KEYS:

  backend    yaml, sqlite, or badger
  data_dir   directory for the sqlite and badger backends
  file       calibrations file for the yaml backend`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"backend", "data_dir", "file"},
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		// Save what is on disk, not the flag- and env-adjusted view.
		saved, err := config.LoadFile()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		switch key {
		case "backend":
			if !slices.Contains(config.Backends, value) {
				return fmt.Errorf("unknown backend: %q (use yaml, sqlite, or badger)", value)
			}
			saved.Backend = value
		case "data_dir":
			saved.DataDir = value
		case "file":
			saved.File = value
		default:
			return fmt.Errorf("unknown key: %s (use backend, data_dir, or file)", key)
		}

		if err := saved.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Set %s = %s", key, value))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
