// ABOUTME: Root Cobra command for calibctl CLI.
// ABOUTME: Loads config, applies global flags, and manages the storage lifecycle.
package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harperreed/undistort/internal/config"
	"github.com/harperreed/undistort/internal/storage"
	"github.com/spf13/cobra"
)

// skipStoreAnnotation marks commands that run without opening storage.
const skipStoreAnnotation = "calibctl/skip-store"

var (
	cfg  *config.Config
	repo storage.Repository

	fileFlag    string
	backendFlag string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "calibctl",
	Short: "Manage camera calibration records",
	Long: `calibctl keeps track of camera rig calibration sessions.

Each calibration records the scene, every camera on the rig (model, serial
number, position, distortion, focus, FOV), the baseline, the GStreamer
pipeline, the resolution, and the program and platforms used.

QUICK START:

  $ calibctl add                       # Record a calibration interactively
  $ calibctl list                      # Show every calibration
  $ calibctl list --short              # One line per calibration
  $ calibctl view 20250131-01          # Show one calibration
  $ calibctl search imx477             # Search every field

STORAGE:

  By default records live in ./calibrations.yaml. Use --file to point at
  another file, or pick a different backend:

  $ calibctl --backend sqlite list
  $ calibctl config set backend badger

  Backends: yaml (default), sqlite, badger. Environment variables
  CALIBCTL_BACKEND, CALIBCTL_DATA_DIR, and CALIBCTL_FILE override the
  config file at ~/.config/calibctl/config.json.

MCP INTEGRATION:

  Run 'calibctl mcp' to expose the records to MCP-compatible assistants.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verboseFlag {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}

		var err error
		cfg, err = loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if !needsStore(cmd) {
			return nil
		}

		log.Debug("opening store", "backend", cfg.GetBackend(), "location", cfg.Location())
		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	// PersistentPostRunE is skipped when RunE fails; badger holds a directory lock.
	if closeErr := closeStore(); err == nil {
		err = closeErr
	}
	return err
}

func closeStore() error {
	if repo == nil {
		return nil
	}
	err := repo.Close()
	repo = nil
	return err
}

// loadConfig reads the config file and environment, then applies global flags.
func loadConfig() (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, err
	}
	if backendFlag != "" {
		c.Backend = backendFlag
	}
	if fileFlag != "" {
		c.File = fileFlag
	}
	return c, nil
}

func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipStoreAnnotation] == "true" {
			return false
		}
	}
	return cmd.Name() != "help"
}

func init() {
	rootCmd.PersistentFlags().StringVar(&fileFlag, "file", "", "path to the calibrations YAML file (yaml backend)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend: yaml, sqlite, or badger")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
}
