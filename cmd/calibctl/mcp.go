// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs a stdio MCP server over the configured calibration store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/harperreed/undistort/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server exposes the configured calibration store over stdin/stdout.

CLIENT CONFIGURATION:

  {
    "mcpServers": {
      "calibctl": {
        "command": "calibctl",
        "args": ["--file", "/path/to/calibrations.yaml", "mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_calibrations     List every calibration
  get_calibration       Get one calibration by ID
  search_calibrations   Search every field of every calibration
  add_calibration       Record a new calibration with its cameras
  delete_calibration    Delete a calibration by ID

AVAILABLE RESOURCES:

  calibration://all     Every calibration as JSON
  calibration://{id}    One calibration as JSON`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		log.Debug("serving MCP on stdio", "location", cfg.Location())
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
