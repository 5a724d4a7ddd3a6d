// ABOUTME: MCP resource implementations for calibration records.
// ABOUTME: Provides calibration://all and the calibration://{id} template.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/undistort/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	allCalibrationsURI = "calibration://all"
	calibrationPrefix  = "calibration://"
)

func (s *Server) registerResources() {
	// calibration://all - every record in insertion order
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         allCalibrationsURI,
		Name:        "All Calibrations",
		Description: "Every calibration record with its cameras",
		MIMEType:    "application/json",
	}, s.handleAllResource)

	s.mcpServer.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: calibrationPrefix + "{id}",
		Name:        "Calibration",
		Description: "A single calibration record by ID",
		MIMEType:    "application/json",
	}, s.handleCalibrationResource)
}

// Resource handlers

func (s *Server) handleAllResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	calibrations, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list calibrations: %w", err)
	}

	return jsonResource(allCalibrationsURI, toCalibrationsOutput(calibrations))
}

func (s *Server) handleCalibrationResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	id := strings.TrimPrefix(uri, calibrationPrefix)

	c, err := s.repo.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calibration: %w", err)
	}

	return jsonResource(uri, c)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
