// ABOUTME: MCP tool implementations for calibration records.
// ABOUTME: Provides list, get, search, add, and delete operations.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/undistort/internal/models"
	"github.com/harperreed/undistort/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_calibrations",
		Description: "List every camera calibration record, oldest first",
	}, s.handleListCalibrations)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_calibration",
		Description: "Get one calibration record by ID",
	}, s.handleGetCalibration)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_calibrations",
		Description: "Case-insensitive search across every field of every calibration, including cameras",
	}, s.handleSearchCalibrations)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_calibration",
		Description: "Record a new calibration session with its cameras; the ID is assigned automatically",
	}, s.handleAddCalibration)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_calibration",
		Description: "Delete a calibration record by ID",
	}, s.handleDeleteCalibration)
}

// Tool input/output types

type listCalibrationsInput struct{}

type idInput struct {
	ID string `json:"id" jsonschema:"Calibration ID such as 20250131-01"`
}

type searchInput struct {
	Term string `json:"term" jsonschema:"Text to look for; matching ignores case"`
}

type cameraInput struct {
	Name         string `json:"name" jsonschema:"Camera name such as left or right or center"`
	Model        string `json:"model,omitempty" jsonschema:"Camera model"`
	SerialNumber string `json:"serial_number,omitempty" jsonschema:"Camera serial number"`
	Position     string `json:"position,omitempty" jsonschema:"Where the camera sits on the rig"`
	Distortion   bool   `json:"distortion,omitempty" jsonschema:"Whether the camera shows lens distortion"`
	InFocus      bool   `json:"in_focus,omitempty" jsonschema:"Whether the camera is in focus"`
	FOV          string `json:"fov,omitempty" jsonschema:"Field of view"`
}

type addCalibrationInput struct {
	Date                string        `json:"date,omitempty" jsonschema:"Calibration date as YYYY-MM-DD; defaults to today"`
	Scene               string        `json:"scene" jsonschema:"Scene description"`
	Cameras             []cameraInput `json:"cameras,omitempty" jsonschema:"Cameras on the rig"`
	Baseline            string        `json:"baseline,omitempty" jsonschema:"Distance between cameras"`
	GStreamerPipeline   string        `json:"gstreamer_pipeline,omitempty" jsonschema:"GStreamer pipeline used for capture"`
	Resolution          string        `json:"resolution,omitempty" jsonschema:"Capture resolution such as 1920x1080"`
	ProgramName         string        `json:"program_name,omitempty" jsonschema:"Calibration program name"`
	ProgramVersion      string        `json:"program_version,omitempty" jsonschema:"Calibration program version"`
	PlatformRecording   string        `json:"platform_recording,omitempty" jsonschema:"Platform the footage was recorded on"`
	PlatformCalibration string        `json:"platform_calibration,omitempty" jsonschema:"Platform the calibration ran on"`
	Notes               string        `json:"notes,omitempty" jsonschema:"Free-form notes"`
}

type calibrationsOutput struct {
	Count        int                  `json:"count"`
	Calibrations []models.Calibration `json:"calibrations"`
}

type calibrationOutput struct {
	Calibration models.Calibration `json:"calibration"`
	Message     string             `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleListCalibrations(ctx context.Context, req *mcp.CallToolRequest, input listCalibrationsInput) (*mcp.CallToolResult, calibrationsOutput, error) {
	calibrations, err := s.repo.List()
	if err != nil {
		return nil, calibrationsOutput{}, fmt.Errorf("failed to list calibrations: %w", err)
	}
	return nil, toCalibrationsOutput(calibrations), nil
}

func (s *Server) handleGetCalibration(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, calibrationOutput, error) {
	c, err := s.repo.Get(input.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, calibrationOutput{}, fmt.Errorf("calibration not found: %s", input.ID)
	}
	if err != nil {
		return nil, calibrationOutput{}, fmt.Errorf("failed to get calibration: %w", err)
	}
	return nil, calibrationOutput{
		Calibration: *c,
		Message:     fmt.Sprintf("Calibration %s (%s)", c.ID, c.Scene),
	}, nil
}

func (s *Server) handleSearchCalibrations(ctx context.Context, req *mcp.CallToolRequest, input searchInput) (*mcp.CallToolResult, calibrationsOutput, error) {
	results, err := s.repo.Search(input.Term)
	if err != nil {
		return nil, calibrationsOutput{}, fmt.Errorf("failed to search calibrations: %w", err)
	}
	return nil, toCalibrationsOutput(results), nil
}

func (s *Server) handleAddCalibration(ctx context.Context, req *mcp.CallToolRequest, input addCalibrationInput) (*mcp.CallToolResult, calibrationOutput, error) {
	day := s.now()
	if input.Date != "" {
		t, err := time.Parse(models.DateLayout, input.Date)
		if err != nil {
			return nil, calibrationOutput{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", input.Date)
		}
		day = t
	}

	existing, err := s.repo.List()
	if err != nil {
		return nil, calibrationOutput{}, fmt.Errorf("failed to list calibrations: %w", err)
	}

	c := models.NewCalibration(day, existing)
	c.Scene = input.Scene
	c.Baseline = input.Baseline
	c.GStreamerPipeline = input.GStreamerPipeline
	c.Resolution = input.Resolution
	c.CalibrationProgram = models.Program{Name: input.ProgramName, Version: input.ProgramVersion}
	c.Platform = models.Platform{Recording: input.PlatformRecording, Calibration: input.PlatformCalibration}
	c.Notes = input.Notes
	for _, cam := range input.Cameras {
		c.Cameras = append(c.Cameras, models.Camera(cam))
	}

	if err := s.repo.Add(c); err != nil {
		return nil, calibrationOutput{}, fmt.Errorf("failed to add calibration: %w", err)
	}

	return nil, calibrationOutput{
		Calibration: *c,
		Message:     fmt.Sprintf("Added calibration %s with %d camera(s)", c.ID, len(c.Cameras)),
	}, nil
}

func (s *Server) handleDeleteCalibration(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.Delete(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete calibration: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted calibration: %s", input.ID),
	}, nil
}

func toCalibrationsOutput(calibrations []*models.Calibration) calibrationsOutput {
	out := calibrationsOutput{
		Count:        len(calibrations),
		Calibrations: make([]models.Calibration, 0, len(calibrations)),
	}
	for _, c := range calibrations {
		out.Calibrations = append(out.Calibrations, *c)
	}
	return out
}
