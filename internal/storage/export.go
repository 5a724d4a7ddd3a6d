// ABOUTME: Export and import functionality for calibration records.
// ABOUTME: Supports JSON, YAML, and Markdown export plus backend-to-backend copy.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/undistort/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the version written into export envelopes.
const ExportVersion = "1.0"

// ExportData represents the full export format for calibration data.
type ExportData struct {
	Version      string                `json:"version" yaml:"version"`
	ExportedAt   time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool         string                `json:"tool" yaml:"tool"`
	Calibrations []*models.Calibration `json:"calibrations" yaml:"calibrations"`
}

// GetAllData retrieves all data for export.
func GetAllData(repo Repository) (*ExportData, error) {
	calibrations, err := repo.List()
	if err != nil {
		return nil, fmt.Errorf("list calibrations: %w", err)
	}
	if calibrations == nil {
		calibrations = []*models.Calibration{}
	}

	return &ExportData{
		Version:      ExportVersion,
		ExportedAt:   time.Now(),
		Tool:         "calibctl",
		Calibrations: calibrations,
	}, nil
}

// ImportData adds every calibration in data to repo.
// Empty entries, invalid records, and IDs already in repo (or repeated in
// data) are rejected before anything is written.
func ImportData(repo Repository, data *ExportData) (int, error) {
	existing, err := repo.List()
	if err != nil {
		return 0, fmt.Errorf("list calibrations: %w", err)
	}
	taken := make(map[string]bool, len(existing)+len(data.Calibrations))
	for _, c := range existing {
		taken[c.ID] = true
	}

	for i, c := range data.Calibrations {
		if c == nil {
			return 0, fmt.Errorf("import: entry %d is empty", i+1)
		}
		if err := c.Validate(); err != nil {
			return 0, fmt.Errorf("import entry %d: %w", i+1, err)
		}
		if taken[c.ID] {
			return 0, fmt.Errorf("import calibration %s: %w", c.ID, ErrDuplicateID)
		}
		taken[c.ID] = true
	}

	for i, c := range data.Calibrations {
		if err := repo.Add(c); err != nil {
			return i, fmt.Errorf("import calibration %s: %w", c.ID, err)
		}
	}
	return len(data.Calibrations), nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := GetAllData(repo)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := GetAllData(repo)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ImportJSON imports data from JSON bytes and returns how many records were added.
func ImportJSON(repo Repository, raw []byte) (int, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return 0, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return ImportData(repo, &data)
}

// Copy adds every calibration from src to dst and returns the count copied.
func Copy(dst, src Repository) (int, error) {
	data, err := GetAllData(src)
	if err != nil {
		return 0, err
	}
	return ImportData(dst, data)
}

// ExportMarkdown exports data as Markdown, one section per calibration.
func ExportMarkdown(repo Repository) (string, error) {
	calibrations, err := repo.List()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Calibration Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(calibrations) == 0 {
		sb.WriteString("No calibrations found.\n")
		return sb.String(), nil
	}

	for _, c := range calibrations {
		sb.WriteString(fmt.Sprintf("## %s\n\n", c.ID))
		sb.WriteString(fmt.Sprintf("- **Date:** %s\n", c.Date))
		sb.WriteString(fmt.Sprintf("- **Scene:** %s\n", mdEscape(c.Scene)))
		sb.WriteString(fmt.Sprintf("- **Baseline:** %s\n", mdEscape(c.Baseline)))
		sb.WriteString(fmt.Sprintf("- **Resolution:** %s\n", mdEscape(c.Resolution)))
		sb.WriteString(fmt.Sprintf("- **GStreamer Pipeline:** `%s`\n", c.GStreamerPipeline))
		sb.WriteString(fmt.Sprintf("- **Calibration Program:** %s %s\n",
			mdEscape(c.CalibrationProgram.Name), mdEscape(c.CalibrationProgram.Version)))
		sb.WriteString(fmt.Sprintf("- **Platform:** recording %s, calibration %s\n",
			mdEscape(c.Platform.Recording), mdEscape(c.Platform.Calibration)))
		sb.WriteString("\n")

		if len(c.Cameras) > 0 {
			sb.WriteString("| Name | Model | Serial | Position | Distortion | In Focus | FOV |\n")
			sb.WriteString("|------|-------|--------|----------|------------|----------|-----|\n")
			for _, cam := range c.Cameras {
				sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
					mdEscape(cam.Name), mdEscape(cam.Model), mdEscape(cam.SerialNumber),
					mdEscape(cam.Position), yesNo(cam.Distortion), yesNo(cam.InFocus),
					mdEscape(cam.FOV)))
			}
			sb.WriteString("\n")
		}

		if c.Notes != "" {
			sb.WriteString(c.Notes + "\n\n")
		}
	}

	return sb.String(), nil
}

// mdEscape keeps table cells intact.
func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
