// ABOUTME: Calibration and Camera models for multi-camera rig calibration records.
// ABOUTME: Field order matches the on-disk YAML layout of the calibrations file.
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of Calibration.Date.
const DateLayout = "2006-01-02"

// Calibration is one recorded calibration session of a camera rig.
type Calibration struct {
	ID                 string   `yaml:"id" json:"id"`
	Date               string   `yaml:"date" json:"date"`
	Scene              string   `yaml:"scene" json:"scene"`
	Cameras            []Camera `yaml:"cameras" json:"cameras"`
	Baseline           string   `yaml:"baseline" json:"baseline"`
	GStreamerPipeline  string   `yaml:"gstreamer_pipeline" json:"gstreamer_pipeline"`
	Resolution         string   `yaml:"resolution" json:"resolution"`
	CalibrationProgram Program  `yaml:"calibration_program" json:"calibration_program"`
	Platform           Platform `yaml:"platform" json:"platform"`
	Notes              string   `yaml:"notes" json:"notes"`
}

// Camera is one camera of the rig.
type Camera struct {
	Name         string `yaml:"name" json:"name"`
	Model        string `yaml:"model" json:"model"`
	SerialNumber string `yaml:"serial_number" json:"serial_number"`
	Position     string `yaml:"position" json:"position"`
	Distortion   bool   `yaml:"distortion" json:"distortion"`
	InFocus      bool   `yaml:"in_focus" json:"in_focus"`
	FOV          string `yaml:"fov" json:"fov"`
}

// Program identifies the software that produced the calibration.
type Program struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}

// Platform records where the footage was recorded and calibrated.
type Platform struct {
	Recording   string `yaml:"recording" json:"recording"`
	Calibration string `yaml:"calibration" json:"calibration"`
}

// NewCalibration creates a Calibration dated day whose ID follows existing.
func NewCalibration(day time.Time, existing []*Calibration) *Calibration {
	return &Calibration{
		ID:      NextID(day, existing),
		Date:    day.Format(DateLayout),
		Cameras: []Camera{},
	}
}

// NextID returns the ID for a new calibration recorded on day.
// The ID is YYYYMMDD-NN where NN is one past the number of existing records.
// If that ID is taken (a record was deleted), the sequence moves forward
// until a free ID is found.
func NextID(day time.Time, existing []*Calibration) string {
	taken := make(map[string]bool, len(existing))
	for _, c := range existing {
		taken[c.ID] = true
	}

	prefix := day.Format("20060102")
	for seq := len(existing) + 1; ; seq++ {
		id := fmt.Sprintf("%s-%02d", prefix, seq)
		if !taken[id] {
			return id
		}
	}
}

// ParsedDate returns Date as a time.Time.
func (c *Calibration) ParsedDate() (time.Time, error) {
	return time.Parse(DateLayout, c.Date)
}

// Validate checks the fields storage relies on.
func (c *Calibration) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("calibration ID is required")
	}
	if c.Date != "" {
		if _, err := c.ParsedDate(); err != nil {
			return fmt.Errorf("invalid date %q (use YYYY-MM-DD)", c.Date)
		}
	}
	return nil
}

// Matches reports whether term occurs, case-insensitively, in any field value.
func (c *Calibration) Matches(term string) bool {
	needle := strings.ToLower(term)
	for _, v := range c.fieldValues() {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return needle == ""
}

func (c *Calibration) fieldValues() []string {
	values := []string{
		c.ID, c.Date, c.Scene, c.Baseline, c.GStreamerPipeline, c.Resolution,
		c.CalibrationProgram.Name, c.CalibrationProgram.Version,
		c.Platform.Recording, c.Platform.Calibration, c.Notes,
	}
	for _, cam := range c.Cameras {
		values = append(values,
			cam.Name, cam.Model, cam.SerialNumber, cam.Position,
			strconv.FormatBool(cam.Distortion), strconv.FormatBool(cam.InFocus),
			cam.FOV)
	}
	return values
}
