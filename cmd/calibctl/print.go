// ABOUTME: Output helpers for calibration records.
// ABOUTME: Renders the full block view and the one-line summary used by list --short.
package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/harperreed/undistort/internal/models"
	"github.com/mattn/go-runewidth"
)

const separator = "--------------------"

// printCalibration writes one calibration in the full block format.
func printCalibration(w io.Writer, c *models.Calibration) {
	fmt.Fprintf(w, "ID: %s\n", c.ID)
	fmt.Fprintf(w, "  Date: %s\n", c.Date)
	fmt.Fprintf(w, "  Scene: %s\n", c.Scene)
	fmt.Fprintln(w, "  Cameras:")
	for _, cam := range c.Cameras {
		fmt.Fprintf(w, "    - Name: %s\n", cam.Name)
		fmt.Fprintf(w, "      Model: %s\n", cam.Model)
		fmt.Fprintf(w, "      Serial Number: %s\n", cam.SerialNumber)
		fmt.Fprintf(w, "      Position: %s\n", cam.Position)
		fmt.Fprintf(w, "      Distortion: %t\n", cam.Distortion)
		fmt.Fprintf(w, "      In Focus: %t\n", cam.InFocus)
		fmt.Fprintf(w, "      FOV: %s\n", cam.FOV)
	}
	fmt.Fprintf(w, "  Baseline: %s\n", c.Baseline)
	fmt.Fprintf(w, "  GStreamer Pipeline: %s\n", c.GStreamerPipeline)
	fmt.Fprintf(w, "  Resolution: %s\n", c.Resolution)
	fmt.Fprintln(w, "  Calibration Program:")
	fmt.Fprintf(w, "    Name: %s\n", c.CalibrationProgram.Name)
	fmt.Fprintf(w, "    Version: %s\n", c.CalibrationProgram.Version)
	fmt.Fprintln(w, "  Platform:")
	fmt.Fprintf(w, "    Recording: %s\n", c.Platform.Recording)
	fmt.Fprintf(w, "    Calibration: %s\n", c.Platform.Calibration)
	fmt.Fprintf(w, "  Notes: %s\n", c.Notes)
	fmt.Fprintln(w, separator)
}

// printSummary writes one line: ID, date with age, camera count, scene.
func printSummary(w io.Writer, c *models.Calibration) {
	faint := color.New(color.Faint)

	when := c.Date
	if t, err := c.ParsedDate(); err == nil {
		when = fmt.Sprintf("%s (%s)", c.Date, humanize.Time(t))
	}

	cameras := fmt.Sprintf("%d cameras", len(c.Cameras))
	if len(c.Cameras) == 1 {
		cameras = "1 camera"
	}

	fmt.Fprintf(w, "%s %s %s %s\n",
		padRight(c.ID, 12),
		faint.Sprint(padRight(when, 28)),
		padRight(cameras, 10),
		truncate(c.Scene, 40))
}

// truncate shortens s to maxLen display columns, ending in "...".
func truncate(s string, maxLen int) string {
	return runewidth.Truncate(s, maxLen, "...")
}

// padRight pads s with spaces to length display columns.
func padRight(s string, length int) string {
	return runewidth.FillRight(s, length)
}
