// ABOUTME: CLI command for adding calibrations interactively.
// ABOUTME: Prompts for session details and each camera, then stores the record.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/undistort/internal/models"
	"github.com/spf13/cobra"
)

// defaultCameraCount is the rig size offered when adding a calibration.
const defaultCameraCount = 3

// now is replaced in tests.
var now = time.Now

var addCmd = &cobra.Command{
	Use:     "add",
	Aliases: []string{"a", "new"},
	Short:   "Add a new calibration",
	Long: `Interactively record a new calibration session.

You are asked for the scene, baseline, GStreamer pipeline, resolution,
calibration program, platforms, and notes, then for each camera on the rig.
Press enter to accept the default shown in brackets.

The new ID is today's date plus a sequence number, e.g. 20250131-04.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		existing, err := repo.List()
		if err != nil {
			return fmt.Errorf("failed to list calibrations: %w", err)
		}

		c := models.NewCalibration(now(), existing)
		p := newPrompter(cmd.InOrStdin(), out)
		if err := promptCalibration(p, c); err != nil {
			return err
		}

		if err := repo.Add(c); err != nil {
			return fmt.Errorf("failed to add calibration: %w", err)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, color.GreenString("Successfully added new calibration with ID: %s", c.ID))
		return nil
	},
}

// promptCalibration fills c from the answers read by p.
func promptCalibration(p *prompter, c *models.Calibration) error {
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter the scene description", &c.Scene},
		{"Enter the baseline", &c.Baseline},
		{"Enter the GStreamer pipeline", &c.GStreamerPipeline},
		{"Enter the resolution (e.g., 1920x1080)", &c.Resolution},
		{"Enter the calibration program name", &c.CalibrationProgram.Name},
		{"Enter the calibration program version", &c.CalibrationProgram.Version},
		{"Enter the recording platform", &c.Platform.Recording},
		{"Enter the calibration platform", &c.Platform.Calibration},
		{"Enter any notes", &c.Notes},
	}
	for _, f := range fields {
		v, err := p.String(f.prompt, "")
		if err != nil {
			return err
		}
		*f.dst = v
	}

	n, err := p.Count("Enter the number of cameras", defaultCameraCount)
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		fmt.Fprintf(p.out, "\n--- Entering details for Camera %d ---\n", i+1)
		cam, err := promptCamera(p)
		if err != nil {
			return err
		}
		c.Cameras = append(c.Cameras, cam)
	}
	return nil
}

func promptCamera(p *prompter) (models.Camera, error) {
	var cam models.Camera
	var err error

	if cam.Name, err = p.String("Enter camera name (e.g., left, right, center)", ""); err != nil {
		return cam, err
	}
	if cam.Model, err = p.String("Enter camera model", ""); err != nil {
		return cam, err
	}
	if cam.SerialNumber, err = p.String("Enter camera serial number", ""); err != nil {
		return cam, err
	}
	if cam.Position, err = p.String("Enter camera position", ""); err != nil {
		return cam, err
	}
	if cam.Distortion, err = p.Bool("Does the camera have distortion?"); err != nil {
		return cam, err
	}
	if cam.InFocus, err = p.Bool("Is the camera in focus?"); err != nil {
		return cam, err
	}
	if cam.FOV, err = p.String("Enter the camera field of view (FOV)", ""); err != nil {
		return cam, err
	}
	return cam, nil
}

func init() {
	rootCmd.AddCommand(addCmd)
}
