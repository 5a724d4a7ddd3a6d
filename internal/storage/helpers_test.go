// ABOUTME: Shared fixtures for storage tests.
// ABOUTME: Opens each backend in a temp directory and builds sample calibrations.
package storage

import (
	"path/filepath"
	"testing"

	"github.com/harperreed/undistort/internal/models"
)

// backendFactories opens a fresh Repository per backend rooted in dir.
var backendFactories = map[string]func(t *testing.T, dir string) Repository{
	"yaml": func(t *testing.T, dir string) Repository {
		return NewYAMLStore(filepath.Join(dir, "calibrations.yaml"))
	},
	"sqlite": func(t *testing.T, dir string) Repository {
		db, err := Open(filepath.Join(dir, "calibrations.db"))
		if err != nil {
			t.Fatalf("Open sqlite failed: %v", err)
		}
		return db
	},
	"badger": func(t *testing.T, dir string) Repository {
		store, err := OpenBadger(filepath.Join(dir, "badger"))
		if err != nil {
			t.Fatalf("OpenBadger failed: %v", err)
		}
		return store
	},
}

// forEachBackend runs fn once per backend against an empty store.
func forEachBackend(t *testing.T, fn func(t *testing.T, repo Repository)) {
	t.Helper()
	for name, open := range backendFactories {
		t.Run(name, func(t *testing.T) {
			repo := open(t, t.TempDir())
			t.Cleanup(func() { _ = repo.Close() })
			fn(t, repo)
		})
	}
}

func testCalibration(id, scene string) *models.Calibration {
	return &models.Calibration{
		ID:    id,
		Date:  "2025-01-31",
		Scene: scene,
		Cameras: []models.Camera{
			{Name: "left", Model: "IMX477", SerialNumber: "L-001", Position: "rig left", Distortion: true, InFocus: true, FOV: "90"},
			{Name: "right", Model: "IMX477", SerialNumber: "R-002", Position: "rig right", Distortion: true, InFocus: false, FOV: "90"},
			{Name: "center", Model: "OV9281", SerialNumber: "C-003", Position: "rig center", Distortion: false, InFocus: true, FOV: "120"},
		},
		Baseline:           "12cm",
		GStreamerPipeline:  "v4l2src device=/dev/video0 ! videoconvert ! appsink",
		Resolution:         "1920x1080",
		CalibrationProgram: models.Program{Name: "stereo-calib", Version: "2.1"},
		Platform:           models.Platform{Recording: "jetson-nano", Calibration: "workstation"},
		Notes:              "Checkerboard 9x6, 25mm squares",
	}
}
