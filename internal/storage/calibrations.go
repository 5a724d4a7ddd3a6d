// ABOUTME: Calibration CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods over the calibrations and cameras tables.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/undistort/internal/models"
)

const calibrationColumns = `id, date, scene, baseline, gstreamer_pipeline, resolution,
	program_name, program_version, platform_recording, platform_calibration, notes`

// Add stores a new calibration and its cameras in one transaction.
func (d *DB) Add(c *models.Calibration) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("add calibration: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("add calibration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRow("SELECT COUNT(*) FROM calibrations WHERE id = ?", c.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("add calibration: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("add calibration %s: %w", c.ID, ErrDuplicateID)
	}

	_, err = tx.Exec(`
		INSERT INTO calibrations (`+calibrationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.ID, c.Date, c.Scene, c.Baseline, c.GStreamerPipeline, c.Resolution,
		c.CalibrationProgram.Name, c.CalibrationProgram.Version,
		c.Platform.Recording, c.Platform.Calibration, c.Notes,
	)
	if err != nil {
		return fmt.Errorf("add calibration: %w", err)
	}

	for i, cam := range c.Cameras {
		_, err = tx.Exec(`
			INSERT INTO cameras (calibration_id, position_index, name, model, serial_number, position, distortion, in_focus, fov)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			c.ID, i, cam.Name, cam.Model, cam.SerialNumber, cam.Position,
			boolToInt(cam.Distortion), boolToInt(cam.InFocus), cam.FOV,
		)
		if err != nil {
			return fmt.Errorf("add camera %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// Get retrieves a calibration with its cameras by exact ID.
func (d *DB) Get(id string) (*models.Calibration, error) {
	row := d.db.QueryRow(`SELECT `+calibrationColumns+` FROM calibrations WHERE id = ?`, id)
	c, err := scanCalibration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get calibration: %w", err)
	}

	cameras, err := d.listCameras("WHERE calibration_id = ?", c.ID)
	if err != nil {
		return nil, err
	}
	c.Cameras = camerasFor(cameras, c.ID)
	return c, nil
}

// List retrieves all calibrations in insertion order.
func (d *DB) List() ([]*models.Calibration, error) {
	rows, err := d.db.Query(`SELECT ` + calibrationColumns + ` FROM calibrations ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list calibrations: %w", err)
	}
	defer rows.Close()

	var calibrations []*models.Calibration
	for rows.Next() {
		c, err := scanCalibration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calibration: %w", err)
		}
		calibrations = append(calibrations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list calibrations: %w", err)
	}

	cameras, err := d.listCameras("")
	if err != nil {
		return nil, err
	}
	for _, c := range calibrations {
		c.Cameras = camerasFor(cameras, c.ID)
	}
	return calibrations, nil
}

// Search returns the calibrations matching term.
func (d *DB) Search(term string) ([]*models.Calibration, error) {
	all, err := d.List()
	if err != nil {
		return nil, err
	}
	return filterMatches(all, term), nil
}

// Delete removes a calibration; its cameras go with it.
func (d *DB) Delete(id string) error {
	result, err := d.db.Exec("DELETE FROM calibrations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete calibration: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete calibration: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// listCameras loads camera rows grouped by calibration ID.
func (d *DB) listCameras(where string, args ...interface{}) (map[string][]models.Camera, error) {
	query := `
		SELECT calibration_id, name, model, serial_number, position, distortion, in_focus, fov
		FROM cameras
		` + where + `
		ORDER BY calibration_id, position_index
	`
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cameras: %w", err)
	}
	defer rows.Close()

	cameras := make(map[string][]models.Camera)
	for rows.Next() {
		var (
			calibrationID       string
			cam                 models.Camera
			distortion, inFocus int
		)
		if err := rows.Scan(&calibrationID, &cam.Name, &cam.Model, &cam.SerialNumber,
			&cam.Position, &distortion, &inFocus, &cam.FOV); err != nil {
			return nil, fmt.Errorf("scan camera: %w", err)
		}
		cam.Distortion = distortion != 0
		cam.InFocus = inFocus != 0
		cameras[calibrationID] = append(cameras[calibrationID], cam)
	}
	return cameras, rows.Err()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCalibration(s scanner) (*models.Calibration, error) {
	var c models.Calibration
	err := s.Scan(
		&c.ID, &c.Date, &c.Scene, &c.Baseline, &c.GStreamerPipeline, &c.Resolution,
		&c.CalibrationProgram.Name, &c.CalibrationProgram.Version,
		&c.Platform.Recording, &c.Platform.Calibration, &c.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func camerasFor(cameras map[string][]models.Camera, id string) []models.Camera {
	if cams, ok := cameras[id]; ok {
		return cams
	}
	return []models.Camera{}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
