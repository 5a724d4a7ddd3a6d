// ABOUTME: Repository interface for calibration record storage.
// ABOUTME: Defines the contract shared by the YAML, SQLite, and Badger backends.
package storage

import (
	"errors"

	"github.com/harperreed/undistort/internal/models"
)

var (
	// ErrNotFound is returned when no calibration has the requested ID.
	ErrNotFound = errors.New("calibration not found")

	// ErrDuplicateID is returned when adding a calibration whose ID exists.
	ErrDuplicateID = errors.New("calibration ID already exists")
)

// Repository defines the storage interface for calibration records.
type Repository interface {
	// List returns every calibration in insertion order.
	List() ([]*models.Calibration, error)
	Get(id string) (*models.Calibration, error)
	Search(term string) ([]*models.Calibration, error)
	Add(c *models.Calibration) error
	Delete(id string) error

	Close() error
}

// normalize gives a decoded record an empty, non-nil camera list so every
// backend returns the same shape.
func normalize(c *models.Calibration) *models.Calibration {
	if c.Cameras == nil {
		c.Cameras = []models.Camera{}
	}
	return c
}

// filterMatches returns the calibrations that match term, keeping order.
func filterMatches(all []*models.Calibration, term string) []*models.Calibration {
	var results []*models.Calibration
	for _, c := range all {
		if c.Matches(term) {
			results = append(results, c)
		}
	}
	return results
}
