// ABOUTME: YAML file storage for calibration records.
// ABOUTME: Keeps the whole collection as one top-level YAML sequence, rewritten atomically.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harperreed/undistort/internal/models"
	"gopkg.in/yaml.v3"
)

// DefaultYAMLFile is the calibrations file used when none is configured.
const DefaultYAMLFile = "calibrations.yaml"

// YAMLStore provides file-based storage backed by a single YAML document.
// The file is re-read on every call so edits made by hand are picked up.
type YAMLStore struct {
	path string
	mu   sync.Mutex
}

// Compile-time check that YAMLStore implements Repository.
var _ Repository = (*YAMLStore)(nil)

// NewYAMLStore returns a store for the YAML file at path.
// The file does not need to exist yet.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

// Path returns the backing file path.
func (s *YAMLStore) Path() string {
	return s.path
}

// Close releases resources. For YAMLStore this is a no-op.
func (s *YAMLStore) Close() error {
	return nil
}

// List returns every calibration in file order.
func (s *YAMLStore) List() ([]*models.Calibration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns the calibration with the given ID.
func (s *YAMLStore) Get(id string) (*models.Calibration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
}

// Search returns the calibrations matching term.
func (s *YAMLStore) Search(term string) ([]*models.Calibration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}
	return filterMatches(all, term), nil
}

// Add appends a calibration and rewrites the file.
func (s *YAMLStore) Add(c *models.Calibration) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("add calibration: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range all {
		if existing.ID == c.ID {
			return fmt.Errorf("add calibration %s: %w", c.ID, ErrDuplicateID)
		}
	}
	return s.save(append(all, c))
}

// Delete removes a calibration and rewrites the file.
func (s *YAMLStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}

	kept := make([]*models.Calibration, 0, len(all))
	for _, c := range all {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(all) {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return s.save(kept)
}

// load reads the file. A missing file or an empty document is an empty list.
func (s *YAMLStore) load() ([]*models.Calibration, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug("calibrations file missing, starting empty", "path", s.path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var decoded []*models.Calibration
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	// A bare "-" decodes to nil; skip it and it disappears on the next save.
	calibrations := make([]*models.Calibration, 0, len(decoded))
	for i, c := range decoded {
		if c == nil {
			log.Warn("skipping empty calibration entry", "path", s.path, "entry", i+1)
			continue
		}
		calibrations = append(calibrations, normalize(c))
	}
	return calibrations, nil
}

// save writes calibrations through a temp file and rename.
func (s *YAMLStore) save(calibrations []*models.Calibration) error {
	if calibrations == nil {
		calibrations = []*models.Calibration{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(calibrations); err != nil {
		return fmt.Errorf("encode calibrations: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode calibrations: %w", err)
	}

	if err := atomicWrite(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	log.Debug("saved calibrations", "path", s.path, "count", len(calibrations))
	return nil
}

// atomicWrite writes data to a sibling temp file and renames it over path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
