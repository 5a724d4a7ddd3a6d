// ABOUTME: Badger key-value storage for calibration records.
// ABOUTME: Stores JSON records under calibration:<id> with a sequence for insertion order.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/undistort/internal/models"
)

const (
	calibrationPrefix = "calibration:"
	sequenceKey       = "meta:calibration_seq"
	sequenceBandwidth = 100
)

// BadgerStore is the Badger-backed Repository.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
}

// Compile-time check that BadgerStore implements Repository.
var _ Repository = (*BadgerStore)(nil)

// badgerRecord is the stored value for one calibration.
type badgerRecord struct {
	Seq         uint64              `json:"seq"`
	Calibration *models.Calibration `json:"calibration"`
}

// OpenBadger opens or creates a Badger database in dir.
func OpenBadger(dir string) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions(dir))
}

// OpenBadgerInMemory opens a Badger database that never touches disk.
func OpenBadgerInMemory() (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true))
}

func openBadger(opts badger.Options) (*BadgerStore, error) {
	opts = opts.WithLogger(badgerLogger{l: log.Default()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open badger sequence: %w", err)
	}

	log.Debug("opened badger store", "dir", opts.Dir, "in_memory", opts.InMemory)
	return &BadgerStore{db: db, seq: seq}, nil
}

// Close releases the sequence lease and closes the database.
func (s *BadgerStore) Close() error {
	var errs []error
	if s.seq != nil {
		errs = append(errs, s.seq.Release())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}

// Add stores a new calibration.
func (s *BadgerStore) Add(c *models.Calibration) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("add calibration: %w", err)
	}

	n, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	value, err := json.Marshal(badgerRecord{Seq: n, Calibration: c})
	if err != nil {
		return fmt.Errorf("encode calibration: %w", err)
	}

	key := calibrationKey(c.ID)
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return fmt.Errorf("add calibration %s: %w", c.ID, ErrDuplicateID)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("add calibration: %w", err)
		}
		return txn.Set(key, value)
	})
}

// Get retrieves a calibration by ID.
func (s *BadgerStore) Get(id string) (*models.Calibration, error) {
	var rec badgerRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(calibrationKey(id))
		if err != nil {
			return err
		}
		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
		if err == nil && rec.Calibration == nil {
			err = fmt.Errorf("decode %s: empty record", item.Key())
		}
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get calibration: %w", err)
	}
	return normalize(rec.Calibration), nil
}

// List retrieves all calibrations in insertion order.
func (s *BadgerStore) List() ([]*models.Calibration, error) {
	var records []badgerRecord
	prefix := []byte(calibrationPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec badgerRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			if rec.Calibration == nil {
				return fmt.Errorf("decode %s: empty record", it.Item().Key())
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list calibrations: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Seq < records[j].Seq
	})

	calibrations := make([]*models.Calibration, 0, len(records))
	for _, rec := range records {
		calibrations = append(calibrations, normalize(rec.Calibration))
	}
	return calibrations, nil
}

// Search returns the calibrations matching term.
func (s *BadgerStore) Search(term string) ([]*models.Calibration, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	return filterMatches(all, term), nil
}

// Delete removes a calibration by ID.
func (s *BadgerStore) Delete(id string) error {
	key := calibrationKey(id)
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete calibration: %w", err)
	}
	return nil
}

func calibrationKey(id string) []byte {
	return []byte(calibrationPrefix + id)
}

// badgerLogger routes Badger's internal logging through charmbracelet/log.
// Badger is chatty at info level, so info is demoted to debug.
type badgerLogger struct {
	l *log.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Errorf(strings.TrimRight(format, "\n"), args...)
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warnf(strings.TrimRight(format, "\n"), args...)
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Debugf(strings.TrimRight(format, "\n"), args...)
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Debugf(strings.TrimRight(format, "\n"), args...)
}
