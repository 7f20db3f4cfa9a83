// Package state persists the append-only installation history as a JSON
// database. A run opens the store once, holds an exclusive advisory lock for
// its duration and appends one record per terminal package outcome.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	pkgerrors "github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/fsutil"
	"github.com/archbox-dev/archbox/pkg/model"
)

// FormatVersion is the current on-disk database format.
const FormatVersion = "1.0.0"

type database struct {
	FormatVersion string                 `json:"format_version"`
	LastUpdate    time.Time              `json:"last_update"`
	Records       []*model.InstallRecord `json:"records"`
}

// Store is an open state database holding the run's exclusive lock. Callers
// must Close it to persist changes and release the lock.
type Store struct {
	path     string
	lockPath string

	mu sync.RWMutex
	db database
}

// Open loads the state database at path, creating an empty one if absent, and
// acquires the exclusive advisory lock. A second concurrent Open on the same
// path fails with ErrStoreLocked.
func Open(path string) (*Store, error) {
	if path == "" || !filepath.IsAbs(path) {
		return nil, fmt.Errorf("state store path must be absolute: %q: %w", path, pkgerrors.ErrInvalidPath)
	}
	if err := os.MkdirAll(filepath.Dir(path), fsutil.DirModeSecure); err != nil {
		return nil, pkgerrors.Wrap(err, "could not create state directory")
	}

	s := &Store{
		path:     path,
		lockPath: path + ".lock",
	}
	if err := s.acquireLock(); err != nil {
		return nil, err
	}
	if err := s.load(); err != nil {
		s.releaseLock()
		return nil, err
	}
	return s, nil
}

// acquireLock creates the lock file exclusively. The file holds the owning
// PID for diagnostics; O_EXCL makes creation the atomic acquire step.
func (s *Store) acquireLock() error {
	f, err := os.OpenFile(s.lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fsutil.FileModeSecure)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("lock file %s exists: %w", s.lockPath, pkgerrors.ErrStoreLocked)
		}
		return pkgerrors.Wrap(err, "could not create lock file")
	}
	_, _ = f.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	return f.Close()
}

func (s *Store) releaseLock() {
	_ = os.Remove(s.lockPath)
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.db = database{FormatVersion: FormatVersion}
		return nil
	}
	if err != nil {
		return pkgerrors.Wrap(err, "could not read state database")
	}
	if err := json.Unmarshal(data, &s.db); err != nil {
		return pkgerrors.Wrap(err, "could not parse state database")
	}
	if s.db.FormatVersion == "" {
		s.db.FormatVersion = FormatVersion
	}
	return nil
}

// Close saves the database and releases the lock. The store must not be used
// afterwards.
func (s *Store) Close() error {
	defer s.releaseLock()
	return s.Save()
}

// Save writes the database atomically: temp file in the same directory, sync,
// then rename over the target.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.db.LastUpdate = time.Now()
	data, err := json.MarshalIndent(&s.db, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(err, "could not marshal state database")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "state-*.tmp")
	if err != nil {
		return pkgerrors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrap(err, "could not write state database")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrap(err, "could not sync state database")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrap(err, "could not close temp file")
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrap(err, "could not replace state database")
	}
	return nil
}

// RecordResult appends a record. InstalledAt defaults to now when unset.
func (s *Store) RecordResult(rec *model.InstallRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.InstalledAt.IsZero() {
		rec.InstalledAt = time.Now()
	}
	s.db.Records = append(s.db.Records, rec)
}

// Latest returns the most recent record for name, or nil when the package has
// no history.
func (s *Store) Latest(name string) *model.InstallRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.db.Records) - 1; i >= 0; i-- {
		if s.db.Records[i].Name == name {
			return s.db.Records[i]
		}
	}
	return nil
}

// History returns every record for name, oldest first.
func (s *Store) History(name string) []*model.InstallRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var recs []*model.InstallRecord
	for _, r := range s.db.Records {
		if r.Name == name {
			recs = append(recs, r)
		}
	}
	return recs
}

// All returns the latest record per package name, keyed by name.
func (s *Store) All() map[string]*model.InstallRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*model.InstallRecord)
	for _, r := range s.db.Records {
		out[r.Name] = r
	}
	return out
}

// Installed returns the latest record of every package whose most recent
// outcome is a successful install.
func (s *Store) Installed() map[string]*model.InstallRecord {
	out := s.All()
	for name, r := range out {
		if !r.Installed() {
			delete(out, name)
		}
	}
	return out
}
