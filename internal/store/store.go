// Package store persists the catalog document on disk.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"exelaunch/internal/catalog"
)

// LoadStatus tells the caller where the loaded catalog came from.
type LoadStatus int

const (
	StatusLoaded    LoadStatus = iota // Decoded from the document on disk
	StatusDefault                     // No document yet, fresh catalog
	StatusRecovered                   // Document was corrupt, fresh catalog
)

// String returns a string representation of the status
func (s LoadStatus) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusDefault:
		return "default"
	case StatusRecovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// LoadResult is returned by Store.Load.
type LoadResult struct {
	Catalog *catalog.Catalog
	Status  LoadStatus

	// Cause explains why the document was rejected when Status is
	// StatusRecovered.
	Cause error
	// QuarantinePath is where the rejected document was copied, if the copy
	// succeeded.
	QuarantinePath string
}

// Store reads and writes the catalog document as a single JSON file.
// Writes replace the whole file atomically.
type Store struct {
	path    string
	backups int
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithBackups keeps the n most recent previous documents in a backups
// directory next to the catalog. Zero disables backups.
func WithBackups(n int) Option {
	return func(s *Store) {
		if n < 0 {
			n = 0
		}
		s.backups = n
	}
}

// WithClock overrides the time source used to name backup and quarantine
// files.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a store for the document at path. An empty path selects
// DefaultPath.
func New(path string, opts ...Option) *Store {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	s := &Store{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultPath returns the default catalog document path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "exelaunch", "catalog.json")
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Dir returns the directory holding the document.
func (s *Store) Dir() string {
	return filepath.Dir(s.path)
}

// Load reads the document. A missing file yields an empty catalog with
// StatusDefault. A corrupt file is copied aside and replaced, in memory, by
// an empty catalog with StatusRecovered. Only I/O failures are returned as
// errors, wrapping catalog.ErrStorageFailure.
func (s *Store) Load() (*LoadResult, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &LoadResult{Catalog: catalog.New(), Status: StatusDefault}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", catalog.ErrStorageFailure, s.path, err)
	}

	c, err := catalog.Load(data)
	if err == nil {
		return &LoadResult{Catalog: c, Status: StatusLoaded}, nil
	}
	if !errors.Is(err, catalog.ErrCorruptData) {
		return nil, err
	}

	res := &LoadResult{Catalog: catalog.New(), Status: StatusRecovered, Cause: err}
	qpath, qerr := s.quarantine(data)
	if qerr != nil {
		res.Cause = errors.Join(err, qerr)
	} else {
		res.QuarantinePath = qpath
	}
	return res, nil
}

// Save encodes c and writes it over the current document.
func (s *Store) Save(c *catalog.Catalog) error {
	data, err := catalog.Save(c)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", catalog.ErrStorageFailure, err)
	}
	return s.WriteDocument(data)
}

// WriteDocument replaces the document with data. The previous document is
// rotated into the backups directory when backups are enabled. The write goes
// to a temporary file that is renamed over the target, so readers never see
// a partial document.
func (s *Store) WriteDocument(data []byte) error {
	if err := os.MkdirAll(s.Dir(), 0755); err != nil {
		return fmt.Errorf("%w: create %s: %w", catalog.ErrStorageFailure, s.Dir(), err)
	}

	if s.backups > 0 {
		if err := s.backupCurrent(); err != nil {
			return fmt.Errorf("%w: backup: %w", catalog.ErrStorageFailure, err)
		}
	}

	tmp, err := os.CreateTemp(s.Dir(), "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", catalog.ErrStorageFailure, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %w", catalog.ErrStorageFailure, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync %s: %w", catalog.ErrStorageFailure, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", catalog.ErrStorageFailure, tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", catalog.ErrStorageFailure, tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: rename to %s: %w", catalog.ErrStorageFailure, s.path, err)
	}
	return nil
}

// ReadDocument returns the raw bytes of the current document.
func (s *Store) ReadDocument() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", catalog.ErrStorageFailure, s.path, err)
	}
	return data, nil
}

// Exists reports whether a document has been written.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

func (s *Store) quarantine(data []byte) (string, error) {
	qpath := fmt.Sprintf("%s.corrupt-%d", s.path, s.now().Unix())
	if err := os.WriteFile(qpath, data, 0644); err != nil {
		return "", fmt.Errorf("quarantine %s: %w", qpath, err)
	}
	return qpath, nil
}
