package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"exelaunch/internal/catalog"
)

// backupTimeFormat sorts lexically in time order.
const backupTimeFormat = "20060102-150405.000000000"

// Backup describes one rotated copy of the document.
type Backup struct {
	Name string // File name inside BackupDir
	Path string // Full path
}

// BackupDir returns the directory holding rotated documents.
func (s *Store) BackupDir() string {
	return filepath.Join(s.Dir(), "backups")
}

func (s *Store) backupPrefix() string {
	base := filepath.Base(s.path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "-"
}

// backupCurrent copies the current document into the backups directory and
// drops the oldest copies beyond the configured limit.
func (s *Store) backupCurrent() error {
	if !s.Exists() {
		return nil
	}
	name := s.backupPrefix() + s.now().UTC().Format(backupTimeFormat) + filepath.Ext(s.path)
	if err := copyFile(s.path, filepath.Join(s.BackupDir(), name)); err != nil {
		return err
	}
	return s.pruneBackups()
}

func (s *Store) pruneBackups() error {
	backups, err := s.ListBackups()
	if err != nil {
		return err
	}
	for len(backups) > s.backups {
		if err := os.Remove(backups[0].Path); err != nil {
			return err
		}
		backups = backups[1:]
	}
	return nil
}

// ListBackups returns rotated documents, oldest first.
func (s *Store) ListBackups() ([]Backup, error) {
	entries, err := os.ReadDir(s.BackupDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []Backup{}, nil
		}
		return nil, err
	}

	prefix := s.backupPrefix()
	var backups []Backup
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		backups = append(backups, Backup{Name: e.Name(), Path: filepath.Join(s.BackupDir(), e.Name())})
	}
	sort.Slice(backups, func(i, j int) bool { return backups[i].Name < backups[j].Name })
	return backups, nil
}

// LoadBackup decodes a rotated document by name.
func (s *Store) LoadBackup(name string) (*catalog.Catalog, error) {
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("%w: invalid backup name %q", catalog.ErrInvalidInput, name)
	}
	data, err := os.ReadFile(filepath.Join(s.BackupDir(), name))
	if err != nil {
		return nil, fmt.Errorf("%w: read backup: %w", catalog.ErrStorageFailure, err)
	}
	return catalog.Load(data)
}

// copyFile copies a file from src to dst, creating directories as needed
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy: %w", err)
	}
	return nil
}
