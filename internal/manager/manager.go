// Package manager is the single owner of the live catalog. It applies one
// operation at a time, writes the whole document after every successful
// mutation and optionally records each write in history.
package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"exelaunch/internal/catalog"
	"exelaunch/internal/config"
	"exelaunch/internal/history"
	"exelaunch/internal/launcher"
	"exelaunch/internal/logger"
	"exelaunch/internal/store"
)

// ErrNotOpen is returned by operations called before Open or after Close.
var ErrNotOpen = errors.New("catalog not open")

// Manager serialises access to a catalog and keeps it flushed to its store.
type Manager struct {
	mu sync.Mutex

	cfg      *config.Config
	store    *store.Store
	launcher launcher.Launcher
	history  *history.History
	log      *logger.Logger

	cat   *catalog.Catalog
	dirty bool
}

// New creates a manager. history may be nil to disable history, and log may
// be nil to discard log output.
func New(cfg *config.Config, st *store.Store, l launcher.Launcher, h *history.History, log *logger.Logger) *Manager {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		cfg:      cfg,
		store:    st,
		launcher: l,
		history:  h,
		log:      log.Component("manager"),
	}
}

// Open loads the catalog from the store. A missing or corrupt document
// yields an empty catalog; the result tells the caller which happened.
func (m *Manager) Open(ctx context.Context) (*store.LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.store.Load()
	if err != nil {
		m.log.Error().Err(err).Str("path", m.store.Path()).Msg("load catalog")
		return nil, err
	}

	switch res.Status {
	case store.StatusRecovered:
		m.log.Warn().
			Err(res.Cause).
			Str("quarantine", res.QuarantinePath).
			Msg("catalog document was corrupt, starting with an empty catalog")
	case store.StatusDefault:
		m.log.Info().Str("path", m.store.Path()).Msg("no catalog document, starting empty")
	default:
		folders, entries := res.Catalog.Count()
		m.log.Debug().Int("folders", folders).Int("entries", entries).Msg("catalog loaded")
	}

	m.cat = res.Catalog
	m.dirty = false
	return res, nil
}

// Close retries a failed flush, if any, and releases the catalog.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cat == nil {
		return nil
	}
	var err error
	if m.dirty {
		err = m.flushLocked("close")
	}
	m.cat = nil
	return err
}

// Dirty reports whether the last write to the store failed.
func (m *Manager) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

// Store returns the backing store.
func (m *Manager) Store() *store.Store {
	return m.store
}

// History returns the history repository, or nil when disabled.
func (m *Manager) History() *history.History {
	return m.history
}

// AddFolder appends a folder under parent.
func (m *Manager) AddFolder(parent catalog.Path, name string) (catalog.Path, error) {
	var out catalog.Path
	err := m.mutate("add folder", parent, func(c *catalog.Catalog) (err error) {
		out, err = c.AddFolder(parent, name)
		return err
	})
	return out, err
}

// AddEntry appends an entry under parent. An empty marker selects the
// configured default marker.
func (m *Manager) AddEntry(parent catalog.Path, name, launchPath, marker string) (catalog.Path, error) {
	if marker == "" {
		marker = m.cfg.DefaultMarker
	}
	var out catalog.Path
	err := m.mutate("add entry", parent, func(c *catalog.Catalog) (err error) {
		out, err = c.AddEntry(parent, name, launchPath, marker)
		return err
	})
	return out, err
}

// EditEntry replaces an entry's launch path and marker.
func (m *Manager) EditEntry(p catalog.Path, launchPath, marker string) error {
	if marker == "" {
		marker = m.cfg.DefaultMarker
	}
	return m.mutate("edit entry", p, func(c *catalog.Catalog) error {
		return c.EditEntry(p, launchPath, marker)
	})
}

// Rename renames the node at p.
func (m *Manager) Rename(p catalog.Path, newName string) (catalog.Path, error) {
	var out catalog.Path
	err := m.mutate("rename", p, func(c *catalog.Catalog) (err error) {
		out, err = c.Rename(p, newName)
		return err
	})
	return out, err
}

// Remove deletes the node at p and its subtree.
func (m *Manager) Remove(p catalog.Path) error {
	return m.mutate("remove", p, func(c *catalog.Catalog) error {
		return c.Remove(p)
	})
}

// Move relocates src relative to dst.
func (m *Manager) Move(src, dst catalog.Path, placement catalog.Placement) (catalog.Path, error) {
	var out catalog.Path
	err := m.mutate("move", src, func(c *catalog.Catalog) (err error) {
		out, err = c.Move(src, dst, placement)
		return err
	})
	return out, err
}

// Sort orders the folder at p and its subfolders.
func (m *Manager) Sort(p catalog.Path) error {
	return m.mutate("sort", p, func(c *catalog.Catalog) error {
		return c.Sort(p)
	})
}

// Replace swaps the whole catalog, as for an import or a restore.
func (m *Manager) Replace(c *catalog.Catalog, reason string) error {
	if c == nil {
		return fmt.Errorf("%w: nil catalog", catalog.ErrInvalidInput)
	}
	next := c.Clone()
	return m.mutate(reason, nil, func(cur *catalog.Catalog) error {
		*cur = *next
		return nil
	})
}

// Restore replaces the catalog with a rotated backup.
func (m *Manager) Restore(name string) error {
	c, err := m.store.LoadBackup(name)
	if err != nil {
		return err
	}
	return m.Replace(c, "restore "+name)
}

// Snapshot returns a deep copy of the catalog.
func (m *Manager) Snapshot() (*catalog.Catalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cat == nil {
		return nil, ErrNotOpen
	}
	return m.cat.Clone(), nil
}

// Filter returns the filtered view for query.
func (m *Manager) Filter(query string) (*catalog.Catalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cat == nil {
		return nil, ErrNotOpen
	}
	return m.cat.Filter(query), nil
}

// Walk visits a snapshot of the catalog, so fn may call back into the
// manager.
func (m *Manager) Walk(fn catalog.WalkFunc) error {
	snap, err := m.Snapshot()
	if err != nil {
		return err
	}
	return snap.Walk(fn)
}

// Resolve returns a copy of the node at p.
func (m *Manager) Resolve(p catalog.Path) (*catalog.Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cat == nil {
		return nil, ErrNotOpen
	}
	n, err := m.cat.Resolve(p)
	if err != nil {
		return nil, err
	}
	return n.Clone(), nil
}

// Document returns the catalog encoded as it is stored.
func (m *Manager) Document() ([]byte, error) {
	snap, err := m.Snapshot()
	if err != nil {
		return nil, err
	}
	return catalog.Save(snap)
}

// Launch starts the entry at p.
func (m *Manager) Launch(ctx context.Context, p catalog.Path) error {
	const op = "launch"

	n, err := m.Resolve(p)
	if err != nil {
		return err
	}
	if !n.IsEntry() {
		return &catalog.Error{Op: op, Path: p, Err: fmt.Errorf("%w: %q is a folder", catalog.ErrInvalidOperation, n.Name)}
	}
	if m.launcher == nil {
		return &catalog.Error{Op: op, Path: p, Err: errors.New("no launcher configured")}
	}

	if err := m.launcher.Launch(ctx, n.LaunchPath); err != nil {
		m.log.Error().Err(err).Str("op", op).Str("path", p.String()).Msg("launch failed")
		return &catalog.Error{Op: op, Path: p, Err: err}
	}
	m.log.Info().Str("op", op).Str("path", p.String()).Str("target", n.LaunchPath).Msg("launched")
	return nil
}

// mutate applies fn under the lock and flushes on success. Catalog errors
// are returned unchanged. A failed flush keeps the mutation in memory.
func (m *Manager) mutate(op string, p catalog.Path, fn func(*catalog.Catalog) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cat == nil {
		return ErrNotOpen
	}

	if err := fn(m.cat); err != nil {
		m.log.Debug().Err(err).Str("op", op).Str("path", p.String()).Msg("rejected")
		return err
	}
	m.log.Info().Str("op", op).Str("path", p.String()).Msg("applied")

	return m.flushLocked(op + " " + p.String())
}

func (m *Manager) flushLocked(msg string) error {
	if err := m.store.Save(m.cat); err != nil {
		m.dirty = true
		m.log.Error().Err(err).Str("path", m.store.Path()).Msg("flush failed")
		return fmt.Errorf("flush after %s: %w", msg, err)
	}
	m.dirty = false

	if m.history != nil {
		hash, err := m.history.Commit(msg)
		if err != nil {
			m.log.Warn().Err(err).Msg("history commit failed")
		} else if hash != "" {
			m.log.Debug().Str("commit", hash).Msg("history recorded")
		}
	}
	return nil
}
