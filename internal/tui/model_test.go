package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"exelaunch/internal/catalog"
	"exelaunch/internal/config"
	"exelaunch/internal/logger"
	"exelaunch/internal/manager"
	"exelaunch/internal/store"
	"exelaunch/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type launchRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *launchRecorder) Launch(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	return nil
}

func newTestModel(t *testing.T) (*Model, *store.Store, *launchRecorder) {
	t.Helper()
	cfg := config.Default()
	cfg.CatalogPath = filepath.Join(t.TempDir(), "data", "catalog.json")
	st := store.New(cfg.CatalogPath)
	rec := &launchRecorder{}

	mgr := manager.New(cfg, st, rec, nil, logger.Nop())
	_, err := mgr.Open(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })

	m := New(mgr, logger.Nop(), "test")
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, st, rec
}

func keyPress(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func reload(t *testing.T, st *store.Store) *catalog.Catalog {
	t.Helper()
	res, err := st.Load()
	require.NoError(t, err)
	return res.Catalog
}

// addFolder drives the add-folder prompt for the folder under the cursor.
func addFolder(m *Model, name string) {
	keyPress(m, "f")
	typeText(m, name)
	keyPress(m, "enter")
}

func addEntry(m *Model, name, path string) {
	keyPress(m, "a")
	typeText(m, name)
	keyPress(m, "enter")
	typeText(m, path)
	keyPress(m, "enter", "enter")
}

func TestNew_EmptyCatalog(t *testing.T) {
	m, _, _ := newTestModel(t)

	assert.Equal(t, ScreenMain, m.screen)
	assert.Empty(t, m.tree.Rows)
	assert.Contains(t, m.View(), "Empty catalog")
}

func TestAddFolderAndEntry(t *testing.T) {
	m, st, _ := newTestModel(t)

	addFolder(m, "Games")
	assert.Equal(t, ScreenMain, m.screen)
	require.NotNil(t, m.tree.Current())
	assert.Equal(t, catalog.Path{"Games"}, m.tree.Current().Path)

	// The cursor is on Games, so the entry goes inside it.
	addEntry(m, "Doom", "/g/doom")
	assert.Equal(t, catalog.Path{"Games", "Doom"}, m.tree.Current().Path)
	assert.Equal(t, ui.NotifySuccess, m.statusKind)

	saved := reload(t, st)
	n, err := saved.Resolve(catalog.Path{"Games", "Doom"})
	require.NoError(t, err)
	assert.Equal(t, "/g/doom", n.LaunchPath)
	assert.Equal(t, catalog.DefaultMarker, n.Marker)
}

func TestPrompt_RejectedInputStaysOpen(t *testing.T) {
	m, _, _ := newTestModel(t)
	addFolder(m, "Games")

	// Adding an entry with no launch path is rejected.
	keyPress(m, "a")
	typeText(m, "Broken")
	keyPress(m, "enter", "enter", "enter")

	assert.Equal(t, ScreenPrompt, m.screen)
	assert.NotEmpty(t, m.prompt.Err)

	keyPress(m, "esc")
	assert.Equal(t, ScreenMain, m.screen)
	assert.Nil(t, m.prompt)
}

func TestRenameAndEdit(t *testing.T) {
	m, st, _ := newTestModel(t)
	addEntry(m, "Doom", "/g/doom")

	keyPress(m, "r")
	require.Equal(t, ScreenPrompt, m.screen)
	// Clear the prefilled name.
	for range "Doom" {
		m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	typeText(m, "Quake")
	keyPress(m, "enter")
	assert.Equal(t, catalog.Path{"Quake"}, m.tree.Current().Path)

	keyPress(m, "e")
	require.Equal(t, ScreenPrompt, m.screen)
	typeText(m, "2")
	keyPress(m, "enter", "enter")

	n, err := reload(t, st).Resolve(catalog.Path{"Quake"})
	require.NoError(t, err)
	assert.Equal(t, "/g/doom2", n.LaunchPath)
}

func TestEdit_FolderIsRefused(t *testing.T) {
	m, _, _ := newTestModel(t)
	addFolder(m, "Games")

	keyPress(m, "e")
	assert.Equal(t, ScreenMain, m.screen)
	assert.Equal(t, ui.NotifyWarning, m.statusKind)
}

func TestDelete_Confirm(t *testing.T) {
	m, st, _ := newTestModel(t)
	addFolder(m, "Games")

	keyPress(m, "x")
	require.Equal(t, ScreenConfirm, m.screen)

	// Enter on the default "No" cancels.
	keyPress(m, "enter")
	assert.Equal(t, ScreenMain, m.screen)
	assert.True(t, reload(t, st).Exists(catalog.Path{"Games"}))

	keyPress(m, "x", "y")
	assert.Equal(t, ScreenMain, m.screen)
	assert.False(t, reload(t, st).Exists(catalog.Path{"Games"}))
	assert.Empty(t, m.tree.Rows)
}

func TestMarkAndMove(t *testing.T) {
	m, st, _ := newTestModel(t)
	addFolder(m, "Games")
	_, err := m.mgr.AddEntry(nil, "Doom", "/g/doom", "")
	require.NoError(t, err)
	m.refresh()

	require.True(t, m.tree.SelectPath(catalog.Path{"Doom"}))
	keyPress(m, "m")
	assert.Equal(t, catalog.Path{"Doom"}, m.marked)

	require.True(t, m.tree.SelectPath(catalog.Path{"Games"}))
	keyPress(m, "i")

	assert.Nil(t, m.marked)
	assert.Equal(t, catalog.Path{"Games", "Doom"}, m.tree.Current().Path)
	assert.True(t, reload(t, st).Exists(catalog.Path{"Games", "Doom"}))
}

func TestCollapsedFolderSurvivesRenameAndMove(t *testing.T) {
	m, _, _ := newTestModel(t)
	addFolder(m, "Games")
	_, err := m.mgr.AddEntry(catalog.Path{"Games"}, "Doom", "/g/doom", "")
	require.NoError(t, err)
	_, err = m.mgr.AddFolder(nil, "Archive")
	require.NoError(t, err)
	m.refresh()

	require.True(t, m.tree.SelectPath(catalog.Path{"Games"}))
	keyPress(m, "enter")
	require.True(t, m.tree.IsCollapsed(catalog.Path{"Games"}))

	keyPress(m, "r")
	for range "Games" {
		m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	typeText(m, "Play")
	keyPress(m, "enter")
	assert.True(t, m.tree.IsCollapsed(catalog.Path{"Play"}))
	assert.False(t, m.tree.IsCollapsed(catalog.Path{"Games"}))

	keyPress(m, "m")
	require.True(t, m.tree.SelectPath(catalog.Path{"Archive"}))
	keyPress(m, "i")
	assert.True(t, m.tree.IsCollapsed(catalog.Path{"Archive", "Play"}))
	assert.False(t, m.tree.IsCollapsed(catalog.Path{"Play"}))

	for _, row := range m.tree.Rows {
		assert.NotEqual(t, catalog.Path{"Archive", "Play", "Doom"}, row.Path)
	}
}

func TestMove_WithoutMarkWarns(t *testing.T) {
	m, _, _ := newTestModel(t)
	addFolder(m, "Games")

	keyPress(m, "p")
	assert.Equal(t, ui.NotifyWarning, m.statusKind)
}

func TestMove_InvalidKeepsMark(t *testing.T) {
	m, _, _ := newTestModel(t)
	addFolder(m, "Games")
	keyPress(m, "m")

	// Moving a folder into itself is rejected.
	keyPress(m, "i")
	assert.Equal(t, ui.NotifyError, m.statusKind)
	assert.Equal(t, catalog.Path{"Games"}, m.marked)

	keyPress(m, "esc")
	assert.Nil(t, m.marked)
}

func TestEnter_LaunchesEntryAndTogglesFolder(t *testing.T) {
	m, _, rec := newTestModel(t)
	addFolder(m, "Games")
	addEntry(m, "Doom", "/g/doom")

	require.True(t, m.tree.SelectPath(catalog.Path{"Games", "Doom"}))
	cmd := keyPress(m, "enter")
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, []string{"/g/doom"}, rec.paths)
	assert.Equal(t, ui.NotifySuccess, m.statusKind)

	require.True(t, m.tree.SelectPath(catalog.Path{"Games"}))
	keyPress(m, "enter")
	assert.Len(t, m.tree.Rows, 1)
	keyPress(m, "enter")
	assert.Len(t, m.tree.Rows, 2)
}

func TestSearch(t *testing.T) {
	m, _, _ := newTestModel(t)
	addFolder(m, "Games")
	addEntry(m, "Doom", "/g/doom")
	_, err := m.mgr.AddFolder(nil, "Tools")
	require.NoError(t, err)
	m.refresh()

	keyPress(m, "/")
	require.True(t, m.searching)
	typeText(m, "doom")
	assert.Equal(t, "doom", m.query)
	assert.Len(t, m.tree.Rows, 2)

	keyPress(m, "enter")
	assert.False(t, m.searching)
	assert.Equal(t, "doom", m.query)

	keyPress(m, "esc")
	assert.Empty(t, m.query)
	assert.Len(t, m.tree.Rows, 3)
}

func TestSort(t *testing.T) {
	m, st, _ := newTestModel(t)
	mgr := m.mgr
	for _, name := range []string{"b", "a"} {
		_, err := mgr.AddEntry(nil, name, "/x/"+name, "")
		require.NoError(t, err)
	}
	_, err := mgr.AddFolder(nil, "z")
	require.NoError(t, err)
	m.refresh()

	// The cursor sits on a root-level entry, so the root folder is sorted.
	require.True(t, m.tree.SelectPath(catalog.Path{"b"}))
	keyPress(m, "s")

	var names []string
	for _, n := range reload(t, st).Root().Children() {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"z", "a", "b"}, names)
}

func TestCopyPath(t *testing.T) {
	m, _, _ := newTestModel(t)
	var copied string
	m.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	addEntry(m, "Doom", "/g/doom")

	keyPress(m, "y")
	assert.Equal(t, "/g/doom", copied)

	m.copyToClipboard = func(string) error { return errors.New("no clipboard") }
	keyPress(m, "y")
	assert.Equal(t, ui.NotifyError, m.statusKind)
}

func TestPreviewAndHelp(t *testing.T) {
	m, _, _ := newTestModel(t)
	addFolder(m, "Games")

	keyPress(m, "v")
	assert.Equal(t, ScreenPreview, m.screen)
	assert.Contains(t, m.View(), "catalog.json")
	keyPress(m, "q")
	assert.Equal(t, ScreenMain, m.screen)

	keyPress(m, "?")
	assert.Equal(t, ScreenHelp, m.screen)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")
	keyPress(m, "esc")
	assert.Equal(t, ScreenMain, m.screen)
}

func TestStorageFailureIsWarning(t *testing.T) {
	m, st, _ := newTestModel(t)

	// Replace the data directory with a file so writes fail.
	require.NoError(t, os.RemoveAll(st.Dir()))
	require.NoError(t, os.WriteFile(st.Dir(), nil, 0644))

	addFolder(m, "Games")
	assert.Equal(t, ScreenMain, m.screen)
	assert.Equal(t, ui.NotifyWarning, m.statusKind)
	assert.True(t, m.mgr.Dirty())
	assert.Equal(t, catalog.Path{"Games"}, m.tree.Current().Path)
	assert.True(t, strings.Contains(m.View(), "unsaved"))
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	cmd := keyPress(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
