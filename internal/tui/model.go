// Package tui is the interactive front end: a Bubble Tea program showing the
// catalog as a tree and routing every edit through the manager.
package tui

import (
	"errors"
	"fmt"

	"exelaunch/internal/catalog"
	"exelaunch/internal/logger"
	"exelaunch/internal/manager"
	"exelaunch/internal/ui"
	"exelaunch/internal/ui/components"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Screen represents different screens in the app
type Screen int

const (
	ScreenMain    Screen = iota
	ScreenPrompt         // Name / path input dialog
	ScreenConfirm        // Delete confirmation
	ScreenPreview        // Highlighted catalog document
	ScreenHelp
)

// promptAction says what a submitted prompt does
type promptAction int

const (
	actionAddFolder promptAction = iota
	actionAddEntry
	actionRename
	actionEdit
)

// Model is the main application model
type Model struct {
	mgr     *manager.Manager
	log     *logger.Logger
	version string

	// UI Components
	tree    *components.TreeView
	prompt  *components.Prompt
	confirm *components.Confirm
	preview *components.DocPreview
	search  textinput.Model
	help    help.Model
	keys    ui.KeyMap

	// State
	screen     Screen
	width      int
	height     int
	status     string
	statusKind ui.NotifyKind

	promptAction promptAction
	promptTarget catalog.Path
	confirmPath  catalog.Path

	searching bool
	query     string
	marked    catalog.Path

	copyToClipboard func(string) error
}

// Messages
type launchedMsg struct {
	path catalog.Path
	err  error
}

// New creates the model. mgr must already be open.
func New(mgr *manager.Manager, log *logger.Logger, version string) *Model {
	if log == nil {
		log = logger.Nop()
	}

	ti := textinput.New()
	ti.Placeholder = "search names and paths"
	ti.CharLimit = 128
	ti.Width = 40
	ti.Prompt = "/ "

	m := &Model{
		mgr:             mgr,
		log:             log.Component("tui"),
		version:         version,
		tree:            components.NewTreeView(),
		preview:         components.NewDocPreview(),
		search:          ti,
		help:            help.New(),
		keys:            ui.DefaultKeyMap(),
		screen:          ScreenMain,
		width:           80,
		height:          24,
		status:          "Ready",
		statusKind:      ui.NotifyInfo,
		copyToClipboard: clipboard.WriteAll,
	}
	m.updateSizes()
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Notify sets the status bar message
func (m *Model) Notify(kind ui.NotifyKind, format string, args ...any) {
	m.statusKind = kind
	m.status = fmt.Sprintf(format, args...)
}

// refresh rebuilds the tree from the manager, applying the search query
func (m *Model) refresh() {
	var (
		view *catalog.Catalog
		err  error
	)
	if m.query != "" {
		view, err = m.mgr.Filter(m.query)
	} else {
		view, err = m.mgr.Snapshot()
	}
	if err != nil {
		m.Notify(ui.NotifyError, "Error: %v", err)
		return
	}
	m.tree.Query = m.query
	m.tree.Marked = m.marked
	m.tree.SetCatalog(view)
}

// report turns a manager result into a status message. A storage failure
// still means the edit was applied, so it is shown as a warning.
func (m *Model) report(err error, success string) bool {
	switch {
	case err == nil:
		m.Notify(ui.NotifySuccess, "%s", success)
		return true
	case errors.Is(err, catalog.ErrStorageFailure):
		m.log.Warn().Err(err).Msg("edit kept in memory only")
		m.Notify(ui.NotifyWarning, "%s, but saving failed: %v", success, err)
		return true
	default:
		m.Notify(ui.NotifyError, "Error: %v", err)
		return false
	}
}

func (m *Model) updateSizes() {
	bodyHeight := m.height - 6 // header + status + help
	if bodyHeight < 5 {
		bodyHeight = 5
	}
	m.tree.Width = m.width - 4
	m.tree.Height = bodyHeight
	m.preview.SetSize(m.width-4, bodyHeight)
	m.help.Width = m.width
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
