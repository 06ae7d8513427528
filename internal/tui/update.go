package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"exelaunch/internal/catalog"
	"exelaunch/internal/ui"
	"exelaunch/internal/ui/components"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		if m.screen == ScreenPreview {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}

	case launchedMsg:
		if msg.err != nil {
			m.Notify(ui.NotifyError, "Error: %v", msg.err)
		} else {
			m.Notify(ui.NotifySuccess, "Launched %s", msg.path.Base())
		}
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenPrompt:
		return m.handlePromptKeys(msg)
	case ScreenConfirm:
		return m.handleConfirmKeys(msg)
	case ScreenPreview:
		return m.handlePreviewKeys(msg)
	case ScreenHelp:
		if key.Matches(msg, m.keys.Escape, m.keys.Help, m.keys.Quit) {
			m.screen = ScreenMain
		}
		return m, nil
	}

	if m.searching {
		return m.handleSearchKeys(msg)
	}
	return m.handleMainKeys(msg)
}

func (m *Model) handleMainKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.tree.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.tree.MoveDown()
	case key.Matches(msg, m.keys.PageUp):
		m.tree.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.tree.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.tree.GoToFirst()
	case key.Matches(msg, m.keys.End):
		m.tree.GoToLast()

	case key.Matches(msg, m.keys.Enter):
		return m.handleEnter()

	case key.Matches(msg, m.keys.AddFolder):
		m.openPrompt(actionAddFolder, m.tree.CurrentFolder(),
			components.NewPrompt("New folder in "+m.tree.CurrentFolder().String(),
				components.Field{Label: "Name"}))

	case key.Matches(msg, m.keys.AddEntry):
		m.openPrompt(actionAddEntry, m.tree.CurrentFolder(),
			components.NewPrompt("New entry in "+m.tree.CurrentFolder().String(),
				components.Field{Label: "Name"},
				components.Field{Label: "Launch path", Placeholder: "/usr/bin/app or C:/Games/app.exe"},
				components.Field{Label: "Marker", Placeholder: catalog.DefaultMarker}))

	case key.Matches(msg, m.keys.Rename):
		if row := m.tree.Current(); row != nil {
			m.openPrompt(actionRename, row.Path,
				components.NewPrompt("Rename "+row.Path.String(),
					components.Field{Label: "Name", Value: row.Node.Name}))
		}

	case key.Matches(msg, m.keys.Edit):
		row := m.tree.Current()
		if row == nil {
			break
		}
		if !row.Node.IsEntry() {
			m.Notify(ui.NotifyWarning, "Only entries have a launch path")
			break
		}
		m.openPrompt(actionEdit, row.Path,
			components.NewPrompt("Edit "+row.Path.String(),
				components.Field{Label: "Launch path", Value: row.Node.LaunchPath},
				components.Field{Label: "Marker", Value: row.Node.Marker}))

	case key.Matches(msg, m.keys.Delete):
		if row := m.tree.Current(); row != nil {
			what := "entry"
			if row.Node.IsFolder() {
				what = "folder and everything in it"
			}
			m.confirm = components.NewConfirm("Delete", fmt.Sprintf("Delete %s %q?", what, row.Node.Name))
			m.confirmPath = row.Path
			m.screen = ScreenConfirm
		}

	case key.Matches(msg, m.keys.Sort):
		folder := m.tree.CurrentFolder()
		m.report(m.mgr.Sort(folder), "Sorted "+folder.String())
		m.refresh()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Mark):
		m.handleMark()

	case key.Matches(msg, m.keys.MoveBefore):
		m.handleMove(catalog.BeforeSibling)

	case key.Matches(msg, m.keys.MoveInto):
		m.handleMove(catalog.AppendInto)

	case key.Matches(msg, m.keys.CopyPath):
		m.handleCopyPath()

	case key.Matches(msg, m.keys.Preview):
		m.handlePreview()

	case key.Matches(msg, m.keys.Help):
		m.screen = ScreenHelp

	case key.Matches(msg, m.keys.Escape):
		switch {
		case m.marked != nil:
			m.marked = nil
			m.Notify(ui.NotifyInfo, "Move cancelled")
		case m.query != "":
			m.query = ""
			m.Notify(ui.NotifyInfo, "Search cleared")
		}
		m.refresh()
	}

	return m, nil
}

// handleEnter launches an entry or toggles a folder
func (m *Model) handleEnter() (tea.Model, tea.Cmd) {
	row := m.tree.Current()
	if row == nil {
		return m, nil
	}
	if row.Node.IsFolder() {
		m.tree.ToggleCollapsed()
		m.refresh()
		return m, nil
	}

	p := row.Path.Clone()
	m.Notify(ui.NotifyInfo, "Launching %s...", p.Base())
	return m, func() tea.Msg {
		return launchedMsg{path: p, err: m.mgr.Launch(context.Background(), p)}
	}
}

func (m *Model) handleMark() {
	row := m.tree.Current()
	if row == nil {
		return
	}
	if m.marked != nil && m.marked.Equal(row.Path) {
		m.marked = nil
		m.Notify(ui.NotifyInfo, "Move cancelled")
	} else {
		m.marked = row.Path.Clone()
		m.Notify(ui.NotifyInfo, "Marked %s. Press p to move before or i to move into the row under the cursor", row.Path)
	}
	m.refresh()
}

func (m *Model) handleMove(placement catalog.Placement) {
	if m.marked == nil {
		m.Notify(ui.NotifyWarning, "Mark a node with m first")
		return
	}
	row := m.tree.Current()
	if row == nil {
		return
	}

	dst, err := m.mgr.Move(m.marked, row.Path, placement)
	if m.report(err, fmt.Sprintf("Moved %s", m.marked.Base())) {
		m.tree.Relocate(m.marked, dst)
		m.marked = nil
		m.refresh()
		m.tree.SelectPath(dst)
		return
	}
	m.refresh()
}

func (m *Model) handleCopyPath() {
	row := m.tree.Current()
	if row == nil {
		return
	}
	text := row.Path.String()
	if row.Node.IsEntry() {
		text = row.Node.LaunchPath
	}
	if err := m.copyToClipboard(text); err != nil {
		m.Notify(ui.NotifyError, "Error: copy failed: %v", err)
		return
	}
	m.Notify(ui.NotifySuccess, "Copied %s", text)
}

func (m *Model) handlePreview() {
	doc, err := m.mgr.Document()
	if err != nil {
		m.Notify(ui.NotifyError, "Error: %v", err)
		return
	}
	m.preview.SetDocument(filepath.Base(m.mgr.Store().Path()), doc, "json")
	m.screen = ScreenPreview
}

func (m *Model) openPrompt(action promptAction, target catalog.Path, p *components.Prompt) {
	p.Width = min(70, max(40, m.width-8))
	m.prompt = p
	m.promptAction = action
	m.promptTarget = target.Clone()
	m.screen = ScreenPrompt
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt = nil
		m.screen = ScreenMain
		m.Notify(ui.NotifyInfo, "Cancelled")
		return m, nil

	case tea.KeyEnter:
		if m.prompt.Next() {
			return m, nil
		}
		m.submitPrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// submitPrompt applies the prompt. Rejected input keeps the dialog open
// with the error shown inline.
func (m *Model) submitPrompt() {
	v := m.prompt.Values()
	var (
		selected catalog.Path
		err      error
		done     string
	)

	switch m.promptAction {
	case actionAddFolder:
		selected, err = m.mgr.AddFolder(m.promptTarget, v[0])
		done = "Added folder " + v[0]
	case actionAddEntry:
		selected, err = m.mgr.AddEntry(m.promptTarget, v[0], v[1], v[2])
		done = "Added " + v[0]
	case actionRename:
		selected, err = m.mgr.Rename(m.promptTarget, v[0])
		done = "Renamed to " + v[0]
	case actionEdit:
		err = m.mgr.EditEntry(m.promptTarget, v[0], v[1])
		selected = m.promptTarget
		done = "Updated " + m.promptTarget.Base()
	}

	if err != nil && !errors.Is(err, catalog.ErrStorageFailure) {
		m.prompt.Err = err.Error()
		return
	}

	if m.promptAction == actionRename && selected != nil {
		m.tree.Relocate(m.promptTarget, selected)
	}
	m.report(err, done)
	m.prompt = nil
	m.screen = ScreenMain
	m.refresh()
	if selected != nil {
		m.tree.SelectPath(selected)
	}
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "h", "l", "tab":
		m.confirm.Toggle()
		return m, nil
	case "y", "Y":
		m.confirm.SetYes(true)
	case "n", "N", "esc", "q":
		m.confirm.SetYes(false)
	case "enter":
	default:
		return m, nil
	}

	if m.confirm.Yes() {
		if m.report(m.mgr.Remove(m.confirmPath), "Deleted "+m.confirmPath.Base()) {
			m.tree.Forget(m.confirmPath)
		}
		if m.marked != nil && (m.marked.Equal(m.confirmPath) || m.confirmPath.IsAncestorOf(m.marked)) {
			m.marked = nil
		}
		m.refresh()
	} else {
		m.Notify(ui.NotifyInfo, "Cancelled")
	}
	m.confirm = nil
	m.confirmPath = nil
	m.screen = ScreenMain
	return m, nil
}

func (m *Model) handlePreviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "v":
		m.screen = ScreenMain
		return m, nil
	case "g", "home":
		m.preview.GoToTop()
		return m, nil
	case "G", "end":
		m.preview.GoToBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Cancel search, restore the full tree
		m.searching = false
		m.search.Blur()
		m.query = ""
		m.Notify(ui.NotifyInfo, "Search cancelled")
		m.refresh()
		return m, nil

	case tea.KeyEnter:
		// Keep the filter and return to navigation
		m.searching = false
		m.search.Blur()
		if m.query == "" {
			m.Notify(ui.NotifyInfo, "Showing whole catalog")
		} else {
			m.Notify(ui.NotifyInfo, "%d rows match %q", len(m.tree.Rows), m.query)
		}
		return m, nil

	case tea.KeyUp:
		m.tree.MoveUp()
		return m, nil

	case tea.KeyDown:
		m.tree.MoveDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query = m.search.Value()
	m.refresh()
	return m, cmd
}
