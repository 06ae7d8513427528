package tui

import (
	"fmt"
	"strings"

	"exelaunch/internal/ui"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	switch m.screen {
	case ScreenPrompt:
		return m.renderDialog(m.prompt.View())
	case ScreenConfirm:
		return m.renderDialog(m.confirm.View())
	case ScreenPreview:
		return m.renderPreview()
	case ScreenHelp:
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m *Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	m.tree.Focused = !m.searching
	b.WriteString(m.tree.View())
	b.WriteString("\n")

	if m.searching {
		b.WriteString(ui.QueryStyle.Render(m.search.View()))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return ui.AppStyle.Render(b.String())
}

func (m *Model) renderHeader() string {
	title := ui.TitleStyle.Render("🚀 Exelaunch")
	ver := ui.VersionStyle.Render("v" + m.version)
	path := ui.MutedStyle.Render("  " + m.mgr.Store().Path())
	return ui.HeaderStyle.Render(title + "  " + ver + path)
}

func (m *Model) renderStatusBar() string {
	var stats []string
	if snap, err := m.mgr.Snapshot(); err == nil {
		folders, entries := snap.Count()
		stats = append(stats, fmt.Sprintf("Folders: %d", folders), fmt.Sprintf("Entries: %d", entries))
	}
	if m.marked != nil {
		stats = append(stats, ui.MarkedStyle.Render("Moving: "+m.marked.String()))
	}
	if m.mgr.Dirty() {
		stats = append(stats, ui.RenderNotification(ui.NotifyWarning, "unsaved"))
	}

	return ui.StatusBarStyle.Render(
		ui.RenderNotification(m.statusKind, m.status) + "  •  " + strings.Join(stats, "  •  "),
	)
}

// renderDialog centres a dialog under the header
func (m *Model) renderDialog(dialog string) string {
	body := lipgloss.Place(m.width-4, max(m.height-4, lipgloss.Height(dialog)),
		lipgloss.Center, lipgloss.Center, dialog)
	return ui.AppStyle.Render(m.renderHeader() + "\n" + body)
}

func (m *Model) renderPreview() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.preview.View())
	b.WriteString("\n")

	helpItems := []string{
		ui.RenderHelpItem("j/k", "scroll"),
		ui.RenderHelpItem("PgUp/Dn", "page"),
		ui.RenderHelpItem("g/G", "top/bottom"),
		ui.RenderHelpItem("q/Esc", "close"),
	}
	b.WriteString(strings.Join(helpItems, "  "))

	return ui.AppStyle.Render(b.String())
}

func (m *Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(ui.PanelTitleStyle.Render("⌨️  Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []string{"Navigation", "Editing", "Moving", "Other"}
	for i, group := range m.keys.FullHelp() {
		if i < len(sections) {
			b.WriteString(ui.MutedStyle.Render("  ─── " + sections[i] + " ───"))
			b.WriteString("\n")
		}
		for _, bind := range group {
			writeBinding(&b, bind)
		}
		b.WriteString("\n")
	}

	b.WriteString(ui.MutedStyle.Render("  Mark a node with m, move the cursor, then press p to put it"))
	b.WriteString("\n")
	b.WriteString(ui.MutedStyle.Render("  before that row or i to put it inside that folder."))
	b.WriteString("\n\n")
	b.WriteString(ui.RenderHelpItem("esc/?", "close"))

	return ui.AppStyle.Render(ui.PanelStyle.Render(b.String()))
}

func writeBinding(b *strings.Builder, bind key.Binding) {
	h := bind.Help()
	b.WriteString(fmt.Sprintf("  %s  %s\n",
		ui.HelpKeyStyle.Width(14).Render(h.Key),
		ui.HelpDescStyle.Render(h.Desc),
	))
}
