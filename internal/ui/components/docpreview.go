package components

import (
	"fmt"
	"strings"

	"exelaunch/internal/ui"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DocPreview displays an in-memory document (the catalog JSON, a YAML
// export or a history diff) with syntax highlighting using viewport
type DocPreview struct {
	viewport    viewport.Model
	highlighter *ui.Highlighter

	// Document info
	Name       string
	Language   string
	Size       int
	TotalLines int

	// Dimensions
	Width  int
	Height int

	// Styles
	lineNumStyle lipgloss.Style
	headerStyle  lipgloss.Style
	infoStyle    lipgloss.Style
	borderStyle  lipgloss.Style
}

// NewDocPreview creates a new DocPreview with viewport
func NewDocPreview() *DocPreview {
	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &DocPreview{
		viewport:    vp,
		highlighter: ui.NewHighlighter(),
		Width:       80,
		Height:      20,
		lineNumStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")).
			Width(5).
			Align(lipgloss.Right),
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89b4fa")),
		infoStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")),
		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#89b4fa")).
			Padding(0, 1),
	}
}

// SetSize updates the viewport dimensions
func (p *DocPreview) SetSize(width, height int) {
	p.Width = width
	p.Height = height

	// Account for header (3 lines) and border (2 lines)
	contentHeight := height - 5
	if contentHeight < 5 {
		contentHeight = 5
	}
	contentWidth := width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	p.viewport.Width = contentWidth
	p.viewport.Height = contentHeight
}

// SetDocument replaces the previewed content. language is a highlighter
// language such as "json", "yaml" or "diff".
func (p *DocPreview) SetDocument(name string, data []byte, language string) {
	content := strings.TrimSuffix(string(data), "\n")
	lines := strings.Split(content, "\n")

	maxWidth := p.viewport.Width - 10
	if maxWidth < 40 {
		maxWidth = 40
	}

	var b strings.Builder
	for i, line := range lines {
		lineNum := p.lineNumStyle.Render(fmt.Sprintf("%d", i+1))
		highlighted := p.highlighter.HighlightLine(truncate(line, maxWidth), language)

		b.WriteString(lineNum + " │ " + highlighted)
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}

	p.Name = name
	p.Language = language
	p.Size = len(data)
	p.TotalLines = len(lines)
	p.viewport.SetContent(b.String())
	p.viewport.GotoTop()
}

// Update handles messages for viewport scrolling
func (p *DocPreview) Update(msg tea.Msg) (*DocPreview, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the preview
func (p *DocPreview) View() string {
	var b strings.Builder

	header := p.headerStyle.Render(fmt.Sprintf("📄 %s", p.Name))
	sizeInfo := p.infoStyle.Render(fmt.Sprintf("  %s  %d lines  %s", formatBytes(int64(p.Size)), p.TotalLines, strings.ToUpper(p.Language)))
	b.WriteString(header + sizeInfo + "\n")

	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(0, p.Width-4))) + "\n")

	b.WriteString(p.viewport.View())

	if p.TotalLines > p.viewport.Height {
		scrollInfo := fmt.Sprintf("─── %.0f%% ───", p.viewport.ScrollPercent()*100)
		b.WriteString("\n" + p.infoStyle.Render(scrollInfo))
	}

	return p.borderStyle.
		Width(p.Width).
		Height(p.Height).
		Render(b.String())
}

// ScrollUp scrolls up one line
func (p *DocPreview) ScrollUp() {
	p.viewport.LineUp(1)
}

// ScrollDown scrolls down one line
func (p *DocPreview) ScrollDown() {
	p.viewport.LineDown(1)
}

// GoToTop goes to the beginning
func (p *DocPreview) GoToTop() {
	p.viewport.GotoTop()
}

// GoToBottom goes to the end
func (p *DocPreview) GoToBottom() {
	p.viewport.GotoBottom()
}

// AtTop reports whether the first line is visible
func (p *DocPreview) AtTop() bool {
	return p.viewport.AtTop()
}

// formatBytes formats bytes to human readable string
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
