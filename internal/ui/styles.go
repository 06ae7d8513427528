package ui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	Primary    = lipgloss.Color("#7C3AED") // Purple
	Secondary  = lipgloss.Color("#06B6D4") // Cyan
	Success    = lipgloss.Color("#10B981") // Green
	Warning    = lipgloss.Color("#F59E0B") // Amber
	Error      = lipgloss.Color("#EF4444") // Red
	Muted      = lipgloss.Color("#6B7280") // Gray
	Foreground = lipgloss.Color("#F9FAFB") // Light
	Border     = lipgloss.Color("#374151") // Border gray
	Selected   = lipgloss.Color("#4F46E5") // Indigo
)

// Styles
var (
	// App container
	AppStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1).
			MarginBottom(1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Foreground)

	VersionStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary).
			Padding(0, 1)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	// Tree rows
	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Selected).
				Foreground(Foreground)

	CursorStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	FolderStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	EntryStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	LaunchPathStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Node marked as the source of a move
	MarkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F472B6")).
			Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1).
			MarginTop(1)

	// Help bar
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Muted text
	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Divider
	DividerStyle = lipgloss.NewStyle().
			Foreground(Border)

	// Search query
	QueryStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Notification/Toast styles
	SuccessNotifyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#10B981")).
				Background(lipgloss.Color("#064E3B")).
				Padding(0, 1).
				Bold(true)

	ErrorNotifyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FCA5A5")).
				Background(lipgloss.Color("#7F1D1D")).
				Padding(0, 1).
				Bold(true)

	WarningNotifyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FCD34D")).
				Background(lipgloss.Color("#78350F")).
				Padding(0, 1).
				Bold(true)

	InfoNotifyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#93C5FD")).
			Background(lipgloss.Color("#1E3A5F")).
			Padding(0, 1).
			Bold(true)

	// Dialog box style
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			Width(60)

	// Button styles
	ButtonStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Border).
			Padding(0, 2)

	ButtonActiveStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Primary).
				Padding(0, 2).
				Bold(true)
)

// NotifyKind selects the look of a notification.
type NotifyKind int

const (
	NotifyInfo NotifyKind = iota
	NotifySuccess
	NotifyWarning
	NotifyError
)

// RenderHelpItem renders a help key-description pair
func RenderHelpItem(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

// RenderNotification renders a styled notification message
func RenderNotification(kind NotifyKind, message string) string {
	var icon string
	var style lipgloss.Style

	switch kind {
	case NotifySuccess:
		icon = "✓"
		style = SuccessNotifyStyle
	case NotifyError:
		icon = "✗"
		style = ErrorNotifyStyle
	case NotifyWarning:
		icon = "⚠"
		style = WarningNotifyStyle
	case NotifyInfo:
		icon = "ℹ"
		style = InfoNotifyStyle
	default:
		icon = "•"
		style = MutedStyle
	}

	return style.Render(icon + " " + message)
}

// RenderButton renders a styled button
func RenderButton(label string, active bool) string {
	if active {
		return ButtonActiveStyle.Render(label)
	}
	return ButtonStyle.Render(label)
}
