package components

import (
	"strings"

	"exelaunch/internal/ui"
)

// Confirm is a yes/no dialog. No is selected by default.
type Confirm struct {
	Title   string
	Message string
	Width   int
	yes     bool
}

// NewConfirm creates a confirmation dialog
func NewConfirm(title, message string) *Confirm {
	return &Confirm{Title: title, Message: message, Width: 50}
}

// Toggle switches the selected button
func (c *Confirm) Toggle() {
	c.yes = !c.yes
}

// SetYes selects a button directly
func (c *Confirm) SetYes(yes bool) {
	c.yes = yes
}

// Yes reports whether "Yes" is selected
func (c *Confirm) Yes() bool {
	return c.yes
}

// View renders the dialog
func (c *Confirm) View() string {
	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render(c.Title))
	b.WriteString("\n\n")
	b.WriteString(c.Message)
	b.WriteString("\n\n")
	b.WriteString(ui.RenderButton("Yes", c.yes) + "  " + ui.RenderButton("No", !c.yes))
	b.WriteString("\n\n")
	b.WriteString(ui.RenderHelpItem("←/→", "choose") + "  " + ui.RenderHelpItem("y/n", "answer"))
	return ui.DialogStyle.Width(c.Width).Render(b.String())
}
