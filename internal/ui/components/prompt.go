package components

import (
	"strings"

	"exelaunch/internal/ui"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field describes one input of a Prompt.
type Field struct {
	Label       string
	Placeholder string
	Value       string
}

// Prompt is a small form of text inputs shown in a dialog. The host decides
// what enter and esc do; the prompt only moves focus and edits text.
type Prompt struct {
	Title string
	Width int
	Err   string

	labels []string
	inputs []textinput.Model
	focus  int
}

// NewPrompt creates a prompt with the first field focused
func NewPrompt(title string, fields ...Field) *Prompt {
	p := &Prompt{Title: title, Width: 60}
	for _, f := range fields {
		in := textinput.New()
		in.Placeholder = f.Placeholder
		in.SetValue(f.Value)
		in.CursorEnd()
		in.CharLimit = 512
		in.Width = p.Width - 8
		p.labels = append(p.labels, f.Label)
		p.inputs = append(p.inputs, in)
	}
	if len(p.inputs) > 0 {
		p.inputs[0].Focus()
	}
	return p
}

// Len returns the number of fields
func (p *Prompt) Len() int {
	return len(p.inputs)
}

// Focused returns the index of the focused field
func (p *Prompt) Focused() int {
	return p.focus
}

// Value returns the trimmed text of field i
func (p *Prompt) Value(i int) string {
	if i < 0 || i >= len(p.inputs) {
		return ""
	}
	return strings.TrimSpace(p.inputs[i].Value())
}

// Values returns the trimmed text of every field
func (p *Prompt) Values() []string {
	values := make([]string, len(p.inputs))
	for i := range p.inputs {
		values[i] = p.Value(i)
	}
	return values
}

// SetFocus focuses field i
func (p *Prompt) SetFocus(i int) {
	if i < 0 || i >= len(p.inputs) {
		return
	}
	p.inputs[p.focus].Blur()
	p.focus = i
	p.inputs[p.focus].Focus()
}

// Next focuses the following field. It returns false when the last field is
// already focused, meaning the form is complete.
func (p *Prompt) Next() bool {
	if p.focus >= len(p.inputs)-1 {
		return false
	}
	p.SetFocus(p.focus + 1)
	return true
}

// Prev focuses the preceding field
func (p *Prompt) Prev() {
	if p.focus > 0 {
		p.SetFocus(p.focus - 1)
	}
}

// Update forwards key input to the focused field. Tab and shift+tab move
// between fields.
func (p *Prompt) Update(msg tea.Msg) (*Prompt, tea.Cmd) {
	if len(p.inputs) == 0 {
		return p, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "tab", "down":
			p.Next()
			return p, nil
		case "shift+tab", "up":
			p.Prev()
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	p.Err = ""
	return p, cmd
}

// View renders the prompt dialog
func (p *Prompt) View() string {
	var b strings.Builder

	b.WriteString(ui.TitleStyle.Render(p.Title))
	b.WriteString("\n\n")

	for i, in := range p.inputs {
		label := p.labels[i]
		if i == p.focus {
			label = ui.CursorStyle.Render("› " + label)
		} else {
			label = ui.MutedStyle.Render("  " + label)
		}
		b.WriteString(label + "\n")
		b.WriteString("  " + in.View() + "\n")
	}

	if p.Err != "" {
		b.WriteString("\n" + ui.RenderNotification(ui.NotifyError, p.Err) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(ui.RenderHelpItem("enter", "next/confirm") + "  ")
	b.WriteString(ui.RenderHelpItem("tab", "switch field") + "  ")
	b.WriteString(ui.RenderHelpItem("esc", "cancel"))

	return ui.DialogStyle.Width(p.Width).Render(b.String())
}
