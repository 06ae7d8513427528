package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(p *Prompt, s string) *Prompt {
	for _, r := range s {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func TestPrompt_Fields(t *testing.T) {
	p := NewPrompt("New entry",
		Field{Label: "Name"},
		Field{Label: "Launch path", Placeholder: "/usr/bin/app"},
		Field{Label: "Marker", Value: "🚀"},
	)

	if p.Len() != 3 {
		t.Fatalf("expected 3 fields, got %d", p.Len())
	}
	if p.Focused() != 0 {
		t.Errorf("first field should be focused, got %d", p.Focused())
	}
	if p.Value(2) != "🚀" {
		t.Errorf("initial value should be kept, got %q", p.Value(2))
	}
	if p.Value(9) != "" {
		t.Error("out of range field should be empty")
	}
}

func TestPrompt_TypingAndFocus(t *testing.T) {
	p := NewPrompt("New entry", Field{Label: "Name"}, Field{Label: "Launch path"})

	p = typeText(p, " Doom ")
	if !p.Next() {
		t.Fatal("Next should move to the second field")
	}
	p = typeText(p, "/g/doom")
	if p.Next() {
		t.Error("Next on the last field should report completion")
	}

	values := p.Values()
	if values[0] != "Doom" || values[1] != "/g/doom" {
		t.Errorf("unexpected values %q", values)
	}

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if p.Focused() != 0 {
		t.Errorf("shift+tab should focus the first field, got %d", p.Focused())
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if p.Focused() != 1 {
		t.Errorf("tab should focus the second field, got %d", p.Focused())
	}
}

func TestPrompt_ErrorClearedOnInput(t *testing.T) {
	p := NewPrompt("Rename", Field{Label: "Name", Value: "Old"})
	p.Err = "duplicate name"

	if !strings.Contains(p.View(), "duplicate name") {
		t.Error("view should show the error")
	}

	p = typeText(p, "x")
	if p.Err != "" {
		t.Error("typing should clear the error")
	}
	if p.Value(0) != "Oldx" {
		t.Errorf("expected Oldx, got %q", p.Value(0))
	}
}

func TestPrompt_View(t *testing.T) {
	p := NewPrompt("New folder", Field{Label: "Name"})
	view := p.View()

	for _, want := range []string{"New folder", "Name", "esc"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestConfirm(t *testing.T) {
	c := NewConfirm("Delete", "Delete Games and everything in it?")

	if c.Yes() {
		t.Error("No should be selected by default")
	}
	c.Toggle()
	if !c.Yes() {
		t.Error("Toggle should select Yes")
	}
	c.SetYes(false)
	if c.Yes() {
		t.Error("SetYes(false) should select No")
	}

	view := c.View()
	if !strings.Contains(view, "Delete Games") || !strings.Contains(view, "Yes") {
		t.Error("view should contain message and buttons")
	}
}
