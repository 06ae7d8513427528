package ui

import (
	"strings"
	"testing"
)

func TestLanguageForFile(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"catalog.json", "json"},
		{"catalog.yaml", "yaml"},
		{"catalog.YML", "yaml"},
		{"changes.diff", "diff"},
		{"changes.patch", "diff"},
		{"catalog", "json"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := LanguageForFile(tt.filename); got != tt.expected {
				t.Errorf("LanguageForFile(%s) = %s, want %s", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestGetFileType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"catalog.json", "JSON"},
		{"catalog.yaml", "YAML"},
		{"changes.diff", "Diff"},
		{"unknown.xyz", "JSON"},
	}

	for _, tt := range tests {
		if got := GetFileType(tt.filename); got != tt.expected {
			t.Errorf("GetFileType(%s) = %s, want %s", tt.filename, got, tt.expected)
		}
	}
}

func TestHighlighter_HighlightLine(t *testing.T) {
	h := NewHighlighter()

	tests := []struct {
		line     string
		language string
	}{
		{`  "Games": {`, "json"},
		{`    "path": "/g/doom",`, "json"},
		{"Games:", "yaml"},
		{`  path: /g/doom`, "yaml"},
		{`+  "Doom": {}`, "diff"},
	}

	for _, tt := range tests {
		result := h.HighlightLine(tt.line, tt.language)
		if result == "" {
			t.Errorf("HighlightLine(%q, %s) returned empty string", tt.line, tt.language)
		}
	}
}

func TestHighlighter_UnknownLanguage(t *testing.T) {
	h := NewHighlighter()
	line := "plain text"

	if got := h.HighlightLine(line, "no-such-language"); got != line {
		t.Errorf("expected line unchanged, got %q", got)
	}
}

func TestHighlighter_HighlightLines(t *testing.T) {
	h := NewHighlighter()
	lines := []string{"{", `  "Doom": {`, `    "path": "/g/doom"`, "  }", "}"}

	result := h.HighlightLines(lines, "json")
	if len(result) != len(lines) {
		t.Fatalf("expected %d lines, got %d", len(lines), len(result))
	}
	if !strings.Contains(result[2], "/g/doom") {
		t.Errorf("highlighted line should keep its text, got %q", result[2])
	}
}
