package ui

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter provides syntax highlighting for catalog documents and diffs
type Highlighter struct {
	style *chroma.Style
}

// NewHighlighter creates a new syntax highlighter
func NewHighlighter() *Highlighter {
	return &Highlighter{
		style: styles.Get("catppuccin-mocha"),
	}
}

// HighlightLine highlights a single line in the given language ("json",
// "yaml" or "diff"). Unknown languages are returned unchanged.
func (h *Highlighter) HighlightLine(line, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		return line
	}

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var result strings.Builder
	for token := iterator(); token != chroma.EOF; token = iterator() {
		style := h.style.Get(token.Type)
		text := token.Value

		if style.Colour.IsSet() {
			styled := lipgloss.NewStyle().Foreground(lipgloss.Color(style.Colour.String()))
			if style.Bold == chroma.Yes {
				styled = styled.Bold(true)
			}
			if style.Italic == chroma.Yes {
				styled = styled.Italic(true)
			}
			result.WriteString(styled.Render(text))
		} else {
			result.WriteString(text)
		}
	}

	return result.String()
}

// HighlightLines highlights multiple lines
func (h *Highlighter) HighlightLines(lines []string, language string) []string {
	result := make([]string, len(lines))
	for i, line := range lines {
		result[i] = h.HighlightLine(line, language)
	}
	return result
}

// LanguageForFile returns the highlight language for a document file name,
// based on its extension. JSON is the default.
func LanguageForFile(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".diff", ".patch":
		return "diff"
	default:
		return "json"
	}
}

// GetFileType returns a human-readable document type for display
func GetFileType(filename string) string {
	switch LanguageForFile(filename) {
	case "yaml":
		return "YAML"
	case "diff":
		return "Diff"
	default:
		return "JSON"
	}
}
