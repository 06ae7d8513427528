package components

import (
	"fmt"
	"strings"

	"exelaunch/internal/catalog"
	"exelaunch/internal/ui"
)

// Row is one visible line of the tree.
type Row struct {
	Path      catalog.Path
	Node      *catalog.Node
	Depth     int
	Collapsed bool
}

// Flatten walks c depth-first and returns one row per visible node. Folders
// marked in collapsed (keyed by pathKey) are listed but their children are not.
func Flatten(c *catalog.Catalog, collapsed map[string]bool) []Row {
	var rows []Row
	_ = c.Walk(func(p catalog.Path, n *catalog.Node, depth int) error {
		closed := n.IsFolder() && collapsed[pathKey(p)]
		rows = append(rows, Row{Path: p, Node: n, Depth: depth, Collapsed: closed})
		if closed {
			return catalog.SkipChildren
		}
		return nil
	})
	return rows
}

// TreeView is a scrolling, collapsible view of a catalog
type TreeView struct {
	Rows    []Row
	Cursor  int
	Width   int
	Height  int
	Focused bool
	Title   string

	// Marked is the source of a pending move, nil when none.
	Marked catalog.Path
	// Query is shown in the title while the view is filtered.
	Query string

	collapsed map[string]bool
}

// NewTreeView creates an empty tree view
func NewTreeView() *TreeView {
	return &TreeView{
		Width:     60,
		Height:    20,
		Focused:   true,
		Title:     "Catalog",
		collapsed: map[string]bool{},
	}
}

// SetCatalog rebuilds the rows from c, keeping the cursor on the same path
// when it still exists. Collapsed folders are ignored while a query is set.
func (t *TreeView) SetCatalog(c *catalog.Catalog) {
	var current catalog.Path
	if row := t.Current(); row != nil {
		current = row.Path
	}

	collapsed := t.collapsed
	if t.Query != "" {
		collapsed = nil
	}
	t.Rows = Flatten(c, collapsed)

	if current != nil && t.SelectPath(current) {
		return
	}
	t.clampCursor()
}

// SelectPath moves the cursor to p and reports whether it is visible.
func (t *TreeView) SelectPath(p catalog.Path) bool {
	for i, row := range t.Rows {
		if row.Path.Equal(p) {
			t.Cursor = i
			return true
		}
	}
	return false
}

// Current returns the row under the cursor, or nil when the view is empty.
func (t *TreeView) Current() *Row {
	if len(t.Rows) > 0 && t.Cursor < len(t.Rows) {
		return &t.Rows[t.Cursor]
	}
	return nil
}

// CurrentFolder returns the folder new nodes go into: the row itself when it
// is a folder, its parent when it is an entry, the root when empty.
func (t *TreeView) CurrentFolder() catalog.Path {
	row := t.Current()
	if row == nil {
		return nil
	}
	if row.Node.IsFolder() {
		return row.Path
	}
	return row.Path.Parent()
}

// ToggleCollapsed collapses or expands the folder under the cursor. It
// returns false when the cursor is not on a folder.
func (t *TreeView) ToggleCollapsed() bool {
	row := t.Current()
	if row == nil || !row.Node.IsFolder() {
		return false
	}
	key := pathKey(row.Path)
	if t.collapsed[key] {
		delete(t.collapsed, key)
	} else {
		t.collapsed[key] = true
	}
	return true
}

// IsCollapsed reports whether the folder at p is collapsed.
func (t *TreeView) IsCollapsed(p catalog.Path) bool {
	return t.collapsed[pathKey(p)]
}

// Relocate carries the collapsed state of from and the folders below it
// over to to, after a rename or move.
func (t *TreeView) Relocate(from, to catalog.Path) {
	if from.IsRoot() || from.Equal(to) {
		return
	}
	old, next := pathKey(from), pathKey(to)
	moved := map[string]bool{}
	for key := range t.collapsed {
		if key == old || strings.HasPrefix(key, old+"\x00") {
			moved[next+strings.TrimPrefix(key, old)] = true
			delete(t.collapsed, key)
		}
	}
	for key := range moved {
		t.collapsed[key] = true
	}
}

// Forget drops the collapsed state of p and the folders below it.
func (t *TreeView) Forget(p catalog.Path) {
	if p.IsRoot() {
		return
	}
	old := pathKey(p)
	for key := range t.collapsed {
		if key == old || strings.HasPrefix(key, old+"\x00") {
			delete(t.collapsed, key)
		}
	}
}

// MoveUp moves cursor up
func (t *TreeView) MoveUp() {
	if t.Cursor > 0 {
		t.Cursor--
	}
}

// MoveDown moves cursor down
func (t *TreeView) MoveDown() {
	if t.Cursor < len(t.Rows)-1 {
		t.Cursor++
	}
}

// PageUp moves cursor up by a page
func (t *TreeView) PageUp() {
	t.Cursor -= t.pageSize()
	t.clampCursor()
}

// PageDown moves cursor down by a page
func (t *TreeView) PageDown() {
	t.Cursor += t.pageSize()
	t.clampCursor()
}

// GoToFirst moves cursor to the first row
func (t *TreeView) GoToFirst() {
	t.Cursor = 0
}

// GoToLast moves cursor to the last row
func (t *TreeView) GoToLast() {
	if len(t.Rows) > 0 {
		t.Cursor = len(t.Rows) - 1
	}
}

func (t *TreeView) pageSize() int {
	pageSize := t.Height - 3
	if pageSize < 1 {
		pageSize = 10
	}
	return pageSize
}

func (t *TreeView) clampCursor() {
	if t.Cursor >= len(t.Rows) {
		t.Cursor = len(t.Rows) - 1
	}
	if t.Cursor < 0 {
		t.Cursor = 0
	}
}

// View renders the tree
func (t *TreeView) View() string {
	var b strings.Builder

	title := t.Title
	if t.Query != "" {
		title = fmt.Sprintf("%s %s", t.Title, ui.QueryStyle.Render("/"+t.Query))
	}
	if len(t.Rows) > 0 {
		title = fmt.Sprintf("%s (%d)", title, len(t.Rows))
	}
	b.WriteString(ui.PanelTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(0, t.Width-2))))
	b.WriteString("\n")

	if len(t.Rows) == 0 {
		if t.Query != "" {
			b.WriteString(ui.ItemStyle.Render("No matches"))
		} else {
			b.WriteString(ui.ItemStyle.Render("Empty catalog. Press f to add a folder or a to add an entry."))
		}
		return t.wrapInPanel(b.String())
	}

	visibleHeight := t.Height - 3 // Minus title and divider
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	startIdx := 0
	if t.Cursor >= visibleHeight {
		startIdx = t.Cursor - visibleHeight + 1
	}
	endIdx := min(startIdx+visibleHeight, len(t.Rows))

	if startIdx > 0 {
		b.WriteString(ui.MutedStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(t.renderRow(t.Rows[i], i == t.Cursor))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	if endIdx < len(t.Rows) {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render("  ↓ more"))
	}

	return t.wrapInPanel(b.String())
}

// renderRow renders a single row
func (t *TreeView) renderRow(row Row, isCursor bool) string {
	indent := strings.Repeat("  ", row.Depth)

	var content string
	if row.Node.IsFolder() {
		arrow := "▾"
		if row.Collapsed {
			arrow = "▸"
		}
		label := fmt.Sprintf("%s %s", arrow, row.Node.Name)
		if row.Collapsed && row.Node.Len() > 0 {
			label += ui.MutedStyle.Render(fmt.Sprintf(" (%d)", row.Node.Len()))
		}
		content = indent + ui.FolderStyle.Render(label)
	} else {
		content = indent + "  " + ui.EntryStyle.Render(row.Node.Label())
		maxPath := t.Width - len(indent) - len(row.Node.Name) - 12
		if maxPath > 8 {
			content += " " + ui.LaunchPathStyle.Render(truncate(row.Node.LaunchPath, maxPath))
		}
	}

	if t.Marked != nil && row.Path.Equal(t.Marked) {
		content += " " + ui.MarkedStyle.Render("[move]")
	}

	if isCursor && t.Focused {
		return ui.SelectedItemStyle.Width(max(0, t.Width-4)).Render(content)
	}
	return ui.ItemStyle.Render(content)
}

// wrapInPanel wraps content in a panel border
func (t *TreeView) wrapInPanel(content string) string {
	style := ui.PanelStyle
	if t.Focused {
		style = ui.ActivePanelStyle
	}
	return style.Width(t.Width).Height(t.Height).Render(content)
}

// pathKey joins segments with a byte names cannot contain in practice.
func pathKey(p catalog.Path) string {
	return strings.Join(p, "\x00")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
