package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LegacyRootGroup names the top level in legacy documents.
const LegacyRootGroup = "Root"

// legacyDocument is the flat executables+groups layout used by the first
// version of the launcher.
type legacyDocument struct {
	Executables []legacyExecutable `json:"executables"`
	Groups      []legacyGroup      `json:"groups"`
}

type legacyExecutable struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Emoji string `json:"emoji"`
	Group string `json:"group"`
}

type legacyGroup struct {
	Name      string        `json:"name"`
	SubGroups []legacyGroup `json:"sub_groups"`
}

// ImportLegacy converts a legacy document into a catalog.
//
// Groups become nested folders. Each executable is appended to the first
// group with its name in depth-first order; "Root" and unknown groups mean
// the root folder. Clashing names get a " (n)" suffix. Executables without a
// path are skipped.
func ImportLegacy(data []byte) (*Catalog, error) {
	var doc legacyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, corrupt("legacy document: %v", err)
	}

	c := New()
	folders := map[string]*Node{}
	for _, g := range doc.Groups {
		importGroup(c.root, g, folders)
	}

	for _, exe := range doc.Executables {
		if strings.TrimSpace(exe.Path) == "" {
			continue
		}
		dir := c.root
		if f, ok := folders[exe.Group]; ok && exe.Group != LegacyRootGroup {
			dir = f
		}
		name := uniqueName(dir, strings.TrimSpace(exe.Name))
		dir.children = append(dir.children, newEntry(name, strings.TrimSpace(exe.Path), strings.TrimSpace(exe.Emoji)))
	}
	return c, nil
}

func importGroup(parent *Node, g legacyGroup, index map[string]*Node) {
	name := strings.TrimSpace(g.Name)
	if name == "" || name == LegacyRootGroup {
		for _, sub := range g.SubGroups {
			importGroup(parent, sub, index)
		}
		return
	}
	f := newFolder(uniqueName(parent, name))
	parent.children = append(parent.children, f)
	if _, seen := index[name]; !seen {
		index[name] = f
	}
	for _, sub := range g.SubGroups {
		importGroup(f, sub, index)
	}
}

func uniqueName(dir *Node, name string) string {
	if name == "" {
		name = "Untitled"
	}
	if _, dup := dir.child(name); dup == nil {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s (%d)", name, i)
		if _, dup := dir.child(candidate); dup == nil {
			return candidate
		}
	}
}
