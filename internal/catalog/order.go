package catalog

import (
	"sort"
	"strings"
)

// Sort orders every folder from p downwards: folders before entries, each
// group by case-insensitive name. Ties keep their previous relative order,
// so sorting twice yields the same tree.
func (c *Catalog) Sort(p Path) error {
	dir, err := c.folder("sort", p)
	if err != nil {
		return err
	}
	sortFolder(dir)
	return nil
}

func sortFolder(dir *Node) {
	sort.SliceStable(dir.children, func(i, j int) bool {
		return lessNode(dir.children[i], dir.children[j])
	})
	for _, child := range dir.children {
		if child.IsFolder() {
			sortFolder(child)
		}
	}
}

func lessNode(a, b *Node) bool {
	if a.IsFolder() != b.IsFolder() {
		return a.IsFolder()
	}
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

// IsSorted reports whether the subtree at p is already in Sort order.
func (c *Catalog) IsSorted(p Path) bool {
	dir, err := c.folder("sort", p)
	if err != nil {
		return false
	}
	return isSorted(dir)
}

func isSorted(dir *Node) bool {
	for i := 1; i < len(dir.children); i++ {
		if lessNode(dir.children[i], dir.children[i-1]) {
			return false
		}
	}
	for _, child := range dir.children {
		if child.IsFolder() && !isSorted(child) {
			return false
		}
	}
	return true
}
