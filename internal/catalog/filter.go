package catalog

import "strings"

// Filter returns an independent catalog holding only the nodes that match
// query, case-insensitively, plus the folders needed to reach them.
//
// An entry matches on its name or launch path. A folder whose own name
// matches is kept with its entire subtree, unfiltered. Any other folder is
// kept only when a descendant qualifies, and then only with the qualifying
// children. An empty query returns a full copy.
func (c *Catalog) Filter(query string) *Catalog {
	q := strings.ToLower(query)
	if q == "" {
		return c.Clone()
	}
	root := newFolder("")
	root.children = filterChildren(c.root, q)
	return &Catalog{root: root}
}

func filterChildren(dir *Node, q string) []*Node {
	var out []*Node
	for _, child := range dir.children {
		if kept := filterNode(child, q); kept != nil {
			out = append(out, kept)
		}
	}
	return out
}

func filterNode(n *Node, q string) *Node {
	if n.IsEntry() {
		if contains(n.Name, q) || contains(n.LaunchPath, q) {
			return n.Clone()
		}
		return nil
	}
	if contains(n.Name, q) {
		return n.Clone()
	}
	kids := filterChildren(n, q)
	if len(kids) == 0 {
		return nil
	}
	f := newFolder(n.Name)
	f.children = kids
	return f
}

func contains(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}

// Matches reports whether the node itself matches query under Filter's rule.
func (n *Node) Matches(query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	if n.IsEntry() {
		return contains(n.Name, q) || contains(n.LaunchPath, q)
	}
	return contains(n.Name, q)
}
