// Package catalog implements the launcher's catalog tree: an ordered tree of
// folders and launchable entries addressed by name paths.
//
// The package performs no I/O. Persistence, locking and launching are the
// caller's concern (see internal/store and internal/manager).
package catalog

// DefaultMarker is used when an entry is created without a marker.
const DefaultMarker = "📁"

// Kind discriminates folders from entries.
type Kind int

const (
	KindFolder Kind = iota
	KindEntry
)

// String returns a string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindEntry:
		return "entry"
	default:
		return "unknown"
	}
}

// Node is a folder or an entry in the catalog.
type Node struct {
	Name       string // Unique among siblings
	Kind       Kind   // Folder or entry
	LaunchPath string // Entries only
	Marker     string // Entries only, decorative glyph

	children []*Node
}

// IsFolder reports whether the node can hold children.
func (n *Node) IsFolder() bool {
	return n.Kind == KindFolder
}

// IsEntry reports whether the node is a launchable leaf.
func (n *Node) IsEntry() bool {
	return n.Kind == KindEntry
}

// Children returns the node's children in display order. The returned slice
// is a copy; mutate the tree through Catalog methods only.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.children)
}

// Label renders the node for display. Entries get their marker prepended.
func (n *Node) Label() string {
	if n.Kind == KindEntry && n.Marker != "" {
		return n.Marker + " " + n.Name
	}
	return n.Name
}

// Equal reports deep structural equality, including child order.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Name != o.Name || n.Kind != o.Kind || n.LaunchPath != o.LaunchPath || n.Marker != o.Marker {
		return false
	}
	if len(n.children) != len(o.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the node and its subtree.
func (n *Node) Clone() *Node {
	c := &Node{
		Name:       n.Name,
		Kind:       n.Kind,
		LaunchPath: n.LaunchPath,
		Marker:     n.Marker,
	}
	if len(n.children) > 0 {
		c.children = make([]*Node, len(n.children))
		for i, child := range n.children {
			c.children[i] = child.Clone()
		}
	}
	return c
}

func (n *Node) child(name string) (int, *Node) {
	for i, c := range n.children {
		if c.Name == name {
			return i, c
		}
	}
	return -1, nil
}

func (n *Node) insert(at int, c *Node) {
	n.children = append(n.children, nil)
	copy(n.children[at+1:], n.children[at:])
	n.children[at] = c
}

func (n *Node) removeAt(i int) {
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
}

func newFolder(name string) *Node {
	return &Node{Name: name, Kind: KindFolder}
}

func newEntry(name, launchPath, marker string) *Node {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Node{Name: name, Kind: KindEntry, LaunchPath: launchPath, Marker: marker}
}
