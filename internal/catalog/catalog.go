package catalog

import "errors"

// Catalog owns a tree of nodes under an implicit, unnamed root folder.
//
// A Catalog is not safe for concurrent use. Callers that share one across
// goroutines must guard the whole value with a single lock.
type Catalog struct {
	root *Node
}

// New returns an empty catalog holding only the root folder.
func New() *Catalog {
	return &Catalog{root: newFolder("")}
}

// Root returns the root folder. Its Name is always empty.
func (c *Catalog) Root() *Node {
	return c.root
}

// Resolve returns the node addressed by p.
func (c *Catalog) Resolve(p Path) (*Node, error) {
	n := c.root
	for i, name := range p {
		if !n.IsFolder() {
			return nil, opError("resolve", p, ErrNotFound, "%s is an entry", p[:i])
		}
		_, next := n.child(name)
		if next == nil {
			return nil, opError("resolve", p, ErrNotFound, "")
		}
		n = next
	}
	return n, nil
}

// Exists reports whether p resolves.
func (c *Catalog) Exists(p Path) bool {
	_, err := c.Resolve(p)
	return err == nil
}

// Clone returns an independent deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	return &Catalog{root: c.root.Clone()}
}

// Equal reports structural equality of two catalogs, order included.
func (c *Catalog) Equal(o *Catalog) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.root.Equal(o.root)
}

// Count returns the number of folders and entries below the root.
func (c *Catalog) Count() (folders, entries int) {
	_ = c.Walk(func(_ Path, n *Node, _ int) error {
		if n.IsFolder() {
			folders++
		} else {
			entries++
		}
		return nil
	})
	return folders, entries
}

// SkipChildren can be returned from a WalkFunc to skip the children of the
// folder being visited.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node below the root in depth-first display
// order. depth is 0 for the root's direct children.
type WalkFunc func(p Path, n *Node, depth int) error

// Walk traverses the tree depth-first in current order. The root itself is
// not visited. Returning an error other than SkipChildren stops the walk.
func (c *Catalog) Walk(fn WalkFunc) error {
	return walk(c.root, Path{}, 0, fn)
}

func walk(dir *Node, p Path, depth int, fn WalkFunc) error {
	for _, child := range dir.children {
		cp := p.Child(child.Name)
		err := fn(cp, child, depth)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if child.IsFolder() {
			if err := walk(child, cp, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// locate resolves p to its parent folder, its index there and the node.
// p must not be the root.
func (c *Catalog) locate(op string, p Path) (*Node, int, *Node, error) {
	parent, err := c.Resolve(p.Parent())
	if err != nil || !parent.IsFolder() {
		return nil, -1, nil, opError(op, p, ErrNotFound, "")
	}
	i, n := parent.child(p.Base())
	if n == nil {
		return nil, -1, nil, opError(op, p, ErrNotFound, "")
	}
	return parent, i, n, nil
}

// folder resolves p and requires it to be a folder.
func (c *Catalog) folder(op string, p Path) (*Node, error) {
	n, err := c.Resolve(p)
	if err != nil {
		return nil, opError(op, p, ErrNotFound, "")
	}
	if !n.IsFolder() {
		return nil, opError(op, p, ErrInvalidParent, "%q is an entry", n.Name)
	}
	return n, nil
}
