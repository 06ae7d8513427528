package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Placement selects where Move puts the source node relative to the target.
type Placement int

const (
	// AppendInto makes the source the last child of the target folder.
	AppendInto Placement = iota
	// BeforeSibling inserts the source immediately before the target, under
	// the target's parent.
	BeforeSibling
)

// String returns a string representation of the placement
func (p Placement) String() string {
	switch p {
	case AppendInto:
		return "into"
	case BeforeSibling:
		return "before"
	default:
		return fmt.Sprintf("placement(%d)", int(p))
	}
}

// ParsePlacement accepts "into" or "before".
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "into", "append", "":
		return AppendInto, nil
	case "before":
		return BeforeSibling, nil
	default:
		return 0, fmt.Errorf("%w: unknown placement %q", ErrInvalidInput, s)
	}
}

// AddFolder appends an empty folder named name to the folder at parent and
// returns its path.
func (c *Catalog) AddFolder(parent Path, name string) (Path, error) {
	const op = "add folder"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, opError(op, parent, ErrInvalidInput, "name is required")
	}
	if err := checkUTF8(op, parent, name); err != nil {
		return nil, err
	}
	dir, err := c.folder(op, parent)
	if err != nil {
		return nil, err
	}
	if _, dup := dir.child(name); dup != nil {
		return nil, opError(op, parent, ErrDuplicateName, "%q already exists", name)
	}

	dir.children = append(dir.children, newFolder(name))
	return parent.Child(name), nil
}

// AddEntry appends a launchable entry to the folder at parent and returns its
// path. An empty marker selects DefaultMarker.
func (c *Catalog) AddEntry(parent Path, name, launchPath, marker string) (Path, error) {
	const op = "add entry"

	name = strings.TrimSpace(name)
	launchPath = strings.TrimSpace(launchPath)
	if name == "" {
		return nil, opError(op, parent, ErrInvalidInput, "name is required")
	}
	if launchPath == "" {
		return nil, opError(op, parent, ErrInvalidInput, "launch path is required")
	}
	if err := checkUTF8(op, parent, name, launchPath, marker); err != nil {
		return nil, err
	}
	dir, err := c.folder(op, parent)
	if err != nil {
		return nil, err
	}
	if _, dup := dir.child(name); dup != nil {
		return nil, opError(op, parent, ErrDuplicateName, "%q already exists", name)
	}

	dir.children = append(dir.children, newEntry(name, launchPath, strings.TrimSpace(marker)))
	return parent.Child(name), nil
}

// EditEntry replaces the launch path and marker of the entry at p.
func (c *Catalog) EditEntry(p Path, launchPath, marker string) error {
	const op = "edit entry"

	launchPath = strings.TrimSpace(launchPath)
	if launchPath == "" {
		return opError(op, p, ErrInvalidInput, "launch path is required")
	}
	if err := checkUTF8(op, p, launchPath, marker); err != nil {
		return err
	}
	if p.IsRoot() {
		return opError(op, p, ErrInvalidOperation, "root is not an entry")
	}
	_, _, n, err := c.locate(op, p)
	if err != nil {
		return err
	}
	if !n.IsEntry() {
		return opError(op, p, ErrInvalidOperation, "%q is a folder", n.Name)
	}

	marker = strings.TrimSpace(marker)
	if marker == "" {
		marker = DefaultMarker
	}
	n.LaunchPath = launchPath
	n.Marker = marker
	return nil
}

// Rename changes the name of the node at p, keeping its position and
// children, and returns the new path.
func (c *Catalog) Rename(p Path, newName string) (Path, error) {
	const op = "rename"

	if p.IsRoot() {
		return nil, opError(op, p, ErrInvalidOperation, "cannot rename the root")
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, opError(op, p, ErrInvalidInput, "name is required")
	}
	if err := checkUTF8(op, p, newName); err != nil {
		return nil, err
	}
	parent, _, n, err := c.locate(op, p)
	if err != nil {
		return nil, err
	}
	if n.Name == newName {
		return p.Clone(), nil
	}
	if _, dup := parent.child(newName); dup != nil {
		return nil, opError(op, p, ErrDuplicateName, "%q already exists", newName)
	}

	n.Name = newName
	return p.Parent().Child(newName), nil
}

// Remove detaches the node at p together with its whole subtree.
func (c *Catalog) Remove(p Path) error {
	const op = "remove"

	if p.IsRoot() {
		return opError(op, p, ErrInvalidOperation, "cannot remove the root")
	}
	parent, i, _, err := c.locate(op, p)
	if err != nil {
		return err
	}
	parent.removeAt(i)
	return nil
}

// Move relocates the node at src, with its subtree, relative to dst and
// returns the node's new path.
//
// A move that would put the node next to a different sibling with the same
// name fails with ErrDuplicateName; nothing is renamed or merged.
func (c *Catalog) Move(src, dst Path, placement Placement) (Path, error) {
	const op = "move"

	switch {
	case src.IsRoot():
		return nil, opError(op, src, ErrInvalidOperation, "cannot move the root")
	case src.Equal(dst):
		return nil, opError(op, src, ErrInvalidOperation, "source and target are the same")
	case src.IsAncestorOf(dst):
		return nil, opError(op, src, ErrInvalidOperation, "cannot move a folder into its own subtree %s", dst)
	}

	srcParent, srcIdx, n, err := c.locate(op, src)
	if err != nil {
		return nil, err
	}

	var (
		dir     *Node
		at      int
		dirPath Path
	)
	switch placement {
	case AppendInto:
		target, err := c.Resolve(dst)
		if err != nil {
			return nil, opError(op, dst, ErrNotFound, "")
		}
		if !target.IsFolder() {
			return nil, opError(op, dst, ErrInvalidOperation, "cannot move into entry %q", target.Name)
		}
		dir, at, dirPath = target, len(target.children), dst
	case BeforeSibling:
		if dst.IsRoot() {
			return nil, opError(op, dst, ErrInvalidOperation, "root has no siblings")
		}
		parent, i, _, err := c.locate(op, dst)
		if err != nil {
			return nil, err
		}
		dir, at, dirPath = parent, i, dst.Parent()
	default:
		return nil, opError(op, src, ErrInvalidInput, "unknown placement %v", placement)
	}

	if _, dup := dir.child(n.Name); dup != nil && dup != n {
		return nil, opError(op, src, ErrDuplicateName, "%q already exists in %s", n.Name, dirPath)
	}

	srcParent.removeAt(srcIdx)
	if dir == srcParent && srcIdx < at {
		at--
	}
	dir.insert(at, n)
	return dirPath.Child(n.Name), nil
}

// checkUTF8 rejects text the document codec could not store unchanged.
func checkUTF8(op string, p Path, values ...string) error {
	for _, v := range values {
		if !utf8.ValidString(v) {
			return opError(op, p, ErrInvalidInput, "%q is not valid UTF-8", v)
		}
	}
	return nil
}
