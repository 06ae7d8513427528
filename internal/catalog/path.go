package catalog

import "strings"

// Separator joins path segments in the textual form of a Path.
const Separator = "/"

// Path addresses a node by the names leading to it from the root.
// The root itself is the empty path.
type Path []string

// ParsePath splits a slash separated string into a Path. Empty segments are
// dropped, so "", "/" and "//" all address the root.
func ParsePath(s string) Path {
	var p Path
	for _, seg := range strings.Split(s, Separator) {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			p = append(p, seg)
		}
	}
	return p
}

// String renders the path with a leading separator.
func (p Path) String() string {
	return Separator + strings.Join(p, Separator)
}

// IsRoot reports whether p addresses the root folder.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Base returns the last segment, or "" for the root.
func (p Path) Base() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns the path of the containing folder. The parent of the root
// is the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	return p[:len(p)-1].Clone()
}

// Child returns a new path one level below p.
func (p Path) Child(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

// Clone returns a copy that does not share storage with p.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Equal reports whether both paths address the same node.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// IsAncestorOf reports whether p is a strict prefix of o.
func (p Path) IsAncestorOf(o Path) bool {
	if len(p) >= len(o) {
		return false
	}
	return p.Equal(o[:len(p)])
}
