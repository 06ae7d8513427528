package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Document keys of an entry object.
const (
	keyPath   = "path"
	keyMarker = "emoji"
)

// Save encodes the catalog as its persisted JSON document: an object whose
// keys are the root's children in display order. Entries are written as
// {"path": ..., "emoji": ...}; folders as nested objects.
func Save(c *Catalog) ([]byte, error) {
	var buf bytes.Buffer
	writeFolder(&buf, c.root, 0)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler using the persisted document format.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	writeFolder(&buf, c.root, 0)
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler using the persisted document
// format.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	loaded, err := Load(data)
	if err != nil {
		return err
	}
	c.root = loaded.root
	return nil
}

func writeFolder(buf *bytes.Buffer, dir *Node, depth int) {
	if len(dir.children) == 0 {
		buf.WriteString("{}")
		return
	}
	buf.WriteString("{\n")
	for i, child := range dir.children {
		indent(buf, depth+1)
		writeString(buf, child.Name)
		buf.WriteString(": ")
		if child.IsFolder() {
			writeFolder(buf, child, depth+1)
		} else {
			writeEntry(buf, child, depth+1)
		}
		if i < len(dir.children)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	indent(buf, depth)
	buf.WriteByte('}')
}

func writeEntry(buf *bytes.Buffer, n *Node, depth int) {
	buf.WriteString("{\n")
	indent(buf, depth+1)
	writeString(buf, keyPath)
	buf.WriteString(": ")
	writeString(buf, n.LaunchPath)
	buf.WriteString(",\n")
	indent(buf, depth+1)
	writeString(buf, keyMarker)
	buf.WriteString(": ")
	writeString(buf, n.Marker)
	buf.WriteByte('\n')
	indent(buf, depth)
	buf.WriteByte('}')
}

func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encode appends a newline; strip it.
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1)
}

func indent(buf *bytes.Buffer, depth int) {
	buf.WriteString(strings.Repeat("  ", depth))
}

// Load decodes a persisted JSON document. Key order is preserved as child
// order. Any structural problem is reported as ErrCorruptData.
//
// An object is an entry when it has a "path" member holding a string; every
// other object is a folder.
func Load(data []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, corrupt("%v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, corrupt("document must be a JSON object")
	}
	doc, err := decodeObject(dec)
	if err != nil {
		return nil, corrupt("%v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, corrupt("unexpected data after document")
	}

	root := newFolder("")
	if err := buildFolder(root, doc); err != nil {
		return nil, corrupt("%v", err)
	}
	return &Catalog{root: root}, nil
}

func corrupt(format string, args ...any) error {
	return &Error{Op: "load", Err: fmt.Errorf("%w: %s", ErrCorruptData, fmt.Sprintf(format, args...))}
}

// object is a JSON object with its member order intact.
type object struct {
	members []member
}

type member struct {
	key   string
	value any // string, json.Number, bool, nil or *object
}

func (o *object) get(key string) (any, bool) {
	for _, m := range o.members {
		if m.key == key {
			return m.value, true
		}
	}
	return nil, false
}

// decodeObject reads members until the closing brace. The opening brace has
// already been consumed.
func decodeObject(dec *json.Decoder) (*object, error) {
	obj := &object{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", key, err)
		}
		obj.members = append(obj.members, member{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		if v == '{' {
			return decodeObject(dec)
		}
		return nil, fmt.Errorf("arrays are not allowed")
	default:
		return v, nil
	}
}

func isEntryObject(obj *object) bool {
	v, ok := obj.get(keyPath)
	if !ok {
		return false
	}
	_, isString := v.(string)
	return isString
}

func buildFolder(dir *Node, obj *object) error {
	for _, m := range obj.members {
		name := m.key
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("empty name in folder %q", dir.Name)
		}
		if _, dup := dir.child(name); dup != nil {
			return fmt.Errorf("duplicate name %q in folder %q", name, dir.Name)
		}
		child, ok := m.value.(*object)
		if !ok {
			return fmt.Errorf("%q: expected an object, got %T", name, m.value)
		}

		if isEntryObject(child) {
			n, err := buildEntry(name, child)
			if err != nil {
				return err
			}
			dir.children = append(dir.children, n)
			continue
		}

		sub := newFolder(name)
		if err := buildFolder(sub, child); err != nil {
			return err
		}
		dir.children = append(dir.children, sub)
	}
	return nil
}

func buildEntry(name string, obj *object) (*Node, error) {
	var launchPath, marker string
	seen := map[string]bool{}
	for _, m := range obj.members {
		if seen[m.key] {
			return nil, fmt.Errorf("entry %q: duplicate key %q", name, m.key)
		}
		seen[m.key] = true

		switch m.key {
		case keyPath:
			launchPath = m.value.(string)
		case keyMarker:
			s, ok := m.value.(string)
			if !ok {
				return nil, fmt.Errorf("entry %q: %q must be a string", name, keyMarker)
			}
			marker = s
		}
	}
	if strings.TrimSpace(launchPath) == "" {
		return nil, fmt.Errorf("entry %q: empty launch path", name)
	}
	return newEntry(name, launchPath, marker), nil
}
