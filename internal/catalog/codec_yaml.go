package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveYAML encodes the catalog in the same shape as Save, as YAML.
func SaveYAML(c *Catalog) ([]byte, error) {
	doc := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{folderNode(c.root)},
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return data, nil
}

func folderNode(dir *Node) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if len(dir.children) == 0 {
		m.Style = yaml.FlowStyle
	}
	for _, child := range dir.children {
		value := entryNode(child)
		if child.IsFolder() {
			value = folderNode(child)
		}
		m.Content = append(m.Content, strNode(child.Name), value)
	}
	return m
}

func entryNode(n *Node) *yaml.Node {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			strNode(keyPath), strNode(n.LaunchPath),
			strNode(keyMarker), strNode(n.Marker),
		},
	}
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// LoadYAML decodes a document written by SaveYAML. The same structural rules
// as Load apply.
func LoadYAML(data []byte) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, corrupt("%v", err)
	}
	root := newFolder("")
	if doc.Kind == 0 {
		// empty input
		return &Catalog{root: root}, nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, corrupt("document must be a mapping")
	}
	if err := buildYAMLFolder(root, doc.Content[0]); err != nil {
		return nil, corrupt("%v", err)
	}
	return &Catalog{root: root}, nil
}

func buildYAMLFolder(dir *Node, m *yaml.Node) error {
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: keys must be scalars", k.Line)
		}
		name := k.Value
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("line %d: empty name", k.Line)
		}
		if _, dup := dir.child(name); dup != nil {
			return fmt.Errorf("line %d: duplicate name %q", k.Line, name)
		}
		if v.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: %q must be a mapping", v.Line, name)
		}

		if pathNode := yamlLookup(v, keyPath); pathNode != nil && pathNode.Kind == yaml.ScalarNode && pathNode.ShortTag() == "!!str" {
			if strings.TrimSpace(pathNode.Value) == "" {
				return fmt.Errorf("line %d: entry %q has an empty launch path", v.Line, name)
			}
			marker := ""
			if mk := yamlLookup(v, keyMarker); mk != nil {
				if mk.Kind != yaml.ScalarNode {
					return fmt.Errorf("line %d: entry %q marker must be a scalar", mk.Line, name)
				}
				marker = mk.Value
			}
			dir.children = append(dir.children, newEntry(name, pathNode.Value, marker))
			continue
		}

		sub := newFolder(name)
		if err := buildYAMLFolder(sub, v); err != nil {
			return err
		}
		dir.children = append(dir.children, sub)
	}
	return nil
}

func yamlLookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
