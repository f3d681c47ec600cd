package updater

import (
	"bytes"
	"fmt"

	"arenasync/internal/core"

	"gopkg.in/yaml.v3"
)

// ParseDocument decodes the config text into a node tree, keeping key order and comments.
func ParseDocument(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, core.ErrNotYAMLDocument
	}
	return &doc, nil
}

// EncodeDocument serializes the node tree with the fixed on-disk indent.
func EncodeDocument(doc *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(core.YAMLIndent)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// lookup returns the value node for key, or nil. Aliases are followed.
func lookup(m *yaml.Node, key string) *yaml.Node {
	m = resolveAlias(m)
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return resolveAlias(m.Content[i+1])
		}
	}
	return nil
}

// set replaces the value for key, appending the pair when key is absent.
// m must already be safe to edit. Aliases of a replaced anchored value are
// expanded first so they do not dangle.
func set(doc, m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			if old := m.Content[i+1]; old.Kind != yaml.AliasNode && old.Anchor != "" {
				expandAliases(doc, old)
			}
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, stringNode(key), value)
}

// own returns the value for key in m, detached so it can be edited in place.
// m must already be safe to edit. Returns nil when key is absent.
func own(doc, m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = detach(doc, m.Content[i+1])
			return m.Content[i+1]
		}
	}
	return nil
}

// detach makes n private to its position in the tree. An alias becomes a copy
// of its target. An anchored node drops its anchor after every alias of it is
// expanded into a copy.
func detach(doc, n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.AliasNode {
		return materialize(n)
	}
	if n.Anchor != "" {
		expandAliases(doc, n)
		n.Anchor = ""
	}
	return n
}

// expandAliases replaces every alias of target under n with a copy of target.
func expandAliases(n, target *yaml.Node) {
	for i, child := range n.Content {
		if child.Kind == yaml.AliasNode {
			if child.Alias == target {
				n.Content[i] = materialize(child)
			}
			continue
		}
		expandAliases(child, target)
	}
}

// materialize copies the target of an alias, keeping the alias's own comments.
func materialize(alias *yaml.Node) *yaml.Node {
	target := resolveAlias(alias)
	if target == nil {
		return alias
	}
	c := deepCopy(target)
	c.HeadComment = alias.HeadComment
	c.LineComment = alias.LineComment
	c.FootComment = alias.FootComment
	return c
}

// deepCopy copies n without anchors. Aliases inside n still point at their targets.
func deepCopy(n *yaml.Node) *yaml.Node {
	c := *n
	c.Anchor = ""
	if n.Kind != yaml.AliasNode && len(n.Content) > 0 {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = deepCopy(child)
		}
	}
	return &c
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func sequenceNode(values []string, style yaml.Style) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: style}
	for _, v := range values {
		seq.Content = append(seq.Content, stringNode(v))
	}
	return seq
}

// scalarValues returns the scalar items of a sequence node; ok is false for anything else.
func scalarValues(n *yaml.Node) ([]string, bool) {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil, false
	}
	values := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.ScalarNode {
			return nil, false
		}
		values = append(values, item.Value)
	}
	return values, true
}
