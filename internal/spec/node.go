package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Reserved keys of a node object. Every other key is a prop.
const (
	KeyType     = "type"
	KeyID       = "id"
	KeyChildren = "children"
	KeyProps    = "props"
)

// Node is one typed, data-only entry in the declarative tree.
type Node struct {
	Type     string
	ID       string
	Props    map[string]any
	Children []Child
}

// Child is either literal text or a nested node.
type Child struct {
	Text string
	Node *Node
}

// IsText reports whether the child is terminal text.
func (c Child) IsText() bool {
	return c.Node == nil
}

// TextChild builds a literal text child.
func TextChild(text string) Child {
	return Child{Text: text}
}

// NodeChild builds a nested node child.
func NodeChild(n *Node) Child {
	return Child{Node: n}
}

// New creates a node of the given type with optional props.
func New(nodeType string, props map[string]any, children ...Child) *Node {
	if props == nil {
		props = map[string]any{}
	}
	return &Node{Type: nodeType, Props: props, Children: children}
}

// FromValue converts decoded JSON/YAML data into a Node. Maps become nodes
// even when they lack a type so that the resolver can report the missing
// field with its path instead of failing the whole document.
func FromValue(v any) (*Node, error) {
	if n, ok := v.(*Node); ok {
		return n, nil
	}
	m, ok := asStringMap(v)
	if !ok {
		return nil, fmt.Errorf("node must be an object, got %T", v)
	}
	return nodeFromMap(m), nil
}

func nodeFromMap(m map[string]any) *Node {
	n := &Node{Props: make(map[string]any, len(m))}
	if t, ok := m[KeyType].(string); ok {
		n.Type = t
	}
	if id, ok := m[KeyID]; ok && id != nil {
		n.ID = fmt.Sprint(id)
	}
	var nestedChildren any
	if explicit, ok := asStringMap(m[KeyProps]); ok {
		for k, v := range explicit {
			if k == KeyChildren {
				nestedChildren = v
				continue
			}
			n.Props[k] = normalize(v)
		}
	}
	for k, v := range m {
		switch k {
		case KeyType, KeyID, KeyChildren, KeyProps:
			continue
		}
		n.Props[k] = normalize(v)
	}
	// Producers also nest children inside the props object.
	if raw, ok := m[KeyChildren]; ok {
		n.Children = ChildrenFromValue(raw)
	} else if nestedChildren != nil {
		n.Children = ChildrenFromValue(nestedChildren)
	}
	return n
}

// ChildrenFromValue normalises a children value: a single node, a string, or
// an arbitrarily nested array of those all flatten into one ordered list.
func ChildrenFromValue(v any) []Child {
	var out []Child
	var walk func(any)
	walk = func(item any) {
		switch val := item.(type) {
		case nil:
		case string:
			out = append(out, TextChild(val))
		case *Node:
			out = append(out, NodeChild(val))
		case Child:
			out = append(out, val)
		case []Child:
			out = append(out, val...)
		case []any:
			for _, entry := range val {
				walk(entry)
			}
		default:
			if m, ok := asStringMap(val); ok {
				out = append(out, NodeChild(nodeFromMap(m)))
				return
			}
			if s, ok := Text(val); ok {
				out = append(out, TextChild(s))
			}
		}
	}
	walk(v)
	return out
}

// ToValue converts the node back to its inline wire form.
func (n *Node) ToValue() map[string]any {
	if n == nil {
		return nil
	}
	out := make(map[string]any, len(n.Props)+3)
	for k, v := range n.Props {
		out[k] = denormalize(v)
	}
	out[KeyType] = n.Type
	if n.ID != "" {
		out[KeyID] = n.ID
	}
	if len(n.Children) > 0 {
		children := make([]any, 0, len(n.Children))
		for _, c := range n.Children {
			if c.IsText() {
				children = append(children, c.Text)
				continue
			}
			children = append(children, c.Node.ToValue())
		}
		out[KeyChildren] = children
	}
	return out
}

// Has reports whether the prop is present and non-nil.
func (n *Node) Has(key string) bool {
	if n == nil {
		return false
	}
	v, ok := n.Props[key]
	return ok && v != nil
}

// Prop returns the raw prop value.
func (n *Node) Prop(key string) any {
	if n == nil {
		return nil
	}
	return n.Props[key]
}

// String returns a string prop or "" when absent.
func (n *Node) String(key string) string {
	s, _ := Text(n.Prop(key))
	return s
}

// Bool returns a boolean prop and whether it was present.
func (n *Node) Bool(key string) (bool, bool) {
	b, ok := n.Prop(key).(bool)
	return b, ok
}

// PropKeys returns prop names in sorted order.
func (n *Node) PropKeys() []string {
	if n == nil {
		return nil
	}
	keys := make([]string, 0, len(n.Props))
	for k := range n.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnmarshalJSON decodes a node from its JSON wire form. Numbers keep their
// literal text, as they do when a whole document is parsed.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	decoded, err := FromValue(normalize(raw))
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

// MarshalJSON encodes the node in its inline wire form.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.ToValue())
}

// UnmarshalYAML decodes a node from YAML.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	decoded, err := FromValue(raw)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

// MarshalYAML encodes the node in its inline wire form.
func (n *Node) MarshalYAML() (any, error) {
	return n.ToValue(), nil
}
