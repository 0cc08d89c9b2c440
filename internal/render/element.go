// Package render defines the resolved UI tree handed from the interpreter to
// a host toolkit.
package render

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/sdui/internal/spec"
)

// Reserved element types that never collide with registered component types.
const (
	TypeText     = "#text"
	TypeFragment = "#fragment"
	TypeBroken   = "#broken"
)

// Element is one resolved node. Props hold scalar presentation values after
// responsive resolution; View holds the state snapshot of a stateful widget.
type Element struct {
	Type     string
	Key      string
	Path     string
	Props    map[string]any
	Text     string
	Children []*Element
	View     any
	Err      error
}

// NewText builds a terminal text element.
func NewText(path spec.Path, text string) *Element {
	return &Element{Type: TypeText, Path: path.String(), Text: text}
}

// NewBroken builds the placeholder rendered in place of a failing subtree.
func NewBroken(path spec.Path, nodeType string, err error) *Element {
	return &Element{
		Type:  TypeBroken,
		Path:  path.String(),
		Props: map[string]any{"nodeType": nodeType},
		Err:   err,
	}
}

// IsBroken reports whether the element is a failure placeholder.
func (e *Element) IsBroken() bool {
	return e != nil && e.Type == TypeBroken
}

// Prop returns a raw prop value.
func (e *Element) Prop(key string) any {
	if e == nil || e.Props == nil {
		return nil
	}
	return e.Props[key]
}

// String returns a prop rendered as text.
func (e *Element) String(key string) string {
	s, _ := spec.Text(e.Prop(key))
	return s
}

// Bool returns a boolean prop, false when absent.
func (e *Element) Bool(key string) bool {
	b, _ := e.Prop(key).(bool)
	return b
}

// Int returns an integer prop, or fallback when absent or not integral.
func (e *Element) Int(key string, fallback int) int {
	if n, ok := spec.Int(e.Prop(key)); ok {
		return n
	}
	return fallback
}

// Walk visits the element and its descendants depth-first. Returning false
// from fn skips the element's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if e == nil {
		return
	}
	if !fn(e) {
		return
	}
	for _, child := range e.Children {
		child.Walk(fn)
	}
}

// Find returns the first element whose key matches.
func (e *Element) Find(key string) *Element {
	var found *Element
	e.Walk(func(el *Element) bool {
		if found != nil {
			return false
		}
		if el.Key == key {
			found = el
			return false
		}
		return true
	})
	return found
}

// FindType returns every element of the given type in tree order.
func (e *Element) FindType(elementType string) []*Element {
	var out []*Element
	e.Walk(func(el *Element) bool {
		if el.Type == elementType {
			out = append(out, el)
		}
		return true
	})
	return out
}

// Broken returns every failure placeholder in tree order.
func (e *Element) Broken() []*Element {
	return e.FindType(TypeBroken)
}

// TextContent concatenates all descendant text.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.Walk(func(el *Element) bool {
		if el.Type == TypeText {
			b.WriteString(el.Text)
		}
		return true
	})
	return b.String()
}

// PropKeys returns prop names in sorted order.
func (e *Element) PropKeys() []string {
	if e == nil {
		return nil
	}
	keys := make([]string, 0, len(e.Props))
	for k := range e.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type elementJSON struct {
	Type     string         `json:"type"`
	Key      string         `json:"key,omitempty"`
	Path     string         `json:"path"`
	Props    map[string]any `json:"props,omitempty"`
	Text     string         `json:"text,omitempty"`
	Children []*Element     `json:"children,omitempty"`
	View     any            `json:"view,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// MarshalJSON encodes the element with its error flattened to text.
func (e *Element) MarshalJSON() ([]byte, error) {
	out := elementJSON{
		Type:     e.Type,
		Key:      e.Key,
		Path:     e.Path,
		Props:    e.Props,
		Text:     e.Text,
		Children: e.Children,
		View:     e.View,
	}
	if e.Err != nil {
		out.Error = e.Err.Error()
	}
	return json.Marshal(out)
}
