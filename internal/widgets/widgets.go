// Package widgets holds the strategies for every built-in component type.
// Strategies decode their props, bind controllers through the resolver
// context and return host-neutral render elements; they never draw.
package widgets

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/sdui/internal/registry"
	"github.com/alexisbeaulieu97/sdui/internal/render"
	"github.com/alexisbeaulieu97/sdui/internal/responsive"
	"github.com/alexisbeaulieu97/sdui/internal/spec"
	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
)

// entry pairs a type name with its strategy.
type entry struct {
	name     string
	strategy registry.Strategy
}

// defaults lists the built-in strategies in registration order.
func defaults() []entry {
	var out []entry
	out = append(out, layoutEntries()...)
	out = append(out, contentEntries()...)
	out = append(out, inputEntries()...)
	out = append(out,
		entry{"Table", tableStrategy()},
		entry{"DataTable", dataTableStrategy()},
		entry{"Menubar", menubarStrategy()},
		entry{"menubar", menubarStrategy()},
	)
	return out
}

// RegisterDefaults registers every built-in component type on reg.
func RegisterDefaults(reg *registry.Registry) error {
	for _, e := range defaults() {
		if err := reg.Register(e.name, e.strategy); err != nil {
			return err
		}
	}
	return nil
}

// propAliases maps alternative wire names onto the canonical prop names.
var propAliases = map[string]string{
	"onCheckedChangeAction":   "onCheckedChange",
	"onValueChangeAction":     "onValueChange",
	"onClickAction":           "onClick",
	"onSelectionChangeAction": "onSelectionChange",
}

// canonical returns n with aliased props renamed. Canonical names win over
// their aliases.
func canonical(n *spec.Node) *spec.Node {
	renamed := false
	for alias := range propAliases {
		if n.Has(alias) {
			renamed = true
			break
		}
	}
	if !renamed {
		return n
	}
	out := &spec.Node{Type: n.Type, ID: n.ID, Children: n.Children, Props: make(map[string]any, len(n.Props))}
	for k, v := range n.Props {
		out.Props[k] = v
	}
	for alias, name := range propAliases {
		v, ok := out.Props[alias]
		if !ok {
			continue
		}
		delete(out.Props, alias)
		if _, exists := out.Props[name]; !exists {
			out.Props[name] = v
		}
	}
	return out
}

// decode maps the node's props onto out.
func decode(c registry.Context, n *spec.Node, out any) error {
	return spec.DecodeProps(canonical(n), c.Path(), out)
}

// fieldError builds a schema error for a prop of the node being resolved;
// the resolver fills in the path.
func fieldError(field, format string, args ...any) error {
	return sduierrors.NewSchemaError("", "", field, fmt.Sprintf(format, args...), nil)
}

// spacing resolves a spacing prop, reporting the prop on failure.
func spacing(c registry.Context, n *spec.Node, field string, fallback int) (int, error) {
	v := n.Prop(field)
	if v == nil {
		return fallback, nil
	}
	cells, err := responsive.Spacing(v, c.Breakpoint())
	if err != nil {
		return 0, fieldError(field, "%v", err)
	}
	return cells, nil
}

// firstSpacing resolves the first present prop among fields.
func firstSpacing(c registry.Context, n *spec.Node, fallback int, fields ...string) (int, error) {
	for _, field := range fields {
		if n.Has(field) {
			return spacing(c, n, field, fallback)
		}
	}
	return fallback, nil
}

// oneOf validates a string prop against allowed values.
func oneOf(n *spec.Node, field, fallback string, allowed ...string) (string, error) {
	v := n.String(field)
	if v == "" {
		return fallback, nil
	}
	for _, candidate := range allowed {
		if v == candidate {
			return v, nil
		}
	}
	return "", fieldError(field, "must be one of %s, got %q", strings.Join(allowed, ", "), v)
}

// flag reads a boolean prop that producers also send as "true"/"false".
func flag(n *spec.Node, field string, fallback bool) bool {
	switch v := n.Prop(field).(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(v) {
		case "true", "wrap", "yes":
			return true
		case "false", "nowrap", "no":
			return false
		}
	}
	return fallback
}

// textOrChildren resolves the node's children, or the first present text
// prop among fields when it has none.
func textOrChildren(c registry.Context, n *spec.Node, fields ...string) []*render.Element {
	if len(n.Children) > 0 {
		return c.Children()
	}
	for _, field := range fields {
		if v := n.Prop(field); v != nil {
			if el := c.Content(v, c.Path().Field(field)); el != nil {
				return []*render.Element{el}
			}
		}
	}
	return nil
}

// plainText flattens static text from a spec subtree without resolving it.
func plainText(n *spec.Node) string {
	var b strings.Builder
	var walk func(children []spec.Child)
	walk = func(children []spec.Child) {
		for _, child := range children {
			if child.IsText() {
				b.WriteString(child.Text)
				continue
			}
			walk(child.Node.Children)
		}
	}
	walk(n.Children)
	return b.String()
}

// attrs builds an element prop map, dropping empty strings and nil values.
func attrs(kv ...any) map[string]any {
	out := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		switch v := kv[i+1].(type) {
		case nil:
			continue
		case string:
			if v == "" {
				continue
			}
		}
		out[key] = kv[i+1]
	}
	return out
}
