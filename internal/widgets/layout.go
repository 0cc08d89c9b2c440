package widgets

import (
	"strings"

	"github.com/alexisbeaulieu97/sdui/internal/registry"
	"github.com/alexisbeaulieu97/sdui/internal/render"
	"github.com/alexisbeaulieu97/sdui/internal/responsive"
	"github.com/alexisbeaulieu97/sdui/internal/spec"
)

// Layout directions written to the "direction" prop.
const (
	DirectionRow    = "row"
	DirectionColumn = "column"
)

// containerWidths maps Container maxWidth tokens onto terminal columns.
// Zero means unbounded.
var containerWidths = map[string]int{
	"xs":   32,
	"sm":   40,
	"md":   64,
	"lg":   80,
	"xl":   100,
	"2xl":  120,
	"full": 0,
	"none": 0,
}

// layoutKind describes how one layout type reads its props.
type layoutKind struct {
	description string
	direction   string
	gapFields   []string
	gap         int
	wrap        bool
	center      bool
	grid        bool
	columnProps []string
}

func layoutEntries() []entry {
	kinds := map[string]layoutKind{
		"Box": {
			description: "generic container with padding and an optional border",
			direction:   DirectionColumn,
		},
		"Stack": {
			description: "vertical stack with a gap",
			direction:   DirectionColumn,
			gapFields:   []string{"gap", "spacing"},
			gap:         1,
		},
		"Flex": {
			description: "flexbox row or column",
			direction:   DirectionRow,
			gapFields:   []string{"gap"},
		},
		"Group": {
			description: "horizontal group that wraps",
			direction:   DirectionRow,
			gapFields:   []string{"gap", "spacing"},
			gap:         1,
			wrap:        true,
		},
		"Container": {
			description: "width-constrained column",
			direction:   DirectionColumn,
		},
		"Center": {
			description: "centres its children",
			direction:   DirectionColumn,
			center:      true,
		},
		"SimpleGrid": {
			description: "equal-width grid with a responsive column count",
			direction:   DirectionRow,
			gapFields:   []string{"spacing", "gap"},
			gap:         1,
			grid:        true,
			columnProps: []string{"cols", "columns"},
		},
		"Grid": {
			description: "grid with a responsive column count",
			direction:   DirectionRow,
			gapFields:   []string{"gap", "spacing"},
			grid:        true,
			columnProps: []string{"columns", "cols"},
		},
	}

	order := []string{"Box", "Stack", "Flex", "Group", "Container", "Center", "SimpleGrid", "Grid"}
	out := make([]entry, 0, len(order))
	for _, name := range order {
		out = append(out, entry{name, layoutStrategy(name, kinds[name])})
	}
	return out
}

func layoutStrategy(name string, kind layoutKind) registry.Strategy {
	return registry.Func(registry.Metadata{Description: kind.description}, func(c registry.Context, n *spec.Node) (*render.Element, error) {
		direction, err := oneOf(n, "direction", kind.direction, "row", "row-reverse", "column", "column-reverse")
		if err != nil {
			return nil, err
		}
		gap, err := layoutGap(c, n, kind)
		if err != nil {
			return nil, err
		}
		padding, err := firstSpacing(c, n, 0, "padding", "p")
		if err != nil {
			return nil, err
		}
		align, err := oneOf(n, "align", "", "start", "end", "center", "baseline", "stretch")
		if err != nil {
			return nil, err
		}
		justify, err := justifyValue(n)
		if err != nil {
			return nil, err
		}

		el := &render.Element{
			Props: attrs(
				"direction", direction,
				"gap", gap,
				"padding", padding,
				"align", align,
				"justify", justify,
			),
			Children: c.Children(),
		}
		if flag(n, "wrap", kind.wrap) {
			el.Props["wrap"] = true
		}
		if kind.center || flag(n, "centerContent", false) {
			el.Props["center"] = true
		}
		if name == "Box" && (flag(n, "border", false) || n.Has("borderWidth")) {
			el.Props["border"] = true
		}
		if name == "Container" {
			width, err := containerWidth(n)
			if err != nil {
				return nil, err
			}
			if width > 0 {
				el.Props["maxWidth"] = width
			}
		}
		if kind.grid {
			columns, err := gridColumns(c, n, kind.columnProps)
			if err != nil {
				return nil, err
			}
			el.Props["columns"] = columns
		}
		return el, nil
	})
}

// layoutGap reads the gap, accepting Grid's {column,row} object form.
func layoutGap(c registry.Context, n *spec.Node, kind layoutKind) (int, error) {
	for _, field := range kind.gapFields {
		v := n.Prop(field)
		if v == nil {
			continue
		}
		if m, ok := spec.Map(v); ok && !responsive.IsBreakpointMap(v) {
			v = m["column"]
			if v == nil {
				v = m["row"]
			}
		}
		cells, err := responsive.Spacing(v, c.Breakpoint())
		if err != nil {
			return 0, fieldError(field, "%v", err)
		}
		return cells, nil
	}
	return kind.gap, nil
}

func justifyValue(n *spec.Node) (string, error) {
	v, err := oneOf(n, "justify", "", "start", "end", "center",
		"between", "space-between", "around", "space-around", "evenly", "space-evenly")
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(v, "space-"), nil
}

func containerWidth(n *spec.Node) (int, error) {
	v := n.Prop("maxWidth")
	if v == nil {
		return containerWidths["lg"], nil
	}
	if s, ok := v.(string); ok {
		if width, known := containerWidths[strings.ToLower(s)]; known {
			return width, nil
		}
	}
	width, ok := spec.Int(v)
	if !ok || width < 0 {
		return 0, fieldError("maxWidth", "must be a size token or a column count, got %v", v)
	}
	return width, nil
}

func gridColumns(c registry.Context, n *spec.Node, fields []string) (int, error) {
	for _, field := range fields {
		v := n.Prop(field)
		if v == nil {
			continue
		}
		columns, err := responsive.PositiveInt(v, c.Breakpoint())
		if err != nil {
			return 0, fieldError(field, "%v", err)
		}
		return columns, nil
	}
	return 1, nil
}
