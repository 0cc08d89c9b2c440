package widgets

import (
	"math"

	"github.com/alexisbeaulieu97/sdui/internal/registry"
	"github.com/alexisbeaulieu97/sdui/internal/render"
	"github.com/alexisbeaulieu97/sdui/internal/spec"
)

func contentEntries() []entry {
	return []entry{
		{"Text", registry.Func(registry.Metadata{Description: "inline or block text"}, resolveText)},
		{"Heading", registry.Func(registry.Metadata{Description: "heading of level 1 to 6"}, resolveHeading)},
		{"Label", registry.Func(registry.Metadata{Description: "form label"}, resolveLabel)},
		{"Badge", registry.Func(registry.Metadata{Description: "status badge"}, resolveBadge)},
		{"Blockquote", registry.Func(registry.Metadata{Description: "quotation with an optional citation"}, resolveBlockquote)},
		{"Separator", registry.Func(registry.Metadata{Description: "horizontal or vertical rule"}, resolveSeparator)},
		{"Spacer", registry.Func(registry.Metadata{Description: "empty space"}, resolveSpacer)},
		{"Alert", registry.Func(registry.Metadata{Description: "callout with a title and description"}, resolveAlert)},
		{"Card", registry.Func(registry.Metadata{Description: "bordered content group"}, resolveCard)},
		{"CardHeader", passthrough("card header section")},
		{"CardTitle", passthrough("card title")},
		{"CardDescription", passthrough("card description")},
		{"CardContent", passthrough("card body")},
		{"CardFooter", passthrough("card footer")},
		{"Progress", registry.Func(registry.Metadata{Description: "progress bar"}, resolveProgress)},
	}
}

// passthrough resolves a structural part whose only job is to group its
// children under its own type.
func passthrough(description string) registry.Strategy {
	return registry.Func(registry.Metadata{Description: description}, func(c registry.Context, n *spec.Node) (*render.Element, error) {
		return &render.Element{
			Props:    attrs("align", n.String("align")),
			Children: textOrChildren(c, n, "text"),
		}, nil
	})
}

func resolveText(c registry.Context, n *spec.Node) (*render.Element, error) {
	variant, err := oneOf(n, "variant", "default", "default", "muted", "lead", "large", "small", "code", "subtle")
	if err != nil {
		return nil, err
	}
	align, err := oneOf(n, "align", "", "left", "center", "right")
	if err != nil {
		return nil, err
	}
	return &render.Element{
		Props: attrs(
			"variant", variant,
			"weight", n.String("weight"),
			"color", n.String("color"),
			"align", align,
		),
		Children: textOrChildren(c, n, "text", "content"),
	}, nil
}

func resolveHeading(c registry.Context, n *spec.Node) (*render.Element, error) {
	level := 2
	if v := n.Prop("level"); v != nil {
		parsed, ok := spec.Int(v)
		if !ok || parsed < 1 || parsed > 6 {
			return nil, fieldError("level", "must be an integer from 1 to 6, got %v", v)
		}
		level = parsed
	}
	align, err := oneOf(n, "align", "", "left", "center", "right")
	if err != nil {
		return nil, err
	}
	return &render.Element{
		Props:    attrs("level", level, "align", align),
		Children: textOrChildren(c, n, "text", "content"),
	}, nil
}

func resolveLabel(c registry.Context, n *spec.Node) (*render.Element, error) {
	el := &render.Element{
		Props:    attrs("helperText", n.String("helperText"), "htmlFor", n.String("htmlFor")),
		Children: textOrChildren(c, n, "text"),
	}
	if flag(n, "required", false) && flag(n, "showRequiredIndicator", true) {
		el.Props["required"] = true
	}
	return el, nil
}

func resolveBadge(c registry.Context, n *spec.Node) (*render.Element, error) {
	if !flag(n, "visible", true) {
		return &render.Element{Type: render.TypeFragment}, nil
	}
	variant, err := oneOf(n, "variant", "default",
		"default", "secondary", "outline", "destructive", "success", "warning")
	if err != nil {
		return nil, err
	}
	return &render.Element{
		Props:    attrs("variant", variant, "size", n.String("size")),
		Children: textOrChildren(c, n, "text"),
	}, nil
}

func resolveBlockquote(c registry.Context, n *spec.Node) (*render.Element, error) {
	el := &render.Element{
		Props:    attrs("cite", n.String("cite")),
		Children: textOrChildren(c, n, "text", "quote"),
	}
	if author := c.Content(n.Prop("author"), c.Path().Field("author")); author != nil {
		el.Props["author"] = author.TextContent()
	}
	return el, nil
}

func resolveSeparator(c registry.Context, n *spec.Node) (*render.Element, error) {
	orientation, err := oneOf(n, "orientation", "horizontal", "horizontal", "vertical")
	if err != nil {
		return nil, err
	}
	lineStyle, err := oneOf(n, "lineStyle", "solid", "solid", "dashed", "dotted")
	if err != nil {
		return nil, err
	}
	margin, err := spacing(c, n, "margin", 0)
	if err != nil {
		return nil, err
	}
	el := &render.Element{Props: attrs("orientation", orientation, "lineStyle", lineStyle, "margin", margin)}
	if label := n.String("labelText"); label != "" && flag(n, "withLabel", true) {
		el.Props["label"] = label
	} else if label := n.String("label"); label != "" {
		el.Props["label"] = label
	}
	return el, nil
}

func resolveSpacer(c registry.Context, n *spec.Node) (*render.Element, error) {
	size, err := firstSpacing(c, n, 1, "size", "height", "h")
	if err != nil {
		return nil, err
	}
	axis, err := oneOf(n, "axis", "vertical", "vertical", "horizontal")
	if err != nil {
		return nil, err
	}
	return &render.Element{Props: attrs("size", size, "axis", axis)}, nil
}

func resolveAlert(c registry.Context, n *spec.Node) (*render.Element, error) {
	variant, err := oneOf(n, "variant", "default", "default", "destructive", "success", "warning", "info")
	if err != nil {
		return nil, err
	}
	el := &render.Element{
		Props:    attrs("variant", variant, "icon", n.String("icon")),
		Children: textOrChildren(c, n, "description"),
	}
	if title := c.Content(n.Prop("title"), c.Path().Field("title")); title != nil {
		el.Props["title"] = title.TextContent()
	}
	if len(n.Children) > 0 {
		if description := c.Content(n.Prop("description"), c.Path().Field("description")); description != nil {
			el.Children = append([]*render.Element{description}, el.Children...)
		}
	}
	return el, nil
}

func resolveCard(c registry.Context, n *spec.Node) (*render.Element, error) {
	padding, err := spacing(c, n, "padding", 1)
	if err != nil {
		return nil, err
	}
	el := &render.Element{
		Props: attrs(
			"title", n.String("title"),
			"description", n.String("description"),
			"padding", padding,
		),
		Children: c.Children(),
	}
	if flag(n, "bordered", true) {
		el.Props["bordered"] = true
	}
	if flag(n, "selected", false) {
		el.Props["selected"] = true
	}
	return el, nil
}

func resolveProgress(c registry.Context, n *spec.Node) (*render.Element, error) {
	maximum := 100.0
	if v := n.Prop("max"); v != nil {
		parsed, ok := spec.Number(v)
		if !ok || parsed <= 0 {
			return nil, fieldError("max", "must be a positive number, got %v", v)
		}
		maximum = parsed
	}
	value := 0.0
	if v := n.Prop("value"); v != nil {
		parsed, ok := spec.Number(v)
		if !ok {
			return nil, fieldError("value", "must be a number, got %v", v)
		}
		value = parsed
	}
	value = math.Max(0, math.Min(value, maximum))
	return &render.Element{
		Props: attrs(
			"value", value,
			"max", maximum,
			"percent", value/maximum,
			"label", n.String("label"),
			"showValue", flag(n, "showValue", false),
		),
	}, nil
}
