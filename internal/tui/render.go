package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/sdui/internal/controller"
	"github.com/alexisbeaulieu97/sdui/internal/render"
	"github.com/alexisbeaulieu97/sdui/internal/ui/components"
	"github.com/alexisbeaulieu97/sdui/internal/widgets"
)

// Focus identifies the interactive element under the cursor. Index selects
// a part of it: a radio option, slider handle, table row or menu item.
type Focus struct {
	Key    string
	Index  int
	Column int
	// Value is the radio option under the cursor.
	Value string
	// Path is the highlighted menu item.
	Path []int
	// FilterView replaces the DataTable filter line while it is edited.
	FilterView string
}

// Renderer draws a resolved element tree with lipgloss components.
type Renderer struct {
	theme components.Theme
	width int
	focus Focus
}

// NewRenderer creates a renderer for a terminal of width columns; zero means
// unbounded.
func NewRenderer(theme components.Theme, width int) *Renderer {
	return &Renderer{theme: theme, width: width}
}

// WithFocus returns a copy of the renderer that highlights focus.
func (r *Renderer) WithFocus(focus Focus) *Renderer {
	cp := *r
	cp.focus = focus
	return &cp
}

// Render draws el and its subtree.
func (r *Renderer) Render(el *render.Element) string {
	ctx := components.DefaultContext().WithTheme(r.theme).WithWidth(r.width)
	return r.draw(el, ctx)
}

// node adapts an element to the component tree so layout widths flow down.
type node struct {
	r  *Renderer
	el *render.Element
}

func (n node) View() string {
	return n.r.Render(n.el)
}

func (n node) ViewWithContext(ctx components.RenderContext) string {
	return n.r.draw(n.el, ctx)
}

func (r *Renderer) nodes(children []*render.Element) []components.Renderable {
	out := make([]components.Renderable, 0, len(children))
	for _, child := range children {
		out = append(out, node{r: r, el: child})
	}
	return out
}

func (r *Renderer) focused(el *render.Element) bool {
	return el.Key != "" && el.Key == r.focus.Key
}

func (r *Renderer) draw(el *render.Element, ctx components.RenderContext) string {
	if el == nil {
		return ""
	}
	switch el.Type {
	case render.TypeText:
		return components.NewText(el.Text).ViewWithContext(ctx)
	case render.TypeFragment:
		return r.inline(el.Children, ctx)
	case render.TypeBroken:
		return r.broken(el, ctx)

	case "Box", "Stack", "Flex", "Group", "Container", "Center", "SimpleGrid", "Grid":
		return r.layout(el).ViewWithContext(ctx)

	case "Text":
		return components.NewText(r.text(el, ctx)).
			WithVariant(el.String("variant")).
			WithWeight(el.String("weight")).
			WithAlign(components.ParseAlignment(el.String("align"))).
			WithAppliers(components.Foreground(components.ToneFor(el.String("color")))).
			ViewWithContext(ctx)
	case "Heading":
		return components.NewHeading(r.text(el, ctx), el.Int("level", 2)).ViewWithContext(ctx)
	case "Label":
		return r.label(el, ctx)
	case "Badge":
		return components.NewBadge(r.text(el, ctx)).WithVariant(el.String("variant")).ViewWithContext(ctx)
	case "Blockquote":
		return components.NewQuote(r.nodes(el.Children)...).WithAuthor(el.String("author")).ViewWithContext(ctx)
	case "Separator":
		return components.NewDivider().
			WithStyleName(el.String("lineStyle")).
			WithLabel(el.String("label")).
			WithVertical(el.String("orientation") == "vertical").
			ViewWithContext(ctx)
	case "Spacer":
		spacer := components.NewSpacer(el.Int("size", 1))
		if el.String("axis") == "horizontal" {
			spacer.Horizontal()
		}
		return spacer.View()
	case "Alert":
		return components.NewAlert(r.nodes(el.Children)...).
			WithVariant(el.String("variant")).
			WithTitle(el.String("title")).
			WithIcon(el.String("icon")).
			ViewWithContext(ctx)
	case "Card":
		return components.NewCard(r.nodes(el.Children)...).
			WithTitle(el.String("title")).
			WithDescription(el.String("description")).
			WithPadding(el.Int("padding", 1)).
			WithBorder(el.Bool("bordered")).
			WithSelected(el.Bool("selected")).
			ViewWithContext(ctx)
	case "CardTitle":
		return components.NewText(r.text(el, ctx)).WithAppliers(components.Bold()).ViewWithContext(ctx)
	case "CardDescription":
		return components.NewText(r.text(el, ctx)).WithVariant("muted").ViewWithContext(ctx)
	case "CardHeader", "CardContent", "CardFooter":
		return components.VStack(r.nodes(el.Children)...).
			WithAlign(components.ParseAlignment(el.String("align"))).
			ViewWithContext(ctx)
	case "Progress":
		percent, _ := el.Prop("percent").(float64)
		return components.NewProgress(percent).
			WithLabel(el.String("label")).
			WithValue(el.Bool("showValue")).
			ViewWithContext(ctx)

	case "Button":
		return components.NewButton(el.String("label")).
			WithVariant(el.String("variant")).
			WithDisabled(el.Bool("disabled")).
			WithLoading(el.Bool("loading")).
			WithFocus(r.focused(el)).
			ViewWithContext(ctx)
	case "Checkbox", "Switch":
		return r.toggle(el, ctx)
	case "RadioGroup":
		return r.radioGroup(el, ctx)
	case "RadioGroupItem":
		return r.radioItem(el, ctx)
	case "Slider":
		return r.slider(el, ctx)
	case "Table":
		return r.table(el, ctx)
	case "DataTable":
		return r.dataTable(el, ctx)
	case "Menubar":
		return r.menubar(el, ctx)
	}
	return r.inline(el.Children, ctx)
}

// inline concatenates text runs and stacks anything else.
func (r *Renderer) inline(children []*render.Element, ctx components.RenderContext) string {
	if len(children) == 0 {
		return ""
	}
	allText := true
	for _, child := range children {
		if child.Type != render.TypeText {
			allText = false
			break
		}
	}
	if allText {
		var b strings.Builder
		for _, child := range children {
			b.WriteString(child.Text)
		}
		return components.NewText(b.String()).ViewWithContext(ctx)
	}
	return components.VStack(r.nodes(children)...).ViewWithContext(ctx)
}

// text flattens the children of a text-like element.
func (r *Renderer) text(el *render.Element, ctx components.RenderContext) string {
	if text := el.TextContent(); text != "" || len(el.Children) == 0 {
		return text
	}
	return r.inline(el.Children, ctx)
}

func (r *Renderer) broken(el *render.Element, ctx components.RenderContext) string {
	msg := "unavailable"
	if el.Err != nil {
		msg = el.Err.Error()
	}
	label := "⚠ "
	if nodeType := el.String("nodeType"); nodeType != "" {
		label += nodeType + ": "
	}
	return components.NewText(label + msg).
		WithAppliers(components.Foreground(components.ToneDanger)).
		ViewWithContext(ctx)
}

func (r *Renderer) layout(el *render.Element) *components.Stack {
	children := r.nodes(el.Children)
	direction := el.String("direction")
	if strings.HasSuffix(direction, "-reverse") {
		slices.Reverse(children)
	}
	stack := components.NewStack(children...).
		WithGap(el.Int("gap", 0)).
		WithPadding(el.Int("padding", 0)).
		WithBorder(el.Bool("border")).
		WithAlign(components.ParseAlignment(el.String("align"))).
		WithJustify(components.ParseJustify(el.String("justify"))).
		WithWrap(el.Bool("wrap")).
		WithCenter(el.Bool("center")).
		WithMaxWidth(el.Int("maxWidth", 0))
	if strings.HasPrefix(direction, widgets.DirectionRow) {
		stack.WithDirection(components.DirectionHorizontal)
	}
	if columns := el.Int("columns", 0); columns > 0 {
		stack.WithColumns(columns)
	}
	return stack
}

func (r *Renderer) label(el *render.Element, ctx components.RenderContext) string {
	text := r.text(el, ctx)
	if el.Bool("required") {
		text += " *"
	}
	out := components.NewText(text).WithAppliers(components.Bold()).ViewWithContext(ctx)
	if helper := el.String("helperText"); helper != "" {
		out += "\n" + components.NewText(helper).WithVariant("muted").ViewWithContext(ctx)
	}
	return out
}

func (r *Renderer) toggle(el *render.Element, ctx components.RenderContext) string {
	view, _ := el.View.(controller.ToggleView)
	kind := components.ControlCheckbox
	if el.Type == "Switch" {
		kind = components.ControlSwitch
	}
	return components.NewControl(kind, el.String("label"), view.Checked).
		WithDisabled(view.Disabled).
		WithFocus(r.focused(el)).
		ViewWithContext(ctx)
}

func (r *Renderer) radioGroup(el *render.Element, ctx components.RenderContext) string {
	view, _ := el.View.(controller.RadioView)
	var items []components.Renderable
	if len(el.FindType("RadioGroupItem")) > 0 {
		items = r.nodes(el.Children)
	} else {
		for _, opt := range view.Options {
			label := opt.Label
			if label == "" {
				label = opt.Value
			}
			items = append(items, components.NewControl(components.ControlRadio, label, opt.Selected).
				WithDisabled(view.Disabled || opt.Disabled).
				WithFocus(r.focused(el) && r.focus.Value == opt.Value))
		}
	}
	stack := components.VStack(items...)
	if el.String("orientation") == "horizontal" {
		stack = components.HStack(items...).WithGap(2)
	}
	return stack.ViewWithContext(ctx)
}

func (r *Renderer) radioItem(el *render.Element, ctx components.RenderContext) string {
	label := el.String("label")
	if label == "" {
		label = el.String("value")
	}
	group := el.String("group")
	focused := group != "" && group == r.focus.Key && r.focus.Value == el.String("value")
	return components.NewControl(components.ControlRadio, label, el.Bool("selected")).
		WithDisabled(el.Bool("disabled")).
		WithFocus(focused).
		ViewWithContext(ctx)
}

func (r *Renderer) slider(el *render.Element, ctx components.RenderContext) string {
	view, _ := el.View.(controller.SliderView)
	bar := components.NewSlider(view.Min, view.Max, view.Values...).
		WithFocus(r.focused(el), r.focus.Index)
	out := bar.ViewWithContext(ctx)
	if label := el.String("label"); label != "" {
		out = label + "\n" + out
	}
	return out
}

// cellText renders an element inline, collapsing it to one line.
func (r *Renderer) cellText(el *render.Element) string {
	if el == nil {
		return ""
	}
	view := r.draw(el, components.DefaultContext().WithTheme(r.theme))
	return strings.Join(strings.Fields(strings.ReplaceAll(view, "\n", " ")), " ")
}

func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func joinLines(parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}
