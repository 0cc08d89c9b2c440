package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultDividerWidth applies when neither the divider nor the context sets a
// width.
const DefaultDividerWidth = 40

// Divider renders a separator line, optionally with a centred label.
type Divider struct {
	BaseComponent
	char     string
	width    int
	label    string
	vertical bool
}

// NewDivider creates a horizontal divider drawn with the theme rule.
func NewDivider() *Divider {
	return &Divider{BaseComponent: NewBaseComponent()}
}

// View renders the divider.
func (d *Divider) View() string {
	return d.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the divider across the context width.
func (d *Divider) ViewWithContext(ctx RenderContext) string {
	style := Faint()(d.ComputeStyle(ctx.Theme), ctx.Theme)
	if d.vertical {
		char := d.char
		if char == "" {
			char = ctx.Theme.Glyphs.VerticalRule
		}
		return style.Render(char)
	}

	char := d.char
	if char == "" {
		char = ctx.Theme.Glyphs.Rule
	}
	width := d.width
	if width <= 0 {
		width = ctx.Width
	}
	if width <= 0 {
		width = DefaultDividerWidth
	}
	if d.label == "" {
		return style.Render(strings.Repeat(char, width))
	}
	label := " " + d.label + " "
	rest := max(width-lipgloss.Width(label), 2)
	left := rest / 2
	return style.Render(strings.Repeat(char, left) + label + strings.Repeat(char, rest-left))
}

// WithStyleName picks the line character for solid, dashed or dotted lines.
func (d *Divider) WithStyleName(name string) *Divider {
	switch name {
	case "dashed":
		d.char = "-"
	case "dotted":
		d.char = "·"
	}
	return d
}

// WithWidth sets an explicit width.
func (d *Divider) WithWidth(width int) *Divider {
	d.width = width
	return d
}

// WithLabel centres label on the line.
func (d *Divider) WithLabel(label string) *Divider {
	d.label = label
	return d
}

// WithVertical draws a single vertical bar.
func (d *Divider) WithVertical(vertical bool) *Divider {
	d.vertical = vertical
	return d
}
