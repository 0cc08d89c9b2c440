package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Card is a bordered content group with an optional title and description.
type Card struct {
	BaseComponent
	title       string
	description string
	body        []Renderable
	padding     int
	bordered    bool
	selected    bool
	tone        Tone
	width       int
}

// NewCard creates a bordered card around body.
func NewCard(body ...Renderable) *Card {
	return &Card{BaseComponent: NewBaseComponent(), body: body, padding: 1, bordered: true}
}

// View renders the card.
func (c *Card) View() string {
	return c.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the card filling the context width when bounded.
func (c *Card) ViewWithContext(ctx RenderContext) string {
	frame := 2 * c.padding
	if c.bordered {
		frame += 2
	}
	width := c.width
	if width == 0 {
		width = ctx.Width
	}
	inner := ctx.WithWidth(0)
	if width > 0 {
		inner = ctx.WithWidth(max(width-frame, 1))
	}

	var parts []string
	if c.title != "" {
		parts = append(parts, NewText(c.title).WithAppliers(Bold()).ViewWithContext(inner))
	}
	if c.description != "" {
		parts = append(parts, NewText(c.description).WithAppliers(Faint()).ViewWithContext(inner))
	}
	for _, child := range c.body {
		if view := viewOf(child, inner); view != "" {
			parts = append(parts, view)
		}
	}

	style := c.ComputeStyle(ctx.Theme).Padding(0, c.padding)
	if c.bordered {
		border := ctx.Theme.Borders.Rounded
		if c.selected {
			border = ctx.Theme.Borders.Thick
		}
		style = style.Border(border)
		tone := c.tone
		if c.selected && tone == ToneDefault {
			tone = TonePrimary
		}
		style = BorderTone(tone)(style, ctx.Theme)
	}
	if width > 0 {
		style = style.Width(width - boolInt(c.bordered)*2)
	}
	return style.Render(strings.Join(parts, "\n"))
}

// WithTitle sets the card title.
func (c *Card) WithTitle(title string) *Card {
	c.title = title
	return c
}

// WithDescription sets the line under the title.
func (c *Card) WithDescription(description string) *Card {
	c.description = description
	return c
}

// WithPadding sets the horizontal padding inside the border.
func (c *Card) WithPadding(padding int) *Card {
	c.padding = max(padding, 0)
	return c
}

// WithBorder toggles the border.
func (c *Card) WithBorder(bordered bool) *Card {
	c.bordered = bordered
	return c
}

// WithSelected draws the card highlighted.
func (c *Card) WithSelected(selected bool) *Card {
	c.selected = selected
	return c
}

// WithTone colours the border.
func (c *Card) WithTone(tone Tone) *Card {
	c.tone = tone
	return c
}

// WithWidth fixes the outer width.
func (c *Card) WithWidth(width int) *Card {
	c.width = width
	return c
}

// WithStyle sets the card style.
func (c *Card) WithStyle(style lipgloss.Style) *Card {
	c.SetStyle(style)
	return c
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
