package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Text is a primitive component for styled, optionally wrapped text.
type Text struct {
	BaseComponent
	content string
	align   Alignment
}

// NewText creates a text component with the given content.
func NewText(content string) *Text {
	return &Text{BaseComponent: NewBaseComponent(), content: content}
}

// View renders the text with its styling.
func (t *Text) View() string {
	return t.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the text, wrapping at the context width.
func (t *Text) ViewWithContext(ctx RenderContext) string {
	style := t.ComputeStyle(ctx.Theme)
	content := t.content
	if ctx.Width > 0 {
		content = ansi.Wordwrap(content, ctx.Width, "")
		if t.align != AlignStart && lipgloss.Width(content) < ctx.Width {
			style = style.Width(ctx.Width).Align(t.align.Position())
		}
	}
	return style.Render(content)
}

// Content returns the text content.
func (t *Text) Content() string {
	return t.content
}

// WithAlign sets the horizontal alignment within the context width.
func (t *Text) WithAlign(align Alignment) *Text {
	t.align = align
	return t
}

// WithAppliers applies theme-based style modifiers.
func (t *Text) WithAppliers(appliers ...StyleFunc) *Text {
	t.AddAppliers(appliers...)
	return t
}

// WithVariant styles the text after a typography variant name.
func (t *Text) WithVariant(variant string) *Text {
	switch variant {
	case "muted", "subtle", "small":
		t.AddAppliers(Faint())
	case "lead", "large":
		t.AddAppliers(Bold())
	case "code":
		t.AddAppliers(Foreground(ToneInfo))
		t.content = "`" + t.content + "`"
	}
	return t
}

// WithWeight applies a font weight name.
func (t *Text) WithWeight(weight string) *Text {
	switch weight {
	case "bold", "semibold", "medium":
		t.AddAppliers(Bold())
	case "light":
		t.AddAppliers(Faint())
	}
	return t
}

// Heading renders a heading; levels 1 and 2 are underlined by a rule.
type Heading struct {
	BaseComponent
	text  string
	level int
}

// NewHeading creates a heading of the given level.
func NewHeading(text string, level int) *Heading {
	h := &Heading{BaseComponent: NewBaseComponent(), text: text, level: level}
	h.AddAppliers(Bold())
	if level <= 2 {
		h.AddAppliers(Foreground(TonePrimary))
	}
	if level >= 5 {
		h.AddAppliers(Faint())
	}
	return h
}

// View renders the heading.
func (h *Heading) View() string {
	return h.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the heading within the context width.
func (h *Heading) ViewWithContext(ctx RenderContext) string {
	text := h.text
	if h.level == 1 {
		text = strings.ToUpper(text)
	}
	if ctx.Width > 0 {
		text = ansi.Wordwrap(text, ctx.Width, "")
	}
	out := h.ComputeStyle(ctx.Theme).Render(text)
	if h.level <= 2 {
		rule := ctx.Theme.Glyphs.Rule
		if h.level == 1 {
			rule = "═"
			if ctx.Theme.Name == "plain" {
				rule = "="
			}
		}
		out += "\n" + strings.Repeat(rule, lipgloss.Width(text))
	}
	return out
}
