package components

import "github.com/charmbracelet/lipgloss"

// Badge is a small status indicator.
type Badge struct {
	BaseComponent
	text    string
	tone    Tone
	outline bool
}

// NewBadge creates a badge.
func NewBadge(text string) *Badge {
	return &Badge{BaseComponent: NewBaseComponent(), text: text, tone: ToneDefault}
}

// View renders the badge.
func (b *Badge) View() string {
	return b.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the badge with the given theme context.
func (b *Badge) ViewWithContext(ctx RenderContext) string {
	style := b.ComputeStyle(ctx.Theme)
	if b.outline || ctx.Theme.Tone(b.tone).isZero() {
		return style.Render("[" + b.text + "]")
	}
	return Filled(b.tone)(style.Padding(0, 1), ctx.Theme).Render(b.text)
}

// WithVariant sets the tone from a wire variant name.
func (b *Badge) WithVariant(variant string) *Badge {
	b.tone = ToneFor(variant)
	b.outline = variant == "outline"
	if variant == "" || variant == "default" {
		b.tone = TonePrimary
	}
	return b
}

// WithStyle sets the badge style.
func (b *Badge) WithStyle(style lipgloss.Style) *Badge {
	b.SetStyle(style)
	return b
}

// Text returns the badge text.
func (b *Badge) Text() string {
	return b.text
}
