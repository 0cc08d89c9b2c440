package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Quote renders a block quotation with a left bar and an optional citation.
type Quote struct {
	BaseComponent
	body   []Renderable
	author string
}

// NewQuote creates a quotation around body.
func NewQuote(body ...Renderable) *Quote {
	return &Quote{BaseComponent: NewBaseComponent(), body: body}
}

// View renders the quote.
func (q *Quote) View() string {
	return q.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the quote within the context width.
func (q *Quote) ViewWithContext(ctx RenderContext) string {
	inner := ctx.Shrink(2)
	var parts []string
	for _, child := range q.body {
		if view := viewOf(child, inner); view != "" {
			parts = append(parts, view)
		}
	}
	if q.author != "" {
		parts = append(parts, Faint()(lipgloss.NewStyle(), ctx.Theme).Render("— "+q.author))
	}
	border := lipgloss.Border{Left: ctx.Theme.Glyphs.VerticalRule}
	style := q.ComputeStyle(ctx.Theme).
		Border(border, false, false, false, true).
		PaddingLeft(1)
	style = Italic()(BorderTone(ToneMuted)(style, ctx.Theme), ctx.Theme)
	return style.Render(strings.Join(parts, "\n"))
}

// WithAuthor sets the citation line.
func (q *Quote) WithAuthor(author string) *Quote {
	q.author = author
	return q
}
