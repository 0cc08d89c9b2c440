package components

import "strings"

// Alert is a callout with an icon, an optional title and a body.
type Alert struct {
	BaseComponent
	title string
	body  []Renderable
	tone  Tone
	icon  string
}

// NewAlert creates an alert around body.
func NewAlert(body ...Renderable) *Alert {
	return &Alert{BaseComponent: NewBaseComponent(), body: body, tone: ToneDefault, icon: "ℹ"}
}

// View renders the alert.
func (a *Alert) View() string {
	return a.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the alert with the provided render context.
func (a *Alert) ViewWithContext(ctx RenderContext) string {
	inner := ctx.Shrink(4)
	var parts []string
	head := a.icon
	if a.title != "" {
		head += " " + a.title
	}
	parts = append(parts, Foreground(a.tone)(Bold()(a.ComputeStyle(ctx.Theme), ctx.Theme), ctx.Theme).Render(head))
	for _, child := range a.body {
		if view := viewOf(child, inner); view != "" {
			parts = append(parts, view)
		}
	}

	style := a.ComputeStyle(ctx.Theme).Border(ctx.Theme.Borders.Normal).Padding(0, 1)
	style = BorderTone(a.tone)(style, ctx.Theme)
	if ctx.Width > 2 {
		style = style.Width(ctx.Width - 2)
	}
	return style.Render(strings.Join(parts, "\n"))
}

// WithVariant sets the tone and icon from the wire variant.
func (a *Alert) WithVariant(variant string) *Alert {
	a.tone = ToneFor(variant)
	switch a.tone {
	case ToneSuccess:
		a.icon = "✓"
	case ToneWarning:
		a.icon = "⚠"
	case ToneDanger:
		a.icon = "✗"
	default:
		a.icon = "ℹ"
	}
	return a
}

// WithIcon sets a custom icon.
func (a *Alert) WithIcon(icon string) *Alert {
	if icon != "" {
		a.icon = icon
	}
	return a
}

// WithTitle adds a title to the alert.
func (a *Alert) WithTitle(title string) *Alert {
	a.title = title
	return a
}
