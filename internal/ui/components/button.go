package components

// Button renders a clickable label. A focused button is drawn reversed.
type Button struct {
	BaseComponent
	label    string
	variant  string
	focused  bool
	disabled bool
	loading  bool
}

// NewButton creates a button with the given label.
func NewButton(label string) *Button {
	return &Button{BaseComponent: NewBaseComponent(), label: label, variant: "default"}
}

// View renders the button.
func (b *Button) View() string {
	return b.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the button under the context theme.
func (b *Button) ViewWithContext(ctx RenderContext) string {
	label := b.label
	if b.loading {
		label = "… " + label
	}
	style := b.ComputeStyle(ctx.Theme)
	switch {
	case b.disabled:
		style = Faint()(style, ctx.Theme)
	case b.variant == "link" || b.variant == "ghost":
		style = Underline()(style, ctx.Theme)
	case b.variant == "outline" || b.variant == "secondary":
		style = Foreground(ToneFor(b.variant))(style, ctx.Theme)
	default:
		tone := ToneFor(b.variant)
		if tone == ToneDefault {
			tone = TonePrimary
		}
		style = Foreground(tone)(Bold()(style, ctx.Theme), ctx.Theme)
	}
	if b.focused {
		style = style.Reverse(true)
	}
	return style.Render("[ " + label + " ]")
}

// WithVariant sets the wire variant.
func (b *Button) WithVariant(variant string) *Button {
	if variant != "" {
		b.variant = variant
	}
	return b
}

// WithFocus marks the button as focused.
func (b *Button) WithFocus(focused bool) *Button {
	b.focused = focused
	return b
}

// WithDisabled marks the button as disabled.
func (b *Button) WithDisabled(disabled bool) *Button {
	b.disabled = disabled
	return b
}

// WithLoading marks the button as busy.
func (b *Button) WithLoading(loading bool) *Button {
	b.loading = loading
	return b
}

// Label returns the button label.
func (b *Button) Label() string {
	return b.label
}
