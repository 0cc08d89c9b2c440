package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/sdui/internal/controller"
	"github.com/alexisbeaulieu97/sdui/internal/render"
	"github.com/alexisbeaulieu97/sdui/internal/ui/components"
)

// menubar draws the trigger bar with the open dropdown chain below it.
// Nested submenus open to the right of their parent.
func (r *Renderer) menubar(el *render.Element, ctx components.RenderContext) string {
	view, _ := el.View.(controller.MenubarView)
	theme := ctx.Theme
	focused := r.focused(el)

	var triggers []string
	offset, openOffset := 0, -1
	var open *controller.MenuView
	for i := range view.Menus {
		menu := &view.Menus[i]
		style := lipgloss.NewStyle().Padding(0, 1)
		if menu.Open {
			style = components.Filled(components.TonePrimary)(style, theme)
			if theme.Tone(components.TonePrimary).Base.Dark == "" {
				style = style.Reverse(true)
			}
			open, openOffset = menu, offset
		}
		if focused && len(r.focus.Path) == 1 && r.focus.Path[0] == i {
			style = style.Underline(true)
		}
		trigger := style.Render(menu.Trigger)
		triggers = append(triggers, trigger)
		offset += lipgloss.Width(trigger)
	}
	bar := strings.Join(triggers, "")
	if open == nil {
		return bar
	}

	var panels []string
	items := open.Items
	for items != nil {
		panels = append(panels, r.menuPanel(items, focused, theme))
		items = openSubmenu(items)
	}
	dropdown := lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	dropdown = lipgloss.NewStyle().MarginLeft(openOffset).Render(dropdown)
	return bar + "\n" + dropdown
}

func openSubmenu(items []controller.MenuItemView) []controller.MenuItemView {
	for _, item := range items {
		if item.Type == controller.ItemSubmenu && item.Open {
			return item.Items
		}
	}
	return nil
}

type menuLine struct {
	text        string
	shortcut    string
	path        []int
	faint       bool
	danger      bool
	heading     bool
	separator   bool
	highlighted bool
}

func (r *Renderer) menuPanel(items []controller.MenuItemView, focused bool, theme components.Theme) string {
	g := theme.Glyphs
	var lines []menuLine
	for _, item := range items {
		label := item.Label
		if item.Icon != "" {
			label = item.Icon + " " + label
		}
		line := menuLine{
			text:     label,
			shortcut: item.Shortcut,
			path:     item.Path,
			faint:    item.Disabled,
			danger:   components.ToneFor(item.Variant) == components.ToneDanger,
		}
		switch item.Type {
		case controller.ItemSeparator:
			lines = append(lines, menuLine{separator: true})
			continue
		case controller.ItemSubmenu:
			line.shortcut = g.Submenu
		case controller.ItemCheckbox:
			line.text = pickGlyph(item.Checked, g.CheckOn, g.CheckOff) + " " + label
		case controller.ItemRadioGroup:
			if label != "" {
				lines = append(lines, menuLine{text: label, heading: true, faint: true})
			}
			for oi, opt := range item.Options {
				text := opt.Label
				if text == "" {
					text = opt.Value
				}
				lines = append(lines, menuLine{
					text:  pickGlyph(opt.Selected, g.RadioOn, g.RadioOff) + " " + text,
					path:  append(slices.Clone(item.Path), oi),
					faint: item.Disabled || opt.Disabled,
				})
			}
			continue
		}
		lines = append(lines, line)
	}

	width := 0
	for i := range lines {
		l := &lines[i]
		w := lipgloss.Width(l.text)
		if l.shortcut != "" {
			w += 2 + lipgloss.Width(l.shortcut)
		}
		width = max(width, w)
		l.highlighted = focused && l.path != nil && slices.Equal(l.path, r.focus.Path)
	}

	rendered := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.separator {
			rendered = append(rendered, lipgloss.NewStyle().Faint(true).Render(strings.Repeat(g.Rule, width)))
			continue
		}
		text := l.text
		if l.shortcut != "" {
			gap := width - lipgloss.Width(text) - lipgloss.Width(l.shortcut)
			text += strings.Repeat(" ", gap) + lipgloss.NewStyle().Faint(true).Render(l.shortcut)
		} else {
			text += strings.Repeat(" ", width-lipgloss.Width(text))
		}
		style := lipgloss.NewStyle()
		if l.faint {
			style = style.Faint(true)
		}
		if l.heading {
			style = style.Italic(true)
		}
		if l.danger {
			style = components.Foreground(components.ToneDanger)(style, theme)
		}
		if l.highlighted {
			style = style.Reverse(true)
		}
		rendered = append(rendered, style.Render(text))
	}

	box := lipgloss.NewStyle().Border(theme.Borders.Rounded).Padding(0, 1)
	box = components.BorderTone(components.ToneMuted)(box, theme)
	return box.Render(strings.Join(rendered, "\n"))
}
