package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/alexisbeaulieu97/sdui/internal/resolver"
	"github.com/alexisbeaulieu97/sdui/internal/ui/components"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading...\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), m.viewport.View(), m.footer())
}

// Content renders the document body with the current focus.
func (m Model) Content() string {
	if m.tree == nil {
		return ""
	}
	return NewRenderer(m.theme, m.renderWidth()).WithFocus(m.focus).Render(m.tree)
}

// refresh lays out the viewport around the header and footer and keeps the
// focused element visible.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	height := max(m.height-lipgloss.Height(m.header())-lipgloss.Height(m.footer()), 1)
	if m.viewport.Width != m.width || m.viewport.Height != height {
		offset := m.viewport.YOffset
		m.viewport = viewport.New(m.width, height)
		m.viewport.SetYOffset(offset)
	}
	content := m.Content()
	m.viewport.SetContent(content)
	m.revealFocus(content)
}

// revealFocus scrolls the viewport so the line holding the focused element's
// first row is on screen.
func (m *Model) revealFocus(content string) {
	el := m.focusedElement()
	if el == nil {
		return
	}
	marker := NewRenderer(m.theme, m.renderWidth()).Render(el)
	first, _, _ := strings.Cut(marker, "\n")
	first = strings.TrimSpace(ansi.Strip(first))
	if first == "" {
		return
	}
	for i, line := range strings.Split(ansi.Strip(content), "\n") {
		if !strings.Contains(line, first) {
			continue
		}
		if i < m.viewport.YOffset {
			m.viewport.SetYOffset(i)
		} else if i >= m.viewport.YOffset+m.viewport.Height {
			m.viewport.SetYOffset(i - m.viewport.Height + 1)
		}
		return
	}
}

func (m Model) header() string {
	title := "sdui preview"
	if m.doc != nil && m.doc.Metadata.Title != "" {
		title = m.doc.Metadata.Title
	}
	style := components.Bold()(lipgloss.NewStyle(), m.theme)
	info := fmt.Sprintf("%s · %d cols", m.session.Breakpoint(), m.renderWidth())
	if m.renderErr != nil {
		info += fmt.Sprintf(" · %d errors", len(resolver.Errors(m.renderErr)))
	}
	return style.Render(title) + "  " + components.Faint()(lipgloss.NewStyle(), m.theme).Render(info)
}

func (m Model) footer() string {
	status := m.status
	if status == "" && m.focus.Key != "" {
		status = "focus: " + m.focus.Key
	}
	line := components.Faint()(lipgloss.NewStyle(), m.theme).Render(status)
	return line + "\n" + m.help.View(m.keys)
}
