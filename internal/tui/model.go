// Package tui draws resolved element trees in the terminal and hosts the
// interactive preview built on bubbletea.
package tui

import (
	"context"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/sdui/internal/controller"
	"github.com/alexisbeaulieu97/sdui/internal/logger"
	"github.com/alexisbeaulieu97/sdui/internal/render"
	"github.com/alexisbeaulieu97/sdui/internal/resolver"
	"github.com/alexisbeaulieu97/sdui/internal/responsive"
	"github.com/alexisbeaulieu97/sdui/internal/spec"
	"github.com/alexisbeaulieu97/sdui/internal/ui/components"
)

// interactive lists the element types that take focus.
var interactive = map[string]bool{
	"Button":     true,
	"Checkbox":   true,
	"Switch":     true,
	"RadioGroup": true,
	"Slider":     true,
	"DataTable":  true,
	"Menubar":    true,
}

// Options configures a preview Model.
type Options struct {
	Document *spec.Document
	Session  *resolver.Session
	Theme    components.Theme
	Logger   *logger.Logger
	Activity *Activity
	// Breakpoint pins the breakpoint instead of deriving it from the width.
	Breakpoint *responsive.Breakpoint
	// Width fixes the render width; zero follows the terminal.
	Width int
}

// Model is the interactive preview of one document.
type Model struct {
	ctx      context.Context
	doc      *spec.Document
	session  *resolver.Session
	theme    components.Theme
	log      *logger.Logger
	activity *Activity
	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	filter   textinput.Model

	pinned     *responsive.Breakpoint
	fixedWidth int

	tree      *render.Element
	renderErr error
	focusKeys []string
	cursor    int
	focus     Focus
	filtering bool
	status    string

	width  int
	height int
	ready  bool
}

// New creates a preview model. The document is rendered once the terminal
// size is known.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	activity := opts.Activity
	if activity == nil {
		activity = NewActivity(20)
	}
	filter := textinput.New()
	filter.Prompt = "Filter: "
	filter.CharLimit = 120

	return Model{
		ctx:        logger.WithCorrelationID(context.Background(), logger.NewCorrelationID()),
		doc:        opts.Document,
		session:    opts.Session,
		theme:      opts.Theme,
		log:        log,
		activity:   activity,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		filter:     filter,
		pinned:     opts.Breakpoint,
		fixedWidth: opts.Width,
		width:      80,
		height:     24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Tree returns the last rendered tree.
func (m Model) Tree() *render.Element {
	return m.tree
}

// Focused returns the focus state.
func (m Model) Focused() Focus {
	return m.focus
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

func (m Model) renderWidth() int {
	if m.fixedWidth > 0 {
		return m.fixedWidth
	}
	return m.width
}

// rerender resolves the document again and restores focus.
func (m *Model) rerender() {
	bp := responsive.FromWidth(m.renderWidth())
	if m.pinned != nil {
		bp = *m.pinned
	}
	m.session.SetBreakpoint(bp)
	m.tree, m.renderErr = m.session.RenderDocument(m.ctx, m.doc)
	if m.renderErr != nil {
		m.log.Debug(m.ctx, "preview render reported errors", "errors", len(resolver.Errors(m.renderErr)))
	}
	m.collectFocus()
	m.refresh()
}

func (m *Model) collectFocus() {
	current := m.focus.Key
	m.focusKeys = nil
	m.tree.Walk(func(el *render.Element) bool {
		if el.IsBroken() {
			return false
		}
		if interactive[el.Type] && el.Key != "" && !el.Bool("disabled") {
			m.focusKeys = append(m.focusKeys, el.Key)
		}
		return true
	})
	if i := slices.Index(m.focusKeys, current); i >= 0 && current != "" {
		m.cursor = i
		m.clampFocus()
		return
	}
	if len(m.focusKeys) == 0 {
		m.cursor = 0
		m.focus = Focus{}
		return
	}
	m.cursor = min(m.cursor, len(m.focusKeys)-1)
	m.focusOn(m.focusKeys[m.cursor])
}

// focusOn moves focus to key and places the part cursor on its first part.
func (m *Model) focusOn(key string) {
	m.focus = Focus{Key: key}
	el := m.focusedElement()
	if el == nil {
		return
	}
	switch view := el.View.(type) {
	case controller.RadioView:
		m.focus.Value = view.Selected
		if m.focus.Value == "" {
			if enabled := enabledOptions(view); len(enabled) > 0 {
				m.focus.Value = enabled[0]
			}
		}
	case controller.MenubarView:
		m.focus.Path = []int{0}
		if len(view.OpenPath) > 0 {
			m.focus.Path = []int{view.OpenPath[0]}
		}
	}
}

// clampFocus keeps the part cursor inside the refreshed element.
func (m *Model) clampFocus() {
	el := m.focusedElement()
	if el == nil {
		return
	}
	switch view := el.View.(type) {
	case controller.SliderView:
		m.focus.Index = min(m.focus.Index, max(len(view.Values)-1, 0))
	case *controller.TableView:
		m.focus.Index = min(m.focus.Index, max(len(view.Rows)-1, 0))
		m.focus.Column = min(m.focus.Column, max(len(view.Columns)-1, 0))
	case controller.MenubarView:
		if len(view.OpenPath) == 0 && len(m.focus.Path) > 1 {
			m.focus.Path = m.focus.Path[:1]
		}
	}
}

func (m Model) focusedElement() *render.Element {
	if m.focus.Key == "" || m.tree == nil {
		return nil
	}
	return m.tree.Find(m.focus.Key)
}

func enabledOptions(view controller.RadioView) []string {
	if view.Disabled {
		return nil
	}
	var out []string
	for _, opt := range view.Options {
		if !opt.Disabled {
			out = append(out, opt.Value)
		}
	}
	return out
}

// interact routes ev to the focused controller and renders again.
func (m *Model) interact(ev controller.Event) tea.Cmd {
	if m.focus.Key == "" {
		return nil
	}
	seen := m.activity.Seq()
	if err := m.session.Interact(m.ctx, m.focus.Key, ev); err != nil {
		m.status = err.Error()
	} else if m.activity.Seq() != seen {
		m.status = m.activity.Last()
	} else {
		m.status = ""
	}
	m.rerender()
	if m.activity.QuitRequested() {
		return tea.Quit
	}
	return nil
}
