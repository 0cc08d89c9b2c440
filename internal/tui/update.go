package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/sdui/internal/controller"
)

// sliderPageSteps is how many steps pgup/pgdown move a slider handle.
const sliderPageSteps = 10

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.rerender()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
		return m, nil
	}

	el := m.focusedElement()
	if el == nil {
		return m.scroll(msg)
	}
	var cmd tea.Cmd
	handled := true
	switch view := el.View.(type) {
	case controller.ToggleView:
		if key.Matches(msg, m.keys.Activate, m.keys.Toggle) {
			cmd = m.interact(controller.Event{Kind: controller.EventToggle})
		} else {
			handled = false
		}
	case controller.RadioView:
		cmd, handled = m.radioKey(msg, view)
	case controller.SliderView:
		cmd, handled = m.sliderKey(msg, view)
	case *controller.TableView:
		cmd, handled = m.tableKey(msg, view)
	case controller.MenubarView:
		cmd, handled = m.menubarKey(msg, view)
	default:
		if el.Type == "Button" && key.Matches(msg, m.keys.Activate, m.keys.Toggle) {
			cmd = m.interact(controller.Event{Kind: controller.EventActivate})
		} else {
			handled = false
		}
	}
	if !handled {
		return m.scroll(msg)
	}
	m.refresh()
	return m, cmd
}

func (m *Model) moveFocus(delta int) {
	if len(m.focusKeys) == 0 {
		return
	}
	n := len(m.focusKeys)
	m.cursor = ((m.cursor+delta)%n + n) % n
	m.focusOn(m.focusKeys[m.cursor])
	m.refresh()
}

// scroll moves the viewport for keys no element consumed.
func (m Model) scroll(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.viewport.SetYOffset(m.viewport.YOffset - 1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.SetYOffset(m.viewport.YOffset + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
	}
	return m, nil
}

func (m *Model) radioKey(msg tea.KeyMsg, view controller.RadioView) (tea.Cmd, bool) {
	options := enabledOptions(view)
	if len(options) == 0 {
		return nil, false
	}
	i := max(slices.Index(options, m.focus.Value), 0)
	switch {
	case key.Matches(msg, m.keys.Up, m.keys.Left):
		m.focus.Value = options[(i-1+len(options))%len(options)]
	case key.Matches(msg, m.keys.Down, m.keys.Right):
		m.focus.Value = options[(i+1)%len(options)]
	case key.Matches(msg, m.keys.Activate, m.keys.Toggle):
		return m.interact(controller.Event{Kind: controller.EventSelect, Value: options[i]}), true
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) sliderKey(msg tea.KeyMsg, view controller.SliderView) (tea.Cmd, bool) {
	step := func(steps int) tea.Cmd {
		return m.interact(controller.Event{Kind: controller.EventStep, Index: m.focus.Index, Steps: steps})
	}
	switch {
	case key.Matches(msg, m.keys.Left, m.keys.Down):
		return step(-1), true
	case key.Matches(msg, m.keys.Right, m.keys.Up):
		return step(1), true
	case key.Matches(msg, m.keys.PageDown):
		return step(-sliderPageSteps), true
	case key.Matches(msg, m.keys.PageUp):
		return step(sliderPageSteps), true
	case key.Matches(msg, m.keys.ColumnNext):
		m.focus.Index = min(m.focus.Index+1, max(len(view.Values)-1, 0))
	case key.Matches(msg, m.keys.ColumnPrev):
		m.focus.Index = max(m.focus.Index-1, 0)
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) tableKey(msg tea.KeyMsg, view *controller.TableView) (tea.Cmd, bool) {
	row := func() (controller.RowView, bool) {
		if m.focus.Index < 0 || m.focus.Index >= len(view.Rows) {
			return controller.RowView{}, false
		}
		return view.Rows[m.focus.Index], true
	}
	column := func() (controller.ColumnView, bool) {
		if m.focus.Column < 0 || m.focus.Column >= len(view.Columns) {
			return controller.ColumnView{}, false
		}
		return view.Columns[m.focus.Column], true
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.focus.Index = max(m.focus.Index-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.focus.Index = min(m.focus.Index+1, max(len(view.Rows)-1, 0))
	case key.Matches(msg, m.keys.Left):
		if !view.Paginated {
			return nil, false
		}
		m.focus.Index = 0
		return m.interact(controller.Event{Kind: controller.EventPrevPage}), true
	case key.Matches(msg, m.keys.Right):
		if !view.Paginated {
			return nil, false
		}
		m.focus.Index = 0
		return m.interact(controller.Event{Kind: controller.EventNextPage}), true
	case key.Matches(msg, m.keys.ColumnPrev):
		m.focus.Column = max(m.focus.Column-1, 0)
	case key.Matches(msg, m.keys.ColumnNext):
		m.focus.Column = min(m.focus.Column+1, max(len(view.Columns)-1, 0))
	case key.Matches(msg, m.keys.Sort):
		col, ok := column()
		if !ok || !col.Sortable {
			return nil, true
		}
		return m.interact(controller.Event{Kind: controller.EventSort, Column: col.ID}), true
	case key.Matches(msg, m.keys.ToggleColumn):
		col, ok := column()
		if !ok || !col.Hideable {
			return nil, true
		}
		return m.interact(controller.Event{Kind: controller.EventToggleColumn, Column: col.ID}), true
	case key.Matches(msg, m.keys.Filter):
		if !view.FilterEnabled {
			return nil, false
		}
		m.filtering = true
		m.filter.SetValue(view.FilterText)
		m.filter.CursorEnd()
		cmd := m.filter.Focus()
		m.focus.FilterView = m.filter.View()
		return cmd, true
	case key.Matches(msg, m.keys.SelectAll):
		if !view.Features.Selectable {
			return nil, false
		}
		return m.interact(controller.Event{Kind: controller.EventSelectAll}), true
	case key.Matches(msg, m.keys.Toggle):
		r, ok := row()
		if !ok || !view.Features.Selectable {
			return nil, false
		}
		return m.interact(controller.Event{Kind: controller.EventSelectRow, RowKey: r.Key}), true
	case key.Matches(msg, m.keys.Activate):
		r, ok := row()
		if !ok || len(view.Actions) == 0 {
			return nil, false
		}
		first := view.Actions[0]
		name := first.Handler
		if name == "" {
			name = first.Label
		}
		return m.interact(controller.Event{Kind: controller.EventRowAction, RowKey: r.Key, Action: name}), true
	default:
		return nil, false
	}
	return nil, true
}

// updateFilter feeds keys to the filter input, filtering as the user types.
func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.focus.FilterView = ""
		m.refresh()
		return m, nil
	}
	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if value := m.filter.Value(); value != before {
		m.focus.Index = 0
		m.interact(controller.Event{Kind: controller.EventFilter, Value: value})
	}
	m.focus.FilterView = m.filter.View()
	m.refresh()
	return m, cmd
}

func (m *Model) menubarKey(msg tea.KeyMsg, view controller.MenubarView) (tea.Cmd, bool) {
	count := len(view.Menus)
	if count == 0 {
		return nil, false
	}
	path := m.focus.Path
	if len(path) == 0 {
		path = []int{0}
	}
	top := path[0]
	openMenu := func(index int) tea.Cmd {
		index = (index%count + count) % count
		cmd := m.interact(controller.Event{Kind: controller.EventOpen, Path: []int{index}})
		m.focus.Path = []int{index}
		if entries := panelEntries(m.menubarView(), []int{index}); len(entries) > 0 {
			m.focus.Path = entries[0]
		}
		return cmd
	}

	if len(view.OpenPath) == 0 || len(path) == 1 {
		switch {
		case key.Matches(msg, m.keys.Left):
			m.focus.Path = []int{(top - 1 + count) % count}
			if len(view.OpenPath) > 0 {
				return openMenu(top - 1), true
			}
		case key.Matches(msg, m.keys.Right):
			m.focus.Path = []int{(top + 1) % count}
			if len(view.OpenPath) > 0 {
				return openMenu(top + 1), true
			}
		case key.Matches(msg, m.keys.Activate, m.keys.Toggle, m.keys.Down):
			return openMenu(top), true
		case key.Matches(msg, m.keys.Close):
			if len(view.OpenPath) == 0 {
				return nil, false
			}
			return m.interact(controller.Event{Kind: controller.EventClose}), true
		default:
			return nil, false
		}
		return nil, true
	}

	prefix, entries := containingPanel(view, path)
	i := max(indexOfPath(entries, path), 0)
	current := itemAt(view, path)
	switch {
	case key.Matches(msg, m.keys.Up):
		m.focus.Path = entries[(i-1+len(entries))%len(entries)]
	case key.Matches(msg, m.keys.Down):
		m.focus.Path = entries[(i+1)%len(entries)]
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Activate, m.keys.Toggle) && current != nil && current.Type == controller.ItemSubmenu:
		if current == nil || current.Type != controller.ItemSubmenu || current.Disabled {
			return openMenu(top + 1), true
		}
		cmd := m.interact(controller.Event{Kind: controller.EventOpen, Path: path})
		if sub := panelEntries(m.menubarView(), path); len(sub) > 0 {
			m.focus.Path = sub[0]
		}
		return cmd, true
	case key.Matches(msg, m.keys.Left):
		if len(prefix) == 1 {
			return openMenu(top - 1), true
		}
		m.focus.Path = slices.Clone(prefix)
		return m.interact(controller.Event{Kind: controller.EventOpen, Path: prefix[:len(prefix)-1]}), true
	case key.Matches(msg, m.keys.Activate, m.keys.Toggle):
		cmd := m.interact(controller.Event{Kind: controller.EventActivate, Path: path})
		if len(m.menubarView().OpenPath) == 0 {
			m.focus.Path = []int{top}
		}
		return cmd, true
	case key.Matches(msg, m.keys.Close):
		m.focus.Path = []int{top}
		return m.interact(controller.Event{Kind: controller.EventClose}), true
	default:
		return nil, false
	}
	return nil, true
}

func (m Model) menubarView() controller.MenubarView {
	el := m.focusedElement()
	if el == nil {
		return controller.MenubarView{}
	}
	view, _ := el.View.(controller.MenubarView)
	return view
}

// itemsAt returns the entries of the panel opened by prefix.
func itemsAt(view controller.MenubarView, prefix []int) []controller.MenuItemView {
	if len(prefix) == 0 || prefix[0] < 0 || prefix[0] >= len(view.Menus) {
		return nil
	}
	items := view.Menus[prefix[0]].Items
	for _, idx := range prefix[1:] {
		if idx < 0 || idx >= len(items) || items[idx].Type != controller.ItemSubmenu {
			return nil
		}
		items = items[idx].Items
	}
	return items
}

func itemAt(view controller.MenubarView, path []int) *controller.MenuItemView {
	if len(path) < 2 {
		return nil
	}
	items := itemsAt(view, path[:len(path)-1])
	idx := path[len(path)-1]
	if idx < 0 || idx >= len(items) {
		return nil
	}
	return &items[idx]
}

// panelEntries lists the cursor stops of a panel: every enabled item except
// separators, with radio groups contributing one stop per option.
func panelEntries(view controller.MenubarView, prefix []int) [][]int {
	var out [][]int
	for _, item := range itemsAt(view, prefix) {
		switch {
		case item.Type == controller.ItemSeparator || item.Disabled:
		case item.Type == controller.ItemRadioGroup:
			for oi, opt := range item.Options {
				if !opt.Disabled {
					out = append(out, append(slices.Clone(item.Path), oi))
				}
			}
		default:
			out = append(out, item.Path)
		}
	}
	return out
}

// containingPanel finds the panel whose cursor stops include path.
func containingPanel(view controller.MenubarView, path []int) ([]int, [][]int) {
	for cut := 1; cut <= 2 && cut < len(path); cut++ {
		prefix := path[:len(path)-cut]
		entries := panelEntries(view, prefix)
		if indexOfPath(entries, path) >= 0 {
			return prefix, entries
		}
	}
	prefix := path[:1]
	entries := panelEntries(view, prefix)
	if len(entries) == 0 {
		entries = [][]int{prefix}
	}
	return prefix, entries
}

func indexOfPath(entries [][]int, path []int) int {
	return slices.IndexFunc(entries, func(p []int) bool { return slices.Equal(p, path) })
}
