package controller

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/sdui/internal/action"
)

// Menu item variants. The wire key is "type".
const (
	ItemAction     = "item"
	ItemSubmenu    = "submenu"
	ItemCheckbox   = "checkbox"
	ItemRadioGroup = "radioGroup"
	ItemSeparator  = "separator"
)

// Menu is one top-level menu of a menu bar.
type Menu struct {
	Trigger string     `yaml:"trigger" json:"trigger" validate:"required"`
	Items   []MenuItem `yaml:"items" json:"items" validate:"dive"`
}

// MenuItem is one entry of a menu or submenu. Submenus and radio groups
// both carry their children under items.
type MenuItem struct {
	Type     string `yaml:"type" json:"type" validate:"omitempty,oneof=item submenu checkbox radioGroup separator"`
	Label    string `yaml:"label" json:"label,omitempty"`
	Trigger  string `yaml:"trigger" json:"trigger,omitempty"`
	Icon     string `yaml:"icon" json:"icon,omitempty"`
	Shortcut string `yaml:"shortcut" json:"shortcut,omitempty"`
	Variant  string `yaml:"variant" json:"variant,omitempty"`
	Disabled bool   `yaml:"disabled" json:"disabled,omitempty"`

	Checked         *bool   `yaml:"checked" json:"checked,omitempty"`
	DefaultChecked  *bool   `yaml:"defaultChecked" json:"defaultChecked,omitempty"`
	Value           *string `yaml:"value" json:"value,omitempty"`
	DefaultValue    *string `yaml:"defaultValue" json:"defaultValue,omitempty"`
	OnClick         string  `yaml:"onClick" json:"onClick,omitempty"`
	OnCheckedChange string  `yaml:"onCheckedChange" json:"onCheckedChange,omitempty"`
	OnValueChange   string  `yaml:"onValueChange" json:"onValueChange,omitempty"`

	Items []MenuItem `yaml:"items" json:"items,omitempty" validate:"dive"`
}

// Kind returns the item variant, defaulting to a plain action item.
func (i MenuItem) Kind() string {
	if i.Type == "" {
		return ItemAction
	}
	return i.Type
}

// Title returns the visible text of the item.
func (i MenuItem) Title() string {
	if i.Kind() == ItemSubmenu && i.Trigger != "" {
		return i.Trigger
	}
	if i.Label != "" {
		return i.Label
	}
	return i.Trigger
}

// MenubarProps is the Menubar prop shape.
type MenubarProps struct {
	Menus []Menu `yaml:"menus" validate:"required,min=1,dive"`
}

// Menubar backs the Menubar widget. One path is open at a time: the first
// index names the menu, every further index a submenu item inside the level
// above.
type Menubar struct {
	menus  []Menu
	open   []int
	checks map[string]*itemState[bool]
	radios map[string]*itemState[string]
}

// itemState is the binding of one checkbox or radio group entry. sig
// identifies the entry that created it; a different entry at the same
// address starts over from its own props.
type itemState[T any] struct {
	sig     string
	binding Binding[T]
}

// NewMenubar builds a menu bar from its first render's props.
func NewMenubar(props MenubarProps) (*Menubar, error) {
	m := &Menubar{
		checks: make(map[string]*itemState[bool]),
		radios: make(map[string]*itemState[string]),
	}
	if err := m.Sync(props); err != nil {
		return nil, err
	}
	return m, nil
}

// Sync applies a later render's props. Item state is keyed by position and
// kept only while the same entry stays there: a moved, relabelled or
// replaced entry is rebuilt from its props, and positions that no longer hold
// a stateful entry are dropped.
func (m *Menubar) Sync(props MenubarProps) error {
	m.menus = props.Menus
	seen := make(map[string]bool)
	for mi, menu := range m.menus {
		if err := m.syncItems(menu.Items, []int{mi}, seen); err != nil {
			return err
		}
	}
	for addr := range m.checks {
		if !seen[addr] {
			delete(m.checks, addr)
		}
	}
	for addr := range m.radios {
		if !seen[addr] {
			delete(m.radios, addr)
		}
	}
	if !m.validOpenPath(m.open) {
		m.open = nil
	}
	return nil
}

func (m *Menubar) syncItems(items []MenuItem, prefix []int, seen map[string]bool) error {
	for ii, item := range items {
		path := append(slices.Clone(prefix), ii)
		addr := address(path)
		switch item.Kind() {
		case ItemCheckbox:
			seen[addr] = true
			if err := m.syncCheck(addr, item); err != nil {
				return fmt.Errorf("menu item %s: %w", addr, err)
			}
		case ItemRadioGroup:
			seen[addr] = true
			if err := m.syncRadio(addr, item); err != nil {
				return fmt.Errorf("menu item %s: %w", addr, err)
			}
		case ItemSubmenu:
			if err := m.syncItems(item.Items, path, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

// menuBinding splits an item's value props into controlling and default
// values. A checked or value is controlling only when the item also names
// its change action; otherwise it seeds owned state.
func menuBinding[T any](value, def *T, onChange string) (*T, *T, error) {
	if onChange == "" && value != nil {
		if def != nil {
			return nil, nil, ErrControlConflict
		}
		return nil, value, nil
	}
	if err := CheckControl(value != nil, def != nil); err != nil {
		return nil, nil, err
	}
	return value, def, nil
}

func (m *Menubar) syncCheck(addr string, item MenuItem) error {
	value, def, err := menuBinding(item.Checked, item.DefaultChecked, item.OnCheckedChange)
	if err != nil {
		return err
	}
	sig := itemSignature(item, value != nil)
	if st, ok := m.checks[addr]; ok && st.sig == sig {
		if value != nil {
			st.binding.Sync(*value)
		}
		return nil
	}
	b, err := NewBinding(value, def, false)
	if err != nil {
		return err
	}
	m.checks[addr] = &itemState[bool]{sig: sig, binding: b}
	return nil
}

func (m *Menubar) syncRadio(addr string, item MenuItem) error {
	value, def, err := menuBinding(item.Value, item.DefaultValue, item.OnValueChange)
	if err != nil {
		return err
	}
	sig := itemSignature(item, value != nil)
	if st, ok := m.radios[addr]; ok && st.sig == sig {
		if value != nil {
			st.binding.Sync(*value)
		}
		return nil
	}
	b, err := NewBinding(value, def, "")
	if err != nil {
		return err
	}
	m.radios[addr] = &itemState[string]{sig: sig, binding: b}
	return nil
}

// itemSignature identifies a stateful entry by kind, title, binding mode and,
// for radio groups, the option values in order.
func itemSignature(item MenuItem, controlled bool) string {
	parts := []string{item.Kind(), item.Title(), strconv.FormatBool(controlled)}
	if item.Kind() == ItemRadioGroup {
		for _, opt := range item.Items {
			parts = append(parts, radioOptionValue(opt))
		}
	}
	return strings.Join(parts, "\x00")
}

func address(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, "/")
}

// item returns the item addressed by path (menu index, then item indices
// through submenus).
func (m *Menubar) item(path []int) (MenuItem, bool) {
	if len(path) < 2 || path[0] < 0 || path[0] >= len(m.menus) {
		return MenuItem{}, false
	}
	items := m.menus[path[0]].Items
	var current MenuItem
	for depth, idx := range path[1:] {
		if idx < 0 || idx >= len(items) {
			return MenuItem{}, false
		}
		current = items[idx]
		if depth < len(path)-2 {
			if current.Kind() != ItemSubmenu {
				return MenuItem{}, false
			}
			items = current.Items
		}
	}
	return current, true
}

func (m *Menubar) validOpenPath(path []int) bool {
	if len(path) == 0 {
		return true
	}
	if path[0] < 0 || path[0] >= len(m.menus) {
		return false
	}
	for depth := 2; depth <= len(path); depth++ {
		item, ok := m.item(path[:depth])
		if !ok || item.Kind() != ItemSubmenu || item.Disabled {
			return false
		}
	}
	return true
}

// OpenPath returns the open menu path, nil when the bar is closed.
func (m *Menubar) OpenPath() []int {
	return slices.Clone(m.open)
}

// IsOpen reports whether the menu or submenu at path is open.
func (m *Menubar) IsOpen(path []int) bool {
	return len(path) > 0 && len(path) <= len(m.open) && slices.Equal(m.open[:len(path)], path)
}

// Checked reports the state of the checkbox item at path.
func (m *Menubar) Checked(path []int) bool {
	if st, ok := m.checks[address(path)]; ok {
		return st.binding.Value()
	}
	return false
}

// RadioValue reports the selected value of the radio group item at path.
func (m *Menubar) RadioValue(path []int) string {
	if st, ok := m.radios[address(path)]; ok {
		return st.binding.Value()
	}
	return ""
}

// Handle applies open, close and activate events.
func (m *Menubar) Handle(ctx context.Context, ev Event, emit Emit) error {
	switch ev.Kind {
	case EventOpen:
		return m.openPath(ev.Path)
	case EventClose:
		m.open = nil
		return nil
	case EventActivate:
		return m.activate(ctx, ev.Path, ev.Value, emit)
	default:
		return unsupported(ev.Kind)
	}
}

// openPath opens the addressed menu or submenu. Any sibling open at the same
// level closes because only one path is kept.
func (m *Menubar) openPath(path []int) error {
	if len(path) == 0 {
		m.open = nil
		return nil
	}
	if path[0] < 0 || path[0] >= len(m.menus) {
		return fmt.Errorf("menu %d does not exist", path[0])
	}
	if len(path) > 1 {
		item, ok := m.item(path)
		if !ok {
			return fmt.Errorf("menu path %v does not exist", path)
		}
		if item.Kind() != ItemSubmenu {
			return fmt.Errorf("menu path %v is not a submenu", path)
		}
	}
	if !m.validOpenPath(path) {
		return nil
	}
	m.open = slices.Clone(path)
	return nil
}

// activate triggers the entry at path. For radio groups the last index
// selects the option; value may also name it directly.
func (m *Menubar) activate(ctx context.Context, path []int, value any, emit Emit) error {
	if item, ok := m.item(path); ok && item.Kind() != ItemRadioGroup {
		if item.Disabled || !m.validOpenPath(path[:len(path)-1]) {
			return nil
		}
		switch item.Kind() {
		case ItemAction:
			m.open = nil
			notify(ctx, emit, item.OnClick, action.Payload{Event: "click", Value: item.Title()})
		case ItemCheckbox:
			st := m.checks[address(path)]
			next := !st.binding.Value()
			st.binding.Propose(next)
			notify(ctx, emit, item.OnCheckedChange, action.Payload{Event: "checkedChange", Value: next})
		case ItemSubmenu:
			return m.openPath(path)
		}
		return nil
	}

	groupPath := path
	selected, isName := value.(string)
	if !isName {
		if len(path) < 3 {
			return fmt.Errorf("menu path %v does not exist", path)
		}
		groupPath = path[:len(path)-1]
	}
	group, ok := m.item(groupPath)
	if !ok || group.Kind() != ItemRadioGroup {
		return fmt.Errorf("menu path %v is not a radio group", groupPath)
	}
	if group.Disabled || !m.validOpenPath(groupPath[:len(groupPath)-1]) {
		return nil
	}
	if !isName {
		idx := path[len(path)-1]
		if idx < 0 || idx >= len(group.Items) {
			return fmt.Errorf("radio group %v has no option %d", groupPath, idx)
		}
		if group.Items[idx].Disabled {
			return nil
		}
		selected = radioOptionValue(group.Items[idx])
	} else if opt, found := findRadioOption(group, selected); !found {
		return fmt.Errorf("radio group %v has no option %q", groupPath, selected)
	} else if opt.Disabled {
		return nil
	}

	m.radios[address(groupPath)].binding.Propose(selected)
	notify(ctx, emit, group.OnValueChange, action.Payload{Event: "valueChange", Value: selected})
	return nil
}

func radioOptionValue(opt MenuItem) string {
	if opt.Value != nil {
		return *opt.Value
	}
	return opt.Label
}

func findRadioOption(group MenuItem, value string) (MenuItem, bool) {
	for _, opt := range group.Items {
		if radioOptionValue(opt) == value {
			return opt, true
		}
	}
	return MenuItem{}, false
}

// MenubarView is the render snapshot of a Menubar.
type MenubarView struct {
	Menus    []MenuView `json:"menus"`
	OpenPath []int      `json:"openPath,omitempty"`
}

// MenuView is one rendered top-level menu.
type MenuView struct {
	Trigger string         `json:"trigger"`
	Open    bool           `json:"open,omitempty"`
	Items   []MenuItemView `json:"items"`
}

// MenuItemView is one rendered menu entry.
type MenuItemView struct {
	Path     []int          `json:"path"`
	Type     string         `json:"type"`
	Label    string         `json:"label,omitempty"`
	Icon     string         `json:"icon,omitempty"`
	Shortcut string         `json:"shortcut,omitempty"`
	Variant  string         `json:"variant,omitempty"`
	Disabled bool           `json:"disabled,omitempty"`
	Open     bool           `json:"open,omitempty"`
	Checked  bool           `json:"checked,omitempty"`
	Options  []OptionView   `json:"options,omitempty"`
	Items    []MenuItemView `json:"items,omitempty"`
}

// View returns the render snapshot. Submenu contents are always included;
// Open marks which ones are expanded.
func (m *Menubar) View() MenubarView {
	view := MenubarView{OpenPath: m.OpenPath()}
	for mi, menu := range m.menus {
		view.Menus = append(view.Menus, MenuView{
			Trigger: menu.Trigger,
			Open:    m.IsOpen([]int{mi}),
			Items:   m.itemViews(menu.Items, []int{mi}),
		})
	}
	return view
}

func (m *Menubar) itemViews(items []MenuItem, prefix []int) []MenuItemView {
	out := make([]MenuItemView, 0, len(items))
	for ii, item := range items {
		path := append(slices.Clone(prefix), ii)
		iv := MenuItemView{
			Path:     path,
			Type:     item.Kind(),
			Label:    item.Title(),
			Icon:     item.Icon,
			Shortcut: item.Shortcut,
			Variant:  item.Variant,
			Disabled: item.Disabled,
		}
		switch item.Kind() {
		case ItemSubmenu:
			iv.Open = m.IsOpen(path)
			iv.Items = m.itemViews(item.Items, path)
		case ItemCheckbox:
			iv.Checked = m.Checked(path)
		case ItemRadioGroup:
			selected := m.RadioValue(path)
			for _, opt := range item.Items {
				value := radioOptionValue(opt)
				iv.Options = append(iv.Options, OptionView{
					Option:   Option{Value: value, Label: opt.Title(), Disabled: opt.Disabled},
					Selected: value != "" && value == selected,
				})
			}
		}
		out = append(out, iv)
	}
	return out
}
