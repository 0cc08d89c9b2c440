package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/sdui/internal/action"
	"github.com/alexisbeaulieu97/sdui/internal/controller"
	"github.com/alexisbeaulieu97/sdui/internal/logger"
	"github.com/alexisbeaulieu97/sdui/internal/registry"
	"github.com/alexisbeaulieu97/sdui/internal/resolver"
	"github.com/alexisbeaulieu97/sdui/internal/spec"
	"github.com/alexisbeaulieu97/sdui/internal/ui/components"
	"github.com/alexisbeaulieu97/sdui/internal/widgets"
)

type preview struct {
	t          *testing.T
	model      Model
	activity   *Activity
	dispatcher *action.Dispatcher
}

func newPreview(t *testing.T, src string, bindings map[string]string) *preview {
	t.Helper()

	reg := registry.New(nil)
	require.NoError(t, widgets.RegisterDefaults(reg))
	doc, err := spec.Parse("preview.yaml", []byte(src))
	require.NoError(t, err)

	dispatcher := action.NewDispatcher(action.WithHistory(16))
	activity := NewActivity(10)
	dispatcher.Subscribe(activity.Record)
	require.NoError(t, BindHandlers(dispatcher, bindings, logger.Nop(), activity))

	m := New(Options{
		Document: doc,
		Session:  resolver.NewSession(reg, resolver.WithDispatcher(dispatcher)),
		Theme:    components.PlainTheme(),
		Activity: activity,
	})
	p := &preview{t: t, model: m, activity: activity, dispatcher: dispatcher}
	p.send(tea.WindowSizeMsg{Width: 100, Height: 40})
	return p
}

func (p *preview) send(msgs ...tea.Msg) tea.Cmd {
	p.t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = p.model.Update(msg)
		m, ok := next.(Model)
		require.True(p.t, ok)
		p.model = m
	}
	return cmd
}

func (p *preview) content() string {
	return ansi.Strip(p.model.Content())
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewBeforeWindowSize(t *testing.T) {
	t.Parallel()

	m := New(Options{Theme: components.PlainTheme()})
	assert.Equal(t, "Loading...\n", m.View())
	assert.Nil(t, m.Init())
}

func TestTabCyclesFocus(t *testing.T) {
	t.Parallel()

	p := newPreview(t, `
type: Stack
children:
  - type: Button
    id: save
    label: Save
  - type: Text
    text: not focusable
  - type: Switch
    id: wifi
    label: Wi-Fi
  - type: Button
    id: gone
    label: Gone
    disabled: true
`, nil)

	assert.Equal(t, "save", p.model.Focused().Key)
	p.send(keyType(tea.KeyTab))
	assert.Equal(t, "wifi", p.model.Focused().Key)
	p.send(keyType(tea.KeyTab))
	assert.Equal(t, "save", p.model.Focused().Key, "disabled buttons are skipped")
	p.send(keyType(tea.KeyShiftTab))
	assert.Equal(t, "wifi", p.model.Focused().Key)
}

func TestEnterTogglesCheckbox(t *testing.T) {
	t.Parallel()

	p := newPreview(t, `
type: Checkbox
id: terms
label: Accept terms
onCheckedChange: termsChanged
`, map[string]string{"termsChanged": BehaviourEcho})

	assert.Contains(t, p.content(), "[ ] Accept terms")

	p.send(keyType(tea.KeyEnter))

	assert.Contains(t, p.content(), "[x] Accept terms")
	assert.Equal(t, "termsChanged from terms", p.model.Status())
	entries := p.activity.Entries()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0], `"source":"terms"`)
	assert.Contains(t, entries[0], `"value":true`)
}

func TestButtonQuitBehaviour(t *testing.T) {
	t.Parallel()

	p := newPreview(t, `
type: Button
id: exit
label: Exit
onClick: leave
`, map[string]string{"leave": BehaviourQuit})

	cmd := p.send(keyType(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, p.activity.QuitRequested())
}

func TestUnhandledActionShowsInStatus(t *testing.T) {
	t.Parallel()

	p := newPreview(t, `
type: Button
id: save
label: Save
onClick: saveDocument
`, nil)

	p.send(keyType(tea.KeyEnter))
	assert.Equal(t, "saveDocument (no handler)", p.model.Status())
}

func TestRadioCursorAndSelect(t *testing.T) {
	t.Parallel()

	p := newPreview(t, `
type: RadioGroup
id: plan
children:
  - type: RadioGroupItem
    value: free
    label: Free
  - type: RadioGroupItem
    value: team
    label: Team
    disabled: true
  - type: RadioGroupItem
    value: pro
    label: Pro
`, nil)

	assert.Equal(t, "free", p.model.Focused().Value)
	p.send(keyType(tea.KeyDown))
	assert.Equal(t, "pro", p.model.Focused().Value, "disabled options are skipped")
	assert.Contains(t, p.content(), "( ) Pro")

	p.send(keyType(tea.KeyEnter))

	view, ok := p.model.Tree().Find("plan").View.(controller.RadioView)
	require.True(t, ok)
	assert.Equal(t, "pro", view.Selected)
	assert.Contains(t, p.content(), "(*) Pro")
	assert.Equal(t, "pro", p.model.Focused().Value, "cursor stays on the option after re-render")
}

func TestSliderArrowSteps(t *testing.T) {
	t.Parallel()

	p := newPreview(t, `
type: Slider
id: volume
defaultValue: 50
min: 0
max: 100
step: 5
`, nil)

	sliderValues := func() []float64 {
		view, ok := p.model.Tree().Find("volume").View.(controller.SliderView)
		require.True(t, ok)
		return view.Values
	}

	p.send(keyType(tea.KeyRight))
	assert.Equal(t, []float64{55}, sliderValues())
	p.send(keyType(tea.KeyPgDown))
	assert.Equal(t, []float64{5}, sliderValues())
	p.send(keyType(tea.KeyLeft), keyType(tea.KeyLeft))
	assert.Equal(t, []float64{0}, sliderValues(), "steps clamp at min")
}

const peopleDoc = `
root:
  type: DataTable
  id: people
  filterColumn: name
  pagination:
    pageSize: 2
  actions:
    - label: Open
      handler: openPerson
  columns:
    - id: name
      header: Name
      accessorKey: name
      enableSorting: true
    - id: age
      header: Age
      accessorKey: age
      type: number
      enableSorting: true
  data:
    - {id: "1", name: Ada, age: 36}
    - {id: "2", name: Grace, age: 45}
    - {id: "3", name: Linus, age: 28}
`

func (p *preview) table() *controller.TableView {
	p.t.Helper()
	view, ok := p.model.Tree().Find("people").View.(*controller.TableView)
	require.True(p.t, ok)
	return view
}

func TestDataTableKeys(t *testing.T) {
	t.Parallel()

	p := newPreview(t, peopleDoc, map[string]string{"openPerson": BehaviourEcho})
	require.Equal(t, "people", p.model.Focused().Key)
	assert.Contains(t, p.content(), "Page 1 of 2")

	p.send(keyType(tea.KeyDown))
	assert.Equal(t, 1, p.model.Focused().Index)

	p.send(keyType(tea.KeyRight))
	assert.Equal(t, 1, p.table().PageIndex)
	assert.Equal(t, 0, p.model.Focused().Index)
	assert.Contains(t, p.content(), "Page 2 of 2")

	p.send(runes("."), runes("s"))
	assert.Equal(t, controller.SortState{Column: "age", Direction: controller.SortAsc}, p.table().Sort)
	assert.Equal(t, 0, p.table().PageIndex, "sorting returns to the first page")
	assert.Equal(t, "3", p.table().Rows[0].Key)

	p.send(runes(" "))
	assert.Equal(t, []string{"3"}, p.table().SelectedKeys)
	assert.Contains(t, p.content(), "1 selected")

	p.send(keyType(tea.KeyEnter))
	last := p.dispatcher.History()
	require.NotEmpty(t, last)
	assert.Equal(t, "openPerson", last[len(last)-1].Name)
	assert.Equal(t, "3", last[len(last)-1].Payload.RowKey)
}

func TestDataTableFilterInput(t *testing.T) {
	t.Parallel()

	p := newPreview(t, peopleDoc, nil)

	p.send(runes("/"))
	assert.NotEmpty(t, p.model.Focused().FilterView)

	p.send(runes("g"), runes("r"))
	assert.Equal(t, "gr", p.table().FilterText)
	require.Len(t, p.table().Rows, 1)
	assert.Equal(t, "2", p.table().Rows[0].Key)

	p.send(runes("q"))
	assert.Equal(t, "grq", p.table().FilterText, "keys go to the input while filtering")

	p.send(keyType(tea.KeyBackspace), keyType(tea.KeyEnter))
	assert.Equal(t, "gr", p.table().FilterText)
	assert.Empty(t, p.model.Focused().FilterView)
	assert.Contains(t, p.content(), "Filter name: gr")
}

const menuDoc = `
type: Menubar
id: menu
menus:
  - trigger: File
    items:
      - label: New Tab
        shortcut: Ctrl+T
        onClick: newTab
      - type: separator
      - type: submenu
        label: Share
        items:
          - label: Email
          - label: Messages
  - trigger: View
    items:
      - type: checkbox
        label: Show Toolbar
        defaultChecked: true
`

func (p *preview) menubar() controller.MenubarView {
	p.t.Helper()
	view, ok := p.model.Tree().Find("menu").View.(controller.MenubarView)
	require.True(p.t, ok)
	return view
}

func TestMenubarKeyboard(t *testing.T) {
	t.Parallel()

	p := newPreview(t, menuDoc, map[string]string{"newTab": BehaviourEcho})
	assert.Equal(t, []int{0}, p.model.Focused().Path)

	p.send(keyType(tea.KeyEnter))
	assert.Equal(t, []int{0}, p.menubar().OpenPath)
	assert.Equal(t, []int{0, 0}, p.model.Focused().Path)
	assert.Contains(t, p.content(), "New Tab")
	assert.Contains(t, p.content(), "Ctrl+T")

	p.send(keyType(tea.KeyDown))
	assert.Equal(t, []int{0, 2}, p.model.Focused().Path, "separators are skipped")

	p.send(keyType(tea.KeyRight))
	assert.Equal(t, []int{0, 2}, p.menubar().OpenPath)
	assert.Equal(t, []int{0, 2, 0}, p.model.Focused().Path)
	assert.Contains(t, p.content(), "Messages")

	p.send(keyType(tea.KeyLeft))
	assert.Equal(t, []int{0}, p.menubar().OpenPath)
	assert.Equal(t, []int{0, 2}, p.model.Focused().Path)

	p.send(keyType(tea.KeyUp), keyType(tea.KeyEnter))
	assert.Empty(t, p.menubar().OpenPath, "activating an item closes the bar")
	assert.Equal(t, []int{0}, p.model.Focused().Path)
	assert.Equal(t, "newTab from menu", p.model.Status())
}

func TestMenubarCheckboxAndEscape(t *testing.T) {
	t.Parallel()

	p := newPreview(t, menuDoc, nil)

	p.send(keyType(tea.KeyRight))
	assert.Equal(t, []int{1}, p.model.Focused().Path)
	assert.Empty(t, p.menubar().OpenPath, "moving along a closed bar does not open it")

	p.send(keyType(tea.KeyEnter))
	assert.Contains(t, p.content(), "[x] Show Toolbar")

	p.send(keyType(tea.KeyEnter))
	assert.Contains(t, p.content(), "[ ] Show Toolbar")
	assert.Equal(t, []int{1}, p.menubar().OpenPath, "checkbox items keep the menu open")

	p.send(keyType(tea.KeyEsc))
	assert.Empty(t, p.menubar().OpenPath)
	assert.Equal(t, []int{1}, p.model.Focused().Path)
}

func TestQuitKey(t *testing.T) {
	t.Parallel()

	p := newPreview(t, `{type: Text, text: hi}`, nil)
	cmd := p.send(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWindowSizeSetsBreakpoint(t *testing.T) {
	t.Parallel()

	p := newPreview(t, `
type: SimpleGrid
cols: {base: 1, lg: 3}
children:
  - {type: Text, text: a}
  - {type: Text, text: b}
  - {type: Text, text: c}
`, nil)
	p.send(tea.WindowSizeMsg{Width: 40, Height: 20})
	assert.Equal(t, 1, p.model.Tree().Int("columns", 0))

	p.send(tea.WindowSizeMsg{Width: 200, Height: 40})
	assert.Equal(t, 3, p.model.Tree().Int("columns", 0))
	assert.Contains(t, ansi.Strip(p.model.View()), "200 cols")
}
