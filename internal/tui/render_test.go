package tui

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/sdui/internal/controller"
	"github.com/alexisbeaulieu97/sdui/internal/registry"
	"github.com/alexisbeaulieu97/sdui/internal/render"
	"github.com/alexisbeaulieu97/sdui/internal/resolver"
	"github.com/alexisbeaulieu97/sdui/internal/responsive"
	"github.com/alexisbeaulieu97/sdui/internal/spec"
	"github.com/alexisbeaulieu97/sdui/internal/ui/components"
	"github.com/alexisbeaulieu97/sdui/internal/widgets"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func resolveTree(t *testing.T, src string, bp responsive.Breakpoint) *render.Element {
	t.Helper()
	reg := registry.New(nil)
	require.NoError(t, widgets.RegisterDefaults(reg))
	doc, err := spec.Parse("render.yaml", []byte(src))
	require.NoError(t, err)
	session := resolver.NewSession(reg, resolver.WithBreakpoint(bp))
	el, _ := session.RenderDocument(context.Background(), doc)
	require.NotNil(t, el)
	return el
}

func draw(t *testing.T, src string, width int) string {
	t.Helper()
	el := resolveTree(t, src, responsive.FromWidth(width))
	return ansi.Strip(NewRenderer(components.PlainTheme(), width).Render(el))
}

func TestRenderContent(t *testing.T) {
	t.Parallel()

	out := draw(t, `
type: Stack
children:
  - type: Heading
    level: 1
    text: Account
  - type: Text
    children: ["Signed in as ", "ada"]
  - type: Label
    text: Email
    required: true
    helperText: We never share it.
  - type: Badge
    variant: outline
    text: beta
  - type: Blockquote
    text: Simplicity is prerequisite for reliability.
    author: Dijkstra
  - type: Separator
    labelText: or
`, 60)

	assert.Contains(t, out, "ACCOUNT")
	assert.Contains(t, out, "Signed in as ada")
	assert.Contains(t, out, "Email *")
	assert.Contains(t, out, "We never share it.")
	assert.Contains(t, out, "[beta]")
	assert.Contains(t, out, "| Simplicity is prerequisite")
	assert.Contains(t, out, "— Dijkstra")
	assert.Contains(t, out, " or ")
}

func TestRenderBrokenPlaceholder(t *testing.T) {
	t.Parallel()

	out := draw(t, `
type: Stack
children:
  - type: Heading
    level: 9
    text: nope
  - type: Text
    text: still here
`, 80)

	assert.Contains(t, out, "⚠ Heading:")
	assert.Contains(t, out, "level")
	assert.Contains(t, out, "still here")
}

func TestRenderGridColumns(t *testing.T) {
	t.Parallel()

	src := `
type: SimpleGrid
cols: {base: 1, md: 2}
spacing: "4"
children:
  - {type: Text, text: alpha}
  - {type: Text, text: beta}
`
	narrow := strings.Split(draw(t, src, 30), "\n")
	require.Len(t, narrow, 2)
	assert.Contains(t, narrow[0], "alpha")
	assert.Contains(t, narrow[1], "beta")

	wide := strings.Split(draw(t, src, 80), "\n")
	require.Len(t, wide, 1)
	assert.Contains(t, wide[0], "alpha")
	assert.Contains(t, wide[0], "beta")
}

func TestRenderFlexJustifyBetween(t *testing.T) {
	t.Parallel()

	out := draw(t, `
type: Flex
justify: space-between
children:
  - {type: Text, text: left}
  - {type: Text, text: right}
`, 40)

	line := strings.TrimRight(out, " ")
	assert.True(t, strings.HasPrefix(line, "left"))
	assert.True(t, strings.HasSuffix(line, "right"))
	assert.Equal(t, 40, len(line))
}

func TestRenderControls(t *testing.T) {
	t.Parallel()

	out := draw(t, `
type: Stack
children:
  - {type: Checkbox, label: Remember me, defaultChecked: true}
  - {type: Switch, label: Wi-Fi}
  - type: RadioGroup
    value: b
    options:
      - {value: a, label: Alpha}
      - {value: b, label: Beta}
  - {type: Slider, defaultValue: [20, 80], min: 0, max: 100}
  - {type: Progress, value: 50, showValue: true}
  - {type: Button, label: Save, variant: outline}
`, 80)

	assert.Contains(t, out, "[x] Remember me")
	assert.Contains(t, out, "[off] Wi-Fi")
	assert.Contains(t, out, "( ) Alpha")
	assert.Contains(t, out, "(*) Beta")
	assert.Contains(t, out, "20 – 80")
	assert.Contains(t, out, "o")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "[ Save ]")
}

func TestRenderStaticTable(t *testing.T) {
	t.Parallel()

	out := draw(t, `
type: Table
caption: Quarterly totals
head:
  rows:
    - cells: [{content: Quarter}, {content: Total, align: right}]
body:
  rows:
    - cells: [{content: Q1}, {content: 120000, align: right}]
    - cells: [{content: Spanning note, colSpan: 2}]
footer:
  rows:
    - cells: [{content: Sum}, {content: 120000}]
`, 80)

	assert.Contains(t, out, "Quarter")
	assert.Contains(t, out, "Q1")
	assert.Contains(t, out, "120000")
	assert.Contains(t, out, "Spanning note")
	assert.Contains(t, out, "Sum")
	assert.Contains(t, out, "Quarterly totals")
	assert.True(t, strings.HasPrefix(out, "+"), "plain theme draws ASCII borders")
}

func TestRenderDataTable(t *testing.T) {
	t.Parallel()

	out := draw(t, peopleDoc, 100)

	assert.Contains(t, out, "Filter name:")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Grace")
	assert.NotContains(t, out, "Linus", "third row is on page two")
	assert.Contains(t, out, "Open")
	assert.Contains(t, out, "Page 1 of 2 · 3 rows · 0 selected")
}

func TestRenderMenubarOpenChain(t *testing.T) {
	t.Parallel()

	el := resolveTree(t, menuDoc, responsive.LG)
	r := NewRenderer(components.PlainTheme(), 80)
	closed := ansi.Strip(r.Render(el))
	assert.Equal(t, " File  View ", closed)

	reg := registry.New(nil)
	require.NoError(t, widgets.RegisterDefaults(reg))
	doc, err := spec.Parse("menu.yaml", []byte(menuDoc))
	require.NoError(t, err)
	session := resolver.NewSession(reg)
	_, err = session.RenderDocument(context.Background(), doc)
	require.NoError(t, err)
	require.NoError(t, session.Interact(context.Background(), "menu", controller.Event{Kind: controller.EventOpen, Path: []int{0, 2}}))
	el, err = session.RenderDocument(context.Background(), doc)
	require.NoError(t, err)

	out := ansi.Strip(r.WithFocus(Focus{Key: "menu", Path: []int{0, 2, 1}}).Render(el))
	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 3)
	assert.Contains(t, out, "New Tab")
	assert.Contains(t, out, "Ctrl+T")
	assert.Contains(t, out, "Share")
	assert.Contains(t, out, ">")
	assert.Contains(t, out, "Email")
	assert.Contains(t, out, "Messages")

	var first string
	for _, line := range lines {
		if strings.Contains(line, "New Tab") {
			first = line
		}
	}
	assert.Contains(t, first, "Email", "submenu opens beside its parent")
}

func TestRenderSnapshots(t *testing.T) {
	cases := map[string]string{
		"card": `
type: Card
title: Team
description: Members with access
children:
  - type: CardContent
    children:
      - {type: Text, text: Ada Lovelace}
      - {type: Badge, variant: success, text: owner}
`,
		"alert": `
type: Alert
variant: destructive
title: Payment failed
description: Your card was declined.
`,
		"datatable": peopleDoc,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			snaps.MatchSnapshot(t, draw(t, src, 60))
		})
	}
}
