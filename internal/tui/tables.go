package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/alexisbeaulieu97/sdui/internal/controller"
	"github.com/alexisbeaulieu97/sdui/internal/render"
	"github.com/alexisbeaulieu97/sdui/internal/ui/components"
	"github.com/alexisbeaulieu97/sdui/internal/widgets"
)

// grid is a table flattened to strings with per-cell styling hints.
type grid struct {
	headers   []string
	rows      [][]string
	aligns    [][]lipgloss.Position
	headAlign []lipgloss.Position
	strong    map[int]bool
	selected  map[int]bool
	faint     map[[2]int]bool
}

func newGrid() *grid {
	return &grid{strong: map[int]bool{}, selected: map[int]bool{}, faint: map[[2]int]bool{}}
}

func (g *grid) width() int {
	w := len(g.headers)
	for _, row := range g.rows {
		w = max(w, len(row))
	}
	return w
}

// pad extends every row to the widest one so the table stays rectangular.
func (g *grid) pad() {
	w := g.width()
	if len(g.headers) > 0 {
		for len(g.headers) < w {
			g.headers = append(g.headers, "")
			g.headAlign = append(g.headAlign, lipgloss.Left)
		}
	}
	for i := range g.rows {
		for len(g.rows[i]) < w {
			g.rows[i] = append(g.rows[i], "")
			g.aligns[i] = append(g.aligns[i], lipgloss.Left)
		}
	}
}

func position(align string) lipgloss.Position {
	switch align {
	case "center":
		return lipgloss.Center
	case "right":
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

type tableStyle struct {
	border  lipgloss.Border
	hidden  bool
	rowLine bool
	striped bool
	compact bool
	tone    components.Tone
}

func tableStyleFor(variant string, theme components.Theme) tableStyle {
	style := tableStyle{border: theme.Borders.Rounded, tone: components.ToneMuted}
	switch variant {
	case "striped":
		style.striped = true
	case "bordered":
		style.border = theme.Borders.Normal
		style.rowLine = true
	case "minimal":
		style.hidden = true
	case "compact":
		style.compact = true
		style.border = theme.Borders.Normal
	case "modern":
		style.tone = components.TonePrimary
	}
	return style
}

// draw renders g, shrinking the columns when the natural width overflows.
func (g *grid) draw(ctx components.RenderContext, style tableStyle, highlight func(row int) bool) string {
	g.pad()
	theme := ctx.Theme
	padding := 1
	if style.compact {
		padding = 0
	}
	base := lipgloss.NewStyle().Padding(0, padding)
	build := func() *table.Table {
		t := table.New().
			Border(style.border).
			BorderStyle(components.BorderTone(style.tone)(lipgloss.NewStyle(), theme)).
			BorderRow(style.rowLine).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					s := base.Bold(true)
					if col < len(g.headAlign) {
						s = s.Align(g.headAlign[col])
					}
					return s
				}
				s := base
				if row < len(g.aligns) && col < len(g.aligns[row]) {
					s = s.Align(g.aligns[row][col])
				}
				if g.strong[row] {
					s = s.Bold(true)
				}
				if g.faint[[2]int{row, col}] || (style.striped && row%2 == 1) {
					s = s.Faint(true)
				}
				if g.selected[row] {
					s = components.Foreground(components.TonePrimary)(s, theme)
				}
				if highlight != nil && highlight(row) {
					s = s.Reverse(true)
				}
				return s
			})
		if style.hidden {
			t = t.Border(lipgloss.HiddenBorder())
		}
		if len(g.headers) > 0 {
			t = t.Headers(g.headers...)
		} else {
			t = t.BorderHeader(false)
		}
		return t.Rows(g.rows...)
	}
	out := build().Render()
	if ctx.Width > 0 && lipgloss.Width(out) > ctx.Width {
		out = build().Width(ctx.Width).Render()
	}
	return out
}

func (r *Renderer) table(el *render.Element, ctx components.RenderContext) string {
	g := newGrid()
	for _, section := range el.Children {
		if section.Type != widgets.TypeTableSection {
			continue
		}
		name := section.String("section")
		for _, row := range section.Children {
			cells, aligns := r.tableRow(row)
			if name == "head" && len(g.headers) == 0 {
				g.headers, g.headAlign = cells, aligns
				continue
			}
			idx := len(g.rows)
			g.rows = append(g.rows, cells)
			g.aligns = append(g.aligns, aligns)
			if name != "body" {
				g.strong[idx] = true
			}
			if row.Bool("selected") {
				g.selected[idx] = true
			}
		}
	}
	out := g.draw(ctx, tableStyleFor(el.String("variant"), ctx.Theme), nil)
	if caption := el.String("caption"); caption != "" {
		out = joinLines(out, components.NewText(caption).WithVariant("muted").ViewWithContext(ctx))
	}
	return out
}

// tableRow flattens a row. Spanned cells keep their text in the first
// column and leave the rest empty.
func (r *Renderer) tableRow(row *render.Element) ([]string, []lipgloss.Position) {
	var cells []string
	var aligns []lipgloss.Position
	for _, cell := range row.Children {
		text := ""
		if len(cell.Children) > 0 {
			text = r.cellText(cell.Children[0])
		}
		align := position(cell.String("align"))
		cells = append(cells, text)
		aligns = append(aligns, align)
		for i := 1; i < cell.Int("colSpan", 1); i++ {
			cells = append(cells, "")
			aligns = append(aligns, align)
		}
	}
	return cells, aligns
}

func (r *Renderer) dataTable(el *render.Element, ctx components.RenderContext) string {
	view, _ := el.View.(*controller.TableView)
	if view == nil {
		return ""
	}
	theme := ctx.Theme
	focused := r.focused(el)
	selectable := view.Features.Selectable

	g := newGrid()
	if selectable {
		g.headers = append(g.headers, pickGlyph(view.AllPageSelected, theme.Glyphs.CheckOn, theme.Glyphs.CheckOff))
		g.headAlign = append(g.headAlign, lipgloss.Left)
	}
	for i, col := range view.Columns {
		header := col.Header
		switch col.Sort {
		case controller.SortAsc:
			header += " " + theme.Glyphs.SortAsc
		case controller.SortDesc:
			header += " " + theme.Glyphs.SortDesc
		}
		if focused && i == r.focus.Column {
			header = lipgloss.NewStyle().Underline(true).Render(header)
		}
		g.headers = append(g.headers, header)
		g.headAlign = append(g.headAlign, columnAlign(col))
	}
	if len(view.Actions) > 0 {
		g.headers = append(g.headers, "Actions")
		g.headAlign = append(g.headAlign, lipgloss.Left)
	}

	for ri, row := range view.Rows {
		var cells []string
		var aligns []lipgloss.Position
		if selectable {
			cells = append(cells, pickGlyph(row.Selected, theme.Glyphs.CheckOn, theme.Glyphs.CheckOff))
			aligns = append(aligns, lipgloss.Left)
		}
		for _, cell := range row.Cells {
			col := findColumn(view.Columns, cell.Column)
			if cell.Missing {
				g.faint[[2]int{ri, len(cells)}] = true
			}
			cells = append(cells, r.dataCell(cell, ctx))
			aligns = append(aligns, columnAlign(col))
		}
		if len(view.Actions) > 0 {
			labels := make([]string, len(view.Actions))
			for i, a := range view.Actions {
				labels[i] = a.Label
			}
			cells = append(cells, strings.Join(labels, " · "))
			aligns = append(aligns, lipgloss.Left)
		}
		g.rows = append(g.rows, cells)
		g.aligns = append(g.aligns, aligns)
		if row.Selected {
			g.selected[ri] = true
		}
	}

	var highlight func(int) bool
	if focused {
		highlight = func(row int) bool { return row == r.focus.Index }
	}

	var parts []string
	if title := el.String("title"); title != "" {
		parts = append(parts, components.NewText(title).WithAppliers(components.Bold()).ViewWithContext(ctx))
	}
	if view.FilterEnabled {
		parts = append(parts, r.filterLine(view, focused, ctx))
	}
	parts = append(parts, g.draw(ctx, tableStyleFor("default", theme), highlight))
	if len(view.Rows) == 0 {
		parts = append(parts, components.NewText("No results.").WithVariant("muted").ViewWithContext(ctx))
	}
	parts = append(parts, components.NewText(tableFooter(view)).WithVariant("muted").ViewWithContext(ctx))
	return joinLines(parts...)
}

func (r *Renderer) dataCell(cell controller.CellView, ctx components.RenderContext) string {
	switch {
	case cell.Missing:
		return dash("")
	case cell.Element != nil:
		return r.cellText(cell.Element)
	case cell.Variant != "":
		return components.NewBadge(cell.Text).WithVariant(cell.Variant).ViewWithContext(ctx)
	}
	return cell.Text
}

func (r *Renderer) filterLine(view *controller.TableView, focused bool, ctx components.RenderContext) string {
	if focused && r.focus.FilterView != "" {
		return r.focus.FilterView
	}
	label := fmt.Sprintf("Filter %s: ", view.FilterColumn)
	if view.FilterText != "" {
		return label + view.FilterText
	}
	placeholder := view.FilterPlaceholder
	if placeholder == "" {
		placeholder = "type / to filter"
	}
	return label + components.NewText(placeholder).WithVariant("muted").ViewWithContext(ctx)
}

func tableFooter(view *controller.TableView) string {
	var parts []string
	if view.Paginated {
		parts = append(parts, fmt.Sprintf("Page %d of %d", view.PageIndex+1, max(view.PageCount, 1)))
	}
	parts = append(parts, plural(view.TotalRows, "row"))
	if view.Features.Selectable {
		parts = append(parts, fmt.Sprintf("%d selected", len(view.SelectedKeys)))
	}
	if len(view.HiddenColumns) > 0 {
		parts = append(parts, "hidden: "+strings.Join(view.HiddenColumns, ", "))
	}
	return strings.Join(parts, " · ")
}

func columnAlign(col controller.ColumnView) lipgloss.Position {
	if col.Align != "" {
		return position(col.Align)
	}
	switch col.Type {
	case "number", "currency":
		return lipgloss.Right
	}
	return lipgloss.Left
}

func findColumn(columns []controller.ColumnView, id string) controller.ColumnView {
	for _, col := range columns {
		if col.ID == id {
			return col
		}
	}
	return controller.ColumnView{ID: id}
}

func pickGlyph(on bool, yes, no string) string {
	if on {
		return yes
	}
	return no
}
