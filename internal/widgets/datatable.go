package widgets

import (
	"fmt"

	"github.com/alexisbeaulieu97/sdui/internal/controller"
	"github.com/alexisbeaulieu97/sdui/internal/registry"
	"github.com/alexisbeaulieu97/sdui/internal/render"
	"github.com/alexisbeaulieu97/sdui/internal/spec"
)

func dataTableStrategy() registry.Strategy {
	meta := registry.Metadata{
		Description: "sortable, filterable, paginated table over row data",
		Required:    []string{"columns"},
		Stateful:    true,
	}
	return registry.Func(meta, resolveDataTable)
}

func resolveDataTable(c registry.Context, n *spec.Node) (*render.Element, error) {
	n = legacyColumns(canonical(n))

	var props controller.TableProps
	if err := spec.DecodeProps(n, c.Path(), &props); err != nil {
		return nil, err
	}
	rows, err := tableRows(c, n)
	if err != nil {
		return nil, err
	}

	created := false
	table, err := bind(c, func() (*controller.DataTable, error) {
		created = true
		return controller.NewDataTable(props, rows), nil
	})
	if err != nil {
		return nil, err
	}
	if !created {
		table.Sync(props, rows)
	}

	view := table.View()
	dataPath := c.Path().Field("data")
	for i := range view.Rows {
		row := &view.Rows[i]
		for j := range row.Cells {
			cell := &row.Cells[j]
			if cell.Node == nil {
				continue
			}
			cell.Element = c.Content(cell.Node, dataPath.Index(row.Index).Field(cell.Column))
			cell.Text = cell.Element.TextContent()
		}
	}

	return &render.Element{
		Props: attrs("title", n.String("title"), "action", props.OnSelectionChange),
		View:  view,
	}, nil
}

// legacyColumns rewrites the older column form {key, header, sortable}
// into {id, accessorKey, header, enableSorting}.
func legacyColumns(n *spec.Node) *spec.Node {
	columns, ok := spec.Slice(n.Prop("columns"))
	if !ok {
		return n
	}
	changed := false
	rewritten := make([]any, len(columns))
	for i, raw := range columns {
		rewritten[i] = raw
		col, ok := spec.Map(raw)
		if !ok {
			continue
		}
		_, hasKey := col["key"]
		_, hasSortable := col["sortable"]
		_, hasLabel := col["label"]
		if !hasKey && !hasSortable && !hasLabel {
			continue
		}
		out := make(map[string]any, len(col)+2)
		for k, v := range col {
			out[k] = v
		}
		if key, ok := spec.Text(col["key"]); ok {
			if _, set := out["id"]; !set {
				out["id"] = key
			}
			if _, set := out["accessorKey"]; !set {
				out["accessorKey"] = key
			}
		}
		if _, set := out["enableSorting"]; !set && hasSortable {
			out["enableSorting"] = col["sortable"]
		}
		if _, set := out["header"]; !set && hasLabel {
			out["header"] = col["label"]
		}
		delete(out, "key")
		delete(out, "sortable")
		delete(out, "label")
		rewritten[i] = out
		changed = true
	}
	if !changed {
		return n
	}
	cp := &spec.Node{Type: n.Type, ID: n.ID, Children: n.Children, Props: make(map[string]any, len(n.Props))}
	for k, v := range n.Props {
		cp.Props[k] = v
	}
	cp.Props["columns"] = rewritten
	return cp
}

// tableRows materialises the data prop: an inline list, or the id of a
// static data source.
func tableRows(c registry.Context, n *spec.Node) ([]map[string]any, error) {
	field := "data"
	raw := n.Prop(field)
	if raw == nil && n.Has("dataSource") {
		field = "dataSource"
		raw = n.Prop(field)
	}
	if id, ok := raw.(string); ok {
		data, found := c.Source(id)
		if !found {
			return nil, fieldError(field, "refers to unknown data source %q", id)
		}
		raw = data
	}
	if raw == nil {
		return nil, nil
	}
	items, ok := spec.Slice(raw)
	if !ok {
		return nil, fieldError(field, "must be a list of rows or a data source id, got %T", raw)
	}
	rows := make([]map[string]any, 0, len(items))
	for i, item := range items {
		row, ok := spec.Map(item)
		if !ok {
			c.Logger().Warn(c.Context(), "data table row is not an object",
				"path", c.Path().Field(field).Index(i).String(), "value", fmt.Sprint(item))
			row = map[string]any{}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
