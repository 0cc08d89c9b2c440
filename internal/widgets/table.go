package widgets

import (
	"github.com/alexisbeaulieu97/sdui/internal/registry"
	"github.com/alexisbeaulieu97/sdui/internal/render"
	"github.com/alexisbeaulieu97/sdui/internal/spec"
)

// Element types produced inside a Table.
const (
	TypeTableSection = "TableSection"
	TypeTableRow     = "TableRow"
	TypeTableCell    = "TableCell"
)

type tableCell struct {
	Content any    `yaml:"content"`
	Align   string `yaml:"align" validate:"omitempty,oneof=left center right"`
	ColSpan int    `yaml:"colSpan" validate:"omitempty,min=1"`
}

type tableRow struct {
	Cells    []tableCell `yaml:"cells" validate:"dive"`
	Selected bool        `yaml:"selected"`
}

type tableSection struct {
	Rows []tableRow `yaml:"rows" validate:"dive"`
}

type tableProps struct {
	Caption   string        `yaml:"caption"`
	Variant   string        `yaml:"variant" validate:"omitempty,oneof=default striped bordered minimal compact modern"`
	Hoverable *bool         `yaml:"hoverable"`
	Head      *tableSection `yaml:"head"`
	Body      *tableSection `yaml:"body" validate:"required"`
	Footer    *tableSection `yaml:"footer"`
}

func tableStrategy() registry.Strategy {
	meta := registry.Metadata{
		Description: "static table with head, body and footer sections",
		Required:    []string{"body"},
	}
	return registry.Func(meta, resolveTable)
}

func resolveTable(c registry.Context, n *spec.Node) (*render.Element, error) {
	var props tableProps
	if err := decode(c, n, &props); err != nil {
		return nil, err
	}

	el := &render.Element{
		Props: attrs("caption", props.Caption, "variant", valueOr(props.Variant, "default")),
	}
	if props.Hoverable == nil || *props.Hoverable {
		el.Props["hoverable"] = true
	}
	sections := []struct {
		name    string
		section *tableSection
	}{
		{"head", props.Head},
		{"body", props.Body},
		{"footer", props.Footer},
	}
	for _, s := range sections {
		if s.section == nil {
			continue
		}
		el.Children = append(el.Children, tableSectionElement(c, s.name, s.section))
	}
	return el, nil
}

func tableSectionElement(c registry.Context, name string, section *tableSection) *render.Element {
	path := c.Path().Field(name)
	out := &render.Element{
		Type:  TypeTableSection,
		Path:  path.String(),
		Props: map[string]any{"section": name},
	}
	for i, row := range section.Rows {
		rowPath := path.Field("rows").Index(i)
		rowEl := &render.Element{Type: TypeTableRow, Path: rowPath.String(), Props: map[string]any{}}
		if row.Selected {
			rowEl.Props["selected"] = true
		}
		for j, cell := range row.Cells {
			cellPath := rowPath.Field("cells").Index(j)
			cellEl := &render.Element{
				Type: TypeTableCell,
				Path: cellPath.String(),
				Props: map[string]any{
					"align":   valueOr(cell.Align, "left"),
					"colSpan": max(cell.ColSpan, 1),
				},
			}
			if name == "head" {
				cellEl.Props["header"] = true
			}
			if content := c.Content(cell.Content, cellPath.Field("content")); content != nil {
				cellEl.Children = []*render.Element{content}
			}
			rowEl.Children = append(rowEl.Children, cellEl)
		}
		out.Children = append(out.Children, rowEl)
	}
	return out
}
