package controller

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/sdui/internal/action"
	"github.com/alexisbeaulieu97/sdui/internal/format"
	"github.com/alexisbeaulieu97/sdui/internal/render"
	"github.com/alexisbeaulieu97/sdui/internal/spec"
)

// DefaultPageSize applies when pagination declares no page size.
const DefaultPageSize = 10

// DefaultRowKey is the row field used as the selection key.
const DefaultRowKey = "id"

// Column is one DataTable column definition.
type Column struct {
	ID            string         `yaml:"id" json:"id" validate:"required"`
	Header        string         `yaml:"header" json:"header,omitempty"`
	AccessorKey   string         `yaml:"accessorKey" json:"accessorKey,omitempty"`
	Type          string         `yaml:"type" json:"type,omitempty" validate:"omitempty,oneof=text number date currency badge custom"`
	EnableSorting bool           `yaml:"enableSorting" json:"enableSorting,omitempty"`
	EnableHiding  *bool          `yaml:"enableHiding" json:"enableHiding,omitempty"`
	Align         string         `yaml:"align" json:"align,omitempty" validate:"omitempty,oneof=left center right"`
	Format        format.Options `yaml:"format" json:"format,omitempty"`
}

// Accessor returns the row path of the column, defaulting to its id.
func (c Column) Accessor() string {
	if c.AccessorKey != "" {
		return c.AccessorKey
	}
	return c.ID
}

// Kind returns the column value type, defaulting to text.
func (c Column) Kind() string {
	if c.Type == "" {
		return format.KindText
	}
	return c.Type
}

// Hideable reports whether the column may be toggled out of view.
func (c Column) Hideable() bool {
	return c.EnableHiding == nil || *c.EnableHiding
}

// FeatureFlags are the declared table features; nil means enabled.
type FeatureFlags struct {
	ColumnFilter *bool `yaml:"columnFilter"`
	ViewOptions  *bool `yaml:"viewOptions"`
	Selectable   *bool `yaml:"selectable"`
	Sortable     *bool `yaml:"sortable"`
}

// Features are the effective table features.
type Features struct {
	ColumnFilter bool `json:"columnFilter"`
	ViewOptions  bool `json:"viewOptions"`
	Selectable   bool `json:"selectable"`
	Sortable     bool `json:"sortable"`
}

// Resolve applies the enabled-unless-declared default.
func (f FeatureFlags) Resolve() Features {
	return Features{
		ColumnFilter: enabled(f.ColumnFilter),
		ViewOptions:  enabled(f.ViewOptions),
		Selectable:   enabled(f.Selectable),
		Sortable:     enabled(f.Sortable),
	}
}

func enabled(flag *bool) bool {
	return flag == nil || *flag
}

// Pagination is the declared pagination shape.
type Pagination struct {
	Enabled  *bool `yaml:"enabled"`
	PageSize int   `yaml:"pageSize" validate:"omitempty,min=1"`
}

// RowAction is one per-row menu entry.
type RowAction struct {
	Label   string `yaml:"label" json:"label" validate:"required"`
	Handler string `yaml:"handler" json:"handler,omitempty"`
	Icon    string `yaml:"icon" json:"icon,omitempty"`
	Variant string `yaml:"variant" json:"variant,omitempty"`
}

// TableProps is the DataTable prop shape. Rows are supplied separately
// because data may reference a data source.
type TableProps struct {
	Columns           []Column     `yaml:"columns" validate:"required,min=1,unique=ID,dive"`
	Features          FeatureFlags `yaml:"features"`
	Pagination        Pagination   `yaml:"pagination"`
	FilterColumn      string       `yaml:"filterColumn"`
	FilterPlaceholder string       `yaml:"filterPlaceholder"`
	RowKey            string       `yaml:"rowKey"`
	Actions           []RowAction  `yaml:"actions" validate:"dive"`
	OnSelectionChange string       `yaml:"onSelectionChange"`
	OnAction          string       `yaml:"onAction"`
	Locale            string       `yaml:"locale"`
}

// SortDirection is the per-column sort state.
type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortState is the single active sort.
type SortState struct {
	Column    string        `json:"column,omitempty"`
	Direction SortDirection `json:"direction,omitempty"`
}

// DataTable backs the DataTable widget: sort, filter, paginate, select,
// row actions and column visibility over a materialised row set.
type DataTable struct {
	props    TableProps
	features Features
	paginate bool
	pageSize int

	rows []map[string]any
	keys []string

	sort     SortState
	filter   string
	page     int
	selected map[string]bool
	hidden   map[string]bool

	comparators map[string]*format.Comparator
}

// NewDataTable builds a table controller from its first render.
func NewDataTable(props TableProps, rows []map[string]any) *DataTable {
	t := &DataTable{
		selected:    make(map[string]bool),
		hidden:      make(map[string]bool),
		comparators: make(map[string]*format.Comparator),
	}
	t.Sync(props, rows)
	return t
}

// Sync applies a later render's props and rows. State survives except where
// it no longer refers to anything: unknown selections, hidden columns that
// disappeared, a sort on a column that stopped being sortable.
func (t *DataTable) Sync(props TableProps, rows []map[string]any) {
	t.props = props
	t.features = props.Features.Resolve()
	t.paginate = enabled(props.Pagination.Enabled)
	t.pageSize = props.Pagination.PageSize
	if t.pageSize <= 0 {
		t.pageSize = DefaultPageSize
	}
	t.rows = rows
	t.keys = rowKeys(rows, props.RowKey)

	present := make(map[string]bool, len(t.keys))
	for _, key := range t.keys {
		present[key] = true
	}
	for key := range t.selected {
		if !present[key] {
			delete(t.selected, key)
		}
	}
	for id := range t.hidden {
		if col, ok := t.column(id); !ok || !col.Hideable() {
			delete(t.hidden, id)
		}
	}
	if t.sort.Column != "" {
		if col, ok := t.column(t.sort.Column); !ok || !t.sortable(col) {
			t.sort = SortState{}
		}
	}
	if !t.filterEnabled() {
		t.filter = ""
	}
	t.clampPage()
}

func rowKeys(rows []map[string]any, field string) []string {
	if field == "" {
		field = DefaultRowKey
	}
	keys := make([]string, len(rows))
	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		key := strconv.Itoa(i)
		if v, ok := spec.Lookup(row, field); ok {
			if s, ok := spec.Text(v); ok && s != "" {
				key = s
			}
		}
		if seen[key] {
			key = fmt.Sprintf("%s#%d", key, i)
		}
		seen[key] = true
		keys[i] = key
	}
	return keys
}

func (t *DataTable) column(id string) (Column, bool) {
	for _, col := range t.props.Columns {
		if col.ID == id {
			return col, true
		}
	}
	return Column{}, false
}

func (t *DataTable) sortable(col Column) bool {
	return t.features.Sortable && col.EnableSorting
}

func (t *DataTable) filterEnabled() bool {
	if !t.features.ColumnFilter || t.props.FilterColumn == "" {
		return false
	}
	_, ok := t.filterColumn()
	return ok
}

// filterColumn resolves filterColumn by column id, then by accessor key.
func (t *DataTable) filterColumn() (Column, bool) {
	name := t.props.FilterColumn
	if name == "" {
		return Column{}, false
	}
	if col, ok := t.column(name); ok {
		return col, true
	}
	for _, col := range t.props.Columns {
		if col.AccessorKey == name {
			return col, true
		}
	}
	return Column{}, false
}

func (t *DataTable) comparator(col Column) *format.Comparator {
	c, ok := t.comparators[col.ID]
	if !ok {
		locale := col.Format.Locale
		if locale == "" {
			locale = t.props.Locale
		}
		c = format.NewComparator(col.Kind(), locale)
		t.comparators[col.ID] = c
	}
	return c
}

// logical returns the row indices after filter then sort.
func (t *DataTable) logical() []int {
	indices := make([]int, 0, len(t.rows))
	col, filtering := t.filterColumn()
	needle := strings.ToLower(t.filter)
	filtering = filtering && t.filterEnabled() && needle != ""

	for i, row := range t.rows {
		if filtering {
			v, _ := spec.Lookup(row, col.Accessor())
			if !strings.Contains(strings.ToLower(PlainText(v)), needle) {
				continue
			}
		}
		indices = append(indices, i)
	}

	if t.sort.Direction != SortNone {
		if col, ok := t.column(t.sort.Column); ok {
			cmp := t.comparator(col)
			desc := t.sort.Direction == SortDesc
			sort.SliceStable(indices, func(a, b int) bool {
				va, _ := spec.Lookup(t.rows[indices[a]], col.Accessor())
				vb, _ := spec.Lookup(t.rows[indices[b]], col.Accessor())
				c := cmp.Compare(sortValue(va), sortValue(vb))
				if desc {
					return c > 0
				}
				return c < 0
			})
		}
	}
	return indices
}

func sortValue(v any) any {
	if _, ok := spec.AsNode(v); ok {
		return PlainText(v)
	}
	return v
}

// PlainText renders a cell value as searchable text. Node content yields the
// concatenation of its text descendants.
func PlainText(v any) string {
	if n, ok := spec.AsNode(v); ok {
		var b strings.Builder
		var walk func(*spec.Node)
		walk = func(node *spec.Node) {
			for _, child := range node.Children {
				if child.IsText() {
					b.WriteString(child.Text)
					continue
				}
				walk(child.Node)
			}
		}
		walk(n)
		return b.String()
	}
	return format.Raw(v)
}

func (t *DataTable) pageCount(total int) int {
	if !t.paginate || total == 0 {
		return 1
	}
	return (total + t.pageSize - 1) / t.pageSize
}

func (t *DataTable) clampPage() {
	count := t.pageCount(len(t.logical()))
	if t.page >= count {
		t.page = count - 1
	}
	if t.page < 0 {
		t.page = 0
	}
}

// pageIndices returns the row indices of the current page.
func (t *DataTable) pageIndices() ([]int, int) {
	indices := t.logical()
	total := len(indices)
	if !t.paginate {
		return indices, total
	}
	start := t.page * t.pageSize
	if start > total {
		start = total
	}
	end := min(start+t.pageSize, total)
	return indices[start:end], total
}

// TableView is the render snapshot of a DataTable.
type TableView struct {
	Columns           []ColumnView `json:"columns"`
	Rows              []RowView    `json:"rows"`
	Actions           []RowAction  `json:"actions,omitempty"`
	Features          Features     `json:"features"`
	Sort              SortState    `json:"sort"`
	FilterEnabled     bool         `json:"filterEnabled"`
	FilterColumn      string       `json:"filterColumn,omitempty"`
	FilterText        string       `json:"filterText,omitempty"`
	FilterPlaceholder string       `json:"filterPlaceholder,omitempty"`
	Paginated         bool         `json:"paginated"`
	PageIndex         int          `json:"pageIndex"`
	PageCount         int          `json:"pageCount"`
	PageSize          int          `json:"pageSize"`
	TotalRows         int          `json:"totalRows"`
	SelectedKeys      []string     `json:"selectedKeys,omitempty"`
	AllPageSelected   bool         `json:"allPageSelected"`
	HiddenColumns     []string     `json:"hiddenColumns,omitempty"`
}

// ColumnView is one rendered column header.
type ColumnView struct {
	ID       string        `json:"id"`
	Header   string        `json:"header"`
	Type     string        `json:"type"`
	Align    string        `json:"align,omitempty"`
	Sortable bool          `json:"sortable,omitempty"`
	Sort     SortDirection `json:"sort,omitempty"`
	Hideable bool          `json:"hideable,omitempty"`
}

// RowView is one rendered row of the current page.
type RowView struct {
	Key      string     `json:"key"`
	Index    int        `json:"index"`
	Selected bool       `json:"selected,omitempty"`
	Cells    []CellView `json:"cells"`
}

// CellView is one rendered cell. Node holds node-shaped content for the
// resolver to render into Element.
type CellView struct {
	Column   string          `json:"column"`
	Text     string          `json:"text"`
	Missing  bool            `json:"missing,omitempty"`
	Fallback bool            `json:"fallback,omitempty"`
	Variant  string          `json:"variant,omitempty"`
	Node     *spec.Node      `json:"-"`
	Element  *render.Element `json:"element,omitempty"`
}

// View computes the snapshot for the current state.
func (t *DataTable) View() *TableView {
	page, total := t.pageIndices()
	view := &TableView{
		Actions:           append([]RowAction(nil), t.props.Actions...),
		Features:          t.features,
		Sort:              t.sort,
		FilterEnabled:     t.filterEnabled(),
		FilterText:        t.filter,
		FilterPlaceholder: t.props.FilterPlaceholder,
		Paginated:         t.paginate,
		PageIndex:         t.page,
		PageCount:         t.pageCount(total),
		PageSize:          t.pageSize,
		TotalRows:         total,
		SelectedKeys:      t.SelectedKeys(),
		AllPageSelected:   len(page) > 0,
	}
	if view.FilterEnabled {
		col, _ := t.filterColumn()
		view.FilterColumn = col.ID
	}

	var visible []Column
	for _, col := range t.props.Columns {
		if t.hidden[col.ID] {
			view.HiddenColumns = append(view.HiddenColumns, col.ID)
			continue
		}
		visible = append(visible, col)
		cv := ColumnView{
			ID:       col.ID,
			Header:   col.Header,
			Type:     col.Kind(),
			Align:    col.Align,
			Sortable: t.sortable(col),
			Hideable: t.features.ViewOptions && col.Hideable(),
		}
		if cv.Header == "" {
			cv.Header = col.ID
		}
		if t.sort.Column == col.ID {
			cv.Sort = t.sort.Direction
		}
		view.Columns = append(view.Columns, cv)
	}

	for _, idx := range page {
		key := t.keys[idx]
		row := RowView{Key: key, Index: idx, Selected: t.selected[key]}
		if !row.Selected {
			view.AllPageSelected = false
		}
		for _, col := range visible {
			row.Cells = append(row.Cells, t.cell(col, t.rows[idx]))
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

func (t *DataTable) cell(col Column, row map[string]any) CellView {
	cell := CellView{Column: col.ID}
	v, ok := spec.Lookup(row, col.Accessor())
	if !ok {
		cell.Missing = true
		return cell
	}
	if n, isNode := spec.AsNode(v); isNode {
		cell.Node = n
		cell.Text = PlainText(v)
		return cell
	}
	text, formatted := format.Cell(col.Kind(), v, col.Format)
	cell.Text = text
	cell.Fallback = !formatted
	if col.Kind() == format.KindBadge {
		cell.Variant = format.BadgeVariant(text)
	}
	return cell
}

// SelectedKeys returns the selected row keys in row order.
func (t *DataTable) SelectedKeys() []string {
	var out []string
	for _, key := range t.keys {
		if t.selected[key] {
			out = append(out, key)
		}
	}
	return out
}

// Handle applies one table interaction atomically.
func (t *DataTable) Handle(ctx context.Context, ev Event, emit Emit) error {
	switch ev.Kind {
	case EventSort:
		return t.toggleSort(ev.Column)
	case EventFilter:
		text, _ := ev.Value.(string)
		t.setFilter(text)
	case EventPage:
		t.page = ev.Index
		t.clampPage()
	case EventNextPage:
		t.page++
		t.clampPage()
	case EventPrevPage:
		t.page--
		t.clampPage()
	case EventSelectRow:
		return t.toggleRow(ctx, ev.RowKey, emit)
	case EventSelectAll:
		t.toggleAll(ctx, emit)
	case EventRowAction:
		return t.rowAction(ctx, ev.RowKey, ev.Action, emit)
	case EventToggleColumn:
		return t.toggleColumn(ev.Column)
	default:
		return unsupported(ev.Kind)
	}
	return nil
}

func (t *DataTable) toggleSort(columnID string) error {
	col, ok := t.column(columnID)
	if !ok {
		return fmt.Errorf("unknown column %q", columnID)
	}
	if !t.sortable(col) {
		return nil
	}
	switch {
	case t.sort.Column != columnID || t.sort.Direction == SortNone:
		t.sort = SortState{Column: columnID, Direction: SortAsc}
	case t.sort.Direction == SortAsc:
		t.sort.Direction = SortDesc
	default:
		t.sort = SortState{}
	}
	t.page = 0
	return nil
}

func (t *DataTable) setFilter(text string) {
	if !t.filterEnabled() || text == t.filter {
		return
	}
	t.filter = text
	t.page = 0
}

func (t *DataTable) rowIndex(key string) (int, bool) {
	for i, candidate := range t.keys {
		if candidate == key {
			return i, true
		}
	}
	return 0, false
}

func (t *DataTable) toggleRow(ctx context.Context, key string, emit Emit) error {
	if !t.features.Selectable {
		return nil
	}
	if _, ok := t.rowIndex(key); !ok {
		return fmt.Errorf("unknown row %q", key)
	}
	if t.selected[key] {
		delete(t.selected, key)
	} else {
		t.selected[key] = true
	}
	t.notifySelection(ctx, emit)
	return nil
}

// toggleAll selects every row of the current page, or clears them when all
// are already selected.
func (t *DataTable) toggleAll(ctx context.Context, emit Emit) {
	if !t.features.Selectable {
		return
	}
	page, _ := t.pageIndices()
	if len(page) == 0 {
		return
	}
	all := true
	for _, idx := range page {
		if !t.selected[t.keys[idx]] {
			all = false
			break
		}
	}
	for _, idx := range page {
		if all {
			delete(t.selected, t.keys[idx])
		} else {
			t.selected[t.keys[idx]] = true
		}
	}
	t.notifySelection(ctx, emit)
}

func (t *DataTable) notifySelection(ctx context.Context, emit Emit) {
	keys := t.SelectedKeys()
	if keys == nil {
		keys = []string{}
	}
	notify(ctx, emit, t.props.OnSelectionChange, action.Payload{Event: "selectionChange", SelectedRowKeys: keys})
}

func (t *DataTable) rowAction(ctx context.Context, key, name string, emit Emit) error {
	idx, ok := t.rowIndex(key)
	if !ok {
		return fmt.Errorf("unknown row %q", key)
	}
	var act *RowAction
	for i := range t.props.Actions {
		candidate := t.props.Actions[i]
		if (candidate.Handler != "" && candidate.Handler == name) || candidate.Label == name {
			act = &t.props.Actions[i]
			break
		}
	}
	if act == nil {
		return fmt.Errorf("unknown row action %q", name)
	}

	target := act.Handler
	actionName := act.Handler
	if target == "" {
		target = t.props.OnAction
		actionName = act.Label
	}
	notify(ctx, emit, target, action.Payload{
		Event:  "rowAction",
		Action: actionName,
		RowKey: key,
		Row:    t.rows[idx],
	})
	return nil
}

func (t *DataTable) toggleColumn(id string) error {
	col, ok := t.column(id)
	if !ok {
		return fmt.Errorf("unknown column %q", id)
	}
	if !t.features.ViewOptions || !col.Hideable() {
		return nil
	}
	if t.hidden[id] {
		delete(t.hidden, id)
	} else {
		t.hidden[id] = true
	}
	return nil
}
