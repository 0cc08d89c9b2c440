package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func paymentRows() []map[string]any {
	return []map[string]any{
		{"id": "1", "amount": float64(316), "status": "success", "email": "ken99@yahoo.com", "createdAt": "2024-01-15"},
		{"id": "2", "amount": float64(242), "status": "success", "email": "Abe45@gmail.com", "createdAt": "2024-01-14"},
		{"id": "3", "amount": float64(837), "status": "processing", "email": "Monserrat44@gmail.com", "createdAt": "2024-01-13"},
		{"id": "4", "amount": float64(874), "status": "success", "email": "Silas22@gmail.com", "createdAt": "2024-01-12"},
		{"id": "5", "amount": float64(721), "status": "failed", "email": "Gwendolyn71@yahoo.com", "createdAt": "2024-01-11"},
	}
}

func paymentProps() TableProps {
	return TableProps{
		Columns: []Column{
			{ID: "email", Header: "Email", AccessorKey: "email", EnableSorting: true},
			{ID: "amount", Header: "Amount", AccessorKey: "amount", Type: "currency", EnableSorting: true},
			{ID: "status", Header: "Status", AccessorKey: "status", Type: "badge", EnableHiding: boolPtr(false)},
			{ID: "createdAt", Header: "Date", AccessorKey: "createdAt", Type: "date", EnableSorting: true},
		},
		Pagination:        Pagination{PageSize: 3},
		FilterColumn:      "email",
		OnSelectionChange: "handleSelectionChange",
		Actions: []RowAction{
			{Label: "Edit", Handler: "editPayment"},
			{Label: "Archive"},
		},
		OnAction: "onRowAction",
	}
}

func rowKeysOf(view *TableView) []string {
	keys := make([]string, 0, len(view.Rows))
	for _, row := range view.Rows {
		keys = append(keys, row.Key)
	}
	return keys
}

func TestFilterScenarioCollapsesPages(t *testing.T) {
	t.Parallel()

	table := NewDataTable(paymentProps(), paymentRows())
	view := table.View()
	require.Equal(t, 2, view.PageCount)
	require.Len(t, view.Rows, 3)

	require.NoError(t, table.Handle(context.Background(), Event{Kind: EventFilter, Value: "99"}, nil))
	view = table.View()
	require.Equal(t, 1, view.TotalRows)
	require.Equal(t, 1, view.PageCount)
	require.Len(t, view.Rows, 1)
	require.Equal(t, "ken99@yahoo.com", view.Rows[0].Cells[0].Text)
}

func TestFilterIsCaseInsensitiveAndResetsPage(t *testing.T) {
	t.Parallel()

	table := NewDataTable(paymentProps(), paymentRows())
	ctx := context.Background()
	require.NoError(t, table.Handle(ctx, Event{Kind: EventNextPage}, nil))
	require.Equal(t, 1, table.View().PageIndex)

	require.NoError(t, table.Handle(ctx, Event{Kind: EventFilter, Value: "GMAIL"}, nil))
	view := table.View()
	require.Equal(t, 0, view.PageIndex)
	require.Equal(t, 3, view.TotalRows)

	require.NoError(t, table.Handle(ctx, Event{Kind: EventFilter, Value: ""}, nil))
	require.Equal(t, 5, table.View().TotalRows)
}

func TestFilterOnUnknownColumnIsNoOp(t *testing.T) {
	t.Parallel()

	props := paymentProps()
	props.FilterColumn = "phone"
	table := NewDataTable(props, paymentRows())

	require.NoError(t, table.Handle(context.Background(), Event{Kind: EventFilter, Value: "99"}, nil))
	view := table.View()
	require.False(t, view.FilterEnabled)
	require.Equal(t, 5, view.TotalRows)
}

func TestSortCyclesAndResetsPage(t *testing.T) {
	t.Parallel()

	table := NewDataTable(paymentProps(), paymentRows())
	ctx := context.Background()
	require.NoError(t, table.Handle(ctx, Event{Kind: EventPage, Index: 1}, nil))

	require.NoError(t, table.Handle(ctx, Event{Kind: EventSort, Column: "amount"}, nil))
	view := table.View()
	require.Equal(t, 0, view.PageIndex, "sort click and page reset land together")
	require.Equal(t, SortAsc, view.Sort.Direction)
	require.Equal(t, []string{"2", "1", "5"}, rowKeysOf(view))

	require.NoError(t, table.Handle(ctx, Event{Kind: EventSort, Column: "amount"}, nil))
	require.Equal(t, []string{"4", "3", "5"}, rowKeysOf(table.View()))

	require.NoError(t, table.Handle(ctx, Event{Kind: EventSort, Column: "amount"}, nil))
	view = table.View()
	require.Equal(t, SortNone, view.Sort.Direction)
	require.Equal(t, []string{"1", "2", "3"}, rowKeysOf(view))
}

func TestSortSwitchingColumnClearsPrevious(t *testing.T) {
	t.Parallel()

	table := NewDataTable(paymentProps(), paymentRows())
	ctx := context.Background()
	require.NoError(t, table.Handle(ctx, Event{Kind: EventSort, Column: "amount"}, nil))
	require.NoError(t, table.Handle(ctx, Event{Kind: EventSort, Column: "amount"}, nil))
	require.NoError(t, table.Handle(ctx, Event{Kind: EventSort, Column: "createdAt"}, nil))

	view := table.View()
	require.Equal(t, SortState{Column: "createdAt", Direction: SortAsc}, view.Sort)
	require.Equal(t, []string{"5", "4", "3"}, rowKeysOf(view))
	for _, col := range view.Columns {
		if col.ID == "amount" {
			require.Equal(t, SortNone, col.Sort)
		}
	}
}

func TestSortIgnoresNonSortableColumns(t *testing.T) {
	t.Parallel()

	table := NewDataTable(paymentProps(), paymentRows())
	require.NoError(t, table.Handle(context.Background(), Event{Kind: EventSort, Column: "status"}, nil))
	require.Equal(t, SortState{}, table.View().Sort)
	require.Error(t, table.Handle(context.Background(), Event{Kind: EventSort, Column: "nope"}, nil))

	props := paymentProps()
	props.Features.Sortable = boolPtr(false)
	disabled := NewDataTable(props, paymentRows())
	require.NoError(t, disabled.Handle(context.Background(), Event{Kind: EventSort, Column: "amount"}, nil))
	require.Equal(t, SortState{}, disabled.View().Sort)
}

func TestSortIsStableForTies(t *testing.T) {
	t.Parallel()

	props := paymentProps()
	props.Columns[2].EnableSorting = true
	table := NewDataTable(props, paymentRows())
	require.NoError(t, table.Handle(context.Background(), Event{Kind: EventSort, Column: "status"}, nil))
	props.Pagination.Enabled = boolPtr(false)
	table.Sync(props, paymentRows())

	require.Equal(t, []string{"5", "3", "1", "2", "4"}, rowKeysOf(table.View()))
}

func TestPaginationFollowsSortAndFilter(t *testing.T) {
	t.Parallel()

	table := NewDataTable(paymentProps(), paymentRows())
	ctx := context.Background()
	require.NoError(t, table.Handle(ctx, Event{Kind: EventFilter, Value: "o"}, nil))
	require.NoError(t, table.Handle(ctx, Event{Kind: EventSort, Column: "amount"}, nil))
	require.NoError(t, table.Handle(ctx, Event{Kind: EventSort, Column: "amount"}, nil))

	props := paymentProps()
	props.Pagination.Enabled = boolPtr(false)
	full := NewDataTable(props, paymentRows())
	require.NoError(t, full.Handle(ctx, Event{Kind: EventFilter, Value: "o"}, nil))
	require.NoError(t, full.Handle(ctx, Event{Kind: EventSort, Column: "amount"}, nil))
	require.NoError(t, full.Handle(ctx, Event{Kind: EventSort, Column: "amount"}, nil))

	all := rowKeysOf(full.View())
	require.Equal(t, all[:3], rowKeysOf(table.View()))
}

func TestPageIndexClamps(t *testing.T) {
	t.Parallel()

	table := NewDataTable(paymentProps(), paymentRows())
	ctx := context.Background()
	require.NoError(t, table.Handle(ctx, Event{Kind: EventPage, Index: 9}, nil))
	require.Equal(t, 1, table.View().PageIndex)
	require.NoError(t, table.Handle(ctx, Event{Kind: EventPrevPage}, nil))
	require.NoError(t, table.Handle(ctx, Event{Kind: EventPrevPage}, nil))
	require.Equal(t, 0, table.View().PageIndex)
}

func TestEmptyRowsHaveOnePage(t *testing.T) {
	t.Parallel()

	view := NewDataTable(paymentProps(), nil).View()
	require.Equal(t, 1, view.PageCount)
	require.Empty(t, view.Rows)
	require.False(t, view.AllPageSelected)
}

func TestSelectionReportsFullKeySet(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	table := NewDataTable(paymentProps(), paymentRows())
	ctx := context.Background()

	require.NoError(t, table.Handle(ctx, Event{Kind: EventSelectRow, RowKey: "3"}, rec.emit))
	require.NoError(t, table.Handle(ctx, Event{Kind: EventSelectRow, RowKey: "1"}, rec.emit))
	require.Equal(t, "handleSelectionChange", rec.last().name)
	require.Equal(t, []string{"1", "3"}, rec.last().payload.SelectedRowKeys)

	require.NoError(t, table.Handle(ctx, Event{Kind: EventSelectRow, RowKey: "1"}, rec.emit))
	require.Equal(t, []string{"3"}, rec.last().payload.SelectedRowKeys)
	require.Error(t, table.Handle(ctx, Event{Kind: EventSelectRow, RowKey: "99"}, rec.emit))
}

func TestSelectAllCoversVisiblePageOnly(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	table := NewDataTable(paymentProps(), paymentRows())
	ctx := context.Background()

	require.NoError(t, table.Handle(ctx, Event{Kind: EventSelectAll}, rec.emit))
	require.Equal(t, []string{"1", "2", "3"}, table.SelectedKeys())
	require.True(t, table.View().AllPageSelected)

	require.NoError(t, table.Handle(ctx, Event{Kind: EventFilter, Value: "yahoo"}, rec.emit))
	require.NoError(t, table.Handle(ctx, Event{Kind: EventSelectAll}, rec.emit))
	require.Equal(t, []string{"1", "2", "3", "5"}, rec.last().payload.SelectedRowKeys)

	require.NoError(t, table.Handle(ctx, Event{Kind: EventSelectAll}, rec.emit))
	require.Equal(t, []string{"2", "3"}, table.SelectedKeys())
}

func TestSelectionIgnoresHiddenColumns(t *testing.T) {
	t.Parallel()

	table := NewDataTable(paymentProps(), paymentRows())
	ctx := context.Background()
	require.NoError(t, table.Handle(ctx, Event{Kind: EventToggleColumn, Column: "email"}, nil))
	require.NoError(t, table.Handle(ctx, Event{Kind: EventSelectAll}, nil))
	require.Equal(t, []string{"1", "2", "3"}, table.SelectedKeys())
}

func TestSelectionDisabledFeature(t *testing.T) {
	t.Parallel()

	props := paymentProps()
	props.Features.Selectable = boolPtr(false)
	rec := &recorder{}
	table := NewDataTable(props, paymentRows())
	require.NoError(t, table.Handle(context.Background(), Event{Kind: EventSelectRow, RowKey: "1"}, rec.emit))
	require.Empty(t, table.SelectedKeys())
	require.Empty(t, rec.calls)
}

func TestRowActionsDispatchHandlerWithRow(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	table := NewDataTable(paymentProps(), paymentRows())
	ctx := context.Background()

	require.NoError(t, table.Handle(ctx, Event{Kind: EventRowAction, RowKey: "4", Action: "editPayment"}, rec.emit))
	call := rec.last()
	require.Equal(t, "editPayment", call.name)
	require.Equal(t, "editPayment", call.payload.Action)
	require.Equal(t, "4", call.payload.RowKey)
	require.Equal(t, "Silas22@gmail.com", call.payload.Row["email"])

	require.NoError(t, table.Handle(ctx, Event{Kind: EventRowAction, RowKey: "1", Action: "Archive"}, rec.emit))
	require.Equal(t, "onRowAction", rec.last().name)
	require.Equal(t, "Archive", rec.last().payload.Action)

	require.Error(t, table.Handle(ctx, Event{Kind: EventRowAction, RowKey: "1", Action: "Launch"}, rec.emit))
}

func TestColumnVisibilityIsCosmetic(t *testing.T) {
	t.Parallel()

	table := NewDataTable(paymentProps(), paymentRows())
	ctx := context.Background()
	require.NoError(t, table.Handle(ctx, Event{Kind: EventFilter, Value: "99"}, nil))
	require.NoError(t, table.Handle(ctx, Event{Kind: EventToggleColumn, Column: "email"}, nil))

	view := table.View()
	require.Equal(t, []string{"email"}, view.HiddenColumns)
	require.Len(t, view.Columns, 3)
	require.Equal(t, 1, view.TotalRows, "filter on a hidden column still applies")

	require.NoError(t, table.Handle(ctx, Event{Kind: EventToggleColumn, Column: "status"}, nil))
	require.Len(t, table.View().Columns, 3, "enableHiding false keeps the column")

	require.NoError(t, table.Handle(ctx, Event{Kind: EventToggleColumn, Column: "email"}, nil))
	require.Len(t, table.View().Columns, 4)
}

func TestCellFallbacks(t *testing.T) {
	t.Parallel()

	rows := []map[string]any{
		{"id": "a", "amount": "n/a", "status": "success"},
		{"id": "b", "amount": float64(10), "email": "x@y.z", "status": map[string]any{"type": "Badge", "children": []any{"Active"}}},
	}
	props := paymentProps()
	props.Pagination.Enabled = boolPtr(false)
	view := NewDataTable(props, rows).View()

	first := view.Rows[0]
	require.True(t, first.Cells[0].Missing)
	require.Empty(t, first.Cells[0].Text)
	require.True(t, first.Cells[1].Fallback)
	require.Equal(t, "n/a", first.Cells[1].Text)
	require.Equal(t, "success", first.Cells[2].Variant)

	second := view.Rows[1]
	require.NotNil(t, second.Cells[2].Node)
	require.Equal(t, "Active", second.Cells[2].Text)
}

func TestRowKeysFallBackToIndex(t *testing.T) {
	t.Parallel()

	rows := []map[string]any{{"name": "a"}, {"name": "b"}, {"id": "x"}, {"id": "x"}}
	require.Equal(t, []string{"0", "1", "x", "x#3"}, rowKeys(rows, ""))
}

func TestSyncPrunesStaleState(t *testing.T) {
	t.Parallel()

	table := NewDataTable(paymentProps(), paymentRows())
	ctx := context.Background()
	require.NoError(t, table.Handle(ctx, Event{Kind: EventSelectRow, RowKey: "5"}, nil))
	require.NoError(t, table.Handle(ctx, Event{Kind: EventSort, Column: "email"}, nil))
	require.NoError(t, table.Handle(ctx, Event{Kind: EventPage, Index: 1}, nil))

	table.Sync(paymentProps(), paymentRows()[:2])
	view := table.View()
	require.Empty(t, view.SelectedKeys)
	require.Equal(t, 0, view.PageIndex)
	require.Equal(t, SortState{Column: "email", Direction: SortAsc}, view.Sort)
}
