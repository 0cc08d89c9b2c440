package controller

// EventKind names a discrete user interaction.
type EventKind string

const (
	// Toggle flips a checkbox or switch.
	EventToggle EventKind = "toggle"
	// Select picks Value in a radio group.
	EventSelect EventKind = "select"
	// SetValue moves slider handle Index to Value.
	EventSetValue EventKind = "setValue"
	// Step moves slider handle Index by Steps increments.
	EventStep EventKind = "step"

	EventSort         EventKind = "sort"
	EventFilter       EventKind = "filter"
	EventPage         EventKind = "page"
	EventNextPage     EventKind = "nextPage"
	EventPrevPage     EventKind = "prevPage"
	EventSelectRow    EventKind = "selectRow"
	EventSelectAll    EventKind = "selectAll"
	EventRowAction    EventKind = "rowAction"
	EventToggleColumn EventKind = "toggleColumn"

	// Open opens the menu or submenu addressed by Path.
	EventOpen EventKind = "open"
	// Close closes the whole menu bar.
	EventClose EventKind = "close"
	// Activate triggers the menu entry addressed by Path.
	EventActivate EventKind = "activate"
)

// Event is one interaction routed to a controller. Only the fields relevant
// to Kind are read.
type Event struct {
	Kind   EventKind
	Value  any
	Index  int
	Steps  int
	Column string
	RowKey string
	Action string
	Path   []int
}
