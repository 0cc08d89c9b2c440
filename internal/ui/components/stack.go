package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Direction specifies the layout direction for a Stack.
type Direction int

const (
	DirectionVertical Direction = iota
	DirectionHorizontal
)

// Justify distributes free space along the main axis of a horizontal stack.
type Justify int

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifyBetween
	JustifyAround
	JustifyEvenly
)

// ParseJustify maps wire justify names onto Justify.
func ParseJustify(name string) Justify {
	switch strings.TrimPrefix(strings.ToLower(name), "space-") {
	case "center":
		return JustifyCenter
	case "end", "flex-end":
		return JustifyEnd
	case "between":
		return JustifyBetween
	case "around":
		return JustifyAround
	case "evenly":
		return JustifyEvenly
	default:
		return JustifyStart
	}
}

// Stack arranges children in a single direction, in wrapped rows, or in a
// grid of equal columns.
type Stack struct {
	BaseComponent
	children  []Renderable
	direction Direction
	gap       int
	align     Alignment
	justify   Justify
	wrap      bool
	columns   int
	padding   int
	border    bool
	maxWidth  int
	center    bool
}

// NewStack creates a vertical stack.
func NewStack(children ...Renderable) *Stack {
	return &Stack{BaseComponent: NewBaseComponent(), children: children}
}

// VStack creates a vertical stack.
func VStack(children ...Renderable) *Stack {
	return NewStack(children...)
}

// HStack creates a horizontal stack.
func HStack(children ...Renderable) *Stack {
	return NewStack(children...).WithDirection(DirectionHorizontal)
}

// Grid creates a stack laid out in columns.
func Grid(columns int, children ...Renderable) *Stack {
	return NewStack(children...).WithColumns(columns)
}

// View renders the stack and its children.
func (s *Stack) View() string {
	return s.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the stack within the context width.
func (s *Stack) ViewWithContext(ctx RenderContext) string {
	outer := ctx
	if s.maxWidth > 0 && (outer.Width == 0 || s.maxWidth < outer.Width) {
		outer = outer.WithWidth(s.maxWidth)
	}
	frame := 2 * s.padding
	if s.border {
		frame += 2
	}
	inner := outer.Shrink(frame)

	var content string
	switch {
	case s.columns > 0:
		content = s.grid(inner)
	case s.direction == DirectionHorizontal:
		content = s.row(inner)
	default:
		content = s.column(inner)
	}

	style := s.ComputeStyle(ctx.Theme)
	if s.padding > 0 {
		style = style.Padding(0, s.padding)
	}
	if s.border {
		style = style.Border(ctx.Theme.Borders.Normal)
		style = BorderTone(ToneMuted)(style, ctx.Theme)
	}
	out := style.Render(content)
	if s.center && ctx.Width > 0 {
		out = lipgloss.PlaceHorizontal(ctx.Width, lipgloss.Center, out)
	}
	return out
}

func (s *Stack) views(ctx RenderContext) []string {
	views := make([]string, 0, len(s.children))
	for _, child := range s.children {
		if view := viewOf(child, ctx); view != "" {
			views = append(views, view)
		}
	}
	return views
}

func (s *Stack) column(ctx RenderContext) string {
	views := s.views(ctx)
	if s.gap > 0 && len(views) > 1 {
		spaced := make([]string, 0, 2*len(views)-1)
		spacer := strings.Repeat("\n", s.gap-1)
		for i, view := range views {
			if i > 0 {
				spaced = append(spaced, spacer)
			}
			spaced = append(spaced, view)
		}
		views = spaced
	}
	align := s.align.Position()
	if s.center {
		align = lipgloss.Center
	}
	return lipgloss.JoinVertical(align, views...)
}

func (s *Stack) row(ctx RenderContext) string {
	if s.wrap {
		return s.wrapped(ctx)
	}
	childCtx := ctx
	if ctx.Width > 0 && len(s.children) > 0 {
		available := ctx.Width - s.gap*(len(s.children)-1)
		childCtx = ctx.WithWidth(max(available/len(s.children), 1))
	}
	return s.joinRow(s.views(childCtx), ctx.Width)
}

// wrapped packs children greedily into rows no wider than the context.
func (s *Stack) wrapped(ctx RenderContext) string {
	views := s.views(ctx)
	if ctx.Width == 0 {
		return s.joinRow(views, 0)
	}
	var rows []string
	var current []string
	used := 0
	for _, view := range views {
		w := lipgloss.Width(view)
		need := w
		if len(current) > 0 {
			need += s.gap
		}
		if len(current) > 0 && used+need > ctx.Width {
			rows = append(rows, s.joinRow(current, ctx.Width))
			current, used, need = nil, 0, w
		}
		current = append(current, view)
		used += need
	}
	if len(current) > 0 {
		rows = append(rows, s.joinRow(current, ctx.Width))
	}
	return strings.Join(rows, "\n")
}

// joinRow joins views horizontally, distributing free space per justify.
func (s *Stack) joinRow(views []string, width int) string {
	if len(views) == 0 {
		return ""
	}
	gaps := make([]int, len(views)+1)
	for i := 1; i < len(views); i++ {
		gaps[i] = s.gap
	}
	if width > 0 {
		used := 0
		for _, view := range views {
			used += lipgloss.Width(view)
		}
		for _, g := range gaps {
			used += g
		}
		free := width - used
		if free > 0 {
			distribute(gaps, free, s.justify)
		}
	}

	parts := make([]string, 0, 2*len(views)+1)
	for i, view := range views {
		if gaps[i] > 0 {
			parts = append(parts, strings.Repeat(" ", gaps[i]))
		}
		parts = append(parts, view)
	}
	return lipgloss.JoinHorizontal(s.align.crossPosition(), parts...)
}

// distribute adds free columns to the gap slots: index 0 is before the first
// child, the last index after the last child.
func distribute(gaps []int, free int, justify Justify) {
	inner := len(gaps) - 2
	switch justify {
	case JustifyEnd:
		gaps[0] += free
	case JustifyCenter:
		gaps[0] += free / 2
	case JustifyBetween:
		if inner == 0 {
			return
		}
		for i := 1; i <= inner; i++ {
			gaps[i] += free / inner
		}
		gaps[1] += free % inner
	case JustifyAround, JustifyEvenly:
		slots := len(gaps) - 1
		for i := 0; i < slots; i++ {
			gaps[i] += free / (slots + 1)
		}
	}
}

func (s *Stack) grid(ctx RenderContext) string {
	cols := s.columns
	cellCtx := ctx
	if ctx.Width > 0 {
		cellCtx = ctx.WithWidth(max((ctx.Width-s.gap*(cols-1))/cols, 1))
	}
	views := s.views(cellCtx)
	cellWidth := cellCtx.Width
	if cellWidth == 0 {
		for _, view := range views {
			cellWidth = max(cellWidth, lipgloss.Width(view))
		}
	}

	cell := lipgloss.NewStyle().Width(cellWidth)
	var rows []string
	for start := 0; start < len(views); start += cols {
		end := min(start+cols, len(views))
		parts := make([]string, 0, 2*cols)
		for i, view := range views[start:end] {
			if i > 0 && s.gap > 0 {
				parts = append(parts, strings.Repeat(" ", s.gap))
			}
			parts = append(parts, cell.Render(view))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	sep := "\n"
	if s.gap > 1 {
		sep = "\n\n"
	}
	return strings.Join(rows, sep)
}

func (a Alignment) crossPosition() lipgloss.Position {
	switch a {
	case AlignCenter:
		return lipgloss.Center
	case AlignEnd:
		return lipgloss.Bottom
	default:
		return lipgloss.Top
	}
}

// WithDirection sets the layout direction.
func (s *Stack) WithDirection(dir Direction) *Stack {
	s.direction = dir
	return s
}

// WithGap sets the spacing between children.
func (s *Stack) WithGap(gap int) *Stack {
	s.gap = max(gap, 0)
	return s
}

// WithAlign sets the cross axis alignment.
func (s *Stack) WithAlign(align Alignment) *Stack {
	s.align = align
	return s
}

// WithJustify sets the main axis distribution of horizontal stacks.
func (s *Stack) WithJustify(justify Justify) *Stack {
	s.justify = justify
	return s
}

// WithWrap lets horizontal children flow onto further rows.
func (s *Stack) WithWrap(wrap bool) *Stack {
	s.wrap = wrap
	return s
}

// WithColumns lays the children out in a grid.
func (s *Stack) WithColumns(columns int) *Stack {
	s.columns = max(columns, 0)
	return s
}

// WithPadding sets horizontal padding.
func (s *Stack) WithPadding(padding int) *Stack {
	s.padding = max(padding, 0)
	return s
}

// WithBorder draws a border around the stack.
func (s *Stack) WithBorder(border bool) *Stack {
	s.border = border
	return s
}

// WithMaxWidth caps the stack width.
func (s *Stack) WithMaxWidth(width int) *Stack {
	s.maxWidth = max(width, 0)
	return s
}

// WithCenter centres the stack and its children horizontally.
func (s *Stack) WithCenter(center bool) *Stack {
	s.center = center
	return s
}

// Add appends children to the stack.
func (s *Stack) Add(children ...Renderable) *Stack {
	s.children = append(s.children, children...)
	return s
}

// Children returns the child renderables.
func (s *Stack) Children() []Renderable {
	return s.children
}
