package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Control renders a labelled on/off input: checkbox, switch or radio option.
type Control struct {
	BaseComponent
	kind     ControlKind
	label    string
	on       bool
	focused  bool
	disabled bool
}

// ControlKind selects the glyph pair of a Control.
type ControlKind int

const (
	ControlCheckbox ControlKind = iota
	ControlSwitch
	ControlRadio
)

// NewControl creates a control of kind.
func NewControl(kind ControlKind, label string, on bool) *Control {
	return &Control{BaseComponent: NewBaseComponent(), kind: kind, label: label, on: on}
}

// View renders the control.
func (c *Control) View() string {
	return c.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the control under the context theme.
func (c *Control) ViewWithContext(ctx RenderContext) string {
	g := ctx.Theme.Glyphs
	var glyph string
	switch c.kind {
	case ControlSwitch:
		glyph = pick(c.on, g.SwitchOn, g.SwitchOff)
	case ControlRadio:
		glyph = pick(c.on, g.RadioOn, g.RadioOff)
	default:
		glyph = pick(c.on, g.CheckOn, g.CheckOff)
	}
	style := c.ComputeStyle(ctx.Theme)
	if c.on {
		style = Foreground(TonePrimary)(style, ctx.Theme)
	}
	if c.disabled {
		style = Faint()(style, ctx.Theme)
	}
	out := style.Render(glyph)
	if c.label != "" {
		out += " " + c.label
	}
	if c.focused {
		out = lipgloss.NewStyle().Reverse(true).Render(out)
	}
	return out
}

// WithFocus marks the control as focused.
func (c *Control) WithFocus(focused bool) *Control {
	c.focused = focused
	return c
}

// WithDisabled greys the control out.
func (c *Control) WithDisabled(disabled bool) *Control {
	c.disabled = disabled
	return c
}

func pick(on bool, yes, no string) string {
	if on {
		return yes
	}
	return no
}

// DefaultTrackWidth is the slider and progress width when the context is
// unbounded.
const DefaultTrackWidth = 30

// Slider renders a track with one handle per value.
type Slider struct {
	BaseComponent
	min, max float64
	values   []float64
	focused  bool
	active   int
	width    int
}

// NewSlider creates a slider over [min, max].
func NewSlider(lo, hi float64, values ...float64) *Slider {
	return &Slider{BaseComponent: NewBaseComponent(), min: lo, max: hi, values: values}
}

// View renders the slider.
func (s *Slider) View() string {
	return s.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the track followed by the values.
func (s *Slider) ViewWithContext(ctx RenderContext) string {
	g := ctx.Theme.Glyphs
	labels := make([]string, len(s.values))
	for i, v := range s.values {
		labels[i] = formatValue(v)
	}
	suffix := " " + strings.Join(labels, " – ")

	width := s.width
	if width <= 0 {
		width = DefaultTrackWidth
		if ctx.Width > 0 {
			width = min(width, max(ctx.Width-lipgloss.Width(suffix), 5))
		}
	}

	positions := make([]int, len(s.values))
	for i, v := range s.values {
		positions[i] = s.position(v, width)
	}
	low, high := 0, -1
	switch len(positions) {
	case 0:
	case 1:
		high = positions[0]
	default:
		low, high = positions[0], positions[len(positions)-1]
	}

	track := make([]string, width)
	for i := range track {
		if i >= low && i <= high {
			track[i] = g.SliderFill
		} else {
			track[i] = g.Slider
		}
	}
	handle := Foreground(TonePrimary)(s.ComputeStyle(ctx.Theme), ctx.Theme)
	for i, p := range positions {
		h := handle
		if s.focused && i == s.active {
			h = h.Reverse(true)
		}
		track[p] = h.Render(g.SliderHandle)
	}
	return strings.Join(track, "") + suffix
}

func (s *Slider) position(v float64, width int) int {
	if s.max <= s.min || width <= 1 {
		return 0
	}
	p := int(math.Round((v - s.min) / (s.max - s.min) * float64(width-1)))
	return min(max(p, 0), width-1)
}

// WithFocus highlights the handle at index.
func (s *Slider) WithFocus(focused bool, index int) *Slider {
	s.focused, s.active = focused, index
	return s
}

// WithWidth fixes the track width.
func (s *Slider) WithWidth(width int) *Slider {
	s.width = width
	return s
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// Progress renders a bar with bubbles/progress.
type Progress struct {
	percent   float64
	label     string
	showValue bool
	width     int
}

// NewProgress creates a bar filled to percent, a fraction in [0, 1].
func NewProgress(percent float64) *Progress {
	return &Progress{percent: math.Max(0, math.Min(percent, 1))}
}

// View renders the bar.
func (p *Progress) View() string {
	return p.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the bar within the context width.
func (p *Progress) ViewWithContext(ctx RenderContext) string {
	width := p.width
	if width <= 0 {
		width = DefaultTrackWidth
		if ctx.Width > 0 {
			width = min(max(ctx.Width-6, 5), 60)
		}
	}
	opts := []progress.Option{progress.WithWidth(width)}
	if !p.showValue {
		opts = append(opts, progress.WithoutPercentage())
	}
	if base := ctx.Theme.Tone(TonePrimary).Base; base.Dark != "" {
		opts = append(opts, progress.WithSolidFill(base.Dark))
	} else {
		opts = append(opts, progress.WithFillCharacters('#', '.'))
	}
	bar := progress.New(opts...)
	out := bar.ViewAs(p.percent)
	if p.label != "" {
		out = p.label + "\n" + out
	}
	return out
}

// WithLabel puts a caption above the bar.
func (p *Progress) WithLabel(label string) *Progress {
	p.label = label
	return p
}

// WithValue appends the percentage.
func (p *Progress) WithValue(show bool) *Progress {
	p.showValue = show
	return p
}

// WithWidth fixes the bar width.
func (p *Progress) WithWidth(width int) *Progress {
	p.width = width
	return p
}
