package controller

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/sdui/internal/action"
)

// SliderProps is the Slider prop shape after numeric coercion.
type SliderProps struct {
	Value         []float64
	DefaultValue  []float64
	Min           float64
	Max           float64
	Step          float64
	Disabled      bool
	OnValueChange string
}

// DefaultSliderProps returns the 0..100 step 1 range.
func DefaultSliderProps() SliderProps {
	return SliderProps{Min: 0, Max: 100, Step: 1}
}

// Validate checks the range definition.
func (p SliderProps) Validate() error {
	switch {
	case p.Step <= 0 || math.IsNaN(p.Step):
		return fmt.Errorf("step must be positive, got %v", p.Step)
	case !(p.Max > p.Min):
		return fmt.Errorf("max (%v) must be greater than min (%v)", p.Max, p.Min)
	}
	return nil
}

// Conflict reports whether value and defaultValue are both set.
func (p SliderProps) Conflict() error {
	return CheckControl(p.Value != nil, p.DefaultValue != nil)
}

// Slider backs Slider. Every value it reports lies on the grid
// min + k*step within [min, max], and handles stay ordered.
type Slider struct {
	values   Binding[[]float64]
	min      float64
	max      float64
	step     float64
	decimals int
	disabled bool
	onChange string
}

// SliderView is the render snapshot of a Slider.
type SliderView struct {
	Values     []float64 `json:"values"`
	Min        float64   `json:"min"`
	Max        float64   `json:"max"`
	Step       float64   `json:"step"`
	Disabled   bool      `json:"disabled,omitempty"`
	Controlled bool      `json:"controlled,omitempty"`
}

// NewSlider builds a slider from its first render's props.
func NewSlider(props SliderProps) (*Slider, error) {
	if err := props.Validate(); err != nil {
		return nil, err
	}
	var value, def *[]float64
	if props.Value != nil {
		value = &props.Value
	}
	if props.DefaultValue != nil {
		def = &props.DefaultValue
	}
	binding, err := NewBinding(value, def, []float64{props.Min})
	if err != nil {
		return nil, err
	}
	s := &Slider{values: binding}
	s.applyRange(props)
	if !binding.IsControlled() {
		s.values = Owned(s.normalize(binding.Value()))
	}
	s.Sync(props)
	return s, nil
}

func (s *Slider) applyRange(props SliderProps) {
	s.min, s.max, s.step = props.Min, props.Max, props.Step
	s.decimals = max(decimalPlaces(props.Step), decimalPlaces(props.Min))
}

// Sync applies a later render's props. A range change renormalises owned
// values so they stay on the new grid.
func (s *Slider) Sync(props SliderProps) {
	if props.Validate() == nil {
		s.applyRange(props)
	}
	if s.values.IsControlled() {
		if props.Value != nil {
			s.values.Sync(append([]float64(nil), props.Value...))
		}
	} else {
		s.values = Owned(s.normalize(s.values.Value()))
	}
	s.disabled = props.Disabled
	s.onChange = props.OnValueChange
}

// Values returns the values to display, always on the grid.
func (s *Slider) Values() []float64 {
	return s.normalize(s.values.Value())
}

// View returns the render snapshot.
func (s *Slider) View() SliderView {
	return SliderView{
		Values:     s.Values(),
		Min:        s.min,
		Max:        s.max,
		Step:       s.step,
		Disabled:   s.disabled,
		Controlled: s.values.IsControlled(),
	}
}

// Handle applies setValue and step events.
func (s *Slider) Handle(ctx context.Context, ev Event, emit Emit) error {
	current := s.Values()
	if ev.Index < 0 || ev.Index >= len(current) {
		return fmt.Errorf("slider has no handle %d", ev.Index)
	}

	var target float64
	switch ev.Kind {
	case EventSetValue:
		v, ok := ev.Value.(float64)
		if !ok {
			return fmt.Errorf("slider value must be a number, got %T", ev.Value)
		}
		target = v
	case EventStep:
		target = current[ev.Index] + float64(ev.Steps)*s.step
	default:
		return unsupported(ev.Kind)
	}
	if s.disabled {
		return nil
	}

	next := append([]float64(nil), current...)
	next[ev.Index] = s.snap(target)
	if ev.Index > 0 && next[ev.Index] < next[ev.Index-1] {
		next[ev.Index] = next[ev.Index-1]
	}
	if ev.Index < len(next)-1 && next[ev.Index] > next[ev.Index+1] {
		next[ev.Index] = next[ev.Index+1]
	}
	if next[ev.Index] == current[ev.Index] {
		return nil
	}

	s.values.Propose(next)
	notify(ctx, emit, s.onChange, action.Payload{Event: "valueChange", Value: next})
	return nil
}

// snap maps v onto the closest grid value within the range.
func (s *Slider) snap(v float64) float64 {
	if math.IsNaN(v) {
		v = s.min
	}
	steps := math.Floor((s.max-s.min)/s.step + 1e-9)
	k := math.Round((v - s.min) / s.step)
	k = math.Max(0, math.Min(k, steps))
	return s.round(s.min + k*s.step)
}

func (s *Slider) round(v float64) float64 {
	scale := math.Pow(10, float64(s.decimals))
	return math.Round(v*scale) / scale
}

func (s *Slider) normalize(values []float64) []float64 {
	if len(values) == 0 {
		return []float64{s.snap(s.min)}
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = s.snap(v)
		if i > 0 && out[i] < out[i-1] {
			out[i] = out[i-1]
		}
	}
	return out
}

func decimalPlaces(f float64) int {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		return len(s) - idx - 1
	}
	return 0
}
