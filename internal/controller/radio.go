package controller

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/sdui/internal/action"
)

// Option is one selectable value of a radio group.
type Option struct {
	Value    string `yaml:"value" json:"value" validate:"required"`
	Label    string `yaml:"label" json:"label,omitempty"`
	Disabled bool   `yaml:"disabled" json:"disabled,omitempty"`
}

// RadioProps is the RadioGroup prop shape.
type RadioProps struct {
	Value         *string  `yaml:"value"`
	DefaultValue  *string  `yaml:"defaultValue"`
	Disabled      bool     `yaml:"disabled"`
	OnValueChange string   `yaml:"onValueChange"`
	Options       []Option `yaml:"options" validate:"unique=Value,dive"`
}

// Conflict reports whether value and defaultValue are both set.
func (p RadioProps) Conflict() error {
	return CheckControl(p.Value != nil, p.DefaultValue != nil)
}

// Radio backs RadioGroup and menu radio groups. At most one value is
// selected; "" means none.
type Radio struct {
	value    Binding[string]
	options  []Option
	disabled bool
	onChange string
}

// RadioView is the render snapshot of a Radio.
type RadioView struct {
	Selected   string       `json:"selected,omitempty"`
	Disabled   bool         `json:"disabled,omitempty"`
	Controlled bool         `json:"controlled,omitempty"`
	Options    []OptionView `json:"options"`
}

// OptionView is one option with its selection state.
type OptionView struct {
	Option
	Selected bool `json:"selected"`
}

// NewRadio builds a radio group from its first render's props.
func NewRadio(props RadioProps) (*Radio, error) {
	binding, err := NewBinding(props.Value, props.DefaultValue, "")
	if err != nil {
		return nil, err
	}
	r := &Radio{value: binding}
	r.Sync(props)
	return r, nil
}

// Sync applies a later render's props.
func (r *Radio) Sync(props RadioProps) {
	if props.Value != nil {
		r.value.Sync(*props.Value)
	}
	r.options = append([]Option(nil), props.Options...)
	r.disabled = props.Disabled
	r.onChange = props.OnValueChange
}

// Selected returns the selected value, "" when none.
func (r *Radio) Selected() string {
	return r.value.Value()
}

// IsSelected reports whether v is the selected value.
func (r *Radio) IsSelected(v string) bool {
	return v != "" && r.value.Value() == v
}

// Disabled reports whether the whole group is disabled.
func (r *Radio) Disabled() bool {
	return r.disabled
}

// View returns the render snapshot.
func (r *Radio) View() RadioView {
	view := RadioView{
		Selected:   r.value.Value(),
		Disabled:   r.disabled,
		Controlled: r.value.IsControlled(),
		Options:    make([]OptionView, 0, len(r.options)),
	}
	for _, opt := range r.options {
		view.Options = append(view.Options, OptionView{Option: opt, Selected: r.IsSelected(opt.Value)})
	}
	return view
}

// Select replaces the selection with value in one step.
func (r *Radio) Select(ctx context.Context, value string, emit Emit) error {
	opt, ok := r.option(value)
	if !ok {
		return fmt.Errorf("radio group has no option %q", value)
	}
	if r.disabled || opt.Disabled {
		return nil
	}
	r.value.Propose(value)
	notify(ctx, emit, r.onChange, action.Payload{Event: "valueChange", Value: value})
	return nil
}

// Handle applies a select event.
func (r *Radio) Handle(ctx context.Context, ev Event, emit Emit) error {
	if ev.Kind != EventSelect {
		return unsupported(ev.Kind)
	}
	value, ok := ev.Value.(string)
	if !ok {
		return fmt.Errorf("radio selection must be a string, got %T", ev.Value)
	}
	return r.Select(ctx, value, emit)
}

func (r *Radio) option(value string) (Option, bool) {
	for _, opt := range r.options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}
