package controller

import (
	"context"

	"github.com/alexisbeaulieu97/sdui/internal/action"
)

// ToggleProps is the Checkbox/Switch prop shape.
type ToggleProps struct {
	Checked         *bool  `yaml:"checked"`
	DefaultChecked  *bool  `yaml:"defaultChecked"`
	Disabled        bool   `yaml:"disabled"`
	OnCheckedChange string `yaml:"onCheckedChange"`
	Label           string `yaml:"label"`
	Value           string `yaml:"value"`
}

// Conflict reports whether checked and defaultChecked are both set.
func (p ToggleProps) Conflict() error {
	return CheckControl(p.Checked != nil, p.DefaultChecked != nil)
}

// Toggle backs Checkbox and Switch.
type Toggle struct {
	checked  Binding[bool]
	disabled bool
	onChange string
}

// ToggleView is the render snapshot of a Toggle.
type ToggleView struct {
	Checked    bool `json:"checked"`
	Disabled   bool `json:"disabled,omitempty"`
	Controlled bool `json:"controlled,omitempty"`
}

// NewToggle builds a toggle from its first render's props.
func NewToggle(props ToggleProps) (*Toggle, error) {
	binding, err := NewBinding(props.Checked, props.DefaultChecked, false)
	if err != nil {
		return nil, err
	}
	t := &Toggle{checked: binding}
	t.Sync(props)
	return t, nil
}

// Sync applies a later render's props.
func (t *Toggle) Sync(props ToggleProps) {
	if props.Checked != nil {
		t.checked.Sync(*props.Checked)
	}
	t.disabled = props.Disabled
	t.onChange = props.OnCheckedChange
}

// Checked returns the state to display.
func (t *Toggle) Checked() bool {
	return t.checked.Value()
}

// View returns the render snapshot.
func (t *Toggle) View() ToggleView {
	return ToggleView{Checked: t.checked.Value(), Disabled: t.disabled, Controlled: t.checked.IsControlled()}
}

// Handle applies a toggle event.
func (t *Toggle) Handle(ctx context.Context, ev Event, emit Emit) error {
	if ev.Kind != EventToggle {
		return unsupported(ev.Kind)
	}
	if t.disabled {
		return nil
	}
	next := !t.checked.Value()
	if b, ok := ev.Value.(bool); ok {
		next = b
	}
	t.checked.Propose(next)
	notify(ctx, emit, t.onChange, action.Payload{Event: "checkedChange", Value: next})
	return nil
}
