package controller

import (
	"context"

	"github.com/alexisbeaulieu97/sdui/internal/action"
)

// ButtonProps is the Button prop shape.
type ButtonProps struct {
	Label    string `yaml:"label"`
	Variant  string `yaml:"variant" validate:"omitempty,oneof=default destructive outline secondary ghost link"`
	Size     string `yaml:"size" validate:"omitempty,oneof=default sm lg icon"`
	Disabled bool   `yaml:"disabled"`
	Loading  bool   `yaml:"loading"`
	OnClick  string `yaml:"onClick"`
}

// Button is the stateless trigger behind Button: activation dispatches
// onClick unless the button is disabled or loading.
type Button struct {
	label    string
	disabled bool
	onClick  string
}

// NewButton builds a button trigger.
func NewButton(props ButtonProps) *Button {
	b := &Button{}
	b.Sync(props)
	return b
}

// Sync applies a later render's props. label is the text dispatched as the
// payload value.
func (b *Button) Sync(props ButtonProps) {
	b.label = props.Label
	b.disabled = props.Disabled || props.Loading
	b.onClick = props.OnClick
}

// SetLabel records the rendered label when it comes from children.
func (b *Button) SetLabel(label string) {
	b.label = label
}

// Handle applies an activate event.
func (b *Button) Handle(ctx context.Context, ev Event, emit Emit) error {
	if ev.Kind != EventActivate {
		return unsupported(ev.Kind)
	}
	if b.disabled {
		return nil
	}
	notify(ctx, emit, b.onClick, action.Payload{Event: "click", Value: b.label})
	return nil
}
