// Package controller holds the state machines behind stateful widgets.
// Controllers are owned by exactly one resolver session, are not safe for
// concurrent use, and never call application code directly: every outward
// notification goes through an Emit function bound to the action dispatcher.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/sdui/internal/action"
)

// ErrControlConflict marks a widget given both its controlling prop and its
// default prop.
var ErrControlConflict = errors.New("controlled and default values are mutually exclusive")

// ErrUnknownEvent marks an event a controller does not understand.
var ErrUnknownEvent = errors.New("event not supported by this widget")

// Emit hands a named action to the dispatcher. The returned flag reports
// whether a handler is registered for name; the handler may run after Handle
// returns.
type Emit func(ctx context.Context, name string, payload action.Payload) bool

// Controller is the common surface used by the resolver to route events.
type Controller interface {
	Handle(ctx context.Context, ev Event, emit Emit) error
}

// Binding is a value either owned by the widget or controlled by the caller.
// The mode is fixed at construction.
type Binding[T any] struct {
	controlled bool
	value      T
}

// Controlled returns a binding that reflects v and never mutates itself.
func Controlled[T any](v T) Binding[T] {
	return Binding[T]{controlled: true, value: v}
}

// Owned returns a binding seeded with v that the widget mutates.
func Owned[T any](v T) Binding[T] {
	return Binding[T]{value: v}
}

// Value returns the current value.
func (b Binding[T]) Value() T {
	return b.value
}

// IsControlled reports the binding mode.
func (b Binding[T]) IsControlled() bool {
	return b.controlled
}

// Sync applies the value supplied by the latest render. Owned bindings ignore
// it: their default only seeds the first render.
func (b *Binding[T]) Sync(v T) {
	if b.controlled {
		b.value = v
	}
}

// Propose records a user-requested value. Only owned bindings change; the
// caller is expected to notify the controlling side either way.
func (b *Binding[T]) Propose(v T) bool {
	if b.controlled {
		return false
	}
	b.value = v
	return true
}

// NewBinding picks the binding mode from prop presence: a controlling value
// yields Controlled, a default yields Owned, neither yields Owned(zero).
func NewBinding[T any](value, defaultValue *T, zero T) (Binding[T], error) {
	if err := CheckControl(value != nil, defaultValue != nil); err != nil {
		return Binding[T]{}, err
	}
	switch {
	case value != nil:
		return Controlled(*value), nil
	case defaultValue != nil:
		return Owned(*defaultValue), nil
	default:
		return Owned(zero), nil
	}
}

// CheckControl rejects a widget that carries both its controlling prop and
// its default prop. Strategies call it on every pass, not only when the
// binding is first created.
func CheckControl(hasValue, hasDefault bool) error {
	if hasValue && hasDefault {
		return ErrControlConflict
	}
	return nil
}

// notify emits name when it is set.
func notify(ctx context.Context, emit Emit, name string, payload action.Payload) {
	if name == "" || emit == nil {
		return
	}
	emit(ctx, name, payload)
}

func unsupported(kind EventKind) error {
	return fmt.Errorf("%w: %s", ErrUnknownEvent, kind)
}
