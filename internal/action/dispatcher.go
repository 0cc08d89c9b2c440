package action

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/sdui/internal/logger"
	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
)

// ErrNoHandler marks a dispatch to a name nobody registered.
var ErrNoHandler = errors.New("no handler registered")

// Payload is the structured, serialisable argument handed to a handler.
type Payload struct {
	// Source is the identity of the node that fired the action.
	Source string `json:"source,omitempty"`
	// Event names the interaction, e.g. "checkedChange" or "rowAction".
	Event string `json:"event,omitempty"`
	// Value carries the proposed new value for value-change actions.
	Value any `json:"value,omitempty"`
	// Action is the row action handler name for DataTable row actions.
	Action          string         `json:"action,omitempty"`
	RowKey          string         `json:"rowKey,omitempty"`
	Row             map[string]any `json:"row,omitempty"`
	SelectedRowKeys []string       `json:"selectedRowKeys,omitempty"`
}

// Handler is application code bound to an action name.
type Handler func(ctx context.Context, payload Payload) error

// Report records one dispatch attempt.
type Report struct {
	Name    string
	Payload Payload
	Handled bool
	Err     error
}

// Dispatcher resolves action names to handlers registered by the embedding
// application. Dispatching an unknown name is reported and otherwise a no-op.
type Dispatcher struct {
	logger   *logger.Logger
	mu       sync.RWMutex
	handlers map[string]Handler
	subs     []subscriptionEntry
	nextID   int
	history  []Report
	keep     int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for dispatch reports.
func WithLogger(log *logger.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = log
	}
}

// WithHistory keeps the last n reports available through History.
func WithHistory(n int) Option {
	return func(d *Dispatcher) {
		d.keep = n
	}
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{handlers: make(map[string]Handler)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register binds a handler to name. Names are unique.
func (d *Dispatcher) Register(name string, handler Handler) error {
	if name == "" {
		return sduierrors.NewActionError(name, "", fmt.Errorf("action name is empty"))
	}
	if handler == nil {
		return sduierrors.NewActionError(name, "", fmt.Errorf("handler is nil"))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.handlers[name]; exists {
		return sduierrors.NewActionError(name, "", fmt.Errorf("handler already registered"))
	}
	d.handlers[name] = handler
	return nil
}

// Has reports whether a handler exists for name.
func (d *Dispatcher) Has(name string) bool {
	if d == nil {
		return false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.handlers[name]
	return ok
}

// Names lists registered action names in sorted order.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke calls the handler registered under name. A missing handler, a
// handler error and a handler panic are all reported, never propagated; it
// returns whether a handler ran successfully.
func (d *Dispatcher) Invoke(ctx context.Context, name string, payload Payload) bool {
	if d == nil || name == "" {
		return false
	}

	d.mu.RLock()
	handler, ok := d.handlers[name]
	subs := append([]subscriptionEntry(nil), d.subs...)
	d.mu.RUnlock()

	report := Report{Name: name, Payload: payload}
	if !ok {
		report.Err = sduierrors.NewActionError(name, payload.Source, ErrNoHandler)
		d.logger.Warn(ctx, "action has no handler", "action", name, "source", payload.Source, "event", payload.Event)
	} else if err := call(ctx, handler, payload); err != nil {
		report.Err = sduierrors.NewActionError(name, payload.Source, err)
		d.logger.Error(ctx, err, "action handler failed", "action", name, "source", payload.Source)
	} else {
		report.Handled = true
		d.logger.Debug(ctx, "action dispatched", "action", name, "source", payload.Source, "event", payload.Event)
	}

	d.record(report)
	for _, entry := range subs {
		entry.fn(ctx, report)
	}
	return report.Handled
}

// call runs handler, turning a panic into an error.
func call(ctx context.Context, handler Handler, payload Payload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler(ctx, payload)
}

func (d *Dispatcher) record(report Report) {
	if d.keep <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.history = append(d.history, report)
	if over := len(d.history) - d.keep; over > 0 {
		d.history = append([]Report(nil), d.history[over:]...)
	}
}

// History returns the retained dispatch reports, oldest first.
func (d *Dispatcher) History() []Report {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Report(nil), d.history...)
}

// Subscription cancels an observer registered with Subscribe.
type Subscription interface {
	Unsubscribe()
}

// Subscribe observes every dispatch report, handled or not.
func (d *Dispatcher) Subscribe(fn func(ctx context.Context, report Report)) Subscription {
	if fn == nil {
		return noopSubscription{}
	}
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscriptionEntry{id: id, fn: fn})
	d.mu.Unlock()

	return subscription{
		cancel: func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			for i, entry := range d.subs {
				if entry.id == id {
					d.subs = append(d.subs[:i], d.subs[i+1:]...)
					break
				}
			}
		},
	}
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

type subscription struct {
	cancel func()
}

func (s subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

type subscriptionEntry struct {
	id int
	fn func(ctx context.Context, report Report)
}
