// Package resolver walks a document tree and produces the render tree,
// binding stateful nodes to controllers that survive across passes.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/alexisbeaulieu97/sdui/internal/action"
	"github.com/alexisbeaulieu97/sdui/internal/controller"
	"github.com/alexisbeaulieu97/sdui/internal/logger"
	"github.com/alexisbeaulieu97/sdui/internal/registry"
	"github.com/alexisbeaulieu97/sdui/internal/render"
	"github.com/alexisbeaulieu97/sdui/internal/responsive"
	"github.com/alexisbeaulieu97/sdui/internal/spec"
)

// ErrNoController marks an interaction addressed to a key without state.
var ErrNoController = errors.New("no controller bound to key")

// Session owns the controllers of one rendered tree. Render and Interact are
// serialised; a session is meant for one UI loop.
type Session struct {
	registry   *registry.Registry
	dispatcher *action.Dispatcher
	logger     *logger.Logger

	mu         sync.Mutex
	breakpoint responsive.Breakpoint
	doc        *spec.Document
	store      map[string]*binding
	pass       uint64
}

type binding struct {
	nodeType string
	ctrl     any
	pass     uint64
}

// Option configures a Session.
type Option func(*Session)

// WithBreakpoint sets the initial active breakpoint.
func WithBreakpoint(bp responsive.Breakpoint) Option {
	return func(s *Session) {
		s.breakpoint = bp
	}
}

// WithDispatcher routes widget actions to d.
func WithDispatcher(d *action.Dispatcher) Option {
	return func(s *Session) {
		s.dispatcher = d
	}
}

// WithLogger sets the session logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Session) {
		s.logger = log
	}
}

// WithDocument supplies the data sources of doc to every pass.
func WithDocument(doc *spec.Document) Option {
	return func(s *Session) {
		s.doc = doc
	}
}

// NewSession creates a session over reg. The registry is frozen: nothing may
// be registered once rendering starts.
func NewSession(reg *registry.Registry, opts ...Option) *Session {
	reg.Freeze()
	s := &Session{
		registry: reg,
		store:    make(map[string]*binding),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dispatcher == nil {
		s.dispatcher = action.NewDispatcher(action.WithLogger(s.logger))
	}
	s.logger = s.logger.With("component", "resolver")
	return s
}

// SetBreakpoint changes the active breakpoint for later passes.
func (s *Session) SetBreakpoint(bp responsive.Breakpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.breakpoint = bp
}

// Breakpoint returns the active breakpoint.
func (s *Session) Breakpoint() responsive.Breakpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.breakpoint
}

// Dispatcher returns the dispatcher actions are routed to.
func (s *Session) Dispatcher() *action.Dispatcher {
	return s.dispatcher
}

// RenderDocument renders doc.Root with doc's data sources.
func (s *Session) RenderDocument(ctx context.Context, doc *spec.Document) (*render.Element, error) {
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	var root *spec.Node
	if doc != nil {
		root = doc.Root
	}
	return s.Render(ctx, root)
}

// Render resolves root into a render tree. The tree is never nil: failing
// subtrees become broken placeholders and their errors are aggregated into
// the returned error.
func (s *Session) Render(ctx context.Context, root *spec.Node) (*render.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	s.pass++
	p := &pass{
		session: s,
		ctx:     ctx,
		id:      s.pass,
		ids:     make(map[string]spec.Path),
	}

	var el *render.Element
	if root == nil {
		el = p.fail(spec.RootPath, "", fmt.Errorf("document has no root node"))
	} else {
		el = p.resolve(root, spec.RootPath, nil)
	}
	swept := s.sweep(p.id)

	err := p.errs.ErrorOrNil()
	s.logger.Debug(ctx, "render complete",
		"pass", p.id,
		"nodes", p.nodes,
		"errors", p.errCount(),
		"controllers", len(s.store),
		"swept", swept,
		"breakpoint", s.breakpoint.String(),
		"duration", time.Since(start),
	)
	return el, err
}

// sweep discards controllers whose nodes were not part of the pass.
func (s *Session) sweep(current uint64) int {
	removed := 0
	for key, b := range s.store {
		if b.pass != current {
			delete(s.store, key)
			removed++
		}
	}
	return removed
}

// Interact routes ev to the controller bound to key. All state changes of
// one interaction are applied before the lock is released, so the next
// Render observes them together. Actions emitted by the controller are
// dispatched after the lock is released, in emission order; handlers may
// render or interact with the session again.
func (s *Session) Interact(ctx context.Context, key string, ev controller.Event) error {
	pending, err := s.interact(ctx, key, ev)
	for _, call := range pending {
		s.dispatcher.Invoke(ctx, call.name, call.payload)
	}
	return err
}

type dispatch struct {
	name    string
	payload action.Payload
}

func (s *Session) interact(ctx context.Context, key string, ev controller.Event) ([]dispatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.store[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoController, key)
	}
	ctrl, ok := b.ctrl.(controller.Controller)
	if !ok {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNoController, key, b.nodeType)
	}

	var pending []dispatch
	emit := func(_ context.Context, name string, payload action.Payload) bool {
		payload.Source = key
		pending = append(pending, dispatch{name: name, payload: payload})
		return s.dispatcher.Has(name)
	}
	if err := ctrl.Handle(ctx, ev, emit); err != nil {
		s.logger.Warn(ctx, "interaction rejected", "key", key, "type", b.nodeType, "event", string(ev.Kind), "error", err)
		return nil, err
	}
	s.logger.Debug(ctx, "interaction applied", "key", key, "type", b.nodeType, "event", string(ev.Kind), "actions", len(pending))
	return pending, nil
}

// Controller returns the controller bound to key.
func (s *Session) Controller(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.store[key]
	if !ok {
		return nil, false
	}
	return b.ctrl, true
}

// Keys lists the keys that currently own controllers, sorted.
func (s *Session) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.store))
	for key := range s.store {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Errors flattens an error returned by Render into its path-qualified parts.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		return merr.WrappedErrors()
	}
	return []error{err}
}
