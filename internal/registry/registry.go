// Package registry maps node type names onto the strategies that resolve
// them. A registry is filled once at startup, frozen, and then only read.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/sdui/internal/logger"
	"github.com/alexisbeaulieu97/sdui/internal/render"
	"github.com/alexisbeaulieu97/sdui/internal/responsive"
	"github.com/alexisbeaulieu97/sdui/internal/spec"
	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
)

// Metadata describes a registered component type.
type Metadata struct {
	Type        string
	Description string
	// Required lists props the resolver checks before the strategy runs.
	Required []string
	// Stateful marks types that bind a controller to the node identity.
	Stateful bool
}

// Context is what a strategy sees of the resolver while resolving one node.
type Context interface {
	Context() context.Context
	Path() spec.Path
	Key() string
	Breakpoint() responsive.Breakpoint
	Logger() *logger.Logger

	// Children resolves the node's children in order.
	Children() []*render.Element
	// ChildrenWith resolves the node's children with a scoped value visible
	// to every descendant through Value.
	ChildrenWith(key, value any) []*render.Element
	// Value returns a scoped value set by an ancestor.
	Value(key any) any
	// Content resolves prop content that may be text, a number or a node.
	Content(v any, path spec.Path) *render.Element

	// Controller returns the controller bound to this node, creating it with
	// create when none exists or the node type changed.
	Controller(create func() (any, error)) (any, error)
	// Source returns the rows of a named static data source.
	Source(id string) (any, bool)
}

// Strategy resolves nodes of one type into render elements.
type Strategy interface {
	Metadata() Metadata
	Resolve(c Context, n *spec.Node) (*render.Element, error)
}

// ResolveFunc adapts a function into a Strategy.
type ResolveFunc func(c Context, n *spec.Node) (*render.Element, error)

type funcStrategy struct {
	meta Metadata
	fn   ResolveFunc
}

// Func builds a Strategy from metadata and a resolve function.
func Func(meta Metadata, fn ResolveFunc) Strategy {
	return funcStrategy{meta: meta, fn: fn}
}

func (s funcStrategy) Metadata() Metadata {
	return s.meta
}

func (s funcStrategy) Resolve(c Context, n *spec.Node) (*render.Element, error) {
	return s.fn(c, n)
}

// Registry is a string-keyed table of strategies.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
	frozen     bool
	logger     *logger.Logger
}

// New returns an empty registry.
func New(log *logger.Logger) *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
		logger:     log,
	}
}

// Register adds a strategy under the given type name.
func (r *Registry) Register(nodeType string, s Strategy) error {
	if nodeType == "" {
		return sduierrors.NewRegistryError(nodeType, fmt.Errorf("type name is empty"))
	}
	if s == nil {
		return sduierrors.NewRegistryError(nodeType, fmt.Errorf("strategy is nil"))
	}
	if nodeType == render.TypeText || nodeType == render.TypeFragment || nodeType == render.TypeBroken {
		return sduierrors.NewRegistryError(nodeType, fmt.Errorf("type name is reserved"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return sduierrors.NewRegistryError(nodeType, fmt.Errorf("registry is frozen"))
	}
	if _, exists := r.strategies[nodeType]; exists {
		return sduierrors.NewRegistryError(nodeType, fmt.Errorf("type already registered"))
	}

	r.strategies[nodeType] = s
	r.logger.Debug(context.Background(), "component registered", "component", "registry", "type", nodeType)
	return nil
}

// MustRegister registers s and panics on error. Intended for startup wiring.
func (r *Registry) MustRegister(nodeType string, s Strategy) {
	if err := r.Register(nodeType, s); err != nil {
		panic(err)
	}
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Resolve returns the strategy for an exact type name.
func (r *Registry) Resolve(nodeType string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.strategies[nodeType]
	if !ok {
		return nil, sduierrors.NewUnknownTypeError("", nodeType)
	}
	return s, nil
}

// Types lists every registered type name in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// Metadata lists the metadata of every registered type, sorted by type name.
// Aliases report the name they were registered under.
func (r *Registry) Metadata() []Metadata {
	types := r.Types()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Metadata, 0, len(types))
	for _, name := range types {
		meta := r.strategies[name].Metadata()
		meta.Type = name
		out = append(out, meta)
	}
	return out
}
