package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/alexisbeaulieu97/sdui/internal/logger"
	"github.com/alexisbeaulieu97/sdui/internal/registry"
	"github.com/alexisbeaulieu97/sdui/internal/render"
	"github.com/alexisbeaulieu97/sdui/internal/responsive"
	"github.com/alexisbeaulieu97/sdui/internal/spec"
	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
)

// pass is the state of one Render call.
type pass struct {
	session *Session
	ctx     context.Context
	id      uint64
	ids     map[string]spec.Path
	errs    *multierror.Error
	nodes   int
}

// scope is a linked list of values visible to descendants.
type scope struct {
	parent *scope
	key    any
	value  any
}

func (sc *scope) lookup(key any) any {
	for cur := sc; cur != nil; cur = cur.parent {
		if cur.key == key {
			return cur.value
		}
	}
	return nil
}

func (p *pass) errCount() int {
	if p.errs == nil {
		return 0
	}
	return p.errs.Len()
}

// fail records err and returns the placeholder for the failing node.
func (p *pass) fail(path spec.Path, nodeType string, err error) *render.Element {
	err = attribute(err, path, nodeType)
	p.errs = multierror.Append(p.errs, err)
	p.session.logger.Warn(p.ctx, "node failed to resolve", "path", path.String(), "type", nodeType, "error", err)
	return render.NewBroken(path, nodeType, err)
}

// attribute makes sure err names the node it belongs to.
func attribute(err error, path spec.Path, nodeType string) error {
	var schemaErr *sduierrors.SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr.WithPath(path.String(), nodeType)
	}
	var unknown *sduierrors.UnknownTypeError
	if errors.As(err, &unknown) {
		if unknown.Path == "" {
			return sduierrors.NewUnknownTypeError(path.String(), unknown.Type)
		}
		return err
	}
	return sduierrors.NewSchemaError(path.String(), nodeType, "", err.Error(), err)
}

func (p *pass) resolve(n *spec.Node, path spec.Path, sc *scope) (el *render.Element) {
	p.nodes++
	defer func() {
		if r := recover(); r != nil {
			el = p.fail(path, n.Type, fmt.Errorf("component panicked: %v", r))
		}
	}()

	if n.Type == "" {
		return p.fail(path, "", sduierrors.NewSchemaError(path.String(), "", spec.KeyType, "is required", nil))
	}
	strategy, err := p.session.registry.Resolve(n.Type)
	if err != nil {
		return p.fail(path, n.Type, err)
	}

	meta := strategy.Metadata()
	for _, field := range meta.Required {
		if !n.Has(field) {
			return p.fail(path, n.Type, sduierrors.NewSchemaError(path.String(), n.Type, field, "is required", nil))
		}
	}

	key := path.String()
	if n.ID != "" {
		if first, dup := p.ids[n.ID]; dup {
			return p.fail(path, n.Type, sduierrors.NewSchemaError(path.String(), n.Type, spec.KeyID,
				fmt.Sprintf("duplicates the id of %s", first), nil))
		}
		p.ids[n.ID] = path
		key = n.ID
	}

	resolved, err := p.resolveProps(n, path)
	if err != nil {
		return p.fail(path, n.Type, err)
	}

	c := &nodeContext{pass: p, node: resolved, path: path, key: key, scope: sc}
	el, err = strategy.Resolve(c, resolved)
	if err != nil {
		return p.fail(path, n.Type, err)
	}
	if el == nil {
		el = &render.Element{}
	}
	if el.Type == "" {
		el.Type = n.Type
	}
	el.Key = key
	el.Path = path.String()
	return el
}

// resolveProps returns a copy of n whose breakpoint-map props are replaced
// by the value for the active breakpoint.
func (p *pass) resolveProps(n *spec.Node, path spec.Path) (*spec.Node, error) {
	out := &spec.Node{Type: n.Type, ID: n.ID, Props: make(map[string]any, len(n.Props)), Children: n.Children}
	for k, v := range n.Props {
		if !responsive.IsBreakpointMap(v) {
			out.Props[k] = v
			continue
		}
		value, err := responsive.Resolve(v, p.session.breakpoint)
		if err != nil {
			return nil, sduierrors.NewSchemaError(path.String(), n.Type, k, err.Error(), err)
		}
		out.Props[k] = value
	}
	return out, nil
}

func (p *pass) resolveChildren(n *spec.Node, path spec.Path, sc *scope) []*render.Element {
	out := make([]*render.Element, 0, len(n.Children))
	for i, child := range n.Children {
		childPath := path.Child(i)
		if child.IsText() {
			out = append(out, render.NewText(childPath, child.Text))
			continue
		}
		out = append(out, p.resolve(child.Node, childPath, sc))
	}
	return out
}

// nodeContext implements registry.Context for one node.
type nodeContext struct {
	pass  *pass
	node  *spec.Node
	path  spec.Path
	key   string
	scope *scope
}

var _ registry.Context = (*nodeContext)(nil)

func (c *nodeContext) Context() context.Context {
	return c.pass.ctx
}

func (c *nodeContext) Path() spec.Path {
	return c.path
}

func (c *nodeContext) Key() string {
	return c.key
}

func (c *nodeContext) Breakpoint() responsive.Breakpoint {
	return c.pass.session.breakpoint
}

func (c *nodeContext) Logger() *logger.Logger {
	return c.pass.session.logger
}

func (c *nodeContext) Children() []*render.Element {
	return c.pass.resolveChildren(c.node, c.path, c.scope)
}

func (c *nodeContext) ChildrenWith(key, value any) []*render.Element {
	return c.pass.resolveChildren(c.node, c.path, &scope{parent: c.scope, key: key, value: value})
}

func (c *nodeContext) Value(key any) any {
	return c.scope.lookup(key)
}

func (c *nodeContext) Content(v any, path spec.Path) *render.Element {
	if v == nil {
		return nil
	}
	if n, ok := spec.AsNode(v); ok {
		return c.pass.resolve(n, path, c.scope)
	}
	if text, ok := spec.Text(v); ok {
		return render.NewText(path, text)
	}
	if items, ok := spec.Slice(v); ok {
		group := &render.Element{Type: render.TypeFragment, Path: path.String()}
		for i, item := range items {
			if child := c.Content(item, path.Index(i)); child != nil {
				group.Children = append(group.Children, child)
			}
		}
		return group
	}
	return render.NewText(path, fmt.Sprint(v))
}

func (c *nodeContext) Controller(create func() (any, error)) (any, error) {
	store := c.pass.session.store
	if b, ok := store[c.key]; ok && b.nodeType == c.node.Type {
		b.pass = c.pass.id
		return b.ctrl, nil
	}
	ctrl, err := create()
	if err != nil {
		return nil, err
	}
	store[c.key] = &binding{nodeType: c.node.Type, ctrl: ctrl, pass: c.pass.id}
	return ctrl, nil
}

func (c *nodeContext) Source(id string) (any, bool) {
	return c.pass.session.doc.Source(id)
}
