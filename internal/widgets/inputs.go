package widgets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/sdui/internal/controller"
	"github.com/alexisbeaulieu97/sdui/internal/registry"
	"github.com/alexisbeaulieu97/sdui/internal/render"
	"github.com/alexisbeaulieu97/sdui/internal/spec"
	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
)

// radioScopeKey is the scope key under which RadioGroup exposes itself to
// its RadioGroupItem descendants.
type radioScopeKey struct{}

// radioScope is what a RadioGroupItem sees of its group.
type radioScope struct {
	key   string
	radio *controller.Radio
}

func inputEntries() []entry {
	return []entry{
		{"Button", registry.Func(registry.Metadata{Description: "button dispatching onClick", Stateful: true}, resolveButton)},
		{"Checkbox", registry.Func(registry.Metadata{Description: "checkbox", Stateful: true}, resolveToggle)},
		{"Switch", registry.Func(registry.Metadata{Description: "on/off switch", Stateful: true}, resolveToggle)},
		{"RadioGroup", registry.Func(registry.Metadata{Description: "mutually exclusive options", Stateful: true}, resolveRadioGroup)},
		{"RadioGroupItem", registry.Func(registry.Metadata{Description: "one option of a RadioGroup", Required: []string{"value"}}, resolveRadioItem)},
		{"Slider", registry.Func(registry.Metadata{Description: "range slider with one or more handles", Stateful: true}, resolveSlider)},
	}
}

// bind returns the controller of the node being resolved, creating it on
// the first pass.
func bind[T any](c registry.Context, create func() (T, error)) (T, error) {
	var zero T
	v, err := c.Controller(func() (any, error) { return create() })
	if err != nil {
		return zero, err
	}
	ctrl, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("controller bound to %s has type %T", c.Key(), v)
	}
	return ctrl, nil
}

// controlError reports a controller construction failure against field.
func controlError(field string, err error) error {
	if errors.Is(err, controller.ErrControlConflict) {
		return sduierrors.NewSchemaError("", "", field, err.Error(), err)
	}
	return err
}

func resolveButton(c registry.Context, n *spec.Node) (*render.Element, error) {
	var props controller.ButtonProps
	if err := decode(c, n, &props); err != nil {
		return nil, err
	}
	children := textOrChildren(c, n, "label")
	label := props.Label
	if label == "" {
		label = textOf(children)
	}
	button, err := bind(c, func() (*controller.Button, error) { return controller.NewButton(props), nil })
	if err != nil {
		return nil, err
	}
	button.Sync(props)
	button.SetLabel(label)

	el := &render.Element{
		Props: attrs(
			"label", label,
			"variant", valueOr(props.Variant, "default"),
			"size", valueOr(props.Size, "default"),
			"action", props.OnClick,
		),
		Children: children,
	}
	if props.Disabled {
		el.Props["disabled"] = true
	}
	if props.Loading {
		el.Props["loading"] = true
	}
	return el, nil
}

func resolveToggle(c registry.Context, n *spec.Node) (*render.Element, error) {
	var props controller.ToggleProps
	if err := decode(c, n, &props); err != nil {
		return nil, err
	}
	if err := props.Conflict(); err != nil {
		return nil, controlError("checked", err)
	}
	toggle, err := bind(c, func() (*controller.Toggle, error) { return controller.NewToggle(props) })
	if err != nil {
		return nil, controlError("checked", err)
	}
	toggle.Sync(props)

	children := textOrChildren(c, n, "label")
	label := props.Label
	if label == "" {
		label = textOf(children)
	}
	return &render.Element{
		Props:    attrs("label", label, "value", props.Value, "action", props.OnCheckedChange),
		Children: children,
		View:     toggle.View(),
	}, nil
}

func resolveRadioGroup(c registry.Context, n *spec.Node) (*render.Element, error) {
	var props controller.RadioProps
	if err := decode(c, n, &props); err != nil {
		return nil, err
	}
	orientation, err := oneOf(n, "orientation", "vertical", "vertical", "horizontal")
	if err != nil {
		return nil, err
	}
	if len(props.Options) == 0 {
		options, err := collectRadioItems(n)
		if err != nil {
			return nil, err
		}
		props.Options = options
	}

	if err := props.Conflict(); err != nil {
		return nil, controlError("value", err)
	}
	radio, err := bind(c, func() (*controller.Radio, error) { return controller.NewRadio(props) })
	if err != nil {
		return nil, controlError("value", err)
	}
	radio.Sync(props)

	return &render.Element{
		Props:    attrs("orientation", orientation, "action", props.OnValueChange),
		Children: c.ChildrenWith(radioScopeKey{}, radioScope{key: c.Key(), radio: radio}),
		View:     radio.View(),
	}, nil
}

// collectRadioItems gathers the RadioGroupItem descendants of a group,
// stopping at nested groups.
func collectRadioItems(n *spec.Node) ([]controller.Option, error) {
	var out []controller.Option
	seen := make(map[string]bool)
	var walk func(children []spec.Child) error
	walk = func(children []spec.Child) error {
		for _, child := range children {
			if child.IsText() {
				continue
			}
			switch child.Node.Type {
			case "RadioGroup":
				continue
			case "RadioGroupItem":
				value := child.Node.String("value")
				if value == "" {
					continue
				}
				if seen[value] {
					return fieldError(spec.KeyChildren, "radio items must have unique values, %q repeats", value)
				}
				seen[value] = true
				label := child.Node.String("label")
				if label == "" {
					label = plainText(child.Node)
				}
				disabled, _ := child.Node.Bool("disabled")
				out = append(out, controller.Option{Value: value, Label: label, Disabled: disabled})
			default:
				if err := walk(child.Node.Children); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(n.Children); err != nil {
		return nil, err
	}
	return out, nil
}

func resolveRadioItem(c registry.Context, n *spec.Node) (*render.Element, error) {
	value := n.String("value")
	children := textOrChildren(c, n, "label")
	label := n.String("label")
	if label == "" {
		label = textOf(children)
	}
	el := &render.Element{
		Props:    attrs("value", value, "label", label),
		Children: children,
	}
	disabled, _ := n.Bool("disabled")
	if group, ok := c.Value(radioScopeKey{}).(radioScope); ok {
		el.Props["group"] = group.key
		if group.radio.IsSelected(value) {
			el.Props["selected"] = true
		}
		disabled = disabled || group.radio.Disabled()
	}
	if disabled {
		el.Props["disabled"] = true
	}
	return el, nil
}

func resolveSlider(c registry.Context, n *spec.Node) (*render.Element, error) {
	n = canonical(n)
	props := controller.DefaultSliderProps()
	for field, target := range map[string]*[]float64{"value": &props.Value, "defaultValue": &props.DefaultValue} {
		v := n.Prop(field)
		if v == nil {
			continue
		}
		values, ok := spec.Numbers(v)
		if !ok || len(values) == 0 {
			return nil, fieldError(field, "must be a number or a list of numbers, got %v", v)
		}
		*target = values
	}
	for field, target := range map[string]*float64{"min": &props.Min, "max": &props.Max, "step": &props.Step} {
		v := n.Prop(field)
		if v == nil {
			continue
		}
		f, ok := spec.Number(v)
		if !ok {
			return nil, fieldError(field, "must be a number, got %v", v)
		}
		*target = f
	}
	props.Disabled = flag(n, "disabled", false)
	props.OnValueChange = n.String("onValueChange")
	if err := props.Validate(); err != nil {
		return nil, fieldError("", "%v", err)
	}
	orientation, err := oneOf(n, "orientation", "horizontal", "horizontal", "vertical")
	if err != nil {
		return nil, err
	}

	if err := props.Conflict(); err != nil {
		return nil, controlError("value", err)
	}
	slider, err := bind(c, func() (*controller.Slider, error) { return controller.NewSlider(props) })
	if err != nil {
		return nil, controlError("value", err)
	}
	slider.Sync(props)

	return &render.Element{
		Props: attrs("orientation", orientation, "label", n.String("label"), "action", props.OnValueChange),
		View:  slider.View(),
	}, nil
}

// textOf concatenates the text of resolved elements.
func textOf(elements []*render.Element) string {
	var b strings.Builder
	for _, el := range elements {
		b.WriteString(el.TextContent())
	}
	return b.String()
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
