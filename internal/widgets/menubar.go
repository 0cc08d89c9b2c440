package widgets

import (
	"github.com/alexisbeaulieu97/sdui/internal/controller"
	"github.com/alexisbeaulieu97/sdui/internal/registry"
	"github.com/alexisbeaulieu97/sdui/internal/render"
	"github.com/alexisbeaulieu97/sdui/internal/spec"
)

func menubarStrategy() registry.Strategy {
	meta := registry.Metadata{
		Description: "menu bar with nested submenus, checkbox and radio items",
		Required:    []string{"menus"},
		Stateful:    true,
	}
	return registry.Func(meta, resolveMenubar)
}

func resolveMenubar(c registry.Context, n *spec.Node) (*render.Element, error) {
	var props controller.MenubarProps
	if err := decode(c, n, &props); err != nil {
		return nil, err
	}

	created := false
	bar, err := bind(c, func() (*controller.Menubar, error) {
		created = true
		return controller.NewMenubar(props)
	})
	if err != nil {
		return nil, controlError("menus", err)
	}
	if !created {
		if err := bar.Sync(props); err != nil {
			return nil, controlError("menus", err)
		}
	}

	return &render.Element{
		Type: "Menubar",
		View: bar.View(),
	}, nil
}
