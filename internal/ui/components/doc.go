// Package components provides the lipgloss building blocks the terminal host
// draws resolved elements with.
//
// Every component implements Renderable and, for layout-aware rendering,
// ContextualRenderable:
//
//	card := components.NewCard(components.NewText("$45,231")).
//		WithTitle("Total Revenue")
//	fmt.Println(card.ViewWithContext(components.DefaultContext().WithWidth(60)))
//
// # Themes
//
// Styling flows through a Theme carried by the RenderContext; nothing reads
// global state. Components derive their styles through StyleFunc appliers so
// the same tree renders under DefaultTheme or PlainTheme:
//
//	ctx := components.DefaultContext().WithTheme(components.PlainTheme())
//
// # Tones
//
// Wire variants ("destructive", "success", "outline", ...) map onto a small
// set of semantic tones with ToneFor; each theme assigns a ColourSet per tone.
package components
