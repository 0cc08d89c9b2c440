package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tone is the semantic colour role of a component.
type Tone int

const (
	ToneDefault Tone = iota
	ToneMuted
	TonePrimary
	ToneSecondary
	ToneSuccess
	ToneWarning
	ToneDanger
	ToneInfo
)

// ToneFor maps a wire variant name onto a tone.
func ToneFor(variant string) Tone {
	switch strings.ToLower(variant) {
	case "primary":
		return TonePrimary
	case "secondary":
		return ToneSecondary
	case "success":
		return ToneSuccess
	case "warning":
		return ToneWarning
	case "destructive", "danger", "error":
		return ToneDanger
	case "info":
		return ToneInfo
	case "muted", "subtle", "ghost", "link", "outline":
		return ToneMuted
	default:
		return ToneDefault
	}
}

// ColourSet groups the colours of one semantic slot.
type ColourSet struct {
	Base   lipgloss.AdaptiveColor
	OnBase lipgloss.AdaptiveColor
	Muted  lipgloss.AdaptiveColor
}

func (c ColourSet) isZero() bool {
	return c.Base.Light == "" && c.Base.Dark == ""
}

// Palette describes the semantic colour slots used by components.
type Palette struct {
	Primary   ColourSet
	Secondary ColourSet
	Surface   ColourSet
	Success   ColourSet
	Warning   ColourSet
	Danger    ColourSet
	Info      ColourSet
	Neutral   ColourSet
}

// BorderSet groups reusable border definitions.
type BorderSet struct {
	Normal  lipgloss.Border
	Rounded lipgloss.Border
	Thick   lipgloss.Border
	Double  lipgloss.Border
}

// Glyphs are the symbols used by stateful widgets.
type Glyphs struct {
	CheckOn, CheckOff   string
	RadioOn, RadioOff   string
	SwitchOn, SwitchOff string
	SortAsc, SortDesc   string
	Submenu, Cursor     string
	Rule, VerticalRule  string
	SliderFill, Slider  string
	SliderHandle        string
}

// Theme is an immutable styling theme. Modifiers return copies.
type Theme struct {
	Name    string
	Palette Palette
	Borders BorderSet
	Glyphs  Glyphs
}

// Tone returns the colour set for tone; the zero set for ToneDefault.
func (t Theme) Tone(tone Tone) ColourSet {
	switch tone {
	case TonePrimary:
		return t.Palette.Primary
	case ToneSecondary:
		return t.Palette.Secondary
	case ToneSuccess:
		return t.Palette.Success
	case ToneWarning:
		return t.Palette.Warning
	case ToneDanger:
		return t.Palette.Danger
	case ToneInfo:
		return t.Palette.Info
	case ToneMuted:
		return t.Palette.Neutral
	default:
		return ColourSet{}
	}
}

func unicodeGlyphs() Glyphs {
	return Glyphs{
		CheckOn: "[x]", CheckOff: "[ ]",
		RadioOn: "(•)", RadioOff: "( )",
		SwitchOn: "[■ on ]", SwitchOff: "[off □]",
		SortAsc: "▲", SortDesc: "▼",
		Submenu: "▸", Cursor: "›",
		Rule: "─", VerticalRule: "│",
		SliderFill: "━", Slider: "─", SliderHandle: "●",
	}
}

// DefaultTheme returns the colour theme with adaptive light/dark colours.
func DefaultTheme() Theme {
	ac := func(light, dark string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: light, Dark: dark}
	}
	return Theme{
		Name: "default",
		Palette: Palette{
			Primary: ColourSet{
				Base:   ac("#3b82f6", "#60a5fa"),
				OnBase: ac("#f8fafc", "#0b1120"),
				Muted:  ac("#2563eb", "#1d4ed8"),
			},
			Secondary: ColourSet{
				Base:   ac("#a855f7", "#c084fc"),
				OnBase: ac("#f8fafc", "#1f2937"),
				Muted:  ac("#7c3aed", "#6b21a8"),
			},
			Surface: ColourSet{
				Base:   ac("#f9fafb", "#111827"),
				OnBase: ac("#111827", "#f9fafb"),
				Muted:  ac("#e2e8f0", "#1f2937"),
			},
			Success: ColourSet{
				Base:   ac("#22c55e", "#4ade80"),
				OnBase: ac("#052e16", "#022c22"),
				Muted:  ac("#16a34a", "#15803d"),
			},
			Warning: ColourSet{
				Base:   ac("#eab308", "#facc15"),
				OnBase: ac("#422006", "#422006"),
				Muted:  ac("#ca8a04", "#a16207"),
			},
			Danger: ColourSet{
				Base:   ac("#ef4444", "#f87171"),
				OnBase: ac("#7f1d1d", "#450a0a"),
				Muted:  ac("#dc2626", "#b91c1c"),
			},
			Info: ColourSet{
				Base:   ac("#06b6d4", "#22d3ee"),
				OnBase: ac("#083344", "#04121a"),
				Muted:  ac("#0891b2", "#0e7490"),
			},
			Neutral: ColourSet{
				Base:   ac("#64748b", "#94a3b8"),
				OnBase: ac("#f1f5f9", "#0f172a"),
				Muted:  ac("#475569", "#334155"),
			},
		},
		Borders: BorderSet{
			Normal:  lipgloss.NormalBorder(),
			Rounded: lipgloss.RoundedBorder(),
			Thick:   lipgloss.ThickBorder(),
			Double:  lipgloss.DoubleBorder(),
		},
		Glyphs: unicodeGlyphs(),
	}
}

// PlainTheme returns a colourless theme with ASCII borders, for logs and
// terminals without colour support.
func PlainTheme() Theme {
	ascii := lipgloss.Border{
		Top: "-", Bottom: "-", Left: "|", Right: "|",
		TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
		MiddleLeft: "+", MiddleRight: "+", Middle: "+", MiddleTop: "+", MiddleBottom: "+",
	}
	return Theme{
		Name:    "plain",
		Borders: BorderSet{Normal: ascii, Rounded: ascii, Thick: ascii, Double: ascii},
		Glyphs: Glyphs{
			CheckOn: "[x]", CheckOff: "[ ]",
			RadioOn: "(*)", RadioOff: "( )",
			SwitchOn: "[on ]", SwitchOff: "[off]",
			SortAsc: "^", SortDesc: "v",
			Submenu: ">", Cursor: ">",
			Rule: "-", VerticalRule: "|",
			SliderFill: "=", Slider: "-", SliderHandle: "o",
		},
	}
}

var themes = map[string]func() Theme{
	"default": DefaultTheme,
	"plain":   PlainTheme,
}

// ThemeNames lists the built-in theme names.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns the built-in theme called name.
func ThemeByName(name string) (Theme, error) {
	if name == "" {
		return DefaultTheme(), nil
	}
	ctor, ok := themes[strings.ToLower(name)]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	return ctor(), nil
}

// Foreground colours text with the tone's base colour.
func Foreground(tone Tone) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		set := theme.Tone(tone)
		if set.isZero() {
			return base
		}
		return base.Foreground(set.Base)
	}
}

// Filled paints the tone as a background with its contrasting foreground.
func Filled(tone Tone) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		set := theme.Tone(tone)
		if set.isZero() {
			return base
		}
		return base.Background(set.Base).Foreground(set.OnBase)
	}
}

// BorderTone colours the border with the tone's base colour.
func BorderTone(tone Tone) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		set := theme.Tone(tone)
		if set.isZero() {
			return base
		}
		return base.BorderForeground(set.Base)
	}
}

// Bold makes text bold.
func Bold() StyleFunc {
	return func(base lipgloss.Style, _ Theme) lipgloss.Style {
		return base.Bold(true)
	}
}

// Faint dims text.
func Faint() StyleFunc {
	return func(base lipgloss.Style, _ Theme) lipgloss.Style {
		return base.Faint(true)
	}
}

// Italic slants text.
func Italic() StyleFunc {
	return func(base lipgloss.Style, _ Theme) lipgloss.Style {
		return base.Italic(true)
	}
}

// Underline underlines text.
func Underline() StyleFunc {
	return func(base lipgloss.Style, _ Theme) lipgloss.Style {
		return base.Underline(true)
	}
}
