package controller

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/sdui/internal/action"
)

type emitted struct {
	name    string
	payload action.Payload
}

type recorder struct {
	calls []emitted
}

func (r *recorder) emit(_ context.Context, name string, payload action.Payload) bool {
	r.calls = append(r.calls, emitted{name: name, payload: payload})
	return true
}

func (r *recorder) last() emitted {
	if len(r.calls) == 0 {
		return emitted{}
	}
	return r.calls[len(r.calls)-1]
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}

func TestBindingModes(t *testing.T) {
	t.Parallel()

	owned := Owned(1)
	require.False(t, owned.IsControlled())
	require.True(t, owned.Propose(2))
	owned.Sync(9)
	require.Equal(t, 2, owned.Value(), "owned bindings ignore later defaults")

	controlled := Controlled(1)
	require.False(t, controlled.Propose(2))
	require.Equal(t, 1, controlled.Value())
	controlled.Sync(3)
	require.Equal(t, 3, controlled.Value())

	_, err := NewBinding(boolPtr(true), boolPtr(false), false)
	require.ErrorIs(t, err, ErrControlConflict)

	b, err := NewBinding[bool](nil, nil, false)
	require.NoError(t, err)
	require.False(t, b.IsControlled())
}

func TestToggleOwnedMutatesAndNotifies(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	toggle, err := NewToggle(ToggleProps{DefaultChecked: boolPtr(false), OnCheckedChange: "onTerms"})
	require.NoError(t, err)

	require.NoError(t, toggle.Handle(context.Background(), Event{Kind: EventToggle}, rec.emit))
	require.True(t, toggle.Checked())
	require.Equal(t, "onTerms", rec.last().name)
	require.Equal(t, true, rec.last().payload.Value)

	toggle.Sync(ToggleProps{DefaultChecked: boolPtr(false), OnCheckedChange: "onTerms"})
	require.True(t, toggle.Checked(), "default only seeds the first render")
}

func TestToggleControlledNeverMutates(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	toggle, err := NewToggle(ToggleProps{Checked: boolPtr(false), OnCheckedChange: "setChecked"})
	require.NoError(t, err)

	require.NoError(t, toggle.Handle(context.Background(), Event{Kind: EventToggle}, rec.emit))
	require.False(t, toggle.Checked())
	require.Equal(t, true, rec.last().payload.Value, "the proposed value is handed to the caller")

	toggle.Sync(ToggleProps{Checked: boolPtr(true)})
	require.True(t, toggle.Checked())
}

func TestToggleDisabledSuppressesTransitions(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	toggle, err := NewToggle(ToggleProps{DefaultChecked: boolPtr(true), Disabled: true, OnCheckedChange: "x"})
	require.NoError(t, err)

	require.NoError(t, toggle.Handle(context.Background(), Event{Kind: EventToggle}, rec.emit))
	require.True(t, toggle.Checked())
	require.True(t, toggle.View().Disabled)
	require.Empty(t, rec.calls)

	require.ErrorIs(t, toggle.Handle(context.Background(), Event{Kind: EventSort}, rec.emit), ErrUnknownEvent)
}

func TestToggleRejectsConflictingProps(t *testing.T) {
	t.Parallel()

	_, err := NewToggle(ToggleProps{Checked: boolPtr(true), DefaultChecked: boolPtr(false)})
	require.ErrorIs(t, err, ErrControlConflict)
}

func themeOptions() []Option {
	return []Option{{Value: "light"}, {Value: "dark"}, {Value: "auto"}, {Value: "retro", Disabled: true}}
}

func selectedCount(view RadioView) int {
	n := 0
	for _, opt := range view.Options {
		if opt.Selected {
			n++
		}
	}
	return n
}

func TestRadioNeverReportsTwoSelections(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	radio, err := NewRadio(RadioProps{Options: themeOptions(), OnValueChange: "setTheme"})
	require.NoError(t, err)
	require.Equal(t, 0, selectedCount(radio.View()), "no default means nothing selected")

	for _, v := range []string{"dark", "light", "auto", "auto", "retro", "dark"} {
		require.NoError(t, radio.Handle(context.Background(), Event{Kind: EventSelect, Value: v}, rec.emit))
		require.Equal(t, 1, selectedCount(radio.View()))
	}
	require.Equal(t, "dark", radio.Selected())
	require.Equal(t, "dark", rec.last().payload.Value)
}

func TestRadioUnknownOptionIsRejected(t *testing.T) {
	t.Parallel()

	radio, err := NewRadio(RadioProps{DefaultValue: strPtr("light"), Options: themeOptions()})
	require.NoError(t, err)
	require.Error(t, radio.Handle(context.Background(), Event{Kind: EventSelect, Value: "neon"}, nil))
	require.Error(t, radio.Handle(context.Background(), Event{Kind: EventSelect, Value: 3}, nil))
	require.Equal(t, "light", radio.Selected())
}

func TestRadioControlled(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	radio, err := NewRadio(RadioProps{Value: strPtr("light"), Options: themeOptions(), OnValueChange: "setTheme"})
	require.NoError(t, err)

	require.NoError(t, radio.Select(context.Background(), "dark", rec.emit))
	require.Equal(t, "light", radio.Selected())
	require.Equal(t, "dark", rec.last().payload.Value)
}

func onGrid(v float64) bool {
	k := math.Round(v * 10)
	return k >= 0 && k <= 10 && v == math.Round(k)/10
}

func TestSliderStaysOnGrid(t *testing.T) {
	t.Parallel()

	props := SliderProps{DefaultValue: []float64{0.5}, Min: 0, Max: 1, Step: 0.1}
	slider, err := NewSlider(props)
	require.NoError(t, err)
	require.Equal(t, []float64{0.5}, slider.Values())

	ctx := context.Background()
	for i := 0; i < 8; i++ {
		require.NoError(t, slider.Handle(ctx, Event{Kind: EventStep, Steps: 1}, nil))
		require.True(t, onGrid(slider.Values()[0]), "value %v off grid", slider.Values()[0])
	}
	require.Equal(t, 1.0, slider.Values()[0])

	for _, target := range []float64{0.33, 0.07, -4, 0.95, 12} {
		require.NoError(t, slider.Handle(ctx, Event{Kind: EventSetValue, Value: target}, nil))
		require.True(t, onGrid(slider.Values()[0]), "value %v off grid", slider.Values()[0])
	}
	require.Equal(t, 1.0, slider.Values()[0])

	require.NoError(t, slider.Handle(ctx, Event{Kind: EventSetValue, Value: 0.33}, nil))
	require.Equal(t, 0.3, slider.Values()[0])
}

func TestSliderKeepsHandlesOrdered(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	slider, err := NewSlider(SliderProps{DefaultValue: []float64{25, 75}, Min: 0, Max: 100, Step: 5, OnValueChange: "onRange"})
	require.NoError(t, err)

	require.NoError(t, slider.Handle(context.Background(), Event{Kind: EventSetValue, Index: 0, Value: 90.0}, rec.emit))
	require.Equal(t, []float64{75, 75}, slider.Values())
	require.Equal(t, []float64{75, 75}, rec.last().payload.Value)

	require.Error(t, slider.Handle(context.Background(), Event{Kind: EventSetValue, Index: 4, Value: 1.0}, rec.emit))
}

func TestSliderValidation(t *testing.T) {
	t.Parallel()

	_, err := NewSlider(SliderProps{Min: 0, Max: 10, Step: 0})
	require.Error(t, err)
	_, err = NewSlider(SliderProps{Min: 5, Max: 5, Step: 1})
	require.Error(t, err)
	_, err = NewSlider(SliderProps{Value: []float64{1}, DefaultValue: []float64{2}, Min: 0, Max: 10, Step: 1})
	require.ErrorIs(t, err, ErrControlConflict)

	slider, err := NewSlider(DefaultSliderProps())
	require.NoError(t, err)
	require.Equal(t, []float64{0}, slider.Values())
}

func TestSliderControlledReportsWithoutMutating(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	slider, err := NewSlider(SliderProps{Value: []float64{40}, Min: 0, Max: 100, Step: 10, OnValueChange: "setVolume"})
	require.NoError(t, err)

	require.NoError(t, slider.Handle(context.Background(), Event{Kind: EventStep, Steps: 1}, rec.emit))
	require.Equal(t, []float64{40}, slider.Values())
	require.Equal(t, []float64{50}, rec.last().payload.Value)
}

func TestSliderDisabled(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	slider, err := NewSlider(SliderProps{DefaultValue: []float64{50}, Min: 0, Max: 100, Step: 1, Disabled: true, OnValueChange: "x"})
	require.NoError(t, err)
	require.NoError(t, slider.Handle(context.Background(), Event{Kind: EventStep, Steps: 3}, rec.emit))
	require.Equal(t, []float64{50}, slider.Values())
	require.Empty(t, rec.calls)
}

func TestButtonDispatchesClick(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	ctx := context.Background()
	button := NewButton(ButtonProps{Label: "Save", OnClick: "save"})

	require.NoError(t, button.Handle(ctx, Event{Kind: EventActivate}, rec.emit))
	require.Equal(t, "save", rec.last().name)
	require.Equal(t, "Save", rec.last().payload.Value)
	require.Equal(t, "click", rec.last().payload.Event)

	button.Sync(ButtonProps{Label: "Save", OnClick: "save", Loading: true})
	require.NoError(t, button.Handle(ctx, Event{Kind: EventActivate}, rec.emit))
	require.Len(t, rec.calls, 1, "a loading button is inert")

	require.ErrorIs(t, button.Handle(ctx, Event{Kind: EventToggle}, rec.emit), ErrUnknownEvent)
}
