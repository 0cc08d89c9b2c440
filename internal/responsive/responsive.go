// Package responsive resolves scalar-or-breakpoint-map prop values against
// the active breakpoint supplied by the host.
package responsive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/sdui/internal/spec"
)

// Breakpoint is one of the ordered breakpoint keys.
type Breakpoint int

const (
	Base Breakpoint = iota
	SM
	MD
	LG
	XL
)

var breakpointNames = [...]string{"base", "sm", "md", "lg", "xl"}

// widthThresholds maps terminal columns to breakpoints, smallest first.
var widthThresholds = [...]int{0, 40, 64, 80, 100}

// All returns every breakpoint from smallest to largest.
func All() []Breakpoint {
	return []Breakpoint{Base, SM, MD, LG, XL}
}

func (b Breakpoint) String() string {
	if b < Base || b > XL {
		return fmt.Sprintf("breakpoint(%d)", int(b))
	}
	return breakpointNames[b]
}

// Parse maps a breakpoint key onto its Breakpoint.
func Parse(name string) (Breakpoint, error) {
	for i, candidate := range breakpointNames {
		if strings.EqualFold(name, candidate) {
			return Breakpoint(i), nil
		}
	}
	return Base, fmt.Errorf("unknown breakpoint %q (want one of %s)", name, strings.Join(breakpointNames[:], ", "))
}

// FromWidth picks the largest breakpoint whose threshold fits the width.
func FromWidth(columns int) Breakpoint {
	bp := Base
	for i, threshold := range widthThresholds {
		if columns >= threshold {
			bp = Breakpoint(i)
		}
	}
	return bp
}

// IsBreakpointMap reports whether v is a non-empty map keyed only by
// breakpoint names.
func IsBreakpointMap(v any) bool {
	m, ok := spec.Map(v)
	if !ok || len(m) == 0 {
		return false
	}
	for key := range m {
		if _, err := Parse(key); err != nil {
			return false
		}
	}
	return true
}

// Resolve returns the scalar for bp. Breakpoint maps fall back to the nearest
// smaller defined key and finally to base; a map without base is an error.
func Resolve(v any, bp Breakpoint) (any, error) {
	if !IsBreakpointMap(v) {
		return v, nil
	}
	m, _ := spec.Map(v)
	byBreakpoint := make(map[Breakpoint]any, len(m))
	for key, value := range m {
		parsed, _ := Parse(key)
		byBreakpoint[parsed] = value
	}
	if _, ok := byBreakpoint[Base]; !ok {
		return nil, fmt.Errorf("responsive value must define base")
	}
	for candidate := bp; candidate >= Base; candidate-- {
		if value, ok := byBreakpoint[candidate]; ok {
			return value, nil
		}
	}
	return byBreakpoint[Base], nil
}

// PositiveInt resolves v and requires a positive integer (columns, counts).
func PositiveInt(v any, bp Breakpoint) (int, error) {
	resolved, err := Resolve(v, bp)
	if err != nil {
		return 0, err
	}
	n, ok := spec.Int(resolved)
	if !ok || n <= 0 {
		return 0, fmt.Errorf("must be a positive integer, got %v", resolved)
	}
	return n, nil
}

// spacingTokens maps named spacing sizes onto terminal cells.
var spacingTokens = map[string]int{
	"none": 0,
	"xs":   0,
	"sm":   1,
	"md":   1,
	"lg":   2,
	"xl":   3,
	"2xl":  4,
}

// Spacing resolves a spacing token into terminal cells. Numeric values follow
// the 4px-per-unit scale of the producers, so "4" is one cell and "8" two.
func Spacing(v any, bp Breakpoint) (int, error) {
	resolved, err := Resolve(v, bp)
	if err != nil {
		return 0, err
	}
	if resolved == nil {
		return 0, nil
	}
	if s, ok := resolved.(string); ok {
		key := strings.ToLower(strings.TrimSpace(s))
		if cells, known := spacingTokens[key]; known {
			return cells, nil
		}
		if n, convErr := strconv.ParseFloat(key, 64); convErr == nil {
			return unitsToCells(n)
		}
		return 0, fmt.Errorf("unknown spacing token %q", s)
	}
	n, ok := spec.Number(resolved)
	if !ok {
		return 0, fmt.Errorf("spacing must be a token or number, got %v", resolved)
	}
	return unitsToCells(n)
}

func unitsToCells(n float64) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("spacing must not be negative, got %v", n)
	}
	cells := int(n / 4)
	if n > 0 && cells == 0 {
		cells = 1
	}
	return cells, nil
}
