// Package format turns raw DataTable cell values into display text according
// to the column type, and orders values for sorting.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/alexisbeaulieu97/sdui/internal/spec"
)

// Column value types.
const (
	KindText     = "text"
	KindNumber   = "number"
	KindDate     = "date"
	KindCurrency = "currency"
	KindBadge    = "badge"
	KindCustom   = "custom"
)

// DefaultCurrency is used when a currency column names no code.
const DefaultCurrency = "USD"

// DefaultDateLayout renders dates when a column names no layout.
const DefaultDateLayout = "Jan 2, 2006"

// Options tune formatting for one column.
type Options struct {
	Currency   string `yaml:"currency" json:"currency,omitempty"`
	Locale     string `yaml:"locale" json:"locale,omitempty"`
	DateFormat string `yaml:"dateFormat" json:"dateFormat,omitempty"`
	Digits     *int   `yaml:"digits" json:"digits,omitempty" validate:"omitempty,min=0,max=10"`
}

// ValidKind reports whether kind is a known column type. Empty means text.
func ValidKind(kind string) bool {
	switch kind {
	case "", KindText, KindNumber, KindDate, KindCurrency, KindBadge, KindCustom:
		return true
	}
	return false
}

// Tag parses a locale, defaulting to American English.
func Tag(locale string) language.Tag {
	if locale == "" {
		return language.AmericanEnglish
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

// Cell formats v for a column of the given kind. A value the kind cannot
// interpret falls back to its raw text with ok=false; nil renders empty.
func Cell(kind string, v any, opts Options) (text string, ok bool) {
	if v == nil {
		return "", true
	}
	raw := Raw(v)

	switch kind {
	case KindNumber:
		out, err := Number(v, opts)
		if err != nil {
			return raw, false
		}
		return out, true
	case KindCurrency:
		out, err := Currency(v, opts)
		if err != nil {
			return raw, false
		}
		return out, true
	case KindDate:
		out, err := Date(v, opts)
		if err != nil {
			return raw, false
		}
		return out, true
	default:
		return raw, true
	}
}

// Raw renders any value as plain text.
func Raw(v any) string {
	if s, ok := spec.Text(v); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Number formats a numeric value with locale grouping.
func Number(v any, opts Options) (string, error) {
	f, ok := spec.Number(v)
	if !ok || math.IsInf(f, 0) {
		return "", fmt.Errorf("not a number: %v", v)
	}
	p := message.NewPrinter(Tag(opts.Locale))
	if opts.Digits != nil {
		return p.Sprint(number.Decimal(f, number.MinFractionDigits(*opts.Digits), number.MaxFractionDigits(*opts.Digits))), nil
	}
	return p.Sprint(number.Decimal(f)), nil
}

// Currency formats a numeric value as an amount of the column's currency.
func Currency(v any, opts Options) (string, error) {
	f, ok := spec.Number(v)
	if !ok || math.IsInf(f, 0) {
		return "", fmt.Errorf("not an amount: %v", v)
	}
	code := opts.Currency
	if code == "" {
		code = DefaultCurrency
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("unknown currency %q: %w", code, err)
	}
	p := message.NewPrinter(Tag(opts.Locale))
	return p.Sprint(currency.Symbol(unit.Amount(f))), nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"Jan 2, 2006",
}

// ParseTime interprets strings in common date layouts and numbers as Unix
// milliseconds.
func ParseTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		s := strings.TrimSpace(val)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		f, ok := spec.Number(v)
		if !ok {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(f)).UTC(), true
	}
}

// Date formats a date value with the column's layout.
func Date(v any, opts Options) (string, error) {
	t, ok := ParseTime(v)
	if !ok {
		return "", fmt.Errorf("not a date: %v", v)
	}
	layout := opts.DateFormat
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout), nil
}

// Comparator orders cell values of one column kind. It is not safe for
// concurrent use; each table owns its own.
type Comparator struct {
	kind     string
	collator *collate.Collator
}

// NewComparator builds a comparator for kind using locale collation for text.
func NewComparator(kind, locale string) *Comparator {
	return &Comparator{
		kind:     kind,
		collator: collate.New(Tag(locale), collate.IgnoreCase, collate.Numeric),
	}
}

// Compare returns -1, 0 or 1. Missing values order before present ones.
// Values the kind cannot interpret compare as text after interpretable ones.
func (c *Comparator) Compare(a, b any) int {
	aMissing, bMissing := a == nil, b == nil
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing:
		return -1
	case bMissing:
		return 1
	}

	switch c.kind {
	case KindNumber, KindCurrency:
		af, aok := spec.Number(a)
		bf, bok := spec.Number(b)
		if aok && bok {
			return compareFloat(af, bf)
		}
		if aok != bok {
			return boolOrder(aok)
		}
	case KindDate:
		at, aok := ParseTime(a)
		bt, bok := ParseTime(b)
		if aok && bok {
			return at.Compare(bt)
		}
		if aok != bok {
			return boolOrder(aok)
		}
	}
	return c.collator.CompareString(Raw(a), Raw(b))
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// boolOrder puts the parsed side first.
func boolOrder(firstParsed bool) int {
	if firstParsed {
		return -1
	}
	return 1
}

// BadgeVariant maps a status-like badge value onto a badge variant.
func BadgeVariant(text string) string {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "success", "active", "paid", "completed", "done", "online":
		return "success"
	case "failed", "error", "inactive", "cancelled", "offline", "overdue":
		return "destructive"
	case "processing", "pending", "warning", "in progress":
		return "warning"
	case "":
		return "default"
	default:
		return "secondary"
	}
}
