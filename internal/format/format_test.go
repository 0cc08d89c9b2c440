package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCellFallsBackToRawText(t *testing.T) {
	t.Parallel()

	text, ok := Cell(KindCurrency, "not money", Options{})
	require.False(t, ok)
	require.Equal(t, "not money", text)

	text, ok = Cell(KindDate, "someday", Options{})
	require.False(t, ok)
	require.Equal(t, "someday", text)

	text, ok = Cell(KindNumber, true, Options{})
	require.False(t, ok)
	require.Equal(t, "true", text)
}

func TestCellNilRendersEmpty(t *testing.T) {
	t.Parallel()

	text, ok := Cell(KindCurrency, nil, Options{})
	require.True(t, ok)
	require.Empty(t, text)
}

func TestCurrencyFormatsAmount(t *testing.T) {
	t.Parallel()

	text, ok := Cell(KindCurrency, float64(316), Options{})
	require.True(t, ok)
	require.Contains(t, text, "316")
	require.NotEqual(t, "316", text)

	_, err := Currency(float64(1), Options{Currency: "NOPE"})
	require.Error(t, err)
}

func TestNumberGroupsThousands(t *testing.T) {
	t.Parallel()

	text, err := Number(float64(1234567), Options{})
	require.NoError(t, err)
	require.Contains(t, text, "1,234,567")

	text, err = Number("42", Options{})
	require.NoError(t, err)
	require.Equal(t, "42", text)
}

func TestDateLayouts(t *testing.T) {
	t.Parallel()

	text, err := Date("2024-03-15", Options{})
	require.NoError(t, err)
	require.Equal(t, "Mar 15, 2024", text)

	text, err = Date("2024-03-15T10:30:00Z", Options{DateFormat: "2006/01/02"})
	require.NoError(t, err)
	require.Equal(t, "2024/03/15", text)
}

func TestComparatorByKind(t *testing.T) {
	t.Parallel()

	numbers := NewComparator(KindNumber, "")
	require.Equal(t, -1, numbers.Compare(float64(9), float64(10)))
	require.Equal(t, 1, numbers.Compare("100", float64(20)))
	require.Equal(t, 0, numbers.Compare(float64(3), "3"))
	require.Equal(t, -1, numbers.Compare(float64(3), "n/a"), "parsable values order first")
	require.Equal(t, -1, numbers.Compare(nil, float64(1)))

	dates := NewComparator(KindDate, "")
	require.Equal(t, -1, dates.Compare("2023-12-31", "2024-01-01"))

	text := NewComparator(KindText, "en")
	require.Equal(t, -1, text.Compare("apple", "Banana"))
	require.Equal(t, 0, text.Compare("Ken", "ken"))
}

func TestValidKind(t *testing.T) {
	t.Parallel()

	require.True(t, ValidKind(""))
	require.True(t, ValidKind(KindBadge))
	require.False(t, ValidKind("sparkline"))
}

func TestBadgeVariant(t *testing.T) {
	t.Parallel()

	require.Equal(t, "success", BadgeVariant("Success"))
	require.Equal(t, "destructive", BadgeVariant("failed"))
	require.Equal(t, "warning", BadgeVariant("processing"))
	require.Equal(t, "secondary", BadgeVariant("archived"))
}
