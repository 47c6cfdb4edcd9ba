package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectQuoteDeterministic(t *testing.T) {
	first, err := SelectQuote(DefaultCatalog, "2024-01-02")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := SelectQuote(DefaultCatalog, "2024-01-02")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSelectQuoteChecksumFixture(t *testing.T) {
	// Byte sum of "2024-01-02" is 485; 485 mod 3 == 2.
	quote, err := SelectQuote([]string{"A", "B", "C"}, "2024-01-02")
	require.NoError(t, err)
	assert.Equal(t, "C", quote)
}

func TestSelectQuoteAlwaysFromCatalog(t *testing.T) {
	dates := []string{
		"2024-01-01", "2024-02-29", "2024-12-31",
		"2025-06-15", "1999-09-09", "2030-10-05",
	}
	for _, d := range dates {
		quote, err := SelectQuote(DefaultCatalog, d)
		require.NoError(t, err)
		assert.Contains(t, DefaultCatalog, quote, "date %s", d)
	}
}

func TestSelectQuoteSingleEntryCatalog(t *testing.T) {
	quote, err := SelectQuote([]string{"only"}, "2024-05-05")
	require.NoError(t, err)
	assert.Equal(t, "only", quote)
}

func TestSelectQuoteEmptyCatalog(t *testing.T) {
	_, err := SelectQuote(nil, "2024-01-02")
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = SelectQuote([]string{}, "2024-01-02")
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestCanonicalDateUsesLocation(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	// 2024-01-01 20:00 UTC is already Jan 2 in Seoul.
	instant := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01", CanonicalDate(instant, time.UTC))
	assert.Equal(t, "2024-01-02", CanonicalDate(instant, seoul))
}

func TestQuoteOfDayMatchesSelectQuote(t *testing.T) {
	instant := time.Date(2024, 3, 10, 6, 30, 0, 0, time.UTC)
	direct, err := SelectQuote(DefaultCatalog, "2024-03-10")
	require.NoError(t, err)

	viaTime, err := QuoteOfDay(DefaultCatalog, instant, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, direct, viaTime)
}
