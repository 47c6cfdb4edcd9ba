package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somin-jeong/quote-to-wake/models"
)

const testDate = "2024-06-01"

func record(id, userID uint, date, clock string) models.CheckIn {
	return models.CheckIn{ID: id, UserID: userID, CheckinDate: date, CheckinTime: clock}
}

func TestComputeRankingOrdersByTime(t *testing.T) {
	records := []models.CheckIn{
		record(1, 10, testDate, "06:15:00"),
		record(2, 20, testDate, "05:30:00"),
		record(3, 30, testDate, "05:30:00"),
	}

	entries := ComputeRanking(records, testDate)
	require.Len(t, entries, 3)

	// Ties keep input order: user 20 entered before user 30.
	assert.Equal(t, uint(20), entries[0].Record.UserID)
	assert.Equal(t, uint(30), entries[1].Record.UserID)
	assert.Equal(t, uint(10), entries[2].Record.UserID)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Position)
	}

	rank, err := RankOf(records, testDate, 30)
	require.NoError(t, err)
	assert.Equal(t, 2, rank)
}

func TestComputeRankingFiltersByDate(t *testing.T) {
	records := []models.CheckIn{
		record(1, 10, testDate, "06:00:00"),
		record(2, 20, "2024-06-02", "05:00:00"),
		record(3, 30, testDate, "07:00:00"),
	}

	entries := ComputeRanking(records, testDate)
	require.Len(t, entries, 2)
	assert.Equal(t, uint(10), entries[0].Record.UserID)
	assert.Equal(t, uint(30), entries[1].Record.UserID)

	_, err := RankOf(records, testDate, 20)
	assert.ErrorIs(t, err, ErrNotRanked)
}

func TestComputeRankingPositionsContiguous(t *testing.T) {
	records := []models.CheckIn{
		record(1, 1, testDate, "07:45:12"),
		record(2, 2, testDate, "05:12:00"),
		record(3, 3, testDate, "06:00:00"),
		record(4, 4, testDate, "06:00:00"),
		record(5, 5, testDate, "09:01:33"),
	}

	entries := ComputeRanking(records, testDate)
	require.Len(t, entries, len(records))

	seen := map[uint]bool{}
	for i, e := range entries {
		assert.Equal(t, i+1, e.Position)
		assert.False(t, seen[e.Record.UserID], "record duplicated")
		seen[e.Record.UserID] = true
	}
}

func TestComputeRankingIsPure(t *testing.T) {
	records := []models.CheckIn{
		record(1, 10, testDate, "06:15:00"),
		record(2, 20, testDate, "05:30:00"),
	}

	first := ComputeRanking(records, testDate)
	second := ComputeRanking(records, testDate)
	assert.Equal(t, first, second)

	// Input order must survive the internal sort.
	assert.Equal(t, uint(10), records[0].UserID)
	assert.Equal(t, uint(20), records[1].UserID)
}

func TestComputeRankingEmptySet(t *testing.T) {
	assert.Empty(t, ComputeRanking(nil, testDate))
	assert.Empty(t, ComputeRanking([]models.CheckIn{}, testDate))

	_, err := RankOf(nil, testDate, 1)
	assert.ErrorIs(t, err, ErrNotRanked)
}

func TestRankOfReturnsFirstMatchInSortedOrder(t *testing.T) {
	// Two rows for one user should not happen (unique index), but if
	// present the earlier time wins.
	records := []models.CheckIn{
		record(1, 10, testDate, "08:00:00"),
		record(2, 10, testDate, "05:00:00"),
		record(3, 20, testDate, "06:00:00"),
	}

	rank, err := RankOf(records, testDate, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
}
