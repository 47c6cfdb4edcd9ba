package services

import (
	"errors"
	"sort"

	"github.com/somin-jeong/quote-to-wake/models"
)

// ErrNotRanked is returned when a user has no check-in on the board.
var ErrNotRanked = errors.New("user has no check-in for this date")

// RankedEntry is one leaderboard row: a check-in with its 1-based position.
type RankedEntry struct {
	Position int            `json:"position"`
	Record   models.CheckIn `json:"record"`
}

// ComputeRanking filters records to forDate and orders them by
// check-in time ascending. Positions are contiguous from 1; equal
// times keep their relative input order (stable sort), and no record
// is dropped or duplicated. The input slice is not modified.
func ComputeRanking(records []models.CheckIn, forDate string) []RankedEntry {
	filtered := make([]models.CheckIn, 0, len(records))
	for _, r := range records {
		if r.CheckinDate == forDate {
			filtered = append(filtered, r)
		}
	}

	// CheckinTime is zero-padded HH:MM:SS, so string comparison is
	// chronological comparison.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CheckinTime < filtered[j].CheckinTime
	})

	entries := make([]RankedEntry, len(filtered))
	for i, r := range filtered {
		entries[i] = RankedEntry{Position: i + 1, Record: r}
	}
	return entries
}

// RankOf returns the 1-based position of the first record for userID
// on forDate, or ErrNotRanked when the user is absent from the board.
func RankOf(records []models.CheckIn, forDate string, userID uint) (int, error) {
	for _, e := range ComputeRanking(records, forDate) {
		if e.Record.UserID == userID {
			return e.Position, nil
		}
	}
	return 0, ErrNotRanked
}
