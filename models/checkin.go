package models

import "time"

// CheckIn stores one wake-up verification per user per day. The
// composite unique index makes the one-per-day rule a storage
// guarantee rather than an application-level check.
//
// CheckinDate is the canonical calendar date (YYYY-MM-DD) and
// CheckinTime a zero-padded 24-hour HH:MM:SS, both rendered in the
// configured app timezone. Lexicographic order on CheckinTime equals
// chronological order, which is what the ranking sort relies on.
type CheckIn struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_checkins_user_date" json:"user_id"`
	UserName    string    `gorm:"size:64;not null" json:"user_name"`
	CheckinDate string    `gorm:"size:10;not null;index;uniqueIndex:idx_checkins_user_date" json:"checkin_date"`
	CheckinTime string    `gorm:"size:8;not null" json:"checkin_time"`
	Quote       string    `gorm:"size:512;not null" json:"quote"`
	CreatedAt   time.Time `json:"created_at"`
}
