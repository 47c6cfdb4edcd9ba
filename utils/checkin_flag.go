package utils

import (
	"context"
	"strconv"
	"time"
)

func checkInFlagKey(userID uint, date string) string {
	return "checkin:done:" + date + ":" + strconv.FormatUint(uint64(userID), 10)
}

// MarkCheckedIn caches the done-for-today flag until local midnight so
// repeat submits can be rejected without a database read.
func MarkCheckedIn(userID uint, date string, loc *time.Location) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	now := time.Now().In(loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).Add(24 * time.Hour)
	ttl := time.Until(midnight)
	if ttl <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = rc.Set(ctx, checkInFlagKey(userID, date), "1", ttl).Err()
}

// HasCheckedIn reports whether the done-for-today flag is set. Redis
// errors read as "unknown" so callers fall through to the database.
func HasCheckedIn(userID uint, date string) bool {
	rc := GetRedis()
	if rc == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	n, err := rc.Exists(ctx, checkInFlagKey(userID, date)).Result()
	return err == nil && n > 0
}
