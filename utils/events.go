package utils

import (
	"context"
	"encoding/json"
	"time"
)

// checkInEventsChannel carries a notification for every new check-in.
// Subscribers re-fetch the full board on each message; the payload is
// advisory only.
const checkInEventsChannel = "checkin:events"

// CheckInEvent is published whenever a check-in row is created.
type CheckInEvent struct {
	UserID      uint   `json:"user_id"`
	CheckinDate string `json:"checkin_date"`
	CheckinTime string `json:"checkin_time"`
}

// PublishCheckIn broadcasts a check-in event. Best-effort: a Redis
// failure only delays live viewers until their next heartbeat refresh.
func PublishCheckIn(ev CheckInEvent) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Publish(ctx, checkInEventsChannel, b).Err(); err != nil {
		if Sugar != nil {
			Sugar.Warnf("checkin event publish failed: %v", err)
		}
	}
}

// SubscribeCheckIns subscribes to the check-in feed and returns a
// channel of events plus a close function. Malformed payloads are
// dropped. The channel is closed when ctx ends or close is called.
func SubscribeCheckIns(ctx context.Context) (<-chan CheckInEvent, func()) {
	rc := GetRedis()
	sub := rc.Subscribe(ctx, checkInEventsChannel)
	out := make(chan CheckInEvent, 8)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var ev CheckInEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, func() { _ = sub.Close() }
}
