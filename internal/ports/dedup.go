package ports

import (
	"context"
	"time"
)

// EventDedupStore suppresses redelivered webhook events. Seen marks
// the event id and reports whether it was already recorded within ttl.
type EventDedupStore interface {
	Seen(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
}
