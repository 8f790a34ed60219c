package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryEventDedupStore(t *testing.T) {
	t.Parallel()

	store := NewMemoryEventDedupStore()
	seen, err := store.Seen(context.Background(), "evt_1", time.Hour)
	if err != nil {
		t.Fatalf("first seen: %v", err)
	}
	if seen {
		t.Fatalf("first delivery must not be seen")
	}
	seen, err = store.Seen(context.Background(), "evt_1", time.Hour)
	if err != nil {
		t.Fatalf("second seen: %v", err)
	}
	if !seen {
		t.Fatalf("redelivery must be seen")
	}
}

func TestMemoryEventDedupStoreClockAdvances(t *testing.T) {
	t.Parallel()

	store := NewMemoryEventDedupStore()
	if seen, _ := store.Seen(context.Background(), "evt_1", 10*time.Millisecond); seen {
		t.Fatalf("first delivery must not be seen")
	}
	time.Sleep(50 * time.Millisecond)
	if seen, _ := store.Seen(context.Background(), "evt_1", 10*time.Millisecond); seen {
		t.Fatalf("entry past its ttl must be forgotten on the real clock")
	}
}

func TestMemoryEventDedupStoreExpiry(t *testing.T) {
	t.Parallel()

	store := NewMemoryEventDedupStore()
	now := time.Now().UTC()
	store.nowFn = func() time.Time { return now }

	if seen, _ := store.Seen(context.Background(), "evt_1", time.Hour); seen {
		t.Fatalf("first delivery must not be seen")
	}
	now = now.Add(2 * time.Hour)
	if seen, _ := store.Seen(context.Background(), "evt_1", time.Hour); seen {
		t.Fatalf("expired entry must be forgotten")
	}
}
