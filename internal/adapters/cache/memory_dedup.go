package cache

import (
	"context"
	"sync"
	"time"
)

type MemoryEventDedupStore struct {
	mu    sync.Mutex
	seen  map[string]time.Time
	nowFn func() time.Time
}

func NewMemoryEventDedupStore() *MemoryEventDedupStore {
	return &MemoryEventDedupStore{
		seen:  make(map[string]time.Time),
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryEventDedupStore) Seen(_ context.Context, eventID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowFn()
	if expiry, ok := s.seen[eventID]; ok && now.Before(expiry) {
		return true, nil
	}
	s.seen[eventID] = now.Add(ttl)
	return false, nil
}
