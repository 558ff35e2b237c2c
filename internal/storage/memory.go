package storage

import (
	"sync"
	"time"

	"github.com/OKaluzny/sui-tips/pkg/models"
)

// MemoryFeedStore is an in-memory FeedStore. Callers get copies, so a
// snapshot they hold is never changed by a later Replace.
type MemoryFeedStore struct {
	mu      sync.RWMutex
	events  []models.TipEvent
	updated time.Time
	now     func() time.Time
}

func NewMemoryFeedStore() *MemoryFeedStore {
	return &MemoryFeedStore{now: time.Now}
}

func (s *MemoryFeedStore) Replace(events []models.TipEvent) error {
	snapshot := make([]models.TipEvent, len(events))
	copy(snapshot, events)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = snapshot
	s.updated = s.now()
	return nil
}

func (s *MemoryFeedStore) List() ([]models.TipEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.TipEvent, len(s.events))
	copy(result, s.events)
	return result, nil
}

func (s *MemoryFeedStore) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updated
}
