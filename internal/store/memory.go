package store

import (
	"context"
	"sort"
	"sync"

	"github.com/rajasatyajit/ReliefOps/internal/models"
)

// InMemoryStore implements Store using in-memory storage
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string]models.Event
}

// NewInMemoryStore creates a new in-memory store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		events: make(map[string]models.Event),
	}
}

// UpsertEvents stores events in memory keyed by ID
func (s *InMemoryStore) UpsertEvents(ctx context.Context, events []models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, event := range events {
		s.events[event.ID] = event
	}

	return nil
}

// QueryEvents retrieves events matching the query parameters
func (s *InMemoryStore) QueryEvents(ctx context.Context, q models.EventQuery) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Event
	for _, event := range s.events {
		if q.Matches(event) {
			result = append(result, event)
		}
	}

	// Sort by PublishedAt descending, ID for a stable order
	sort.Slice(result, func(i, j int) bool {
		if !result[i].PublishedAt.Equal(result[j].PublishedAt) {
			return result[i].PublishedAt.After(result[j].PublishedAt)
		}
		return result[i].ID < result[j].ID
	})

	if q.Offset > 0 && q.Offset < len(result) {
		result = result[q.Offset:]
	} else if q.Offset >= len(result) && q.Offset > 0 {
		result = []models.Event{}
	}

	if q.Limit > 0 && q.Limit < len(result) {
		result = result[:q.Limit]
	}

	return result, nil
}

// GetEvent retrieves a single event by ID. Missing events return nil
// without error.
func (s *InMemoryStore) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if event, exists := s.events[id]; exists {
		return &event, nil
	}

	return nil, nil
}

// Health always returns nil for in-memory store
func (s *InMemoryStore) Health(ctx context.Context) error {
	return nil
}
