package geocoder

import (
	"context"
	"sync"

	"github.com/rajasatyajit/ReliefOps/internal/models"
)

// MemoryCache is the per-run in-process cache. Its lifetime is scoped to
// the Geocoder instance that owns it.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*models.LocationInfo
}

// NewMemoryCache creates an empty in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*models.LocationInfo),
	}
}

// Get returns the cached entry. A stored nil means "looked up, unresolved".
func (c *MemoryCache) Get(ctx context.Context, place string) (*models.LocationInfo, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, found := c.entries[place]
	return info, found, nil
}

// Set stores an entry; a nil info records a failed lookup
func (c *MemoryCache) Set(ctx context.Context, place string, info *models.LocationInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[place] = info
	return nil
}

// Len returns the number of cached entries
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
