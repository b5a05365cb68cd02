package storage

import (
	"context"
	"sync"

	"github.com/wedding-seating/go-seating-backend/internal/seating/domain"
)

// MemoryCache is the default fallback cache: a process-local map keyed by
// project id. Access is serialized per store because reads and writes for the
// same id may come from the request goroutine and the autosave goroutine.
type MemoryCache struct {
	mu       sync.RWMutex
	projects map[string]domain.Project
}

// NewMemoryCache returns an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{projects: make(map[string]domain.Project)}
}

func (c *MemoryCache) Get(_ context.Context, projectID string) (domain.Project, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.projects[projectID]
	if !ok {
		return domain.Project{}, false
	}
	return domain.CloneProject(p), true
}

func (c *MemoryCache) Set(_ context.Context, projectID string, p domain.Project) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects[projectID] = domain.CloneProject(p)
}
