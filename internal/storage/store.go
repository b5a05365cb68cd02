// Package storage implements the dual-path project persistence: a durable
// backend (Firestore or Postgres) mirrored by a never-failing fallback cache.
// Reads degrade through backend -> cache -> seeded default; absence is never
// an error.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/wedding-seating/go-seating-backend/internal/seating/domain"
)

// Storage modes reported by Mode and the health endpoint.
const (
	ModeDurable   = "durable"
	ModeCacheOnly = "cache-only"
)

// ErrInvalidPayload marks a write payload that fails shape validation. It is
// returned before any I/O happens.
var ErrInvalidPayload = errors.New("invalid project payload")

// Backend is a durable document store keyed by project id. Set must use merge
// semantics: fields absent from the payload do not erase unrelated stored
// fields.
type Backend interface {
	Get(ctx context.Context, projectID string) (domain.Project, bool, error)
	Set(ctx context.Context, projectID string, p domain.Project) error
	Close() error
}

// Cache is the process-wide fallback store. Implementations never fail:
// errors are swallowed and logged, a miss is just (zero, false).
type Cache interface {
	Get(ctx context.Context, projectID string) (domain.Project, bool)
	Set(ctx context.Context, projectID string, p domain.Project)
}

// ProjectStore composes the durable backend with the fallback cache. The
// backend may be nil, in which case the store runs in cache-only mode for the
// process lifetime.
type ProjectStore struct {
	backend Backend
	cache   Cache
}

// New builds a ProjectStore. A nil cache gets the in-memory default.
func New(backend Backend, cache Cache) *ProjectStore {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &ProjectStore{backend: backend, cache: cache}
}

// Mode reports whether writes reach a durable backend.
func (s *ProjectStore) Mode() string {
	if s.backend != nil {
		return ModeDurable
	}
	return ModeCacheOnly
}

// Read returns the stored project, the cached copy, or a fresh default, in
// that order. A backend read failure is a real error (surfaced as 500 by the
// HTTP layer); "not found" is not.
func (s *ProjectStore) Read(ctx context.Context, projectID string) (domain.Project, error) {
	if s.backend != nil {
		p, found, err := s.backend.Get(ctx, projectID)
		if err != nil {
			return domain.Project{}, fmt.Errorf("read project %s: %w", projectID, err)
		}
		if found {
			return p, nil
		}
	}

	if p, found := s.cache.Get(ctx, projectID); found {
		return p, nil
	}

	return domain.DefaultProject(projectID), nil
}

// ValidatePayload checks the write payload shape: guests and layouts must be
// present sequences and activeLayoutId a string. Anything else is rejected
// before I/O.
func ValidatePayload(p domain.Project) error {
	if p.Guests == nil || p.Layouts == nil {
		return ErrInvalidPayload
	}
	return nil
}

// Write validates, stamps updatedAt, upserts into the durable backend with
// merge semantics and mirrors the payload into the fallback cache. The
// stamped payload is returned. A backend failure aborts before the cache is
// touched, so the cache never gets ahead of a failed durable write's caller.
func (s *ProjectStore) Write(ctx context.Context, projectID string, p domain.Project) (domain.Project, error) {
	if err := ValidatePayload(p); err != nil {
		return domain.Project{}, err
	}

	p.ProjectID = projectID
	p.UpdatedAt = domain.NowISO()

	if s.backend != nil {
		if err := s.backend.Set(ctx, projectID, p); err != nil {
			return domain.Project{}, fmt.Errorf("write project %s: %w", projectID, err)
		}
	}

	s.cache.Set(ctx, projectID, p)
	return p, nil
}

// Close releases the backend connection, if any.
func (s *ProjectStore) Close() {
	if s.backend == nil {
		return
	}
	if err := s.backend.Close(); err != nil {
		log.Printf("storage: close backend: %v", err)
	}
}
