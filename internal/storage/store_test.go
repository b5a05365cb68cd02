package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wedding-seating/go-seating-backend/internal/seating/domain"
)

// flakyBackend fails every call, standing in for an unreachable durable store.
type flakyBackend struct{}

func (flakyBackend) Get(context.Context, string) (domain.Project, bool, error) {
	return domain.Project{}, false, errors.New("backend down")
}
func (flakyBackend) Set(context.Context, string, domain.Project) error {
	return errors.New("backend down")
}
func (flakyBackend) Close() error { return nil }

// recordingBackend remembers the last Set and serves it back.
type recordingBackend struct {
	docs map[string]domain.Project
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{docs: map[string]domain.Project{}}
}

func (b *recordingBackend) Get(_ context.Context, id string) (domain.Project, bool, error) {
	p, ok := b.docs[id]
	return p, ok, nil
}

func (b *recordingBackend) Set(_ context.Context, id string, p domain.Project) error {
	b.docs[id] = p
	return nil
}

func (b *recordingBackend) Close() error { return nil }

func validPayload() domain.Project {
	return domain.Project{
		Guests:         []domain.Guest{{ID: "g1", Name: "佐藤 太郎", Side: domain.SideGroom}},
		Layouts:        domain.DefaultProject("x").Layouts,
		ActiveLayoutID: domain.DefaultLayoutID,
	}
}

func TestRead_DefaultSeed(t *testing.T) {
	s := New(nil, nil)

	p, err := s.Read(context.Background(), "neverSeenId")
	require.NoError(t, err)

	assert.Equal(t, "neverSeenId", p.ProjectID)
	assert.Empty(t, p.Guests)
	require.Len(t, p.Layouts, 1)
	assert.Equal(t, "l1", p.ActiveLayoutID)

	tables := p.Layouts[0].Tables
	require.Len(t, tables, 4)
	names := []string{tables[0].Name, tables[1].Name, tables[2].Name, tables[3].Name}
	assert.Equal(t, []string{"松", "竹", "梅", "蘭"}, names)
	for _, tbl := range tables {
		assert.Equal(t, 8, tbl.Capacity)
	}
}

func TestCacheOnly_WriteThenReadRoundTrips(t *testing.T) {
	s := New(nil, nil)
	assert.Equal(t, ModeCacheOnly, s.Mode())

	saved, err := s.Write(context.Background(), "p1", validPayload())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.UpdatedAt)
	assert.Equal(t, "p1", saved.ProjectID)

	got, err := s.Read(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestWrite_RejectsInvalidPayload(t *testing.T) {
	s := New(nil, nil)

	_, err := s.Write(context.Background(), "p1", domain.Project{ActiveLayoutID: "l1"})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = s.Write(context.Background(), "p1", domain.Project{Guests: []domain.Guest{}})
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestWrite_BackendFailureDoesNotTouchCache(t *testing.T) {
	s := New(flakyBackend{}, nil)
	assert.Equal(t, ModeDurable, s.Mode())

	_, err := s.Write(context.Background(), "p1", validPayload())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidPayload)
}

func TestWrite_MirrorsIntoCacheAndStampsBackend(t *testing.T) {
	backend := newRecordingBackend()
	s := New(backend, nil)

	saved, err := s.Write(context.Background(), "p1", validPayload())
	require.NoError(t, err)
	assert.Equal(t, saved, backend.docs["p1"], "backend receives the stamped payload")

	// A read that misses the backend still finds the cached mirror.
	s2 := New(nil, nil)
	_, err = s2.Write(context.Background(), "p1", validPayload())
	require.NoError(t, err)
	got, err := s2.Read(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ProjectID)
}

func TestRead_BackendHitWinsOverCache(t *testing.T) {
	backend := newRecordingBackend()
	s := New(backend, nil)

	first, err := s.Write(context.Background(), "p1", validPayload())
	require.NoError(t, err)

	// Another client writes directly to the durable store.
	remote := first
	remote.ActiveLayoutID = "l2"
	backend.docs["p1"] = remote

	got, err := s.Read(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "l2", got.ActiveLayoutID, "durable copy wins over the stale cache")
}

func TestRead_BackendErrorSurfaces(t *testing.T) {
	s := New(flakyBackend{}, nil)
	_, err := s.Read(context.Background(), "p1")
	assert.Error(t, err)
}

func TestValidatePayload(t *testing.T) {
	assert.NoError(t, ValidatePayload(validPayload()))
	assert.Error(t, ValidatePayload(domain.Project{Guests: []domain.Guest{}}))
	assert.Error(t, ValidatePayload(domain.Project{Layouts: []domain.Layout{}}))

	// Empty-but-present sequences are fine, matching the original's
	// Array.isArray checks.
	assert.NoError(t, ValidatePayload(domain.Project{
		Guests:  []domain.Guest{},
		Layouts: []domain.Layout{},
	}))
}
