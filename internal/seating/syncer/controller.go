// Package syncer orchestrates the layout store against the project store:
// project-id provisioning, load-with-fallback, debounced autosave and status
// reporting.
package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wedding-seating/go-seating-backend/internal/seating/domain"
	"github.com/wedding-seating/go-seating-backend/internal/seating/state"
	"github.com/wedding-seating/go-seating-backend/internal/storage"
)

// DefaultDebounce is the autosave settle window: rapid successive edits
// within it collapse into a single write.
const DefaultDebounce = 1200 * time.Millisecond

// Status strings shown to the user. Observational only, never persisted.
const (
	StatusLoading   = "読み込み中..."
	StatusSynced    = "クラウド同期済み"
	StatusOffline   = "初期データで開始 (オフライン)"
	StatusSaveError = "保存エラー: 再試行してください"
)

// IDStore remembers the client's project id across sessions.
type IDStore interface {
	Load() string
	Store(id string)
}

// Controller owns one client session's synchronization state.
type Controller struct {
	store    *state.Store
	projects *storage.ProjectStore

	mu        sync.Mutex
	projectID string
	status    string
	loaded    bool
	reflected bool
	timer     *time.Timer

	debounce time.Duration
	ids      IDStore
	reflect  func(id string)
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce overrides the autosave settle window (tests use a short one).
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithIDStore wires the remembered-id storage used during provisioning.
func WithIDStore(ids IDStore) Option {
	return func(c *Controller) { c.ids = ids }
}

// WithLinkReflector sets the hook that writes the resolved id back into
// shareable-link state. Called at most once per controller.
func WithLinkReflector(fn func(id string)) Option {
	return func(c *Controller) { c.reflect = fn }
}

// New builds a controller around a layout store and a project store.
func New(store *state.Store, projects *storage.ProjectStore, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		projects: projects,
		status:   StatusLoading,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provision resolves the session's project id: an explicit id wins, then the
// remembered id, then a freshly generated one. The result is remembered and,
// when it did not come from a link, reflected back into link state once.
// Re-provisioning an already resolved session is a no-op.
func (c *Controller) Provision(explicit string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.projectID != "" {
		return c.projectID
	}

	id := explicit
	if id == "" && c.ids != nil {
		id = c.ids.Load()
	}
	if id == "" {
		id = domain.NewProjectID()
	}

	c.projectID = id
	if c.ids != nil {
		c.ids.Store(id)
	}
	if explicit == "" && c.reflect != nil && !c.reflected {
		c.reflected = true
		c.reflect(id)
	}
	return id
}

// ProjectID returns the resolved id, or "" before provisioning.
func (c *Controller) ProjectID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectID
}

// Load reads the project and hydrates the layout store. Any failure degrades
// to the local sample seed and an offline status instead of propagating.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	id := c.projectID
	c.status = StatusLoading
	c.mu.Unlock()

	p, err := c.projects.Read(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.store.Hydrate(domain.SeedProject(id))
		c.status = StatusOffline
	} else {
		c.store.Hydrate(p)
		c.status = StatusSynced
	}
	c.loaded = true
}

// MarkDirty notes a state change and restarts the debounce window. Calls
// before the initial load finishes are ignored so hydration does not trigger
// a write-back.
func (c *Controller) MarkDirty() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded || c.projectID == "" {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.save(context.Background())
	})
}

// SaveNow writes immediately, bypassing the debounce window. A pending
// debounced write already scheduled is left alone; both may fire and the
// store's last-write-wins ordering resolves them.
func (c *Controller) SaveNow(ctx context.Context) error {
	return c.save(ctx)
}

// Flush cancels any pending debounced write and saves once, synchronously.
// Used on shutdown.
func (c *Controller) Flush(ctx context.Context) error {
	c.mu.Lock()
	pending := c.timer != nil && c.timer.Stop()
	c.timer = nil
	c.mu.Unlock()

	if pending {
		return c.save(ctx)
	}
	return nil
}

// Close stops the debounce timer without saving.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) save(ctx context.Context) error {
	c.mu.Lock()
	id := c.projectID
	c.mu.Unlock()
	if id == "" {
		return nil
	}

	saved, err := c.projects.Write(ctx, id, c.store.Snapshot())

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.status = StatusSaveError
		return err
	}
	c.status = fmt.Sprintf("保存完了: %s", saved.UpdatedAt)
	return nil
}

// Status returns the current sync status string.
func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}
