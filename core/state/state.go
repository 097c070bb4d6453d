// ABOUTME: Shared content state holds the one item list every view renders from
// ABOUTME: Coordinates refreshes, saves and optimistic mutations against the store

package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"content-planner-api/core/domain"
	coreerrors "content-planner-api/core/errors"
	"content-planner-api/core/interfaces"
	"github.com/google/uuid"
)

// ErrBusy is returned by Save while another save is in flight
var ErrBusy = errors.New("a save is already in progress")

// Snapshot is an immutable view of the state. Items is a fresh copy.
type Snapshot struct {
	Items []domain.ContentItem

	// Loading is true while at least one refresh is in flight
	Loading bool

	// Generation is the token of the refresh that produced the base list
	Generation uint64

	// LastError is the failure of the latest refresh, nil once one succeeds
	LastError error

	RefreshedAt time.Time
}

// Find returns the item with id
func (s Snapshot) Find(id string) (domain.ContentItem, bool) {
	for _, item := range s.Items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.ContentItem{}, false
}

// overlay is one pending optimistic mutation. A nil patch removes the item.
type overlay struct {
	seq    uint64
	itemID string
	patch  *domain.ContentPatch
}

// Option configures a State
type Option func(*State)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// WithKeyGenerator replaces the idempotency key generator
func WithKeyGenerator(gen func() string) Option {
	return func(s *State) { s.newKey = gen }
}

// State is the single source of truth for content shown by the views
type State struct {
	store  interfaces.ContentStore
	logger interfaces.Logger
	now    func() time.Time
	newKey func() string

	mu          sync.Mutex
	base        []domain.ContentItem
	overlays    []overlay
	overlaySeq  uint64
	issued      uint64
	applied     uint64
	inFlight    int
	lastErr     error
	refreshedAt time.Time
	saving      bool

	listenerMu   sync.Mutex
	listeners    map[int]func(Snapshot)
	nextListener int
}

// New creates an empty state over store
func New(store interfaces.ContentStore, logger interfaces.Logger, opts ...Option) *State {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	s := &State{
		store:     store,
		logger:    logger,
		now:       time.Now,
		newKey:    func() string { return uuid.New().String() },
		listeners: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current items with pending mutations applied
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	items := make([]domain.ContentItem, len(s.base))
	copy(items, s.base)

	for _, o := range s.overlays {
		for i := 0; i < len(items); i++ {
			if items[i].ID != o.itemID {
				continue
			}
			if o.patch == nil {
				items = append(items[:i], items[i+1:]...)
				i--
				continue
			}
			items[i] = o.patch.Apply(items[i])
		}
	}

	return Snapshot{
		Items:       items,
		Loading:     s.inFlight > 0,
		Generation:  s.applied,
		LastError:   s.lastErr,
		RefreshedAt: s.refreshedAt,
	}
}

// Subscribe registers fn to receive a snapshot after every change and
// returns a function that unregisters it
func (s *State) Subscribe(fn func(Snapshot)) func() {
	s.listenerMu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.listenerMu.Unlock()

	return func() {
		s.listenerMu.Lock()
		delete(s.listeners, id)
		s.listenerMu.Unlock()
	}
}

func (s *State) notify(snap Snapshot) {
	s.listenerMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenerMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Refresh replaces the base list with the store's current contents. Only
// the most recently started refresh may apply its result; on failure the
// previous items are kept. A refresh overtaken by a newer one returns nil
// whatever its outcome.
func (s *State) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.issued++
	gen := s.issued
	s.inFlight++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	items, err := s.store.FetchAll(ctx)

	s.mu.Lock()
	s.inFlight--
	latest := gen == s.issued
	switch {
	case !latest:
		fields := map[string]interface{}{
			"generation": gen,
			"latest":     s.issued,
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		s.logger.Debug("Discarded stale refresh result", fields)
	case err != nil:
		s.lastErr = err
	default:
		s.base = items
		s.applied = gen
		s.lastErr = nil
		s.refreshedAt = s.now()
	}
	snap = s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	switch {
	case !latest:
		// A newer refresh owns the snapshot, so this outcome is not reported
		return nil
	case err != nil:
		s.logger.Error("Failed to refresh content", map[string]interface{}{
			"generation": gen,
			"error":      err.Error(),
		})
		return err
	default:
		s.logger.Debug("Content refreshed", map[string]interface{}{
			"generation": gen,
			"items":      len(items),
		})
		return nil
	}
}

// Save creates the item when patch has no id and updates it otherwise.
// Creates get a fresh idempotency key.
func (s *State) Save(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error) {
	return s.SaveWithKey(ctx, patch, "")
}

// SaveWithKey is Save with a caller-chosen idempotency key, so that a
// retried create from the same form cannot produce duplicates. Only one
// save may be in flight; others get ErrBusy.
func (s *State) SaveWithKey(ctx context.Context, patch domain.ContentPatch, key string) (domain.ContentItem, error) {
	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return domain.ContentItem{}, ErrBusy
	}
	s.saving = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.saving = false
		s.mu.Unlock()
	}()

	if !patch.IsCreate() {
		return s.Mutate(ctx, patch)
	}

	if key == "" {
		key = s.newKey()
	}
	created, err := s.store.Create(interfaces.WithHeader(ctx, interfaces.IdempotencyKeyHeader, key), patch)
	if err != nil {
		s.logger.Error("Failed to create content", map[string]interface{}{
			"error": err.Error(),
		})
		return domain.ContentItem{}, err
	}

	s.logger.Info("Content created", map[string]interface{}{"id": created.ID})
	s.reconcile(ctx)
	return created, nil
}

// Mutate applies patch to the local copy immediately, sends it to the
// store, and reconciles with a refresh on success or rolls back on failure.
// Every view that edits an existing item goes through here.
func (s *State) Mutate(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error) {
	if patch.IsCreate() {
		return domain.ContentItem{}, &coreerrors.ValidationError{Field: "id", Message: "is required for update"}
	}

	p := patch
	seq := s.pushOverlay(overlay{itemID: patch.ID, patch: &p})

	updated, err := s.store.Update(ctx, patch)
	if err != nil {
		s.dropOverlay(seq, nil)
		s.logger.Error("Failed to update content, rolled back", map[string]interface{}{
			"id":    patch.ID,
			"error": err.Error(),
		})
		return domain.ContentItem{}, err
	}

	s.dropOverlay(seq, func(base []domain.ContentItem) []domain.ContentItem {
		for i := range base {
			if base[i].ID == updated.ID {
				base[i] = updated
			}
		}
		return base
	})
	s.reconcile(ctx)
	return updated, nil
}

// Delete removes the item locally, then from the store; a failure restores it
func (s *State) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &coreerrors.ValidationError{Field: "id", Message: "is required for delete"}
	}

	seq := s.pushOverlay(overlay{itemID: id})

	if err := s.store.DeleteOne(ctx, id); err != nil {
		s.dropOverlay(seq, nil)
		s.logger.Error("Failed to delete content, rolled back", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
		return err
	}

	s.dropOverlay(seq, func(base []domain.ContentItem) []domain.ContentItem {
		out := base[:0]
		for _, item := range base {
			if item.ID != id {
				out = append(out, item)
			}
		}
		return out
	})
	s.logger.Info("Content deleted", map[string]interface{}{"id": id})
	s.reconcile(ctx)
	return nil
}

// DeleteAll removes every item the session may delete, then refreshes
func (s *State) DeleteAll(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		s.logger.Error("Failed to delete all content", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	s.logger.Warn("All content deleted", nil)
	s.reconcile(ctx)
	return nil
}

// reconcile refreshes after a successful write. The write already
// succeeded, so a refresh failure is recorded and logged but not returned.
func (s *State) reconcile(ctx context.Context) {
	_ = s.Refresh(ctx)
}

func (s *State) pushOverlay(o overlay) uint64 {
	s.mu.Lock()
	s.overlaySeq++
	o.seq = s.overlaySeq
	s.overlays = append(s.overlays, o)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
	return o.seq
}

// dropOverlay removes overlay seq and, when commit is set, folds the
// confirmed result into the base list in the same step
func (s *State) dropOverlay(seq uint64, commit func([]domain.ContentItem) []domain.ContentItem) {
	s.mu.Lock()
	for i, o := range s.overlays {
		if o.seq == seq {
			s.overlays = append(s.overlays[:i], s.overlays[i+1:]...)
			break
		}
	}
	if commit != nil {
		base := make([]domain.ContentItem, len(s.base))
		copy(base, s.base)
		s.base = commit(base)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}
