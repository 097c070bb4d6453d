// ABOUTME: In-memory content repository for tests and ephemeral deployments
// ABOUTME: Mirrors the SQLite repository ordering and not-found semantics

package memory

import (
	"context"
	"sort"
	"sync"

	"content-planner-api/core/domain"
	coreerrors "content-planner-api/core/errors"
)

// Repository implements interfaces.ContentRepository with a guarded map
type Repository struct {
	mu    sync.RWMutex
	items map[string]domain.ContentItem
}

// NewRepository creates an empty repository
func NewRepository() *Repository {
	return &Repository{items: make(map[string]domain.ContentItem)}
}

// List returns the items of ownerID ordered by target date, missing dates first
func (r *Repository) List(ctx context.Context, ownerID string) ([]domain.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	out := make([]domain.ContentItem, 0, len(r.items))
	for _, item := range r.items {
		if ownerID == "" || item.OwnerID == ownerID {
			out = append(out, item)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].TargetDate, out[j].TargetDate
		if !a.Equal(b) {
			return a.Before(b)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Get returns one item by id
func (r *Repository) Get(ctx context.Context, id string) (*domain.ContentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, &coreerrors.NotFoundError{Resource: "content item", ID: id}
	}
	return &item, nil
}

// Insert stores a new item; an existing id is a validation error
func (r *Repository) Insert(ctx context.Context, item domain.ContentItem) error {
	if item.ID == "" {
		return &coreerrors.ValidationError{Field: "id", Message: "id cannot be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return &coreerrors.ValidationError{Field: "id", Message: "already exists"}
	}
	r.items[item.ID] = item
	return nil
}

// Update replaces an existing item, keeping its owner
func (r *Repository) Update(ctx context.Context, item domain.ContentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[item.ID]
	if !ok {
		return &coreerrors.NotFoundError{Resource: "content item", ID: item.ID}
	}
	item.OwnerID = current.OwnerID
	r.items[item.ID] = item
	return nil
}

// Delete removes one item and reports whether it existed
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]
	delete(r.items, id)
	return ok, nil
}

// DeleteAll removes every item of ownerID, or everything for an empty ownerID
func (r *Repository) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, item := range r.items {
		if ownerID == "" || item.OwnerID == ownerID {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}
