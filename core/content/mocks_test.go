package content

import (
	"context"
	"sort"
	"sync"
	"time"

	"content-planner-api/core/domain"
	coreerrors "content-planner-api/core/errors"
)

// fakeRepository is an in-memory ContentRepository for service tests
type fakeRepository struct {
	mu        sync.Mutex
	items     map[string]domain.ContentItem
	insertErr   error
	insertDelay time.Duration
	listScope   string
}

func newFakeRepository(items ...domain.ContentItem) *fakeRepository {
	r := &fakeRepository{items: make(map[string]domain.ContentItem)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeRepository) List(ctx context.Context, ownerID string) ([]domain.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listScope = ownerID
	var out []domain.ContentItem
	for _, item := range r.items {
		if ownerID == "" || item.OwnerID == ownerID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepository) Get(ctx context.Context, id string) (*domain.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, &coreerrors.NotFoundError{Resource: "content item", ID: id}
	}
	return &item, nil
}

func (r *fakeRepository) Insert(ctx context.Context, item domain.ContentItem) error {
	if r.insertDelay > 0 {
		time.Sleep(r.insertDelay)
	}
	if r.insertErr != nil {
		return r.insertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *fakeRepository) Update(ctx context.Context, item domain.ContentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[id]
	delete(r.items, id)
	return ok, nil
}

func (r *fakeRepository) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
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

// mapCache is a Cache backed by a map, ignoring TTLs
type mapCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{values: make(map[string][]byte)}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return nil, &coreerrors.NotFoundError{Resource: "cache key", ID: key}
	}
	return v, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *mapCache) Add(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.values[key]; ok {
		return false, nil
	}
	c.values[key] = value
	return true, nil
}
