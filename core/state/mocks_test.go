package state

import (
	"context"

	"content-planner-api/core/domain"
)

// mockStore is a mock implementation of the ContentStore interface
type mockStore struct {
	fetchAllFunc  func(ctx context.Context) ([]domain.ContentItem, error)
	createFunc    func(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error)
	updateFunc    func(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error)
	deleteOneFunc func(ctx context.Context, id string) error
	deleteAllFunc func(ctx context.Context) error
}

func (m *mockStore) FetchAll(ctx context.Context) ([]domain.ContentItem, error) {
	if m.fetchAllFunc != nil {
		return m.fetchAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) Create(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, patch)
	}
	return patch.Apply(domain.ContentItem{ID: "created"}), nil
}

func (m *mockStore) Update(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, patch)
	}
	return patch.Apply(domain.ContentItem{ID: patch.ID}), nil
}

func (m *mockStore) DeleteOne(ctx context.Context, id string) error {
	if m.deleteOneFunc != nil {
		return m.deleteOneFunc(ctx, id)
	}
	return nil
}

func (m *mockStore) DeleteAll(ctx context.Context) error {
	if m.deleteAllFunc != nil {
		return m.deleteAllFunc(ctx)
	}
	return nil
}
