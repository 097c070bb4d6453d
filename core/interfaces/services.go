// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts between the state layer, views and the store

package interfaces

import (
	"context"

	"content-planner-api/core/domain"
)

// ContentStore is the client-side view of the persistence service. All
// operations are remote calls and none of them retry.
type ContentStore interface {
	FetchAll(ctx context.Context) ([]domain.ContentItem, error)
	Create(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error)
	Update(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error)
	DeleteOne(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// ContentService is the server-side persistence service used by the HTTP handlers
type ContentService interface {
	List(ctx context.Context, caller domain.Caller) ([]domain.ContentItem, error)
	Create(ctx context.Context, caller domain.Caller, patch domain.ContentPatch, idempotencyKey string) (domain.ContentItem, error)
	Update(ctx context.Context, caller domain.Caller, patch domain.ContentPatch) (domain.ContentItem, error)
	Delete(ctx context.Context, caller domain.Caller, id string) (bool, error)
	DeleteAll(ctx context.Context, caller domain.Caller) (int64, error)
}
