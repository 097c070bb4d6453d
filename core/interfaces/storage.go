// ABOUTME: Storage interfaces for persisting domain entities
// ABOUTME: Defines contracts for data persistence operations

package interfaces

import (
	"context"

	"content-planner-api/core/domain"
)

// ContentRepository persists content items for the persistence service.
// An empty ownerID in List and DeleteAll means every owner.
type ContentRepository interface {
	// List returns the items of ownerID ordered by target date
	List(ctx context.Context, ownerID string) ([]domain.ContentItem, error)

	// Get returns one item; a missing id yields a NotFoundError
	Get(ctx context.Context, id string) (*domain.ContentItem, error)

	// Insert stores a new item. The id must already be assigned.
	Insert(ctx context.Context, item domain.ContentItem) error

	// Update replaces the stored fields of an existing item
	Update(ctx context.Context, item domain.ContentItem) error

	// Delete removes one item and reports whether it existed
	Delete(ctx context.Context, id string) (bool, error)

	// DeleteAll removes every item of ownerID and returns the count
	DeleteAll(ctx context.Context, ownerID string) (int64, error)
}
