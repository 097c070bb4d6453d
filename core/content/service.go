// ABOUTME: Content service is the persistence side of the content store contract
// ABOUTME: Applies access scoping, merge-update semantics and idempotent creates

package content

import (
	"bytes"
	"context"
	"errors"
	"time"

	"content-planner-api/core/access"
	"content-planner-api/core/domain"
	coreerrors "content-planner-api/core/errors"
	"content-planner-api/core/interfaces"
	"github.com/google/uuid"
)

// IdempotencyTTL is how long a create's idempotency key maps to its item
const IdempotencyTTL = 24 * time.Hour

// pendingTTL bounds how long a reservation outlives a crashed create
const pendingTTL = time.Minute

// pendingMarker holds an idempotency key while its create is running
var pendingMarker = []byte("pending")

const resource = "content item"

// ContentService handles content persistence for authenticated callers
type ContentService struct {
	repo   interfaces.ContentRepository
	cache  interfaces.Cache
	logger interfaces.Logger
	newID  func() string

	// pendingWait is how long a duplicate create waits for the first one
	// to finish before answering with a conflict
	pendingWait  time.Duration
	pollInterval time.Duration
}

// NewContentService creates a new content service. deps.Cache is optional;
// without it idempotency keys are ignored.
func NewContentService(deps interfaces.Dependencies) *ContentService {
	return &ContentService{
		repo:   deps.Repository,
		cache:  deps.Cache,
		logger: deps.LoggerOrNop(),
		newID:  func() string { return uuid.New().String() },

		pendingWait:  5 * time.Second,
		pollInterval: 25 * time.Millisecond,
	}
}

// List returns every item the caller may see
func (s *ContentService) List(ctx context.Context, caller domain.Caller) ([]domain.ContentItem, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx, access.OwnerScope(caller))
	if err != nil {
		return nil, coreerrors.WrapError(err, "list content")
	}
	return items, nil
}

// Create stores a new item owned by the caller and assigns its id. A
// repeated idempotency key returns the item created the first time.
func (s *ContentService) Create(ctx context.Context, caller domain.Caller, patch domain.ContentPatch, idempotencyKey string) (domain.ContentItem, error) {
	if err := requireCaller(caller); err != nil {
		return domain.ContentItem{}, err
	}
	if !patch.IsCreate() {
		return domain.ContentItem{}, &coreerrors.ValidationError{Field: "id", Message: "is assigned by the server"}
	}

	item := patch.Apply(domain.ContentItem{}).WithDefaults()
	if err := validate(item); err != nil {
		return domain.ContentItem{}, err
	}

	existing, replayed, reserved, err := s.reserve(ctx, caller, idempotencyKey)
	if err != nil {
		return domain.ContentItem{}, err
	}
	if replayed {
		s.logger.Info("Replayed idempotent create", map[string]interface{}{
			"id":      existing.ID,
			"user_id": caller.UserID,
		})
		return existing, nil
	}

	item.ID = s.newID()
	item.OwnerID = caller.UserID

	if err := s.repo.Insert(ctx, item); err != nil {
		if reserved {
			s.release(ctx, caller, idempotencyKey)
		}
		return domain.ContentItem{}, coreerrors.WrapError(err, "insert content")
	}
	if reserved {
		s.remember(ctx, caller, idempotencyKey, item.ID)
	}

	s.logger.Info("Content created", map[string]interface{}{
		"id":      item.ID,
		"user_id": caller.UserID,
		"status":  string(item.Status),
	})
	return item, nil
}

// Update merges patch into the stored item. Missing and inaccessible ids
// both yield a NotFoundError.
func (s *ContentService) Update(ctx context.Context, caller domain.Caller, patch domain.ContentPatch) (domain.ContentItem, error) {
	if err := requireCaller(caller); err != nil {
		return domain.ContentItem{}, err
	}
	if patch.IsCreate() {
		return domain.ContentItem{}, &coreerrors.ValidationError{Field: "id", Message: "is required"}
	}

	current, err := s.repo.Get(ctx, patch.ID)
	if err != nil {
		return domain.ContentItem{}, err
	}
	if !access.CanAccess(caller, *current) {
		return domain.ContentItem{}, &coreerrors.NotFoundError{Resource: resource, ID: patch.ID}
	}

	merged := patch.Apply(*current)
	if err := validate(merged); err != nil {
		return domain.ContentItem{}, err
	}
	if err := s.repo.Update(ctx, merged); err != nil {
		return domain.ContentItem{}, coreerrors.WrapError(err, "update content")
	}

	s.logger.Info("Content updated", map[string]interface{}{
		"id":      merged.ID,
		"user_id": caller.UserID,
	})
	return merged, nil
}

// Delete removes one item and reports whether a row was removed. Missing or
// inaccessible ids succeed without effect.
func (s *ContentService) Delete(ctx context.Context, caller domain.Caller, id string) (bool, error) {
	if err := requireCaller(caller); err != nil {
		return false, err
	}
	if id == "" {
		return false, &coreerrors.ValidationError{Field: "id", Message: "is required"}
	}

	current, err := s.repo.Get(ctx, id)
	if coreerrors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !access.CanAccess(caller, *current) {
		s.logger.Debug("Ignored delete of inaccessible content", map[string]interface{}{
			"id":      id,
			"user_id": caller.UserID,
		})
		return false, nil
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, coreerrors.WrapError(err, "delete content")
	}
	s.logger.Info("Content deleted", map[string]interface{}{
		"id":      id,
		"user_id": caller.UserID,
	})
	return deleted, nil
}

// DeleteAll removes every item the caller is permitted to delete
func (s *ContentService) DeleteAll(ctx context.Context, caller domain.Caller) (int64, error) {
	if err := requireCaller(caller); err != nil {
		return 0, err
	}
	n, err := s.repo.DeleteAll(ctx, access.OwnerScope(caller))
	if err != nil {
		return 0, coreerrors.WrapError(err, "delete all content")
	}
	s.logger.Warn("Content cleared", map[string]interface{}{
		"deleted": n,
		"user_id": caller.UserID,
		"admin":   caller.IsAdmin(),
	})
	return n, nil
}

// reserve claims an idempotency key before the insert. A duplicate that
// finds the key pending waits for the first create and replays its item;
// it answers with a ConflictError when the first create outlasts pendingWait.
// A cache failure degrades to an unguarded create.
func (s *ContentService) reserve(ctx context.Context, caller domain.Caller, key string) (item domain.ContentItem, replayed, reserved bool, err error) {
	if s.cache == nil || key == "" {
		return domain.ContentItem{}, false, false, nil
	}
	cacheKey := idempotencyCacheKey(caller, key)
	deadline := time.Now().Add(s.pendingWait)

	for {
		won, err := s.cache.Add(ctx, cacheKey, pendingMarker, pendingTTL)
		if err != nil {
			s.logger.Warn("Failed to reserve idempotency key", map[string]interface{}{
				"user_id": caller.UserID,
				"error":   err.Error(),
			})
			return domain.ContentItem{}, false, false, nil
		}
		if won {
			return domain.ContentItem{}, false, true, nil
		}

		value, err := s.cache.Get(ctx, cacheKey)
		switch {
		case err != nil:
			// Released or expired since Add; try to claim it again
		case bytes.Equal(value, pendingMarker):
			// The first create is still running
		default:
			existing, err := s.repo.Get(ctx, string(value))
			if err == nil && access.CanAccess(caller, *existing) {
				return *existing, true, false, nil
			}
			// The first item is gone, so the key starts over
			s.release(ctx, caller, key)
			continue
		}

		if !time.Now().Before(deadline) {
			return domain.ContentItem{}, false, false, &coreerrors.ConflictError{
				Resource: resource,
				Message:  "a create with this idempotency key is still in progress",
			}
		}
		select {
		case <-ctx.Done():
			return domain.ContentItem{}, false, false, ctx.Err()
		case <-time.After(s.pollInterval):
		}
	}
}

func (s *ContentService) release(ctx context.Context, caller domain.Caller, key string) {
	if err := s.cache.Delete(ctx, idempotencyCacheKey(caller, key)); err != nil {
		s.logger.Warn("Failed to release idempotency key", map[string]interface{}{
			"user_id": caller.UserID,
			"error":   err.Error(),
		})
	}
}

func (s *ContentService) remember(ctx context.Context, caller domain.Caller, key, id string) {
	if err := s.cache.Set(ctx, idempotencyCacheKey(caller, key), []byte(id), IdempotencyTTL); err != nil {
		s.logger.Warn("Failed to store idempotency key", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
	}
}

func idempotencyCacheKey(caller domain.Caller, key string) string {
	return "idem:" + caller.UserID + ":" + key
}

func requireCaller(caller domain.Caller) error {
	if caller.UserID == "" {
		return &coreerrors.UnauthorizedError{Reason: "no session"}
	}
	return nil
}

func validate(item domain.ContentItem) error {
	err := item.Validate()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrEmptyTitle):
		return &coreerrors.ValidationError{Field: "title", Message: "cannot be empty"}
	case errors.Is(err, domain.ErrInvalidPlatform):
		return &coreerrors.ValidationError{Field: "platform", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidStatus):
		return &coreerrors.ValidationError{Field: "status", Message: err.Error()}
	default:
		return &coreerrors.ValidationError{Field: "item", Message: err.Error()}
	}
}
