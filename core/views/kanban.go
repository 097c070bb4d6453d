// ABOUTME: Kanban projection groups items into one column per status
// ABOUTME: Drops move a card through the shared optimistic mutation path

package views

import (
	"context"

	"content-planner-api/core/domain"
	coreerrors "content-planner-api/core/errors"
	"content-planner-api/core/state"
)

// Column is one status lane
type Column struct {
	Status domain.Status
	Items  []domain.ContentItem
}

// Board is the kanban layout. Items whose status is not a known enum value
// cannot be placed and are listed separately.
type Board struct {
	Columns  []Column
	Unplaced []domain.ContentItem
}

// Column returns the lane for status
func (b Board) Column(status domain.Status) (Column, bool) {
	for _, c := range b.Columns {
		if c.Status == status {
			return c, true
		}
	}
	return Column{}, false
}

// BuildBoard groups items by status in canonical workflow order
func BuildBoard(items []domain.ContentItem) Board {
	statuses := domain.Statuses()
	board := Board{Columns: make([]Column, len(statuses))}
	for i, st := range statuses {
		board.Columns[i] = Column{Status: st, Items: []domain.ContentItem{}}
	}

	for _, item := range items {
		idx := item.Status.Index()
		if idx < 0 {
			board.Unplaced = append(board.Unplaced, item)
			continue
		}
		board.Columns[idx].Items = append(board.Columns[idx].Items, item)
	}
	return board
}

// ResolveDropTarget maps the element under the pointer to a status. overID
// is either a column id (the status name) or the id of another card.
func ResolveDropTarget(items []domain.ContentItem, overID string) (domain.Status, bool) {
	if st, err := domain.ParseStatus(overID); err == nil {
		return st, true
	}
	for _, item := range items {
		if item.ID == overID && item.Status.IsValid() {
			return item.Status, true
		}
	}
	return "", false
}

// Source is the part of the shared state the board reads and writes
type Source interface {
	Snapshot() state.Snapshot
	Mutate(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error)
}

// Kanban renders the board and handles drops
type Kanban struct {
	source Source
}

// NewKanban creates a board over source
func NewKanban(source Source) *Kanban {
	return &Kanban{source: source}
}

// Board builds the current layout
func (k *Kanban) Board() Board {
	return BuildBoard(k.source.Snapshot().Items)
}

// Drop moves activeID to the status resolved from overID. It reports
// whether a change was sent; dropping onto the current status is a no-op.
func (k *Kanban) Drop(ctx context.Context, activeID, overID string) (bool, error) {
	items := k.source.Snapshot().Items

	target, ok := ResolveDropTarget(items, overID)
	if !ok {
		return false, nil
	}

	var active *domain.ContentItem
	for i := range items {
		if items[i].ID == activeID {
			active = &items[i]
			break
		}
	}
	if active == nil {
		return false, &coreerrors.NotFoundError{Resource: "content item", ID: activeID}
	}
	if active.Status == target {
		return false, nil
	}

	if _, err := k.source.Mutate(ctx, domain.StatusPatch(activeID, target)); err != nil {
		return true, err
	}
	return true, nil
}
