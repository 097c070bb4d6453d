// ABOUTME: ContentPatch is a partial ContentItem used for create and merge-update
// ABOUTME: Nil fields are left untouched when a patch is applied

package domain

import "time"

// ContentPatch carries the fields a caller wants to set. An empty ID means
// the patch describes a new item.
type ContentPatch struct {
	ID          string
	Title       *string
	Platform    *Platform
	Status      *Status
	Type        *string
	TargetDate  *time.Time
	IsSponsored *bool
	Notes       *string
}

// IsCreate reports whether the patch has no id yet
func (p ContentPatch) IsCreate() bool {
	return p.ID == ""
}

// Apply merges the non-nil fields of p over item. The id and owner of item
// are never changed.
func (p ContentPatch) Apply(item ContentItem) ContentItem {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Platform != nil {
		item.Platform = *p.Platform
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.Type != nil {
		item.Type = *p.Type
	}
	if p.TargetDate != nil {
		item.TargetDate = *p.TargetDate
	}
	if p.IsSponsored != nil {
		item.IsSponsored = *p.IsSponsored
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	return item
}

// PatchFromItem returns a patch that sets every field of item
func PatchFromItem(item ContentItem) ContentPatch {
	return ContentPatch{
		ID:          item.ID,
		Title:       &item.Title,
		Platform:    &item.Platform,
		Status:      &item.Status,
		Type:        &item.Type,
		TargetDate:  &item.TargetDate,
		IsSponsored: &item.IsSponsored,
		Notes:       &item.Notes,
	}
}

// StatusPatch returns a patch that only moves an item to status
func StatusPatch(id string, status Status) ContentPatch {
	return ContentPatch{ID: id, Status: &status}
}

// Ptr returns a pointer to v, for building patches inline
func Ptr[T any](v T) *T {
	return &v
}
