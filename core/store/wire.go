// ABOUTME: Wire codec for content items as the persistence service sends them
// ABOUTME: Tolerates legacy field-name aliases and bad dates when decoding

package store

import (
	"encoding/json"
	"time"

	"content-planner-api/core/domain"
	timeutil "content-planner-api/pkg/utils/time"
)

// wireItem mirrors the JSON object on the wire. Alias fields are consulted
// only when the canonical field is absent.
type wireItem struct {
	ID          string  `json:"id,omitempty"`
	Title       *string `json:"title,omitempty"`
	Platform    *string `json:"platform,omitempty"`
	Status      *string `json:"status,omitempty"`
	Type        *string `json:"type,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	TargetDate  *string `json:"target_date,omitempty"`
	IsSponsored *bool   `json:"is_sponsored,omitempty"`

	TargetDateLower  *string `json:"targetdate,omitempty"`
	TargetDateCamel  *string `json:"targetDate,omitempty"`
	IsSponsoredCamel *bool   `json:"isSponsored,omitempty"`
}

func (w wireItem) targetDate() *string {
	switch {
	case w.TargetDate != nil:
		return w.TargetDate
	case w.TargetDateLower != nil:
		return w.TargetDateLower
	default:
		return w.TargetDateCamel
	}
}

func (w wireItem) isSponsored() bool {
	if w.IsSponsored != nil {
		return *w.IsSponsored
	}
	return w.IsSponsoredCamel != nil && *w.IsSponsoredCamel
}

// toDomain converts a decoded item. Enum values are taken as sent so that a
// newer server cannot make the whole list undecodable; views treat unknown
// statuses as unplaceable.
func (w wireItem) toDomain(loc *time.Location) domain.ContentItem {
	item := domain.ContentItem{
		ID:          w.ID,
		IsSponsored: w.isSponsored(),
	}
	if w.Title != nil {
		item.Title = *w.Title
	}
	if w.Platform != nil {
		item.Platform = domain.Platform(*w.Platform)
	}
	if w.Status != nil {
		item.Status = domain.Status(*w.Status)
	}
	if w.Type != nil {
		item.Type = *w.Type
	}
	if w.Notes != nil {
		item.Notes = *w.Notes
	}
	if raw := w.targetDate(); raw != nil {
		item.TargetDate = timeutil.ParseFlexibleTimeIn(*raw, loc)
	}
	return item
}

// fromPatch encodes only the fields a patch sets, using canonical names
func fromPatch(p domain.ContentPatch) wireItem {
	w := wireItem{
		ID:          p.ID,
		Title:       p.Title,
		Type:        p.Type,
		Notes:       p.Notes,
		IsSponsored: p.IsSponsored,
	}
	if p.Platform != nil {
		s := string(*p.Platform)
		w.Platform = &s
	}
	if p.Status != nil {
		s := string(*p.Status)
		w.Status = &s
	}
	if p.TargetDate != nil {
		s := ""
		if !p.TargetDate.IsZero() {
			s = p.TargetDate.Format(time.RFC3339)
		}
		w.TargetDate = &s
	}
	return w
}

func decodeItem(data []byte, loc *time.Location) (domain.ContentItem, error) {
	var w wireItem
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.ContentItem{}, err
	}
	return w.toDomain(loc), nil
}

func decodeItems(data []byte, loc *time.Location) ([]domain.ContentItem, error) {
	var ws []wireItem
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, err
	}
	items := make([]domain.ContentItem, 0, len(ws))
	for _, w := range ws {
		items = append(items, w.toDomain(loc))
	}
	return items, nil
}
