// ABOUTME: Mappers between content domain models and API DTOs
// ABOUTME: Field-name translation and date parsing happen here and nowhere else on the server

package mappers

import (
	"strings"
	"time"

	"content-planner-api/api/dto/requests"
	"content-planner-api/api/dto/responses"
	"content-planner-api/core/domain"
	coreerrors "content-planner-api/core/errors"
	timeutil "content-planner-api/pkg/utils/time"
)

// ToContentItemResponse converts a domain item to its wire form
func ToContentItemResponse(item domain.ContentItem) responses.ContentItemResponse {
	resp := responses.ContentItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Platform:    string(item.Platform),
		Status:      string(item.Status),
		Type:        item.Type,
		IsSponsored: item.IsSponsored,
		Notes:       item.Notes,
	}
	if !item.TargetDate.IsZero() {
		resp.TargetDate = item.TargetDate.UTC().Format(time.RFC3339)
	}
	return resp
}

// ToContentItemResponses converts a list; the result is never nil
func ToContentItemResponses(items []domain.ContentItem) []responses.ContentItemResponse {
	out := make([]responses.ContentItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToContentItemResponse(item))
	}
	return out
}

// ToContentPatch converts a request body to a patch. Unknown enum values are
// rejected; an unparseable date clears the date. Date-only values are read
// in loc.
func ToContentPatch(req requests.ContentItemRequest, loc *time.Location) (domain.ContentPatch, error) {
	patch := domain.ContentPatch{
		ID:          strings.TrimSpace(req.ID),
		Title:       req.Title,
		Type:        req.Type,
		Notes:       req.Notes,
		IsSponsored: req.ResolvedIsSponsored(),
	}

	if req.Platform != nil {
		p, err := domain.ParsePlatform(*req.Platform)
		if err != nil {
			return domain.ContentPatch{}, &coreerrors.ValidationError{Field: "platform", Message: err.Error()}
		}
		patch.Platform = &p
	}
	if req.Status != nil {
		s, err := domain.ParseStatus(*req.Status)
		if err != nil {
			return domain.ContentPatch{}, &coreerrors.ValidationError{Field: "status", Message: err.Error()}
		}
		patch.Status = &s
	}
	if raw := req.ResolvedTargetDate(); raw != nil {
		t := timeutil.ParseFlexibleTimeIn(*raw, loc)
		patch.TargetDate = &t
	}

	return patch, nil
}
