// ABOUTME: Request DTOs for content endpoints
// ABOUTME: Accepts the snake_case wire names plus the legacy aliases some clients still send

package requests

// ContentItemRequest is the body of POST and PUT /api/content. Every field
// is optional so PUT can merge; POST requires a title. The alias fields are
// read only when the canonical name is absent.
type ContentItemRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	ID          string  `json:"id,omitempty" maxLength:"128" doc:"Item id; required on update, must be absent on create"`
	Title       *string `json:"title,omitempty" maxLength:"500" doc:"Working title"`
	Platform    *string `json:"platform,omitempty" doc:"Publishing platform: YouTube, Short, Reel, Podcast or Email"`
	Status      *string `json:"status,omitempty" doc:"Workflow status: Idea, Scripting, Recording, Editing, Scheduled or Published"`
	Type        *string `json:"type,omitempty" maxLength:"100" doc:"Free-text content type"`
	Notes       *string `json:"notes,omitempty" doc:"Free-text notes"`
	TargetDate  *string `json:"target_date,omitempty" doc:"Planned publish date (RFC 3339 or YYYY-MM-DD)"`
	IsSponsored *bool   `json:"is_sponsored,omitempty" doc:"Whether the piece is sponsored"`

	TargetDateLower  *string `json:"targetdate,omitempty" doc:"Alias of target_date"`
	TargetDateCamel  *string `json:"targetDate,omitempty" doc:"Alias of target_date"`
	IsSponsoredCamel *bool   `json:"isSponsored,omitempty" doc:"Alias of is_sponsored"`
}

// ResolvedTargetDate returns the date value using precedence
// target_date > targetdate > targetDate
func (r *ContentItemRequest) ResolvedTargetDate() *string {
	switch {
	case r.TargetDate != nil:
		return r.TargetDate
	case r.TargetDateLower != nil:
		return r.TargetDateLower
	default:
		return r.TargetDateCamel
	}
}

// ResolvedIsSponsored returns is_sponsored, falling back to isSponsored
func (r *ContentItemRequest) ResolvedIsSponsored() *bool {
	if r.IsSponsored != nil {
		return r.IsSponsored
	}
	return r.IsSponsoredCamel
}
