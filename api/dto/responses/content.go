// ABOUTME: Response DTOs for content endpoints
// ABOUTME: Items are emitted with snake_case field names only

package responses

// ContentItemResponse is one content item on the wire
type ContentItemResponse struct {
	ID          string `json:"id" doc:"Item id"`
	Title       string `json:"title" doc:"Working title"`
	Platform    string `json:"platform" doc:"Publishing platform"`
	Status      string `json:"status" doc:"Workflow status"`
	Type        string `json:"type" doc:"Free-text content type"`
	TargetDate  string `json:"target_date,omitempty" doc:"Planned publish date, RFC 3339; absent when unset"`
	IsSponsored bool   `json:"is_sponsored" doc:"Whether the piece is sponsored"`
	Notes       string `json:"notes" doc:"Free-text notes"`
}

// DeleteResponse reports the outcome of a delete
type DeleteResponse struct {
	Deleted int64 `json:"deleted" doc:"Number of rows removed; 0 when the item was already gone or is not the caller's"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status  string `json:"status" doc:"ok when the service is serving"`
	Version string `json:"version" doc:"Service version"`
}
