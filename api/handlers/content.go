// ABOUTME: Content handlers for the Huma API
// ABOUTME: Exposes list, create, merge-update and delete of content items plus the iCalendar export

package handlers

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"content-planner-api/api/dto/mappers"
	"content-planner-api/api/dto/requests"
	"content-planner-api/api/dto/responses"
	"content-planner-api/core/domain"
	coreerrors "content-planner-api/core/errors"
	"content-planner-api/core/interfaces"
	"content-planner-api/core/views"
	"content-planner-api/pkg/featureflags"
	"github.com/danielgtaylor/huma/v2"
)

// DeleteAllID is the id value that deletes every item in the caller's scope
const DeleteAllID = "all"

// ContentHandler handles content HTTP requests
type ContentHandler struct {
	service interfaces.ContentService
	flags   featureflags.Manager
	loc     *time.Location
	now     func() time.Time
	logger  interfaces.Logger
}

// ContentHandlerOption configures a ContentHandler
type ContentHandlerOption func(*ContentHandler)

// WithLocation sets the zone date-only input is read in
func WithLocation(loc *time.Location) ContentHandlerOption {
	return func(h *ContentHandler) {
		if loc != nil {
			h.loc = loc
		}
	}
}

// WithClock replaces time.Now for the calendar export
func WithClock(now func() time.Time) ContentHandlerOption {
	return func(h *ContentHandler) { h.now = now }
}

// WithLogger sets the handler logger
func WithLogger(logger interfaces.Logger) ContentHandlerOption {
	return func(h *ContentHandler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewContentHandler creates a new content handler. flags decides which
// routes are registered; per-request flags come from the request context.
func NewContentHandler(service interfaces.ContentService, flags featureflags.Manager, opts ...ContentHandlerOption) *ContentHandler {
	if flags == nil {
		flags = featureflags.NewDefaultManager()
	}
	h := &ContentHandler{
		service: service,
		flags:   flags,
		loc:     time.Local,
		now:     time.Now,
		logger:  interfaces.NopLogger{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers all content routes
func (h *ContentHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listContent",
		Method:      http.MethodGet,
		Path:        "/api/content",
		Summary:     "List content items",
		Description: "Returns every item visible to the caller. Admins see all items.",
		Tags:        []string{"Content"},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID:   "createContent",
		Method:        http.MethodPost,
		Path:          "/api/content",
		Summary:       "Create a content item",
		Description:   "Creates an item owned by the caller. A repeated Idempotency-Key returns the original item.",
		Tags:          []string{"Content"},
		DefaultStatus: http.StatusCreated,
	}, h.Create)

	huma.Register(api, huma.Operation{
		OperationID: "updateContent",
		Method:      http.MethodPut,
		Path:        "/api/content",
		Summary:     "Update a content item",
		Description: "Merges the supplied fields into the item named by id. Omitted fields are kept.",
		Tags:        []string{"Content"},
	}, h.Update)

	huma.Register(api, huma.Operation{
		OperationID: "deleteContent",
		Method:      http.MethodDelete,
		Path:        "/api/content",
		Summary:     "Delete content items",
		Description: "Deletes the item named by id, or every item in the caller's scope when id is \"all\".",
		Tags:        []string{"Content"},
	}, h.Delete)

	if h.flags.IsEnabled(context.Background(), featureflags.CalendarExportEnabled) {
		huma.Register(api, huma.Operation{
			OperationID: "exportCalendar",
			Method:      http.MethodGet,
			Path:        "/api/content/calendar.ics",
			Summary:     "Export the content calendar",
			Description: "Returns the caller's items as all-day iCalendar events",
			Tags:        []string{"Content"},
		}, h.ExportCalendar)
	}
}

// ListContentOutput defines the output for the List operation
type ListContentOutput struct {
	Body []responses.ContentItemResponse
}

// List handles GET /api/content
func (h *ContentHandler) List(ctx context.Context, input *struct{}) (*ListContentOutput, error) {
	items, err := h.service.List(ctx, callerFrom(ctx))
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ListContentOutput{Body: mappers.ToContentItemResponses(items)}, nil
}

// CreateContentInput defines the input for the Create operation
type CreateContentInput struct {
	IdempotencyKey string `header:"Idempotency-Key" maxLength:"255" doc:"Client-generated key; retries with the same key never create duplicates"`
	Body           requests.ContentItemRequest
}

// ContentItemOutput wraps a single item
type ContentItemOutput struct {
	Body responses.ContentItemResponse
}

// Create handles POST /api/content
func (h *ContentHandler) Create(ctx context.Context, input *CreateContentInput) (*ContentItemOutput, error) {
	patch, err := mappers.ToContentPatch(input.Body, h.loc)
	if err != nil {
		return nil, toHumaError(err)
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	if !featureflags.IsEnabled(ctx, featureflags.IdempotencyEnabled) {
		key = ""
	}

	item, err := h.service.Create(ctx, callerFrom(ctx), patch, key)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ContentItemOutput{Body: mappers.ToContentItemResponse(item)}, nil
}

// UpdateContentInput defines the input for the Update operation
type UpdateContentInput struct {
	Body requests.ContentItemRequest
}

// Update handles PUT /api/content
func (h *ContentHandler) Update(ctx context.Context, input *UpdateContentInput) (*ContentItemOutput, error) {
	patch, err := mappers.ToContentPatch(input.Body, h.loc)
	if err != nil {
		return nil, toHumaError(err)
	}
	if patch.IsCreate() {
		return nil, toHumaError(&coreerrors.ValidationError{Field: "id", Message: "is required"})
	}

	item, err := h.service.Update(ctx, callerFrom(ctx), patch)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ContentItemOutput{Body: mappers.ToContentItemResponse(item)}, nil
}

// DeleteContentInput defines the input for the Delete operation
type DeleteContentInput struct {
	ID string `query:"id" maxLength:"128" doc:"Item id, or \"all\""`
}

// DeleteContentOutput defines the output for the Delete operation
type DeleteContentOutput struct {
	Body responses.DeleteResponse
}

// Delete handles DELETE /api/content?id=
func (h *ContentHandler) Delete(ctx context.Context, input *DeleteContentInput) (*DeleteContentOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, huma.Error400BadRequest("id query parameter is required")
	}
	caller := callerFrom(ctx)

	if id == DeleteAllID {
		n, err := h.service.DeleteAll(ctx, caller)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &DeleteContentOutput{Body: responses.DeleteResponse{Deleted: n}}, nil
	}

	deleted, err := h.service.Delete(ctx, caller, id)
	if err != nil {
		return nil, toHumaError(err)
	}
	var n int64
	if deleted {
		n = 1
	}
	return &DeleteContentOutput{Body: responses.DeleteResponse{Deleted: n}}, nil
}

// CalendarOutput is an iCalendar document
type CalendarOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// ExportCalendar handles GET /api/content/calendar.ics
func (h *ContentHandler) ExportCalendar(ctx context.Context, input *struct{}) (*CalendarOutput, error) {
	items, err := h.service.List(ctx, callerFrom(ctx))
	if err != nil {
		return nil, toHumaError(err)
	}

	var buf bytes.Buffer
	if err := views.WriteICS(&buf, items, h.now().In(h.loc)); err != nil {
		h.logger.Error("Calendar export failed", map[string]interface{}{
			"items": len(items),
			"error": err.Error(),
		})
		return nil, toHumaError(err)
	}

	return &CalendarOutput{
		ContentType:        "text/calendar; charset=utf-8",
		ContentDisposition: `attachment; filename="content-calendar.ics"`,
		Body:               buf.Bytes(),
	}, nil
}

// callerFrom returns the caller placed in the context by the auth
// middleware; the zero caller is rejected by the service
func callerFrom(ctx context.Context) domain.Caller {
	caller, _ := domain.CallerFromContext(ctx)
	return caller
}
