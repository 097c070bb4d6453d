// ABOUTME: Editor is the create/edit form shared by every view
// ABOUTME: Tracks the Closed, OpenForCreate and OpenForEdit states and submits through the shared state

package editor

import (
	"context"
	"strings"
	"sync"
	"time"

	"content-planner-api/core/domain"
	coreerrors "content-planner-api/core/errors"
	"content-planner-api/core/interfaces"
	timeutil "content-planner-api/pkg/utils/time"
	"github.com/google/uuid"
)

// Mode is the editor state
type Mode int

const (
	Closed Mode = iota
	OpenForCreate
	OpenForEdit
)

func (m Mode) String() string {
	switch m {
	case OpenForCreate:
		return "create"
	case OpenForEdit:
		return "edit"
	default:
		return "closed"
	}
}

// Form holds the editable fields as the user sees them. Date is YYYY-MM-DD
// in the editor's location, or empty.
type Form struct {
	ID          string
	Title       string
	Platform    domain.Platform
	Status      domain.Status
	Type        string
	Date        string
	IsSponsored bool
	Notes       string
}

// Saver submits a form. state.State satisfies it.
type Saver interface {
	SaveWithKey(ctx context.Context, patch domain.ContentPatch, key string) (domain.ContentItem, error)
}

// Prefill adjusts a new form before it opens
type Prefill func(*Form)

// WithDate preselects the day a create was started from
func WithDate(day time.Time) Prefill {
	return func(f *Form) { f.Date = day.Format(timeutil.DateLayout) }
}

// WithStatus preselects the column a create was started from
func WithStatus(status domain.Status) Prefill {
	return func(f *Form) { f.Status = status }
}

// Editor is safe for concurrent use
type Editor struct {
	mu     sync.Mutex
	mode   Mode
	form   Form
	key    string
	saving bool

	saver  Saver
	loc    *time.Location
	logger interfaces.Logger
}

// New creates a closed editor. Dates are read and shown in loc (nil means time.Local).
func New(saver Saver, loc *time.Location, logger interfaces.Logger) *Editor {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Editor{saver: saver, loc: loc, logger: logger}
}

// Mode returns the current state
func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Form returns a copy of the form
func (e *Editor) Form() Form {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

// OpenCreate opens an empty form with the creation defaults. Each create
// session gets its own idempotency key so retries never duplicate the item.
func (e *Editor) OpenCreate(prefill ...Prefill) {
	form := Form{Platform: domain.DefaultPlatform, Status: domain.DefaultStatus}
	for _, p := range prefill {
		p(&form)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = OpenForCreate
	e.form = form
	e.key = uuid.New().String()
}

// OpenEdit loads item into the form
func (e *Editor) OpenEdit(item domain.ContentItem) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = OpenForEdit
	e.key = ""
	e.form = Form{
		ID:          item.ID,
		Title:       item.Title,
		Platform:    item.Platform,
		Status:      item.Status,
		Type:        item.Type,
		Date:        timeutil.FormatDate(item.TargetDate, e.loc),
		IsSponsored: item.IsSponsored,
		Notes:       item.Notes,
	}
}

// Edit changes the form while it is open; it reports false when closed
func (e *Editor) Edit(fn func(*Form)) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode == Closed {
		return false
	}
	id := e.form.ID
	fn(&e.form)
	e.form.ID = id
	return true
}

// Cancel closes the form without saving
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.close()
}

// Save validates the form and submits it. The editor closes on success and
// stays open with the same form and key on failure so the user can retry.
func (e *Editor) Save(ctx context.Context) (domain.ContentItem, error) {
	e.mu.Lock()
	if e.mode == Closed {
		e.mu.Unlock()
		return domain.ContentItem{}, &coreerrors.ValidationError{Field: "form", Message: "is not open"}
	}
	if e.saving {
		e.mu.Unlock()
		return domain.ContentItem{}, &coreerrors.ValidationError{Field: "form", Message: "is already being saved"}
	}
	form, key := e.form, e.key
	patch, err := e.patchFrom(form)
	if err != nil {
		e.mu.Unlock()
		return domain.ContentItem{}, err
	}
	e.saving = true
	e.mu.Unlock()

	saved, err := e.saver.SaveWithKey(ctx, patch, key)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false
	if err != nil {
		e.logger.Warn("Save failed, form kept open", map[string]interface{}{
			"mode":  e.mode.String(),
			"error": err.Error(),
		})
		return domain.ContentItem{}, err
	}
	e.close()
	return saved, nil
}

func (e *Editor) close() {
	e.mode = Closed
	e.form = Form{}
	e.key = ""
}

func (e *Editor) patchFrom(form Form) (domain.ContentPatch, error) {
	if strings.TrimSpace(form.Title) == "" {
		return domain.ContentPatch{}, &coreerrors.ValidationError{Field: "title", Message: "is required"}
	}

	var target time.Time
	if strings.TrimSpace(form.Date) != "" {
		parsed := timeutil.ParseFlexibleTimeIn(form.Date, e.loc)
		if parsed.IsZero() {
			return domain.ContentPatch{}, &coreerrors.ValidationError{Field: "target_date", Message: "is not a valid date"}
		}
		target = timeutil.LocalMidnight(parsed, e.loc)
	}

	patch := domain.PatchFromItem(domain.ContentItem{
		ID:          form.ID,
		Title:       strings.TrimSpace(form.Title),
		Platform:    form.Platform,
		Status:      form.Status,
		Type:        form.Type,
		TargetDate:  target,
		IsSponsored: form.IsSponsored,
		Notes:       form.Notes,
	})
	if e.mode == OpenForCreate {
		patch.ID = ""
	}
	return patch, nil
}
