// ABOUTME: Main client for the planner library tying the store, shared state, views and editor together
// ABOUTME: Offers one object the CLI and other front ends drive instead of wiring core packages themselves

package planner

import (
	"context"
	"io"
	"time"

	"content-planner-api/core/domain"
	"content-planner-api/core/editor"
	"content-planner-api/core/interfaces"
	"content-planner-api/core/locale"
	"content-planner-api/core/state"
	"content-planner-api/core/store"
	"content-planner-api/core/views"
	httpInfra "content-planner-api/infrastructure/http/standard"
)

// Client is the main entry point for the planner library
type Client struct {
	state    *state.State
	kanban   *views.Kanban
	calendar *views.Calendar
	editor   *editor.Editor
	config   Config
}

// NewClient creates a new planner client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()
	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = httpInfra.NewStandardHTTPClientWithOptions(httpInfra.Options{
			Timeout:         config.Timeout,
			Token:           config.Token,
			BreakerFailures: config.BreakerFailures,
			Logger:          config.Logger,
		})
	}

	deps := interfaces.Dependencies{
		HTTPClient: httpClient,
		Logger:     config.Logger,
	}
	contentStore, err := store.NewClient(config.BaseURL, deps, store.WithLocation(config.Location))
	if err != nil {
		return nil, &Error{Type: ErrorTypeConfiguration, Message: "invalid persistence service URL", Cause: err}
	}

	st := state.New(contentStore, config.Logger, state.WithClock(config.Now))
	return &Client{
		state:    st,
		kanban:   views.NewKanban(st),
		calendar: views.NewCalendar(config.Location, config.Now),
		editor:   editor.New(st, config.Location, config.Logger),
		config:   config,
	}, nil
}

// State exposes the shared state for subscriptions
func (c *Client) State() *state.State { return c.state }

// Editor returns the shared create/edit form
func (c *Client) Editor() *editor.Editor { return c.editor }

// Kanban returns the board view
func (c *Client) Kanban() *views.Kanban { return c.kanban }

// Calendar returns the calendar view
func (c *Client) Calendar() *views.Calendar { return c.calendar }

// Locale returns the display language
func (c *Client) Locale() locale.Locale { return c.config.Locale }

// Location returns the display time zone
func (c *Client) Location() *time.Location { return c.config.Location }

// Now returns the client's current time in its location
func (c *Client) Now() time.Time { return c.config.Now().In(c.config.Location) }

// Refresh reloads the item list from the service
func (c *Client) Refresh(ctx context.Context) error {
	return c.state.Refresh(ctx)
}

// Items returns the current item list
func (c *Client) Items() []domain.ContentItem {
	return c.state.Snapshot().Items
}

// Find returns the item with id from the current list
func (c *Client) Find(id string) (domain.ContentItem, bool) {
	return c.state.Snapshot().Find(id)
}

// Table renders the item list with the given sort and search settings
func (c *Client) Table(t views.Table) views.TableView {
	return t.Render(c.Items(), c.Now())
}

// Board builds the kanban layout
func (c *Client) Board() views.Board {
	return c.kanban.Board()
}

// Month builds the calendar grid for the month containing month
func (c *Client) Month(month time.Time) views.Month {
	return c.calendar.MonthGrid(month, c.Items())
}

// Agenda lists the days of month with items
func (c *Client) Agenda(month time.Time) []views.AgendaDay {
	return c.calendar.Agenda(month, c.Items())
}

// Move drops item id onto a status column
func (c *Client) Move(ctx context.Context, id string, status domain.Status) (bool, error) {
	return c.kanban.Drop(ctx, id, string(status))
}

// Delete removes one item
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.state.Delete(ctx, id)
}

// DeleteAll removes every item in the session's scope
func (c *Client) DeleteAll(ctx context.Context) error {
	return c.state.DeleteAll(ctx)
}

// ExportICS writes the current items as an iCalendar document
func (c *Client) ExportICS(w io.Writer) error {
	return views.WriteICS(w, c.Items(), c.Now())
}
