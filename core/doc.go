// Package core contains the business logic for the Content Planner.
// It is framework-agnostic and can be used without the HTTP layer.
//
// The core package is organized into several sub-packages:
//
// - domain: Content items, patches, statuses, platforms and callers
// - content: The persistence service behind the HTTP API
// - access: Ownership rules deciding which rows a caller may touch
// - store: HTTP client for the persistence service
// - state: The shared item list every view renders from
// - views: Table, kanban board, calendar grid and iCalendar export
// - editor: Create and edit form with validation and retry-safe saves
// - locale: Display labels, day names and month names
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger, repository)
//
// # Usage Example
//
//	import (
//	    "content-planner-api/core/interfaces"
//	    "content-planner-api/core/state"
//	    "content-planner-api/core/store"
//	    "content-planner-api/core/views"
//	)
//
//	deps := interfaces.Dependencies{
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	contentStore, err := store.NewClient("http://localhost:8000", deps)
//	st := state.New(contentStore, deps.Logger)
//	if err := st.Refresh(ctx); err != nil {
//	    // previous items are kept
//	}
//
//	board := views.BuildBoard(st.Snapshot().Items)
package core
