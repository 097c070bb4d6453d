// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the core business logic

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache provides idempotency records for the persistence service
	Cache Cache

	// HTTPClient provides HTTP request functionality for the store client
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger

	// Repository persists content items
	Repository ContentRepository
}

// LoggerOrNop returns the injected logger, or a logger that discards output
func (d Dependencies) LoggerOrNop() Logger {
	if d.Logger == nil {
		return NopLogger{}
	}
	return d.Logger
}
