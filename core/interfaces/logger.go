package interfaces

// Logger defines the interface for logging throughout the application.
// This abstraction allows for different logging implementations
// while maintaining a consistent interface.
//
// Example usage:
//
//	logger.Info("Content refreshed", map[string]interface{}{
//		"items":      42,
//		"generation": 7,
//	})
//
//	logger.Error("Failed to save content", map[string]interface{}{
//		"id":    item.ID,
//		"error": err.Error(),
//	})
type Logger interface {
	// Debug logs a debug level message with optional structured fields.
	Debug(msg string, fields map[string]interface{})

	// Info logs an info level message with optional structured fields.
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning level message with optional structured fields.
	Warn(msg string, fields map[string]interface{})

	// Error logs an error level message with optional structured fields.
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything. Used when no logger is injected.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}
