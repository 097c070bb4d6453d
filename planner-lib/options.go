// ABOUTME: Configuration options for the planner library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package planner

import (
	"time"

	"content-planner-api/core/interfaces"
	"content-planner-api/core/locale"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// Config holds the configuration for the client
type Config struct {
	// BaseURL is the origin of the content persistence service
	BaseURL string

	// Token is sent as a bearer token when HTTPClient is not supplied
	Token string

	// Timeout bounds every request of the default HTTP client
	Timeout time.Duration

	// BreakerFailures opens the circuit after this many consecutive
	// failures of the default HTTP client; 0 disables it
	BreakerFailures uint32

	// HTTPClient replaces the default HTTP client
	HTTPClient interfaces.HTTPClient

	Logger interfaces.Logger

	// Location is where dates are shown and date-only input is read
	Location *time.Location

	Locale locale.Locale

	// Now replaces time.Now
	Now func() time.Time
}

// WithBaseURL sets the persistence service origin
func WithBaseURL(url string) Option {
	return func(c *Config) error {
		c.BaseURL = url
		return nil
	}
}

// WithToken sets the bearer token
func WithToken(token string) Option {
	return func(c *Config) error {
		c.Token = token
		return nil
	}
}

// WithTimeout sets the request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout <= 0 {
			return NewError(ErrorTypeConfiguration, "timeout must be positive")
		}
		c.Timeout = timeout
		return nil
	}
}

// WithBreakerFailures sets the circuit breaker threshold
func WithBreakerFailures(n uint32) Option {
	return func(c *Config) error {
		c.BreakerFailures = n
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithLocation sets the display and input time zone
func WithLocation(loc *time.Location) Option {
	return func(c *Config) error {
		if loc == nil {
			return NewError(ErrorTypeConfiguration, "location cannot be nil")
		}
		c.Location = loc
		return nil
	}
}

// WithLocale sets the display language
func WithLocale(l locale.Locale) Option {
	return func(c *Config) error {
		c.Locale = l
		return nil
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *Config) error {
		c.Now = now
		return nil
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		BaseURL:         "http://localhost:8000",
		Timeout:         15 * time.Second,
		BreakerFailures: 5,
		Logger:          interfaces.NopLogger{},
		Location:        time.Local,
		Locale:          locale.Spanish(),
		Now:             time.Now,
	}
}
