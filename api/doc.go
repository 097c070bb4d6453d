// Package api provides the HTTP layer of the content persistence service.
// It uses the Huma framework on a chi router for OpenAPI documentation,
// request validation and a clean handler interface.
//
// # Architecture
//
// - server.go: Huma API configuration and middleware setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: Logging, metrics, rate limiting and bearer authentication
//
// # Endpoints
//
//	GET    /api/content               items visible to the caller
//	POST   /api/content               create; honors Idempotency-Key
//	PUT    /api/content               merge update of the item named by id
//	DELETE /api/content?id=ID         delete one item; id=all deletes every permitted item
//	GET    /api/content/calendar.ics  iCalendar export
//	GET    /healthz                   liveness
//	GET    /metrics                   Prometheus metrics, when enabled
//
// The OpenAPI document is served at /openapi.json and the docs UI at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:      logger,
//	    RateLimiter: middleware.NewRateLimiter(10, 20, 10*time.Minute),
//	    Auth:        &middleware.AuthConfig{Secret: os.Getenv("JWT_SECRET")},
//	})
//	handlers.NewContentHandler(service, flags).RegisterRoutes(humaAPI)
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Errors use the RFC 7807 shape produced by Huma:
//
//	{
//	    "status": 400,
//	    "title": "Bad Request",
//	    "detail": "validation error on field 'title': is required"
//	}
//
// Domain errors are mapped to HTTP status codes in handlers/errors.go.
package api
