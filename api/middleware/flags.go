// ABOUTME: Feature flag middleware exposing the flag manager to handlers
// ABOUTME: Handlers read request-scoped flags with featureflags.IsEnabled(ctx, flag)

package middleware

import (
	"net/http"

	"content-planner-api/pkg/featureflags"
)

// FeatureFlagsMiddleware stores manager in every request context
func FeatureFlagsMiddleware(manager featureflags.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(featureflags.WithManager(r.Context(), manager)))
		})
	}
}
