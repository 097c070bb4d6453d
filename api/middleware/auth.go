// ABOUTME: Authentication middleware resolving bearer JWTs into a domain caller
// ABOUTME: Falls back to a configured development caller when no secret is set

package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"content-planner-api/core/domain"
	"content-planner-api/core/interfaces"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload. Subject is the user id.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// AuthConfig configures the authentication gate
type AuthConfig struct {
	// Secret signs HS256 tokens; empty enables development mode
	Secret string

	// DevCaller is used for every request in development mode
	DevCaller domain.Caller

	// PublicPrefixes skip authentication
	PublicPrefixes []string

	Logger interfaces.Logger
}

// DefaultPublicPrefixes are reachable without a session. /metrics is not
// among them; add MetricsPath to PublicPrefixes to expose it to scrapers.
var DefaultPublicPrefixes = []string{"/healthz", "/docs", "/openapi", "/schemas"}

// MetricsPath is where the prometheus handler is mounted
const MetricsPath = "/metrics"

// IssueToken signs a token for userID with role, valid for ttl
func IssueToken(secret, userID string, role domain.Role, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	if userID == "" {
		return "", errors.New("user id is empty")
	}
	now := time.Now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates a token and returns its caller
func ParseToken(secret, token string) (domain.Caller, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return domain.Caller{}, err
	}
	if claims.Subject == "" {
		return domain.Caller{}, errors.New("token has no subject")
	}

	role := domain.RoleStandard
	if domain.Role(claims.Role) == domain.RoleAdmin {
		role = domain.RoleAdmin
	}
	return domain.Caller{UserID: claims.Subject, Role: role}, nil
}

// AuthMiddleware puts the resolved caller in the request context. Requests
// without a valid token get 401 unless the path is public.
func AuthMiddleware(cfg AuthConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	public := cfg.PublicPrefixes
	if public == nil {
		public = DefaultPublicPrefixes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path, public) {
				next.ServeHTTP(w, r)
				return
			}

			if cfg.Secret == "" {
				ctx := domain.WithCaller(r.Context(), cfg.DevCaller)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}
			caller, err := ParseToken(cfg.Secret, token)
			if err != nil {
				logger.Warn("Rejected token", map[string]interface{}{
					"request_id": RequestIDFromContext(r.Context()),
					"path":       r.URL.Path,
					"error":      err.Error(),
				})
				unauthorized(w, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(domain.WithCaller(r.Context(), caller)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func isPublic(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="content-planner"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"title":"Unauthorized","status":401,"detail":"` + detail + `"}`))
}
