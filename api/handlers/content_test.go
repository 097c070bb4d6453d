package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"content-planner-api/api/dto/responses"
	"content-planner-api/core/content"
	"content-planner-api/core/domain"
	"content-planner-api/core/interfaces"
	memorycache "content-planner-api/infrastructure/cache/memory"
	memorystore "content-planner-api/infrastructure/storage/memory"
	"content-planner-api/pkg/featureflags"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = domain.Caller{UserID: "alice", Role: domain.RoleStandard}
	bob   = domain.Caller{UserID: "bob", Role: domain.RoleStandard}
	admin = domain.Caller{UserID: "root", Role: domain.RoleAdmin}
)

type testServer struct {
	t      *testing.T
	repo   *memorystore.Repository
	cache  *memorycache.MemoryCache
	flags  *featureflags.StaticManager
	caller domain.Caller
	api    humatest.TestAPI
}

func newTestServer(t *testing.T) *testServer {
	s := &testServer{
		t:      t,
		repo:   memorystore.NewRepository(),
		cache:  memorycache.NewMemoryCache(time.Minute),
		flags:  featureflags.NewDefaultManager(),
		caller: alice,
	}

	service := content.NewContentService(interfaces.Dependencies{Repository: s.repo, Cache: s.cache})
	handler := NewContentHandler(service, s.flags,
		WithLocation(time.UTC),
		WithClock(func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }))

	_, api := humatest.New(t)
	api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
		reqCtx := featureflags.WithManager(ctx.Context(), s.flags)
		if s.caller.UserID != "" {
			reqCtx = domain.WithCaller(reqCtx, s.caller)
		}
		next(huma.WithContext(ctx, reqCtx))
	})
	handler.RegisterRoutes(api)
	RegisterHealth(api, "test")
	s.api = api
	return s
}

func (s *testServer) as(c domain.Caller) *testServer {
	s.caller = c
	return s
}

func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func (s *testServer) create(title string, extra map[string]interface{}) responses.ContentItemResponse {
	body := map[string]interface{}{"title": title}
	for k, v := range extra {
		body[k] = v
	}
	resp := s.api.Post("/api/content", body)
	require.Equal(s.t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[responses.ContentItemResponse](s.t, resp.Body.String())
}

func TestContentHandler_RegisterRoutes(t *testing.T) {
	s := newTestServer(t)
	paths := s.api.OpenAPI().Paths

	require.NotNil(t, paths["/api/content"])
	assert.NotNil(t, paths["/api/content"].Get)
	assert.NotNil(t, paths["/api/content"].Post)
	assert.NotNil(t, paths["/api/content"].Put)
	assert.NotNil(t, paths["/api/content"].Delete)
	assert.NotNil(t, paths["/api/content/calendar.ics"])
	assert.NotNil(t, paths["/healthz"])
}

func TestContentHandler_CreateAppliesDefaults(t *testing.T) {
	s := newTestServer(t)

	item := s.create("First video", nil)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "YouTube", item.Platform)
	assert.Equal(t, "Idea", item.Status)
	assert.Empty(t, item.TargetDate)
}

func TestContentHandler_CreateAcceptsAliases(t *testing.T) {
	s := newTestServer(t)

	item := s.create("Aliased", map[string]interface{}{
		"targetDate":  "2024-03-15",
		"targetdate":  "2024-04-01",
		"isSponsored": true,
	})

	assert.Equal(t, "2024-04-01T00:00:00Z", item.TargetDate)
	assert.True(t, item.IsSponsored)
}

func TestContentHandler_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"empty title", map[string]interface{}{"title": "  "}},
		{"missing title", map[string]interface{}{"notes": "x"}},
		{"bad platform", map[string]interface{}{"title": "x", "platform": "TikTok"}},
		{"bad status", map[string]interface{}{"title": "x", "status": "Done"}},
		{"client id", map[string]interface{}{"title": "x", "id": "mine"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			resp := s.api.Post("/api/content", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
		})
	}
}

func TestContentHandler_CreateRequiresSession(t *testing.T) {
	s := newTestServer(t).as(domain.Caller{})

	resp := s.api.Post("/api/content", map[string]interface{}{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestContentHandler_IdempotentCreate(t *testing.T) {
	s := newTestServer(t)

	first := s.api.Post("/api/content", "Idempotency-Key: key-1", map[string]interface{}{"title": "Once"})
	second := s.api.Post("/api/content", "Idempotency-Key: key-1", map[string]interface{}{"title": "Once"})
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, http.StatusCreated, second.Code)

	a := decode[responses.ContentItemResponse](t, first.Body.String())
	b := decode[responses.ContentItemResponse](t, second.Body.String())
	assert.Equal(t, a.ID, b.ID)

	list := decode[[]responses.ContentItemResponse](t, s.api.Get("/api/content").Body.String())
	assert.Len(t, list, 1)
}

func TestContentHandler_IdempotencyFlagOff(t *testing.T) {
	s := newTestServer(t)
	s.flags.SetEnabled(featureflags.IdempotencyEnabled, false)

	s.api.Post("/api/content", "Idempotency-Key: key-1", map[string]interface{}{"title": "Twice"})
	s.api.Post("/api/content", "Idempotency-Key: key-1", map[string]interface{}{"title": "Twice"})

	list := decode[[]responses.ContentItemResponse](t, s.api.Get("/api/content").Body.String())
	assert.Len(t, list, 2)
}

func TestContentHandler_ListScopesByOwner(t *testing.T) {
	s := newTestServer(t)
	s.as(alice).create("alice item", nil)
	s.as(bob).create("bob item", nil)

	aliceList := decode[[]responses.ContentItemResponse](t, s.as(alice).api.Get("/api/content").Body.String())
	require.Len(t, aliceList, 1)
	assert.Equal(t, "alice item", aliceList[0].Title)

	adminList := decode[[]responses.ContentItemResponse](t, s.as(admin).api.Get("/api/content").Body.String())
	assert.Len(t, adminList, 2)
}

func TestContentHandler_ListEmptyIsArray(t *testing.T) {
	s := newTestServer(t)

	resp := s.api.Get("/api/content")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, "[]", resp.Body.String())
}

func TestContentHandler_UpdateMerges(t *testing.T) {
	s := newTestServer(t)
	created := s.create("Draft", map[string]interface{}{"notes": "keep me", "platform": "Podcast"})

	resp := s.api.Put("/api/content", map[string]interface{}{"id": created.ID, "status": "Editing"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	updated := decode[responses.ContentItemResponse](t, resp.Body.String())
	assert.Equal(t, "Editing", updated.Status)
	assert.Equal(t, "Draft", updated.Title)
	assert.Equal(t, "keep me", updated.Notes)
	assert.Equal(t, "Podcast", updated.Platform)
}

func TestContentHandler_UpdateErrors(t *testing.T) {
	s := newTestServer(t)
	created := s.as(alice).create("private", nil)

	assert.Equal(t, http.StatusBadRequest, s.api.Put("/api/content", map[string]interface{}{"title": "no id"}).Code)
	assert.Equal(t, http.StatusNotFound, s.api.Put("/api/content", map[string]interface{}{"id": "missing", "title": "x"}).Code)
	assert.Equal(t, http.StatusNotFound, s.as(bob).api.Put("/api/content", map[string]interface{}{"id": created.ID, "title": "x"}).Code)
	assert.Equal(t, http.StatusBadRequest, s.as(alice).api.Put("/api/content", map[string]interface{}{"id": created.ID, "title": ""}).Code)
}

func TestContentHandler_Delete(t *testing.T) {
	s := newTestServer(t)
	created := s.create("doomed", nil)

	resp := s.api.Delete("/api/content?id=" + created.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	// Deleting again is still a success
	resp = s.api.Delete("/api/content?id=" + created.ID)
	assert.Equal(t, http.StatusOK, resp.Code)

	list := decode[[]responses.ContentItemResponse](t, s.api.Get("/api/content").Body.String())
	assert.Empty(t, list)
}

func TestContentHandler_DeleteRequiresID(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, s.api.Delete("/api/content").Code)
}

func TestContentHandler_DeleteOtherOwnerIsSilent(t *testing.T) {
	s := newTestServer(t)
	created := s.as(alice).create("mine", nil)

	resp := s.as(bob).api.Delete("/api/content?id=" + created.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(0), decode[responses.DeleteResponse](t, resp.Body.String()).Deleted)

	list := decode[[]responses.ContentItemResponse](t, s.as(alice).api.Get("/api/content").Body.String())
	assert.Len(t, list, 1)
}

func TestContentHandler_DeleteReportsRemovedCount(t *testing.T) {
	s := newTestServer(t)
	created := s.create("gone soon", nil)

	first := s.api.Delete("/api/content?id=" + created.ID)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, int64(1), decode[responses.DeleteResponse](t, first.Body.String()).Deleted)

	again := s.api.Delete("/api/content?id=" + created.ID)
	require.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, int64(0), decode[responses.DeleteResponse](t, again.Body.String()).Deleted)
}

func TestContentHandler_DeleteAll(t *testing.T) {
	s := newTestServer(t)
	s.as(alice).create("a1", nil)
	s.as(alice).create("a2", nil)
	s.as(bob).create("b1", nil)

	resp := s.as(alice).api.Delete("/api/content?id=all")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(2), decode[responses.DeleteResponse](t, resp.Body.String()).Deleted)

	bobList := decode[[]responses.ContentItemResponse](t, s.as(bob).api.Get("/api/content").Body.String())
	assert.Len(t, bobList, 1)
}

func TestContentHandler_ExportCalendar(t *testing.T) {
	s := newTestServer(t)
	s.create("Launch", map[string]interface{}{"target_date": "2024-03-15", "platform": "Reel"})

	resp := s.api.Get("/api/content/calendar.ics")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, strings.HasPrefix(resp.Header().Get("Content-Type"), "text/calendar"))
	body := resp.Body.String()
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "SUMMARY:Launch")
	assert.Contains(t, body, "CATEGORIES:Reel")
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20240315")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp := s.api.Get("/healthz")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, responses.HealthResponse{Status: "ok", Version: "test"}, decode[responses.HealthResponse](t, resp.Body.String()))
}
