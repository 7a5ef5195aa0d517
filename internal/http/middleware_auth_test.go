package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/jobagent/jobagent/internal/domain/auth"
	authmocks "github.com/jobagent/jobagent/internal/mocks/auth"
	"github.com/jobagent/jobagent/internal/service"
)

func newAuthedRequest(t *testing.T, svc *service.AuthService, sessions *authmocks.MemorySessionStore, role domainauth.Role) *http.Cookie {
	t.Helper()
	sess := domainauth.Session{
		ID:        "sess-" + string(role),
		UserID:    "user-1",
		Email:     "alice@example.com",
		Role:      role,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, sessions.Save(t.Context(), sess))
	_ = svc
	return &http.Cookie{Name: SessionCookieName, Value: sess.ID}
}

func newMiddlewareFixture() (*service.AuthService, *authmocks.MemorySessionStore) {
	sessions := authmocks.NewMemorySessionStore()
	svc := service.NewAuthService(service.AuthServiceOptions{
		Identities: authmocks.NewMemoryIdentityStore(),
		Sessions:   sessions,
	})
	return svc, sessions
}

func sessionEchoHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := GetUserSessionFromContext(r.Context())
		require.True(t, ok, "session must be in context past the middleware")
		w.Header().Set("X-Test-Email", sess.Email)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_ValidSession(t *testing.T) {
	svc, sessions := newMiddlewareFixture()
	cookie := newAuthedRequest(t, svc, sessions, domainauth.RoleCandidate)

	handler := RequireAuth(svc)(sessionEchoHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", rec.Header().Get("X-Test-Email"))
}

func TestRequireAuth_MissingSessionAPIRequest(t *testing.T) {
	svc, _ := newMiddlewareFixture()
	handler := RequireAuth(svc)(sessionEchoHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_MissingSessionBrowserRedirects(t *testing.T) {
	svc, _ := newMiddlewareFixture()
	handler := RequireAuth(svc)(sessionEchoHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/applications?tab=active", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	location := rec.Header().Get("Location")
	assert.Contains(t, location, "/login?redirect_uri=")
	assert.Contains(t, location, "%2Fapplications%3Ftab%3Dactive")
}

func TestRequireAuth_ExpiredSession(t *testing.T) {
	sessions := authmocks.NewMemorySessionStore()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc := service.NewAuthService(service.AuthServiceOptions{
		Identities: authmocks.NewMemoryIdentityStore(),
		Sessions:   sessions,
		Now:        func() time.Time { return now },
	})
	require.NoError(t, sessions.Save(t.Context(), domainauth.Session{
		ID:        "stale",
		UserID:    "user-1",
		Email:     "alice@example.com",
		Role:      domainauth.RoleCandidate,
		ExpiresAt: now.Add(-time.Minute),
	}))

	handler := RequireAuth(svc)(sessionEchoHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_AdminOnly(t *testing.T) {
	svc, sessions := newMiddlewareFixture()
	handler := RequireRole(svc, domainauth.RoleAdmin)(sessionEchoHandler(t))

	t.Run("candidate is forbidden", func(t *testing.T) {
		cookie := newAuthedRequest(t, svc, sessions, domainauth.RoleCandidate)
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req.Header.Set("Accept", "application/json")
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin is allowed", func(t *testing.T) {
		cookie := newAuthedRequest(t, svc, sessions, domainauth.RoleAdmin)
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole_AdminSatisfiesCandidate(t *testing.T) {
	svc, sessions := newMiddlewareFixture()
	handler := RequireRole(svc, domainauth.RoleCandidate)(sessionEchoHandler(t))

	cookie := newAuthedRequest(t, svc, sessions, domainauth.RoleAdmin)
	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuth(t *testing.T) {
	svc, sessions := newMiddlewareFixture()

	var sawSession bool
	handler := OptionalAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawSession = GetUserSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("without session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, sawSession)
	})

	t.Run("with session", func(t *testing.T) {
		cookie := newAuthedRequest(t, svc, sessions, domainauth.RoleCandidate)
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, sawSession)
	})
}
