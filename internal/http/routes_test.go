package httpx_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobagent/jobagent/internal/adapters/devauth"
	httpx "github.com/jobagent/jobagent/internal/http"
)

func newTestRouter(t *testing.T) (http.Handler, *devauth.Provider) {
	t.Helper()

	provider, err := devauth.NewProvider(devauth.Config{Email: "dev@jobagent.local"})
	require.NoError(t, err)

	handler, err := httpx.NewRouter(httpx.RouterServices{
		Auth:           provider,
		TrustedOrigins: []string{"http://localhost:8080"},
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return handler, provider
}

func TestRouterHealthz(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterLoginPageRendersForAnonymous(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("Accept", "text/html")
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "login-form")
	assert.Contains(t, body, "/auth/signin")
	// Anonymous pages render outside the shell: no sidebar, no nav overlay.
	assert.NotContains(t, body, "data-mobile-nav")
}

func TestRouterDashboardRedirectsAnonymousBrowser(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/login")
}

func TestRouterDashboardRendersShellForSignedInUser(t *testing.T) {
	handler, provider := newTestRouter(t)

	sess, err := provider.SignIn(t.Context(), "dev@jobagent.local", "any")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: httpx.SessionCookieName, Value: sess.ID})
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `class="shell"`)
	assert.Contains(t, body, "data-nav-toggle")
	assert.Contains(t, body, "data-mobile-nav")
	assert.Contains(t, body, "dev@jobagent.local")
	// The overlay markup always ships closed; nav.js owns the open state.
	assert.NotContains(t, body, `class="mobile-nav open"`)
}

func TestRouterHTMXRequestGetsContentFragment(t *testing.T) {
	handler, provider := newTestRouter(t)

	sess, err := provider.SignIn(t.Context(), "dev@jobagent.local", "any")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	req.Header.Set("HX-Request", "true")
	req.AddCookie(&http.Cookie{Name: httpx.SessionCookieName, Value: sess.ID})
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Applications")
	assert.NotContains(t, body, "<!DOCTYPE html>")
}

func TestRouterCrossOriginWriteRejected(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/signout", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouterStaticAssetsServed(t *testing.T) {
	handler, _ := newTestRouter(t)

	for _, path := range []string{"/static/css/app.css", "/static/js/nav.js"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotZero(t, rec.Body.Len(), path)
	}
}
