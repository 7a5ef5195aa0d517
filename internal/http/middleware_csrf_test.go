package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfTestHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func issueCSRFToken(t *testing.T, handler http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, c := range rec.Result().Cookies() {
		if c.Name == DefaultCSRFCookieName {
			return c.Value
		}
	}
	t.Fatal("no CSRF cookie issued")
	return ""
}

func TestCSRFProtection_GETIssuesToken(t *testing.T) {
	handler := CSRFProtection(CSRFConfig{})(csrfTestHandler())

	token := issueCSRFToken(t, handler)
	assert.NotEmpty(t, token)
}

func TestCSRFProtection_POSTWithoutTokenFails(t *testing.T) {
	handler := CSRFProtection(CSRFConfig{})(csrfTestHandler())

	req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCSRFProtection_POSTWithHeaderToken(t *testing.T) {
	handler := CSRFProtection(CSRFConfig{})(csrfTestHandler())
	token := issueCSRFToken(t, handler)

	req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
	req.Header.Set(DefaultCSRFHeaderName, token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCSRFProtection_POSTWithFormToken(t *testing.T) {
	handler := CSRFProtection(CSRFConfig{})(csrfTestHandler())
	token := issueCSRFToken(t, handler)

	form := url.Values{}
	form.Set(DefaultCSRFCookieName, token)
	req := httptest.NewRequest(http.MethodPost, "/auth/signout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCSRFProtection_MismatchedTokenFails(t *testing.T) {
	handler := CSRFProtection(CSRFConfig{})(csrfTestHandler())
	token := issueCSRFToken(t, handler)

	req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
	req.Header.Set(DefaultCSRFHeaderName, "forged-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
