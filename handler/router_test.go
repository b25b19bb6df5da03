package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dondoffy/contract-copilot-canvas/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func login(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()
	w := doRequest(router, "POST", "/api/auth/login", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[LoginResponse](t, w).Token
}

func doAuthRequest(router http.Handler, token, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouterHealth(t *testing.T) {
	cfg := newTestConfig()
	router := NewRouter(cfg, newTestServices(t, cfg))

	w := doRequest(router, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouterRequiresToken(t *testing.T) {
	cfg := newTestConfig()
	router := NewRouter(cfg, newTestServices(t, cfg))

	for _, path := range []string{"/api/auth/me", "/api/conversations", "/api/documents", "/api/files", "/api/templates"} {
		w := doRequest(router, "GET", path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := doAuthRequest(router, "not-a-token", "GET", "/api/templates")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouterTenantIsolation(t *testing.T) {
	cfg := newTestConfig()
	router := NewRouter(cfg, newTestServices(t, cfg))

	token := login(t, router, "testuser", "testpass")
	otherToken := login(t, router, "other", "otherpass")

	w := doAuthRequest(router, token, "GET", "/api/auth/me")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "testtenant", decode[map[string]string](t, w)["tenant"])

	w = doAuthRequest(router, token, "POST", "/api/documents")
	require.Equal(t, http.StatusCreated, w.Code)
	doc := decode[model.Document](t, w)

	w = doAuthRequest(router, token, "GET", "/api/documents/"+doc.ID)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doAuthRequest(router, otherToken, "GET", "/api/documents/"+doc.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doAuthRequest(router, otherToken, "GET", "/api/documents")
	assert.Empty(t, decode[map[string][]any](t, w)["documents"])
}

func TestRouterTemplatePreviewRoute(t *testing.T) {
	cfg := newTestConfig()
	router := NewRouter(cfg, newTestServices(t, cfg))
	token := login(t, router, "testuser", "testpass")

	w := doAuthRequest(router, token, "POST", "/api/templates/4/select")
	require.Equal(t, http.StatusOK, w.Code)

	w = doAuthRequest(router, token, "GET", "/api/templates/preview")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]map[string]any](t, w)
	assert.Equal(t, "4", body["template"]["id"])
}

func TestRouterRateLimit(t *testing.T) {
	cfg := newTestConfig()
	cfg.Server.RateLimit = 2
	router := NewRouter(cfg, newTestServices(t, cfg))

	for i := 0; i < 2; i++ {
		w := doRequest(router, "GET", "/health", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := doRequest(router, "GET", "/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
