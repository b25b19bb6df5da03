package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dondoffy/contract-copilot-canvas/config"
	"github.com/dondoffy/contract-copilot-canvas/service"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret",
			TokenExpireHours: 24,
		},
		Assistant: config.AssistantConfig{
			ReplyDelayMs:    5,
			SaveDelayMs:     5,
			UploadDelayMs:   5,
			AnalysisDelayMs: 5,
		},
		Users: []config.User{
			{Username: "testuser", Password: "testpass", Tenant: "testtenant"},
			{Username: "other", Password: "otherpass", Tenant: "othertenant"},
		},
	}
	cfg.SetDefaults()
	return cfg
}

func newTestServices(t *testing.T, cfg *config.Config) *Services {
	t.Helper()
	svc := &Services{
		Conversations: service.NewConversationService(&cfg.Store, &cfg.Assistant),
		Documents:     service.NewDocumentService(&cfg.Store, &cfg.Assistant),
		Uploads:       service.NewUploadService(nil, &cfg.Store, &cfg.Assistant),
		Catalog:       service.NewCatalogService(),
	}
	t.Cleanup(func() {
		svc.Conversations.Close()
		svc.Documents.Close()
		svc.Uploads.Close()
	})
	return svc
}

// asTenant wraps h so it runs as if AuthMiddleware accepted tenant
func asTenant(tenant string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("tenant", tenant)
		c.Set("username", "testuser")
		h(c)
	}
}

func doRequest(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("Failed to parse response %q: %v", w.Body.String(), err)
	}
	return v
}
