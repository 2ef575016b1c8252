package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"push-to-memory/internal/middleware"
	"push-to-memory/pkg/scope"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type stubWebhook struct{ hits int }

func (s *stubWebhook) HandleGitHubWebhook(c *gin.Context) {
	s.hits++
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func newServer(t *testing.T, pingers map[string]Pinger, wh *stubWebhook) *HTTPServer {
	t.Helper()
	l := &mockLogger{}
	srv, err := New(l, Config{
		Logger:         l,
		Port:           8080,
		Mode:           gin.TestMode,
		Environment:    "test",
		Middleware:     middleware.New(l, scope.New("secret", 0)),
		Pingers:        pingers,
		WebhookHandler: wh,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func serve(srv *HTTPServer, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestSystemRoutes(t *testing.T) {
	srv := newServer(t, nil, &stubWebhook{})

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := serve(srv, http.MethodGet, path)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, w.Code)
		}
		if w.Header().Get(middleware.RequestIDHeader) == "" {
			t.Errorf("GET %s: missing request id header", path)
		}
	}
}

func TestReadyCheck_FailingStore(t *testing.T) {
	srv := newServer(t, map[string]Pinger{
		"postgres": func(ctx context.Context) error { return errors.New("connection refused") },
	}, &stubWebhook{})

	w := serve(srv, http.MethodGet, "/ready")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /ready = %d, want 503", w.Code)
	}
}

func TestDomainRoutes(t *testing.T) {
	wh := &stubWebhook{}
	srv := newServer(t, nil, wh)

	if w := serve(srv, http.MethodPost, "/api/webhook"); w.Code != http.StatusOK {
		t.Errorf("POST /api/webhook = %d", w.Code)
	}
	if wh.hits != 1 {
		t.Errorf("webhook hits = %d, want 1", wh.hits)
	}

	// Owner API is absent when its handlers are not configured.
	if w := serve(srv, http.MethodGet, "/api/v1/reflections"); w.Code != http.StatusNotFound {
		t.Errorf("GET /api/v1/reflections = %d, want 404", w.Code)
	}
}

func TestNew_Validation(t *testing.T) {
	l := &mockLogger{}
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing mode", Config{Port: 8080, WebhookHandler: &stubWebhook{}}},
		{"missing port", Config{Mode: gin.TestMode, WebhookHandler: &stubWebhook{}}},
		{"missing webhook", Config{Port: 8080, Mode: gin.TestMode}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(l, tt.cfg); err == nil {
				t.Error("New() error = nil, want error")
			}
		})
	}
}
