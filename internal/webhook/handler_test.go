package webhook_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"push-to-memory/internal/reflection"
	reflectionRepo "push-to-memory/internal/reflection/repository"
	reflectionMemory "push-to-memory/internal/reflection/repository/memory"
	reflectionUC "push-to-memory/internal/reflection/usecase"
	"push-to-memory/internal/registration"
	registrationRepo "push-to-memory/internal/registration/repository"
	registrationMemory "push-to-memory/internal/registration/repository/memory"
	registrationUC "push-to-memory/internal/registration/usecase"
	"push-to-memory/internal/webhook"
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

type countingDispatcher struct {
	mu    sync.Mutex
	calls []string
}

func (d *countingDispatcher) Notify(ownerUserID, repositoryName, recordID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, ownerUserID+"|"+repositoryName+"|"+recordID)
}

func (d *countingDispatcher) Wait(ctx context.Context) error { return nil }

func (d *countingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}

const (
	orgSecret  = "org-secret-value"
	repoSecret = "repo-secret-value"
)

type fixture struct {
	engine      *gin.Engine
	reflections reflectionRepo.Repository
	dispatcher  *countingDispatcher
}

func newFixture(t *testing.T, sec webhook.SecurityConfig) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	l := &mockLogger{}

	regs := registrationMemory.New()
	_, err := regs.CreateRegistration(ctx, registrationRepo.CreateRegistrationOptions{
		ID:          "org-acme",
		Source:      registration.OrganizationSource("acme"),
		HookID:      1,
		Secret:      orgSecret,
		OwnerUserID: "user-org",
	})
	require.NoError(t, err)
	_, err = regs.CreateRegistration(ctx, registrationRepo.CreateRegistrationOptions{
		ID:          "repo-octo.solo",
		Source:      registration.RepositorySource("octo", "solo"),
		HookID:      2,
		Secret:      repoSecret,
		OwnerUserID: "user-repo",
	})
	require.NoError(t, err)

	reflections := reflectionMemory.New()
	d := &countingDispatcher{}
	h := webhook.NewHandler(
		registrationUC.New(regs, nil, "https://ptm.example.com/api/webhook", l),
		reflectionUC.New(reflections, nil, l),
		d,
		sec,
		l,
	)

	r := gin.New()
	r.POST("/api/webhook", h.HandleGitHubWebhook)
	return &fixture{engine: r, reflections: reflections, dispatcher: d}
}

func (f *fixture) post(event string, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(webhook.HeaderEvent, event)
	req.Header.Set(webhook.HeaderDelivery, "delivery-1")
	if signature != "" {
		req.Header.Set(webhook.HeaderSignature, signature)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *fixture) records(t *testing.T) []reflection.Record {
	t.Helper()
	recs, _, err := f.reflections.ListReflections(context.Background(), reflectionRepo.ListReflectionsOptions{})
	require.NoError(t, err)
	return recs
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func pingPayload(org string) []byte {
	return []byte(`{"zen":"Speak like a human.","hook_id":1,"organization":{"login":"` + org + `"}}`)
}

func orgPushPayload(org, repo string, commitIDs ...string) []byte {
	commits := make([]map[string]any, 0, len(commitIDs))
	for _, id := range commitIDs {
		commits = append(commits, map[string]any{
			"id":        id,
			"message":   "change " + id + "\n\nbody",
			"timestamp": "2026-03-01T10:00:00Z",
			"url":       "https://github.com/" + org + "/" + repo + "/commit/" + id,
			"author":    map[string]any{"name": "Dev", "email": "dev@example.com"},
			"added":     []string{},
			"modified":  []string{"main.go"},
			"removed":   []string{},
		})
	}
	body, _ := json.Marshal(map[string]any{
		"ref":          "refs/heads/main",
		"organization": map[string]any{"login": org},
		"repository": map[string]any{
			"name":  repo,
			"owner": map[string]any{"name": org, "login": org},
		},
		"commits": commits,
	})
	return body
}

func TestWebhook_Ping(t *testing.T) {
	f := newFixture(t, webhook.SecurityConfig{})
	body := pingPayload("acme")

	w := f.post("ping", body, webhook.Sign(body, orgSecret))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Webhook verified successfully", decode(t, w)["message"])
	assert.Empty(t, f.records(t))
	assert.Zero(t, f.dispatcher.count())
}

func TestWebhook_PushCreatesOnePendingRecord(t *testing.T) {
	f := newFixture(t, webhook.SecurityConfig{})
	body := orgPushPayload("acme", "my-app", "abc123", "def456")

	w := f.post("push", body, webhook.Sign(body, orgSecret))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "Push reflection created successfully", resp["message"])
	assert.Equal(t, "my-app-abc123", resp["reflectionId"])

	recs := f.records(t)
	require.Len(t, recs, 1)
	assert.Equal(t, reflection.StatusPending, recs[0].Status)
	assert.Equal(t, "user-org", recs[0].OwnerUserID)
	assert.Equal(t, "my-app", recs[0].RepositoryName)
	require.Len(t, recs[0].Commits, 2)
	assert.Equal(t, "abc123", recs[0].Commits[0].ID)
	assert.Equal(t, "def456", recs[0].Commits[1].ID)
	assert.Empty(t, recs[0].ReflectionText)

	assert.Equal(t, []string{"user-org|my-app|my-app-abc123"}, f.dispatcher.calls)
}

func TestWebhook_ReplayIsIdempotent(t *testing.T) {
	f := newFixture(t, webhook.SecurityConfig{})
	body := orgPushPayload("acme", "my-app", "abc123", "def456")
	sig := webhook.Sign(body, orgSecret)

	first := f.post("push", body, sig)
	second := f.post("push", body, sig)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, decode(t, first)["reflectionId"], decode(t, second)["reflectionId"])
	assert.Len(t, f.records(t), 1)
	assert.Equal(t, 1, f.dispatcher.count())
}

func TestWebhook_UnknownOrganization(t *testing.T) {
	f := newFixture(t, webhook.SecurityConfig{})
	body := orgPushPayload("nobody", "my-app", "abc123")

	w := f.post("push", body, webhook.Sign(body, "whatever"))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Webhook not registered", decode(t, w)["error"])
	assert.Empty(t, f.records(t))
}

func TestWebhook_TamperedSignature(t *testing.T) {
	f := newFixture(t, webhook.SecurityConfig{})
	body := orgPushPayload("acme", "my-app", "abc123")
	sig := []byte(webhook.Sign(body, orgSecret))
	if sig[len(sig)-1] == '0' {
		sig[len(sig)-1] = '1'
	} else {
		sig[len(sig)-1] = '0'
	}

	w := f.post("push", body, string(sig))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid signature", decode(t, w)["error"])
	assert.Empty(t, f.records(t))
	assert.Zero(t, f.dispatcher.count())

	missing := f.post("push", body, "")
	assert.Equal(t, http.StatusUnauthorized, missing.Code)
}

func TestWebhook_RepositoryRegistrationFallback(t *testing.T) {
	f := newFixture(t, webhook.SecurityConfig{})
	// Personal repository: no organization block, owner identified by login only.
	body := []byte(`{"repository":{"name":"solo","owner":{"login":"Octo"}},"commits":[{"id":"c0ffee","message":"init","timestamp":"2026-03-01T10:00:00Z"}]}`)

	w := f.post("push", body, webhook.Sign(body, repoSecret))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "solo-c0ffee", decode(t, w)["reflectionId"])
	recs := f.records(t)
	require.Len(t, recs, 1)
	assert.Equal(t, "user-repo", recs[0].OwnerUserID)

	// The organization secret must not verify a repository registration.
	other := []byte(`{"repository":{"name":"solo","owner":{"login":"octo"}},"commits":[{"id":"beef01","message":"x"}]}`)
	w = f.post("push", other, webhook.Sign(other, orgSecret))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhook_PushWithoutCommits(t *testing.T) {
	f := newFixture(t, webhook.SecurityConfig{})
	body := orgPushPayload("acme", "my-app")

	w := f.post("push", body, webhook.Sign(body, orgSecret))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Webhook processed successfully", decode(t, w)["message"])
	assert.Empty(t, f.records(t))
	assert.Zero(t, f.dispatcher.count())
}

func TestWebhook_OtherEventsAreAcknowledged(t *testing.T) {
	f := newFixture(t, webhook.SecurityConfig{})
	body := []byte(`{"action":"opened","organization":{"login":"acme"}}`)

	w := f.post("issues", body, webhook.Sign(body, orgSecret))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Webhook processed successfully", decode(t, w)["message"])
	assert.Empty(t, f.records(t))
}

func TestWebhook_BadRequests(t *testing.T) {
	f := newFixture(t, webhook.SecurityConfig{})

	t.Run("not json", func(t *testing.T) {
		body := []byte(`{"organization":`)
		w := f.post("push", body, webhook.Sign(body, orgSecret))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no source", func(t *testing.T) {
		body := []byte(`{"zen":"hi"}`)
		w := f.post("ping", body, webhook.Sign(body, orgSecret))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("commit without id", func(t *testing.T) {
		body := []byte(`{"organization":{"login":"acme"},"repository":{"name":"my-app","owner":{"login":"acme"}},"commits":[{"message":"x"}]}`)
		w := f.post("push", body, webhook.Sign(body, orgSecret))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	assert.Empty(t, f.records(t))
}

func TestWebhook_Security(t *testing.T) {
	t.Run("ip not whitelisted", func(t *testing.T) {
		f := newFixture(t, webhook.SecurityConfig{AllowedIPs: []string{"140.82.112.0/20"}})
		body := pingPayload("acme")
		w := f.post("ping", body, webhook.Sign(body, orgSecret))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("rate limited per registration", func(t *testing.T) {
		f := newFixture(t, webhook.SecurityConfig{RateLimitPerMin: 1})
		body := pingPayload("acme")
		sig := webhook.Sign(body, orgSecret)

		require.Equal(t, http.StatusOK, f.post("ping", body, sig).Code)
		w := f.post("ping", body, sig)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "Rate limit exceeded", decode(t, w)["error"])
	})

	t.Run("forged deliveries do not spend the budget", func(t *testing.T) {
		f := newFixture(t, webhook.SecurityConfig{RateLimitPerMin: 60})
		body := orgPushPayload("acme", "my-app", "abc123")

		for i := 0; i < 10; i++ {
			w := f.post("push", body, "sha256=deadbeef")
			require.Equal(t, http.StatusUnauthorized, w.Code, "forged delivery %d", i)
		}
		require.Equal(t, http.StatusUnauthorized, f.post("push", body, "").Code)

		w := f.post("push", body, webhook.Sign(body, orgSecret))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, f.records(t), 1)
	})
}
