package github_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"push-to-memory/pkg/github"
)

type hookBody struct {
	Name   string   `json:"name"`
	Events []string `json:"events"`
	Active bool     `json:"active"`
	Config struct {
		URL         string `json:"url"`
		ContentType string `json:"content_type"`
		Secret      string `json:"secret"`
		InsecureSSL string `json:"insecure_ssl"`
	} `json:"config"`
}

func newTestClient(t *testing.T, h http.Handler) github.IGitHub {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := github.New(github.Config{APIURL: ts.URL})
	require.NoError(t, err)
	return c
}

func TestCreateOrgHook(t *testing.T) {
	var got hookBody
	mux := http.NewServeMux()
	mux.HandleFunc("/orgs/acme/hooks", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 42, "active": true, "events": ["push"], "config": {"url": "https://ptm.example.com/api/webhook"}}`))
	})

	c := newTestClient(t, mux)
	hook, err := c.CreateOrgHook(context.Background(), "user-token", "acme", github.HookRequest{
		URL:    "https://ptm.example.com/api/webhook",
		Secret: "s3cret",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), hook.ID)
	assert.Equal(t, "web", got.Name)
	assert.Equal(t, []string{"push"}, got.Events)
	assert.True(t, got.Active)
	assert.Equal(t, "https://ptm.example.com/api/webhook", got.Config.URL)
	assert.Equal(t, "json", got.Config.ContentType)
	assert.Equal(t, "s3cret", got.Config.Secret)
	assert.Equal(t, "0", got.Config.InsecureSSL)
}

func TestCreateRepoHook_Error(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/app/hooks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "Validation Failed"}`))
	})

	c := newTestClient(t, mux)
	_, err := c.CreateRepoHook(context.Background(), "user-token", "octo", "app", github.HookRequest{URL: "https://x/api/webhook"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "octo/app"))
}

func TestDeleteHook_ToleratesNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orgs/acme/hooks/7", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	})
	mux.HandleFunc("/repos/octo/app/hooks/8", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/repos/octo/app/hooks/9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "Must have admin rights"}`))
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	assert.NoError(t, c.DeleteOrgHook(ctx, "tok", "acme", 7))
	assert.NoError(t, c.DeleteRepoHook(ctx, "tok", "octo", "app", 8))
	assert.Error(t, c.DeleteRepoHook(ctx, "tok", "octo", "app", 9))
}

func TestListRepositories_Paginates(t *testing.T) {
	var serverURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/user/repos", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.Write([]byte(`[{"name": "tools", "full_name": "acme/tools", "private": true, "owner": {"login": "acme"}}]`))
			return
		}
		w.Header().Set("Link", `<`+serverURL+`/user/repos?page=2>; rel="next"`)
		w.Write([]byte(`[{"name": "app", "full_name": "octo/app", "owner": {"login": "octo"}}]`))
	})
	mux.HandleFunc("/user/orgs", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"login": "acme", "description": "Acme Corp"}]`))
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()
	serverURL = ts.URL

	c, err := github.New(github.Config{APIURL: ts.URL})
	require.NoError(t, err)

	repos, err := c.ListRepositories(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "octo", repos[0].Owner)
	assert.Equal(t, "acme/tools", repos[1].FullName)
	assert.True(t, repos[1].Private)

	orgs, err := c.ListOrganizations(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "acme", orgs[0].Login)
}

func TestMissingToken(t *testing.T) {
	c, err := github.New(github.Config{})
	require.NoError(t, err)

	_, err = c.ListOrganizations(context.Background(), "")
	assert.ErrorIs(t, err, github.ErrMissingToken)
}
