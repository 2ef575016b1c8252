package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

type client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

func newClient(cfg Config) (*client, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &client{httpClient: httpClient}
	if cfg.APIURL != "" {
		raw := cfg.APIURL
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("github: invalid api url: %w", err)
		}
		c.baseURL = u
	}
	return c, nil
}

// forToken returns a go-github client that authenticates as the owner of token.
func (c *client) forToken(ctx context.Context, token string) (*gh.Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})

	ghClient := gh.NewClient(oauth2.NewClient(ctx, ts))
	if c.baseURL != nil {
		ghClient.BaseURL = c.baseURL
	}
	return ghClient, nil
}

func (c *client) CreateOrgHook(ctx context.Context, token, org string, req HookRequest) (Hook, error) {
	ghClient, err := c.forToken(ctx, token)
	if err != nil {
		return Hook{}, err
	}
	hook, err := buildHook(req)
	if err != nil {
		return Hook{}, err
	}

	created, _, err := ghClient.Organizations.CreateHook(ctx, org, hook)
	if err != nil {
		return Hook{}, fmt.Errorf("github: create org hook for %s: %w", org, err)
	}
	return toHook(created), nil
}

func (c *client) CreateRepoHook(ctx context.Context, token, owner, repo string, req HookRequest) (Hook, error) {
	ghClient, err := c.forToken(ctx, token)
	if err != nil {
		return Hook{}, err
	}
	hook, err := buildHook(req)
	if err != nil {
		return Hook{}, err
	}

	created, _, err := ghClient.Repositories.CreateHook(ctx, owner, repo, hook)
	if err != nil {
		return Hook{}, fmt.Errorf("github: create repo hook for %s/%s: %w", owner, repo, err)
	}
	return toHook(created), nil
}

func (c *client) DeleteOrgHook(ctx context.Context, token, org string, hookID int64) error {
	ghClient, err := c.forToken(ctx, token)
	if err != nil {
		return err
	}

	resp, err := ghClient.Organizations.DeleteHook(ctx, org, hookID)
	if isNotFound(resp, err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("github: delete org hook %d for %s: %w", hookID, org, err)
	}
	return nil
}

func (c *client) DeleteRepoHook(ctx context.Context, token, owner, repo string, hookID int64) error {
	ghClient, err := c.forToken(ctx, token)
	if err != nil {
		return err
	}

	resp, err := ghClient.Repositories.DeleteHook(ctx, owner, repo, hookID)
	if isNotFound(resp, err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("github: delete repo hook %d for %s/%s: %w", hookID, owner, repo, err)
	}
	return nil
}

func (c *client) ListOrganizations(ctx context.Context, token string) ([]Organization, error) {
	ghClient, err := c.forToken(ctx, token)
	if err != nil {
		return nil, err
	}

	var orgs []Organization
	opts := &gh.ListOptions{PerPage: perPage}
	for page := 0; page < maxListPages; page++ {
		batch, resp, err := ghClient.Organizations.List(ctx, "", opts)
		if err != nil {
			return nil, fmt.Errorf("github: list organizations: %w", err)
		}
		for _, o := range batch {
			orgs = append(orgs, Organization{
				Login:       o.GetLogin(),
				Description: o.GetDescription(),
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return orgs, nil
}

func (c *client) ListRepositories(ctx context.Context, token string) ([]Repository, error) {
	ghClient, err := c.forToken(ctx, token)
	if err != nil {
		return nil, err
	}

	var repos []Repository
	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		Sort:        "pushed",
		ListOptions: gh.ListOptions{PerPage: perPage},
	}
	for page := 0; page < maxListPages; page++ {
		batch, resp, err := ghClient.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("github: list repositories: %w", err)
		}
		for _, r := range batch {
			repos = append(repos, Repository{
				Owner:    r.GetOwner().GetLogin(),
				Name:     r.GetName(),
				FullName: r.GetFullName(),
				Private:  r.GetPrivate(),
				HTMLURL:  r.GetHTMLURL(),
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}

func buildHook(req HookRequest) (*gh.Hook, error) {
	if req.URL == "" {
		return nil, ErrMissingURL
	}
	events := req.Events
	if len(events) == 0 {
		events = []string{"push"}
	}

	return &gh.Hook{
		Name:   gh.String(hookName),
		Events: events,
		Active: gh.Bool(true),
		Config: &gh.HookConfig{
			URL:         gh.String(req.URL),
			ContentType: gh.String(hookContentType),
			Secret:      gh.String(req.Secret),
			InsecureSSL: gh.String("0"),
		},
	}, nil
}

func toHook(h *gh.Hook) Hook {
	return Hook{
		ID:     h.GetID(),
		URL:    h.GetConfig().GetURL(),
		Events: h.Events,
		Active: h.GetActive(),
	}
}

func isNotFound(resp *gh.Response, err error) bool {
	if err == nil {
		return false
	}
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var errResp *gh.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound
}
