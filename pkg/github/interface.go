package github

import "context"

// IGitHub is the subset of the GitHub REST API the service needs.
// Every call acts on behalf of the user who owns token.
type IGitHub interface {
	CreateOrgHook(ctx context.Context, token, org string, req HookRequest) (Hook, error)
	CreateRepoHook(ctx context.Context, token, owner, repo string, req HookRequest) (Hook, error)

	// DeleteOrgHook and DeleteRepoHook treat a 404 from GitHub as success.
	DeleteOrgHook(ctx context.Context, token, org string, hookID int64) error
	DeleteRepoHook(ctx context.Context, token, owner, repo string, hookID int64) error

	ListOrganizations(ctx context.Context, token string) ([]Organization, error)
	ListRepositories(ctx context.Context, token string) ([]Repository, error)
}

// New creates a GitHub client with the given configuration.
func New(cfg Config) (IGitHub, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return newClient(cfg)
}
