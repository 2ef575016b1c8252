package usecase

import (
	"context"

	"push-to-memory/internal/model"
	"push-to-memory/internal/registration"
	repo "push-to-memory/internal/registration/repository"
)

// List returns the caller's registrations without secrets.
func (uc *implUseCase) List(ctx context.Context, sc model.Scope) (registration.ListOutput, error) {
	regs, err := uc.repo.ListRegistrations(ctx, repo.ListRegistrationsOptions{OwnerUserID: sc.UserID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListRegistrations: %v", err)
		return registration.ListOutput{}, err
	}

	out := make([]registration.Registration, len(regs))
	for i, reg := range regs {
		out[i] = redact(reg)
	}
	return registration.ListOutput{Registrations: out}, nil
}

// Lookup resolves a webhook source. Not found is reported as ErrRegistrationNotFound.
func (uc *implUseCase) Lookup(ctx context.Context, source registration.Source) (registration.Registration, error) {
	if err := source.Validate(); err != nil {
		return registration.Registration{}, err
	}

	reg, err := uc.repo.GetOneRegistration(ctx, repo.GetOneRegistrationOptions{ID: source.ID()})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Lookup GetOneRegistration: %v", err)
		return registration.Registration{}, err
	}
	if reg.ID == "" || reg.Source != source {
		return registration.Registration{}, registration.ErrRegistrationNotFound
	}
	return reg, nil
}

// ListSources lists what the GitHub token can connect: organizations and repositories.
func (uc *implUseCase) ListSources(ctx context.Context, input registration.ListSourcesInput) (registration.ListSourcesOutput, error) {
	if input.AccessToken == "" {
		return registration.ListSourcesOutput{}, registration.ErrMissingAccessToken
	}

	orgs, err := uc.github.ListOrganizations(ctx, input.AccessToken)
	if err != nil {
		uc.l.Errorf(ctx, "uc.ListSources ListOrganizations: %v", err)
		return registration.ListSourcesOutput{}, err
	}
	repos, err := uc.github.ListRepositories(ctx, input.AccessToken)
	if err != nil {
		uc.l.Errorf(ctx, "uc.ListSources ListRepositories: %v", err)
		return registration.ListSourcesOutput{}, err
	}

	out := registration.ListSourcesOutput{
		Organizations: make([]string, len(orgs)),
		Repositories:  make([]registration.RepositoryRef, len(repos)),
	}
	for i, o := range orgs {
		out.Organizations[i] = o.Login
	}
	for i, r := range repos {
		out.Repositories[i] = registration.RepositoryRef{
			Owner:    r.Owner,
			Name:     r.Name,
			FullName: r.FullName,
			Private:  r.Private,
		}
	}
	return out, nil
}
