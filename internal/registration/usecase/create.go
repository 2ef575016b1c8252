package usecase

import (
	"context"
	"errors"

	"push-to-memory/internal/model"
	"push-to-memory/internal/registration"
	repo "push-to-memory/internal/registration/repository"
)

// Create installs a push webhook on GitHub and stores the registration.
// The generated secret is returned here and never again.
func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input registration.CreateInput) (registration.CreateOutput, error) {
	if err := input.Source.Validate(); err != nil {
		return registration.CreateOutput{}, err
	}
	if input.AccessToken == "" {
		return registration.CreateOutput{}, registration.ErrMissingAccessToken
	}
	if uc.callbackURL == "" {
		return registration.CreateOutput{}, registration.ErrMissingCallbackURL
	}

	id := input.Source.ID()
	existing, err := uc.repo.GetOneRegistration(ctx, repo.GetOneRegistrationOptions{ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create GetOneRegistration: %v", err)
		return registration.CreateOutput{}, err
	}
	if existing.ID != "" {
		return registration.CreateOutput{}, registration.ErrAlreadyRegistered
	}

	secret, err := generateSecret()
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create generateSecret: %v", err)
		return registration.CreateOutput{}, err
	}

	hook, err := uc.createHook(ctx, input.AccessToken, input.Source, secret)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create createHook %s: %v", input.Source.Identifier(), err)
		return registration.CreateOutput{}, err
	}

	reg, err := uc.repo.CreateRegistration(ctx, repo.CreateRegistrationOptions{
		ID:          id,
		Source:      input.Source,
		HookID:      hook.ID,
		Secret:      secret,
		OwnerUserID: sc.UserID,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create CreateRegistration %s: %v", id, err)
		if delErr := uc.deleteHook(ctx, input.AccessToken, input.Source, hook.ID); delErr != nil {
			uc.l.Warnf(ctx, "uc.Create rollback hook %d on %s: %v", hook.ID, input.Source.Identifier(), delErr)
		}
		if errors.Is(err, repo.ErrDuplicate) {
			return registration.CreateOutput{}, registration.ErrAlreadyRegistered
		}
		return registration.CreateOutput{}, err
	}

	uc.l.Infof(ctx, "registration %s created (hook %d) for user %s", id, hook.ID, sc.UserID)
	return registration.CreateOutput{Registration: redact(reg), Secret: secret}, nil
}
