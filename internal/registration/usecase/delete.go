package usecase

import (
	"context"

	"push-to-memory/internal/model"
	"push-to-memory/internal/registration"
	repo "push-to-memory/internal/registration/repository"
)

// Delete removes the GitHub hook and the stored registration.
// Deleting a source that is not registered succeeds.
func (uc *implUseCase) Delete(ctx context.Context, sc model.Scope, input registration.DeleteInput) error {
	if err := input.Source.Validate(); err != nil {
		return err
	}
	if input.AccessToken == "" {
		return registration.ErrMissingAccessToken
	}

	id := input.Source.ID()
	existing, err := uc.repo.GetOneRegistration(ctx, repo.GetOneRegistrationOptions{ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Delete GetOneRegistration: %v", err)
		return err
	}
	if existing.ID == "" || existing.Source != input.Source {
		uc.l.Infof(ctx, "uc.Delete: %s not registered, nothing to do", id)
		return nil
	}
	if existing.OwnerUserID != sc.UserID {
		return registration.ErrNotOwner
	}

	if err := uc.deleteHook(ctx, input.AccessToken, existing.Source, existing.HookID); err != nil {
		uc.l.Errorf(ctx, "uc.Delete deleteHook %d on %s: %v", existing.HookID, existing.Source.Identifier(), err)
		return err
	}

	if err := uc.repo.DeleteRegistration(ctx, id); err != nil {
		uc.l.Errorf(ctx, "uc.Delete DeleteRegistration: %v", err)
		return err
	}

	uc.l.Infof(ctx, "registration %s deleted by user %s", id, sc.UserID)
	return nil
}
