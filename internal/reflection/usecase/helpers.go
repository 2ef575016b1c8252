package usecase

import (
	"context"

	"push-to-memory/internal/model"
	"push-to-memory/internal/reflection"
)

// getOwned loads a record by the sanitized id. Missing records and records of other users
// are both reported as ErrReflectionNotFound.
func (uc *implUseCase) getOwned(ctx context.Context, sc model.Scope, rawID string) (reflection.Record, error) {
	id := reflection.Sanitize(rawID)
	if id == "" {
		return reflection.Record{}, reflection.ErrReflectionNotFound
	}

	rec, err := uc.repo.GetOneReflection(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "uc.getOwned GetOneReflection %s: %v", id, err)
		return reflection.Record{}, err
	}
	if rec.ID == "" || rec.OwnerUserID != sc.UserID {
		return reflection.Record{}, reflection.ErrReflectionNotFound
	}
	return rec, nil
}
