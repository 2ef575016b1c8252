package usecase

import (
	"context"

	"push-to-memory/internal/model"
	"push-to-memory/internal/reflection"
	repo "push-to-memory/internal/reflection/repository"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func (uc *implUseCase) Detail(ctx context.Context, sc model.Scope, id string) (reflection.DetailOutput, error) {
	rec, err := uc.getOwned(ctx, sc, id)
	if err != nil {
		return reflection.DetailOutput{}, err
	}
	return reflection.DetailOutput{Record: rec}, nil
}

// List returns the caller's records, newest first.
func (uc *implUseCase) List(ctx context.Context, sc model.Scope, input reflection.ListInput) (reflection.ListOutput, error) {
	if input.Status != "" && !input.Status.Valid() {
		return reflection.ListOutput{}, reflection.ErrInvalidStatus
	}

	limit := input.Limit
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	recs, total, err := uc.repo.ListReflections(ctx, repo.ListReflectionsOptions{
		OwnerUserID: sc.UserID,
		Repository:  input.Repository,
		Status:      input.Status,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListReflections: %v", err)
		return reflection.ListOutput{}, err
	}

	return reflection.ListOutput{
		Records: recs,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}
