package usecase

import (
	"context"
	"strings"

	"push-to-memory/internal/model"
	"push-to-memory/internal/reflection"
	repo "push-to-memory/internal/reflection/repository"
)

// Update stores the owner's reflection. It never creates a record and never touches commits.
func (uc *implUseCase) Update(ctx context.Context, sc model.Scope, input reflection.UpdateInput) (reflection.UpdateOutput, error) {
	status := input.Status
	if status == "" {
		status = reflection.StatusCompleted
	}

	text := input.ReflectionText
	switch status {
	case reflection.StatusCompleted:
		if strings.TrimSpace(text) == "" {
			return reflection.UpdateOutput{}, reflection.ErrEmptyReflection
		}
	case reflection.StatusSkipped:
		text = ""
	default:
		return reflection.UpdateOutput{}, reflection.ErrInvalidStatus
	}

	rec, err := uc.getOwned(ctx, sc, input.ID)
	if err != nil {
		return reflection.UpdateOutput{}, err
	}

	updated, err := uc.repo.UpdateReflection(ctx, repo.UpdateReflectionOptions{
		ID:             rec.ID,
		ReflectionText: text,
		Status:         status,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Update UpdateReflection %s: %v", rec.ID, err)
		return reflection.UpdateOutput{}, err
	}
	if updated.ID == "" {
		return reflection.UpdateOutput{}, reflection.ErrReflectionNotFound
	}

	return reflection.UpdateOutput{Record: updated}, nil
}
