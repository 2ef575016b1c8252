package usecase

import (
	"context"

	"push-to-memory/internal/reflection"
	repo "push-to-memory/internal/reflection/repository"
)

// Build creates a pending record for a push unless one already exists for the same first commit.
func (uc *implUseCase) Build(ctx context.Context, input reflection.BuildInput) (reflection.BuildOutput, error) {
	if len(input.Commits) == 0 {
		return reflection.BuildOutput{}, reflection.ErrNoCommits
	}

	id := reflection.RecordID(input.RepositoryName, input.Commits[0].ID)
	if id == "" {
		return reflection.BuildOutput{}, reflection.ErrInvalidRecordKey
	}

	created, err := uc.repo.CreateReflection(ctx, repo.CreateReflectionOptions{
		ID:             id,
		OwnerUserID:    input.OwnerUserID,
		RepositoryName: input.RepositoryName,
		Commits:        input.Commits,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Build CreateReflection %s: %v", id, err)
		return reflection.BuildOutput{}, err
	}

	if created {
		uc.l.Infof(ctx, "reflection %s created with %d commits", id, len(input.Commits))
	} else {
		uc.l.Infof(ctx, "reflection %s already exists, replay ignored", id)
	}
	return reflection.BuildOutput{ID: id, Created: created}, nil
}
