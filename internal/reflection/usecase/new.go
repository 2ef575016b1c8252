package usecase

import (
	"push-to-memory/internal/reflection/repository"
	"push-to-memory/pkg/gemini"
	"push-to-memory/pkg/log"
)

// implUseCase is the private implementation of reflection.UseCase.
type implUseCase struct {
	repo   repository.Repository
	gemini gemini.IGemini
	l      log.Logger
}

// New creates a reflection UseCase. A nil gemini client disables Summarize.
func New(repo repository.Repository, g gemini.IGemini, l log.Logger) *implUseCase {
	return &implUseCase{
		repo:   repo,
		gemini: g,
		l:      l,
	}
}
