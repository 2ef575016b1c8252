package usecase

import (
	"push-to-memory/internal/registration/repository"
	pkgGithub "push-to-memory/pkg/github"
	"push-to-memory/pkg/log"
)

// implUseCase is the private implementation of registration.UseCase.
type implUseCase struct {
	repo        repository.Repository
	github      pkgGithub.IGitHub
	callbackURL string
	l           log.Logger
}

// New creates a registration UseCase. callbackURL is the public address GitHub delivers webhooks to.
func New(repo repository.Repository, github pkgGithub.IGitHub, callbackURL string, l log.Logger) *implUseCase {
	return &implUseCase{
		repo:        repo,
		github:      github,
		callbackURL: callbackURL,
		l:           l,
	}
}
