package registration

import (
	"context"

	"push-to-memory/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	Create(ctx context.Context, sc model.Scope, input CreateInput) (CreateOutput, error)
	Delete(ctx context.Context, sc model.Scope, input DeleteInput) error
	List(ctx context.Context, sc model.Scope) (ListOutput, error)
	ListSources(ctx context.Context, input ListSourcesInput) (ListSourcesOutput, error)

	// Lookup resolves a webhook source to its registration, including the secret.
	// Returns ErrRegistrationNotFound when the source was never connected.
	Lookup(ctx context.Context, source Source) (Registration, error)
}
