package reflection

import (
	"context"

	"push-to-memory/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Build records a push. Replaying the same push returns the same ID with Created false
	// and leaves the stored record untouched.
	Build(ctx context.Context, input BuildInput) (BuildOutput, error)
	Update(ctx context.Context, sc model.Scope, input UpdateInput) (UpdateOutput, error)
	Detail(ctx context.Context, sc model.Scope, id string) (DetailOutput, error)
	List(ctx context.Context, sc model.Scope, input ListInput) (ListOutput, error)
	Summarize(ctx context.Context, sc model.Scope, input SummarizeInput) (SummarizeOutput, error)
}
