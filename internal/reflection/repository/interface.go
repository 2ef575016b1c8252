package repository

import (
	"context"

	"push-to-memory/internal/reflection"
)

// Repository is the composed interface for the reflection data store.
type Repository interface {
	ReflectionRepository
}

// ReflectionRepository defines all data access methods for reflection records.
type ReflectionRepository interface {
	// CreateReflection inserts the record only when its ID is unused. It reports false,
	// without error and without touching the stored record, when the ID already exists.
	CreateReflection(ctx context.Context, opt CreateReflectionOptions) (bool, error)
	// GetOneReflection returns a zero value (ID == "") when not found.
	GetOneReflection(ctx context.Context, id string) (reflection.Record, error)
	// UpdateReflection merges text and status. Returns a zero value (ID == "") when not found.
	UpdateReflection(ctx context.Context, opt UpdateReflectionOptions) (reflection.Record, error)
	// ListReflections returns one page, newest first, and the total count matching the filters.
	ListReflections(ctx context.Context, opt ListReflectionsOptions) ([]reflection.Record, int, error)
}
