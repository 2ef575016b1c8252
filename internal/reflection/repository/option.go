package repository

import "push-to-memory/internal/reflection"

// CreateReflectionOptions holds a fresh pending record.
type CreateReflectionOptions struct {
	ID             string
	OwnerUserID    string
	RepositoryName string
	Commits        []reflection.Commit
}

type UpdateReflectionOptions struct {
	ID             string
	ReflectionText string
	Status         reflection.Status
}

// ListReflectionsOptions filters by owner plus optional repository and status.
// WithText keeps only records whose reflection text is non-empty.
type ListReflectionsOptions struct {
	OwnerUserID string
	Repository  string
	Status      reflection.Status
	WithText    bool
	Limit       int
	Offset      int
}
