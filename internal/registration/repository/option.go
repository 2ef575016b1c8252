package repository

import "push-to-memory/internal/registration"

// CreateRegistrationOptions holds parameters for inserting a registration.
type CreateRegistrationOptions struct {
	ID          string
	Source      registration.Source
	HookID      int64
	Secret      string
	OwnerUserID string
}

// GetOneRegistrationOptions fetches a registration by its derived ID.
type GetOneRegistrationOptions struct {
	ID string
}

// ListRegistrationsOptions filters registrations. Empty OwnerUserID lists everything.
type ListRegistrationsOptions struct {
	OwnerUserID string
}
