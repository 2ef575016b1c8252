package repository

import (
	"context"

	"push-to-memory/internal/registration"
)

// Repository is the composed interface for the registration data store.
type Repository interface {
	RegistrationRepository
}

// RegistrationRepository defines all data access methods for webhook registrations.
type RegistrationRepository interface {
	// CreateRegistration returns ErrDuplicate when a registration with the same ID exists.
	CreateRegistration(ctx context.Context, opt CreateRegistrationOptions) (registration.Registration, error)
	// GetOneRegistration returns a zero value (ID == "") when not found.
	GetOneRegistration(ctx context.Context, opt GetOneRegistrationOptions) (registration.Registration, error)
	ListRegistrations(ctx context.Context, opt ListRegistrationsOptions) ([]registration.Registration, error)
	DeleteRegistration(ctx context.Context, id string) error
}
