package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"push-to-memory/internal/registration"
	repo "push-to-memory/internal/registration/repository"
)

type implRepository struct {
	mu   sync.RWMutex
	rows map[string]registration.Registration
	now  func() time.Time
}

// New creates an in-process Repository. Used for local runs and tests.
func New() repo.Repository {
	return &implRepository{
		rows: make(map[string]registration.Registration),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *implRepository) CreateRegistration(ctx context.Context, opt repo.CreateRegistrationOptions) (registration.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[opt.ID]; ok {
		return registration.Registration{}, repo.ErrDuplicate
	}

	now := r.now()
	reg := registration.Registration{
		ID:          opt.ID,
		Source:      opt.Source,
		HookID:      opt.HookID,
		Secret:      opt.Secret,
		OwnerUserID: opt.OwnerUserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.rows[opt.ID] = reg
	return reg, nil
}

func (r *implRepository) GetOneRegistration(ctx context.Context, opt repo.GetOneRegistrationOptions) (registration.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rows[opt.ID], nil
}

func (r *implRepository) ListRegistrations(ctx context.Context, opt repo.ListRegistrationsOptions) ([]registration.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []registration.Registration
	for _, reg := range r.rows {
		if opt.OwnerUserID != "" && reg.OwnerUserID != opt.OwnerUserID {
			continue
		}
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *implRepository) DeleteRegistration(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}
