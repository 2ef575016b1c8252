package memory

import (
	"context"
	"sync"
	"time"

	"push-to-memory/internal/reflection"
	repo "push-to-memory/internal/reflection/repository"
)

type implRepository struct {
	mu   sync.RWMutex
	rows map[string]reflection.Record
	now  func() time.Time
}

// New creates an in-process Repository. Used for local runs and tests.
func New() repo.Repository {
	return &implRepository{
		rows: make(map[string]reflection.Record),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *implRepository) CreateReflection(ctx context.Context, opt repo.CreateReflectionOptions) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[opt.ID]; ok {
		return false, nil
	}
	now := r.now()
	r.rows[opt.ID] = reflection.Record{
		ID:             opt.ID,
		OwnerUserID:    opt.OwnerUserID,
		RepositoryName: opt.RepositoryName,
		Commits:        append([]reflection.Commit(nil), opt.Commits...),
		Status:         reflection.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return true, nil
}

func (r *implRepository) GetOneReflection(ctx context.Context, id string) (reflection.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rows[id], nil
}

func (r *implRepository) UpdateReflection(ctx context.Context, opt repo.UpdateReflectionOptions) (reflection.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.rows[opt.ID]
	if !ok {
		return reflection.Record{}, nil
	}
	rec.ReflectionText = opt.ReflectionText
	rec.Status = opt.Status
	rec.UpdatedAt = r.now()
	r.rows[opt.ID] = rec
	return rec, nil
}

func (r *implRepository) ListReflections(ctx context.Context, opt repo.ListReflectionsOptions) ([]reflection.Record, int, error) {
	r.mu.RLock()
	var matched []reflection.Record
	for _, rec := range r.rows {
		if opt.Match(rec) {
			matched = append(matched, rec)
		}
	}
	r.mu.RUnlock()

	repo.SortNewestFirst(matched)
	return repo.Page(matched, opt.Limit, opt.Offset), len(matched), nil
}
