package nats

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"push-to-memory/internal/reflection"
	repo "push-to-memory/internal/reflection/repository"
)

type document struct {
	ID             string              `json:"id"`
	OwnerUserID    string              `json:"owner_user_id"`
	RepositoryName string              `json:"repository_name"`
	Commits        []reflection.Commit `json:"commits"`
	ReflectionText string              `json:"reflection_text"`
	Status         string              `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func (d document) toRecord() reflection.Record {
	return reflection.Record{
		ID:             d.ID,
		OwnerUserID:    d.OwnerUserID,
		RepositoryName: d.RepositoryName,
		Commits:        d.Commits,
		ReflectionText: d.ReflectionText,
		Status:         reflection.Status(d.Status),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// CreateReflection uses kv.Create, which refuses to overwrite an existing key.
func (r *implRepository) CreateReflection(ctx context.Context, opt repo.CreateReflectionOptions) (bool, error) {
	now := time.Now().UTC()
	data, err := json.Marshal(document{
		ID:             opt.ID,
		OwnerUserID:    opt.OwnerUserID,
		RepositoryName: opt.RepositoryName,
		Commits:        opt.Commits,
		Status:         string(reflection.StatusPending),
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		r.l.Errorf(ctx, "%s marshal: %v", r.dsn("CreateReflection"), err)
		return false, repo.ErrFailedToInsert
	}

	if _, err := r.kv.Create(ctx, opt.ID, data); err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return false, nil
		}
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateReflection"), err)
		return false, repo.ErrFailedToInsert
	}
	return true, nil
}

func (r *implRepository) GetOneReflection(ctx context.Context, id string) (reflection.Record, error) {
	doc, _, found, err := r.get(ctx, id)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneReflection"), err)
		return reflection.Record{}, repo.ErrFailedToGet
	}
	if !found {
		return reflection.Record{}, nil
	}
	return doc.toRecord(), nil
}

// UpdateReflection reads the current revision and writes back with kv.Update,
// retrying when another writer got there first.
func (r *implRepository) UpdateReflection(ctx context.Context, opt repo.UpdateReflectionOptions) (reflection.Record, error) {
	for attempt := 0; attempt < updateAttempts; attempt++ {
		doc, rev, found, err := r.get(ctx, opt.ID)
		if err != nil {
			r.l.Errorf(ctx, "%s get: %v", r.dsn("UpdateReflection"), err)
			return reflection.Record{}, repo.ErrFailedToUpdate
		}
		if !found {
			return reflection.Record{}, nil
		}

		doc.ReflectionText = opt.ReflectionText
		doc.Status = string(opt.Status)
		doc.UpdatedAt = time.Now().UTC()
		data, err := json.Marshal(doc)
		if err != nil {
			r.l.Errorf(ctx, "%s marshal: %v", r.dsn("UpdateReflection"), err)
			return reflection.Record{}, repo.ErrFailedToUpdate
		}

		_, err = r.kv.Update(ctx, opt.ID, data, rev)
		if err == nil {
			return doc.toRecord(), nil
		}
		if !errors.Is(err, jetstream.ErrKeyExists) {
			r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateReflection"), err)
			return reflection.Record{}, repo.ErrFailedToUpdate
		}
	}

	r.l.Warnf(ctx, "%s: %s kept changing after %d attempts", r.dsn("UpdateReflection"), opt.ID, updateAttempts)
	return reflection.Record{}, repo.ErrFailedToUpdate
}

// ListReflections scans the bucket. Buckets are per deployment and stay small enough for a full scan.
func (r *implRepository) ListReflections(ctx context.Context, opt repo.ListReflectionsOptions) ([]reflection.Record, int, error) {
	lister, err := r.kv.ListKeys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, 0, nil
		}
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListReflections"), err)
		return nil, 0, repo.ErrFailedToList
	}
	defer lister.Stop()

	var matched []reflection.Record
	for key := range lister.Keys() {
		doc, _, found, err := r.get(ctx, key)
		if err != nil {
			r.l.Errorf(ctx, "%s get %s: %v", r.dsn("ListReflections"), key, err)
			return nil, 0, repo.ErrFailedToList
		}
		if !found {
			continue
		}
		if rec := doc.toRecord(); opt.Match(rec) {
			matched = append(matched, rec)
		}
	}

	repo.SortNewestFirst(matched)
	return repo.Page(matched, opt.Limit, opt.Offset), len(matched), nil
}

func (r *implRepository) get(ctx context.Context, key string) (document, uint64, bool, error) {
	entry, err := r.kv.Get(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return document{}, 0, false, nil
	}
	if err != nil {
		return document{}, 0, false, err
	}

	var doc document
	if err := json.Unmarshal(entry.Value(), &doc); err != nil {
		return document{}, 0, false, err
	}
	return doc, entry.Revision(), true, nil
}
