package nats

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"push-to-memory/internal/registration"
	repo "push-to-memory/internal/registration/repository"
)

type document struct {
	ID           string    `json:"id"`
	SourceKind   string    `json:"source_kind"`
	Organization string    `json:"organization,omitempty"`
	Owner        string    `json:"owner,omitempty"`
	Repository   string    `json:"repository,omitempty"`
	HookID       int64     `json:"hook_id"`
	Secret       string    `json:"secret"`
	OwnerUserID  string    `json:"owner_user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (d document) toRegistration() registration.Registration {
	return registration.Registration{
		ID: d.ID,
		Source: registration.Source{
			Kind:         registration.SourceKind(d.SourceKind),
			Organization: d.Organization,
			Owner:        d.Owner,
			Repository:   d.Repository,
		},
		HookID:      d.HookID,
		Secret:      d.Secret,
		OwnerUserID: d.OwnerUserID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// CreateRegistration relies on kv.Create failing with ErrKeyExists for an existing key.
func (r *implRepository) CreateRegistration(ctx context.Context, opt repo.CreateRegistrationOptions) (registration.Registration, error) {
	now := time.Now().UTC()
	doc := document{
		ID:           opt.ID,
		SourceKind:   string(opt.Source.Kind),
		Organization: opt.Source.Organization,
		Owner:        opt.Source.Owner,
		Repository:   opt.Source.Repository,
		HookID:       opt.HookID,
		Secret:       opt.Secret,
		OwnerUserID:  opt.OwnerUserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		r.l.Errorf(ctx, "%s marshal: %v", r.dsn("CreateRegistration"), err)
		return registration.Registration{}, repo.ErrFailedToInsert
	}

	if _, err := r.kv.Create(ctx, opt.ID, data); err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return registration.Registration{}, repo.ErrDuplicate
		}
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateRegistration"), err)
		return registration.Registration{}, repo.ErrFailedToInsert
	}
	return doc.toRegistration(), nil
}

// GetOneRegistration returns zero-value Registration (ID == "") when not found.
func (r *implRepository) GetOneRegistration(ctx context.Context, opt repo.GetOneRegistrationOptions) (registration.Registration, error) {
	doc, found, err := r.get(ctx, opt.ID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneRegistration"), err)
		return registration.Registration{}, repo.ErrFailedToGet
	}
	if !found {
		return registration.Registration{}, nil
	}
	return doc.toRegistration(), nil
}

func (r *implRepository) ListRegistrations(ctx context.Context, opt repo.ListRegistrationsOptions) ([]registration.Registration, error) {
	lister, err := r.kv.ListKeys(ctx)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListRegistrations"), err)
		return nil, repo.ErrFailedToList
	}
	defer lister.Stop()

	var regs []registration.Registration
	for key := range lister.Keys() {
		doc, found, err := r.get(ctx, key)
		if err != nil {
			r.l.Errorf(ctx, "%s get %s: %v", r.dsn("ListRegistrations"), key, err)
			return nil, repo.ErrFailedToList
		}
		if !found {
			continue
		}
		if opt.OwnerUserID != "" && doc.OwnerUserID != opt.OwnerUserID {
			continue
		}
		regs = append(regs, doc.toRegistration())
	}

	sort.Slice(regs, func(i, j int) bool { return regs[i].CreatedAt.After(regs[j].CreatedAt) })
	return regs, nil
}

func (r *implRepository) DeleteRegistration(ctx context.Context, id string) error {
	if err := r.kv.Delete(ctx, id); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteRegistration"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}

func (r *implRepository) get(ctx context.Context, key string) (document, bool, error) {
	entry, err := r.kv.Get(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return document{}, false, nil
	}
	if err != nil {
		return document{}, false, err
	}

	var doc document
	if err := json.Unmarshal(entry.Value(), &doc); err != nil {
		return document{}, false, err
	}
	return doc, true, nil
}
