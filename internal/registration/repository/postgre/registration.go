package postgre

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"push-to-memory/internal/registration"
	repo "push-to-memory/internal/registration/repository"
)

const (
	uniqueViolation = "23505"

	selectColumns = `id, source_kind, organization, owner, repository, hook_id, secret, owner_user_id, created_at, updated_at`
)

type scanner interface {
	Scan(dest ...any) error
}

func scanRegistration(s scanner) (registration.Registration, error) {
	var (
		reg  registration.Registration
		kind string
	)
	err := s.Scan(
		&reg.ID, &kind, &reg.Source.Organization, &reg.Source.Owner, &reg.Source.Repository,
		&reg.HookID, &reg.Secret, &reg.OwnerUserID, &reg.CreatedAt, &reg.UpdatedAt,
	)
	reg.Source.Kind = registration.SourceKind(kind)
	return reg, err
}

// CreateRegistration inserts a registration. A primary key conflict means the source is already connected.
func (r *implRepository) CreateRegistration(ctx context.Context, opt repo.CreateRegistrationOptions) (registration.Registration, error) {
	const query = `
		INSERT INTO webhook_registrations
			(id, source_kind, organization, owner, repository, hook_id, secret, owner_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + selectColumns

	reg, err := scanRegistration(r.db.QueryRowContext(ctx, query,
		opt.ID, string(opt.Source.Kind), opt.Source.Organization, opt.Source.Owner, opt.Source.Repository,
		opt.HookID, opt.Secret, opt.OwnerUserID,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return registration.Registration{}, repo.ErrDuplicate
		}
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateRegistration"), err)
		return registration.Registration{}, repo.ErrFailedToInsert
	}
	return reg, nil
}

// GetOneRegistration returns zero-value Registration (ID == "") when not found.
func (r *implRepository) GetOneRegistration(ctx context.Context, opt repo.GetOneRegistrationOptions) (registration.Registration, error) {
	const query = `SELECT ` + selectColumns + ` FROM webhook_registrations WHERE id = $1 LIMIT 1`

	reg, err := scanRegistration(r.db.QueryRowContext(ctx, query, opt.ID))
	if err == sql.ErrNoRows {
		return registration.Registration{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneRegistration"), err)
		return registration.Registration{}, repo.ErrFailedToGet
	}
	return reg, nil
}

func (r *implRepository) ListRegistrations(ctx context.Context, opt repo.ListRegistrationsOptions) ([]registration.Registration, error) {
	query := `SELECT ` + selectColumns + ` FROM webhook_registrations`
	var args []any
	if opt.OwnerUserID != "" {
		query += ` WHERE owner_user_id = $1`
		args = append(args, opt.OwnerUserID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListRegistrations"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var regs []registration.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListRegistrations"), err)
			return nil, repo.ErrFailedToList
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListRegistrations"), err)
		return nil, repo.ErrFailedToList
	}
	return regs, nil
}

func (r *implRepository) DeleteRegistration(ctx context.Context, id string) error {
	const query = `DELETE FROM webhook_registrations WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteRegistration"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}
