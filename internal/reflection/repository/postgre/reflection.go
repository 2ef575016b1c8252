package postgre

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"push-to-memory/internal/reflection"
	repo "push-to-memory/internal/reflection/repository"
)

const selectColumns = `id, owner_user_id, repository_name, commits, reflection_text, status, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (reflection.Record, error) {
	var (
		rec     reflection.Record
		commits []byte
		status  string
	)
	if err := s.Scan(&rec.ID, &rec.OwnerUserID, &rec.RepositoryName, &commits, &rec.ReflectionText, &status, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return reflection.Record{}, err
	}
	if err := json.Unmarshal(commits, &rec.Commits); err != nil {
		return reflection.Record{}, fmt.Errorf("decode commits: %w", err)
	}
	rec.Status = reflection.Status(status)
	return rec, nil
}

// CreateReflection inserts a pending record. ON CONFLICT DO NOTHING keeps replays from touching the stored row.
func (r *implRepository) CreateReflection(ctx context.Context, opt repo.CreateReflectionOptions) (bool, error) {
	const query = `
		INSERT INTO reflections (id, owner_user_id, repository_name, commits, reflection_text, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, '', 'pending', NOW(), NOW())
		ON CONFLICT (id) DO NOTHING`

	commits, err := json.Marshal(opt.Commits)
	if err != nil {
		r.l.Errorf(ctx, "%s marshal: %v", r.dsn("CreateReflection"), err)
		return false, repo.ErrFailedToInsert
	}

	res, err := r.db.ExecContext(ctx, query, opt.ID, opt.OwnerUserID, opt.RepositoryName, commits)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateReflection"), err)
		return false, repo.ErrFailedToInsert
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "%s rows affected: %v", r.dsn("CreateReflection"), err)
		return false, repo.ErrFailedToInsert
	}
	return n == 1, nil
}

// GetOneReflection returns zero-value Record (ID == "") when not found.
func (r *implRepository) GetOneReflection(ctx context.Context, id string) (reflection.Record, error) {
	const query = `SELECT ` + selectColumns + ` FROM reflections WHERE id = $1 LIMIT 1`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return reflection.Record{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneReflection"), err)
		return reflection.Record{}, repo.ErrFailedToGet
	}
	return rec, nil
}

func (r *implRepository) UpdateReflection(ctx context.Context, opt repo.UpdateReflectionOptions) (reflection.Record, error) {
	const query = `
		UPDATE reflections SET reflection_text = $2, status = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + selectColumns

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, opt.ID, opt.ReflectionText, string(opt.Status)))
	if err == sql.ErrNoRows {
		return reflection.Record{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateReflection"), err)
		return reflection.Record{}, repo.ErrFailedToUpdate
	}
	return rec, nil
}

// ListReflections returns a page of records and the total count.
func (r *implRepository) ListReflections(ctx context.Context, opt repo.ListReflectionsOptions) ([]reflection.Record, int, error) {
	countMods, countArgs := r.buildCountQuery(opt)
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM reflections WHERE %s", countMods)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "%s count: %v", r.dsn("ListReflections"), err)
		return nil, 0, repo.ErrFailedToList
	}

	mods, args := r.buildListQuery(opt)
	query := fmt.Sprintf(`SELECT %s FROM reflections %s`, selectColumns, mods)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListReflections"), err)
		return nil, 0, repo.ErrFailedToList
	}
	defer rows.Close()

	var recs []reflection.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListReflections"), err)
			return nil, 0, repo.ErrFailedToList
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListReflections"), err)
		return nil, 0, repo.ErrFailedToList
	}
	return recs, total, nil
}
