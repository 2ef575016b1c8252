package postgre

import (
	"database/sql"
	"fmt"

	"push-to-memory/internal/reflection/repository"
	"push-to-memory/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a new PostgreSQL-backed Repository for reflection records.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("reflection/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("reflection/repository/postgre.%s", method)
}
