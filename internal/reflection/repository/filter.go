package repository

import (
	"sort"

	"push-to-memory/internal/reflection"
)

// Match applies the list filters to one record. Used by drivers that filter in process.
func (opt ListReflectionsOptions) Match(rec reflection.Record) bool {
	if opt.OwnerUserID != "" && rec.OwnerUserID != opt.OwnerUserID {
		return false
	}
	if opt.Repository != "" && rec.RepositoryName != opt.Repository {
		return false
	}
	if opt.Status != "" && rec.Status != opt.Status {
		return false
	}
	if opt.WithText && rec.ReflectionText == "" {
		return false
	}
	return true
}

// SortNewestFirst orders by CreatedAt descending, ID ascending on ties.
func SortNewestFirst(recs []reflection.Record) {
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		}
		return recs[i].ID < recs[j].ID
	})
}

// Page slices recs. A non-positive limit returns everything after offset.
func Page(recs []reflection.Record, limit, offset int) []reflection.Record {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(recs) {
		return nil
	}
	recs = recs[offset:]
	if limit > 0 && limit < len(recs) {
		recs = recs[:limit]
	}
	return recs
}
