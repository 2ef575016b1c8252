package postgre

import (
	"fmt"
	"strings"

	repo "push-to-memory/internal/reflection/repository"
)

// buildCountQuery builds the WHERE clause + args for counting records (no pagination).
func (r *implRepository) buildCountQuery(opt repo.ListReflectionsOptions) (string, []any) {
	conditions, args := r.buildConditions(opt)
	if len(conditions) == 0 {
		return "1=1", args
	}
	return strings.Join(conditions, " AND "), args
}

// buildListQuery builds the full WHERE + ORDER + LIMIT + OFFSET clause for ListReflections.
func (r *implRepository) buildListQuery(opt repo.ListReflectionsOptions) (string, []any) {
	var parts []string
	conditions, args := r.buildConditions(opt)
	idx := len(args) + 1

	if len(conditions) > 0 {
		parts = append(parts, "WHERE "+strings.Join(conditions, " AND "))
	}
	parts = append(parts, "ORDER BY created_at DESC, id ASC")

	if opt.Limit > 0 {
		parts = append(parts, fmt.Sprintf("LIMIT $%d", idx))
		args = append(args, opt.Limit)
		idx++
	}
	if opt.Offset > 0 {
		parts = append(parts, fmt.Sprintf("OFFSET $%d", idx))
		args = append(args, opt.Offset)
	}

	return strings.Join(parts, " "), args
}

func (r *implRepository) buildConditions(opt repo.ListReflectionsOptions) ([]string, []any) {
	var conditions []string
	var args []any
	idx := 1

	if opt.OwnerUserID != "" {
		conditions = append(conditions, fmt.Sprintf("owner_user_id = $%d", idx))
		args = append(args, opt.OwnerUserID)
		idx++
	}
	if opt.Repository != "" {
		conditions = append(conditions, fmt.Sprintf("repository_name = $%d", idx))
		args = append(args, opt.Repository)
		idx++
	}
	if opt.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", idx))
		args = append(args, string(opt.Status))
	}
	if opt.WithText {
		conditions = append(conditions, "reflection_text <> ''")
	}
	return conditions, args
}
