package http

import (
	"push-to-memory/internal/reflection"
	"push-to-memory/pkg/response"
)

// --- Request DTOs ---

type listReq struct {
	Repository string `form:"repository"`
	Status     string `form:"status" binding:"omitempty,oneof=pending completed skipped"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}

func (r listReq) toInput() reflection.ListInput {
	return reflection.ListInput{
		Repository: r.Repository,
		Status:     reflection.Status(r.Status),
		Limit:      r.Limit,
		Offset:     r.Offset,
	}
}

type updateReq struct {
	ID         string `json:"-"` // populated from URI param
	Reflection string `json:"reflection"`
	Status     string `json:"status" binding:"omitempty,oneof=completed skipped"`
}

func (r updateReq) toInput() reflection.UpdateInput {
	return reflection.UpdateInput{
		ID:             r.ID,
		ReflectionText: r.Reflection,
		Status:         reflection.Status(r.Status),
	}
}

type summarizeReq struct {
	Prompt     string `json:"prompt"     binding:"max=4000"`
	Repository string `json:"repository"`
}

func (r summarizeReq) toInput() reflection.SummarizeInput {
	return reflection.SummarizeInput{Prompt: r.Prompt, Repository: r.Repository}
}

// --- Response DTOs ---

type authorResp struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type commitResp struct {
	ID        string     `json:"id"`
	Message   string     `json:"message"`
	Timestamp string     `json:"timestamp"`
	URL       string     `json:"url"`
	Author    authorResp `json:"author"`
	Added     []string   `json:"added"`
	Modified  []string   `json:"modified"`
	Removed   []string   `json:"removed"`
}

type reflectionResp struct {
	ID             string            `json:"id"`
	RepositoryName string            `json:"repository_name"`
	Commits        []commitResp      `json:"commits"`
	Reflection     string            `json:"reflection"`
	Status         string            `json:"status"`
	CreatedAt      response.DateTime `json:"created_at"`
	UpdatedAt      response.DateTime `json:"updated_at"`
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func newReflectionResp(rec reflection.Record) reflectionResp {
	commits := make([]commitResp, len(rec.Commits))
	for i, c := range rec.Commits {
		commits[i] = commitResp{
			ID:        c.ID,
			Message:   c.Message,
			Timestamp: c.Timestamp,
			URL:       c.URL,
			Author:    authorResp{Name: c.Author.Name, Email: c.Author.Email},
			Added:     emptyIfNil(c.Added),
			Modified:  emptyIfNil(c.Modified),
			Removed:   emptyIfNil(c.Removed),
		}
	}
	return reflectionResp{
		ID:             rec.ID,
		RepositoryName: rec.RepositoryName,
		Commits:        commits,
		Reflection:     rec.ReflectionText,
		Status:         string(rec.Status),
		CreatedAt:      response.DateTime(rec.CreatedAt),
		UpdatedAt:      response.DateTime(rec.UpdatedAt),
	}
}

type listResp struct {
	Reflections []reflectionResp `json:"reflections"`
	Total       int              `json:"total"`
	Limit       int              `json:"limit"`
	Offset      int              `json:"offset"`
}

func (h *handler) newListResp(out reflection.ListOutput) listResp {
	recs := make([]reflectionResp, len(out.Records))
	for i, rec := range out.Records {
		recs[i] = newReflectionResp(rec)
	}
	return listResp{
		Reflections: recs,
		Total:       out.Total,
		Limit:       out.Limit,
		Offset:      out.Offset,
	}
}

type detailResp struct {
	Reflection reflectionResp `json:"reflection"`
}

func (h *handler) newDetailResp(out reflection.DetailOutput) detailResp {
	return detailResp{Reflection: newReflectionResp(out.Record)}
}

type updateResp struct {
	Reflection reflectionResp `json:"reflection"`
}

func (h *handler) newUpdateResp(out reflection.UpdateOutput) updateResp {
	return updateResp{Reflection: newReflectionResp(out.Record)}
}

type summarizeResp struct {
	Summary         string `json:"summary"`
	ReflectionCount int    `json:"reflection_count"`
}

func (h *handler) newSummarizeResp(out reflection.SummarizeOutput) summarizeResp {
	return summarizeResp{Summary: out.Summary, ReflectionCount: out.ReflectionCount}
}
