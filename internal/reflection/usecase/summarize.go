package usecase

import (
	"context"
	"fmt"
	"strings"

	"push-to-memory/internal/model"
	"push-to-memory/internal/reflection"
	repo "push-to-memory/internal/reflection/repository"
)

const (
	summaryMaxReflections = 50
	summarySeparator      = "\n\nHere are the reflections to analyze:\n\n"
	summaryDateLayout     = "2006-01-02"
)

// DefaultSummaryPrompt is used when the caller does not supply a prompt.
const DefaultSummaryPrompt = `Below are my coding reflections from a period of time. Please analyze them and provide:
1. Key themes and patterns in what I've learned
2. Areas where I've shown growth
3. Suggestions for areas to focus on next
4. A brief summary of the technical topics covered`

// Summarize asks Gemini to analyze the caller's written reflections.
func (uc *implUseCase) Summarize(ctx context.Context, sc model.Scope, input reflection.SummarizeInput) (reflection.SummarizeOutput, error) {
	if uc.gemini == nil {
		return reflection.SummarizeOutput{}, reflection.ErrSummaryUnavailable
	}

	recs, _, err := uc.repo.ListReflections(ctx, repo.ListReflectionsOptions{
		OwnerUserID: sc.UserID,
		Repository:  input.Repository,
		WithText:    true,
		Limit:       summaryMaxReflections,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Summarize ListReflections: %v", err)
		return reflection.SummarizeOutput{}, err
	}
	if len(recs) == 0 {
		return reflection.SummarizeOutput{}, reflection.ErrNothingToSummarize
	}

	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" {
		prompt = DefaultSummaryPrompt
	}

	summary, err := uc.gemini.GenerateText(ctx, buildSummaryPrompt(prompt, recs))
	if err != nil {
		uc.l.Errorf(ctx, "uc.Summarize GenerateText: %v", err)
		return reflection.SummarizeOutput{}, err
	}

	return reflection.SummarizeOutput{Summary: summary, ReflectionCount: len(recs)}, nil
}

func buildSummaryPrompt(prompt string, recs []reflection.Record) string {
	blocks := make([]string, len(recs))
	for i, rec := range recs {
		blocks[i] = formatReflection(rec)
	}
	return prompt + summarySeparator + strings.Join(blocks, "\n\n")
}

func formatReflection(rec reflection.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Repository: %s\n", rec.RepositoryName)
	fmt.Fprintf(&b, "Date: %s\n", rec.CreatedAt.Format(summaryDateLayout))
	b.WriteString("Commits:\n")
	for _, c := range rec.Commits {
		fmt.Fprintf(&b, "- %s\n", firstLine(c.Message))
	}
	fmt.Fprintf(&b, "Reflection: %s", rec.ReflectionText)
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
