package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"push-to-memory/internal/reflection"
	repo "push-to-memory/internal/reflection/repository"
)

func commits(ids ...string) []reflection.Commit {
	out := make([]reflection.Commit, len(ids))
	for i, id := range ids {
		out[i] = reflection.Commit{ID: id, Message: "msg " + id}
	}
	return out
}

func TestCreateReflection_Idempotent(t *testing.T) {
	ctx := context.Background()
	r := New()

	created, err := r.CreateReflection(ctx, repo.CreateReflectionOptions{ID: "app-a1", OwnerUserID: "u1", RepositoryName: "app", Commits: commits("a1")})
	require.NoError(t, err)
	assert.True(t, created)

	_, err = r.UpdateReflection(ctx, repo.UpdateReflectionOptions{ID: "app-a1", ReflectionText: "learned", Status: reflection.StatusCompleted})
	require.NoError(t, err)

	created, err = r.CreateReflection(ctx, repo.CreateReflectionOptions{ID: "app-a1", OwnerUserID: "u2", RepositoryName: "app", Commits: commits("a1", "b2")})
	require.NoError(t, err)
	assert.False(t, created)

	rec, err := r.GetOneReflection(ctx, "app-a1")
	require.NoError(t, err)
	assert.Equal(t, "u1", rec.OwnerUserID)
	assert.Equal(t, "learned", rec.ReflectionText)
	assert.Equal(t, reflection.StatusCompleted, rec.Status)
	assert.Len(t, rec.Commits, 1)
}

func TestUpdateReflection_Missing(t *testing.T) {
	r := New()
	rec, err := r.UpdateReflection(context.Background(), repo.UpdateReflectionOptions{ID: "nope", Status: reflection.StatusSkipped})
	require.NoError(t, err)
	assert.Empty(t, rec.ID)

	got, _ := r.GetOneReflection(context.Background(), "nope")
	assert.Empty(t, got.ID)
}

func TestListReflections(t *testing.T) {
	ctx := context.Background()
	impl := New().(*implRepository)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	impl.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Minute) }

	for _, o := range []repo.CreateReflectionOptions{
		{ID: "app-1", OwnerUserID: "u1", RepositoryName: "app", Commits: commits("1")},
		{ID: "lib-2", OwnerUserID: "u1", RepositoryName: "lib", Commits: commits("2")},
		{ID: "app-3", OwnerUserID: "u1", RepositoryName: "app", Commits: commits("3")},
		{ID: "app-4", OwnerUserID: "u2", RepositoryName: "app", Commits: commits("4")},
	} {
		_, err := impl.CreateReflection(ctx, o)
		require.NoError(t, err)
	}
	_, err := impl.UpdateReflection(ctx, repo.UpdateReflectionOptions{ID: "app-1", ReflectionText: "x", Status: reflection.StatusCompleted})
	require.NoError(t, err)

	recs, total, err := impl.ListReflections(ctx, repo.ListReflectionsOptions{OwnerUserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"app-3", "lib-2", "app-1"}, []string{recs[0].ID, recs[1].ID, recs[2].ID})

	recs, total, _ = impl.ListReflections(ctx, repo.ListReflectionsOptions{OwnerUserID: "u1", Repository: "app", Limit: 1})
	assert.Equal(t, 2, total)
	require.Len(t, recs, 1)
	assert.Equal(t, "app-3", recs[0].ID)

	recs, _, _ = impl.ListReflections(ctx, repo.ListReflectionsOptions{OwnerUserID: "u1", WithText: true})
	require.Len(t, recs, 1)
	assert.Equal(t, "app-1", recs[0].ID)

	recs, total, _ = impl.ListReflections(ctx, repo.ListReflectionsOptions{OwnerUserID: "u1", Status: reflection.StatusPending, Offset: 5})
	assert.Equal(t, 2, total)
	assert.Empty(t, recs)
}
