//go:build integration

package resumes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"careergenie-backend/internal/resume"
	"careergenie-backend/internal/shared/storage/db"
)

func TestPGRepoAgainstPostgres(t *testing.T) {
	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		postgres.WithDatabase("careergenie_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	database, err := db.Open(ctx, dsn, db.DefaultMigrateOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(ctx, database))

	repo := &PGRepo{DB: database}
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"r1", "r2"} {
		parsed := resume.Structured{Skills: resume.Skills{Technical: []string{"go"}}}
		parsed.StampFallback()
		require.NoError(t, repo.Create(ctx, Resume{
			ID:               id,
			UserID:           "u1",
			FileName:         id + ".txt",
			StorageKey:       "resumes/h/" + id,
			ContentType:      "text/plain",
			ParsedData:       parsed,
			ProcessingMethod: parsed.ProcessingMethod,
			Confidence:       parsed.Confidence,
			UploadedAt:       base.Add(time.Duration(i) * time.Minute),
		}))
	}

	latest, err := repo.LatestByUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "r2", latest.ID)
	require.Equal(t, []string{"go"}, latest.ParsedData.Skills.Technical)

	list, err := repo.ListByUser(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, repo.Delete(ctx, "r1"))
	_, err = repo.GetByID(ctx, "r1")
	require.ErrorIs(t, err, ErrNotFound)
}
