//go:build integration_test || all_tests

package goals

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/2beens/fittracker/internal/db"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deleteAll(ctx context.Context, repo *Repo) (int64, error) {
	tag, err := repo.db.Exec(ctx, `DELETE FROM goal`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func testRepoSetup(t *testing.T) (*Repo, func()) {
	t.Helper()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	t.Logf("using postres host: %s", host)

	dbPool, err := db.NewDBPool(timeoutCtx, db.NewDBPoolParams{
		DBHost:         host,
		DBPort:         "5432",
		DBName:         "fittracker_db",
		TracingEnabled: false,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(timeoutCtx, dbPool))

	return NewRepo(dbPool), func() {
		dbPool.Close()
	}
}

func TestRepo_BasicCRUD(t *testing.T) {
	repo, shutdown := testRepoSetup(t)
	defer shutdown()

	ctx := context.Background()
	deleted, err := deleteAll(ctx, repo)
	require.NoError(t, err)
	t.Logf("test setup, deleted goals: %d", deleted)

	added, err := repo.Add(ctx, Goal{
		Name:        "Reach 180 lbs",
		Description: gofakeit.Sentence(6),
		GoalType:    "weight",
		TargetValue: 180,
		Unit:        "lbs",
		StartDate:   time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, added.ID > 0)
	assert.True(t, added.IsActive)
	assert.False(t, added.IsCompleted)

	gotten, err := repo.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added.Name, gotten.Name)
	assert.Equal(t, float64(180), gotten.TargetValue)

	current := 185.5
	gotten.CurrentValue = &current
	gotten.IsCompleted = true
	require.NoError(t, repo.Update(ctx, gotten))

	updated, err := repo.Get(ctx, added.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.CurrentValue)
	assert.Equal(t, current, *updated.CurrentValue)
	assert.True(t, updated.IsCompleted)

	goalsList, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, goalsList, 1)

	require.NoError(t, repo.Delete(ctx, added.ID))
	_, err = repo.Get(ctx, added.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}
