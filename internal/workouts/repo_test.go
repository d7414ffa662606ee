//go:build integration_test || all_tests

package workouts

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/2beens/fittracker/internal/db"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deleteAll(ctx context.Context, pool *pgxpool.Pool) error {
	for _, table := range []string{"workout_exercise", "workout", "exercise", "daily_activity"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func testReposSetup(t *testing.T) (*ExercisesRepo, *WorkoutsRepo, *ActivitiesRepo, func()) {
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
	require.NoError(t, deleteAll(timeoutCtx, dbPool))

	return NewExercisesRepo(dbPool), NewWorkoutsRepo(dbPool), NewActivitiesRepo(dbPool), func() {
		dbPool.Close()
	}
}

func TestExercisesRepo_CRUD(t *testing.T) {
	exercisesRepo, _, _, shutdown := testReposSetup(t)
	defer shutdown()

	ctx := context.Background()

	added, err := exercisesRepo.Add(ctx, Exercise{
		Name:     "Bench Press",
		Category: "chest",
	})
	require.NoError(t, err)
	assert.True(t, added.ID > 0)
	assert.True(t, added.IsActive)

	_, err = exercisesRepo.Add(ctx, Exercise{
		Name:     "Bench Press",
		Category: "chest",
	})
	assert.ErrorIs(t, err, ErrExerciseExists)

	added.Category = "push"
	require.NoError(t, exercisesRepo.Update(ctx, added))
	gotten, err := exercisesRepo.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "push", gotten.Category)

	require.NoError(t, exercisesRepo.Deactivate(ctx, added.ID))

	// deactivated exercise is still there, just not listed as active
	gotten, err = exercisesRepo.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.False(t, gotten.IsActive)

	active, err := exercisesRepo.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := exercisesRepo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestWorkoutsRepo_CRUD(t *testing.T) {
	exercisesRepo, workoutsRepo, _, shutdown := testReposSetup(t)
	defer shutdown()

	ctx := context.Background()

	exercise, err := exercisesRepo.Add(ctx, Exercise{
		Name:     "Squat",
		Category: "legs",
	})
	require.NoError(t, err)

	added, err := workoutsRepo.Add(ctx, Workout{
		Date:   time.Now(),
		Notes:  gofakeit.Sentence(4),
		Status: "completed",
		Exercises: []WorkoutExercise{
			{
				ExerciseID: exercise.ID,
				SetsData: []Set{
					{Weight: 185, Reps: 5},
					{Weight: 185, Reps: 5},
					{Weight: 195, Reps: 3},
				},
			},
		},
	})
	require.NoError(t, err)
	assert.True(t, added.ID > 0)

	gotten, err := workoutsRepo.Get(ctx, added.ID)
	require.NoError(t, err)
	require.Len(t, gotten.Exercises, 1)
	assert.Equal(t, "Squat", gotten.Exercises[0].ExerciseName)
	assert.Len(t, gotten.Exercises[0].SetsData, 3)

	byDate, err := workoutsRepo.ListByDate(ctx, time.Now())
	require.NoError(t, err)
	assert.Len(t, byDate, 1)

	occurrences, err := workoutsRepo.ExerciseOccurrences(ctx, exercise.ID, nil)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, exercise.ID, occurrences[0].ExerciseID)

	newNotes := "heavy day"
	updated, err := workoutsRepo.Update(ctx, UpdateWorkoutParams{
		ID:    added.ID,
		Notes: &newNotes,
	})
	require.NoError(t, err)
	assert.Equal(t, newNotes, updated.Notes)

	// delete cascades to workout exercises
	require.NoError(t, workoutsRepo.Delete(ctx, added.ID))
	_, err = workoutsRepo.Get(ctx, added.ID)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
	occurrences, err = workoutsRepo.ExerciseOccurrences(ctx, exercise.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, occurrences)
}

func TestActivitiesRepo_UpsertMerge(t *testing.T) {
	_, _, activitiesRepo, shutdown := testReposSetup(t)
	defer shutdown()

	ctx := context.Background()
	today := time.Now()

	steps := 8000
	first, err := activitiesRepo.Upsert(ctx, DailyActivity{
		Date:  today,
		Steps: &steps,
	})
	require.NoError(t, err)
	require.NotNil(t, first.Steps)

	walk := true
	second, err := activitiesRepo.Upsert(ctx, DailyActivity{
		Date:      today,
		WalkYesNo: &walk,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.Steps)
	assert.Equal(t, steps, *second.Steps)
	require.NotNil(t, second.WalkYesNo)
	assert.True(t, *second.WalkYesNo)

	gotten, err := activitiesRepo.GetByDate(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, first.ID, gotten.ID)

	activities, err := activitiesRepo.ListRange(ctx, ListParams{})
	require.NoError(t, err)
	assert.Len(t, activities, 1)

	require.NoError(t, activitiesRepo.Delete(ctx, first.ID))
	_, err = activitiesRepo.GetByDate(ctx, today)
	assert.ErrorIs(t, err, ErrActivityNotFound)
}
