package workouts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorkoutsSetup(t *testing.T) (*exercisesRepoMock, *workoutsRepoMock, *Exercise) {
	t.Helper()

	exercisesRepo := NewMockExercisesRepo()
	workoutsRepo := NewMockWorkoutsRepo(exercisesRepo)

	benchPress, err := exercisesRepo.Add(context.Background(), Exercise{
		Name:     "Bench Press",
		Category: "strength",
	})
	require.NoError(t, err)

	return exercisesRepo, workoutsRepo, benchPress
}

func addTestWorkout(
	t *testing.T,
	repo *workoutsRepoMock,
	date time.Time,
	exerciseID int,
	sets []Set,
) *Workout {
	t.Helper()
	added, err := repo.Add(context.Background(), Workout{
		Date: date,
		Exercises: []WorkoutExercise{
			{ExerciseID: exerciseID, SetsData: sets},
		},
	})
	require.NoError(t, err)
	return added
}

func TestAnalyzer_ExerciseProgress(t *testing.T) {
	_, workoutsRepo, benchPress := testWorkoutsSetup(t)
	analyzer := NewAnalyzer(workoutsRepo)

	now := time.Now()
	addTestWorkout(t, workoutsRepo, now.AddDate(0, 0, -21), benchPress.ID, []Set{
		{Weight: 100, Reps: 10},
		{Weight: 110, Reps: 8},
	})
	addTestWorkout(t, workoutsRepo, now.AddDate(0, 0, -14), benchPress.ID, []Set{
		{Weight: 110, Reps: 10},
		{Weight: 120, Reps: 6},
	})
	addTestWorkout(t, workoutsRepo, now.AddDate(0, 0, -7), benchPress.ID, []Set{
		{Weight: 115, Reps: 10},
		// zero weight and zero reps sets contribute to no statistic
		{Weight: 0, Reps: 12},
		{Weight: 200, Reps: 0},
	})

	progress, err := analyzer.ExerciseProgress(context.Background(), benchPress.ID, 30)
	require.NoError(t, err)

	assert.Equal(t, benchPress.ID, progress.ExerciseID)
	assert.Equal(t, "Bench Press", progress.ExerciseName)
	assert.Equal(t, 3, progress.TotalOccurrences)

	assert.Equal(t, float64(115), progress.CurrentMaxWeight)
	assert.Equal(t, float64(120), progress.BestMaxWeight)
	assert.Equal(t, float64(5), progress.MaxWeightImprovement)

	// volumes: 100*10+110*8 = 1880, 110*10+120*6 = 1820, 115*10 = 1150
	assert.Equal(t, float64(1150), progress.CurrentVolume)
	assert.Equal(t, float64(1880), progress.BestVolume)
	assert.InDelta(t, (1880.0+1820+1150)/3, progress.AverageVolume, 0.001)
}

func TestAnalyzer_ExerciseProgress_allSetsFiltered(t *testing.T) {
	_, workoutsRepo, benchPress := testWorkoutsSetup(t)
	analyzer := NewAnalyzer(workoutsRepo)

	now := time.Now()
	addTestWorkout(t, workoutsRepo, now.AddDate(0, 0, -10), benchPress.ID, []Set{
		{Weight: 100, Reps: 10},
	})
	// an occurrence with no qualifying set still counts, with zero totals
	addTestWorkout(t, workoutsRepo, now.AddDate(0, 0, -2), benchPress.ID, []Set{
		{Weight: 0, Reps: 10},
	})

	progress, err := analyzer.ExerciseProgress(context.Background(), benchPress.ID, 30)
	require.NoError(t, err)

	assert.Equal(t, 2, progress.TotalOccurrences)
	assert.Equal(t, float64(0), progress.CurrentMaxWeight)
	assert.Equal(t, float64(100), progress.BestMaxWeight)
	assert.Equal(t, float64(-100), progress.MaxWeightImprovement)
	assert.Equal(t, float64(0), progress.CurrentVolume)
	assert.InDelta(t, 500, progress.AverageVolume, 0.001)
}

func TestAnalyzer_ExerciseProgress_noOccurrences(t *testing.T) {
	_, workoutsRepo, benchPress := testWorkoutsSetup(t)
	analyzer := NewAnalyzer(workoutsRepo)

	_, err := analyzer.ExerciseProgress(context.Background(), benchPress.ID, 30)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestAnalyzer_WorkoutStatistics(t *testing.T) {
	_, workoutsRepo, benchPress := testWorkoutsSetup(t)
	analyzer := NewAnalyzer(workoutsRepo)

	now := time.Now()
	sets := []Set{{Weight: 100, Reps: 10}}
	addTestWorkout(t, workoutsRepo, now.AddDate(0, 0, -10), benchPress.ID, sets)
	addTestWorkout(t, workoutsRepo, now.AddDate(0, 0, -5), benchPress.ID, sets)
	workout3 := addTestWorkout(t, workoutsRepo, now.AddDate(0, 0, -1), benchPress.ID, sets)
	workout3.Exercises = append(workout3.Exercises, WorkoutExercise{
		ExerciseID: benchPress.ID,
		SetsData:   sets,
	})

	stats, err := analyzer.WorkoutStatistics(context.Background(), 28)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalWorkouts)
	assert.InDelta(t, 4.0/3, stats.AvgExercisesPerWorkout, 0.001)
	// 3 workouts over a 4 week window
	assert.InDelta(t, 0.75, stats.FrequencyPerWeek, 0.001)
}

func TestAnalyzer_WorkoutStatistics_noData(t *testing.T) {
	_, workoutsRepo, _ := testWorkoutsSetup(t)
	analyzer := NewAnalyzer(workoutsRepo)

	_, err := analyzer.WorkoutStatistics(context.Background(), 30)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = analyzer.WorkoutStatistics(context.Background(), 0)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
}
