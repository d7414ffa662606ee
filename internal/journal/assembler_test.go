package journal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/2beens/fittracker/internal/journal"
	"github.com/2beens/fittracker/internal/measurements"
	"github.com/2beens/fittracker/internal/workouts"
)

func testAssemblerSetup(t *testing.T) (
	*journal.Assembler,
	*MockmeasurementsGetter,
	*MockworkoutsLister,
	*MockactivitiesGetter,
) {
	t.Helper()
	ctrl := gomock.NewController(t)
	measurementsMock := NewMockmeasurementsGetter(ctrl)
	workoutsMock := NewMockworkoutsLister(ctrl)
	activitiesMock := NewMockactivitiesGetter(ctrl)
	assembler := journal.NewAssembler(measurementsMock, workoutsMock, activitiesMock)
	return assembler, measurementsMock, workoutsMock, activitiesMock
}

func TestAssembler_DailyEntry(t *testing.T) {
	assembler, measurementsMock, workoutsMock, activitiesMock := testAssemblerSetup(t)

	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	measurement := &measurements.BodyMeasurement{
		ID:           1,
		Date:         day.Add(8 * time.Hour),
		WeightPounds: 180,
		IsMale:       true,
	}
	dayWorkouts := []workouts.Workout{
		{
			ID:    1,
			Date:  day.Add(10 * time.Hour),
			Notes: "felt strong",
			Exercises: []workouts.WorkoutExercise{
				{ID: 1, ExerciseID: 1, ExerciseName: "Bench Press", SetsData: []workouts.Set{{Weight: 100, Reps: 10}}},
			},
		},
		{ID: 2, Date: day.Add(18 * time.Hour)},
		{ID: 3, Date: day.Add(19 * time.Hour), Notes: "short evening session"},
	}

	measurementsMock.EXPECT().GetByDate(gomock.Any(), day).Return(measurement, nil)
	workoutsMock.EXPECT().ListByDate(gomock.Any(), day).Return(dayWorkouts, nil)
	activitiesMock.EXPECT().GetByDate(gomock.Any(), day).Return(nil, workouts.ErrActivityNotFound)

	entry, err := assembler.DailyEntry(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, measurement, entry.Measurement)
	assert.Len(t, entry.Workouts, 3)
	assert.Nil(t, entry.Activity)
	// only the non-empty workout notes, joined in workout order
	assert.Equal(t, "felt strong, short evening session", entry.Notes)
	assert.Equal(t, "Bench Press", entry.Workouts[0].Exercises[0].ExerciseName)
}

func TestAssembler_DailyEntry_emptyDay(t *testing.T) {
	assembler, measurementsMock, workoutsMock, activitiesMock := testAssemblerSetup(t)

	day := time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC)
	measurementsMock.EXPECT().GetByDate(gomock.Any(), day).Return(nil, measurements.ErrMeasurementNotFound)
	workoutsMock.EXPECT().ListByDate(gomock.Any(), day).Return([]workouts.Workout{}, nil)
	activitiesMock.EXPECT().GetByDate(gomock.Any(), day).Return(nil, workouts.ErrActivityNotFound)

	entry, err := assembler.DailyEntry(context.Background(), day)
	require.NoError(t, err)

	assert.Nil(t, entry.Measurement)
	assert.Empty(t, entry.Workouts)
	assert.Nil(t, entry.Activity)
	assert.Empty(t, entry.Notes)
}

func TestAssembler_DailyEntries(t *testing.T) {
	assembler, measurementsMock, workoutsMock, activitiesMock := testAssemblerSetup(t)

	start := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 14, 0, 0, 0, 0, time.UTC)

	measurementsMock.EXPECT().GetByDate(gomock.Any(), gomock.Any()).
		Return(nil, measurements.ErrMeasurementNotFound).Times(5)
	workoutsMock.EXPECT().ListByDate(gomock.Any(), gomock.Any()).
		Return([]workouts.Workout{}, nil).Times(5)
	activitiesMock.EXPECT().GetByDate(gomock.Any(), gomock.Any()).
		Return(nil, workouts.ErrActivityNotFound).Times(5)

	entries, err := assembler.DailyEntries(context.Background(), start, end)
	require.NoError(t, err)

	// one entry per day in the inclusive range, data or not
	require.Len(t, entries, 5)
	assert.Equal(t, start, entries[0].Date)
	assert.Equal(t, end, entries[4].Date)
	for i := 1; i < len(entries); i++ {
		assert.Equal(t, entries[i-1].Date.AddDate(0, 0, 1), entries[i].Date)
	}
}

func TestAssembler_DailyEntries_endBeforeStart(t *testing.T) {
	assembler, _, _, _ := testAssemblerSetup(t)

	start := time.Date(2025, 5, 14, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	_, err := assembler.DailyEntries(context.Background(), start, end)
	assert.Error(t, err)
}

func TestResolveRange(t *testing.T) {
	today := time.Now()
	todayTruncated := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	t.Run("no start", func(t *testing.T) {
		start, end := journal.ResolveRange(nil, nil, 7)
		assert.Equal(t, todayTruncated, end)
		assert.Equal(t, todayTruncated.AddDate(0, 0, -6), start)
	})

	t.Run("end only", func(t *testing.T) {
		givenEnd := time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)
		start, end := journal.ResolveRange(nil, &givenEnd, 7)
		assert.Equal(t, givenEnd, end)
		assert.Equal(t, time.Date(2020, 3, 9, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("start only", func(t *testing.T) {
		givenStart := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
		start, end := journal.ResolveRange(&givenStart, nil, 7)
		assert.Equal(t, givenStart, start)
		assert.Equal(t, givenStart.AddDate(0, 0, 6), end)
	})

	t.Run("both given", func(t *testing.T) {
		givenStart := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
		givenEnd := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
		start, end := journal.ResolveRange(&givenStart, &givenEnd, 7)
		assert.Equal(t, givenStart, start)
		assert.Equal(t, givenEnd, end)
	})
}
