package workouts

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/2beens/fittracker/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExercisesHandler_HandleAdd_duplicateName(t *testing.T) {
	exercisesRepo := NewMockExercisesRepo()
	handler := NewExercisesHandler(exercisesRepo)

	_, err := exercisesRepo.Add(context.Background(), Exercise{Name: "Squat", Category: "strength"})
	require.NoError(t, err)

	reqBody, err := json.Marshal(Exercise{Name: "Squat", Category: "strength"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "/exercise", bytes.NewReader(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	handler.HandleAdd(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestExercisesHandler_HandleDelete_softDelete(t *testing.T) {
	exercisesRepo := NewMockExercisesRepo()
	handler := NewExercisesHandler(exercisesRepo)

	added, err := exercisesRepo.Add(context.Background(), Exercise{Name: "Squat", Category: "strength"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("DELETE", "/exercise/"+strconv.Itoa(added.ID), nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"id": strconv.Itoa(added.ID)})

	handler.HandleDelete(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// the row stays, just deactivated
	deactivated, err := exercisesRepo.Get(context.Background(), added.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	active, err := exercisesRepo.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestHandler_HandleAdd_legacyFlatSets(t *testing.T) {
	exercisesRepo := NewMockExercisesRepo()
	workoutsRepo := NewMockWorkoutsRepo(exercisesRepo)
	handler := NewHandler(workoutsRepo, metrics.NewTestManager())

	benchPress, err := exercisesRepo.Add(context.Background(), Exercise{Name: "Bench Press", Category: "strength"})
	require.NoError(t, err)

	weight := 100.0
	reps := 10
	reqBody, err := json.Marshal(AddWorkoutRequest{
		Exercises: []AddWorkoutExerciseRequest{
			{ExerciseID: benchPress.ID, Weight: &weight, Reps: &reps},
		},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "/workout", bytes.NewReader(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	handler.HandleAdd(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var added Workout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	require.Len(t, added.Exercises, 1)
	// the flat pair is adapted into a single set
	require.Len(t, added.Exercises[0].SetsData, 1)
	assert.Equal(t, Set{Weight: 100, Reps: 10}, added.Exercises[0].SetsData[0])
}

func TestHandler_HandleAdd_emptySets(t *testing.T) {
	exercisesRepo := NewMockExercisesRepo()
	workoutsRepo := NewMockWorkoutsRepo(exercisesRepo)
	handler := NewHandler(workoutsRepo, metrics.NewTestManager())

	benchPress, err := exercisesRepo.Add(context.Background(), Exercise{Name: "Bench Press", Category: "strength"})
	require.NoError(t, err)

	reqBody, err := json.Marshal(AddWorkoutRequest{
		Exercises: []AddWorkoutExerciseRequest{
			{ExerciseID: benchPress.ID},
		},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "/workout", bytes.NewReader(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	handler.HandleAdd(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleDelete_cascade(t *testing.T) {
	exercisesRepo := NewMockExercisesRepo()
	workoutsRepo := NewMockWorkoutsRepo(exercisesRepo)
	handler := NewHandler(workoutsRepo, metrics.NewTestManager())

	benchPress, err := exercisesRepo.Add(context.Background(), Exercise{Name: "Bench Press", Category: "strength"})
	require.NoError(t, err)
	added := addTestWorkout(t, workoutsRepo, time.Now(), benchPress.ID, []Set{{Weight: 100, Reps: 10}})

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("DELETE", "/workout/"+strconv.Itoa(added.ID), nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"id": strconv.Itoa(added.ID)})

	handler.HandleDelete(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err = workoutsRepo.Get(context.Background(), added.ID)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	occurrences, err := workoutsRepo.ExerciseOccurrences(context.Background(), benchPress.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, occurrences)
}

func TestHandler_HandleOneRepMax(t *testing.T) {
	exercisesRepo := NewMockExercisesRepo()
	handler := NewHandler(NewMockWorkoutsRepo(exercisesRepo), metrics.NewTestManager())

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/workout/onerepmax?weight=100&reps=10", nil)
	require.NoError(t, err)

	handler.HandleOneRepMax(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp OneRepMaxResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 133.33, resp.OneRepMax, 0.01)

	rec = httptest.NewRecorder()
	req, err = http.NewRequest("GET", "/workout/onerepmax?weight=-5&reps=10", nil)
	require.NoError(t, err)
	handler.HandleOneRepMax(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestActivitiesHandler_HandleUpsert_mergesSameDay(t *testing.T) {
	activitiesRepo := NewMockActivitiesRepo()
	handler := NewActivitiesHandler(activitiesRepo, metrics.NewTestManager())

	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	steps := 8000
	firstBody, err := json.Marshal(DailyActivity{Date: day, Steps: &steps})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "/activity", bytes.NewReader(firstBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	handler.HandleUpsert(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	walk := true
	secondBody, err := json.Marshal(DailyActivity{Date: day, WalkYesNo: &walk})
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	req, err = http.NewRequest("POST", "/activity", bytes.NewReader(secondBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	handler.HandleUpsert(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var merged DailyActivity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &merged))
	// one record per day, the second write merged into the first
	require.NotNil(t, merged.Steps)
	assert.Equal(t, 8000, *merged.Steps)
	require.NotNil(t, merged.WalkYesNo)
	assert.True(t, *merged.WalkYesNo)

	activities, err := activitiesRepo.ListRange(context.Background(), ListParams{})
	require.NoError(t, err)
	assert.Len(t, activities, 1)
}
