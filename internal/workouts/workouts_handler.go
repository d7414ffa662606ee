package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/fittracker/internal/fitcalc"
	"github.com/2beens/fittracker/internal/telemetry/metrics"
	"github.com/2beens/fittracker/internal/telemetry/tracing"
	"github.com/2beens/fittracker/pkg"
)

type workoutsRepo interface {
	Add(ctx context.Context, workout Workout) (*Workout, error)
	Get(ctx context.Context, id int) (*Workout, error)
	ListRange(ctx context.Context, params ListParams) ([]Workout, error)
	ListByDate(ctx context.Context, day time.Time) ([]Workout, error)
	Update(ctx context.Context, params UpdateWorkoutParams) (*Workout, error)
	Delete(ctx context.Context, id int) error
	ExerciseOccurrences(ctx context.Context, exerciseID int, from *time.Time) ([]WorkoutExercise, error)
}

// AddWorkoutExerciseRequest accepts either the canonical setsData form or
// the legacy flat weight and reps pair, which older clients still send.
// The flat pair is adapted into a single element setsData here at the API
// edge, nothing below the handler ever sees it.
type AddWorkoutExerciseRequest struct {
	ExerciseID int      `json:"exerciseId"`
	SetsData   []Set    `json:"setsData,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
	Reps       *int     `json:"reps,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

type AddWorkoutRequest struct {
	Date      *time.Time                  `json:"date,omitempty"`
	Notes     string                      `json:"notes,omitempty"`
	Status    string                      `json:"status,omitempty"`
	Exercises []AddWorkoutExerciseRequest `json:"exercises"`
}

type UpdateWorkoutRequest struct {
	Date   *time.Time `json:"date,omitempty"`
	Notes  *string    `json:"notes,omitempty"`
	Status *string    `json:"status,omitempty"`
}

type DeleteWorkoutResponse struct {
	DeletedID int `json:"deletedId"`
}

type WorkoutsListResponse struct {
	Workouts []Workout `json:"workouts"`
	Total    int       `json:"total"`
}

type OneRepMaxResponse struct {
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	OneRepMax float64 `json:"oneRepMax"`
}

type Handler struct {
	repo     workoutsRepo
	analyzer *Analyzer
	metrics  *metrics.Manager
}

func NewHandler(repo workoutsRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:     repo,
		analyzer: NewAnalyzer(repo),
		metrics:  metrics,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	workout := Workout{
		Date:   time.Now(),
		Notes:  req.Notes,
		Status: req.Status,
	}
	if req.Date != nil {
		workout.Date = *req.Date
	}

	for _, exReq := range req.Exercises {
		if exReq.ExerciseID == 0 {
			http.Error(w, "error, exercise id empty", http.StatusBadRequest)
			return
		}

		setsData := exReq.SetsData
		if len(setsData) == 0 && exReq.Weight != nil && exReq.Reps != nil {
			setsData = []Set{{Weight: *exReq.Weight, Reps: *exReq.Reps}}
		}
		if len(setsData) == 0 {
			http.Error(w, "error, sets data empty", http.StatusBadRequest)
			return
		}
		for _, set := range setsData {
			if set.Weight < 0 || set.Reps < 1 {
				http.Error(w, "error, invalid set data", http.StatusBadRequest)
				return
			}
		}

		workout.Exercises = append(workout.Exercises, WorkoutExercise{
			ExerciseID: exReq.ExerciseID,
			SetsData:   setsData,
			Notes:      exReq.Notes,
		})
	}

	addedWorkout, err := handler.repo.Add(ctx, workout)
	if err != nil {
		log.Errorf("failed to add new workout: %s", err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	addedJson, err := json.Marshal(addedWorkout)
	if err != nil {
		log.Errorf("failed to marshal new workout: %s", err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkouts.Inc()

	log.Debugf("new workout added: %d", addedWorkout.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get workout %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("failed to marshal workout: %s", err)
		http.Error(w, "failed to marshal workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, workoutJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	listParams, err := rangeFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workouts, err := handler.repo.ListRange(ctx, listParams)
	if err != nil {
		log.Errorf("list workouts error: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(WorkoutsListResponse{
		Workouts: workouts,
		Total:    len(workouts),
	})
	if err != nil {
		log.Errorf("marshal workouts error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req UpdateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("update workout, unmarshal json params: %s", err)
		http.Error(w, "update workout failed", http.StatusBadRequest)
		return
	}

	updatedWorkout, err := handler.repo.Update(ctx, UpdateWorkoutParams{
		ID:     id,
		Date:   req.Date,
		Notes:  req.Notes,
		Status: req.Status,
	})
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			log.Debugf("workout %d not found", id)
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update workout %d: %s", id, err)
		http.Error(w, "error, failed to update workout", http.StatusInternalServerError)
		return
	}

	updatedJson, err := json.Marshal(updatedWorkout)
	if err != nil {
		log.Errorf("failed to marshal updated workout: %s", err)
		http.Error(w, "failed to marshal updated workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout updated: %d", id)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, updatedJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			log.Debugf("workout %d not found", id)
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete workout %d: %s", id, err)
		http.Error(w, "workout not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteWorkoutResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleExerciseProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.exercise-progress")
	defer span.End()

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	days, err := daysFromQuery(r, 90)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	progress, err := handler.analyzer.ExerciseProgress(ctx, id, days)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			http.Error(w, "no data in period", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get exercise progress [%d]: %s", id, err)
		http.Error(w, "failed to get exercise progress", http.StatusInternalServerError)
		return
	}

	progressJson, err := json.Marshal(progress)
	if err != nil {
		log.Errorf("failed to marshal exercise progress: %s", err)
		http.Error(w, "failed to marshal exercise progress", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, progressJson, http.StatusOK)
}

func (handler *Handler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.statistics")
	defer span.End()

	days, err := daysFromQuery(r, 30)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := handler.analyzer.WorkoutStatistics(ctx, days)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			http.Error(w, "no data in period", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get workout statistics: %s", err)
		http.Error(w, "failed to get workout statistics", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal workout statistics: %s", err)
		http.Error(w, "failed to marshal workout statistics", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}

func (handler *Handler) HandleOneRepMax(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.onerepmax")
	defer span.End()

	weight, err := strconv.ParseFloat(r.URL.Query().Get("weight"), 64)
	if err != nil || weight <= 0 {
		http.Error(w, "invalid <weight> param, must be a positive number", http.StatusBadRequest)
		return
	}
	reps, err := strconv.Atoi(r.URL.Query().Get("reps"))
	if err != nil || reps < 1 {
		http.Error(w, "invalid <reps> param, must be a positive number", http.StatusBadRequest)
		return
	}

	oneRepMaxJson, err := json.Marshal(OneRepMaxResponse{
		Weight:    weight,
		Reps:      reps,
		OneRepMax: fitcalc.OneRepMax(weight, reps),
	})
	if err != nil {
		log.Errorf("failed to marshal one rep max response: %s", err)
		http.Error(w, "failed to marshal one rep max response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, oneRepMaxJson, http.StatusOK)
}

func rangeFromQuery(r *http.Request) (ListParams, error) {
	var params ListParams
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.DateOnly, fromStr)
		if err != nil {
			return ListParams{}, errors.New("invalid <from> param, use YYYY-MM-DD")
		}
		params.From = &from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(time.DateOnly, toStr)
		if err != nil {
			return ListParams{}, errors.New("invalid <to> param, use YYYY-MM-DD")
		}
		// make the upper bound inclusive for the whole day
		to = to.AddDate(0, 0, 1).Add(-time.Second)
		params.To = &to
	}
	return params, nil
}

func daysFromQuery(r *http.Request, defaultDays int) (int, error) {
	daysStr := r.URL.Query().Get("days")
	if daysStr == "" {
		return defaultDays, nil
	}
	days, err := strconv.Atoi(daysStr)
	if err != nil || days < 1 {
		return 0, errors.New("invalid <days> param, must be a positive number")
	}
	return days, nil
}
