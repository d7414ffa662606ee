package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/fittracker/internal/telemetry/metrics"
	"github.com/2beens/fittracker/internal/telemetry/tracing"
	"github.com/2beens/fittracker/pkg"
)

type activitiesRepo interface {
	Upsert(ctx context.Context, activity DailyActivity) (*DailyActivity, error)
	GetByDate(ctx context.Context, day time.Time) (*DailyActivity, error)
	ListRange(ctx context.Context, params ListParams) ([]DailyActivity, error)
	Delete(ctx context.Context, id int) error
}

type ActivitiesListResponse struct {
	Activities []DailyActivity `json:"activities"`
	Total      int             `json:"total"`
}

type DeleteActivityResponse struct {
	DeletedID int `json:"deletedId"`
}

type ActivitiesHandler struct {
	repo    activitiesRepo
	metrics *metrics.Manager
}

func NewActivitiesHandler(repo activitiesRepo, metrics *metrics.Manager) *ActivitiesHandler {
	return &ActivitiesHandler{
		repo:    repo,
		metrics: metrics,
	}
}

// HandleUpsert writes the activity for a calendar day. A second write for
// the same day merges the sent fields into the existing record.
func (handler *ActivitiesHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.upsert")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var activity DailyActivity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		log.Tracef("upsert daily activity, unmarshal json params: %s", err)
		http.Error(w, "upsert daily activity failed", http.StatusBadRequest)
		return
	}

	if activity.Date.IsZero() {
		activity.Date = time.Now()
	}
	if activity.Steps != nil && *activity.Steps < 0 {
		http.Error(w, "error, steps must not be negative", http.StatusBadRequest)
		return
	}

	upserted, err := handler.repo.Upsert(ctx, activity)
	if err != nil {
		log.Errorf("failed to upsert daily activity: %s", err)
		http.Error(w, "error, failed to upsert daily activity", http.StatusInternalServerError)
		return
	}

	upsertedJson, err := json.Marshal(upserted)
	if err != nil {
		log.Errorf("failed to marshal daily activity: %s", err)
		http.Error(w, "error, failed to upsert daily activity", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterDailyActivities.Inc()

	log.Debugf("daily activity upserted: %d", upserted.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, upsertedJson, http.StatusOK)
}

func (handler *ActivitiesHandler) HandleGetByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.getbydate")
	defer span.End()

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		http.Error(w, "error, date empty", http.StatusBadRequest)
		return
	}
	day, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		http.Error(w, "invalid <date> param, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	activity, err := handler.repo.GetByDate(ctx, day)
	if err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			http.Error(w, "daily activity not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get daily activity for %s: %s", dateStr, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	activityJson, err := json.Marshal(activity)
	if err != nil {
		log.Errorf("failed to marshal daily activity: %s", err)
		http.Error(w, "failed to marshal daily activity", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, activityJson, http.StatusOK)
}

func (handler *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.list")
	defer span.End()

	listParams, err := rangeFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	activities, err := handler.repo.ListRange(ctx, listParams)
	if err != nil {
		log.Errorf("list daily activities error: %s", err)
		http.Error(w, "failed to get daily activities", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ActivitiesListResponse{
		Activities: activities,
		Total:      len(activities),
	})
	if err != nil {
		log.Errorf("marshal daily activities error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *ActivitiesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.delete")
	defer span.End()

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			log.Debugf("daily activity %d not found", id)
			http.Error(w, "daily activity not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete daily activity %d: %s", id, err)
		http.Error(w, "daily activity not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteActivityResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
