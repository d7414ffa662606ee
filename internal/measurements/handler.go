package measurements

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fittracker/internal/telemetry/metrics"
	"github.com/2beens/fittracker/internal/telemetry/tracing"
	"github.com/2beens/fittracker/pkg"
)

type measurementsRepo interface {
	Add(ctx context.Context, measurement BodyMeasurement) (*BodyMeasurement, error)
	Get(ctx context.Context, id int) (*BodyMeasurement, error)
	GetByDate(ctx context.Context, day time.Time) (*BodyMeasurement, error)
	Latest(ctx context.Context) (*BodyMeasurement, error)
	List(ctx context.Context, params ListParams) ([]BodyMeasurement, error)
	Update(ctx context.Context, params UpdateParams) (*BodyMeasurement, error)
	Delete(ctx context.Context, id int) error
}

type AddMeasurementRequest struct {
	Date         *time.Time `json:"date,omitempty"`
	WeightPounds float64    `json:"weightPounds"`
	HeightInches *float64   `json:"heightInches,omitempty"`
	WaistInches  *float64   `json:"waistInches,omitempty"`
	NeckInches   *float64   `json:"neckInches,omitempty"`
	IsMale       *bool      `json:"isMale,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

type UpdateMeasurementRequest struct {
	Date         *time.Time `json:"date,omitempty"`
	WeightPounds *float64   `json:"weightPounds,omitempty"`
	HeightInches *float64   `json:"heightInches,omitempty"`
	WaistInches  *float64   `json:"waistInches,omitempty"`
	NeckInches   *float64   `json:"neckInches,omitempty"`
	IsMale       *bool      `json:"isMale,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

type DeleteMeasurementResponse struct {
	DeletedID int `json:"deletedId"`
}

type ListResponse struct {
	Measurements []BodyMeasurement `json:"measurements"`
	Total        int               `json:"total"`
}

type Handler struct {
	repo     measurementsRepo
	analyzer *Analyzer
	metrics  *metrics.Manager
}

func NewHandler(repo measurementsRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:     repo,
		analyzer: NewAnalyzer(repo),
		metrics:  metrics,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddMeasurementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new measurement, unmarshal json params: %s", err)
		http.Error(w, "add measurement failed", http.StatusBadRequest)
		return
	}

	if req.WeightPounds <= 0 {
		http.Error(w, "error, weight must be positive", http.StatusBadRequest)
		return
	}
	for _, optional := range []*float64{req.HeightInches, req.WaistInches, req.NeckInches} {
		if optional != nil && *optional <= 0 {
			http.Error(w, "error, measurements must be positive", http.StatusBadRequest)
			return
		}
	}

	measurement := BodyMeasurement{
		Date:         time.Now(),
		WeightPounds: req.WeightPounds,
		HeightInches: req.HeightInches,
		WaistInches:  req.WaistInches,
		NeckInches:   req.NeckInches,
		IsMale:       true,
		Notes:        req.Notes,
	}
	if req.Date != nil {
		measurement.Date = *req.Date
	}
	if req.IsMale != nil {
		measurement.IsMale = *req.IsMale
	}

	addedMeasurement, err := handler.repo.Add(ctx, measurement)
	if err != nil {
		log.Errorf("failed to add new measurement: %s", err)
		http.Error(w, "error, failed to add new measurement", http.StatusInternalServerError)
		return
	}

	addedJson, err := json.Marshal(addedMeasurement)
	if err != nil {
		log.Errorf("failed to marshal new measurement: %s", err)
		http.Error(w, "error, failed to add new measurement", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterMeasurements.Inc()

	log.Debugf("new measurement added: %s", addedJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.get")
	defer span.End()

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	measurement, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMeasurementNotFound) {
			http.Error(w, "measurement not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get measurement %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	measurementJson, err := json.Marshal(measurement)
	if err != nil {
		log.Errorf("failed to marshal measurement: %s", err)
		http.Error(w, "failed to marshal measurement", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, measurementJson, http.StatusOK)
}

func (handler *Handler) HandleGetLatest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.getlatest")
	defer span.End()

	measurement, err := handler.repo.Latest(ctx)
	if err != nil {
		if errors.Is(err, ErrMeasurementNotFound) {
			http.Error(w, "no measurements found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get latest measurement: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	measurementJson, err := json.Marshal(measurement)
	if err != nil {
		log.Errorf("failed to marshal measurement: %s", err)
		http.Error(w, "failed to marshal measurement", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, measurementJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.list")
	defer span.End()

	listParams, err := rangeFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	measurements, err := handler.repo.List(ctx, listParams)
	if err != nil {
		log.Errorf("list measurements error: %s", err)
		http.Error(w, "failed to get measurements", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListResponse{
		Measurements: measurements,
		Total:        len(measurements),
	})
	if err != nil {
		log.Errorf("marshal measurements error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.update")
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

	var req UpdateMeasurementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("update measurement, unmarshal json params: %s", err)
		http.Error(w, "update measurement failed", http.StatusBadRequest)
		return
	}

	if req.WeightPounds != nil && *req.WeightPounds <= 0 {
		http.Error(w, "error, weight must be positive", http.StatusBadRequest)
		return
	}

	updatedMeasurement, err := handler.repo.Update(ctx, UpdateParams{
		ID:           id,
		Date:         req.Date,
		WeightPounds: req.WeightPounds,
		HeightInches: req.HeightInches,
		WaistInches:  req.WaistInches,
		NeckInches:   req.NeckInches,
		IsMale:       req.IsMale,
		Notes:        req.Notes,
	})
	if err != nil {
		if errors.Is(err, ErrMeasurementNotFound) {
			log.Debugf("measurement %d not found", id)
			http.Error(w, "measurement not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update measurement %d: %s", id, err)
		http.Error(w, "error, failed to update measurement", http.StatusInternalServerError)
		return
	}

	updatedJson, err := json.Marshal(updatedMeasurement)
	if err != nil {
		log.Errorf("failed to marshal updated measurement: %s", err)
		http.Error(w, "failed to marshal updated measurement", http.StatusInternalServerError)
		return
	}

	log.Debugf("measurement updated: %d", id)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, updatedJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.delete")
	defer span.End()

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrMeasurementNotFound) {
			log.Debugf("measurement %d not found", id)
			http.Error(w, "measurement not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete measurement %d: %s", id, err)
		http.Error(w, "measurement not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteMeasurementResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleTrends(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.trends")
	defer span.End()

	days, err := daysFromQuery(r, 30)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	trends, err := handler.analyzer.Trends(ctx, days)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			http.Error(w, "no data in period", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get measurement trends: %s", err)
		http.Error(w, "failed to get measurement trends", http.StatusInternalServerError)
		return
	}

	trendsJson, err := json.Marshal(trends)
	if err != nil {
		log.Errorf("failed to marshal measurement trends: %s", err)
		http.Error(w, "failed to marshal measurement trends", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, trendsJson, http.StatusOK)
}

func (handler *Handler) HandleOverallStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.overall-stats")
	defer span.End()

	stats, err := handler.analyzer.OverallStatistics(ctx)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			http.Error(w, "no data in period", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get overall statistics: %s", err)
		http.Error(w, "failed to get overall statistics", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal overall statistics: %s", err)
		http.Error(w, "failed to marshal overall statistics", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}

func idFromRequest(r *http.Request) (int, error) {
	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		return 0, errors.New("error, id empty")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, errors.New("error, id NaN")
	}
	return id, nil
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
