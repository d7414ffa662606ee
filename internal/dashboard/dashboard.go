// Package dashboard serves the combined overview the frontends show on
// their landing screen. Assembling it touches every store, so the result
// is kept in a short lived in-memory cache.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fittracker/internal/journal"
	"github.com/2beens/fittracker/internal/measurements"
	"github.com/2beens/fittracker/internal/telemetry/tracing"
	"github.com/2beens/fittracker/internal/workouts"
	"github.com/2beens/fittracker/pkg"
)

const (
	oneMinute          = 60
	summaryCacheExpire = oneMinute * 5
)

type Summary struct {
	// nil sections mean no data in the period, not zero values
	Trends        *measurements.TrendsReport      `json:"trends,omitempty"`
	OverallStats  *measurements.OverallStatistics `json:"overallStats,omitempty"`
	WorkoutStats  *workouts.WorkoutStatistics     `json:"workoutStats,omitempty"`
	RecentEntries []journal.DailyEntry            `json:"recentEntries"`
	WindowDays    int                             `json:"windowDays"`
	GeneratedAt   time.Time                       `json:"generatedAt"`
}

type Handler struct {
	measurementsAnalyzer *measurements.Analyzer
	workoutsAnalyzer     *workouts.Analyzer
	assembler            *journal.Assembler
	cache                *freecache.Cache
}

func NewHandler(
	measurementsAnalyzer *measurements.Analyzer,
	workoutsAnalyzer *workouts.Analyzer,
	assembler *journal.Assembler,
) *Handler {
	megabyte := 1024 * 1024
	return &Handler{
		measurementsAnalyzer: measurementsAnalyzer,
		workoutsAnalyzer:     workoutsAnalyzer,
		assembler:            assembler,
		cache:                freecache.NewCache(megabyte),
	}
}

func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.summary")
	defer span.End()

	days := 30
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid <days> param, must be a positive number", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	cacheKey := fmt.Sprintf("summary::%d", days)
	if summaryBytes, err := handler.cache.Get([]byte(cacheKey)); err == nil {
		log.Tracef("found dashboard summary for %d days in cache", days)
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, summaryBytes, http.StatusOK)
		return
	}

	summary, err := handler.assembleSummary(ctx, days)
	if err != nil {
		log.Errorf("failed to assemble dashboard summary: %s", err)
		http.Error(w, "failed to get dashboard summary", http.StatusInternalServerError)
		return
	}

	summaryJson, err := json.Marshal(summary)
	if err != nil {
		log.Errorf("failed to marshal dashboard summary: %s", err)
		http.Error(w, "failed to marshal dashboard summary", http.StatusInternalServerError)
		return
	}

	if err := handler.cache.Set([]byte(cacheKey), summaryJson, summaryCacheExpire); err != nil {
		log.Errorf("failed to write dashboard summary cache: %s", err)
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, summaryJson, http.StatusOK)
}

func (handler *Handler) assembleSummary(ctx context.Context, days int) (*Summary, error) {
	summary := &Summary{
		WindowDays:  days,
		GeneratedAt: time.Now(),
	}

	trends, err := handler.measurementsAnalyzer.Trends(ctx, days)
	switch {
	case err == nil:
		summary.Trends = trends
	case errors.Is(err, measurements.ErrNoData):
		// section stays empty
	default:
		return nil, fmt.Errorf("measurement trends: %w", err)
	}

	overallStats, err := handler.measurementsAnalyzer.OverallStatistics(ctx)
	switch {
	case err == nil:
		summary.OverallStats = overallStats
	case errors.Is(err, measurements.ErrNoData):
	default:
		return nil, fmt.Errorf("overall statistics: %w", err)
	}

	workoutStats, err := handler.workoutsAnalyzer.WorkoutStatistics(ctx, days)
	switch {
	case err == nil:
		summary.WorkoutStats = workoutStats
	case errors.Is(err, workouts.ErrNoData):
	default:
		return nil, fmt.Errorf("workout statistics: %w", err)
	}

	summary.RecentEntries, err = handler.assembler.Recent(ctx, 7)
	if err != nil {
		return nil, fmt.Errorf("recent entries: %w", err)
	}

	return summary, nil
}
