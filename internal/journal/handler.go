package journal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/fittracker/internal/telemetry/tracing"
	"github.com/2beens/fittracker/pkg"
)

type EntriesResponse struct {
	Entries []DailyEntry `json:"entries"`
	Total   int          `json:"total"`
}

type Handler struct {
	assembler *Assembler
}

func NewHandler(assembler *Assembler) *Handler {
	return &Handler{
		assembler: assembler,
	}
}

func (handler *Handler) HandleDailyEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.journal.dailyentry")
	defer span.End()

	day := time.Now()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			http.Error(w, "invalid <date> param, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		day = parsed
	}

	entry, err := handler.assembler.DailyEntry(ctx, day)
	if err != nil {
		log.Errorf("failed to assemble daily entry: %s", err)
		http.Error(w, "failed to get daily entry", http.StatusInternalServerError)
		return
	}

	entryJson, err := json.Marshal(entry)
	if err != nil {
		log.Errorf("failed to marshal daily entry: %s", err)
		http.Error(w, "failed to marshal daily entry", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entryJson, http.StatusOK)
}

func (handler *Handler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.journal.entries")
	defer span.End()

	var start, end *time.Time
	if startStr := r.URL.Query().Get("start"); startStr != "" {
		parsed, err := time.Parse(time.DateOnly, startStr)
		if err != nil {
			http.Error(w, "invalid <start> param, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		start = &parsed
	}
	if endStr := r.URL.Query().Get("end"); endStr != "" {
		parsed, err := time.Parse(time.DateOnly, endStr)
		if err != nil {
			http.Error(w, "invalid <end> param, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		end = &parsed
	}

	limit := DefaultRangeDays
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid <limit> param, must be a positive number", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	rangeStart, rangeEnd := ResolveRange(start, end, limit)
	entries, err := handler.assembler.DailyEntries(ctx, rangeStart, rangeEnd)
	if err != nil {
		if errors.Is(err, errEndBeforeStart) {
			http.Error(w, "end date before start date", http.StatusBadRequest)
			return
		}
		log.Errorf("failed to assemble daily entries: %s", err)
		http.Error(w, "failed to get daily entries", http.StatusInternalServerError)
		return
	}

	entriesJson, err := json.Marshal(EntriesResponse{
		Entries: entries,
		Total:   len(entries),
	})
	if err != nil {
		log.Errorf("failed to marshal daily entries: %s", err)
		http.Error(w, "failed to marshal daily entries", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entriesJson, http.StatusOK)
}

func (handler *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.journal.recent")
	defer span.End()

	days := 7
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid <days> param, must be a positive number", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	entries, err := handler.assembler.Recent(ctx, days)
	if err != nil {
		log.Errorf("failed to assemble recent entries: %s", err)
		http.Error(w, "failed to get recent entries", http.StatusInternalServerError)
		return
	}

	entriesJson, err := json.Marshal(EntriesResponse{
		Entries: entries,
		Total:   len(entries),
	})
	if err != nil {
		log.Errorf("failed to marshal recent entries: %s", err)
		http.Error(w, "failed to marshal recent entries", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entriesJson, http.StatusOK)
}
