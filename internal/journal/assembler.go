// Package journal builds the combined daily view: the body measurement,
// the workouts, and the daily activity of each calendar day joined into
// one entry.
package journal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/2beens/fittracker/internal/measurements"
	"github.com/2beens/fittracker/internal/telemetry/tracing"
	"github.com/2beens/fittracker/internal/workouts"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=journal_mocks_test.go -package=journal_test

type measurementsGetter interface {
	GetByDate(ctx context.Context, day time.Time) (*measurements.BodyMeasurement, error)
}

type workoutsLister interface {
	ListByDate(ctx context.Context, day time.Time) ([]workouts.Workout, error)
}

type activitiesGetter interface {
	GetByDate(ctx context.Context, day time.Time) (*workouts.DailyActivity, error)
}

// DefaultRangeDays bounds a journal range when the request
// leaves one end of it open.
const DefaultRangeDays = 30

var errEndBeforeStart = errors.New("end date before start date")

type DailyEntry struct {
	Date        time.Time                     `json:"date"`
	Measurement *measurements.BodyMeasurement `json:"measurement,omitempty"`
	Workouts    []workouts.Workout            `json:"workouts"`
	Activity    *workouts.DailyActivity       `json:"activity,omitempty"`
	// Notes joins the non-empty notes of the day's workouts, in workout order.
	Notes string `json:"notes,omitempty"`
}

type Assembler struct {
	measurements measurementsGetter
	workouts     workoutsLister
	activities   activitiesGetter
}

func NewAssembler(
	measurements measurementsGetter,
	workouts workoutsLister,
	activities activitiesGetter,
) *Assembler {
	return &Assembler{
		measurements: measurements,
		workouts:     workouts,
		activities:   activities,
	}
}

// DailyEntry assembles the entry for one calendar day. Days without data
// produce an entry with empty fields, never an error.
func (a *Assembler) DailyEntry(ctx context.Context, day time.Time) (_ *DailyEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "journal.dailyentry")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", day.Format(time.DateOnly)))

	entry := &DailyEntry{
		Date: day,
	}

	measurement, err := a.measurements.GetByDate(ctx, day)
	switch {
	case err == nil:
		entry.Measurement = measurement
	case errors.Is(err, measurements.ErrMeasurementNotFound):
		// no measurement that day
	default:
		return nil, err
	}

	entry.Workouts, err = a.workouts.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	activity, err := a.activities.GetByDate(ctx, day)
	switch {
	case err == nil:
		entry.Activity = activity
	case errors.Is(err, workouts.ErrActivityNotFound):
		// no activity record that day
	default:
		return nil, err
	}

	var notes []string
	for _, workout := range entry.Workouts {
		if workout.Notes != "" {
			notes = append(notes, workout.Notes)
		}
	}
	entry.Notes = strings.Join(notes, ", ")

	return entry, nil
}

// DailyEntries assembles one entry per calendar day in the inclusive
// range, ascending, days with no data included.
func (a *Assembler) DailyEntries(ctx context.Context, start, end time.Time) (_ []DailyEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "journal.dailyentries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("start", start.Format(time.DateOnly)))
	span.SetAttributes(attribute.String("end", end.Format(time.DateOnly)))

	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return nil, errEndBeforeStart
	}

	var entries []DailyEntry
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		entry, err := a.DailyEntry(ctx, day)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	return entries, nil
}

// Recent returns the daily entries of the trailing number of days,
// today included.
func (a *Assembler) Recent(ctx context.Context, days int) ([]DailyEntry, error) {
	today := truncateToDay(time.Now())
	return a.DailyEntries(ctx, today.AddDate(0, 0, -(days-1)), today)
}

// ResolveRange fills the missing ends of a requested journal range:
// a missing end date defaults to today, without a start date the range
// is the limit days up to the end, with only a start date it is the
// limit days from that start.
func ResolveRange(start, end *time.Time, limit int) (time.Time, time.Time) {
	if limit < 1 {
		limit = DefaultRangeDays
	}
	if start == nil {
		resolvedEnd := truncateToDay(time.Now())
		if end != nil {
			resolvedEnd = truncateToDay(*end)
		}
		return resolvedEnd.AddDate(0, 0, -(limit - 1)), resolvedEnd
	}
	resolvedStart := truncateToDay(*start)
	if end == nil {
		return resolvedStart, resolvedStart.AddDate(0, 0, limit-1)
	}
	return resolvedStart, truncateToDay(*end)
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
