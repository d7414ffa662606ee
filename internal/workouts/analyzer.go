package workouts

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fittracker/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// ErrNoData marks a progress or statistics request over a period
// with zero records.
var ErrNoData = errors.New("no data in period")

type ExerciseProgress struct {
	ExerciseID       int       `json:"exerciseId"`
	ExerciseName     string    `json:"exerciseName"`
	TotalOccurrences int       `json:"totalOccurrences"`
	FirstDate        time.Time `json:"firstDate"`
	LastDate         time.Time `json:"lastDate"`

	CurrentMaxWeight     float64 `json:"currentMaxWeight"`
	BestMaxWeight        float64 `json:"bestMaxWeight"`
	MaxWeightImprovement float64 `json:"maxWeightImprovement"`

	CurrentVolume float64 `json:"currentVolume"`
	BestVolume    float64 `json:"bestVolume"`
	AverageVolume float64 `json:"averageVolume"`
}

type WorkoutStatistics struct {
	TotalWorkouts          int     `json:"totalWorkouts"`
	AvgExercisesPerWorkout float64 `json:"avgExercisesPerWorkout"`
	FrequencyPerWeek       float64 `json:"frequencyPerWeek"`
}

type Analyzer struct {
	repo workoutsRepo
}

func NewAnalyzer(repo workoutsRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// ExerciseProgress reports max weight and volume progress for one catalog
// exercise over the trailing window of the given number of days. Sets with
// zero weight or zero reps are skipped everywhere, zero is ambiguous
// between "not entered" and a bodyweight exercise. An occurrence where no
// set qualifies still counts, it just contributes zero weight and volume.
func (a *Analyzer) ExerciseProgress(ctx context.Context, exerciseID, days int) (_ *ExerciseProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.exercise-progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))
	span.SetAttributes(attribute.Int("days", days))

	from := time.Now().AddDate(0, 0, -days)
	occurrences, err := a.repo.ExerciseOccurrences(ctx, exerciseID, &from)
	if err != nil {
		return nil, err
	}

	type occurrenceStats struct {
		date        time.Time
		maxWeight   float64
		totalVolume float64
	}

	var stats []occurrenceStats
	var exerciseName string
	for _, occurrence := range occurrences {
		exerciseName = occurrence.ExerciseName

		var maxWeight, totalVolume float64
		for _, set := range occurrence.SetsData {
			if set.Weight == 0 || set.Reps == 0 {
				continue
			}
			if set.Weight > maxWeight {
				maxWeight = set.Weight
			}
			totalVolume += set.Weight * float64(set.Reps)
		}

		stats = append(stats, occurrenceStats{
			date:        occurrence.WorkoutDate,
			maxWeight:   maxWeight,
			totalVolume: totalVolume,
		})
	}

	if len(stats) == 0 {
		return nil, ErrNoData
	}

	first := stats[0]
	last := stats[len(stats)-1]

	progress := &ExerciseProgress{
		ExerciseID:       exerciseID,
		ExerciseName:     exerciseName,
		TotalOccurrences: len(stats),
		FirstDate:        first.date,
		LastDate:         last.date,

		CurrentMaxWeight:     last.maxWeight,
		MaxWeightImprovement: last.maxWeight - first.maxWeight,
		CurrentVolume:        last.totalVolume,
	}

	var volumeSum float64
	for _, s := range stats {
		volumeSum += s.totalVolume
		if s.maxWeight > progress.BestMaxWeight {
			progress.BestMaxWeight = s.maxWeight
		}
		if s.totalVolume > progress.BestVolume {
			progress.BestVolume = s.totalVolume
		}
	}
	progress.AverageVolume = volumeSum / float64(len(stats))

	return progress, nil
}

// WorkoutStatistics reports workout counts over the trailing window of the
// given number of days. Frequency divides by the window length in weeks,
// not by the calendar weeks actually observed, so days must be positive.
func (a *Analyzer) WorkoutStatistics(ctx context.Context, days int) (_ *WorkoutStatistics, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.statistics")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("days", days))

	if days < 1 {
		return nil, errors.New("days must be greater than 0")
	}

	from := time.Now().AddDate(0, 0, -days)
	workouts, err := a.repo.ListRange(ctx, ListParams{From: &from})
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, ErrNoData
	}

	var exercisesTotal int
	for _, w := range workouts {
		exercisesTotal += len(w.Exercises)
	}

	return &WorkoutStatistics{
		TotalWorkouts:          len(workouts),
		AvgExercisesPerWorkout: float64(exercisesTotal) / float64(len(workouts)),
		FrequencyPerWeek:       float64(len(workouts)) / (float64(days) / 7),
	}, nil
}
