package measurements

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fittracker/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// ErrNoData marks a trend or statistics request over a period
// with zero measurements, as opposed to a period of zero values.
var ErrNoData = errors.New("no data in period")

// DimensionStats holds the five summary values reported for one
// measured dimension over a window. Current is the chronologically
// last reading in the window, Change is last minus first and is 0
// for a single element series.
type DimensionStats struct {
	Current float64 `json:"current"`
	Change  float64 `json:"change"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

type TrendsReport struct {
	Count     int            `json:"count"`
	FirstDate time.Time      `json:"firstDate"`
	LastDate  time.Time      `json:"lastDate"`
	Weight    DimensionStats `json:"weight"`
	// Waist is omitted when no measurement in the window has a waist value.
	Waist *DimensionStats `json:"waist,omitempty"`
}

type OverallStatistics struct {
	TotalMeasurements int       `json:"totalMeasurements"`
	FirstDate         time.Time `json:"firstDate"`
	LatestDate        time.Time `json:"latestDate"`
	FirstWeight       float64   `json:"firstWeight"`
	LatestWeight      float64   `json:"latestWeight"`
	TotalChange       float64   `json:"totalChange"`
	AverageWeight     float64   `json:"averageWeight"`
}

type Analyzer struct {
	repo measurementsRepo
}

func NewAnalyzer(repo measurementsRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// Trends reports weight and waist statistics over the trailing window
// of the given number of days. Returns ErrNoData for an empty window.
func (a *Analyzer) Trends(ctx context.Context, days int) (_ *TrendsReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.measurements.trends")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("days", days))

	from := time.Now().AddDate(0, 0, -days)
	series, err := a.repo.List(ctx, ListParams{From: &from})
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, ErrNoData
	}

	report := &TrendsReport{
		Count:     len(series),
		FirstDate: series[0].Date,
		LastDate:  series[len(series)-1].Date,
	}

	weights := make([]float64, 0, len(series))
	var waists []float64
	for _, m := range series {
		weights = append(weights, m.WeightPounds)
		if m.WaistInches != nil {
			waists = append(waists, *m.WaistInches)
		}
	}

	report.Weight = seriesStats(weights)
	if len(waists) > 0 {
		waistStats := seriesStats(waists)
		report.Waist = &waistStats
	}

	return report, nil
}

// OverallStatistics compares the very first measurement against the
// latest one over the full history, ignoring any window.
func (a *Analyzer) OverallStatistics(ctx context.Context) (_ *OverallStatistics, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.measurements.overall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	series, err := a.repo.List(ctx, ListParams{})
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, ErrNoData
	}

	first := series[0]
	latest := series[len(series)-1]

	var weightSum float64
	for _, m := range series {
		weightSum += m.WeightPounds
	}

	return &OverallStatistics{
		TotalMeasurements: len(series),
		FirstDate:         first.Date,
		LatestDate:        latest.Date,
		FirstWeight:       first.WeightPounds,
		LatestWeight:      latest.WeightPounds,
		TotalChange:       latest.WeightPounds - first.WeightPounds,
		AverageWeight:     weightSum / float64(len(series)),
	}, nil
}

// seriesStats expects values ordered by date ascending.
func seriesStats(values []float64) DimensionStats {
	stats := DimensionStats{
		Current: values[len(values)-1],
		Change:  values[len(values)-1] - values[0],
		Min:     values[0],
		Max:     values[0],
	}

	var sum float64
	for _, v := range values {
		sum += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Average = sum / float64(len(values))

	return stats
}
