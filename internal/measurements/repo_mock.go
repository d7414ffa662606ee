package measurements

import (
	"context"
	"sort"
	"time"
)

type repoMock struct {
	measurements map[int]*BodyMeasurement
	nextID       int
}

func NewMockMeasurementsRepo() *repoMock {
	return &repoMock{
		measurements: make(map[int]*BodyMeasurement),
		nextID:       1,
	}
}

func (r *repoMock) Add(_ context.Context, measurement BodyMeasurement) (*BodyMeasurement, error) {
	measurement.DeriveMetrics()
	measurement.ID = r.nextID
	measurement.CreatedAt = time.Now()
	measurement.UpdatedAt = measurement.CreatedAt
	r.nextID++
	r.measurements[measurement.ID] = &measurement
	return &measurement, nil
}

func (r *repoMock) Get(_ context.Context, id int) (*BodyMeasurement, error) {
	measurement, ok := r.measurements[id]
	if !ok {
		return nil, ErrMeasurementNotFound
	}
	return measurement, nil
}

func (r *repoMock) GetByDate(_ context.Context, day time.Time) (*BodyMeasurement, error) {
	var found *BodyMeasurement
	for _, m := range r.measurements {
		if sameDay(m.Date, day) {
			if found == nil || m.Date.After(found.Date) {
				found = m
			}
		}
	}
	if found == nil {
		return nil, ErrMeasurementNotFound
	}
	return found, nil
}

func (r *repoMock) Latest(_ context.Context) (*BodyMeasurement, error) {
	var latest *BodyMeasurement
	for _, m := range r.measurements {
		if latest == nil || m.Date.After(latest.Date) {
			latest = m
		}
	}
	if latest == nil {
		return nil, ErrMeasurementNotFound
	}
	return latest, nil
}

func (r *repoMock) List(_ context.Context, params ListParams) ([]BodyMeasurement, error) {
	measurements := make([]BodyMeasurement, 0, len(r.measurements))
	for _, m := range r.measurements {
		if params.From != nil && m.Date.Before(*params.From) {
			continue
		}
		if params.To != nil && m.Date.After(*params.To) {
			continue
		}
		measurements = append(measurements, *m)
	}
	sort.Slice(measurements, func(i, j int) bool {
		return measurements[i].Date.Before(measurements[j].Date)
	})
	return measurements, nil
}

func (r *repoMock) Update(ctx context.Context, params UpdateParams) (*BodyMeasurement, error) {
	measurement, err := r.Get(ctx, params.ID)
	if err != nil {
		return nil, err
	}
	if params.Date != nil {
		measurement.Date = *params.Date
	}
	if params.WeightPounds != nil {
		measurement.WeightPounds = *params.WeightPounds
	}
	if params.HeightInches != nil {
		measurement.HeightInches = params.HeightInches
	}
	if params.WaistInches != nil {
		measurement.WaistInches = params.WaistInches
	}
	if params.NeckInches != nil {
		measurement.NeckInches = params.NeckInches
	}
	if params.IsMale != nil {
		measurement.IsMale = *params.IsMale
	}
	if params.Notes != nil {
		measurement.Notes = *params.Notes
	}
	measurement.DeriveMetrics()
	measurement.UpdatedAt = time.Now()
	return measurement, nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	if _, ok := r.measurements[id]; !ok {
		return ErrMeasurementNotFound
	}
	delete(r.measurements, id)
	return nil
}

func sameDay(a, b time.Time) bool {
	aYear, aMonth, aDay := a.Date()
	bYear, bMonth, bDay := b.Date()
	return aYear == bYear && aMonth == bMonth && aDay == bDay
}
