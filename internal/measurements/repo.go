package measurements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrMeasurementNotFound = errors.New("measurement not found")

type ListParams struct {
	From *time.Time
	To   *time.Time
}

type UpdateParams struct {
	ID           int
	Date         *time.Time
	WeightPounds *float64
	HeightInches *float64
	WaistInches  *float64
	NeckInches   *float64
	IsMale       *bool
	Notes        *string
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, measurement BodyMeasurement) (_ *BodyMeasurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	measurement.DeriveMetrics()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO body_measurement
				(date, weight_pounds, height_inches, waist_inches, neck_inches, bmi, body_fat_percentage, is_male, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at, updated_at;`,
		measurement.Date, measurement.WeightPounds,
		measurement.HeightInches, measurement.WaistInches, measurement.NeckInches,
		measurement.BMI, measurement.BodyFatPercentage,
		measurement.IsMale, measurement.Notes,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	if err := rows.Scan(&measurement.ID, &measurement.CreatedAt, &measurement.UpdatedAt); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("measurement.id", measurement.ID))

	return &measurement, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *BodyMeasurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, date, weight_pounds, height_inches, waist_inches, neck_inches,
				bmi, body_fat_percentage, is_male, COALESCE(notes, ''), created_at, updated_at
			FROM body_measurement
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	measurements, err := r.rows2measurements(rows)
	if err != nil {
		return nil, err
	}

	if len(measurements) != 1 {
		return nil, ErrMeasurementNotFound
	}

	return &measurements[0], nil
}

// GetByDate returns the last measurement taken on the given calendar day,
// the time of day part of the argument is ignored.
func (r *Repo) GetByDate(ctx context.Context, day time.Time) (_ *BodyMeasurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.getbydate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", day.Format(time.DateOnly)))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, date, weight_pounds, height_inches, waist_inches, neck_inches,
				bmi, body_fat_percentage, is_male, COALESCE(notes, ''), created_at, updated_at
			FROM body_measurement
			WHERE date::date = $1::date
			ORDER BY date DESC
			LIMIT 1;`,
		day,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	measurements, err := r.rows2measurements(rows)
	if err != nil {
		return nil, err
	}

	if len(measurements) != 1 {
		return nil, ErrMeasurementNotFound
	}

	return &measurements[0], nil
}

// Latest returns the most recent measurement on record.
func (r *Repo) Latest(ctx context.Context) (_ *BodyMeasurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, date, weight_pounds, height_inches, waist_inches, neck_inches,
				bmi, body_fat_percentage, is_male, COALESCE(notes, ''), created_at, updated_at
			FROM body_measurement
			ORDER BY date DESC
			LIMIT 1;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	measurements, err := r.rows2measurements(rows)
	if err != nil {
		return nil, err
	}

	if len(measurements) != 1 {
		return nil, ErrMeasurementNotFound
	}

	return &measurements[0], nil
}

// List returns measurements in the given range ordered by date ascending.
// Nil range boundaries are open ended.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []BodyMeasurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, date, weight_pounds, height_inches, waist_inches, neck_inches,
				bmi, body_fat_percentage, is_male, COALESCE(notes, ''), created_at, updated_at
			FROM body_measurement
				WHERE ($1::timestamptz IS NULL OR date >= $1)
				AND ($2::timestamptz IS NULL OR date <= $2)
			ORDER BY date ASC;`,
		params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	measurements, err := r.rows2measurements(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2measurements: %w", err)
	}
	return measurements, nil
}

// Update applies the non-nil fields of params to the stored measurement
// and recomputes the derived metrics.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (_ *BodyMeasurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", params.ID))

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

	rows, err := r.db.Query(
		ctx,
		`UPDATE body_measurement SET
				date = $1, weight_pounds = $2, height_inches = $3, waist_inches = $4, neck_inches = $5,
				bmi = $6, body_fat_percentage = $7, is_male = $8, notes = $9, updated_at = now()
			WHERE id = $10
			RETURNING updated_at;`,
		measurement.Date, measurement.WeightPounds,
		measurement.HeightInches, measurement.WaistInches, measurement.NeckInches,
		measurement.BMI, measurement.BodyFatPercentage,
		measurement.IsMale, measurement.Notes,
		measurement.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, ErrMeasurementNotFound
	}

	if err := rows.Scan(&measurement.UpdatedAt); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	return measurement, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM body_measurement WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMeasurementNotFound
	}
	return nil
}

func (r *Repo) rows2measurements(rows pgx.Rows) ([]BodyMeasurement, error) {
	var measurements []BodyMeasurement
	for rows.Next() {
		var m BodyMeasurement
		if err := rows.Scan(
			&m.ID, &m.Date, &m.WeightPounds,
			&m.HeightInches, &m.WaistInches, &m.NeckInches,
			&m.BMI, &m.BodyFatPercentage,
			&m.IsMale, &m.Notes, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		measurements = append(measurements, m)
	}

	if measurements == nil {
		measurements = make([]BodyMeasurement, 0)
	}

	return measurements, nil
}
