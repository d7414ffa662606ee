package workouts

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

var ErrActivityNotFound = errors.New("daily activity not found")

type ActivitiesRepo struct {
	db *pgxpool.Pool
}

func NewActivitiesRepo(db *pgxpool.Pool) *ActivitiesRepo {
	return &ActivitiesRepo{
		db: db,
	}
}

// Upsert writes the activity for its calendar day. When a record for
// that day already exists the non-nil fields are merged into it, the
// rest of the row is kept as is.
func (r *ActivitiesRepo) Upsert(ctx context.Context, activity DailyActivity) (_ *DailyActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", activity.Date.Format(time.DateOnly)))

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO daily_activity (date, steps, walk_yes_no, mobility_yes_no, notes)
				VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (date) DO UPDATE SET
				steps = COALESCE(EXCLUDED.steps, daily_activity.steps),
				walk_yes_no = COALESCE(EXCLUDED.walk_yes_no, daily_activity.walk_yes_no),
				mobility_yes_no = COALESCE(EXCLUDED.mobility_yes_no, daily_activity.mobility_yes_no),
				notes = COALESCE(EXCLUDED.notes, daily_activity.notes),
				updated_at = now()
			RETURNING id, date, steps, walk_yes_no, mobility_yes_no, notes, created_at, updated_at;`,
		activity.Date, activity.Steps, activity.WalkYesNo, activity.MobilityYesNo, activity.Notes,
	)
	if err != nil {
		return nil, err
	}

	activities, err := r.rows2activities(rows)
	if err != nil {
		return nil, err
	}

	if len(activities) != 1 {
		return nil, errors.New("unexpected error [no rows next]")
	}

	span.SetAttributes(attribute.Int("activity.id", activities[0].ID))

	return &activities[0], nil
}

func (r *ActivitiesRepo) GetByDate(ctx context.Context, day time.Time) (_ *DailyActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.getbydate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", day.Format(time.DateOnly)))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, date, steps, walk_yes_no, mobility_yes_no, notes, created_at, updated_at
			FROM daily_activity
			WHERE date = $1::date;`,
		day,
	)
	if err != nil {
		return nil, err
	}

	activities, err := r.rows2activities(rows)
	if err != nil {
		return nil, err
	}

	if len(activities) != 1 {
		return nil, ErrActivityNotFound
	}

	return &activities[0], nil
}

// ListRange returns activities in the given range ordered by date
// ascending. Nil range boundaries are open ended.
func (r *ActivitiesRepo) ListRange(ctx context.Context, params ListParams) (_ []DailyActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.listrange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, date, steps, walk_yes_no, mobility_yes_no, notes, created_at, updated_at
			FROM daily_activity
				WHERE ($1::date IS NULL OR date >= $1::date)
				AND ($2::date IS NULL OR date <= $2::date)
			ORDER BY date ASC;`,
		params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return r.rows2activities(rows)
}

func (r *ActivitiesRepo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM daily_activity WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (r *ActivitiesRepo) rows2activities(rows pgx.Rows) ([]DailyActivity, error) {
	defer rows.Close()

	var activities []DailyActivity
	for rows.Next() {
		var a DailyActivity
		if err := rows.Scan(
			&a.ID, &a.Date, &a.Steps, &a.WalkYesNo, &a.MobilityYesNo, &a.Notes,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if activities == nil {
		activities = make([]DailyActivity, 0)
	}

	return activities, nil
}
