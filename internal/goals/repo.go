package goals

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fittracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrGoalNotFound = errors.New("goal not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, goal Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO goal
				(name, description, goal_type, target_value, current_value, unit, start_date, target_date)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, is_completed, is_active, created_at, updated_at;`,
		goal.Name, goal.Description, goal.GoalType,
		goal.TargetValue, goal.CurrentValue, goal.Unit,
		goal.StartDate, goal.TargetDate,
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

	if err := rows.Scan(&goal.ID, &goal.IsCompleted, &goal.IsActive, &goal.CreatedAt, &goal.UpdatedAt); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("goal.id", goal.ID))

	return &goal, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, name, COALESCE(description, ''), goal_type, target_value, current_value,
				unit, start_date, target_date, is_completed, is_active, created_at, updated_at
			FROM goal
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}

	goals, err := r.rows2goals(rows)
	if err != nil {
		return nil, err
	}

	if len(goals) != 1 {
		return nil, ErrGoalNotFound
	}

	return &goals[0], nil
}

func (r *Repo) List(ctx context.Context, onlyActive bool) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Bool("only-active", onlyActive))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, name, COALESCE(description, ''), goal_type, target_value, current_value,
				unit, start_date, target_date, is_completed, is_active, created_at, updated_at
			FROM goal
			WHERE ($1::boolean IS FALSE OR is_active)
			ORDER BY start_date DESC;`,
		onlyActive,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return r.rows2goals(rows)
}

func (r *Repo) Update(ctx context.Context, goal *Goal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", goal.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE goal SET
				name = $1, description = $2, goal_type = $3, target_value = $4, current_value = $5,
				unit = $6, start_date = $7, target_date = $8, is_completed = $9, is_active = $10,
				updated_at = now()
			WHERE id = $11;`,
		goal.Name, goal.Description, goal.GoalType, goal.TargetValue, goal.CurrentValue,
		goal.Unit, goal.StartDate, goal.TargetDate, goal.IsCompleted, goal.IsActive,
		goal.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM goal WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *Repo) rows2goals(rows pgx.Rows) ([]Goal, error) {
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(
			&g.ID, &g.Name, &g.Description, &g.GoalType, &g.TargetValue, &g.CurrentValue,
			&g.Unit, &g.StartDate, &g.TargetDate, &g.IsCompleted, &g.IsActive,
			&g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if goals == nil {
		goals = make([]Goal, 0)
	}

	return goals, nil
}
