package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type ListParams struct {
	From *time.Time
	To   *time.Time
}

type UpdateWorkoutParams struct {
	ID     int
	Date   *time.Time
	Notes  *string
	Status *string
}

type WorkoutsRepo struct {
	db *pgxpool.Pool
}

func NewWorkoutsRepo(db *pgxpool.Pool) *WorkoutsRepo {
	return &WorkoutsRepo{
		db: db,
	}
}

// Add stores a workout together with its workout exercise children
// in a single transaction.
func (r *WorkoutsRepo) Add(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err := tx.QueryRow(
		ctx,
		`INSERT INTO workout (date, notes, status)
				VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at;`,
		workout.Date, workout.Notes, workout.Status,
	).Scan(&workout.ID, &workout.CreatedAt, &workout.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	for i := range workout.Exercises {
		we := &workout.Exercises[i]
		we.WorkoutID = workout.ID

		setsJson, err := json.Marshal(we.SetsData)
		if err != nil {
			return nil, fmt.Errorf("marshal sets data: %w", err)
		}

		if err := tx.QueryRow(
			ctx,
			`INSERT INTO workout_exercise (workout_id, exercise_id, sets_data, notes)
					VALUES ($1, $2, $3, $4)
				RETURNING id, created_at, updated_at;`,
			we.WorkoutID, we.ExerciseID, setsJson, we.Notes,
		).Scan(&we.ID, &we.CreatedAt, &we.UpdatedAt); err != nil {
			return nil, fmt.Errorf("insert workout exercise: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	span.SetAttributes(attribute.Int("workout.id", workout.ID))

	return &workout, nil
}

// Get returns the workout with its exercises expanded,
// each carrying its exercise catalog name.
func (r *WorkoutsRepo) Get(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, date, COALESCE(notes, ''), COALESCE(status, ''), created_at, updated_at
			FROM workout
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, err
	}

	if len(workouts) != 1 {
		return nil, ErrWorkoutNotFound
	}

	workout := &workouts[0]
	workout.Exercises, err = r.workoutExercises(ctx, workout.ID)
	if err != nil {
		return nil, fmt.Errorf("get workout exercises: %w", err)
	}

	return workout, nil
}

// ListRange returns the workouts in the given range ordered by date
// ascending, exercises expanded. Nil range boundaries are open ended.
func (r *WorkoutsRepo) ListRange(ctx context.Context, params ListParams) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listrange")
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
		`SELECT id, date, COALESCE(notes, ''), COALESCE(status, ''), created_at, updated_at
			FROM workout
				WHERE ($1::timestamptz IS NULL OR date >= $1)
				AND ($2::timestamptz IS NULL OR date <= $2)
			ORDER BY date ASC;`,
		params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2workouts: %w", err)
	}

	for i := range workouts {
		workouts[i].Exercises, err = r.workoutExercises(ctx, workouts[i].ID)
		if err != nil {
			return nil, fmt.Errorf("get workout exercises: %w", err)
		}
	}

	return workouts, nil
}

// ListByDate returns all workouts on the given calendar day.
func (r *WorkoutsRepo) ListByDate(ctx context.Context, day time.Time) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listbydate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", day.Format(time.DateOnly)))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, date, COALESCE(notes, ''), COALESCE(status, ''), created_at, updated_at
			FROM workout
			WHERE date::date = $1::date
			ORDER BY date ASC;`,
		day,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2workouts: %w", err)
	}

	for i := range workouts {
		workouts[i].Exercises, err = r.workoutExercises(ctx, workouts[i].ID)
		if err != nil {
			return nil, fmt.Errorf("get workout exercises: %w", err)
		}
	}

	return workouts, nil
}

// Update applies the non-nil fields of params to the stored workout.
func (r *WorkoutsRepo) Update(ctx context.Context, params UpdateWorkoutParams) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", params.ID))

	workout, err := r.Get(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	if params.Date != nil {
		workout.Date = *params.Date
	}
	if params.Notes != nil {
		workout.Notes = *params.Notes
	}
	if params.Status != nil {
		workout.Status = *params.Status
	}

	if err := r.db.QueryRow(
		ctx,
		`UPDATE workout SET date = $1, notes = $2, status = $3, updated_at = now()
			WHERE id = $4
			RETURNING updated_at;`,
		workout.Date, workout.Notes, workout.Status, workout.ID,
	).Scan(&workout.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	return workout, nil
}

// Delete removes the workout, its workout exercise children go with it
// via the foreign key cascade.
func (r *WorkoutsRepo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// ExerciseOccurrences returns every workout exercise entry for the given
// catalog exercise, ordered by workout date ascending, each entry carrying
// the date of its parent workout.
func (r *WorkoutsRepo) ExerciseOccurrences(ctx context.Context, exerciseID int, from *time.Time) (_ []WorkoutExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.exerciseoccurrences")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))
	if from != nil {
		span.SetAttributes(attribute.String("from", from.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT
				we.id, we.workout_id, we.exercise_id, e.name, we.sets_data,
				COALESCE(we.notes, ''), w.date, we.created_at, we.updated_at
			FROM workout_exercise we
			JOIN workout w ON we.workout_id = w.id
			JOIN exercise e ON we.exercise_id = e.id
				WHERE we.exercise_id = $1
				AND ($2::timestamptz IS NULL OR w.date >= $2)
			ORDER BY w.date ASC;`,
		exerciseID, from,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return r.rows2workoutExercises(rows)
}

func (r *WorkoutsRepo) workoutExercises(ctx context.Context, workoutID int) ([]WorkoutExercise, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT
				we.id, we.workout_id, we.exercise_id, e.name, we.sets_data,
				COALESCE(we.notes, ''), w.date, we.created_at, we.updated_at
			FROM workout_exercise we
			JOIN workout w ON we.workout_id = w.id
			JOIN exercise e ON we.exercise_id = e.id
			WHERE we.workout_id = $1
			ORDER BY we.id ASC;`,
		workoutID,
	)
	if err != nil {
		return nil, err
	}

	return r.rows2workoutExercises(rows)
}

func (r *WorkoutsRepo) rows2workouts(rows pgx.Rows) ([]Workout, error) {
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		var w Workout
		if err := rows.Scan(&w.ID, &w.Date, &w.Notes, &w.Status, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if workouts == nil {
		workouts = make([]Workout, 0)
	}

	return workouts, nil
}

func (r *WorkoutsRepo) rows2workoutExercises(rows pgx.Rows) ([]WorkoutExercise, error) {
	defer rows.Close()

	var workoutExercises []WorkoutExercise
	for rows.Next() {
		var we WorkoutExercise
		var setsBytes []byte
		if err := rows.Scan(
			&we.ID, &we.WorkoutID, &we.ExerciseID, &we.ExerciseName, &setsBytes,
			&we.Notes, &we.WorkoutDate, &we.CreatedAt, &we.UpdatedAt,
		); err != nil {
			return nil, err
		}

		if len(setsBytes) > 0 {
			if err := json.Unmarshal(setsBytes, &we.SetsData); err != nil {
				return nil, fmt.Errorf("unmarshal sets data for workout exercise %d: %w", we.ID, err)
			}
		}
		if we.SetsData == nil {
			we.SetsData = make([]Set, 0)
		}

		workoutExercises = append(workoutExercises, we)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if workoutExercises == nil {
		workoutExercises = make([]WorkoutExercise, 0)
	}

	return workoutExercises, nil
}
