package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS body_measurement (
	id                  SERIAL PRIMARY KEY,
	date                TIMESTAMPTZ NOT NULL DEFAULT now(),
	weight_pounds       DOUBLE PRECISION NOT NULL CHECK (weight_pounds > 0),
	height_inches       DOUBLE PRECISION CHECK (height_inches > 0),
	waist_inches        DOUBLE PRECISION CHECK (waist_inches > 0),
	neck_inches         DOUBLE PRECISION CHECK (neck_inches > 0),
	bmi                 DOUBLE PRECISION,
	body_fat_percentage DOUBLE PRECISION,
	is_male             BOOLEAN NOT NULL DEFAULT TRUE,
	notes               TEXT,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_body_measurement_date ON body_measurement(date);

CREATE TABLE IF NOT EXISTS exercise (
	id         SERIAL PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	category   TEXT NOT NULL,
	is_active  BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS workout (
	id         SERIAL PRIMARY KEY,
	date       TIMESTAMPTZ NOT NULL DEFAULT now(),
	notes      TEXT,
	status     TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_workout_date ON workout(date);

CREATE TABLE IF NOT EXISTS workout_exercise (
	id          SERIAL PRIMARY KEY,
	workout_id  INT NOT NULL REFERENCES workout(id) ON DELETE CASCADE,
	exercise_id INT NOT NULL REFERENCES exercise(id),
	sets_data   JSONB NOT NULL,
	notes       TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_workout_exercise_workout_id ON workout_exercise(workout_id);
CREATE INDEX IF NOT EXISTS idx_workout_exercise_exercise_id ON workout_exercise(exercise_id);

CREATE TABLE IF NOT EXISTS daily_activity (
	id              SERIAL PRIMARY KEY,
	date            DATE NOT NULL UNIQUE,
	steps           INT CHECK (steps >= 0),
	walk_yes_no     BOOLEAN,
	mobility_yes_no BOOLEAN,
	notes           TEXT,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS goal (
	id            SERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	description   TEXT,
	goal_type     TEXT NOT NULL,
	target_value  DOUBLE PRECISION NOT NULL,
	current_value DOUBLE PRECISION,
	unit          TEXT NOT NULL,
	start_date    TIMESTAMPTZ NOT NULL DEFAULT now(),
	target_date   TIMESTAMPTZ,
	is_completed  BOOLEAN NOT NULL DEFAULT FALSE,
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate creates all tables and indexes if not present. The service is
// local-first with a single writer, so a simple idempotent bootstrap on
// startup is enough, no migration tooling needed.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
