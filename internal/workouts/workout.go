package workouts

import "time"

type Exercise struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Set is one performed set. Weight 0 is ambiguous between "not entered"
// and a bodyweight exercise, such sets are skipped by the progress stats.
type Set struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

type WorkoutExercise struct {
	ID           int       `json:"id"`
	WorkoutID    int       `json:"workoutId"`
	ExerciseID   int       `json:"exerciseId"`
	ExerciseName string    `json:"exerciseName,omitempty"`
	SetsData     []Set     `json:"setsData"`
	Notes        string    `json:"notes,omitempty"`
	WorkoutDate  time.Time `json:"workoutDate,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Workout struct {
	ID        int               `json:"id"`
	Date      time.Time         `json:"date"`
	Notes     string            `json:"notes,omitempty"`
	Status    string            `json:"status,omitempty"`
	Exercises []WorkoutExercise `json:"exercises"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// DailyActivity holds at most one record per calendar day. Pointer
// fields stay nil when not reported, upserts merge only reported ones.
type DailyActivity struct {
	ID            int       `json:"id"`
	Date          time.Time `json:"date"`
	Steps         *int      `json:"steps,omitempty"`
	WalkYesNo     *bool     `json:"walkYesNo,omitempty"`
	MobilityYesNo *bool     `json:"mobilityYesNo,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
