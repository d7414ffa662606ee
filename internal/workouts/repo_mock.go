package workouts

import (
	"context"
	"sort"
	"time"
)

type exercisesRepoMock struct {
	exercises map[int]*Exercise
	nextID    int
}

func NewMockExercisesRepo() *exercisesRepoMock {
	return &exercisesRepoMock{
		exercises: make(map[int]*Exercise),
		nextID:    1,
	}
}

func (r *exercisesRepoMock) Add(_ context.Context, exercise Exercise) (*Exercise, error) {
	for _, e := range r.exercises {
		if e.Name == exercise.Name {
			return nil, ErrExerciseExists
		}
	}
	exercise.ID = r.nextID
	exercise.IsActive = true
	exercise.CreatedAt = time.Now()
	exercise.UpdatedAt = exercise.CreatedAt
	r.nextID++
	r.exercises[exercise.ID] = &exercise
	return &exercise, nil
}

func (r *exercisesRepoMock) Get(_ context.Context, id int) (*Exercise, error) {
	exercise, ok := r.exercises[id]
	if !ok {
		return nil, ErrExerciseNotFound
	}
	return exercise, nil
}

func (r *exercisesRepoMock) List(_ context.Context, onlyActive bool) ([]Exercise, error) {
	exercises := make([]Exercise, 0, len(r.exercises))
	for _, e := range r.exercises {
		if onlyActive && !e.IsActive {
			continue
		}
		exercises = append(exercises, *e)
	}
	sort.Slice(exercises, func(i, j int) bool {
		return exercises[i].Name < exercises[j].Name
	})
	return exercises, nil
}

func (r *exercisesRepoMock) Update(ctx context.Context, exercise *Exercise) error {
	if _, err := r.Get(ctx, exercise.ID); err != nil {
		return err
	}
	r.exercises[exercise.ID] = exercise
	return nil
}

func (r *exercisesRepoMock) Deactivate(ctx context.Context, id int) error {
	exercise, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	exercise.IsActive = false
	return nil
}

type workoutsRepoMock struct {
	exercisesRepo *exercisesRepoMock
	workouts      map[int]*Workout
	nextID        int
	nextChildID   int
}

func NewMockWorkoutsRepo(exercisesRepo *exercisesRepoMock) *workoutsRepoMock {
	return &workoutsRepoMock{
		exercisesRepo: exercisesRepo,
		workouts:      make(map[int]*Workout),
		nextID:        1,
		nextChildID:   1,
	}
}

func (r *workoutsRepoMock) Add(ctx context.Context, workout Workout) (*Workout, error) {
	workout.ID = r.nextID
	workout.CreatedAt = time.Now()
	workout.UpdatedAt = workout.CreatedAt
	r.nextID++
	for i := range workout.Exercises {
		we := &workout.Exercises[i]
		we.ID = r.nextChildID
		we.WorkoutID = workout.ID
		we.WorkoutDate = workout.Date
		r.nextChildID++
		if exercise, err := r.exercisesRepo.Get(ctx, we.ExerciseID); err == nil {
			we.ExerciseName = exercise.Name
		}
	}
	r.workouts[workout.ID] = &workout
	return &workout, nil
}

func (r *workoutsRepoMock) Get(_ context.Context, id int) (*Workout, error) {
	workout, ok := r.workouts[id]
	if !ok {
		return nil, ErrWorkoutNotFound
	}
	return workout, nil
}

func (r *workoutsRepoMock) ListRange(_ context.Context, params ListParams) ([]Workout, error) {
	workouts := make([]Workout, 0, len(r.workouts))
	for _, w := range r.workouts {
		if params.From != nil && w.Date.Before(*params.From) {
			continue
		}
		if params.To != nil && w.Date.After(*params.To) {
			continue
		}
		workouts = append(workouts, *w)
	}
	sort.Slice(workouts, func(i, j int) bool {
		return workouts[i].Date.Before(workouts[j].Date)
	})
	return workouts, nil
}

func (r *workoutsRepoMock) ListByDate(_ context.Context, day time.Time) ([]Workout, error) {
	workouts := make([]Workout, 0)
	for _, w := range r.workouts {
		if sameDay(w.Date, day) {
			workouts = append(workouts, *w)
		}
	}
	sort.Slice(workouts, func(i, j int) bool {
		return workouts[i].Date.Before(workouts[j].Date)
	})
	return workouts, nil
}

func (r *workoutsRepoMock) Update(ctx context.Context, params UpdateWorkoutParams) (*Workout, error) {
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
	workout.UpdatedAt = time.Now()
	return workout, nil
}

func (r *workoutsRepoMock) Delete(_ context.Context, id int) error {
	if _, ok := r.workouts[id]; !ok {
		return ErrWorkoutNotFound
	}
	delete(r.workouts, id)
	return nil
}

func (r *workoutsRepoMock) ExerciseOccurrences(_ context.Context, exerciseID int, from *time.Time) ([]WorkoutExercise, error) {
	var occurrences []WorkoutExercise
	for _, w := range r.workouts {
		if from != nil && w.Date.Before(*from) {
			continue
		}
		for _, we := range w.Exercises {
			if we.ExerciseID == exerciseID {
				occurrences = append(occurrences, we)
			}
		}
	}
	sort.Slice(occurrences, func(i, j int) bool {
		return occurrences[i].WorkoutDate.Before(occurrences[j].WorkoutDate)
	})
	return occurrences, nil
}

type activitiesRepoMock struct {
	activities map[int]*DailyActivity
	nextID     int
}

func NewMockActivitiesRepo() *activitiesRepoMock {
	return &activitiesRepoMock{
		activities: make(map[int]*DailyActivity),
		nextID:     1,
	}
}

func (r *activitiesRepoMock) Upsert(ctx context.Context, activity DailyActivity) (*DailyActivity, error) {
	existing, err := r.GetByDate(ctx, activity.Date)
	if err == nil {
		if activity.Steps != nil {
			existing.Steps = activity.Steps
		}
		if activity.WalkYesNo != nil {
			existing.WalkYesNo = activity.WalkYesNo
		}
		if activity.MobilityYesNo != nil {
			existing.MobilityYesNo = activity.MobilityYesNo
		}
		if activity.Notes != nil {
			existing.Notes = activity.Notes
		}
		existing.UpdatedAt = time.Now()
		return existing, nil
	}
	activity.ID = r.nextID
	activity.CreatedAt = time.Now()
	activity.UpdatedAt = activity.CreatedAt
	r.nextID++
	r.activities[activity.ID] = &activity
	return &activity, nil
}

func (r *activitiesRepoMock) GetByDate(_ context.Context, day time.Time) (*DailyActivity, error) {
	for _, a := range r.activities {
		if sameDay(a.Date, day) {
			return a, nil
		}
	}
	return nil, ErrActivityNotFound
}

func (r *activitiesRepoMock) ListRange(_ context.Context, params ListParams) ([]DailyActivity, error) {
	activities := make([]DailyActivity, 0, len(r.activities))
	for _, a := range r.activities {
		if params.From != nil && a.Date.Before(*params.From) {
			continue
		}
		if params.To != nil && a.Date.After(*params.To) {
			continue
		}
		activities = append(activities, *a)
	}
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Date.Before(activities[j].Date)
	})
	return activities, nil
}

func (r *activitiesRepoMock) Delete(_ context.Context, id int) error {
	if _, ok := r.activities[id]; !ok {
		return ErrActivityNotFound
	}
	delete(r.activities, id)
	return nil
}

func sameDay(a, b time.Time) bool {
	aYear, aMonth, aDay := a.Date()
	bYear, bMonth, bDay := b.Date()
	return aYear == bYear && aMonth == bMonth && aDay == bDay
}
