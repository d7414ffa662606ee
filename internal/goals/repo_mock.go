package goals

import (
	"context"
	"sort"
	"time"
)

type repoMock struct {
	goals  map[int]*Goal
	nextID int
}

func NewMockGoalsRepo() *repoMock {
	return &repoMock{
		goals:  make(map[int]*Goal),
		nextID: 1,
	}
}

func (r *repoMock) Add(_ context.Context, goal Goal) (*Goal, error) {
	goal.ID = r.nextID
	goal.IsActive = true
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = goal.CreatedAt
	r.nextID++
	r.goals[goal.ID] = &goal
	return &goal, nil
}

func (r *repoMock) Get(_ context.Context, id int) (*Goal, error) {
	goal, ok := r.goals[id]
	if !ok {
		return nil, ErrGoalNotFound
	}
	return goal, nil
}

func (r *repoMock) List(_ context.Context, onlyActive bool) ([]Goal, error) {
	goals := make([]Goal, 0, len(r.goals))
	for _, g := range r.goals {
		if onlyActive && !g.IsActive {
			continue
		}
		goals = append(goals, *g)
	}
	sort.Slice(goals, func(i, j int) bool {
		return goals[i].StartDate.After(goals[j].StartDate)
	})
	return goals, nil
}

func (r *repoMock) Update(ctx context.Context, goal *Goal) error {
	if _, err := r.Get(ctx, goal.ID); err != nil {
		return err
	}
	goal.UpdatedAt = time.Now()
	r.goals[goal.ID] = goal
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	if _, ok := r.goals[id]; !ok {
		return ErrGoalNotFound
	}
	delete(r.goals, id)
	return nil
}
