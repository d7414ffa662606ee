package goals

import "time"

type Goal struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	GoalType     string     `json:"goalType"`
	TargetValue  float64    `json:"targetValue"`
	CurrentValue *float64   `json:"currentValue,omitempty"`
	Unit         string     `json:"unit"`
	StartDate    time.Time  `json:"startDate"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
	IsCompleted  bool       `json:"isCompleted"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
