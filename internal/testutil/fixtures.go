package testutil

import (
	"github.com/impulsoapp/impulso/internal/domain"
)

// Goal options
type GoalOption func(*domain.Goal)

func WithCategory(c domain.CategoryID) GoalOption {
	return func(g *domain.Goal) {
		g.Category = c
	}
}

func WithMinutes(m int) GoalOption {
	return func(g *domain.Goal) {
		g.MinutesPerDay = m
	}
}

func WithTargetMetric(kg int) GoalOption {
	return func(g *domain.Goal) {
		g.TargetMetric = &kg
	}
}

func WithDeadlineWeeks(w int) GoalOption {
	return func(g *domain.Goal) {
		g.DeadlineWeeks = &w
	}
}

func WithActive(active bool) GoalOption {
	return func(g *domain.Goal) {
		g.Active = active
	}
}

// NewTestGoal builds an unpersisted goal with creation defaults. The id is
// left empty so repository Create assigns it.
func NewTestGoal(userID, title string, opts ...GoalOption) *domain.Goal {
	g := domain.NewGoal(userID, title, domain.CategoryOtro, domain.DefaultMinutesPerDay)
	for _, opt := range opts {
		opt(g)
	}
	return g
}
