package repository

import (
	"context"
	"errors"

	"github.com/impulsoapp/impulso/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row. Callers branch on it
// with errors.Is to tell "nothing stored" apart from a real store failure.
var ErrNotFound = errors.New("not found")

// GoalRepo persists goals. Create assigns the record's identifier and
// timestamps before inserting, mirroring a store with server-assigned ids.
type GoalRepo interface {
	Create(ctx context.Context, g *domain.Goal) error
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	GetActiveByUser(ctx context.Context, userID string) (*domain.Goal, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Goal, error)
}

// ChallengeRepo persists daily challenges. Create is idempotent per
// (goal, day): inserting a second challenge for the same goal and calendar
// day is a no-op that surfaces the existing row.
type ChallengeRepo interface {
	Create(ctx context.Context, c *domain.Challenge) error
	GetByGoalAndDay(ctx context.Context, goalID, day string) (*domain.Challenge, error)
	ListByGoal(ctx context.Context, goalID string) ([]*domain.Challenge, error)
}

// UserRepo stores the local user identity rows.
type UserRepo interface {
	Create(ctx context.Context, id string) error
	First(ctx context.Context) (string, error)
	Exists(ctx context.Context, id string) (bool, error)
}
