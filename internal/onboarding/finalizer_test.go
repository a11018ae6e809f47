package onboarding

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/impulsoapp/impulso/internal/domain"
	"github.com/impulsoapp/impulso/internal/planner"
	"github.com/impulsoapp/impulso/internal/repository"
	"github.com/impulsoapp/impulso/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fixedSelector always proposes the same task.
func fixedSelector(domain.CategoryID, int, int, []planner.Task) *planner.Task {
	return &planner.Task{Kind: "practice", Minutes: 15, Text: "Practica 15 minutos"}
}

// emptySelector has no task for today.
func emptySelector(domain.CategoryID, int, int, []planner.Task) *planner.Task {
	return nil
}

// failingGoalRepo rejects every insert.
type failingGoalRepo struct {
	repository.GoalRepo
}

func (failingGoalRepo) Create(context.Context, *domain.Goal) error {
	return fmt.Errorf("backend unreachable")
}

// failingChallengeRepo rejects inserts but delegates reads.
type failingChallengeRepo struct {
	repository.ChallengeRepo
}

func (failingChallengeRepo) Create(context.Context, *domain.Challenge) error {
	return fmt.Errorf("backend unreachable")
}

// countingChallengeRepo records how many inserts were attempted.
type countingChallengeRepo struct {
	repository.ChallengeRepo
	creates int
}

func (r *countingChallengeRepo) Create(ctx context.Context, c *domain.Challenge) error {
	r.creates++
	return r.ChallengeRepo.Create(ctx, c)
}

type finalizerEnv struct {
	db         *sql.DB
	goals      *repository.SQLiteGoalRepo
	challenges *repository.SQLiteChallengeRepo
	userID     string
}

func newFinalizerEnv(t *testing.T) finalizerEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return finalizerEnv{
		db:         database,
		goals:      repository.NewSQLiteGoalRepo(database),
		challenges: repository.NewSQLiteChallengeRepo(database),
		userID:     testutil.NewTestUser(t, database),
	}
}

func saludDraft() Draft {
	return NewDraft().Advance(domain.CategorySalud).SetTargetMetric(5).SetDeadline(4)
}

func TestFinalize_HealthShortcutScenario(t *testing.T) {
	env := newFinalizerEnv(t)
	f := NewFinalizer(env.goals, env.challenges, fixedSelector, fixedClock, nil)
	ctx := context.Background()

	res, err := f.Finalize(ctx, saludDraft(), env.userID)
	require.NoError(t, err)
	require.Equal(t, Completed, res.Outcome)

	goal := res.Goal
	assert.Equal(t, "Perder 5kg", goal.Title)
	assert.Equal(t, domain.CategorySalud, goal.Category)
	assert.Equal(t, 15, goal.MinutesPerDay, "default minutes")
	assert.Equal(t, 1, goal.Level)
	assert.Equal(t, 0, goal.XP)
	assert.Equal(t, 0, goal.Streak)
	assert.Equal(t, 3, goal.Hearts)
	assert.True(t, goal.Active)
	require.NotNil(t, goal.TargetMetric)
	assert.Equal(t, 5, *goal.TargetMetric)
	require.NotNil(t, goal.DeadlineWeeks)
	assert.Equal(t, 4, *goal.DeadlineWeeks)

	// The persisted row round-trips the same fields.
	stored, err := env.goals.GetByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.Title, stored.Title)
	require.NotNil(t, stored.TargetMetric)
	assert.Equal(t, 5, *stored.TargetMetric)

	// Challenge references the goal, dated today, pending.
	require.NotNil(t, res.Challenge)
	assert.Equal(t, goal.ID, res.Challenge.GoalID)
	assert.Equal(t, "2026-09-01", res.Challenge.Day)
	assert.Equal(t, domain.ChallengePending, res.Challenge.Status)
}

func TestFinalize_OptionalFieldsOmittedWhenUnset(t *testing.T) {
	env := newFinalizerEnv(t)
	f := NewFinalizer(env.goals, env.challenges, fixedSelector, fixedClock, nil)
	ctx := context.Background()

	draft := NewDraft().
		Advance(domain.CategoryIdioma).
		SetTitle("Aprender inglés").
		SetMinutes(30).
		SetDeadline(12)

	res, err := f.Finalize(ctx, draft, env.userID)
	require.NoError(t, err)
	assert.Nil(t, res.Goal.TargetMetric)

	// The column itself is NULL, not a zero value.
	var isNull bool
	require.NoError(t, env.db.QueryRow(
		`SELECT target_metric IS NULL FROM goals WHERE id = ?`, res.Goal.ID,
	).Scan(&isNull))
	assert.True(t, isNull)
}

func TestFinalize_PreconditionsBlockExecution(t *testing.T) {
	env := newFinalizerEnv(t)
	f := NewFinalizer(env.goals, env.challenges, fixedSelector, fixedClock, nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		draft  Draft
		userID string
	}{
		{"missing user", saludDraft(), ""},
		{"missing title", NewDraft().Advance(domain.CategoryOtro).SetDeadline(2), env.userID},
		{"missing category", NewDraft().SetTitle("x").SetDeadline(2), env.userID},
		{"missing deadline", NewDraft().Advance(domain.CategoryOtro).SetTitle("x"), env.userID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.Finalize(ctx, tc.draft, tc.userID)
			assert.Error(t, err)
		})
	}

	// Nothing was ever written.
	var count int
	require.NoError(t, env.db.QueryRow(`SELECT COUNT(*) FROM goals`).Scan(&count))
	assert.Zero(t, count)
	assert.False(t, f.Busy())
}

func TestFinalize_GoalInsertFailureAbortsEverything(t *testing.T) {
	env := newFinalizerEnv(t)
	counting := &countingChallengeRepo{ChallengeRepo: env.challenges}
	f := NewFinalizer(failingGoalRepo{}, counting, fixedSelector, fixedClock, nil)

	res, err := f.Finalize(context.Background(), saludDraft(), env.userID)
	require.Error(t, err)
	assert.Nil(t, res)

	var ferr *FinalizeError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, StageGoal, ferr.Stage)

	assert.Zero(t, counting.creates, "no challenge insert after goal failure")
	assert.False(t, f.Busy(), "busy released on the failure path")
}

func TestFinalize_NoTaskTodayIsSuccess(t *testing.T) {
	env := newFinalizerEnv(t)
	counting := &countingChallengeRepo{ChallengeRepo: env.challenges}
	f := NewFinalizer(env.goals, counting, emptySelector, fixedClock, nil)

	res, err := f.Finalize(context.Background(), saludDraft(), env.userID)
	require.NoError(t, err)
	assert.Equal(t, Completed, res.Outcome)
	assert.Nil(t, res.Challenge)
	assert.Zero(t, counting.creates)
}

func TestFinalize_ChallengeFailureIsWarningNotRollback(t *testing.T) {
	env := newFinalizerEnv(t)
	f := NewFinalizer(env.goals, failingChallengeRepo{}, fixedSelector, fixedClock, nil)
	ctx := context.Background()

	res, err := f.Finalize(ctx, saludDraft(), env.userID)
	require.NoError(t, err, "goal exists, the overall operation completed")
	require.NotNil(t, res)
	assert.Equal(t, CompletedWithWarning, res.Outcome)
	assert.Nil(t, res.Challenge)

	var ferr *FinalizeError
	require.ErrorAs(t, res.Warning, &ferr)
	assert.Equal(t, StageChallenge, ferr.Stage)

	// The goal row survives.
	stored, err := env.goals.GetByID(ctx, res.Goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Perder 5kg", stored.Title)
	assert.False(t, f.Busy())
}

// blockingGoalRepo parks Create until released so tests can observe the
// in-flight state.
type blockingGoalRepo struct {
	inner   repository.GoalRepo
	entered chan struct{}
	release chan struct{}
}

func (b *blockingGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	close(b.entered)
	<-b.release
	return b.inner.Create(ctx, g)
}

func (b *blockingGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	return b.inner.GetByID(ctx, id)
}

func (b *blockingGoalRepo) GetActiveByUser(ctx context.Context, userID string) (*domain.Goal, error) {
	return b.inner.GetActiveByUser(ctx, userID)
}

func (b *blockingGoalRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Goal, error) {
	return b.inner.ListByUser(ctx, userID)
}

func TestFinalize_BusyGuardsReentry(t *testing.T) {
	env := newFinalizerEnv(t)
	blocking := &blockingGoalRepo{
		inner:   env.goals,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	f := NewFinalizer(blocking, env.challenges, fixedSelector, fixedClock, nil)
	ctx := context.Background()

	assert.False(t, f.Busy(), "not busy before the call")

	done := make(chan error, 1)
	go func() {
		_, err := f.Finalize(ctx, saludDraft(), env.userID)
		done <- err
	}()

	<-blocking.entered
	assert.True(t, f.Busy(), "busy strictly during the call")

	// A second finalize while in flight is rejected, not queued.
	_, err := f.Finalize(ctx, saludDraft(), env.userID)
	assert.ErrorIs(t, err, ErrBusy)

	close(blocking.release)
	require.NoError(t, <-done)
	assert.False(t, f.Busy(), "busy released after the call")
}

func TestFinalize_SameDayRerunDoesNotDuplicateChallenge(t *testing.T) {
	env := newFinalizerEnv(t)
	f := NewFinalizer(env.goals, env.challenges, fixedSelector, fixedClock, nil)
	ctx := context.Background()

	res, err := f.Finalize(ctx, saludDraft(), env.userID)
	require.NoError(t, err)

	// Re-inserting the same goal's challenge on the same day is a no-op.
	dup := &domain.Challenge{
		GoalID:  res.Goal.ID,
		Day:     res.Challenge.Day,
		Kind:    "practice",
		Minutes: 15,
		Text:    "Practica 15 minutos",
		Status:  domain.ChallengePending,
	}
	require.NoError(t, env.challenges.Create(ctx, dup))
	assert.Equal(t, res.Challenge.ID, dup.ID, "existing row surfaced")

	list, err := env.challenges.ListByGoal(ctx, res.Goal.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestFinalize_SelectorSeesColdStart(t *testing.T) {
	env := newFinalizerEnv(t)

	var gotCategory domain.CategoryID
	var gotLevel, gotMinutes int
	var gotHistory []planner.Task
	spy := func(category domain.CategoryID, level, minutesPerDay int, history []planner.Task) *planner.Task {
		gotCategory, gotLevel, gotMinutes, gotHistory = category, level, minutesPerDay, history
		return nil
	}

	f := NewFinalizer(env.goals, env.challenges, spy, fixedClock, nil)
	draft := NewDraft().Advance(domain.CategoryEnfoque).SetTitle("Estudiar").SetMinutes(10).SetDeadline(1)

	_, err := f.Finalize(context.Background(), draft, env.userID)
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryEnfoque, gotCategory)
	assert.Equal(t, 1, gotLevel)
	assert.Equal(t, 10, gotMinutes)
	assert.Empty(t, gotHistory)
}

func TestFinalizeError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &FinalizeError{Stage: StageGoal, Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "goal insert failed")
}
