package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/impulsoapp/impulso/internal/domain"
	"github.com/impulsoapp/impulso/internal/repository"
	"github.com/impulsoapp/impulso/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestGoal(t *testing.T, db *sql.DB) *domain.Goal {
	t.Helper()
	userID := testutil.NewTestUser(t, db)
	goal := testutil.NewTestGoal(userID, "Objetivo de prueba")
	require.NoError(t, repository.NewSQLiteGoalRepo(db).Create(context.Background(), goal))
	return goal
}

func pendingChallenge(goalID, day string) *domain.Challenge {
	return &domain.Challenge{
		GoalID:  goalID,
		Day:     day,
		Kind:    "practice",
		Minutes: 15,
		Text:    "Practica 15 minutos",
		Status:  domain.ChallengePending,
	}
}

func TestChallengeRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteChallengeRepo(db)
	ctx := context.Background()
	goal := createTestGoal(t, db)

	c := pendingChallenge(goal.ID, "2026-09-01")
	require.NoError(t, repo.Create(ctx, c))
	assert.NotEmpty(t, c.ID)

	fetched, err := repo.GetByGoalAndDay(ctx, goal.ID, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, c.ID, fetched.ID)
	assert.Equal(t, domain.ChallengePending, fetched.Status)
	assert.Equal(t, "Practica 15 minutos", fetched.Text)
}

func TestChallengeRepo_SameDayInsertIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteChallengeRepo(db)
	ctx := context.Background()
	goal := createTestGoal(t, db)

	first := pendingChallenge(goal.ID, "2026-09-01")
	require.NoError(t, repo.Create(ctx, first))

	second := pendingChallenge(goal.ID, "2026-09-01")
	second.Text = "Otro texto"
	require.NoError(t, repo.Create(ctx, second))

	// The stored row wins; no duplicate was created.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Practica 15 minutos", second.Text)

	list, err := repo.ListByGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestChallengeRepo_DifferentDaysAreSeparateRows(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteChallengeRepo(db)
	ctx := context.Background()
	goal := createTestGoal(t, db)

	require.NoError(t, repo.Create(ctx, pendingChallenge(goal.ID, "2026-09-01")))
	require.NoError(t, repo.Create(ctx, pendingChallenge(goal.ID, "2026-09-02")))

	list, err := repo.ListByGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "2026-09-01", list[0].Day)
	assert.Equal(t, "2026-09-02", list[1].Day)
}

func TestChallengeRepo_DefaultsStatusToPending(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteChallengeRepo(db)
	ctx := context.Background()
	goal := createTestGoal(t, db)

	c := pendingChallenge(goal.ID, "2026-09-01")
	c.Status = ""
	require.NoError(t, repo.Create(ctx, c))
	assert.Equal(t, domain.ChallengePending, c.Status)
}

func TestChallengeRepo_RequiresGoalAndDay(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteChallengeRepo(db)
	ctx := context.Background()
	goal := createTestGoal(t, db)

	assert.Error(t, repo.Create(ctx, pendingChallenge("", "2026-09-01")))
	assert.Error(t, repo.Create(ctx, pendingChallenge(goal.ID, "")))
}

func TestChallengeRepo_UnknownGoalFailsForeignKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteChallengeRepo(db)

	err := repo.Create(context.Background(), pendingChallenge("no-such-goal", "2026-09-01"))
	assert.Error(t, err)
}

func TestChallengeRepo_GetByGoalAndDay_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteChallengeRepo(db)
	goal := createTestGoal(t, db)

	_, err := repo.GetByGoalAndDay(context.Background(), goal.ID, "2026-09-01")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
