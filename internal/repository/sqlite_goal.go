package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/impulsoapp/impulso/internal/db"
	"github.com/impulsoapp/impulso/internal/domain"
)

// SQLiteGoalRepo implements GoalRepo using a SQLite database.
type SQLiteGoalRepo struct {
	db db.DBTX
}

// NewSQLiteGoalRepo creates a new SQLiteGoalRepo.
func NewSQLiteGoalRepo(conn db.DBTX) *SQLiteGoalRepo {
	return &SQLiteGoalRepo{db: conn}
}

const goalColumns = `id, user_id, title, category, minutes_per_day, level, xp, streak, hearts, active, target_metric, deadline_weeks, created_at, updated_at`

func (r *SQLiteGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	now := nowUTC()
	g.CreatedAt = now
	g.UpdatedAt = now

	query := `INSERT INTO goals (` + goalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		g.ID,
		g.UserID,
		g.Title,
		string(g.Category),
		g.MinutesPerDay,
		g.Level,
		g.XP,
		g.Streak,
		g.Hearts,
		boolToInt(g.Active),
		nullableIntToValue(g.TargetMetric),
		nullableIntToValue(g.DeadlineWeeks),
		g.CreatedAt.Format(time.RFC3339),
		g.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = ?`
	return scanGoal(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteGoalRepo) GetActiveByUser(ctx context.Context, userID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals
		WHERE user_id = ? AND active = 1 ORDER BY created_at DESC LIMIT 1`
	return scanGoal(r.db.QueryRowContext(ctx, query, userID))
}

func (r *SQLiteGoalRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		g, err := scanGoalFromRows(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}
	return goals, nil
}

func scanGoal(row *sql.Row) (*domain.Goal, error) {
	var g domain.Goal
	var categoryStr, createdAtStr, updatedAtStr string
	var activeInt int
	var targetMetric, deadlineWeeks sql.NullInt64

	err := row.Scan(
		&g.ID, &g.UserID, &g.Title, &categoryStr, &g.MinutesPerDay,
		&g.Level, &g.XP, &g.Streak, &g.Hearts, &activeInt,
		&targetMetric, &deadlineWeeks,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("goal: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning goal: %w", err)
	}
	return finishGoalScan(&g, categoryStr, activeInt, targetMetric, deadlineWeeks, createdAtStr, updatedAtStr)
}

func scanGoalFromRows(rows *sql.Rows) (*domain.Goal, error) {
	var g domain.Goal
	var categoryStr, createdAtStr, updatedAtStr string
	var activeInt int
	var targetMetric, deadlineWeeks sql.NullInt64

	err := rows.Scan(
		&g.ID, &g.UserID, &g.Title, &categoryStr, &g.MinutesPerDay,
		&g.Level, &g.XP, &g.Streak, &g.Hearts, &activeInt,
		&targetMetric, &deadlineWeeks,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning goal row: %w", err)
	}
	return finishGoalScan(&g, categoryStr, activeInt, targetMetric, deadlineWeeks, createdAtStr, updatedAtStr)
}

func finishGoalScan(g *domain.Goal, categoryStr string, activeInt int, targetMetric, deadlineWeeks sql.NullInt64, createdAtStr, updatedAtStr string) (*domain.Goal, error) {
	g.Category = domain.CategoryID(categoryStr)
	g.Active = intToBool(activeInt)
	g.TargetMetric = nullableIntFromSQL(targetMetric)
	g.DeadlineWeeks = nullableIntFromSQL(deadlineWeeks)

	var parseErr error
	g.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	g.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return g, nil
}
