package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/impulsoapp/impulso/internal/db"
	"github.com/impulsoapp/impulso/internal/domain"
)

// SQLiteChallengeRepo implements ChallengeRepo using a SQLite database.
type SQLiteChallengeRepo struct {
	db db.DBTX
}

// NewSQLiteChallengeRepo creates a new SQLiteChallengeRepo.
func NewSQLiteChallengeRepo(conn db.DBTX) *SQLiteChallengeRepo {
	return &SQLiteChallengeRepo{db: conn}
}

const challengeColumns = `id, goal_id, day, kind, minutes, text, status, created_at`

func (r *SQLiteChallengeRepo) Create(ctx context.Context, c *domain.Challenge) error {
	if c.GoalID == "" {
		return fmt.Errorf("challenge goal id is required")
	}
	if c.Day == "" {
		return fmt.Errorf("challenge day is required")
	}
	if c.Status == "" {
		c.Status = domain.ChallengePending
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = nowUTC()

	query := `INSERT INTO challenges (` + challengeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.GoalID,
		c.Day,
		c.Kind,
		c.Minutes,
		c.Text,
		string(c.Status),
		c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		// UNIQUE(goal_id, day): a challenge already exists for this goal and
		// calendar day. Creating "again" on the same day is a no-op; surface
		// the stored row instead.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			existing, getErr := r.GetByGoalAndDay(ctx, c.GoalID, c.Day)
			if getErr != nil {
				return fmt.Errorf("inserting challenge: %w", err)
			}
			*c = *existing
			return nil
		}
		return fmt.Errorf("inserting challenge: %w", err)
	}
	return nil
}

func (r *SQLiteChallengeRepo) GetByGoalAndDay(ctx context.Context, goalID, day string) (*domain.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE goal_id = ? AND day = ?`
	return scanChallenge(r.db.QueryRowContext(ctx, query, goalID, day))
}

func (r *SQLiteChallengeRepo) ListByGoal(ctx context.Context, goalID string) ([]*domain.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE goal_id = ? ORDER BY day`
	rows, err := r.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("listing challenges: %w", err)
	}
	defer rows.Close()

	var challenges []*domain.Challenge
	for rows.Next() {
		c, err := scanChallengeFromRows(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating challenges: %w", err)
	}
	return challenges, nil
}

func scanChallenge(row *sql.Row) (*domain.Challenge, error) {
	var c domain.Challenge
	var statusStr, createdAtStr string

	err := row.Scan(&c.ID, &c.GoalID, &c.Day, &c.Kind, &c.Minutes, &c.Text, &statusStr, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("challenge: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning challenge: %w", err)
	}
	return finishChallengeScan(&c, statusStr, createdAtStr)
}

func scanChallengeFromRows(rows *sql.Rows) (*domain.Challenge, error) {
	var c domain.Challenge
	var statusStr, createdAtStr string

	err := rows.Scan(&c.ID, &c.GoalID, &c.Day, &c.Kind, &c.Minutes, &c.Text, &statusStr, &createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning challenge row: %w", err)
	}
	return finishChallengeScan(&c, statusStr, createdAtStr)
}

func finishChallengeScan(c *domain.Challenge, statusStr, createdAtStr string) (*domain.Challenge, error) {
	c.Status = domain.ChallengeStatus(statusStr)
	var parseErr error
	c.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return c, nil
}
