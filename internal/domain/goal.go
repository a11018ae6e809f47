package domain

import (
	"fmt"
	"strings"
	"time"
)

// Fixed option sets offered by the onboarding flow. Presentation constrains
// input to these; anything else reaching the core is a caller bug.
var (
	MinutesOptions  = []int{5, 10, 15, 30}
	DeadlineOptions = []int{1, 2, 4, 12}
	WeightOptions   = []int{2, 5, 10}
)

// DefaultMinutesPerDay is the preselected daily time budget.
const DefaultMinutesPerDay = 15

// Goal is a user's tracked objective with its progress metadata.
// TargetMetric and DeadlineWeeks are optional; nil means the field was never
// set and must be absent from any persistence payload.
type Goal struct {
	ID            string
	UserID        string
	Title         string
	Category      CategoryID
	MinutesPerDay int
	Level         int
	XP            int
	Streak        int
	Hearts        int
	Active        bool
	TargetMetric  *int
	DeadlineWeeks *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewGoal builds a goal with the progress defaults every freshly created goal
// starts from: level 1, no xp, no streak, three hearts, active.
func NewGoal(userID, title string, category CategoryID, minutesPerDay int) *Goal {
	return &Goal{
		UserID:        userID,
		Title:         title,
		Category:      category,
		MinutesPerDay: minutesPerDay,
		Level:         1,
		XP:            0,
		Streak:        0,
		Hearts:        3,
		Active:        true,
	}
}

// Validate checks the fields required for persistence.
func (g *Goal) Validate() error {
	if g.UserID == "" {
		return fmt.Errorf("goal user id is required")
	}
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("goal title is required")
	}
	if !ValidCategory(g.Category) {
		return fmt.Errorf("unknown goal category %q", g.Category)
	}
	if g.MinutesPerDay <= 0 {
		return fmt.Errorf("minutes per day must be positive")
	}
	return nil
}
