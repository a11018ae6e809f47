package domain

import "time"

type ChallengeStatus string

const (
	ChallengePending ChallengeStatus = "pending"
	ChallengeDone    ChallengeStatus = "done"
	ChallengeSkipped ChallengeStatus = "skipped"
)

// DayLayout is the storage format for a challenge day: calendar date only,
// no time-of-day component.
const DayLayout = "2006-01-02"

// Challenge is one day's concrete task instance tied to a goal.
type Challenge struct {
	ID        string
	GoalID    string
	Day       string // DayLayout formatted
	Kind      string
	Minutes   int
	Text      string
	Status    ChallengeStatus
	CreatedAt time.Time
}

// Today formats t as a challenge day. Calling it twice within the same
// calendar day yields the same value.
func Today(t time.Time) string {
	return t.Format(DayLayout)
}
