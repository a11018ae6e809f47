package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGoal_ProgressDefaults(t *testing.T) {
	g := NewGoal("user-1", "Aprender inglés", CategoryIdioma, 30)

	assert.Equal(t, 1, g.Level)
	assert.Equal(t, 0, g.XP)
	assert.Equal(t, 0, g.Streak)
	assert.Equal(t, 3, g.Hearts)
	assert.True(t, g.Active)
	assert.Nil(t, g.TargetMetric)
	assert.Nil(t, g.DeadlineWeeks)
}

func TestGoal_Validate(t *testing.T) {
	valid := func() *Goal { return NewGoal("user-1", "Perder 5kg", CategorySalud, 15) }

	require.NoError(t, valid().Validate())

	g := valid()
	g.UserID = ""
	assert.ErrorContains(t, g.Validate(), "user id")

	g = valid()
	g.Title = "   "
	assert.ErrorContains(t, g.Validate(), "title")

	g = valid()
	g.Category = "gimnasio"
	assert.ErrorContains(t, g.Validate(), "category")

	g = valid()
	g.MinutesPerDay = 0
	assert.ErrorContains(t, g.Validate(), "minutes")
}

func TestToday_DateOnly(t *testing.T) {
	morning := time.Date(2026, 3, 15, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, "2026-03-15", Today(morning))
	// Same calendar day always formats to the same value.
	assert.Equal(t, Today(morning), Today(evening))
}
