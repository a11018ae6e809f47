package onboarding

import (
	"fmt"
	"strings"

	"github.com/impulsoapp/impulso/internal/domain"
)

// Wizard steps.
const (
	StepSelecting = 1 // category grid
	StepDetailing = 2 // title, deadline, minutes, weight shortcut
)

// Draft is the in-progress onboarding state. It is a value type: every
// transition returns a new draft, leaving the input untouched, so the UI can
// keep the previous state for free while a transition is applied.
//
// A draft is owned by exactly one onboarding session and is never shared
// between flows.
type Draft struct {
	Step          int
	Category      domain.CategoryID
	Title         string
	MinutesPerDay int
	TargetMetric  *int
	DeadlineWeeks *int
}

// NewDraft returns the initial draft: step 1, default daily minutes.
func NewDraft() Draft {
	return Draft{Step: StepSelecting, MinutesPerDay: domain.DefaultMinutesPerDay}
}

// Advance records the chosen category and moves to the detail step. This is
// the only transition that changes Step forward.
func (d Draft) Advance(category domain.CategoryID) Draft {
	if !domain.ValidCategory(category) {
		panic(fmt.Sprintf("onboarding: unknown category %q", category))
	}
	d.Category = category
	d.Step = StepDetailing
	return d
}

// Regress returns to the category step. All collected fields are preserved so
// the user can correct the category without re-entering details.
func (d Draft) Regress() Draft {
	d.Step = StepSelecting
	return d
}

// SetTitle replaces the goal title. Used by non-health categories; a manual
// edit overrides any previously derived title.
func (d Draft) SetTitle(title string) Draft {
	d.Title = title
	return d
}

// SetMinutes sets the daily time budget. The value must be one of
// domain.MinutesOptions.
func (d Draft) SetMinutes(minutes int) Draft {
	mustOption("minutes per day", minutes, domain.MinutesOptions)
	d.MinutesPerDay = minutes
	return d
}

// SetDeadline sets the deadline in weeks. The value must be one of
// domain.DeadlineOptions.
func (d Draft) SetDeadline(weeks int) Draft {
	mustOption("deadline weeks", weeks, domain.DeadlineOptions)
	d.DeadlineWeeks = &weeks
	return d
}

// SetTargetMetric records the health-category weight shortcut. It is a
// compound update: the title is derived from the chosen amount.
func (d Draft) SetTargetMetric(kg int) Draft {
	mustOption("target weight", kg, domain.WeightOptions)
	d.TargetMetric = &kg
	d.Title = fmt.Sprintf("Perder %dkg", kg)
	return d
}

// CanFinish reports whether the draft satisfies the finalize preconditions:
// category chosen, non-blank title, deadline present. The UI keeps the finish
// trigger inert while this is false.
func (d Draft) CanFinish() bool {
	return d.Category != "" &&
		strings.TrimSpace(d.Title) != "" &&
		d.DeadlineWeeks != nil
}

// mustOption panics unless v is in the fixed option set. Out-of-domain values
// indicate a caller bug, not user input: the presentation layer only offers
// the documented sets.
func mustOption(name string, v int, options []int) {
	for _, o := range options {
		if v == o {
			return
		}
	}
	panic(fmt.Sprintf("onboarding: %s %d not in %v", name, v, options))
}
