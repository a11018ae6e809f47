package onboarding

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/impulsoapp/impulso/internal/domain"
	"github.com/impulsoapp/impulso/internal/planner"
	"github.com/impulsoapp/impulso/internal/repository"
)

// ErrBusy is returned when Finalize is called while a previous call is still
// in flight. The UI disables the trigger while busy, so hitting this is a
// no-op rather than a failure the user sees.
var ErrBusy = errors.New("finalize already in progress")

// Stage identifies which write a finalize error came from.
type Stage string

const (
	StageGoal      Stage = "goal"
	StageChallenge Stage = "challenge"
)

// FinalizeError wraps a backend failure with the stage it occurred in.
type FinalizeError struct {
	Stage Stage
	Err   error
}

func (e *FinalizeError) Error() string {
	return fmt.Sprintf("%s insert failed: %v", e.Stage, e.Err)
}

func (e *FinalizeError) Unwrap() error { return e.Err }

// Outcome classifies a finalize that persisted a goal.
type Outcome string

const (
	// Completed: goal persisted and either a challenge was created or the
	// selector had no task for today.
	Completed Outcome = "completed"
	// CompletedWithWarning: goal persisted but the challenge insert failed.
	// The goal is real and kept; the next daily assignment cycle can backfill
	// the task, so the wizard still finishes.
	CompletedWithWarning Outcome = "completed_with_warning"
)

// Result reports a finalize that created a goal. Challenge is nil when no
// task was assigned. Warning carries the challenge-stage error for the
// CompletedWithWarning outcome; it is surfaced, never silently dropped.
type Result struct {
	Outcome   Outcome
	Goal      *domain.Goal
	Challenge *domain.Challenge
	Warning   error
}

// Finalizer converts a completed draft into a persisted goal plus, when the
// selector has something for today, its first daily challenge. Dependencies
// are injected so the flow is testable without a live session or store.
type Finalizer struct {
	goals      repository.GoalRepo
	challenges repository.ChallengeRepo
	selectTask planner.Selector
	now        func() time.Time
	observer   Observer

	busy atomic.Bool
}

// NewFinalizer wires a Finalizer. now defaults to time.Now and observer to a
// no-op when nil.
func NewFinalizer(goals repository.GoalRepo, challenges repository.ChallengeRepo, selectTask planner.Selector, now func() time.Time, observer Observer) *Finalizer {
	if now == nil {
		now = time.Now
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Finalizer{
		goals:      goals,
		challenges: challenges,
		selectTask: selectTask,
		now:        now,
		observer:   observer,
	}
}

// Busy reports whether a finalize call is in flight. The UI uses it to keep
// the finish trigger disabled for the duration of the call.
func (f *Finalizer) Busy() bool { return f.busy.Load() }

// Finalize runs the two-step goal-initialization sequence:
//
//  1. insert the goal (optional fields omitted when unset),
//  2. ask the selector for today's task and, if there is one, insert the
//     challenge referencing the new goal.
//
// The writes are strictly sequential, never parallel, and never wrapped in a
// transaction: a goal without a challenge is an accepted partial state. A
// goal-stage failure aborts with a *FinalizeError and nothing persisted. A
// challenge-stage failure still returns a Result (the goal exists) with
// Outcome CompletedWithWarning and the error in Warning. No retries, no
// cancellation once started.
func (f *Finalizer) Finalize(ctx context.Context, draft Draft, userID string) (*Result, error) {
	if userID == "" {
		return nil, fmt.Errorf("finalize requires a user id")
	}
	if !draft.CanFinish() {
		return nil, fmt.Errorf("draft is not ready to finalize")
	}
	if !f.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer f.busy.Store(false)

	started := f.now()

	goal := domain.NewGoal(userID, draft.Title, draft.Category, draft.MinutesPerDay)
	// Copy the optional fields so the persisted goal does not alias the draft.
	if draft.TargetMetric != nil {
		v := *draft.TargetMetric
		goal.TargetMetric = &v
	}
	if draft.DeadlineWeeks != nil {
		v := *draft.DeadlineWeeks
		goal.DeadlineWeeks = &v
	}

	if err := f.goals.Create(ctx, goal); err != nil {
		ferr := &FinalizeError{Stage: StageGoal, Err: err}
		f.observe(ctx, started, goal, nil, ferr)
		return nil, ferr
	}

	task := f.selectTask(goal.Category, goal.Level, goal.MinutesPerDay, nil)
	if task == nil {
		f.observe(ctx, started, goal, nil, nil)
		return &Result{Outcome: Completed, Goal: goal}, nil
	}

	challenge := &domain.Challenge{
		GoalID:  goal.ID,
		Day:     domain.Today(f.now()),
		Kind:    task.Kind,
		Minutes: task.Minutes,
		Text:    task.Text,
		Status:  domain.ChallengePending,
	}
	if err := f.challenges.Create(ctx, challenge); err != nil {
		ferr := &FinalizeError{Stage: StageChallenge, Err: err}
		f.observe(ctx, started, goal, nil, ferr)
		return &Result{Outcome: CompletedWithWarning, Goal: goal, Warning: ferr}, nil
	}

	f.observe(ctx, started, goal, challenge, nil)
	return &Result{Outcome: Completed, Goal: goal, Challenge: challenge}, nil
}

func (f *Finalizer) observe(ctx context.Context, started time.Time, goal *domain.Goal, challenge *domain.Challenge, err error) {
	event := FinalizeEvent{
		GoalID:    goal.ID,
		Category:  goal.Category,
		Duration:  f.now().Sub(started),
		Err:       err,
		StartedAt: started,
	}
	if challenge != nil {
		event.ChallengeDay = challenge.Day
	}
	f.observer.ObserveFinalize(ctx, event)
}
