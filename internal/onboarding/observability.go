package onboarding

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/impulsoapp/impulso/internal/domain"
)

// FinalizeEvent captures lightweight execution telemetry for one finalize
// attempt.
type FinalizeEvent struct {
	GoalID       string
	Category     domain.CategoryID
	ChallengeDay string
	Duration     time.Duration
	Err          error
	StartedAt    time.Time
}

// Observer receives finalize events.
type Observer interface {
	ObserveFinalize(ctx context.Context, event FinalizeEvent)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveFinalize(context.Context, FinalizeEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes finalize events to the provided writer.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) ObserveFinalize(ctx context.Context, event FinalizeEvent) {
	attrs := []any{
		"goal_id", event.GoalID,
		"category", string(event.Category),
		"duration_ms", event.Duration.Milliseconds(),
	}
	if event.ChallengeDay != "" {
		attrs = append(attrs, "challenge_day", event.ChallengeDay)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "onboarding_finalize", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "onboarding_finalize", attrs...)
}
