package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/impulsoapp/impulso/internal/onboarding"
	"github.com/impulsoapp/impulso/internal/repository"
	"github.com/impulsoapp/impulso/internal/session"
	"github.com/spf13/cobra"
)

// App holds the wired dependencies used by CLI commands.
type App struct {
	Goals      repository.GoalRepo
	Challenges repository.ChallengeRepo
	Session    *session.Provider
	Finalizer  *onboarding.Finalizer

	// IsInteractive reports whether stdin is a terminal; the wizard only
	// runs interactively.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "impulso" command. Running it bare shows
// today's status, or starts the onboarding wizard when no active goal exists.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "impulso",
		Short: "Daily challenges for your self-improvement goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.Session.CurrentUserID(ctx)
			if err != nil {
				return fmt.Errorf("resolving user: %w", err)
			}

			goal, err := app.Goals.GetActiveByUser(ctx, userID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("loading active goal: %w", err)
			}
			if goal != nil {
				return printStatus(cmd, app, userID)
			}

			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("no active goal; run impulso from a terminal to create one")
			}

			model := newOnboardingModel(app, userID)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	root.AddCommand(
		newStatusCmd(app),
		newGoalsCmd(app),
		newOnboardCmd(app),
	)

	return root
}

// newOnboardCmd starts the wizard explicitly, even when a goal already exists.
func newOnboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Create a new goal with the onboarding wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.Session.CurrentUserID(ctx)
			if err != nil {
				return fmt.Errorf("resolving user: %w", err)
			}
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("the onboarding wizard needs an interactive terminal")
			}
			model := newOnboardingModel(app, userID)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}
