package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/impulsoapp/impulso/internal/domain"
	"github.com/impulsoapp/impulso/internal/repository"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active goal and today's challenge",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := app.Session.CurrentUserID(cmd.Context())
			if err != nil {
				return fmt.Errorf("resolving user: %w", err)
			}
			return printStatus(cmd, app, userID)
		},
	}
}

func newGoalsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "List all goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.Session.CurrentUserID(ctx)
			if err != nil {
				return fmt.Errorf("resolving user: %w", err)
			}
			goals, err := app.Goals.ListByUser(ctx, userID)
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				cmd.Println(Dim("No hay objetivos todavía. Ejecuta impulso para crear uno."))
				return nil
			}
			for _, g := range goals {
				cmd.Println(renderGoalLine(g))
			}
			return nil
		},
	}
}

func printStatus(cmd *cobra.Command, app *App, userID string) error {
	ctx := cmd.Context()
	goal, err := app.Goals.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			cmd.Println(Dim("No hay ningún objetivo activo. Ejecuta impulso para crear uno."))
			return nil
		}
		return fmt.Errorf("loading active goal: %w", err)
	}

	cat, _ := domain.CategoryByID(goal.Category)
	cmd.Println(cat.Icon + "  " + StyleBold.Render(goal.Title))
	cmd.Println(Dim("  nivel ") + fmt.Sprintf("%d", goal.Level) +
		Dim("  xp ") + fmt.Sprintf("%d", goal.XP) +
		Dim("  racha ") + fmt.Sprintf("%d", goal.Streak) +
		Dim("  ") + StyleRed.Render(strings.Repeat("♥", goal.Hearts)))

	today := domain.Today(time.Now())
	challenge, err := app.Challenges.GetByGoalAndDay(ctx, goal.ID, today)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			cmd.Println()
			cmd.Println(Dim("Hoy no hay reto asignado."))
			return nil
		}
		return fmt.Errorf("loading today's challenge: %w", err)
	}

	cmd.Println()
	cmd.Println(StyleHeader.Render("Reto de hoy ") + challengeStatusBadge(challenge.Status))
	cmd.Println("  " + StyleFg.Render(challenge.Text) + " " + Dim(minutesLabel(challenge.Minutes)))
	return nil
}

func renderGoalLine(g *domain.Goal) string {
	cat, _ := domain.CategoryByID(g.Category)
	line := cat.Icon + "  " + StyleBold.Render(g.Title) + "  " + categoryStyle(cat.ColorTag).Render(string(g.Category))
	if !g.Active {
		line += "  " + Dim("(inactivo)")
	}
	return line
}

func challengeStatusBadge(s domain.ChallengeStatus) string {
	switch s {
	case domain.ChallengeDone:
		return StyleGreen.Render("✓ hecho")
	case domain.ChallengeSkipped:
		return Dim("saltado")
	default:
		return StyleYellow.Render("pendiente")
	}
}

func minutesLabel(minutes int) string {
	return fmt.Sprintf("%d min", minutes)
}
