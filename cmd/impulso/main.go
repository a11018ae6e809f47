package main

import (
	"fmt"
	"os"

	"github.com/impulsoapp/impulso/internal/cli"
	"github.com/impulsoapp/impulso/internal/config"
	"github.com/impulsoapp/impulso/internal/db"
	"github.com/impulsoapp/impulso/internal/onboarding"
	"github.com/impulsoapp/impulso/internal/planner"
	"github.com/impulsoapp/impulso/internal/repository"
	"github.com/impulsoapp/impulso/internal/session"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	goalRepo := repository.NewSQLiteGoalRepo(database)
	challengeRepo := repository.NewSQLiteChallengeRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)

	// Telemetry stays off by default so it cannot write over the TUI.
	var observer onboarding.Observer = onboarding.NoopObserver{}
	if cfg.Debug {
		observer = onboarding.NewLogObserver(os.Stderr)
	}

	finalizer := onboarding.NewFinalizer(
		goalRepo,
		challengeRepo,
		planner.PickTodayTask,
		nil, // default clock
		observer,
	)

	app := &cli.App{
		Goals:      goalRepo,
		Challenges: challengeRepo,
		Session:    session.NewProvider(userRepo, cfg.UserID),
		Finalizer:  finalizer,
	}

	// Detect interactive terminal: the wizard only runs on a TTY.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
