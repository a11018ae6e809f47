package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/impulsoapp/impulso/internal/domain"
	"github.com/impulsoapp/impulso/internal/onboarding"
)

type onboardingPhase int

const (
	phaseSelecting onboardingPhase = iota // step 1: category grid
	phaseDetailing                        // step 2: details form
	phaseSaving                           // finalize in flight
	phaseDone                             // goal created (possibly with warning)
)

// finalizeDoneMsg carries the finalize outcome back into the event loop.
type finalizeDoneMsg struct {
	result *onboarding.Result
	err    error
}

// onboardingModel drives the two-step goal wizard. The actual state machine
// lives in onboarding.Draft; this model only renders it and maps form
// completions onto draft transitions.
type onboardingModel struct {
	app    *App
	userID string

	draft onboarding.Draft
	phase onboardingPhase

	// categoryChoice and answers are heap-allocated so the huh fields bound
	// to them keep writing through model copies.
	form           *huh.Form
	categoryChoice *string
	answers        *detailAnswers

	spin    spinner.Model
	failure string // goal-stage failure notice, shown above step 2
	result  *onboarding.Result

	quitting bool
	width    int
}

func newOnboardingModel(app *App, userID string) onboardingModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorHeader)

	m := onboardingModel{
		app:    app,
		userID: userID,
		draft:  onboarding.NewDraft(),
		phase:  phaseSelecting,
		spin:   sp,
	}
	m.categoryChoice = new(string)
	m.form = formSelectCategory(m.categoryChoice)
	return m
}

func (m onboardingModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m onboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case spinner.TickMsg:
		if m.phase == phaseSaving {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case finalizeDoneMsg:
		return m.handleFinalizeDone(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.phase {
		case phaseSaving:
			// No abort affordance: once finalize starts it runs to completion.
			return m, nil
		case phaseDone:
			m.quitting = true
			return m, tea.Quit
		case phaseSelecting:
			if msg.Type == tea.KeyEsc {
				m.quitting = true
				return m, tea.Quit
			}
		case phaseDetailing:
			if msg.Type == tea.KeyEsc {
				return m.regress()
			}
		}
	}

	if m.phase != phaseSelecting && m.phase != phaseDetailing {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		switch m.phase {
		case phaseSelecting:
			return m.advance()
		case phaseDetailing:
			return m.finish(cmd)
		}
	}

	return m, cmd
}

// advance applies the step-1 choice and builds the detail form.
func (m onboardingModel) advance() (tea.Model, tea.Cmd) {
	m.draft = m.draft.Advance(domain.CategoryID(*m.categoryChoice))
	m.answers = newDetailAnswers(m.draft)
	m.form = formGoalDetails(m.draft.Category, m.answers)
	m.phase = phaseDetailing
	return m, m.form.Init()
}

// regress goes back to step 1. Collected fields stay on the draft so nothing
// is re-entered after correcting the category.
func (m onboardingModel) regress() (tea.Model, tea.Cmd) {
	if m.answers != nil && m.draft.Category != domain.CategorySalud {
		m.draft = m.draft.SetTitle(m.answers.Title)
	}
	m.draft = m.draft.Regress()
	m.failure = ""
	choice := string(m.draft.Category)
	m.categoryChoice = &choice
	m.form = formSelectCategory(m.categoryChoice)
	m.phase = phaseSelecting
	return m, m.form.Init()
}

// finish folds the step-2 answers into the draft and starts finalize. The
// trigger stays inert while preconditions fail or a finalize is in flight.
func (m onboardingModel) finish(formCmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.draft = applyDetails(m.draft, m.answers)
	if !m.draft.CanFinish() || m.app.Finalizer.Busy() {
		m.form = formGoalDetails(m.draft.Category, m.answers)
		return m, m.form.Init()
	}
	m.phase = phaseSaving
	m.failure = ""
	draft := m.draft
	finalize := func() tea.Msg {
		res, err := m.app.Finalizer.Finalize(context.Background(), draft, m.userID)
		return finalizeDoneMsg{result: res, err: err}
	}
	return m, tea.Batch(formCmd, m.spin.Tick, finalize)
}

func (m onboardingModel) handleFinalizeDone(msg finalizeDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, onboarding.ErrBusy) {
			return m, nil
		}
		// Goal insert failed: nothing persisted. Stay on step 2 for retry
		// with every field intact.
		m.failure = "Error al crear objetivo. Inténtalo de nuevo."
		m.form = formGoalDetails(m.draft.Category, m.answers)
		m.phase = phaseDetailing
		return m, m.form.Init()
	}
	m.result = msg.result
	m.phase = phaseDone
	return m, nil
}

func (m onboardingModel) View() string {
	if m.quitting && m.result == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleHeader.Render("impulso"))
	b.WriteString(Dim(" › nuevo objetivo"))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseSelecting, phaseDetailing:
		if m.failure != "" {
			b.WriteString(StyleRed.Render(m.failure))
			b.WriteString("\n\n")
		}
		b.WriteString(m.form.View())
		b.WriteString("\n")
		b.WriteString(m.helpLine())

	case phaseSaving:
		b.WriteString(m.spin.View())
		b.WriteString(StyleFg.Render("Creando objetivo..."))

	case phaseDone:
		b.WriteString(m.doneView())
	}

	b.WriteString("\n")
	return b.String()
}

func (m onboardingModel) doneView() string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render("¡Objetivo creado! Comencemos tu viaje."))
	b.WriteString("\n\n")

	goal := m.result.Goal
	cat, _ := domain.CategoryByID(goal.Category)
	b.WriteString("  " + cat.Icon + "  " + StyleBold.Render(goal.Title) + "\n")
	b.WriteString("  " + Dim("categoría") + "  " + categoryStyle(cat.ColorTag).Render(cat.DisplayName) + "\n")
	b.WriteString("  " + Dim("al día") + "     " + StyleFg.Render(minutesLabel(goal.MinutesPerDay)) + "\n")
	if goal.DeadlineWeeks != nil {
		b.WriteString("  " + Dim("plazo") + "      " + StyleFg.Render(deadlineLabels[*goal.DeadlineWeeks]) + "\n")
	}

	if m.result.Challenge != nil {
		b.WriteString("\n" + StyleHeader.Render("Reto de hoy") + "\n")
		b.WriteString("  " + StyleFg.Render(m.result.Challenge.Text) + " " + Dim(minutesLabel(m.result.Challenge.Minutes)) + "\n")
	} else if m.result.Outcome == onboarding.Completed {
		b.WriteString("\n" + Dim("Hoy no hay reto. Mañana empezamos.") + "\n")
	}

	if m.result.Outcome == onboarding.CompletedWithWarning {
		b.WriteString("\n" + StyleYellow.Render("No se pudo asignar el reto de hoy; se reintentará en la próxima asignación diaria.") + "\n")
	}

	b.WriteString("\n" + Dim("pulsa cualquier tecla para salir"))
	return b.String()
}

func (m onboardingModel) helpLine() string {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "seleccionar")),
	}
	if m.phase == phaseDetailing {
		bindings = append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "atrás")))
	} else {
		bindings = append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "salir")))
	}
	var hints []string
	for _, b := range bindings {
		hints = append(hints, Dim(b.Help().Key+": "+b.Help().Desc))
	}
	return strings.Join(hints, "  ")
}
