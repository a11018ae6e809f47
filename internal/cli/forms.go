package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/impulsoapp/impulso/internal/domain"
	"github.com/impulsoapp/impulso/internal/onboarding"
)

// formSelectCategory creates the step-1 huh form: pick a goal category.
func formSelectCategory(result *string) *huh.Form {
	cats := domain.Categories()
	options := make([]huh.Option[string], 0, len(cats))
	for _, c := range cats {
		label := fmt.Sprintf("%s  %s", c.Icon, c.DisplayName)
		options = append(options, huh.NewOption(label, string(c.ID)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("¿Qué quieres lograr?").
				Description("Elige una categoría").
				Options(options...).
				Value(result),
		),
	).WithTheme(impulsoHuhTheme()).WithShowHelp(false)
}

// detailAnswers holds the step-2 form bindings.
type detailAnswers struct {
	Weight   int
	Deadline int
	Title    string
	Minutes  int
}

// newDetailAnswers seeds the bindings from the draft so regressing and
// returning to step 2 does not lose anything already entered.
func newDetailAnswers(d onboarding.Draft) *detailAnswers {
	a := &detailAnswers{
		Minutes: d.MinutesPerDay,
		Title:   d.Title,
		Weight:  domain.WeightOptions[1], // 5kg preselected
	}
	if d.TargetMetric != nil {
		a.Weight = *d.TargetMetric
	}
	a.Deadline = domain.DeadlineOptions[2] // 1 month preselected
	if d.DeadlineWeeks != nil {
		a.Deadline = *d.DeadlineWeeks
	}
	return a
}

// deadlineLabels maps the deadline option set to its display labels.
var deadlineLabels = map[int]string{
	1:  "1 semana",
	2:  "2 semanas",
	4:  "1 mes",
	12: "3 meses",
}

// formGoalDetails creates the step-2 huh form. The weight shortcut only
// appears for the health category; the free-form title only for the rest.
func formGoalDetails(category domain.CategoryID, a *detailAnswers) *huh.Form {
	var fields []huh.Field

	if category == domain.CategorySalud {
		weightOptions := make([]huh.Option[int], 0, len(domain.WeightOptions))
		for _, kg := range domain.WeightOptions {
			weightOptions = append(weightOptions, huh.NewOption(fmt.Sprintf("%d kg", kg), kg))
		}
		fields = append(fields, huh.NewSelect[int]().
			Title("¿Cuántos kilos quieres perder?").
			Options(weightOptions...).
			Value(&a.Weight))
	} else {
		fields = append(fields, huh.NewInput().
			Title("Título de tu objetivo").
			Placeholder("Ej: Aprender inglés, Ahorrar 1000 CHF...").
			Value(&a.Title).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("el título es obligatorio")
				}
				return nil
			}))
	}

	deadlineOptions := make([]huh.Option[int], 0, len(domain.DeadlineOptions))
	for _, weeks := range domain.DeadlineOptions {
		deadlineOptions = append(deadlineOptions, huh.NewOption(deadlineLabels[weeks], weeks))
	}
	fields = append(fields, huh.NewSelect[int]().
		Title("Fecha límite").
		Options(deadlineOptions...).
		Value(&a.Deadline))

	minutesOptions := make([]huh.Option[int], 0, len(domain.MinutesOptions))
	for _, m := range domain.MinutesOptions {
		minutesOptions = append(minutesOptions, huh.NewOption(fmt.Sprintf("%dm", m), m))
	}
	fields = append(fields, huh.NewSelect[int]().
		Title("Minutos diarios").
		Options(minutesOptions...).
		Value(&a.Minutes))

	return huh.NewForm(
		huh.NewGroup(fields...).
			Title("Detalles del objetivo").
			Description("Cuanto más específico, mejor"),
	).WithTheme(impulsoHuhTheme()).WithShowHelp(false)
}

// applyDetails folds the step-2 answers into the draft. The weight shortcut
// is the compound update that derives the title for the health category.
func applyDetails(d onboarding.Draft, a *detailAnswers) onboarding.Draft {
	if d.Category == domain.CategorySalud {
		d = d.SetTargetMetric(a.Weight)
	} else {
		d = d.SetTitle(a.Title)
	}
	d = d.SetDeadline(a.Deadline)
	d = d.SetMinutes(a.Minutes)
	return d
}
