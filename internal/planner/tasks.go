package planner

import (
	"time"

	"github.com/impulsoapp/impulso/internal/domain"
)

// Task is a concrete daily task proposal.
type Task struct {
	Kind    string
	Minutes int
	Text    string
}

// taskTemplate describes one selectable task. MinLevel gates templates to
// users who have progressed far enough; Minutes is the time the task needs.
type taskTemplate struct {
	Kind     string
	Minutes  int
	MinLevel int
	Text     string
}

// taskCatalog is the canonical per-category template set. Keep texts stable
// because history matching compares against them.
var taskCatalog = map[domain.CategoryID][]taskTemplate{
	domain.CategorySalud: {
		{Kind: "walk", Minutes: 5, MinLevel: 1, Text: "Camina 5 minutos a paso ligero"},
		{Kind: "walk", Minutes: 10, MinLevel: 1, Text: "Sal a caminar 10 minutos después de comer"},
		{Kind: "exercise", Minutes: 15, MinLevel: 1, Text: "Haz 15 minutos de ejercicio en casa"},
		{Kind: "exercise", Minutes: 30, MinLevel: 2, Text: "Completa una rutina de 30 minutos"},
		{Kind: "habit", Minutes: 5, MinLevel: 1, Text: "Bebe un vaso de agua antes de cada comida"},
	},
	domain.CategoryIdioma: {
		{Kind: "vocab", Minutes: 5, MinLevel: 1, Text: "Aprende 5 palabras nuevas"},
		{Kind: "listening", Minutes: 10, MinLevel: 1, Text: "Escucha un podcast corto en el idioma"},
		{Kind: "practice", Minutes: 15, MinLevel: 1, Text: "Practica 15 minutos con una app de idiomas"},
		{Kind: "reading", Minutes: 30, MinLevel: 2, Text: "Lee un artículo y anota las palabras que no conozcas"},
	},
	domain.CategoryAhorro: {
		{Kind: "review", Minutes: 5, MinLevel: 1, Text: "Anota todos tus gastos de hoy"},
		{Kind: "review", Minutes: 10, MinLevel: 1, Text: "Revisa tus suscripciones y cancela una que no uses"},
		{Kind: "plan", Minutes: 15, MinLevel: 1, Text: "Prepara la comida de mañana en casa"},
		{Kind: "plan", Minutes: 30, MinLevel: 2, Text: "Haz un presupuesto semanal de gastos"},
	},
	domain.CategoryEnfoque: {
		{Kind: "focus", Minutes: 5, MinLevel: 1, Text: "Ordena tu escritorio antes de empezar"},
		{Kind: "focus", Minutes: 10, MinLevel: 1, Text: "Trabaja 10 minutos sin mirar el móvil"},
		{Kind: "pomodoro", Minutes: 15, MinLevel: 1, Text: "Haz un bloque de estudio de 15 minutos"},
		{Kind: "pomodoro", Minutes: 30, MinLevel: 2, Text: "Completa un pomodoro de 25 minutos y descansa 5"},
	},
	domain.CategoryOtro: {
		{Kind: "step", Minutes: 5, MinLevel: 1, Text: "Dedica 5 minutos a tu objetivo"},
		{Kind: "step", Minutes: 10, MinLevel: 1, Text: "Avanza 10 minutos en tu objetivo"},
		{Kind: "step", Minutes: 15, MinLevel: 1, Text: "Trabaja 15 minutos en tu objetivo sin distracciones"},
		{Kind: "step", Minutes: 30, MinLevel: 2, Text: "Dedica media hora a la parte que más te cuesta"},
	},
}

// Selector picks today's task for a goal. A nil result is a valid "no task
// today" outcome, not an error.
type Selector func(category domain.CategoryID, level, minutesPerDay int, history []Task) *Task

// PickTodayTask returns a task fitting the user's level and daily minute
// budget, or nil when nothing fits. It is deterministic for a given calendar
// day: calling it again before any challenge exists yields the same task.
// Tasks whose text already appears in history are skipped so consecutive
// days rotate through the catalog.
func PickTodayTask(category domain.CategoryID, level, minutesPerDay int, history []Task) *Task {
	return pickTaskOn(time.Now(), category, level, minutesPerDay, history)
}

func pickTaskOn(day time.Time, category domain.CategoryID, level, minutesPerDay int, history []Task) *Task {
	templates := taskCatalog[category]
	if len(templates) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(history))
	for _, h := range history {
		seen[h.Text] = true
	}

	var candidates []taskTemplate
	for _, t := range templates {
		if t.MinLevel > level || t.Minutes > minutesPerDay {
			continue
		}
		if seen[t.Text] {
			continue
		}
		candidates = append(candidates, t)
	}
	// Once every eligible template has been used, the rotation restarts.
	if len(candidates) == 0 {
		for _, t := range templates {
			if t.MinLevel <= level && t.Minutes <= minutesPerDay {
				candidates = append(candidates, t)
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	picked := candidates[day.YearDay()%len(candidates)]
	return &Task{Kind: picked.Kind, Minutes: picked.Minutes, Text: picked.Text}
}
