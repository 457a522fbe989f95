package domain_test

import (
	"strings"
	"testing"

	sessiondomain "abaterm/internal/modules/session/domain"
	"abaterm/internal/modules/summary/domain"
)

func TestBuildPromptIncludesSessionData(t *testing.T) {
	t.Parallel()

	session := sessiondomain.Session{
		StudentName:         "Alessandra G",
		TherapistName:       "Celeste M",
		Date:                "2026-03-04",
		StartTime:           "09:15",
		GeneralObservations: "Buena disposición al trabajo.",
		Programs: []sessiondomain.Program{
			{
				ID:                        "p1",
				Name:                      "Identificación de Colores",
				Level:                     "Nivel 2",
				Elements:                  "rojo, azul",
				CorrectCount:              8,
				IncorrectCount:            2,
				SelectedHelp:              []string{sessiondomain.HelpVerbal},
				SelectedReinforcer:        []string{sessiondomain.ReinforcerSocial},
				ReinforcementSchedule:     sessiondomain.ScheduleFixedInterval,
				ReinforcementScheduleTime: "30",
			},
		},
	}

	prompt := domain.BuildPrompt(session)

	for _, want := range []string{
		"Alessandra G",
		"Celeste M",
		"2026-03-04 (Inicio: 09:15)",
		"Programa: Identificación de Colores",
		"Aciertos: 8",
		"Errores: 2",
		"Total Ensayos: 10",
		"Porcentaje Aciertos: 80.0%",
		"Ayudas: verbal",
		"Reforzadores: social",
		"(Intervalo: 30s)",
		`"Buena disposición al trabajo."`,
		"Respuesta en Español.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptZeroTrialsDoesNotDivideByZero(t *testing.T) {
	t.Parallel()

	session := sessiondomain.Session{
		Programs: []sessiondomain.Program{{ID: "p1", Name: "Seguimiento de Instrucciones"}},
	}

	prompt := domain.BuildPrompt(session)

	if !strings.Contains(prompt, "Porcentaje Aciertos: 0.0%") {
		t.Errorf("expected zero percentage for zero trials, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Ayudas: Ninguna") {
		t.Error("expected help fallback Ninguna")
	}
	if !strings.Contains(prompt, "Reforzadores: Ninguno") {
		t.Error("expected reinforcer fallback Ninguno")
	}
	if !strings.Contains(prompt, "Programa de Reforzamiento: No especificado") {
		t.Error("expected schedule fallback")
	}
}
