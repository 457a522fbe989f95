package domain

import (
	"fmt"
	"strings"

	sessiondomain "abaterm/internal/modules/session/domain"
)

// BuildPrompt renders the clinical-summary prompt for a session. The wording
// matches what the supervising clinicians reviewed; keep it in Spanish.
func BuildPrompt(s sessiondomain.Session) string {
	var sb strings.Builder
	sb.WriteString("Actúa como un supervisor clínico experto en análisis de conducta aplicado (ABA).\n")
	sb.WriteString("Analiza los siguientes datos crudos de una sesión de terapia y genera un \"Resumen de Sesión\" profesional y conciso para la historia clínica.\n\n")
	sb.WriteString("Datos de la Sesión:\n")
	fmt.Fprintf(&sb, "Terapeuta: %s\n", s.TherapistName)
	fmt.Fprintf(&sb, "Estudiante: %s\n", s.StudentName)
	fmt.Fprintf(&sb, "Fecha: %s (Inicio: %s)\n\n", s.Date, s.StartTime)
	sb.WriteString("Programas Trabajados:\n")
	for _, p := range s.Programs {
		total := p.TotalTrials()
		divisor := total
		if divisor == 0 {
			divisor = 1
		}
		pct := float64(p.CorrectCount) / float64(divisor) * 100
		fmt.Fprintf(&sb, "- Programa: %s\n", p.Name)
		fmt.Fprintf(&sb, "  Conjunto/Nivel: %s\n", p.Level)
		fmt.Fprintf(&sb, "  Elementos: %s\n", p.Elements)
		fmt.Fprintf(&sb, "  Aciertos: %d\n", p.CorrectCount)
		fmt.Fprintf(&sb, "  Errores: %d\n", p.IncorrectCount)
		fmt.Fprintf(&sb, "  Total Ensayos: %d\n", total)
		fmt.Fprintf(&sb, "  Porcentaje Aciertos: %.1f%%\n", pct)
		fmt.Fprintf(&sb, "  Ayudas: %s\n", joinOr(p.SelectedHelp, "Ninguna"))
		fmt.Fprintf(&sb, "  Reforzadores: %s\n", joinOr(p.SelectedReinforcer, "Ninguno"))
		schedule := p.ReinforcementSchedule
		if schedule == "" {
			schedule = "No especificado"
		}
		if p.ReinforcementScheduleTime != "" {
			fmt.Fprintf(&sb, "  Programa de Reforzamiento: %s (Intervalo: %ss)\n", schedule, p.ReinforcementScheduleTime)
		} else {
			fmt.Fprintf(&sb, "  Programa de Reforzamiento: %s\n", schedule)
		}
	}
	fmt.Fprintf(&sb, "\nObservaciones Crudas del Terapeuta: %q\n\n", s.GeneralObservations)
	sb.WriteString("Instrucciones de Salida:\n")
	sb.WriteString("1. Escribe un párrafo narrativo resumiendo el desempeño general.\n")
	sb.WriteString("2. Destaca qué programas tuvieron mejor desempeño (>80%) y cuáles necesitan atención (<50%).\n")
	sb.WriteString("3. Sugiere una recomendación breve para la próxima sesión basada en los datos.\n")
	sb.WriteString("4. Mantén un tono clínico y objetivo.\n")
	sb.WriteString("5. Respuesta en Español.\n")
	return sb.String()
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}
