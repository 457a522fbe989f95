package domain

import (
	"fmt"
	"strings"
	"time"
)

// Assistance categories, in the canonical display order. The Spanish values
// are part of the wire contract with the sheet and must not be translated.
const (
	HelpVerbal          = "verbal"
	HelpGestural        = "gestual"
	HelpPhysicalTotal   = "física total"
	HelpPhysicalPartial = "física parcial"
	HelpPhysicalShadow  = "física sombra"
	HelpNone            = "ninguna"
)

// Reinforcer categories.
const (
	ReinforcerEdible   = "comestible"
	ReinforcerSocial   = "social"
	ReinforcerSensory  = "sensorial"
	ReinforcerTangible = "tangible"
	ReinforcerActivity = "actividad"
	ReinforcerEconomy  = "economía"
	ReinforcerNone     = "ninguno"
)

var HelpOptions = []string{
	HelpVerbal,
	HelpGestural,
	HelpPhysicalTotal,
	HelpPhysicalPartial,
	HelpPhysicalShadow,
	HelpNone,
}

var ReinforcerOptions = []string{
	ReinforcerEdible,
	ReinforcerSocial,
	ReinforcerSensory,
	ReinforcerTangible,
	ReinforcerActivity,
	ReinforcerEconomy,
	ReinforcerNone,
}

// Reinforcement schedules: fixed/variable ratio, fixed/variable interval.
// Interval schedules carry a time parameter in seconds.
const (
	ScheduleFixedRatio       = "RF"
	ScheduleVariableRatio    = "RV"
	ScheduleFixedInterval    = "IF"
	ScheduleVariableInterval = "IV"
)

var Schedules = []string{
	ScheduleFixedRatio,
	ScheduleVariableRatio,
	ScheduleFixedInterval,
	ScheduleVariableInterval,
}

// IsIntervalSchedule reports whether the schedule carries a time parameter.
func IsIntervalSchedule(schedule string) bool {
	return schedule == ScheduleFixedInterval || schedule == ScheduleVariableInterval
}

// Program is a single therapeutic drill tracked within a session. JSON names
// mirror the sheet script's expected payload.
type Program struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Level          string `json:"level"`
	Elements       string `json:"elements"`
	CorrectCount   int    `json:"correctCount"`
	IncorrectCount int    `json:"incorrectCount"`
	// Membership matters, order does not.
	SelectedHelp       []string `json:"selectedHelp"`
	SelectedReinforcer []string `json:"selectedReinforcer"`
	// One of Schedules, or empty when unset.
	ReinforcementSchedule string `json:"reinforcementSchedule"`
	// Seconds, free text; only meaningful for interval schedules.
	ReinforcementScheduleTime string `json:"reinforcementScheduleTime"`
	IsCollapsed               bool   `json:"isCollapsed"`
	Notes                     string `json:"notes"`
}

// Session is one therapy encounter for a student/therapist pair on a date.
// Programs keep insertion order: creation order is display order is
// submission order.
type Session struct {
	StudentName         string    `json:"studentName"`
	TherapistName       string    `json:"therapistName"`
	Date                string    `json:"date"`
	StartTime           string    `json:"startTime"`
	EndTime             string    `json:"endTime"`
	GeneralObservations string    `json:"generalObservations"`
	Programs            []Program `json:"programs"`
}

// TotalTrials is correct plus incorrect.
func (p Program) TotalTrials() int {
	return p.CorrectCount + p.IncorrectCount
}

// Percentage derives the percent-correct value. ok is false when no trials
// have been recorded, in which case the value must render as a dash, never
// as 0% or NaN.
func (p Program) Percentage() (float64, bool) {
	total := p.TotalTrials()
	if total == 0 {
		return 0, false
	}
	return float64(p.CorrectCount) / float64(total) * 100, true
}

// PercentBand classifies a derived percentage for display colouring.
type PercentBand int

const (
	BandNone PercentBand = iota // no trials recorded
	BandLow                     // < 50
	BandMid                     // 50–79
	BandHigh                    // >= 80
)

// Band returns the display band for the program's derived percentage.
func (p Program) Band() PercentBand {
	pct, ok := p.Percentage()
	switch {
	case !ok:
		return BandNone
	case pct >= 80:
		return BandHigh
	case pct >= 50:
		return BandMid
	default:
		return BandLow
	}
}

// PercentLabel renders the rounded percentage, or a dash with no trials.
func (p Program) PercentLabel() string {
	pct, ok := p.Percentage()
	if !ok {
		return "—"
	}
	return fmt.Sprintf("%.0f%%", pct)
}

// FindProgram returns the index of the program with the given id, or -1.
func (s Session) FindProgram(id string) int {
	for i := range s.Programs {
		if s.Programs[i].ID == id {
			return i
		}
	}
	return -1
}

// Validate applies the pre-submission checks.
func (s Session) Validate() error {
	if strings.TrimSpace(s.StudentName) == "" {
		return fmt.Errorf("student name is required")
	}
	if strings.TrimSpace(s.TherapistName) == "" {
		return fmt.Errorf("therapist name is required")
	}
	if len(s.Programs) == 0 {
		return fmt.Errorf("at least one program is required")
	}
	return nil
}

// LocalDate renders t's calendar day in the device's local zone.
func LocalDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ClockTime renders t as a 24h wall-clock time.
func ClockTime(t time.Time) string {
	return t.Format("15:04")
}
