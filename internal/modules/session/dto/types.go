package dto

import "abaterm/internal/modules/session/domain"

// Option lists for the tag and schedule editors, re-exported so presentation
// code stays off the domain package.
var (
	HelpOptions       = domain.HelpOptions
	ReinforcerOptions = domain.ReinforcerOptions
	Schedules         = domain.Schedules
)

// IsIntervalSchedule reports whether a schedule carries an interval in seconds.
func IsIntervalSchedule(schedule string) bool {
	return domain.IsIntervalSchedule(schedule)
}

// SessionField names a top-level session attribute for UpdateField.
type SessionField string

const (
	FieldStudentName         SessionField = "studentName"
	FieldTherapistName       SessionField = "therapistName"
	FieldDate                SessionField = "date"
	FieldGeneralObservations SessionField = "generalObservations"
)

// ProgramUpdate is a partial program update; nil fields are left as-is.
type ProgramUpdate struct {
	Name                      *string
	Level                     *string
	Elements                  *string
	CorrectCount              *int
	IncorrectCount            *int
	SelectedHelp              *[]string
	SelectedReinforcer        *[]string
	ReinforcementSchedule     *string
	ReinforcementScheduleTime *string
	IsCollapsed               *bool
	Notes                     *string
}

// SaveOutput reports a submission attempt.
type SaveOutput struct {
	Succeeded bool
	Message   string
}

// PercentBand values for ProgramOutput.Band.
const (
	BandNone = "none"
	BandLow  = "low"
	BandMid  = "mid"
	BandHigh = "high"
)

// ProgramOutput is the read projection of one program.
type ProgramOutput struct {
	ID                        string
	Name                      string
	Level                     string
	Elements                  string
	CorrectCount              int
	IncorrectCount            int
	SelectedHelp              []string
	SelectedReinforcer        []string
	ReinforcementSchedule     string
	ReinforcementScheduleTime string
	IsCollapsed               bool
	Notes                     string
	PercentLabel              string
	Band                      string
}

// SessionOutput is the read projection of the active session.
type SessionOutput struct {
	StudentName         string
	TherapistName       string
	Date                string
	StartTime           string
	EndTime             string
	GeneralObservations string
	Programs            []ProgramOutput
}
