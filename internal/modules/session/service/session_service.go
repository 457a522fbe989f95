package service

import (
	"strings"

	"abaterm/internal/modules/session/domain"
	"abaterm/internal/platform/clock"
	"abaterm/internal/platform/id"
)

// SessionService holds the mutation rules for a session. Every operation
// takes a Session value and returns a new one; programs are copied before
// being touched so callers never see shared state mutate underneath them.
type SessionService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewSessionService(clock clock.Clock, idGen id.Generator) *SessionService {
	return &SessionService{clock: clock, idGen: idGen}
}

// ProgramPatch is a partial program update; nil fields are left untouched.
type ProgramPatch struct {
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

// NewSession creates an empty session stamped with the local date and a
// start time of now.
func (s *SessionService) NewSession() domain.Session {
	now := s.clock.Now()
	return domain.Session{
		Date:      domain.LocalDate(now),
		StartTime: domain.ClockTime(now),
		Programs:  []domain.Program{},
	}
}

// AddProgram appends a fresh program with all-default fields. Blank or
// whitespace-only names are a no-op (ok=false).
func (s *SessionService) AddProgram(session domain.Session, name string) (domain.Session, bool) {
	if strings.TrimSpace(name) == "" {
		return session, false
	}
	program := domain.Program{
		ID:                 s.idGen.New(),
		Name:               name,
		SelectedHelp:       []string{},
		SelectedReinforcer: []string{},
	}
	programs := make([]domain.Program, 0, len(session.Programs)+1)
	programs = append(programs, session.Programs...)
	programs = append(programs, program)
	session.Programs = programs
	return session, true
}

// UpdateProgram merges patch into the program with the given id. An unknown
// id is a no-op. Counts are clamped at zero and the sequence is never
// reordered.
func (s *SessionService) UpdateProgram(session domain.Session, programID string, patch ProgramPatch) domain.Session {
	idx := session.FindProgram(programID)
	if idx < 0 {
		return session
	}
	programs := make([]domain.Program, len(session.Programs))
	copy(programs, session.Programs)

	p := &programs[idx]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Level != nil {
		p.Level = *patch.Level
	}
	if patch.Elements != nil {
		p.Elements = *patch.Elements
	}
	if patch.CorrectCount != nil {
		p.CorrectCount = clampNonNegative(*patch.CorrectCount)
	}
	if patch.IncorrectCount != nil {
		p.IncorrectCount = clampNonNegative(*patch.IncorrectCount)
	}
	if patch.SelectedHelp != nil {
		p.SelectedHelp = append([]string(nil), (*patch.SelectedHelp)...)
	}
	if patch.SelectedReinforcer != nil {
		p.SelectedReinforcer = append([]string(nil), (*patch.SelectedReinforcer)...)
	}
	if patch.ReinforcementSchedule != nil {
		p.ReinforcementSchedule = *patch.ReinforcementSchedule
	}
	if patch.ReinforcementScheduleTime != nil {
		p.ReinforcementScheduleTime = *patch.ReinforcementScheduleTime
	}
	if patch.IsCollapsed != nil {
		p.IsCollapsed = *patch.IsCollapsed
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	session.Programs = programs
	return session
}

// ToggleTag adds value to the program's tag set when absent and removes it
// when present. field selects SelectedHelp or SelectedReinforcer.
func (s *SessionService) ToggleTag(session domain.Session, programID string, reinforcer bool, value string) domain.Session {
	idx := session.FindProgram(programID)
	if idx < 0 {
		return session
	}
	current := session.Programs[idx].SelectedHelp
	if reinforcer {
		current = session.Programs[idx].SelectedReinforcer
	}
	next := make([]string, 0, len(current)+1)
	found := false
	for _, v := range current {
		if v == value {
			found = true
			continue
		}
		next = append(next, v)
	}
	if !found {
		next = append(next, value)
	}
	patch := ProgramPatch{SelectedHelp: &next}
	if reinforcer {
		patch = ProgramPatch{SelectedReinforcer: &next}
	}
	return s.UpdateProgram(session, programID, patch)
}

// RemoveProgram deletes the program in place, preserving the order of the
// rest. Confirmation is the caller's responsibility; removal is destructive
// and the counts are unrecoverable.
func (s *SessionService) RemoveProgram(session domain.Session, programID string) domain.Session {
	idx := session.FindProgram(programID)
	if idx < 0 {
		return session
	}
	programs := make([]domain.Program, 0, len(session.Programs)-1)
	programs = append(programs, session.Programs[:idx]...)
	programs = append(programs, session.Programs[idx+1:]...)
	session.Programs = programs
	return session
}

// Finalize stamps the end time. Called once, at submission.
func (s *SessionService) Finalize(session domain.Session) domain.Session {
	session.EndTime = domain.ClockTime(s.clock.Now())
	return session
}

// Reset prepares the session for the next encounter after a successful
// submission: student, therapist and date are retained; times, observations
// and programs are cleared and a fresh start time is captured.
func (s *SessionService) Reset(session domain.Session) domain.Session {
	return domain.Session{
		StudentName:   session.StudentName,
		TherapistName: session.TherapistName,
		Date:          session.Date,
		StartTime:     domain.ClockTime(s.clock.Now()),
		Programs:      []domain.Program{},
	}
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
