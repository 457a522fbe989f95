package usecase

import (
	"context"
	"fmt"
	"sync"

	"abaterm/internal/modules/session/domain"
	"abaterm/internal/modules/session/dto"
	sessionin "abaterm/internal/modules/session/port/in"
	sessionout "abaterm/internal/modules/session/port/out"
	"abaterm/internal/modules/session/service"
	apperrors "abaterm/internal/platform/errors"
)

// Interactor owns the single active session record. The UI never touches the
// session directly; it asks for projections and sends mutations here. A
// mutex guards the record because save runs off the event loop.
type Interactor struct {
	svc       *service.SessionService
	submitter sessionout.Submitter
	drafts    sessionout.DraftStore
	archive   sessionout.ArchiveProjector

	mu      sync.Mutex
	session domain.Session
}

func NewInteractor(svc *service.SessionService, submitter sessionout.Submitter, drafts sessionout.DraftStore, archive sessionout.ArchiveProjector) sessionin.Usecase {
	i := &Interactor{svc: svc, submitter: submitter, drafts: drafts, archive: archive}
	i.session = svc.NewSession()
	if drafts != nil {
		if draft, err := drafts.LoadDraft(context.Background()); err == nil {
			i.session = draft
		}
	}
	return i
}

func (i *Interactor) Current(_ context.Context) dto.SessionOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	return project(i.session)
}

func (i *Interactor) UpdateField(ctx context.Context, field dto.SessionField, value string) dto.SessionOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	switch field {
	case dto.FieldStudentName:
		i.session.StudentName = value
	case dto.FieldTherapistName:
		i.session.TherapistName = value
	case dto.FieldDate:
		i.session.Date = value
	case dto.FieldGeneralObservations:
		i.session.GeneralObservations = value
	}
	i.persistDraft(ctx)
	return project(i.session)
}

func (i *Interactor) AddProgram(ctx context.Context, name string) (dto.SessionOutput, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	next, ok := i.svc.AddProgram(i.session, name)
	i.session = next
	if ok {
		i.persistDraft(ctx)
	}
	return project(i.session), ok
}

func (i *Interactor) UpdateProgram(ctx context.Context, programID string, update dto.ProgramUpdate) dto.SessionOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.session = i.svc.UpdateProgram(i.session, programID, service.ProgramPatch{
		Name:                      update.Name,
		Level:                     update.Level,
		Elements:                  update.Elements,
		CorrectCount:              update.CorrectCount,
		IncorrectCount:            update.IncorrectCount,
		SelectedHelp:              update.SelectedHelp,
		SelectedReinforcer:        update.SelectedReinforcer,
		ReinforcementSchedule:     update.ReinforcementSchedule,
		ReinforcementScheduleTime: update.ReinforcementScheduleTime,
		IsCollapsed:               update.IsCollapsed,
		Notes:                     update.Notes,
	})
	i.persistDraft(ctx)
	return project(i.session)
}

func (i *Interactor) ToggleTag(ctx context.Context, programID string, reinforcer bool, value string) dto.SessionOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.session = i.svc.ToggleTag(i.session, programID, reinforcer, value)
	i.persistDraft(ctx)
	return project(i.session)
}

// RemoveProgram is destructive and unrecoverable; the confirmation step is
// the caller's job.
func (i *Interactor) RemoveProgram(ctx context.Context, programID string) dto.SessionOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.session = i.svc.RemoveProgram(i.session, programID)
	i.persistDraft(ctx)
	return project(i.session)
}

// Save validates, stamps the end time, submits, and on success resets the
// session while retaining student, therapist and date. Validation failures
// return an error before any network call; submission failures come back in
// the SaveOutput with the session left intact for retry.
func (i *Interactor) Save(ctx context.Context) (dto.SaveOutput, error) {
	i.mu.Lock()
	if err := i.session.Validate(); err != nil {
		i.mu.Unlock()
		return dto.SaveOutput{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	final := i.svc.Finalize(i.session)
	i.session = final
	i.mu.Unlock()

	result := i.submitter.Submit(ctx, final)

	i.mu.Lock()
	defer i.mu.Unlock()
	if !result.Succeeded {
		// Leave everything as entered; only the end stamp is rolled back so a
		// retry captures a fresh one.
		i.session.EndTime = ""
		i.persistDraft(ctx)
		return dto.SaveOutput{Succeeded: false, Message: result.Message}, nil
	}

	if i.archive != nil {
		// The sheet accepted the session; a local archive hiccup must not
		// turn that into a user-facing failure.
		_ = i.archive.RecordSubmission(ctx, final)
	}
	if i.drafts != nil {
		_ = i.drafts.ClearDraft(ctx)
	}
	i.session = i.svc.Reset(final)
	return dto.SaveOutput{Succeeded: true, Message: result.Message}, nil
}

func (i *Interactor) persistDraft(ctx context.Context) {
	if i.drafts == nil {
		return
	}
	_ = i.drafts.SaveDraft(ctx, i.session)
}

func bandLabel(b domain.PercentBand) string {
	switch b {
	case domain.BandHigh:
		return dto.BandHigh
	case domain.BandMid:
		return dto.BandMid
	case domain.BandLow:
		return dto.BandLow
	}
	return dto.BandNone
}

func project(s domain.Session) dto.SessionOutput {
	programs := make([]dto.ProgramOutput, 0, len(s.Programs))
	for _, p := range s.Programs {
		programs = append(programs, dto.ProgramOutput{
			ID:                        p.ID,
			Name:                      p.Name,
			Level:                     p.Level,
			Elements:                  p.Elements,
			CorrectCount:              p.CorrectCount,
			IncorrectCount:            p.IncorrectCount,
			SelectedHelp:              append([]string(nil), p.SelectedHelp...),
			SelectedReinforcer:        append([]string(nil), p.SelectedReinforcer...),
			ReinforcementSchedule:     p.ReinforcementSchedule,
			ReinforcementScheduleTime: p.ReinforcementScheduleTime,
			IsCollapsed:               p.IsCollapsed,
			Notes:                     p.Notes,
			PercentLabel:              p.PercentLabel(),
			Band:                      bandLabel(p.Band()),
		})
	}
	return dto.SessionOutput{
		StudentName:         s.StudentName,
		TherapistName:       s.TherapistName,
		Date:                s.Date,
		StartTime:           s.StartTime,
		EndTime:             s.EndTime,
		GeneralObservations: s.GeneralObservations,
		Programs:            programs,
	}
}

// Snapshot exposes the underlying session value for submission previews and
// the summary prompt. Callers get a deep-enough copy: program slices are
// cloned by projection rules above, but the raw domain value here is cloned
// program-by-program as well.
func (i *Interactor) Snapshot() domain.Session {
	i.mu.Lock()
	defer i.mu.Unlock()
	s := i.session
	s.Programs = make([]domain.Program, len(i.session.Programs))
	copy(s.Programs, i.session.Programs)
	return s
}
