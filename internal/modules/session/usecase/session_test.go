package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"abaterm/internal/modules/session/domain"
	"abaterm/internal/modules/session/dto"
	sessionout "abaterm/internal/modules/session/port/out"
	"abaterm/internal/modules/session/service"
	"abaterm/internal/modules/session/usecase"
	apperrors "abaterm/internal/platform/errors"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("prog-%d", s.n)
}

type fakeSubmitter struct {
	calls  int
	result sessionout.SubmitResult
	got    domain.Session
}

func (f *fakeSubmitter) Submit(_ context.Context, session domain.Session) sessionout.SubmitResult {
	f.calls++
	f.got = session
	return f.result
}

type memDraftStore struct {
	draft    domain.Session
	hasDraft bool
	saves    int
}

func (m *memDraftStore) SaveDraft(_ context.Context, s domain.Session) error {
	m.draft = s
	m.hasDraft = true
	m.saves++
	return nil
}

func (m *memDraftStore) LoadDraft(_ context.Context) (domain.Session, error) {
	if !m.hasDraft {
		return domain.Session{}, apperrors.ErrNoDraft
	}
	return m.draft, nil
}

func (m *memDraftStore) ClearDraft(_ context.Context) error {
	m.hasDraft = false
	return nil
}

type fakeArchive struct {
	recorded []domain.Session
}

func (f *fakeArchive) RecordSubmission(_ context.Context, s domain.Session) error {
	f.recorded = append(f.recorded, s)
	return nil
}

func newService(times ...time.Time) *service.SessionService {
	if len(times) == 0 {
		times = []time.Time{time.Date(2026, 8, 27, 9, 0, 0, 0, time.Local)}
	}
	return service.NewSessionService(&fakeClock{values: times}, &seqID{})
}

func TestSaveRejectsIncompleteSessionBeforeAnyNetworkCall(t *testing.T) {
	t.Parallel()
	submitter := &fakeSubmitter{result: sessionout.SubmitResult{Succeeded: true}}
	uc := usecase.NewInteractor(newService(), submitter, &memDraftStore{}, &fakeArchive{})
	ctx := context.Background()

	uc.AddProgram(ctx, "Ecoicas")
	if _, err := uc.Save(ctx); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if submitter.calls != 0 {
		t.Fatalf("no submission may happen on validation failure, got %d calls", submitter.calls)
	}

	uc.UpdateField(ctx, dto.FieldStudentName, "Alessandra G")
	uc.UpdateField(ctx, dto.FieldTherapistName, "Celeste M")
	uc.RemoveProgram(ctx, uc.Current(ctx).Programs[0].ID)
	if _, err := uc.Save(ctx); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("empty program list must fail validation, got %v", err)
	}
	if submitter.calls != 0 {
		t.Fatal("still no submission expected")
	}
}

func TestSuccessfulSaveResetsAndRetainsIdentity(t *testing.T) {
	t.Parallel()
	svc := newService(
		time.Date(2026, 8, 27, 9, 0, 0, 0, time.Local),   // session start
		time.Date(2026, 8, 27, 10, 30, 0, 0, time.Local), // finalize
		time.Date(2026, 8, 27, 10, 31, 0, 0, time.Local), // reset start
	)
	submitter := &fakeSubmitter{result: sessionout.SubmitResult{Succeeded: true}}
	drafts := &memDraftStore{}
	archive := &fakeArchive{}
	uc := usecase.NewInteractor(svc, submitter, drafts, archive)
	ctx := context.Background()

	uc.UpdateField(ctx, dto.FieldStudentName, "Alessandra G")
	uc.UpdateField(ctx, dto.FieldTherapistName, "Celeste M")
	uc.AddProgram(ctx, "Imitación Motora")
	uc.AddProgram(ctx, "Ecoicas")

	out, err := uc.Save(ctx)
	if err != nil || !out.Succeeded {
		t.Fatalf("save failed: %+v %v", out, err)
	}
	if submitter.got.EndTime != "10:30" {
		t.Fatalf("submitted session missing end stamp: %q", submitter.got.EndTime)
	}
	if len(submitter.got.Programs) != 2 {
		t.Fatalf("submitted %d programs", len(submitter.got.Programs))
	}

	current := uc.Current(ctx)
	if current.StudentName != "Alessandra G" || current.TherapistName != "Celeste M" || current.Date != "2026-08-27" {
		t.Fatalf("identity not retained: %+v", current)
	}
	if len(current.Programs) != 0 || current.EndTime != "" || current.StartTime != "10:31" {
		t.Fatalf("session not reset: %+v", current)
	}
	if len(archive.recorded) != 1 || archive.recorded[0].StudentName != "Alessandra G" {
		t.Fatalf("submission not archived: %+v", archive.recorded)
	}
	if drafts.hasDraft {
		t.Fatal("draft must be cleared after a successful save")
	}
}

func TestFailedSaveKeepsSessionForRetry(t *testing.T) {
	t.Parallel()
	submitter := &fakeSubmitter{result: sessionout.SubmitResult{Succeeded: false, Message: "Error del servidor: 502"}}
	uc := usecase.NewInteractor(newService(), submitter, &memDraftStore{}, &fakeArchive{})
	ctx := context.Background()

	uc.UpdateField(ctx, dto.FieldStudentName, "Estudiante Prueba")
	uc.UpdateField(ctx, dto.FieldTherapistName, "Terapeuta Prueba")
	uc.AddProgram(ctx, "Emparejamiento")

	out, err := uc.Save(ctx)
	if err != nil {
		t.Fatalf("remote failure must not be a Go error: %v", err)
	}
	if out.Succeeded || out.Message != "Error del servidor: 502" {
		t.Fatalf("unexpected output %+v", out)
	}
	current := uc.Current(ctx)
	if len(current.Programs) != 1 {
		t.Fatal("programs must be kept for retry")
	}
	if current.EndTime != "" {
		t.Fatalf("end stamp must be rolled back, got %q", current.EndTime)
	}
}

func TestDraftPersistsAcrossRestart(t *testing.T) {
	t.Parallel()
	drafts := &memDraftStore{}
	uc := usecase.NewInteractor(newService(), &fakeSubmitter{}, drafts, nil)
	ctx := context.Background()

	uc.UpdateField(ctx, dto.FieldStudentName, "Alessandra G")
	uc.AddProgram(ctx, "Intraverbales")
	if drafts.saves == 0 {
		t.Fatal("mutations must persist the draft")
	}

	revived := usecase.NewInteractor(newService(), &fakeSubmitter{}, drafts, nil)
	current := revived.Current(ctx)
	if current.StudentName != "Alessandra G" || len(current.Programs) != 1 {
		t.Fatalf("draft not recovered: %+v", current)
	}
}

func TestUpdateProgramProjectionIncludesDerivedLabel(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(newService(), &fakeSubmitter{}, nil, nil)
	ctx := context.Background()

	out, ok := uc.AddProgram(ctx, "Imitación Motora")
	if !ok {
		t.Fatal("add rejected")
	}
	pid := out.Programs[0].ID
	if out.Programs[0].PercentLabel != "—" {
		t.Fatalf("zero-trial label = %q", out.Programs[0].PercentLabel)
	}

	correct, wrong := 7, 3
	out = uc.UpdateProgram(ctx, pid, dto.ProgramUpdate{CorrectCount: &correct, IncorrectCount: &wrong})
	if out.Programs[0].PercentLabel != "70%" {
		t.Fatalf("label = %q, want 70%%", out.Programs[0].PercentLabel)
	}
}
