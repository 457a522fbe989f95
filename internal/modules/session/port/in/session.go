package in

import (
	"context"

	"abaterm/internal/modules/session/domain"
	"abaterm/internal/modules/session/dto"
)

// Usecase is the session controller: the single owner of the active session
// record. All mutations flow through here; the UI renders read projections.
type Usecase interface {
	Current(ctx context.Context) dto.SessionOutput
	UpdateField(ctx context.Context, field dto.SessionField, value string) dto.SessionOutput
	AddProgram(ctx context.Context, name string) (dto.SessionOutput, bool)
	UpdateProgram(ctx context.Context, programID string, update dto.ProgramUpdate) dto.SessionOutput
	ToggleTag(ctx context.Context, programID string, reinforcer bool, value string) dto.SessionOutput
	RemoveProgram(ctx context.Context, programID string) dto.SessionOutput
	Save(ctx context.Context) (dto.SaveOutput, error)
	// Snapshot hands out a detached copy of the session record, for the
	// summary prompt and scripted inspection.
	Snapshot() domain.Session
}
