package out

import (
	"context"

	"abaterm/internal/modules/session/domain"
)

// SubmitResult is the submission outcome surfaced to the user. The submitter
// never returns a Go error for remote failures; every failure path collapses
// into Succeeded=false plus a human-readable message. Err classifies the
// failure against the apperrors sentinels for callers that branch on cause.
type SubmitResult struct {
	Succeeded bool
	Message   string
	Err       error
}

// Submitter posts a finalized session to the remote sheet store.
type Submitter interface {
	Submit(ctx context.Context, session domain.Session) SubmitResult
}

// DraftStore persists the in-progress session so an interrupted terminal
// session can be resumed.
type DraftStore interface {
	SaveDraft(ctx context.Context, session domain.Session) error
	LoadDraft(ctx context.Context) (domain.Session, error)
	ClearDraft(ctx context.Context) error
}

// ArchiveProjector records successfully submitted sessions in the local
// archive. Insert-only; the remote sheet is the source of truth.
type ArchiveProjector interface {
	RecordSubmission(ctx context.Context, session domain.Session) error
}
