package in

import (
	"context"

	"abaterm/internal/modules/summary/dto"
)

type Usecase interface {
	// Generate produces a summary for the current session. It degrades to a
	// failed SummaryOutput instead of returning an error for backend trouble.
	Generate(ctx context.Context) dto.SummaryOutput
	// Ready reports whether any summarizer backend is configured.
	Ready() bool
}
