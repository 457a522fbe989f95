package service

import (
	"context"
	"fmt"

	sessiondomain "abaterm/internal/modules/session/domain"
	summaryout "abaterm/internal/modules/summary/port/out"
	apperrors "abaterm/internal/platform/errors"
)

// SummaryService resolves which summarizer backend serves a request. A
// configured plugin takes precedence over the built-in Gemini client.
type SummaryService struct {
	backends []summaryout.Summarizer
}

func NewSummaryService(backends ...summaryout.Summarizer) *SummaryService {
	return &SummaryService{backends: backends}
}

// Pick returns the first available backend in precedence order.
func (s *SummaryService) Pick() (summaryout.Summarizer, bool) {
	for _, b := range s.backends {
		if b != nil && b.Available() {
			return b, true
		}
	}
	return nil, false
}

func (s *SummaryService) Generate(ctx context.Context, session sessiondomain.Session) (string, string, error) {
	backend, ok := s.Pick()
	if !ok {
		return "", "", fmt.Errorf("%w: configura una API key o un plugin", apperrors.ErrSummaryUnavailable)
	}
	text, err := backend.Summarize(ctx, session)
	if err != nil {
		return "", backend.Name(), err
	}
	return text, backend.Name(), nil
}
