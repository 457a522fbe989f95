package usecase

import (
	"context"

	"abaterm/internal/modules/summary/dto"
	summaryout "abaterm/internal/modules/summary/port/out"
	"abaterm/internal/modules/summary/service"
)

const (
	msgNoBackend   = "Error: no hay generador de resúmenes configurado. Agrega una API key de Gemini o un plugin."
	msgGenerateErr = "Error al conectar con el asistente inteligente. Verifica tu conexión o API Key."
)

type Interactor struct {
	svc      *service.SummaryService
	sessions summaryout.SessionSource
}

func NewInteractor(svc *service.SummaryService, sessions summaryout.SessionSource) *Interactor {
	return &Interactor{svc: svc, sessions: sessions}
}

func (i *Interactor) Ready() bool {
	_, ok := i.svc.Pick()
	return ok
}

func (i *Interactor) Generate(ctx context.Context) dto.SummaryOutput {
	if !i.Ready() {
		return dto.SummaryOutput{Text: msgNoBackend, Failed: true}
	}
	session := i.sessions.Snapshot()
	text, backend, err := i.svc.Generate(ctx, session)
	if err != nil {
		return dto.SummaryOutput{Text: msgGenerateErr, Backend: backend, Failed: true}
	}
	return dto.SummaryOutput{Text: text, Backend: backend}
}
