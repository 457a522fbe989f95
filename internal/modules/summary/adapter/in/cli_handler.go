package in

import (
	"context"

	"abaterm/internal/modules/summary/dto"
	summaryin "abaterm/internal/modules/summary/port/in"
)

type CLIHandler struct {
	usecase summaryin.Usecase
}

func NewCLIHandler(usecase summaryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Generate(ctx context.Context) dto.SummaryOutput {
	return h.usecase.Generate(ctx)
}

func (h CLIHandler) Ready() bool {
	return h.usecase.Ready()
}
