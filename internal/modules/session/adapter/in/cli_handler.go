package in

import (
	"context"

	sessiondto "abaterm/internal/modules/session/dto"
	sessionin "abaterm/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Current(ctx context.Context) sessiondto.SessionOutput {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) UpdateField(ctx context.Context, field sessiondto.SessionField, value string) sessiondto.SessionOutput {
	return h.usecase.UpdateField(ctx, field, value)
}

func (h CLIHandler) AddProgram(ctx context.Context, name string) (sessiondto.SessionOutput, bool) {
	return h.usecase.AddProgram(ctx, name)
}

func (h CLIHandler) UpdateProgram(ctx context.Context, programID string, update sessiondto.ProgramUpdate) sessiondto.SessionOutput {
	return h.usecase.UpdateProgram(ctx, programID, update)
}

func (h CLIHandler) ToggleTag(ctx context.Context, programID string, reinforcer bool, value string) sessiondto.SessionOutput {
	return h.usecase.ToggleTag(ctx, programID, reinforcer, value)
}

func (h CLIHandler) RemoveProgram(ctx context.Context, programID string) sessiondto.SessionOutput {
	return h.usecase.RemoveProgram(ctx, programID)
}

func (h CLIHandler) Save(ctx context.Context) (sessiondto.SaveOutput, error) {
	return h.usecase.Save(ctx)
}
