package in

import (
	"context"

	catalogdto "abaterm/internal/modules/catalog/dto"
	catalogin "abaterm/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Get(ctx context.Context) catalogdto.CatalogOutput {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) Refresh(ctx context.Context) catalogdto.CatalogOutput {
	return h.usecase.Refresh(ctx)
}

func (h CLIHandler) SearchPrograms(ctx context.Context, term string) catalogdto.ProgramSearchOutput {
	return h.usecase.SearchPrograms(ctx, term)
}
