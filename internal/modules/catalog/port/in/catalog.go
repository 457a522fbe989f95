package in

import (
	"context"

	"abaterm/internal/modules/catalog/dto"
)

type Usecase interface {
	Get(ctx context.Context) dto.CatalogOutput
	Refresh(ctx context.Context) dto.CatalogOutput
	SearchPrograms(ctx context.Context, term string) dto.ProgramSearchOutput
}
