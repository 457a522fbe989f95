package usecase

import (
	"context"

	"abaterm/internal/modules/catalog/domain"
	"abaterm/internal/modules/catalog/dto"
	catalogin "abaterm/internal/modules/catalog/port/in"
	"abaterm/internal/modules/catalog/service"
)

type Interactor struct {
	svc *service.CatalogService
}

func NewInteractor(svc *service.CatalogService) catalogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) dto.CatalogOutput {
	return projectCatalog(i.svc.Load(ctx))
}

func (i *Interactor) Refresh(ctx context.Context) dto.CatalogOutput {
	return projectCatalog(i.svc.Reload(ctx))
}

func (i *Interactor) SearchPrograms(ctx context.Context, term string) dto.ProgramSearchOutput {
	catalog := i.svc.Load(ctx)
	return dto.ProgramSearchOutput{
		Matches:    catalog.FilterPrograms(term),
		ExactMatch: catalog.HasExactProgram(term),
	}
}

func projectCatalog(c domain.Catalog) dto.CatalogOutput {
	return dto.CatalogOutput{
		Programs:   append([]string(nil), c.Programs...),
		Students:   append([]string(nil), c.Students...),
		Therapists: append([]string(nil), c.Therapists...),
		Degraded:   c.Degraded,
		Empty:      c.Empty(),
	}
}
