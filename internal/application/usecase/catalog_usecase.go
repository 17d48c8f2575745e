package usecase

import (
	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/domain/repository"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
)

// CatalogUseCase lectura de catálogos de referencia (tipos de cultivo, unidades
// de medida, divisiones geográficas). Compartidos entre tenants, solo lectura.
type CatalogUseCase struct {
	repo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// CropTypes lista los tipos de cultivo.
func (uc *CatalogUseCase) CropTypes(tc *tenant.Context) ([]dto.CatalogEntry, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	list, err := uc.repo.CropTypes()
	if err != nil {
		return nil, err
	}
	entries := make([]dto.CatalogEntry, 0, len(list))
	for _, ct := range list {
		entries = append(entries, dto.CatalogEntry{ID: ct.ID, Name: ct.Name})
	}
	return entries, nil
}

// UnitsOfMeasure lista las unidades de medida.
func (uc *CatalogUseCase) UnitsOfMeasure(tc *tenant.Context) ([]dto.CatalogEntry, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	list, err := uc.repo.UnitsOfMeasure()
	if err != nil {
		return nil, err
	}
	entries := make([]dto.CatalogEntry, 0, len(list))
	for _, u := range list {
		entries = append(entries, dto.CatalogEntry{ID: u.ID, Code: u.Code, Name: u.Name})
	}
	return entries, nil
}

// GeoDivisions lista divisiones geográficas; parentID vacío devuelve el primer nivel.
func (uc *CatalogUseCase) GeoDivisions(tc *tenant.Context, parentID string) ([]dto.CatalogEntry, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	list, err := uc.repo.GeoDivisions(parentID)
	if err != nil {
		return nil, err
	}
	entries := make([]dto.CatalogEntry, 0, len(list))
	for _, g := range list {
		entries = append(entries, dto.CatalogEntry{ID: g.ID, Code: g.Code, Name: g.Name})
	}
	return entries, nil
}
