package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
)

// AreaUseCase casos de uso CRUD para áreas de cultivo.
type AreaUseCase struct {
	repo         repository.AreaRepository
	facilityRepo repository.FacilityRepository
}

// NewAreaUseCase construye el caso de uso.
func NewAreaUseCase(repo repository.AreaRepository, facilityRepo repository.FacilityRepository) *AreaUseCase {
	return &AreaUseCase{repo: repo, facilityRepo: facilityRepo}
}

// Create crea un área dentro de una sede accesible del caller.
func (uc *AreaUseCase) Create(tc *tenant.Context, in dto.CreateAreaRequest) (*dto.AreaResponse, error) {
	if err := tc.RequireFacility(in.FacilityID); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	facility, err := uc.facilityRepo.GetByID(tc.CompanyID, in.FacilityID)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	area := &entity.Area{
		ID:         uuid.New().String(),
		CompanyID:  tc.CompanyID,
		FacilityID: in.FacilityID,
		Name:       in.Name,
		AreaType:   in.AreaType,
		Status:     entity.AreaStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(area); err != nil {
		return nil, err
	}
	return toAreaResponse(area), nil
}

// GetByID obtiene un área de la empresa del caller.
func (uc *AreaUseCase) GetByID(tc *tenant.Context, id string) (*dto.AreaResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	area, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, nil
	}
	if !tc.CanAccessFacility(area.FacilityID) {
		return nil, domain.ErrForbidden
	}
	return toAreaResponse(area), nil
}

// Update actualiza un área existente.
func (uc *AreaUseCase) Update(tc *tenant.Context, id string, in dto.UpdateAreaRequest) (*dto.AreaResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	area, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, nil
	}
	if !tc.CanAccessFacility(area.FacilityID) {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		area.Name = *in.Name
	}
	if in.AreaType != nil {
		area.AreaType = *in.AreaType
	}
	if in.Status != nil {
		area.Status = *in.Status
	}
	area.UpdatedAt = time.Now()
	if err := uc.repo.Update(area); err != nil {
		return nil, err
	}
	return toAreaResponse(area), nil
}

// List lista las áreas de una sede accesible con paginación.
func (uc *AreaUseCase) List(tc *tenant.Context, facilityID string, page dto.PageRequest) ([]dto.AreaResponse, *dto.PageMeta, error) {
	if err := tc.RequireFacility(facilityID); err != nil {
		return nil, nil, err
	}
	page.Normalize()
	list, err := uc.repo.ListByFacility(tc.CompanyID, facilityID, page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	total, err := uc.repo.CountByFacility(tc.CompanyID, facilityID)
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.AreaResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAreaResponse(a))
	}
	return items, dto.NewPageMeta(page.Page, page.Limit, total), nil
}

// Delete elimina un área sin lotes asociados.
func (uc *AreaUseCase) Delete(tc *tenant.Context, id string) error {
	if err := tc.Validate(); err != nil {
		return err
	}
	area, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return err
	}
	if area == nil {
		return domain.ErrNotFound
	}
	if !tc.CanAccessFacility(area.FacilityID) {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(tc.CompanyID, id)
}

func toAreaResponse(a *entity.Area) *dto.AreaResponse {
	if a == nil {
		return nil
	}
	return &dto.AreaResponse{
		ID:         a.ID,
		CompanyID:  a.CompanyID,
		FacilityID: a.FacilityID,
		Name:       a.Name,
		AreaType:   a.AreaType,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
