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

// FacilityUseCase casos de uso CRUD para sedes. Todas las operaciones reciben el
// tenant.Context verificado: el company id sale de la sesión, nunca del request.
type FacilityUseCase struct {
	repo        repository.FacilityRepository
	companyRepo repository.CompanyRepository
}

// NewFacilityUseCase construye el caso de uso.
func NewFacilityUseCase(repo repository.FacilityRepository, companyRepo repository.CompanyRepository) *FacilityUseCase {
	return &FacilityUseCase{repo: repo, companyRepo: companyRepo}
}

// Create crea una sede dentro de la cuota del plan de la empresa.
func (uc *FacilityUseCase) Create(tc *tenant.Context, in dto.CreateFacilityRequest) (*dto.FacilityResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(tc.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil || company.Status != entity.CompanyStatusActive {
		return nil, domain.ErrForbidden
	}
	count, err := uc.repo.CountByCompany(tc.CompanyID)
	if err != nil {
		return nil, err
	}
	if count >= int64(company.FacilityQuota) {
		return nil, domain.ErrQuotaExceeded
	}

	now := time.Now()
	facility := &entity.Facility{
		ID:          uuid.New().String(),
		CompanyID:   tc.CompanyID, // sellado desde la sesión, inmutable después
		Name:        in.Name,
		Address:     in.Address,
		GeoDivision: in.GeoDivision,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(facility); err != nil {
		return nil, err
	}
	return toFacilityResponse(facility), nil
}

// GetByID obtiene una sede de la empresa del caller. Un id de otra empresa
// resulta en NotFound: el filtro de tenant vive en la consulta.
func (uc *FacilityUseCase) GetByID(tc *tenant.Context, id string) (*dto.FacilityResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	facility, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, nil
	}
	if !tc.CanAccessFacility(facility.ID) {
		return nil, domain.ErrForbidden
	}
	return toFacilityResponse(facility), nil
}

// Update actualiza una sede. CompanyID es inmutable.
func (uc *FacilityUseCase) Update(tc *tenant.Context, id string, in dto.UpdateFacilityRequest) (*dto.FacilityResponse, error) {
	if err := tc.RequireFacility(id); err != nil {
		if err == domain.ErrInvalidInput {
			return nil, domain.ErrInvalidInput
		}
		return nil, err
	}
	facility, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, nil
	}
	if in.Name != nil {
		facility.Name = *in.Name
	}
	if in.Address != nil {
		facility.Address = *in.Address
	}
	if in.Status != nil {
		facility.Status = *in.Status
	}
	facility.UpdatedAt = time.Now()
	if err := uc.repo.Update(facility); err != nil {
		return nil, err
	}
	return toFacilityResponse(facility), nil
}

// List lista las sedes de la empresa del caller, restringidas al conjunto
// accesible del usuario.
func (uc *FacilityUseCase) List(tc *tenant.Context, page dto.PageRequest) ([]dto.FacilityResponse, *dto.PageMeta, error) {
	if err := tc.Validate(); err != nil {
		return nil, nil, err
	}
	page.Normalize()
	list, err := uc.repo.ListByCompany(tc.CompanyID, page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	total, err := uc.repo.CountByCompany(tc.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.FacilityResponse, 0, len(list))
	for _, f := range list {
		if !tc.CanAccessFacility(f.ID) {
			continue
		}
		items = append(items, *toFacilityResponse(f))
	}
	return items, dto.NewPageMeta(page.Page, page.Limit, total), nil
}

func toFacilityResponse(f *entity.Facility) *dto.FacilityResponse {
	if f == nil {
		return nil
	}
	return &dto.FacilityResponse{
		ID:          f.ID,
		CompanyID:   f.CompanyID,
		Name:        f.Name,
		Address:     f.Address,
		GeoDivision: f.GeoDivision,
		Status:      f.Status,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
