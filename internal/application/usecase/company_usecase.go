package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (tenant raíz).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una nueva empresa en el signup. Genera ID, cuotas según plan y
// estado inicial. Devuelve domain.ErrDuplicate si la identificación tributaria ya existe.
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByTaxID(in.TaxID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	plan := in.Plan
	if plan == "" {
		plan = entity.PlanBasic
	}
	facilities, users := entity.PlanQuotas(plan)
	now := time.Now()
	company := &entity.Company{
		ID:            uuid.New().String(),
		Name:          in.Name,
		TaxID:         in.TaxID,
		Plan:          plan,
		FacilityQuota: facilities,
		UserQuota:     users,
		Status:        entity.CompanyStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return toCompanyResponse(company), nil
}

// Update actualiza nombre, plan o estado. La baja es un cambio a status inactive:
// las empresas nunca se borran físicamente.
func (uc *CompanyUseCase) Update(id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Plan != nil {
		company.Plan = *in.Plan
		company.FacilityQuota, company.UserQuota = entity.PlanQuotas(*in.Plan)
	}
	if in.Status != nil {
		if *in.Status != entity.CompanyStatusActive && *in.Status != entity.CompanyStatusInactive {
			return nil, domain.ErrInvalidInput
		}
		company.Status = *in.Status
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(page dto.PageRequest) ([]dto.CompanyResponse, *dto.PageMeta, error) {
	page.Normalize()
	list, err := uc.repo.List(page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	total, err := uc.repo.Count()
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return items, dto.NewPageMeta(page.Page, page.Limit, total), nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		TaxID:         c.TaxID,
		Plan:          c.Plan,
		FacilityQuota: c.FacilityQuota,
		UserQuota:     c.UserQuota,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
