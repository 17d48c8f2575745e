package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
	"github.com/agrovida/agroops-api/pkg/textutil"
)

// CultivarUseCase casos de uso para variedades cultivadas. La deduplicación usa
// la clave de búsqueda normalizada ("Café Castillo" y "cafe castillo" son el mismo).
type CultivarUseCase struct {
	repo repository.CultivarRepository
}

// NewCultivarUseCase construye el caso de uso.
func NewCultivarUseCase(repo repository.CultivarRepository) *CultivarUseCase {
	return &CultivarUseCase{repo: repo}
}

// Create crea un cultivar; ErrDuplicate si el nombre normalizado ya existe en la empresa.
func (uc *CultivarUseCase) Create(tc *tenant.Context, in dto.CreateCultivarRequest) (*dto.CultivarResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if in.Name == "" || in.CropTypeID == "" {
		return nil, domain.ErrInvalidInput
	}
	key := textutil.SearchKey(in.Name)
	existing, _ := uc.repo.GetBySearchKey(tc.CompanyID, key)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	cultivar := &entity.Cultivar{
		ID:            uuid.New().String(),
		CompanyID:     tc.CompanyID,
		CropTypeID:    in.CropTypeID,
		Name:          in.Name,
		SearchKey:     key,
		DaysToHarvest: in.DaysToHarvest,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(cultivar); err != nil {
		return nil, err
	}
	return toCultivarResponse(cultivar), nil
}

// GetByID obtiene un cultivar de la empresa del caller.
func (uc *CultivarUseCase) GetByID(tc *tenant.Context, id string) (*dto.CultivarResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	cultivar, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if cultivar == nil {
		return nil, nil
	}
	return toCultivarResponse(cultivar), nil
}

// List lista cultivares de la empresa con paginación.
func (uc *CultivarUseCase) List(tc *tenant.Context, page dto.PageRequest) ([]dto.CultivarResponse, *dto.PageMeta, error) {
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
	items := make([]dto.CultivarResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCultivarResponse(c))
	}
	return items, dto.NewPageMeta(page.Page, page.Limit, total), nil
}

func toCultivarResponse(c *entity.Cultivar) *dto.CultivarResponse {
	if c == nil {
		return nil
	}
	return &dto.CultivarResponse{
		ID:            c.ID,
		CompanyID:     c.CompanyID,
		CropTypeID:    c.CropTypeID,
		Name:          c.Name,
		DaysToHarvest: c.DaysToHarvest,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
