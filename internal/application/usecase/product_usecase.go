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

// ProductUseCase casos de uso CRUD para productos/insumos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto; ErrDuplicate si el SKU ya existe en la empresa.
func (uc *ProductUseCase) Create(tc *tenant.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if in.SKU == "" || in.Name == "" || in.UnitID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(tc.CompanyID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		CompanyID:  tc.CompanyID,
		SKU:        in.SKU,
		Name:       in.Name,
		Category:   in.Category,
		UnitID:     in.UnitID,
		SupplierID: in.SupplierID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa del caller.
func (uc *ProductUseCase) GetByID(tc *tenant.Context, id string) (*dto.ProductResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(tc *tenant.Context, page dto.PageRequest) ([]dto.ProductResponse, *dto.PageMeta, error) {
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
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, dto.NewPageMeta(page.Page, page.Limit, total), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		CompanyID:  p.CompanyID,
		SKU:        p.SKU,
		Name:       p.Name,
		Category:   p.Category,
		UnitID:     p.UnitID,
		SupplierID: p.SupplierID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
