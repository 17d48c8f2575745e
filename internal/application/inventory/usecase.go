// Package inventory implementa los casos de uso de existencias por sede,
// incluida la precondición de concurrencia optimista sobre la cantidad.
package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
)

// UseCase casos de uso de inventario.
type UseCase struct {
	repo        repository.InventoryItemRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.InventoryItemRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{repo: repo, productRepo: productRepo}
}

// Create da de alta la existencia de un producto en una sede. Un producto solo
// tiene una fila de existencia por sede (ErrDuplicate si ya existe).
func (uc *UseCase) Create(tc *tenant.Context, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	if err := tc.RequireFacility(in.FacilityID); err != nil {
		return nil, err
	}
	if in.ProductID == "" || in.QuantityAvailable.IsNegative() || in.ReorderThreshold.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(tc.CompanyID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	existing, _ := uc.repo.GetByProductAndFacility(tc.CompanyID, in.ProductID, in.FacilityID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:                uuid.New().String(),
		CompanyID:         tc.CompanyID,
		FacilityID:        in.FacilityID,
		ProductID:         in.ProductID,
		QuantityAvailable: in.QuantityAvailable,
		ReorderThreshold:  in.ReorderThreshold,
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene una existencia de la empresa del caller.
func (uc *UseCase) GetByID(tc *tenant.Context, id string) (*dto.InventoryItemResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	item, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if !tc.CanAccessFacility(item.FacilityID) {
		return nil, domain.ErrForbidden
	}
	return toItemResponse(item), nil
}

// UpdateQuantity ajusta la cantidad disponible. Si el caller envía
// expected_version y no coincide con la versión almacenada, la operación
// devuelve ErrVersionMismatch en lugar de sobrescribir la edición concurrente;
// sin precondición aplica last-write-wins.
func (uc *UseCase) UpdateQuantity(tc *tenant.Context, id string, in dto.UpdateInventoryQuantityRequest) (*dto.InventoryItemResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if in.QuantityAvailable.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if !tc.CanAccessFacility(item.FacilityID) {
		return nil, domain.ErrForbidden
	}

	item.QuantityAvailable = in.QuantityAvailable
	item.UpdatedAt = time.Now()

	// El repositorio incrementa Version en la fila y lo refleja en el entity.
	if in.ExpectedVersion != nil {
		if err := uc.repo.UpdateWithVersion(item, *in.ExpectedVersion); err != nil {
			return nil, err
		}
	} else {
		if err := uc.repo.Update(item); err != nil {
			return nil, err
		}
	}
	return toItemResponse(item), nil
}

// ListByFacility lista existencias de una sede accesible con paginación.
func (uc *UseCase) ListByFacility(tc *tenant.Context, facilityID string, page dto.PageRequest) ([]dto.InventoryItemResponse, *dto.PageMeta, error) {
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
	items := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return items, dto.NewPageMeta(page.Page, page.Limit, total), nil
}

func toItemResponse(i *entity.InventoryItem) *dto.InventoryItemResponse {
	if i == nil {
		return nil
	}
	return &dto.InventoryItemResponse{
		ID:                i.ID,
		CompanyID:         i.CompanyID,
		FacilityID:        i.FacilityID,
		ProductID:         i.ProductID,
		QuantityAvailable: i.QuantityAvailable,
		ReorderThreshold:  i.ReorderThreshold,
		LowStock:          i.LowStock(),
		Version:           i.Version,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}
