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

// Transiciones de estado válidas de una orden de producción.
var orderTransitions = map[string][]string{
	"open":        {"in_progress", "cancelled"},
	"in_progress": {"done", "cancelled"},
}

// ProductionOrderUseCase casos de uso para órdenes de producción.
type ProductionOrderUseCase struct {
	repo      repository.ProductionOrderRepository
	batchRepo repository.BatchRepository
}

// NewProductionOrderUseCase construye el caso de uso.
func NewProductionOrderUseCase(repo repository.ProductionOrderRepository, batchRepo repository.BatchRepository) *ProductionOrderUseCase {
	return &ProductionOrderUseCase{repo: repo, batchRepo: batchRepo}
}

// Create crea una orden sobre un lote de una sede accesible.
func (uc *ProductionOrderUseCase) Create(tc *tenant.Context, in dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	if err := tc.RequireFacility(in.FacilityID); err != nil {
		return nil, err
	}
	if in.BatchID == "" || in.OrderType == "" {
		return nil, domain.ErrInvalidInput
	}
	batch, err := uc.batchRepo.GetByID(tc.CompanyID, in.BatchID)
	if err != nil {
		return nil, err
	}
	if batch == nil || batch.FacilityID != in.FacilityID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	order := &entity.ProductionOrder{
		ID:          uuid.New().String(),
		CompanyID:   tc.CompanyID,
		FacilityID:  in.FacilityID,
		BatchID:     in.BatchID,
		OrderType:   in.OrderType,
		Description: in.Description,
		Status:      "open",
		DueDate:     in.DueDate,
		CreatedBy:   tc.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID obtiene una orden de la empresa del caller.
func (uc *ProductionOrderUseCase) GetByID(tc *tenant.Context, id string) (*dto.ProductionOrderResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	order, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if !tc.CanAccessFacility(order.FacilityID) {
		return nil, domain.ErrForbidden
	}
	return toOrderResponse(order), nil
}

// Update cambia el estado (respetando las transiciones válidas) o la descripción.
func (uc *ProductionOrderUseCase) Update(tc *tenant.Context, id string, in dto.UpdateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	order, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if !tc.CanAccessFacility(order.FacilityID) {
		return nil, domain.ErrForbidden
	}
	if in.Status != nil && *in.Status != order.Status {
		if !transitionAllowed(order.Status, *in.Status) {
			return nil, domain.ErrConflict
		}
		order.Status = *in.Status
	}
	if in.Description != nil {
		order.Description = *in.Description
	}
	order.UpdatedAt = time.Now()
	if err := uc.repo.Update(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// List lista órdenes de una sede accesible con paginación.
func (uc *ProductionOrderUseCase) List(tc *tenant.Context, facilityID string, page dto.PageRequest) ([]dto.ProductionOrderResponse, *dto.PageMeta, error) {
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
	items := make([]dto.ProductionOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return items, dto.NewPageMeta(page.Page, page.Limit, total), nil
}

func transitionAllowed(from, to string) bool {
	for _, t := range orderTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func toOrderResponse(o *entity.ProductionOrder) *dto.ProductionOrderResponse {
	if o == nil {
		return nil
	}
	return &dto.ProductionOrderResponse{
		ID:          o.ID,
		CompanyID:   o.CompanyID,
		FacilityID:  o.FacilityID,
		BatchID:     o.BatchID,
		OrderType:   o.OrderType,
		Description: o.Description,
		Status:      o.Status,
		DueDate:     o.DueDate,
		CreatedBy:   o.CreatedBy,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
