package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/application/usecase"
)

// ProductionOrderHandler maneja las peticiones HTTP para órdenes de producción.
type ProductionOrderHandler struct {
	uc *usecase.ProductionOrderUseCase
}

// NewProductionOrderHandler construye el handler.
func NewProductionOrderHandler(uc *usecase.ProductionOrderUseCase) *ProductionOrderHandler {
	return &ProductionOrderHandler{uc: uc}
}

// Create abre una orden de producción sobre un lote.
func (h *ProductionOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.FacilityID == "" || in.BatchID == "" || in.OrderType == "" {
		return badRequest(c, "facility_id, batch_id y order_type son requeridos")
	}
	out, err := h.uc.Create(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// GetByID devuelve una orden.
func (h *ProductionOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "orden no encontrada")
	}
	return respond(c, fiber.StatusOK, out)
}

// Update cambia estado o descripción de una orden.
func (h *ProductionOrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "orden no encontrada")
	}
	return respond(c, fiber.StatusOK, out)
}

// List devuelve las órdenes de una sede (query facility_id), paginadas.
func (h *ProductionOrderHandler) List(c *fiber.Ctx) error {
	facilityID := c.Query("facility_id")
	if facilityID == "" {
		return badRequest(c, "facility_id es requerido")
	}
	list, meta, err := h.uc.List(GetTenant(c), facilityID, parsePage(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondPage(c, list, meta)
}
