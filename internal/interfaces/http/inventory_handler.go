package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP para existencias por sede.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create registra la existencia de un producto en una sede.
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.FacilityID == "" || in.ProductID == "" {
		return badRequest(c, "facility_id y product_id son requeridos")
	}
	out, err := h.uc.Create(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// GetByID devuelve una existencia.
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "existencia no encontrada")
	}
	return respond(c, fiber.StatusOK, out)
}

// UpdateQuantity godoc
// @Summary      Ajustar cantidad disponible
// @Description  Acepta expected_version como precondición optimista opcional;
// @Description  si no coincide con la versión almacenada responde 409.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la existencia"
// @Param        body  body  dto.UpdateInventoryQuantityRequest  true  "Nueva cantidad"
// @Success      200   {object}  dto.Envelope{data=dto.InventoryItemResponse}
// @Failure      409   {object}  dto.Envelope
// @Router       /api/v1/inventory/{id}/quantity [put]
func (h *InventoryHandler) UpdateQuantity(c *fiber.Ctx) error {
	var in dto.UpdateInventoryQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.UpdateQuantity(GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "existencia no encontrada")
	}
	return respond(c, fiber.StatusOK, out)
}

// List devuelve las existencias de una sede (query facility_id), paginadas.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	facilityID := c.Query("facility_id")
	if facilityID == "" {
		return badRequest(c, "facility_id es requerido")
	}
	list, meta, err := h.uc.ListByFacility(GetTenant(c), facilityID, parsePage(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondPage(c, list, meta)
}
