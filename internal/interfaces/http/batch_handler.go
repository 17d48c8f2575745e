package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/application/usecase"
)

// BatchHandler maneja las peticiones HTTP para lotes de cultivo.
type BatchHandler struct {
	uc *usecase.BatchUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *usecase.BatchUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Create abre un lote en una sede accesible.
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.FacilityID == "" || in.AreaID == "" || in.CultivarID == "" || in.Code == "" {
		return badRequest(c, "facility_id, area_id, cultivar_id y code son requeridos")
	}
	out, err := h.uc.Create(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// GetByID devuelve un lote.
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "lote no encontrado")
	}
	return respond(c, fiber.StatusOK, out)
}

// Update avanza la etapa del lote o registra mortalidad.
func (h *BatchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "lote no encontrado")
	}
	return respond(c, fiber.StatusOK, out)
}

// List devuelve los lotes de una sede (query facility_id), paginados.
func (h *BatchHandler) List(c *fiber.Ctx) error {
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
