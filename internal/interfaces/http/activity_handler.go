package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/application/usecase"
)

// ActivityHandler maneja la bitácora de actividades (append-only: sin update ni delete).
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// Create registra una actividad sobre un lote o área.
func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.FacilityID == "" || in.TargetType == "" || in.TargetID == "" || in.Action == "" {
		return badRequest(c, "facility_id, target_type, target_id y action son requeridos")
	}
	out, err := h.uc.Create(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// List devuelve la bitácora de una sede o de un objetivo concreto.
// Con target_type+target_id filtra por objetivo; si no, pagina por sede.
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	targetType := c.Query("target_type")
	targetID := c.Query("target_id")
	if targetType != "" && targetID != "" {
		list, meta, err := h.uc.ListByTarget(GetTenant(c), targetType, targetID, parsePage(c))
		if err != nil {
			return respondDomainError(c, err)
		}
		return respondPage(c, list, meta)
	}

	facilityID := c.Query("facility_id")
	if facilityID == "" {
		return badRequest(c, "facility_id o target_type+target_id son requeridos")
	}
	list, meta, err := h.uc.ListByFacility(GetTenant(c), facilityID, parsePage(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondPage(c, list, meta)
}
