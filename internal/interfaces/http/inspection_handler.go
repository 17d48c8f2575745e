package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/application/inspection"
)

// InspectionHandler maneja las inspecciones de calidad.
type InspectionHandler struct {
	uc *inspection.UseCase
}

// NewInspectionHandler construye el handler.
func NewInspectionHandler(uc *inspection.UseCase) *InspectionHandler {
	return &InspectionHandler{uc: uc}
}

// Create abre una inspección en borrador contra una plantilla activa.
func (h *InspectionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInspectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.FacilityID == "" || in.TargetType == "" || in.TargetID == "" || in.TemplateID == "" {
		return badRequest(c, "facility_id, target_type, target_id y template_id son requeridos")
	}
	out, err := h.uc.Create(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// GetByID devuelve una inspección.
func (h *InspectionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "inspección no encontrada")
	}
	return respond(c, fiber.StatusOK, out)
}

// Submit godoc
// @Summary      Enviar inspección
// @Description  Valida las respuestas contra el esquema (422 con el mapa de
// @Description  errores por campo), deriva el resultado y deja la inspección
// @Description  en estado terminal. Reenviar responde 409.
// @Tags         inspections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la inspección"
// @Param        body  body  dto.SubmitInspectionRequest  true  "Respuestas"
// @Success      200   {object}  dto.Envelope{data=dto.InspectionResponse}
// @Failure      409   {object}  dto.Envelope
// @Failure      422   {object}  dto.Envelope
// @Router       /api/v1/inspections/{id}/submit [post]
func (h *InspectionHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitInspectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Submit(c.Context(), GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "inspección no encontrada")
	}
	return respond(c, fiber.StatusOK, out)
}

// List devuelve inspecciones por sede o por objetivo.
func (h *InspectionHandler) List(c *fiber.Ctx) error {
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

// GeneratePDF descarga el reporte PDF de una inspección enviada.
func (h *InspectionHandler) GeneratePDF(c *fiber.Ctx) error {
	out, err := h.uc.GeneratePDF(GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inspection_report.pdf"`)
	return c.Status(fiber.StatusOK).Send(out)
}
