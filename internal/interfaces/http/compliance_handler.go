package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/application/usecase"
)

// ComplianceHandler maneja eventos de cumplimiento y su exportación regulatoria.
type ComplianceHandler struct {
	uc *usecase.ComplianceUseCase
}

// NewComplianceHandler construye el handler.
func NewComplianceHandler(uc *usecase.ComplianceUseCase) *ComplianceHandler {
	return &ComplianceHandler{uc: uc}
}

// Create registra un evento de cumplimiento.
func (h *ComplianceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateComplianceEventRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.FacilityID == "" || in.EventType == "" || in.Severity == "" {
		return badRequest(c, "facility_id, event_type y severity son requeridos")
	}
	out, err := h.uc.Create(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// GetByID devuelve un evento.
func (h *ComplianceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "evento no encontrado")
	}
	return respond(c, fiber.StatusOK, out)
}

// Resolve cierra un evento abierto. Un evento ya resuelto responde 409.
func (h *ComplianceHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveComplianceEventRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Resolve(GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "evento no encontrado")
	}
	return respond(c, fiber.StatusOK, out)
}

// List devuelve los eventos de la empresa (sedes accesibles), paginados.
func (h *ComplianceHandler) List(c *fiber.Ctx) error {
	list, meta, err := h.uc.List(GetTenant(c), parsePage(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondPage(c, list, meta)
}

// ExportXML godoc
// @Summary      Exportar eventos de cumplimiento a XML regulatorio
// @Tags         compliance
// @Security     Bearer
// @Produce      xml
// @Param        from  query  string  true  "Fecha inicial (2006-01-02)"
// @Param        to    query  string  true  "Fecha final (2006-01-02)"
// @Success      200   {string}  string  "documento XML"
// @Failure      400   {object}  dto.Envelope
// @Router       /api/v1/compliance/export [get]
func (h *ComplianceHandler) ExportXML(c *fiber.Ctx) error {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return badRequest(c, "from debe tener formato 2006-01-02")
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return badRequest(c, "to debe tener formato 2006-01-02")
	}

	out, err := h.uc.ExportXML(GetTenant(c), from, to)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="compliance_report.xml"`)
	return c.Status(fiber.StatusOK).Send(out)
}
