package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/application/analytics"
)

// DashboardHandler maneja los KPIs agregados por sede.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      KPIs de una sede
// @Description  Áreas activas, tasa de mortalidad de lotes, existencias bajas y
// @Description  eventos de cumplimiento abiertos; calculado bajo demanda.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        facility_id  query  string  true  "ID de la sede"
// @Success      200  {object}  dto.Envelope{data=dto.DashboardSummaryDTO}
// @Failure      403  {object}  dto.Envelope
// @Router       /api/v1/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	facilityID := c.Query("facility_id")
	if facilityID == "" {
		return badRequest(c, "facility_id es requerido")
	}
	out, err := h.uc.Summary(c.Context(), GetTenant(c), facilityID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}
