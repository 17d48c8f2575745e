package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/application/usecase"
)

// AIHandler asistencia de IA: extracción de plantillas y detección de plagas.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// ExtractTemplate convierte un checklist en texto libre en un esquema de
// plantilla propuesto. El usuario lo revisa antes de crear la plantilla.
func (h *AIHandler) ExtractTemplate(c *fiber.Ctx) error {
	var in dto.ExtractTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.ExtractTemplate(c.Context(), GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// DetectPests analiza una foto de cultivo (base64) en busca de plagas.
func (h *AIHandler) DetectPests(c *fiber.Ctx) error {
	var in dto.PestDetectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.DetectPests(c.Context(), GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}
