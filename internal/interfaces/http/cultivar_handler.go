package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/application/usecase"
)

// CultivarHandler maneja las peticiones HTTP para Cultivar.
type CultivarHandler struct {
	uc *usecase.CultivarUseCase
}

// NewCultivarHandler construye el handler.
func NewCultivarHandler(uc *usecase.CultivarUseCase) *CultivarHandler {
	return &CultivarHandler{uc: uc}
}

// Create registra una variedad cultivada de la empresa.
func (h *CultivarHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCultivarRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.CropTypeID == "" || in.Name == "" {
		return badRequest(c, "crop_type_id y name son requeridos")
	}
	out, err := h.uc.Create(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// GetByID devuelve un cultivar.
func (h *CultivarHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "cultivar no encontrado")
	}
	return respond(c, fiber.StatusOK, out)
}

// List devuelve los cultivares de la empresa, paginados.
func (h *CultivarHandler) List(c *fiber.Ctx) error {
	list, meta, err := h.uc.List(GetTenant(c), parsePage(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondPage(c, list, meta)
}
