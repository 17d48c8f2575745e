package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/application/usecase"
)

// CatalogHandler catálogos de referencia de solo lectura.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CropTypes devuelve los tipos de cultivo.
func (h *CatalogHandler) CropTypes(c *fiber.Ctx) error {
	list, err := h.uc.CropTypes(GetTenant(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, list)
}

// Units devuelve las unidades de medida.
func (h *CatalogHandler) Units(c *fiber.Ctx) error {
	list, err := h.uc.UnitsOfMeasure(GetTenant(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, list)
}

// GeoDivisions devuelve divisiones geográficas; sin parent_id devuelve el
// primer nivel.
func (h *CatalogHandler) GeoDivisions(c *fiber.Ctx) error {
	list, err := h.uc.GeoDivisions(GetTenant(c), c.Query("parent_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, list)
}
