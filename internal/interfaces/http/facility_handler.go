package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/application/usecase"
)

// FacilityHandler maneja las peticiones HTTP para Facility.
type FacilityHandler struct {
	uc *usecase.FacilityUseCase
}

// NewFacilityHandler construye el handler.
func NewFacilityHandler(uc *usecase.FacilityUseCase) *FacilityHandler {
	return &FacilityHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sede
// @Tags         facilities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFacilityRequest  true  "Datos de la sede"
// @Success      201   {object}  dto.Envelope{data=dto.FacilityResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/v1/facilities [post]
func (h *FacilityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFacilityRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Name == "" {
		return badRequest(c, "name es requerido")
	}
	out, err := h.uc.Create(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// GetByID devuelve una sede de la empresa de la sesión.
func (h *FacilityHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "sede no encontrada")
	}
	return respond(c, fiber.StatusOK, out)
}

// Update actualiza nombre, dirección o estado de una sede.
func (h *FacilityHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFacilityRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "sede no encontrada")
	}
	return respond(c, fiber.StatusOK, out)
}

// List devuelve las sedes accesibles para el usuario, paginadas.
func (h *FacilityHandler) List(c *fiber.Ctx) error {
	list, meta, err := h.uc.List(GetTenant(c), parsePage(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondPage(c, list, meta)
}

// AreaHandler maneja las peticiones HTTP para Area.
type AreaHandler struct {
	uc *usecase.AreaUseCase
}

// NewAreaHandler construye el handler.
func NewAreaHandler(uc *usecase.AreaUseCase) *AreaHandler {
	return &AreaHandler{uc: uc}
}

// Create crea un área dentro de una sede accesible.
func (h *AreaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAreaRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.FacilityID == "" || in.Name == "" {
		return badRequest(c, "facility_id y name son requeridos")
	}
	out, err := h.uc.Create(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// GetByID devuelve un área.
func (h *AreaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "área no encontrada")
	}
	return respond(c, fiber.StatusOK, out)
}

// Update actualiza un área.
func (h *AreaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAreaRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "área no encontrada")
	}
	return respond(c, fiber.StatusOK, out)
}

// List devuelve las áreas de una sede (query facility_id), paginadas.
func (h *AreaHandler) List(c *fiber.Ctx) error {
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

// Delete elimina un área sin lotes activos.
func (h *AreaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetTenant(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
