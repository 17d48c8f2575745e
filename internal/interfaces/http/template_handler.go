package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/application/inspection"
)

// TemplateHandler maneja plantillas versionadas de inspección de calidad.
type TemplateHandler struct {
	uc *inspection.TemplateUseCase
}

// NewTemplateHandler construye el handler.
func NewTemplateHandler(uc *inspection.TemplateUseCase) *TemplateHandler {
	return &TemplateHandler{uc: uc}
}

// Create godoc
// @Summary      Crear plantilla de inspección
// @Tags         templates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTemplateRequest  true  "Nombre y esquema"
// @Success      201   {object}  dto.Envelope{data=dto.TemplateResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/v1/templates [post]
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTemplateRequest
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

// GetByID devuelve una versión de plantilla.
func (h *TemplateHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "plantilla no encontrada")
	}
	return respond(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Editar plantilla
// @Description  Una edición estructural con inspecciones registradas crea la
// @Description  versión N+1 y archiva la vigente; la historia nunca se muta.
// @Tags         templates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la versión vigente"
// @Param        body  body  dto.UpdateTemplateRequest  true  "Cambios"
// @Success      200   {object}  dto.Envelope{data=dto.TemplateResponse}
// @Failure      409   {object}  dto.Envelope
// @Router       /api/v1/templates/{id} [put]
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "plantilla no encontrada")
	}
	return respond(c, fiber.StatusOK, out)
}

// Archive retira una plantilla del uso activo.
func (h *TemplateHandler) Archive(c *fiber.Ctx) error {
	if err := h.uc.Archive(GetTenant(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"archived": true})
}

// List devuelve las plantillas activas de la empresa, paginadas.
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	list, meta, err := h.uc.List(GetTenant(c), parsePage(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondPage(c, list, meta)
}

// ListVersions devuelve el historial completo de versiones de una plantilla.
func (h *TemplateHandler) ListVersions(c *fiber.Ctx) error {
	list, err := h.uc.ListVersions(GetTenant(c), c.Params("rootId"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, list)
}

// Render devuelve el formulario renderizable de una versión de plantilla:
// secciones y campos ordenados con el tipo ya normalizado.
func (h *TemplateHandler) Render(c *fiber.Ctx) error {
	out, err := h.uc.Render(GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "plantilla no encontrada")
	}
	return respond(c, fiber.StatusOK, out)
}
