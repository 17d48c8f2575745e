package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/application/usecase"
)

// CompanyHandler maneja las peticiones HTTP para Company.
// Create es público (signup); el resto requiere sesión.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear empresa (signup)
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.Envelope{data=dto.CompanyResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/v1/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Name == "" || in.TaxID == "" {
		return badRequest(c, "name y tax_id son requeridos")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// GetMine devuelve la empresa de la sesión. No acepta un id arbitrario:
// la identidad de empresa sale del token, nunca de la URL.
func (h *CompanyHandler) GetMine(c *fiber.Ctx) error {
	tc := GetTenant(c)
	out, err := h.uc.GetByID(tc.CompanyID)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "empresa no encontrada")
	}
	return respond(c, fiber.StatusOK, out)
}

// UpdateMine actualiza la empresa de la sesión (plan, nombre, baja lógica).
func (h *CompanyHandler) UpdateMine(c *fiber.Ctx) error {
	tc := GetTenant(c)
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(tc.CompanyID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "empresa no encontrada")
	}
	return respond(c, fiber.StatusOK, out)
}
