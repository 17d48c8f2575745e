package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/application/auth"
	"github.com/agrovida/agroops-api/internal/application/dto"
)

// AuthHandler maneja registro y login (rutas públicas).
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.Envelope{data=dto.UserResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.CompanyID == "" || in.Email == "" || in.Password == "" {
		return badRequest(c, "company_id, email y password son requeridos")
	}
	out, err := h.uc.RegisterUser(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.Envelope{data=dto.LoginResponse}
// @Failure      401   {object}  dto.Envelope
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "email y password son requeridos")
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}
